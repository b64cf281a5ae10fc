// Package recent manages the persistence and retrieval of recently watched
// lesson manifests for quick re-opening.
package recent

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"

	"github.com/dfawole/m4tplay/filesystem"
	"github.com/dfawole/m4tplay/where"
)

type record struct {
	Rank  int    `json:"rank"`
	Path  string `json:"path"`
	Title string `json:"title"`
}

var cacher = gache.New[map[string]*record](
	&gache.Options{
		Path:       where.Recents(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Remember records a watched lesson in the persistent registry or increments its popularity rank.
func Remember(path, title string) error {
	path = strings.TrimSpace(path)
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*record)
	}

	if r, ok := cached[path]; ok {
		r.Rank++
		r.Title = title
	} else {
		cached[path] = &record{Rank: 1, Path: path, Title: title}
	}

	return cacher.Set(cached)
}

// Suggest returns the most relevant recently watched lesson path for a partial input.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns recently watched lesson paths matching the partial
// input, sorted by how often they were opened. An empty input matches all.
func SuggestMany(q string) []string {
	q = strings.TrimSpace(strings.ToLower(q))

	cached, expired, err := cacher.Get()
	if err != nil || expired || cached == nil {
		return []string{}
	}

	var records []*record
	for _, r := range cached {
		if q == "" || fuzzy.Match(q, strings.ToLower(r.Path)) || fuzzy.Match(q, strings.ToLower(r.Title)) {
			records = append(records, r)
		}
	}

	slices.SortFunc(records, func(a, b *record) int {
		return b.Rank - a.Rank // Descending rank
	})

	return lo.Map(records, func(r *record, _ int) string {
		return r.Path
	})
}
