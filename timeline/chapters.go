// Package timeline holds the time-indexed collections attached to a lesson:
// externally authored chapters, user-owned bookmarks and the caption track set.
package timeline

import (
	"golang.org/x/exp/slices"
)

// Chapter is a read-only, externally authored timeline marker.
type Chapter struct {
	Time  float64 `json:"time"`
	Title string  `json:"title"`
}

// Chapters is an ordered, read-only lookup structure over chapter markers.
type Chapters []Chapter

// NewChapters returns a copy of the given markers sorted ascending by time.
func NewChapters(chapters []Chapter) Chapters {
	sorted := slices.Clone(chapters)
	slices.SortStableFunc(sorted, func(a, b Chapter) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// Current returns the chapter with the greatest time not after the given
// position, or false when the position precedes every chapter.
func (c Chapters) Current(position float64) (Chapter, bool) {
	var (
		current Chapter
		found   bool
	)

	for _, chapter := range c {
		if chapter.Time > position {
			break
		}
		current = chapter
		found = true
	}

	return current, found
}
