package timeline

import (
	"time"

	"github.com/dfawole/m4tplay/util"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Bookmark is a user-created timeline marker. There is no uniqueness
// constraint on time: repeated bookmarking at the same instant yields
// distinct entities.
type Bookmark struct {
	ID        string    `json:"id"`
	Time      float64   `json:"time"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

// BookmarkEvents notifies collaborators of bookmark mutations.
type BookmarkEvents struct {
	Added   func(Bookmark)
	Removed func(id string)
}

// BookmarkList is the mutable, user-owned collection of bookmarks.
type BookmarkList struct {
	items  []Bookmark
	events BookmarkEvents
	now    func() time.Time
}

// BookmarkOption configures a BookmarkList.
type BookmarkOption func(*BookmarkList)

// WithBookmarkClock overrides the list's time source. Used by tests.
func WithBookmarkClock(now func() time.Time) BookmarkOption {
	return func(l *BookmarkList) { l.now = now }
}

// WithBookmarkEvents installs mutation callbacks.
func WithBookmarkEvents(events BookmarkEvents) BookmarkOption {
	return func(l *BookmarkList) { l.events = events }
}

// NewBookmarkList creates a bookmark collection, optionally seeded with
// previously persisted entries.
func NewBookmarkList(seed []Bookmark, opts ...BookmarkOption) *BookmarkList {
	l := &BookmarkList{
		items: slices.Clone(seed),
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Add creates a bookmark at the given playback position. An empty label
// defaults to the formatted timestamp.
func (l *BookmarkList) Add(position float64, label string) Bookmark {
	if label == "" {
		label = util.FormatTimestamp(position)
	}

	bookmark := Bookmark{
		ID:        uuid.NewString(),
		Time:      position,
		Label:     label,
		CreatedAt: l.now(),
	}

	l.items = append(l.items, bookmark)

	if l.events.Added != nil {
		l.events.Added(bookmark)
	}

	return bookmark
}

// Remove deletes the bookmark with the given id.
func (l *BookmarkList) Remove(id string) bool {
	before := len(l.items)
	l.items = lo.Reject(l.items, func(b Bookmark, _ int) bool { return b.ID == id })

	removed := len(l.items) < before
	if removed && l.events.Removed != nil {
		l.events.Removed(id)
	}

	return removed
}

// Get returns the bookmark with the given id.
func (l *BookmarkList) Get(id string) (Bookmark, bool) {
	return lo.Find(l.items, func(b Bookmark) bool { return b.ID == id })
}

// All returns a copy of every bookmark in creation order.
func (l *BookmarkList) All() []Bookmark {
	return slices.Clone(l.items)
}
