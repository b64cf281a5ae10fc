package timeline

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBookmarks(t *testing.T) {
	Convey("Given a bookmark list with mutation events", t, func() {
		var added []Bookmark
		var removed []string

		list := NewBookmarkList(nil,
			WithBookmarkClock(func() time.Time { return time.Unix(500, 0) }),
			WithBookmarkEvents(BookmarkEvents{
				Added:   func(b Bookmark) { added = append(added, b) },
				Removed: func(id string) { removed = append(removed, id) },
			}),
		)

		Convey("Add generates an id and fires the event", func() {
			b := list.Add(12, "loops recap")
			So(b.ID, ShouldNotBeEmpty)
			So(b.Label, ShouldEqual, "loops recap")
			So(b.CreatedAt, ShouldEqual, time.Unix(500, 0))
			So(added, ShouldHaveLength, 1)
		})

		Convey("An empty label defaults to the formatted timestamp", func() {
			b := list.Add(754, "")
			So(b.Label, ShouldEqual, "12:34")
		})

		Convey("Repeated adds at the same instant stay distinct", func() {
			first := list.Add(12.0, "")
			second := list.Add(12.0, "")

			So(first.ID, ShouldNotEqual, second.ID)
			So(list.All(), ShouldHaveLength, 2)
		})

		Convey("Remove deletes by id and fires the event", func() {
			b := list.Add(3, "")

			So(list.Remove(b.ID), ShouldBeTrue)
			So(removed, ShouldResemble, []string{b.ID})
			So(list.All(), ShouldBeEmpty)

			Convey("Removing an unknown id reports false", func() {
				So(list.Remove("missing"), ShouldBeFalse)
				So(removed, ShouldHaveLength, 1)
			})
		})

		Convey("Get finds by id", func() {
			b := list.Add(7, "wat")
			found, ok := list.Get(b.ID)
			So(ok, ShouldBeTrue)
			So(found.Label, ShouldEqual, "wat")

			_, ok = list.Get("missing")
			So(ok, ShouldBeFalse)
		})
	})
}
