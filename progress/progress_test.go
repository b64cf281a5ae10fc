package progress

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dfawole/m4tplay/filesystem"
	"github.com/dfawole/m4tplay/lesson"
	"github.com/dfawole/m4tplay/timeline"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestProgress(t *testing.T) {
	Convey("Given a lesson", t, func() {
		l := &lesson.Lesson{
			ID:     "go-pointers",
			Title:  "Pointers in Go",
			Source: "pointers.mp4",
		}

		Convey("When saving its progress", func() {
			err := Save(l, 40, 5, nil)
			So(err, ShouldBeNil)

			Convey("The record should be retrievable", func() {
				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved["go-pointers"].Title, ShouldEqual, "Pointers in Go")
				So(saved["go-pointers"].WatchedPercentage, ShouldEqual, 40)
				So(saved["go-pointers"].Score, ShouldEqual, 5)
			})

			Convey("A lower percentage never regresses the record", func() {
				So(Save(l, 10, 0, nil), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(saved["go-pointers"].WatchedPercentage, ShouldEqual, 40)
				So(saved["go-pointers"].Score, ShouldEqual, 5)
			})

			Convey("Bookmarks ride along with the record", func() {
				bookmarks := []timeline.Bookmark{{ID: "b1", Time: 42, Label: "00:42"}}
				So(Save(l, 50, 5, bookmarks), ShouldBeNil)

				saved, err := Get()
				So(err, ShouldBeNil)
				So(len(saved["go-pointers"].Bookmarks), ShouldEqual, 1)
				So(saved["go-pointers"].Bookmarks[0].Time, ShouldEqual, 42)
			})

			Convey("Removing the record deletes it", func() {
				saved, err := Get()
				So(err, ShouldBeNil)

				So(Remove(saved["go-pointers"]), ShouldBeNil)

				saved, err = Get()
				So(err, ShouldBeNil)
				So(saved["go-pointers"], ShouldBeNil)
			})
		})
	})
}
