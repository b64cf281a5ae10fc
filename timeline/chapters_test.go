package timeline

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestChapters(t *testing.T) {
	Convey("Given an unordered chapter list", t, func() {
		chapters := NewChapters([]Chapter{
			{Time: 120, Title: "Interfaces"},
			{Time: 0, Title: "Introduction"},
			{Time: 45, Title: "Structs"},
		})

		Convey("NewChapters sorts ascending by time", func() {
			So(chapters[0].Title, ShouldEqual, "Introduction")
			So(chapters[1].Title, ShouldEqual, "Structs")
			So(chapters[2].Title, ShouldEqual, "Interfaces")
		})

		Convey("Current returns the greatest chapter not after the position", func() {
			current, ok := chapters.Current(50)
			So(ok, ShouldBeTrue)
			So(current.Title, ShouldEqual, "Structs")

			current, ok = chapters.Current(0)
			So(ok, ShouldBeTrue)
			So(current.Title, ShouldEqual, "Introduction")

			current, ok = chapters.Current(500)
			So(ok, ShouldBeTrue)
			So(current.Title, ShouldEqual, "Interfaces")
		})

		Convey("Positions before every chapter yield none", func() {
			empty := NewChapters([]Chapter{{Time: 10, Title: "Late start"}})
			_, ok := empty.Current(5)
			So(ok, ShouldBeFalse)
		})

		Convey("An empty list always yields none", func() {
			_, ok := NewChapters(nil).Current(0)
			So(ok, ShouldBeFalse)
		})
	})
}
