package recent

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dfawole/m4tplay/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestRecent(t *testing.T) {
	Convey("Given watched lessons", t, func() {
		Convey("When remembering them", func() {
			So(Remember("lessons/go-pointers.json", "Pointers in Go"), ShouldBeNil)
			So(Remember("lessons/go-slices.json", "Slices in Go"), ShouldBeNil)
			So(Remember("lessons/go-slices.json", "Slices in Go"), ShouldBeNil)

			Convey("Suggestions are sorted by how often they were opened", func() {
				s := SuggestMany("")
				So(len(s), ShouldEqual, 2)
				So(s[0], ShouldEqual, "lessons/go-slices.json")
			})

			Convey("A partial input fuzzy-matches path and title", func() {
				So(SuggestMany("pointers"), ShouldResemble, []string{"lessons/go-pointers.json"})
				So(Suggest("slc").MustGet(), ShouldEqual, "lessons/go-slices.json")
			})

			Convey("An unknown input yields nothing", func() {
				So(Suggest("rust").IsAbsent(), ShouldBeTrue)
			})
		})
	})
}
