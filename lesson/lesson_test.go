package lesson

import (
	"testing"

	"github.com/dfawole/m4tplay/filesystem"
	"github.com/dfawole/m4tplay/quiz"
	"github.com/dfawole/m4tplay/timeline"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

const validManifest = `{
	"id": "go-101-lesson-3",
	"title": "Concurrency Basics",
	"source": "https://media.example.com/go-101/lesson-3.mp4",
	"chapters": [
		{"time": 0, "title": "Recap"},
		{"time": 95, "title": "Goroutines"}
	],
	"tracks": [
		{"kind": "subtitles", "label": "English", "language_code": "en", "source_uri": "en.vtt"}
	],
	"questions": [
		{
			"id": "q1",
			"trigger_time": 120,
			"text": "What starts a goroutine?",
			"options": [
				{"id": "a", "text": "go", "is_correct": true},
				{"id": "b", "text": "run"}
			],
			"explanation": "The go keyword starts a new goroutine.",
			"points": 10
		}
	]
}`

func TestLoad(t *testing.T) {
	Convey("Given a lesson manifest on disk", t, func() {
		path := "/lessons/go-101-3.json"
		So(filesystem.API().WriteFile(path, []byte(validManifest), 0644), ShouldBeNil)

		Convey("Load parses and validates it", func() {
			l, err := Load(path)
			So(err, ShouldBeNil)
			So(l.Title, ShouldEqual, "Concurrency Basics")
			So(l.Chapters, ShouldHaveLength, 2)
			So(l.Questions, ShouldHaveLength, 1)
			So(l.TotalPoints(), ShouldEqual, 10)
		})

		Convey("Load fails for a missing file", func() {
			_, err := Load("/lessons/nope.json")
			So(err, ShouldNotBeNil)
		})

		Convey("Load fails for malformed JSON", func() {
			bad := "/lessons/bad.json"
			So(filesystem.API().WriteFile(bad, []byte("{"), 0644), ShouldBeNil)
			_, err := Load(bad)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Validate", t, func() {
		base := func() Lesson {
			return Lesson{
				ID:     "l1",
				Title:  "t",
				Source: "file.mp4",
			}
		}

		Convey("Accepts a minimal lesson", func() {
			l := base()
			So(l.Validate(), ShouldBeNil)
		})

		Convey("Rejects an empty source", func() {
			l := base()
			l.Source = ""
			So(l.Validate(), ShouldNotBeNil)
		})

		Convey("Rejects negative chapter times", func() {
			l := base()
			l.Chapters = []timeline.Chapter{{Time: -2, Title: "bad"}}
			So(l.Validate(), ShouldNotBeNil)
		})

		Convey("Rejects caption tracks without a language", func() {
			l := base()
			l.Tracks = []timeline.CaptionTrack{{Label: "??"}}
			So(l.Validate(), ShouldNotBeNil)
		})

		Convey("Rejects a question with no correct option before playback", func() {
			l := base()
			l.Questions = []quiz.Question{{
				ID:      "q1",
				Options: []quiz.Option{{ID: "a"}, {ID: "b"}},
			}}
			So(l.Validate(), ShouldNotBeNil)
		})
	})
}
