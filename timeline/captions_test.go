package timeline

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCaptionTrackSet(t *testing.T) {
	Convey("Given a track set with english and german tracks", t, func() {
		tracks := []CaptionTrack{
			{Kind: "subtitles", Label: "English", LanguageCode: "en", SourceURI: "en.vtt"},
			{Kind: "subtitles", Label: "Deutsch", LanguageCode: "de", SourceURI: "de.vtt"},
		}

		applied := make(map[string]bool)
		set := NewCaptionTrackSet(tracks, func(track CaptionTrack, showing bool) {
			applied[track.LanguageCode] = showing
		})

		Convey("Nothing shows before captions are enabled", func() {
			set.SelectLanguage("en")
			So(applied["en"], ShouldBeFalse)
			_, showing := set.Showing()
			So(showing, ShouldBeFalse)
		})

		Convey("Enabling with a matching selection shows exactly that track", func() {
			set.SelectLanguage("de")
			set.SetEnabled(true)

			So(applied["de"], ShouldBeTrue)
			So(applied["en"], ShouldBeFalse)

			track, showing := set.Showing()
			So(showing, ShouldBeTrue)
			So(track.Label, ShouldEqual, "Deutsch")
		})

		Convey("Selecting an absent language is a legal no-op", func() {
			set.SetEnabled(true)
			set.SelectLanguage("fr")

			So(set.Enabled(), ShouldBeTrue)
			So(applied["en"], ShouldBeFalse)
			So(applied["de"], ShouldBeFalse)

			_, showing := set.Showing()
			So(showing, ShouldBeFalse)
		})

		Convey("Disabling hides the showing track", func() {
			set.SelectLanguage("en")
			set.SetEnabled(true)
			So(applied["en"], ShouldBeTrue)

			set.SetEnabled(false)
			So(applied["en"], ShouldBeFalse)
		})
	})
}
