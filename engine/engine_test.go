package engine

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/dfawole/m4tplay/playback"
	"github.com/dfawole/m4tplay/quiz"
	"github.com/dfawole/m4tplay/timeline"
)

// fakeSurface records commands instead of driving a player process.
type fakeSurface struct {
	paused        bool
	position      float64
	volume        float64
	muted         bool
	rate          float64
	captionsShown bool
	selectedLang  string
	addedTracks   []string
	chapterCount  int
	closed        bool
	done          chan struct{}
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{done: make(chan struct{})}
}

func (f *fakeSurface) Play(url, title string) error { return nil }
func (f *fakeSurface) SetPaused(paused bool) error {
	f.paused = paused
	return nil
}
func (f *fakeSurface) Seek(seconds float64) error {
	f.position = seconds
	return nil
}
func (f *fakeSurface) SetVolume(percent float64) error {
	f.volume = percent
	return nil
}
func (f *fakeSurface) SetMuted(muted bool) error {
	f.muted = muted
	return nil
}
func (f *fakeSurface) SetRate(rate float64) error {
	f.rate = rate
	return nil
}
func (f *fakeSurface) SetFullscreen(enabled bool) error        { return nil }
func (f *fakeSurface) SetPictureInPicture(enabled bool) error  { return nil }
func (f *fakeSurface) SetCaptionsVisible(visible bool) error {
	f.captionsShown = visible
	return nil
}
func (f *fakeSurface) SelectCaptionTrack(languageCode string) error {
	f.selectedLang = languageCode
	return nil
}
func (f *fakeSurface) AddCaptionTrack(uri, title, languageCode string) error {
	f.addedTracks = append(f.addedTracks, languageCode)
	return nil
}
func (f *fakeSurface) SetChapters(chapters []map[string]interface{}) error {
	f.chapterCount = len(chapters)
	return nil
}
func (f *fakeSurface) GetTimePos() (float64, error)     { return f.position, nil }
func (f *fakeSurface) GetDuration() (float64, error)    { return 0, nil }
func (f *fakeSurface) GetPausedStatus() (bool, error)   { return f.paused, nil }
func (f *fakeSurface) IsRunning() bool                  { return !f.closed }
func (f *fakeSurface) Wait() <-chan struct{}            { return f.done }
func (f *fakeSurface) Close() error {
	f.closed = true
	return nil
}

func testOptions() Options {
	return Options{
		Source: "lesson.mp4",
		Title:  "Pointers in Go",
		Chapters: []timeline.Chapter{
			{Time: 0, Title: "Intro"},
			{Time: 30, Title: "Syntax"},
		},
		Tracks: []timeline.CaptionTrack{
			{Kind: "subtitles", Label: "English", LanguageCode: "en", SourceURI: "en.vtt"},
		},
		Questions: []quiz.Question{
			{
				ID:          "q1",
				TriggerTime: 10,
				Text:        "What does & do?",
				Points:      5,
				Options: []quiz.Option{
					{ID: "a", Text: "Takes an address", IsCorrect: true},
					{ID: "b", Text: "Dereferences"},
				},
			},
			{
				ID:          "q2",
				TriggerTime: 25,
				Text:        "What does * do?",
				Points:      5,
				Options: []quiz.Option{
					{ID: "a", Text: "Takes an address"},
					{ID: "b", Text: "Dereferences", IsCorrect: true},
				},
			},
		},
		AutoStopOnQuiz: true,
		IsSubscribed:   true,
		SeekStep:       10,
		VolumeStep:     0.1,
	}
}

func startedEngine(surface *fakeSurface, options Options, callbacks Callbacks) *Engine {
	e, err := New(surface, options, callbacks)
	So(err, ShouldBeNil)
	So(e.Start(), ShouldBeNil)
	return e
}

func TestEngineValidation(t *testing.T) {
	Convey("An invalid question schedule fails engine construction", t, func() {
		options := testOptions()
		options.Questions[0].Options = nil

		_, err := New(newFakeSurface(), options, Callbacks{})
		So(err, ShouldNotBeNil)
	})
}

func TestEngineQuizFlow(t *testing.T) {
	Convey("Given a started lesson run", t, func() {
		surface := newFakeSurface()

		var (
			answered []string
			finals   []int
		)
		e := startedEngine(surface, testOptions(), Callbacks{
			OnQuestionAnswered: func(id string, correct bool, taken time.Duration) {
				answered = append(answered, id)
			},
			OnSessionComplete: func(score, total int) {
				finals = append(finals, score, total)
			},
		})

		Convey("Chapters and tracks were pushed to the surface", func() {
			So(surface.chapterCount, ShouldEqual, 2)
			So(surface.addedTracks, ShouldResemble, []string{"en"})
		})

		Convey("When the clock reaches a trigger time", func() {
			e.Tick(5, 60)
			So(e.Quiz().Phase(), ShouldEqual, quiz.PhaseIdle)

			e.Tick(10.2, 60)

			Convey("The question activates and playback pauses for the quiz", func() {
				So(e.Quiz().Phase(), ShouldEqual, quiz.PhaseTriggered)
				So(e.Playback().Playing, ShouldBeFalse)
				So(e.Playback().PauseReason, ShouldEqual, playback.PauseQuiz)
				So(surface.paused, ShouldBeTrue)
			})

			Convey("Further ticks in the window do not re-activate", func() {
				q, _ := e.Quiz().Active()
				e.Tick(10.3, 60)
				active, _ := e.Quiz().Active()
				So(active.ID, ShouldEqual, q.ID)
			})

			Convey("Answering and continuing resumes playback", func() {
				So(e.SelectOption(0), ShouldBeTrue)
				So(e.SubmitAnswer(), ShouldBeTrue)
				So(answered, ShouldResemble, []string{"q1"})

				So(e.ContinueQuiz(), ShouldBeTrue)
				So(e.Playback().Playing, ShouldBeTrue)
				So(e.Quiz().Phase(), ShouldEqual, quiz.PhaseIdle)

				Convey("The answered question never triggers again", func() {
					e.Tick(10.1, 60)
					So(e.Quiz().Phase(), ShouldEqual, quiz.PhaseIdle)
				})

				Convey("Answering the rest completes the session once", func() {
					e.Tick(25, 60)
					So(e.SelectOption(1), ShouldBeTrue)
					So(e.SubmitAnswer(), ShouldBeTrue)
					So(e.ContinueQuiz(), ShouldBeTrue)
					So(finals, ShouldResemble, []int{10, 10})
				})
			})
		})

		Convey("Seeking past a question's window skips it", func() {
			So(e.SeekTo(20), ShouldBeNil)
			e.Tick(20, 60)
			So(e.Quiz().Phase(), ShouldEqual, quiz.PhaseIdle)

			Convey("Seeking back into the window triggers it", func() {
				So(e.SeekTo(10), ShouldBeNil)
				e.Tick(10, 60)
				So(e.Quiz().Phase(), ShouldEqual, quiz.PhaseTriggered)
			})
		})

		Convey("A user pause made before a quiz survives the quiz resume", func() {
			So(e.TogglePlayPause(), ShouldBeNil)
			So(e.Playback().PauseReason, ShouldEqual, playback.PauseUser)

			e.Tick(10, 60)
			So(e.Quiz().Phase(), ShouldEqual, quiz.PhaseTriggered)

			So(e.SelectOption(0), ShouldBeTrue)
			So(e.SubmitAnswer(), ShouldBeTrue)
			So(e.ContinueQuiz(), ShouldBeTrue)

			So(e.Playback().Playing, ShouldBeFalse)
			So(e.Playback().PauseReason, ShouldEqual, playback.PauseUser)
		})
	})
}

func TestEngineEndAndControls(t *testing.T) {
	Convey("Given a started lesson run", t, func() {
		surface := newFakeSurface()

		endings := 0
		completions := 0
		var added []timeline.Bookmark
		e := startedEngine(surface, testOptions(), Callbacks{
			OnPlaybackEnded:   func() { endings++ },
			OnSessionComplete: func(score, total int) { completions++ },
			OnAddBookmark:     func(b timeline.Bookmark) { added = append(added, b) },
		})

		Convey("The natural end fires once, independent of unanswered questions", func() {
			e.Tick(60, 60)
			e.Tick(60, 60)

			So(endings, ShouldEqual, 1)
			So(completions, ShouldEqual, 0)
			So(e.Playback().Ended, ShouldBeTrue)
		})

		Convey("Seek steps and volume steps come from the options", func() {
			e.Tick(30, 60)
			So(e.SeekBy(1), ShouldBeNil)
			So(e.Playback().CurrentTime, ShouldEqual, 40)
			So(e.SeekBy(-1), ShouldBeNil)
			So(e.Playback().CurrentTime, ShouldEqual, 30)

			So(e.AdjustVolume(-1), ShouldBeNil)
			So(e.Playback().Volume, ShouldAlmostEqual, 0.9, 1e-9)
		})

		Convey("Caption toggling drives the surface and the session state", func() {
			e.SelectCaptionLanguage("en")
			e.ToggleCaptions()

			So(surface.captionsShown, ShouldBeTrue)
			So(surface.selectedLang, ShouldEqual, "en")
			So(e.Playback().CaptionsEnabled, ShouldBeTrue)

			Convey("Selecting an absent language is a legal no-op render", func() {
				e.SelectCaptionLanguage("fr")
				_, showing := e.Captions().Showing()
				So(showing, ShouldBeFalse)
			})
		})

		Convey("Bookmarks are created at the current position", func() {
			e.Tick(42, 60)
			bookmark := e.AddBookmark("")

			So(bookmark.Time, ShouldEqual, 42)
			So(bookmark.Label, ShouldEqual, "00:42")
			So(len(added), ShouldEqual, 1)

			Convey("And can be jumped to and removed", func() {
				e.Tick(50, 60)
				So(e.SeekToBookmark(bookmark.ID), ShouldBeNil)
				So(e.Playback().CurrentTime, ShouldEqual, 42)

				So(e.RemoveBookmark(bookmark.ID), ShouldBeTrue)
				So(e.Bookmarks(), ShouldBeEmpty)
			})
		})

		Convey("The current chapter follows the position", func() {
			e.Tick(5, 60)
			chapter, ok := e.CurrentChapter()
			So(ok, ShouldBeTrue)
			So(chapter.Title, ShouldEqual, "Intro")

			e.Tick(35, 60)
			chapter, _ = e.CurrentChapter()
			So(chapter.Title, ShouldEqual, "Syntax")
		})

		Convey("Rate changes reach the surface", func() {
			So(e.SetRate(1.5), ShouldBeNil)
			So(surface.rate, ShouldEqual, 1.5)
			So(e.Playback().Rate, ShouldEqual, 1.5)
		})

		Convey("Picture-in-picture is best-effort", func() {
			e.TogglePictureInPicture()
			So(e.Playback().Err, ShouldBeNil)
		})

		Convey("Chapters are exposed in ascending order", func() {
			So(e.Chapters(), ShouldHaveLength, 2)
			So(e.Chapters()[0].Title, ShouldEqual, "Intro")
		})

		Convey("Surfaced errors suspend playback until dismissed", func() {
			e.Fail(playback.ErrorNetwork, "segment fetch timed out")

			session := e.Playback()
			So(session.Err, ShouldNotBeNil)
			So(session.Err.Kind, ShouldEqual, playback.ErrorNetwork)
			So(session.Playing, ShouldBeFalse)

			e.DismissError()
			So(e.Playback().Err, ShouldBeNil)
		})

		Convey("Run-scoped timers are cancelled at shutdown", func() {
			fired := make(chan struct{})
			e.After(20*time.Millisecond, func() { close(fired) })
			e.Shutdown()

			select {
			case <-fired:
				So("timer fired after shutdown", ShouldBeBlank)
			case <-time.After(50 * time.Millisecond):
			}
		})

		Convey("Shutdown closes the surface and ignores later ticks", func() {
			e.Shutdown()
			So(surface.closed, ShouldBeTrue)

			e.Tick(10, 60)
			So(e.Quiz().Phase(), ShouldEqual, quiz.PhaseIdle)
		})
	})
}
