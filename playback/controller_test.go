package playback

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// fakeSurface records surface commands and can simulate failures.
type fakeSurface struct {
	paused     bool
	seekedTo   float64
	volume     float64
	muted      bool
	rate       float64
	fullscreen bool
	pip        bool

	failFullscreen bool
	failPip        bool
}

func (s *fakeSurface) SetPaused(paused bool) error { s.paused = paused; return nil }
func (s *fakeSurface) Seek(seconds float64) error  { s.seekedTo = seconds; return nil }
func (s *fakeSurface) SetVolume(p float64) error   { s.volume = p; return nil }
func (s *fakeSurface) SetMuted(m bool) error       { s.muted = m; return nil }
func (s *fakeSurface) SetRate(r float64) error     { s.rate = r; return nil }

func (s *fakeSurface) SetFullscreen(enabled bool) error {
	if s.failFullscreen {
		return errors.New("window manager refused")
	}
	s.fullscreen = enabled
	return nil
}

func (s *fakeSurface) SetPictureInPicture(enabled bool) error {
	if s.failPip {
		return errors.New("no pip support")
	}
	s.pip = enabled
	return nil
}

func newPlaying(surface *fakeSurface) *Controller {
	c := NewController(surface)
	c.Observe(0, 40)
	_ = c.Play()
	return c
}

func TestPauseReasons(t *testing.T) {
	Convey("Given a playing controller", t, func() {
		surface := &fakeSurface{}
		c := newPlaying(surface)
		So(c.Session().Playing, ShouldBeTrue)

		Convey("A quiz pause records its reason", func() {
			So(c.Pause(PauseQuiz), ShouldBeNil)
			So(c.Session().Playing, ShouldBeFalse)
			So(c.Session().PauseReason, ShouldEqual, PauseQuiz)
			So(surface.paused, ShouldBeTrue)

			Convey("A user pause cannot override a quiz pause", func() {
				So(c.Pause(PauseUser), ShouldBeNil)
				So(c.Session().PauseReason, ShouldEqual, PauseQuiz)
			})

			Convey("A quiz-context resume succeeds", func() {
				So(c.Resume(PauseQuiz), ShouldBeNil)
				So(c.Session().Playing, ShouldBeTrue)
				So(c.Session().PauseReason, ShouldEqual, PauseNone)
			})

			Convey("A user-context resume is ignored", func() {
				So(c.Resume(PauseUser), ShouldBeNil)
				So(c.Session().Playing, ShouldBeFalse)
			})
		})

		Convey("A user pause before the quiz fires survives quiz continue", func() {
			So(c.Pause(PauseUser), ShouldBeNil)
			So(c.Session().PauseReason, ShouldEqual, PauseUser)

			// Quiz activates while user-paused: reason must not be overwritten.
			So(c.Pause(PauseQuiz), ShouldBeNil)
			So(c.Session().PauseReason, ShouldEqual, PauseUser)

			// Quiz continue resumes with quiz context: stays paused.
			So(c.Resume(PauseQuiz), ShouldBeNil)
			So(c.Session().Playing, ShouldBeFalse)

			// The user can still resume deliberately.
			So(c.Resume(PauseUser), ShouldBeNil)
			So(c.Session().Playing, ShouldBeTrue)
		})
	})
}

func TestTogglePlayPause(t *testing.T) {
	Convey("TogglePlayPause", t, func() {
		surface := &fakeSurface{}
		c := newPlaying(surface)

		Convey("Toggles between playing and user-paused", func() {
			So(c.TogglePlayPause(), ShouldBeNil)
			So(c.Session().PauseReason, ShouldEqual, PauseUser)

			So(c.TogglePlayPause(), ShouldBeNil)
			So(c.Session().Playing, ShouldBeTrue)
		})

		Convey("Never resumes a quiz pause", func() {
			_ = c.Pause(PauseQuiz)
			So(c.TogglePlayPause(), ShouldBeNil)
			So(c.Session().Playing, ShouldBeFalse)
			So(c.Session().PauseReason, ShouldEqual, PauseQuiz)
		})
	})
}

func TestSeek(t *testing.T) {
	Convey("Seek clamps to the known duration", t, func() {
		surface := &fakeSurface{}
		c := newPlaying(surface)

		So(c.Seek(100), ShouldBeNil)
		So(c.Session().CurrentTime, ShouldEqual, 40)

		So(c.Seek(-3), ShouldBeNil)
		So(c.Session().CurrentTime, ShouldEqual, 0)
		So(surface.seekedTo, ShouldEqual, 0)

		Convey("SeekBy is relative", func() {
			_ = c.Seek(20)
			So(c.SeekBy(-10), ShouldBeNil)
			So(c.Session().CurrentTime, ShouldEqual, 10)
		})

		Convey("Seeking back clears the ended flag", func() {
			c.End()
			So(c.Session().Ended, ShouldBeTrue)
			So(c.Seek(5), ShouldBeNil)
			So(c.Session().Ended, ShouldBeFalse)
		})
	})
}

func TestVolumeRateMute(t *testing.T) {
	Convey("Volume, rate and mute", t, func() {
		surface := &fakeSurface{}
		c := newPlaying(surface)

		Convey("Volume clamps to [0,1] and maps to surface percent", func() {
			So(c.SetVolume(1.4), ShouldBeNil)
			So(c.Session().Volume, ShouldEqual, 1.0)
			So(surface.volume, ShouldEqual, 100.0)

			So(c.AdjustVolume(-0.1), ShouldBeNil)
			So(c.Session().Volume, ShouldAlmostEqual, 0.9, 1e-9)
		})

		Convey("Rate clamps to the supported range", func() {
			So(c.SetRate(5), ShouldBeNil)
			So(c.Session().Rate, ShouldEqual, MaxRate)

			So(c.SetRate(0.01), ShouldBeNil)
			So(c.Session().Rate, ShouldEqual, MinRate)
		})

		Convey("Mute toggles", func() {
			So(c.ToggleMute(), ShouldBeNil)
			So(c.Session().Muted, ShouldBeTrue)
			So(c.ToggleMute(), ShouldBeNil)
			So(c.Session().Muted, ShouldBeFalse)
		})
	})
}

func TestBestEffortWindowOps(t *testing.T) {
	Convey("Fullscreen and picture-in-picture are best-effort", t, func() {
		surface := &fakeSurface{failFullscreen: true, failPip: true}
		c := newPlaying(surface)

		c.ToggleFullscreen()
		So(c.Session().Fullscreen, ShouldBeFalse)

		c.TogglePictureInPicture()
		So(c.Session().PictureInPicture, ShouldBeFalse)

		Convey("And succeed when the surface accepts", func() {
			surface.failFullscreen = false
			c.ToggleFullscreen()
			So(c.Session().Fullscreen, ShouldBeTrue)
		})
	})
}

func TestFailAndDismiss(t *testing.T) {
	Convey("A playback error annotates a paused session until dismissed", t, func() {
		surface := &fakeSurface{}
		c := newPlaying(surface)

		c.Fail(&Error{Kind: ErrorNetwork, Message: "segment fetch timed out"})
		session := c.Session()
		So(session.Playing, ShouldBeFalse)
		So(session.Err, ShouldNotBeNil)
		So(session.Err.Kind, ShouldEqual, ErrorNetwork)

		c.Dismiss()
		So(c.Session().Err, ShouldBeNil)
	})
}

func TestEndIsSeparateFromQuizState(t *testing.T) {
	Convey("End marks natural playback end", t, func() {
		surface := &fakeSurface{}
		c := newPlaying(surface)

		c.End()
		session := c.Session()
		So(session.Ended, ShouldBeTrue)
		So(session.Playing, ShouldBeFalse)
		So(session.PauseReason, ShouldEqual, PauseNone)
		So(session.CurrentTime, ShouldEqual, session.Duration)
	})
}
