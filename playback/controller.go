package playback

import (
	"fmt"
	"math"

	"github.com/dfawole/m4tplay/log"
	"github.com/dfawole/m4tplay/util"
)

// Rate bounds accepted by playback surfaces.
const (
	MinRate = 0.25
	MaxRate = 2.0
)

// Surface is the slice of the playback capability the controller commands.
// The actual media rendering lives behind it; the controller only owns state.
type Surface interface {
	SetPaused(paused bool) error
	Seek(seconds float64) error
	SetVolume(percent float64) error
	SetMuted(muted bool) error
	SetRate(rate float64) error
	SetFullscreen(enabled bool) error
	SetPictureInPicture(enabled bool) error
}

// Controller owns the playback session and exposes the media operations.
// It never decides trigger matching; that is the scheduler's job on the next
// clock tick.
type Controller struct {
	surface Surface
	session Session
}

// NewController creates a controller over the given surface.
func NewController(surface Surface) *Controller {
	return &Controller{
		surface: surface,
		session: Session{
			Volume: 1,
			Rate:   1,
		},
	}
}

// Session returns a snapshot of the current playback state.
func (c *Controller) Session() Session {
	return c.session
}

// Observe records a clock tick: the current position and, when known, the
// total duration. This is the only path that advances CurrentTime outside of
// an explicit seek.
func (c *Controller) Observe(position, duration float64) {
	if duration > 0 {
		c.session.Duration = duration
	}
	c.session.CurrentTime = util.Clamp(position, 0, maxTime(c.session.Duration))
}

// Play starts playback from a cold or ended state.
func (c *Controller) Play() error {
	if err := c.surface.SetPaused(false); err != nil {
		return fmt.Errorf("play: %w", err)
	}

	c.session.Playing = true
	c.session.PauseReason = PauseNone
	c.session.Ended = false
	return nil
}

// Pause suspends playback and records the reason. A user pause request while
// playback is quiz-paused is rejected: a quiz in progress cannot be silently
// overridden by a manual pause originating from elsewhere. A quiz pause while
// the user already paused keeps the user reason, so a later quiz-context
// resume will not undo the user's decision.
func (c *Controller) Pause(reason PauseReason) error {
	if !c.session.Playing {
		if c.session.PauseReason == PauseQuiz && reason == PauseUser {
			log.Debugf("playback: user pause rejected while quiz-paused")
		}
		return nil
	}

	if err := c.surface.SetPaused(true); err != nil {
		return fmt.Errorf("pause: %w", err)
	}

	c.session.Playing = false
	c.session.PauseReason = reason
	return nil
}

// Resume transitions back to playing only when the caller-supplied resume
// context matches the recorded pause reason. A quiz-context resume after a
// pause the user made before the quiz fired is therefore a no-op.
func (c *Controller) Resume(reason PauseReason) error {
	if c.session.Playing {
		return nil
	}
	if c.session.PauseReason != reason {
		log.Debugf("playback: resume(%s) ignored, paused for %s", reason, c.session.PauseReason)
		return nil
	}

	if err := c.surface.SetPaused(false); err != nil {
		return fmt.Errorf("resume: %w", err)
	}

	c.session.Playing = true
	c.session.PauseReason = PauseNone
	return nil
}

// TogglePlayPause implements the space shortcut: a user pause while playing,
// a user resume while user-paused, an initial play otherwise. A quiz pause is
// never toggled away from here.
func (c *Controller) TogglePlayPause() error {
	switch {
	case c.session.Playing:
		return c.Pause(PauseUser)
	case c.session.PauseReason == PauseUser:
		return c.Resume(PauseUser)
	case c.session.PauseReason == PauseNone:
		return c.Play()
	default:
		return nil
	}
}

// Seek moves the playback position, clamped to [0, duration]. Whether the new
// position triggers a question is decided by the scheduler on the next tick.
func (c *Controller) Seek(position float64) error {
	target := util.Clamp(position, 0, maxTime(c.session.Duration))

	if err := c.surface.Seek(target); err != nil {
		return fmt.Errorf("seek: %w", err)
	}

	c.session.CurrentTime = target
	if c.session.Duration <= 0 || target < c.session.Duration {
		c.session.Ended = false
	}
	return nil
}

// SeekBy moves the playback position relative to the current one.
func (c *Controller) SeekBy(delta float64) error {
	return c.Seek(c.session.CurrentTime + delta)
}

// SetRate sets the playback rate, clamped to the supported range.
func (c *Controller) SetRate(rate float64) error {
	rate = util.Clamp(rate, MinRate, MaxRate)

	if err := c.surface.SetRate(rate); err != nil {
		return fmt.Errorf("set rate: %w", err)
	}

	c.session.Rate = rate
	return nil
}

// SetVolume sets the volume, clamped to [0, 1].
func (c *Controller) SetVolume(volume float64) error {
	volume = util.Clamp(volume, 0.0, 1.0)

	if err := c.surface.SetVolume(volume * 100); err != nil {
		return fmt.Errorf("set volume: %w", err)
	}

	c.session.Volume = volume
	return nil
}

// AdjustVolume applies a clamped delta to the current volume.
func (c *Controller) AdjustVolume(delta float64) error {
	return c.SetVolume(c.session.Volume + delta)
}

// ToggleMute inverts the mute flag.
func (c *Controller) ToggleMute() error {
	muted := !c.session.Muted

	if err := c.surface.SetMuted(muted); err != nil {
		return fmt.Errorf("toggle mute: %w", err)
	}

	c.session.Muted = muted
	return nil
}

// ToggleFullscreen requests a fullscreen transition. The request may be
// rejected by the OS or window manager; rejection is logged and leaves the
// session state unchanged.
func (c *Controller) ToggleFullscreen() {
	target := !c.session.Fullscreen
	if err := c.surface.SetFullscreen(target); err != nil {
		log.Warnf("playback: fullscreen request failed: %v", err)
		return
	}
	c.session.Fullscreen = target
}

// TogglePictureInPicture requests a picture-in-picture transition with the
// same best-effort contract as fullscreen.
func (c *Controller) TogglePictureInPicture() {
	target := !c.session.PictureInPicture
	if err := c.surface.SetPictureInPicture(target); err != nil {
		log.Warnf("playback: picture-in-picture request failed: %v", err)
		return
	}
	c.session.PictureInPicture = target
}

// SetCaptionState mirrors the caption track selection into the session.
func (c *Controller) SetCaptionState(enabled bool, language string) {
	c.session.CaptionsEnabled = enabled
	c.session.SelectedLanguage = language
}

// End marks the media's natural end. This is independent of quiz completion:
// a video can end with unanswered questions still pending.
func (c *Controller) End() {
	c.session.Playing = false
	c.session.PauseReason = PauseNone
	c.session.Ended = true
	if c.session.Duration > 0 {
		c.session.CurrentTime = c.session.Duration
	}
}

// Fail annotates the session with a dismissible playback error and suspends
// playback. The pause is best-effort since a broken surface may not respond.
func (c *Controller) Fail(err *Error) {
	log.Errorf("playback: %v", err)

	if c.session.Playing {
		if pauseErr := c.surface.SetPaused(true); pauseErr != nil {
			log.Warnf("playback: pause on failure: %v", pauseErr)
		}
		c.session.Playing = false
		c.session.PauseReason = PauseUser
	}

	c.session.Err = err
}

// Dismiss clears a surfaced playback error.
func (c *Controller) Dismiss() {
	c.session.Err = nil
}

// maxTime returns the seek upper bound; with an unknown duration the
// position is left unbounded above.
func maxTime(duration float64) float64 {
	if duration <= 0 {
		return math.MaxFloat64
	}
	return duration
}
