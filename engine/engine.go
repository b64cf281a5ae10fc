// Package engine orchestrates one lesson run: it feeds the playback clock
// into the quiz scheduler, drives the media controller around active
// questions and owns the lifetime of everything scoped to the run. All state
// transitions happen on the cooperative tick path or in response to a
// resolved input command; the engine itself spawns no goroutines beyond the
// timers it cancels on shutdown.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/dfawole/m4tplay/log"
	"github.com/dfawole/m4tplay/playback"
	"github.com/dfawole/m4tplay/player"
	"github.com/dfawole/m4tplay/quiz"
	"github.com/dfawole/m4tplay/timeline"
)

// Engine wires the playback surface, the media controller, the quiz state
// machine and the timeline collections of a single lesson run.
type Engine struct {
	surface  player.Surface
	options  Options
	callback Callbacks

	controller *playback.Controller
	session    *quiz.Session
	scheduler  *quiz.Scheduler
	chapters   timeline.Chapters
	bookmarks  *timeline.BookmarkList
	captions   *timeline.CaptionTrackSet

	clock player.Clock

	endFired bool
	closed   bool

	timerMu sync.Mutex
	timers  []*time.Timer
}

// quizGate adapts the media controller to the quiz session's pause surface.
// Quiz-context transitions go through it so the pause reason precedence in
// the controller stays authoritative.
type quizGate struct {
	controller *playback.Controller
}

func (g *quizGate) PauseForQuiz() {
	if err := g.controller.Pause(playback.PauseQuiz); err != nil {
		log.Warnf("engine: quiz pause failed: %v", err)
	}
}

func (g *quizGate) ResumeAfterQuiz() {
	if err := g.controller.Resume(playback.PauseQuiz); err != nil {
		log.Warnf("engine: quiz resume failed: %v", err)
	}
}

// New validates the question schedule and assembles a run. Validation happens
// here so a malformed question fails the run before any media is opened.
func New(surface player.Surface, options Options, callbacks Callbacks) (*Engine, error) {
	if err := quiz.ValidateQuestions(options.Questions); err != nil {
		return nil, fmt.Errorf("question schedule: %w", err)
	}

	e := &Engine{
		surface:  surface,
		options:  options,
		callback: callbacks,
	}

	e.controller = playback.NewController(surface)

	answered := quiz.NewAnsweredSet()
	e.scheduler = quiz.NewScheduler(options.Questions, answered)
	e.session = quiz.NewSession(
		options.Questions,
		answered,
		&quizGate{controller: e.controller},
		quiz.WithAutoStop(options.AutoStopOnQuiz),
		quiz.WithEvents(quiz.Events{
			QuestionAnswered: callbacks.OnQuestionAnswered,
			SessionComplete:  callbacks.OnSessionComplete,
		}),
	)

	e.chapters = timeline.NewChapters(options.Chapters)

	e.bookmarks = timeline.NewBookmarkList(nil, timeline.WithBookmarkEvents(timeline.BookmarkEvents{
		Added:   callbacks.OnAddBookmark,
		Removed: callbacks.OnRemoveBookmark,
	}))

	e.captions = timeline.NewCaptionTrackSet(options.Tracks, func(track timeline.CaptionTrack, showing bool) {
		if !showing {
			return
		}
		if err := surface.SelectCaptionTrack(track.LanguageCode); err != nil {
			log.Warnf("engine: select caption track %s: %v", track.LanguageCode, err)
		}
	})

	return e, nil
}

// Locked reports whether the lesson requires a subscription the viewer does
// not have. A locked run renders its media, but every control is inert.
func (e *Engine) Locked() bool {
	return e.options.RequiresSubscription && !e.options.IsSubscribed
}

// Start opens the media on the surface and pushes the lesson's chapters and
// caption tracks to it.
func (e *Engine) Start() error {
	if err := e.surface.Play(e.options.Source, e.options.Title); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	e.controller.Observe(0, 0)
	if err := e.controller.Play(); err != nil {
		log.Warnf("engine: initial play: %v", err)
	}

	if len(e.chapters) > 0 {
		markers := make([]map[string]interface{}, 0, len(e.chapters))
		for _, chapter := range e.chapters {
			markers = append(markers, map[string]interface{}{
				"time":  chapter.Time,
				"title": chapter.Title,
			})
		}
		if err := e.surface.SetChapters(markers); err != nil {
			log.Warnf("engine: push chapters: %v", err)
		}
	}

	for _, track := range e.options.Tracks {
		if err := e.surface.AddCaptionTrack(track.SourceURI, track.Label, track.LanguageCode); err != nil {
			log.Warnf("engine: add caption track %s: %v", track.LanguageCode, err)
		}
	}

	// Captions start hidden; the default language is only preselected so a
	// later toggle shows the right track immediately.
	if err := e.surface.SetCaptionsVisible(false); err != nil {
		log.Warnf("engine: hide captions: %v", err)
	}
	if e.options.SelectedLanguage != "" {
		e.captions.SelectLanguage(e.options.SelectedLanguage)
	}
	e.controller.SetCaptionState(e.captions.Enabled(), e.captions.Selected())

	log.Infof("engine: started lesson %q (%d questions, %d chapters, %d tracks)",
		e.options.Title, len(e.options.Questions), len(e.chapters), len(e.options.Tracks))

	return nil
}

// Attach starts the given clock and routes its ticks into the engine.
func (e *Engine) Attach(clock player.Clock) error {
	e.clock = clock
	return clock.Start(e.Tick)
}

// Tick advances the run to the given playback position. It records the
// observation, detects the media's natural end and consults the scheduler,
// but only while no question is active: the single-flight guard lives here.
func (e *Engine) Tick(position, duration float64) {
	if e.closed {
		return
	}

	e.controller.Observe(position, duration)

	if duration > 0 && position >= duration && !e.endFired {
		e.endFired = true
		e.controller.End()
		log.Infof("engine: playback ended at %v", duration)
		if e.callback.OnPlaybackEnded != nil {
			e.callback.OnPlaybackEnded()
		}
	}

	if e.session.Phase() != quiz.PhaseIdle {
		return
	}

	if question, due := e.scheduler.Evaluate(e.controller.Session().CurrentTime); due {
		e.session.Activate(question)
	}
}

// Playback returns a snapshot of the playback session state.
func (e *Engine) Playback() playback.Session {
	return e.controller.Session()
}

// Quiz returns the question state machine.
func (e *Engine) Quiz() *quiz.Session {
	return e.session
}

// TogglePlayPause forwards the space shortcut to the controller.
func (e *Engine) TogglePlayPause() error {
	return e.controller.TogglePlayPause()
}

// SeekBy moves the position by the configured step in the given direction.
func (e *Engine) SeekBy(direction float64) error {
	return e.controller.SeekBy(direction * e.options.SeekStep)
}

// SeekTo moves the position to an absolute timestamp.
func (e *Engine) SeekTo(position float64) error {
	return e.controller.Seek(position)
}

// AdjustVolume applies the configured volume step in the given direction.
func (e *Engine) AdjustVolume(direction float64) error {
	return e.controller.AdjustVolume(direction * e.options.VolumeStep)
}

// SetRate forwards a playback rate change.
func (e *Engine) SetRate(rate float64) error {
	return e.controller.SetRate(rate)
}

// ToggleMute forwards a mute toggle.
func (e *Engine) ToggleMute() error {
	return e.controller.ToggleMute()
}

// ToggleFullscreen forwards a best-effort fullscreen toggle.
func (e *Engine) ToggleFullscreen() {
	e.controller.ToggleFullscreen()
}

// TogglePictureInPicture forwards a best-effort picture-in-picture toggle.
func (e *Engine) TogglePictureInPicture() {
	e.controller.TogglePictureInPicture()
}

// ToggleCaptions flips global caption visibility on the surface and in the
// track set.
func (e *Engine) ToggleCaptions() {
	enabled := !e.captions.Enabled()

	if err := e.surface.SetCaptionsVisible(enabled); err != nil {
		log.Warnf("engine: caption visibility: %v", err)
		return
	}

	e.captions.SetEnabled(enabled)
	e.controller.SetCaptionState(enabled, e.captions.Selected())
}

// SelectCaptionLanguage switches the caption language. An absent language is
// a legal selection that shows nothing.
func (e *Engine) SelectCaptionLanguage(code string) {
	e.captions.SelectLanguage(code)
	e.controller.SetCaptionState(e.captions.Enabled(), code)
}

// Captions returns the caption track selection state.
func (e *Engine) Captions() *timeline.CaptionTrackSet {
	return e.captions
}

// CurrentChapter returns the chapter covering the current position, if any.
func (e *Engine) CurrentChapter() (timeline.Chapter, bool) {
	return e.chapters.Current(e.controller.Session().CurrentTime)
}

// Chapters returns the lesson's chapter markers in ascending order.
func (e *Engine) Chapters() timeline.Chapters {
	return e.chapters
}

// AddBookmark creates a bookmark at the current playback position.
func (e *Engine) AddBookmark(label string) timeline.Bookmark {
	return e.bookmarks.Add(e.controller.Session().CurrentTime, label)
}

// RemoveBookmark deletes a bookmark by id.
func (e *Engine) RemoveBookmark(id string) bool {
	return e.bookmarks.Remove(id)
}

// SeekToBookmark jumps to the position of the given bookmark.
func (e *Engine) SeekToBookmark(id string) error {
	bookmark, ok := e.bookmarks.Get(id)
	if !ok {
		return fmt.Errorf("unknown bookmark %s", id)
	}
	return e.controller.Seek(bookmark.Time)
}

// Bookmarks returns the user's bookmarks in creation order.
func (e *Engine) Bookmarks() []timeline.Bookmark {
	return e.bookmarks.All()
}

// SelectOption records an answer selection on the active question by its
// zero-based display index.
func (e *Engine) SelectOption(index int) bool {
	question, active := e.session.Active()
	if !active || index < 0 || index >= len(question.Options) {
		return false
	}
	return e.session.SelectOption(question.Options[index].ID)
}

// SubmitAnswer scores the current selection.
func (e *Engine) SubmitAnswer() bool {
	return e.session.Submit()
}

// ContinueQuiz dismisses a resolved question and resumes playback.
func (e *Engine) ContinueQuiz() bool {
	return e.session.Continue()
}

// WatchedPercentage reports how much of the media has been reached.
func (e *Engine) WatchedPercentage() float64 {
	session := e.controller.Session()
	if session.Duration <= 0 {
		return 0
	}
	return session.CurrentTime / session.Duration * 100
}

// After schedules fn on a run-scoped timer. Timers are cancelled at shutdown
// so a pending toast or delayed action never outlives the run.
func (e *Engine) After(d time.Duration, fn func()) *time.Timer {
	timer := time.AfterFunc(d, fn)

	e.timerMu.Lock()
	e.timers = append(e.timers, timer)
	e.timerMu.Unlock()

	return timer
}

// Fail surfaces a playback error on the session.
func (e *Engine) Fail(kind playback.ErrorKind, message string) {
	e.controller.Fail(&playback.Error{Kind: kind, Message: message})
}

// DismissError clears a surfaced playback error.
func (e *Engine) DismissError() {
	e.controller.Dismiss()
}

// Shutdown tears the run down: the clock stops, scoped timers are cancelled
// and the surface is closed. Safe to call more than once.
func (e *Engine) Shutdown() {
	if e.closed {
		return
	}
	e.closed = true

	if e.clock != nil {
		e.clock.Stop()
	}

	e.timerMu.Lock()
	for _, timer := range e.timers {
		timer.Stop()
	}
	e.timers = nil
	e.timerMu.Unlock()

	if err := e.surface.Close(); err != nil {
		log.Warnf("engine: close surface: %v", err)
	}
}
