// Package tui provides the terminal lesson-watching interface.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/dfawole/m4tplay/engine"
	"github.com/dfawole/m4tplay/key"
	"github.com/dfawole/m4tplay/lesson"
	"github.com/dfawole/m4tplay/log"
	"github.com/dfawole/m4tplay/player"
	"github.com/dfawole/m4tplay/progress"
)

// Run plays the given lesson inside the Bubble Tea application loop and
// persists its progress on exit.
func Run(l *lesson.Lesson) error {
	surface := player.NewMPV()

	bubble, err := newBubble(surface, l)
	if err != nil {
		return err
	}
	defer bubble.engine.Shutdown()

	if err := bubble.engine.Start(); err != nil {
		return err
	}

	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()

	saveProgress(l, bubble.engine)
	return err
}

// saveProgress persists the run's outcome when progress saving is enabled.
func saveProgress(l *lesson.Lesson, e *engine.Engine) {
	if !viper.GetBool(key.ProgressSaveOnWatch) {
		return
	}

	if err := progress.Save(l, e.WatchedPercentage(), e.Quiz().Score(), e.Bookmarks()); err != nil {
		log.Warnf("tui: save progress: %v", err)
	}
}

// RunHeadless plays the lesson without a terminal interface, driven by a poll
// clock, until the player process exits. Quiz questions still pause playback;
// they are answered through the player window being closed or skipped by
// seeking, so headless mode is meant for lessons without a schedule.
func RunHeadless(l *lesson.Lesson) error {
	surface := player.NewMPV()

	e, err := engine.New(surface, engine.OptionsFromLesson(l), engine.Callbacks{})
	if err != nil {
		return err
	}
	defer e.Shutdown()

	if err := e.Start(); err != nil {
		return err
	}

	if err := e.Attach(newClock(surface)); err != nil {
		return err
	}

	<-surface.Wait()

	saveProgress(l, e)
	return nil
}

// newClock builds the configured clock adapter, falling back to polling
// when the configured value is unknown.
func newClock(surface *player.MPV) player.Clock {
	switch adapter := viper.GetString(key.PlayerClock); adapter {
	case "event":
		return player.NewEventClock(surface)
	case "poll":
		return player.NewPollClock(surface, 0)
	default:
		log.Warnf("tui: unknown clock adapter %q, polling instead", adapter)
		return player.NewPollClock(surface, 0)
	}
}
