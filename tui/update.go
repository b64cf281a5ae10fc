package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dfawole/m4tplay/input"
	"github.com/dfawole/m4tplay/log"
	"github.com/dfawole/m4tplay/open"
	"github.com/dfawole/m4tplay/quiz"
)

func (b *lessonBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height
		b.progressC.Width = msg.Width - 4
		b.helpC.Width = msg.Width
		return b, nil

	case tickMsg:
		return b.handleTick()

	case tea.KeyMsg:
		return b.handleKey(msg)
	}

	return b, nil
}

// handleTick polls the playback surface and advances the engine. This is the
// only clock path in the interface; every trigger decision happens here.
func (b *lessonBubble) handleTick() (tea.Model, tea.Cmd) {
	if b.quitting {
		return b, tea.Quit
	}

	if !b.surface.IsRunning() {
		// The player window was closed out from under us.
		b.quitting = true
		return b, tea.Quit
	}

	position, err := b.surface.GetTimePos()
	if err == nil {
		duration, derr := b.surface.GetDuration()
		if derr != nil {
			duration = 0
		}
		b.engine.Tick(position, duration)
	}

	if b.toast != "" && time.Now().After(b.toastUntil) {
		b.toast = ""
	}

	return b, tick()
}

func (b *lessonBubble) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b.dispatcher.SetOverlayActive(b.engine.Quiz().Phase() != quiz.PhaseIdle)

	command := b.dispatcher.Resolve(msg)

	switch command.Action {
	case input.ActionQuit:
		b.quitting = true
		return b, tea.Quit

	case input.ActionToggleHelp:
		b.showFullHelp = !b.showFullHelp
		b.helpC.ShowAll = b.showFullHelp

	case input.ActionTogglePlay:
		b.must(b.engine.TogglePlayPause())

	case input.ActionSeekForward:
		b.must(b.engine.SeekBy(1))

	case input.ActionSeekBackward:
		b.must(b.engine.SeekBy(-1))

	case input.ActionVolumeUp:
		b.must(b.engine.AdjustVolume(1))

	case input.ActionVolumeDown:
		b.must(b.engine.AdjustVolume(-1))

	case input.ActionToggleMute:
		b.must(b.engine.ToggleMute())

	case input.ActionToggleFullscreen:
		b.engine.ToggleFullscreen()

	case input.ActionToggleCaptions:
		b.engine.ToggleCaptions()

	case input.ActionAddBookmark:
		b.engine.AddBookmark("")

	case input.ActionOpenExternal:
		if strings.HasPrefix(b.source, "http://") || strings.HasPrefix(b.source, "https://") {
			b.must(open.Start(b.source))
		} else {
			b.showToast("Local media has no external page")
		}

	case input.ActionSelectOption:
		b.engine.SelectOption(command.OptionIndex)

	case input.ActionConfirm:
		b.handleConfirm()
	}

	return b, nil
}

// handleConfirm advances the quiz overlay: a first enter submits the current
// selection, a second one dismisses the outcome and resumes playback.
func (b *lessonBubble) handleConfirm() {
	switch b.engine.Quiz().Phase() {
	case quiz.PhaseTriggered:
		b.engine.SubmitAnswer()
	case quiz.PhaseResolved:
		b.engine.ContinueQuiz()
	}
}

// must surfaces controller errors as transient notices instead of crashing
// the interface; a failed surface command is recoverable.
func (b *lessonBubble) must(err error) {
	if err != nil {
		log.Warnf("tui: %v", err)
		b.showToast(err.Error())
	}
}
