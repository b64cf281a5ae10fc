// Package input translates keyboard events into playback and quiz actions,
// applying subscription and overlay gating before anything reaches the engine.
package input

import (
	"github.com/charmbracelet/bubbles/key"
)

// Keymap defines the keyboard interactions available during a lesson.
type Keymap struct {
	quit, forceQuit,
	playPause,
	seekForward, seekBackward,
	volumeUp, volumeDown,
	mute,
	fullscreen,
	captions,
	bookmark,
	openExternal,
	confirm,
	option,
	showHelp key.Binding

	captionsAvailable bool
	subscribed        bool
}

func NewKeymap() *Keymap {
	return &Keymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		seekForward: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "seek forward"),
		),
		seekBackward: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "seek back"),
		),
		volumeUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "volume up"),
		),
		volumeDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "volume down"),
		),
		mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		fullscreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fullscreen"),
		),
		captions: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "captions"),
		),
		bookmark: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "bookmark"),
		),
		openExternal: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open source"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		option: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "choose answer"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// SetCaptionsAvailable enables the captions binding. A lesson with no
// caption tracks never exposes the toggle.
func (k *Keymap) SetCaptionsAvailable(available bool) {
	k.captionsAvailable = available
}

// SetSubscribed enables the bookmark binding, which is a subscriber feature.
func (k *Keymap) SetSubscribed(subscribed bool) {
	k.subscribed = subscribed
}

func (k *Keymap) playbackHelp() []key.Binding {
	bindings := []key.Binding{k.playPause, k.seekBackward, k.seekForward, k.volumeUp, k.volumeDown, k.mute, k.fullscreen}

	if k.captionsAvailable {
		bindings = append(bindings, k.captions)
	}

	if k.subscribed {
		bindings = append(bindings, k.bookmark)
	}

	return append(bindings, k.openExternal, k.quit)
}

func (k *Keymap) quizHelp() []key.Binding {
	return []key.Binding{k.option, k.confirm}
}
