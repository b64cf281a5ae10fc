package input

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dfawole/m4tplay/log"
)

// Action identifies the operation a key press resolves to.
type Action int

const (
	ActionNone Action = iota
	ActionTogglePlay
	ActionSeekForward
	ActionSeekBackward
	ActionVolumeUp
	ActionVolumeDown
	ActionToggleMute
	ActionToggleFullscreen
	ActionToggleCaptions
	ActionAddBookmark
	ActionOpenExternal
	ActionSelectOption
	ActionConfirm
	ActionToggleHelp
	ActionQuit
)

// Command is a resolved key press. OptionIndex is meaningful only for
// ActionSelectOption and is zero-based.
type Command struct {
	Action      Action
	OptionIndex int
}

// Dispatcher resolves key presses into commands, enforcing two gates:
// a subscription lock that silences all playback controls, and an
// active quiz overlay that suspends transport keys while it is shown.
type Dispatcher struct {
	keymap        *Keymap
	locked        bool
	overlayActive bool
}

func NewDispatcher(keymap *Keymap) *Dispatcher {
	return &Dispatcher{keymap: keymap}
}

// SetLocked engages or releases the subscription lock. While locked,
// every playback control resolves to ActionNone.
func (d *Dispatcher) SetLocked(locked bool) {
	d.locked = locked
}

// SetOverlayActive reflects whether a quiz overlay currently owns the
// screen. Transport keys are suspended while it does.
func (d *Dispatcher) SetOverlayActive(active bool) {
	d.overlayActive = active
}

func (d *Dispatcher) Locked() bool {
	return d.locked
}

// Resolve maps a key message to a command, applying the gates.
// Quit and help always resolve regardless of state.
func (d *Dispatcher) Resolve(msg tea.KeyMsg) Command {
	k := d.keymap

	switch {
	case key.Matches(msg, k.quit), key.Matches(msg, k.forceQuit):
		return Command{Action: ActionQuit}
	case key.Matches(msg, k.showHelp):
		return Command{Action: ActionToggleHelp}
	}

	if d.overlayActive {
		return d.resolveOverlay(msg)
	}

	if d.locked {
		log.Debugf("input %q ignored: lesson is locked", msg.String())
		return Command{Action: ActionNone}
	}

	switch {
	case key.Matches(msg, k.playPause):
		return Command{Action: ActionTogglePlay}
	case key.Matches(msg, k.seekForward):
		return Command{Action: ActionSeekForward}
	case key.Matches(msg, k.seekBackward):
		return Command{Action: ActionSeekBackward}
	case key.Matches(msg, k.volumeUp):
		return Command{Action: ActionVolumeUp}
	case key.Matches(msg, k.volumeDown):
		return Command{Action: ActionVolumeDown}
	case key.Matches(msg, k.mute):
		return Command{Action: ActionToggleMute}
	case key.Matches(msg, k.fullscreen):
		return Command{Action: ActionToggleFullscreen}
	case key.Matches(msg, k.captions):
		if !k.captionsAvailable {
			return Command{Action: ActionNone}
		}
		return Command{Action: ActionToggleCaptions}
	case key.Matches(msg, k.bookmark):
		if !k.subscribed {
			return Command{Action: ActionNone}
		}
		return Command{Action: ActionAddBookmark}
	case key.Matches(msg, k.openExternal):
		return Command{Action: ActionOpenExternal}
	}

	return Command{Action: ActionNone}
}

// resolveOverlay handles keys while a quiz overlay is showing. Only
// answer selection and confirmation are live; transport keys and
// bookmarks are suspended until the overlay is dismissed.
func (d *Dispatcher) resolveOverlay(msg tea.KeyMsg) Command {
	k := d.keymap

	switch {
	case key.Matches(msg, k.confirm):
		return Command{Action: ActionConfirm}
	case key.Matches(msg, k.option):
		s := msg.String()
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			return Command{Action: ActionSelectOption, OptionIndex: int(s[0] - '1')}
		}
	}

	return Command{Action: ActionNone}
}

// ShortHelp implements help.KeyMap for the footer.
func (d *Dispatcher) ShortHelp() []key.Binding {
	if d.overlayActive {
		return d.keymap.quizHelp()
	}

	if d.locked {
		return []key.Binding{d.keymap.quit}
	}

	return d.keymap.playbackHelp()
}

// FullHelp implements help.KeyMap.
func (d *Dispatcher) FullHelp() [][]key.Binding {
	return [][]key.Binding{d.ShortHelp()}
}

var _ help.KeyMap = (*Dispatcher)(nil)
