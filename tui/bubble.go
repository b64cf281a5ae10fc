package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"

	"github.com/dfawole/m4tplay/engine"
	"github.com/dfawole/m4tplay/input"
	"github.com/dfawole/m4tplay/lesson"
	"github.com/dfawole/m4tplay/player"
	"github.com/dfawole/m4tplay/timeline"
)

// tickInterval is the cadence of the cooperative clock driving the engine.
// It stays well inside the question trigger window so a due question is never
// missed between observations.
const tickInterval = 200 * time.Millisecond

// toastDuration is how long transient notices stay on screen.
const toastDuration = 3 * time.Second

// tickMsg carries one cooperative clock beat.
type tickMsg time.Time

// lessonBubble holds the watching interface state. All engine mutation
// happens inside Update, so the single-owner model of the engine holds.
type lessonBubble struct {
	surface    player.Surface
	source     string
	engine     *engine.Engine
	dispatcher *input.Dispatcher
	keymap     *input.Keymap

	progressC progress.Model
	helpC     help.Model

	width, height int
	showFullHelp  bool

	toast      string
	toastUntil time.Time

	finalScore mo.Option[[2]int]
	quitting   bool
}

func newBubble(surface player.Surface, l *lesson.Lesson) (*lessonBubble, error) {
	options := engine.OptionsFromLesson(l)

	keymap := input.NewKeymap()
	keymap.SetCaptionsAvailable(len(options.Tracks) > 0)
	keymap.SetSubscribed(!options.RequiresSubscription || options.IsSubscribed)

	dispatcher := input.NewDispatcher(keymap)

	b := &lessonBubble{
		surface:    surface,
		source:     l.Source,
		dispatcher: dispatcher,
		keymap:     keymap,
		progressC:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		helpC:      help.New(),
	}

	e, err := engine.New(surface, options, engine.Callbacks{
		OnSessionComplete: func(score, total int) {
			b.finalScore = mo.Some([2]int{score, total})
		},
		OnPlaybackEnded: func() {
			b.showToast("Lesson finished")
		},
		OnAddBookmark: func(bookmark timeline.Bookmark) {
			b.showToast("Bookmarked " + bookmark.Label)
		},
		OnRemoveBookmark: func(id string) {
			b.showToast("Bookmark removed")
		},
	})
	if err != nil {
		return nil, err
	}

	b.engine = e
	dispatcher.SetLocked(e.Locked())
	return b, nil
}

func (b *lessonBubble) showToast(text string) {
	b.toast = text
	b.toastUntil = time.Now().Add(toastDuration)
}

func (b *lessonBubble) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
