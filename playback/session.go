// Package playback owns the media controller: the playback session state and
// the play/pause/seek/rate/volume operations, with pause-reason tracking so
// that automatic quiz pauses can be resumed without overriding deliberate
// user pauses.
package playback

// PauseReason tags why playback is suspended. It distinguishes an automatic
// quiz-induced pause from a deliberate user pause, which gates correct resume
// behavior.
type PauseReason int

const (
	// PauseNone means playback is not paused for any tracked reason.
	PauseNone PauseReason = iota
	// PauseUser means the user suspended playback deliberately.
	PauseUser
	// PauseQuiz means an active quiz question suspended playback.
	PauseQuiz
)

func (r PauseReason) String() string {
	switch r {
	case PauseUser:
		return "user"
	case PauseQuiz:
		return "quiz"
	default:
		return "none"
	}
}

// Session is the playback state owned by the Controller. Playing and a
// non-none pause reason are mutually exclusive.
type Session struct {
	CurrentTime float64
	Duration    float64
	Playing     bool
	PauseReason PauseReason

	Muted  bool
	Volume float64
	Rate   float64

	Fullscreen       bool
	PictureInPicture bool

	CaptionsEnabled  bool
	SelectedLanguage string

	Ended bool
	Err   *Error
}
