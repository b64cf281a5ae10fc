package playback

import "fmt"

// ErrorKind classifies a surfaced playback failure.
type ErrorKind string

const (
	ErrorNetwork     ErrorKind = "network"
	ErrorDecode      ErrorKind = "decode"
	ErrorUnsupported ErrorKind = "unsupported"
)

// Error is a dismissible, non-fatal playback failure. The session stays in a
// paused, error-annotated state until the error is dismissed; the user may
// retry or dismiss.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("playback %s error: %s", e.Kind, e.Message)
}
