// Package player defines the playback surface abstraction and its mpv-backed
// implementation. The engine treats the surface as an external capability: it
// consumes a time-position stream and issues play/pause/seek/volume/rate
// commands, while decoding and rendering stay entirely on the other side of
// the IPC boundary.
package player

// Surface encapsulates the required capabilities of a media playback backend.
type Surface interface {
	// Play starts playback of the given URL with the specified title.
	Play(url string, title string) error

	// SetPaused sets the playback suspension state.
	SetPaused(paused bool) error

	// Seek transitions the playback position to a specific absolute timestamp in seconds.
	Seek(seconds float64) error

	// SetVolume sets the output volume as a percentage (0-100).
	SetVolume(percent float64) error

	// SetMuted sets the audio mute state.
	SetMuted(muted bool) error

	// SetRate sets the playback speed multiplier.
	SetRate(rate float64) error

	// SetFullscreen requests a fullscreen transition. May be rejected by the OS.
	SetFullscreen(enabled bool) error

	// SetPictureInPicture requests a compact always-on-top window. Best-effort.
	SetPictureInPicture(enabled bool) error

	// SetCaptionsVisible toggles global caption visibility.
	SetCaptionsVisible(visible bool) error

	// SelectCaptionTrack activates the caption track matching the language code.
	// An absent language deactivates captions without error.
	SelectCaptionTrack(languageCode string) error

	// AddCaptionTrack attaches an external caption source to the active media.
	AddCaptionTrack(uri, title, languageCode string) error

	// SetChapters pushes chapter markers for visual feedback on the timeline.
	SetChapters(chapters []map[string]interface{}) error

	// GetTimePos retrieves the current absolute playback position in seconds.
	GetTimePos() (float64, error)

	// GetDuration retrieves the total temporal length of the active media file in seconds.
	GetDuration() (float64, error)

	// GetPausedStatus retrieves the current suspension state of the playback engine.
	GetPausedStatus() (bool, error)

	// IsRunning validates the liveness of the underlying playback process or handler.
	IsRunning() bool

	// Wait returns a channel that is closed when the playback session terminates.
	Wait() <-chan struct{}

	// Close terminates the playback engine and releases all associated system resources.
	Close() error
}
