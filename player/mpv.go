package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dfawole/m4tplay/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements the Surface interface using mpv's JSON-IPC protocol.
type MPV struct {
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	mu         sync.Mutex    // Protects socket writes
}

// NewMPV creates a new MPV surface instance (does not start playback).
func NewMPV() *MPV {
	return &MPV{
		exited: make(chan struct{}),
	}
}

// Play starts playback of the given URL in a fresh mpv process.
func (m *MPV) Play(rawURL string, title string) error {
	// Sanitize the URL to prevent flag injection from untrusted lesson manifests
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	safeTitle := sanitizeTitle(title)

	// Generate a random socket path using os.TempDir() for cross-platform support
	// (macOS $TMPDIR is /var/folders/... not /tmp/)
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("m4tplay-%x.sock", randomBytes))
	}

	// Only the socket, title and URL are passed; --vo, --profile and
	// --hwdec stay with the user's mpv.conf.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", safeTitle),
		fmt.Sprintf("--title=%s", safeTitle), // Some mpv builds only respect --title
		"--force-window=yes",
		"--idle=yes",
		safeURL,
	}

	m.cmd = exec.Command("mpv", args...)

	// Detach from parent process group to prevent cascading shell panics.
	m.cmd.SysProcAttr = sysProcAttr()

	// Disable standard pipes to prevent resource leaks.
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Background goroutine to reap the process and prevent zombies
	m.exited = make(chan struct{})
	go func() {
		_ = m.cmd.Wait()
		close(m.exited)
	}()

	if err := m.waitForSocket(); err != nil {
		// If socket never became ready, kill the orphaned process
		if m.cmd.Process != nil {
			select {
			case <-m.exited:
				// Already exited
			default:
				log.Warnf("killing mpv: socket never became ready")
				_ = m.cmd.Process.Kill()
			}
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	return nil
}

// Wait returns a channel that is closed when the mpv process exits.
func (m *MPV) Wait() <-chan struct{} {
	return m.exited
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

// SetPaused sets the playback suspension state.
func (m *MPV) SetPaused(paused bool) error {
	return m.set("pause", paused)
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// SetVolume sets the output volume as a percentage (0-100).
func (m *MPV) SetVolume(percent float64) error {
	return m.set("volume", percent)
}

// SetMuted sets the audio mute state.
func (m *MPV) SetMuted(muted bool) error {
	return m.set("mute", muted)
}

// SetRate sets the playback speed multiplier.
func (m *MPV) SetRate(rate float64) error {
	return m.set("speed", rate)
}

// SetFullscreen requests a fullscreen transition.
func (m *MPV) SetFullscreen(enabled bool) error {
	return m.set("fullscreen", enabled)
}

// SetPictureInPicture approximates picture-in-picture with a compact
// always-on-top window, the closest capability mpv exposes.
func (m *MPV) SetPictureInPicture(enabled bool) error {
	if err := m.set("ontop", enabled); err != nil {
		return err
	}

	scale := 1.0
	if enabled {
		scale = 0.3
	}
	return m.set("window-scale", scale)
}

// SetCaptionsVisible toggles global subtitle visibility.
func (m *MPV) SetCaptionsVisible(visible bool) error {
	return m.set("sub-visibility", visible)
}

// SelectCaptionTrack activates the subtitle track whose language matches the
// given code. An absent language deactivates subtitles; nothing renders and no
// error is raised.
func (m *MPV) SelectCaptionTrack(languageCode string) error {
	sid, found, err := m.findSubtitleTrack(languageCode)
	if err != nil {
		return err
	}

	if !found {
		return m.set("sid", "no")
	}
	return m.set("sid", sid)
}

// findSubtitleTrack scans mpv's track list for a subtitle track with the given
// language code.
func (m *MPV) findSubtitleTrack(languageCode string) (id float64, found bool, err error) {
	data, err := m.sendCommand([]interface{}{"get_property", "track-list"})
	if err != nil {
		return 0, false, fmt.Errorf("track list: %w", err)
	}

	tracks, ok := data.([]interface{})
	if !ok {
		return 0, false, nil
	}

	for _, raw := range tracks {
		track, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}

		kind, _ := track["type"].(string)
		lang, _ := track["lang"].(string)
		if kind != "sub" || !strings.EqualFold(lang, languageCode) {
			continue
		}

		if trackID, ok := track["id"].(float64); ok {
			return trackID, true, nil
		}
	}

	return 0, false, nil
}

// AddCaptionTrack attaches an external subtitle source to the active media.
func (m *MPV) AddCaptionTrack(uri, title, languageCode string) error {
	_, err := m.sendCommand([]interface{}{"sub-add", uri, "auto", title, languageCode})
	return err
}

// SetChapters sets the chapter markers for the current media.
// This provides visual feedback on the mpv timeline.
func (m *MPV) SetChapters(chapters []map[string]interface{}) error {
	return m.set("chapter-list", chapters)
}

// GetTimePos returns the current playback position in seconds.
func (m *MPV) GetTimePos() (float64, error) {
	return m.getFloatProperty("time-pos")
}

// GetDuration returns the total duration of the current media in seconds.
func (m *MPV) GetDuration() (float64, error) {
	return m.getFloatProperty("duration")
}

// GetPausedStatus returns whether playback is currently paused.
func (m *MPV) GetPausedStatus() (bool, error) {
	data, err := m.sendCommand([]interface{}{"get_property", "pause"})
	if err != nil {
		return false, err
	}
	paused, ok := data.(bool)
	if !ok {
		return false, nil
	}
	return paused, nil
}

// IsRunning reports whether mpv is responding to IPC commands.
func (m *MPV) IsRunning() bool {
	if m.socketPath == "" {
		return false
	}

	// Fast check: process already exited?
	select {
	case <-m.exited:
		return false
	default:
	}

	_, err := m.sendCommand([]interface{}{"get_property", "pid"})
	return err == nil
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.socketPath == "" {
		return nil
	}

	// Try graceful quit via IPC
	_, _ = m.sendCommand([]interface{}{"quit"})

	// Wait for process to exit (with timeout)
	select {
	case <-m.exited:
		// Clean exit
	case <-time.After(3 * time.Second):
		// Force kill if graceful quit didn't work
		_ = killProcess(m.cmd)
	}

	_ = os.Remove(m.socketPath)

	return nil
}

// Socket returns the IPC socket path.
func (m *MPV) Socket() string {
	return m.socketPath
}

// set assigns an mpv property via IPC.
func (m *MPV) set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// getFloatProperty is a helper to retrieve a float64 mpv property via IPC.
func (m *MPV) getFloatProperty(name string) (float64, error) {
	data, err := m.sendCommand([]interface{}{"get_property", name})
	if err != nil {
		return 0, err
	}

	if data == nil {
		return 0, fmt.Errorf("property %s: nil response", name)
	}

	val, ok := data.(float64)
	if !ok {
		return 0, fmt.Errorf("property %s: expected float64, got %T", name, data)
	}

	return val, nil
}

// sanitizeMediaTarget validates that a URL is safe to pass to mpv.
// Prevents flag injection from untrusted lesson manifests.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	// Reject control characters
	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// Prevent flag injection: URLs must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	// If it contains "://", validate as URL
	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	// Treat as local file path
	return filepath.Clean(l), nil
}

// sanitizeTitle cleans up the title for mpv
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
