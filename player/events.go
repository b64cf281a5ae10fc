package player

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/dfawole/m4tplay/log"
)

// EventCallback receives one mpv property notification.
type EventCallback func(property string, data interface{})

// observedProperties are the mpv properties the listener subscribes to.
// Identifiers are arbitrary but must be unique per connection.
var observedProperties = []struct {
	id   int
	name string
}{
	{1, "time-pos"},
	{2, "pause"},
	{3, "seeking"},
	{4, "eof-reached"},
}

// EventListener streams mpv property changes over a persistent IPC
// connection, as an alternative to polling the control socket.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   EventCallback

	mu        sync.Mutex
	stopCh    chan struct{}
	listening bool
}

// NewEventListener creates a listener for the given control socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		stopCh:     make(chan struct{}),
	}
}

// Start subscribes to the observed properties and begins the read loop.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	for _, prop := range observedProperties {
		if _, err := roundTrip(el.socketPath, []interface{}{"observe_property", prop.id, prop.name}); err != nil {
			return fmt.Errorf("observe %s: %w", prop.name, err)
		}
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event stream connect: %w", err)
	}

	el.conn = conn
	el.listening = true
	go el.readLoop()

	log.Debugf("mpv event stream open on %s", el.socketPath)
	return nil
}

// Stop closes the event stream. The blocked read in the loop unblocks on
// the connection close.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	close(el.stopCh)
	if el.conn != nil {
		el.conn.Close()
	}
	el.listening = false
}

// readLoop consumes newline-delimited JSON frames until the connection
// closes.
func (el *EventListener) readLoop() {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	scanner := bufio.NewScanner(el.conn)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		el.dispatch(line)
	}

	select {
	case <-el.stopCh:
	default:
		if err := scanner.Err(); err != nil {
			log.Warnf("mpv event stream closed: %v", err)
		}
	}
}

// dispatch decodes one event frame and forwards it to the callback.
// Unparseable frames are skipped.
func (el *EventListener) dispatch(line []byte) {
	var frame struct {
		Event string      `json:"event"`
		Name  string      `json:"name"`
		Data  interface{} `json:"data"`
	}

	if err := json.Unmarshal(line, &frame); err != nil || frame.Event == "" {
		return
	}

	if el.callback == nil {
		return
	}

	if frame.Event == "property-change" {
		if frame.Name != "" {
			el.callback(frame.Name, frame.Data)
		}
		return
	}

	// Lifecycle events such as end-file are forwarded under their own name.
	el.callback(frame.Event, frame.Data)
}
