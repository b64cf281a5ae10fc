package player

import (
	"sync"
	"time"

	"github.com/dfawole/m4tplay/log"
)

// TickFunc receives playback position and total duration in seconds.
type TickFunc func(position, duration float64)

// Clock is the capability a playback source must provide to drive the
// engine: a periodic report of the current position and duration. It is
// satisfied both by polling the player over IPC and by its event stream.
type Clock interface {
	Start(onTick TickFunc) error
	Stop()
}

// PollClock reports position by polling the player at a fixed interval.
type PollClock struct {
	player   *MPV
	interval time.Duration
	stopCh   chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewPollClock creates a poll-based clock. A non-positive interval
// defaults to 500ms, which keeps the overlay window reliable.
func NewPollClock(player *MPV, interval time.Duration) *PollClock {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}

	return &PollClock{
		player:   player,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

func (c *PollClock) Start(onTick TickFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}
	c.running = true

	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-c.stopCh:
				return
			case <-ticker.C:
				if !c.player.IsRunning() {
					return
				}

				position, err := c.player.GetTimePos()
				if err != nil {
					continue
				}

				duration, err := c.player.GetDuration()
				if err != nil {
					continue
				}

				onTick(position, duration)
			}
		}
	}()

	log.Debugf("poll clock started (interval %s)", c.interval)
	return nil
}

func (c *PollClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	close(c.stopCh)
	c.running = false
}

// EventClock reports position from the player's time-pos event stream
// instead of polling. Duration is fetched once and cached.
type EventClock struct {
	player   *MPV
	listener *EventListener
	mu       sync.Mutex
	duration float64
	running  bool
}

func NewEventClock(player *MPV) *EventClock {
	return &EventClock{player: player}
}

func (c *EventClock) Start(onTick TickFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return nil
	}

	c.listener = NewEventListener(c.player.Socket(), func(property string, data interface{}) {
		switch property {
		case "time-pos":
			position, ok := data.(float64)
			if !ok {
				return
			}

			c.mu.Lock()
			duration := c.duration
			c.mu.Unlock()

			if duration <= 0 {
				d, err := c.player.GetDuration()
				if err != nil {
					return
				}

				c.mu.Lock()
				c.duration = d
				duration = d
				c.mu.Unlock()
			}

			onTick(position, duration)
		case "eof-reached":
			if reached, ok := data.(bool); ok && reached {
				c.mu.Lock()
				duration := c.duration
				c.mu.Unlock()

				if duration > 0 {
					onTick(duration, duration)
				}
			}
		}
	})

	if err := c.listener.Start(); err != nil {
		return err
	}

	c.running = true
	return nil
}

func (c *EventClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	c.listener.Stop()
	c.running = false
}
