package player

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// ipcRequest and ipcReply are the frames of mpv's JSON IPC protocol. Every
// frame is one newline-terminated JSON object.
type ipcRequest struct {
	Command []interface{} `json:"command"`
}

type ipcReply struct {
	Data  interface{} `json:"data"`
	Error string      `json:"error"`
}

const (
	ipcAttempts     = 3
	ipcRetryDelay   = 100 * time.Millisecond
	ipcReadDeadline = time.Second
)

// sendCommand issues one command over the control socket, retrying transient
// connection failures. Calls are serialized so replies cannot interleave.
func (m *MPV) sendCommand(command []interface{}) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < ipcAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(ipcRetryDelay)
		}

		data, err := roundTrip(m.socketPath, command)
		if err == nil {
			return data, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", ipcAttempts, lastErr)
}

// roundTrip writes a single command frame on a fresh connection and reads
// its reply, skipping any event frames that arrive first.
func roundTrip(socketPath string, command []interface{}) (interface{}, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	if err := json.NewEncoder(conn).Encode(ipcRequest{Command: command}); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(ipcReadDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	reader := bufio.NewReader(conn)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}

		if bytes.Contains(line, []byte(`"event"`)) {
			continue
		}

		var reply ipcReply
		if err := json.Unmarshal(line, &reply); err != nil {
			return nil, fmt.Errorf("unmarshal: %w", err)
		}

		if reply.Error != "" && reply.Error != "success" {
			return nil, fmt.Errorf("mpv: %s", reply.Error)
		}

		return reply.Data, nil
	}
}
