package transport

import (
	"bytes"
	"errors"
	"time"
)

var (
	ErrNotConnected     = errors.New("transport: not connected")
	ErrAlreadyConnected = errors.New("transport: already connected")
	ErrFrameTooLarge    = errors.New("transport: frame exceeds read limit")
)

// frameTerminator closes every PatrolDevice document on the wire.
const frameTerminator = "</PatrolDevice>"

// maxFrameBytes bounds reader memory per frame.
const maxFrameBytes = 1 << 20

// FrameHandler receives each complete inbound frame in arrival order.
// It is invoked from the transport-owned reader goroutine and must not
// block; a blocking handler stalls the whole inbound path.
type FrameHandler func(frame []byte)

// Transport is a byte-stream connection to the robot server.
type Transport interface {
	// Connect dials the server, failing after the configured timeout.
	Connect(host string, port int) error
	// Disconnect tears the connection down and joins the reader. Idempotent.
	Disconnect() error
	IsConnected() bool
	// Send writes one encoded frame. Failure is reported as disconnection.
	Send(frame []byte) error
}

// Config carries transport tunables shared by the TCP and websocket links.
type Config struct {
	ConnectTimeout time.Duration
	WriteTimeout   time.Duration
}

// DefaultConfig returns the contract defaults: 5 s to connect, bounded writes.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout: 5 * time.Second,
		WriteTimeout:   10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	out := c
	if out.ConnectTimeout <= 0 {
		out.ConnectTimeout = 5 * time.Second
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = 10 * time.Second
	}
	return out
}

// splitFrames is a bufio.SplitFunc producing one PatrolDevice document
// per token, terminator included.
func splitFrames(data []byte, atEOF bool) (int, []byte, error) {
	if i := bytes.Index(data, []byte(frameTerminator)); i >= 0 {
		end := i + len(frameTerminator)
		return end, bytes.TrimSpace(data[:end]), nil
	}
	if len(data) > maxFrameBytes {
		return 0, nil, ErrFrameTooLarge
	}
	if atEOF && len(data) > 0 {
		// Trailing bytes with no terminator: connection died mid-frame.
		return len(data), nil, nil
	}
	return 0, nil, nil
}
