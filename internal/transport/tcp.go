package transport

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/robopatrol/patrolsdk/internal/observability"
)

// TCP is the plain byte-stream link the robot server speaks natively.
type TCP struct {
	cfg     Config
	log     zerolog.Logger
	onFrame FrameHandler

	mu        sync.Mutex
	conn      net.Conn
	connected bool
	readerWG  sync.WaitGroup
}

// NewTCP builds a disconnected TCP transport. onFrame is required and is
// called from the reader goroutine for every complete frame.
func NewTCP(cfg Config, log zerolog.Logger, onFrame FrameHandler) *TCP {
	return &TCP{
		cfg:     cfg.withDefaults(),
		log:     log.With().Str("transport", "tcp").Logger(),
		onFrame: onFrame,
	}
}

func (t *TCP) Connect(host string, port int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.connected {
		return nil
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, t.cfg.ConnectTimeout)
	if err != nil {
		return fmt.Errorf("transport: dial %s: %w", addr, err)
	}

	t.conn = conn
	t.connected = true
	t.readerWG.Add(1)
	go t.readLoop(conn)

	t.log.Info().Str("addr", addr).Msg("connected")
	return nil
}

func (t *TCP) Disconnect() error {
	t.mu.Lock()
	if !t.connected {
		t.mu.Unlock()
		return nil
	}
	conn := t.conn
	t.connected = false
	t.conn = nil
	t.mu.Unlock()

	err := conn.Close()
	t.readerWG.Wait()
	t.log.Info().Msg("disconnected")
	return err
}

func (t *TCP) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

func (t *TCP) Send(frame []byte) error {
	t.mu.Lock()
	conn := t.conn
	connected := t.connected
	t.mu.Unlock()
	if !connected || conn == nil {
		return ErrNotConnected
	}

	if err := conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout)); err != nil {
		t.markDown(conn)
		return fmt.Errorf("transport: set write deadline: %w", err)
	}
	if _, err := conn.Write(frame); err != nil {
		t.markDown(conn)
		return fmt.Errorf("transport: send: %w", err)
	}
	observability.RecordFrame("out")
	return nil
}

// markDown records connection loss after a failed write. The reader sees
// the closed socket and exits on its own.
func (t *TCP) markDown(conn net.Conn) {
	t.mu.Lock()
	if t.conn == conn {
		t.connected = false
		t.conn = nil
	}
	t.mu.Unlock()
	_ = conn.Close()
}

func (t *TCP) readLoop(conn net.Conn) {
	defer t.readerWG.Done()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), maxFrameBytes)
	scanner.Split(splitFrames)
	for scanner.Scan() {
		frame := scanner.Bytes()
		if len(frame) == 0 {
			continue
		}
		observability.RecordFrame("in")
		t.onFrame(frame)
	}
	if err := scanner.Err(); err != nil {
		t.log.Warn().Err(err).Msg("read loop ended")
	}

	t.mu.Lock()
	if t.conn == conn {
		t.connected = false
		t.conn = nil
	}
	t.mu.Unlock()
	_ = conn.Close()
}
