package transport

import (
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/robopatrol/patrolsdk/internal/observability"
)

// WS carries the same frame contract over a websocket, for deployments
// that bridge the robot link through HTTP infrastructure. One PatrolDevice
// document per text message; no terminator scanning needed.
type WS struct {
	cfg     Config
	path    string
	log     zerolog.Logger
	onFrame FrameHandler

	mu        sync.Mutex
	conn      *websocket.Conn
	connected bool
	readerWG  sync.WaitGroup
}

// NewWS builds a disconnected websocket transport. path is the endpoint
// path on the bridge, e.g. "/patrol".
func NewWS(cfg Config, path string, log zerolog.Logger, onFrame FrameHandler) *WS {
	if path == "" {
		path = "/"
	}
	return &WS{
		cfg:     cfg.withDefaults(),
		path:    path,
		log:     log.With().Str("transport", "ws").Logger(),
		onFrame: onFrame,
	}
}

func (t *WS) Connect(host string, port int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.connected {
		return nil
	}

	u := url.URL{
		Scheme: "ws",
		Host:   host + ":" + strconv.Itoa(port),
		Path:   t.path,
	}
	dialer := websocket.Dialer{HandshakeTimeout: t.cfg.ConnectTimeout}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("transport: dial %s: %w", u.String(), err)
	}
	conn.SetReadLimit(maxFrameBytes)

	t.conn = conn
	t.connected = true
	t.readerWG.Add(1)
	go t.readLoop(conn)

	t.log.Info().Str("url", u.String()).Msg("connected")
	return nil
}

func (t *WS) Disconnect() error {
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

func (t *WS) IsConnected() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.connected
}

func (t *WS) Send(frame []byte) error {
	// gorilla permits one concurrent writer; the transport mutex also
	// serializes writes.
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.connected || t.conn == nil {
		return ErrNotConnected
	}

	if err := t.conn.SetWriteDeadline(time.Now().Add(t.cfg.WriteTimeout)); err != nil {
		conn := t.conn
		t.connected = false
		t.conn = nil
		_ = conn.Close()
		return fmt.Errorf("transport: set write deadline: %w", err)
	}
	if err := t.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		conn := t.conn
		t.connected = false
		t.conn = nil
		_ = conn.Close()
		return fmt.Errorf("transport: send: %w", err)
	}
	observability.RecordFrame("out")
	return nil
}

func (t *WS) readLoop(conn *websocket.Conn) {
	defer t.readerWG.Done()

	for {
		_, frame, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				t.log.Warn().Err(err).Msg("read loop ended")
			}
			break
		}
		if len(frame) == 0 {
			continue
		}
		observability.RecordFrame("in")
		t.onFrame(frame)
	}

	t.mu.Lock()
	if t.conn == conn {
		t.connected = false
		t.conn = nil
	}
	t.mu.Unlock()
	_ = conn.Close()
}
