package patrolsdk

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"testing"

	"github.com/robopatrol/patrolsdk/internal/protocol"
	"github.com/robopatrol/patrolsdk/internal/testutil/testlog"
)

// fakeServer answers PatrolDevice requests over a real TCP socket.
type fakeServer struct {
	ln net.Listener
}

func startFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &fakeServer{ln: ln}
	go s.serve()
	t.Cleanup(func() { ln.Close() })
	return s
}

func (s *fakeServer) port() int {
	return s.ln.Addr().(*net.TCPAddr).Port
}

func (s *fakeServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *fakeServer) handle(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	scanner.Split(func(data []byte, atEOF bool) (int, []byte, error) {
		if i := bytes.Index(data, []byte("</PatrolDevice>")); i >= 0 {
			end := i + len("</PatrolDevice>")
			return end, data[:end], nil
		}
		return 0, nil, nil
	})
	for scanner.Scan() {
		env, err := protocol.DecodeEnvelope(scanner.Bytes())
		if err != nil {
			continue
		}
		var reply string
		switch env.Type {
		case protocol.TypeRealTimeStatus:
			reply = fmt.Sprintf(
				`<PatrolDevice><Type>1002</Type><Command>1</Command><Time>t</Time><Items><SeqNum>%d</SeqNum><PosX>1.5</PosX><Electricity>88</Electricity></Items></PatrolDevice>`,
				env.SequenceNumber())
		case protocol.TypeRTKFusionData:
			reply = fmt.Sprintf(
				`<PatrolDevice><Type>2102</Type><Command>1</Command><Time>t</Time><Items><SeqNum>%d</SeqNum><Longitude>116.3</Longitude><Latitude>39.9</Latitude></Items></PatrolDevice>`,
				env.SequenceNumber())
		default:
			continue
		}
		if _, err := conn.Write([]byte(reply)); err != nil {
			return
		}
	}
}

func TestEndToEndOverTCP(t *testing.T) {
	testlog.Start(t)
	server := startFakeServer(t)

	c := New(DefaultOptions())
	if err := c.Connect("127.0.0.1", server.port()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer c.Close()

	if !c.IsConnected() {
		t.Fatalf("expected connected client")
	}

	st := c.RealTimeState()
	if st.ErrorCode != RealTimeSuccess {
		t.Fatalf("status call failed: %+v", st)
	}
	if st.PosX != 1.5 || st.Electricity != 88 {
		t.Fatalf("unexpected status: %+v", st)
	}

	rtk := c.RTKFusion()
	if rtk.ErrorCode != RTKSuccess {
		t.Fatalf("rtk call failed: %+v", rtk)
	}
	if rtk.Longitude != 116.3 {
		t.Fatalf("unexpected rtk reading: %+v", rtk)
	}

	if err := c.Disconnect(); err != nil {
		t.Fatalf("disconnect: %v", err)
	}
	if c.IsConnected() {
		t.Fatalf("expected disconnected client")
	}
	st = c.RealTimeState()
	if st.ErrorCode != RealTimeNotConnected {
		t.Fatalf("calls after disconnect must fail: %+v", st)
	}
}
