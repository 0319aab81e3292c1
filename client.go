// Package patrolsdk is the client SDK for the quadruped patrol robot's
// control server. It turns in-process calls into framed XML requests over
// TCP, pairs responses with outstanding calls by sequence number, routes
// asynchronous navigation completions to per-request callbacks, and rate
// limits high-frequency speed commands on the client side.
package patrolsdk

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/robopatrol/patrolsdk/internal/correlator"
	"github.com/robopatrol/patrolsdk/internal/logging"
	"github.com/robopatrol/patrolsdk/internal/observability"
	"github.com/robopatrol/patrolsdk/internal/protocol"
	"github.com/robopatrol/patrolsdk/internal/transport"
)

const sdkVersion = "0.1.0"

// minSpeedInterval is the protocol's 5 Hz ceiling on speed commands.
const minSpeedInterval = 200 * time.Millisecond

// Version reports the SDK version string.
func Version() string {
	return sdkVersion
}

// Client talks to one robot control server. Methods are safe for
// concurrent use from multiple goroutines.
type Client struct {
	opts Options
	log  zerolog.Logger
	tr   transport.Transport
	corr *correlator.Correlator

	now func() time.Time

	gateMu        sync.Mutex
	lastSpeedSend time.Time
}

// New builds a disconnected client.
func New(opts Options) *Client {
	logging.ConfigureRuntime()
	return newClient(opts, nil)
}

// newClient wires the correlator and transport; tr overrides the
// options-selected transport when non-nil (tests inject fakes here).
func newClient(opts Options, tr transport.Transport) *Client {
	c := &Client{
		opts: opts.WithDefaults(),
		log:  observability.NewLogger("patrolsdk"),
		corr: correlator.New(),
		now:  time.Now,
	}
	if tr == nil {
		tcfg := transport.Config{ConnectTimeout: c.opts.ConnectionTimeout}
		switch c.opts.Transport {
		case TransportWebsocket:
			tr = transport.NewWS(tcfg, c.opts.WebsocketPath, c.log, c.handleFrame)
		default:
			tr = transport.NewTCP(tcfg, c.log, c.handleFrame)
		}
	}
	c.tr = tr
	return c
}

// Connect dials the control server. Idempotent while connected.
func (c *Client) Connect(host string, port int) error {
	return c.tr.Connect(host, port)
}

// Disconnect tears the link down, joins the reader, and invokes every
// orphaned navigation callback once with a NOT_CONNECTED result.
func (c *Client) Disconnect() error {
	err := c.tr.Disconnect()
	for _, cb := range c.corr.DrainAsync() {
		cb(nil)
	}
	return err
}

// Close disconnects; destruction without an explicit Disconnect still
// tears the reader down before the tables go away.
func (c *Client) Close() error {
	return c.Disconnect()
}

func (c *Client) IsConnected() bool {
	return c.tr.IsConnected()
}

// handleFrame runs on the transport reader goroutine. It must stay
// non-blocking apart from user navigation callbacks, which are documented
// to run here.
func (c *Client) handleFrame(frame []byte) {
	msg, err := protocol.DecodeResponse(frame)
	if err != nil {
		observability.RecordDecodeError()
		c.log.Warn().Err(err).Msg("dropping undecodable frame")
		return
	}
	c.corr.Deliver(msg)
}

// callErr is the kind-agnostic outcome of the shared sync skeleton; each
// wrapper maps it onto its kind-specific error code.
type callErr int

const (
	callOK callErr = iota
	callNotConnected
	callTimeout
	callInvalidResponse
	callUnknown
)

func (e callErr) String() string {
	switch e {
	case callOK:
		return "success"
	case callNotConnected:
		return "not_connected"
	case callTimeout:
		return "timeout"
	case callInvalidResponse:
		return "invalid_response"
	default:
		return "unknown_error"
	}
}

// roundTrip runs the shared synchronous skeleton: insert a pending entry,
// send, wait, take the response. The pending entry is removed on every
// exit path. onSent, when set, fires only after a successful send.
func (c *Client) roundTrip(kind string, reqType protocol.MessageType, build func(seq uint16) protocol.Message, onSent func()) (protocol.Message, callErr) {
	start := c.now()
	msg, outcome := c.doRoundTrip(reqType, build, onSent)
	observability.RecordRequest(kind, outcome.String(), c.now().Sub(start))
	if outcome != callOK && outcome != callTimeout {
		c.log.Debug().Str("kind", kind).Str("outcome", outcome.String()).Msg("request failed")
	}
	return msg, outcome
}

func (c *Client) doRoundTrip(reqType protocol.MessageType, build func(seq uint16) protocol.Message, onSent func()) (protocol.Message, callErr) {
	if !c.tr.IsConnected() {
		return nil, callNotConnected
	}

	seq, waiter := c.corr.BeginSync(protocol.ExpectedResponse(reqType))
	defer c.corr.Cancel(seq)

	frame, err := protocol.Encode(build(seq))
	if err != nil {
		c.log.Error().Err(err).Msg("encode request")
		return nil, callUnknown
	}
	if err := c.tr.Send(frame); err != nil {
		c.log.Warn().Err(err).Msg("send request")
		return nil, callNotConnected
	}
	if onSent != nil {
		onSent()
	}

	if waiter.Wait(c.opts.RequestTimeout) == correlator.TimedOut {
		return nil, callTimeout
	}
	msg, ok := c.corr.TakeResponse(seq)
	if !ok {
		return nil, callInvalidResponse
	}
	return msg, callOK
}

func (c *Client) timestamp() string {
	return protocol.Timestamp(c.now())
}

// RealTimeState fetches one telemetry snapshot.
func (c *Client) RealTimeState() RealTimeStatus {
	msg, outcome := c.roundTrip("real_time_status", protocol.TypeRealTimeStatus, func(seq uint16) protocol.Message {
		return protocol.RealTimeStatusRequest{Seq: seq, Time: c.timestamp()}
	}, nil)
	if outcome != callOK {
		return RealTimeStatus{ErrorCode: realTimeErrFrom(outcome)}
	}
	resp, ok := msg.(protocol.RealTimeStatusResponse)
	if !ok {
		return RealTimeStatus{ErrorCode: RealTimeInvalidResponse}
	}
	return RealTimeStatus{
		MotionState:    resp.MotionState,
		PosX:           resp.PosX,
		PosY:           resp.PosY,
		PosZ:           resp.PosZ,
		AngleYaw:       resp.AngleYaw,
		Roll:           resp.Roll,
		Pitch:          resp.Pitch,
		Yaw:            resp.Yaw,
		Speed:          resp.Speed,
		CurOdom:        resp.CurOdom,
		SumOdom:        resp.SumOdom,
		CurRuntime:     resp.CurRuntime,
		SumRuntime:     resp.SumRuntime,
		Res:            resp.Res,
		X0:             resp.X0,
		Y0:             resp.Y0,
		H:              resp.H,
		Electricity:    resp.Electricity,
		Location:       resp.Location,
		RTKState:       resp.RTKState,
		OnDockState:    resp.OnDockState,
		GaitState:      resp.GaitState,
		MotorState:     resp.MotorState,
		ChargeState:    resp.ChargeState,
		ControlMode:    resp.ControlMode,
		MapUpdateState: resp.MapUpdateState,
		ErrorCode:      RealTimeSuccess,
	}
}

// StartNavTask submits an ordered navigation task and returns immediately.
// cb is invoked exactly once: with the decoded result when the robot
// reports, or with an error result if validation or send fails first.
// There is no client-side timeout on navigation completions.
func (c *Client) StartNavTask(points []NavigationPoint, cb NavigationResultCallback) {
	if cb == nil {
		return
	}
	if len(points) == 0 {
		c.safeNavCallback(cb, NavigationResult{ErrorCode: NavInvalidParam})
		return
	}
	if !c.tr.IsConnected() {
		c.safeNavCallback(cb, NavigationResult{ErrorCode: NavNotConnected})
		return
	}

	seq := c.corr.BeginAsync(func(msg protocol.Message) {
		if msg == nil {
			c.safeNavCallback(cb, NavigationResult{ErrorCode: NavNotConnected})
			return
		}
		resp, ok := msg.(protocol.NavigationTaskResponse)
		if !ok {
			return
		}
		c.safeNavCallback(cb, NavigationResult{
			Value:       resp.Value,
			ErrorCode:   NavErrorCode(resp.ErrorCode),
			ErrorStatus: NavErrorStatus(resp.ErrorStatus),
		})
	})

	wire := make([]protocol.NavigationPoint, 0, len(points))
	for _, p := range points {
		wire = append(wire, protocol.NavigationPoint(p))
	}
	frame, err := protocol.Encode(protocol.NavigationTaskRequest{
		Seq:    seq,
		Time:   c.timestamp(),
		Points: wire,
	})
	if err != nil {
		c.corr.Cancel(seq)
		c.log.Error().Err(err).Msg("encode nav task")
		c.safeNavCallback(cb, NavigationResult{ErrorCode: NavUnknownError})
		return
	}
	if err := c.tr.Send(frame); err != nil {
		c.corr.Cancel(seq)
		c.log.Warn().Err(err).Msg("send nav task")
		c.safeNavCallback(cb, NavigationResult{ErrorCode: NavNotConnected})
		return
	}
	observability.RecordRequest("start_nav_task", "sent", 0)
}

// CancelNavTask aborts the in-flight navigation task.
func (c *Client) CancelNavTask() CancelResult {
	msg, outcome := c.roundTrip("cancel_nav_task", protocol.TypeCancelTask, func(seq uint16) protocol.Message {
		return protocol.CancelTaskRequest{Seq: seq, Time: c.timestamp()}
	}, nil)
	if outcome != callOK {
		return CancelResult{ErrorCode: cancelErrFrom(outcome)}
	}
	resp, ok := msg.(protocol.CancelTaskResponse)
	if !ok {
		return CancelResult{ErrorCode: CancelInvalidResponse}
	}
	return CancelResult{ErrorCode: CancelErrorCode(resp.ErrorCode)}
}

// NavTaskState queries the current navigation task status.
func (c *Client) NavTaskState() TaskStatusResult {
	msg, outcome := c.roundTrip("query_status", protocol.TypeQueryStatus, func(seq uint16) protocol.Message {
		return protocol.QueryStatusRequest{Seq: seq, Time: c.timestamp()}
	}, nil)
	if outcome != callOK {
		return TaskStatusResult{ErrorCode: queryErrFrom(outcome)}
	}
	resp, ok := msg.(protocol.QueryStatusResponse)
	if !ok {
		return TaskStatusResult{ErrorCode: QueryInvalidResponse}
	}
	return TaskStatusResult{
		Status:    TaskStatus(resp.Status),
		Value:     resp.Value,
		ErrorCode: QueryErrorCode(resp.ErrorCode),
	}
}

// RTKFusion fetches one fused GNSS reading.
func (c *Client) RTKFusion() RTKFusionData {
	msg, outcome := c.roundTrip("rtk_fusion", protocol.TypeRTKFusionData, func(seq uint16) protocol.Message {
		return protocol.RTKFusionDataRequest{Seq: seq, Time: c.timestamp()}
	}, nil)
	if outcome != callOK {
		return RTKFusionData{ErrorCode: rtkErrFrom(outcome)}
	}
	resp, ok := msg.(protocol.RTKFusionDataResponse)
	if !ok {
		return RTKFusionData{ErrorCode: RTKInvalidResponse}
	}
	return RTKFusionData{
		Longitude: resp.Longitude,
		Latitude:  resp.Latitude,
		ElpHeight: resp.ElpHeight,
		Yaw:       resp.Yaw,
		ErrorCode: RTKSuccess,
	}
}

// RTKRaw fetches one raw GNSS reading.
func (c *Client) RTKRaw() RTKRawData {
	msg, outcome := c.roundTrip("rtk_raw", protocol.TypeRTKRawData, func(seq uint16) protocol.Message {
		return protocol.RTKRawDataRequest{Seq: seq, Time: c.timestamp()}
	}, nil)
	if outcome != callOK {
		return RTKRawData{ErrorCode: rtkErrFrom(outcome)}
	}
	resp, ok := msg.(protocol.RTKRawDataResponse)
	if !ok {
		return RTKRawData{ErrorCode: RTKInvalidResponse}
	}
	return RTKRawData{
		Longitude: resp.Longitude,
		Latitude:  resp.Latitude,
		ElpHeight: resp.ElpHeight,
		Yaw:       resp.Yaw,
		ErrorCode: RTKSuccess,
	}
}

// SpeedControl issues a speed command. The protocol caps speed commands
// at 5 Hz; calls closer than 200 ms to the previous successful send are
// rejected with MotionTooFrequent without touching the network.
func (c *Client) SpeedControl(cmd SpeedCommand, speed float32) MotionControlResult {
	c.gateMu.Lock()
	last := c.lastSpeedSend
	c.gateMu.Unlock()
	if !last.IsZero() && c.now().Sub(last) < minSpeedInterval {
		observability.RecordRateLimited()
		return MotionControlResult{ErrorCode: MotionTooFrequent}
	}

	return c.motionRoundTrip(protocol.MotionControlRequest{
		Command:    protocol.CommandSpeed,
		Direction:  int(cmd),
		FloatValue: speed,
	}, func() {
		// The gate timestamp moves only on paths that actually send.
		c.gateMu.Lock()
		c.lastSpeedSend = c.now()
		c.gateMu.Unlock()
	})
}

// ActionControl executes a discrete action.
func (c *Client) ActionControl(cmd ActionCommand) MotionControlResult {
	return c.motionRoundTrip(protocol.MotionControlRequest{
		Command:  protocol.CommandAction,
		IntValue: int(cmd),
	}, nil)
}

// Configure sets one configuration parameter.
func (c *Client) Configure(cmd ConfigCommand, value int) MotionControlResult {
	return c.motionRoundTrip(protocol.MotionControlRequest{
		Command:  protocol.CommandConfigure,
		ConfigID: int(cmd),
		IntValue: value,
	}, nil)
}

// SwitchBodyHeight switches body height: 0 standing, 1 crouched.
func (c *Client) SwitchBodyHeight(height int) MotionControlResult {
	return c.motionRoundTrip(protocol.MotionControlRequest{
		Command:  protocol.CommandBodyHeight,
		IntValue: height,
	}, nil)
}

// SwitchGait switches the locomotion gait.
func (c *Client) SwitchGait(mode GaitMode) MotionControlResult {
	return c.motionRoundTrip(protocol.MotionControlRequest{
		Command:  protocol.CommandGait,
		IntValue: int(mode),
	}, nil)
}

func (c *Client) motionRoundTrip(req protocol.MotionControlRequest, onSent func()) MotionControlResult {
	msg, outcome := c.roundTrip("motion_control", protocol.TypeMotionControl, func(seq uint16) protocol.Message {
		req.Seq = seq
		req.Time = c.timestamp()
		return req
	}, onSent)
	if outcome != callOK {
		return MotionControlResult{ErrorCode: motionErrFrom(outcome)}
	}
	resp, ok := msg.(protocol.MotionControlResponse)
	if !ok {
		return MotionControlResult{ErrorCode: MotionInvalidResponse}
	}
	return MotionControlResult{
		Value:     resp.ValueFloat,
		Gait:      resp.ValueInt,
		ErrorCode: MotionErrorCode(resp.ErrorCode),
	}
}

// safeNavCallback shields the reader goroutine from user panics; a
// recovered panic is logged with a timestamp and counted.
func (c *Client) safeNavCallback(cb NavigationResultCallback, res NavigationResult) {
	defer func() {
		if r := recover(); r != nil {
			observability.RecordCallbackPanic()
			c.log.Error().Str("panic", fmt.Sprint(r)).Msg("navigation callback panicked")
		}
	}()
	cb(res)
}

func realTimeErrFrom(e callErr) RealTimeErrorCode {
	switch e {
	case callNotConnected:
		return RealTimeNotConnected
	case callTimeout:
		return RealTimeTimeout
	case callInvalidResponse:
		return RealTimeInvalidResponse
	default:
		return RealTimeUnknownError
	}
}

func rtkErrFrom(e callErr) RTKErrorCode {
	switch e {
	case callNotConnected:
		return RTKNotConnected
	case callTimeout:
		return RTKTimeout
	case callInvalidResponse:
		return RTKInvalidResponse
	default:
		return RTKUnknownError
	}
}

func motionErrFrom(e callErr) MotionErrorCode {
	switch e {
	case callNotConnected:
		return MotionNotConnected
	case callTimeout:
		return MotionTimeout
	case callInvalidResponse:
		return MotionInvalidResponse
	default:
		return MotionUnknownError
	}
}

func queryErrFrom(e callErr) QueryErrorCode {
	switch e {
	case callNotConnected:
		return QueryNotConnected
	case callTimeout:
		return QueryTimeout
	case callInvalidResponse:
		return QueryInvalidResponse
	default:
		return QueryUnknownError
	}
}

func cancelErrFrom(e callErr) CancelErrorCode {
	switch e {
	case callNotConnected:
		return CancelNotConnected
	case callTimeout:
		return CancelTimeout
	case callInvalidResponse:
		return CancelInvalidResponse
	default:
		return CancelUnknownError
	}
}
