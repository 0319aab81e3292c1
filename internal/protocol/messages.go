package protocol

// NavigationPoint is one waypoint of a navigation task. Order within a
// task is significant and preserved on the wire.
type NavigationPoint struct {
	MapID     int     `json:"mapId"`
	Value     int     `json:"value"`
	PosX      float32 `json:"posX"`
	PosY      float32 `json:"posY"`
	PosZ      float32 `json:"posZ"`
	AngleYaw  float32 `json:"angleYaw"`
	PointInfo int     `json:"pointInfo"`
	Gait      int     `json:"gait"`
	Speed     int     `json:"speed"`
	Manner    int     `json:"manner"`
	ObsMode   int     `json:"obsMode"`
	NavMode   int     `json:"navMode"`
	Terrain   int     `json:"terrain"`
	Posture   int     `json:"posture"`
}

// RealTimeStatusRequest asks for one telemetry snapshot.
type RealTimeStatusRequest struct {
	Seq  uint16
	Time string
}

func (RealTimeStatusRequest) Type() MessageType        { return TypeRealTimeStatus }
func (m RealTimeStatusRequest) SequenceNumber() uint16 { return m.Seq }

// RealTimeStatusResponse is the telemetry snapshot reported by the robot.
type RealTimeStatusResponse struct {
	Seq  uint16
	Time string

	MotionState    int
	PosX           float32
	PosY           float32
	PosZ           float32
	AngleYaw       float32
	Roll           float32
	Pitch          float32
	Yaw            float32
	Speed          float32
	CurOdom        float32
	SumOdom        float32
	CurRuntime     int
	SumRuntime     int
	Res            int
	X0             float32
	Y0             float32
	H              float32
	Electricity    int
	Location       int
	RTKState       int
	OnDockState    int
	GaitState      int
	MotorState     int
	ChargeState    int
	ControlMode    int
	MapUpdateState int
}

func (RealTimeStatusResponse) Type() MessageType        { return TypeRealTimeStatus }
func (m RealTimeStatusResponse) SequenceNumber() uint16 { return m.Seq }

// NavigationTaskRequest submits an ordered list of navigation points.
// The reply is asynchronous; the server reports when the task finishes.
type NavigationTaskRequest struct {
	Seq    uint16
	Time   string
	Points []NavigationPoint
}

func (NavigationTaskRequest) Type() MessageType        { return TypeNavigationTask }
func (m NavigationTaskRequest) SequenceNumber() uint16 { return m.Seq }

// NavigationTaskResponse is the deferred completion of a navigation task.
type NavigationTaskResponse struct {
	Seq  uint16
	Time string

	Value       int
	ErrorCode   int
	ErrorStatus int
}

func (NavigationTaskResponse) Type() MessageType        { return TypeNavigationTask }
func (m NavigationTaskResponse) SequenceNumber() uint16 { return m.Seq }

// CancelTaskRequest aborts the in-flight navigation task.
type CancelTaskRequest struct {
	Seq  uint16
	Time string
}

func (CancelTaskRequest) Type() MessageType        { return TypeCancelTask }
func (m CancelTaskRequest) SequenceNumber() uint16 { return m.Seq }

// CancelTaskResponse acknowledges a cancel request.
type CancelTaskResponse struct {
	Seq  uint16
	Time string

	ErrorCode int
}

func (CancelTaskResponse) Type() MessageType        { return TypeCancelTask }
func (m CancelTaskResponse) SequenceNumber() uint16 { return m.Seq }

// QueryStatusRequest asks for the current navigation task state.
type QueryStatusRequest struct {
	Seq  uint16
	Time string
}

func (QueryStatusRequest) Type() MessageType        { return TypeQueryStatus }
func (m QueryStatusRequest) SequenceNumber() uint16 { return m.Seq }

// QueryStatusResponse reports the task the robot is executing, if any.
type QueryStatusResponse struct {
	Seq  uint16
	Time string

	Status    int
	ErrorCode int
	Value     int
}

func (QueryStatusResponse) Type() MessageType        { return TypeQueryStatus }
func (m QueryStatusResponse) SequenceNumber() uint16 { return m.Seq }

// RTKFusionDataRequest asks for one fused GNSS reading.
type RTKFusionDataRequest struct {
	Seq  uint16
	Time string
}

func (RTKFusionDataRequest) Type() MessageType        { return TypeRTKFusionData }
func (m RTKFusionDataRequest) SequenceNumber() uint16 { return m.Seq }

// RTKFusionDataResponse is one fused GNSS reading.
type RTKFusionDataResponse struct {
	Seq  uint16
	Time string

	Longitude float32
	Latitude  float32
	ElpHeight float32
	Yaw       float32
}

func (RTKFusionDataResponse) Type() MessageType        { return TypeRTKFusionData }
func (m RTKFusionDataResponse) SequenceNumber() uint16 { return m.Seq }

// RTKRawDataRequest asks for one raw GNSS reading.
type RTKRawDataRequest struct {
	Seq  uint16
	Time string
}

func (RTKRawDataRequest) Type() MessageType        { return TypeRTKRawData }
func (m RTKRawDataRequest) SequenceNumber() uint16 { return m.Seq }

// RTKRawDataResponse is one raw GNSS reading.
type RTKRawDataResponse struct {
	Seq  uint16
	Time string

	Longitude float32
	Latitude  float32
	ElpHeight float32
	Yaw       float32
}

func (RTKRawDataResponse) Type() MessageType        { return TypeRTKRawData }
func (m RTKRawDataResponse) SequenceNumber() uint16 { return m.Seq }

// MotionControlRequest carries one motion sub-command. Speed commands use
// the float value plus a direction selector, configuration commands name
// the parameter they set, every other sub-command uses the integer value.
type MotionControlRequest struct {
	Seq  uint16
	Time string

	Command    int
	Direction  int
	ConfigID   int
	FloatValue float32
	IntValue   int
}

func (MotionControlRequest) Type() MessageType        { return TypeMotionControl }
func (m MotionControlRequest) SequenceNumber() uint16 { return m.Seq }

// MotionControlResponse acknowledges a motion sub-command. ValueInt is
// populated for gait responses, ValueFloat for everything else.
type MotionControlResponse struct {
	Seq  uint16
	Time string

	Command    int
	ValueInt   int
	ValueFloat float32
	ErrorCode  int
}

func (MotionControlResponse) Type() MessageType        { return TypeMotionControl }
func (m MotionControlResponse) SequenceNumber() uint16 { return m.Seq }
