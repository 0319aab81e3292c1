package patrolsdk

// NavigationPoint is one waypoint of a navigation task, constructible
// from a JSON object with the same keys. Order is significant.
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

// SpeedCommand selects the axis and sign of a speed command.
type SpeedCommand int

const (
	SpeedForward SpeedCommand = iota + 1
	SpeedBackward
	SpeedTransverseLeft
	SpeedTransverseRight
	SpeedTurnLeft
	SpeedTurnRight
)

// ActionCommand is a discrete motion action.
type ActionCommand int

const (
	ActionStop ActionCommand = iota + 1
	ActionStandUp
	ActionLieDown
)

// ConfigCommand selects a configuration parameter.
type ConfigCommand int

const (
	ConfigObstacleAvoidance ConfigCommand = iota + 1
	ConfigLight
	ConfigVoice
)

// GaitMode is a locomotion gait.
type GaitMode int

const (
	GaitWalking GaitMode = iota + 1
	GaitNormalStepping
	GaitSlopeAntiSlip
	GaitSensingStepping
)

// RealTimeErrorCode classifies a RealTimeState call outcome.
type RealTimeErrorCode int

const (
	RealTimeSuccess RealTimeErrorCode = iota
	RealTimeFailure
	RealTimeNotConnected
	RealTimeTimeout
	RealTimeInvalidResponse
	RealTimeUnknownError
)

// RTKErrorCode classifies an RTK data call outcome.
type RTKErrorCode int

const (
	RTKSuccess RTKErrorCode = iota
	RTKFailure
	RTKNotConnected
	RTKTimeout
	RTKInvalidResponse
	RTKUnknownError
)

// MotionErrorCode classifies a motion-control call outcome.
type MotionErrorCode int

const (
	MotionSuccess MotionErrorCode = iota
	MotionFailure
	MotionNotConnected
	MotionTimeout
	MotionTooFrequent
	MotionInvalidResponse
	MotionUnknownError
)

// NavErrorCode classifies a navigation task outcome.
type NavErrorCode int

const (
	NavSuccess NavErrorCode = iota
	NavFailure
	NavNotConnected
	NavTimeout
	NavInvalidParam
	NavInvalidResponse
	NavUnknownError
)

// NavErrorStatus is the status detail the server attaches to a failed
// navigation task, carried through verbatim.
type NavErrorStatus int

// QueryErrorCode classifies a NavTaskState call outcome.
type QueryErrorCode int

const (
	QuerySuccess QueryErrorCode = iota
	QueryFailure
	QueryNotConnected
	QueryTimeout
	QueryInvalidResponse
	QueryUnknownError
)

// CancelErrorCode classifies a CancelNavTask call outcome.
type CancelErrorCode int

const (
	CancelSuccess CancelErrorCode = iota
	CancelFailure
	CancelNotConnected
	CancelTimeout
	CancelInvalidResponse
	CancelUnknownError
)

// TaskStatus is the server-reported state of the navigation task.
type TaskStatus int

const (
	TaskStatusWaiting TaskStatus = iota
	TaskStatusExecuting
	TaskStatusCompleted
	TaskStatusFailed
	TaskStatusCancelled
)

// RealTimeStatus is the telemetry snapshot returned by RealTimeState.
type RealTimeStatus struct {
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

	ErrorCode RealTimeErrorCode
}

// RTKFusionData is one fused GNSS reading.
type RTKFusionData struct {
	Longitude float32
	Latitude  float32
	ElpHeight float32
	Yaw       float32

	ErrorCode RTKErrorCode
}

// RTKRawData is one raw GNSS reading.
type RTKRawData struct {
	Longitude float32
	Latitude  float32
	ElpHeight float32
	Yaw       float32

	ErrorCode RTKErrorCode
}

// MotionControlResult reports a motion sub-command acknowledgment. Value
// echoes the scalar for float-valued sub-commands; Gait carries the mode
// for gait switches.
type MotionControlResult struct {
	Value float32
	Gait  int

	ErrorCode MotionErrorCode
}

// NavigationResult is the deferred outcome of a navigation task.
type NavigationResult struct {
	Value int

	ErrorCode   NavErrorCode
	ErrorStatus NavErrorStatus
}

// NavigationResultCallback receives a navigation task outcome. It is
// invoked exactly once per StartNavTask, possibly on the transport reader
// goroutine; it must not block and must not call Disconnect or Close.
type NavigationResultCallback func(NavigationResult)

// TaskStatusResult reports the current navigation task state.
type TaskStatusResult struct {
	Status TaskStatus
	Value  int

	ErrorCode QueryErrorCode
}

// CancelResult reports a cancel acknowledgment.
type CancelResult struct {
	ErrorCode CancelErrorCode
}
