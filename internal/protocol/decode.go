package protocol

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
)

// Envelope is the parsed shell of one PatrolDevice document: the header
// elements plus the raw <Items> children. Unknown children are kept but
// ignored by the typed decoders; missing fields read as zero values.
type Envelope struct {
	Type    MessageType
	Command int
	Time    string

	items []envelopeItem
}

type envelopeItem struct {
	name  string
	value string
}

type envelopeXML struct {
	XMLName xml.Name `xml:"PatrolDevice"`
	Type    int      `xml:"Type"`
	Command int      `xml:"Command"`
	Time    string   `xml:"Time"`
	Items   struct {
		Children []envelopeItemXML `xml:",any"`
	} `xml:"Items"`
}

type envelopeItemXML struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// DecodeEnvelope parses one frame without interpreting its payload.
func DecodeEnvelope(data []byte) (Envelope, error) {
	var raw envelopeXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		if strings.Contains(err.Error(), "PatrolDevice") {
			return Envelope{}, fmt.Errorf("%w: %v", ErrNotPatrolDevice, err)
		}
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	env := Envelope{
		Type:    MessageType(raw.Type),
		Command: raw.Command,
		Time:    raw.Time,
	}
	for _, child := range raw.Items.Children {
		env.items = append(env.items, envelopeItem{
			name:  child.XMLName.Local,
			value: strings.TrimSpace(child.Value),
		})
	}
	return env, nil
}

// Field returns the text of the named <Items> child, if present.
func (e Envelope) Field(name string) (string, bool) {
	for _, item := range e.items {
		if item.name == name {
			return item.value, true
		}
	}
	return "", false
}

// SequenceNumber reads the <SeqNum> item; absent reads as zero.
func (e Envelope) SequenceNumber() uint16 {
	return uint16(e.intField("SeqNum"))
}

func (e Envelope) intField(name string) int {
	raw, ok := e.Field(name)
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}

func (e Envelope) floatField(name string) float32 {
	raw, ok := e.Field(name)
	if !ok {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0
	}
	return float32(v)
}

// DecodeResponse parses one inbound frame into its typed response value.
func DecodeResponse(data []byte) (Message, error) {
	env, err := DecodeEnvelope(data)
	if err != nil {
		return nil, err
	}
	seq := env.SequenceNumber()

	switch env.Type {
	case TypeRealTimeStatus:
		return RealTimeStatusResponse{
			Seq:  seq,
			Time: env.Time,

			MotionState:    env.intField("MotionState"),
			PosX:           env.floatField("PosX"),
			PosY:           env.floatField("PosY"),
			PosZ:           env.floatField("PosZ"),
			AngleYaw:       env.floatField("AngleYaw"),
			Roll:           env.floatField("Roll"),
			Pitch:          env.floatField("Pitch"),
			Yaw:            env.floatField("Yaw"),
			Speed:          env.floatField("Speed"),
			CurOdom:        env.floatField("CurOdom"),
			SumOdom:        env.floatField("SumOdom"),
			CurRuntime:     env.intField("CurRuntime"),
			SumRuntime:     env.intField("SumRuntime"),
			Res:            env.intField("Res"),
			X0:             env.floatField("X0"),
			Y0:             env.floatField("Y0"),
			H:              env.floatField("H"),
			Electricity:    env.intField("Electricity"),
			Location:       env.intField("Location"),
			RTKState:       env.intField("RTKState"),
			OnDockState:    env.intField("OnDockState"),
			GaitState:      env.intField("GaitState"),
			MotorState:     env.intField("MotorState"),
			ChargeState:    env.intField("ChargeState"),
			ControlMode:    env.intField("ControlMode"),
			MapUpdateState: env.intField("MapUpdateState"),
		}, nil
	case TypeNavigationTask:
		return NavigationTaskResponse{
			Seq:  seq,
			Time: env.Time,

			Value:       env.intField("Value"),
			ErrorCode:   env.intField("ErrorCode"),
			ErrorStatus: env.intField("ErrorStatus"),
		}, nil
	case TypeCancelTask:
		return CancelTaskResponse{
			Seq:  seq,
			Time: env.Time,

			ErrorCode: env.intField("ErrorCode"),
		}, nil
	case TypeQueryStatus:
		return QueryStatusResponse{
			Seq:  seq,
			Time: env.Time,

			Status:    env.intField("Status"),
			ErrorCode: env.intField("ErrorCode"),
			Value:     env.intField("Value"),
		}, nil
	case TypeRTKFusionData:
		return RTKFusionDataResponse{
			Seq:  seq,
			Time: env.Time,

			Longitude: env.floatField("Longitude"),
			Latitude:  env.floatField("Latitude"),
			ElpHeight: env.floatField("ElpHeight"),
			Yaw:       env.floatField("Yaw"),
		}, nil
	case TypeMotionControl:
		resp := MotionControlResponse{
			Seq:  seq,
			Time: env.Time,

			Command:   env.Command,
			ErrorCode: env.intField("ErrorCode"),
		}
		// Gait acks report an integer mode; every other sub-command
		// echoes a float scalar.
		if env.Command == CommandGait {
			resp.ValueInt = env.intField("Value")
		} else {
			resp.ValueFloat = env.floatField("Value")
		}
		return resp, nil
	case TypeRTKRawData:
		return RTKRawDataResponse{
			Seq:  seq,
			Time: env.Time,

			Longitude: env.floatField("Longitude"),
			Latitude:  env.floatField("Latitude"),
			ElpHeight: env.floatField("ElpHeight"),
			Yaw:       env.floatField("Yaw"),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownMessageType, int(env.Type))
	}
}
