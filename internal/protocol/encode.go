package protocol

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// marshalDoc emits a bare document, no <?xml?> declaration; the server
// accepts and produces frames the same way.
func marshalDoc(v any) ([]byte, error) {
	out, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode frame: %w", err)
	}
	return out, nil
}

type emptyItemsXML struct {
	SeqNum int `xml:"SeqNum"`
}

type simpleRequestXML struct {
	XMLName xml.Name      `xml:"PatrolDevice"`
	Type    int           `xml:"Type"`
	Command int           `xml:"Command"`
	Time    string        `xml:"Time"`
	Items   emptyItemsXML `xml:"Items"`
}

type motionItemsXML struct {
	SeqNum    int    `xml:"SeqNum"`
	Direction int    `xml:"Direction,omitempty"`
	Config    int    `xml:"Config,omitempty"`
	Value     string `xml:"Value"`
}

type motionRequestXML struct {
	XMLName xml.Name       `xml:"PatrolDevice"`
	Type    int            `xml:"Type"`
	Command int            `xml:"Command"`
	Time    string         `xml:"Time"`
	Items   motionItemsXML `xml:"Items"`
}

type navPointXML struct {
	MapID     int     `xml:"MapId"`
	Value     int     `xml:"Value"`
	PosX      float32 `xml:"PosX"`
	PosY      float32 `xml:"PosY"`
	PosZ      float32 `xml:"PosZ"`
	AngleYaw  float32 `xml:"AngleYaw"`
	PointInfo int     `xml:"PointInfo"`
	Gait      int     `xml:"Gait"`
	Speed     int     `xml:"Speed"`
	Manner    int     `xml:"Manner"`
	ObsMode   int     `xml:"ObsMode"`
	NavMode   int     `xml:"NavMode"`
	Terrain   int     `xml:"Terrain"`
	Posture   int     `xml:"Posture"`
}

type navItemsXML struct {
	SeqNum int           `xml:"SeqNum"`
	Points []navPointXML `xml:"Point"`
}

type navRequestXML struct {
	XMLName xml.Name    `xml:"PatrolDevice"`
	Type    int         `xml:"Type"`
	Command int         `xml:"Command"`
	Time    string      `xml:"Time"`
	Items   navItemsXML `xml:"Items"`
}

// Encode serializes one outbound request to a single PatrolDevice document.
func Encode(msg Message) ([]byte, error) {
	switch m := msg.(type) {
	case RealTimeStatusRequest:
		return encodeSimple(TypeRealTimeStatus, m.Seq, m.Time)
	case CancelTaskRequest:
		return encodeSimple(TypeCancelTask, m.Seq, m.Time)
	case QueryStatusRequest:
		return encodeSimple(TypeQueryStatus, m.Seq, m.Time)
	case RTKFusionDataRequest:
		return encodeSimple(TypeRTKFusionData, m.Seq, m.Time)
	case RTKRawDataRequest:
		return encodeSimple(TypeRTKRawData, m.Seq, m.Time)
	case MotionControlRequest:
		return marshalDoc(motionRequestXML{
			Type:    int(TypeMotionControl),
			Command: m.Command,
			Time:    m.Time,
			Items: motionItemsXML{
				SeqNum:    int(m.Seq),
				Direction: m.Direction,
				Config:    m.ConfigID,
				Value:     motionValueString(m),
			},
		})
	case NavigationTaskRequest:
		points := make([]navPointXML, 0, len(m.Points))
		for _, p := range m.Points {
			points = append(points, navPointXML{
				MapID:     p.MapID,
				Value:     p.Value,
				PosX:      p.PosX,
				PosY:      p.PosY,
				PosZ:      p.PosZ,
				AngleYaw:  p.AngleYaw,
				PointInfo: p.PointInfo,
				Gait:      p.Gait,
				Speed:     p.Speed,
				Manner:    p.Manner,
				ObsMode:   p.ObsMode,
				NavMode:   p.NavMode,
				Terrain:   p.Terrain,
				Posture:   p.Posture,
			})
		}
		return marshalDoc(navRequestXML{
			Type:    int(TypeNavigationTask),
			Command: 1,
			Time:    m.Time,
			Items: navItemsXML{
				SeqNum: int(m.Seq),
				Points: points,
			},
		})
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnencodableMessage, msg)
	}
}

func encodeSimple(t MessageType, seq uint16, ts string) ([]byte, error) {
	return marshalDoc(simpleRequestXML{
		Type:    int(t),
		Command: 1,
		Time:    ts,
		Items:   emptyItemsXML{SeqNum: int(seq)},
	})
}

// motionValueString renders the command argument with enough digits to
// round-trip single precision.
func motionValueString(m MotionControlRequest) string {
	if m.Command == CommandSpeed {
		return strconv.FormatFloat(float64(m.FloatValue), 'g', -1, 32)
	}
	return strconv.Itoa(m.IntValue)
}
