package protocol

import (
	"errors"
	"strings"
	"testing"

	"github.com/robopatrol/patrolsdk/internal/testutil/testlog"
)

func TestEncodeSimpleRequestCarriesTypeAndSeq(t *testing.T) {
	testlog.Start(t)
	frame, err := Encode(RealTimeStatusRequest{Seq: 42, Time: "2025-01-15 10:22:33"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, err := DecodeEnvelope(frame)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Type != TypeRealTimeStatus {
		t.Fatalf("unexpected type: %d", env.Type)
	}
	if env.SequenceNumber() != 42 {
		t.Fatalf("unexpected seq: %d", env.SequenceNumber())
	}
	if env.Time != "2025-01-15 10:22:33" {
		t.Fatalf("unexpected time: %q", env.Time)
	}
}

func TestDecodeResponseRealTimeStatusFields(t *testing.T) {
	testlog.Start(t)
	frame := []byte(`<PatrolDevice>
		<Type>1002</Type><Command>1</Command><Time>2025-01-15 10:22:33</Time>
		<Items>
			<SeqNum>7</SeqNum>
			<PosX>1.5</PosX>
			<Electricity>88</Electricity>
			<FutureField>ignored</FutureField>
		</Items>
	</PatrolDevice>`)
	msg, err := DecodeResponse(frame)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp, ok := msg.(RealTimeStatusResponse)
	if !ok {
		t.Fatalf("unexpected message type %T", msg)
	}
	if resp.Seq != 7 {
		t.Fatalf("unexpected seq: %d", resp.Seq)
	}
	if resp.PosX != 1.5 {
		t.Fatalf("unexpected posX: %v", resp.PosX)
	}
	if resp.Electricity != 88 {
		t.Fatalf("unexpected electricity: %d", resp.Electricity)
	}
	// Absent optional fields read as zero.
	if resp.PosY != 0 || resp.GaitState != 0 {
		t.Fatalf("expected zero defaults: %+v", resp)
	}
}

func TestMotionResponseValueTyping(t *testing.T) {
	testlog.Start(t)
	gait := []byte(`<PatrolDevice><Type>2</Type><Command>20</Command><Time>t</Time>
		<Items><SeqNum>3</SeqNum><Value>1</Value><ErrorCode>0</ErrorCode></Items></PatrolDevice>`)
	msg, err := DecodeResponse(gait)
	if err != nil {
		t.Fatalf("decode gait ack: %v", err)
	}
	resp := msg.(MotionControlResponse)
	if resp.ValueInt != 1 || resp.ValueFloat != 0 {
		t.Fatalf("gait ack should be integer-valued: %+v", resp)
	}

	speed := []byte(`<PatrolDevice><Type>2</Type><Command>10</Command><Time>t</Time>
		<Items><SeqNum>4</SeqNum><Value>0.5</Value><ErrorCode>0</ErrorCode></Items></PatrolDevice>`)
	msg, err = DecodeResponse(speed)
	if err != nil {
		t.Fatalf("decode speed ack: %v", err)
	}
	resp = msg.(MotionControlResponse)
	if resp.ValueFloat != 0.5 || resp.ValueInt != 0 {
		t.Fatalf("speed ack should be float-valued: %+v", resp)
	}
}

func TestEncodeSpeedRequestRoundTripsSinglePrecision(t *testing.T) {
	testlog.Start(t)
	frame, err := Encode(MotionControlRequest{
		Seq:        9,
		Time:       "t",
		Command:    CommandSpeed,
		Direction:  2,
		FloatValue: 0.30000001192092896,
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, err := DecodeEnvelope(frame)
	if err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if got := env.floatField("Value"); got != float32(0.3) {
		t.Fatalf("value did not round-trip: %v", got)
	}
	if env.intField("Direction") != 2 {
		t.Fatalf("missing direction: %+v", env)
	}
}

func TestEncodeNavTaskPreservesPointOrder(t *testing.T) {
	testlog.Start(t)
	frame, err := Encode(NavigationTaskRequest{
		Seq:  11,
		Time: "t",
		Points: []NavigationPoint{
			{MapID: 1, PosX: 0, PosY: 0},
			{MapID: 1, PosX: 5, PosY: 0},
			{MapID: 1, PosX: 5, PosY: 5},
		},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	doc := string(frame)
	first := strings.Index(doc, "<PosX>0</PosX>")
	second := strings.Index(doc, "<PosX>5</PosX>")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("point order not preserved:\n%s", doc)
	}
	if strings.Count(doc, "<Point>") != 3 {
		t.Fatalf("expected 3 points:\n%s", doc)
	}
}

func TestDecodeResponseNavigationTask(t *testing.T) {
	testlog.Start(t)
	frame := []byte(`<PatrolDevice><Type>1003</Type><Command>1</Command><Time>t</Time>
		<Items><SeqNum>12</SeqNum><Value>0</Value><ErrorCode>0</ErrorCode><ErrorStatus>0</ErrorStatus></Items></PatrolDevice>`)
	msg, err := DecodeResponse(frame)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp, ok := msg.(NavigationTaskResponse)
	if !ok {
		t.Fatalf("unexpected message type %T", msg)
	}
	if resp.Seq != 12 || resp.ErrorCode != 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestDecodeResponseRTKFields(t *testing.T) {
	testlog.Start(t)
	frame := []byte(`<PatrolDevice><Type>2102</Type><Command>1</Command><Time>t</Time>
		<Items><SeqNum>5</SeqNum><Longitude>116.3</Longitude><Latitude>39.9</Latitude><ElpHeight>43.5</ElpHeight><Yaw>1.57</Yaw></Items></PatrolDevice>`)
	msg, err := DecodeResponse(frame)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	resp, ok := msg.(RTKFusionDataResponse)
	if !ok {
		t.Fatalf("unexpected message type %T", msg)
	}
	if resp.Longitude != 116.3 || resp.Latitude != 39.9 {
		t.Fatalf("unexpected coordinates: %+v", resp)
	}
}

func TestDecodeResponseUnknownType(t *testing.T) {
	testlog.Start(t)
	frame := []byte(`<PatrolDevice><Type>9999</Type><Command>1</Command><Time>t</Time><Items><SeqNum>1</SeqNum></Items></PatrolDevice>`)
	if _, err := DecodeResponse(frame); !errors.Is(err, ErrUnknownMessageType) {
		t.Fatalf("expected ErrUnknownMessageType, got %v", err)
	}
}

func TestDecodeEnvelopeRejectsGarbage(t *testing.T) {
	testlog.Start(t)
	if _, err := DecodeEnvelope([]byte("not xml at all")); err == nil {
		t.Fatalf("expected decode failure")
	}
	if _, err := DecodeEnvelope([]byte("<Other><Type>1</Type></Other>")); !errors.Is(err, ErrNotPatrolDevice) {
		t.Fatalf("expected ErrNotPatrolDevice")
	}
}

func TestExpectedResponseIsDeterministic(t *testing.T) {
	testlog.Start(t)
	for _, typ := range []MessageType{
		TypeMotionControl, TypeRealTimeStatus, TypeNavigationTask,
		TypeCancelTask, TypeQueryStatus, TypeRTKFusionData, TypeRTKRawData,
	} {
		if ExpectedResponse(typ) != typ {
			t.Fatalf("pairing must echo the request type for %d", typ)
		}
	}
}
