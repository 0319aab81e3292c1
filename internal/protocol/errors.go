package protocol

import "errors"

var (
	ErrNotPatrolDevice    = errors.New("protocol: root element is not PatrolDevice")
	ErrUnknownMessageType = errors.New("protocol: unknown message type")
	ErrMalformedFrame     = errors.New("protocol: malformed frame")
	ErrUnencodableMessage = errors.New("protocol: message kind has no encoding")
)
