// Package transport owns the byte-stream link to the robot server.
//
// Ownership boundary:
// - connect/disconnect lifecycle and connection-loss detection
// - frame boundary scanning on the inbound stream
// - the reader goroutine that hands complete frames upward
//
// Transports know nothing about protocol semantics; they deliver whole
// PatrolDevice documents in arrival order.
package transport
