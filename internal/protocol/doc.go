// Package protocol owns the PatrolDevice wire contract.
//
// Ownership boundary:
// - message type codes and request/response pairing
// - typed request/response values
// - XML frame encode/decode
package protocol
