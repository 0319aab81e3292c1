// Package correlator matches response frames to in-flight requests.
//
// Two independent tables, each behind its own mutex:
//   - pending: sync calls awaiting their response, keyed by sequence number
//   - async: navigation-completion callbacks, keyed by sequence number
//
// A sequence number lives in at most one table. Neither lock is held
// while user code runs.
package correlator

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/robopatrol/patrolsdk/internal/protocol"
)

// Outcome reports how a wait ended.
type Outcome int

const (
	Received Outcome = iota
	TimedOut
)

// AsyncCallback receives a deferred completion. A nil message means the
// entry was orphaned by disconnect and no response will ever arrive.
type AsyncCallback func(msg protocol.Message)

type pendingRequest struct {
	expected protocol.MessageType
	done     chan struct{}
	signaled bool
	response protocol.Message
}

// Correlator owns sequence allocation and response dispatch.
type Correlator struct {
	seq atomic.Uint32

	pendingMu sync.Mutex
	pending   map[uint16]*pendingRequest

	asyncMu sync.Mutex
	async   map[uint16]AsyncCallback
}

func New() *Correlator {
	return &Correlator{
		pending: make(map[uint16]*pendingRequest),
		async:   make(map[uint16]AsyncCallback),
	}
}

// NextSequence allocates the next sequence number: increment first, then
// use, wrapping through 65535. Collisions with a still-live number are
// tolerated, not prevented; the earlier holder's scoped cleanup restores
// the table, and the cycle length dwarfs the in-flight window.
func (c *Correlator) NextSequence() uint16 {
	return uint16(c.seq.Add(1))
}

// Waiter is the consumer half of one pending sync call.
type Waiter struct {
	done <-chan struct{}
}

// Wait blocks until the response is signaled or d elapses. The entry is
// signaled at most once per BeginSync, so duplicate responses cannot
// complete it twice; once signaled, every Wait call returns Received.
func (w Waiter) Wait(d time.Duration) Outcome {
	select {
	case <-w.done:
		return Received
	case <-time.After(d):
		return TimedOut
	}
}

// BeginSync allocates a sequence number and inserts a pending entry for
// the expected response type. The caller must Cancel(seq) on every exit
// path.
func (c *Correlator) BeginSync(expected protocol.MessageType) (uint16, Waiter) {
	seq := c.NextSequence()
	req := &pendingRequest{
		expected: expected,
		done:     make(chan struct{}),
	}
	c.pendingMu.Lock()
	c.pending[seq] = req
	c.pendingMu.Unlock()
	return seq, Waiter{done: req.done}
}

// BeginAsync allocates a sequence number and stores cb until the deferred
// completion arrives or the table is drained.
func (c *Correlator) BeginAsync(cb AsyncCallback) uint16 {
	seq := c.NextSequence()
	c.asyncMu.Lock()
	c.async[seq] = cb
	c.asyncMu.Unlock()
	return seq
}

// TakeResponse removes and returns the stored response, if one arrived.
func (c *Correlator) TakeResponse(seq uint16) (protocol.Message, bool) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	req, ok := c.pending[seq]
	if !ok || !req.signaled || req.response == nil {
		return nil, false
	}
	resp := req.response
	req.response = nil
	return resp, true
}

// Cancel removes seq from whichever table holds it. Safe to call on every
// exit path, including after the entry is already gone.
func (c *Correlator) Cancel(seq uint16) {
	c.pendingMu.Lock()
	delete(c.pending, seq)
	c.pendingMu.Unlock()

	c.asyncMu.Lock()
	delete(c.async, seq)
	c.asyncMu.Unlock()
}

// Deliver dispatches one inbound message. Navigation completions pop the
// async table and invoke the callback on the caller's goroutine (the
// transport reader); everything else signals the matching pending entry.
// Unknown sequence numbers and type mismatches are dropped silently.
func (c *Correlator) Deliver(msg protocol.Message) {
	seq := msg.SequenceNumber()

	if msg.Type() == protocol.TypeNavigationTask {
		c.asyncMu.Lock()
		cb, ok := c.async[seq]
		if ok {
			delete(c.async, seq)
		}
		c.asyncMu.Unlock()
		if ok && cb != nil {
			cb(msg)
		}
		return
	}

	c.pendingMu.Lock()
	req, ok := c.pending[seq]
	if ok && req.expected == msg.Type() && !req.signaled {
		req.response = msg
		req.signaled = true
		close(req.done)
	}
	c.pendingMu.Unlock()
}

// DrainAsync empties the async table and returns the orphaned callbacks
// so the caller can invoke each with a terminal result. Called on
// disconnect, after the reader has been joined.
func (c *Correlator) DrainAsync() []AsyncCallback {
	c.asyncMu.Lock()
	defer c.asyncMu.Unlock()
	out := make([]AsyncCallback, 0, len(c.async))
	for seq, cb := range c.async {
		delete(c.async, seq)
		if cb != nil {
			out = append(out, cb)
		}
	}
	return out
}

// PendingCount reports live sync entries; zero after all calls unwind.
func (c *Correlator) PendingCount() int {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	return len(c.pending)
}

// AsyncCount reports live navigation-callback entries.
func (c *Correlator) AsyncCount() int {
	c.asyncMu.Lock()
	defer c.asyncMu.Unlock()
	return len(c.async)
}
