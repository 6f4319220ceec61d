// Package metrics provides lightweight, lock-free counters for
// tracking runtime statistics of an rsterm session.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics for an rsterm session.
// A nil Collector is safe to use: all methods become no-ops.
type Collector struct {
	bytesIn        atomic.Int64
	bytesOut       atomic.Int64
	bytesDiscarded atomic.Int64
	keystrokes     atomic.Int64
	handshakes     atomic.Int64
	errorsTotal    atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── I/O metrics ──────────────────────────────────────────────────────

// BytesReceived records n payload bytes read from the peer.
func (c *Collector) BytesReceived(n int64) {
	if c == nil {
		return
	}
	c.bytesIn.Add(n)
}

// BytesSent records n bytes written to the peer.
func (c *Collector) BytesSent(n int64) {
	if c == nil {
		return
	}
	c.bytesOut.Add(n)
}

// BytesDiscarded records n inbound bytes consumed without display,
// such as the event that triggers the handshake.
func (c *Collector) BytesDiscarded(n int64) {
	if c == nil {
		return
	}
	c.bytesDiscarded.Add(n)
}

// TotalBytesIn returns total payload bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// TotalBytesOut returns total bytes sent.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// TotalBytesDiscarded returns total inbound bytes never displayed.
func (c *Collector) TotalBytesDiscarded() int64 {
	if c == nil {
		return 0
	}
	return c.bytesDiscarded.Load()
}

// ── Session events ───────────────────────────────────────────────────

// Keystroke records one byte forwarded from the local terminal.
func (c *Collector) Keystroke() {
	if c == nil {
		return
	}
	c.keystrokes.Add(1)
}

// Keystrokes returns the number of forwarded key bytes.
func (c *Collector) Keystrokes() int64 {
	if c == nil {
		return 0
	}
	return c.keystrokes.Load()
}

// HandshakeSent records a credential transmission.
func (c *Collector) HandshakeSent() {
	if c == nil {
		return
	}
	c.handshakes.Add(1)
}

// Handshakes returns the number of credentials sent.
func (c *Collector) Handshakes() int64 {
	if c == nil {
		return 0
	}
	return c.handshakes.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError increments the error counter and stores the message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// ErrorCount returns the total number of errors recorded.
func (c *Collector) ErrorCount() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Uptime           string `json:"uptime"`
	BytesIn          int64  `json:"bytes_in"`
	BytesOut         int64  `json:"bytes_out"`
	BytesDiscarded   int64  `json:"bytes_discarded"`
	Keystrokes       int64  `json:"keystrokes"`
	Handshakes       int64  `json:"handshakes"`
	ErrorsTotal      int64  `json:"errors_total"`
	LastError        string `json:"last_error,omitempty"`
	LastErrorMessage string `json:"last_error_message,omitempty"`
}

// Snapshot returns a copy of all current metrics.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		Uptime:         time.Since(c.startTime).Truncate(time.Second).String(),
		BytesIn:        c.bytesIn.Load(),
		BytesOut:       c.bytesOut.Load(),
		BytesDiscarded: c.bytesDiscarded.Load(),
		Keystrokes:     c.keystrokes.Load(),
		Handshakes:     c.handshakes.Load(),
		ErrorsTotal:    c.errorsTotal.Load(),
	}
	if !c.lastError.IsZero() {
		s.LastError = c.lastError.Format(time.RFC3339)
		s.LastErrorMessage = c.lastErrorMsg
	}
	return s
}

// JSON returns the snapshot as a compact JSON string.
func (c *Collector) JSON() string {
	data, _ := json.Marshal(c.Snapshot())
	return string(data)
}
