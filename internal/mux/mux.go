// Package mux is the session's event loop.  It waits on the local
// keyboard and the remote connection at the same time and dispatches
// whichever becomes ready: keystrokes go to the peer, peer data goes
// to the display.
//
// Each source has its own reader goroutine feeding a channel; a single
// select loop owns every send, every display write, and the handshake
// state, so nothing the loop touches needs a lock.
package mux

import (
	"context"
	"fmt"
	"io"
	"time"

	"rsterm/config"
	rerrors "rsterm/internal/errors"
	"rsterm/internal/handshake"
	"rsterm/internal/metrics"
	"rsterm/util"
)

// Endpoint is the remote side of the session.
type Endpoint interface {
	Send(p []byte) error
	Receive() ([]byte, error)
}

// Reason says why the loop stopped.
type Reason int

const (
	ReasonExitKey Reason = iota + 1 // user pressed the exit key
	ReasonSignal                    // context cancelled, usually by an OS signal
	ReasonFault                     // connection reset or I/O failure
)

func (r Reason) String() string {
	switch r {
	case ReasonExitKey:
		return "exit-key"
	case ReasonSignal:
		return "signal"
	case ReasonFault:
		return "fault"
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

// Outcome is the result of Run.  Err is set for faults.
type Outcome struct {
	Reason Reason
	Err    error
}

// Multiplexer relays bytes between Keys and Conn until a teardown
// trigger fires.
type Multiplexer struct {
	Conn      Endpoint
	Keys      io.Reader
	Display   io.Writer
	Handshake *handshake.Handshake // nil disables the credential exchange

	ExitKey      byte          // defaults to Ctrl+X
	PollInterval time.Duration // defaults to config.DefaultPollInterval
	OnTick       func()        // called once per idle interval

	Logger  *util.Logger
	Metrics *metrics.Collector
}

type keyEvent struct {
	b   byte
	err error
}

type netEvent struct {
	data []byte
	err  error
}

// Run blocks until the exit key is read, ctx is cancelled, or the
// connection faults.  It never restores the terminal itself; the
// caller hands the Outcome to the teardown path.
func (m *Multiplexer) Run(ctx context.Context) Outcome {
	exitKey := m.ExitKey
	if exitKey == 0 {
		exitKey = config.DefaultExitKey
	}
	interval := m.PollInterval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}
	hs := m.Handshake
	if hs == nil {
		hs = handshake.New(0, false)
	}

	done := make(chan struct{})
	defer close(done)

	keys := make(chan keyEvent, 64)
	inbound := make(chan netEvent, 16)
	go m.readKeys(keys, done)
	go m.readConn(inbound, done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Keys typed before the credential goes out wait here so the
	// credential is always the first thing the peer sees.
	var pending []byte

	for {
		select {
		case <-ctx.Done():
			m.logger().Debug("loop cancelled: %v", ctx.Err())
			return Outcome{Reason: ReasonSignal}

		case ev := <-keys:
			if ev.err != nil {
				return m.fault(fmt.Errorf("terminal input: %w", ev.err))
			}
			if ev.b == exitKey {
				m.logger().Debug("exit key received")
				return Outcome{Reason: ReasonExitKey}
			}
			if !hs.Authenticated() {
				pending = append(pending, ev.b)
				continue
			}
			if err := m.sendKeys([]byte{ev.b}); err != nil {
				return m.fault(err)
			}

		case ev := <-inbound:
			if ev.err != nil {
				return m.fault(ev.err)
			}
			authenticated := hs.Authenticated()
			payload, err := hs.Inbound(ev.data, m.sendCredential)
			if err != nil {
				return m.fault(err)
			}
			if !authenticated {
				m.logger().Verbose("handshake: credential sent, %d inbound byte(s) discarded", len(ev.data))
				m.Metrics.BytesDiscarded(int64(len(ev.data)))
				if len(pending) > 0 {
					if err := m.sendKeys(pending); err != nil {
						return m.fault(err)
					}
					m.logger().Debug("handshake: flushed %d queued key byte(s)", len(pending))
					pending = nil
				}
				continue
			}
			m.Metrics.BytesReceived(int64(len(payload)))
			if _, err := m.Display.Write(payload); err != nil {
				return m.fault(fmt.Errorf("display: %w", err))
			}

		case <-ticker.C:
			if m.OnTick != nil {
				m.OnTick()
			}
		}
	}
}

func (m *Multiplexer) sendKeys(p []byte) error {
	if err := m.Conn.Send(p); err != nil {
		return err
	}
	for range p {
		m.Metrics.Keystroke()
	}
	m.Metrics.BytesSent(int64(len(p)))
	return nil
}

func (m *Multiplexer) sendCredential(p []byte) error {
	if err := m.Conn.Send(p); err != nil {
		return err
	}
	m.Metrics.HandshakeSent()
	m.Metrics.BytesSent(int64(len(p)))
	return nil
}

func (m *Multiplexer) fault(err error) Outcome {
	m.Metrics.RecordError(err.Error())
	if rerrors.IsReset(err) {
		m.logger().Verbose("connection reset: %v", err)
	} else {
		m.logger().Verbose("session fault: %v", err)
	}
	return Outcome{Reason: ReasonFault, Err: err}
}

// readKeys reads the terminal one byte at a time.
func (m *Multiplexer) readKeys(out chan<- keyEvent, done <-chan struct{}) {
	var buf [1]byte
	for {
		n, err := m.Keys.Read(buf[:])
		if n == 1 {
			select {
			case out <- keyEvent{b: buf[0]}:
			case <-done:
				return
			}
		}
		if err != nil {
			select {
			case out <- keyEvent{err: err}:
			case <-done:
			}
			return
		}
	}
}

// readConn reads the connection until it fails.
func (m *Multiplexer) readConn(out chan<- netEvent, done <-chan struct{}) {
	for {
		data, err := m.Conn.Receive()
		if len(data) > 0 || err != nil {
			select {
			case out <- netEvent{data: data, err: err}:
			case <-done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

func (m *Multiplexer) logger() *util.Logger {
	if m.Logger == nil {
		m.Logger = util.NewLogger(0)
	}
	return m.Logger
}
