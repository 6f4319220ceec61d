// Package teardown is the single shutdown path of a session.  The exit
// key, an OS signal and a connection fault all end up in
// Coordinator.Teardown, which releases resources and restores the
// terminal last.
package teardown

import (
	"fmt"
	"io"
	"sync"

	rerrors "rsterm/internal/errors"
	"rsterm/internal/metrics"
	"rsterm/internal/mux"
	"rsterm/util"
)

// Exit statuses returned by Teardown.
const (
	ExitOK    = 0
	ExitFault = 1
)

// ResetMessage is printed when the session ends on a fault.
const ResetMessage = "connect reset!"

// Restorer puts the terminal back the way it was found.
type Restorer interface {
	Restore() error
}

// Coordinator runs teardown at most once.  Concurrent and repeated
// calls block until the first one finishes and then return its status.
type Coordinator struct {
	Display  io.Writer   // status output; CRLF-translated while raw
	Terminal Restorer    // may be nil when raw mode was never entered
	Drain    io.Closer   // flushes buffered display output ahead of the status line
	Closers  []io.Closer // closed in order after the status line: transcript, then connection
	Logger   *util.Logger
	Metrics  *metrics.Collector

	once sync.Once
	code int
}

// Teardown ends the session for outcome and returns the process exit
// status.
func (c *Coordinator) Teardown(outcome mux.Outcome) int {
	c.once.Do(func() {
		c.code = c.run(outcome)
	})
	return c.code
}

func (c *Coordinator) run(outcome mux.Outcome) int {
	log := c.Logger
	if log == nil {
		log = util.NewLogger(0)
	}
	log.Debug("teardown: %s", outcome.Reason)

	if c.Drain != nil {
		if err := c.Drain.Close(); err != nil {
			log.Verbose("teardown: drain: %v", err)
		}
	}

	// Peer output may stop mid-line, so the status line starts fresh.
	code := ExitOK
	c.println("")
	if outcome.Reason == mux.ReasonFault {
		code = ExitFault
		c.println(ResetMessage)
	}

	for _, cl := range c.Closers {
		if cl == nil {
			continue
		}
		if err := cl.Close(); err != nil && !rerrors.IsHarmless(err) {
			log.Verbose("teardown: close: %v", err)
		}
	}

	if c.Metrics != nil {
		log.Verbose("session stats: %s", c.Metrics.JSON())
	}

	if c.Terminal != nil {
		if err := c.Terminal.Restore(); err != nil {
			log.Error("restore terminal: %v", err)
			if code == ExitOK {
				code = ExitFault
			}
		}
	}
	return code
}

func (c *Coordinator) println(s string) {
	if c.Display == nil {
		return
	}
	fmt.Fprintln(c.Display, s) //nolint:errcheck
}

// Err converts an outcome and status into the error returned to main.
// Clean exits yield nil.
func Err(outcome mux.Outcome, code int) error {
	if code == ExitOK {
		return nil
	}
	return rerrors.Exit(code, outcome.Err)
}
