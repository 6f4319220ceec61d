// Package errors provides domain-specific error types for rsterm.
//
// Faults seen on the wire are classified into a small taxonomy
// (refused, reset, terminal unavailable) so the session can pick a
// short user-facing diagnostic instead of dumping the raw error.
package errors

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrConnectionRefused   = errors.New("connection refused")
	ErrConnectionReset     = errors.New("connection reset")
	ErrTerminalUnavailable = errors.New("no controlling terminal")
	ErrDecode              = errors.New("inbound data is not valid text")
	ErrNotCaptured         = errors.New("terminal mode not captured")
)

// ── Structured error types ───────────────────────────────────────────

// NetworkError represents a failure in a network operation.
type NetworkError struct {
	Op   string // operation: "dial", "read", "write"
	Addr string // network address involved
	Kind error  // classified sentinel, nil when unclassified
	Err  error  // underlying error
}

func (e *NetworkError) Error() string {
	if e.Addr == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Addr, e.Err)
}

// Unwrap exposes both the classification and the cause to errors.Is.
func (e *NetworkError) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Kind, e.Err}
}

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ExitError carries a process exit status for a failure that has
// already been reported to the user.  main exits with Code and prints
// nothing further.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates a NetworkError and classifies the underlying error as
// refused or reset where possible.
func Wrap(op, addr string, err error) *NetworkError {
	return &NetworkError{
		Op:   op,
		Addr: addr,
		Kind: classify(err),
		Err:  err,
	}
}

// Exit wraps err as an already-reported failure with the given status.
func Exit(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// ── Classification helpers ───────────────────────────────────────────

// IsRefused reports whether err means the peer rejected the connection.
func IsRefused(err error) bool {
	return errors.Is(err, ErrConnectionRefused) || isAny(err, refusedErrnos)
}

// IsReset reports whether err means the peer has gone away.
func IsReset(err error) bool {
	return err != nil && classify(err) == ErrConnectionReset
}

// IsHarmless returns true for errors that are expected during shutdown.
func IsHarmless(err error) bool {
	if err == nil {
		return true
	}
	return errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed)
}

// classify maps stdlib and errno values onto the rsterm taxonomy.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConnectionRefused), isAny(err, refusedErrnos):
		return ErrConnectionRefused
	case errors.Is(err, ErrConnectionReset),
		isAny(err, resetErrnos),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.ErrClosedPipe),
		errors.Is(err, net.ErrClosed):
		return ErrConnectionReset
	}
	return nil
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// ── Re-exports for convenience ───────────────────────────────────────

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }

// Join is [errors.Join].
func Join(errs ...error) error { return errors.Join(errs...) }
