// Package terminal owns the local terminal's mode for the lifetime of a
// session: it snapshots the original attributes, switches to raw mode,
// and puts the snapshot back exactly once.
package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"

	rerrors "rsterm/internal/errors"
)

// Device is the controlling terminal as seen by the Controller.
type Device interface {
	IsTerminal() bool
	GetState() (*term.State, error)
	MakeRaw() (*term.State, error)
	Restore(state *term.State) error
}

// FileDevice is a Device backed by a file descriptor, usually stdin.
type FileDevice struct {
	fd int
}

// NewFileDevice returns a Device for f.
func NewFileDevice(f *os.File) *FileDevice {
	return &FileDevice{fd: int(f.Fd())}
}

func (d *FileDevice) IsTerminal() bool                { return term.IsTerminal(d.fd) }
func (d *FileDevice) GetState() (*term.State, error)  { return term.GetState(d.fd) }
func (d *FileDevice) MakeRaw() (*term.State, error)   { return term.MakeRaw(d.fd) }
func (d *FileDevice) Restore(state *term.State) error { return term.Restore(d.fd, state) }

// Controller tracks the original mode of a Device.
//
// The original mode is captured once, before any raw-mode switch, and
// restored at most once.  Restore is a no-op when raw mode was never
// entered or has already been undone.
type Controller struct {
	dev Device

	mu       sync.Mutex
	original *term.State
	raw      bool
	restored bool
}

// NewController returns a Controller for dev.
func NewController(dev Device) *Controller {
	return &Controller{dev: dev}
}

// Capture snapshots the current terminal attributes.  It fails with
// ErrTerminalUnavailable when the device is not a terminal.  Later
// calls keep the first snapshot.
func (c *Controller) Capture() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.original != nil {
		return nil
	}
	if !c.dev.IsTerminal() {
		return rerrors.ErrTerminalUnavailable
	}
	state, err := c.dev.GetState()
	if err != nil {
		return fmt.Errorf("%w: %v", rerrors.ErrTerminalUnavailable, err)
	}
	c.original = state
	return nil
}

// EnterRawMode disables line buffering, echo, and signal-generating
// control characters.  Capture must have succeeded first.
func (c *Controller) EnterRawMode() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.original == nil {
		return rerrors.ErrNotCaptured
	}
	if c.raw {
		return nil
	}
	if c.restored {
		return fmt.Errorf("raw mode: terminal already restored")
	}
	if _, err := c.dev.MakeRaw(); err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	c.raw = true
	return nil
}

// Restore re-applies the captured attributes.  Only the first call
// after EnterRawMode touches the device.
func (c *Controller) Restore() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.raw || c.restored {
		return nil
	}
	c.restored = true
	c.raw = false
	if err := c.dev.Restore(c.original); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// IsRaw reports whether the terminal is currently in raw mode.
func (c *Controller) IsRaw() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.raw
}
