// Package core is the orchestration layer.  It composes the transport,
// the terminal controller, the event loop and the teardown path into a
// complete session, and provides a builder that turns a Config into a
// runnable Mode.
//
// Architecture layers (bottom → top):
//
//	transport, terminal, handshake  →  mux  →  session, teardown  →  core  →  cmd (CLI)
package core

import "context"

// Mode is a complete operational mode of rsterm.  A Mode owns its full
// lifecycle from connection establishment to terminal restoration.
type Mode interface {
	Run(ctx context.Context) error
}
