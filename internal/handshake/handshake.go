// Package handshake implements the one-shot credential exchange some
// serial gateways expect on first contact.
//
// The exchange is unilateral: the first inbound event, whatever it
// carries, is answered with the credential and then discarded.  No
// acknowledgment from the peer is read or checked.
package handshake

import (
	"encoding/binary"
	"fmt"
)

// Size is the width of the credential on the wire.
const Size = 4

// Credential encodes v as 4 little-endian bytes.
func Credential(v uint32) []byte {
	b := make([]byte, Size)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// SendFunc writes bytes to the peer.
type SendFunc func([]byte) error

// Handshake tracks whether the session has authenticated.  The state
// moves from unauthenticated to authenticated at most once.  It is not
// safe for concurrent use; the session loop is its only caller.
type Handshake struct {
	credential    uint32
	enabled       bool
	authenticated bool
}

// New returns a Handshake that will send credential.  A disabled
// handshake starts authenticated and passes every event through.
func New(credential uint32, enabled bool) *Handshake {
	return &Handshake{
		credential:    credential,
		enabled:       enabled,
		authenticated: !enabled,
	}
}

// Enabled reports whether the exchange is configured at all.
func (h *Handshake) Enabled() bool { return h.enabled }

// Authenticated reports whether the credential has been sent, or the
// handshake is disabled.
func (h *Handshake) Authenticated() bool { return h.authenticated }

// Inbound processes one inbound event.  Before authentication it sends
// the credential, flips state, and returns a nil payload: data is
// consumed regardless of its content.  Afterwards data is returned
// unchanged.
//
// If send fails the state does not change and the error is returned.
func (h *Handshake) Inbound(data []byte, send SendFunc) ([]byte, error) {
	if h.authenticated {
		return data, nil
	}
	if err := send(Credential(h.credential)); err != nil {
		return nil, fmt.Errorf("send credential: %w", err)
	}
	h.authenticated = true
	return nil, nil
}
