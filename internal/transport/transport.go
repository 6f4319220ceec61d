// Package transport provides the connection to the remote peer.
// Dialers handle establishment; Connection wraps the resulting socket
// with the send/receive primitives the session loop uses.
package transport

import (
	"context"
	"net"
)

// Dialer opens outbound network connections.
type Dialer interface {
	// Dial establishes a connection to the given network address.
	Dial(ctx context.Context, network, address string) (net.Conn, error)

	// Close releases any long-lived resources held by the dialer.
	// Stateless dialers return nil.
	Close() error
}
