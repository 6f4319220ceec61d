package transport

import (
	"context"
	"io"
	"net"
	"sync"

	rerrors "rsterm/internal/errors"
	"rsterm/util"
)

// Connection owns the socket to the remote peer for one session.
// There is no reconnection: any fault is terminal.
type Connection struct {
	conn    net.Conn
	addr    string
	bufSize int

	closeOnce sync.Once
	closeErr  error
}

// Connect dials host:port through d.  A refused connection is reported
// as ErrConnectionRefused.
func Connect(ctx context.Context, d Dialer, host string, port int) (*Connection, error) {
	addr := util.FormatAddr(host, port)
	conn, err := d.Dial(ctx, "tcp", addr)
	if err != nil {
		return nil, rerrors.Wrap("dial", addr, err)
	}
	return NewConnection(conn), nil
}

// NewConnection wraps an established net.Conn.
func NewConnection(conn net.Conn) *Connection {
	return &Connection{
		conn:    conn,
		addr:    conn.RemoteAddr().String(),
		bufSize: util.DefaultBufSize,
	}
}

// PeerAddr returns the remote address.
func (c *Connection) PeerAddr() net.Addr { return c.conn.RemoteAddr() }

// SetReadBufferSize bounds a single Receive.  Non-positive values
// restore the default.
func (c *Connection) SetReadBufferSize(n int) {
	if n <= 0 {
		n = util.DefaultBufSize
	}
	c.bufSize = n
}

// Send writes p in full.  A peer that has gone away is reported as
// ErrConnectionReset.
func (c *Connection) Send(p []byte) error {
	for len(p) > 0 {
		n, err := c.conn.Write(p)
		if err != nil {
			return rerrors.Wrap("write", c.addr, err)
		}
		p = p[n:]
	}
	return nil
}

// Receive blocks until the peer sends data and returns up to the read
// buffer size in a freshly allocated slice.  End of stream, including a
// read of zero bytes, is reported as ErrConnectionReset.
func (c *Connection) Receive() ([]byte, error) {
	var buf []byte
	var pooled *[]byte
	if c.bufSize == util.DefaultBufSize {
		pooled = util.GetBuf()
		defer util.PutBuf(pooled)
		buf = *pooled
	} else {
		buf = make([]byte, c.bufSize)
	}

	n, err := c.conn.Read(buf)
	if n > 0 {
		out := make([]byte, n)
		copy(out, buf[:n])
		// Data that arrived with the error is still delivered; the
		// error surfaces on the next call.
		return out, nil
	}
	if err == nil {
		err = io.EOF
	}
	return nil, rerrors.Wrap("read", c.addr, err)
}

// Close closes the socket.  Later calls return the first result.
func (c *Connection) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}
