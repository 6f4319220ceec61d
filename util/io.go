package util

import (
	"bytes"
	"io"
	"sync"
)

// DefaultBufSize is the size of a single read from the remote peer.
const DefaultBufSize = 1024

// CRLFWriter translates bare "\n" into "\r\n".  A terminal in raw mode
// has output post-processing disabled, so status and log lines written
// while raw would otherwise stair-step across the screen.
type CRLFWriter struct {
	mu   sync.Mutex
	w    io.Writer
	last byte
}

// NewCRLFWriter wraps w.
func NewCRLFWriter(w io.Writer) *CRLFWriter {
	return &CRLFWriter{w: w}
}

// Write converts p and reports len(p) on success so callers see the
// byte count they asked to write.
func (c *CRLFWriter) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(p) == 0 {
		return 0, nil
	}
	out := make([]byte, 0, len(p)+bytes.Count(p, []byte{'\n'}))
	prev := c.last
	for _, b := range p {
		if b == '\n' && prev != '\r' {
			out = append(out, '\r')
		}
		out = append(out, b)
		prev = b
	}
	if _, err := c.w.Write(out); err != nil {
		return 0, err
	}
	c.last = prev
	return len(p), nil
}
