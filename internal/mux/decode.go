package mux

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewTextWriter decodes the inbound byte stream as UTF-8 before it
// reaches w.  Malformed sequences become U+FFFD rather than being
// dropped, and a multi-byte character split across two reads is held
// back until its remaining bytes arrive.  Close flushes any trailing
// partial sequence; it does not close w.
func NewTextWriter(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, unicode.UTF8.NewDecoder())
}
