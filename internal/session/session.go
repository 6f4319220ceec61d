// Package session holds the state of one terminal session: the
// connection, the terminal controller, the handshake, and where inbound
// text goes.  The same Session value is handed to the event loop and
// to the teardown path, so nothing lives in package globals.
package session

import (
	"io"

	"rsterm/internal/handshake"
	"rsterm/internal/metrics"
	"rsterm/internal/mux"
	"rsterm/internal/terminal"
	"rsterm/internal/transport"
	"rsterm/util"
)

// Session encapsulates the runtime context for a single connection.
type Session struct {
	Conn      *transport.Connection
	Terminal  *terminal.Controller
	Handshake *handshake.Handshake
	Display   io.Writer
	Logger    *util.Logger
	Metrics   *metrics.Collector

	sink *Transcript
	text io.WriteCloser
}

// New creates a Session bound to the given connection and display.
func New(conn *transport.Connection, term *terminal.Controller, hs *handshake.Handshake,
	display io.Writer, logger *util.Logger, m *metrics.Collector) *Session {
	if logger == nil {
		logger = util.NewLogger(0)
	}
	return &Session{
		Conn:      conn,
		Terminal:  term,
		Handshake: hs,
		Display:   display,
		Logger:    logger,
		Metrics:   m,
	}
}

// OpenSink starts appending decoded inbound text to path.  It must be
// called before the first call to Output.
func (s *Session) OpenSink(path string) error {
	t, err := OpenTranscript(path)
	if err != nil {
		return err
	}
	s.sink = t
	s.Logger.Verbose("transcript: appending to %s", path)
	return nil
}

// Sink returns the transcript, or nil when none was opened.
func (s *Session) Sink() *Transcript { return s.sink }

// Output returns the writer inbound payload is written to.  Bytes are
// decoded as UTF-8 and then copied to the display and, if configured,
// the transcript.
func (s *Session) Output() io.Writer {
	if s.text == nil {
		var dst io.Writer = s.Display
		if s.sink != nil {
			dst = io.MultiWriter(s.Display, s.sink)
		}
		s.text = mux.NewTextWriter(dst)
	}
	return s.text
}

// Flush pushes buffered transcript data to disk.  It is safe to call
// without a transcript.
func (s *Session) Flush() {
	if s.sink == nil {
		return
	}
	if err := s.sink.Flush(); err != nil {
		s.Logger.Verbose("transcript: flush: %v", err)
	}
}

// Decoder returns the text decoder behind Output, or nil if Output
// was never called.  Closing it flushes a trailing partial character.
func (s *Session) Decoder() io.Closer {
	if s.text == nil {
		return nil
	}
	return s.text
}

// Closers lists what teardown must close after the decoder, in order:
// the transcript, then the connection.
func (s *Session) Closers() []io.Closer {
	var out []io.Closer
	if s.sink != nil {
		out = append(out, s.sink)
	}
	if s.Conn != nil {
		out = append(out, s.Conn)
	}
	return out
}
