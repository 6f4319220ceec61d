package session

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"rsterm/config"
)

// Transcript is an append-only, buffered file of inbound text.
type Transcript struct {
	mu     sync.Mutex
	f      *os.File
	w      *bufio.Writer
	closed bool
}

// OpenTranscript opens path for appending, creating it if needed.
// Existing content is never truncated.
func OpenTranscript(path string) (*Transcript, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, config.TranscriptMode)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	return &Transcript{f: f, w: bufio.NewWriter(f)}, nil
}

// Name returns the file path.
func (t *Transcript) Name() string { return t.f.Name() }

func (t *Transcript) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return 0, os.ErrClosed
	}
	return t.w.Write(p)
}

// Flush writes buffered data to the file.
func (t *Transcript) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	return t.w.Flush()
}

// Close flushes and closes the file.  Later calls are no-ops.
func (t *Transcript) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	ferr := t.w.Flush()
	cerr := t.f.Close()
	if ferr != nil {
		return ferr
	}
	return cerr
}
