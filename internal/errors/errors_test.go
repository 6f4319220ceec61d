package errors

import (
	"fmt"
	"io"
	"net"
	"os"
	"testing"
)

func TestNetworkError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  *NetworkError
		want string
	}{
		{
			name: "with address",
			err:  &NetworkError{Op: "dial", Addr: "127.0.0.1:9000", Err: io.EOF},
			want: "dial 127.0.0.1:9000: EOF",
		},
		{
			name: "without address",
			err:  &NetworkError{Op: "read", Err: fmt.Errorf("boom")},
			want: "read: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrap_Classification(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		refused bool
		reset   bool
	}{
		{"refused errno", &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", refusedErrnos[0])}, true, false},
		{"reset errno", &net.OpError{Op: "read", Net: "tcp", Err: os.NewSyscallError("read", resetErrnos[0])}, false, true},
		{"aborted errno", &net.OpError{Op: "write", Net: "tcp", Err: os.NewSyscallError("write", resetErrnos[len(resetErrnos)-1])}, false, true},
		{"eof", io.EOF, false, true},
		{"closed", net.ErrClosed, false, true},
		{"plain", fmt.Errorf("something else"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Wrap("op", "addr", tt.err)
			if got := Is(err, ErrConnectionRefused); got != tt.refused {
				t.Errorf("Is(refused) = %v, want %v", got, tt.refused)
			}
			if got := Is(err, ErrConnectionReset); got != tt.reset {
				t.Errorf("Is(reset) = %v, want %v", got, tt.reset)
			}
			if got := IsRefused(err); got != tt.refused {
				t.Errorf("IsRefused = %v, want %v", got, tt.refused)
			}
			if got := IsReset(err); got != tt.reset {
				t.Errorf("IsReset = %v, want %v", got, tt.reset)
			}
			if !Is(err, tt.err) {
				t.Error("should unwrap to the underlying error")
			}
		})
	}
}

func TestConfigError_Format(t *testing.T) {
	tests := []struct {
		name string
		err  ConfigError
		want string
	}{
		{
			name: "with value and hint",
			err: ConfigError{
				Field:   "poll-interval",
				Value:   "5s",
				Message: "must not exceed 2s",
				Hint:    "use a shorter interval such as 500ms",
			},
			want: "config: --poll-interval=5s: must not exceed 2s\n  hint: use a shorter interval such as 500ms",
		},
		{
			name: "missing value no hint",
			err:  ConfigError{Field: "server", Message: "required"},
			want: "config: --server: required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	err := Exit(1, ErrConnectionReset)
	if err.Code != 1 {
		t.Errorf("Code = %d, want 1", err.Code)
	}
	if !Is(err, ErrConnectionReset) {
		t.Error("should unwrap to ErrConnectionReset")
	}
	var ee *ExitError
	if !As(fmt.Errorf("run: %w", err), &ee) {
		t.Fatal("As should find the ExitError through wrapping")
	}
	if got := (&ExitError{Code: 3}).Error(); got != "exit status 3" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsHarmless(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"net closed", &net.OpError{Op: "read", Err: net.ErrClosed}, true},
		{"file closed", os.ErrClosed, true},
		{"eof", io.EOF, false},
		{"other", fmt.Errorf("x"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsHarmless(tt.err); got != tt.want {
				t.Errorf("IsHarmless(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestSentinels(t *testing.T) {
	sentinels := []error{
		ErrConnectionRefused, ErrConnectionReset, ErrTerminalUnavailable,
		ErrDecode, ErrNotCaptured,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && Is(a, b) {
				t.Errorf("sentinel %d and %d should not match", i, j)
			}
		}
	}
}
