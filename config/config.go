// Package config defines the runtime configuration for rsterm and
// provides helpers for parsing the server address.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	rerrors "rsterm/internal/errors"
)

// Config holds every tuneable for a single rsterm session.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Server      string // raw host:port positional argument
	Host        string
	Port        int
	DialTimeout time.Duration // bounds connect only; 0 means none

	// ── Handshake ────────────────────────────────────────────────────
	Password uint32
	NoAuth   bool // skip the credential exchange entirely

	// ── Terminal / loop ──────────────────────────────────────────────
	PollInterval time.Duration
	ExitKey      byte

	// ── Output ───────────────────────────────────────────────────────
	Output  string // append-only transcript of inbound text
	Verbose int

	// ── Meta ─────────────────────────────────────────────────────────
	ConfigFile string
	DryRun     bool
}

// Default returns a Config populated from defaults.go.
func Default() *Config {
	return &Config{
		Password:     DefaultPassword,
		PollInterval: DefaultPollInterval,
		ExitKey:      DefaultExitKey,
	}
}

// Address returns the dialable "host:port" form.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ── Server-spec parser ───────────────────────────────────────────────

// ParseServer splits "host:port" (or "[v6]:port") and validates the
// port number.
func ParseServer(spec string) (host string, port int, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", 0, fmt.Errorf("server address is empty")
	}
	h, p, err := net.SplitHostPort(spec)
	if err != nil {
		return "", 0, fmt.Errorf("invalid server %q – expected host:port", spec)
	}
	if h == "" {
		return "", 0, fmt.Errorf("invalid server %q – host is required", spec)
	}
	port, err = strconv.Atoi(p)
	if err != nil {
		return "", 0, fmt.Errorf("invalid port %q", p)
	}
	if port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("port %d out of range 1-65535", port)
	}
	return h, port, nil
}

// ParsePassword accepts a decimal or 0x-prefixed unsigned 32-bit value.
func ParsePassword(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid password %q – expected an unsigned 32-bit integer", s)
	}
	return uint32(v), nil
}

// ── Validation ───────────────────────────────────────────────────────

// Validate resolves Server into Host/Port and checks that the
// configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Server == "" && c.Host == "" {
		return &rerrors.ConfigError{
			Field:   "server",
			Message: "a host:port argument is required",
			Hint:    "e.g. rsterm 127.0.0.1:9000",
		}
	}
	if c.Server != "" {
		host, port, err := ParseServer(c.Server)
		if err != nil {
			return &rerrors.ConfigError{Field: "server", Value: c.Server, Message: err.Error()}
		}
		c.Host, c.Port = host, port
	}
	if c.Port < 1 || c.Port > 65535 {
		return &rerrors.ConfigError{Field: "server", Value: c.Port, Message: "port out of range 1-65535"}
	}

	if c.PollInterval <= 0 {
		return &rerrors.ConfigError{
			Field:   "poll-interval",
			Value:   c.PollInterval,
			Message: "must be positive",
		}
	}
	if c.PollInterval > MaxPollInterval {
		return &rerrors.ConfigError{
			Field:   "poll-interval",
			Value:   c.PollInterval,
			Message: fmt.Sprintf("must not exceed %s", MaxPollInterval),
			Hint:    "a short interval keeps the client responsive to signals",
		}
	}
	if c.DialTimeout < 0 {
		return &rerrors.ConfigError{Field: "timeout", Value: c.DialTimeout, Message: "must not be negative"}
	}
	if c.ExitKey == 0 {
		return &rerrors.ConfigError{Field: "exit-key", Message: "must not be NUL"}
	}
	if c.Verbose < 0 {
		c.Verbose = 0
	}
	return nil
}
