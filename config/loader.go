package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Config file  (file.go)
//   4. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"

	rerrors "rsterm/internal/errors"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the RSTERM_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  A malformed RSTERM_PASSWORD is
// an error rather than a silent fallback to the default credential.
// Call it BEFORE applying CLI flags so that flags take precedence.
func LoadFromEnv(cfg *Config) error {
	if v := os.Getenv("RSTERM_SERVER"); v != "" {
		cfg.Server = v
	}
	if v := os.Getenv("RSTERM_OUTPUT"); v != "" {
		cfg.Output = v
	}
	if v := os.Getenv("RSTERM_PASSWORD"); v != "" {
		p, err := ParsePassword(v)
		if err != nil {
			return &rerrors.ConfigError{
				Field:   "password",
				Value:   v,
				Message: "RSTERM_PASSWORD is not an unsigned 32-bit integer",
				Hint:    "use a decimal or 0x-prefixed value, or unset RSTERM_PASSWORD",
			}
		}
		cfg.Password = p
	}
	if envBool("RSTERM_NO_AUTH") {
		cfg.NoAuth = true
	}
	if v := envDuration("RSTERM_POLL_INTERVAL"); v > 0 {
		cfg.PollInterval = v
	}
	if v := envDuration("RSTERM_TIMEOUT"); v > 0 {
		cfg.DialTimeout = v
	}
	if v := envInt("RSTERM_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

// envDuration accepts Go duration strings ("500ms") or bare seconds.
func envDuration(key string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return 0
}
