package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, config file parsing, and environment variable
// loading.

const (
	// DefaultPassword is the credential sent by the handshake when
	// --password is not given.
	DefaultPassword uint32 = 20200101

	// DefaultPollInterval bounds how long the event loop idles between
	// wakeups when neither side has data.
	DefaultPollInterval = 2 * time.Second

	// MaxPollInterval is the longest interval accepted for
	// --poll-interval.
	MaxPollInterval = 2 * time.Second

	// DefaultExitKey is Ctrl+X.
	DefaultExitKey byte = 0x18

	// TranscriptMode is the permission used when creating the
	// --output transcript file.
	TranscriptMode = 0o644
)
