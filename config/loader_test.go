package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	rerrors "rsterm/internal/errors"
)

func TestLoadFromEnv_Server(t *testing.T) {
	t.Setenv("RSTERM_SERVER", "10.0.0.5:6258")
	cfg := Default()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Server != "10.0.0.5:6258" {
		t.Errorf("Server = %q", cfg.Server)
	}
}

func TestLoadFromEnv_Password(t *testing.T) {
	t.Setenv("RSTERM_PASSWORD", "42")
	cfg := Default()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Password != 42 {
		t.Errorf("Password = %d, want 42", cfg.Password)
	}
}

func TestLoadFromEnv_BadPassword(t *testing.T) {
	t.Setenv("RSTERM_PASSWORD", "not-a-number")
	cfg := Default()
	err := LoadFromEnv(cfg)
	if err == nil {
		t.Fatal("expected error for malformed RSTERM_PASSWORD")
	}
	var cerr *rerrors.ConfigError
	if !rerrors.As(err, &cerr) || cerr.Field != "password" {
		t.Errorf("err = %v, want ConfigError for password", err)
	}
	if !strings.Contains(err.Error(), "RSTERM_PASSWORD") {
		t.Errorf("error should name the variable: %v", err)
	}
	if cfg.Password != DefaultPassword {
		t.Errorf("Password = %d, want unchanged default", cfg.Password)
	}
}

func TestLoadFromEnv_NoAuth(t *testing.T) {
	for _, v := range []string{"1", "true", "yes", "TRUE", "Yes"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("RSTERM_NO_AUTH", v)
			cfg := Default()
			if err := LoadFromEnv(cfg); err != nil {
		t.Fatal(err)
	}
			if !cfg.NoAuth {
				t.Error("NoAuth should be true")
			}
		})
	}
}

func TestLoadFromEnv_Durations(t *testing.T) {
	t.Setenv("RSTERM_POLL_INTERVAL", "250ms")
	t.Setenv("RSTERM_TIMEOUT", "3")
	cfg := Default()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("PollInterval = %v", cfg.PollInterval)
	}
	if cfg.DialTimeout != 3*time.Second {
		t.Errorf("DialTimeout = %v", cfg.DialTimeout)
	}
}

func TestLoadFromEnv_Empty(t *testing.T) {
	cfg := Default()
	cfg.Output = "keep.log"
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Output != "keep.log" || cfg.Verbose != 0 {
		t.Errorf("unexpected overrides: %+v", cfg)
	}
}

// ── TOML file ────────────────────────────────────────────────────────

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rsterm.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
server = "192.168.1.20:6258"
output = "serial.log"
password = 777
verbose = 2
poll_interval = "500ms"
dial_timeout = "5s"
exit_key = 29
`)
	cfg := Default()
	if err := LoadFile(path, cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.Server != "192.168.1.20:6258" || cfg.Output != "serial.log" {
		t.Errorf("got server=%q output=%q", cfg.Server, cfg.Output)
	}
	if cfg.Password != 777 || cfg.Verbose != 2 {
		t.Errorf("got password=%d verbose=%d", cfg.Password, cfg.Verbose)
	}
	if cfg.PollInterval != 500*time.Millisecond || cfg.DialTimeout != 5*time.Second {
		t.Errorf("got poll=%v timeout=%v", cfg.PollInterval, cfg.DialTimeout)
	}
	if cfg.ExitKey != 0x1D {
		t.Errorf("ExitKey = %#x", cfg.ExitKey)
	}
}

func TestLoadFile_OnlyDefinedKeysOverride(t *testing.T) {
	path := writeFile(t, `no_auth = true`)
	cfg := Default()
	cfg.Server = "keep:1"
	if err := LoadFile(path, cfg); err != nil {
		t.Fatal(err)
	}
	if !cfg.NoAuth {
		t.Error("NoAuth should be true")
	}
	if cfg.Server != "keep:1" || cfg.Password != DefaultPassword {
		t.Errorf("undefined keys were overridden: %+v", cfg)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantSub string
	}{
		{"unknown key", `baud = 115200`, "unknown keys: baud"},
		{"bad duration", `poll_interval = "soon"`, "poll_interval"},
		{"password range", `password = -5`, "out of uint32 range"},
		{"exit key range", `exit_key = 300`, "not a single byte"},
		{"syntax", `server = `, "load config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := LoadFile(writeFile(t, tt.body), Default())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"), Default()); err == nil {
		t.Fatal("expected error for missing file")
	}
}
