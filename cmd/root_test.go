package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rsterm/util"
)

// TestExecute_Version verifies --version prints a version string.
func TestExecute_Version(t *testing.T) {
	err := Execute(context.Background(), []string{"--version"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_Help verifies --help (and no args) returns without error.
func TestExecute_Help(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {}} {
		name := "no-args"
		if len(args) > 0 {
			name = args[0]
		}
		t.Run(name, func(t *testing.T) {
			err := Execute(context.Background(), args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

// TestExecute_DryRun verifies --dry-run validates and exits cleanly.
func TestExecute_DryRun(t *testing.T) {
	err := Execute(context.Background(), []string{
		"127.0.0.1:9000", "-o", "log.txt", "-P", "0x10", "--dry-run",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_DryRunInvalid verifies --dry-run still catches bad configs.
func TestExecute_DryRunInvalid(t *testing.T) {
	cases := map[string][]string{
		"missing server": {"--dry-run", "-v"},
		"missing port":   {"127.0.0.1", "--dry-run"},
		"bad port":       {"127.0.0.1:70000", "--dry-run"},
		"long interval":  {"127.0.0.1:9000", "--poll-interval", "5s", "--dry-run"},
		"extra args":     {"127.0.0.1:9000", "extra", "--dry-run"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if err := Execute(context.Background(), args); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

// TestExecute_BadPassword verifies non-numeric credentials are rejected.
func TestExecute_BadPassword(t *testing.T) {
	err := Execute(context.Background(), []string{"-P", "secret", "127.0.0.1:9000", "--dry-run"})
	if err == nil {
		t.Fatal("expected error for non-numeric password")
	}
	if !strings.Contains(err.Error(), "password") {
		t.Errorf("error should mention password: %v", err)
	}
}

// TestExecute_InvalidFlags verifies unknown flags produce an error.
func TestExecute_InvalidFlags(t *testing.T) {
	err := Execute(context.Background(), []string{"--nonexistent-flag"})
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

// TestExecute_ConfigFile verifies the server may come from --config.
func TestExecute_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rsterm.toml")
	if err := os.WriteFile(path, []byte("server = \"127.0.0.1:9000\"\nno_auth = true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Execute(context.Background(), []string{"-c", path, "--dry-run"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestExecute_ConfigFileUnknownKey verifies typos in the file are caught.
func TestExecute_ConfigFileUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rsterm.toml")
	if err := os.WriteFile(path, []byte("sever = \"127.0.0.1:9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Execute(context.Background(), []string{"-c", path, "--dry-run"}); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

// TestExecute_Refused verifies a closed port is a clean return.
func TestExecute_Refused(t *testing.T) {
	// Port 1 on loopback is not expected to have a listener.
	err := Execute(context.Background(), []string{"127.0.0.1:1"})
	if err != nil {
		t.Fatalf("refused connection should return nil, got %v", err)
	}
}

// TestExecute_ServerFromEnv verifies RSTERM_SERVER alone selects the
// server when no arguments are given.
func TestExecute_ServerFromEnv(t *testing.T) {
	t.Setenv("RSTERM_SERVER", "127.0.0.1:70000")
	err := Execute(context.Background(), []string{})
	if err == nil {
		t.Fatal("expected the env server to be validated, got usage")
	}
	if !strings.Contains(err.Error(), "70000") {
		t.Errorf("error should name the env value: %v", err)
	}
}

// TestExecute_ServerFromEnvConnects verifies an env-only server is
// dialled: a closed port yields the clean refused return.
func TestExecute_ServerFromEnvConnects(t *testing.T) {
	port, err := util.FindFreePort()
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("RSTERM_SERVER", util.FormatAddr("127.0.0.1", port))
	if err := Execute(context.Background(), nil); err != nil {
		t.Fatalf("refused connection should return nil, got %v", err)
	}
}

// TestExecute_BadEnvPassword verifies a malformed RSTERM_PASSWORD is
// reported instead of silently falling back to the default.
func TestExecute_BadEnvPassword(t *testing.T) {
	t.Setenv("RSTERM_PASSWORD", "secret")
	err := Execute(context.Background(), []string{"127.0.0.1:9000", "--dry-run"})
	if err == nil || !strings.Contains(err.Error(), "RSTERM_PASSWORD") {
		t.Fatalf("err = %v, want RSTERM_PASSWORD error", err)
	}
}
