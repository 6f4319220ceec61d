// Package cmd wires up the CLI flags and dispatches to the core.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"rsterm/config"
	"rsterm/internal/core"
	"rsterm/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X rsterm/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs a terminal session.
//
// Settings are layered: defaults, then the --config file, then RSTERM_*
// environment variables, then flags given on the command line.
func Execute(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rsterm", flag.ContinueOnError)

	// ── session ──────────────────────────────────────────────────
	output := fs.StringP("output", "o", "", "Append decoded inbound text to this file")
	password := fs.StringP("password", "P", "", "Credential sent on first contact (uint32, decimal or 0x hex)")
	noAuth := fs.Bool("no-auth", false, "Do not send a credential on first contact")

	// ── tuning ───────────────────────────────────────────────────
	pollInterval := fs.Duration("poll-interval", config.DefaultPollInterval, "Idle wakeup interval (max 2s)")
	timeout := fs.DurationP("timeout", "w", 0, "Connect timeout (0 = none)")

	// ── meta ─────────────────────────────────────────────────────
	configFile := fs.StringP("config", "c", "", "TOML config file")
	verbose := fs.CountP("verbose", "v", "Increase verbosity (repeatable)")
	dryRun := fs.Bool("dry-run", false, "Validate configuration and exit")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("rsterm %s\n", version)
		return nil
	}

	// ── layer configuration ──────────────────────────────────────
	cfg := config.Default()
	if *configFile != "" {
		if err := config.LoadFile(*configFile, cfg); err != nil {
			return err
		}
		cfg.ConfigFile = *configFile
	}
	if err := config.LoadFromEnv(cfg); err != nil {
		return err
	}

	switch rest := fs.Args(); len(rest) {
	case 0:
	case 1:
		cfg.Server = rest[0]
	default:
		return fmt.Errorf("too many arguments: expected a single host:port")
	}
	if fs.Changed("output") {
		cfg.Output = *output
	}
	if fs.Changed("password") {
		v, err := config.ParsePassword(*password)
		if err != nil {
			return fmt.Errorf("password: %w", err)
		}
		cfg.Password = v
	}
	if fs.Changed("no-auth") {
		cfg.NoAuth = *noAuth
	}
	if fs.Changed("poll-interval") {
		cfg.PollInterval = *pollInterval
	}
	if fs.Changed("timeout") {
		cfg.DialTimeout = *timeout
	}
	if fs.Changed("verbose") {
		cfg.Verbose = *verbose
	}
	cfg.DryRun = *dryRun

	// Nothing on the command line, in the file, or in the environment
	// names a server: show usage rather than a validation error.
	if len(args) == 0 && cfg.Server == "" {
		printUsage(fs)
		return nil
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := util.NewLogger(cfg.Verbose)

	if cfg.DryRun {
		printConfig(cfg)
		return nil
	}

	mode, err := core.Build(cfg, logger)
	if err != nil {
		return err
	}
	return mode.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

func printConfig(cfg *config.Config) {
	auth := "off"
	if !cfg.NoAuth {
		auth = fmt.Sprintf("credential %d", cfg.Password)
	}
	timeout := "none"
	if cfg.DialTimeout > 0 {
		timeout = cfg.DialTimeout.String()
	}
	output := "-"
	if cfg.Output != "" {
		output = cfg.Output
	}
	fmt.Printf("server:        %s\n", cfg.Address())
	fmt.Printf("handshake:     %s\n", auth)
	fmt.Printf("output:        %s\n", output)
	fmt.Printf("poll interval: %s\n", cfg.PollInterval.Round(time.Millisecond))
	fmt.Printf("timeout:       %s\n", timeout)
	fmt.Printf("exit key:      0x%02x\n", cfg.ExitKey)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `rsterm – remote serial terminal client v%s

Bridges the local terminal to a serial-over-TCP gateway.  Keystrokes
are sent to the server as typed; server output is shown on screen.
Press Ctrl+X to exit.

Usage:
  rsterm [options] <host:port>

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Environment:
  RSTERM_SERVER, RSTERM_OUTPUT, RSTERM_PASSWORD, RSTERM_NO_AUTH,
  RSTERM_POLL_INTERVAL, RSTERM_TIMEOUT, RSTERM_VERBOSE

Examples:
  rsterm 192.168.1.50:6258                    Connect with the default credential
  rsterm -o console.log 10.0.0.7:9000         Also append output to console.log
  rsterm -P 0x1234 10.0.0.7:9000              Custom credential
  rsterm --no-auth 127.0.0.1:2000             Plain relay, no credential
`)
}
