package core

import (
	"fmt"

	"rsterm/config"
	"rsterm/internal/metrics"
	"rsterm/internal/transport"
	"rsterm/util"
)

// Build constructs the Mode described by cfg.  cfg must have been
// validated.
func Build(cfg *config.Config, logger *util.Logger) (Mode, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, fmt.Errorf("build: server address not resolved (call Validate first)")
	}
	return &ConnectMode{
		Dialer:       &transport.TCPDialer{Timeout: cfg.DialTimeout},
		Host:         cfg.Host,
		Port:         cfg.Port,
		Credential:   cfg.Password,
		Handshake:    !cfg.NoAuth,
		Output:       cfg.Output,
		PollInterval: cfg.PollInterval,
		ExitKey:      cfg.ExitKey,
		Logger:       logger,
		Metrics:      metrics.New(),
	}, nil
}
