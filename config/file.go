package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors the keys accepted in an rsterm TOML file.
type fileConfig struct {
	Server       string `toml:"server"`
	Output       string `toml:"output"`
	Password     int64  `toml:"password"`
	NoAuth       bool   `toml:"no_auth"`
	Verbose      int    `toml:"verbose"`
	PollInterval string `toml:"poll_interval"`
	DialTimeout  string `toml:"dial_timeout"`
	ExitKey      int64  `toml:"exit_key"`
}

// LoadFile overlays the TOML file at path onto cfg.  Only keys present
// in the file override existing values; unknown keys are rejected.
func LoadFile(path string, cfg *Config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("load config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if meta.IsDefined("server") {
		cfg.Server = strings.TrimSpace(raw.Server)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("password") {
		if raw.Password < 0 || raw.Password > 0xFFFFFFFF {
			return fmt.Errorf("load config %s: password %d out of uint32 range", path, raw.Password)
		}
		cfg.Password = uint32(raw.Password)
	}
	if meta.IsDefined("no_auth") {
		cfg.NoAuth = raw.NoAuth
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}
	if meta.IsDefined("poll_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.PollInterval))
		if err != nil {
			return fmt.Errorf("load config %s: parse poll_interval: %w", path, err)
		}
		cfg.PollInterval = d
	}
	if meta.IsDefined("dial_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.DialTimeout))
		if err != nil {
			return fmt.Errorf("load config %s: parse dial_timeout: %w", path, err)
		}
		cfg.DialTimeout = d
	}
	if meta.IsDefined("exit_key") {
		if raw.ExitKey < 1 || raw.ExitKey > 0xFF {
			return fmt.Errorf("load config %s: exit_key %d is not a single byte", path, raw.ExitKey)
		}
		cfg.ExitKey = byte(raw.ExitKey)
	}
	return nil
}
