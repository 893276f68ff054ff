package watch

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrNilSource     = errors.New("advertisement source is required")
	ErrNilResolver   = errors.New("device resolver is required")
)

// Default configuration values.
const (
	// DefaultHeartbeatTimeout is the maximum advertising silence before a
	// device is evicted from the roster.
	DefaultHeartbeatTimeout = 30 * time.Second

	// DefaultSweepInterval is how often the periodic sweep runs while
	// listening.
	DefaultSweepInterval = 1 * time.Second

	// DefaultResolveTimeout bounds a single metadata resolution.
	DefaultResolveTimeout = 5 * time.Second

	// DefaultEventBuffer is the per-subscriber event queue depth.
	DefaultEventBuffer = 64
)

// Config holds watcher configuration.
type Config struct {
	// HeartbeatTimeout is the maximum allowed advertising silence before a
	// device is considered gone. Changeable at runtime via
	// Watcher.SetHeartbeatTimeout.
	HeartbeatTimeout time.Duration

	// SweepInterval is the period of the background eviction sweep. Sweeps
	// additionally run before every roster read and advertisement.
	SweepInterval time.Duration

	// ResolveTimeout bounds each resolver call. A resolution that exceeds
	// it drops its advertisement.
	ResolveTimeout time.Duration

	// EventBuffer is the per-subscriber notification queue depth.
	EventBuffer int
}

// DefaultConfig returns the default watcher configuration.
func DefaultConfig() Config {
	return Config{
		HeartbeatTimeout: DefaultHeartbeatTimeout,
		SweepInterval:    DefaultSweepInterval,
		ResolveTimeout:   DefaultResolveTimeout,
		EventBuffer:      DefaultEventBuffer,
	}
}

// Validate checks the configuration. Zero values are allowed (they are
// filled with defaults); negative values are not.
func (c *Config) Validate() error {
	if c.HeartbeatTimeout < 0 {
		return fmt.Errorf("%w: heartbeat_timeout must not be negative", ErrInvalidConfig)
	}
	if c.SweepInterval < 0 {
		return fmt.Errorf("%w: sweep_interval must not be negative", ErrInvalidConfig)
	}
	if c.ResolveTimeout < 0 {
		return fmt.Errorf("%w: resolve_timeout must not be negative", ErrInvalidConfig)
	}
	if c.EventBuffer < 0 {
		return fmt.Errorf("%w: event_buffer must not be negative", ErrInvalidConfig)
	}
	return nil
}

// withDefaults returns a copy with zero values replaced by defaults.
func (c Config) withDefaults() Config {
	if c.HeartbeatTimeout == 0 {
		c.HeartbeatTimeout = DefaultHeartbeatTimeout
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = DefaultSweepInterval
	}
	if c.ResolveTimeout == 0 {
		c.ResolveTimeout = DefaultResolveTimeout
	}
	if c.EventBuffer == 0 {
		c.EventBuffer = DefaultEventBuffer
	}
	return c
}

// yamlConfig is the on-disk shape of Config. Durations are written as
// strings in time.ParseDuration syntax ("45s", "2m").
type yamlConfig struct {
	HeartbeatTimeout string `yaml:"heartbeat_timeout"`
	SweepInterval    string `yaml:"sweep_interval"`
	ResolveTimeout   string `yaml:"resolve_timeout"`
	EventBuffer      *int   `yaml:"event_buffer"`
}

// UnmarshalYAML implements yaml.Unmarshaler. Keys absent from the
// document leave the corresponding field untouched.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw yamlConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parse := func(key, s string, dst *time.Duration) error {
		if s == "" {
			return nil
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}
		*dst = d
		return nil
	}

	if err := parse("heartbeat_timeout", raw.HeartbeatTimeout, &c.HeartbeatTimeout); err != nil {
		return err
	}
	if err := parse("sweep_interval", raw.SweepInterval, &c.SweepInterval); err != nil {
		return err
	}
	if err := parse("resolve_timeout", raw.ResolveTimeout, &c.ResolveTimeout); err != nil {
		return err
	}
	if raw.EventBuffer != nil {
		c.EventBuffer = *raw.EventBuffer
	}
	return nil
}

// LoadConfig reads a YAML configuration file. Keys absent from the file
// keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}
