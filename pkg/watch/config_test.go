package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 30*time.Second, config.HeartbeatTimeout)
	assert.Equal(t, 1*time.Second, config.SweepInterval)
	assert.Equal(t, 5*time.Second, config.ResolveTimeout)
	assert.Equal(t, 64, config.EventBuffer)
	assert.NoError(t, config.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		valid  bool
	}{
		{"defaults", DefaultConfig(), true},
		{"all zero", Config{}, true},
		{"negative heartbeat", Config{HeartbeatTimeout: -time.Second}, false},
		{"negative sweep interval", Config{SweepInterval: -time.Second}, false},
		{"negative resolve timeout", Config{ResolveTimeout: -time.Second}, false},
		{"negative event buffer", Config{EventBuffer: -1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	filled := Config{}.withDefaults()
	assert.Equal(t, DefaultConfig(), filled)

	partial := Config{HeartbeatTimeout: 10 * time.Second}.withDefaults()
	assert.Equal(t, 10*time.Second, partial.HeartbeatTimeout)
	assert.Equal(t, DefaultSweepInterval, partial.SweepInterval)
	assert.Equal(t, DefaultResolveTimeout, partial.ResolveTimeout)
	assert.Equal(t, DefaultEventBuffer, partial.EventBuffer)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blewatch.yaml")
	content := []byte("heartbeat_timeout: 45s\nevent_buffer: 16\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 45*time.Second, config.HeartbeatTimeout)
	assert.Equal(t, 16, config.EventBuffer)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, DefaultSweepInterval, config.SweepInterval)
	assert.Equal(t, DefaultResolveTimeout, config.ResolveTimeout)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blewatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("heartbeat_timeout: -5s\n"), 0o644))

	_, err := LoadConfig(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blewatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("heartbeat_timeout: [\n"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
