package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, "bindings.toml", cfg.Bindings)
	assert.True(t, cfg.WatchBindings)
	assert.True(t, cfg.Controllers)
	assert.Equal(t, 0.05, cfg.Deadzone)
	assert.True(t, cfg.Minify)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.VirtualGamepads)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, time.Second/60, cfg.TickInterval())
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load([]string{"--listen", "127.0.0.1:9000", "--tick-rate=120", "--controllers=false", "--debug"})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
	assert.Equal(t, 120, cfg.TickRate)
	assert.False(t, cfg.Controllers)
	assert.True(t, cfg.Debug)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "virtualinput.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":7000\"\ntick_rate: 30\ndeadzone: 0.2\n"), 0o644))
	t.Setenv("VINPUT_TICK_RATE", "90")

	cfg, err := Load([]string{"--config", path, "--deadzone", "0.1"})
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Listen)
	assert.Equal(t, 90, cfg.TickRate)
	assert.Equal(t, 0.1, cfg.Deadzone)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load([]string{"--no-such-flag"})
	assert.Error(t, err)

	_, err = Load([]string{"--config", filepath.Join(t.TempDir(), "missing.toml")})
	assert.ErrorContains(t, err, "read config")

	_, err = Load([]string{"--tick-rate", "0", "--deadzone", "1.5"})
	assert.ErrorContains(t, err, "tick_rate 0")
	assert.ErrorContains(t, err, "deadzone 1.5")
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("VINPUT_LOG_FILE=virtualinput.log\nVINPUT_CORS_ORIGINS=http://localhost:3000,http://obs.local\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("VINPUT_LOG_FILE")
		os.Unsetenv("VINPUT_CORS_ORIGINS")
	})

	cfg, err := Load([]string{"--env-file", path})
	require.NoError(t, err)

	assert.Equal(t, "virtualinput.log", cfg.LogFile)
	assert.Equal(t, []string{"http://localhost:3000", "http://obs.local"}, cfg.CORSOrigins)
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load([]string{"--env-file", filepath.Join(t.TempDir(), "missing.env")})
	assert.NoError(t, err)
}
