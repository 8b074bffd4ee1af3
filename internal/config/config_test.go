package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LICENSEGATE_WORKERS", "")
	t.Setenv("LICENSEGATE_BATCH_SIZE", "")
	t.Setenv("LICENSEGATE_TIMEOUT", "")
	t.Setenv("LICENSEGATE_CONFIG", "")

	cfg := Load()
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, 0, cfg.BatchSize)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.PolicyPath)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LICENSEGATE_WORKERS", "8")
	t.Setenv("LICENSEGATE_BATCH_SIZE", "25")
	t.Setenv("LICENSEGATE_TIMEOUT", "30s")
	t.Setenv("LICENSEGATE_CONFIG", "/etc/licensegate.toml")

	cfg := Load()
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "/etc/licensegate.toml", cfg.PolicyPath)
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("LICENSEGATE_WORKERS", "many")
	t.Setenv("LICENSEGATE_BATCH_SIZE", "-5")
	t.Setenv("LICENSEGATE_TIMEOUT", "soon")

	cfg := Load()
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, 0, cfg.BatchSize)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}
