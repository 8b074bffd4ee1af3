// Package config reads process-level defaults from the environment.
// Command-line flags take precedence over everything here.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config carries environment-derived defaults for a scan run.
type Config struct {
	// Workers bounds how many projects are scanned concurrently.
	Workers int
	// BatchSize bounds in-flight registry lookups per batch.
	BatchSize int
	// Timeout applies to each registry HTTP request.
	Timeout time.Duration
	// PolicyPath points at a policy config applied to every project.
	PolicyPath string
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// Load reads the LICENSEGATE_* environment variables, falling back to
// built-in defaults for anything unset or unparsable. Workers defaults to
// 0, which downstream resolves to the CPU count.
func Load() Config {
	return Config{
		Workers:    getInt("LICENSEGATE_WORKERS", 0),
		BatchSize:  getInt("LICENSEGATE_BATCH_SIZE", 0),
		Timeout:    getDuration("LICENSEGATE_TIMEOUT", 10*time.Second),
		PolicyPath: os.Getenv("LICENSEGATE_CONFIG"),
	}
}
