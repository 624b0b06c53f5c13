package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the client needs to reach the backend and act
// on behalf of the session.
type Config struct {
	BaseURL    string
	Token      string
	Role       string
	ActorEmail string
	TimeoutMs  int
	MaxRetries int
	LogCalls   bool

	// SnapshotPath is the local sqlite file the sync command writes for
	// offline listing.
	SnapshotPath string
}

// DefaultConfig returns a Config with sensible defaults. The base URL has
// no default: pointing at the wrong backend silently would be worse than
// failing fast.
func DefaultConfig() Config {
	return Config{
		TimeoutMs:  8000,
		MaxRetries: 1,
	}
}

// Load reads configuration from a .env file (when present) and the
// environment, falling back to defaults for unset values.
func Load() Config {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if v := os.Getenv("PLANACCION_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("PLANACCION_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("PLANACCION_ROLE"); v != "" {
		cfg.Role = v
	}
	if v := os.Getenv("PLANACCION_ACTOR_EMAIL"); v != "" {
		cfg.ActorEmail = v
	}
	if v := os.Getenv("PLANACCION_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("PLANACCION_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("PLANACCION_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	cfg.SnapshotPath = os.Getenv("PLANACCION_SNAPSHOT")
	if cfg.SnapshotPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.SnapshotPath = filepath.Join(home, ".planaccion", "snapshot.db")
		}
	}

	return cfg
}
