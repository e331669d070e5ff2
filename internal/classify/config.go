package classify

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	DefaultWorkers     = 20
	DefaultMaxAttempts = 3
	DefaultBackoff     = 1 * time.Second
	DefaultChunkSize   = 100
)

// Config tunes the worker pool and the batch classifier. Zero values select
// the defaults above; negative values fail validation at construction.
type Config struct {
	Workers     int
	MaxAttempts int
	Backoff     time.Duration
	ChunkSize   int
}

func DefaultConfig() Config {
	return Config{
		Workers:     DefaultWorkers,
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     DefaultBackoff,
		ChunkSize:   DefaultChunkSize,
	}
}

func (c Config) withDefaults() Config {
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Backoff == 0 {
		c.Backoff = DefaultBackoff
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = DefaultChunkSize
	}
	return c
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return &ConfigurationError{Field: "Workers", Reason: "must be positive"}
	}
	if c.MaxAttempts < 1 {
		return &ConfigurationError{Field: "MaxAttempts", Reason: "must be positive"}
	}
	if c.Backoff < 0 {
		return &ConfigurationError{Field: "Backoff", Reason: "must not be negative"}
	}
	if c.ChunkSize < 1 {
		return &ConfigurationError{Field: "ChunkSize", Reason: "must be positive"}
	}
	return nil
}

// ConfigFromEnv reads pipeline tuning from the environment, falling back to
// the defaults for anything unset or unparsable.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Workers = intEnv("CLASSIFY_WORKERS", cfg.Workers)
	cfg.MaxAttempts = intEnv("CLASSIFY_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.ChunkSize = intEnv("CLASSIFY_CHUNK_SIZE", cfg.ChunkSize)
	if raw, ok := os.LookupEnv("CLASSIFY_BACKOFF"); ok {
		backoff, err := time.ParseDuration(raw)
		if err != nil {
			slog.Warn("[Classify] Ignoring unparsable CLASSIFY_BACKOFF",
				slog.String("value", raw),
				slog.String("error", err.Error()))
		} else {
			cfg.Backoff = backoff
		}
	}
	return cfg
}

func intEnv(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("[Classify] Ignoring unparsable env value",
			slog.String("key", key),
			slog.String("value", raw))
		return fallback
	}
	return value
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
