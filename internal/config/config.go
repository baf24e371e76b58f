package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config represents runtime configuration derived from environment variables.
type Config struct {
	Server     ServerConfig
	Logging    LoggingConfig
	Database   DatabaseConfig
	Simulation SimulationConfig
}

// ServerConfig holds HTTP server runtime parameters.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoggingConfig represents structured logging configuration.
type LoggingConfig struct {
	Level  slog.Level
	Format string
}

// DatabaseConfig holds the Postgres connection settings. An empty URL selects
// the in-memory store.
type DatabaseConfig struct {
	URL string
}

// SimulationConfig holds the initial simulation parameters.
type SimulationConfig struct {
	InitialSpeed   int
	SeedCasual     int
	SeedInfluencer int
	SeedPowerUser  int
	SeedLurker     int
}

const (
	defaultPort            = "8080"
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second

	defaultLogFormat = "json"

	defaultInitialSpeed   = 5
	defaultSeedCasual     = 156
	defaultSeedInfluencer = 23
	defaultSeedPowerUser  = 41
	defaultSeedLurker     = 27
)

// Load reads configuration from environment variables, applying defaults when
// values are not provided or invalid.
func Load() (Config, error) {
	// Cloud Run sets PORT, but allow SERVER_PORT override for local dev
	port := getEnv("PORT", "")
	if port == "" {
		port = getEnv("SERVER_PORT", defaultPort)
	}

	cfg := Config{
		Server: ServerConfig{
			Port:            port,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logging: LoggingConfig{
			Level:  slog.LevelInfo,
			Format: defaultLogFormat,
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Simulation: SimulationConfig{
			InitialSpeed:   defaultInitialSpeed,
			SeedCasual:     defaultSeedCasual,
			SeedInfluencer: defaultSeedInfluencer,
			SeedPowerUser:  defaultSeedPowerUser,
			SeedLurker:     defaultSeedLurker,
		},
	}

	if v := os.Getenv("SERVER_READ_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_READ_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ReadTimeout = d
	}

	if v := os.Getenv("SERVER_WRITE_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_WRITE_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.WriteTimeout = d
	}

	if v := os.Getenv("SERVER_SHUTDOWN_TIMEOUT_SECONDS"); v != "" {
		d, err := parseSeconds(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SERVER_SHUTDOWN_TIMEOUT_SECONDS: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := parseLogLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
		cfg.Logging.Level = level
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		switch v {
		case "json", "text":
			cfg.Logging.Format = v
		default:
			return Config{}, fmt.Errorf("invalid LOG_FORMAT: must be 'json' or 'text'")
		}
	}

	if v := os.Getenv("SIM_INITIAL_SPEED"); v != "" {
		speed, err := strconv.Atoi(v)
		if err != nil || speed < 1 || speed > 10 {
			return Config{}, fmt.Errorf("invalid SIM_INITIAL_SPEED: must be an integer between 1 and 10")
		}
		cfg.Simulation.InitialSpeed = speed
	}

	seedVars := []struct {
		key    string
		target *int
	}{
		{"SIM_SEED_CASUAL", &cfg.Simulation.SeedCasual},
		{"SIM_SEED_INFLUENCER", &cfg.Simulation.SeedInfluencer},
		{"SIM_SEED_POWER_USER", &cfg.Simulation.SeedPowerUser},
		{"SIM_SEED_LURKER", &cfg.Simulation.SeedLurker},
	}
	for _, sv := range seedVars {
		if v := os.Getenv(sv.key); v != "" {
			count, err := strconv.Atoi(v)
			if err != nil || count < 0 {
				return Config{}, fmt.Errorf("invalid %s: must be a non-negative integer", sv.key)
			}
			*sv.target = count
		}
	}

	return cfg, nil
}

func parseSeconds(raw string) (time.Duration, error) {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("must be a non-negative integer")
	}
	return time.Duration(seconds) * time.Second, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("must be one of debug, info, warn, error")
	}
}
