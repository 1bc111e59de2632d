package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jaminalder/codex-battleship/internal/constants"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

type Config struct {
	ServerPort        string
	LogLevel          zerolog.Level
	StoreDriver       string
	DBPath            string
	SingleActiveMatch bool
	SSEHeartbeat      time.Duration
	AllowedOrigins    []string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}
	return FromEnv(logger, os.Getenv)
}

// FromEnv builds a Config from lookup, falling back to defaults for unset keys.
func FromEnv(logger zerolog.Logger, lookup func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(lookup(key)); v != "" {
			return v
		}
		return fallback
	}

	level, err := zerolog.ParseLevel(get("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	single, err := strconv.ParseBool(get("BATTLESHIP_SINGLE_ACTIVE_MATCH", "true"))
	if err != nil {
		return nil, fmt.Errorf("BATTLESHIP_SINGLE_ACTIVE_MATCH: %w", err)
	}
	heartbeat, err := time.ParseDuration(get("SSE_HEARTBEAT", constants.DefaultHeartbeat.String()))
	if err != nil {
		return nil, fmt.Errorf("SSE_HEARTBEAT: %w", err)
	}
	if heartbeat <= 0 {
		return nil, fmt.Errorf("SSE_HEARTBEAT must be positive, got %s", heartbeat)
	}

	cfg := &Config{
		ServerPort:        get("SERVER_PORT", "8080"),
		LogLevel:          level,
		StoreDriver:       strings.ToLower(get("STORE_DRIVER", StoreMemory)),
		DBPath:            get("DB_PATH", "battleship.db"),
		SingleActiveMatch: single,
		SSEHeartbeat:      heartbeat,
		AllowedOrigins:    splitList(get("CORS_ALLOWED_ORIGINS", "*")),
	}

	switch cfg.StoreDriver {
	case StoreMemory, StoreSQLite:
	default:
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", StoreMemory, StoreSQLite, cfg.StoreDriver)
	}
	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return nil, fmt.Errorf("SERVER_PORT: %w", err)
	}

	logger.Info().
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel.String()).
		Str("store_driver", cfg.StoreDriver).
		Str("db_path", cfg.DBPath).
		Bool("single_active_match", cfg.SingleActiveMatch).
		Dur("sse_heartbeat", cfg.SSEHeartbeat).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("configuration loaded")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
