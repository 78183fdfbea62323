package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultPort     = 8080
	defaultLogLevel = "info"

	minPort = 1
	maxPort = 65535
)

// Config holds the process configuration. The YouTube API key authenticates
// the server-side search calls; user-authenticated calls always use the
// caller's access token instead.
type Config struct {
	APIKey   string
	Port     int
	Debug    bool
	LogLevel string
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:   os.Getenv("YOUTUBE_API_KEY"),
		Port:     defaultPort,
		Debug:    os.Getenv("APP_DEBUG") == "true",
		LogLevel: defaultLogLevel,
	}

	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT value %q: %w", raw, err)
		}
		cfg.Port = port
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	if c.Port < minPort || c.Port > maxPort {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}
