// Package config loads the lightsout YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"svw.info/lightsout/internal/domain"
	"svw.info/lightsout/internal/generator"
	"svw.info/lightsout/internal/leaderboard"
)

// Config holds all lightsout configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	Game    GameConfig    `yaml:"game"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	ReadHeaderTimeout string `yaml:"read_header_timeout"`
}

// StorageConfig selects the leaderboard backend.
type StorageConfig struct {
	Driver string `yaml:"driver"` // memory, fs, sqlite
	Path   string `yaml:"path"`   // data dir for fs, database file for sqlite
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// GameConfig holds the difficulty tiers and leaderboard rules.
type GameConfig struct {
	LeaderboardSize  int           `yaml:"leaderboard_size"`
	SolvableAttempts int           `yaml:"solvable_attempts"`
	Levels           domain.Levels `yaml:"levels"`
}

func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: "5s",
		},
		Storage: StorageConfig{
			Driver: "fs",
			Path:   "./data",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Game: GameConfig{
			LeaderboardSize:  leaderboard.DefaultSize,
			SolvableAttempts: generator.DefaultAttempts,
			Levels:           domain.DefaultLevels(),
		},
	}
}

// Load reads path, falling back to defaults when the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LIGHTSOUT_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LIGHTSOUT_STORAGE_DRIVER"); v != "" {
		c.Storage.Driver = v
	}
	if v := os.Getenv("LIGHTSOUT_STORAGE_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv("LIGHTSOUT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// GetReadHeaderTimeout parses the server read header timeout, defaulting to 5s.
func (c *Config) GetReadHeaderTimeout() time.Duration {
	if d, err := time.ParseDuration(c.Server.ReadHeaderTimeout); err == nil && d > 0 {
		return d
	}
	return 5 * time.Second
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case "memory":
	case "fs", "sqlite":
		if strings.TrimSpace(c.Storage.Path) == "" {
			return fmt.Errorf("storage.path is required for driver %q", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	if c.Game.LeaderboardSize < 1 {
		return fmt.Errorf("game.leaderboard_size must be positive, got %d", c.Game.LeaderboardSize)
	}
	if c.Game.SolvableAttempts < 1 {
		return fmt.Errorf("game.solvable_attempts must be positive, got %d", c.Game.SolvableAttempts)
	}
	return c.Game.Levels.Validate()
}
