// Package config loads robobob configuration from YAML with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Answer source providers.
const (
	ProviderFile     = "file"
	ProviderDatabase = "database"
)

// Config holds all robobob configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Lookup   LookupConfig   `yaml:"lookup"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP transport.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout"`
	WriteTimeout    string `yaml:"write_timeout"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// LookupConfig selects the knowledge provider.
type LookupConfig struct {
	Provider      string `yaml:"provider"` // file, database
	QuestionsFile string `yaml:"questions_file"`
	Watch         bool   `yaml:"watch"`
}

// DatabaseConfig configures the SQLite answer source.
type DatabaseConfig struct {
	Path      string `yaml:"path"`
	BatchSize int    `yaml:"batch_size"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     "15s",
			WriteTimeout:    "15s",
			ShutdownTimeout: "5s",
		},
		Lookup: LookupConfig{
			Provider:      ProviderFile,
			QuestionsFile: "questions.txt",
			Watch:         true,
		},
		Database: DatabaseConfig{
			Path:      "robobob.db",
			BatchSize: 500,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults if the file doesn't exist
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("ROBOBOB_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	// "local" selects the file-backed store; any other profile the database.
	if profile := os.Getenv("ROBOBOB_PROFILE"); profile != "" {
		if strings.EqualFold(profile, "local") {
			c.Lookup.Provider = ProviderFile
		} else {
			c.Lookup.Provider = ProviderDatabase
		}
	}
	if path := os.Getenv("ROBOBOB_QUESTIONS_FILE"); path != "" {
		c.Lookup.QuestionsFile = path
	}
	if path := os.Getenv("ROBOBOB_DB"); path != "" {
		c.Database.Path = path
	}
	if level := os.Getenv("ROBOBOB_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Lookup.Provider {
	case ProviderFile:
		if c.Lookup.QuestionsFile == "" {
			return fmt.Errorf("lookup.questions_file is required for the %s provider", ProviderFile)
		}
	case ProviderDatabase:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for the %s provider", ProviderDatabase)
		}
	default:
		return fmt.Errorf("unknown lookup provider %q", c.Lookup.Provider)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	for name, v := range map[string]string{
		"server.read_timeout":     c.Server.ReadTimeout,
		"server.write_timeout":    c.Server.WriteTimeout,
		"server.shutdown_timeout": c.Server.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, v, err)
		}
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown logging.format %q", c.Logging.Format)
	}
	return nil
}

// GetReadTimeout returns the HTTP read timeout.
func (c *Config) GetReadTimeout() time.Duration {
	return parseDurationOr(c.Server.ReadTimeout, 15*time.Second)
}

// GetWriteTimeout returns the HTTP write timeout.
func (c *Config) GetWriteTimeout() time.Duration {
	return parseDurationOr(c.Server.WriteTimeout, 15*time.Second)
}

// GetShutdownTimeout returns the graceful shutdown timeout.
func (c *Config) GetShutdownTimeout() time.Duration {
	return parseDurationOr(c.Server.ShutdownTimeout, 5*time.Second)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
