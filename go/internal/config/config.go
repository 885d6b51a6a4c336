// Package config loads leagued settings from defaults, an optional YAML file,
// an optional .env file and LEAGUE_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LEAGUE_"

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Session SessionConfig `yaml:"session"`
	Admin   AdminConfig   `yaml:"admin"`
	Log     LogConfig     `yaml:"log"`
	NATS    NATSConfig    `yaml:"nats"`
}

// ServerConfig controls the listeners.
type ServerConfig struct {
	Addr           string        `yaml:"addr"             env:"ADDR"`
	WSAddr         string        `yaml:"ws_addr"          env:"WS_ADDR"`
	MaxConnections int           `yaml:"max_connections"  env:"MAX_CONNECTIONS"`
	MaxMessageSize int           `yaml:"max_message_size" env:"MAX_MESSAGE_SIZE"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"     env:"IDLE_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout"    env:"WRITE_TIMEOUT"`
}

// StorageConfig locates the collection documents.
type StorageConfig struct {
	Dir string `yaml:"dir" env:"STORAGE_DIR"`
}

// SessionConfig controls session expiry.
type SessionConfig struct {
	Timeout       time.Duration `yaml:"timeout"        env:"SESSION_TIMEOUT"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SESSION_SWEEP_INTERVAL"`
}

// AdminConfig holds the account seeded when no admin exists.
type AdminConfig struct {
	Username string `yaml:"username" env:"ADMIN_USERNAME"`
	Password string `yaml:"password" env:"ADMIN_PASSWORD"`
}

// LogConfig controls zerolog output.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"LOG_PRETTY"`
}

// NATSConfig enables event publishing when URL is set.
type NATSConfig struct {
	URL           string `yaml:"url"            env:"NATS_URL"`
	Stream        string `yaml:"stream"         env:"NATS_STREAM"`
	SubjectPrefix string `yaml:"subject_prefix" env:"NATS_SUBJECT_PREFIX"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           "localhost:8888",
			MaxMessageSize: 1 << 20,
			WriteTimeout:   10 * time.Second,
		},
		Storage: StorageConfig{
			Dir: "data",
		},
		Session: SessionConfig{
			Timeout:       time.Hour,
			SweepInterval: 5 * time.Minute,
		},
		Admin: AdminConfig{
			Username: "admin",
			Password: "admin123",
		},
		Log: LogConfig{
			Level: "info",
		},
		NATS: NATSConfig{
			Stream:        "LEAGUE_EVENTS",
			SubjectPrefix: "league",
		},
	}
}

// Load builds the configuration. path and envFile are optional; a missing
// envFile is only logged.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to load env file: %w", err)
			}
			log.Warn().Str("path", envFile).Msg("env file not found")
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("failed to parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Server.Addr) == "":
		return errors.New("server addr is required")
	case strings.TrimSpace(c.Storage.Dir) == "":
		return errors.New("storage dir is required")
	case c.Server.MaxMessageSize <= 0:
		return errors.New("max message size must be positive")
	case c.Server.MaxConnections < 0:
		return errors.New("max connections must not be negative")
	case c.Session.Timeout <= 0:
		return errors.New("session timeout must be positive")
	case c.Session.SweepInterval <= 0:
		return errors.New("session sweep interval must be positive")
	case c.Admin.Username == "" || c.Admin.Password == "":
		return errors.New("admin username and password are required")
	}
	return nil
}
