// Package config loads runtime configuration from the environment, with an
// optional .env file layered underneath.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/kellen/chronos/internal/llm"
)

// Prefix is prepended to every variable name.
const Prefix = "CHRONOS_"

type Config struct {
	// Storage
	DBPath string `env:"DB"`

	// Logging
	LogFile  string     `env:"LOG_FILE"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP API
	Addr           string   `env:"ADDR" envDefault:":8080"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Content
	CatalogPath    string        `env:"CATALOG"`
	QuizDuration   time.Duration `env:"QUIZ_DURATION" envDefault:"10m"`
	CertificateDir string        `env:"CERTIFICATE_DIR"`

	// Model
	LLM llm.Config `envPrefix:"LLM_"`
}

// Load reads the given .env files (default ".env"), ignoring missing ones,
// then parses CHRONOS_* variables. Variables already set in the process
// environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.QuizDuration <= 0 {
		return nil, fmt.Errorf("%sQUIZ_DURATION must be positive, got %s", Prefix, cfg.QuizDuration)
	}
	return cfg, nil
}

// LogPath returns the configured log file, defaulting to
// $XDG_STATE_HOME/chronos/chronos.log.
func (c *Config) LogPath() (string, error) {
	if c.LogFile != "" {
		return c.LogFile, nil
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "chronos", "chronos.log"), nil
}

// CertificateDirOrDefault returns where certificates are saved: the
// configured directory, else ~/Downloads when it exists, else the working
// directory.
func (c *Config) CertificateDirOrDefault() string {
	if c.CertificateDir != "" {
		return c.CertificateDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		dl := filepath.Join(home, "Downloads")
		if info, err := os.Stat(dl); err == nil && info.IsDir() {
			return dl
		}
	}
	return "."
}

// NewLogger returns a JSON logger writing to w at level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// OpenLog opens (appending) the log file at path, creating its directory.
func OpenLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
