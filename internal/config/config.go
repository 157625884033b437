// Package config loads the application's configuration from the environment
// and an optional prism.yml overlay.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/prism-ai/prism/internal/logger"
)

// StorageKind identifies which history-store backend is in use.
type StorageKind string

const (
	// StoragePostgres is the networked relational backend. Retention
	// cleanup runs only against this backend.
	StoragePostgres StorageKind = "postgres"
	// StorageSQLite is the embedded single-file backend used for local
	// development; it is assumed ephemeral and is never cleaned up.
	StorageSQLite StorageKind = "sqlite"
)

// deployMarkers are the environment variables whose presence means the
// process runs on a managed deployment and must use networked storage.
var deployMarkers = []string{"VERCEL", "DEPLOY_ENV"}

// Config holds the application's configuration values.
type Config struct {
	ServerPort   string
	Logging      logger.Config
	GeminiAPIKey string
	GeminiModel  string

	Storage       StorageKind
	DatabaseURL   string
	RetentionDays int
	MaxWorkers    int
}

// Overlay is the optional prism.yml file. It tunes operational knobs that
// deployments adjust without touching the environment.
type Overlay struct {
	RetentionDays int    `yaml:"retention_days"`
	DefaultModel  string `yaml:"default_model"`
}

// ResolveStorage decides the storage backend. The rule is deliberately
// narrow: networked storage iff a recognized deployment marker is present.
// The connection URL's contents are never inspected.
func ResolveStorage(markerPresent bool) StorageKind {
	if markerPresent {
		return StoragePostgres
	}
	return StorageSQLite
}

// LoadConfig reads configuration from environment variables and a .env file,
// sets sensible defaults, applies the prism.yml overlay if one exists, and
// resolves the storage backend.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("MAX_WORKERS", 2)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			slog.Warn("failed to read .env file", "error", err)
		}
	}

	marker := false
	for _, name := range deployMarkers {
		if v.GetString(name) != "" {
			marker = true
			break
		}
	}
	kind := ResolveStorage(marker)

	dbURL := v.GetString("DATABASE_URL")
	switch kind {
	case StoragePostgres:
		if dbURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when a deployment marker is present")
		}
	case StorageSQLite:
		if dbURL == "" {
			dbURL = "prism.db"
		}
	}

	cfg := &Config{
		ServerPort: v.GetString("SERVER_PORT"),
		Logging: logger.Config{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		GeminiAPIKey:  v.GetString("GEMINI_API_KEY"),
		GeminiModel:   v.GetString("GEMINI_MODEL"),
		Storage:       kind,
		DatabaseURL:   dbURL,
		RetentionDays: 30,
		MaxWorkers:    v.GetInt("MAX_WORKERS"),
	}

	if err := applyOverlay(cfg, "prism.yml"); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyOverlay merges prism.yml into the config. A missing file is fine; a
// malformed one is a startup error.
func applyOverlay(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	var o Overlay
	if err := yaml.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if o.RetentionDays > 0 {
		cfg.RetentionDays = o.RetentionDays
	}
	if o.DefaultModel != "" {
		cfg.GeminiModel = o.DefaultModel
	}
	return nil
}
