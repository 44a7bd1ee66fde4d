// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"diet-manager/internal/storage"
)

const EnvPrefix = "DIET"

// Config holds everything the commands need to open a session.
// Values come from, in increasing priority: defaults, the YAML config file,
// DIET_* environment variables (a .env file is read first if present) and
// command-line flags bound by the caller.
type Config struct {
	DataDir     string
	Backend     string
	FoodsFile   string
	LogFile     string
	SQLitePath  string
	ProfileFile string
	LogLevel    string
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("data_dir", ".")
	v.SetDefault("storage.backend", storage.BackendJSON)
	v.SetDefault("storage.foods_file", "food_database.json")
	v.SetDefault("storage.log_file", "food_log.json")
	v.SetDefault("storage.sqlite_path", "diet-manager.db")
	v.SetDefault("profile_file", "profile.yaml")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile loads the config file. An explicit path must exist; otherwise
// $HOME/.diet-manager.yaml is used when present.
func ReadFile(v *viper.Viper, cfgFile string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		slog.Debug("using config file", "file", v.ConfigFileUsed())
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	v.AddConfigPath(home)
	v.SetConfigType("yaml")
	v.SetConfigName(".diet-manager")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	slog.Debug("using config file", "file", v.ConfigFileUsed())
	return nil
}

// Load builds a validated Config from v. Relative file names are resolved
// against the data directory.
func Load(v *viper.Viper) (*Config, error) {
	dataDir := v.GetString("data_dir")
	cfg := &Config{
		DataDir:     dataDir,
		Backend:     strings.ToLower(v.GetString("storage.backend")),
		FoodsFile:   inDir(dataDir, v.GetString("storage.foods_file")),
		LogFile:     inDir(dataDir, v.GetString("storage.log_file")),
		SQLitePath:  inDir(dataDir, v.GetString("storage.sqlite_path")),
		ProfileFile: inDir(dataDir, v.GetString("profile_file")),
		LogLevel:    strings.ToLower(v.GetString("log_level")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Backend {
	case storage.BackendJSON, storage.BackendSQLite:
	default:
		return fmt.Errorf("invalid storage backend: %s (must be json or sqlite)", c.Backend)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// StorageOptions maps the config onto storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Backend:    c.Backend,
		FoodsFile:  c.FoodsFile,
		LogFile:    c.LogFile,
		SQLitePath: c.SQLitePath,
	}
}

// SlogLevel converts LogLevel for slog.HandlerOptions.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func inDir(dir, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
