package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diet-manager/internal/storage"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, storage.BackendJSON, cfg.Backend)
	assert.Equal(t, "food_database.json", cfg.FoodsFile)
	assert.Equal(t, "food_log.json", cfg.LogFile)
	assert.Equal(t, "diet-manager.db", cfg.SQLitePath)
	assert.Equal(t, "profile.yaml", cfg.ProfileFile)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_DataDir(t *testing.T) {
	t.Parallel()

	v := New()
	v.Set("data_dir", "/var/lib/diet")
	v.Set("storage.log_file", "/tmp/elsewhere.json")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/var/lib/diet", "food_database.json"), cfg.FoodsFile)
	assert.Equal(t, "/tmp/elsewhere.json", cfg.LogFile, "absolute paths are kept")

	opts := cfg.StorageOptions()
	assert.Equal(t, cfg.FoodsFile, opts.FoodsFile)
	assert.Equal(t, cfg.SQLitePath, opts.SQLitePath)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DIET_STORAGE_BACKEND", "SQLite")
	t.Setenv("DIET_LOG_LEVEL", "debug")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, storage.BackendSQLite, cfg.Backend)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diet.yaml")
	content := "data_dir: /srv/diet\nstorage:\n  backend: sqlite\n  sqlite_path: meals.db\nlog_level: warn\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := New()
	require.NoError(t, ReadFile(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, storage.BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join("/srv/diet", "meals.db"), cfg.SQLitePath)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())

	assert.Error(t, ReadFile(New(), filepath.Join(t.TempDir(), "missing.yaml")))
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "json", cfg: Config{Backend: "json", LogLevel: "info"}},
		{name: "sqlite", cfg: Config{Backend: "sqlite", LogLevel: "error"}},
		{name: "unknown backend", cfg: Config{Backend: "postgres", LogLevel: "info"}, wantErr: true},
		{name: "unknown level", cfg: Config{Backend: "json", LogLevel: "trace"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
