package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fieldshape/mlca/pkg/complexity"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Scoring != complexity.DefaultOptions() {
		t.Errorf("missing file should keep default scoring, got %+v", cfg.Scoring)
	}
	if cfg.Store.Database != "mlca" || cfg.Store.Collection != "runs" {
		t.Errorf("missing file should keep default store config, got %+v", cfg.Store)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
workers = 4

[scoring]
x_weight = 2.0
max_field_size_x = 300.0

[cache]
redis_url = "redis://localhost:6379/0"

[store]
mongo_uri = "mongodb://localhost:27017"
database = "clinic"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.Scoring.XWeight != 2.0 {
		t.Errorf("Scoring.XWeight = %g, want 2.0", cfg.Scoring.XWeight)
	}
	if cfg.Scoring.YWeight != complexity.DefaultYWeight {
		t.Errorf("Scoring.YWeight = %g, want default %g", cfg.Scoring.YWeight, complexity.DefaultYWeight)
	}
	if cfg.Scoring.MaxFieldSizeX != 300.0 {
		t.Errorf("Scoring.MaxFieldSizeX = %g, want 300.0", cfg.Scoring.MaxFieldSizeX)
	}
	if cfg.Cache.RedisURL != "redis://localhost:6379/0" {
		t.Errorf("Cache.RedisURL = %q", cfg.Cache.RedisURL)
	}
	if cfg.Store.Database != "clinic" {
		t.Errorf("Store.Database = %q, want clinic", cfg.Store.Database)
	}
	if cfg.Store.Collection != "runs" {
		t.Errorf("Store.Collection = %q, want default runs", cfg.Store.Collection)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not toml", "{{{"},
		{"negative weight", "[scoring]\nx_weight = -1.0\n"},
		{"zero field size", "[scoring]\nmax_field_size_y = 0.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := LoadConfig(path); err == nil {
				t.Error("LoadConfig() should reject invalid config")
			}
		})
	}
}

func TestLoadConfigOrDefaultFallsBack(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := os.MkdirAll(filepath.Join(dir, appName), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, appName, "config.toml"), []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := LoadConfigOrDefault()
	if cfg.Scoring != complexity.DefaultOptions() {
		t.Errorf("malformed config should fall back to defaults, got %+v", cfg.Scoring)
	}
}
