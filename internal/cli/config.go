package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/fieldshape/mlca/pkg/complexity"
)

// Config is the user configuration loaded from ~/.config/mlca/config.toml.
// Every field has a working default; the file is optional.
type Config struct {
	// Scoring sets the default complexity parameters. Command-line flags
	// override these per invocation.
	Scoring complexity.Options `toml:"scoring"`

	// Workers bounds concurrent file analysis. Zero means one per CPU.
	Workers int `toml:"workers"`

	Cache CacheConfig `toml:"cache"`
	Store StoreConfig `toml:"store"`
}

// CacheConfig selects the result cache backend.
type CacheConfig struct {
	// RedisURL switches the cache from the local file cache to redis
	// (redis://host:port/db). Empty uses ~/.cache/mlca.
	RedisURL string `toml:"redis_url"`
}

// StoreConfig configures optional report persistence.
type StoreConfig struct {
	// MongoURI enables saving run reports to MongoDB. Empty disables.
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Scoring: complexity.DefaultOptions(),
		Store: StoreConfig{
			Database:   appName,
			Collection: "runs",
		},
	}
}

// LoadConfigOrDefault reads the config file if present. A missing file is
// not an error; a malformed one falls back to defaults so the CLI stays
// usable (the problem surfaces when the user inspects the config).
func LoadConfigOrDefault() *Config {
	cfg, err := LoadConfig(configPath())
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// LoadConfig reads and validates the config at path. Fields absent from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Scoring.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath returns the config file location using XDG standard
// (~/.config/mlca/config.toml).
func configPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
