// ABOUTME: Hoops configuration management with backend selection.
// ABOUTME: Loads JSON config plus HOOPS_ env overrides via viper and opens storage.

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/hoops/internal/storage"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// EnvPrefix prefixes every environment override, e.g. HOOPS_BACKEND.
const EnvPrefix = "HOOPS"

// Backends lists the supported storage backends.
var Backends = []string{"sqlite", "postgres", "badger", "charm"}

// Config stores hoops tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "postgres",
	// "badger", or "charm".
	Backend string `json:"backend,omitempty" mapstructure:"backend"`

	// DataDir is the root directory for local data. SQLite puts hoops.db
	// here and badger uses a badger/ subdirectory. Supports ~ expansion.
	// Defaults to ~/.local/share/hoops.
	DataDir string `json:"data_dir,omitempty" mapstructure:"data_dir"`

	PostgresDSN     string        `json:"postgres_dsn,omitempty" mapstructure:"postgres_dsn"`
	PostgresTimeout time.Duration `json:"postgres_timeout,omitempty" mapstructure:"postgres_timeout"`

	// CharmHost is the Charm server for the charm backend.
	CharmHost string `json:"charm_host,omitempty" mapstructure:"charm_host"`

	Log   LogConfig   `json:"log" mapstructure:"log"`
	Media MediaConfig `json:"media" mapstructure:"media"`

	path string
}

// LogConfig selects log level and encoding.
type LogConfig struct {
	Level  string `json:"level,omitempty" mapstructure:"level"`
	Format string `json:"format,omitempty" mapstructure:"format"`
}

// MediaConfig holds S3-compatible object storage settings for session videos.
type MediaConfig struct {
	AccountID       string `json:"account_id,omitempty" mapstructure:"account_id"`
	Endpoint        string `json:"endpoint,omitempty" mapstructure:"endpoint"`
	AccessKeyID     string `json:"access_key_id,omitempty" mapstructure:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key,omitempty" mapstructure:"secret_access_key"`
	Bucket          string `json:"bucket,omitempty" mapstructure:"bucket"`
	PublicBaseURL   string `json:"public_base_url,omitempty" mapstructure:"public_base_url"`
}

// Enabled reports whether uploads are configured.
func (m MediaConfig) Enabled() bool {
	return m.Bucket != "" && m.AccessKeyID != "" && m.SecretAccessKey != "" &&
		(m.AccountID != "" || m.Endpoint != "")
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "sqlite"
	}
	return strings.ToLower(c.Backend)
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	if c.path == "" {
		return GetConfigPath()
	}
	return c.path
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// IsValidBackend checks if name is a supported backend.
func IsValidBackend(name string) bool {
	for _, b := range Backends {
		if b == strings.ToLower(name) {
			return true
		}
	}
	return false
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage(ctx context.Context, logger *zap.Logger) (storage.Repository, error) {
	return c.OpenBackend(ctx, c.GetBackend(), logger)
}

// OpenBackend opens a specific backend using this config's settings.
func (c *Config) OpenBackend(ctx context.Context, backend string, logger *zap.Logger) (storage.Repository, error) {
	dataDir := c.GetDataDir()

	switch strings.ToLower(backend) {
	case "sqlite":
		return storage.Open(filepath.Join(dataDir, "hoops.db"), logger)
	case "postgres":
		timeout := c.PostgresTimeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		return storage.OpenPostgres(ctx, c.PostgresDSN, timeout, logger)
	case "badger":
		return storage.OpenBadger(filepath.Join(dataDir, "badger"), logger)
	case "charm":
		return storage.OpenCharm(c.CharmHost, logger)
	default:
		return nil, fmt.Errorf("unknown backend: %q (want one of %s)", backend, strings.Join(Backends, ", "))
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "hoops", "config.json")
}

// Load reads config from path (or the default path when empty), then
// applies HOOPS_ environment overrides. A missing file is not an error.
// Priority: environment > file > defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigPath()
	}

	v := viper.New()

	v.SetDefault("backend", "sqlite")
	v.SetDefault("data_dir", "")
	v.SetDefault("postgres_dsn", "")
	v.SetDefault("postgres_timeout", "5s")
	v.SetDefault("charm_host", storage.DefaultCharmHost)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("media.account_id", "")
	v.SetDefault("media.endpoint", "")
	v.SetDefault("media.access_key_id", "")
	v.SetDefault("media.secret_access_key", "")
	v.SetDefault("media.bucket", "")
	v.SetDefault("media.public_base_url", "")

	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.path = path

	if !IsValidBackend(cfg.GetBackend()) {
		return nil, fmt.Errorf("unknown backend: %q (want one of %s)", cfg.Backend, strings.Join(Backends, ", "))
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := c.Path()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
