package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime settings. Values come from an optional YAML file
// and can be overridden with HELDENINV_* environment variables
// (HELDENINV_LISTEN_ADDR, HELDENINV_STORAGE_BACKEND, ...).
type Config struct {
	ListenAddr     string `mapstructure:"listen_addr"`
	StorageBackend string `mapstructure:"storage_backend"` // "file" or "sqlite"
	DataFile       string `mapstructure:"data_file"`
	DBPath         string `mapstructure:"db_path"`
	AuditFile      string `mapstructure:"audit_file"`
	LogLevel       string `mapstructure:"log_level"`
	LogFile        string `mapstructure:"log_file"`
}

// Load reads configuration from path (optional, "" skips the file) and the
// environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("storage_backend", "file")
	v.SetDefault("data_file", "data/inventory.json")
	v.SetDefault("db_path", "data/inventory.db")
	v.SetDefault("audit_file", "data/inventory.log")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	v.SetEnvPrefix("heldeninv")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	switch cfg.StorageBackend {
	case "file", "sqlite":
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	return cfg, nil
}
