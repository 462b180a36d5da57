/*
Package config loads server configuration via viper.

SOURCES (highest wins):
  1. Environment variables with the INVENTORY_ prefix
     (INVENTORY_PORT, INVENTORY_DATA_DIR, ...)
  2. An optional inventory.yaml in the working directory
  3. Built-in defaults

KEYS:
  port            HTTP port                      (default 8080)
  data_dir        directory for flat table files (default ./data)
  backend         "flatfile" or "sqlite"         (default flatfile)
  sqlite_path     database path for the sqlite backend
  admin_password  overrides the seeded admin password on first run
*/
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the resolved server configuration.
type Config struct {
	Port          int    `mapstructure:"port"`
	DataDir       string `mapstructure:"data_dir"`
	Backend       string `mapstructure:"backend"`
	SQLitePath    string `mapstructure:"sqlite_path"`
	AdminPassword string `mapstructure:"admin_password"`
}

// Load resolves the configuration from defaults, an optional
// inventory.yaml and INVENTORY_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("port", 8080)
	v.SetDefault("data_dir", "./data")
	v.SetDefault("backend", "flatfile")
	v.SetDefault("sqlite_path", "./data/inventory.db")
	v.SetDefault("admin_password", "")

	v.SetConfigName("inventory")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("INVENTORY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; anything else is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
