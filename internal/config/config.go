// Package config loads user settings from config.yaml in the config
// directory, with HABITUAL_* environment variables taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/utils"
)

const envPrefix = "HABITUAL"

type Notifications struct {
	Enabled bool `mapstructure:"enabled"`
}

type Backup struct {
	Auto bool `mapstructure:"auto"`
}

type API struct {
	Addr string `mapstructure:"addr"`
}

// Config holds the settings shared by every command
type Config struct {
	Storage       string        `mapstructure:"storage"`
	Timezone      string        `mapstructure:"timezone"`
	Debug         bool          `mapstructure:"debug"`
	Notifications Notifications `mapstructure:"notifications"`
	Backup        Backup        `mapstructure:"backup"`
	API           API           `mapstructure:"api"`

	// Dir is the directory the config file was looked up in
	Dir string `mapstructure:"-"`
}

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(constants.DefaultConfigFile, filepath.Ext(constants.DefaultConfigFile)))
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("storage", constants.DefaultStoragePath)
	v.SetDefault("timezone", constants.DefaultTimezone)
	v.SetDefault("debug", false)
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("backup.auto", true)
	v.SetDefault("api.addr", constants.DefaultAPIAddress)
	return v
}

// Load reads config.yaml from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	v := newViper(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Dir = dir

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write saves cfg as config.yaml in dir, creating the directory if needed.
func Write(dir string, cfg *Config) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("storage", cfg.Storage)
	v.Set("timezone", cfg.Timezone)
	v.Set("debug", cfg.Debug)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("backup.auto", cfg.Backup.Auto)
	v.Set("api.addr", cfg.API.Addr)

	path := filepath.Join(dir, constants.DefaultConfigFile)
	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config: %w", err)
	}
	return path, nil
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Path returns the location of config.yaml.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, constants.DefaultConfigFile)
}
