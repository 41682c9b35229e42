// Package config provides configuration types, defaults and loading for yate.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"yate/internal/log"
)

// Config holds all configuration options for yate.
type Config struct {
	TabStop        int           `mapstructure:"tab_stop"`
	QuitTimes      int           `mapstructure:"quit_times"`      // extra Ctrl-Q presses needed with unsaved changes
	MessageTimeout time.Duration `mapstructure:"message_timeout"` // status message lifetime
	Debug          bool          `mapstructure:"debug"`
	LogFile        string        `mapstructure:"log_file"`
	LogLevel       string        `mapstructure:"log_level"`
	StateFile      string        `mapstructure:"state_file"` // empty disables the recent-files history
	RecentLimit    int           `mapstructure:"recent_limit"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		TabStop:        4,
		QuitTimes:      3,
		MessageTimeout: 5 * time.Second,
		LogFile:        filepath.Join(os.TempDir(), "yate.log"),
		LogLevel:       "debug",
		StateFile:      defaultStateFile(),
		RecentLimit:    10,
	}
}

// Dir is the per-user configuration directory, ~/.config/yate.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "yate")
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "yate", "state.yaml")
}

// Load reads configuration into v and decodes it. An explicit file must
// exist; otherwise config.yaml is looked up in dirs (default: Dir()) and
// its absence is not an error. YATE_* environment variables override
// file values.
func Load(v *viper.Viper, file string, dirs ...string) (Config, error) {
	d := Defaults()
	v.SetDefault("tab_stop", d.TabStop)
	v.SetDefault("quit_times", d.QuitTimes)
	v.SetDefault("message_timeout", d.MessageTimeout)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("state_file", d.StateFile)
	v.SetDefault("recent_limit", d.RecentLimit)

	v.SetEnvPrefix("YATE")
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		if len(dirs) == 0 {
			dirs = []string{Dir()}
		}
		for _, dir := range dirs {
			if dir != "" {
				v.AddConfigPath(dir)
			}
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.normalize(d)
	log.Debug(log.CatConfig, "loaded", "file", v.ConfigFileUsed(), "tab_stop", cfg.TabStop)
	return cfg, nil
}

func (c *Config) normalize(d Config) {
	if c.TabStop < 1 {
		c.TabStop = d.TabStop
	}
	if c.QuitTimes < 0 {
		c.QuitTimes = 0
	}
	if c.MessageTimeout <= 0 {
		c.MessageTimeout = d.MessageTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.RecentLimit < 1 {
		c.RecentLimit = d.RecentLimit
	}
}
