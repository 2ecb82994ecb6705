// Package config loads memwatch CLI settings.
//
// Precedence (highest to lowest):
//  1. CLI flags (bound with BindFlags)
//  2. Environment variables (MEMWATCH_INTERVAL, MEMWATCH_LOG_LEVEL, ...)
//  3. memwatch.yaml in the working directory or ~/.config/memwatch
//  4. Defaults from Default()
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileName = "memwatch"
	configFileType = "yaml"
	envPrefix      = "MEMWATCH"
)

// Config keys.
const (
	KeyInterval      = "interval"
	KeyDuration      = "duration"
	KeyTitle         = "title"
	KeyLogLevel      = "log.level"
	KeyLogFile       = "log.file"
	KeyLogTimestamps = "log.timestamps"
	KeyLogScrollback = "log.scrollback"
)

const defaultScrollback = 1000

// Config is the resolved CLI configuration.
type Config struct {
	// Interval is the time between demo ticks (mutate + refresh).
	Interval time.Duration `mapstructure:"interval"`
	// Duration stops the demo after this long; zero runs until a signal.
	Duration time.Duration `mapstructure:"duration"`
	// Title is the watch panel heading.
	Title string `mapstructure:"title"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig covers both the diagnostic log and the log panel.
type LogConfig struct {
	// Level of the diagnostic logger: debug, info, warn, error.
	Level string `mapstructure:"level"`
	// File receives diagnostics. Empty discards them, since the terminal
	// belongs to the panels while memwatch runs.
	File string `mapstructure:"file"`
	// Timestamps prefixes log panel lines with the time.
	Timestamps bool `mapstructure:"timestamps"`
	// Scrollback is the number of log panel lines kept.
	Scrollback int `mapstructure:"scrollback"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Interval: 100 * time.Millisecond,
		Title:    "Memory Window:",
		Log: LogConfig{
			Level:      "info",
			Scrollback: defaultScrollback,
		},
	}
}

// NewViper builds a viper instance with defaults, the config file and the
// environment applied. An explicit configFile must exist; the implicit
// search tolerates a missing file.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "memwatch"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyInterval, d.Interval)
	v.SetDefault(KeyDuration, d.Duration)
	v.SetDefault(KeyTitle, d.Title)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFile, d.Log.File)
	v.SetDefault(KeyLogTimestamps, d.Log.Timestamps)
	v.SetDefault(KeyLogScrollback, d.Log.Scrollback)
}

// BindFlags binds every flag in flags whose name matches a config key,
// with dots in keys spelled as dashes ("log-level" → "log.level").
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range []string{KeyInterval, KeyDuration, KeyTitle, KeyLogLevel, KeyLogFile, KeyLogTimestamps, KeyLogScrollback} {
		flag := flags.Lookup(strings.ReplaceAll(key, ".", "-"))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag.Name, err)
		}
	}
	return nil
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must not be negative, got %s", c.Duration)
	}
	if c.Log.Scrollback <= 0 {
		return fmt.Errorf("log.scrollback must be positive, got %d", c.Log.Scrollback)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}
	return nil
}
