// Package config loads runtime settings for tigerrt.
//
// Settings are layered with github.com/spf13/viper: built-in defaults, then
// a YAML config file, then TIGERRT_* environment variables. The file is
// either given explicitly (--config) or found at $HOME/.tigerrt/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/shinji-kodama/tigerrt/internal/primitive"
)

// EnvPrefix is prepended to upper-cased keys to form environment variables,
// e.g. TIGERRT_OUTPUT_BUFFER_SIZE.
const EnvPrefix = "TIGERRT"

// Keys understood in config files and the environment.
const (
	KeyOutputBufferSize     = "output_buffer_size"
	KeyDiscardBufferedInput = "discard_buffered_input"
	KeyFlushOnExit          = "flush_on_exit"
)

// Config holds the runtime settings.
type Config struct {
	// OutputBufferSize is the stdout buffer size in bytes.
	OutputBufferSize int `mapstructure:"output_buffer_size"`

	// DiscardBufferedInput drops already-buffered input after getchar
	// consumes its byte. Off by default, since it loses unread input.
	DiscardBufferedInput bool `mapstructure:"discard_buffered_input"`

	// FlushOnExit flushes stdout before the exit primitive terminates.
	FlushOnExit bool `mapstructure:"flush_on_exit"`

	// Source is the config file that was read, empty when none was found.
	Source string `mapstructure:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		OutputBufferSize:     primitive.DefaultOutputBufferSize,
		DiscardBufferedInput: false,
		FlushOnExit:          true,
	}
}

// Load reads settings from path (or the default location when path is
// empty) and the environment. A missing default file is not an error;
// a missing explicit file is.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault(KeyOutputBufferSize, def.OutputBufferSize)
	v.SetDefault(KeyDiscardBufferedInput, def.DiscardBufferedInput)
	v.SetDefault(KeyFlushOnExit, def.FlushOnExit)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".tigerrt"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings for values the runtime cannot use.
func (c *Config) Validate() error {
	if c.OutputBufferSize <= 0 {
		return fmt.Errorf("%s must be positive, got %d", KeyOutputBufferSize, c.OutputBufferSize)
	}
	return nil
}

// Options converts the settings to runtime options.
func (c *Config) Options() []primitive.Option {
	return []primitive.Option{
		primitive.WithOutputBufferSize(c.OutputBufferSize),
		primitive.WithInputReset(c.DiscardBufferedInput),
		primitive.WithFlushOnExit(c.FlushOnExit),
	}
}
