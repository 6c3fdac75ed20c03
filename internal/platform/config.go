package platform

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aretw0/scribe/pkg/core"
	"github.com/aretw0/scribe/pkg/form"
)

// EnvPrefix prefixes every environment variable read by LoadSettings (e.g. SCRIBE_ADAPTER).
const EnvPrefix = "scribe"

// Settings is the user-facing configuration of the CLI.
type Settings struct {
	Adapter     string        `mapstructure:"adapter"`
	DataDir     string        `mapstructure:"data_dir"`
	RedisURL    string        `mapstructure:"redis_url"`
	RedisPrefix string        `mapstructure:"redis_prefix"`
	Key         string        `mapstructure:"key"`
	Strict      bool          `mapstructure:"strict"`
	NoDelay     bool          `mapstructure:"no_delay"`
	Delay       DelaySettings `mapstructure:"delay"`
	DevSafety   bool          `mapstructure:"dev_safety"`
	IDFormat    string        `mapstructure:"id_format"`
}

// DelaySettings mirrors core.Delays.
type DelaySettings struct {
	Add    time.Duration `mapstructure:"add"`
	Update time.Duration `mapstructure:"update"`
	Delete time.Duration `mapstructure:"delete"`
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	d := core.DefaultDelays()
	v.SetDefault("adapter", "fs")
	v.SetDefault("data_dir", "")
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("redis_prefix", "scribe:")
	v.SetDefault("key", core.DefaultKey)
	v.SetDefault("strict", false)
	v.SetDefault("no_delay", false)
	v.SetDefault("delay.add", d.Add)
	v.SetDefault("delay.update", d.Update)
	v.SetDefault("delay.delete", d.Delete)
	v.SetDefault("dev_safety", true)
	v.SetDefault("id_format", "short")
}

// LoadSettings reads .env, an optional config file and SCRIBE_* variables into v.
// With an empty configFile, scribe.{yaml,json,toml} is searched in the working
// directory and in $HOME/.config/scribe; a missing file is not an error.
func LoadSettings(v *viper.Viper, configFile string) (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, fmt.Errorf("failed to load .env: %w", err)
	}

	SetDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("scribe")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "scribe"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return Settings{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return s, nil
}

// URI returns the adapter-specific location of the notes.
func (s Settings) URI() string {
	if s.Adapter == "redis" {
		return s.RedisURL
	}
	return s.DataDir
}

// Variant returns the form validation variant.
func (s Settings) Variant() form.Variant {
	if s.Strict {
		return form.Strict
	}
	return form.Simple
}

// Options translates the settings into store options.
func (s Settings) Options(logger *slog.Logger) ([]Option, error) {
	opts := []Option{
		WithAdapter(s.Adapter),
		WithKey(s.Key),
		WithDevSafety(s.DevSafety),
		WithRedisPrefix(s.RedisPrefix),
		WithLogger(logger),
	}

	if s.NoDelay {
		opts = append(opts, WithoutDelay())
	} else {
		opts = append(opts, WithDelays(core.Delays{
			Add:    s.Delay.Add,
			Update: s.Delay.Update,
			Delete: s.Delay.Delete,
		}))
	}

	switch s.IDFormat {
	case "", "short":
	case "uuid":
		opts = append(opts, WithIDGenerator(core.UUIDGenerator))
	default:
		return nil, fmt.Errorf("unknown id_format: %s", s.IDFormat)
	}

	return opts, nil
}
