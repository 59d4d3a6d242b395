// Package config loads littlemath settings from .env, an optional YAML file,
// LITTLEMATH_* environment variables and command-line overrides, in that
// order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/littlemath/internal/llm"
	"github.com/abhisek/littlemath/internal/logging"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LITTLEMATH"

// Config is the full application configuration.
type Config struct {
	LLM llm.Config `mapstructure:"llm"`
	// DB is the SQLite path. Empty means store.DefaultDBPath.
	DB     string         `mapstructure:"db"`
	Log    logging.Config `mapstructure:"log"`
	Server ServerConfig   `mapstructure:"server"`
	Quiz   QuizConfig     `mapstructure:"quiz"`
}

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// QuizConfig configures problem generation.
type QuizConfig struct {
	// StrictOptions rejects generated problems whose answer is not exactly
	// one of the options.
	StrictOptions bool `mapstructure:"strict_options"`
}

// Options controls Load.
type Options struct {
	// ConfigFile is an explicit YAML file. It must exist when set. When
	// empty, DefaultConfigPath is read if present.
	ConfigFile string

	// EnvFile is the dotenv file to load. Empty means ".env"; a missing
	// file is ignored.
	EnvFile string

	// Overrides are applied last, keyed like the YAML file ("db",
	// "log.level").
	Overrides map[string]any
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/littlemath/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "littlemath", "config.yaml")
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	v.SetDefault("llm.timeout", d.Timeout)

	l := logging.DefaultConfig()
	v.SetDefault("db", "")
	v.SetDefault("log.file", l.File)
	v.SetDefault("log.level", l.Level)
	v.SetDefault("log.max_size_mb", l.MaxSizeMB)
	v.SetDefault("log.max_backups", l.MaxBackups)
	v.SetDefault("log.max_age_days", l.MaxAgeDays)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("quiz.strict_options", false)
}

// Load assembles the configuration. When no LLM provider is configured it
// falls back to the standard provider API key variables.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// llm.provider has no default so an unset provider can be detected.
	if err := v.BindEnv("llm.provider"); err != nil {
		return nil, fmt.Errorf("bind llm.provider: %w", err)
	}

	path := opts.ConfigFile
	if path == "" {
		if p := DefaultConfigPath(); p != "" {
			if _, err := os.Stat(p); err == nil {
				path = p
			}
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	for k, val := range opts.Overrides {
		v.Set(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = llm.ProviderGemini
		if !cfg.LLM.HasKey() {
			if found, ok := llm.DiscoverConfig(cfg.LLM); ok {
				cfg.LLM = found
			}
		}
	}
	cfg.LLM.Provider = strings.ToLower(cfg.LLM.Provider)

	return &cfg, nil
}
