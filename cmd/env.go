package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/littlemath/internal/config"
	"github.com/abhisek/littlemath/internal/llm"
	"github.com/abhisek/littlemath/internal/logging"
	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/store"
)

// flagOverrides maps persistent flags to config keys.
var flagOverrides = map[string]string{
	"db":        "db",
	"log-file":  "log.file",
	"log-level": "log.level",
}

// env is what every command needs once configuration is loaded.
type env struct {
	cfg      *config.Config
	logger   *zap.Logger
	closeLog func() error
}

// setup loads configuration and builds the logger. console, when non-nil,
// also receives human-readable log output.
func setup(cmd *cobra.Command, console io.Writer, extra map[string]any) (*env, error) {
	overrides := make(map[string]any)
	for flag, key := range flagOverrides {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}
	for k, v := range extra {
		overrides[k] = v
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{
		ConfigFile: configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Log
	logCfg.Console = console
	logger, closeLog, err := logging.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	logger.Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("db", cfg.DB))

	return &env{cfg: cfg, logger: logger, closeLog: closeLog}, nil
}

func (e *env) Close() {
	_ = e.logger.Sync()
	_ = e.closeLog()
}

// dbPath returns the configured database path, or the default XDG path.
func (e *env) dbPath() (string, error) {
	if e.cfg.DB != "" {
		return e.cfg.DB, store.EnsureDir(e.cfg.DB)
	}
	return store.DefaultDBPath()
}

func (e *env) openStore() (*store.Store, error) {
	path, err := e.dbPath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	st, err := store.Open(path, store.WithLogger(e.logger))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}

// problemProvider builds the LLM-backed problem provider. recorder may be
// nil to skip persisting LLM request events.
func (e *env) problemProvider(ctx context.Context, recorder llm.EventRecorder) (problem.Provider, error) {
	p, err := llm.NewProvider(ctx, e.cfg.LLM, recorder, e.logger)
	if err != nil {
		return nil, fmt.Errorf("LLM provider: %w\n\nSet GEMINI_API_KEY (or OPENAI_API_KEY, ANTHROPIC_API_KEY, OPENROUTER_API_KEY) or configure llm.provider", err)
	}
	return problem.NewLLMProvider(p, problem.DefaultConfig(e.cfg.Quiz.StrictOptions), e.logger), nil
}
