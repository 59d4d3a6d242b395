package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/littlemath/internal/metrics"
	"github.com/abhisek/littlemath/internal/quiz"
	"github.com/abhisek/littlemath/internal/server"
	"github.com/abhisek/littlemath/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice session as a JSON API",
	Long: `Run a single shared practice session behind an HTTP API.

The session state is available at GET /api/state; intents are POSTed to
/api/category, /api/answer, /api/explanation, /api/next, /api/retry and
/api/reset. Prometheus metrics are exposed at /metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080, or server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	extra := map[string]any{}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		extra["server.addr"] = addr
	}
	e, err := setup(cmd, os.Stderr, extra)
	if err != nil {
		return err
	}
	defer e.Close()

	st, err := e.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	repo := st.EventRepo()
	provider, err := e.problemProvider(ctx, repo)
	if err != nil {
		return err
	}

	m := metrics.New()
	m.RegisterDB(st.DB())

	recorder := session.New(repo, session.FrontendHTTP, e.logger)
	ctrl := quiz.NewController(provider,
		quiz.WithLogger(e.logger),
		quiz.WithObservers(recorder, m))

	gin.SetMode(gin.ReleaseMode)
	srv, err := server.New(ctrl, server.Options{
		AllowedOrigins: e.cfg.Server.AllowedOrigins,
		Metrics:        m,
		DB:             st.DB(),
		Logger:         e.logger,
	})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	if err := recorder.Start(ctx); err != nil {
		e.logger.Warn("record session start", zap.Error(err))
	}

	serveErr := srv.ListenAndServe(ctx, e.cfg.Server.Addr)

	summary, err := recorder.End(context.WithoutCancel(ctx), ctrl.State().Stats)
	if err != nil {
		e.logger.Warn("record session end", zap.Error(err))
	}
	e.logger.Info("session summary",
		zap.String("session_id", summary.SessionID),
		zap.Int("score", summary.Stats.Score),
		zap.Int("correct", summary.Stats.CorrectAnswers),
		zap.Int("attempts", summary.Stats.TotalAttempts),
		zap.Duration("duration", summary.Duration))
	return serveErr
}
