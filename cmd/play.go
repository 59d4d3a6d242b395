package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/littlemath/internal/app"
	"github.com/abhisek/littlemath/internal/quiz"
	"github.com/abhisek/littlemath/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		return runPlay(cmd, category)
	},
}

func init() {
	playCmd.Flags().StringP("category", "c", "", "Open this category directly (see `littlemath categories`)")
}

// runPlay opens the store, builds the controller and launches the TUI.
func runPlay(cmd *cobra.Command, category string) error {
	ctx := cmd.Context()

	e, err := setup(cmd, nil, nil)
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

	recorder := session.New(repo, session.FrontendTUI, e.logger)
	ctrl := quiz.NewController(provider,
		quiz.WithLogger(e.logger),
		quiz.WithObservers(recorder))

	if err := recorder.Start(ctx); err != nil {
		e.logger.Warn("record session start", zap.Error(err))
	}

	runErr := app.Run(ctx, app.Options{
		Controller:      ctrl,
		History:         repo,
		InitialCategory: category,
		Logger:          e.logger,
	})

	// The run context may already be cancelled; the end event is still
	// written.
	summary, err := recorder.End(context.WithoutCancel(ctx), ctrl.State().Stats)
	if err != nil {
		e.logger.Warn("record session end", zap.Error(err))
	}
	if runErr != nil {
		return runErr
	}

	if summary.Stats.TotalAttempts > 0 {
		fmt.Printf("本次练习：⭐ %d 分，答对 %d/%d 题（正确率 %d%%），用时 %s\n",
			summary.Stats.Score,
			summary.Stats.CorrectAnswers,
			summary.Stats.TotalAttempts,
			summary.Stats.AccuracyPercent(),
			summary.Duration.Round(time.Second))
	}
	return nil
}
