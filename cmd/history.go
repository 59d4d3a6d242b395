package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show per-category accuracy and recent answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setup(cmd, nil, nil)
		if err != nil {
			return err
		}
		defer e.Close()

		s, err := e.openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()

		summaries, err := repo.AnswerSummaryByCategory(ctx)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}
		if len(summaries) == 0 {
			fmt.Println("No answers recorded yet.")
			return nil
		}

		fmt.Println("Accuracy by Category")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-20s  %8s  %8s  %8s\n", "Category", "Attempts", "Correct", "Accuracy")
		fmt.Println(strings.Repeat("─", 48))
		for _, sum := range summaries {
			fmt.Printf("%-20s  %8d  %8d  %7.0f%%\n",
				categoryName(sum.Category), sum.Attempts, sum.Correct, sum.Accuracy()*100)
		}

		answers, err := repo.QueryAnswerEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}

		fmt.Println()
		fmt.Println("Recent Answers")
		fmt.Println(strings.Repeat("─", 72))
		for _, a := range answers {
			mark := "✓"
			detail := ""
			if !a.Correct {
				mark = "✗"
				detail = fmt.Sprintf("  (chose %s, answer %s)", a.LearnerAnswer, a.CorrectAnswer)
			}
			fmt.Printf("%s  %s  %-12s  %s%s\n",
				a.Timestamp.Local().Format("2006-01-02 15:04"),
				mark, a.Category, a.Question, detail)
		}
		return nil
	},
}

// categoryName returns the display name for a category id, or the id itself.
func categoryName(id string) string {
	if c, ok := problem.LookupCategory(id); ok {
		return c.Name
	}
	return id
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of recent answers to show")
}
