package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/quiz"
	"github.com/abhisek/littlemath/internal/ui/components"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated problems for a category (no database)",
	Long: `Generate and interactively answer problems for one category.

This is a stateless developer tool: no database and no session events.
Useful for evaluating problem quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("category", "", "Category ID (required, see `littlemath categories`)")
	previewCmd.Flags().Int("count", 5, "Number of problems to generate")
	_ = previewCmd.MarkFlagRequired("category")
}

func runPreview(cmd *cobra.Command, args []string) error {
	categoryID, _ := cmd.Flags().GetString("category")
	count, _ := cmd.Flags().GetInt("count")

	category, ok := problem.LookupCategory(categoryID)
	if !ok {
		return fmt.Errorf("unknown category %q", categoryID)
	}

	e, err := setup(cmd, nil, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	provider, err := e.problemProvider(ctx, nil)
	if err != nil {
		return err
	}
	ctrl := quiz.NewController(provider, quiz.WithLogger(e.logger))

	fmt.Printf("%s %s — generating %d problems...\n\n", category.Icon, category.Name, count)
	ctrl.Do(ctx, quiz.SelectCategory{ID: category.ID})

	in := bufio.NewScanner(os.Stdin)
	for i := 1; i <= count; i++ {
		if !previewOne(ctx, ctrl, in, os.Stdout, i, count) {
			break
		}
		if i < count {
			advance(ctx, ctrl)
		}
	}

	st := ctrl.State().Stats
	fmt.Printf("── Summary: %d/%d correct, %d points ──\n", st.CorrectAnswers, st.TotalAttempts, st.Score)
	return nil
}

// advance fetches the next problem, or retries after a failed fetch.
func advance(ctx context.Context, ctrl *quiz.Controller) {
	switch ctrl.State().Phase() {
	case quiz.PhaseAnswered:
		ctrl.Do(ctx, quiz.RequestNext{})
	case quiz.PhaseError:
		ctrl.Do(ctx, quiz.Retry{})
	}
}

// previewOne shows the current problem, reads one answer and prints the
// feedback. It returns false when input is exhausted or ctx is done.
func previewOne(ctx context.Context, ctrl *quiz.Controller, in *bufio.Scanner, out io.Writer, n, count int) bool {
	if ctx.Err() != nil {
		return false
	}

	st := ctrl.State()
	if st.Phase() == quiz.PhaseError {
		fmt.Fprintf(out, "Problem %d: generation failed, see the log for details\n\n", n)
		return true
	}

	p := st.Problem
	fmt.Fprintf(out, "── Problem %d/%d ──\n%s\n", n, count, p.Question)
	for j, o := range p.Options {
		fmt.Fprintf(out, "  %s) %s\n", components.Label(j), o)
	}

	var option string
	for {
		fmt.Fprint(out, "\nYour answer: ")
		if !in.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return false
		}
		var ok bool
		if option, ok = parseChoice(in.Text(), p.Options); ok {
			break
		}
		fmt.Fprintf(out, "Enter a letter from A to %s, or the option text.\n", components.Label(len(p.Options)-1))
	}

	ctrl.Dispatch(quiz.SubmitAnswer{Option: option})
	fb := ctrl.State().Feedback
	if fb.IsCorrect {
		fmt.Fprintln(out, "\033[32m✓ "+fb.Message+"\033[0m")
	} else {
		fmt.Fprintf(out, "\033[31m✗ %s\033[0m Answer: %s\n", fb.Message, p.Answer)
		ctrl.Dispatch(quiz.RevealExplanation{})
		if p.Explanation != "" {
			fmt.Fprintf(out, "💡 小贴士：%s\n", p.Explanation)
		}
	}
	fmt.Fprintln(out)
	return true
}

// parseChoice maps learner input to an option: a letter (A-F) or the exact
// option text. Positions are not accepted since most options are numbers.
func parseChoice(input string, options []string) (string, bool) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", false
	}
	for _, o := range options {
		if s == o {
			return o, true
		}
	}
	for i := range options {
		if strings.EqualFold(s, components.Label(i)) {
			return options[i], true
		}
	}
	return "", false
}
