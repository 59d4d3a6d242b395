package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/littlemath/internal/llm"
	"github.com/abhisek/littlemath/internal/problem"
	"github.com/abhisek/littlemath/internal/store"
	"github.com/abhisek/littlemath/internal/ui/components"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded problem-generation calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent problem-generation calls",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")
		if all, _ := cmd.Flags().GetBool("all"); all {
			purpose = ""
		}

		s, closeAll, err := openForInspection(cmd)
		if err != nil {
			return err
		}
		defer closeAll()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		writeEventList(cmd.OutOrStdout(), filterByPurpose(events, purpose))
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the prompt and the generated problem for one call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, closeAll, err := openForInspection(cmd)
		if err != nil {
			return err
		}
		defer closeAll()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}
		writeEventDetail(cmd.OutOrStdout(), *e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show call counts, failure rate and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeAll, err := openForInspection(cmd)
		if err != nil {
			return err
		}
		defer closeAll()

		ctx := cmd.Context()
		usage, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		models, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(usage) == 0 {
			fmt.Fprintln(out, "No problems generated yet.")
			return nil
		}
		writeUsage(out, usage)
		writeCost(out, models)
		return nil
	},
}

func writeEventList(w io.Writer, events []store.LLMRequestEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No LLM calls recorded.")
		return
	}

	fmt.Fprintf(w, "%-5s  %-19s  %-24s  %11s  %6s  %s\n",
		"ID", "Time", "Model", "Tokens", "Ms", "Status")
	fmt.Fprintln(w, strings.Repeat("─", 88))
	for _, e := range events {
		fmt.Fprintf(w, "%-5d  %-19s  %-24s  %5d/%-5d  %6d  %s\n",
			e.ID,
			e.Timestamp.Local().Format(timeLayout),
			truncate(e.Model, 24),
			e.InputTokens, e.OutputTokens,
			e.LatencyMs,
			eventStatus(e))
	}
}

func eventStatus(e store.LLMRequestEvent) string {
	if e.Success {
		return "ok"
	}
	if e.ErrorMessage == "" {
		return "failed"
	}
	return "failed: " + truncate(e.ErrorMessage, 40)
}

func writeEventDetail(w io.Writer, e store.LLMRequestEvent) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(w, "ID:        %d\n", e.ID)
	fmt.Fprintf(w, "Time:      %s\n", e.Timestamp.Local().Format(timeLayout))
	fmt.Fprintf(w, "Model:     %s (%s)\n", e.Model, e.Provider)
	fmt.Fprintf(w, "Purpose:   %s\n", e.Purpose)
	fmt.Fprintf(w, "Tokens:    %d in / %d out, %dms\n", e.InputTokens, e.OutputTokens, e.LatencyMs)
	fmt.Fprintf(w, "Status:    %s\n", eventStatus(e))

	fmt.Fprintf(w, "\n%s\nPROMPT\n%s\n", sep, sep)
	fmt.Fprintln(w, orNotCaptured(e.RequestBody))

	fmt.Fprintf(w, "%s\nRESPONSE\n%s\n", sep, sep)
	if p, ok := decodeProblem(e); ok {
		writeProblem(w, p)
		return
	}
	fmt.Fprintln(w, orNotCaptured(e.ResponseBody))
}

// decodeProblem parses the response of a successful problem-gen call.
func decodeProblem(e store.LLMRequestEvent) (*problem.MathProblem, bool) {
	if e.Purpose != problem.Purpose || !e.Success || e.ResponseBody == "" {
		return nil, false
	}
	var p problem.MathProblem
	if err := json.Unmarshal([]byte(e.ResponseBody), &p); err != nil || p.Question == "" {
		return nil, false
	}
	return &p, true
}

func writeProblem(w io.Writer, p *problem.MathProblem) {
	fmt.Fprintln(w, p.Question)
	for i, o := range p.Options {
		mark := " "
		if o == p.Answer {
			mark = "*"
		}
		fmt.Fprintf(w, " %s %s) %s\n", mark, components.Label(i), o)
	}
	if !p.HasAnswerOption() {
		fmt.Fprintf(w, "   answer %q is not among the options\n", p.Answer)
	}
	if p.Explanation != "" {
		fmt.Fprintf(w, "💡 %s\n", p.Explanation)
	}
}

func orNotCaptured(body string) string {
	if body == "" {
		return "(not captured)"
	}
	return body
}

func writeUsage(w io.Writer, usage []store.PurposeUsage) {
	fmt.Fprintln(w, "Calls by Purpose")
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-16s  %6s  %8s  %10s  %10s  %8s\n",
		"Purpose", "Calls", "Failed", "Input", "Output", "Avg Ms")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	var calls, failed int
	for _, u := range usage {
		fmt.Fprintf(w, "%-16s  %6d  %8s  %10d  %10d  %8d\n",
			u.Purpose, u.Calls, failureRate(u.Failures, u.Calls), u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		calls += u.Calls
		failed += u.Failures
	}
	fmt.Fprintln(w, strings.Repeat("─", 72))
	fmt.Fprintf(w, "%-16s  %6d  %8s\n", "TOTAL", calls, failureRate(failed, calls))
}

func failureRate(failed, calls int) string {
	if calls == 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", failed*100/calls)
}

func writeCost(w io.Writer, models []store.ModelUsage) {
	if len(models) == 0 {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Estimated Cost (USD)")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	var total float64
	var unknown []string
	for _, mu := range models {
		cost := llm.LookupCost(mu.Model)
		if cost == nil {
			unknown = append(unknown, mu.Model)
			fmt.Fprintf(w, "%-32s  %6d calls  %10s\n", truncate(mu.Model, 32), mu.Calls, "?")
			continue
		}
		c := cost.Cost(mu.InputTokens, mu.OutputTokens)
		total += c
		fmt.Fprintf(w, "%-32s  %6d calls  %10s\n", truncate(mu.Model, 32), mu.Calls, formatCost(c))
	}
	fmt.Fprintln(w, strings.Repeat("─", 72))
	if len(unknown) > 0 {
		fmt.Fprintf(w, "%-32s  %17s\n", "TOTAL (partial)", formatCost(total))
		fmt.Fprintf(w, "Pricing unavailable for: %s\n", strings.Join(unknown, ", "))
		return
	}
	fmt.Fprintf(w, "%-32s  %17s\n", "TOTAL", formatCost(total))
}

// openForInspection loads config and opens the store for read-only
// commands. The returned func closes both.
func openForInspection(cmd *cobra.Command) (*store.Store, func(), error) {
	e, err := setup(cmd, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	s, err := e.openStore()
	if err != nil {
		e.Close()
		return nil, nil, err
	}
	return s, func() {
		_ = s.Close()
		e.Close()
	}, nil
}

func filterByPurpose(events []store.LLMRequestEvent, purpose string) []store.LLMRequestEvent {
	if purpose == "" {
		return events
	}
	var out []store.LLMRequestEvent
	for _, e := range events {
		if e.Purpose == purpose {
			out = append(out, e)
		}
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", problem.Purpose, "Only show calls with this purpose")
	llmListCmd.Flags().Bool("all", false, "Show calls of every purpose")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
