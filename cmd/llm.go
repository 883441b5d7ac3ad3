package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/kellen/chronos/internal/chat"
	"github.com/kellen/chronos/internal/llm"
	"github.com/kellen/chronos/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the historian's model requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No model requests found.")
			return nil
		}

		// Header.
		fmt.Printf("%-5s  %-19s  %-10s  %-28s  %6s  %6s  %7s  %9s  %s\n",
			"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "Cost", "OK")
		fmt.Println(strings.Repeat("─", 108))

		for _, e := range events {
			fmt.Printf("%-5d  %-19s  %-10s  %-28s  %6d  %6d  %7d  %9s  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Purpose,
				truncate(e.Model, 28),
				e.InputTokens,
				e.OutputTokens,
				e.LatencyMs,
				eventCost(e.Model, e.InputTokens, e.OutputTokens),
				mark(e.Success),
			)
		}
		return nil
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full request and reply of one model call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("event %d not found", id)
		}

		fmt.Printf("ID:        %d\n", e.ID)
		fmt.Printf("Time:      %s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Provider:  %s\n", e.Provider)
		fmt.Printf("Model:     %s\n", e.Model)
		fmt.Printf("Purpose:   %s\n", e.Purpose)
		fmt.Printf("Tokens:    %d in / %d out (%s)\n", e.InputTokens, e.OutputTokens,
			eventCost(e.Model, e.InputTokens, e.OutputTokens))
		fmt.Printf("Latency:   %dms\n", e.LatencyMs)
		fmt.Printf("Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", e.ErrorMessage)
		}

		printSection("REQUEST", e.RequestBody)
		printSection("REPLY", e.ResponseBody)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		usage, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if len(usage) == 0 {
			fmt.Println("No model usage recorded yet.")
			return nil
		}

		sep := strings.Repeat("─", 72)
		fmt.Println("Usage by Purpose")
		fmt.Println(sep)
		fmt.Printf("%-16s  %6s  %10s  %10s  %10s  %8s\n",
			"Purpose", "Calls", "Input", "Output", "Total", "Avg Ms")
		fmt.Println(sep)
		for _, u := range usage {
			fmt.Printf("%-16s  %6d  %10d  %10d  %10d  %8d\n",
				u.Purpose, u.Calls, u.InputTokens, u.OutputTokens, u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
		}
		totalIn := lo.SumBy(usage, func(u store.PurposeUsage) int { return u.InputTokens })
		totalOut := lo.SumBy(usage, func(u store.PurposeUsage) int { return u.OutputTokens })
		fmt.Println(sep)
		fmt.Printf("%-16s  %6d  %10d  %10d  %10d\n", "TOTAL",
			lo.SumBy(usage, func(u store.PurposeUsage) int { return u.Calls }),
			totalIn, totalOut, totalIn+totalOut)

		models, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("query model usage: %w", err)
		}
		if len(models) == 0 {
			return nil
		}

		fmt.Println()
		fmt.Println("Estimated Cost (USD)")
		fmt.Println(sep)
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", "Model", "Calls", "Input", "Output", "Cost")
		fmt.Println(sep)

		var total float64
		var unpriced []string
		for _, m := range models {
			cost := llm.LookupCost(m.Model)
			if cost == nil {
				unpriced = append(unpriced, m.Model)
			} else {
				total += cost.Cost(m.InputTokens, m.OutputTokens)
			}
			fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
				truncate(m.Model, 32), m.Calls, m.InputTokens, m.OutputTokens,
				eventCost(m.Model, m.InputTokens, m.OutputTokens))
		}

		fmt.Println(sep)
		label := "TOTAL"
		if len(unpriced) > 0 {
			label = "TOTAL (partial)"
		}
		fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

func printSection(title, body string) {
	sep := strings.Repeat("─", 60)
	fmt.Println()
	fmt.Println(sep)
	fmt.Println(title)
	fmt.Println(sep)
	if body == "" {
		body = "(not captured)"
	}
	fmt.Println(body)
}

// eventCost formats the estimated cost of a call, or "?" for unpriced models.
func eventCost(model string, in, out int) string {
	cost := llm.LookupCost(model)
	if cost == nil {
		return "?"
	}
	return formatCost(cost.Cost(in, out))
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
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "",
		fmt.Sprintf("Filter by purpose (%s, %s)", chat.PurposeChat, chat.PurposeEraPrompt))

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
