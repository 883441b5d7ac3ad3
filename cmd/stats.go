package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/kellen/chronos/internal/quiz"
	"github.com/kellen/chronos/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz attempt history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		attempts, err := s.EventRepo().QueryQuizAttempts(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No quiz attempts recorded yet.")
			return nil
		}

		// Header.
		fmt.Printf("%-19s  %-5s  %7s  %5s  %-6s  %-7s  %s\n",
			"Timestamp", "Lang", "Correct", "Score", "Passed", "Timeout", "Holder")
		fmt.Println(strings.Repeat("─", 80))

		for _, a := range attempts {
			fmt.Printf("%-19s  %-5s  %3d/%-3d  %5d  %-6s  %-7s  %s\n",
				a.Timestamp.Local().Format("2006-01-02 15:04:05"),
				a.Language,
				a.Correct, a.Questions,
				a.Score,
				mark(a.Passed),
				mark(a.TimedOut),
				a.HolderName,
			)
		}

		passed := lo.CountBy(attempts, func(a store.QuizAttemptEvent) bool { return a.Passed })
		best := lo.MaxBy(attempts, func(a, b store.QuizAttemptEvent) bool { return a.Score > b.Score })
		fmt.Println(strings.Repeat("─", 80))
		fmt.Printf("%d attempts, %d passed (pass mark %d%%), best score %d%%\n",
			len(attempts), passed, quiz.PassThreshold, best.Score)
		return nil
	},
}

func mark(b bool) string {
	if b {
		return "✓"
	}
	return "✗"
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of attempts to show")
}
