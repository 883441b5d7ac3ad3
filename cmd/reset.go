package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kellen/chronos/internal/appstate"
	"github.com/kellen/chronos/internal/catalog"
	"github.com/kellen/chronos/internal/quiz"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Return to the cover screen and forget the saved era and certificate name",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p := s.Preferences()
		m := appstate.Load(ctx, p, catalog.Default())
		if err := m.GoHome(ctx); err != nil {
			return fmt.Errorf("reset app state: %w", err)
		}
		if err := quiz.LoadIdentity(ctx, p).Clear(ctx); err != nil {
			return fmt.Errorf("clear holder name: %w", err)
		}

		fmt.Println("State reset. The language preference and history were kept.")
		return nil
	},
}
