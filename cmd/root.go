package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kellen/chronos/internal/config"
	"github.com/kellen/chronos/internal/store"
)

// cfg is loaded once before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "chronos",
	Short: "Chat with an AI historian and take the Kellen history quiz",
	Long:  "Chronos is a terminal history companion: pick an era, talk to the historian, then earn a certificate by passing the quiz.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CHRONOS_DB env var)")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "Keep all state in memory; nothing is written to disk")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(erasCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then CHRONOS_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
