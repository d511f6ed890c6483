package cmd

import (
	"fmt"

	"github.com/eyeris-app/eyeris/internal/app"
	"github.com/eyeris-app/eyeris/internal/history"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "eyeris",
	Short: "Vision self-check toolkit for your terminal",
	Long:  "Eyeris runs quick perceptual self-checks (color, acuity, reaction, blink rate and more) and tracks your results over time.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
			return app.Run(history.NewMemoryStore())
		}

		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		return app.Run(store)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides EYERIS_DB env var)")
	rootCmd.Flags().Bool("ephemeral", false, "Run without saving anything to disk")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then EYERIS_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, history.EnsureDir(p)
	}
	return history.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*history.SQLiteStore, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	store, err := history.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}
