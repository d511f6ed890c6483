package cmd

import (
	"fmt"

	"github.com/eyeris-app/eyeris/internal/history"
	"github.com/eyeris-app/eyeris/internal/vision"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show test statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.Entries()
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		points, err := store.TotalPoints()
		if err != nil {
			return fmt.Errorf("read points: %w", err)
		}

		fmt.Printf("Tests taken:  %d\n", len(entries))
		fmt.Printf("Total points: %d\n\n", points)

		if len(entries) == 0 {
			fmt.Println("No tests recorded yet. Run `eyeris` to take one.")
			return nil
		}

		counts := history.TestsTaken(entries)
		for _, kind := range vision.AllKinds() {
			n := counts[kind]
			if n == 0 {
				continue
			}
			best, _ := history.BestScore(entries, kind)
			fmt.Printf("  %-22s %3d taken   best %d\n", kind.Label(), n, best)
		}
		return nil
	},
}
