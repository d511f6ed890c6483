package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/eyeris-app/eyeris/internal/history"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump saved history as JSON",
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

		if entries == nil {
			entries = []history.Entry{}
		}
		payload := struct {
			Points  int             `json:"points"`
			History []history.Entry `json:"history"`
		}{Points: points, History: entries}

		out := cmd.OutOrStdout()
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
}
