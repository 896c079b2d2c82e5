// File path: cmd/casemate/seed.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nicodishanthj/casemate/internal/seed"
	"github.com/nicodishanthj/casemate/internal/sqlite"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the Aunt Bethesda template case and its parties",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, _ []string) error {
	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	result, err := seed.Populate(cmd.Context(), store)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "case %s (%d parties)\n", result.CaseID, len(result.Parties))
	return nil
}
