package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openlmtools/lmimport/internal/validation"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <conversations.json>",
		Short: "Validate an export file without converting it",
		Long: `Validate an export file against the conversations.json schema.

Reports every shape problem found. Nothing is written; exit status is
non-zero when the file does not conform.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheckExport,
	}
}

func runCheckExport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading export file: %w", err)
	}

	errs := validation.ValidateExportBytes(data)
	if len(errs) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", args[0])
		return nil
	}

	for _, e := range errs {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", e)
	}
	return fmt.Errorf("%s: %d schema problem(s)", args[0], len(errs))
}
