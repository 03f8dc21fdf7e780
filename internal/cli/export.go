package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/internal/export"
	"github.com/mesh-intelligence/journal/pkg/types"
)

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.db>",
		Short: "Write the merged view to a SQLite database",
		Long: `Export writes every entry, newest first, to a new SQLite database with
an "entries" table (position, id, category, time, fields as JSON). An
existing file at the destination is replaced once the new export is
complete.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := a.merged(types.StandardCategories)
			if err != nil {
				return err
			}
			if err := export.WriteSQLite(cmd.Context(), args[0], records); err != nil {
				return sysError(fmt.Errorf("export: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(records), args[0])
			return nil
		},
	}
}
