package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"hospitalrank/outcomes"
)

// newExportCommand creates the export command.
func newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <parquet-path>",
		Short: "Write the ranked outcome table to a Parquet file",
		Long: `Build the ranked outcome table from the source CSV and write it to a
Parquet file for downstream analytical tools.`,
		Example: `  hospitalrank export outcomes.parquet --file outcome-of-care-measures.csv`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			w, err := outcomes.NewTableWriter(args[0])
			if err != nil {
				return err
			}
			if _, err := w.Write(table.Records()); err != nil {
				w.Close()
				return err
			}
			if err := w.Close(); err != nil {
				return err
			}

			slog.Debug("export complete", "path", args[0], "records", w.Count())
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", w.Count(), args[0])
			return nil
		},
	}
}
