package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hospitalrank/outcomes"
)

// newBestCommand creates the best command.
func newBestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "best <state> <outcome>",
		Short: "Print the hospital with the lowest mortality rate in a state",
		Example: `  hospitalrank best TX "heart attack"
  hospitalrank best MD pneumonia`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable()
			if err != nil {
				return err
			}

			hospital, ok, err := outcomes.Best(table, args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				// No data for this state/outcome: not a failure.
				fmt.Fprintln(cmd.OutOrStdout(), "NA")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), hospital)
			return nil
		},
	}
}
