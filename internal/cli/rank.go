package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"hospitalrank/outcomes"
)

// newRankCommand creates the rank command.
func newRankCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rank <state> <outcome> <num|best|worst>",
		Short: "Print the hospital at a given rank within a state",
		Long: `Print the hospital at the given rank within a state for an outcome.

"best" and "worst" select the hospitals with the lowest and highest mortality
rate. An integer N selects the Nth best. When N exceeds the number of
hospitals ranked for that state, the result is "NA".`,
		Example: `  hospitalrank rank TX "heart failure" 4
  hospitalrank rank MD "heart attack" worst
  hospitalrank rank MN "heart attack" 5000`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rank, err := outcomes.ParseRank(args[2])
			if err != nil {
				return err
			}

			table, err := loadTable()
			if err != nil {
				return err
			}

			hospital, ok, err := outcomes.RankHospital(table, args[0], args[1], rank)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "NA")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), hospital)
			return nil
		},
	}
}
