package cli

import (
	"github.com/spf13/cobra"

	"hospitalrank/outcomes"
)

// newRankAllCommand creates the rank-all command.
func newRankAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rank-all <outcome> <num|best|worst>",
		Short: "Print the hospital at a given rank for every state",
		Long: `Resolve the given rank independently within every recognized state and
territory (50 states plus DC, GU, PR, VI) and print one row per code in
canonical order. States with no hospital at the rank show "NA".`,
		Example: `  hospitalrank rank-all "heart attack" 20
  hospitalrank rank-all pneumonia worst
  hospitalrank rank-all "heart failure" best --output csv`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rank, err := outcomes.ParseRank(args[1])
			if err != nil {
				return err
			}

			table, err := loadTable()
			if err != nil {
				return err
			}

			rankings, err := outcomes.RankAll(table, args[0], rank)
			if err != nil {
				return err
			}
			return renderRankings(cmd.OutOrStdout(), rankings, cfg.Output)
		},
	}
}
