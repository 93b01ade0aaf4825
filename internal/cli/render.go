package cli

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"hospitalrank/outcomes"
)

// naCell marks an absent result in rendered output.
const naCell = "NA"

func renderRankings(w io.Writer, rankings []outcomes.StateRanking, format string) error {
	switch format {
	case "csv":
		return renderRankingsCSV(w, rankings)
	default:
		return renderRankingsTable(w, rankings)
	}
}

func renderRankingsTable(w io.Writer, rankings []outcomes.StateRanking) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"state", "hospital"})
	for _, r := range rankings {
		hospital := r.Hospital
		if !r.Found {
			hospital = naCell
		}
		t.AppendRow(table.Row{r.State, hospital})
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rankings))
	return nil
}

func renderRankingsCSV(w io.Writer, rankings []outcomes.StateRanking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"state", "hospital"}); err != nil {
		return err
	}
	for _, r := range rankings {
		hospital := r.Hospital
		if !r.Found {
			hospital = naCell
		}
		if err := cw.Write([]string{r.State, hospital}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
