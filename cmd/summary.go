package cmd

import (
	"github.com/S2G-Investments/headshot-processor/internal/pipeline"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func renderSummary(s pipeline.Summary) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Summary", "Files"})
	tw.AppendRows([]table.Row{
		{"Input files", s.Total},
		{"Processed", s.Processed},
		{"Skipped", s.Skipped},
		{"Errors", s.Errors},
		{"Removed by cleanup", s.Removed},
	})
	if s.Unmatched > 0 {
		tw.AppendFooter(table.Row{"Kept original name", s.Unmatched})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return tw.Render()
}

// renderClassifications prints one row per file name for the classify command.
func renderClassifications(rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Target", "Pattern", "Image"})
	for _, r := range rows {
		row := make(table.Row, len(r))
		for i, v := range r {
			row[i] = v
		}
		tw.AppendRow(row)
	}
	return tw.Render()
}
