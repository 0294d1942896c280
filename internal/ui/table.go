package ui

import (
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// ResultRow is one line of the migration results table
type ResultRow struct {
	File    string
	Model   string
	Kind    string
	Status  string
	Message string
}

// RenderResultsTable writes a per-file migration results table
func RenderResultsTable(w io.Writer, rows []ResultRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Model", "Materialization", "Status", "Message"})
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)

	for _, row := range rows {
		var status string
		switch row.Status {
		case "CONVERTED":
			status = color.GreenString(row.Status)
		case "FAILED":
			status = color.RedString(row.Status)
		default:
			status = color.YellowString(row.Status)
		}
		table.Append([]string{row.File, row.Model, row.Kind, status, row.Message})
	}

	table.Render()
}
