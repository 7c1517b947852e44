package table

import (
	"io"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"

	"github.com/nvcollection/nvcx/nvcx/check"
)

// Presenter is a generic struct for holding fields needed for reporting
type Presenter struct {
	report check.Report
}

// NewPresenter is a *Presenter constructor
func NewPresenter(report check.Report) *Presenter {
	return &Presenter{
		report: report,
	}
}

// Present creates a tabular reporting
func (pres *Presenter) Present(output io.Writer) error {
	if len(pres.report.Findings) == 0 {
		_, err := io.WriteString(output, "No books in collection\n")
		return err
	}

	// the status column only appears when at least one finding carries a state, so that plain
	// inventory listings stay uncluttered
	withStatus := false
	for _, f := range pres.report.Findings {
		if f.State != "" {
			withStatus = true
			break
		}
	}

	columns := []string{"ID", "Title", "Series", "Path"}
	if withStatus {
		columns = append(columns, "Status")
	}

	rows := make([][]string, 0)
	for _, f := range pres.report.Findings {
		row := []string{f.BookID, f.Title, f.Series, f.Path}
		if withStatus {
			row = append(row, statusCell(f.State))
		}
		rows = append(rows, row)
	}

	table := tablewriter.NewWriter(output)

	table.SetHeader(columns)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(true)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(rows)
	table.Render()

	return nil
}

func statusCell(state check.State) string {
	switch state {
	case check.StateOK:
		return color.Green.Sprint(state)
	case check.StateMissing:
		return color.Red.Sprint(state)
	case check.StateUnlinked:
		return color.Yellow.Sprint(state)
	default:
		return string(state)
	}
}
