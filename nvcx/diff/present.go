package diff

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Present writes the given changes to output in the requested format ("table" or "json").
func Present(outputFormat string, changes []Change, output io.Writer) error {
	switch outputFormat {
	case "table":
		rows := [][]string{}
		for _, c := range changes {
			rows = append(rows, []string{c.ID, c.Kind, c.Reason, detail(c)})
		}

		table := tablewriter.NewWriter(output)
		columns := []string{"ID", "Kind", "Reason", "Detail"}

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
	case "json":
		enc := json.NewEncoder(output)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", " ")
		if err := enc.Encode(changes); err != nil {
			return fmt.Errorf("failed to encode diff information: %+v", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
	return nil
}

// detail renders the per-field text deltas of a change, one field per line, with the edits
// highlighted. Added and removed entries have no deltas so the title is shown instead.
func detail(c Change) string {
	if c.Reason != Changed {
		return c.Title
	}

	dmp := diffmatchpatch.New()
	parts := make([]string, len(c.Fields))
	for i, f := range c.Fields {
		diffs := dmp.DiffMain(f.From, f.To, false)
		parts[i] = fmt.Sprintf("%s: %s", f.Name, dmp.DiffPrettyText(diffs))
	}
	return strings.Join(parts, "\n")
}
