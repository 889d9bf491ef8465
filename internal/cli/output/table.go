package output

import (
	"io"
	"text/tabwriter"

	"github.com/data-respons-solutions/nvram/internal/core/domain"
)

// TableFormatter writes entries as aligned columns.
type TableFormatter struct {
	NoHeaders bool
}

// Format formats entries as a KEY/VALUE table.
func (f *TableFormatter) Format(w io.Writer, entries []domain.Entry) error {
	t := Table{Headers: []string{"KEY", "VALUE"}}
	for _, e := range entries {
		t.AddRow(string(e.Key), string(e.Value))
	}
	return t.RenderWithOptions(w, f.NoHeaders)
}

// Table represents tabular data.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Render renders the table to the writer.
func (t *Table) Render(w io.Writer) error {
	return t.RenderWithOptions(w, false)
}

// RenderWithOptions renders the table with options.
func (t *Table) RenderWithOptions(w io.Writer, noHeaders bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if !noHeaders && len(t.Headers) > 0 {
		writeRow(tw, t.Headers)
	}
	for _, row := range t.Rows {
		writeRow(tw, row)
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			io.WriteString(w, "\t")
		}
		io.WriteString(w, cell)
	}
	io.WriteString(w, "\n")
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}
