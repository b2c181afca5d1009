package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCyan).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Table collects rows for a bordered terminal table. Cells of the status
// column, if one is set, are colored by StatusStyle.
type Table struct {
	headers   []string
	rows      [][]string
	statusCol int
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, statusCol: -1}
}

// StatusColumn marks column i as holding component statuses.
func (t *Table) StatusColumn(i int) *Table {
	t.statusCol = i
	return t
}

// Row appends a row. Missing cells render empty.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// String renders the table.
func (t *Table) String() string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorDimGray)).
		Headers(t.headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case col == t.statusCol && row >= 0 && row < len(t.rows) && col < len(t.rows[row]):
				return StatusStyle(t.rows[row][col]).Padding(0, 1)
			default:
				return tableCellStyle
			}
		})

	for _, row := range t.rows {
		tbl.Row(row...)
	}

	return tbl.String()
}

// Fprint writes the rendered table and a trailing newline to w.
func (t *Table) Fprint(w io.Writer) error {
	_, err := fmt.Fprintln(w, t.String())
	return err
}
