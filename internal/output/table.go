// =============================================================================
// internal/output/table.go - Table formatting utilities
// =============================================================================
package output

import (
	"fmt"
	"io"
	"strings"
)

// Table represents a formatted table
type Table struct {
	headers []string
	rows    [][]string
	widths  []int
}

// NewTable creates a new table with the given headers
func NewTable(headers []string) *Table {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}

	return &Table{
		headers: headers,
		widths:  widths,
	}
}

// AddRow adds a row to the table
func (t *Table) AddRow(row []string) {
	if len(row) < len(t.headers) {
		padded := make([]string, len(t.headers))
		copy(padded, row)
		row = padded
	} else if len(row) > len(t.headers) {
		row = row[:len(t.headers)]
	}

	for i, cell := range row {
		if len(cell) > t.widths[i] {
			t.widths[i] = len(cell)
		}
	}

	t.rows = append(t.rows, row)
}

// Render renders the table to the writer
func (t *Table) Render(writer io.Writer) error {
	if len(t.headers) == 0 {
		return nil
	}

	totalWidth := 0
	for _, width := range t.widths {
		totalWidth += width + 3
	}
	totalWidth -= 3

	border := strings.Repeat("─", totalWidth)

	fmt.Fprintf(writer, "┌%s┐\n", border)
	t.renderRow(writer, t.headers)
	fmt.Fprintf(writer, "├%s┤\n", border)
	for _, row := range t.rows {
		t.renderRow(writer, row)
	}
	fmt.Fprintf(writer, "└%s┘\n", border)

	return nil
}

func (t *Table) renderRow(writer io.Writer, cells []string) {
	fmt.Fprint(writer, "│")
	for i, cell := range cells {
		fmt.Fprintf(writer, " %-*s ", t.widths[i], cell)
		if i < len(cells)-1 {
			fmt.Fprint(writer, "│")
		}
	}
	fmt.Fprintf(writer, "│\n")
}
