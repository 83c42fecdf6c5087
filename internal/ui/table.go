package ui

import (
	"strings"
	"unicode/utf8"
)

const (
	cellMaxWidth = 50
	cellEllipsis = "..."
	columnGap    = 2
)

// Table accumulates rows and renders them as aligned plain-text columns.
// Cells may contain ANSI color sequences; alignment is computed on the
// visible width.
type Table struct {
	headers []string
	rows    [][]string
}

// NewTable returns an empty table with the given header row.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers}
}

// Row appends a data row.
func (t *Table) Row(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render produces the formatted table including the header row.
func (t *Table) Render() string {
	headers := make([]string, len(t.headers))
	for i, h := range t.headers {
		headers[i] = flattenCell(h)
	}

	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = flattenCell(cell)
		}
		rows[i] = cells
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = visibleWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := visibleWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var out strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			out.WriteString(cell)
			if i == len(row)-1 {
				break
			}
			out.WriteString(strings.Repeat(" ", widths[i]-visibleWidth(cell)+columnGap))
		}
		out.WriteByte('\n')
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	return out.String()
}

// TruncateCell collapses line breaks and caps the visible width of a
// cell, appending an ellipsis when content is cut off.
func TruncateCell(value string) string {
	value = flattenCell(value)
	if visibleWidth(value) <= cellMaxWidth {
		return value
	}
	max := cellMaxWidth - len(cellEllipsis)
	return truncateVisible(value, max) + cellEllipsis
}

func flattenCell(value string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(value)
}

// visibleWidth counts runes that would appear on screen, skipping ANSI
// escape sequences.
func visibleWidth(value string) int {
	width := 0
	inEscape := false
	for _, r := range value {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			width++
		}
	}
	return width
}

// truncateVisible keeps at most max visible runes, passing ANSI escape
// sequences through so styling survives the cut.
func truncateVisible(value string, max int) string {
	var out strings.Builder
	visible := 0
	for i := 0; i < len(value); {
		if value[i] == '\x1b' && i+1 < len(value) && value[i+1] == '[' {
			end := i + 2
			for end < len(value) && value[end] != 'm' {
				end++
			}
			if end < len(value) {
				end++
			}
			out.WriteString(value[i:end])
			i = end
			continue
		}
		if visible >= max {
			break
		}
		r, size := utf8.DecodeRuneInString(value[i:])
		out.WriteRune(r)
		visible++
		i += size
	}
	return out.String()
}
