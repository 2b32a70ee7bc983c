// Package render draws relations and table profiles as fixed-width text
// tables for terminal display.
package render

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	stringpool "github.com/ajitpratap0/tabular/pkg/strings"
	"github.com/ajitpratap0/tabular/pkg/table"
	"github.com/ajitpratap0/tabular/pkg/types"
)

const (
	// DefaultMaxColumnWidth clamps each rendered cell
	DefaultMaxColumnWidth = 32
	// DefaultMaxRows bounds how many rows a relation render shows
	DefaultMaxRows = 40

	nullPlaceholder = "NULL"
	ellipsis        = "..."
)

// Options controls table rendering.
type Options struct {
	MaxColumnWidth int
	MaxRows        int
}

// DefaultOptions returns the standard rendering bounds.
func DefaultOptions() Options {
	return Options{
		MaxColumnWidth: DefaultMaxColumnWidth,
		MaxRows:        DefaultMaxRows,
	}
}

// Relation renders a relation's rows as a bordered text table with a
// "rows x columns" footer. Numeric cells are right-aligned.
func Relation(rel *table.Relation, opts Options) string {
	opts = opts.normalized()

	headers := rel.Schema.ColumnNames()
	rightAlign := make([]bool, len(headers))
	for i, c := range rel.Schema.Columns {
		rightAlign[i] = c.Type.IsNumeric() || c.Type.IsTemporal()
	}

	shown := rel.Len()
	truncated := false
	if shown > opts.MaxRows {
		shown = opts.MaxRows
		truncated = true
	}

	cells := make([][]string, shown)
	for i := 0; i < shown; i++ {
		tuple, _ := rel.Row(i)
		line := make([]string, len(headers))
		for j, v := range tuple {
			line[j] = clamp(formatCell(v), opts.MaxColumnWidth)
		}
		cells[i] = line
	}

	footer := strconv.Itoa(rel.Len()) + " rows x " + strconv.Itoa(len(headers)) + " columns"
	if truncated {
		footer = "showing " + strconv.Itoa(shown) + " of " + footer
	}
	return drawGrid(headers, rightAlign, cells, footer, opts.MaxColumnWidth)
}

// profileFields is the column order of a profile render.
var profileFields = []struct {
	header string
	right  bool
	value  func(p map[string]any) string
}{
	{"column", false, func(m map[string]any) string { return formatCell(m["name"]) }},
	{"type", false, func(m map[string]any) string { return formatCell(m["type"]) }},
	{"count", true, func(m map[string]any) string { return formatCell(m["count"]) }},
	{"missing", true, func(m map[string]any) string { return formatCell(m["missing"]) }},
	{"minimum", true, func(m map[string]any) string { return formatCell(m["minimum"]) }},
	{"maximum", true, func(m map[string]any) string { return formatCell(m["maximum"]) }},
	{"ordering", false, func(m map[string]any) string { return formatCell(m["ordering"]) }},
	{"transitions", true, func(m map[string]any) string { return formatCell(m["transitions"]) }},
	{"distinct", true, func(m map[string]any) string { return formatCell(m["distinct_estimate"]) }},
}

// Profile renders a table profile, one line per column.
func Profile(tp *table.TableProfile, opts Options) string {
	opts = opts.normalized()

	headers := make([]string, len(profileFields))
	rightAlign := make([]bool, len(profileFields))
	for i, f := range profileFields {
		headers[i] = f.header
		rightAlign[i] = f.right
	}

	cells := make([][]string, len(tp.Profiles))
	for i, p := range tp.Profiles {
		m := p.Map()
		line := make([]string, len(profileFields))
		for j, f := range profileFields {
			line[j] = clamp(f.value(m), opts.MaxColumnWidth)
		}
		cells[i] = line
	}

	footer := strconv.FormatInt(tp.RowCount, 10) + " rows x " +
		strconv.Itoa(len(tp.Profiles)) + " columns"
	return drawGrid(headers, rightAlign, cells, footer, opts.MaxColumnWidth)
}

func (o Options) normalized() Options {
	if o.MaxColumnWidth <= len(ellipsis) {
		o.MaxColumnWidth = DefaultMaxColumnWidth
	}
	if o.MaxRows <= 0 {
		o.MaxRows = DefaultMaxRows
	}
	return o
}

// formatCell renders one native value for display.
func formatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return nullPlaceholder
	case string:
		return x
	case bool:
		if x {
			return "True"
		}
		return "False"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case time.Duration:
		return x.String()
	case decimal.Decimal:
		return x.String()
	case types.Scalar:
		return x.String()
	case []byte:
		return string(x)
	default:
		return stringpool.Sprintf("%v", v)
	}
}

// clamp truncates a cell to width, marking the cut with an ellipsis.
func clamp(s string, width int) string {
	if len(s) <= width {
		return s
	}
	return s[:width-len(ellipsis)] + ellipsis
}

// drawGrid draws a bordered table: header row, separator, data rows, and
// a footer line under the bottom border.
func drawGrid(headers []string, rightAlign []bool, rows [][]string, footer string, maxWidth int) string {
	clamped := make([]string, len(headers))
	widths := make([]int, len(headers))
	for i, h := range headers {
		clamped[i] = clamp(h, maxWidth)
		widths[i] = len(clamped[i])
	}
	for _, line := range rows {
		for i, cell := range line {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	b := stringpool.NewBuilder(1024)
	writeBorder(b, widths)
	writeLine(b, clamped, widths, make([]bool, len(headers)))
	writeBorder(b, widths)
	for _, line := range rows {
		writeLine(b, line, widths, rightAlign)
	}
	writeBorder(b, widths)
	b.WriteString(footer)
	b.WriteByte('\n')
	return b.String()
}

func writeBorder(b *stringpool.Builder, widths []int) {
	for _, w := range widths {
		b.WriteByte('+')
		for i := 0; i < w+2; i++ {
			b.WriteByte('-')
		}
	}
	b.WriteString("+\n")
}

func writeLine(b *stringpool.Builder, cells []string, widths []int, rightAlign []bool) {
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		b.WriteString("| ")
		pad := w - len(cell)
		if rightAlign[i] {
			writeSpaces(b, pad)
			b.WriteString(cell)
		} else {
			b.WriteString(cell)
			writeSpaces(b, pad)
		}
		b.WriteByte(' ')
	}
	b.WriteString("|\n")
}

func writeSpaces(b *stringpool.Builder, n int) {
	for i := 0; i < n; i++ {
		b.WriteByte(' ')
	}
}
