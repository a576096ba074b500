package output

import (
	"bufio"
	"io"
	"strings"

	"rwc/internal/app"
	"rwc/internal/textutil"
)

const totalsLabel = "Totals"

type tableRow struct {
	cells []string
	// errText replaces the metric cells when set.
	errText string
}

// writeTable draws a rounded box table. A failed input shows its error
// centered across all metric columns.
func writeTable(w io.Writer, r app.Report) error {
	sel := r.Options.Selection
	header := append([]string{"path"}, sel.Names()...)

	rows := make([]tableRow, 0, len(r.Entries))
	for _, e := range r.Entries {
		path := textutil.SingleLine(e.Path)
		if !e.OK() {
			rows = append(rows, tableRow{cells: []string{path}, errText: textutil.SingleLine(e.Err.Error())})
			continue
		}
		rows = append(rows, tableRow{cells: metricCells(path, sel.Pick(e.Counts))})
	}
	var totals *tableRow
	if r.Options.ShowTotals {
		totals = &tableRow{cells: metricCells(totalsLabel, sel.Pick(r.Totals))}
	}

	widths := make([]int, len(header))
	fit := func(cells []string) {
		for i, c := range cells {
			if cw := textutil.DisplayWidth(c); cw > widths[i] {
				widths[i] = cw
			}
		}
	}
	fit(header)
	for _, row := range rows {
		fit(row.cells)
	}
	if totals != nil {
		fit(totals.cells)
	}
	for _, row := range rows {
		if row.errText == "" {
			continue
		}
		if over := textutil.DisplayWidth(row.errText) - spanWidth(widths); over > 0 {
			widths[len(widths)-1] += over
		}
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(rule("╭", "┬", "╮", widths))
	bw.WriteString(line(header, widths))
	bw.WriteString(rule("├", "┼", "┤", widths))
	for _, row := range rows {
		if row.errText != "" {
			bw.WriteString("│ " + textutil.PadRight(row.cells[0], widths[0]) + " │ " +
				textutil.Center(row.errText, spanWidth(widths)) + " │\n")
			continue
		}
		bw.WriteString(line(row.cells, widths))
	}
	if totals != nil {
		bw.WriteString(rule("├", "┼", "┤", widths))
		bw.WriteString(line(totals.cells, widths))
	}
	bw.WriteString(rule("╰", "┴", "╯", widths))
	return bw.Flush()
}

// spanWidth is the inner width of all metric columns merged into one cell.
func spanWidth(widths []int) int {
	if len(widths) < 2 {
		return 0
	}
	n := 0
	for _, w := range widths[1:] {
		n += w
	}
	return n + 3*(len(widths)-2)
}

func rule(left, mid, right string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w+2)
	}
	return left + strings.Join(parts, mid) + right + "\n"
}

func line(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = " " + textutil.PadRight(cells[i], w) + " "
	}
	return "│" + strings.Join(parts, "│") + "│\n"
}
