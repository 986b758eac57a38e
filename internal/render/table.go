package render

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxColumnWidth caps a column so one long title cannot push the rest of
// the table off screen.
const maxColumnWidth = 60

// Table writes rows as space-separated, left-aligned columns. The header row
// is rendered with the header style.
func Table(w io.Writer, styles *Styles, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = min(max(widths[i], runewidth.StringWidth(Sanitize(cell))), maxColumnWidth)
			}
		}
	}
	measure(header)
	for _, row := range rows {
		measure(row)
	}

	line := func(row []string) string {
		cells := make([]string, len(widths))
		for i := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if i == len(widths)-1 {
				cells[i] = Truncate(cell, widths[i])
			} else {
				cells[i] = Pad(Truncate(cell, widths[i]), widths[i])
			}
		}
		return strings.TrimRight(strings.Join(cells, "  "), " ")
	}

	if _, err := io.WriteString(w, styles.Header.Render(line(header))+"\n"); err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := io.WriteString(w, line(row)+"\n"); err != nil {
			return err
		}
	}
	return nil
}
