package ui

import (
	"fmt"
	"io"
	"strings"
)

// CompactTable writes a borderless table
func CompactTable(w io.Writer, headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
		for _, row := range rows {
			if i < len(row) && len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
		widths[i] += 2
	}

	writeRow(w, widths, headers)

	for i, width := range widths {
		fmt.Fprint(w, strings.Repeat("─", width))
		if i < len(widths)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		writeRow(w, widths, row)
	}
}

func writeRow(w io.Writer, widths []int, row []string) {
	var sb strings.Builder
	for i := range widths {
		val := ""
		if i < len(row) {
			val = row[i]
		}
		fmt.Fprintf(&sb, "%-*s", widths[i], val)
		if i < len(widths)-1 {
			sb.WriteString("  ")
		}
	}
	fmt.Fprintln(w, strings.TrimRight(sb.String(), " "))
}
