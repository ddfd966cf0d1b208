package widgets

import (
	"strings"
)

// VStack stacks widgets top to bottom. Sizes gives each widget a fixed
// height; zero or a missing entry shares the remaining rows evenly.
type VStack struct {
	Widgets []Widget
	Sizes   []int
	Spacing int
}

func (v VStack) Render(width, height int) string {
	n := len(v.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	gap := max(0, v.Spacing)
	heights := allocate(max(1, height-gap*(n-1)), n, v.Sizes)
	var rows []string
	for i, w := range v.Widgets {
		if i > 0 {
			rows = append(rows, make([]string, gap)...)
		}
		if heights[i] == 0 {
			continue
		}
		block := strings.Split(w.Render(width, heights[i]), "\n")
		block = append(block, make([]string, max(0, heights[i]-len(block)))...)
		rows = append(rows, block[:heights[i]]...)
	}
	return strings.Join(rows, "\n")
}

// HStack places widgets side by side; Sizes works as in VStack but on columns.
type HStack struct {
	Widgets []Widget
	Sizes   []int
	Gap     int
}

func (h HStack) Render(width, height int) string {
	n := len(h.Widgets)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}
	widths := allocate(max(1, width-max(0, h.Gap)*(n-1)), n, h.Sizes)
	columns := make([][]string, n)
	rowCount := 0
	for i, w := range h.Widgets {
		columns[i] = strings.Split(w.Render(max(1, widths[i]), height), "\n")
		rowCount = max(rowCount, len(columns[i]))
	}
	sep := strings.Repeat(" ", max(0, h.Gap))
	rows := make([]string, rowCount)
	for r := range rows {
		cells := make([]string, n)
		for i, col := range columns {
			cell := ""
			if r < len(col) {
				cell = col[r]
			}
			cells[i] = padRightANSI(cell, widths[i])
		}
		rows[r] = strings.Join(cells, sep)
	}
	return strings.Join(rows, "\n")
}

// allocate hands fixed sizes out first (clamped to what is left) and splits
// the remainder across flexible slots, earlier slots taking any odd rows.
func allocate(total, n int, sizes []int) []int {
	out := make([]int, n)
	left := total
	flex := 0
	for i := range out {
		if i < len(sizes) && sizes[i] > 0 {
			out[i] = min(sizes[i], left)
			left -= out[i]
			continue
		}
		flex++
	}
	if flex == 0 {
		return out
	}
	share, extra := left/flex, left%flex
	for i := range out {
		if i < len(sizes) && sizes[i] > 0 {
			continue
		}
		out[i] = share
		if extra > 0 {
			out[i]++
			extra--
		}
	}
	return out
}
