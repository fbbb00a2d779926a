package core

import "github.com/rivo/uniseg"

// Cell is one terminal cell. A wide grapheme occupies its cell and a
// continuation cell to the right.
type Cell struct {
	// Text is the grapheme cluster drawn in the cell.
	Text string

	// Width is the display width of the cluster, 0 for a continuation.
	Width int

	Style Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Text: " ", Width: 1, Style: DefaultStyle()}
}

// IsContinuation returns true if this cell is covered by a wide cell.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}

// CellsFromString splits s into grapheme cells. Control characters are
// dropped and tabs expand to spaces up to the next multiple of tabWidth.
func CellsFromString(s string, style Style, tabWidth int) []Cell {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	cells := make([]Cell, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		var width int
		cluster, s, width, state = uniseg.FirstGraphemeClusterInString(s, state)
		switch {
		case cluster == "\t":
			for n := tabWidth - len(cells)%tabWidth; n > 0; n-- {
				cells = append(cells, Cell{Text: " ", Width: 1, Style: style})
			}
			continue
		case width == 0:
			continue
		}
		cells = append(cells, Cell{Text: cluster, Width: width, Style: style})
		for ; width > 1; width-- {
			cells = append(cells, Cell{Style: style})
		}
	}
	return cells
}

// StringWidth returns the display width of s.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}
