// Package layout maps a line's bytes to terminal cells.
package layout

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/wikistorm/internal/renderer/core"
	"github.com/dshills/wikistorm/internal/renderer/highlight"
)

// LineLayout represents the visual layout of a single document line.
type LineLayout struct {
	// Cells are the visual cells after tab expansion.
	Cells []core.Cell

	// ByteOffsets maps each cell to the byte offset of the grapheme that
	// produced it.
	ByteOffsets []int

	// Width is the total visual width in columns.
	Width int

	HasTabs bool
	HasWide bool
}

// Layout lays out text with base style. Tabs expand to the next multiple
// of tabWidth and zero-width control characters are dropped.
func Layout(text string, base core.Style, tabWidth int) *LineLayout {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	l := &LineLayout{
		Cells:       make([]core.Cell, 0, len(text)),
		ByteOffsets: make([]int, 0, len(text)),
	}

	offset := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		switch {
		case cluster == "\t":
			l.HasTabs = true
			for n := tabWidth - len(l.Cells)%tabWidth; n > 0; n-- {
				l.add(core.Cell{Text: " ", Width: 1, Style: base}, offset)
			}
		case width == 0:
		default:
			l.add(core.Cell{Text: cluster, Width: width, Style: base}, offset)
			if width > 1 {
				l.HasWide = true
			}
			for ; width > 1; width-- {
				l.add(core.Cell{Style: base}, offset)
			}
		}
		offset += len(cluster)
	}
	l.Width = len(l.Cells)
	return l
}

func (l *LineLayout) add(c core.Cell, offset int) {
	l.Cells = append(l.Cells, c)
	l.ByteOffsets = append(l.ByteOffsets, offset)
}

// VisualColumn converts a byte offset to a visual column. Offsets past
// the end of the line extrapolate one column per byte.
func (l *LineLayout) VisualColumn(offset int) int {
	for col, off := range l.ByteOffsets {
		if off >= offset {
			return col
		}
	}
	end := 0
	if n := len(l.ByteOffsets); n > 0 {
		end = l.ByteOffsets[n-1] + len(l.Cells[lastLead(l.Cells)].Text)
	}
	return l.Width + max(offset-end, 0)
}

// ByteOffset converts a visual column to the byte offset of the grapheme
// drawn there.
func (l *LineLayout) ByteOffset(col int) int {
	switch {
	case col <= 0 || len(l.ByteOffsets) == 0:
		return 0
	case col < len(l.ByteOffsets):
		return l.ByteOffsets[col]
	}
	last := len(l.ByteOffsets) - 1
	return l.ByteOffsets[last] + len(l.Cells[lastLead(l.Cells)].Text) + col - len(l.ByteOffsets)
}

func lastLead(cells []core.Cell) int {
	i := len(cells) - 1
	for i > 0 && cells[i].IsContinuation() {
		i--
	}
	return i
}

// ApplySpans merges span styles onto the cells they cover. Spans are
// byte ranges of the source line.
func (l *LineLayout) ApplySpans(spans []highlight.Span) {
	for i, off := range l.ByteOffsets {
		for _, sp := range spans {
			if off >= sp.Start && off < sp.End {
				l.Cells[i].Style = l.Cells[i].Style.Merge(sp.Style)
			}
		}
	}
}

// ApplyBackground sets the background of cells whose bytes fall within
// [start, end).
func (l *LineLayout) ApplyBackground(start, end int, bg core.Color) {
	for i, off := range l.ByteOffsets {
		if off >= start && off < end {
			l.Cells[i].Style = l.Cells[i].Style.WithBackground(bg)
		}
	}
}

// IsEmpty returns true if the layout has no cells.
func (l *LineLayout) IsEmpty() bool {
	return len(l.Cells) == 0
}
