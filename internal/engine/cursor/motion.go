package cursor

import (
	"github.com/rivo/uniseg"
)

// Lines is the read-only line access motions need.
type Lines interface {
	LineCount() int
	LineText(line int) string
}

// Clamp returns loc moved into the document: the line is clamped to the
// existing lines and the column to the line length.
func Clamp(src Lines, loc Location) Location {
	n := src.LineCount()
	if n == 0 {
		return Location{}
	}
	if loc.Line < 0 {
		loc.Line = 0
	}
	if loc.Line >= n {
		loc.Line = n - 1
	}
	text := src.LineText(loc.Line)
	if loc.Ch < 0 {
		loc.Ch = 0
	}
	if loc.Ch > len(text) {
		loc.Ch = len(text)
	}
	return loc
}

// Left moves one grapheme cluster back, wrapping to the end of the
// previous line.
func Left(src Lines, loc Location) Location {
	loc = Clamp(src, loc)
	if loc.Ch == 0 {
		if loc.Line == 0 {
			return loc
		}
		loc.Line--
		loc.Ch = len(src.LineText(loc.Line))
		return loc
	}
	text := src.LineText(loc.Line)
	prev := 0
	state := -1
	rest := text
	pos := 0
	for len(rest) > 0 && pos < loc.Ch {
		var cluster string
		prev = pos
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
	}
	loc.Ch = prev
	return loc
}

// Right moves one grapheme cluster forward, wrapping to the start of the
// next line.
func Right(src Lines, loc Location) Location {
	loc = Clamp(src, loc)
	text := src.LineText(loc.Line)
	if loc.Ch >= len(text) {
		if loc.Line >= src.LineCount()-1 {
			return loc
		}
		loc.Line++
		loc.Ch = 0
		return loc
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text[loc.Ch:], -1)
	loc.Ch += len(cluster)
	return loc
}

// Up moves to the previous line, keeping the visual column goal where the
// line is long enough.
func Up(src Lines, loc Location, goal, tabWidth int) Location {
	loc = Clamp(src, loc)
	if loc.Line == 0 {
		loc.Ch = 0
		return loc
	}
	loc.Line--
	loc.Ch = ChAtColumn(src.LineText(loc.Line), goal, tabWidth)
	return loc
}

// Down moves to the next line, keeping the visual column goal where the
// line is long enough.
func Down(src Lines, loc Location, goal, tabWidth int) Location {
	loc = Clamp(src, loc)
	if loc.Line >= src.LineCount()-1 {
		loc.Ch = len(src.LineText(loc.Line))
		return loc
	}
	loc.Line++
	loc.Ch = ChAtColumn(src.LineText(loc.Line), goal, tabWidth)
	return loc
}

// LineStart moves to the first non-blank character of the line, or to
// column zero when already there.
func LineStart(src Lines, loc Location) Location {
	loc = Clamp(src, loc)
	text := src.LineText(loc.Line)
	indent := 0
	for indent < len(text) && (text[indent] == ' ' || text[indent] == '\t') {
		indent++
	}
	if loc.Ch == indent || indent == len(text) {
		loc.Ch = 0
	} else {
		loc.Ch = indent
	}
	return loc
}

// LineEnd moves to the end of the line.
func LineEnd(src Lines, loc Location) Location {
	loc = Clamp(src, loc)
	loc.Ch = len(src.LineText(loc.Line))
	return loc
}

// DocStart returns the first location of the document.
func DocStart() Location {
	return Location{}
}

// DocEnd returns the last location of the document.
func DocEnd(src Lines) Location {
	n := src.LineCount()
	if n == 0 {
		return Location{}
	}
	return Location{Line: n - 1, Ch: len(src.LineText(n - 1))}
}

// VisualColumn returns the display column of byte offset ch in text.
// Tabs advance to the next multiple of tabWidth.
func VisualColumn(text string, ch, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	col := 0
	pos := 0
	state := -1
	rest := text
	for len(rest) > 0 && pos < ch {
		var cluster string
		var boundaries int
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)
		if cluster == "\t" {
			col += tabWidth - col%tabWidth
		} else {
			col += boundaries >> uniseg.ShiftWidth
		}
		pos += len(cluster)
	}
	return col
}

// ChAtColumn returns the byte offset of the grapheme cluster covering the
// display column col, or the line length when the line is shorter.
func ChAtColumn(text string, col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	cur := 0
	pos := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var boundaries int
		cluster, rest, boundaries, state = uniseg.StepString(rest, state)
		w := boundaries >> uniseg.ShiftWidth
		if cluster == "\t" {
			w = tabWidth - cur%tabWidth
		}
		if cur+w > col {
			return pos
		}
		cur += w
		pos += len(cluster)
	}
	return pos
}
