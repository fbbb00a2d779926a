package gutter

import "strconv"

// LineNumberMode defines how line numbers are displayed.
type LineNumberMode uint8

const (
	// LineNumberAbsolute shows absolute line numbers (1, 2, 3, ...).
	LineNumberAbsolute LineNumberMode = iota

	// LineNumberRelative shows relative line numbers from the caret.
	LineNumberRelative

	// LineNumberHybrid shows absolute for the caret line, relative for others.
	LineNumberHybrid
)

// ParseLineNumberMode parses "absolute", "relative" or "hybrid".
func ParseLineNumberMode(s string) (LineNumberMode, bool) {
	switch s {
	case "", "absolute":
		return LineNumberAbsolute, true
	case "relative":
		return LineNumberRelative, true
	case "hybrid":
		return LineNumberHybrid, true
	}
	return LineNumberAbsolute, false
}

// number returns the number to display for line.
func number(mode LineNumberMode, line, current int) int {
	switch mode {
	case LineNumberRelative:
		return absDiff(line, current)
	case LineNumberHybrid:
		if line == current {
			return line + 1
		}
		return absDiff(line, current)
	default:
		return line + 1
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// PadLeft pads s with spaces on the left to width.
func PadLeft(s string, width int) string {
	for len(s) < width {
		s = " " + s
	}
	return s
}

// CalculateWidth returns the digits needed for lineCount, at least minWidth.
func CalculateWidth(lineCount, minWidth int) int {
	return max(len(strconv.Itoa(max(lineCount, 1))), minWidth)
}

// FormatPosition formats a zero-based position as 1-based "line:col".
func FormatPosition(line, col int) string {
	return strconv.Itoa(line+1) + ":" + strconv.Itoa(col+1)
}
