package textrange

import "strings"

// Transform returns where loc ends up after the text in edited is replaced
// by text.
//
// Locations before the edit are unchanged and locations after it shift by
// the edit's size. A location inside the replaced range moves to the end
// of the new text. For an insertion exactly at loc, sticky keeps loc before
// the inserted text; otherwise loc moves to its end.
func Transform(loc ItemLocation, edited ItemRange, text string, sticky bool) ItemLocation {
	insertEnd := InsertEnd(edited.Start, text)

	// Edit is entirely before loc.
	if edited.End.LessThanOrEquals(loc) {
		if edited.IsZeroLength() && edited.Start.Equals(loc) && sticky {
			return loc
		}
		if loc.Line == edited.End.Line {
			return ItemLocation{Line: insertEnd.Line, Ch: insertEnd.Ch + loc.Ch - edited.End.Ch}
		}
		return ItemLocation{Line: loc.Line + insertEnd.Line - edited.End.Line, Ch: loc.Ch}
	}

	// Edit starts at or after loc.
	if edited.Start.GreaterThanOrEquals(loc) {
		return loc
	}

	// Edit spans loc.
	return insertEnd
}

// TransformRange applies Transform to both ends of r. The start sticks to
// insertions at its position when startSticky is set, the end when
// endSticky is set.
func TransformRange(r ItemRange, edited ItemRange, text string, startSticky, endSticky bool) ItemRange {
	start := Transform(r.Start, edited, text, startSticky)
	end := Transform(r.End, edited, text, endSticky)
	if end.LessThan(start) {
		end = start
	}
	return ItemRange{Start: start, End: end}
}

// InsertEnd returns the location just past text inserted at start.
func InsertEnd(start ItemLocation, text string) ItemLocation {
	n := strings.Count(text, "\n")
	if n == 0 {
		return ItemLocation{Line: start.Line, Ch: start.Ch + len(text)}
	}
	return ItemLocation{Line: start.Line + n, Ch: len(text) - strings.LastIndex(text, "\n") - 1}
}
