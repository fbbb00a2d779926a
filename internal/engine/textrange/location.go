// Package textrange provides the line/offset location and range algebra
// shared by the wikitext tokenizer, markup extraction and formatting
// commands.
//
// Ranges support edge-inclusive and edge-exclusive containment tests. The
// distinction matters to editing: a selection that touches a delimiter
// boundary and one that sits strictly inside content are different cases.
package textrange

import "fmt"

// Unresolved marks a location component that has not been seen yet, such as
// the end of a markup item whose closing delimiter was not found.
const Unresolved = -1

// ItemLocation is a position in a multi-line text buffer.
// Line and Ch are zero-based; Ch is a byte offset into the line.
type ItemLocation struct {
	Line int
	Ch   int
}

// NewItemLocation creates a location.
func NewItemLocation(line, ch int) ItemLocation {
	return ItemLocation{Line: line, Ch: ch}
}

// String returns a human-readable representation.
func (l ItemLocation) String() string {
	return fmt.Sprintf("(%d:%d)", l.Line, l.Ch)
}

// IsComplete returns true if neither component is the unresolved sentinel.
func (l ItemLocation) IsComplete() bool {
	return l.Line != Unresolved && l.Ch != Unresolved
}

// GreaterThan returns true if l is after other.
func (l ItemLocation) GreaterThan(other ItemLocation) bool {
	if l.Line < other.Line {
		return false
	}
	if l.Line == other.Line && l.Ch <= other.Ch {
		return false
	}
	return true
}

// LessThan returns true if l is before other.
func (l ItemLocation) LessThan(other ItemLocation) bool {
	if l.Line > other.Line {
		return false
	}
	if l.Line == other.Line && l.Ch >= other.Ch {
		return false
	}
	return true
}

// Equals returns true if both components match.
func (l ItemLocation) Equals(other ItemLocation) bool {
	return l.Line == other.Line && l.Ch == other.Ch
}

// GreaterThanOrEquals returns true if l is at or after other.
func (l ItemLocation) GreaterThanOrEquals(other ItemLocation) bool {
	return l.GreaterThan(other) || l.Equals(other)
}

// LessThanOrEquals returns true if l is at or before other.
func (l ItemLocation) LessThanOrEquals(other ItemLocation) bool {
	return l.LessThan(other) || l.Equals(other)
}

// Compare returns -1, 0 or 1.
func (l ItemLocation) Compare(other ItemLocation) int {
	switch {
	case l.LessThan(other):
		return -1
	case l.GreaterThan(other):
		return 1
	default:
		return 0
	}
}

// WithOffset returns the location shifted by the given line and ch deltas.
func (l ItemLocation) WithOffset(line, ch int) ItemLocation {
	return ItemLocation{Line: l.Line + line, Ch: l.Ch + ch}
}
