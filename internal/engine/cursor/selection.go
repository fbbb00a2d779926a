package cursor

import (
	"fmt"

	"github.com/dshills/wikistorm/internal/engine/textrange"
)

// Location is an alias for textrange.ItemLocation for convenience.
type Location = textrange.ItemLocation

// Selection represents a range of selected text.
// Anchor is where the selection started; Head is the caret.
// When Anchor == Head, this represents a caret with no selection.
// Selection is an immutable value type.
type Selection struct {
	Anchor Location // Where selection started
	Head   Location // Caret position (where typing occurs)
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Location) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a caret.
func NewCursorSelection(loc Location) Selection {
	return Selection{Anchor: loc, Head: loc}
}

// FromRange creates a forward selection covering r.
func FromRange(r textrange.ItemRange) Selection {
	r = r.Normalized()
	return Selection{Anchor: r.Start, Head: r.End}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor.Equals(s.Head)
}

// Range returns the selection as a normalized range.
func (s Selection) Range() textrange.ItemRange {
	return textrange.NewItemRange(s.Anchor, s.Head).Normalized()
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Location {
	if s.Anchor.LessThanOrEquals(s.Head) {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound of the selection.
func (s Selection) End() Location {
	if s.Anchor.GreaterThanOrEquals(s.Head) {
		return s.Anchor
	}
	return s.Head
}

// IsForward returns true if head >= anchor.
func (s Selection) IsForward() bool {
	return s.Head.GreaterThanOrEquals(s.Anchor)
}

// Extend returns a new selection with the head moved to loc.
// The anchor remains fixed.
func (s Selection) Extend(loc Location) Selection {
	return Selection{Anchor: s.Anchor, Head: loc}
}

// MoveTo returns a collapsed selection at loc.
func (s Selection) MoveTo(loc Location) Selection {
	return Selection{Anchor: loc, Head: loc}
}

// Collapse collapses the selection to a caret at the head.
func (s Selection) Collapse() Selection {
	return Selection{Anchor: s.Head, Head: s.Head}
}

// CollapseToStart collapses the selection to its start position.
func (s Selection) CollapseToStart() Selection {
	start := s.Start()
	return Selection{Anchor: start, Head: start}
}

// CollapseToEnd collapses the selection to its end position.
func (s Selection) CollapseToEnd() Selection {
	end := s.End()
	return Selection{Anchor: end, Head: end}
}

// Flip returns a selection with anchor and head swapped.
func (s Selection) Flip() Selection {
	return Selection{Anchor: s.Head, Head: s.Anchor}
}

// Sync reconciles s with a normalized range reported by the document.
// The direction of s is kept when r covers the same locations; otherwise
// the result is a forward selection over r.
func (s Selection) Sync(r textrange.ItemRange) Selection {
	r = r.Normalized()
	if s.Range() == r {
		return s
	}
	return FromRange(r)
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%s)", s.Head)
	}
	return fmt.Sprintf("Selection(%s -> %s)", s.Anchor, s.Head)
}
