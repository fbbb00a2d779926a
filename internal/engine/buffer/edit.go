package buffer

import (
	"fmt"

	"github.com/dshills/wikistorm/internal/engine/textrange"
)

// Edit represents a text edit operation.
// It specifies a range to replace and the new text.
type Edit struct {
	Range   textrange.ItemRange // The range to replace
	NewText string              // The replacement text
}

// NewEdit creates a new Edit.
func NewEdit(r textrange.ItemRange, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit that inserts text at a location.
func NewInsert(loc textrange.ItemLocation, text string) Edit {
	return Edit{
		Range:   textrange.NewItemRange(loc, loc),
		NewText: text,
	}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(r textrange.ItemRange) Edit {
	return Edit{Range: r}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsZeroLength() {
		return fmt.Sprintf("Insert(%s, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range)
	}
	return fmt.Sprintf("Replace%s with %q", e.Range, e.NewText)
}

// IsInsert returns true if this is a pure insertion (empty range).
func (e Edit) IsInsert() bool {
	return e.Range.IsZeroLength() && e.NewText != ""
}

// IsDelete returns true if this is a pure deletion (empty replacement).
func (e Edit) IsDelete() bool {
	return !e.Range.IsZeroLength() && e.NewText == ""
}

// IsNoOp returns true if this edit does nothing.
func (e Edit) IsNoOp() bool {
	return e.Range.IsZeroLength() && e.NewText == ""
}

// EditResult contains information about an applied edit.
type EditResult struct {
	OldRange textrange.ItemRange // The original range that was modified
	NewRange textrange.ItemRange // The range of the new text
	OldText  string              // The text that was replaced
	NewText  string              // The normalized text that was inserted
}

// Change returns the applied edit as a Change.
func (r EditResult) Change() Change {
	typ := ChangeReplace
	switch {
	case r.OldText == "":
		typ = ChangeInsert
	case r.NewText == "":
		typ = ChangeDelete
	}
	return Change{
		Type:     typ,
		Range:    r.OldRange,
		NewRange: r.NewRange,
		OldText:  r.OldText,
		NewText:  r.NewText,
	}
}

// ChangeType categorizes the type of change made to the buffer.
type ChangeType uint8

const (
	ChangeInsert  ChangeType = iota // Text was inserted
	ChangeDelete                    // Text was deleted
	ChangeReplace                   // Text was replaced
)

// String returns a string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Change represents a single change to the buffer.
// This is used for change tracking and undo/redo.
type Change struct {
	Type     ChangeType          // Type of change
	Range    textrange.ItemRange // Original range that was affected
	NewRange textrange.ItemRange // Resulting range after the change
	OldText  string              // Text that was removed
	NewText  string              // Text that was added
}

// Invert returns the inverse change that would undo this change.
func (c Change) Invert() Change {
	inv := Change{
		Range:    c.NewRange,
		NewRange: c.Range,
		OldText:  c.NewText,
		NewText:  c.OldText,
	}
	switch c.Type {
	case ChangeInsert:
		inv.Type = ChangeDelete
	case ChangeDelete:
		inv.Type = ChangeInsert
	default:
		inv.Type = ChangeReplace
	}
	return inv
}

// ToEdit converts a Change to an Edit for reapplication.
func (c Change) ToEdit() Edit {
	return Edit{
		Range:   c.Range,
		NewText: c.NewText,
	}
}
