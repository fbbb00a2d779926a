package history

import (
	"time"

	"github.com/dshills/wikistorm/internal/engine/buffer"
	"github.com/dshills/wikistorm/internal/engine/textrange"
)

// Selection is the document selection a command reads and updates.
type Selection = textrange.ItemRange

// Operation represents a single undoable edit.
// It captures all information needed to undo or redo the edit.
type Operation struct {
	// Edit data
	Range   textrange.ItemRange // Range that was modified (in the document before the edit)
	OldText string              // Text that was replaced (for undo)
	NewText string              // Text that was inserted (for redo)

	// Selection state for restore
	SelectionBefore Selection
	SelectionAfter  Selection

	// Metadata
	Timestamp time.Time
}

// NewOperation creates a new operation.
func NewOperation(r textrange.ItemRange, oldText, newText string) *Operation {
	return &Operation{
		Range:     r,
		OldText:   oldText,
		NewText:   newText,
		Timestamp: time.Now(),
	}
}

// NewInsertOperation creates an operation for an insertion.
func NewInsertOperation(loc textrange.ItemLocation, text string) *Operation {
	return NewOperation(textrange.NewItemRange(loc, loc), "", text)
}

// NewDeleteOperation creates an operation for a deletion.
func NewDeleteOperation(r textrange.ItemRange, deletedText string) *Operation {
	return NewOperation(r, deletedText, "")
}

// IsInsert returns true if this operation is a pure insertion.
func (op *Operation) IsInsert() bool {
	return op.Range.IsZeroLength() && op.NewText != ""
}

// IsDelete returns true if this operation is a pure deletion.
func (op *Operation) IsDelete() bool {
	return !op.Range.IsZeroLength() && op.NewText == ""
}

// IsReplace returns true if this operation replaces text with other text.
func (op *Operation) IsReplace() bool {
	return !op.Range.IsZeroLength() && op.NewText != ""
}

// NewRange returns the range the new text occupies after the edit.
func (op *Operation) NewRange() textrange.ItemRange {
	return textrange.NewItemRange(op.Range.Start, textrange.InsertEnd(op.Range.Start, op.NewText))
}

// Apply performs the edit on buf.
func (op *Operation) Apply(buf *buffer.Buffer) error {
	_, err := buf.Replace(op.Range, op.NewText)
	return err
}

// Revert reverses the edit on buf.
func (op *Operation) Revert(buf *buffer.Buffer) error {
	_, err := buf.Replace(op.NewRange(), op.OldText)
	return err
}

// Invert returns the operation that undoes this one.
func (op *Operation) Invert() *Operation {
	return &Operation{
		Range:           op.NewRange(),
		OldText:         op.NewText,
		NewText:         op.OldText,
		SelectionBefore: op.SelectionAfter,
		SelectionAfter:  op.SelectionBefore,
		Timestamp:       time.Now(),
	}
}

// Clone creates a copy of the operation.
func (op *Operation) Clone() *Operation {
	c := *op
	return &c
}

// OperationInfo describes an entry on the undo or redo stack.
type OperationInfo struct {
	ID          string
	Description string
	Timestamp   time.Time
}

// OperationList is a sequence of operations applied in order.
type OperationList []*Operation

// Invert returns the operations that undo the list, last edit first.
func (ol OperationList) Invert() OperationList {
	result := make(OperationList, len(ol))
	for i, op := range ol {
		result[len(ol)-1-i] = op.Invert()
	}
	return result
}

// IsEmpty returns true if the list has no operations.
func (ol OperationList) IsEmpty() bool {
	return len(ol) == 0
}
