// Package history provides undo/redo for a document buffer and its
// selection.
//
// The history system uses the Command pattern to encapsulate edit operations,
// enabling them to be executed, undone, and redone.
//
// # Operations
//
// An Operation represents a single atomic edit with before/after state:
//   - The range that was modified
//   - The old and new text
//   - The selection before and after
//
// # Commands
//
// Built-in commands:
//   - ReplaceCommand: Replace text in a range; the selection follows the edit
//   - InsertCommand: Type text over the selection
//   - DeleteCommand: Delete the selection or runes next to a caret
//   - SelectCommand: Move the selection
//   - CompoundCommand: Group multiple commands as one undo unit
//
// # History Stack
//
//	history := NewHistory(1000) // Max 1000 undo entries
//
//	history.Execute(cmd, buf, &sel)
//	history.Undo(buf, &sel)
//	history.Redo(buf, &sel)
//
// # Transactions
//
// Transaction groups the commands executed by a function into one
// CompoundCommand. When the function fails, the commands are undone in
// reverse order and the history is left as it was:
//
//	err := history.Transaction("clear formatting", buf, &sel, func() error {
//	    // ... multiple edits ...
//	})
package history
