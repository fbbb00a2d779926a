// Package engine provides the document that wikitext formatting commands
// operate on.
//
// An Engine combines:
//
//   - a line buffer addressed by line and byte offset
//   - a selection that follows edits
//   - undo/redo history with transactions
//   - change tracking with named snapshots and line diffs
//   - a per-line highlighting cache fed by the wikitext tokenizer
//
// Every buffer edit invalidates the highlighting cache from the edited
// line on, so LineTokens always reflects the latest text. That is what
// lets a formatting command re-read tokens between the edits of a single
// transaction.
//
// # Basic Usage
//
//	e := engine.New(engine.WithContent("<b>abcdef</b>"))
//	e.SetSelection(textrange.LineRange(0, 3, 6))
//
//	changed, err := e.ClearFormatting()
//	// e.Content() == "abc<b>def</b>"
//
//	e.Undo() // restores "<b>abcdef</b>" and the selection
//
// # Transactions
//
// Transaction groups edits into one undo unit. If the function fails,
// everything it did is reverted:
//
//	err := e.Transaction("wrap", func() error {
//	    if err := e.Insert(end, "</b>"); err != nil {
//	        return err
//	    }
//	    return e.Insert(start, "<b>")
//	})
//
// Transactions nest: an inner Transaction joins the outer one.
//
// # Snapshots
//
//	id := e.CreateSnapshot("before")
//	// ... edits ...
//	diff, _ := e.DiffSinceSnapshot(id, tracking.DefaultDiffOptions())
//
// # Read-Only Mode
//
// An engine created WithReadOnly rejects every write with ErrReadOnly.
package engine
