// Package cursor provides caret and selection handling on line/column
// locations.
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The caret, where typing would occur
//
// When Anchor == Head, the selection represents just a caret with no
// selected text. The selection can extend forward (head after anchor) or
// backward, preserving the user's selection direction. The engine only
// stores normalized ranges; [Selection.Sync] restores direction after an
// edit reports the new range.
//
// Motions step over grapheme clusters, so combining sequences and emoji
// are never split:
//
//	sel := cursor.NewCursorSelection(cursor.Location{Line: 0, Ch: 0})
//	sel = sel.Extend(cursor.Right(doc, sel.Head))
//
// Vertical motions take a goal column measured in display cells, with
// tabs expanded to the tab width.
//
// Selection is an immutable value type and safe for concurrent use.
package cursor
