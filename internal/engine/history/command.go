package history

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/wikistorm/internal/engine/buffer"
	"github.com/dshills/wikistorm/internal/engine/textrange"
)

// Command represents a composable edit action that can be executed and undone.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(buf *buffer.Buffer, sel *Selection) error

	// Undo reverses the command and returns an error if it fails.
	Undo(buf *buffer.Buffer, sel *Selection) error

	// Description returns a human-readable description of the command.
	Description() string
}

// ReplaceCommand replaces the text in a range. The selection follows the
// edit the way a marker in the document would.
type ReplaceCommand struct {
	Range textrange.ItemRange
	Text  string
	op    *Operation
}

// NewReplaceCommand creates a new replace command.
func NewReplaceCommand(r textrange.ItemRange, text string) *ReplaceCommand {
	return &ReplaceCommand{Range: r, Text: text}
}

// Execute replaces the range.
func (c *ReplaceCommand) Execute(buf *buffer.Buffer, sel *Selection) error {
	oldText, err := buf.TextRange(c.Range)
	if err != nil {
		return fmt.Errorf("replace %s: %w", c.Range, err)
	}
	op := NewOperation(c.Range, oldText, c.Text)
	op.SelectionBefore = *sel
	if err := op.Apply(buf); err != nil {
		return fmt.Errorf("replace %s: %w", c.Range, err)
	}
	*sel = textrange.TransformRange(*sel, c.Range, c.Text, false, false)
	op.SelectionAfter = *sel
	c.op = op
	return nil
}

// Undo restores the replaced text and the previous selection.
func (c *ReplaceCommand) Undo(buf *buffer.Buffer, sel *Selection) error {
	if c.op == nil {
		return nil
	}
	if err := c.op.Revert(buf); err != nil {
		return fmt.Errorf("undo replace %s: %w", c.Range, err)
	}
	*sel = c.op.SelectionBefore
	return nil
}

// Description returns a human-readable description.
func (c *ReplaceCommand) Description() string {
	switch {
	case c.Text == "":
		return fmt.Sprintf("Delete %s", c.Range)
	case c.Range.IsZeroLength():
		return fmt.Sprintf("Insert %q", truncate(c.Text, 20))
	default:
		return fmt.Sprintf("Replace %s with %q", c.Range, truncate(c.Text, 20))
	}
}

// Operation returns the recorded edit, or nil before Execute.
func (c *ReplaceCommand) Operation() *Operation {
	return c.op
}

// InsertCommand types text over the selection, leaving a caret after it.
type InsertCommand struct {
	Text string
	op   *Operation
}

// NewInsertCommand creates a new insert command.
func NewInsertCommand(text string) *InsertCommand {
	return &InsertCommand{Text: text}
}

// Execute replaces the selection with the text.
func (c *InsertCommand) Execute(buf *buffer.Buffer, sel *Selection) error {
	c.op = nil
	r := *sel
	if c.Text == "" && r.IsZeroLength() {
		return nil
	}
	oldText, err := buf.TextRange(r)
	if err != nil {
		return fmt.Errorf("insert at %s: %w", r.Start, err)
	}
	op := NewOperation(r, oldText, c.Text)
	op.SelectionBefore = r
	if err := op.Apply(buf); err != nil {
		return fmt.Errorf("insert at %s: %w", r.Start, err)
	}
	end := op.NewRange().End
	*sel = textrange.NewItemRange(end, end)
	op.SelectionAfter = *sel
	c.op = op
	return nil
}

// Undo removes the inserted text and restores the selection.
func (c *InsertCommand) Undo(buf *buffer.Buffer, sel *Selection) error {
	if c.op == nil {
		return nil
	}
	if err := c.op.Revert(buf); err != nil {
		return fmt.Errorf("undo insert: %w", err)
	}
	*sel = c.op.SelectionBefore
	return nil
}

// Description returns a human-readable description.
func (c *InsertCommand) Description() string {
	return fmt.Sprintf("Insert %q", truncate(c.Text, 20))
}

// DeleteDirection specifies which way a caret delete removes text.
type DeleteDirection int

const (
	DeleteBackward DeleteDirection = iota // Backspace
	DeleteForward                         // Delete key
)

// DeleteCommand deletes the selection, or Count runes next to a caret.
// A line break counts as one rune.
type DeleteCommand struct {
	Direction DeleteDirection
	Count     int
	op        *Operation
}

// NewDeleteCommand creates a new delete command.
func NewDeleteCommand(direction DeleteDirection, count int) *DeleteCommand {
	if count <= 0 {
		count = 1
	}
	return &DeleteCommand{Direction: direction, Count: count}
}

// Execute performs the deletion.
func (c *DeleteCommand) Execute(buf *buffer.Buffer, sel *Selection) error {
	c.op = nil
	r := *sel
	if r.IsZeroLength() {
		if c.Direction == DeleteBackward {
			r.Start = stepBack(buf, r.Start, c.Count)
		} else {
			r.End = stepForward(buf, r.End, c.Count)
		}
	}
	if r.IsZeroLength() {
		return nil
	}
	oldText, err := buf.TextRange(r)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r, err)
	}
	op := NewDeleteOperation(r, oldText)
	op.SelectionBefore = *sel
	if err := op.Apply(buf); err != nil {
		return fmt.Errorf("delete %s: %w", r, err)
	}
	*sel = textrange.NewItemRange(r.Start, r.Start)
	op.SelectionAfter = *sel
	c.op = op
	return nil
}

// Undo restores the deleted text.
func (c *DeleteCommand) Undo(buf *buffer.Buffer, sel *Selection) error {
	if c.op == nil {
		return nil
	}
	if err := c.op.Revert(buf); err != nil {
		return fmt.Errorf("undo delete: %w", err)
	}
	*sel = c.op.SelectionBefore
	return nil
}

// Description returns a human-readable description.
func (c *DeleteCommand) Description() string {
	if c.Direction == DeleteBackward {
		return "Delete backward"
	}
	return "Delete forward"
}

func stepBack(buf *buffer.Buffer, loc textrange.ItemLocation, n int) textrange.ItemLocation {
	for ; n > 0; n-- {
		if loc.Ch == 0 {
			if loc.Line == 0 {
				break
			}
			loc.Line--
			loc.Ch = buf.LineLen(loc.Line)
			continue
		}
		_, size := utf8.DecodeLastRuneInString(buf.LineText(loc.Line)[:loc.Ch])
		loc.Ch -= size
	}
	return loc
}

func stepForward(buf *buffer.Buffer, loc textrange.ItemLocation, n int) textrange.ItemLocation {
	for ; n > 0; n-- {
		line := buf.LineText(loc.Line)
		if loc.Ch >= len(line) {
			if loc.Line >= buf.LineCount()-1 {
				break
			}
			loc.Line++
			loc.Ch = 0
			continue
		}
		_, size := utf8.DecodeRuneInString(line[loc.Ch:])
		loc.Ch += size
	}
	return loc
}

// SelectCommand moves the selection without editing the document.
type SelectCommand struct {
	Range  Selection
	before Selection
}

// NewSelectCommand creates a command that selects r.
func NewSelectCommand(r Selection) *SelectCommand {
	return &SelectCommand{Range: r}
}

// Execute sets the selection.
func (c *SelectCommand) Execute(buf *buffer.Buffer, sel *Selection) error {
	r := c.Range.Normalized()
	if !buf.Valid(r) {
		return fmt.Errorf("select %s: %w", r, buffer.ErrOutOfRange)
	}
	c.before = *sel
	*sel = r
	return nil
}

// Undo restores the previous selection.
func (c *SelectCommand) Undo(buf *buffer.Buffer, sel *Selection) error {
	*sel = c.before
	return nil
}

// Description returns a human-readable description.
func (c *SelectCommand) Description() string {
	return fmt.Sprintf("Select %s", c.Range)
}

// CompoundCommand groups multiple commands as a single undo unit.
type CompoundCommand struct {
	ID       uuid.UUID
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command with a fresh ID.
func NewCompoundCommand(name string, cmds ...Command) *CompoundCommand {
	return &CompoundCommand{
		ID:       uuid.New(),
		Name:     name,
		Commands: cmds,
	}
}

// Execute executes all commands in order. If one fails, the commands that
// already ran are undone.
func (c *CompoundCommand) Execute(buf *buffer.Buffer, sel *Selection) error {
	for i, cmd := range c.Commands {
		if err := cmd.Execute(buf, sel); err != nil {
			return errors.Join(err, undoAll(c.Commands[:i], buf, sel))
		}
	}
	return nil
}

// Undo undoes all commands in reverse order.
func (c *CompoundCommand) Undo(buf *buffer.Buffer, sel *Selection) error {
	return undoAll(c.Commands, buf, sel)
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%d commands", len(c.Commands))
}

// IsEmpty returns true if there are no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}

func undoAll(cmds []Command, buf *buffer.Buffer, sel *Selection) error {
	for i := len(cmds) - 1; i >= 0; i-- {
		if err := cmds[i].Undo(buf, sel); err != nil {
			return fmt.Errorf("undo %s: %w", cmds[i].Description(), err)
		}
	}
	return nil
}

// truncate shortens a string for display.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
