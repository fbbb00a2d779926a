package engine

import (
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/wikistorm/internal/engine/buffer"
	"github.com/dshills/wikistorm/internal/engine/history"
	"github.com/dshills/wikistorm/internal/engine/textrange"
	"github.com/dshills/wikistorm/internal/engine/tracking"
	"github.com/dshills/wikistorm/internal/logging"
	"github.com/dshills/wikistorm/internal/renderer/highlight"
	"github.com/dshills/wikistorm/internal/wikitext/format"
	"github.com/dshills/wikistorm/internal/wikitext/tokenizer"
)

// Re-export commonly used types for convenience.
type (
	// ItemLocation is a line and byte offset into the document.
	ItemLocation = textrange.ItemLocation

	// ItemRange is a range between two locations.
	ItemRange = textrange.ItemRange

	// Selection is the document selection.
	Selection = history.Selection

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID

	// Change is a recorded document change.
	Change = buffer.Change

	// SnapshotID identifies a named snapshot.
	SnapshotID = tracking.SnapshotID

	// DiffOptions configures diff computation.
	DiffOptions = tracking.DiffOptions

	// DiffResult is a line diff.
	DiffResult = tracking.DiffResult

	// Command is an undoable edit command.
	Command = history.Command
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// Engine is the document a formatting command edits. It combines the
// line buffer, the selection, undo history, change tracking and the
// highlighting cache behind one API.
//
// Single operations are safe to call from multiple goroutines. A
// Transaction runs its function without holding the engine lock, so the
// edits it makes must not race with edits from other goroutines.
type Engine struct {
	mu sync.RWMutex

	buf       *buffer.Buffer
	sel       Selection
	history   *history.History
	tracker   *tracking.Tracker
	highlight *highlight.Provider
	tok       *tokenizer.Tokenizer
	log       logrus.FieldLogger

	// Configuration
	tabWidth       int
	lineEnding     buffer.LineEnding
	detectEnding   bool
	maxUndoEntries int
	maxChanges     int
	readOnly       bool
	theme          *highlight.Theme

	initContent string
}

var _ format.Editor = (*Engine)(nil)

func newEngine(opts []Option) *Engine {
	e := &Engine{
		tabWidth:       DefaultTabWidth,
		lineEnding:     buffer.LineEndingLF,
		maxUndoEntries: DefaultMaxUndoEntries,
		maxChanges:     DefaultMaxChanges,
		log:            logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logging.WithComponent(e.log, "engine")
	if e.tok == nil {
		e.tok = tokenizer.MustNew(tokenizer.DefaultConfig(), tokenizer.WithLogger(e.log))
	}
	return e
}

func (e *Engine) bufferOptions(content string) []buffer.Option {
	ending := e.lineEnding
	if e.detectEnding {
		ending = buffer.DetectLineEnding(content)
	}
	return []buffer.Option{
		buffer.WithTabWidth(e.tabWidth),
		buffer.WithLineEnding(ending),
	}
}

// init wires the components around e.buf.
func (e *Engine) init() {
	e.history = history.NewHistory(e.maxUndoEntries)
	e.tracker = tracking.NewTracker(tracking.WithMaxChanges(e.maxChanges))

	var hlOpts []highlight.ProviderOption
	if e.theme != nil {
		hlOpts = append(hlOpts, highlight.WithTheme(e.theme))
	}
	e.highlight = highlight.NewProvider(e.tok, e.buf, hlOpts...)

	e.buf.OnEdit(func(res buffer.EditResult) {
		e.highlight.InvalidateLines(res.OldRange.Start.Line)
		e.tracker.RecordEdit(e.buf.RevisionID(), res)
	})
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := newEngine(opts)
	e.buf = buffer.NewBufferFromString(e.initContent, e.bufferOptions(e.initContent)...)
	e.init()
	return e
}

// NewFromReader creates an Engine from an io.Reader.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	e := newEngine(opts)
	e.buf = buffer.NewBufferFromString(string(data), e.bufferOptions(string(data))...)
	e.init()
	return e, nil
}

// Read operations

// Content returns the full document with lines joined by "\n".
func (e *Engine) Content() string {
	return e.buf.Text()
}

// Text returns the text in r.
func (e *Engine) Text(r ItemRange) (string, error) {
	return e.buf.TextRange(r)
}

// Len returns the document length in bytes.
func (e *Engine) Len() int {
	return e.buf.Len()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.buf.LineCount()
}

// LineText returns the text of a line without its terminator.
func (e *Engine) LineText(line int) string {
	return e.buf.LineText(line)
}

// LineLen returns the length of a line in bytes.
func (e *Engine) LineLen(line int) int {
	return e.buf.LineLen(line)
}

// End returns the location after the last character.
func (e *Engine) End() ItemLocation {
	return e.buf.End()
}

// IsEmpty returns true if the document is empty.
func (e *Engine) IsEmpty() bool {
	return e.buf.IsEmpty()
}

// Highlighting

// LineTokens returns the tokens of a line as of the latest edit.
func (e *Engine) LineTokens(line int) []tokenizer.Token {
	return e.highlight.LineTokens(line)
}

// Spans returns the themed spans of a line.
func (e *Engine) Spans(line int) []highlight.Span {
	return e.highlight.Spans(line)
}

// Highlighter returns the highlighting cache.
func (e *Engine) Highlighter() *highlight.Provider {
	return e.highlight
}

// Selection

// Selection returns the current selection, start before end.
func (e *Engine) Selection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sel
}

// SetSelection replaces the selection. Inside a transaction the change
// is recorded so that undo restores the previous selection.
func (e *Engine) SetSelection(r ItemRange) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd := history.NewSelectCommand(r)
	if e.history.IsGrouping() {
		return e.history.Execute(cmd, e.buf, &e.sel)
	}
	return cmd.Execute(e.buf, &e.sel)
}

// Write operations

// Replace replaces the text in r. The selection follows the edit.
func (e *Engine) Replace(r ItemRange, text string) error {
	return e.Execute(history.NewReplaceCommand(r, text))
}

// Insert inserts text at loc.
func (e *Engine) Insert(loc ItemLocation, text string) error {
	return e.Replace(textrange.NewItemRange(loc, loc), text)
}

// Delete removes the text in r.
func (e *Engine) Delete(r ItemRange) error {
	return e.Replace(r, "")
}

// Type replaces the selection with text and leaves a caret after it.
func (e *Engine) Type(text string) error {
	return e.Execute(history.NewInsertCommand(text))
}

// DeleteBackward deletes the selection, or n characters before the caret.
func (e *Engine) DeleteBackward(n int) error {
	return e.Execute(history.NewDeleteCommand(history.DeleteBackward, n))
}

// DeleteForward deletes the selection, or n characters after the caret.
func (e *Engine) DeleteForward(n int) error {
	return e.Execute(history.NewDeleteCommand(history.DeleteForward, n))
}

// Execute runs a command and adds it to undo history.
func (e *Engine) Execute(cmd Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Execute(cmd, e.buf, &e.sel)
}

// Transaction runs fn as one undo unit. If fn fails, every edit and
// selection change it made is reverted and the error is returned.
// Nested transactions join the outermost one.
func (e *Engine) Transaction(name string, fn func() error) error {
	if e.readOnly {
		return ErrReadOnly
	}
	if e.history.IsGrouping() {
		return fn()
	}

	e.history.BeginGroup(name)
	id, _ := e.history.GroupID()
	log := e.log.WithFields(logrus.Fields{"transaction": id.String(), "name": name})
	log.Debug("transaction started")

	if err := fn(); err != nil {
		e.mu.Lock()
		defer e.mu.Unlock()
		undone := history.NewCompoundCommand(name, e.history.CancelGroup()...)
		rbErr := undone.Undo(e.buf, &e.sel)
		log.WithError(err).WithField("edits", len(undone.Commands)).Debug("transaction rolled back")
		return errors.Join(err, rbErr)
	}

	e.history.EndGroup()
	log.Debug("transaction committed")
	return nil
}

// Undo and redo

// Undo undoes the last operation.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Undo(e.buf, &e.sel)
}

// Redo redoes the last undone operation.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	return e.history.Redo(e.buf, &e.sel)
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// UndoCount returns the number of available undo operations.
func (e *Engine) UndoCount() int {
	return e.history.UndoCount()
}

// RedoCount returns the number of available redo operations.
func (e *Engine) RedoCount() int {
	return e.history.RedoCount()
}

// UndoInfo describes the undo stack, oldest first.
func (e *Engine) UndoInfo() []history.OperationInfo {
	return e.history.UndoInfo()
}

// ClearHistory removes all undo/redo history.
func (e *Engine) ClearHistory() {
	e.history.Clear()
}

// Formatting commands

// ClearFormatting removes the formatting of the selection.
func (e *Engine) ClearFormatting() (bool, error) {
	if e.readOnly {
		return false, ErrReadOnly
	}
	return format.ClearFormatting(e, format.WithLogger(e.log))
}

// CanClearFormatting reports whether ClearFormatting would change anything.
func (e *Engine) CanClearFormatting() bool {
	return !e.readOnly && format.CanClearFormatting(e)
}

// SplitMarkup closes the markup enclosing the selection before it and
// reopens it after.
func (e *Engine) SplitMarkup() (bool, error) {
	if e.readOnly {
		return false, ErrReadOnly
	}
	return format.SplitMarkupAroundSelectionRange(e, format.WithLogger(e.log))
}

// CanSplitMarkup reports whether SplitMarkup would change anything.
func (e *Engine) CanSplitMarkup() bool {
	return !e.readOnly && format.CanSplitMarkupAroundSelection(e)
}

// ActiveFormats returns the toolbar names of the markup around the
// selection.
func (e *Engine) ActiveFormats() []string {
	return format.ButtonNamesInSelection(e)
}

// Change tracking

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() RevisionID {
	return e.buf.RevisionID()
}

// ChangesSince returns the changes made after rev, oldest first.
func (e *Engine) ChangesSince(rev RevisionID) []Change {
	return e.tracker.ChangesSince(rev)
}

// CreateSnapshot stores the current document under name.
func (e *Engine) CreateSnapshot(name string) SnapshotID {
	return e.tracker.CreateSnapshot(name, e.buf.Snapshot())
}

// SnapshotText returns the document text stored in a snapshot.
func (e *Engine) SnapshotText(id SnapshotID) (string, error) {
	snap, err := e.tracker.GetSnapshot(id)
	if err != nil {
		return "", err
	}
	return snap.Text(), nil
}

// DiffSinceSnapshot diffs a snapshot against the current document.
func (e *Engine) DiffSinceSnapshot(id SnapshotID, opts DiffOptions) (DiffResult, error) {
	return e.tracker.DiffSinceSnapshot(id, e.buf.Text(), opts)
}

// Configuration

// TabWidth returns the tab width.
func (e *Engine) TabWidth() int {
	return e.buf.TabWidth()
}

// LineEnding returns the line ending used when writing.
func (e *Engine) LineEnding() LineEnding {
	return e.buf.LineEnding()
}

// SetLineEnding sets the line ending used when writing.
func (e *Engine) SetLineEnding(ending LineEnding) {
	e.buf.SetLineEnding(ending)
}

// IsReadOnly returns true if the engine is read-only.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Snapshot returns a read-only snapshot of the document.
func (e *Engine) Snapshot() *buffer.Snapshot {
	return e.buf.Snapshot()
}

// WriteTo writes the document using the configured line ending.
func (e *Engine) WriteTo(w io.Writer) (int64, error) {
	return e.buf.WriteTo(w)
}

// SetContent replaces the document and resets the selection, history
// and change tracking.
func (e *Engine) SetContent(content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.readOnly {
		return ErrReadOnly
	}
	if e.history.IsGrouping() {
		return ErrInTransaction
	}

	all := textrange.NewItemRange(textrange.ItemLocation{}, e.buf.End())
	if _, err := e.buf.Replace(all, content); err != nil {
		return err
	}

	e.sel = Selection{}
	e.history.Clear()
	e.tracker.Clear()
	return nil
}
