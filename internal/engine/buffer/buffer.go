package buffer

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/dshills/wikistorm/internal/engine/textrange"
)

// Errors returned by buffer operations.
var (
	ErrOutOfRange   = errors.New("location out of range")
	ErrRangeInvalid = errors.New("invalid range")
	ErrEditsOverlap = errors.New("edits overlap or are not in reverse order")
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is a line-indexed text store.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	lines      []string
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int

	listenerMu sync.Mutex
	listeners  []func(EditResult)
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      []string{""},
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewBufferFromString creates a buffer with initial content. Any line
// ending style is accepted.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	b.lines = splitLines(s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	// Read everything first; a CRLF pair may straddle a read boundary.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func splitLines(s string) []string {
	return strings.Split(normalizeLineEndings(s), "\n")
}

// Read Operations

// Text returns the full buffer content with lines joined by "\n".
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Join(b.lines, "\n")
}

// TextRange returns the text in r with lines joined by "\n".
func (b *Buffer) TextRange(r textrange.ItemRange) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := checkRange(b.lines, r); err != nil {
		return "", fmt.Errorf("text %s: %w", r, err)
	}
	return textIn(b.lines, r), nil
}

// WriteTo writes the content using the buffer's line ending style.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	b.mu.RLock()
	text := strings.Join(b.lines, b.lineEnding.Sequence())
	b.mu.RUnlock()
	n, err := io.WriteString(w, text)
	return int64(n), err
}

// Len returns the byte length of the content with "\n" line endings.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	last := len(b.lines) - 1
	return offsetOf(b.lines, textrange.ItemLocation{Line: last, Ch: len(b.lines[last])})
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of a line without its terminator, or "" when
// line does not exist.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lines) {
		return ""
	}
	return b.lines[line]
}

// Lines returns a copy of lines from start up to but not including end.
func (b *Buffer) Lines(start, end int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start = max(start, 0)
	end = min(end, len(b.lines))
	if start >= end {
		return nil
	}
	return slices.Clone(b.lines[start:end])
}

// LineLen returns the length of a line in bytes.
func (b *Buffer) LineLen(line int) int {
	return len(b.LineText(line))
}

// End returns the location after the last character.
func (b *Buffer) End() textrange.ItemLocation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	last := len(b.lines) - 1
	return textrange.ItemLocation{Line: last, Ch: len(b.lines[last])}
}

// Clamp returns the location in the buffer nearest to loc.
func (b *Buffer) Clamp(loc textrange.ItemLocation) textrange.ItemLocation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return clampLocation(b.lines, loc)
}

// Valid reports whether r lies within the buffer with Start before End.
func (b *Buffer) Valid(r textrange.ItemRange) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return checkRange(b.lines, r) == nil
}

// Offset converts loc to a byte offset into Text().
func (b *Buffer) Offset(loc textrange.ItemLocation) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !validLocation(b.lines, loc) {
		return 0, fmt.Errorf("offset %s: %w", loc, ErrOutOfRange)
	}
	return offsetOf(b.lines, loc), nil
}

// Write Operations

// Insert inserts text at loc and returns the location after it.
func (b *Buffer) Insert(loc textrange.ItemLocation, text string) (textrange.ItemLocation, error) {
	res, err := b.ApplyEdit(NewInsert(loc, text))
	if err != nil {
		return loc, err
	}
	return res.NewRange.End, nil
}

// Delete removes the text in r.
func (b *Buffer) Delete(r textrange.ItemRange) error {
	_, err := b.ApplyEdit(NewDelete(r))
	return err
}

// Replace replaces the text in r and returns the location after the new
// text.
func (b *Buffer) Replace(r textrange.ItemRange, text string) (textrange.ItemLocation, error) {
	res, err := b.ApplyEdit(NewEdit(r, text))
	if err != nil {
		return r.Start, err
	}
	return res.NewRange.End, nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	b.mu.Lock()
	if err := checkRange(b.lines, edit.Range); err != nil {
		b.mu.Unlock()
		return EditResult{}, fmt.Errorf("edit %s: %w", edit.Range, err)
	}
	res := b.apply(edit)
	b.mu.Unlock()

	b.notify(res)
	return res, nil
}

// ApplyEdits applies multiple edits atomically.
// Edits must be in reverse order (last in the document first).
func (b *Buffer) ApplyEdits(edits []Edit) ([]EditResult, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	results, err := b.applyAll(edits)
	if err != nil {
		return nil, err
	}
	for _, res := range results {
		b.notify(res)
	}
	return results, nil
}

func (b *Buffer) applyAll(edits []Edit) ([]EditResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End.GreaterThan(edits[i-1].Range.Start) {
			return nil, ErrEditsOverlap
		}
	}
	for _, edit := range edits {
		if err := checkRange(b.lines, edit.Range); err != nil {
			return nil, fmt.Errorf("edit %s: %w", edit.Range, err)
		}
	}

	results := make([]EditResult, 0, len(edits))
	for _, edit := range edits {
		results = append(results, b.apply(edit))
	}
	return results, nil
}

// OnEdit registers fn to be called after every applied edit. Listeners run
// on the editing goroutine after the buffer lock is released, in
// registration order.
func (b *Buffer) OnEdit(fn func(EditResult)) {
	if fn == nil {
		return
	}
	b.listenerMu.Lock()
	defer b.listenerMu.Unlock()
	b.listeners = append(b.listeners, fn)
}

func (b *Buffer) notify(res EditResult) {
	b.listenerMu.Lock()
	listeners := b.listeners
	b.listenerMu.Unlock()
	for _, fn := range listeners {
		fn(res)
	}
}

// apply performs a validated edit. The caller holds the write lock.
func (b *Buffer) apply(edit Edit) EditResult {
	r := edit.Range
	oldText := textIn(b.lines, r)
	text := normalizeLineEndings(edit.NewText)

	head := b.lines[r.Start.Line][:r.Start.Ch]
	tail := b.lines[r.End.Line][r.End.Ch:]
	inserted := strings.Split(text, "\n")
	last := len(inserted) - 1
	end := textrange.ItemLocation{Line: r.Start.Line + last, Ch: len(inserted[last])}
	if last == 0 {
		end.Ch += len(head)
	}
	inserted[0] = head + inserted[0]
	inserted[last] += tail

	b.lines = slices.Replace(b.lines, r.Start.Line, r.End.Line+1, inserted...)
	b.revisionID = NewRevisionID()

	return EditResult{
		OldRange: r,
		NewRange: textrange.NewItemRange(r.Start, end),
		OldText:  oldText,
		NewText:  text,
	}
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines) == 1 && b.lines[0] == ""
}

// LineEnding returns the line ending used when writing.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tabWidth
}

// SetLineEnding sets the line ending used when writing.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if width > 0 {
		b.tabWidth = width
	}
}

// Snapshot returns a read-only snapshot of the current buffer state.
// Safe for concurrent access from other goroutines.
func (b *Buffer) Snapshot() *Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return &Snapshot{
		lines:      slices.Clone(b.lines),
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
		tabWidth:   b.tabWidth,
	}
}
