package buffer

import (
	"strings"

	"github.com/dshills/wikistorm/internal/engine/textrange"
)

// Snapshot provides a read-only view of a buffer at a specific point in time.
// It is safe for concurrent access and will not change even if the original
// buffer is modified.
type Snapshot struct {
	lines      []string
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// Text returns the full snapshot content with lines joined by "\n".
func (s *Snapshot) Text() string {
	return strings.Join(s.lines, "\n")
}

// TextRange returns the text in r.
func (s *Snapshot) TextRange(r textrange.ItemRange) (string, error) {
	if err := checkRange(s.lines, r); err != nil {
		return "", err
	}
	return textIn(s.lines, r), nil
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// LineText returns the text of a line, or "" when it does not exist.
func (s *Snapshot) LineText(line int) string {
	if line < 0 || line >= len(s.lines) {
		return ""
	}
	return s.lines[line]
}

// Lines returns an iterator over the snapshot's line numbers and texts.
func (s *Snapshot) Lines() func(yield func(int, string) bool) {
	return func(yield func(int, string) bool) {
		for i, line := range s.lines {
			if !yield(i, line) {
				return
			}
		}
	}
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool {
	return len(s.lines) == 1 && s.lines[0] == ""
}

// LineEnding returns the snapshot's line ending style.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// TabWidth returns the snapshot's tab width.
func (s *Snapshot) TabWidth() int {
	return s.tabWidth
}
