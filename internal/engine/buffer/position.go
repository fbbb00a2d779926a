package buffer

import (
	"sync/atomic"

	"github.com/dshills/wikistorm/internal/engine/textrange"
)

// RevisionID uniquely identifies a buffer revision.
// Each modification to the buffer creates a new revision.
type RevisionID uint64

// revisionCounter is used to generate unique revision IDs.
var revisionCounter uint64

// NewRevisionID generates a new unique revision ID.
// This is thread-safe using atomic operations.
func NewRevisionID() RevisionID {
	return RevisionID(atomic.AddUint64(&revisionCounter, 1))
}

// validLocation reports whether loc addresses a position in lines.
func validLocation(lines []string, loc textrange.ItemLocation) bool {
	return loc.Line >= 0 && loc.Line < len(lines) &&
		loc.Ch >= 0 && loc.Ch <= len(lines[loc.Line])
}

// checkRange validates r against lines.
func checkRange(lines []string, r textrange.ItemRange) error {
	if !validLocation(lines, r.Start) || !validLocation(lines, r.End) {
		return ErrOutOfRange
	}
	if r.End.LessThan(r.Start) {
		return ErrRangeInvalid
	}
	return nil
}

// clampLocation moves loc to the nearest position in lines.
func clampLocation(lines []string, loc textrange.ItemLocation) textrange.ItemLocation {
	if loc.Line < 0 {
		return textrange.ItemLocation{}
	}
	if loc.Line >= len(lines) {
		last := len(lines) - 1
		return textrange.ItemLocation{Line: last, Ch: len(lines[last])}
	}
	loc.Ch = max(0, min(loc.Ch, len(lines[loc.Line])))
	return loc
}

// textIn returns the text of a validated range, lines joined by "\n".
func textIn(lines []string, r textrange.ItemRange) string {
	if r.Start.Line == r.End.Line {
		return lines[r.Start.Line][r.Start.Ch:r.End.Ch]
	}
	n := len(lines[r.Start.Line]) - r.Start.Ch + r.End.Ch
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		n += len(lines[i]) + 1
	}
	buf := make([]byte, 0, n+1)
	buf = append(buf, lines[r.Start.Line][r.Start.Ch:]...)
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		buf = append(buf, '\n')
		buf = append(buf, lines[i]...)
	}
	buf = append(buf, '\n')
	buf = append(buf, lines[r.End.Line][:r.End.Ch]...)
	return string(buf)
}

// offsetOf returns the byte offset of loc in the "\n"-joined text.
func offsetOf(lines []string, loc textrange.ItemLocation) int {
	n := 0
	for i := 0; i < loc.Line; i++ {
		n += len(lines[i]) + 1
	}
	return n + loc.Ch
}
