package tracking

import (
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOptions configures diff computation.
type DiffOptions struct {
	// ContextLines is the number of unchanged lines kept around each
	// change. Default is 3.
	ContextLines int

	// IgnoreTrailingSpace compares lines without trailing whitespace.
	IgnoreTrailingSpace bool
}

// DefaultDiffOptions returns default diff options.
func DefaultDiffOptions() DiffOptions {
	return DiffOptions{ContextLines: 3}
}

// DiffType indicates the type of a diff line.
type DiffType uint8

const (
	DiffEqual DiffType = iota
	DiffInsert
	DiffDelete
)

// String returns a human-readable representation of the diff type.
func (dt DiffType) String() string {
	switch dt {
	case DiffEqual:
		return "equal"
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// DiffLine is one line of a hunk.
type DiffLine struct {
	Type DiffType
	Text string
}

// String renders the line with its unified diff prefix.
func (l DiffLine) String() string {
	switch l.Type {
	case DiffInsert:
		return "+" + l.Text
	case DiffDelete:
		return "-" + l.Text
	default:
		return " " + l.Text
	}
}

// Hunk is a run of changes with surrounding context.
type Hunk struct {
	// OldStart and NewStart are zero-based line numbers.
	OldStart int
	OldCount int
	NewStart int
	NewCount int

	Lines []DiffLine
}

// DiffResult contains the complete result of a diff operation.
type DiffResult struct {
	Hunks []Hunk

	OldLineCount int
	NewLineCount int
}

// HasChanges returns true if there are any differences.
func (dr DiffResult) HasChanges() bool {
	return len(dr.Hunks) > 0
}

// InsertedLines returns the total number of inserted lines.
func (dr DiffResult) InsertedLines() int {
	return dr.count(DiffInsert)
}

// DeletedLines returns the total number of deleted lines.
func (dr DiffResult) DeletedLines() int {
	return dr.count(DiffDelete)
}

func (dr DiffResult) count(typ DiffType) int {
	n := 0
	for _, h := range dr.Hunks {
		for _, l := range h.Lines {
			if l.Type == typ {
				n++
			}
		}
	}
	return n
}

// lineOp is one line of the full edit script, with the old and new line
// numbers it sits at.
type lineOp struct {
	DiffLine
	old, new int
}

// ComputeLineDiff computes a line diff between two texts.
func ComputeLineDiff(oldText, newText string, opts DiffOptions) DiffResult {
	if opts.ContextLines < 0 {
		opts.ContextLines = 0
	}
	oldCmp, newCmp := oldText, newText
	if opts.IgnoreTrailingSpace {
		oldCmp, newCmp = trimTrailing(oldText), trimTrailing(newText)
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldCmp, newCmp)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	oldLines, newLines := splitLines(oldText), splitLines(newText)
	var ops []lineOp
	oi, ni := 0, 0
	for _, d := range diffs {
		for range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				ops = append(ops, lineOp{DiffLine{DiffEqual, newLines[ni]}, oi, ni})
				oi++
				ni++
			case diffmatchpatch.DiffDelete:
				ops = append(ops, lineOp{DiffLine{DiffDelete, oldLines[oi]}, oi, ni})
				oi++
			case diffmatchpatch.DiffInsert:
				ops = append(ops, lineOp{DiffLine{DiffInsert, newLines[ni]}, oi, ni})
				ni++
			}
		}
	}

	return DiffResult{
		Hunks:        buildHunks(ops, opts.ContextLines),
		OldLineCount: len(oldLines),
		NewLineCount: len(newLines),
	}
}

// buildHunks groups changed lines whose context would overlap.
func buildHunks(ops []lineOp, context int) []Hunk {
	var hunks []Hunk
	i := 0
	for i < len(ops) {
		if ops[i].Type == DiffEqual {
			i++
			continue
		}
		start := max(i-context, 0)
		end := i
		for j := i; j < len(ops); j++ {
			if ops[j].Type != DiffEqual {
				end = j
				continue
			}
			if j-end > 2*context {
				break
			}
		}
		stop := min(end+context+1, len(ops))

		h := Hunk{OldStart: ops[start].old, NewStart: ops[start].new}
		for _, op := range ops[start:stop] {
			h.Lines = append(h.Lines, op.DiffLine)
			if op.Type != DiffInsert {
				h.OldCount++
			}
			if op.Type != DiffDelete {
				h.NewCount++
			}
		}
		hunks = append(hunks, h)
		i = stop
	}
	return hunks
}

// splitLines splits text into lines without terminators. A trailing
// newline does not start another line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func trimTrailing(text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.Join(lines, "\n")
}

// UnifiedDiff renders the diff in unified format. It returns "" when
// there are no changes.
func UnifiedDiff(result DiffResult, oldName, newName string) string {
	if !result.HasChanges() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("--- " + oldName + "\n")
	sb.WriteString("+++ " + newName + "\n")

	for _, h := range result.Hunks {
		sb.WriteString("@@ -")
		sb.WriteString(hunkRange(h.OldStart, h.OldCount))
		sb.WriteString(" +")
		sb.WriteString(hunkRange(h.NewStart, h.NewCount))
		sb.WriteString(" @@\n")
		for _, l := range h.Lines {
			sb.WriteString(l.String())
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func hunkRange(start, count int) string {
	if count == 0 {
		return strconv.Itoa(start) + ",0"
	}
	return strconv.Itoa(start+1) + "," + strconv.Itoa(count)
}
