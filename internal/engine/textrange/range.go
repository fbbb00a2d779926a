package textrange

import "fmt"

// ItemRange is a span between two locations. Start is expected to be at or
// before End; predicates do not reorder.
type ItemRange struct {
	Start ItemLocation
	End   ItemLocation
}

// NewItemRange creates a range from two locations.
func NewItemRange(start, end ItemLocation) ItemRange {
	return ItemRange{Start: start, End: end}
}

// LineRange creates a range on a single line.
func LineRange(line, startCh, endCh int) ItemRange {
	return ItemRange{
		Start: ItemLocation{Line: line, Ch: startCh},
		End:   ItemLocation{Line: line, Ch: endCh},
	}
}

// String returns a human-readable representation.
func (r ItemRange) String() string {
	return fmt.Sprintf("[%s-%s]", r.Start, r.End)
}

// IsComplete returns true if both ends are resolved.
func (r ItemRange) IsComplete() bool {
	return r.Start.IsComplete() && r.End.IsComplete()
}

// IsZeroLength returns true if start and end coincide.
func (r ItemRange) IsZeroLength() bool {
	return r.Start.Equals(r.End)
}

// Normalized returns the range with Start before End.
func (r ItemRange) Normalized() ItemRange {
	if r.End.LessThan(r.Start) {
		return ItemRange{Start: r.End, End: r.Start}
	}
	return r
}

// StartsInsideRange reports whether r's start lies within other.
// With allowEdgeOverlap, touching either boundary counts as inside.
func (r ItemRange) StartsInsideRange(other ItemRange, allowEdgeOverlap bool) bool {
	if allowEdgeOverlap {
		return r.Start.GreaterThanOrEquals(other.Start) && r.Start.LessThanOrEquals(other.End)
	}
	return r.Start.GreaterThan(other.Start) && r.Start.LessThan(other.End)
}

// EndsInsideRange reports whether r's end lies within other.
func (r ItemRange) EndsInsideRange(other ItemRange, allowEdgeOverlap bool) bool {
	if allowEdgeOverlap {
		return r.End.GreaterThanOrEquals(other.Start) && r.End.LessThanOrEquals(other.End)
	}
	return r.End.GreaterThan(other.Start) && r.End.LessThan(other.End)
}

// IntersectsRange reports whether r and other overlap.
// Without allowEdgeOverlap, ranges that merely touch do not intersect.
func (r ItemRange) IntersectsRange(other ItemRange, allowEdgeOverlap bool) bool {
	if !allowEdgeOverlap {
		return r.Start.LessThan(other.End) && other.Start.LessThan(r.End)
	}
	return r.EndsInsideRange(other, allowEdgeOverlap) ||
		r.StartsInsideRange(other, allowEdgeOverlap) ||
		other.EndsInsideRange(r, allowEdgeOverlap) ||
		other.StartsInsideRange(r, allowEdgeOverlap)
}

// Contains reports whether loc lies within r, boundaries included.
func (r ItemRange) Contains(loc ItemLocation) bool {
	return loc.GreaterThanOrEquals(r.Start) && loc.LessThanOrEquals(r.End)
}

// LineNumbers returns every line spanned by r, inclusive.
func (r ItemRange) LineNumbers() []int {
	if r.End.Line < r.Start.Line {
		return nil
	}
	lines := make([]int, 0, r.End.Line-r.Start.Line+1)
	for line := r.Start.Line; line <= r.End.Line; line++ {
		lines = append(lines, line)
	}
	return lines
}
