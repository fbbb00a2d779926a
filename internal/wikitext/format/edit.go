package format

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dshills/wikistorm/internal/engine/textrange"
)

// tracker applies edits to an editor and keeps a selection in step with
// them.
type tracker struct {
	ed  Editor
	sel textrange.ItemRange
}

// replace replaces r with text. An insertion exactly at a selection end
// lands after that end unless its sticky flag is set.
func (t *tracker) replace(r textrange.ItemRange, text string, startSticky, endSticky bool) error {
	if r.IsZeroLength() && text == "" {
		return nil
	}
	if err := t.ed.Replace(r, text); err != nil {
		return fmt.Errorf("replace %s: %w", r, err)
	}
	t.sel = textrange.TransformRange(t.sel, r, text, startSticky, endSticky)
	return nil
}

// deleteAll deletes ranges from last to first so that earlier ranges stay
// valid. Duplicates and ranges overlapping a later one are skipped.
func (t *tracker) deleteAll(ranges []textrange.ItemRange) error {
	for _, r := range sortedForDelete(ranges) {
		if err := t.replace(r, "", false, false); err != nil {
			return err
		}
	}
	return nil
}

// sortedForDelete orders ranges by descending start and drops any range
// that overlaps one already kept.
func sortedForDelete(ranges []textrange.ItemRange) []textrange.ItemRange {
	sorted := slices.Clone(ranges)
	slices.SortFunc(sorted, func(a, b textrange.ItemRange) int {
		return b.Start.Compare(a.Start)
	})
	out := sorted[:0]
	for _, r := range sorted {
		if n := len(out); n > 0 && out[n-1].Start.LessThan(r.End) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// joinText concatenates the text of ranges in order.
func joinText(ed Editor, ranges []textrange.ItemRange) (string, error) {
	var b strings.Builder
	for _, r := range ranges {
		text, err := ed.Text(r)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", r, err)
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
