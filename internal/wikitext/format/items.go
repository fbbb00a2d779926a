package format

import (
	"slices"

	"github.com/dshills/wikistorm/internal/engine/textrange"
	"github.com/dshills/wikistorm/internal/wikitext/markup"
)

// completeItems returns the complete items on the lines of r.
func completeItems(ed Editor, r textrange.ItemRange) []markup.Item {
	return markup.Complete(markup.ItemsForRange(ed.LineTokens, r))
}

// intersecting keeps the items whose outer range touches sel, except those
// that merely begin where sel ends or end where sel begins.
func intersecting(items []markup.Item, sel textrange.ItemRange) []markup.Item {
	var out []markup.Item
	for _, it := range items {
		if !it.OuterRange.IntersectsRange(sel, true) {
			continue
		}
		if it.OpeningMarkupRange().Start.Equals(sel.End) {
			continue
		}
		if it.ClosingMarkupRange().End.Equals(sel.Start) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// expandSelection widens sel so that neither end splits a delimiter. A
// start inside an opening delimiter moves to the delimiter's start and a
// start inside a closing delimiter moves to its end; the end is moved the
// opposite way.
func expandSelection(items []markup.Item, sel textrange.ItemRange) textrange.ItemRange {
	out := sel
	if it, ok := findItem(items, func(it markup.Item) bool {
		return sel.StartsInsideRange(it.OpeningMarkupRange(), true)
	}); ok {
		out.Start = it.OpeningMarkupRange().Start
	} else if it, ok := findItem(items, func(it markup.Item) bool {
		return sel.StartsInsideRange(it.ClosingMarkupRange(), true)
	}); ok {
		out.Start = it.ClosingMarkupRange().End
	}

	if it, ok := findItem(items, func(it markup.Item) bool {
		return sel.EndsInsideRange(it.ClosingMarkupRange(), true)
	}); ok {
		out.End = it.ClosingMarkupRange().End
	} else if it, ok := findItem(items, func(it markup.Item) bool {
		return sel.EndsInsideRange(it.OpeningMarkupRange(), true)
	}); ok {
		out.End = it.OpeningMarkupRange().Start
	}
	return out
}

func findItem(items []markup.Item, pred func(markup.Item) bool) (markup.Item, bool) {
	if i := slices.IndexFunc(items, pred); i >= 0 {
		return items[i], true
	}
	return markup.Item{}, false
}

// ButtonNamesInSelection returns the toolbar buttons of the markup items
// the selection touches, without duplicates, in document order.
func ButtonNamesInSelection(ed Editor) []string {
	sel := ed.Selection()
	var names []string
	for _, it := range intersecting(completeItems(ed, sel), sel) {
		name := it.ButtonName()
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}
