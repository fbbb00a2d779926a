package format

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/dshills/wikistorm/internal/engine/textrange"
)

// clearPlan is the set of edits that clears the formatting of a selection.
type clearPlan struct {
	// selection is the selection widened to whole delimiters.
	selection textrange.ItemRange

	// moveAfter holds opening delimiters of items that start inside the
	// selection and end after it, in document order.
	moveAfter []textrange.ItemRange
	// moveBefore holds closing delimiters of items that start before the
	// selection and end inside it, innermost first.
	moveBefore []textrange.ItemRange
	// remove holds both delimiters of items entirely inside the selection
	// and of every section header touching it.
	remove []textrange.ItemRange

	items int
}

func (p *clearPlan) empty() bool {
	return len(p.moveAfter) == 0 && len(p.moveBefore) == 0 && len(p.remove) == 0
}

func (p *clearPlan) relocates() bool {
	return len(p.moveAfter) > 0 || len(p.moveBefore) > 0
}

func (p *clearPlan) fields() logrus.Fields {
	return logrus.Fields{
		"selection":   p.selection.String(),
		"move_after":  len(p.moveAfter),
		"move_before": len(p.moveBefore),
		"remove":      len(p.remove),
	}
}

func planClear(ed Editor) *clearPlan {
	sel := ed.Selection()
	all := completeItems(ed, sel)
	sel = expandSelection(all, sel)

	p := &clearPlan{selection: sel, items: len(all)}
	for _, it := range intersecting(all, sel) {
		opening, closing := it.OpeningMarkupRange(), it.ClosingMarkupRange()
		if it.IsUnsplittable() {
			p.remove = append(p.remove, opening, closing)
			continue
		}
		startsInside := it.OuterRange.StartsInsideRange(sel, true)
		endsInside := it.OuterRange.EndsInsideRange(sel, true)
		switch {
		case startsInside && endsInside:
			p.remove = append(p.remove, opening, closing)
		case startsInside:
			p.moveAfter = append(p.moveAfter, opening)
		case endsInside:
			p.moveBefore = slices.Insert(p.moveBefore, 0, closing)
		}
	}
	return p
}

// CanClearFormatting reports whether ClearFormatting would change the
// document. It is false for an empty selection and for selections touching
// references or templates.
func CanClearFormatting(ed Editor) bool {
	if ed.Selection().IsZeroLength() {
		return false
	}
	names := ButtonNamesInSelection(ed)
	if slices.Contains(names, "reference") || slices.Contains(names, "template") {
		return false
	}
	return !planClear(ed).empty() || CanSplitMarkupAroundSelection(ed)
}

// ClearFormatting removes the formatting of the selected text. Items lying
// inside the selection lose both delimiters. Items crossing a selection
// boundary keep their formatting outside the selection: the delimiter on
// the inside is moved across the boundary. Section headers touching the
// selection are removed. Items still containing the selection are then
// split around it as SplitMarkupAroundSelectionRange does. Afterwards the
// selection spans the cleared text.
//
// It reports whether anything changed.
func ClearFormatting(ed Editor, opts ...Option) (bool, error) {
	if !CanClearFormatting(ed) {
		return false, nil
	}
	o := buildOptions(opts)

	err := ed.Transaction("clear formatting", func() error {
		if p := planClear(ed); !p.empty() {
			o.log.WithFields(p.fields()).Debug("clear formatting")
			if err := applyClear(ed, p); err != nil {
				return err
			}
		}
		// The split runs on the tokens left by the first stage.
		if p, ok := planSplit(ed); ok {
			o.log.WithFields(p.fields()).Debug("split markup")
			return applySplit(ed, p)
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("clear formatting: %w", err)
	}
	return true, nil
}

func applyClear(ed Editor, p *clearPlan) error {
	t := &tracker{ed: ed, sel: p.selection}
	if p.relocates() {
		if err := relocate(t, p); err != nil {
			return err
		}
	} else if err := t.deleteAll(p.remove); err != nil {
		return err
	}
	if err := prune(t, p.items); err != nil {
		return err
	}
	return ed.SetSelection(t.sel)
}

// relocate deletes every planned delimiter, then inserts the moved
// closings at the selection start and the moved openings at its end.
func relocate(t *tracker, p *clearPlan) error {
	after, err := joinText(t.ed, p.moveAfter)
	if err != nil {
		return err
	}
	before, err := joinText(t.ed, p.moveBefore)
	if err != nil {
		return err
	}

	all := slices.Concat(p.moveBefore, p.moveAfter, p.remove)
	if err := t.deleteAll(all); err != nil {
		return err
	}
	if err := t.replace(textrange.NewItemRange(t.sel.End, t.sel.End), after, true, true); err != nil {
		return err
	}
	return t.replace(textrange.NewItemRange(t.sel.Start, t.sel.Start), before, false, false)
}
