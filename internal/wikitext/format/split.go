package format

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dshills/wikistorm/internal/engine/textrange"
	"github.com/dshills/wikistorm/internal/wikitext/markup"
)

// splitPlan closes the items containing the selection just before it and
// reopens them just after it.
type splitPlan struct {
	selection textrange.ItemRange
	// items contain the selection, outermost first.
	items []markup.Item
	// all is the number of complete items on the selection's lines.
	all int
}

func planSplit(ed Editor) (*splitPlan, bool) {
	sel := ed.Selection()
	all := completeItems(ed, sel)
	for _, it := range all {
		if it.OpeningMarkupRange().IntersectsRange(sel, false) ||
			it.ClosingMarkupRange().IntersectsRange(sel, false) {
			return nil, false
		}
	}
	p := &splitPlan{selection: sel, all: len(all)}
	for _, it := range all {
		if it.IsUnsplittable() {
			continue
		}
		if it.InnerRange.IntersectsRange(sel, true) {
			p.items = append(p.items, it)
		}
	}
	if len(p.items) == 0 {
		return nil, false
	}
	return p, true
}

func (p *splitPlan) fields() logrus.Fields {
	return logrus.Fields{
		"selection": p.selection.String(),
		"items":     len(p.items),
	}
}

// CanSplitMarkupAroundSelection reports whether the selection lies inside
// the content of at least one item without touching any delimiter.
func CanSplitMarkupAroundSelection(ed Editor) bool {
	_, ok := planSplit(ed)
	return ok
}

// SplitMarkupAroundSelectionRange splits every item containing the
// selection in two, leaving the selected text outside both halves:
// `<b>abcdef</b>` with "cd" selected becomes `<b>ab</b>cd<b>ef</b>`.
// Halves left without content are removed. The selection keeps spanning
// the same text.
//
// It reports whether anything changed.
func SplitMarkupAroundSelectionRange(ed Editor, opts ...Option) (bool, error) {
	p, ok := planSplit(ed)
	if !ok {
		return false, nil
	}
	o := buildOptions(opts)
	o.log.WithFields(p.fields()).Debug("split markup")

	err := ed.Transaction("split markup", func() error {
		return applySplit(ed, p)
	})
	if err != nil {
		return false, fmt.Errorf("split markup: %w", err)
	}
	return true, nil
}

// applySplit inserts the closing delimiters before the selection and the
// opening delimiters after it. A half that would touch the edge of its
// item's content gets a blank placeholder so that prune finds it.
func applySplit(ed Editor, p *splitPlan) error {
	var closings, openings []textrange.ItemRange
	padBefore, padAfter := false, false
	for _, it := range p.items {
		closings = append([]textrange.ItemRange{it.ClosingMarkupRange()}, closings...)
		openings = append(openings, it.OpeningMarkupRange())
		if it.InnerRange.Start.Equals(p.selection.Start) {
			padBefore = true
		}
		if it.InnerRange.End.Equals(p.selection.End) {
			padAfter = true
		}
	}
	before, err := joinText(ed, closings)
	if err != nil {
		return err
	}
	after, err := joinText(ed, openings)
	if err != nil {
		return err
	}
	if padBefore {
		before = " " + before
	}
	if padAfter {
		after += " "
	}

	t := &tracker{ed: ed, sel: p.selection}
	if err := t.replace(textrange.NewItemRange(t.sel.End, t.sel.End), after, true, true); err != nil {
		return err
	}
	if err := t.replace(textrange.NewItemRange(t.sel.Start, t.sel.Start), before, false, false); err != nil {
		return err
	}
	if err := prune(t, p.all); err != nil {
		return err
	}
	return ed.SetSelection(t.sel)
}
