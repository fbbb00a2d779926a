package format

import (
	"strings"

	"github.com/dshills/wikistorm/internal/engine/textrange"
)

// prune deletes the items touching the tracked selection whose content is
// blank. Removing an item can leave its parent blank, so the scan repeats
// until nothing is found or limit passes have run.
func prune(t *tracker, limit int) error {
	for range max(limit, 1) {
		var blank []textrange.ItemRange
		for _, it := range completeItems(t.ed, t.sel) {
			if !it.OuterRange.IntersectsRange(t.sel, true) {
				continue
			}
			inner, err := t.ed.Text(it.InnerRange)
			if err != nil {
				return err
			}
			if strings.TrimSpace(inner) == "" {
				blank = append(blank, it.OuterRange)
			}
		}
		if len(blank) == 0 {
			return nil
		}
		if err := t.deleteAll(blank); err != nil {
			return err
		}
	}
	return nil
}
