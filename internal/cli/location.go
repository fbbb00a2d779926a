package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/wikistorm/internal/engine"
	"github.com/dshills/wikistorm/internal/engine/textrange"
)

// ErrBadLocation is returned for a malformed or out of range LINE:COL.
var ErrBadLocation = errors.New("bad location")

// parseLocation parses a one-based LINE:COL into a zero-based location.
// A missing column means the start of the line.
func parseLocation(s string) (textrange.ItemLocation, error) {
	lineStr, colStr, hasCol := strings.Cut(strings.TrimSpace(s), ":")
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return textrange.ItemLocation{}, fmt.Errorf("%w %q: line must be a number from 1", ErrBadLocation, s)
	}
	col := 1
	if hasCol {
		col, err = strconv.Atoi(colStr)
		if err != nil || col < 1 {
			return textrange.ItemLocation{}, fmt.Errorf("%w %q: column must be a number from 1", ErrBadLocation, s)
		}
	}
	return textrange.NewItemLocation(line-1, col-1), nil
}

// formatLocation renders a zero-based location as one-based LINE:COL.
func formatLocation(loc textrange.ItemLocation) string {
	if !loc.IsComplete() {
		return "?"
	}
	return fmt.Sprintf("%d:%d", loc.Line+1, loc.Ch+1)
}

// selectionFlags are the --from and --to flags of an editing command.
type selectionFlags struct {
	from string
	to   string
}

// resolve checks the selection against the document and orders its ends.
func (f selectionFlags) resolve(eng *engine.Engine) (textrange.ItemRange, error) {
	from, err := parseLocation(f.from)
	if err != nil {
		return textrange.ItemRange{}, err
	}
	to, err := parseLocation(f.to)
	if err != nil {
		return textrange.ItemRange{}, err
	}
	for _, loc := range []textrange.ItemLocation{from, to} {
		if loc.Line >= eng.LineCount() || loc.Ch > eng.LineLen(loc.Line) {
			return textrange.ItemRange{}, fmt.Errorf("%w %s: outside the document", ErrBadLocation, formatLocation(loc))
		}
	}
	return textrange.NewItemRange(from, to).Normalized(), nil
}
