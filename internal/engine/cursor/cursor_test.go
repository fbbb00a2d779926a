package cursor

import (
	"testing"

	"github.com/dshills/wikistorm/internal/engine/textrange"
)

type lines []string

func (l lines) LineCount() int { return len(l) }

func (l lines) LineText(i int) string {
	if i < 0 || i >= len(l) {
		return ""
	}
	return l[i]
}

func at(line, ch int) Location {
	return Location{Line: line, Ch: ch}
}

func TestSelectionBounds(t *testing.T) {
	sel := NewSelection(at(1, 4), at(0, 2))

	if sel.IsForward() {
		t.Error("selection should be backward")
	}
	if sel.Start() != at(0, 2) || sel.End() != at(1, 4) {
		t.Errorf("bounds = %s, %s", sel.Start(), sel.End())
	}
	want := textrange.NewItemRange(at(0, 2), at(1, 4))
	if sel.Range() != want {
		t.Errorf("Range() = %s, want %s", sel.Range(), want)
	}
	if sel.IsEmpty() {
		t.Error("selection should not be empty")
	}
	if !sel.Collapse().IsEmpty() || sel.Collapse().Head != at(0, 2) {
		t.Errorf("Collapse() = %s", sel.Collapse())
	}
	if sel.CollapseToEnd().Head != at(1, 4) {
		t.Errorf("CollapseToEnd() = %s", sel.CollapseToEnd())
	}
	if sel.Flip().Head != at(1, 4) {
		t.Errorf("Flip() = %s", sel.Flip())
	}
}

func TestSelectionSync(t *testing.T) {
	back := NewSelection(at(0, 5), at(0, 1))

	same := back.Sync(textrange.LineRange(0, 1, 5))
	if same != back {
		t.Errorf("Sync with same range = %s, want %s", same, back)
	}

	moved := back.Sync(textrange.LineRange(0, 3, 3))
	if moved != NewCursorSelection(at(0, 3)) {
		t.Errorf("Sync with new range = %s", moved)
	}
}

func TestHorizontalMotion(t *testing.T) {
	doc := lines{"héllo", "👍🏽x", ""}

	tests := []struct {
		name string
		move func(Lines, Location) Location
		from Location
		want Location
	}{
		{"right ascii", Right, at(0, 0), at(0, 1)},
		{"right multibyte", Right, at(0, 1), at(0, 3)},
		{"right wraps", Right, at(0, 6), at(1, 0)},
		{"right emoji cluster", Right, at(1, 0), at(1, 8)},
		{"right at end", Right, at(2, 0), at(2, 0)},
		{"left multibyte", Left, at(0, 3), at(0, 1)},
		{"left emoji cluster", Left, at(1, 8), at(1, 0)},
		{"left wraps", Left, at(1, 0), at(0, 6)},
		{"left at start", Left, at(0, 0), at(0, 0)},
		{"left clamps then wraps", Left, at(9, 9), at(1, 9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.move(doc, tt.from)
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestVerticalMotion(t *testing.T) {
	doc := lines{"abcdef", "ab", "\tx", "abcdefgh"}

	tests := []struct {
		name string
		got  Location
		want Location
	}{
		{"down keeps column", Down(doc, at(0, 1), 1, 4), at(1, 1)},
		{"down short line", Down(doc, at(0, 5), 5, 4), at(1, 2)},
		{"down into tab", Down(doc, at(1, 1), 1, 4), at(2, 0)},
		{"down past tab", Down(doc, at(1, 1), 4, 4), at(2, 1)},
		{"down last line", Down(doc, at(3, 2), 2, 4), at(3, 8)},
		{"up restores goal", Up(doc, at(1, 2), 5, 4), at(0, 5)},
		{"up first line", Up(doc, at(0, 3), 3, 4), at(0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestLineMotion(t *testing.T) {
	doc := lines{"  indented", "   "}

	if got := LineStart(doc, at(0, 6)); got != at(0, 2) {
		t.Errorf("LineStart to indent = %s", got)
	}
	if got := LineStart(doc, at(0, 2)); got != at(0, 0) {
		t.Errorf("LineStart toggle = %s", got)
	}
	if got := LineStart(doc, at(1, 3)); got != at(1, 0) {
		t.Errorf("LineStart blank line = %s", got)
	}
	if got := LineEnd(doc, at(0, 0)); got != at(0, 10) {
		t.Errorf("LineEnd = %s", got)
	}
	if got := DocEnd(doc); got != at(1, 3) {
		t.Errorf("DocEnd = %s", got)
	}
	if got := DocEnd(lines{}); got != DocStart() {
		t.Errorf("DocEnd empty = %s", got)
	}
}

func TestVisualColumn(t *testing.T) {
	tests := []struct {
		text string
		ch   int
		want int
	}{
		{"abc", 2, 2},
		{"\tx", 1, 4},
		{"a\tx", 2, 4},
		{"日本", 3, 2},
		{"日本", 6, 4},
	}

	for _, tt := range tests {
		if got := VisualColumn(tt.text, tt.ch, 4); got != tt.want {
			t.Errorf("VisualColumn(%q, %d) = %d, want %d", tt.text, tt.ch, got, tt.want)
		}
	}

	if got := ChAtColumn("日本", 3, 4); got != 3 {
		t.Errorf("ChAtColumn inside wide char = %d, want 3", got)
	}
	if got := ChAtColumn("ab", 10, 4); got != 2 {
		t.Errorf("ChAtColumn past end = %d, want 2", got)
	}
}
