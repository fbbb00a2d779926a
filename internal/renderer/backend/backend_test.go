package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/wikistorm/internal/renderer/core"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
	if got := b.GetCell(0, 0); got != core.EmptyCell() {
		t.Errorf("expected empty cell after init, got %+v", got)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(10, 2)
	_ = b.Init()

	style := core.NewStyle(core.ColorFromRGB(255, 0, 0)).With(core.AttrBold)
	b.SetCell(3, 1, core.Cell{Text: "X", Width: 1, Style: style})

	got := b.GetCell(3, 1)
	if got.Text != "X" || got.Style != style {
		t.Errorf("GetCell(3, 1) = %+v", got)
	}

	// Out of bounds is ignored and reads as empty.
	b.SetCell(-1, 0, core.Cell{Text: "Y", Width: 1})
	b.SetCell(10, 0, core.Cell{Text: "Y", Width: 1})
	if got := b.GetCell(10, 0); got != core.EmptyCell() {
		t.Errorf("out of bounds GetCell = %+v", got)
	}
}

func TestNullBackendSkipsContinuationCells(t *testing.T) {
	b := NewNullBackend(10, 1)
	_ = b.Init()

	cells := core.CellsFromString("日x", core.DefaultStyle(), 4)
	for x, c := range cells {
		b.SetCell(x, 0, c)
	}
	if got := b.Row(0); got != "日 x       " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestNullBackendClear(t *testing.T) {
	b := NewNullBackend(30, 30)
	_ = b.Init()

	b.SetCell(10, 10, core.Cell{Text: "X", Width: 1})
	b.SetCell(20, 20, core.Cell{Text: "Y", Width: 1})
	b.Clear()

	for _, p := range [][2]int{{10, 10}, {20, 20}} {
		if got := b.GetCell(p[0], p[1]); got != core.EmptyCell() {
			t.Errorf("cell %v not cleared: %+v", p, got)
		}
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(80, 24)
	_ = b.Init()

	b.ShowCursor(5, 7)
	x, y, visible := b.CursorPosition()
	if x != 5 || y != 7 || !visible {
		t.Errorf("cursor = (%d, %d, %v), want (5, 7, true)", x, y, visible)
	}

	b.HideCursor()
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("cursor should be hidden")
	}
}

func TestNullBackendShowCount(t *testing.T) {
	b := NewNullBackend(10, 10)
	_ = b.Init()
	b.Show()
	b.Show()
	if b.Shows() != 2 {
		t.Errorf("Shows() = %d, want 2", b.Shows())
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	_ = b.Init()

	b.Resize(100, 50)
	w, h := b.Size()
	if w != 100 || h != 50 {
		t.Errorf("size after resize = (%d, %d)", w, h)
	}

	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 100 || ev.Height != 50 {
		t.Errorf("resize event = %+v", ev)
	}
}

func TestNullBackendPostEvent(t *testing.T) {
	b := NewNullBackend(80, 24)
	_ = b.Init()

	b.PostEvent(Event{Type: EventKey, Key: KeyCtrlK})
	got := b.PollEvent()
	if got.Type != EventKey || got.Key != KeyCtrlK {
		t.Errorf("PollEvent = %+v", got)
	}
}

func TestModMaskHas(t *testing.T) {
	mod := ModShift | ModCtrl
	if !mod.Has(ModShift) || !mod.Has(ModCtrl) {
		t.Error("mask should contain shift and ctrl")
	}
	if mod.Has(ModAlt) {
		t.Error("mask should not contain alt")
	}
}

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(screen)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(term.Shutdown)
	screen.SetSize(20, 5)
	return term, screen
}

func TestTerminalSetCellRoundTrip(t *testing.T) {
	term, _ := newSimTerminal(t)

	style := core.NewStyle(core.ColorFromRGB(10, 20, 30)).
		WithBackground(core.ColorFromRGB(200, 210, 220)).
		With(core.AttrBold | core.AttrItalic)
	term.SetCell(2, 1, core.Cell{Text: "w", Width: 1, Style: style})
	term.Show()

	got := term.GetCell(2, 1)
	if got.Text != "w" {
		t.Errorf("Text = %q, want w", got.Text)
	}
	if got.Style.Foreground != style.Foreground || got.Style.Background != style.Background {
		t.Errorf("colors = %v/%v, want %v/%v",
			got.Style.Foreground, got.Style.Background, style.Foreground, style.Background)
	}
	if !got.Style.Attributes.Has(core.AttrBold) || !got.Style.Attributes.Has(core.AttrItalic) {
		t.Errorf("attributes = %v", got.Style.Attributes)
	}
}

func TestTerminalKeyEvents(t *testing.T) {
	term, screen := newSimTerminal(t)

	screen.InjectKey(tcell.KeyCtrlK, 0, tcell.ModNone)
	ev := term.PollEvent()
	if ev.Type != EventKey || ev.Key != KeyCtrlK {
		t.Errorf("ctrl-k event = %+v", ev)
	}

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	ev = term.PollEvent()
	if ev.Key != KeyRune || ev.Rune != 'q' {
		t.Errorf("rune event = %+v", ev)
	}
}

func TestKeyConversionRoundTrip(t *testing.T) {
	for _, key := range []Key{KeyEnter, KeyLeft, KeyCtrlT, KeyCtrlZ, KeyBackspace} {
		if got := convertKey(convertToTcellKey(key)); got != key {
			t.Errorf("round trip of %d = %d", key, got)
		}
	}
	if got := convertMod(convertToTcellMod(ModShift | ModAlt)); got != ModShift|ModAlt {
		t.Errorf("mod round trip = %v", got)
	}
}
