package renderer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wikistorm/internal/engine"
	"github.com/dshills/wikistorm/internal/renderer/backend"
	"github.com/dshills/wikistorm/internal/renderer/core"
	"github.com/dshills/wikistorm/internal/renderer/highlight"
)

func setup(t *testing.T, content string, w, h int) (*Renderer, *engine.Engine, *backend.NullBackend) {
	t.Helper()
	b := backend.NewNullBackend(w, h)
	require.NoError(t, b.Init())
	eng := engine.New(engine.WithContent(content))
	return New(b, eng, DefaultOptions()), eng, b
}

func sel(line, from, to int) engine.ItemRange {
	return engine.ItemRange{
		Start: engine.ItemLocation{Line: line, Ch: from},
		End:   engine.ItemLocation{Line: line, Ch: to},
	}
}

func TestRenderLines(t *testing.T) {
	r, _, b := setup(t, "'''bold''' text\nsecond\nthird", 30, 6)
	r.Render()

	assert.Equal(t, "  1 '''bold''' text"+strings.Repeat(" ", 11), b.Row(0))
	assert.True(t, strings.HasPrefix(b.Row(1), "  2 second"))
	assert.Equal(t, strings.Repeat(" ", 30), b.Row(3))
	assert.Equal(t, 1, b.Shows())
	assert.Equal(t, uint64(1), r.FrameCount())
	assert.Equal(t, 4, r.GutterWidth())

	x, y, visible := b.CursorPosition()
	assert.True(t, visible)
	assert.Equal(t, 4, x)
	assert.Equal(t, 0, y)
}

func TestRenderHighlightAndSelection(t *testing.T) {
	r, eng, b := setup(t, "'''bold''' text", 60, 4)
	require.NoError(t, eng.SetSelection(sel(0, 3, 7)))
	r.Render()

	theme := highlight.DefaultTheme()
	assert.True(t, b.GetCell(4+3, 0).Style.Attributes.Has(core.AttrBold), "bold text cell")
	for x := 4 + 3; x < 4+7; x++ {
		assert.Equal(t, theme.Selection, b.GetCell(x, 0).Style.Background, "x=%d", x)
	}
	assert.NotEqual(t, theme.Selection, b.GetCell(4+7, 0).Style.Background)
	assert.NotEqual(t, theme.Selection, b.GetCell(4+2, 0).Style.Background)

	x, y, _ := b.CursorPosition()
	assert.Equal(t, 11, x)
	assert.Equal(t, 0, y)

	status := b.Row(3)
	assert.Contains(t, status, "Ln 1, Col 8")
	assert.Contains(t, status, "bold")
}

func TestRenderMultiLineSelection(t *testing.T) {
	r, eng, b := setup(t, "abc\ndef\nghi", 20, 5)
	require.NoError(t, eng.SetSelection(engine.ItemRange{
		Start: engine.ItemLocation{Line: 0, Ch: 2},
		End:   engine.ItemLocation{Line: 2, Ch: 1},
	}))
	r.Render()

	selBg := highlight.DefaultTheme().Selection
	assert.NotEqual(t, selBg, b.GetCell(4+1, 0).Style.Background)
	assert.Equal(t, selBg, b.GetCell(4+2, 0).Style.Background)
	for x := 4; x < 7; x++ {
		assert.Equal(t, selBg, b.GetCell(x, 1).Style.Background)
	}
	assert.Equal(t, selBg, b.GetCell(4, 2).Style.Background)
	assert.NotEqual(t, selBg, b.GetCell(5, 2).Style.Background)
}

func TestRenderTabs(t *testing.T) {
	r, eng, b := setup(t, "a\tb", 20, 3)
	require.NoError(t, eng.SetSelection(sel(0, 2, 2)))
	r.Render()

	assert.True(t, strings.HasPrefix(b.Row(0), "  1 a   b"))
	x, _, _ := b.CursorPosition()
	assert.Equal(t, 4+4, x)
}

func TestRenderFollowsCaret(t *testing.T) {
	var lines []string
	for i := range 50 {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	r, eng, b := setup(t, strings.Join(lines, "\n"), 30, 11)

	require.NoError(t, eng.SetSelection(sel(40, 0, 0)))
	r.Render()

	_, y, visible := b.CursorPosition()
	require.True(t, visible)
	assert.Equal(t, r.Viewport().ScreenRow(40), y)
	assert.True(t, strings.HasPrefix(b.Row(y), " 41 line 40"), b.Row(y))

	// Manual scrolling is kept while the caret does not move.
	r.ScrollBy(-20)
	r.Render()
	_, _, visible = b.CursorPosition()
	assert.False(t, visible)

	r.CenterOnLine(40)
	r.Render()
	_, _, visible = b.CursorPosition()
	assert.True(t, visible)
}

func TestRenderHorizontalScroll(t *testing.T) {
	r, eng, b := setup(t, strings.Repeat("x", 100)+"END", 30, 3)
	require.NoError(t, eng.SetSelection(sel(0, 103, 103)))
	r.Render()

	assert.Greater(t, r.Viewport().LeftColumn(), 0)
	assert.Contains(t, b.Row(0), "END")
	x, _, visible := b.CursorPosition()
	assert.True(t, visible)
	assert.Less(t, x, 30)
	assert.Equal(t, 103, r.ColumnToOffset(0, 103))
}

func TestRenderResize(t *testing.T) {
	r, _, b := setup(t, "one\ntwo", 20, 4)
	r.Render()

	b.Resize(10, 3)
	r.Resize(10, 3)
	r.Render()

	w, h := r.Size()
	assert.Equal(t, 10, w)
	assert.Equal(t, 3, h)
	assert.Equal(t, "  1 one   ", b.Row(0))
	assert.Equal(t, strings.Repeat(" ", 10), b.Row(2), "status text that does not fit is dropped")
}

func TestRenderStatusMessageAndTheme(t *testing.T) {
	r, _, b := setup(t, "x", 40, 3)
	r.StatusLine().SetFilename("page.wiki")
	r.Render()
	assert.Contains(t, b.Row(2), "page.wiki")

	light := highlight.LightTheme()
	r.SetTheme(light)
	r.SetTheme(nil)
	r.Render()
	assert.Equal(t, light.Background, b.GetCell(10, 0).Style.Background)
}

func TestRenderWithoutGutterOrStatus(t *testing.T) {
	b := backend.NewNullBackend(10, 2)
	require.NoError(t, b.Init())
	opts := DefaultOptions()
	opts.ShowLineNumbers = false
	opts.ShowStatusLine = false
	r := New(b, engine.New(engine.WithContent("a\nb")), opts)
	r.Render()

	assert.Equal(t, "a         ", b.Row(0))
	assert.Equal(t, "b         ", b.Row(1))
}
