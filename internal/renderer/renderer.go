package renderer

import (
	"sync"

	"github.com/dshills/wikistorm/internal/engine/textrange"
	"github.com/dshills/wikistorm/internal/renderer/backend"
	"github.com/dshills/wikistorm/internal/renderer/core"
	"github.com/dshills/wikistorm/internal/renderer/gutter"
	"github.com/dshills/wikistorm/internal/renderer/highlight"
	"github.com/dshills/wikistorm/internal/renderer/layout"
	"github.com/dshills/wikistorm/internal/renderer/statusline"
	"github.com/dshills/wikistorm/internal/renderer/viewport"
)

// Source provides the document being rendered.
// *engine.Engine satisfies it.
type Source interface {
	// LineCount returns the total number of lines.
	LineCount() int

	// LineText returns the text of a line without its terminator.
	LineText(line int) string

	// Spans returns the highlight spans of a line.
	Spans(line int) []highlight.Span

	// Selection returns the current selection, start before end.
	Selection() textrange.ItemRange

	// TabWidth returns the configured tab width.
	TabWidth() int
}

// formatReporter is implemented by sources that know which formats are
// active at the selection.
type formatReporter interface {
	ActiveFormats() []string
}

type undoCounter interface {
	UndoCount() int
}

// caretReporter is implemented by sources that track selection
// direction. Without it the caret is the end of the selection.
type caretReporter interface {
	Caret() textrange.ItemLocation
}

// Options configures the renderer.
type Options struct {
	// Display
	ShowLineNumbers bool
	LineNumberMode  gutter.LineNumberMode
	ShowStatusLine  bool

	// Scrolling
	ScrollMarginTop    int // Lines to keep above caret
	ScrollMarginBottom int // Lines to keep below caret
	ScrollMarginLeft   int // Columns to keep left of caret
	ScrollMarginRight  int // Columns to keep right of caret

	// Theme used for the background, selection and gutter. Nil uses
	// highlight.DefaultTheme.
	Theme *highlight.Theme
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		ShowLineNumbers:    true,
		ShowStatusLine:     true,
		ScrollMarginTop:    3,
		ScrollMarginBottom: 3,
		ScrollMarginLeft:   8,
		ScrollMarginRight:  8,
	}
}

// Renderer is the main rendering facade.
type Renderer struct {
	mu sync.Mutex

	opts  Options
	theme *highlight.Theme

	backend backend.Backend
	width   int
	height  int

	src Source

	viewport *viewport.Viewport
	gutter   *gutter.Gutter
	status   *statusline.StatusLine

	// caret at the last render; the viewport follows it only when it moves
	lastCaret  textrange.ItemLocation
	rendered   bool
	frameCount uint64
}

// New creates a renderer drawing src onto b.
func New(b backend.Backend, src Source, opts Options) *Renderer {
	width, height := b.Size()
	theme := opts.Theme
	if theme == nil {
		theme = highlight.DefaultTheme()
	}

	r := &Renderer{
		opts:    opts,
		theme:   theme,
		backend: b,
		width:   width,
		height:  height,
		src:     src,
		gutter: gutter.New(gutter.Config{
			ShowLineNumbers:    opts.ShowLineNumbers,
			MinLineNumberWidth: 3,
			Mode:               opts.LineNumberMode,
		}),
		status: statusline.New(),
	}
	r.viewport = viewport.NewViewport(width, r.textHeight())
	r.viewport.SetMargins(opts.ScrollMarginTop, opts.ScrollMarginBottom, opts.ScrollMarginLeft, opts.ScrollMarginRight)
	r.status.Resize(width)
	r.applyTheme()
	return r
}

func (r *Renderer) applyTheme() {
	base := core.NewStyle(r.theme.Foreground).WithBackground(r.theme.Background)
	r.gutter.SetStyles(base.With(core.AttrDim), base.With(core.AttrBold))
	r.status.SetBarStyle(core.NewStyle(r.theme.Background).WithBackground(r.theme.Foreground.Darken(0.2)))
}

// SetTheme changes the theme.
func (r *Renderer) SetTheme(theme *highlight.Theme) {
	if theme == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.theme = theme
	r.applyTheme()
}

// StatusLine returns the status line for setting the file name and
// messages.
func (r *Renderer) StatusLine() *statusline.StatusLine {
	return r.status
}

// Viewport returns the viewport.
func (r *Renderer) Viewport() *viewport.Viewport {
	return r.viewport
}

// Resize updates the screen size.
func (r *Renderer) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	r.viewport.Resize(max(width-r.gutter.Width(), 1), r.textHeight())
	r.status.Resize(width)
	r.rendered = false
}

// Size returns the screen size.
func (r *Renderer) Size() (width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

// FrameCount returns how many frames were rendered.
func (r *Renderer) FrameCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// GutterWidth returns the current gutter width.
func (r *Renderer) GutterWidth() int {
	return r.gutter.Width()
}

func (r *Renderer) textHeight() int {
	h := r.height
	if r.opts.ShowStatusLine {
		h -= r.status.Height()
	}
	return max(h, 1)
}

// Render draws the whole screen.
func (r *Renderer) Render() {
	r.mu.Lock()
	defer r.mu.Unlock()

	lineCount := r.src.LineCount()
	sel := r.src.Selection()
	caret := sel.End
	if cr, ok := r.src.(caretReporter); ok {
		caret = cr.Caret()
	}

	r.gutter.SetLineCount(lineCount)
	r.gutter.SetCurrentLine(caret.Line)
	r.viewport.SetLineCount(lineCount)
	r.viewport.Resize(max(r.width-r.gutter.Width(), 1), r.textHeight())

	caretLayout := layout.Layout(r.src.LineText(caret.Line), core.DefaultStyle(), r.src.TabWidth())
	caretCol := caretLayout.VisualColumn(caret.Ch)
	if !r.rendered || caret != r.lastCaret {
		r.viewport.ScrollToReveal(caret.Line, caretCol)
	}
	r.lastCaret = caret
	r.rendered = true

	top := r.viewport.TopLine()
	for row := 0; row < r.textHeight(); row++ {
		r.renderLine(top+row, row, lineCount, sel)
	}

	if r.opts.ShowStatusLine {
		r.renderStatus(caret, caretCol, lineCount)
	}

	r.renderCaret(caret, caretCol)
	r.backend.Show()
	r.frameCount++
}

// renderLine draws one document line at screen row.
func (r *Renderer) renderLine(line, row, lineCount int, sel textrange.ItemRange) {
	base := core.NewStyle(r.theme.Foreground).WithBackground(r.theme.Background)
	exists := line < lineCount

	x := 0
	for _, c := range r.gutter.RenderLine(line, exists) {
		r.backend.SetCell(x, row, c)
		x++
	}

	var cells []core.Cell
	if exists {
		text := r.src.LineText(line)
		l := layout.Layout(text, base, r.src.TabWidth())
		l.ApplySpans(r.src.Spans(line))
		if start, end, ok := selectionBytes(sel, line, len(text)); ok {
			l.ApplyBackground(start, end, r.theme.Selection)
		}
		cells = l.Cells
	}

	blank := core.Cell{Text: " ", Width: 1, Style: base}
	left := r.viewport.LeftColumn()
	for ; x < r.width; x++ {
		col := left + x - r.gutter.Width()
		c := blank
		if col < len(cells) {
			c = cells[col]
			// A wide cell cut by the left edge or the right edge is blank.
			if c.IsContinuation() && x == r.gutter.Width() || c.Width > r.width-x {
				c = blank
			}
		}
		r.backend.SetCell(x, row, c)
	}
}

// selectionBytes returns the selected byte range of line.
func selectionBytes(sel textrange.ItemRange, line, lineLen int) (start, end int, ok bool) {
	if sel.IsZeroLength() || line < sel.Start.Line || line > sel.End.Line {
		return 0, 0, false
	}
	start, end = 0, lineLen
	if line == sel.Start.Line {
		start = sel.Start.Ch
	}
	if line == sel.End.Line {
		end = sel.End.Ch
	}
	return start, end, start < end
}

func (r *Renderer) renderStatus(caret textrange.ItemLocation, caretCol, lineCount int) {
	r.status.SetPosition(caret.Line, caretCol)
	r.status.SetTotalLines(lineCount)
	if f, ok := r.src.(formatReporter); ok {
		r.status.SetFormats(f.ActiveFormats())
	}
	if u, ok := r.src.(undoCounter); ok {
		r.status.SetUndoCount(u.UndoCount())
	}
	r.status.Render(r.backend, r.height-1)
}

func (r *Renderer) renderCaret(caret textrange.ItemLocation, caretCol int) {
	row := r.viewport.ScreenRow(caret.Line)
	col := caretCol - r.viewport.LeftColumn() + r.gutter.Width()
	if row < 0 || col < r.gutter.Width() || col >= r.width {
		r.backend.HideCursor()
		return
	}
	r.backend.ShowCursor(col, row)
}

// ScrollBy scrolls the view by delta lines without moving the caret.
func (r *Renderer) ScrollBy(delta int) {
	r.viewport.ScrollBy(delta)
}

// CenterOnLine centers the view on line.
func (r *Renderer) CenterOnLine(line int) {
	r.viewport.CenterOn(line)
}

// ColumnToOffset converts a visual column on line to a byte offset.
func (r *Renderer) ColumnToOffset(line, col int) int {
	l := layout.Layout(r.src.LineText(line), core.DefaultStyle(), r.src.TabWidth())
	return l.ByteOffset(col)
}
