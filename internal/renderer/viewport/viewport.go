// Package viewport tracks which part of a document is on screen.
package viewport

import "sync"

// Viewport represents the visible portion of the document. Columns are
// display columns, not byte offsets.
type Viewport struct {
	mu sync.RWMutex

	// First visible line and column
	topLine    int
	leftColumn int

	// Size in screen cells
	width  int
	height int

	// Scroll margins (keep the caret this far from edges)
	marginTop    int
	marginBottom int
	marginLeft   int
	marginRight  int

	lineCount int
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:        max(width, 1),
		height:       max(height, 1),
		marginTop:    3,
		marginBottom: 3,
		marginLeft:   8,
		marginRight:  8,
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// LeftColumn returns the first visible column.
func (v *Viewport) LeftColumn() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.leftColumn
}

// VisibleLineRange returns the visible lines as a half-open range.
func (v *Viewport) VisibleLineRange() (start, end int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	end = v.topLine + v.height
	if v.lineCount > 0 {
		end = min(end, v.lineCount)
	}
	return v.topLine, end
}

// Resize updates the viewport size.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = max(width, 1)
	v.height = max(height, 1)
}

// SetLineCount sets the number of lines in the document.
func (v *Viewport) SetLineCount(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lineCount = n
	if n > 0 && v.topLine >= n {
		v.topLine = n - 1
	}
}

// SetMargins sets the scroll margins.
func (v *Viewport) SetMargins(top, bottom, left, right int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.marginTop = max(top, 0)
	v.marginBottom = max(bottom, 0)
	v.marginLeft = max(left, 0)
	v.marginRight = max(right, 0)
}

// ScreenRow returns the screen row of line, or -1 when it is off screen.
func (v *Viewport) ScreenRow(line int) int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	row := line - v.topLine
	if row < 0 || row >= v.height {
		return -1
	}
	return row
}

// ScrollTo makes line the first visible line.
func (v *Viewport) ScrollTo(line int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = v.clampTop(line)
}

// ScrollBy scrolls by delta lines.
func (v *Viewport) ScrollBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = v.clampTop(v.topLine + delta)
}

// PageDown scrolls down by one screen.
func (v *Viewport) PageDown() {
	v.ScrollBy(v.Height())
}

// PageUp scrolls up by one screen.
func (v *Viewport) PageUp() {
	v.ScrollBy(-v.Height())
}

func (v *Viewport) clampTop(line int) int {
	if v.lineCount > 0 {
		line = min(line, v.lineCount-1)
	}
	return max(line, 0)
}

// ScrollToReveal scrolls minimally so that line and col are on screen,
// keeping the margins where the document allows. Returns true if the
// viewport moved.
func (v *Viewport) ScrollToReveal(line, col int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	top, left := v.topLine, v.leftColumn
	marginTop := min(v.marginTop, (v.height-1)/2)
	marginBottom := min(v.marginBottom, (v.height-1)/2)

	if line < top+marginTop {
		top = line - marginTop
	} else if line > top+v.height-1-marginBottom {
		top = line - v.height + 1 + marginBottom
	}
	top = v.clampTop(top)

	marginLeft := min(v.marginLeft, (v.width-1)/2)
	marginRight := min(v.marginRight, (v.width-1)/2)
	if col < left+marginLeft {
		left = max(col-marginLeft, 0)
	} else if col > left+v.width-1-marginRight {
		left = col - v.width + 1 + marginRight
	}

	moved := top != v.topLine || left != v.leftColumn
	v.topLine, v.leftColumn = top, left
	return moved
}

// CenterOn centers the viewport on line.
func (v *Viewport) CenterOn(line int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = v.clampTop(line - v.height/2)
}
