// Package gutter renders the line number column to the left of the text.
package gutter

import (
	"strconv"
	"sync"

	"github.com/dshills/wikistorm/internal/renderer/core"
)

// Config holds gutter configuration.
type Config struct {
	// ShowLineNumbers enables line number display.
	ShowLineNumbers bool

	// MinLineNumberWidth is the minimum number of digits.
	MinLineNumberWidth int

	Mode LineNumberMode
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		ShowLineNumbers:    true,
		MinLineNumberWidth: 3,
		Mode:               LineNumberAbsolute,
	}
}

// Gutter manages the gutter area rendering.
type Gutter struct {
	mu sync.RWMutex

	config Config

	width       int
	lineCount   int
	currentLine int

	normal  core.Style
	current core.Style
}

// New creates a new gutter with the given configuration.
func New(config Config) *Gutter {
	g := &Gutter{
		config:  config,
		normal:  core.DefaultStyle().With(core.AttrDim),
		current: core.DefaultStyle().With(core.AttrBold),
	}
	g.width = g.calculateWidth()
	return g
}

// SetStyles sets the styles for ordinary and caret-line numbers.
func (g *Gutter) SetStyles(normal, current core.Style) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.normal, g.current = normal, current
}

// Width returns the gutter width including the trailing separator column.
func (g *Gutter) Width() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.width
}

// SetLineCount updates the total line count.
func (g *Gutter) SetLineCount(count int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lineCount = count
	g.width = g.calculateWidth()
}

// SetCurrentLine updates the caret line.
func (g *Gutter) SetCurrentLine(line int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentLine = line
}

// RenderLine returns the gutter cells for line. Rows past the end of the
// document (exists false) are blank.
func (g *Gutter) RenderLine(line int, exists bool) []core.Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.width == 0 {
		return nil
	}
	style := g.normal
	if line == g.currentLine {
		style = g.current
	}
	text := ""
	if exists {
		text = strconv.Itoa(number(g.config.Mode, line, g.currentLine))
	}
	text = PadLeft(text, g.width-1) + " "
	return core.CellsFromString(text, style, 1)
}

func (g *Gutter) calculateWidth() int {
	if !g.config.ShowLineNumbers {
		return 0
	}
	return CalculateWidth(g.lineCount, g.config.MinLineNumberWidth) + 1
}
