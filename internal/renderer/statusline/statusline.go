// Package statusline renders the bottom status line of the viewer.
package statusline

import (
	"strconv"
	"strings"

	"github.com/dshills/wikistorm/internal/renderer/backend"
	"github.com/dshills/wikistorm/internal/renderer/core"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine renders file name, caret position, active formats and a
// transient message.
type StatusLine struct {
	filename string
	modified bool
	readOnly bool

	line, col  int // zero-based caret position
	totalLines int
	undoCount  int

	// formats active at the selection, e.g. "bold", "span"
	formats []string

	message     string
	messageType MessageType

	barStyle core.Style
	width    int
}

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{
		barStyle: core.NewStyle(core.ColorFromRGB(255, 255, 255)).
			WithBackground(core.ColorFromRGB(68, 68, 68)),
	}
}

// SetBarStyle sets the status bar style.
func (s *StatusLine) SetBarStyle(style core.Style) { s.barStyle = style }

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) { s.filename = filename }

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) { s.modified = modified }

// SetReadOnly updates the read-only indicator.
func (s *StatusLine) SetReadOnly(readOnly bool) { s.readOnly = readOnly }

// SetPosition updates the caret position.
func (s *StatusLine) SetPosition(line, col int) {
	s.line = line
	s.col = col
}

// SetTotalLines updates the total line count.
func (s *StatusLine) SetTotalLines(total int) { s.totalLines = total }

// SetUndoCount updates the number of undoable commands.
func (s *StatusLine) SetUndoCount(n int) { s.undoCount = n }

// SetFormats updates the formats active at the selection.
func (s *StatusLine) SetFormats(formats []string) { s.formats = formats }

// SetMessage displays a status message until cleared.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the current message.
func (s *StatusLine) Message() string { return s.message }

// Resize updates the status line width.
func (s *StatusLine) Resize(width int) { s.width = width }

// Height returns the number of rows the status line uses.
func (s *StatusLine) Height() int { return 1 }

// Render draws the status line at row.
func (s *StatusLine) Render(b backend.Backend, row int) {
	if s.message != "" {
		s.renderMessage(b, row)
		return
	}

	s.fill(b, row, s.barStyle)

	left := " " + s.displayName()
	if len(s.formats) > 0 {
		left += "  [" + strings.Join(s.formats, " ") + "]"
	}
	right := s.formatPosition() + " "

	limit := s.width - core.StringWidth(right) - 1
	s.put(b, 0, row, left, s.barStyle, limit)
	if start := s.width - core.StringWidth(right); start > core.StringWidth(left) {
		s.put(b, start, row, right, s.barStyle, s.width)
	}
}

func (s *StatusLine) displayName() string {
	name := s.filename
	if name == "" {
		name = "[No Name]"
	}
	if s.modified {
		name += " [+]"
	}
	if s.readOnly {
		name += " [RO]"
	}
	return name
}

func (s *StatusLine) renderMessage(b backend.Backend, row int) {
	style := s.barStyle
	switch s.messageType {
	case MessageError:
		style = core.NewStyle(core.ColorFromRGB(244, 71, 71)).With(core.AttrBold)
	case MessageWarning:
		style = core.NewStyle(core.ColorFromRGB(220, 220, 120))
	}
	s.fill(b, row, style)
	s.put(b, 0, row, " "+s.message, style, s.width)
}

// formatPosition formats "Ln 3, Col 7 | 12 lines | 4 undo".
func (s *StatusLine) formatPosition() string {
	out := "Ln " + strconv.Itoa(s.line+1) + ", Col " + strconv.Itoa(s.col+1)
	if s.totalLines > 0 {
		out += " | " + strconv.Itoa(s.totalLines) + " lines"
	}
	if s.undoCount > 0 {
		out += " | " + strconv.Itoa(s.undoCount) + " undo"
	}
	return out
}

func (s *StatusLine) fill(b backend.Backend, row int, style core.Style) {
	for x := 0; x < s.width; x++ {
		b.SetCell(x, row, core.Cell{Text: " ", Width: 1, Style: style})
	}
}

// put draws text from column x, stopping before column limit.
func (s *StatusLine) put(b backend.Backend, x, row int, text string, style core.Style, limit int) {
	for _, c := range core.CellsFromString(text, style, 1) {
		if x+max(c.Width, 1) > limit {
			return
		}
		b.SetCell(x, row, c)
		x++
	}
}
