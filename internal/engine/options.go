package engine

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/wikistorm/internal/engine/buffer"
	"github.com/dshills/wikistorm/internal/renderer/highlight"
	"github.com/dshills/wikistorm/internal/wikitext/tokenizer"
)

// Default configuration values.
const (
	DefaultTabWidth       = 4
	DefaultMaxUndoEntries = 1000
	DefaultMaxChanges     = 10000
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTabWidth sets the tab width for the engine.
func WithTabWidth(width int) Option {
	return func(e *Engine) {
		if width > 0 {
			e.tabWidth = width
		}
	}
}

// WithLineEnding sets the line ending used when writing.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) {
		e.lineEnding = ending
		e.detectEnding = false
	}
}

// WithDetectedLineEnding writes with the line ending most common in the
// initial content.
func WithDetectedLineEnding() Option {
	return func(e *Engine) {
		e.detectEnding = true
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithMaxChanges sets the maximum number of tracked changes.
func WithMaxChanges(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxChanges = max
		}
	}
}

// WithReadOnly creates a read-only engine.
// Write operations will return ErrReadOnly.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithTokenizer sets the tokenizer used for highlighting and for the
// formatting commands.
func WithTokenizer(tok *tokenizer.Tokenizer) Option {
	return func(e *Engine) {
		if tok != nil {
			e.tok = tok
		}
	}
}

// WithTheme sets the highlighting theme.
func WithTheme(theme *highlight.Theme) Option {
	return func(e *Engine) {
		e.theme = theme
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}
