// Package format implements selection-aware formatting commands over
// wikitext: clearing the formatting of a selection and splitting markup
// around it.
//
// Every command comes as a pair. The Can function plans the edit without
// touching the document and reports whether it would change anything. The
// command plans again and applies the plan inside a single editor
// transaction, so a failed command leaves the document unchanged.
package format

import (
	"github.com/sirupsen/logrus"

	"github.com/dshills/wikistorm/internal/engine/textrange"
	"github.com/dshills/wikistorm/internal/logging"
	"github.com/dshills/wikistorm/internal/wikitext/tokenizer"
)

// Editor is the document capability the commands operate on.
type Editor interface {
	// Selection returns the current selection, start before end.
	Selection() textrange.ItemRange

	// SetSelection replaces the current selection.
	SetSelection(r textrange.ItemRange) error

	// LineTokens returns the highlighting tokens of a line as they are
	// after every edit made so far.
	LineTokens(line int) []tokenizer.Token

	// Text returns the text in r.
	Text(r textrange.ItemRange) (string, error)

	// Replace replaces the text in r.
	Replace(r textrange.ItemRange, text string) error

	// Transaction runs fn as one undoable unit. If fn returns an error,
	// every edit made inside it is reverted.
	Transaction(name string, fn func() error) error
}

// Option configures a command.
type Option func(*options)

type options struct {
	log logrus.FieldLogger
}

// WithLogger sets the logger that receives edit plans at debug level.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = logging.WithComponent(o.log, "format")
	return o
}
