// Package markup derives paired markup items from tokenized wikitext.
//
// An Item is an opening and a closing delimiter on the same line together
// with the content between them. Items are recomputed from fresh tokens
// whenever an operation needs them and are never stored.
package markup

import (
	"fmt"

	"github.com/dshills/wikistorm/internal/engine/textrange"
)

// Non-tag item types. Tag items use the tag name as their type.
const (
	TypeBold     = "mw-apostrophes-bold"
	TypeItalic   = "mw-apostrophes-italic"
	TypeLink     = "mw-link-bracket"
	TypeHeader   = "mw-section-header"
	TypeTemplate = "mw-template-bracket"
)

// Item is a markup construct: its delimiters plus content (OuterRange) and
// its content alone (InnerRange).
type Item struct {
	Type       string
	InnerRange textrange.ItemRange
	OuterRange textrange.ItemRange
}

// NewItem creates an item.
func NewItem(typ string, inner, outer textrange.ItemRange) Item {
	return Item{Type: typ, InnerRange: inner, OuterRange: outer}
}

// String returns a human-readable representation.
func (it Item) String() string {
	return fmt.Sprintf("%s outer=%s inner=%s", it.Type, it.OuterRange, it.InnerRange)
}

// IsComplete reports whether both delimiters were found.
func (it Item) IsComplete() bool {
	return it.InnerRange.IsComplete() && it.OuterRange.IsComplete()
}

// OpeningMarkupRange is the range of the opening delimiter.
func (it Item) OpeningMarkupRange() textrange.ItemRange {
	return textrange.NewItemRange(it.OuterRange.Start, it.InnerRange.Start)
}

// ClosingMarkupRange is the range of the closing delimiter.
func (it Item) ClosingMarkupRange() textrange.ItemRange {
	return textrange.NewItemRange(it.InnerRange.End, it.OuterRange.End)
}

// IsUnsplittable reports whether the item must be removed as a whole rather
// than split or relocated.
func (it Item) IsUnsplittable() bool {
	return it.Type == TypeHeader
}

// ButtonName returns the toolbar button associated with the item's type.
func (it Item) ButtonName() string {
	return ButtonNameForType(it.Type)
}

// ButtonNameForType maps an item type to its toolbar button name. Tag
// names other than ref map to themselves.
func ButtonNameForType(typ string) string {
	switch typ {
	case TypeBold:
		return "bold"
	case TypeItalic:
		return "italic"
	case TypeHeader:
		return "header"
	case TypeLink:
		return "link"
	case TypeTemplate:
		return "template"
	case "ref":
		return "reference"
	default:
		return typ
	}
}

// Valid reports whether a complete item's ranges are properly nested.
func (it Item) Valid() bool {
	if !it.IsComplete() {
		return false
	}
	o, in := it.OuterRange, it.InnerRange
	return o.Start.LessThanOrEquals(in.Start) &&
		in.Start.LessThanOrEquals(in.End) &&
		in.End.LessThanOrEquals(o.End)
}
