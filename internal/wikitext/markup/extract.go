package markup

import (
	"slices"
	"sort"
	"strings"

	"github.com/dshills/wikistorm/internal/engine/textrange"
	"github.com/dshills/wikistorm/internal/wikitext/tokenizer"
)

// TokenSource returns the tokens of one line.
type TokenSource func(line int) []tokenizer.Token

// ItemsForLine returns the tag and non-tag items of one line, sorted by
// the start of their opening delimiter. Non-tag items whose closing
// delimiter is not on the line are returned incomplete.
func ItemsForLine(tokens []tokenizer.Token, line int) []Item {
	items := append(TagItems(tokens, line), NonTagItems(tokens, line)...)
	sortItems(items)
	return items
}

// ItemsForLines returns the items of every line in lines, sorted by the
// start of their opening delimiter. Items may lie outside any particular
// column range on those lines.
func ItemsForLines(source TokenSource, lines []int) []Item {
	var items []Item
	for _, line := range lines {
		items = append(items, ItemsForLine(source(line), line)...)
	}
	sortItems(items)
	return items
}

// ItemsForRange returns the items on every line spanned by r.
func ItemsForRange(source TokenSource, r textrange.ItemRange) []Item {
	return ItemsForLines(source, r.LineNumbers())
}

// Complete filters items down to those with both delimiters.
func Complete(items []Item) []Item {
	out := items[:0:0]
	for _, it := range items {
		if it.IsComplete() {
			out = append(out, it)
		}
	}
	return out
}

func sortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].OuterRange.Start.LessThan(items[j].OuterRange.Start)
	})
}

// Tag items.

func isTagBracket(tok tokenizer.Token) bool {
	return tok.HasType("mw-htmltag-bracket") || tok.HasType("mw-exttag-bracket")
}

func isOpenTagStart(tok tokenizer.Token) bool  { return isTagBracket(tok) && tok.String == "<" }
func isOpenTagEnd(tok tokenizer.Token) bool    { return isTagBracket(tok) && tok.String == ">" }
func isCloseTagStart(tok tokenizer.Token) bool { return isTagBracket(tok) && tok.String == "</" }
func isSelfClose(tok tokenizer.Token) bool     { return isTagBracket(tok) && tok.String == "/>" }

// openTagEnd returns the index of the '>' ending the open tag starting at
// index i. Self-closing tags, void tags and tags cut off by another bracket
// have no end.
func openTagEnd(tokens []tokenizer.Token, i int) (int, bool) {
	if i+1 >= len(tokens) || tokenizer.IsVoidTag(strings.TrimSpace(tokens[i+1].String)) {
		return 0, false
	}
	for j := i + 1; j < len(tokens); j++ {
		tok := tokens[j]
		switch {
		case isOpenTagEnd(tok):
			return j, true
		case isSelfClose(tok), isOpenTagStart(tok), isCloseTagStart(tok):
			return 0, false
		}
	}
	return 0, false
}

// closeTagStart returns the index of the '</' that pairs with an open tag
// ending at index from. Tags are paired by nesting depth, not by name.
func closeTagStart(tokens []tokenizer.Token, from int) (int, bool) {
	depth := 0
	for i := from + 1; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case isOpenTagStart(tok):
			if _, ok := openTagEnd(tokens, i); ok {
				depth++
			}
		case isCloseTagStart(tok):
			if depth == 0 {
				return i, true
			}
			depth--
		}
	}
	return 0, false
}

// TagItems returns the HTML and extension tag items of one line. Open tags
// without a closing tag on the line are left out.
func TagItems(tokens []tokenizer.Token, line int) []Item {
	var items []Item
	for i, tok := range tokens {
		if !isOpenTagStart(tok) {
			continue
		}
		openEnd, ok := openTagEnd(tokens, i)
		if !ok {
			continue
		}
		closeStart, ok := closeTagStart(tokens, openEnd)
		if !ok || closeStart+2 >= len(tokens) {
			continue
		}
		closeEnd := closeStart + 2

		items = append(items, Item{
			Type: strings.TrimSpace(tokens[i+1].String),
			InnerRange: textrange.LineRange(line,
				tokens[openEnd].End, tokens[closeStart].Start),
			OuterRange: textrange.LineRange(line,
				tok.Start, tokens[closeEnd].End),
		})
	}
	return items
}

// Non-tag items.

var nonTagTypes = []string{TypeBold, TypeItalic, TypeLink, TypeHeader, TypeTemplate}

// nonTagTypesOf returns the non-tag item types a token delimits. Apostrophes
// inside link text carry only mw-apostrophes and are classified by length.
func nonTagTypesOf(tok tokenizer.Token) []string {
	var types []string
	for _, typ := range tok.Types() {
		if typ == "mw-apostrophes" {
			switch tok.String {
			case "'''":
				typ = TypeBold
			case "''":
				typ = TypeItalic
			}
		}
		if slices.Contains(nonTagTypes, typ) && !slices.Contains(types, typ) {
			types = append(types, typ)
		}
	}
	return types
}

// NonTagItems returns the apostrophe, link, header and template items of
// one line. Each type toggles: its first token opens an item and the next
// closes it.
func NonTagItems(tokens []tokenizer.Token, line int) []Item {
	var items []Item
	open := make(map[string]int)

	for _, tok := range tokens {
		for _, typ := range nonTagTypesOf(tok) {
			if idx, ok := open[typ]; ok {
				items[idx].InnerRange.End = textrange.NewItemLocation(line, tok.Start)
				items[idx].OuterRange.End = textrange.NewItemLocation(line, tok.End)
				delete(open, typ)
				continue
			}
			open[typ] = len(items)
			items = append(items, Item{
				Type: typ,
				InnerRange: textrange.NewItemRange(
					textrange.NewItemLocation(line, tok.End),
					textrange.NewItemLocation(line, textrange.Unresolved)),
				OuterRange: textrange.NewItemRange(
					textrange.NewItemLocation(line, tok.Start),
					textrange.NewItemLocation(line, textrange.Unresolved)),
			})
		}
	}
	return items
}
