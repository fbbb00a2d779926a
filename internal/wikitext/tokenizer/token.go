package tokenizer

import (
	"strconv"
	"strings"
)

// Token is a styled span of one line.
type Token struct {
	Start  int
	End    int
	String string
	Style  string
}

// Types returns the style tags of the token.
func (t Token) Types() []string {
	return strings.Fields(t.Style)
}

// HasType reports whether the token carries the style tag name.
func (t Token) HasType(name string) bool {
	for _, typ := range t.Types() {
		if typ == name {
			return true
		}
	}
	return false
}

// Ground is the nesting depth a token was produced at.
type Ground struct {
	Template int
	Ext      int
	Link     bool
}

// IsZero reports whether the token is outside every template, parser
// function and link.
func (g Ground) IsZero() bool {
	return g == Ground{}
}

// Ground decodes the mw-...-ground tag of the token's style.
func (t Token) Ground() Ground {
	var g Ground
	for _, typ := range t.Types() {
		if !strings.HasPrefix(typ, "mw-") || !strings.HasSuffix(typ, "-ground") {
			continue
		}
		parts := strings.Split(strings.TrimSuffix(strings.TrimPrefix(typ, "mw-"), "-ground"), "-")
		for _, p := range parts {
			switch {
			case p == "link":
				g.Link = true
			case strings.HasPrefix(p, "template"):
				g.Template = groundLevel(strings.TrimPrefix(p, "template"))
			case strings.HasPrefix(p, "ext"):
				g.Ext = groundLevel(strings.TrimPrefix(p, "ext"))
			}
		}
		break
	}
	return g
}

func groundLevel(suffix string) int {
	if suffix == "" {
		return 1
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 1
	}
	return n
}
