package highlight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/wikistorm/internal/renderer/core"
	"github.com/dshills/wikistorm/internal/wikitext/tokenizer"
)

// Theme defines colors and styles for wikitext highlighting.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Background is the editor background color.
	Background core.Color

	// Foreground is the default text color.
	Foreground core.Color

	// Selection is the selection highlight color.
	Selection core.Color

	// Ground tints the background of template, parser function and link
	// bodies, more strongly the deeper they nest.
	Ground core.Color

	// Styles maps token style classes to their styles. Classes of a token
	// are applied in order.
	Styles map[string]core.Style
}

// StyleFor returns the style for a token style string such as
// "mw-link-pagename strong mw-template-ground".
func (t *Theme) StyleFor(style string) core.Style {
	out := core.NewStyle(t.Foreground)
	for _, class := range strings.Fields(style) {
		if strings.HasPrefix(class, "line-") {
			continue
		}
		if s, ok := t.Styles[class]; ok {
			out = out.Merge(s)
		}
	}
	if g := (tokenizer.Token{Style: style}).Ground(); !g.IsZero() {
		depth := g.Template + g.Ext
		if g.Link {
			depth++
		}
		out.Background = t.groundColor(depth)
	}
	return out
}

// StyleForToken returns the style for a token.
func (t *Theme) StyleForToken(tok tokenizer.Token) core.Style {
	return t.StyleFor(tok.Style)
}

func (t *Theme) groundColor(depth int) core.Color {
	amount := 0.12 * float64(min(depth, 3))
	return t.Background.Blend(t.Ground, amount)
}

// Apply overrides class foregrounds with "#rrggbb" colors. A value may
// carry attributes after the color: "#ff0000 bold italic".
func (t *Theme) Apply(colors map[string]string) error {
	classes := make([]string, 0, len(colors))
	for class := range colors {
		classes = append(classes, class)
	}
	sort.Strings(classes)

	for _, class := range classes {
		fields := strings.Fields(colors[class])
		if len(fields) == 0 {
			return fmt.Errorf("theme %s: empty style for %q", t.Name, class)
		}
		c, err := core.ColorFromHex(fields[0])
		if err != nil {
			return fmt.Errorf("theme %s: %q: %w", t.Name, class, err)
		}
		s := core.NewStyle(c)
		for _, attr := range fields[1:] {
			a, ok := attributeNames[attr]
			if !ok {
				return fmt.Errorf("theme %s: %q: unknown attribute %q", t.Name, class, attr)
			}
			s = s.With(a)
		}
		if t.Styles == nil {
			t.Styles = make(map[string]core.Style)
		}
		t.Styles[class] = s
	}
	return nil
}

var attributeNames = map[string]core.Attribute{
	"bold":          core.AttrBold,
	"dim":           core.AttrDim,
	"italic":        core.AttrItalic,
	"underline":     core.AttrUnderline,
	"reverse":       core.AttrReverse,
	"strikethrough": core.AttrStrikethrough,
}

// Clone returns a deep copy of the theme.
func (t *Theme) Clone() *Theme {
	c := *t
	c.Styles = make(map[string]core.Style, len(t.Styles))
	for k, v := range t.Styles {
		c.Styles[k] = v
	}
	return &c
}

// ThemeByName returns a built-in theme. Names are case-insensitive.
func ThemeByName(name string) (*Theme, bool) {
	switch strings.ToLower(name) {
	case "", "dark", "default":
		return DefaultTheme(), true
	case "light":
		return LightTheme(), true
	default:
		return nil, false
	}
}

// DefaultTheme returns a sensible default dark theme.
func DefaultTheme() *Theme {
	return &Theme{
		Name:       "dark",
		Background: core.ColorFromRGB(30, 30, 30),
		Foreground: core.ColorFromRGB(212, 212, 212),
		Selection:  core.ColorFromRGB(64, 64, 128),
		Ground:     core.ColorFromRGB(120, 120, 200),
		Styles: wikiStyles(palette{
			bracket:  core.ColorFromRGB(86, 156, 214),
			name:     core.ColorFromRGB(78, 201, 176),
			link:     core.ColorFromRGB(156, 220, 254),
			tag:      core.ColorFromRGB(197, 134, 192),
			comment:  core.ColorFromRGB(106, 153, 85),
			header:   core.ColorFromRGB(220, 220, 170),
			markup:   core.ColorFromRGB(206, 145, 120),
			mnemonic: core.ColorFromRGB(181, 206, 168),
			invalid:  core.ColorFromRGB(244, 71, 71),
		}),
	}
}

// LightTheme returns a light theme.
func LightTheme() *Theme {
	return &Theme{
		Name:       "light",
		Background: core.ColorFromRGB(255, 255, 255),
		Foreground: core.ColorFromRGB(0, 0, 0),
		Selection:  core.ColorFromRGB(173, 214, 255),
		Ground:     core.ColorFromRGB(90, 90, 200),
		Styles: wikiStyles(palette{
			bracket:  core.ColorFromRGB(0, 0, 255),
			name:     core.ColorFromRGB(38, 127, 153),
			link:     core.ColorFromRGB(0, 102, 204),
			tag:      core.ColorFromRGB(128, 0, 128),
			comment:  core.ColorFromRGB(0, 128, 0),
			header:   core.ColorFromRGB(121, 94, 38),
			markup:   core.ColorFromRGB(163, 21, 21),
			mnemonic: core.ColorFromRGB(9, 134, 88),
			invalid:  core.ColorFromRGB(205, 49, 49),
		}),
	}
}

type palette struct {
	bracket, name, link, tag, comment, header, markup, mnemonic, invalid core.Color
}

func wikiStyles(p palette) map[string]core.Style {
	plain := core.DefaultStyle()
	return map[string]core.Style{
		"strong":        plain.With(core.AttrBold),
		"em":            plain.With(core.AttrItalic),
		"strikethrough": plain.With(core.AttrStrikethrough),
		"error":         core.NewStyle(p.invalid).With(core.AttrUnderline),

		"mw-apostrophes-bold":   core.NewStyle(p.markup),
		"mw-apostrophes-italic": core.NewStyle(p.markup),
		"mw-section-header":     core.NewStyle(p.header).With(core.AttrBold),
		"mw-hr":                 core.NewStyle(p.markup),
		"mw-list":               core.NewStyle(p.markup),
		"mw-indenting":          core.NewStyle(p.markup),
		"mw-signature":          core.NewStyle(p.markup),
		"mw-doubleUnderscore":   core.NewStyle(p.markup).With(core.AttrBold),
		"mw-skipformatting":     core.NewStyle(p.comment),
		"mw-mnemonic":           core.NewStyle(p.mnemonic),
		"mw-comment":            core.NewStyle(p.comment).With(core.AttrItalic),

		"mw-link-bracket":    core.NewStyle(p.bracket),
		"mw-link-delimiter":  core.NewStyle(p.bracket),
		"mw-link-pagename":   core.NewStyle(p.link).With(core.AttrUnderline),
		"mw-link-tosection":  core.NewStyle(p.link),
		"mw-link-text":       core.NewStyle(p.link),
		"mw-extlink-bracket": core.NewStyle(p.bracket),
		"mw-extlink":         core.NewStyle(p.link).With(core.AttrUnderline),
		"mw-extlink-text":    core.NewStyle(p.link),
		"mw-free-extlink":    core.NewStyle(p.link).With(core.AttrUnderline),

		"mw-template-bracket":           core.NewStyle(p.bracket),
		"mw-template-delimiter":         core.NewStyle(p.bracket),
		"mw-template-name":              core.NewStyle(p.name),
		"mw-template-argument-name":     core.NewStyle(p.name).With(core.AttrItalic),
		"mw-templatevariable-bracket":   core.NewStyle(p.bracket),
		"mw-templatevariable-delimiter": core.NewStyle(p.bracket),
		"mw-templatevariable-name":      core.NewStyle(p.name),
		"mw-parserfunction-bracket":     core.NewStyle(p.bracket),
		"mw-parserfunction-delimiter":   core.NewStyle(p.bracket),
		"mw-parserfunction-name":        core.NewStyle(p.name).With(core.AttrBold),

		"mw-htmltag-bracket":   core.NewStyle(p.tag),
		"mw-htmltag-name":      core.NewStyle(p.tag).With(core.AttrBold),
		"mw-htmltag-attribute": core.NewStyle(p.tag),
		"mw-exttag-bracket":    core.NewStyle(p.tag),
		"mw-exttag-name":       core.NewStyle(p.tag).With(core.AttrBold),
		"mw-exttag-attribute":  core.NewStyle(p.tag),
		"mw-exttag":            core.NewStyle(p.comment),
		"mw-tag-pre":           core.NewStyle(p.comment),
		"mw-tag-nowiki":        core.NewStyle(p.comment),

		"mw-table-bracket":    core.NewStyle(p.bracket).With(core.AttrBold),
		"mw-table-delimiter":  core.NewStyle(p.bracket),
		"mw-table-definition": core.NewStyle(p.tag),
		"mw-table-caption":    plain.With(core.AttrBold),
	}
}
