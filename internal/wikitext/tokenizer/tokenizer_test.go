package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// span is a rendered run of text: adjacent tokens with the same classes
// merge, and line-level classes are dropped.
type span struct {
	Text  string
	Class string
}

func newTestTokenizer(t testing.TB) *Tokenizer {
	t.Helper()
	tk, err := New(DefaultConfig())
	require.NoError(t, err)
	return tk
}

func tokenizeDoc(tk *Tokenizer, doc string) [][]Token {
	st := tk.StartState()
	var out [][]Token
	for _, line := range strings.Split(doc, "\n") {
		out = append(out, tk.TokenizeLine(line, st))
	}
	return out
}

func tokenClass(style string) string {
	var kept []string
	for _, f := range strings.Fields(style) {
		if !strings.HasPrefix(f, "line-") {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

func renderSpans(tokens []Token) []span {
	var out []span
	for _, tok := range tokens {
		class := tokenClass(tok.Style)
		if n := len(out); n > 0 && out[n-1].Class == class {
			out[n-1].Text += tok.String
			continue
		}
		out = append(out, span{Text: tok.String, Class: class})
	}
	return out
}

func renderDoc(tk *Tokenizer, doc string) [][]span {
	var out [][]span
	for _, line := range tokenizeDoc(tk, doc) {
		out = append(out, renderSpans(line))
	}
	return out
}

func TestTokenizeHighlighting(t *testing.T) {
	const (
		tmplGround = "mw-template-ground "
		linkGround = "mw-link-ground "
		refBody    = "mw-tag-ref mw-template-ground "
	)
	tests := []struct {
		name string
		doc  string
		want [][]span
	}{
		{
			name: "p tags with extra closing tag",
			doc:  "this is <p><div>content</p></p>",
			want: [][]span{{
				{"this is ", ""},
				{"<", "mw-htmltag-bracket"},
				{"p", "mw-htmltag-name"},
				{"><", "mw-htmltag-bracket"},
				{"div", "mw-htmltag-name"},
				{">", "mw-htmltag-bracket"},
				{"content", ""},
				{"</p", "error"},
				{">", ""},
				{"</", "mw-htmltag-bracket"},
				{"p", "mw-htmltag-name"},
				{">", "mw-htmltag-bracket"},
			}},
		},
		{
			name: "indented table with caption and headings",
			doc:  " ::{| class=\"wikitable\"\n |+ Caption\n |-\n ! Uno !! Dos\n |-\n | Foo || Bar\n |}",
			want: [][]span{
				{{" ::", "mw-indenting"}, {"{| ", "mw-table-bracket"}, {"class=\"wikitable\"", "mw-table-definition"}},
				{{" |+ ", "mw-table-delimiter"}, {"Caption", "mw-table-caption"}},
				{{" |-", "mw-table-delimiter"}},
				{{" ! ", "mw-table-delimiter"}, {"Uno ", "strong"}, {"!!", "mw-table-delimiter"}, {" Dos", "strong"}},
				{{" |-", "mw-table-delimiter"}},
				{{" | ", "mw-table-delimiter"}, {"Foo ", ""}, {"||", "mw-table-delimiter"}, {" Bar", ""}},
				{{" |}", "mw-table-bracket"}},
			},
		},
		{
			name: "apostrophe before italic",
			doc:  "plain l'''italic''plain",
			want: [][]span{{
				{"plain l'", ""},
				{"''", "mw-apostrophes-italic"},
				{"italic", "em"},
				{"''", "mw-apostrophes-italic"},
				{"plain", ""},
			}},
		},
		{
			name: "free and bracketed external links",
			doc:  "https://wikimedia.org [ftp://foo.bar FOO] //archive.org",
			want: [][]span{{
				{"https://", "mw-free-extlink-protocol"},
				{"wikimedia.org", "mw-free-extlink"},
				{" ", ""},
				{"[", linkGround + "mw-extlink-bracket"},
				{"ftp://", linkGround + "mw-extlink-protocol"},
				{"foo.bar", linkGround + "mw-extlink"},
				{" ", "mw-link-ground"},
				{"FOO", linkGround + "mw-extlink-text"},
				{"]", linkGround + "mw-extlink-bracket"},
				{" //archive.org", ""},
			}},
		},
		{
			name: "void tags",
			doc:  "a<br>b</br>c a<div>b<br>c</div>d",
			want: [][]span{{
				{"a", ""},
				{"<", "mw-htmltag-bracket"},
				{"br", "mw-htmltag-name"},
				{">", "mw-htmltag-bracket"},
				{"b", ""},
				{"</br", "error"},
				{">c a", ""},
				{"<", "mw-htmltag-bracket"},
				{"div", "mw-htmltag-name"},
				{">", "mw-htmltag-bracket"},
				{"b", ""},
				{"<", "mw-htmltag-bracket"},
				{"br", "mw-htmltag-name"},
				{">", "mw-htmltag-bracket"},
				{"c", ""},
				{"</", "mw-htmltag-bracket"},
				{"div", "mw-htmltag-name"},
				{">", "mw-htmltag-bracket"},
				{"d", ""},
			}},
		},
		{
			name: "magic word",
			doc:  "__NOTOC__",
			want: [][]span{{{"__NOTOC__", "mw-doubleUnderscore"}}},
		},
		{
			name: "nowiki body is opaque",
			doc:  "<nowiki>{{foo}}<p> </div> {{{</nowiki>",
			want: [][]span{{
				{"<", "mw-exttag-bracket mw-ext-nowiki"},
				{"nowiki", "mw-exttag-name mw-ext-nowiki"},
				{">", "mw-exttag-bracket mw-ext-nowiki"},
				{"{{foo}}<p> </div> {{{", "mw-tag-nowiki mw-tag-nowiki"},
				{"</", "mw-exttag-bracket mw-ext-nowiki"},
				{"nowiki", "mw-exttag-name mw-ext-nowiki"},
				{">", "mw-exttag-bracket mw-ext-nowiki"},
			}},
		},
		{
			name: "ref body is wikitext",
			doc:  "<ref>{{cite web|2=foo}}}}</ref>",
			want: [][]span{{
				{"<", "mw-exttag-bracket mw-ext-ref"},
				{"ref", "mw-exttag-name mw-ext-ref"},
				{">", "mw-exttag-bracket mw-ext-ref"},
				{"{{", refBody + "mw-template-bracket"},
				{"cite web", refBody + "mw-template-name mw-pagename"},
				{"|", refBody + "mw-template-delimiter"},
				{"2=", refBody + "mw-template-argument-name"},
				{"foo", refBody + "mw-template"},
				{"}}", refBody + "mw-template-bracket"},
				{"}}", "mw-tag-ref"},
				{"</", "mw-exttag-bracket mw-ext-ref"},
				{"ref", "mw-exttag-name mw-ext-ref"},
				{">", "mw-exttag-bracket mw-ext-ref"},
			}},
		},
		{
			name: "template with parser function",
			doc:  "{{foo|{{#if:x|y}}}}",
			want: [][]span{{
				{"{{", tmplGround + "mw-template-bracket"},
				{"foo", tmplGround + "mw-template-name mw-pagename"},
				{"|", tmplGround + "mw-template-delimiter"},
				{"{{", "mw-template-ext-ground mw-parserfunction-bracket"},
				{"#if", "mw-template-ext-ground mw-parserfunction-name"},
				{":", "mw-template-ext-ground mw-parserfunction-delimiter"},
				{"x", "mw-template-ext-ground mw-parserfunction"},
				{"|", "mw-template-ext-ground mw-parserfunction-delimiter"},
				{"y", "mw-template-ext-ground mw-parserfunction"},
				{"}}", "mw-template-ext-ground mw-parserfunction-bracket"},
				{"}}", tmplGround + "mw-template-bracket"},
			}},
		},
		{
			name: "section headings",
			doc:  "== My section ==\nFoo bar\n=== Blah ===\nBaz",
			want: [][]span{
				{{"==", "mw-section-header"}, {" My section ", ""}, {"==", "mw-section-header"}},
				{{"Foo bar", ""}},
				{{"===", "mw-section-header"}, {" Blah ", ""}, {"===", "mw-section-header"}},
				{{"Baz", ""}},
			},
		},
		{
			name: "lists",
			doc:  "* bullet A\n* bullet B\n# one\n # two",
			want: [][]span{
				{{"*", "mw-list"}, {" bullet A", ""}},
				{{"*", "mw-list"}, {" bullet B", ""}},
				{{"#", "mw-list"}, {" one", ""}},
				{{" ", "mw-skipformatting"}, {"# two", ""}},
			},
		},
		{
			name: "link with bold text",
			doc:  "[[Link title|'''bold link''']]",
			want: [][]span{{
				{"[[", linkGround + "mw-link-bracket"},
				{"Link title", linkGround + "mw-link-pagename mw-pagename"},
				{"|", linkGround + "mw-link-delimiter"},
				{"'''", linkGround + "mw-link-text mw-apostrophes"},
				{"bold link", linkGround + "mw-link-text strong"},
				{"'''", linkGround + "mw-link-text mw-apostrophes"},
				{"]]", linkGround + "mw-link-bracket"},
			}},
		},
		{
			name: "horizontal rule",
			doc:  "One\n----\nTwo",
			want: [][]span{{{"One", ""}}, {{"----", "mw-hr"}}, {{"Two", ""}}},
		},
		{
			name: "comment",
			doc:  "<!-- comment -->",
			want: [][]span{{{"<!-- comment -->", "mw-comment"}}},
		},
		{
			name: "signatures",
			doc:  "my sig ~~~ ~~~~ ~~~~~~~",
			want: [][]span{{
				{"my sig ", ""},
				{"~~~", "mw-signature"},
				{" ", ""},
				{"~~~~", "mw-signature"},
				{" ", ""},
				{"~~~~~", "mw-signature"},
				{"~~", ""},
			}},
		},
	}

	tk := newTestTokenizer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderDoc(tk, tt.doc)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeSectionLineStyle(t *testing.T) {
	tk := newTestTokenizer(t)
	lines := tokenizeDoc(tk, "=== Blah ===")
	require.Len(t, lines, 1)
	require.NotEmpty(t, lines[0])
	if !lines[0][0].HasType("line-cm-mw-section-3") {
		t.Errorf("heading token style %q lacks the section line class", lines[0][0].Style)
	}
}

func TestTokenizeApostropheRollback(t *testing.T) {
	tk := newTestTokenizer(t)

	t.Run("no earlier candidate", func(t *testing.T) {
		got := renderDoc(tk, "a '''b c ''d")
		want := [][]span{{
			{"a '", ""},
			{"''", "mw-apostrophes-italic"},
			{"b c ", "em"},
			{"''", "mw-apostrophes-italic"},
			{"d", ""},
		}}
		assert.Equal(t, want, got)
	})

	t.Run("single letter word wins over multi letter word", func(t *testing.T) {
		got := renderDoc(tk, "xx'''a b'''c'''d''e")
		want := [][]span{{
			{"xx", ""},
			{"'''", "mw-apostrophes-bold"},
			{"a b'", "strong"},
			{"''", "mw-apostrophes-italic"},
			{"c", "strong em"},
			{"'''", "mw-apostrophes-bold"},
			{"d", "em"},
			{"''", "mw-apostrophes-italic"},
			{"e", ""},
		}}
		assert.Equal(t, want, got)
	})

	t.Run("balanced line is untouched", func(t *testing.T) {
		got := renderDoc(tk, "'''bold''' and ''italic''")
		want := [][]span{{
			{"'''", "mw-apostrophes-bold"},
			{"bold", "strong"},
			{"'''", "mw-apostrophes-bold"},
			{" and ", ""},
			{"''", "mw-apostrophes-italic"},
			{"italic", "em"},
			{"''", "mw-apostrophes-italic"},
		}}
		assert.Equal(t, want, got)
	})
}

func TestTokenizeUnterminatedTag(t *testing.T) {
	tk := newTestTokenizer(t)
	st := tk.StartState()

	require.NotPanics(t, func() {
		tk.TokenizeLine("<b", st)
		tk.TokenizeLine("<b>text", st)
		tk.TokenizeLine("</", st)
	})
	assert.Equal(t, CtxText, st.Context.Kind)
}

func TestTokenizeUnterminatedLinkResyncs(t *testing.T) {
	tk := newTestTokenizer(t)
	st := tk.StartState()

	tk.TokenizeLine("[[Broken link", st)
	assert.Equal(t, 1, st.NLink)

	tokens := tk.TokenizeLine("next line", st)
	assert.Equal(t, 0, st.NLink)
	for _, tok := range tokens {
		assert.True(t, tok.Ground().IsZero(), "token %q still grounded: %q", tok.String, tok.Style)
	}
}

func TestTokenizeMultilineExtension(t *testing.T) {
	tk := newTestTokenizer(t)
	st := tk.StartState()

	tk.TokenizeLine("<pre>", st)
	assert.Equal(t, "pre", st.ExtName)

	assert.Nil(t, tk.TokenizeLine("", st))
	assert.Equal(t, "line-cm-mw-tag-pre", tk.BlankLine(st))

	body := tk.TokenizeLine("{{not a template}}", st)
	require.Len(t, body, 1)
	assert.Equal(t, "line-cm-mw-tag-pre line-cm-mw-tag-pre", body[0].Style)
	assert.Equal(t, 0, st.NTemplate)

	closing := renderSpans(tk.TokenizeLine("end</pre> after", st))
	assert.Equal(t, []span{
		{"end", "mw-tag-pre mw-tag-pre"},
		{"</", "mw-exttag-bracket mw-ext-pre"},
		{"pre", "mw-exttag-name mw-ext-pre"},
		{">", "mw-exttag-bracket mw-ext-pre"},
		{" after", ""},
	}, closing)
	assert.Empty(t, st.ExtName)
	assert.Equal(t, "", tk.BlankLine(st))
}

func TestTokenizeNestedExtensionLimits(t *testing.T) {
	tk := newTestTokenizer(t)
	got := renderDoc(tk, "<ref><nowiki>[[x]]</nowiki></ref> tail")

	require.Len(t, got, 1)
	spans := got[0]
	last := spans[len(spans)-1]
	assert.Equal(t, span{" tail", ""}, last)

	var texts []string
	for _, sp := range spans {
		texts = append(texts, sp.Text)
	}
	assert.Equal(t, "<ref><nowiki>[[x]]</nowiki></ref> tail", strings.Join(texts, ""))
	for _, sp := range spans {
		assert.NotContains(t, sp.Class, "mw-link-bracket", "nowiki body was parsed as wikitext")
	}
}

func TestTokenizeGroundDepth(t *testing.T) {
	tk := newTestTokenizer(t)
	lines := tokenizeDoc(tk, "{{a|{{b|{{c|[[d]]}}}}}}")
	require.Len(t, lines, 1)

	var deepest Ground
	for _, tok := range lines[0] {
		g := tok.Ground()
		if g.Template > deepest.Template {
			deepest = g
		}
	}
	assert.Equal(t, 3, deepest.Template)

	for _, tok := range lines[0] {
		if tok.String == "d" {
			assert.Equal(t, Ground{Template: 3, Link: true}, tok.Ground())
		}
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.URLProtocols = nil
	_, err := New(cfg)
	require.ErrorIs(t, err, ErrInvalidConfig)

	assert.Panics(t, func() { MustNew(cfg) })
}

func TestExtensionTags(t *testing.T) {
	tk := newTestTokenizer(t)
	tags := tk.ExtensionTags()
	assert.Contains(t, tags, "ref")
	assert.Contains(t, tags, "nowiki")
	assert.IsIncreasing(t, tags)
}

var fragments = []string{
	"plain", " ", "x", "'''", "''", "'", "[[", "]]", "{{", "}}", "{{{", "}}}",
	"|", "#", "=", "<b>", "</b>", "<br>", "<ref>", "</ref>", "<nowiki>",
	"</nowiki>", "<pre>", "</pre>", "<!--", "-->", "==", "*", ":", "{|",
	"|}", "|-", "!", "!!", "http://x.org", "[http://y.org", "]", "&amp;",
	"&#12;", "__TOC__", "~~~", "#if:", "ä", " ",
}

func genDoc() *rapid.Generator[[]string] {
	line := rapid.Custom(func(t *rapid.T) string {
		parts := rapid.SliceOfN(rapid.SampledFrom(fragments), 0, 8).Draw(t, "parts")
		return strings.Join(parts, "")
	})
	return rapid.SliceOfN(line, 1, 6)
}

func TestTokenizeProperties(t *testing.T) {
	tk := newTestTokenizer(t)
	rapid.Check(t, func(t *rapid.T) {
		lines := genDoc().Draw(t, "doc")
		split := rapid.IntRange(0, len(lines)-1).Draw(t, "split")

		st := tk.StartState()
		var resumed *State
		full := make([][]Token, len(lines))
		for i, line := range lines {
			if i == split {
				resumed = tk.CopyState(st)
			}
			full[i] = tk.TokenizeLine(line, st)

			// Tokens are non-empty and tile the line.
			at := 0
			for _, tok := range full[i] {
				if tok.Start != at || tok.End <= tok.Start {
					t.Fatalf("line %d: token %+v does not continue at %d", i, tok, at)
				}
				if tok.String != line[tok.Start:tok.End] {
					t.Fatalf("line %d: token text %q != %q", i, tok.String, line[tok.Start:tok.End])
				}
				at = tok.End
			}
			if at != len(line) {
				t.Fatalf("line %d: tokens end at %d of %d", i, at, len(line))
			}
			if st.NTemplate < 0 || st.NExt < 0 || st.NLink < 0 {
				t.Fatalf("line %d: negative counters %d %d %d", i, st.NTemplate, st.NExt, st.NLink)
			}
		}

		// A copied state resumes exactly where the original left off.
		for i := split; i < len(lines); i++ {
			got := tk.TokenizeLine(lines[i], resumed)
			if len(got) != len(full[i]) {
				t.Fatalf("line %d: resumed %d tokens, want %d", i, len(got), len(full[i]))
			}
			for j := range got {
				if got[j] != full[i][j] {
					t.Fatalf("line %d token %d: resumed %+v, want %+v", i, j, got[j], full[i][j])
				}
			}
		}
	})
}
