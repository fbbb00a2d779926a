package tokenizer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/dshills/wikistorm/internal/logging"
)

// maxStalls is how many times a handler may return without consuming
// input before the tokenizer forces progress.
const maxStalls = 10

// Tokenizer is the wikitext highlighting mode bound to one configuration.
// It holds no per-document state and may be shared by documents that are
// tokenized one at a time.
type Tokenizer struct {
	lex   *lexicon
	modes map[string]SubMode
	log   logrus.FieldLogger
}

// Option configures a Tokenizer during creation.
type Option func(*Tokenizer)

// WithLogger sets the logger used for configuration diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Tokenizer) {
		if l != nil {
			t.log = l
		}
	}
}

// WithSubMode registers m under name so that tag modes can refer to it.
func WithSubMode(name string, m SubMode) Option {
	return func(t *Tokenizer) {
		if name != "" && m != nil {
			t.modes[name] = m
		}
	}
}

// New creates a tokenizer for cfg.
func New(cfg Config, opts ...Option) (*Tokenizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Tokenizer{
		lex: newLexicon(cfg),
		modes: map[string]SubMode{
			ModePre:    newRawMode(ModePre),
			ModeNowiki: newRawMode(ModeNowiki),
		},
		log: logging.Discard(),
	}
	t.modes[ModeMediaWiki] = t
	for _, opt := range opts {
		opt(t)
	}
	t.log = logging.WithComponent(t.log, "tokenizer")

	for tag, mode := range t.lex.tagModes {
		if _, ok := t.modes[mode]; !ok {
			t.log.WithFields(logrus.Fields{"tag": tag, "mode": mode}).
				Warn("unknown tag mode, body will be highlighted as opaque text")
		}
	}
	t.log.WithField("tags", len(t.lex.tags)).Debug("tokenizer ready")
	return t, nil
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(cfg Config, opts ...Option) *Tokenizer {
	t, err := New(cfg, opts...)
	if err != nil {
		panic(fmt.Sprintf("tokenizer: %v", err))
	}
	return t
}

// ExtensionTags returns the configured extension tag names, sorted.
func (t *Tokenizer) ExtensionTags() []string {
	return t.lex.extTags()
}

// StartState returns the state for the first line of a document.
func (t *Tokenizer) StartState() *State {
	return &State{Context: textContext("", "")}
}

// CopyState returns a deep copy of st.
func (t *Tokenizer) CopyState(st *State) *State {
	return st.Copy()
}

// BlankLine returns the line style for an empty line and is called in
// place of Token for such lines.
func (t *Tokenizer) BlankLine(st *State) string {
	if st.ExtName == "" {
		return ""
	}
	if st.ExtMode == nil {
		return "line-cm-mw-exttag"
	}
	style := "line-cm-mw-tag-" + st.ExtName
	if blank := st.ExtMode.SubBlankLine(st.ExtState); blank != "" {
		style += " " + blank
	}
	return style
}

// TokenizeLine tokenizes a whole line, advancing st to the state for the
// next line. An empty line yields no tokens.
func (t *Tokenizer) TokenizeLine(line string, st *State) []Token {
	if line == "" {
		t.BlankLine(st)
		return nil
	}
	s := NewStream(line)
	var tokens []Token
	for !s.EOL() {
		s.MarkStart()
		style := t.Token(s, st)
		tokens = append(tokens, Token{
			Start:  s.Start(),
			End:    s.Pos(),
			String: s.Current(),
			Style:  style,
		})
	}
	return tokens
}

// Token reads one token from s and returns its style. The stream always
// advances unless it is already at the end of the line.
//
// Once an apostrophe run sets a rollback candidate, the rest of the line is
// read ahead. If bold and italic are both open at the end of the line, the
// state is restored to the winning candidate and one apostrophe is emitted
// as plain text; otherwise the read-ahead tokens are emitted as they are.
func (t *Tokenizer) Token(s *Stream, st *State) string {
	if len(st.pending) > 0 {
		return st.emitPending(s)
	}
	if s.SOL() {
		st.resetLine()
	}

	var ready, scratch []pendingToken
	mark := 0
	for {
		style := t.readToken(s, st)
		f := st.candidate()
		if f == 0 {
			st.lastStyle = style
			return style
		}
		if f != mark {
			mark = f
			ready = append(ready, scratch...)
			scratch = nil
		}
		scratch = append(scratch, pendingToken{end: s.Pos(), style: style})
		if s.EOL() {
			break
		}
	}

	if st.bold && st.italic && st.snapshot != nil {
		restored := st.snapshot.Copy()
		*st = *restored
		st.resetCandidates()
		if len(ready) == 0 {
			s.SetPos(scratch[0].end - 2)
			return st.lastStyle
		}
		ready[len(ready)-1].end++
		st.pending = ready
	} else {
		st.pending = append(ready, scratch...)
	}
	return st.emitPending(s)
}

func (st *State) emitPending(s *Stream) string {
	p := st.pending[0]
	st.pending = st.pending[1:]
	if len(st.pending) == 0 {
		st.pending = nil
	}
	s.SetPos(p.end)
	return p.style
}

// readToken runs the active context until the stream advances.
func (t *Tokenizer) readToken(s *Stream, st *State) string {
	start := s.Pos()
	var style string
	for i := 0; i < maxStalls; i++ {
		style = t.dispatch(s, st)
		if s.Pos() > start {
			return style
		}
	}
	if s.Pos() < start {
		s.SetPos(start)
	}
	if s.EOL() {
		return style
	}
	s.Next()
	return "error"
}

func (t *Tokenizer) dispatch(s *Stream, st *State) string {
	c := st.Context
	switch c.Kind {
	case CtxText:
		return t.wikiText(s, st, c.Style, c.Mnemonic)
	case CtxComment:
		return t.comment(s, st, c)
	case CtxLineEnd:
		s.SkipToEnd()
		st.pop()
		return st.local(c.Style)
	case CtxCloseChar:
		st.pop()
		if s.Eat(c.Char) {
			return st.local(c.Style)
		}
		return st.local("error")
	case CtxSectionHeader:
		return t.sectionHeader(s, st, c)
	case CtxVariable:
		return t.variable(s, st)
	case CtxVariableDefault:
		return t.variableDefault(s, st)
	case CtxParserFunctionName:
		return t.parserFunctionName(s, st)
	case CtxParserFunctionArgs:
		return t.parserFunctionArgs(s, st)
	case CtxTemplateName:
		return t.templateName(s, st, c)
	case CtxTemplateArg:
		return t.templateArg(s, st, c)
	case CtxExtLinkProtocol:
		return t.extLinkProtocol(s, st, c)
	case CtxExtLink:
		return t.extLink(s, st)
	case CtxExtLinkText:
		return t.extLinkText(s, st)
	case CtxLink:
		return t.link(s, st)
	case CtxLinkSection:
		return t.linkSection(s, st)
	case CtxLinkText:
		return t.linkText(s, st, c)
	case CtxTagName:
		return t.tagName(s, st, c)
	case CtxHTMLTagAttr:
		return t.htmlTagAttr(s, st, c)
	case CtxExtTagAttr:
		return t.extTagAttr(s, st, c)
	case CtxExtTagBody:
		return t.extTagBody(s, st, c)
	case CtxExtCloseTag:
		return t.extCloseTag(s, st, c)
	case CtxExtTokens:
		return t.extTokens(s, st, c)
	case CtxTableStart:
		return t.tableStart(s, st)
	case CtxTableDefinition:
		return t.tableDefinition(s, st)
	case CtxTableCaption:
		return t.tableCaption(s, st)
	case CtxTable:
		return t.table(s, st)
	case CtxTableRow:
		return t.tableRow(s, st, c)
	case CtxFreeLinkProtocol:
		t.lex.protocolAt(s, true)
		st.Context = Context{Kind: CtxFreeLink}
		return st.local("mw-free-extlink-protocol")
	case CtxFreeLink:
		return t.freeLink(s, st)
	default:
		st.pop()
		return ""
	}
}

// modeFor returns the sub-mode registered for an extension tag.
func (t *Tokenizer) modeFor(name string) SubMode {
	mode, ok := t.lex.tagModes[name]
	if !ok {
		return nil
	}
	return t.modes[mode]
}

// prepareItalicForCorrection records a rollback candidate for the bold
// toggle just read. The stream is positioned after the three apostrophes.
// Single-letter words take priority over multi-letter words, which take
// priority over a preceding space.
func prepareItalicForCorrection(s *Stream, st *State) {
	end := s.Pos()
	before := ""
	if end >= 3 {
		before = s.Line()[:end-3]
	}
	x1, x2 := lastTwoRunes(before)

	switch {
	case x1 == ' ':
		if st.multi != 0 || st.space != 0 {
			return
		}
		st.space = end
	case x2 == ' ':
		st.single = end
	case st.multi != 0:
		return
	default:
		st.multi = end
	}
	st.saveSnapshot()
}

// lastTwoRunes returns the last rune of str and the one before it. A one
// rune string yields that rune twice; an empty string yields zeros.
func lastTwoRunes(str string) (last, prev rune) {
	runes := []rune(str)
	switch n := len(runes); n {
	case 0:
		return 0, 0
	case 1:
		return runes[0], runes[0]
	default:
		return runes[n-1], runes[n-2]
	}
}
