package tokenizer

import (
	"strconv"
	"strings"
)

var permittedHTMLTags = map[string]bool{
	"b": true, "bdi": true, "del": true, "i": true, "ins": true, "u": true,
	"font": true, "big": true, "small": true, "sub": true, "sup": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"cite": true, "code": true, "em": true, "s": true, "strike": true,
	"strong": true, "tt": true, "var": true, "div": true, "center": true,
	"blockquote": true, "ol": true, "ul": true, "dl": true, "table": true,
	"caption": true, "pre": true, "ruby": true, "rb": true, "rp": true,
	"rt": true, "rtc": true, "p": true, "span": true, "abbr": true,
	"dfn": true, "kbd": true, "samp": true, "data": true, "time": true,
	"mark": true, "br": true, "wbr": true, "hr": true, "li": true, "dt": true,
	"dd": true, "td": true, "th": true, "tr": true, "noinclude": true,
	"includeonly": true, "onlyinclude": true, "translate": true,
}

var voidHTMLTags = map[string]bool{"br": true, "hr": true, "wbr": true}

// IsHTMLTag reports whether name is an HTML tag allowed in wikitext.
func IsHTMLTag(name string) bool {
	return permittedHTMLTags[strings.ToLower(name)]
}

// IsVoidTag reports whether name is an HTML tag that takes no closing tag.
func IsVoidTag(name string) bool {
	return voidHTMLTags[strings.ToLower(name)]
}

// eatMnemonic reads a character reference after '&'. It returns
// mnemonicStyle marked mw-mnemonic when the reference is well formed and
// style otherwise.
func eatMnemonic(s *Stream, style, mnemonicStyle string) string {
	var ok bool
	if s.Eat('#') {
		if s.Eat('x') {
			ok = s.EatWhile(isHexDigit) && s.Eat(';')
		} else {
			ok = s.EatWhile(isDigit) && s.Eat(';')
		}
	} else {
		ok = s.EatWhile(func(r rune) bool {
			return isWordRune(r) || r == '.' || r == '-' || r == ':'
		}) && s.Eat(';')
	}
	if ok {
		return mnemonicStyle + " mw-mnemonic"
	}
	return style
}

func isTagNameRune(r rune) bool {
	return !isSpace(r) && !strings.ContainsRune(">/.*,[]{}$^+?|\\'`~<=!@#%&()-", r)
}

// wikiText handles plain text and is the fallback of every other context.
// style and mnemonicStyle are the styles of plain runs and character
// references in the calling context.
func (t *Tokenizer) wikiText(s *Stream, st *State, style, mnemonicStyle string) string {
	var ch rune
	if s.SOL() {
		if !s.Match("//", false) && t.lex.protocolAt(s, true) > 0 {
			st.push(Context{Kind: CtxFreeLink})
			return st.local("mw-free-extlink-protocol")
		}
		ch = s.Next()
		switch ch {
		case '-':
			if s.Match("---", true) {
				s.EatWhile(oneOf("-"))
				return "mw-hr"
			}
		case '=':
			if level, count, ok := matchSectionHeader(s); ok {
				st.push(Context{Kind: CtxSectionHeader, Count: count})
				return "mw-section-header line-cm-mw-section-" + strconv.Itoa(level)
			}
		case '*', '#':
			s.EatWhile(oneOf("*#"))
			s.EatWhile(oneOf(":"))
			return "mw-list"
		case ':':
			if tableAfterIndent(s, false) {
				st.push(Context{Kind: CtxTableStart})
			}
			s.EatWhile(oneOf(":"))
			s.EatWhile(oneOf("*#"))
			return "mw-indenting"
		case ' ', '{':
			if ch == ' ' {
				if !tableAfterIndent(s, true) {
					return "mw-skipformatting"
				}
				s.EatSpace()
				if s.EatWhile(oneOf(":")) {
					st.push(Context{Kind: CtxTableStart})
					return "mw-indenting"
				}
				s.Eat('{')
			}
			if s.Eat('|') {
				s.EatSpace()
				st.push(Context{Kind: CtxTableDefinition})
				return "mw-table-bracket"
			}
		}
	} else {
		ch = s.Next()
	}

	switch ch {
	case '&':
		return st.styled(eatMnemonic(s, style, mnemonicStyle))
	case '\'':
		if ret, ok := t.apostrophes(s, st); ok {
			return ret
		}
	case '[':
		if s.Eat('[') {
			s.EatSpace()
			if r, ok := s.Peek(); !ok || !strings.ContainsRune("]|[", r) {
				st.NLink++
				st.push(Context{Kind: CtxLink})
				return st.local("mw-link-bracket")
			}
		} else if n := t.lex.protocolAt(s, false); n > 0 {
			st.NLink++
			st.push(Context{Kind: CtxExtLinkProtocol, Count: n})
			return st.local("mw-extlink-bracket")
		}
	case '{':
		if !s.Match("{{{{", false) && s.Match("{{", true) {
			s.EatSpace()
			st.push(Context{Kind: CtxVariable})
			return st.local("mw-templatevariable-bracket")
		}
		if s.Eat('{') {
			s.EatSpace()
			if r, ok := s.Peek(); (ok && r == '#') || t.parserFunctionAhead(s) {
				st.NExt++
				st.push(Context{Kind: CtxParserFunctionName})
				return st.local("mw-parserfunction-bracket")
			}
			st.NTemplate++
			st.push(Context{Kind: CtxTemplateName})
			return st.local("mw-template-bracket")
		}
	case '<':
		if ret, ok := t.tagOpen(s, st); ok {
			return ret
		}
	case '~':
		if n := s.count('~'); n >= 2 {
			s.SetPos(s.Pos() + min(n, 4))
			return "mw-signature"
		}
	case '_':
		n := 1
		for s.Eat('_') {
			n++
		}
		if n > 2 {
			if !s.EOL() {
				s.BackUp(2)
			}
			return st.styled(style)
		}
		if n == 2 {
			if end, ok := magicWordEnd(s.rest()); ok {
				word := "__" + s.rest()[:end]
				s.SetPos(s.Pos() + end)
				if t.lex.isDoubleUnderscore(word) {
					return "mw-doubleUnderscore"
				}
				if !s.EOL() {
					s.BackUp(2)
				}
				return st.styled(style)
			}
		}
	default:
		if isSpace(ch) {
			s.EatSpace()
			if t.lex.protocolAt(s, false) > 0 && !s.Match("//", true) {
				st.push(Context{Kind: CtxFreeLinkProtocol})
				return st.styled(style)
			}
		}
	}
	s.EatWhile(exceptSpace("_>}[]<{'|&:~"))
	return st.styled(style)
}

// apostrophes handles a run starting with the apostrophe just read. It
// reports false when the run is plain text.
func (t *Tokenizer) apostrophes(s *Stream, st *State) (string, bool) {
	switch n := s.count('\''); {
	case n >= 5:
		// Only the last five count.
		s.SetPos(s.Pos() + n - 5)
		return "", false
	case n == 3:
		// Four in a row: the first is text.
		return "", false
	}
	if s.Match("''", true) {
		if st.single == 0 && !s.Match("''", false) {
			prepareItalicForCorrection(s, st)
		}
		st.bold = !st.bold
		return st.local("mw-apostrophes-bold"), true
	}
	if s.Eat('\'') {
		st.italic = !st.italic
		return st.local("mw-apostrophes-italic"), true
	}
	return "", false
}

// tagOpen handles '<'. It reports false when the text is not a tag.
func (t *Tokenizer) tagOpen(s *Stream, st *State) (string, bool) {
	isClose := s.Eat('/')
	from := s.Pos()
	s.EatWhile(isTagNameRune)
	tagname := s.Line()[from:s.Pos()]

	if s.Match("!--", true) {
		st.push(Context{Kind: CtxComment, Style: "mw-comment", Terminator: "-->"})
		return t.comment(s, st, st.Context), true
	}
	if tagname == "" {
		return "", false
	}

	name := strings.ToLower(tagname)
	if t.lex.isExtTag(name) {
		if isClose {
			return "error", true
		}
		s.BackUp(len(tagname))
		st.push(Context{Kind: CtxTagName, Count: len(tagname)})
		return st.local("mw-exttag-bracket mw-ext-" + name), true
	}
	if permittedHTMLTags[name] {
		if isClose && name != st.popHTMLTag() {
			return "error", true
		}
		if isClose && voidHTMLTags[name] {
			return "error", true
		}
		s.BackUp(len(tagname))
		// An opening void tag is its own closing tag.
		st.push(Context{
			Kind:  CtxTagName,
			Count: len(tagname),
			Close: isClose || voidHTMLTags[name],
			HTML:  true,
		})
		return st.local("mw-htmltag-bracket"), true
	}
	s.BackUp(len(tagname))
	return "", false
}

// parserFunctionAhead reports whether a '{{' without '#' starts a parser
// function: a known name followed by ':', by the closing braces, or by the
// end of the line. Nothing is consumed.
func (t *Tokenizer) parserFunctionAhead(s *Stream) bool {
	rest := s.rest()
	i := 0
	for i < len(rest) {
		r, size := decodeRune(rest[i:])
		if isSpace(r) || strings.ContainsRune("}[]<{'|&:", r) {
			break
		}
		i += size
	}
	if i == 0 {
		return false
	}
	name := rest[:i]

	j := i
	colon := false
	if j < len(rest) && rest[j] == ':' {
		colon = true
		j++
	} else {
		for j < len(rest) {
			r, size := decodeRune(rest[j:])
			if !isSpace(r) {
				break
			}
			j += size
		}
	}
	closing := ""
	switch {
	case strings.HasPrefix(rest[j:], "}}"):
		closing = "}}"
	case strings.HasPrefix(rest[j:], "}"):
		closing = "}"
	}
	j += len(closing)
	atEnd := j >= len(rest)

	if !colon && !atEnd && closing != "}}" {
		return false
	}
	return t.lex.isFunctionSynonym(name)
}

// matchSectionHeader matches the rest of a '=' heading line after the first
// '='. It consumes the remaining opening run and returns the heading level
// and the length of the closing run including trailing space.
func matchSectionHeader(s *Stream) (level, count int, ok bool) {
	rest := s.rest()
	lead := 0
	for lead < len(rest) && lead < 5 && rest[lead] == '=' {
		lead++
	}
	trimmed := len(strings.TrimRightFunc(rest, isSpace))
	for k := lead; k >= 0; k-- {
		closeStart := trimmed - (k + 1)
		if closeStart-k < 1 {
			continue
		}
		if strings.Trim(rest[closeStart:trimmed], "=") != "" {
			continue
		}
		s.SetPos(s.Pos() + k)
		return k + 1, len(rest) - closeStart, true
	}
	return 0, 0, false
}

// tableAfterIndent reports whether optional space (when allowSpace is
// set), colons and '{|' follow. Nothing is consumed.
func tableAfterIndent(s *Stream, allowSpace bool) bool {
	pos := s.Pos()
	defer s.SetPos(pos)
	if allowSpace {
		s.EatSpace()
	}
	s.EatWhile(oneOf(":"))
	return s.Match("{|", false)
}

// magicWordEnd finds the shortest 'name__' at the start of rest, where name
// is at least one rune with no space or markup character. It returns the
// length including the trailing underscores.
func magicWordEnd(rest string) (int, bool) {
	i := 0
	for i < len(rest) {
		if i >= 1 && strings.HasPrefix(rest[i:], "__") {
			return i + 2, true
		}
		r, size := decodeRune(rest[i:])
		if isSpace(r) || strings.ContainsRune(">}[]<{'|&:~", r) {
			return 0, false
		}
		i += size
	}
	return 0, false
}
