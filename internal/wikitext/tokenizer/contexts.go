package tokenizer

import "strings"

func (t *Tokenizer) comment(s *Stream, st *State, c Context) string {
	for !s.EOL() {
		if s.Match(c.Terminator, true) {
			st.pop()
			break
		}
		s.Next()
	}
	return st.local(c.Style)
}

// sectionHeader reads a heading's text. The closing run is left for a
// line-end context.
func (t *Tokenizer) sectionHeader(s *Stream, st *State, c Context) string {
	if s.EatWhile(except("&<[{~")) {
		if s.EOL() {
			s.BackUp(c.Count)
			st.Context = Context{Kind: CtxLineEnd, Style: "mw-section-header"}
		}
		return ""
	}
	return t.wikiText(s, st, "", "")
}

func (t *Tokenizer) variable(s *Stream, st *State) string {
	switch {
	case s.EatWhile(except("{}|")):
		return st.local("mw-templatevariable-name")
	case s.Eat('|'):
		st.Context = Context{Kind: CtxVariableDefault}
		return st.local("mw-templatevariable-delimiter")
	case s.Match("}}}", true):
		st.pop()
		return st.local("mw-templatevariable-bracket")
	case s.Match("{{{", true):
		st.reenter()
		return st.local("mw-templatevariable-bracket")
	}
	s.Next()
	return st.local("mw-templatevariable-name")
}

func (t *Tokenizer) variableDefault(s *Stream, st *State) string {
	if s.EatWhile(except("{}[<&~")) {
		return st.local("mw-templatevariable")
	}
	if s.Match("}}}", true) {
		st.pop()
		return st.local("mw-templatevariable-bracket")
	}
	return t.wikiText(s, st, "mw-templatevariable", "")
}

func (t *Tokenizer) parserFunctionName(s *Stream, st *State) string {
	if s.EatWhile(except(":}{~")) {
		return st.local("mw-parserfunction-name")
	}
	if s.Eat(':') {
		st.Context = Context{Kind: CtxParserFunctionArgs}
		return st.local("mw-parserfunction-delimiter")
	}
	if s.Match("}}", true) {
		st.pop()
		return st.localEnd("mw-parserfunction-bracket", extCounter)
	}
	return t.wikiText(s, st, "mw-parserfunction", "")
}

func (t *Tokenizer) parserFunctionArgs(s *Stream, st *State) string {
	switch {
	case s.EatWhile(except("|}{[<&~")):
		return st.local("mw-parserfunction")
	case s.Eat('|'):
		return st.local("mw-parserfunction-delimiter")
	case s.Match("}}", true):
		st.pop()
		return st.localEnd("mw-parserfunction-bracket", extCounter)
	}
	return t.wikiText(s, st, "mw-parserfunction", "")
}

func (t *Tokenizer) templateName(s *Stream, st *State, c Context) string {
	if s.matchPadded("|", true) {
		st.Context = Context{Kind: CtxTemplateArg, ArgName: true}
		return st.local("mw-template-delimiter")
	}
	if s.matchPadded("}}", false) {
		st.pop()
		return st.localEnd("mw-template-bracket", templateCounter)
	}
	if c.Ate && s.SOL() {
		// A page name cannot continue on the next line.
		st.decrement(templateCounter)
		st.pop()
		return ""
	}
	from := s.Pos()
	s.EatSpace()
	if s.EatWhile(exceptSpace("|}<{&~")) {
		st.Context = Context{Kind: CtxTemplateName, Ate: true}
		return st.local("mw-template-name mw-pagename")
	}
	s.SetPos(from)
	if s.EatSpace() {
		if s.EOL() {
			return st.local("mw-template-name")
		}
		return st.local("mw-template-name mw-pagename")
	}
	return t.wikiText(s, st, "mw-template-name mw-pagename", "mw-template-name-mnemonic mw-pagename")
}

func (t *Tokenizer) templateArg(s *Stream, st *State, c Context) string {
	if c.ArgName && s.EatWhile(except("=|}{[<&~")) {
		if s.Eat('=') {
			st.Context = Context{Kind: CtxTemplateArg}
			return st.local("mw-template-argument-name")
		}
		return st.local("mw-template")
	}
	switch {
	case s.EatWhile(except("|}{[<&~")):
		return st.local("mw-template")
	case s.Eat('|'):
		st.Context = Context{Kind: CtxTemplateArg, ArgName: true}
		return st.local("mw-template-delimiter")
	case s.Match("}}", true):
		st.pop()
		return st.localEnd("mw-template-bracket", templateCounter)
	}
	return t.wikiText(s, st, "mw-template", "")
}

func (t *Tokenizer) extLinkProtocol(s *Stream, st *State, c Context) string {
	s.SetPos(s.Pos() + c.Count)
	if s.EOL() {
		st.decrement(linkCounter)
		st.pop()
	} else {
		st.Context = Context{Kind: CtxExtLink}
	}
	return st.local("mw-extlink-protocol")
}

// unterminatedLink drops a link left open at the end of the previous line.
func unterminatedLink(st *State) string {
	st.decrement(linkCounter)
	st.pop()
	return ""
}

func (t *Tokenizer) extLink(s *Stream, st *State) string {
	if s.SOL() {
		return unterminatedLink(st)
	}
	if s.matchPadded("]", false) {
		st.pop()
		return st.localEnd("mw-extlink-bracket", linkCounter)
	}
	if s.EatSpace() {
		st.Context = Context{Kind: CtxExtLinkText}
		return st.styled("")
	}
	if s.EatWhile(exceptSpace("]{&~'")) || s.EatSpace() {
		if r, ok := s.Peek(); ok && r == '\'' {
			if s.Match("''", false) {
				st.Context = Context{Kind: CtxExtLinkText}
			} else {
				s.Next()
			}
		}
		return st.styled("mw-extlink")
	}
	return t.wikiText(s, st, "mw-extlink", "")
}

func (t *Tokenizer) extLinkText(s *Stream, st *State) string {
	if s.SOL() {
		return unterminatedLink(st)
	}
	if s.Eat(']') {
		st.pop()
		return st.localEnd("mw-extlink-bracket", linkCounter)
	}
	if s.EatWhile(except("']{&~")) {
		return st.styled("mw-extlink-text")
	}
	return t.wikiText(s, st, "mw-extlink-text", "")
}

func (t *Tokenizer) link(s *Stream, st *State) string {
	if s.SOL() {
		return unterminatedLink(st)
	}
	if s.matchPadded("#", true) {
		st.Context = Context{Kind: CtxLinkSection}
		return st.local("mw-link")
	}
	if s.matchPadded("|", true) {
		st.Context = Context{Kind: CtxLinkText}
		return st.local("mw-link-delimiter")
	}
	if s.matchPadded("]]", false) {
		st.pop()
		return st.localEnd("mw-link-bracket", linkCounter)
	}
	from := s.Pos()
	s.EatSpace()
	if s.EatWhile(exceptSpace("#|]&~{")) {
		return st.styled("mw-link-pagename mw-pagename")
	}
	s.SetPos(from)
	if s.EatSpace() {
		return st.styled("mw-link-pagename mw-pagename")
	}
	return t.wikiText(s, st, "mw-link-pagename mw-pagename", "mw-pagename")
}

func (t *Tokenizer) linkSection(s *Stream, st *State) string {
	if s.SOL() {
		return unterminatedLink(st)
	}
	switch {
	case s.EatWhile(except("|]&~{}")):
		return st.local("mw-link-tosection")
	case s.Eat('|'):
		st.Context = Context{Kind: CtxLinkText}
		return st.local("mw-link-delimiter")
	case s.Match("]]", true):
		st.pop()
		return st.localEnd("mw-link-bracket", linkCounter)
	}
	return t.wikiText(s, st, "mw-link-tosection", "")
}

func (t *Tokenizer) linkText(s *Stream, st *State, c Context) string {
	if s.Match("]]", true) {
		st.pop()
		return st.localEnd("mw-link-bracket", linkCounter)
	}
	if s.Match("'''", true) {
		st.Context.Bold = !c.Bold
		return st.local("mw-link-text mw-apostrophes")
	}
	if s.Match("''", true) {
		st.Context.Italic = !c.Italic
		return st.local("mw-link-text mw-apostrophes")
	}
	style := "mw-link-text"
	if c.Bold {
		style += " strong"
	}
	if c.Italic {
		style += " em"
	}
	if s.EatWhile(except("']{&~")) {
		return st.styled(style)
	}
	return t.wikiText(s, st, style, "")
}

// tagName reads the name of an HTML or extension tag whose '<' or '</'
// has been consumed.
func (t *Tokenizer) tagName(s *Stream, st *State, c Context) string {
	from := s.Pos()
	s.SetPos(from + c.Count)
	name := s.Line()[from:s.Pos()]

	if s.EOL() {
		st.pop()
		return "error"
	}
	s.EatSpace()
	if s.EOL() {
		st.pop()
		return "error"
	}

	if c.HTML {
		if c.Close && !voidHTMLTags[name] {
			st.Context = Context{Kind: CtxCloseChar, Char: '>', Style: "mw-htmltag-bracket"}
		} else {
			st.Context = Context{Kind: CtxHTMLTagAttr, Name: name}
		}
		return st.local("mw-htmltag-name")
	}
	if c.Close {
		st.Context = Context{Kind: CtxCloseChar, Char: '>', Style: "mw-exttag-bracket mw-ext-" + name}
	} else {
		st.Context = Context{Kind: CtxExtTagAttr, Name: name}
	}
	return st.local("mw-exttag-name mw-ext-" + name)
}

func (t *Tokenizer) htmlTagAttr(s *Stream, st *State, c Context) string {
	if s.EatWhile(except(">/<{&~")) {
		return st.local("mw-htmltag-attribute")
	}
	if s.Eat('>') {
		if !voidHTMLTags[c.Name] {
			st.InHTMLTag = append(st.InHTMLTag, c.Name)
		}
		st.pop()
		return st.local("mw-htmltag-bracket")
	}
	if s.Match("/>", true) {
		st.pop()
		return st.local("mw-htmltag-bracket")
	}
	return t.wikiText(s, st, "mw-htmltag-attribute", "")
}

func (t *Tokenizer) extTagAttr(s *Stream, st *State, c Context) string {
	if s.EatWhile(except(">/<{&~")) {
		return st.local("mw-exttag-attribute mw-ext-" + c.Name)
	}
	if s.Eat('>') {
		st.ExtName = c.Name
		if mode := t.modeFor(c.Name); mode != nil {
			st.ExtMode = mode
			st.ExtState = mode.StartSubState()
		}
		st.Context = Context{Kind: CtxExtTagBody, Name: c.Name}
		return st.local("mw-exttag-bracket mw-ext-" + c.Name)
	}
	if s.Match("/>", true) {
		st.pop()
		return st.local("mw-exttag-bracket mw-ext-" + c.Name)
	}
	return t.wikiText(s, st, "mw-exttag-attribute mw-ext-"+c.Name, "")
}

// extTagBody delegates the body of an extension tag up to its closing tag,
// or to the end of the line when the tag does not close on this line.
func (t *Tokenizer) extTagBody(s *Stream, st *State, c Context) string {
	idx := findCloseTag(s.rest(), c.Name)
	if idx == 0 {
		st.Context = Context{Kind: CtxExtCloseTag, Name: c.Name}
		st.leaveExtBody()
		return t.extCloseTag(s, st, st.Context)
	}
	body := Context{Kind: CtxExtTokens}
	if idx > 0 {
		body.Limited = true
		body.Restore = s.end
		s.limit(s.Pos() + idx)
	}
	st.push(body)
	return t.extTokens(s, st, body)
}

func (t *Tokenizer) extCloseTag(s *Stream, st *State, c Context) string {
	s.Next()
	s.Next()
	st.Context = Context{Kind: CtxTagName, Count: len(c.Name), Close: true}
	return st.local("mw-exttag-bracket mw-ext-" + c.Name)
}

func (t *Tokenizer) extTokens(s *Stream, st *State, c Context) string {
	ownLine := !c.Limited
	var style string
	if st.ExtMode == nil {
		if ownLine && s.SOL() {
			style = "line-cm-mw-exttag"
		} else {
			style = "mw-exttag"
		}
		s.SkipToEnd()
	} else {
		prefix := "mw-tag-"
		if ownLine && s.SOL() {
			prefix = "line-cm-mw-tag-"
		}
		style = prefix + st.ExtName + " " + st.ExtMode.SubToken(s, st.ExtState, ownLine)
	}
	if s.EOL() {
		if c.Limited {
			s.unlimit(c.Restore)
		}
		st.pop()
	}
	return st.local(style)
}

// findCloseTag returns the offset of the first '</name', optional space,
// '>' in text, or -1.
func findCloseTag(text, name string) int {
	open := "</" + name
	for from := 0; from <= len(text); {
		i := strings.Index(text[from:], open)
		if i < 0 {
			return -1
		}
		at := from + i
		rest := strings.TrimLeftFunc(text[at+len(open):], isSpace)
		if strings.HasPrefix(rest, ">") {
			return at
		}
		from = at + 1
	}
	return -1
}

func (t *Tokenizer) tableStart(s *Stream, st *State) string {
	s.Match("{|", true)
	s.EatSpace()
	st.Context = Context{Kind: CtxTableDefinition}
	return "mw-table-bracket"
}

func (t *Tokenizer) tableDefinition(s *Stream, st *State) string {
	if s.SOL() {
		st.Context = Context{Kind: CtxTable}
		return t.table(s, st)
	}
	return t.wikiText(s, st, "mw-table-definition", "")
}

// rowAhead reports whether optional space and '|' or '!' follow.
func rowAhead(s *Stream) bool {
	rest := strings.TrimLeftFunc(s.rest(), isSpace)
	return strings.HasPrefix(rest, "|") || strings.HasPrefix(rest, "!")
}

func (t *Tokenizer) tableCaption(s *Stream, st *State) string {
	if s.SOL() && rowAhead(s) {
		st.Context = Context{Kind: CtxTable}
		return t.table(s, st)
	}
	return t.wikiText(s, st, "mw-table-caption", "")
}

func (t *Tokenizer) table(s *Stream, st *State) string {
	if s.SOL() {
		s.EatSpace()
		if s.Eat('|') {
			switch {
			case s.Eat('-'):
				s.EatSpace()
				st.Context = Context{Kind: CtxTableDefinition}
				return st.local("mw-table-delimiter")
			case s.Eat('+'):
				s.EatSpace()
				st.Context = Context{Kind: CtxTableCaption}
				return st.local("mw-table-delimiter")
			case s.Eat('}'):
				st.pop()
				return st.local("mw-table-bracket")
			}
			s.EatSpace()
			st.Context = Context{Kind: CtxTableRow, Start: true}
			return st.local("mw-table-delimiter")
		}
		if s.Eat('!') {
			s.EatSpace()
			st.Context = Context{Kind: CtxTableRow, Start: true, Head: true}
			return st.local("mw-table-delimiter")
		}
	}
	return t.wikiText(s, st, "", "")
}

func (t *Tokenizer) tableRow(s *Stream, st *State, c Context) string {
	cell := ""
	if c.Head {
		cell = "strong"
	}
	if s.SOL() {
		if rowAhead(s) {
			st.Context = Context{Kind: CtxTable}
			return t.table(s, st)
		}
	} else {
		if s.EatWhile(except("'|{[<&~!")) {
			return st.styled(cell)
		}
		if s.Match("||", true) || (c.Head && s.Match("!!", true)) || (c.Start && s.Eat('|')) {
			st.bold = false
			st.italic = false
			if c.Start {
				st.Context = Context{Kind: CtxTableRow, Head: c.Head}
			}
			return st.local("mw-table-delimiter")
		}
	}
	return t.wikiText(s, st, cell, cell)
}

func (t *Tokenizer) freeLink(s *Stream, st *State) string {
	if !s.EOL() {
		s.EatWhile(exceptSpace("{[]<>~).,'"))
		r, ok := s.Peek()
		switch {
		case ok && r == '~':
			if s.count('~') < 3 {
				s.EatWhile(oneOf("~"))
				return st.local("mw-free-extlink")
			}
		case ok && r == '{':
			if !s.Match("{{", false) {
				s.Next()
				return st.local("mw-free-extlink")
			}
		case ok && r == '\'':
			if !s.Match("''", false) {
				s.Next()
				return st.local("mw-free-extlink")
			}
		default:
			if n := punctuationRun(s.rest()); n > 0 {
				s.SetPos(s.Pos() + n)
				return st.local("mw-free-extlink")
			}
		}
	}
	st.pop()
	return st.local("mw-free-extlink")
}

// punctuationRun returns the length of a run of ')', '.' and ',' that is
// followed by another link character, or 0.
func punctuationRun(rest string) int {
	n := 0
	for n < len(rest) && strings.IndexByte(").,", rest[n]) >= 0 {
		n++
	}
	if n == 0 || n >= len(rest) {
		return 0
	}
	r, _ := decodeRune(rest[n:])
	if isSpace(r) || strings.ContainsRune("{[]<>~).,", r) {
		return 0
	}
	return n
}
