package tokenizer

// SubState is the state of a sub-mode.
type SubState interface {
	CopySubState() SubState
}

// SubMode tokenizes the body of an extension tag.
type SubMode interface {
	StartSubState() SubState
	// SubToken reads one token. ownLine is false when the body ends on the
	// current line.
	SubToken(s *Stream, st SubState, ownLine bool) string
	SubBlankLine(st SubState) string
}

// rawMode highlights an extension body as literal text, recognizing only
// character references.
type rawMode struct {
	style     string
	lineStyle string
}

type rawState struct {
	ownLine bool
}

func (r *rawState) CopySubState() SubState {
	c := *r
	return &c
}

func newRawMode(name string) *rawMode {
	return &rawMode{style: name, lineStyle: "line-cm-" + name}
}

func (m *rawMode) StartSubState() SubState { return &rawState{} }

func (m *rawMode) SubToken(s *Stream, st SubState, ownLine bool) string {
	rs, ok := st.(*rawState)
	if !ok {
		rs = &rawState{}
	}
	if ownLine && s.SOL() {
		rs.ownLine = true
	} else if !ownLine && rs.ownLine {
		rs.ownLine = false
	}
	style := m.style
	if rs.ownLine {
		style = m.lineStyle
	}
	if s.EatWhile(except("&")) {
		return style
	}
	s.Next()
	return eatMnemonic(s, style, style)
}

func (m *rawMode) SubBlankLine(SubState) string { return "" }

// The tokenizer serves as the sub-mode of tags whose body is wikitext.

func (t *Tokenizer) StartSubState() SubState { return t.StartState() }

func (t *Tokenizer) SubToken(s *Stream, st SubState, _ bool) string {
	inner, ok := st.(*State)
	if !ok {
		s.SkipToEnd()
		return "error"
	}
	return t.Token(s, inner)
}

func (t *Tokenizer) SubBlankLine(st SubState) string {
	inner, ok := st.(*State)
	if !ok {
		return ""
	}
	return t.BlankLine(inner)
}
