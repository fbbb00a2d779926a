package tokenizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Stream is a cursor over one line of text.
//
// Positions are byte offsets. A stream may be temporarily limited to a
// prefix of the line; EOL, SkipToEnd and the matchers then treat the limit
// as the end of the line.
type Stream struct {
	str   string
	pos   int
	start int
	end   int
}

// NewStream creates a stream positioned at the start of line.
func NewStream(line string) *Stream {
	return &Stream{str: line, end: len(line)}
}

// Line returns the full line the stream reads from.
func (s *Stream) Line() string { return s.str }

// Pos returns the current offset.
func (s *Stream) Pos() int { return s.pos }

// Start returns the offset where the current token began.
func (s *Stream) Start() int { return s.start }

// SetPos moves the stream to offset pos, clamped to the readable view.
func (s *Stream) SetPos(pos int) {
	if pos < 0 {
		pos = 0
	}
	if pos > s.end {
		pos = s.end
	}
	s.pos = pos
}

// MarkStart records the current offset as the start of the next token.
func (s *Stream) MarkStart() { s.start = s.pos }

// Current returns the text of the current token.
func (s *Stream) Current() string { return s.str[s.start:s.pos] }

// SOL reports whether the stream is at the start of the line.
func (s *Stream) SOL() bool { return s.pos == 0 }

// EOL reports whether the stream is at the end of its readable view.
func (s *Stream) EOL() bool { return s.pos >= s.end }

// Limited reports whether the readable view is shorter than the line.
func (s *Stream) Limited() bool { return s.end < len(s.str) }

// limit restricts the readable view to str[:end].
func (s *Stream) limit(end int) {
	if end < s.pos {
		end = s.pos
	}
	if end > len(s.str) {
		end = len(s.str)
	}
	s.end = end
}

// unlimit restores the readable view to str[:end], or the full line when
// end is out of range.
func (s *Stream) unlimit(end int) {
	if end <= s.pos || end > len(s.str) {
		end = len(s.str)
	}
	s.end = end
}

// rest returns the unread part of the readable view.
func (s *Stream) rest() string { return s.str[s.pos:s.end] }

// Peek returns the next rune without consuming it.
func (s *Stream) Peek() (rune, bool) {
	if s.EOL() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s.rest())
	return r, true
}

// Next consumes and returns the next rune. It returns 0 at end of line.
func (s *Stream) Next() rune {
	if s.EOL() {
		return 0
	}
	r, size := utf8.DecodeRuneInString(s.rest())
	s.pos += size
	return r
}

// Eat consumes the next rune if it equals r.
func (s *Stream) Eat(r rune) bool {
	if next, ok := s.Peek(); ok && next == r {
		s.pos += utf8.RuneLen(r)
		return true
	}
	return false
}

// EatWhile consumes runes while pred holds. It reports whether anything
// was consumed.
func (s *Stream) EatWhile(pred func(rune) bool) bool {
	start := s.pos
	for !s.EOL() {
		r, size := utf8.DecodeRuneInString(s.rest())
		if !pred(r) {
			break
		}
		s.pos += size
	}
	return s.pos > start
}

// EatSpace consumes whitespace, including non-breaking spaces.
func (s *Stream) EatSpace() bool {
	return s.EatWhile(isSpace)
}

// SkipToEnd consumes the rest of the readable view.
func (s *Stream) SkipToEnd() { s.pos = s.end }

// Match checks whether the unread text starts with lit and optionally
// consumes it.
func (s *Stream) Match(lit string, consume bool) bool {
	if !strings.HasPrefix(s.rest(), lit) {
		return false
	}
	if consume {
		s.pos += len(lit)
	}
	return true
}

// MatchFold is Match with ASCII case folding.
func (s *Stream) MatchFold(lit string, consume bool) bool {
	rest := s.rest()
	if len(rest) < len(lit) || !strings.EqualFold(rest[:len(lit)], lit) {
		return false
	}
	if consume {
		s.pos += len(lit)
	}
	return true
}

// BackUp moves the stream back n bytes.
func (s *Stream) BackUp(n int) {
	s.pos -= n
	if s.pos < 0 {
		s.pos = 0
	}
}

// count returns how many consecutive r runes follow the current position.
func (s *Stream) count(r rune) int {
	n := 0
	for _, c := range s.rest() {
		if c != r {
			break
		}
		n++
	}
	return n
}

// matchPadded matches optional whitespace, lit, then optional whitespace
// when trailing is set. Nothing is consumed on failure.
func (s *Stream) matchPadded(lit string, trailing bool) bool {
	start := s.pos
	s.EatSpace()
	if !s.Match(lit, true) {
		s.pos = start
		return false
	}
	if trailing {
		s.EatSpace()
	}
	return true
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// except returns a predicate matching runes outside chars.
func except(chars string) func(rune) bool {
	return func(r rune) bool { return !strings.ContainsRune(chars, r) }
}

// exceptSpace returns a predicate matching non-space runes outside chars.
func exceptSpace(chars string) func(rune) bool {
	return func(r rune) bool { return !isSpace(r) && !strings.ContainsRune(chars, r) }
}

// oneOf returns a predicate matching runes in chars.
func oneOf(chars string) func(rune) bool {
	return func(r rune) bool { return strings.ContainsRune(chars, r) }
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isWordRune(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func decodeRune(s string) (rune, int) {
	return utf8.DecodeRuneInString(s)
}
