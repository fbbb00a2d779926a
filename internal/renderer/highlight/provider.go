// Package highlight caches wikitext tokens per line and maps them to
// themed styles for the renderer.
package highlight

import (
	"sync"

	"github.com/dshills/wikistorm/internal/renderer/core"
	"github.com/dshills/wikistorm/internal/wikitext/tokenizer"
)

// LineSource supplies the lines being highlighted.
type LineSource interface {
	LineCount() int
	LineText(line int) string
}

// Span is a styled byte range of a line.
type Span struct {
	Start int
	End   int
	Style core.Style
}

// Provider tokenizes lines on demand and caches each line's tokens and
// the tokenizer state at its end. A line's tokens depend on every line
// before it, so invalidating a line drops the cache from that line on.
type Provider struct {
	mu sync.Mutex

	tok   *tokenizer.Tokenizer
	src   LineSource
	theme *Theme

	// lines[i] is valid for line i; the slice holds a valid prefix.
	lines []cachedLine
}

// cachedLine holds cached highlighting for a line.
type cachedLine struct {
	text   string // Original text (for cache validation)
	tokens []tokenizer.Token
	end    *tokenizer.State
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithTheme sets the theme used by Spans.
func WithTheme(theme *Theme) ProviderOption {
	return func(p *Provider) {
		if theme != nil {
			p.theme = theme
		}
	}
}

// NewProvider creates a provider reading lines from src.
func NewProvider(tok *tokenizer.Tokenizer, src LineSource, opts ...ProviderOption) *Provider {
	p := &Provider{
		tok:   tok,
		src:   src,
		theme: DefaultTheme(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetTheme sets the active theme.
func (p *Provider) SetTheme(theme *Theme) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if theme != nil {
		p.theme = theme
	}
}

// Theme returns the current theme.
func (p *Provider) Theme() *Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.theme
}

// LineTokens returns the tokens of line. The slice is shared with the
// cache and must not be modified.
func (p *Provider) LineTokens(line int) []tokenizer.Token {
	p.mu.Lock()
	defer p.mu.Unlock()

	if line < 0 || line >= p.src.LineCount() {
		return nil
	}
	return p.ensure(line).tokens
}

// StateAfter returns a copy of the tokenizer state at the end of line.
func (p *Provider) StateAfter(line int) *tokenizer.State {
	p.mu.Lock()
	defer p.mu.Unlock()

	if line < 0 || line >= p.src.LineCount() {
		return nil
	}
	return p.ensure(line).end.Copy()
}

// Spans returns themed spans for line.
func (p *Provider) Spans(line int) []Span {
	p.mu.Lock()
	defer p.mu.Unlock()

	if line < 0 || line >= p.src.LineCount() {
		return nil
	}
	tokens := p.ensure(line).tokens
	spans := make([]Span, 0, len(tokens))
	for _, tok := range tokens {
		spans = append(spans, Span{
			Start: tok.Start,
			End:   tok.End,
			Style: p.theme.StyleForToken(tok),
		})
	}
	return spans
}

// InvalidateLines drops cached highlighting from startLine onwards.
func (p *Provider) InvalidateLines(startLine int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.truncate(startLine)
}

// InvalidateAll clears all cached highlighting.
func (p *Provider) InvalidateAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = nil
}

// CachedLines returns how many leading lines are cached.
func (p *Provider) CachedLines() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.lines)
}

func (p *Provider) truncate(line int) {
	if line < 0 {
		line = 0
	}
	if line < len(p.lines) {
		clear(p.lines[line:])
		p.lines = p.lines[:line]
	}
}

// ensure tokenizes up to and including line. The lock is held.
func (p *Provider) ensure(line int) cachedLine {
	// A cached line whose text changed without an invalidation makes it
	// and everything after it stale.
	if line < len(p.lines) && p.lines[line].text != p.src.LineText(line) {
		p.truncate(line)
	}

	for i := len(p.lines); i <= line; i++ {
		var st *tokenizer.State
		if i == 0 {
			st = p.tok.StartState()
		} else {
			st = p.lines[i-1].end.Copy()
		}
		text := p.src.LineText(i)
		tokens := p.tok.TokenizeLine(text, st)
		p.lines = append(p.lines, cachedLine{text: text, tokens: tokens, end: st})
	}
	return p.lines[line]
}
