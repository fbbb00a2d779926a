package tokenizer

import "testing"

func TestTokenGround(t *testing.T) {
	tests := []struct {
		style string
		want  Ground
	}{
		{"mw-template-bracket", Ground{}},
		{"mw-template-ground mw-template-bracket", Ground{Template: 1}},
		{"mw-template2-ground mw-template-name mw-pagename", Ground{Template: 2}},
		{"mw-template3-ext2-link-ground mw-link-bracket", Ground{Template: 3, Ext: 2, Link: true}},
		{"mw-ext-ground mw-parserfunction", Ground{Ext: 1}},
		{"mw-link-ground mw-link-text strong", Ground{Link: true}},
		{"mw-exttag-bracket mw-ext-ref", Ground{}},
	}

	for _, tt := range tests {
		got := Token{Style: tt.style}.Ground()
		if got != tt.want {
			t.Errorf("Ground(%q) = %+v, expected %+v", tt.style, got, tt.want)
		}
	}
}

func TestTokenHasType(t *testing.T) {
	tok := Token{Style: "mw-link-ground mw-link-text strong"}
	if !tok.HasType("strong") {
		t.Error("expected strong type")
	}
	if tok.HasType("mw-link") {
		t.Error("HasType matched a prefix")
	}
	if n := len(tok.Types()); n != 3 {
		t.Errorf("Types() returned %d entries, expected 3", n)
	}
}

func TestStreamLimits(t *testing.T) {
	s := NewStream("abc</x>def")
	s.SetPos(1)
	s.limit(3)
	if !s.Limited() || s.rest() != "bc" {
		t.Fatalf("limited rest = %q", s.rest())
	}
	s.SkipToEnd()
	if !s.EOL() {
		t.Fatal("expected EOL at limit")
	}
	s.unlimit(len(s.Line()))
	if s.EOL() || s.rest() != "</x>def" {
		t.Fatalf("unlimited rest = %q", s.rest())
	}
}
