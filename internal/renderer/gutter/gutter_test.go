package gutter

import "testing"

func cellsText(g *Gutter, line int, exists bool) string {
	var s string
	for _, c := range g.RenderLine(line, exists) {
		s += c.Text
	}
	return s
}

func TestGutterWidth(t *testing.T) {
	g := New(DefaultConfig())
	if g.Width() != 4 {
		t.Errorf("Width() = %d, want 4", g.Width())
	}
	g.SetLineCount(12345)
	if g.Width() != 6 {
		t.Errorf("Width() = %d, want 6", g.Width())
	}

	off := New(Config{})
	if off.Width() != 0 || off.RenderLine(0, true) != nil {
		t.Error("disabled gutter should be empty")
	}
}

func TestGutterRenderLine(t *testing.T) {
	tests := []struct {
		mode   LineNumberMode
		line   int
		exists bool
		want   string
	}{
		{LineNumberAbsolute, 0, true, "  1 "},
		{LineNumberAbsolute, 9, true, " 10 "},
		{LineNumberAbsolute, 50, false, "    "},
		{LineNumberRelative, 5, true, "  0 "},
		{LineNumberRelative, 2, true, "  3 "},
		{LineNumberHybrid, 5, true, "  6 "},
		{LineNumberHybrid, 7, true, "  2 "},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Mode = tt.mode
		g := New(cfg)
		g.SetLineCount(20)
		g.SetCurrentLine(5)
		if got := cellsText(g, tt.line, tt.exists); got != tt.want {
			t.Errorf("mode %d line %d = %q, want %q", tt.mode, tt.line, got, tt.want)
		}
	}
}

func TestParseLineNumberMode(t *testing.T) {
	for in, want := range map[string]LineNumberMode{
		"":         LineNumberAbsolute,
		"relative": LineNumberRelative,
		"hybrid":   LineNumberHybrid,
	} {
		got, ok := ParseLineNumberMode(in)
		if !ok || got != want {
			t.Errorf("ParseLineNumberMode(%q) = %d, %v", in, got, ok)
		}
	}
	if _, ok := ParseLineNumberMode("roman"); ok {
		t.Error("unknown mode accepted")
	}
	if FormatPosition(0, 4) != "1:5" {
		t.Errorf("FormatPosition = %q", FormatPosition(0, 4))
	}
}
