package core

import (
	"testing"
)

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		want    Color
		wantErr bool
	}{
		{"#ff8040", ColorFromRGB(255, 128, 64), false},
		{"#FFF", ColorFromRGB(255, 255, 255), false},
		{"#000000", ColorFromRGB(0, 0, 0), false},
		{"ff8040", Color{}, true},
		{"#12", Color{}, true},
		{"#gggggg", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := ColorFromHex(tt.hex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ColorFromHex(%q) error = %v", tt.hex, err)
			}
			if err == nil && got != tt.want {
				t.Errorf("ColorFromHex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	if got := ColorDefault.String(); got != "default" {
		t.Errorf("default String() = %q", got)
	}
	if got := ColorFromRGB(1, 2, 255).String(); got != "#0102ff" {
		t.Errorf("String() = %q", got)
	}
}

func TestColorBlend(t *testing.T) {
	red := ColorFromRGB(255, 0, 0)
	blue := ColorFromRGB(0, 0, 255)

	if got := red.Blend(blue, 0); got != red {
		t.Errorf("Blend(0) = %v", got)
	}
	if got := red.Blend(blue, 1); got != blue {
		t.Errorf("Blend(1) = %v", got)
	}
	mid := red.Blend(blue, 0.5)
	if mid == red || mid == blue {
		t.Errorf("Blend(0.5) = %v", mid)
	}
	if got := ColorDefault.Blend(red, 0.2); !got.IsDefault() {
		t.Errorf("default blend below half = %v", got)
	}
	if got := ColorDefault.Blend(red, 0.8); got != red {
		t.Errorf("default blend above half = %v", got)
	}
}

func TestColorLightenDarken(t *testing.T) {
	gray := ColorFromRGB(128, 128, 128)
	light := gray.Lighten(0.5)
	dark := gray.Darken(0.5)

	if light.R <= gray.R || dark.R >= gray.R {
		t.Errorf("light = %v dark = %v", light, dark)
	}
	if d := gray.Distance(gray); d != 0 {
		t.Errorf("Distance to self = %v", d)
	}
	if gray.Distance(light) <= 0 {
		t.Error("Distance should be positive")
	}
}

func TestStyleMerge(t *testing.T) {
	red := ColorFromRGB(255, 0, 0)
	blue := ColorFromRGB(0, 0, 255)

	base := NewStyle(red).With(AttrBold)
	top := DefaultStyle().WithBackground(blue).With(AttrItalic)

	got := base.Merge(top)
	if got.Foreground != red || got.Background != blue {
		t.Errorf("Merge colors = %v/%v", got.Foreground, got.Background)
	}
	if !got.Attributes.Has(AttrBold) || !got.Attributes.Has(AttrItalic) {
		t.Errorf("Merge attributes = %b", got.Attributes)
	}
	if got.Attributes.Has(AttrUnderline) {
		t.Error("unexpected underline")
	}
	if !DefaultStyle().IsDefault() || got.IsDefault() {
		t.Error("IsDefault mismatch")
	}
}

func TestCellsFromString(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		texts []string
	}{
		{"ascii", "ab", []string{"a", "b"}},
		{"tab", "a\tb", []string{"a", " ", " ", " ", "b"}},
		{"wide", "a世", []string{"a", "世", ""}},
		{"combining", "éx", []string{"é", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := CellsFromString(tt.in, DefaultStyle(), 4)
			if len(cells) != len(tt.texts) {
				t.Fatalf("got %d cells, want %d", len(cells), len(tt.texts))
			}
			for i, want := range tt.texts {
				if cells[i].Text != want {
					t.Errorf("cell %d = %q, want %q", i, cells[i].Text, want)
				}
			}
		})
	}

	wide := CellsFromString("世", DefaultStyle(), 4)
	if wide[0].Width != 2 || !wide[1].IsContinuation() {
		t.Errorf("wide cells = %+v", wide)
	}
	if StringWidth("a世") != 3 {
		t.Errorf("StringWidth = %d", StringWidth("a世"))
	}
}
