package format

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/wikistorm/internal/engine/textrange"
)

func TestClearFormatting(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		sel     textrange.ItemRange
		want    string
		wantSel textrange.ItemRange
	}{
		{
			name:    "nested item inside selection",
			doc:     "<u>under<b>line</b>lined</u>",
			sel:     lineSel(0, 11, 15),
			want:    "<u>under</u>line<u>lined</u>",
			wantSel: lineSel(0, 12, 16),
		},
		{
			name:    "inside content",
			doc:     "<b>abcdef</b>",
			sel:     lineSel(0, 5, 7),
			want:    "<b>ab</b>cd<b>ef</b>",
			wantSel: lineSel(0, 9, 11),
		},
		{
			name:    "removed item leaves outer halves",
			doc:     "<u>x<b>abc</b>y</u>",
			sel:     lineSel(0, 7, 10),
			want:    "<u>x</u>abc<u>y</u>",
			wantSel: lineSel(0, 8, 11),
		},
		{
			name:    "empty outer halves pruned",
			doc:     "<u><b>abc</b></u>",
			sel:     lineSel(0, 6, 9),
			want:    "abc",
			wantSel: lineSel(0, 0, 3),
		},
		{
			name:    "opening moved after selection",
			doc:     "<b>abcdef</b>",
			sel:     lineSel(0, 3, 6),
			want:    "abc<b>def</b>",
			wantSel: lineSel(0, 0, 3),
		},
		{
			name:    "closing moved before selection",
			doc:     "<b>abcdef</b>",
			sel:     lineSel(0, 6, 9),
			want:    "<b>abc</b>def",
			wantSel: lineSel(0, 10, 13),
		},
		{
			name:    "whole item selected",
			doc:     "x '''bold''' y",
			sel:     lineSel(0, 5, 9),
			want:    "x bold y",
			wantSel: lineSel(0, 2, 6),
		},
		{
			name:    "section header",
			doc:     "== Head ==",
			sel:     lineSel(0, 3, 7),
			want:    " Head ",
			wantSel: lineSel(0, 1, 5),
		},
		{
			name:    "second line only",
			doc:     "''keep''\n<s>gone</s>",
			sel:     lineSel(1, 3, 7),
			want:    "''keep''\ngone",
			wantSel: lineSel(1, 0, 4),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newFakeEditor(tt.doc, tt.sel)
			require.True(t, CanClearFormatting(ed))

			changed, err := ClearFormatting(ed)
			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, tt.want, ed.String())
			assert.Equal(t, tt.wantSel, ed.Selection())
			assert.Equal(t, []string{"clear formatting"}, ed.transactions)

			assert.False(t, CanClearFormatting(ed), "clearing twice changes nothing")
		})
	}
}

func TestCanClearFormattingDeclines(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		sel  textrange.ItemRange
	}{
		{"empty selection", "<b>abc</b>", lineSel(0, 4, 4)},
		{"plain text between items", "'''bold''' plain ''italic''", lineSel(0, 11, 16)},
		{"reference", "a<ref>b</ref>", lineSel(0, 6, 7)},
		{"template", "{{tmpl|x}}", lineSel(0, 7, 8)},
		{"no markup", "plain text", lineSel(0, 0, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newFakeEditor(tt.doc, tt.sel)
			assert.False(t, CanClearFormatting(ed))

			changed, err := ClearFormatting(ed)
			require.NoError(t, err)
			assert.False(t, changed)
			assert.Equal(t, tt.doc, ed.String())
			assert.Equal(t, tt.sel, ed.Selection())
			assert.Empty(t, ed.transactions)
		})
	}
}

func TestClearFormattingRollsBack(t *testing.T) {
	ed := newFakeEditor("<u>under<b>line</b>lined</u>", lineSel(0, 11, 15))
	ed.failReplace = 2

	changed, err := ClearFormatting(ed)
	require.ErrorIs(t, err, errOutOfRange)
	assert.False(t, changed)
	assert.Equal(t, "<u>under<b>line</b>lined</u>", ed.String())
	assert.Equal(t, lineSel(0, 11, 15), ed.Selection())
}

func TestClearFormattingLogsPlan(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetLevel(logrus.DebugLevel)

	ed := newFakeEditor("<b>abcdef</b>", lineSel(0, 3, 6))
	_, err := ClearFormatting(ed, WithLogger(log))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "clear formatting")
	assert.Contains(t, buf.String(), "component=format")
}

func TestExpandSelection(t *testing.T) {
	ed := newFakeEditor("<u>under<b>line</b>lined</u>", lineSel(0, 0, 0))
	items := completeItems(ed, lineSel(0, 0, 0))

	assert.Equal(t, lineSel(0, 8, 19), expandSelection(items, lineSel(0, 11, 15)))
	assert.Equal(t, lineSel(0, 8, 19), expandSelection(items, lineSel(0, 9, 17)))
	assert.Equal(t, lineSel(0, 19, 20), expandSelection(items, lineSel(0, 19, 20)))
	assert.Equal(t, lineSel(0, 4, 8), expandSelection(items, lineSel(0, 4, 10)))
}

func TestButtonNamesInSelection(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		sel  textrange.ItemRange
		want []string
	}{
		{"nested", "<u>under<b>line</b>lined</u>", lineSel(0, 11, 15), []string{"u", "b"}},
		{"touching edges excluded", "'''a'''b''c''", lineSel(0, 7, 8), nil},
		{"bold and italic", "'''a''' ''b''", lineSel(0, 3, 10), []string{"bold", "italic"}},
		{"reference", "a<ref>b</ref>", lineSel(0, 6, 7), []string{"reference"}},
		{"link and template", "[[A|b]] {{c}}", lineSel(0, 4, 10), []string{"link", "template"}},
		{"deduplicated", "<b>a</b><b>c</b>", lineSel(0, 3, 12), []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := newFakeEditor(tt.doc, tt.sel)
			assert.Equal(t, tt.want, ButtonNamesInSelection(ed))
		})
	}
}
