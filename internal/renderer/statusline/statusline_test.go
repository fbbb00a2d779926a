package statusline

import (
	"strings"
	"testing"

	"github.com/dshills/wikistorm/internal/renderer/backend"
)

func newScreen(t *testing.T, w int) *backend.NullBackend {
	t.Helper()
	b := backend.NewNullBackend(w, 2)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestRenderStatusBar(t *testing.T) {
	b := newScreen(t, 60)
	s := New()
	s.Resize(60)
	s.SetFilename("page.wiki")
	s.SetModified(true)
	s.SetPosition(2, 6)
	s.SetTotalLines(12)
	s.SetUndoCount(4)
	s.SetFormats([]string{"bold", "span"})

	s.Render(b, 1)
	row := b.Row(1)

	for _, want := range []string{"page.wiki [+]", "[bold span]", "Ln 3, Col 7 | 12 lines | 4 undo"} {
		if !strings.Contains(row, want) {
			t.Errorf("row %q missing %q", row, want)
		}
	}
	if got := len([]rune(row)); got != 60 {
		t.Errorf("row width = %d", got)
	}
}

func TestRenderNoName(t *testing.T) {
	b := newScreen(t, 40)
	s := New()
	s.Resize(40)
	s.SetReadOnly(true)
	s.Render(b, 0)
	if row := b.Row(0); !strings.HasPrefix(row, " [No Name] [RO]") {
		t.Errorf("row = %q", row)
	}
}

func TestRenderMessage(t *testing.T) {
	b := newScreen(t, 30)
	s := New()
	s.Resize(30)
	s.SetMessage("nothing to undo", MessageWarning)
	s.Render(b, 0)

	if row := b.Row(0); !strings.HasPrefix(row, " nothing to undo") {
		t.Errorf("row = %q", row)
	}

	s.ClearMessage()
	if s.Message() != "" {
		t.Error("message not cleared")
	}
	s.Render(b, 0)
	if row := b.Row(0); !strings.Contains(row, "Ln 1, Col 1") {
		t.Errorf("row = %q", row)
	}
}

func TestRenderTruncates(t *testing.T) {
	b := newScreen(t, 20)
	s := New()
	s.Resize(20)
	s.SetFilename(strings.Repeat("x", 50))
	s.Render(b, 0)
	if got := len([]rune(b.Row(0))); got != 20 {
		t.Errorf("row width = %d", got)
	}
}
