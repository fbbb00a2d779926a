package viewport

import "testing"

func TestNewViewportClamps(t *testing.T) {
	v := NewViewport(0, -3)
	if v.Width() != 1 || v.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", v.Width(), v.Height())
	}
}

func TestVisibleLineRange(t *testing.T) {
	v := NewViewport(80, 10)
	v.SetLineCount(4)

	if start, end := v.VisibleLineRange(); start != 0 || end != 4 {
		t.Errorf("range = [%d, %d)", start, end)
	}

	v.SetLineCount(100)
	v.ScrollTo(95)
	if start, end := v.VisibleLineRange(); start != 95 || end != 100 {
		t.Errorf("range = [%d, %d)", start, end)
	}
	if v.ScreenRow(96) != 1 || v.ScreenRow(94) != -1 {
		t.Errorf("ScreenRow = %d, %d", v.ScreenRow(96), v.ScreenRow(94))
	}
}

func TestScrollClamps(t *testing.T) {
	v := NewViewport(80, 10)
	v.SetLineCount(30)

	v.ScrollBy(-5)
	if v.TopLine() != 0 {
		t.Errorf("TopLine = %d", v.TopLine())
	}
	v.ScrollTo(100)
	if v.TopLine() != 29 {
		t.Errorf("TopLine = %d", v.TopLine())
	}
	v.PageUp()
	if v.TopLine() != 19 {
		t.Errorf("TopLine after PageUp = %d", v.TopLine())
	}
	v.PageDown()
	if v.TopLine() != 29 {
		t.Errorf("TopLine after PageDown = %d", v.TopLine())
	}

	v.SetLineCount(5)
	if v.TopLine() != 4 {
		t.Errorf("shrinking the document should clamp, got %d", v.TopLine())
	}
}

func TestScrollToReveal(t *testing.T) {
	tests := []struct {
		name      string
		top, left int
		line, col int
		moved     bool
		wantTop   int
		wantLeft  int
	}{
		{"visible", 0, 0, 5, 10, false, 0, 0},
		{"below", 0, 0, 20, 0, true, 12, 0},
		{"above", 30, 0, 31, 0, true, 29, 0},
		{"near top of document", 5, 0, 1, 0, true, 0, 0},
		{"right", 0, 0, 0, 50, true, 0, 23},
		{"left", 0, 40, 0, 41, true, 0, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport(40, 10)
			v.SetLineCount(100)
			v.SetMargins(2, 2, 8, 8)
			v.ScrollTo(tt.top)
			v.leftColumn = tt.left

			if moved := v.ScrollToReveal(tt.line, tt.col); moved != tt.moved {
				t.Errorf("moved = %v, want %v", moved, tt.moved)
			}
			if v.TopLine() != tt.wantTop || v.LeftColumn() != tt.wantLeft {
				t.Errorf("top, left = %d, %d, want %d, %d", v.TopLine(), v.LeftColumn(), tt.wantTop, tt.wantLeft)
			}
		})
	}
}

func TestCenterOn(t *testing.T) {
	v := NewViewport(80, 10)
	v.SetLineCount(100)

	v.CenterOn(50)
	if v.TopLine() != 45 {
		t.Errorf("TopLine = %d", v.TopLine())
	}
	v.CenterOn(2)
	if v.TopLine() != 0 {
		t.Errorf("TopLine = %d", v.TopLine())
	}
}
