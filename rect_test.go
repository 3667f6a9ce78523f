package skia

import "testing"

func TestRectFromXYWH(t *testing.T) {
	r := RectFromXYWH(10, 20, 100, 80)
	if r.Left != 10 || r.Top != 20 || r.Width() != 100 || r.Height() != 80 {
		t.Errorf("RectFromXYWH = %+v", r)
	}
	if r.Center() != Pt(60, 60) {
		t.Errorf("Center() = %v", r.Center())
	}
}

func TestRectContains(t *testing.T) {
	r := RectFromWH(100, 100)
	tests := []struct {
		x, y float64
		want bool
	}{
		{50, 50, true},
		{150, 50, false},
		{0, 0, true},
		{100, 50, false},
		{50, 100, false},
		{-1, 50, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectIntersectUnion(t *testing.T) {
	a := RectFromXYWH(0, 0, 10, 10)
	b := RectFromXYWH(5, 5, 10, 10)
	got, ok := a.Intersect(b)
	if !ok || got != RectFromXYWH(5, 5, 5, 5) {
		t.Errorf("Intersect = %+v, %v", got, ok)
	}
	if _, ok := a.Intersect(RectFromXYWH(20, 20, 1, 1)); ok {
		t.Error("disjoint rects intersect")
	}
	if _, ok := a.Intersect(RectFromXYWH(10, 0, 5, 5)); ok {
		t.Error("touching rects share no area")
	}
	if u := a.Union(b); u != RectFromXYWH(0, 0, 15, 15) {
		t.Errorf("Union = %+v", u)
	}
	if !a.ContainsRect(RectFromXYWH(2, 2, 3, 3)) || a.ContainsRect(b) {
		t.Error("ContainsRect wrong")
	}
}

func TestRectOffsetInset(t *testing.T) {
	r := RectFromWH(10, 10).Offset(5, 5).Inset(1, 2)
	if r != (Rect{Left: 6, Top: 7, Right: 14, Bottom: 13}) {
		t.Errorf("got %+v", r)
	}
	if !(Rect{Left: 5, Right: 5, Bottom: 1}).IsEmpty() {
		t.Error("zero width should be empty")
	}
	if IRectFromXYWH(1, 2, 3, 4).ToRect() != RectFromXYWH(1, 2, 3, 4) {
		t.Error("IRect.ToRect wrong")
	}
}
