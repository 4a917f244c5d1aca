package loot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestObjectHitTest(t *testing.T) {
	o := &Object{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"bottom edge", 60, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside top", 50, 19, false},
		{"outside bottom", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.HitTest(tt.x, tt.y); got != tt.want {
				t.Errorf("HitTest(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestObjectHitTestNegativeExtents(t *testing.T) {
	o := &Object{X: 100, Y: 100, Width: -50, Height: -50}

	tests := []struct {
		x, y int
		want bool
	}{
		{50, 50, true},
		{75, 75, true},
		{100, 100, true},
		{101, 75, false},
		{49, 75, false},
	}
	for _, tt := range tests {
		if got := o.HitTest(tt.x, tt.y); got != tt.want {
			t.Errorf("HitTest(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestObjectHitTestZeroArea(t *testing.T) {
	for _, o := range []*Object{
		{X: 10, Y: 10, Width: 0, Height: 20},
		{X: 10, Y: 10, Width: 20, Height: 0},
		{},
	} {
		if o.HitTest(o.X, o.Y) {
			t.Errorf("zero-area box %+v hit at its corner", *o)
		}
	}
}

func TestObjectStateTransitions(t *testing.T) {
	o := &Object{}
	if o.Hidden() || o.Removed() {
		t.Fatal("new object should be active")
	}

	o.Hide()
	if !o.Hidden() || o.Removed() {
		t.Errorf("after Hide: Hidden=%v Removed=%v", o.Hidden(), o.Removed())
	}
	o.Show()
	if o.State != StateActive {
		t.Errorf("after Show: State = %v, want active", o.State)
	}

	o.Remove()
	o.Show()
	o.Hide()
	if o.State != StateRemoved {
		t.Errorf("Show/Hide changed a removed object to %v", o.State)
	}
	if !o.Hidden() {
		t.Error("a removed object should report Hidden")
	}
}

func TestObjectRelativePosition(t *testing.T) {
	o := &Object{X: 10, Y: 20, Width: 100, Height: 50}

	x, y := o.RelativePosition(15, 27)
	if x != 5 || y != 7 {
		t.Errorf("RelativePosition = (%d, %d), want (5, 7)", x, y)
	}
	x, y = o.RelativePositionFromCenter(60, 45)
	if x != 0 || y != 0 {
		t.Errorf("RelativePositionFromCenter(center) = (%d, %d), want (0, 0)", x, y)
	}
	x, y = o.RelativePositionFromCenter(10, 20)
	if x != -50 || y != -25 {
		t.Errorf("RelativePositionFromCenter(corner) = (%d, %d), want (-50, -25)", x, y)
	}
}

func TestObjectBounds(t *testing.T) {
	tests := []struct {
		name string
		o    Object
		want Rect
	}{
		{"positive", Object{X: 1, Y: 2, Width: 3, Height: 4}, Rect{X: 1, Y: 2, Width: 3, Height: 4}},
		{"negative", Object{X: 10, Y: 10, Width: -4, Height: -6}, Rect{X: 6, Y: 4, Width: 4, Height: 6}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, tt.o.Bounds()); diff != "" {
			t.Errorf("%s: Bounds mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}

func TestTestableSkipsHiddenAndIgnored(t *testing.T) {
	active := NewRect(0, 0, 10, 10, ColorBlack)
	hidden := NewRect(0, 0, 10, 10, ColorBlack)
	hidden.Hide()
	ignored := NewRect(0, 0, 10, 10, ColorBlack)
	ignored.IgnoreHitTest = true

	if !testable(active) {
		t.Error("active element should be testable")
	}
	if testable(hidden) {
		t.Error("hidden element should not be testable")
	}
	if testable(ignored) {
		t.Error("IgnoreHitTest element should not be testable")
	}
}

// --- Rect ---

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: 5, Width: 10, Height: 10}
	if diff := cmp.Diff(Rect{X: 5, Y: 5, Width: 5, Height: 5}, a.Intersect(b)); diff != "" {
		t.Errorf("Intersect mismatch (-want +got):\n%s", diff)
	}
	far := Rect{X: 50, Y: 50, Width: 1, Height: 1}
	if !a.Intersect(far).Empty() {
		t.Error("disjoint Intersect should be empty")
	}
	if a.Intersects(far) {
		t.Error("Intersects reported disjoint rects as overlapping")
	}
	if !a.Contains(10, 10) || a.Contains(10.5, 5) {
		t.Error("Contains should include edges only")
	}
}

func TestColorConversions(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}
	got := c.RGBA8()
	if got.A != 127 || got.R != 127 || got.B != 0 {
		t.Errorf("RGBA8 = %+v, want premultiplied R=127 A=127", got)
	}
	back := ColorFrom(ColorWhite.RGBA8())
	if diff := cmp.Diff(ColorWhite, back); diff != "" {
		t.Errorf("ColorFrom(white) mismatch (-want +got):\n%s", diff)
	}
}
