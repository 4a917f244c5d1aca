package loot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func fillColors(r *Recorder) []Color {
	var out []Color
	for _, op := range r.Ops {
		if op.Kind == OpFill {
			out = append(out, op.Color)
		}
	}
	return out
}

var (
	colorRed   = Color{R: 1, A: 1}
	colorGreen = Color{G: 1, A: 1}
	colorBlue  = Color{B: 1, A: 1}
)

// --- View mapping ---

func TestLayerViewMapping(t *testing.T) {
	l := NewLayerView(10, 20, 200, 100, 100, 50)

	x, y := l.ToExternal(5, 5)
	if x != 20 || y != 30 {
		t.Errorf("ToExternal(5, 5) = (%d, %d), want (20, 30)", x, y)
	}
	x, y = l.ToInternal(20, 30)
	if x != 5 || y != 5 {
		t.Errorf("ToInternal(20, 30) = (%d, %d), want (5, 5)", x, y)
	}
	fx, fy := l.ToInternalF(11, 21)
	assertPoint(t, "ToInternalF", fx, fy, 0.5, 0.5)
}

func TestLayerViewOrigin(t *testing.T) {
	l := NewLayerView(10, 20, 200, 100, 100, 50)
	l.ViewOriginX, l.ViewOriginY = 0.5, 0.5

	fx, fy := l.ToExternalF(0, 0)
	assertPoint(t, "origin", fx, fy, 110, 70)
	fx, fy = l.ToExternalF(-50, -25)
	assertPoint(t, "view corner", fx, fy, 10, 20)
}

func TestLayerTransformsRoundTrip(t *testing.T) {
	l := NewLayerView(-30, 45, 320, -180, 64, 36)
	l.ViewOriginX, l.ViewOriginY = 0.25, 0.75

	out, in := l.Transforms()
	assertMatrix(t, "outward*inward", multiplyAffine(out, in), identityTransform)
	for _, p := range [][2]float64{{0, 0}, {12.5, -7}, {64, 36}} {
		ex, ey := l.ToExternalF(p[0], p[1])
		ix, iy := l.ToInternalF(ex, ey)
		assertPoint(t, "round trip", ix, iy, p[0], p[1])
	}
}

func TestLayerDefaultViewMatchesBox(t *testing.T) {
	l := NewLayer(0, 0, -40, 30)
	if l.ViewWidth != 40 || l.ViewHeight != 30 {
		t.Errorf("view = %vx%v, want 40x30", l.ViewWidth, l.ViewHeight)
	}
	s := NewSpatialLayer(Pt3(0, 0, 0), 10, -5)
	if s.ViewWidth != 20 || s.ViewHeight != 10 {
		t.Errorf("spatial view = %vx%v, want 20x10", s.ViewWidth, s.ViewHeight)
	}
	if !s.IsSpatial() {
		t.Error("NewSpatialLayer should be spatial")
	}
}

// --- Draw ---

func TestLayerDrawsThroughOutwardTransform(t *testing.T) {
	l := NewLayerView(10, 20, 200, 100, 100, 50)
	l.Add(NewRect(0, 0, 10, 10, colorRed))

	rec := NewRecorder()
	l.Draw(NewCanvas(rec))

	if len(rec.Ops) != 1 {
		t.Fatalf("ops = %d, want 1", len(rec.Ops))
	}
	want := Rect{X: 10, Y: 20, Width: 20, Height: 20}
	if diff := cmp.Diff(want, rec.Ops[0].Bounds); diff != "" {
		t.Errorf("fill bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestLayerPaintsInReverseOrder(t *testing.T) {
	l := NewLayer(0, 0, 100, 100)
	l.Add(NewRect(0, 0, 10, 10, colorRed), NewRect(0, 0, 10, 10, colorGreen))
	l.Insert(1, NewRect(0, 0, 10, 10, colorBlue))

	rec := NewRecorder()
	l.Draw(NewCanvas(rec))

	want := []Color{colorGreen, colorBlue, colorRed}
	if diff := cmp.Diff(want, fillColors(rec)); diff != "" {
		t.Errorf("paint order mismatch (-want +got):\n%s", diff)
	}
}

func TestLayerObjectAtFirstChildWins(t *testing.T) {
	l := NewLayer(0, 0, 100, 100)
	a := NewRect(0, 0, 50, 50, colorRed)
	b := NewRect(25, 25, 50, 50, colorGreen)
	l.Add(a, b)

	if got := l.ObjectAt(30, 30); got != Visual(a) {
		t.Errorf("ObjectAt(overlap) = %v, want first child", got)
	}
	if got := l.ObjectAt(70, 70); got != Visual(b) {
		t.Errorf("ObjectAt(70, 70) = %v, want second child", got)
	}
	if got := l.ObjectAt(90, 10); got != nil {
		t.Errorf("ObjectAt(empty) = %v, want nil", got)
	}
	if !l.HitTest(10, 10) || l.HitTest(90, 10) {
		t.Error("HitTest disagrees with ObjectAt")
	}
}

func TestLayerObjectAtRequiresOwnBox(t *testing.T) {
	l := NewLayerView(0, 0, 50, 50, 200, 200)
	child := NewRect(0, 0, 200, 200, colorRed)
	l.Add(child)

	if got := l.ObjectAt(60, 10); got != nil {
		t.Errorf("ObjectAt outside the layer box = %v, want nil", got)
	}
	if got := l.ObjectAt(25, 25); got != Visual(child) {
		t.Errorf("ObjectAt inside = %v, want child", got)
	}
}

func TestLayerHiddenChild(t *testing.T) {
	l := NewLayer(0, 0, 100, 100)
	a := NewRect(0, 0, 50, 50, colorRed)
	b := NewRect(0, 0, 50, 50, colorGreen)
	l.Add(a, b)
	a.Hide()

	rec := NewRecorder()
	l.Draw(NewCanvas(rec))
	if diff := cmp.Diff([]Color{colorGreen}, fillColors(rec)); diff != "" {
		t.Errorf("hidden child painted (-want +got):\n%s", diff)
	}
	if got := l.ObjectAt(10, 10); got != Visual(b) {
		t.Errorf("ObjectAt = %v, want the visible child", got)
	}
	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2 (hidden children stay)", l.Len())
	}

	a.Show()
	if got := l.ObjectAt(10, 10); got != Visual(a) {
		t.Errorf("ObjectAt after Show = %v, want first child", got)
	}
}

func TestLayerIgnoreHitTest(t *testing.T) {
	l := NewLayer(0, 0, 100, 100)
	a := NewRect(0, 0, 50, 50, colorRed)
	a.IgnoreHitTest = true
	l.Add(a)
	if l.HitTest(10, 10) {
		t.Error("IgnoreHitTest child should not be hit")
	}
}

func TestLayerLazyRemoval(t *testing.T) {
	l := NewLayer(0, 0, 100, 100)
	a := NewRect(0, 0, 10, 10, colorRed)
	b := NewRect(0, 0, 10, 10, colorGreen)
	c := NewRect(0, 0, 10, 10, colorBlue)
	l.Add(a, b, c)
	b.Remove()

	if l.Len() != 3 {
		t.Fatalf("Len before Draw = %d, want 3", l.Len())
	}
	if got := l.ObjectAt(5, 5); got != Visual(a) {
		t.Errorf("ObjectAt = %v, want first child", got)
	}

	rec := NewRecorder()
	l.Draw(NewCanvas(rec))

	if diff := cmp.Diff([]Color{colorBlue, colorRed}, fillColors(rec)); diff != "" {
		t.Errorf("removed child painted (-want +got):\n%s", diff)
	}
	if l.Len() != 2 {
		t.Fatalf("Len after Draw = %d, want 2", l.Len())
	}
	kids := l.Children()
	if kids[0] != Visual(a) || kids[1] != Visual(c) {
		t.Error("survivors lost their relative order")
	}
}

func TestLayerRemovedDuringSiblingDraw(t *testing.T) {
	l := NewLayer(0, 0, 100, 100)
	victim := NewRect(0, 0, 10, 10, colorRed)
	remover := &drawHook{Object: Object{Width: 1, Height: 1}, fn: victim.Remove}
	// Reverse paint order draws remover first.
	l.Add(victim, remover)

	rec := NewRecorder()
	l.Draw(NewCanvas(rec))

	if len(fillColors(rec)) != 0 {
		t.Error("child removed earlier in the same pass was painted")
	}
	if l.Len() != 1 {
		t.Errorf("Len = %d, want 1", l.Len())
	}
}

func TestLayerClear(t *testing.T) {
	l := NewLayer(0, 0, 10, 10)
	l.Add(NewRect(0, 0, 1, 1, colorRed))
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", l.Len())
	}
}

func TestLayerAddPanics(t *testing.T) {
	l := NewLayer(0, 0, 10, 10)

	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { l.Add(nil) }},
		{"self", func() { l.Add(l) }},
		{"insert out of range", func() { l.Insert(5, NewRect(0, 0, 1, 1, colorRed)) }},
		{"insert negative", func() { l.Insert(-1, NewRect(0, 0, 1, 1, colorRed)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("%s did not panic", tt.name)
				}
			}()
			tt.fn()
		})
	}
}

func TestNestedLayerConversion(t *testing.T) {
	outer := NewLayerView(0, 0, 200, 200, 100, 100)
	inner := NewLayerView(10, 10, 50, 50, 100, 100)
	target := NewRect(0, 0, 20, 20, colorRed)
	inner.Add(target)
	outer.Add(inner)

	// External (30, 30) -> outer view (15, 15) -> inner view (10, 10).
	if got := outer.ObjectAt(30, 30); got != Visual(inner) {
		t.Fatalf("outer.ObjectAt = %v, want inner layer", got)
	}
	ix, iy := outer.ToInternal(30, 30)
	if got := inner.ObjectAt(ix, iy); got != Visual(target) {
		t.Errorf("inner.ObjectAt(%d, %d) = %v, want target", ix, iy, got)
	}
	x, y := inner.ToInternal(ix, iy)
	if x != 10 || y != 10 {
		t.Errorf("inner.ToInternal = (%d, %d), want (10, 10)", x, y)
	}
}

func TestLayerZeroSizeHitsNothing(t *testing.T) {
	l := NewLayerView(0, 0, 0, 0, 100, 100)
	l.Add(NewRect(0, 0, 100, 100, colorRed))
	if l.HitTest(0, 0) {
		t.Error("zero-size layer should not be hit")
	}
	x, y := l.ToInternal(5, 5)
	if x != 0 || y != 0 {
		t.Errorf("degenerate ToInternal = (%d, %d), want (0, 0)", x, y)
	}
}

func TestLayerHitTest3D(t *testing.T) {
	l := NewSpatialLayer(Pt3(0, 0, 0), 50, 25)
	l.X, l.Y, l.Width, l.Height = 0, 0, 100, 50
	l.Add(NewRect(40, 20, 20, 10, colorRed))

	tests := []struct {
		name string
		p    Point3D
		want bool
	}{
		{"over child", Pt3(0, 0, 0), true},
		{"on face, no child", Pt3(-40, 0, 0), false},
		{"other depth", Pt3(0, 0, 1), false},
		{"off face", Pt3(60, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.HitTest3D(tt.p); got != tt.want {
				t.Errorf("HitTest3D(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
	if !l.HitTest3DWithin(Pt3(0, 0, 1), 1) {
		t.Error("HitTest3DWithin should accept the depth tolerance")
	}
}

// drawHook is a test element that runs fn when drawn.
type drawHook struct {
	Object
	fn func()
}

func (d *drawHook) Draw(Canvas) { d.fn() }
