package loot

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestViewportDollyTo(t *testing.T) {
	v := NewViewport(0, 0, 200, 100)
	v.DollyTo(Pt3(10, -20, 5), 1.0, ease.Linear)

	if !v.Dollying() {
		t.Fatal("Dollying = false after DollyTo")
	}

	v.Update(0.5)
	pov := v.PointOfView
	if !approxEqual(pov.X, 5, 0.01) || !approxEqual(pov.Y, -10, 0.01) || !approxEqual(pov.Z, 3, 0.01) {
		t.Errorf("PointOfView at halfway = %v, want ~(5, -10, 3)", pov)
	}

	v.Update(0.5)
	if v.Dollying() {
		t.Error("Dollying = true after full duration")
	}
	pov = v.PointOfView
	if !approxEqual(pov.X, 10, 0.01) || !approxEqual(pov.Y, -20, 0.01) || !approxEqual(pov.Z, 5, 0.01) {
		t.Errorf("PointOfView = %v, want ~(10, -20, 5)", pov)
	}
}

func TestViewportDollyLandsExactly(t *testing.T) {
	v := NewViewport(0, 0, 200, 100)
	pov := Pt3(0.1, -0.2, 0.3)
	v.DollyTo(pov, 1.0, ease.InOutQuad)

	v.Update(0.25)
	v.Update(0.75)
	if v.Dollying() {
		t.Fatal("Dollying = true after full duration")
	}
	if v.PointOfView != pov {
		t.Errorf("PointOfView = %v (z %.17g), want %v", v.PointOfView, v.PointOfView.Z, pov)
	}
}

func TestViewportDollyReplaces(t *testing.T) {
	v := NewViewport(0, 0, 200, 100)
	v.DollyTo(Pt3(100, 0, 1), 1.0, ease.Linear)
	v.Update(0.5)
	v.DollyTo(Pt3(0, 0, 1), 0.5, ease.Linear)
	v.Update(0.5)

	if !approxEqual(v.PointOfView.X, 0, 0.01) {
		t.Errorf("X = %f, want ~0 after the replacing dolly", v.PointOfView.X)
	}
}

func TestViewportStopDolly(t *testing.T) {
	v := NewViewport(0, 0, 200, 100)
	v.DollyTo(Pt3(100, 0, 1), 1.0, ease.Linear)
	v.Update(0.25)
	v.StopDolly()
	x := v.PointOfView.X

	v.Update(0.5)
	if v.Dollying() {
		t.Error("Dollying = true after StopDolly")
	}
	if v.PointOfView.X != x {
		t.Errorf("X moved from %f to %f after StopDolly", x, v.PointOfView.X)
	}
}

func TestViewportPan(t *testing.T) {
	v := NewViewport(0, 0, 200, 100)
	card := spatialCard(Pt3(0, 0, 0), 10, 5, colorRed)
	v.Add(card)

	v.Pan(20, 10)
	if v.PointOfView != Pt3(20, 10, 1) {
		t.Errorf("PointOfView = %v, want (20, 10, 1)", v.PointOfView)
	}
	drawViewport(v)
	if card.X != 70 || card.Y != 55 {
		t.Errorf("card at (%d, %d), want (70, 55) after pan", card.X, card.Y)
	}
}

func TestViewportUpdateWithoutDolly(t *testing.T) {
	v := NewViewport(0, 0, 200, 100)
	v.Update(1)
	if v.PointOfView != Pt3(0, 0, 1) {
		t.Errorf("PointOfView = %v, want unchanged", v.PointOfView)
	}
}

func TestViewportIsUpdater(t *testing.T) {
	var _ Updater = NewViewport(0, 0, 1, 1)
}
