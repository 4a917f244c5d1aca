package loot

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// dollyAnim holds active tweens moving a viewport's point of view. to is
// the exact destination, written once each axis finishes.
type dollyAnim struct {
	to     Point3D
	tweenX *gween.Tween
	tweenY *gween.Tween
	tweenZ *gween.Tween
	doneX  bool
	doneY  bool
	doneZ  bool
}

// DollyTo animates PointOfView to pov over duration seconds. Call Update
// once per frame to advance it. A new call replaces any running dolly.
func (v *Viewport) DollyTo(pov Point3D, duration float32, easeFn ease.TweenFunc) {
	v.dolly = &dollyAnim{
		to:     pov,
		tweenX: gween.New(float32(v.PointOfView.X), float32(pov.X), duration, easeFn),
		tweenY: gween.New(float32(v.PointOfView.Y), float32(pov.Y), duration, easeFn),
		tweenZ: gween.New(float32(v.PointOfView.Z), float32(pov.Z), duration, easeFn),
	}
}

// Dollying reports whether a DollyTo animation is still running.
func (v *Viewport) Dollying() bool {
	return v.dolly != nil
}

// StopDolly cancels a running DollyTo, leaving the camera where it is.
func (v *Viewport) StopDolly() {
	v.dolly = nil
}

// Pan moves the point of view by (dx, dy) on the camera plane.
func (v *Viewport) Pan(dx, dy float64) {
	v.PointOfView.X += dx
	v.PointOfView.Y += dy
}

// Update advances camera animation by dt seconds.
func (v *Viewport) Update(dt float32) {
	d := v.dolly
	if d == nil {
		return
	}
	if !d.doneX {
		val, done := d.tweenX.Update(dt)
		v.PointOfView.X = float64(val)
		if done {
			v.PointOfView.X = d.to.X
		}
		d.doneX = done
	}
	if !d.doneY {
		val, done := d.tweenY.Update(dt)
		v.PointOfView.Y = float64(val)
		if done {
			v.PointOfView.Y = d.to.Y
		}
		d.doneY = done
	}
	if !d.doneZ {
		val, done := d.tweenZ.Update(dt)
		v.PointOfView.Z = float64(val)
		if done {
			v.PointOfView.Z = d.to.Z
		}
		d.doneZ = done
	}
	if d.doneX && d.doneY && d.doneZ {
		v.dolly = nil
	}
}
