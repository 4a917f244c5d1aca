package loot

import "math"

// RotatableLayer is a Layer whose view is also rotated about a pivot inside
// its box. Unlike Layer, children are painted in insertion order, so the
// last added child ends up on top.
type RotatableLayer struct {
	Layer

	// Angle is the rotation in radians, clockwise on screen.
	Angle float64
	// RotateOriginX and RotateOriginY place the pivot at this fraction of
	// the box. Defaults to the center.
	RotateOriginX, RotateOriginY float64
}

// NewRotatableLayer creates a planar rotatable layer whose view matches its
// box size.
func NewRotatableLayer(x, y, w, h int) *RotatableLayer {
	return NewRotatableLayerView(x, y, w, h, math.Abs(float64(w)), math.Abs(float64(h)))
}

// NewRotatableLayerView creates a planar rotatable layer with an explicit
// view size.
func NewRotatableLayerView(x, y, w, h int, viewW, viewH float64) *RotatableLayer {
	return &RotatableLayer{
		Layer:         *NewLayerView(x, y, w, h, viewW, viewH),
		RotateOriginX: 0.5,
		RotateOriginY: 0.5,
	}
}

// NewSpatialRotatableLayer creates a rotatable layer placed in 3D space.
func NewSpatialRotatableLayer(pos Point3D, radiusX, radiusY float64) *RotatableLayer {
	return &RotatableLayer{
		Layer:         *NewSpatialLayer(pos, radiusX, radiusY),
		RotateOriginX: 0.5,
		RotateOriginY: 0.5,
	}
}

// Rotate adds delta radians to the angle.
func (r *RotatableLayer) Rotate(delta float64) {
	r.Angle += delta
}

func (r *RotatableLayer) frame() frame {
	f := r.Layer.frame()
	f.rotates = true
	f.angle = r.Angle
	f.pivotX = r.RotateOriginX
	f.pivotY = r.RotateOriginY
	return f
}

// Transforms returns the outward and inward matrices including rotation.
func (r *RotatableLayer) Transforms() (outward, inward [6]float64) {
	f := r.frame()
	return f.outward(), f.inward()
}

func (r *RotatableLayer) Draw(c Canvas) {
	r.children = drawChildren(c.Concat(r.frame().outward()), r.children, false)
}

// HitTest checks the unrotated box first, then the children through the
// rotated inward transform.
func (r *RotatableLayer) HitTest(x, y int) bool {
	return r.ObjectAt(x, y) != nil
}

func (r *RotatableLayer) ObjectAt(x, y int) Visual {
	return r.objectAtFrame(r.frame(), x, y)
}

func (r *RotatableLayer) HitTest3D(p Point3D) bool {
	if !r.Object3D.HitTest3D(p) {
		return false
	}
	return r.hitFace(r.frame(), p)
}

func (r *RotatableLayer) HitTest3DWithin(p Point3D, radiusZ float64) bool {
	if !r.Object3D.HitTest3DWithin(p, radiusZ) {
		return false
	}
	return r.hitFace(r.frame(), p)
}

func (r *RotatableLayer) ToInternal(x, y int) (int, int) {
	return toInternal(r.frame(), x, y)
}

func (r *RotatableLayer) ToExternal(x, y int) (int, int) {
	return toExternal(r.frame(), x, y)
}

func (r *RotatableLayer) ToInternalF(x, y float64) (float64, float64) {
	return transformPoint(r.frame().inward(), x, y)
}

func (r *RotatableLayer) ToExternalF(x, y float64) (float64, float64) {
	return transformPoint(r.frame().outward(), x, y)
}
