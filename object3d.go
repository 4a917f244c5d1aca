package loot

import "math"

// Object3D is an Object that can also be placed in a Viewport's 3D space.
// Its placement is fixed at construction: planar elements keep the box they
// were given, spatial elements get their box recomputed from Pos and the
// radii by every Viewport Draw.
type Object3D struct {
	Object

	// Pos is the center of the element in 3D space.
	Pos Point3D
	// RadiusX and RadiusY are the half extents in 3D units.
	RadiusX, RadiusY float64

	placement Placement
}

// NewPlanarObject3D returns an Object3D whose box is authored directly.
func NewPlanarObject3D(x, y, w, h int) Object3D {
	return Object3D{Object: Object{X: x, Y: y, Width: w, Height: h}}
}

// NewSpatialObject3D returns an Object3D placed at pos with the given half
// extents.
func NewSpatialObject3D(pos Point3D, radiusX, radiusY float64) Object3D {
	return Object3D{Pos: pos, RadiusX: radiusX, RadiusY: radiusY, placement: PlacementSpatial}
}

// Base3D returns o.
func (o *Object3D) Base3D() *Object3D { return o }

// Placement reports how the element's box is authored.
func (o *Object3D) Placement() Placement { return o.placement }

// IsSpatial reports whether a Viewport derives the box from the 3D placement.
func (o *Object3D) IsSpatial() bool { return o.placement == PlacementSpatial }

// HitTest3D reports whether p lies on the element's face: within the radii on
// X and Y and at exactly the same depth.
func (o *Object3D) HitTest3D(p Point3D) bool {
	return math.Abs(p.X-o.Pos.X) <= o.RadiusX &&
		math.Abs(p.Y-o.Pos.Y) <= o.RadiusY &&
		p.Z == o.Pos.Z
}

// HitTest3DWithin is HitTest3D with the depth test relaxed to radiusZ.
func (o *Object3D) HitTest3DWithin(p Point3D, radiusZ float64) bool {
	return math.Abs(p.X-o.Pos.X) <= o.RadiusX &&
		math.Abs(p.Y-o.Pos.Y) <= o.RadiusY &&
		math.Abs(p.Z-o.Pos.Z) <= radiusZ
}

// RelativePosition3D returns p relative to Pos.
func (o *Object3D) RelativePosition3D(p Point3D) Point3D {
	return p.Sub(o.Pos)
}

// PlanarToRelative3D maps a point of the 2D box, given in the container's
// coordinates, onto the element's face in 3D units relative to Pos. Z is
// always 0 and screen Y is flipped to 3D Y.
func (o *Object3D) PlanarToRelative3D(x, y int) Point3D {
	w, h := float64(o.Width), float64(o.Height)
	lx, ly := float64(x-o.X), float64(y-o.Y)
	return Point3D{
		X: safeDiv(lx-w/2, w) * o.RadiusX * 2,
		Y: safeDiv(h/2-ly, h) * o.RadiusY * 2,
	}
}

// PlanarTo3D is PlanarToRelative3D in absolute 3D coordinates, on the plane
// z = Pos.Z.
func (o *Object3D) PlanarTo3D(x, y int) Point3D {
	r := o.PlanarToRelative3D(x, y)
	return Point3D{X: r.X + o.Pos.X, Y: r.Y + o.Pos.Y, Z: o.Pos.Z}
}

// SpatialToRelative2D maps a 3D point onto the element's face and returns it
// relative to the box's anchor corner. Z is ignored.
func (o *Object3D) SpatialToRelative2D(p Point3D) (int, int) {
	fx := safeDiv(p.X-o.Pos.X+o.RadiusX, o.RadiusX) / 2 * float64(o.Width)
	fy := safeDiv(o.RadiusY-(p.Y-o.Pos.Y), o.RadiusY) / 2 * float64(o.Height)
	x, y, _ := truncatePoint(fx, fy)
	return x, y
}

// SpatialTo2D is SpatialToRelative2D in the container's coordinates.
func (o *Object3D) SpatialTo2D(p Point3D) (int, int) {
	x, y := o.SpatialToRelative2D(p)
	return x + o.X, y + o.Y
}

// safeDiv returns a/b, or 0 when b is 0.
func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
