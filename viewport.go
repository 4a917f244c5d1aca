package loot

import "math"

// Viewport is a Layer that hosts a 3D space. Every Draw projects its spatial
// children onto the view through a pinhole camera at PointOfView looking
// down -Z, depth sorts them and paints them before its planar children.
//
// Spatial children outside [MinDistance, MaxDistance] are left out of the
// frame, both from painting and from hit testing, until a later Draw finds
// them in range again. Hit tests and 3D conversions use the sets built by
// the most recent Draw.
type Viewport struct {
	Layer

	// PointOfView is the camera position in 3D space.
	PointOfView Point3D
	// BaseDistance is the camera distance at which an element appears at its
	// authored size.
	BaseDistance float64
	// MinDistance and MaxDistance bound the visible depth, measured as
	// PointOfView.Z - Pos.Z.
	MinDistance, MaxDistance float64
	// Origin3DX and Origin3DY place the projection center at this fraction
	// of the view.
	Origin3DX, Origin3DY float64
	// ExponentZ shapes perspective falloff: the depth factor is raised to
	// this power.
	ExponentZ float64

	spatial []Visual3D
	planar  []Visual
	sortBuf []Visual3D

	dolly *dollyAnim
}

// NewViewport creates a planar viewport whose view matches its box size.
func NewViewport(x, y, w, h int) *Viewport {
	v := &Viewport{Layer: *NewLayer(x, y, w, h)}
	viewportDefaults(v)
	return v
}

// NewViewportView creates a planar viewport with an explicit view size.
func NewViewportView(x, y, w, h int, viewW, viewH float64) *Viewport {
	v := &Viewport{Layer: *NewLayerView(x, y, w, h, viewW, viewH)}
	viewportDefaults(v)
	return v
}

// NewSpatialViewport creates a viewport that is itself placed in an
// enclosing viewport's 3D space.
func NewSpatialViewport(pos Point3D, radiusX, radiusY float64) *Viewport {
	v := &Viewport{Layer: *NewSpatialLayer(pos, radiusX, radiusY)}
	viewportDefaults(v)
	return v
}

// viewportDefaults puts the camera one unit in front of the origin with an
// unbounded depth range and linear perspective.
func viewportDefaults(v *Viewport) {
	v.PointOfView = Point3D{Z: 1}
	v.BaseDistance = 1
	v.MinDistance = 0
	v.MaxDistance = math.Inf(1)
	v.Origin3DX = 0.5
	v.Origin3DY = 0.5
	v.ExponentZ = 1
}

// Frame returns the spatial children placed by the last Draw, nearest first,
// and the planar children it painted. The slices MUST NOT be mutated.
func (v *Viewport) Frame() (spatial []Visual3D, planar []Visual) {
	return v.spatial, v.planar
}

// Draw clips to the viewport box, places and sorts the spatial children, then
// paints the spatial set back to front followed by the planar set in
// reverse insertion order.
func (v *Viewport) Draw(c Canvas) {
	c = c.ClipRect(float64(v.X), float64(v.Y), float64(v.Width), float64(v.Height))
	inner := c.Concat(v.frame().outward())

	v.classify()

	for i := len(v.spatial) - 1; i >= 0; i-- {
		v.spatial[i].Draw(inner)
	}
	for i := len(v.planar) - 1; i >= 0; i-- {
		v.planar[i].Draw(inner)
	}
}

// classify rebuilds the frame sets from the child list, dropping removed
// children and rewriting the box of every spatial child in range.
func (v *Viewport) classify() {
	clear(v.spatial)
	v.spatial = v.spatial[:0]
	clear(v.planar)
	v.planar = v.planar[:0]

	removed := false
	for _, child := range v.children {
		switch child.Base().State {
		case StateRemoved:
			removed = true
			continue
		case StateHidden:
			continue
		}
		if s, ok := child.(Visual3D); ok && s.Base3D().IsSpatial() {
			if v.place(s.Base3D()) {
				v.spatial = append(v.spatial, s)
			}
			continue
		}
		v.planar = append(v.planar, child)
	}
	if removed {
		v.children = compactRemoved(v.children)
	}
	v.sortBuf = depthSort(v.spatial, v.sortBuf)
}

// place projects o's 3D box onto the view. It reports false when o is out
// of the depth range or its projection is degenerate.
func (v *Viewport) place(o *Object3D) bool {
	f, ok := v.depthFactor(o.Pos.Z)
	if !ok {
		return false
	}
	x, okX := truncate(v.ViewWidth*v.Origin3DX + (o.Pos.X-v.PointOfView.X-o.RadiusX)/f)
	y, okY := truncate(v.ViewHeight*v.Origin3DY - (o.Pos.Y-v.PointOfView.Y+o.RadiusY)/f)
	w, okW := truncate(o.RadiusX / f * 2)
	h, okH := truncate(o.RadiusY / f * 2)
	if !okX || !okY || !okW || !okH {
		return false
	}
	o.X, o.Y, o.Width, o.Height = x, y, w, h
	return true
}

// depthFactor returns the perspective divisor for depth z. A zero or
// non-finite factor is treated like a depth out of range.
func (v *Viewport) depthFactor(z float64) (float64, bool) {
	d := v.PointOfView.Z - z
	if d < v.MinDistance || d > v.MaxDistance {
		return 0, false
	}
	return v.scaleFactor(d)
}

func (v *Viewport) scaleFactor(d float64) (float64, bool) {
	f := d / v.BaseDistance
	if v.ExponentZ != 1 {
		f = math.Pow(f, v.ExponentZ)
	}
	if f == 0 || !isFinite(f) {
		return 0, false
	}
	return f, true
}

// projectWith maps p onto the view with the divisor f. ok is false when the
// result is not finite or falls outside the view.
func (v *Viewport) projectWith(p Point3D, f float64) (x, y int, ok bool) {
	x, y, ok = truncatePoint(
		v.ViewWidth*v.Origin3DX+(p.X-v.PointOfView.X)/f,
		v.ViewHeight*v.Origin3DY-(p.Y-v.PointOfView.Y)/f,
	)
	if !ok {
		return 0, 0, false
	}
	if float64(x) < 0 || float64(x) > v.ViewWidth || float64(y) < 0 || float64(y) > v.ViewHeight {
		return 0, 0, false
	}
	return x, y, true
}

// Project maps a point of the viewport's 3D space to view coordinates with
// the same camera Draw uses. ok is false when p is out of the depth range or
// projects outside the view.
func (v *Viewport) Project(p Point3D) (x, y int, ok bool) {
	f, ok := v.depthFactor(p.Z)
	if !ok {
		return 0, 0, false
	}
	return v.projectWith(p, f)
}

// Visible reports whether p is in the depth range and projects inside the
// view.
func (v *Viewport) Visible(p Point3D) bool {
	_, _, ok := v.Project(p)
	return ok
}

// VisibleWithin is Visible with the depth range widened by radiusZ on both
// ends.
func (v *Viewport) VisibleWithin(p Point3D, radiusZ float64) bool {
	d := v.PointOfView.Z - p.Z
	if d+radiusZ < v.MinDistance || d-radiusZ > v.MaxDistance {
		return false
	}
	f, ok := v.scaleFactor(d)
	if !ok {
		return false
	}
	_, _, ok = v.projectWith(p, f)
	return ok
}

// HitTest reports whether (x, y), in the viewport's container space, hits a
// child painted by the last Draw.
func (v *Viewport) HitTest(x, y int) bool {
	return v.ObjectAt(x, y) != nil
}

// ObjectAt returns the topmost child painted by the last Draw under (x, y):
// planar children first, then spatial children nearest first.
func (v *Viewport) ObjectAt(x, y int) Visual {
	if !v.Object.HitTest(x, y) {
		return nil
	}
	ix, iy, ok := truncatePoint(transformPoint(v.frame().inward(), float64(x), float64(y)))
	if !ok {
		return nil
	}
	if hit := objectAt(v.planar, ix, iy); hit != nil {
		return hit
	}
	for _, child := range v.spatial {
		if testable(child) && child.HitTest(ix, iy) {
			return child
		}
	}
	return nil
}

// HitTest3D reports whether a spatial child is hit by p, given in the
// viewport's own 3D space.
func (v *Viewport) HitTest3D(p Point3D) bool {
	return v.ObjectAt3D(p) != nil
}

// HitTest3DWithin is HitTest3D with a depth tolerance.
func (v *Viewport) HitTest3DWithin(p Point3D, radiusZ float64) bool {
	return v.ObjectAt3DWithin(p, radiusZ) != nil
}

// ObjectAt3D returns the nearest spatial child hit by p. A nested Viewport is
// queried by projecting p onto this view and unprojecting it into the
// nested viewport's 3D space.
func (v *Viewport) ObjectAt3D(p Point3D) Visual3D {
	if !v.Visible(p) {
		return nil
	}
	return v.objectAt3D(p, func(h HitTester3D, q Point3D) bool { return h.HitTest3D(q) })
}

// ObjectAt3DWithin is ObjectAt3D with a depth tolerance.
func (v *Viewport) ObjectAt3DWithin(p Point3D, radiusZ float64) Visual3D {
	if !v.VisibleWithin(p, radiusZ) {
		return nil
	}
	return v.objectAt3D(p, func(h HitTester3D, q Point3D) bool { return h.HitTest3DWithin(q, radiusZ) })
}

// nested is implemented by containers whose 3D space differs from their
// parent's, so a parent point must be re-projected before querying them.
type nested interface {
	ToInternal3D(x, y int) (Point3D, bool)
}

func (v *Viewport) objectAt3D(p Point3D, hit func(HitTester3D, Point3D) bool) Visual3D {
	for _, child := range v.spatial {
		if !testable(child) {
			continue
		}
		if inner, ok := child.(nested); ok {
			x, y, ok := v.Project(p)
			if !ok {
				continue
			}
			q, ok := inner.ToInternal3D(x, y)
			if !ok {
				continue
			}
			if hit(child, q) {
				return child
			}
			continue
		}
		if hit(child, p) {
			return child
		}
	}
	return nil
}

// ToInternal3D converts a point in the viewport's container space to the 3D
// point on the face of the spatial child under it. ok is false when no
// spatial child is there.
func (v *Viewport) ToInternal3D(x, y int) (Point3D, bool) {
	target, ok := v.ObjectAt(x, y).(Visual3D)
	if !ok || !target.Base3D().IsSpatial() {
		return Point3D{}, false
	}
	ix, iy := v.ToInternal(x, y)
	return target.Base3D().PlanarTo3D(ix, iy), true
}

// Unproject converts a view point to the 3D point on the face of the spatial
// child under it.
func (v *Viewport) Unproject(x, y int) (Point3D, bool) {
	ex, ey := v.ToExternal(x, y)
	target, ok := v.ObjectAt(ex, ey).(Visual3D)
	if !ok || !target.Base3D().IsSpatial() {
		return Point3D{}, false
	}
	return target.Base3D().PlanarTo3D(x, y), true
}

// RelativePosition3DFrom returns the point under (x, y), given in the
// viewport's container space, on origin's face relative to origin's center.
// ok is false when origin was not placed by the last Draw.
func (v *Viewport) RelativePosition3DFrom(origin Visual3D, x, y int) (Point3D, bool) {
	if !v.placed(origin) {
		return Point3D{}, false
	}
	ix, iy := v.ToInternal(x, y)
	return origin.Base3D().PlanarToRelative3D(ix, iy), true
}

// RelativePositionFrom projects p onto origin's depth plane, scaling its
// offset from origin by the depth distance between them, and returns the
// view coordinates of the result. A point already on the plane is used as
// is.
func (v *Viewport) RelativePositionFrom(origin Visual3D, p Point3D) (x, y int, ok bool) {
	if !v.placed(origin) {
		return 0, 0, false
	}
	o := origin.Base3D().Pos
	f := math.Abs((o.Z - p.Z) / v.BaseDistance)
	if f == 0 || !isFinite(f) {
		f = 1
	}
	return v.Project(Point3D{
		X: (p.X-o.X)/f + o.X,
		Y: (p.Y-o.Y)/f + o.Y,
		Z: o.Z,
	})
}

func (v *Viewport) placed(target Visual3D) bool {
	for _, s := range v.spatial {
		if s == target {
			return true
		}
	}
	return false
}
