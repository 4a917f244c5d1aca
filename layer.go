package loot

import "math"

// Layer is a container that gives its children their own 2D coordinate
// system (the view) and maps it onto the layer's box. Children are painted
// in reverse insertion order, so the earliest added child ends up on top,
// and hit tested in insertion order, so the same child wins a hit.
type Layer struct {
	Object3D

	// ViewWidth and ViewHeight are the extents of the internal coordinate
	// system; it is scaled to fill Width x Height.
	ViewWidth, ViewHeight float64
	// ViewOriginX and ViewOriginY place internal (0, 0) at this fraction of
	// the view. (0.5, 0.5) centers the origin.
	ViewOriginX, ViewOriginY float64

	children []Visual
}

// NewLayer creates a planar layer whose view matches its box size.
func NewLayer(x, y, w, h int) *Layer {
	return NewLayerView(x, y, w, h, math.Abs(float64(w)), math.Abs(float64(h)))
}

// NewLayerView creates a planar layer with an explicit view size.
func NewLayerView(x, y, w, h int, viewW, viewH float64) *Layer {
	return &Layer{
		Object3D:   NewPlanarObject3D(x, y, w, h),
		ViewWidth:  viewW,
		ViewHeight: viewH,
	}
}

// NewSpatialLayer creates a layer placed in 3D space whose view spans its
// full diameter.
func NewSpatialLayer(pos Point3D, radiusX, radiusY float64) *Layer {
	return NewSpatialLayerView(pos, radiusX, radiusY, math.Abs(radiusX*2), math.Abs(radiusY*2))
}

// NewSpatialLayerView creates a spatial layer with an explicit view size.
func NewSpatialLayerView(pos Point3D, radiusX, radiusY, viewW, viewH float64) *Layer {
	return &Layer{
		Object3D:   NewSpatialObject3D(pos, radiusX, radiusY),
		ViewWidth:  viewW,
		ViewHeight: viewH,
	}
}

// Add appends children. Later children are painted underneath earlier ones.
// Panics on a nil child or when adding the layer to itself.
func (l *Layer) Add(children ...Visual) {
	for _, child := range children {
		l.checkChild(child)
	}
	l.children = append(l.children, children...)
}

// Insert places child at index i of the child list.
func (l *Layer) Insert(i int, child Visual) {
	l.checkChild(child)
	if i < 0 || i > len(l.children) {
		panic("loot: child index out of range")
	}
	l.children = append(l.children, nil)
	copy(l.children[i+1:], l.children[i:])
	l.children[i] = child
}

func (l *Layer) checkChild(child Visual) {
	if child == nil {
		panic("loot: cannot add nil child")
	}
	if child.Base() == &l.Object {
		panic("loot: cannot add a container to itself")
	}
}

// Children returns the child list in insertion order. The returned slice
// MUST NOT be mutated.
func (l *Layer) Children() []Visual {
	return l.children
}

// Len returns the number of children, including those pending removal.
func (l *Layer) Len() int {
	return len(l.children)
}

// Clear drops every child.
func (l *Layer) Clear() {
	clear(l.children)
	l.children = l.children[:0]
}

func (l *Layer) frame() frame {
	return frame{
		x:       float64(l.X),
		y:       float64(l.Y),
		w:       float64(l.Width),
		h:       float64(l.Height),
		viewW:   l.ViewWidth,
		viewH:   l.ViewHeight,
		originX: l.ViewOriginX,
		originY: l.ViewOriginY,
	}
}

// Transforms returns the matrices mapping the view to the layer's container
// (outward) and back (inward), computed from the current fields.
func (l *Layer) Transforms() (outward, inward [6]float64) {
	f := l.frame()
	return f.outward(), f.inward()
}

// Draw paints the children through a copy of c carrying the outward
// transform, and drops children marked for removal.
func (l *Layer) Draw(c Canvas) {
	l.children = drawChildren(c.Concat(l.frame().outward()), l.children, true)
}

// HitTest reports whether (x, y), in the layer's container space, hits any
// child.
func (l *Layer) HitTest(x, y int) bool {
	return l.ObjectAt(x, y) != nil
}

// ObjectAt returns the first child hit by (x, y), or nil.
func (l *Layer) ObjectAt(x, y int) Visual {
	return l.objectAtFrame(l.frame(), x, y)
}

// HitTest3D maps p onto the layer's face and hit tests the children there.
// p must first hit the layer's own 3D box.
func (l *Layer) HitTest3D(p Point3D) bool {
	if !l.Object3D.HitTest3D(p) {
		return false
	}
	return l.hitFace(l.frame(), p)
}

// HitTest3DWithin is HitTest3D with a depth tolerance.
func (l *Layer) HitTest3DWithin(p Point3D, radiusZ float64) bool {
	if !l.Object3D.HitTest3DWithin(p, radiusZ) {
		return false
	}
	return l.hitFace(l.frame(), p)
}

// ToInternal converts a point in the layer's container space to the view,
// truncating toward zero.
func (l *Layer) ToInternal(x, y int) (int, int) {
	return toInternal(l.frame(), x, y)
}

// ToExternal converts a view point to the layer's container space,
// truncating toward zero.
func (l *Layer) ToExternal(x, y int) (int, int) {
	return toExternal(l.frame(), x, y)
}

// ToInternalF is ToInternal without truncation.
func (l *Layer) ToInternalF(x, y float64) (float64, float64) {
	return transformPoint(l.frame().inward(), x, y)
}

// ToExternalF is ToExternal without truncation.
func (l *Layer) ToExternalF(x, y float64) (float64, float64) {
	return transformPoint(l.frame().outward(), x, y)
}

func (l *Layer) objectAtFrame(f frame, x, y int) Visual {
	if !l.Object.HitTest(x, y) {
		return nil
	}
	ix, iy, ok := truncatePoint(transformPoint(f.inward(), float64(x), float64(y)))
	if !ok {
		return nil
	}
	return objectAt(l.children, ix, iy)
}

func (l *Layer) hitFace(f frame, p Point3D) bool {
	x, y := l.SpatialTo2D(p)
	ix, iy, ok := truncatePoint(transformPoint(f.inward(), float64(x), float64(y)))
	if !ok {
		return false
	}
	return objectAt(l.children, ix, iy) != nil
}

// toInternal and toExternal yield (0, 0) when the mapping is degenerate.
func toInternal(f frame, x, y int) (int, int) {
	ix, iy, _ := truncatePoint(transformPoint(f.inward(), float64(x), float64(y)))
	return ix, iy
}

func toExternal(f frame, x, y int) (int, int) {
	ex, ey, _ := truncatePoint(transformPoint(f.outward(), float64(x), float64(y)))
	return ex, ey
}
