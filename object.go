package loot

// Drawable paints itself onto a Canvas using the canvas transform as its
// coordinate frame.
type Drawable interface {
	Draw(c Canvas)
}

// HitTester answers point queries in its container's coordinate space.
type HitTester interface {
	HitTest(x, y int) bool
}

// HitTester3D answers point queries in a Viewport's 3D space.
type HitTester3D interface {
	HitTest3D(p Point3D) bool
	HitTest3DWithin(p Point3D, radiusZ float64) bool
}

// Visual is any element a container can hold.
type Visual interface {
	Drawable
	HitTester
	Base() *Object
}

// Visual3D is a Visual with a 3D placement. A Viewport projects those whose
// placement is PlacementSpatial.
type Visual3D interface {
	Visual
	HitTester3D
	Base3D() *Object3D
}

// Container is a Visual that hosts children in its own coordinate system.
type Container interface {
	Visual
	Children() []Visual
	ObjectAt(x, y int) Visual
	ToInternal(x, y int) (int, int)
	ToExternal(x, y int) (int, int)
}

// Object is the 2D box every scene element occupies in its container's
// coordinate space. Negative extents mirror the element along that axis.
// Containers holding a Viewport child may rewrite the box every frame.
type Object struct {
	X, Y          int
	Width, Height int

	// State is sampled by the holding container once per pass.
	State State
	// IgnoreHitTest excludes the element from its container's hit tests.
	IgnoreHitTest bool
}

// Base returns o. Embedding Object gives every element access to its box
// through the Visual interface.
func (o *Object) Base() *Object { return o }

// Hide keeps the element in its container but stops drawing and hit testing it.
func (o *Object) Hide() {
	if o.State != StateRemoved {
		o.State = StateHidden
	}
}

// Show undoes Hide.
func (o *Object) Show() {
	if o.State != StateRemoved {
		o.State = StateActive
	}
}

// Remove marks the element for removal by its container's next Draw.
func (o *Object) Remove() { o.State = StateRemoved }

// Hidden reports whether the element is skipped by draws and hit tests.
func (o *Object) Hidden() bool { return o.State != StateActive }

// Removed reports whether the element is pending removal.
func (o *Object) Removed() bool { return o.State == StateRemoved }

// HitTest reports whether (x, y) lies inside the box, edges included. The
// interval is normalized so negative extents test the mirrored box. A box
// with zero area never hits.
func (o *Object) HitTest(x, y int) bool {
	if o.Width == 0 || o.Height == 0 {
		return false
	}
	return inSpan(x, o.X, o.X+o.Width) && inSpan(y, o.Y, o.Y+o.Height)
}

func inSpan(v, a, b int) bool {
	if a > b {
		a, b = b, a
	}
	return a <= v && v <= b
}

// Bounds returns the normalized box as a Rect.
func (o *Object) Bounds() Rect {
	r := Rect{X: float64(o.X), Y: float64(o.Y), Width: float64(o.Width), Height: float64(o.Height)}
	if r.Width < 0 {
		r.X, r.Width = r.X+r.Width, -r.Width
	}
	if r.Height < 0 {
		r.Y, r.Height = r.Y+r.Height, -r.Height
	}
	return r
}

// RelativePosition returns (x, y) relative to the box's anchor corner.
func (o *Object) RelativePosition(x, y int) (int, int) {
	return x - o.X, y - o.Y
}

// RelativePositionFromCenter returns (x, y) relative to the box center.
func (o *Object) RelativePositionFromCenter(x, y int) (int, int) {
	return o.RelativePosition(x-o.Width/2, y-o.Height/2)
}

// testable reports whether a container should consider v during hit tests.
func testable(v Visual) bool {
	b := v.Base()
	return b.State == StateActive && !b.IgnoreHitTest
}
