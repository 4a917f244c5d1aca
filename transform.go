package loot

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
// Applying the result to a point applies child first, then parent.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

func translateAffine(tx, ty float64) [6]float64 {
	return [6]float64{1, 0, 0, 1, tx, ty}
}

func scaleAffine(sx, sy float64) [6]float64 {
	return [6]float64{sx, 0, 0, sy, 0, 0}
}

// rotateAffine rotates by angle radians about (cx, cy). Positive angles turn
// +X toward +Y, which is clockwise on a Y-down screen.
func rotateAffine(angle, cx, cy float64) [6]float64 {
	sin, cos := math.Sincos(angle)
	return [6]float64{
		cos, sin, -sin, cos,
		cx - cos*cx + sin*cy,
		cy - sin*cx - cos*cy,
	}
}

// transformRect returns the axis-aligned bounds of the rectangle (x, y, w, h)
// mapped through m.
func transformRect(m [6]float64, x, y, w, h float64) Rect {
	x0, y0 := transformPoint(m, x, y)
	x1, y1 := transformPoint(m, x+w, y)
	x2, y2 := transformPoint(m, x+w, y+h)
	x3, y3 := transformPoint(m, x, y+h)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// frame holds the parameters a container maps its inner coordinate system
// with. Both matrices are derived from it on demand.
type frame struct {
	x, y, w, h     float64
	viewW, viewH   float64
	originX        float64
	originY        float64
	rotates        bool
	angle          float64
	pivotX, pivotY float64 // rotation center as a ratio of w and h
}

// outward maps internal (view) coordinates to external coordinates:
//
//	Translate(x, y) * [Rotate(angle, pivot)] * Scale(w/viewW, h/viewH) * Translate(viewW*originX, viewH*originY)
func (f frame) outward() [6]float64 {
	m := translateAffine(f.x, f.y)
	if f.rotates {
		m = multiplyAffine(m, rotateAffine(f.angle, f.pivotX*f.w, f.pivotY*f.h))
	}
	m = multiplyAffine(m, scaleAffine(f.w/f.viewW, f.h/f.viewH))
	return multiplyAffine(m, translateAffine(f.viewW*f.originX, f.viewH*f.originY))
}

// inward is the algebraic inverse of outward, composed in reverse order from
// negated parameters. A zero-sized box yields non-finite entries instead of
// a panic.
func (f frame) inward() [6]float64 {
	m := translateAffine(-f.viewW*f.originX, -f.viewH*f.originY)
	m = multiplyAffine(m, scaleAffine(f.viewW/f.w, f.viewH/f.h))
	if f.rotates {
		m = multiplyAffine(m, rotateAffine(-f.angle, f.pivotX*f.w, f.pivotY*f.h))
	}
	return multiplyAffine(m, translateAffine(-f.x, -f.y))
}

// truncate converts v to an int toward zero. ok is false for NaN and
// infinities, whose conversion is undefined.
func truncate(v float64) (n int, ok bool) {
	if !isFinite(v) {
		return 0, false
	}
	return int(v), true
}

func truncatePoint(x, y float64) (int, int, bool) {
	xi, okX := truncate(x)
	yi, okY := truncate(y)
	return xi, yi, okX && okY
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
