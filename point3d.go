package loot

import (
	"fmt"
	"math"
)

// Point3D is a position in a Viewport's 3D space. X grows to the right, Y
// grows upward and Z grows from deep inside the screen toward the viewer.
type Point3D struct {
	X, Y, Z float64
}

// Pt3 is shorthand for Point3D{x, y, z}.
func Pt3(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// Add returns p + q.
func (p Point3D) Add(q Point3D) Point3D {
	return Point3D{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Sub returns p - q.
func (p Point3D) Sub(q Point3D) Point3D {
	return Point3D{p.X - q.X, p.Y - q.Y, p.Z - q.Z}
}

// Distance returns the Euclidean distance between p and q.
func (p Point3D) Distance(q Point3D) float64 {
	return Distance3D(p.X, p.Y, p.Z, q.X, q.Y, q.Z)
}

// DistanceTo returns the Euclidean distance between p and (x, y, z).
func (p Point3D) DistanceTo(x, y, z float64) float64 {
	return Distance3D(p.X, p.Y, p.Z, x, y, z)
}

// Distance3D returns the Euclidean distance between two points given by
// their coordinates.
func Distance3D(x1, y1, z1, x2, y2, z2 float64) float64 {
	dx, dy, dz := x2-x1, y2-y1, z2-z1
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func (p Point3D) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", p.X, p.Y, p.Z)
}
