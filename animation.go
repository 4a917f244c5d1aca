package loot

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields of one element simultaneously.
// gween interpolates in float32; each field is set to its exact float64
// target once its tween finishes.
// Create one via the convenience constructors (Tween3D, TweenRadius,
// TweenAngle, TweenTint) and call Update(dt) each frame, or hand it to
// Scene.AddTween. If the element is marked for removal the group stops
// immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	to     [4]float64
	target *Object
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target fields. If the target has been removed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.Removed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		if finished {
			*g.fields[i] = g.to[i]
			continue
		}
		*g.fields[i] = float64(val)
		allDone = false
	}
	g.Done = allDone
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.to[g.count] = to
	g.count++
}

// Tween3D animates obj.Pos to the given point.
func Tween3D(obj *Object3D, to Point3D, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: &obj.Object}
	g.add(&obj.Pos.X, to.X, duration, fn)
	g.add(&obj.Pos.Y, to.Y, duration, fn)
	g.add(&obj.Pos.Z, to.Z, duration, fn)
	return g
}

// TweenRadius animates obj's half extents.
func TweenRadius(obj *Object3D, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: &obj.Object}
	g.add(&obj.RadiusX, toX, duration, fn)
	g.add(&obj.RadiusY, toY, duration, fn)
	return g
}

// TweenAngle animates a rotatable layer's angle, in radians.
func TweenAngle(r *RotatableLayer, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: &r.Object}
	g.add(&r.Angle, to, duration, fn)
	return g
}

// TweenTint animates all four components of a sprite's tint.
func TweenTint(s *Sprite, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: &s.Object}
	g.add(&s.Tint.R, to.R, duration, fn)
	g.add(&s.Tint.G, to.G, duration, fn)
	g.add(&s.Tint.B, to.B, duration, fn)
	g.add(&s.Tint.A, to.A, duration, fn)
	return g
}
