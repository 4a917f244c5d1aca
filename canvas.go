package loot

import "image"

// Surface is a paint target. Every call receives the complete device
// transform and the device-space clip (nil when unclipped), so surfaces keep
// no transform state of their own.
type Surface interface {
	// DrawImage paints img with m mapping image pixel space, whose origin is
	// the top-left of img.Bounds(), to device space.
	DrawImage(img image.Image, m [6]float64, tint Color, clip *Rect)
	// FillRect paints the unit square mapped to device space by m.
	FillRect(m [6]float64, c Color, clip *Rect)
	// DrawText paints a single line whose baseline starts at the origin of
	// the space m maps to device space.
	DrawText(s string, size float64, m [6]float64, c Color, clip *Rect)
}

// Canvas is the graphics context passed down a Draw traversal. It is a value:
// Concat and ClipRect return modified copies, so a callee can never change
// the state its caller draws with.
type Canvas struct {
	surface Surface
	m       [6]float64
	clip    Rect
	clipped bool
}

// NewCanvas returns an unclipped, untransformed canvas painting onto s.
func NewCanvas(s Surface) Canvas {
	return Canvas{surface: s, m: identityTransform}
}

// Surface returns the paint target.
func (c Canvas) Surface() Surface { return c.surface }

// Transform returns the current user-to-device matrix.
func (c Canvas) Transform() [6]float64 { return c.m }

// Clip returns the device-space clip rectangle and whether one is set.
func (c Canvas) Clip() (Rect, bool) { return c.clip, c.clipped }

// Concat returns a copy of c whose transform applies m before the current one.
func (c Canvas) Concat(m [6]float64) Canvas {
	c.m = multiplyAffine(c.m, m)
	return c
}

// ClipRect returns a copy of c clipped to the device-space bounds of the
// user-space rectangle (x, y, w, h), intersected with any existing clip.
// Negative extents are normalized.
func (c Canvas) ClipRect(x, y, w, h float64) Canvas {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	r := transformRect(c.m, x, y, w, h)
	if c.clipped {
		r = c.clip.Intersect(r)
	}
	c.clip = r
	c.clipped = true
	return c
}

func (c Canvas) clipPtr() *Rect {
	if !c.clipped {
		return nil
	}
	r := c.clip
	return &r
}

// culled reports whether nothing drawn through c can be visible.
func (c Canvas) culled() bool {
	return c.surface == nil || (c.clipped && c.clip.Empty())
}

// DrawImage paints img stretched over the box (x, y, w, h). Negative extents
// mirror the image. A nil image or a zero-area box paints nothing.
func (c Canvas) DrawImage(img image.Image, x, y, w, h int, tint Color) {
	if img == nil || w == 0 || h == 0 || c.culled() {
		return
	}
	b := img.Bounds()
	if b.Empty() {
		return
	}
	m := multiplyAffine(c.m, translateAffine(float64(x), float64(y)))
	m = multiplyAffine(m, scaleAffine(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy())))
	c.surface.DrawImage(img, m, tint, c.clipPtr())
}

// FillRect paints the box (x, y, w, h) with col.
func (c Canvas) FillRect(x, y, w, h int, col Color) {
	if col.A <= 0 || w == 0 || h == 0 || c.culled() {
		return
	}
	m := multiplyAffine(c.m, translateAffine(float64(x), float64(y)))
	m = multiplyAffine(m, scaleAffine(float64(w), float64(h)))
	c.surface.FillRect(m, col, c.clipPtr())
}

// DrawText paints s with its baseline starting at (x, y).
func (c Canvas) DrawText(s string, x, y int, size float64, col Color) {
	if s == "" || size <= 0 || col.A <= 0 || c.culled() {
		return
	}
	m := multiplyAffine(c.m, translateAffine(float64(x), float64(y)))
	c.surface.DrawText(s, size, m, col, c.clipPtr())
}
