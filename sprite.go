package loot

import "image"

// Sprite is a planar element that paints an image stretched over its box.
// With a nil Image it paints a solid rectangle in Fill, and nothing when
// Fill is transparent.
type Sprite struct {
	Object
	Image image.Image
	Tint  Color
	Fill  Color
}

// NewSprite creates a sprite with a white tint.
func NewSprite(x, y, w, h int, img image.Image) *Sprite {
	return &Sprite{
		Object: Object{X: x, Y: y, Width: w, Height: h},
		Image:  img,
		Tint:   ColorWhite,
	}
}

// NewRect creates an imageless sprite painting a solid rectangle.
func NewRect(x, y, w, h int, c Color) *Sprite {
	return &Sprite{Object: Object{X: x, Y: y, Width: w, Height: h}, Tint: ColorWhite, Fill: c}
}

func (s *Sprite) Draw(c Canvas) {
	drawBox(c, &s.Object, s.Image, s.Tint, s.Fill)
}

// Sprite3D is a Sprite that can be placed in a Viewport's 3D space.
type Sprite3D struct {
	Object3D
	Image image.Image
	Tint  Color
	Fill  Color
}

// NewSprite3D creates a spatial sprite centered at pos.
func NewSprite3D(pos Point3D, radiusX, radiusY float64, img image.Image) *Sprite3D {
	return &Sprite3D{
		Object3D: NewSpatialObject3D(pos, radiusX, radiusY),
		Image:    img,
		Tint:     ColorWhite,
	}
}

// NewPlanarSprite3D creates a sprite3D whose box is authored directly.
func NewPlanarSprite3D(x, y, w, h int, img image.Image) *Sprite3D {
	return &Sprite3D{
		Object3D: NewPlanarObject3D(x, y, w, h),
		Image:    img,
		Tint:     ColorWhite,
	}
}

func (s *Sprite3D) Draw(c Canvas) {
	drawBox(c, &s.Object, s.Image, s.Tint, s.Fill)
}

func drawBox(c Canvas, o *Object, img image.Image, tint, fill Color) {
	if img != nil {
		c.DrawImage(img, o.X, o.Y, o.Width, o.Height, tint)
		return
	}
	c.FillRect(o.X, o.Y, o.Width, o.Height, fill)
}
