package loot

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// EbitenSurface paints onto an Ebitengine image, typically the screen passed
// to ebiten.Game.Draw. Images that are not already *ebiten.Image are
// uploaded once and cached.
type EbitenSurface struct {
	target *ebiten.Image
	// Font renders DrawText. Defaults to DefaultFont.
	Font *Font
	// Filter is the sampling filter for images.
	Filter ebiten.Filter

	uploads map[image.Image]*ebiten.Image
}

// NewEbitenSurface creates a surface drawing onto target.
func NewEbitenSurface(target *ebiten.Image) *EbitenSurface {
	return &EbitenSurface{target: target}
}

// SetTarget switches the destination image, e.g. to each frame's screen.
func (s *EbitenSurface) SetTarget(target *ebiten.Image) {
	s.target = target
}

// Target returns the destination image.
func (s *EbitenSurface) Target() *ebiten.Image {
	return s.target
}

// Clear fills the whole target with c.
func (s *EbitenSurface) Clear(c Color) {
	s.target.Fill(c.RGBA8())
}

// Forget disposes the upload cached for img, if any.
func (s *EbitenSurface) Forget(img image.Image) {
	if up, ok := s.uploads[img]; ok {
		up.Deallocate()
		delete(s.uploads, img)
	}
}

func (s *EbitenSurface) upload(img image.Image) *ebiten.Image {
	if e, ok := img.(*ebiten.Image); ok {
		return e
	}
	if up, ok := s.uploads[img]; ok {
		return up
	}
	if s.uploads == nil {
		s.uploads = make(map[image.Image]*ebiten.Image)
	}
	up := ebiten.NewImageFromImage(img)
	s.uploads[img] = up
	return up
}

// dst returns the target restricted to clip. Sub-images share the parent's
// coordinate system, so device transforms apply unchanged.
func (s *EbitenSurface) dst(clip *Rect) *ebiten.Image {
	if clip == nil {
		return s.target
	}
	r := image.Rect(
		int(math.Floor(clip.X)), int(math.Floor(clip.Y)),
		int(math.Ceil(clip.X+clip.Width)), int(math.Ceil(clip.Y+clip.Height)),
	)
	return s.target.SubImage(r).(*ebiten.Image)
}

func (s *EbitenSurface) DrawImage(img image.Image, m [6]float64, tint Color, clip *Rect) {
	var op ebiten.DrawImageOptions
	op.GeoM = geoM(m)
	op.Filter = s.Filter
	op.ColorScale.Scale(float32(tint.R*tint.A), float32(tint.G*tint.A), float32(tint.B*tint.A), float32(tint.A))
	s.dst(clip).DrawImage(s.upload(img), &op)
}

func (s *EbitenSurface) FillRect(m [6]float64, c Color, clip *Rect) {
	var op ebiten.DrawImageOptions
	op.GeoM = geoM(m)
	op.ColorScale.ScaleWithColor(c.RGBA8())
	s.dst(clip).DrawImage(ensureWhitePixel(), &op)
}

func (s *EbitenSurface) DrawText(str string, size float64, m [6]float64, c Color, clip *Rect) {
	f := s.Font
	if f == nil {
		f = DefaultFont()
	}
	face := f.ebitenFace(size)

	// text/v2 places the origin at the top of the line; shift it to the
	// baseline.
	op := &text.DrawOptions{}
	op.GeoM.Translate(0, -face.Metrics().HAscent)
	op.GeoM.Concat(geoM(m))
	op.ColorScale.ScaleWithColor(c.RGBA8())
	text.Draw(s.dst(clip), str, face, op)
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// whitePixel is a 1x1 white image scaled and tinted for solid fills.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}
