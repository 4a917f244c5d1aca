package loot

import (
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
)

// SoftwareSurface rasterizes on the CPU into a gg context. It needs no
// window or GPU, which makes it the surface for screenshots, the render
// command and golden tests.
//
// Images are drawn at the device-space bounding box of their transform, so
// rotated images are painted axis-aligned and mirrored (negative extent)
// images are painted unmirrored. Only the alpha of an image tint is applied,
// as opacity; its RGB components are ignored. Fills follow the full
// transform.
type SoftwareSurface struct {
	dc      *gg.Context
	Font    *Font
	buffers map[image.Image]*gg.ImageBuf
}

// NewSoftwareSurface creates a w by h transparent surface.
func NewSoftwareSurface(w, h int) *SoftwareSurface {
	return &SoftwareSurface{dc: gg.NewContext(w, h)}
}

// Size returns the surface dimensions in pixels.
func (s *SoftwareSurface) Size() (w, h int) { return s.dc.Width(), s.dc.Height() }

// Clear fills the whole surface with c.
func (s *SoftwareSurface) Clear(c Color) {
	s.dc.ClearWithColor(gg.RGBA{R: c.R, G: c.G, B: c.B, A: c.A})
}

// Image returns the rendered pixels.
func (s *SoftwareSurface) Image() image.Image {
	_ = s.dc.FlushGPU()
	return s.dc.Image()
}

// SavePNG writes the rendered pixels to path.
func (s *SoftwareSurface) SavePNG(path string) error { return s.dc.SavePNG(path) }

// EncodePNG writes the rendered pixels to w.
func (s *SoftwareSurface) EncodePNG(w io.Writer) error {
	_ = s.dc.FlushGPU()
	return s.dc.EncodePNG(w)
}

// Close releases the context.
func (s *SoftwareSurface) Close() error {
	s.buffers = nil
	return s.dc.Close()
}

func (s *SoftwareSurface) buffer(img image.Image) *gg.ImageBuf {
	if buf, ok := s.buffers[img]; ok {
		return buf
	}
	if s.buffers == nil {
		s.buffers = make(map[image.Image]*gg.ImageBuf)
	}
	buf := gg.ImageBufFromImage(img)
	s.buffers[img] = buf
	return buf
}

// begin resets the context to device space with clip applied. The caller
// must call s.dc.Pop.
func (s *SoftwareSurface) begin(clip *Rect) {
	s.dc.Push()
	s.dc.Identity()
	if clip != nil {
		s.dc.ClipRect(clip.X, clip.Y, clip.Width, clip.Height)
	}
}

func (s *SoftwareSurface) DrawImage(img image.Image, m [6]float64, tint Color, clip *Rect) {
	b := img.Bounds()
	r := transformRect(m, 0, 0, float64(b.Dx()), float64(b.Dy()))
	if r.Empty() || tint.A <= 0 {
		return
	}
	s.begin(clip)
	defer s.dc.Pop()
	s.dc.DrawImageEx(s.buffer(img), gg.DrawImageOptions{
		X:         r.X,
		Y:         r.Y,
		DstWidth:  r.Width,
		DstHeight: r.Height,
		Opacity:   clamp01(tint.A),
	})
}

func (s *SoftwareSurface) FillRect(m [6]float64, c Color, clip *Rect) {
	s.begin(clip)
	defer s.dc.Pop()
	s.dc.SetTransform(ggMatrix(m))
	s.dc.SetRGBA(c.R, c.G, c.B, c.A)
	s.dc.DrawRectangle(0, 0, 1, 1)
	if err := s.dc.Fill(); err != nil {
		logger().Debug("software fill failed")
	}
}

// DrawText paints str with its baseline starting at the origin of m. gg
// draws text untransformed, so the face is scaled by the transform's area
// factor and rotation is ignored.
func (s *SoftwareSurface) DrawText(str string, size float64, m [6]float64, c Color, clip *Rect) {
	f := s.Font
	if f == nil {
		f = DefaultFont()
	}
	scaled := size * math.Sqrt(math.Abs(m[0]*m[3]-m[1]*m[2]))
	if scaled <= 0 || !isFinite(scaled) {
		return
	}
	face := f.softwareFace(scaled)
	if face == nil {
		return
	}
	s.begin(clip)
	defer s.dc.Pop()
	s.dc.SetFont(face)
	s.dc.SetRGBA(c.R, c.G, c.B, c.A)
	s.dc.DrawString(str, m[4], m[5])
}

// ggMatrix converts an affine matrix to gg's row-major layout.
func ggMatrix(m [6]float64) gg.Matrix {
	return gg.Matrix{A: m[0], B: m[2], C: m[4], D: m[1], E: m[3], F: m[5]}
}
