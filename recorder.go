package loot

import (
	"fmt"
	"image"
)

// OpKind identifies a recorded paint operation.
type OpKind uint8

const (
	OpImage OpKind = iota // Surface.DrawImage
	OpFill                // Surface.FillRect
	OpText                // Surface.DrawText
)

func (k OpKind) String() string {
	switch k {
	case OpImage:
		return "image"
	case OpFill:
		return "fill"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// DrawOp is one paint operation captured by a Recorder.
type DrawOp struct {
	Kind      OpKind
	Image     image.Image
	Text      string
	Size      float64
	Transform [6]float64
	Color     Color
	Clip      *Rect
	// Bounds is the device-space bounding box of the painted area.
	// Text reports only its origin.
	Bounds Rect
}

func (op DrawOp) String() string {
	s := fmt.Sprintf("%-5s x=%.1f y=%.1f w=%.1f h=%.1f", op.Kind, op.Bounds.X, op.Bounds.Y, op.Bounds.Width, op.Bounds.Height)
	if op.Kind == OpText {
		s += fmt.Sprintf(" size=%.1f %q", op.Size, op.Text)
	}
	if op.Clip != nil {
		s += fmt.Sprintf(" clip=(%.1f,%.1f %.1fx%.1f)", op.Clip.X, op.Clip.Y, op.Clip.Width, op.Clip.Height)
	}
	return s
}

// Recorder is a Surface that stores paint operations instead of rasterizing
// them. It backs headless traces and tests.
type Recorder struct {
	Ops []DrawOp
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Reset discards all recorded operations.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Images returns the images painted so far, in paint order.
func (r *Recorder) Images() []image.Image {
	var out []image.Image
	for _, op := range r.Ops {
		if op.Kind == OpImage {
			out = append(out, op.Image)
		}
	}
	return out
}

// Texts returns the text lines painted so far, in paint order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

func (r *Recorder) DrawImage(img image.Image, m [6]float64, tint Color, clip *Rect) {
	b := img.Bounds()
	r.Ops = append(r.Ops, DrawOp{
		Kind:      OpImage,
		Image:     img,
		Transform: m,
		Color:     tint,
		Clip:      clip,
		Bounds:    transformRect(m, 0, 0, float64(b.Dx()), float64(b.Dy())),
	})
}

func (r *Recorder) FillRect(m [6]float64, c Color, clip *Rect) {
	r.Ops = append(r.Ops, DrawOp{
		Kind:      OpFill,
		Transform: m,
		Color:     c,
		Clip:      clip,
		Bounds:    transformRect(m, 0, 0, 1, 1),
	})
}

func (r *Recorder) DrawText(s string, size float64, m [6]float64, c Color, clip *Rect) {
	x, y := transformPoint(m, 0, 0)
	r.Ops = append(r.Ops, DrawOp{
		Kind:      OpText,
		Text:      s,
		Size:      size,
		Transform: m,
		Color:     c,
		Clip:      clip,
		Bounds:    Rect{X: x, Y: y},
	})
}
