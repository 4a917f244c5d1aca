package loot

import (
	"bytes"
	"fmt"
	"sync"

	ggtext "github.com/gogpu/gg/text"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is a TrueType font shared by the surfaces. Faces are created per size
// on first use and cached.
type Font struct {
	data []byte

	mu       sync.Mutex
	ebSource *text.GoTextFaceSource
	ebFaces  map[float64]text.Face
	ggSource *ggtext.FontSource
	ggFaces  map[float64]ggtext.Face
	ggFailed bool
}

// LoadFont parses TrueType or OpenType data.
func LoadFont(ttfData []byte) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("loot: failed to parse font data: %w", err)
	}
	return &Font{data: ttfData, ebSource: source}, nil
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
)

// DefaultFont returns Go Regular. If it cannot be parsed, the returned font
// renders with the 7x13 bitmap face on Ebitengine surfaces.
func DefaultFont() *Font {
	defaultFontOnce.Do(func() {
		f, err := LoadFont(goregular.TTF)
		if err != nil {
			logger().Warn("default font unavailable, using bitmap fallback")
			f = &Font{data: goregular.TTF}
		}
		defaultFont = f
	})
	return defaultFont
}

// ebitenFace returns an Ebitengine text/v2 face at size.
func (f *Font) ebitenFace(size float64) text.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.ebFaces[size]; ok {
		return face
	}
	var face text.Face
	if f.ebSource != nil {
		face = &text.GoTextFace{Source: f.ebSource, Size: size}
	} else {
		face = text.NewGoXFace(basicfont.Face7x13)
	}
	if f.ebFaces == nil {
		f.ebFaces = make(map[float64]text.Face)
	}
	f.ebFaces[size] = face
	return face
}

// softwareFace returns a gg face at size, or nil when the font data cannot
// be used by gg.
func (f *Font) softwareFace(size float64) ggtext.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.ggFaces[size]; ok {
		return face
	}
	if f.ggSource == nil {
		if f.ggFailed {
			return nil
		}
		src, err := ggtext.NewFontSource(f.data)
		if err != nil {
			f.ggFailed = true
			logger().Warn("software text disabled")
			return nil
		}
		f.ggSource = src
	}
	face := f.ggSource.Face(size)
	if f.ggFaces == nil {
		f.ggFaces = make(map[float64]ggtext.Face)
	}
	f.ggFaces[size] = face
	return face
}

// MeasureString returns the width and line height of s at size, as laid out
// by Ebitengine.
func (f *Font) MeasureString(s string, size float64) (width, height float64) {
	face := f.ebitenFace(size)
	m := face.Metrics()
	return text.Measure(s, face, m.HAscent+m.HDescent+m.HLineGap)
}
