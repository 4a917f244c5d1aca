package loot

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"sort"
	"sync"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"go.uber.org/zap"
)

var (
	// ErrImageExists is returned when registering a name already in use.
	ErrImageExists = errors.New("loot: image name already registered")
	// ErrImageNotFound is returned when a file to load does not exist.
	ErrImageNotFound = errors.New("loot: image file not found")
)

// ImageStore keeps decoded images by name. It is safe for concurrent use.
type ImageStore struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

// NewImageStore creates an empty store.
func NewImageStore() *ImageStore {
	return &ImageStore{images: make(map[string]image.Image)}
}

// AddImage registers img under name.
func (s *ImageStore) AddImage(name string, img image.Image) error {
	if img == nil {
		return fmt.Errorf("loot: nil image for %q", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[name]; ok {
		return fmt.Errorf("%w: %q", ErrImageExists, name)
	}
	s.images[name] = img
	return nil
}

// CreateTempImage registers a 1x1 image of color c, useful as a placeholder
// that sprites stretch to their size.
func (s *ImageStore) CreateTempImage(name string, c Color) error {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	})
	return s.AddImage(name, img)
}

// LoadImage decodes the file at path and registers it under name. PNG,
// JPEG, GIF, BMP and WebP are supported.
func (s *ImageStore) LoadImage(name, path string) error {
	return s.load(name, path, func() (fs.File, error) { return os.Open(path) })
}

// LoadImageFS is LoadImage reading from fsys, e.g. an embed.FS.
func (s *ImageStore) LoadImageFS(name string, fsys fs.FS, path string) error {
	return s.load(name, path, func() (fs.File, error) { return fsys.Open(path) })
}

func (s *ImageStore) load(name, path string, open func() (fs.File, error)) error {
	if s.Image(name) != nil {
		return fmt.Errorf("%w: %q", ErrImageExists, name)
	}
	f, err := open()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
		return fmt.Errorf("loot: open image %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("loot: decode image %s: %w", path, err)
	}
	if err := s.AddImage(name, img); err != nil {
		return err
	}
	logger().Info("image loaded",
		zap.String("name", name),
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return nil
}

// Image returns the image registered under name, or nil.
func (s *ImageStore) Image(name string) image.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.images[name]
}

// Dispose forgets the image registered under name. Unknown names are
// ignored.
func (s *ImageStore) Dispose(name string) {
	s.mu.Lock()
	delete(s.images, name)
	s.mu.Unlock()
}

// Names returns the registered names in sorted order.
func (s *ImageStore) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Len returns the number of registered images.
func (s *ImageStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}
