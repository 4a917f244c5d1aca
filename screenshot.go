package loot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Screenshot queues a labeled screenshot to be captured at the end of the
// current frame's Draw call. The resulting PNG is written to the settings'
// ScreenshotDir with a timestamped filename. Safe to call from Update or
// Draw.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

// Snapshot renders the scene into a new software surface of the canvas
// size. The caller must Close it.
func (s *Scene) Snapshot() *SoftwareSurface {
	surface := NewSoftwareSurface(s.Settings.Width, s.Settings.Height)
	surface.Clear(s.Settings.Background)
	s.root.Draw(NewCanvas(surface))
	return surface
}

// SavePNG renders the scene and writes it to path.
func (s *Scene) SavePNG(path string) error {
	surface := s.Snapshot()
	defer surface.Close()
	if err := surface.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// flushScreenshots renders the frame once for every queued label and
// writes each as a PNG file. Called at the end of Scene.Draw.
func (s *Scene) flushScreenshots() {
	if len(s.screenshotQueue) == 0 {
		return
	}
	defer func() { s.screenshotQueue = s.screenshotQueue[:0] }()

	dir := s.Settings.ScreenshotDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger().Warn("screenshot directory unavailable", zap.String("dir", dir), zap.Error(err))
		return
	}

	surface := s.Snapshot()
	defer surface.Close()

	stamp := time.Now().Format("20060102_150405")
	for _, label := range s.screenshotQueue {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := surface.SavePNG(path); err != nil {
			logger().Warn("screenshot failed", zap.String("path", path), zap.Error(err))
			continue
		}
		logger().Info("screenshot written", zap.String("path", path))
	}
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
