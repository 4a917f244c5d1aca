package loot

import (
	"image"
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	images     int
	fills      int
	texts      int
}

// debugLog writes the frame statistics at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	logger().Debug("frame",
		zap.Int64("frame", s.frame),
		zap.Duration("update", stats.updateTime),
		zap.Duration("draw", stats.drawTime),
		zap.Int("images", stats.images),
		zap.Int("fills", stats.fills),
		zap.Int("texts", stats.texts),
	)
}

// countingSurface forwards to another surface while counting operations.
type countingSurface struct {
	Surface
	stats *debugStats
}

func (c countingSurface) DrawImage(img image.Image, m [6]float64, tint Color, clip *Rect) {
	c.stats.images++
	c.Surface.DrawImage(img, m, tint, clip)
}

func (c countingSurface) FillRect(m [6]float64, col Color, clip *Rect) {
	c.stats.fills++
	c.Surface.FillRect(m, col, clip)
}

func (c countingSurface) DrawText(s string, size float64, m [6]float64, col Color, clip *Rect) {
	c.stats.texts++
	c.Surface.DrawText(s, size, m, col, clip)
}

// debugMaxChildren is the child count above which a container is reported.
const debugMaxChildren = 1000

// debugCheckChildCount warns when a container holds more than
// debugMaxChildren children.
func debugCheckChildCount(c Container) {
	if n := len(c.Children()); n > debugMaxChildren {
		logger().Warn("container has many children",
			zap.Int("children", n),
			zap.Int("threshold", debugMaxChildren),
		)
	}
}
