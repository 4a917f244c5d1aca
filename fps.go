package loot

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsWindow is the number of frames averaged by FPSCounter.
const fpsWindow = 60

// FPSCounter averages the frame rate over the last 60 frames.
type FPSCounter struct {
	starts [fpsWindow]time.Time
	next   int
	fps    float64
}

// NewFPSCounter creates a counter as if frames had run at exactly interval
// up to start, so the first readings are already meaningful.
func NewFPSCounter(start time.Time, interval time.Duration) *FPSCounter {
	c := &FPSCounter{}
	for i := range c.starts {
		c.starts[i] = start.Add(-time.Duration(fpsWindow-i) * interval)
	}
	if interval > 0 {
		c.fps = float64(time.Second) / float64(interval)
	}
	return c
}

// Tick records a frame starting at now and returns the updated rate.
func (c *FPSCounter) Tick(now time.Time) float64 {
	elapsed := now.Sub(c.starts[c.next])
	if elapsed > 0 {
		c.fps = float64(time.Second) / float64(elapsed) * fpsWindow
	}
	c.starts[c.next] = now
	c.next = (c.next + 1) % fpsWindow
	return c.fps
}

// FPS returns the last computed rate.
func (c *FPSCounter) FPS() float64 { return c.fps }

// DrawDebug prints the counter's rate and Ebitengine's own FPS and TPS in
// the top-left corner of screen.
func (c *FPSCounter) DrawDebug(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f (ebiten %.1f)\nTPS: %.1f",
		c.fps, ebiten.ActualFPS(), ebiten.ActualTPS()))
}
