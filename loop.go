package loot

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"
)

// DefaultInterval is the frame interval of a 60 Hz loop.
const DefaultInterval = 16666666 * time.Nanosecond

// ErrStop may be returned from Game.Update to end Loop.Run without error.
var ErrStop = errors.New("loot: stop loop")

// Timing selects how Loop advances its timestamp.
type Timing int

const (
	// TimingVirtual advances the timestamp by exactly one interval per
	// frame, regardless of how long the frame took.
	TimingVirtual Timing = iota
	// TimingReal reports the wall-clock time since the loop started.
	TimingReal
)

// String returns "virtual" or "real".
func (t Timing) String() string {
	if t == TimingReal {
		return "real"
	}
	return "virtual"
}

// Game is driven by Loop. Timestamps are measured from the start of the
// loop.
type Game interface {
	// Initialize runs once before the first frame.
	Initialize() error
	// Update advances one frame and reports whether Draw should follow.
	Update(ts time.Duration) (draw bool, err error)
	Draw(ts time.Duration)
}

// Loop calls a Game at a fixed interval. It is an alternative to
// ebiten.RunGame for headless hosts such as the render command and tests.
type Loop struct {
	Interval time.Duration
	Timing   Timing

	fps atomic.Uint64
}

// NewLoop creates a loop with the given interval and timing.
func NewLoop(interval time.Duration, timing Timing) *Loop {
	return &Loop{Interval: interval, Timing: timing}
}

// FPS returns the frame rate. In virtual timing this is the nominal rate;
// in real timing it is averaged over the last 60 frames.
func (l *Loop) FPS() float64 {
	return math.Float64frombits(l.fps.Load())
}

func (l *Loop) setFPS(v float64) {
	l.fps.Store(math.Float64bits(v))
}

func (l *Loop) interval() time.Duration {
	if l.Interval <= 0 {
		return DefaultInterval
	}
	return l.Interval
}

// Run initializes g and drives it until ctx is done or Update returns an
// error. ErrStop ends the loop with a nil error; cancellation returns
// ctx.Err().
func (l *Loop) Run(ctx context.Context, g Game) error {
	if err := g.Initialize(); err != nil {
		return fmt.Errorf("loot: initialize game: %w", err)
	}
	interval := l.interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if l.Timing == TimingVirtual {
		l.setFPS(float64(time.Second) / float64(interval))
	}
	start := time.Now()
	counter := NewFPSCounter(start, interval)

	var ts time.Duration
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if l.Timing == TimingReal {
			now := time.Now()
			ts = now.Sub(start)
			l.setFPS(counter.Tick(now))
		}

		draw, err := g.Update(ts)
		if err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
		if draw {
			if l.Timing == TimingReal {
				ts = time.Since(start)
			}
			g.Draw(ts)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if l.Timing == TimingVirtual {
			ts += interval
		}
	}
}
