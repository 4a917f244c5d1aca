package loot

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, pick events are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event PickEvent)
}

// PickEvent reports a logical button changing state, together with the
// object under the cursor at that moment.
type PickEvent struct {
	Button  int
	Pressed bool
	X, Y    int
	// Target is the topmost hit-testable object under the cursor, or nil.
	Target Visual
}

// Updater is advanced once per frame by Scene.Update. Viewport implements
// it to run its dolly animation.
type Updater interface {
	Update(dt float32)
}

// Scene hosts a root layer together with input, images, animations and
// automated testing. It runs either in an Ebitengine window (NewGame,
// RunWindow) or headless through Loop (Game).
type Scene struct {
	Settings Settings
	Input    *InputManager
	Images   *ImageStore

	// OnPick, when set, receives every pick event.
	OnPick func(PickEvent)

	root     *Layer
	store    EntityStore
	debug    bool
	frame    int64
	tweens   []*TweenGroup
	updaters []Updater

	screenshotQueue []string
	testRunner      *TestRunner
	lastUpdate      time.Duration
	updateTime      time.Duration
}

// NewScene creates a scene whose root layer covers the canvas.
func NewScene(settings Settings) *Scene {
	return &Scene{
		Settings: settings,
		Input:    NewInputManager(settings.Buttons),
		Images:   NewImageStore(),
		root:     NewLayer(0, 0, settings.Width, settings.Height),
		debug:    settings.Debug,
	}
}

// Root returns the scene's root layer.
func (s *Scene) Root() *Layer {
	return s.root
}

// Frame returns the number of completed updates.
func (s *Scene) Frame() int64 {
	return s.frame
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables per-frame statistics, logged at debug
// level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// AddTween runs g each frame until it is done.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// AddUpdater advances u every frame.
func (s *Scene) AddUpdater(u Updater) {
	s.updaters = append(s.updaters, u)
}

// Update runs one frame of logic: the test runner, input acceptance, pick
// events, then animations. dt is in seconds.
func (s *Scene) Update(dt float32) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.Input.AcceptInputs()
	s.emitPicks()

	for _, u := range s.updaters {
		u.Update(dt)
	}
	n := 0
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			s.tweens[n] = g
			n++
		}
	}
	clear(s.tweens[n:])
	s.tweens = s.tweens[:n]

	s.frame++
	if s.debug {
		s.updateTime = time.Since(t0)
	}
}

func (s *Scene) emitPicks() {
	changed := s.Input.Changed()
	if len(changed) == 0 {
		return
	}
	x, y := s.Input.Cursor()
	target := s.root.ObjectAt(x, y)
	for _, b := range changed {
		evt := PickEvent{Button: b.ID, Pressed: b.Pressed, X: x, Y: y, Target: target}
		if s.OnPick != nil {
			s.OnPick(evt)
		}
		if s.store != nil {
			s.store.EmitEvent(evt)
		}
	}
}

// clearer is implemented by surfaces that can clear faster than a fill.
type clearer interface {
	Clear(c Color)
}

// Draw clears surface to the background color and paints the root layer.
// Queued screenshots are written afterwards.
func (s *Scene) Draw(surface Surface) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
		stats.updateTime = s.updateTime
		surface = countingSurface{Surface: surface, stats: &stats}
	}

	s.clear(surface)
	s.root.Draw(NewCanvas(surface))

	if s.debug {
		stats.drawTime = time.Since(t0)
		s.debugLog(stats)
		debugCheckChildCount(s.root)
	}

	s.flushScreenshots()
}

func (s *Scene) clear(surface Surface) {
	if cs, ok := surface.(countingSurface); ok {
		surface = cs.Surface
	}
	if c, ok := surface.(clearer); ok {
		c.Clear(s.Settings.Background)
		return
	}
	NewCanvas(surface).FillRect(0, 0, s.Settings.Width, s.Settings.Height, s.Settings.Background)
}

// Game adapts the scene to Loop, drawing every frame onto surface.
func (s *Scene) Game(surface Surface) Game {
	return &loopGame{scene: s, surface: surface}
}

type loopGame struct {
	scene   *Scene
	surface Surface
}

func (g *loopGame) Initialize() error {
	return g.scene.Settings.Validate()
}

func (g *loopGame) Update(ts time.Duration) (bool, error) {
	dt := ts - g.scene.lastUpdate
	g.scene.lastUpdate = ts
	g.scene.Update(float32(dt.Seconds()))
	if r := g.scene.testRunner; r != nil && r.Done() && len(g.scene.screenshotQueue) == 0 {
		// Draw once more so the final state is on the surface.
		g.scene.Draw(g.surface)
		return false, ErrStop
	}
	return true, nil
}

func (g *loopGame) Draw(time.Duration) {
	g.scene.Draw(g.surface)
}

// ebitenGame adapts a Scene to ebiten.Game.
type ebitenGame struct {
	scene   *Scene
	surface *EbitenSurface
	fps     *FPSCounter
}

// NewGame returns an ebiten.Game running scene. Real device input is
// polled except while scripted input is pending.
func NewGame(scene *Scene) ebiten.Game {
	return &ebitenGame{
		scene:   scene,
		surface: NewEbitenSurface(nil),
		fps:     NewFPSCounter(time.Now(), scene.Settings.Interval),
	}
}

func (g *ebitenGame) Update() error {
	if !g.scene.Input.Injecting() {
		g.scene.Input.PollEbiten()
	}
	g.scene.Update(float32(1.0 / float64(ebiten.TPS())))
	if r := g.scene.testRunner; r != nil && r.Done() && len(g.scene.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *ebitenGame) Draw(screen *ebiten.Image) {
	g.fps.Tick(time.Now())
	g.surface.SetTarget(screen)
	g.scene.Draw(g.surface)
	if g.scene.debug {
		g.fps.DrawDebug(screen)
	}
}

func (g *ebitenGame) Layout(_, _ int) (int, int) {
	return g.scene.Settings.Width, g.scene.Settings.Height
}

// RunWindow opens a window sized by the scene settings and runs the scene
// until the window closes or the test runner finishes.
func RunWindow(scene *Scene) error {
	st := scene.Settings
	if err := st.Validate(); err != nil {
		return err
	}
	ebiten.SetWindowTitle(st.Title)
	ebiten.SetWindowSize(st.Width, st.Height)
	if st.Interval > 0 {
		ebiten.SetTPS(int(math.Round(float64(time.Second) / float64(st.Interval))))
	}
	logger().Info("opening window",
		zap.String("title", st.Title),
		zap.Int("width", st.Width),
		zap.Int("height", st.Height),
	)
	if err := ebiten.RunGame(NewGame(scene)); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("loot: run window: %w", err)
	}
	return nil
}
