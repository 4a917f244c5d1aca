package loot

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap/zapcore"
)

func testSettings(t *testing.T) Settings {
	t.Helper()
	s := DefaultSettings()
	s.Width, s.Height = 100, 100
	s.Buttons = 2
	s.Interval = time.Millisecond
	s.ScreenshotDir = t.TempDir()
	return s
}

type recordingStore struct{ events []PickEvent }

func (r *recordingStore) EmitEvent(e PickEvent) { r.events = append(r.events, e) }

type countUpdater struct{ total float32 }

func (c *countUpdater) Update(dt float32) { c.total += dt }

func TestNewScene(t *testing.T) {
	s := NewScene(testSettings(t))
	if s.Input.NumButtons() != 2 {
		t.Errorf("NumButtons = %d, want 2", s.Input.NumButtons())
	}
	if got := boxOf(&s.Root().Object); got != [4]int{0, 0, 100, 100} {
		t.Errorf("root box = %v, want the canvas", got)
	}
	if s.Images == nil || s.Frame() != 0 {
		t.Error("scene not initialized")
	}
}

func TestSceneEmitsPicks(t *testing.T) {
	s := NewScene(testSettings(t))
	target := NewRect(10, 10, 20, 20, colorRed)
	s.Root().Add(target)

	var picks []PickEvent
	s.OnPick = func(e PickEvent) { picks = append(picks, e) }
	store := &recordingStore{}
	s.SetEntityStore(store)

	s.Input.MoveCursor(15, 15)
	if err := s.Input.Press(1); err != nil {
		t.Fatal(err)
	}
	s.Update(0.016)

	want := []PickEvent{{Button: 1, Pressed: true, X: 15, Y: 15, Target: target}}
	if diff := cmp.Diff(want, picks); diff != "" {
		t.Errorf("picks mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, store.events); diff != "" {
		t.Errorf("store events mismatch (-want +got):\n%s", diff)
	}

	// A quiet frame emits nothing; a release over empty space has no target.
	s.Update(0.016)
	s.Input.MoveCursor(90, 90)
	s.Input.Release(1)
	s.Update(0.016)
	if len(picks) != 2 || picks[1].Pressed || picks[1].Target != nil {
		t.Errorf("picks = %+v, want a release without target", picks)
	}
	if s.Frame() != 3 {
		t.Errorf("Frame = %d, want 3", s.Frame())
	}
}

func TestSceneRunsUpdatersAndTweens(t *testing.T) {
	s := NewScene(testSettings(t))
	u := &countUpdater{}
	s.AddUpdater(u)
	card := NewSprite3D(Pt3(0, 0, 0), 1, 1, nil)
	s.AddTween(Tween3D(&card.Object3D, Pt3(10, 0, 0), 0.5, ease.Linear))

	s.Update(0.25)
	if len(s.tweens) != 1 {
		t.Fatalf("tweens = %d, want 1 while running", len(s.tweens))
	}
	s.Update(0.25)
	if len(s.tweens) != 0 {
		t.Errorf("tweens = %d, want 0 once done", len(s.tweens))
	}
	if u.total != 0.5 {
		t.Errorf("updater total = %v, want 0.5", u.total)
	}
	if !approxEqual(card.Pos.X, 10, 0.01) {
		t.Errorf("X = %f, want ~10", card.Pos.X)
	}
}

func TestSceneDrawClearsThenPaints(t *testing.T) {
	st := testSettings(t)
	st.Background = colorBlue
	s := NewScene(st)
	s.Root().Add(NewRect(1, 2, 3, 4, colorRed))

	rec := NewRecorder()
	s.Draw(rec)

	want := []string{
		"fill  x=0.0 y=0.0 w=100.0 h=100.0",
		"fill  x=1.0 y=2.0 w=3.0 h=4.0",
	}
	var got []string
	for _, op := range rec.Ops {
		got = append(got, op.String())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Color{colorBlue, colorRed}, fillColors(rec)); diff != "" {
		t.Errorf("colors mismatch (-want +got):\n%s", diff)
	}
}

func TestSceneDebugLogsFrameStats(t *testing.T) {
	logs := observeLogs(t, zapcore.DebugLevel)
	s := NewScene(testSettings(t))
	s.SetDebugMode(true)
	s.Root().Add(NewRect(0, 0, 10, 10, colorRed), NewTextBox(0, 0, 50, 20, "a\nb"))

	s.Update(0.016)
	s.Draw(NewRecorder())

	entries := logs.FilterMessage("frame").All()
	if len(entries) != 1 {
		t.Fatalf("frame logs = %d, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	// The rect and the text box background; clearing is not counted.
	if ctx["fills"] != int64(2) {
		t.Errorf("fills = %v, want 2", ctx["fills"])
	}
	if ctx["texts"] != int64(2) {
		t.Errorf("texts = %v, want 2", ctx["texts"])
	}
	if ctx["frame"] != int64(1) {
		t.Errorf("frame = %v, want 1", ctx["frame"])
	}
}

func TestSceneGameRunsScriptThroughLoop(t *testing.T) {
	s := NewScene(testSettings(t))
	s.Root().Add(NewRect(0, 0, 20, 20, colorRed))
	var picks []PickEvent
	s.OnPick = func(e PickEvent) { picks = append(picks, e) }

	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 10, "y": 10},
		{"action": "wait", "frames": 2}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(runner)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rec := NewRecorder()
	if err := NewLoop(time.Millisecond, TimingVirtual).Run(ctx, s.Game(rec)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !runner.Done() {
		t.Error("runner not done")
	}
	if len(picks) != 2 || !picks[0].Pressed || picks[1].Pressed {
		t.Fatalf("picks = %+v, want press then release", picks)
	}
	if picks[0].Target == nil {
		t.Error("click should hit the rect")
	}
	if s.Frame() != 5 {
		t.Errorf("Frame = %d, want 5", s.Frame())
	}
	if len(rec.Ops) == 0 {
		t.Error("final frame was not drawn")
	}
}

func TestSceneGameValidatesSettings(t *testing.T) {
	st := testSettings(t)
	st.Width = 0
	err := NewLoop(time.Millisecond, TimingVirtual).Run(context.Background(), NewScene(st).Game(NewRecorder()))
	if err == nil {
		t.Error("Run should fail on invalid settings")
	}
}
