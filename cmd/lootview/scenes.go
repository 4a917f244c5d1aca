package main

import (
	"math/rand/v2"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/loot"
)

// scenes maps scene names to builders populating a fresh scene.
var scenes = map[string]func(*loot.Scene) error{
	"demo":      buildDemo,
	"starfield": buildStarfield,
}

func sceneNames() []string {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// buildDemo shows each container kind: a viewport with depth-sorted cards
// and a planar HUD, and a rotating text panel on top.
func buildDemo(s *loot.Scene) error {
	w, h := s.Settings.Width, s.Settings.Height
	if err := s.Input.BindMouseButton(0, ebiten.MouseButtonLeft); err != nil {
		return err
	}

	vp := loot.NewViewport(0, 0, w, h)
	vp.PointOfView = loot.Pt3(0, 0, 10)
	vp.BaseDistance = 10
	vp.MaxDistance = 40

	palette := []loot.Color{
		{R: 0.85, G: 0.25, B: 0.25, A: 1},
		{R: 0.95, G: 0.65, B: 0.2, A: 1},
		{R: 0.3, G: 0.7, B: 0.35, A: 1},
		{R: 0.25, G: 0.45, B: 0.85, A: 1},
		{R: 0.55, G: 0.3, B: 0.75, A: 1},
	}
	for i, c := range palette {
		card := loot.NewSprite3D(loot.Pt3(float64(i*60-120), float64(i*12-24), -float64(i*4)), 50, 70, nil)
		card.Fill = c
		vp.Add(card)
	}

	hud := loot.NewTextBox(10, h-50, 220, 40, "the camera dollies in\nclick a card to pick it")
	hud.Background = loot.Color{R: 1, G: 1, B: 1, A: 0.8}
	vp.Add(hud)

	panel := loot.NewRotatableLayer(w-250, 20, 230, 110)
	panel.Add(loot.NewRect(0, 0, 230, 110, loot.Color{R: 0.1, G: 0.1, B: 0.1, A: 0.9}))
	title := loot.NewTextBox(10, 10, 210, 90, "LOOT\nlayered 2D/3D rendering")
	title.Foreground = loot.ColorWhite
	title.Background = loot.ColorTransparent
	title.FontSize = 18
	panel.Add(title)

	s.Root().Add(vp, panel)

	vp.DollyTo(loot.Pt3(40, 10, 7), 3, ease.InOutSine)
	s.AddUpdater(vp)
	s.AddTween(loot.TweenAngle(panel, loot.Radians(-8), 2, ease.OutCubic))
	return nil
}

// buildStarfield fills a viewport with stars spread in depth, rendered
// from a 1x1 image stretched to each star's projected size.
func buildStarfield(s *loot.Scene) error {
	w, h := s.Settings.Width, s.Settings.Height
	if err := s.Images.CreateTempImage("star", loot.ColorWhite); err != nil {
		return err
	}
	star := s.Images.Image("star")

	s.Settings.Background = loot.ColorBlack

	vp := loot.NewViewport(0, 0, w, h)
	vp.PointOfView = loot.Pt3(0, 0, 5)
	vp.BaseDistance = 5
	vp.MinDistance = 0.5
	vp.MaxDistance = 200

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 400; i++ {
		pos := loot.Pt3(
			(rng.Float64()-0.5)*float64(w)*4,
			(rng.Float64()-0.5)*float64(h)*4,
			-rng.Float64()*190,
		)
		r := 1 + rng.Float64()*3
		sp := loot.NewSprite3D(pos, r, r, star)
		sp.Tint = loot.Color{R: 0.8 + rng.Float64()*0.2, G: 0.8 + rng.Float64()*0.2, B: 1, A: 1}
		vp.Add(sp)
	}
	s.Root().Add(vp)

	vp.DollyTo(loot.Pt3(0, 0, -60), 10, ease.Linear)
	s.AddUpdater(vp)
	return nil
}
