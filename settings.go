package loot

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Settings configures a scene host: canvas, loop and input.
type Settings struct {
	Title         string        `yaml:"title"`
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	Background    Color         `yaml:"background"`
	Interval      time.Duration `yaml:"interval"`
	Timing        Timing        `yaml:"timing"`
	Buttons       int           `yaml:"buttons"`
	Debug         bool          `yaml:"debug"`
	ScreenshotDir string        `yaml:"screenshot_dir"`
}

// DefaultSettings returns an 800x600 white canvas updated at 60 Hz in
// virtual timing with 8 buttons.
func DefaultSettings() Settings {
	return Settings{
		Title:         "loot",
		Width:         800,
		Height:        600,
		Background:    ColorWhite,
		Interval:      DefaultInterval,
		Timing:        TimingVirtual,
		Buttons:       8,
		ScreenshotDir: "screenshots",
	}
}

// LoadSettings reads YAML settings from path. Fields absent from the file
// keep their defaults; a missing file yields DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return DefaultSettings(), err
	}
	logger().Info("settings loaded", zap.String("path", path))
	return s, nil
}

// Validate reports settings that cannot drive a scene.
func (s Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("loot: invalid canvas size %dx%d", s.Width, s.Height)
	case s.Interval <= 0:
		return fmt.Errorf("loot: invalid frame interval %v", s.Interval)
	case s.Buttons < 0:
		return fmt.Errorf("loot: invalid button count %d", s.Buttons)
	}
	return nil
}

// Save writes s to path as YAML.
func (s Settings) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// MarshalYAML encodes the timing as "virtual" or "real".
func (t Timing) MarshalYAML() (any, error) {
	return t.String(), nil
}

// UnmarshalYAML accepts "virtual" or "real".
func (t *Timing) UnmarshalYAML(value *yaml.Node) error {
	switch strings.ToLower(value.Value) {
	case "virtual":
		*t = TimingVirtual
	case "real":
		*t = TimingReal
	default:
		return fmt.Errorf("line %d: unknown timing %q", value.Line, value.Value)
	}
	return nil
}

// MarshalYAML encodes the color as #rrggbbaa.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// UnmarshalYAML accepts #rgb, #rrggbb or #rrggbbaa.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// Hex returns the color as #rrggbbaa.
func (c Color) Hex() string {
	b := func(v float64) uint8 { return uint8(clamp01(v)*255 + 0.5) }
	return fmt.Sprintf("#%02x%02x%02x%02x", b(c.R), b(c.G), b(c.B), b(c.A))
}

// ParseHexColor parses #rgb, #rrggbb or #rrggbbaa. The leading '#' is
// optional.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("loot: invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("loot: invalid color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}
