package loot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettingsMissingFile(t *testing.T) {
	got, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if diff := cmp.Diff(DefaultSettings(), got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSettingsPartialFile(t *testing.T) {
	path := writeFile(t, "loot.yaml", strings.Join([]string{
		"title: demo",
		"width: 320",
		"background: '#ff0000'",
		"timing: real",
		"interval: 10ms",
		"",
	}, "\n"))

	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	want := DefaultSettings()
	want.Title = "demo"
	want.Width = 320
	want.Background = Color{R: 1, A: 1}
	want.Timing = TimingReal
	want.Interval = 10 * time.Millisecond
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSettingsErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "width: [", "failed to parse settings"},
		{"unknown timing", "timing: sometimes", "unknown timing"},
		{"bad color", "background: nope", "invalid color"},
		{"zero width", "width: 0", "invalid canvas size"},
		{"negative interval", "interval: -1s", "invalid frame interval"},
		{"negative buttons", "buttons: -2", "invalid button count"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadSettings(writeFile(t, "loot.yaml", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
			if diff := cmp.Diff(DefaultSettings(), got); diff != "" {
				t.Errorf("failed load should return defaults (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSettingsSaveRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.Title = "round trip"
	s.Height = 480
	s.Background = Color{R: 0, G: 0.2, B: 0.4, A: 1}
	s.Timing = TimingReal
	s.Debug = true

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"timing: real", "#003366ff"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("saved YAML missing %q:\n%s", want, data)
		}
	}

	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#fff", ColorWhite, false},
		{"000000", ColorBlack, false},
		{"#ff000080", Color{R: 1, A: 128.0 / 255}, false},
		{" #00ff00 ", Color{G: 1, A: 1}, false},
		{"#ff", Color{}, true},
		{"#gggggg", Color{}, true},
		{"", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseHexColor(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{ColorWhite, "#ffffffff"},
		{ColorTransparent, "#00000000"},
		{Color{R: 2, G: -1, B: 0.5, A: 1}, "#ff0080ff"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Hex(%+v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}
