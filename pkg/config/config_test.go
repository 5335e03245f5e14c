package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/promoreel/pkg/choreo"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.ViewportWidth != 1920 || cfg.ViewportHeight != 1080 {
		t.Errorf("expected 1920x1080 viewport, got %dx%d", cfg.ViewportWidth, cfg.ViewportHeight)
	}
	if cfg.FrameRate != 60 {
		t.Errorf("expected 60 fps, got %d", cfg.FrameRate)
	}
	if cfg.ScrollPolicy != string(choreo.PolicySpeedDriven) {
		t.Errorf("expected speed policy, got %q", cfg.ScrollPolicy)
	}
	if cfg.Easing != string(choreo.EasingOutCubic) {
		t.Errorf("expected ease-out-cubic, got %q", cfg.Easing)
	}
	if !cfg.Headless {
		t.Error("expected headless by default")
	}
	if !cfg.TitleCard {
		t.Error("expected title card enabled by default")
	}
}

func TestLoadFromFile(t *testing.T) {
	yaml := `
input: page.html
label: Cafe Aroma
output: out.mp4
fps: 30
scroll_policy: fixed
duration_seconds: 12
viewport_width: 390
viewport_height: 844
device_scale_factor: 2.0
quality: 18
theme:
  accent_color: "#ff8800"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.InputPath != "page.html" || cfg.OutputPath != "out.mp4" {
		t.Errorf("unexpected paths: %q -> %q", cfg.InputPath, cfg.OutputPath)
	}
	if cfg.FrameRate != 30 {
		t.Errorf("expected fps override 30, got %d", cfg.FrameRate)
	}
	if cfg.ScrollPolicy != "fixed" || cfg.TotalDurationSeconds != 12 {
		t.Errorf("expected fixed/12s policy, got %q/%v", cfg.ScrollPolicy, cfg.TotalDurationSeconds)
	}
	if cfg.ViewportWidth != 390 || cfg.ViewportHeight != 844 {
		t.Errorf("unexpected viewport: %dx%d", cfg.ViewportWidth, cfg.ViewportHeight)
	}
	if cfg.Quality != 18 {
		t.Errorf("expected quality 18, got %d", cfg.Quality)
	}

	// Fields absent from the file keep their defaults.
	if cfg.ScrollSpeed != 800 {
		t.Errorf("expected default scroll speed 800, got %v", cfg.ScrollSpeed)
	}
	if cfg.Theme.AccentColor != "#ff8800" {
		t.Errorf("expected accent override, got %q", cfg.Theme.AccentColor)
	}
	if cfg.Theme.TextColor != "#ffffff" {
		t.Errorf("expected default text color, got %q", cfg.Theme.TextColor)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		hex  string
		want color.Color
	}{
		{"#ffffff", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"ffffff", color.RGBA{R: 255, G: 255, B: 255, A: 255}},
		{"#4ade80", color.RGBA{R: 0x4a, G: 0xde, B: 0x80, A: 255}},
		{"#FF8800", color.RGBA{R: 0xff, G: 0x88, B: 0x00, A: 255}},
		{"", color.Black},
		{"#fff", color.Black},
		{"not-a-color!", color.Black},
	}

	for _, tt := range tests {
		if got := ParseColor(tt.hex); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.hex, got, tt.want)
		}
	}
}

func TestThemeConfig_ToCardTheme(t *testing.T) {
	theme := ThemeConfig{
		BackgroundColor: "#101010",
		BarColor:        "#ff0000",
	}.ToCardTheme()

	if theme.BackgroundColor != (color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 255}) {
		t.Errorf("unexpected background: %v", theme.BackgroundColor)
	}
	if theme.BarColor != (color.RGBA{R: 255, A: 176}) {
		t.Errorf("expected translucent bar color, got %v", theme.BarColor)
	}
	// Empty fields fall back to the built-in theme.
	if theme.TextColor == nil {
		t.Error("expected default text color for empty field")
	}
}

func TestConfig_ToOrchestratorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Label = "Cafe Aroma"
	cfg.OutputPath = "out.mp4"
	cfg.ScrollPolicy = "bottom"
	cfg.FrameRate = 30

	oc := cfg.ToOrchestratorConfig("<html></html>")

	if oc.HTML != "<html></html>" {
		t.Errorf("unexpected html: %q", oc.HTML)
	}
	if oc.Label != "Cafe Aroma" || oc.OutputPath != "out.mp4" {
		t.Errorf("unexpected label/output: %q/%q", oc.Label, oc.OutputPath)
	}
	if oc.Plan.Policy != choreo.PolicyStopAtBottom {
		t.Errorf("expected bottom policy, got %q", oc.Plan.Policy)
	}
	if oc.Plan.FrameRate != 30 {
		t.Errorf("expected fps 30, got %d", oc.Plan.FrameRate)
	}
	if oc.Plan.ViewportHeight != cfg.ViewportHeight {
		t.Errorf("plan viewport height should track config: %d", oc.Plan.ViewportHeight)
	}
	if !oc.Browser.Incognito {
		t.Error("expected incognito browser session")
	}
	if oc.VideoCRF != cfg.Quality {
		t.Errorf("expected CRF %d, got %d", cfg.Quality, oc.VideoCRF)
	}
}
