// Package config provides configuration loading and management.
package config

import (
	"image/color"
	"os"

	"github.com/user/promoreel/pkg/choreo"
	"github.com/user/promoreel/pkg/orchestrator"
	"github.com/user/promoreel/pkg/pipeline"
	"github.com/user/promoreel/pkg/ports"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for promoreel.
type Config struct {
	// Input/Output
	InputPath  string `yaml:"input"`
	Label      string `yaml:"label"`
	OutputPath string `yaml:"output"`

	// Video size (0 = same as viewport)
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Viewport
	ViewportWidth     int     `yaml:"viewport_width"`
	ViewportHeight    int     `yaml:"viewport_height"`
	DeviceScaleFactor float64 `yaml:"device_scale_factor"`

	// Choreography
	FrameRate            int     `yaml:"fps"`
	PauseSeconds         float64 `yaml:"pause_seconds"`
	ScrollPolicy         string  `yaml:"scroll_policy"`
	ScrollSpeed          float64 `yaml:"scroll_speed"`
	TotalDurationSeconds float64 `yaml:"duration_seconds"`
	MinScrollSeconds     float64 `yaml:"min_scroll_seconds"`
	Easing               string  `yaml:"easing"`

	// Browser
	Headless         bool   `yaml:"headless"`
	ChromePath       string `yaml:"chrome_path"`
	UserAgent        string `yaml:"user_agent"`
	LoadTimeoutMs    int    `yaml:"load_timeout_ms"`
	CaptureTimeoutMs int    `yaml:"capture_timeout_ms"`
	SettleDelayMs    int    `yaml:"settle_delay_ms"`

	// Encoding
	Quality        int `yaml:"quality"`
	CaptureQuality int `yaml:"capture_quality"`
	Bitrate        int `yaml:"bitrate"`

	// Branding
	TitleCard bool        `yaml:"title_card"`
	LeadInMs  int         `yaml:"lead_in_ms"`
	OutroMs   int         `yaml:"outro_ms"`
	Theme     ThemeConfig `yaml:"theme"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ThemeConfig represents title card and overlay theming options.
type ThemeConfig struct {
	BackgroundColor string `yaml:"background_color"`
	TextColor       string `yaml:"text_color"`
	AccentColor     string `yaml:"accent_color"`
	BarColor        string `yaml:"bar_color"`
	FontPath        string `yaml:"font_path"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Viewport
		ViewportWidth:     1920,
		ViewportHeight:    1080,
		DeviceScaleFactor: 1.0,

		// Choreography
		FrameRate:        60,
		PauseSeconds:     1.0,
		ScrollPolicy:     string(choreo.PolicySpeedDriven),
		ScrollSpeed:      800,
		MinScrollSeconds: 3.0,
		Easing:           string(choreo.EasingOutCubic),

		// Browser
		Headless:         true,
		LoadTimeoutMs:    30000,
		CaptureTimeoutMs: 10000,
		SettleDelayMs:    500,

		// Encoding
		Quality:        25,
		CaptureQuality: 85,
		Bitrate:        2000,

		// Branding
		TitleCard: true,
		LeadInMs:  1500,
		OutroMs:   2000,
		Theme: ThemeConfig{
			BackgroundColor: "#121220",
			TextColor:       "#ffffff",
			AccentColor:     "#4ade80",
			BarColor:        "#000000",
		},

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	var r, g, b uint8
	for i, c := range []byte{hex[0], hex[1]} {
		v := hexValue(c)
		if i == 0 {
			r = v << 4
		} else {
			r |= v
		}
	}
	for i, c := range []byte{hex[2], hex[3]} {
		v := hexValue(c)
		if i == 0 {
			g = v << 4
		} else {
			g |= v
		}
	}
	for i, c := range []byte{hex[4], hex[5]} {
		v := hexValue(c)
		if i == 0 {
			b = v << 4
		} else {
			b |= v
		}
	}

	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToCardTheme converts a ThemeConfig to the pipeline theme, falling
// back to defaults for empty fields.
func (t ThemeConfig) ToCardTheme() pipeline.CardTheme {
	theme := pipeline.DefaultCardTheme()
	if t.BackgroundColor != "" {
		theme.BackgroundColor = ParseColor(t.BackgroundColor)
	}
	if t.TextColor != "" {
		theme.TextColor = ParseColor(t.TextColor)
	}
	if t.AccentColor != "" {
		theme.AccentColor = ParseColor(t.AccentColor)
	}
	if t.BarColor != "" {
		r, g, b, _ := ParseColor(t.BarColor).RGBA()
		theme.BarColor = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 176}
	}
	theme.FontPath = t.FontPath
	return theme
}

// ToOrchestratorConfig converts Config to orchestrator.Config. The
// document itself is read by the caller and passed in.
func (c Config) ToOrchestratorConfig(html string) orchestrator.Config {
	return orchestrator.Config{
		HTML:       html,
		Label:      c.Label,
		OutputPath: c.OutputPath,

		Plan: choreo.Params{
			FrameRate:            c.FrameRate,
			PauseSeconds:         c.PauseSeconds,
			ViewportHeight:       c.ViewportHeight,
			Policy:               choreo.Policy(c.ScrollPolicy),
			ScrollSpeed:          c.ScrollSpeed,
			TotalDurationSeconds: c.TotalDurationSeconds,
			MinScrollSeconds:     c.MinScrollSeconds,
			Easing:               choreo.EasingName(c.Easing),
		},

		Browser: ports.BrowserOptions{
			Headless:          c.Headless,
			ChromePath:        c.ChromePath,
			UserAgent:         c.UserAgent,
			ViewportWidth:     c.ViewportWidth,
			ViewportHeight:    c.ViewportHeight,
			DeviceScaleFactor: c.DeviceScaleFactor,
			CaptureQuality:    c.CaptureQuality,
			LoadTimeoutMs:     c.LoadTimeoutMs,
			CaptureTimeoutMs:  c.CaptureTimeoutMs,
			SettleDelayMs:     c.SettleDelayMs,
			Incognito:         true,
		},

		Width:  c.Width,
		Height: c.Height,

		VideoCRF: c.Quality,
		Bitrate:  c.Bitrate,

		TitleCardEnabled: c.TitleCard,
		LeadInMs:         c.LeadInMs,
		OutroMs:          c.OutroMs,
		Theme:            c.Theme.ToCardTheme(),
	}
}
