// Package promoreel provides a high-level API for creating landing page
// promo videos.
package promoreel

import (
	"github.com/user/promoreel/pkg/choreo"
	"github.com/user/promoreel/pkg/orchestrator"
	"github.com/user/promoreel/pkg/pipeline"
	"github.com/user/promoreel/pkg/ports"
)

// QualityPreset represents a video quality preset name.
type QualityPreset string

const (
	QualityLow    QualityPreset = "low"
	QualityMedium QualityPreset = "medium"
	QualityHigh   QualityPreset = "high"
)

// QualitySettings contains quality parameters for video encoding and capture.
type QualitySettings struct {
	VideoCRF       int // MP4 CRF value (0-63, lower is better)
	CaptureQuality int // JPEG quality for screenshots (0-100)
}

// GetQualitySettings returns quality settings for the given preset.
func GetQualitySettings(preset QualityPreset) QualitySettings {
	switch preset {
	case QualityLow:
		return QualitySettings{
			VideoCRF:       35,
			CaptureQuality: 70,
		}
	case QualityHigh:
		return QualitySettings{
			VideoCRF:       15,
			CaptureQuality: 92,
		}
	default: // medium
		return QualitySettings{
			VideoCRF:       25,
			CaptureQuality: 85,
		}
	}
}

// Config represents the configuration for promo video generation.
type Config struct {
	// Video size
	Width  int // Output video width (default: viewport width)
	Height int // Output video height (default: viewport height)

	// Viewport
	ViewportWidth     int
	ViewportHeight    int
	DeviceScaleFactor float64

	// Choreography
	FrameRate            int     // Frames per second (default: 60)
	PauseSeconds         float64 // Hold at the top before scrolling
	ScrollPolicy         string  // "speed", "fixed" or "bottom"
	ScrollSpeed          float64 // Pixels per second for speed/bottom policies
	TotalDurationSeconds float64 // Full video length for the fixed policy
	Easing               string  // "linear", "ease-out-cubic" or "ease-in-out-cubic"

	// Encoding
	VideoCRF       int // MP4 CRF value (0-63, lower is better)
	CaptureQuality int // JPEG quality for screenshots (0-100)
	Bitrate        int // Target bitrate in kbps (0 = CRF only)

	// Branding
	TitleCardEnabled bool
	LeadInMs         int // Duration to hold the title card
	OutroMs          int // Duration to hold the final frame

	// Browser options
	Headless   bool
	ChromePath string
	UserAgent  string

	// Timeout
	LoadTimeoutSec int // Page load timeout in seconds (default: 30)
}

// ConfigBuilder provides a fluent interface for building Config.
type ConfigBuilder struct {
	config Config
}

// NewConfigBuilder creates a new ConfigBuilder with desktop preset defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: desktopDefaults(),
	}
}

// NewMobileConfigBuilder creates a new ConfigBuilder with mobile preset defaults.
func NewMobileConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		config: mobileDefaults(),
	}
}

// desktopDefaults returns the desktop preset configuration.
func desktopDefaults() Config {
	return Config{
		// Viewport (video size follows the viewport)
		ViewportWidth:     1920,
		ViewportHeight:    1080,
		DeviceScaleFactor: 1.0,

		// Choreography
		FrameRate:    60,
		PauseSeconds: 1.0,
		ScrollPolicy: string(choreo.PolicySpeedDriven),
		ScrollSpeed:  800,
		Easing:       string(choreo.EasingOutCubic),

		// Encoding (medium quality preset)
		VideoCRF:       25,
		CaptureQuality: 85,
		Bitrate:        2000,

		// Branding
		TitleCardEnabled: true,
		LeadInMs:         1500,
		OutroMs:          2000,

		// Browser
		Headless: true,

		// Timeout
		LoadTimeoutSec: 30,
	}
}

// mobileDefaults returns the mobile preset configuration.
func mobileDefaults() Config {
	return Config{
		// Viewport (iPhone-class portrait)
		ViewportWidth:     390,
		ViewportHeight:    844,
		DeviceScaleFactor: 2.0,

		// Choreography (slower scroll for the narrow page)
		FrameRate:    60,
		PauseSeconds: 1.0,
		ScrollPolicy: string(choreo.PolicySpeedDriven),
		ScrollSpeed:  500,
		Easing:       string(choreo.EasingOutCubic),

		// Encoding (medium quality preset)
		VideoCRF:       25,
		CaptureQuality: 85,
		Bitrate:        2000,

		// Branding
		TitleCardEnabled: true,
		LeadInMs:         1500,
		OutroMs:          2000,

		// Browser
		Headless: true,

		// Timeout
		LoadTimeoutSec: 30,
	}
}

// Build returns the final Config, applying validation and constraints.
func (b *ConfigBuilder) Build() Config {
	cfg := b.config

	if cfg.FrameRate < 1 {
		cfg.FrameRate = 1
	}
	if cfg.ViewportWidth < 320 {
		cfg.ViewportWidth = 320
	}
	if cfg.ViewportHeight < 320 {
		cfg.ViewportHeight = 320
	}

	return cfg
}

// WithSize sets the output video dimensions.
func (b *ConfigBuilder) WithSize(width, height int) *ConfigBuilder {
	b.config.Width = width
	b.config.Height = height
	return b
}

// WithViewport sets the browser viewport dimensions.
func (b *ConfigBuilder) WithViewport(width, height int) *ConfigBuilder {
	b.config.ViewportWidth = width
	b.config.ViewportHeight = height
	return b
}

// WithDeviceScaleFactor sets the device pixel ratio.
func (b *ConfigBuilder) WithDeviceScaleFactor(factor float64) *ConfigBuilder {
	b.config.DeviceScaleFactor = factor
	return b
}

// WithFrameRate sets the capture and playback frame rate.
func (b *ConfigBuilder) WithFrameRate(fps int) *ConfigBuilder {
	b.config.FrameRate = fps
	return b
}

// WithPauseSeconds sets how long the top of the page is held before
// scrolling starts.
func (b *ConfigBuilder) WithPauseSeconds(seconds float64) *ConfigBuilder {
	b.config.PauseSeconds = seconds
	return b
}

// WithScrollSpeed sets the scroll speed in pixels per second and
// selects the speed-driven duration policy.
func (b *ConfigBuilder) WithScrollSpeed(pixelsPerSecond float64) *ConfigBuilder {
	b.config.ScrollPolicy = string(choreo.PolicySpeedDriven)
	b.config.ScrollSpeed = pixelsPerSecond
	return b
}

// WithFixedDuration sets the total video length in seconds and selects
// the fixed-duration policy.
func (b *ConfigBuilder) WithFixedDuration(seconds float64) *ConfigBuilder {
	b.config.ScrollPolicy = string(choreo.PolicyFixedDuration)
	b.config.TotalDurationSeconds = seconds
	return b
}

// WithStopAtBottom selects the stop-at-bottom policy: scroll at the
// given speed and end the moment the page bottom is reached.
func (b *ConfigBuilder) WithStopAtBottom(pixelsPerSecond float64) *ConfigBuilder {
	b.config.ScrollPolicy = string(choreo.PolicyStopAtBottom)
	b.config.ScrollSpeed = pixelsPerSecond
	return b
}

// WithEasing sets the scroll easing curve name.
func (b *ConfigBuilder) WithEasing(easing string) *ConfigBuilder {
	b.config.Easing = easing
	return b
}

// WithVideoCRF sets the MP4 CRF value (0-63, lower is better).
func (b *ConfigBuilder) WithVideoCRF(crf int) *ConfigBuilder {
	b.config.VideoCRF = crf
	return b
}

// WithCaptureQuality sets the JPEG quality for screenshots (0-100).
func (b *ConfigBuilder) WithCaptureQuality(quality int) *ConfigBuilder {
	b.config.CaptureQuality = quality
	return b
}

// WithQualityPreset applies a quality preset (low, medium, high).
func (b *ConfigBuilder) WithQualityPreset(preset QualityPreset) *ConfigBuilder {
	settings := GetQualitySettings(preset)
	b.config.VideoCRF = settings.VideoCRF
	b.config.CaptureQuality = settings.CaptureQuality
	return b
}

// WithBitrate sets the target bitrate in kbps. Use 0 for CRF only.
func (b *ConfigBuilder) WithBitrate(kbps int) *ConfigBuilder {
	b.config.Bitrate = kbps
	return b
}

// WithTitleCard enables or disables the intro title card.
func (b *ConfigBuilder) WithTitleCard(enabled bool) *ConfigBuilder {
	b.config.TitleCardEnabled = enabled
	return b
}

// WithLeadInMs sets the duration to hold the title card in milliseconds.
func (b *ConfigBuilder) WithLeadInMs(ms int) *ConfigBuilder {
	b.config.LeadInMs = ms
	return b
}

// WithOutroMs sets the duration to hold the final frame in milliseconds.
func (b *ConfigBuilder) WithOutroMs(ms int) *ConfigBuilder {
	b.config.OutroMs = ms
	return b
}

// WithHeadless controls whether the browser runs headless.
func (b *ConfigBuilder) WithHeadless(headless bool) *ConfigBuilder {
	b.config.Headless = headless
	return b
}

// WithChromePath sets an explicit Chrome/Chromium executable path.
func (b *ConfigBuilder) WithChromePath(path string) *ConfigBuilder {
	b.config.ChromePath = path
	return b
}

// WithUserAgent overrides the browser user agent.
func (b *ConfigBuilder) WithUserAgent(ua string) *ConfigBuilder {
	b.config.UserAgent = ua
	return b
}

// WithLoadTimeoutSec sets the page load timeout in seconds.
func (b *ConfigBuilder) WithLoadTimeoutSec(sec int) *ConfigBuilder {
	b.config.LoadTimeoutSec = sec
	return b
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig(html, label, outputPath string) orchestrator.Config {
	return orchestrator.Config{
		HTML:       html,
		Label:      label,
		OutputPath: outputPath,

		Plan: choreo.Params{
			FrameRate:            c.FrameRate,
			PauseSeconds:         c.PauseSeconds,
			ViewportHeight:       c.ViewportHeight,
			Policy:               choreo.Policy(c.ScrollPolicy),
			ScrollSpeed:          c.ScrollSpeed,
			TotalDurationSeconds: c.TotalDurationSeconds,
			MinScrollSeconds:     choreo.DefaultParams().MinScrollSeconds,
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
			LoadTimeoutMs:     c.LoadTimeoutSec * 1000,
			CaptureTimeoutMs:  10000,
			SettleDelayMs:     500,
			Incognito:         true,
		},

		Width:  c.Width,
		Height: c.Height,

		VideoCRF: c.VideoCRF,
		Bitrate:  c.Bitrate,

		TitleCardEnabled: c.TitleCardEnabled,
		LeadInMs:         c.LeadInMs,
		OutroMs:          c.OutroMs,
		Theme:            pipeline.DefaultCardTheme(),
	}
}
