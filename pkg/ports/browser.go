// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
)

// Browser abstracts the rendering backend that loads a landing page,
// scrolls it and captures viewport rasters.
type Browser interface {
	// Launch starts the browser with the given options.
	Launch(ctx context.Context, opts BrowserOptions) error

	// LoadDocument loads an HTML document, waits for the content to
	// settle and returns the measured page metrics.
	LoadDocument(html string) (*PageMetrics, error)

	// SetScrollOffset scrolls the viewport to the given vertical offset
	// in CSS pixels and waits for the scroll to apply.
	SetScrollOffset(y int) error

	// CaptureFrame captures the current viewport as a raster image and
	// returns the encoded image bytes (JPEG).
	CaptureFrame() ([]byte, error)

	// Close shuts down the browser.
	Close() error
}

// BrowserOptions configures browser launch settings.
type BrowserOptions struct {
	Headless          bool
	ChromePath        string
	UserAgent         string
	ViewportWidth     int     // Viewport width in CSS pixels
	ViewportHeight    int     // Viewport height in CSS pixels
	DeviceScaleFactor float64 // CSS pixel to device pixel ratio (default: 1.0)
	CaptureQuality    int     // JPEG quality for frame capture (0-100)
	LoadTimeoutMs     int     // Page load timeout in milliseconds
	CaptureTimeoutMs  int     // Per-operation timeout for scroll/capture calls
	SettleDelayMs     int     // Extra wait after load before measuring height
	Incognito         bool    // Run browser in incognito mode (default: true)
	ScratchDir        string  // Directory for the temporary HTML document
}

// PageMetrics describes the loaded document.
type PageMetrics struct {
	Title        string
	ScrollHeight int // Total scrollable content height in CSS pixels
	ScrollWidth  int
}
