package pipeline

import (
	"image"
	"image/color"

	"github.com/user/promoreel/pkg/choreo"
	"github.com/user/promoreel/pkg/ports"
)

// =============================================================================
// Capture Stage Types
// =============================================================================

// CaptureInput contains parameters for page capture.
type CaptureInput struct {
	HTML string // Landing page document

	Plan choreo.Params // Choreography parameters (page height filled in after load)

	Browser ports.BrowserOptions
}

// CaptureResult contains the capture output. The raster frames themselves
// live in Store, which the stage picks per job once the page height and
// frame count are known.
type CaptureResult struct {
	Plan           choreo.Plan
	FramesCaptured int
	FinalOffset    int
	Page           ports.PageMetrics
	CaptureTimeMs  int // Wall-clock time spent in the capture loop
	Store          ports.FrameStore
}

// =============================================================================
// Title Card Stage Types
// =============================================================================

// TitleCardInput contains parameters for title card generation.
type TitleCardInput struct {
	Width  int
	Height int
	Label  string // Business name shown on the card
	Theme  CardTheme
}

// CardTheme defines title card and overlay styling.
type CardTheme struct {
	BackgroundColor color.Color
	TextColor       color.Color
	AccentColor     color.Color
	BarColor        color.Color // Label bar behind the overlay text
	FontPath        string
}

// DefaultCardTheme returns the default theme.
func DefaultCardTheme() CardTheme {
	return CardTheme{
		BackgroundColor: color.RGBA{R: 18, G: 18, B: 32, A: 255},
		TextColor:       color.White,
		AccentColor:     color.RGBA{R: 74, G: 222, B: 128, A: 255},
		BarColor:        color.RGBA{R: 0, G: 0, B: 0, A: 176},
	}
}

// TitleCardResult contains the generated card.
type TitleCardResult struct {
	Image image.Image
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for video encoding.
type EncodeInput struct {
	Store      ports.FrameStore
	FrameCount int     // Captured frames expected in the store
	FrameRate  int     // Must equal the capture plan's frame rate
	Width      int     // Output video width
	Height     int     // Output video height
	Quality    int     // CRF: 0-63 (lower is higher quality)
	Bitrate    int     // Target bitrate in kbps (0 = CRF only)
	Label      string  // Overlay label text (empty disables the bar)
	Theme      CardTheme
	TitleCard  image.Image // Optional intro card
	LeadInMs   int         // How long to hold the title card
	OutroMs    int         // How long to hold the final frame
}

// EncodeResult contains the encoded video.
type EncodeResult struct {
	VideoData  []byte
	DurationMs int
	FrameCount int // Frames actually fed to the encoder, lead-in included
}
