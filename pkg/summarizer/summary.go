// Package summarizer provides summary generation for video runs.
package summarizer

import "time"

// Summary contains all data collected during a generation run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Page information
	Page PageInfo

	// Choreography results
	Choreo ChoreoInfo

	// Generation settings
	Settings Settings

	// Video output details
	Video VideoInfo
}

// PageInfo contains information about the captured page.
type PageInfo struct {
	Title  string
	Label  string
	Height int // Full scroll height in pixels
}

// ChoreoInfo contains the executed capture plan.
type ChoreoInfo struct {
	PauseFrames    int
	ScrollFrames   int
	MaxScroll      int
	CapturedFrames int
	CaptureTimeMs  int
}

// Settings contains the generation configuration.
type Settings struct {
	Preset         string
	Quality        string
	Policy         string
	Easing         string
	FrameRate      int
	ViewportWidth  int
	ViewportHeight int
	ScrollSpeed    float64
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	Path       string
	FrameCount int
	DurationMs int
	FileSize   int64
	Width      int
	Height     int
	CRF        int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithPage sets page information.
func (b *Builder) WithPage(title, label string, height int) *Builder {
	b.summary.Page = PageInfo{
		Title:  title,
		Label:  label,
		Height: height,
	}
	return b
}

// WithChoreo sets the executed capture plan.
func (b *Builder) WithChoreo(choreo ChoreoInfo) *Builder {
	b.summary.Choreo = choreo
	return b
}

// WithSettings sets generation settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
