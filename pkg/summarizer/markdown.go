package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter formats a Summary as a markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format converts a Summary to markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var b strings.Builder

	b.WriteString("# Generation Summary\n\n")
	fmt.Fprintf(&b, "Generated at %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	b.WriteString("## Page\n\n")
	if summary.Page.Label != "" {
		fmt.Fprintf(&b, "- Label: %s\n", summary.Page.Label)
	}
	if summary.Page.Title != "" {
		fmt.Fprintf(&b, "- Title: %s\n", summary.Page.Title)
	}
	fmt.Fprintf(&b, "- Height: %d px\n", summary.Page.Height)
	b.WriteString("\n")

	b.WriteString("## Choreography\n\n")
	fmt.Fprintf(&b, "- Pause frames: %d\n", summary.Choreo.PauseFrames)
	fmt.Fprintf(&b, "- Scroll frames: %d\n", summary.Choreo.ScrollFrames)
	fmt.Fprintf(&b, "- Max scroll: %d px\n", summary.Choreo.MaxScroll)
	fmt.Fprintf(&b, "- Captured frames: %d\n", summary.Choreo.CapturedFrames)
	fmt.Fprintf(&b, "- Capture time: %d ms\n", summary.Choreo.CaptureTimeMs)
	b.WriteString("\n")

	b.WriteString("## Settings\n\n")
	if summary.Settings.Preset != "" {
		fmt.Fprintf(&b, "- Preset: %s\n", summary.Settings.Preset)
	}
	if summary.Settings.Quality != "" {
		fmt.Fprintf(&b, "- Quality: %s\n", summary.Settings.Quality)
	}
	fmt.Fprintf(&b, "- Policy: %s\n", summary.Settings.Policy)
	fmt.Fprintf(&b, "- Easing: %s\n", summary.Settings.Easing)
	fmt.Fprintf(&b, "- Frame rate: %d fps\n", summary.Settings.FrameRate)
	fmt.Fprintf(&b, "- Viewport: %dx%d\n", summary.Settings.ViewportWidth, summary.Settings.ViewportHeight)
	if summary.Settings.ScrollSpeed > 0 {
		fmt.Fprintf(&b, "- Scroll speed: %.0f px/s\n", summary.Settings.ScrollSpeed)
	}
	b.WriteString("\n")

	b.WriteString("## Video\n\n")
	fmt.Fprintf(&b, "- Output: %s\n", summary.Video.Path)
	fmt.Fprintf(&b, "- Size: %dx%d\n", summary.Video.Width, summary.Video.Height)
	fmt.Fprintf(&b, "- Frames: %d\n", summary.Video.FrameCount)
	fmt.Fprintf(&b, "- Duration: %s\n", formatDuration(summary.Video.DurationMs))
	fmt.Fprintf(&b, "- File size: %s\n", formatBytes(summary.Video.FileSize))
	fmt.Fprintf(&b, "- CRF: %d\n", summary.Video.CRF)

	return b.String()
}

func formatDuration(ms int) string {
	return fmt.Sprintf("%.2f s", float64(ms)/1000.0)
}

func formatBytes(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}
