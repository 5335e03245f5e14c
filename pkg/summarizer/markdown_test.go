package summarizer

import (
	"strings"
	"testing"
	"time"
)

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := &Summary{
		GeneratedAt: time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
		Page: PageInfo{
			Title:  "Cafe Aroma - Fresh Roasted Coffee",
			Label:  "Cafe Aroma",
			Height: 4200,
		},
		Choreo: ChoreoInfo{
			PauseFrames:    60,
			ScrollFrames:   240,
			MaxScroll:      3120,
			CapturedFrames: 300,
			CaptureTimeMs:  5120,
		},
		Settings: Settings{
			Preset:         "desktop",
			Quality:        "medium",
			Policy:         "speed",
			Easing:         "ease-out-cubic",
			FrameRate:      60,
			ViewportWidth:  1920,
			ViewportHeight: 1080,
			ScrollSpeed:    800,
		},
		Video: VideoInfo{
			Path:       "out.mp4",
			FrameCount: 420,
			DurationMs: 7000,
			FileSize:   1024 * 1024, // 1 MB
			Width:      1920,
			Height:     1080,
			CRF:        25,
		},
	}

	result := formatter.Format(summary)

	checks := []string{
		"# Generation Summary",
		"Cafe Aroma",
		"4200 px",
		"Pause frames: 60",
		"Scroll frames: 240",
		"Max scroll: 3120 px",
		"desktop",
		"ease-out-cubic",
		"60 fps",
		"1920x1080",
		"800 px/s",
		"out.mp4",
		"7.00 s",
		"1.00 MB",
		"CRF: 25",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Format_OmitsEmptyFields(t *testing.T) {
	formatter := NewMarkdownFormatter()

	summary := NewSummary()
	summary.Settings.Policy = "fixed"

	result := formatter.Format(summary)

	if strings.Contains(result, "Label:") {
		t.Error("empty label should be omitted")
	}
	if strings.Contains(result, "Preset:") {
		t.Error("empty preset should be omitted")
	}
	if strings.Contains(result, "Scroll speed:") {
		t.Error("zero scroll speed should be omitted")
	}
	if !strings.Contains(result, "Policy: fixed") {
		t.Error("expected policy line")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{3 * 1024 * 1024, "3.00 MB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
