package summarizer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_WithPage(t *testing.T) {
	summary := NewBuilder().
		WithPage("Cafe Aroma - Fresh Roasted Coffee", "Cafe Aroma", 4200).
		Build()

	if summary.Page.Title != "Cafe Aroma - Fresh Roasted Coffee" {
		t.Errorf("unexpected title: %s", summary.Page.Title)
	}
	if summary.Page.Label != "Cafe Aroma" {
		t.Errorf("unexpected label: %s", summary.Page.Label)
	}
	if summary.Page.Height != 4200 {
		t.Errorf("expected height 4200, got %d", summary.Page.Height)
	}
}

func TestBuilder_WithChoreo(t *testing.T) {
	summary := NewBuilder().
		WithChoreo(ChoreoInfo{
			PauseFrames:    60,
			ScrollFrames:   240,
			MaxScroll:      3120,
			CapturedFrames: 300,
			CaptureTimeMs:  5120,
		}).
		Build()

	if summary.Choreo.PauseFrames != 60 || summary.Choreo.ScrollFrames != 240 {
		t.Errorf("unexpected frame counts: %+v", summary.Choreo)
	}
	if summary.Choreo.MaxScroll != 3120 {
		t.Errorf("expected max scroll 3120, got %d", summary.Choreo.MaxScroll)
	}
}

func TestBuilder_WithSettings(t *testing.T) {
	summary := NewBuilder().
		WithSettings(Settings{
			Preset:    "mobile",
			Policy:    "speed",
			FrameRate: 60,
		}).
		Build()

	if summary.Settings.Preset != "mobile" {
		t.Errorf("expected preset 'mobile', got '%s'", summary.Settings.Preset)
	}
	if summary.Settings.FrameRate != 60 {
		t.Errorf("expected frame rate 60, got %d", summary.Settings.FrameRate)
	}
}

func TestBuilder_WithVideo(t *testing.T) {
	summary := NewBuilder().
		WithVideo(VideoInfo{
			Path:       "out.mp4",
			FrameCount: 420,
			DurationMs: 7000,
			FileSize:   102400,
		}).
		Build()

	if summary.Video.Path != "out.mp4" {
		t.Errorf("unexpected path: %s", summary.Video.Path)
	}
	if summary.Video.FrameCount != 420 || summary.Video.DurationMs != 7000 {
		t.Errorf("unexpected video info: %+v", summary.Video)
	}
}

func TestWriter_Write(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "summary.md")

	writer := NewWriter(NewMarkdownFormatter())
	summary := NewBuilder().
		WithPage("Cafe Aroma", "Cafe Aroma", 4200).
		Build()

	if err := writer.Write(path, summary); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading summary back: %v", err)
	}
	if !strings.Contains(string(data), "# Generation Summary") {
		t.Error("expected markdown heading in written file")
	}
}
