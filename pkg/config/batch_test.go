package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBatchFromFile(t *testing.T) {
	path := writeBatchFile(t, `
concurrency: 3
defaults:
  fps: 30
  scroll_speed: 600
jobs:
  - input: a.html
    output: a.mp4
  - input: b.html
    output: b.mp4
    fps: 24
`)

	batch, err := LoadBatchFromFile(path)
	if err != nil {
		t.Fatalf("LoadBatchFromFile failed: %v", err)
	}

	if batch.Concurrency != 3 {
		t.Errorf("expected concurrency 3, got %d", batch.Concurrency)
	}
	if len(batch.Jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(batch.Jobs))
	}

	// File-level defaults apply to every job.
	if batch.Jobs[0].FrameRate != 30 || batch.Jobs[0].ScrollSpeed != 600 {
		t.Errorf("job 0 did not pick up batch defaults: fps=%d speed=%v",
			batch.Jobs[0].FrameRate, batch.Jobs[0].ScrollSpeed)
	}

	// Job fields override batch defaults without leaking between jobs.
	if batch.Jobs[1].FrameRate != 24 {
		t.Errorf("job 1 fps override lost: got %d", batch.Jobs[1].FrameRate)
	}
	if batch.Jobs[0].FrameRate != 30 {
		t.Errorf("job 1 override leaked into job 0: got %d", batch.Jobs[0].FrameRate)
	}

	// Built-in defaults still fill the rest.
	if batch.Jobs[0].ViewportWidth != 1920 {
		t.Errorf("expected built-in viewport default, got %d", batch.Jobs[0].ViewportWidth)
	}
}

func TestLoadBatchFromFile_NoDefaultsSection(t *testing.T) {
	path := writeBatchFile(t, `
jobs:
  - input: a.html
    output: a.mp4
`)

	batch, err := LoadBatchFromFile(path)
	if err != nil {
		t.Fatalf("LoadBatchFromFile failed: %v", err)
	}
	if batch.Concurrency != 1 {
		t.Errorf("expected concurrency floor of 1, got %d", batch.Concurrency)
	}
	if batch.Jobs[0].FrameRate != 60 {
		t.Errorf("expected built-in fps default, got %d", batch.Jobs[0].FrameRate)
	}
}

func TestLoadBatchFromFile_MissingFields(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing input",
			yaml:    "jobs:\n  - output: a.mp4\n",
			wantErr: "missing input",
		},
		{
			name:    "missing output",
			yaml:    "jobs:\n  - input: a.html\n",
			wantErr: "missing output",
		},
		{
			name:    "no jobs",
			yaml:    "concurrency: 2\n",
			wantErr: "no jobs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBatchFile(t, tt.yaml)
			_, err := LoadBatchFromFile(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
