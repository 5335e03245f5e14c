// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/promoreel/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new file sink rooted at baseDir.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SavePlanJSON saves the computed capture plan as JSON.
func (s *Sink) SavePlanJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "plan.json"), data)
}

// SaveRawFrame saves a captured raster frame.
func (s *Sink) SaveRawFrame(index int, data []byte) error {
	path := filepath.Join(s.baseDir, "frames", "raw", fmt.Sprintf("frame-%06d.jpg", index))
	return s.fs.WriteFile(path, data)
}

// SaveTitleCard saves the generated title card image.
func (s *Sink) SaveTitleCard(img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode title card: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, "titlecard.png"), data)
}

// SaveBrandedFrame saves a frame after the brand overlay was applied.
func (s *Sink) SaveBrandedFrame(index int, img image.Image) error {
	data, err := s.renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode branded frame: %w", err)
	}
	path := filepath.Join(s.baseDir, "frames", "branded", fmt.Sprintf("frame-%06d.png", index))
	return s.fs.WriteFile(path, data)
}
