// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/promoreel/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SavePlanJSON does nothing.
func (s *Sink) SavePlanJSON(data []byte) error {
	return nil
}

// SaveRawFrame does nothing.
func (s *Sink) SaveRawFrame(index int, data []byte) error {
	return nil
}

// SaveTitleCard does nothing.
func (s *Sink) SaveTitleCard(img image.Image) error {
	return nil
}

// SaveBrandedFrame does nothing.
func (s *Sink) SaveBrandedFrame(index int, img image.Image) error {
	return nil
}
