package mocks

import (
	"image"
	"sync"

	"github.com/user/promoreel/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	PlanJSON      []byte
	RawFrames     map[int][]byte
	TitleCard     image.Image
	BrandedFrames map[int]image.Image
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:       enabled,
		RawFrames:     make(map[int][]byte),
		BrandedFrames: make(map[int]image.Image),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SavePlanJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PlanJSON = data
	return nil
}

func (m *DebugSink) SaveRawFrame(index int, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RawFrames[index] = data
	return nil
}

func (m *DebugSink) SaveTitleCard(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TitleCard = img
	return nil
}

func (m *DebugSink) SaveBrandedFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BrandedFrames[index] = img
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
