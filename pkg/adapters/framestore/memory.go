package framestore

import (
	"fmt"
	"sync"

	"github.com/user/promoreel/pkg/ports"
)

// Memory keeps frames in process memory. Suitable for short captures when
// the estimated footprint fits the available memory.
type Memory struct {
	mu     sync.Mutex
	frames map[int][]byte
}

// NewMemory creates an in-memory frame store.
func NewMemory() *Memory {
	return &Memory{frames: make(map[int][]byte)}
}

// Ensure Memory implements ports.FrameStore
var _ ports.FrameStore = (*Memory)(nil)

// Put stores the raster bytes for the given frame index.
func (s *Memory) Put(index int, data []byte) error {
	if index < 0 {
		return fmt.Errorf("frame index must not be negative, got %d", index)
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.frames[index] = buf
	s.mu.Unlock()
	return nil
}

// Get returns the raster bytes for the given frame index.
func (s *Memory) Get(index int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.frames[index]
	if !ok {
		return nil, fmt.Errorf("frame %d not stored", index)
	}
	return data, nil
}

// Count returns the number of stored frames.
func (s *Memory) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

// Validate checks that exactly indices 0..expected-1 are present.
func (s *Memory) Validate(expected int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	indices := make(map[int]bool, len(s.frames))
	for i := range s.frames {
		indices[i] = true
	}
	return validateIndices(indices, expected)
}

// Purge discards all stored frames.
func (s *Memory) Purge() error {
	s.mu.Lock()
	s.frames = make(map[int][]byte)
	s.mu.Unlock()
	return nil
}
