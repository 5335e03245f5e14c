// Package framestore provides frame storage strategies for the capture loop.
// The disk store backs frames with zero-padded files in a job-private
// scratch directory; the memory store keeps them in a slice. Both enforce
// dense, gap-free indexing before frames reach an encoder.
package framestore

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/user/promoreel/pkg/ports"
)

// framePattern yields names that sort in index order for any realistic
// frame count, which file-pattern encoders rely on.
const framePattern = "frame_%06d.jpg"

// Disk stores frames as files under a scratch directory.
type Disk struct {
	dir string
	fs  ports.FileSystem

	mu      sync.Mutex
	indices map[int]bool
}

// NewDisk creates a disk-backed frame store rooted at dir.
func NewDisk(dir string, fs ports.FileSystem) *Disk {
	return &Disk{
		dir:     dir,
		fs:      fs,
		indices: make(map[int]bool),
	}
}

// Ensure Disk implements ports.FrameStore
var _ ports.FrameStore = (*Disk)(nil)

// Put stores the raster bytes for the given frame index.
func (s *Disk) Put(index int, data []byte) error {
	if index < 0 {
		return fmt.Errorf("frame index must not be negative, got %d", index)
	}
	if err := s.fs.WriteFile(s.path(index), data); err != nil {
		return fmt.Errorf("write frame %d: %w", index, err)
	}

	s.mu.Lock()
	s.indices[index] = true
	s.mu.Unlock()
	return nil
}

// Get returns the raster bytes for the given frame index.
func (s *Disk) Get(index int) ([]byte, error) {
	s.mu.Lock()
	known := s.indices[index]
	s.mu.Unlock()
	if !known {
		return nil, fmt.Errorf("frame %d not stored", index)
	}
	return s.fs.ReadFile(s.path(index))
}

// Count returns the number of stored frames.
func (s *Disk) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.indices)
}

// Validate checks that exactly indices 0..expected-1 are present.
func (s *Disk) Validate(expected int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return validateIndices(s.indices, expected)
}

// Purge removes the scratch directory and all stored frames.
func (s *Disk) Purge() error {
	s.mu.Lock()
	s.indices = make(map[int]bool)
	s.mu.Unlock()
	return s.fs.RemoveAll(s.dir)
}

func (s *Disk) path(index int) string {
	return filepath.Join(s.dir, fmt.Sprintf(framePattern, index))
}

// validateIndices checks a stored index set for density against the
// expected count and reports the first discrepancy.
func validateIndices(indices map[int]bool, expected int) error {
	if len(indices) != expected {
		return fmt.Errorf("expected %d frames, found %d", expected, len(indices))
	}
	for i := 0; i < expected; i++ {
		if !indices[i] {
			return fmt.Errorf("frame sequence has a gap at index %d", i)
		}
	}

	// With the count matching and 0..expected-1 all present there can be
	// no extras, but report them deterministically if the maps ever skew.
	var extras []int
	for i := range indices {
		if i >= expected {
			extras = append(extras, i)
		}
	}
	if len(extras) > 0 {
		sort.Ints(extras)
		return fmt.Errorf("unexpected frame index %d beyond count %d", extras[0], expected)
	}
	return nil
}
