// Package sysmonitor probes host resources so the orchestrator can pick a
// frame storage strategy before capture starts.
package sysmonitor

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/mem"
)

// Monitor reports host memory availability.
type Monitor struct{}

// New creates a new Monitor.
func New() *Monitor {
	return &Monitor{}
}

// AvailableMemory returns the bytes of memory currently available.
func (m *Monitor) AvailableMemory() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("virtual memory: %w", err)
	}
	return vm.Available, nil
}

// FitsInMemory reports whether an estimated footprint can be held in
// memory while leaving the host the given headroom fraction.
func (m *Monitor) FitsInMemory(estimatedBytes uint64, headroom float64) bool {
	if headroom <= 0 || headroom >= 1 {
		headroom = 0.5
	}
	avail, err := m.AvailableMemory()
	if err != nil {
		// Unknown memory state: be conservative, spill to disk.
		return false
	}
	return float64(estimatedBytes) <= float64(avail)*(1-headroom)
}
