package mocks

import (
	"image"

	"github.com/user/promoreel/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
type VideoEncoder struct {
	BeginFunc       func(width, height int, fps float64, opts ports.EncoderOptions) error
	EncodeFrameFunc func(img image.Image) error
	EndFunc         func() ([]byte, error)
	AbortFunc       func()

	// Recorded calls for verification
	BeginCalled bool
	BeginWidth  int
	BeginHeight int
	BeginFPS    float64
	FrameCount  int
	EndCalled   bool
	AbortCalled bool
}

func (m *VideoEncoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	m.BeginCalled = true
	m.BeginWidth = width
	m.BeginHeight = height
	m.BeginFPS = fps
	if m.BeginFunc != nil {
		return m.BeginFunc(width, height, fps, opts)
	}
	return nil
}

func (m *VideoEncoder) EncodeFrame(img image.Image) error {
	m.FrameCount++
	if m.EncodeFrameFunc != nil {
		return m.EncodeFrameFunc(img)
	}
	return nil
}

func (m *VideoEncoder) End() ([]byte, error) {
	m.EndCalled = true
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	// Minimal MP4 ftyp box header
	return []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p'}, nil
}

func (m *VideoEncoder) Abort() {
	m.AbortCalled = true
	if m.AbortFunc != nil {
		m.AbortFunc()
	}
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)
