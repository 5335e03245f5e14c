// Package mocks provides mock implementations for testing.
package mocks

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"

	"github.com/user/promoreel/pkg/ports"
)

// Browser is a mock implementation of ports.Browser.
type Browser struct {
	LaunchFunc          func(ctx context.Context, opts ports.BrowserOptions) error
	LoadDocumentFunc    func(html string) (*ports.PageMetrics, error)
	SetScrollOffsetFunc func(y int) error
	CaptureFrameFunc    func() ([]byte, error)
	CloseFunc           func() error

	// Recorded calls for verification
	LaunchCalled  bool
	LoadedHTML    string
	ScrollOffsets []int
	CaptureCalls  int
	CloseCalled   bool
}

func (m *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	m.LaunchCalled = true
	if m.LaunchFunc != nil {
		return m.LaunchFunc(ctx, opts)
	}
	return nil
}

func (m *Browser) LoadDocument(html string) (*ports.PageMetrics, error) {
	m.LoadedHTML = html
	if m.LoadDocumentFunc != nil {
		return m.LoadDocumentFunc(html)
	}
	return &ports.PageMetrics{Title: "Mock Page", ScrollHeight: 2000, ScrollWidth: 1280}, nil
}

func (m *Browser) SetScrollOffset(y int) error {
	m.ScrollOffsets = append(m.ScrollOffsets, y)
	if m.SetScrollOffsetFunc != nil {
		return m.SetScrollOffsetFunc(y)
	}
	return nil
}

func (m *Browser) CaptureFrame() ([]byte, error) {
	m.CaptureCalls++
	if m.CaptureFrameFunc != nil {
		return m.CaptureFrameFunc()
	}
	return EncodedJPEG(4, 4), nil
}

func (m *Browser) Close() error {
	m.CloseCalled = true
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

var _ ports.Browser = (*Browser)(nil)

// EncodedJPEG returns a valid JPEG of the given dimensions, for use as
// stand-in frame data.
func EncodedJPEG(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	_ = jpeg.Encode(&buf, img, nil)
	return buf.Bytes()
}
