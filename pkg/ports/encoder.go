package ports

import (
	"image"
)

// VideoEncoder abstracts video encoding operations.
type VideoEncoder interface {
	// Begin initializes the encoder with the specified dimensions and frame rate.
	Begin(width, height int, fps float64, opts EncoderOptions) error

	// EncodeFrame encodes a single frame. Frames must be submitted in
	// presentation order.
	EncodeFrame(img image.Image) error

	// End finalizes encoding and returns the video data.
	End() ([]byte, error)

	// Abort discards an in-progress encode, releasing the encoder's
	// process and scratch files without producing output. It is a
	// no-op before Begin and after End.
	Abort()
}

// EncoderOptions configures video encoding parameters.
type EncoderOptions struct {
	Bitrate int // Target bitrate in kbps (0 = CRF only)
	Quality int // CRF value: 0-63 (lower is higher quality)
}
