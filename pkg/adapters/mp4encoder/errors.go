package mp4encoder

import "errors"

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin.
	ErrNotInitialized = errors.New("mp4encoder: encoder not initialized")

	// ErrNoFrames is returned when finalizing with no encoded frames.
	ErrNoFrames = errors.New("mp4encoder: no frames to encode")

	// ErrFFmpegNotFound is returned when no ffmpeg executable could be located.
	ErrFFmpegNotFound = errors.New("mp4encoder: ffmpeg not found")
)
