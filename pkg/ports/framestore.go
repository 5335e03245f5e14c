package ports

// FrameStore holds the ordered raster frames produced by the capture loop
// until they are consumed by the encoder. Frames are keyed by a zero-based,
// dense ordinal index. Most encoders silently truncate on a gap rather than
// erroring, so Validate must be called before handing frames to an encoder.
type FrameStore interface {
	// Put stores the raster bytes for the given frame index.
	Put(index int, data []byte) error

	// Get returns the raster bytes for the given frame index.
	Get(index int) ([]byte, error)

	// Count returns the number of stored frames.
	Count() int

	// Validate checks that exactly indices 0..expected-1 are present,
	// with no gaps and no extras.
	Validate(expected int) error

	// Purge removes all stored frames and any backing storage.
	Purge() error
}
