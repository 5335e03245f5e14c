package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SavePlanJSON saves the computed capture plan as JSON.
	SavePlanJSON(data []byte) error

	// SaveRawFrame saves a captured raster frame.
	SaveRawFrame(index int, data []byte) error

	// SaveTitleCard saves the generated title card image.
	SaveTitleCard(img image.Image) error

	// SaveBrandedFrame saves a frame after the brand overlay was applied.
	SaveBrandedFrame(index int, img image.Image) error
}
