// Package encode implements the video encoding stage. It validates the
// frame sequence for density, applies the brand overlay and streams the
// frames to the encoder at the capture frame rate.
package encode

import (
	"context"
	"fmt"
	"image"
	"math"

	"github.com/user/promoreel/pkg/pipeline"
	"github.com/user/promoreel/pkg/ports"
)

// Stage encodes stored frames into an MP4 video.
type Stage struct {
	encoder  ports.VideoEncoder
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(encoder ports.VideoEncoder, renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		encoder:  encoder,
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("encode"),
	}
}

// Execute encodes all frames into a video.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{}

	if input.FrameCount <= 0 {
		return result, fmt.Errorf("no frames to encode")
	}
	if input.FrameRate <= 0 {
		return result, fmt.Errorf("frame rate must be positive, got %d", input.FrameRate)
	}

	// A gap in the sequence would not error in the encoder, it would
	// silently shift every later frame. Reject before encoding starts.
	if err := input.Store.Validate(input.FrameCount); err != nil {
		return result, fmt.Errorf("frame sequence: %w", err)
	}

	s.logger.Debug("Encoding %d frames at %d fps", input.FrameCount, input.FrameRate)

	opts := ports.EncoderOptions{
		Bitrate: input.Bitrate,
		Quality: input.Quality,
	}
	if err := s.encoder.Begin(input.Width, input.Height, float64(input.FrameRate), opts); err != nil {
		return result, fmt.Errorf("begin encoding: %w", err)
	}

	// An abandoned encode must not leave the encoder's process or
	// scratch bitstream behind.
	finished := false
	defer func() {
		if !finished {
			s.encoder.Abort()
		}
	}()

	fed := 0

	// Lead-in: hold the title card before the page appears.
	if input.TitleCard != nil && input.LeadInMs > 0 {
		card := s.fit(input.TitleCard, input.Width, input.Height)
		for i := 0; i < framesFor(input.LeadInMs, input.FrameRate); i++ {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if err := s.encoder.EncodeFrame(card); err != nil {
				return result, fmt.Errorf("encode title card frame: %w", err)
			}
			fed++
		}
	}

	var last image.Image
	lastProgress := -1
	for i := 0; i < input.FrameCount; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		data, err := input.Store.Get(i)
		if err != nil {
			return result, fmt.Errorf("read frame %d: %w", i, err)
		}
		img, err := s.renderer.DecodeImage(data, ports.FormatJPEG)
		if err != nil {
			return result, fmt.Errorf("decode frame %d: %w", i, err)
		}

		img = s.fit(img, input.Width, input.Height)
		if input.Label != "" {
			img = s.brand(img, input)
			if s.sink.Enabled() {
				s.sink.SaveBrandedFrame(i, img)
			}
		}

		if err := s.encoder.EncodeFrame(img); err != nil {
			return result, fmt.Errorf("encode frame %d: %w", i, err)
		}
		fed++
		last = img

		if progress := (i + 1) * 100 / input.FrameCount; progress/10 > lastProgress/10 {
			s.logger.Debug("Encoding progress: %d%%", progress)
			lastProgress = progress
		}
	}

	// Outro: hold the final frame.
	if last != nil {
		for i := 0; i < framesFor(input.OutroMs, input.FrameRate); i++ {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if err := s.encoder.EncodeFrame(last); err != nil {
				return result, fmt.Errorf("encode outro frame: %w", err)
			}
			fed++
		}
	}

	data, err := s.encoder.End()
	if err != nil {
		return result, fmt.Errorf("end encoding: %w", err)
	}
	finished = true

	result.VideoData = data
	result.FrameCount = fed
	result.DurationMs = fed * 1000 / input.FrameRate

	s.logger.Debug("Video encoded: %d bytes, %d ms", len(data), result.DurationMs)

	return result, nil
}

// brand overlays a translucent label bar along the bottom edge.
func (s *Stage) brand(img image.Image, input pipeline.EncodeInput) image.Image {
	barHeight := input.Height / 14
	canvas := s.renderer.CreateCanvas(input.Width, input.Height, input.Theme.BackgroundColor)
	canvas.DrawImage(img, 0, 0)
	canvas.DrawRect(0, input.Height-barHeight, input.Width, barHeight, input.Theme.BarColor)
	canvas.DrawText(input.Label, input.Width/2, input.Height-barHeight/2, ports.TextStyle{
		FontSize: float64(barHeight) * 0.5,
		FontPath: input.Theme.FontPath,
		Color:    input.Theme.TextColor,
		Align:    ports.AlignCenter,
	})
	return canvas.ToImage()
}

// fit resizes an image when its dimensions differ from the output size.
func (s *Stage) fit(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	return s.renderer.ResizeImage(img, width, height)
}

func framesFor(ms, fps int) int {
	return int(math.Round(float64(ms) / 1000.0 * float64(fps)))
}
