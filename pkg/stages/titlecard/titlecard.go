// Package titlecard implements the branded intro card stage.
package titlecard

import (
	"context"
	"fmt"

	"github.com/user/promoreel/pkg/pipeline"
	"github.com/user/promoreel/pkg/ports"
)

// Stage draws the intro title card for a video.
type Stage struct {
	renderer ports.Renderer
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewStage creates a new title card stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		sink:     sink,
		logger:   logger.WithComponent("titlecard"),
	}
}

// Execute draws the card: label centered on the background with an
// accent rule beneath it.
func (s *Stage) Execute(ctx context.Context, input pipeline.TitleCardInput) (pipeline.TitleCardResult, error) {
	result := pipeline.TitleCardResult{}

	if input.Width <= 0 || input.Height <= 0 {
		return result, fmt.Errorf("invalid card dimensions %dx%d", input.Width, input.Height)
	}

	s.logger.Debug("Generating title card")

	canvas := s.renderer.CreateCanvas(input.Width, input.Height, input.Theme.BackgroundColor)

	fontSize := float64(input.Height) / 12
	style := ports.TextStyle{
		FontSize: fontSize,
		FontPath: input.Theme.FontPath,
		Color:    input.Theme.TextColor,
		Align:    ports.AlignCenter,
	}
	cx := input.Width / 2
	cy := input.Height / 2
	canvas.DrawText(input.Label, cx, cy, style)

	// Accent rule under the label, scaled to the text width.
	w, _ := canvas.MeasureText(input.Label, style)
	ruleY := cy + int(fontSize)
	ruleHalf := int(w / 2)
	canvas.DrawLine(cx-ruleHalf, ruleY, cx+ruleHalf, ruleY, input.Theme.AccentColor, 4)

	result.Image = canvas.ToImage()
	s.logger.Debug("Title card generated: %dx%d", input.Width, input.Height)

	if s.sink.Enabled() {
		s.sink.SaveTitleCard(result.Image)
	}

	return result, nil
}
