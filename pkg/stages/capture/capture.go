// Package capture implements the page capture stage: load the landing
// page, measure it, compute the scroll choreography and drive the
// frame-paced capture loop.
package capture

import (
	"context"
	"fmt"

	"github.com/user/promoreel/pkg/choreo"
	"github.com/user/promoreel/pkg/pipeline"
	"github.com/user/promoreel/pkg/ports"
)

// StorePicker returns the frame store for a capture with the given
// job-private scratch directory and estimated raster footprint in bytes.
type StorePicker func(scratchDir string, estimatedBytes uint64) ports.FrameStore

// Stage captures a landing page as an ordered raster frame sequence.
type Stage struct {
	browser   ports.Browser
	pickStore StorePicker
	clock     ports.Clock
	sink      ports.DebugSink
	logger    ports.Logger
}

// New creates a new capture stage.
func New(browser ports.Browser, pickStore StorePicker, clock ports.Clock, sink ports.DebugSink, logger ports.Logger) *Stage {
	return &Stage{
		browser:   browser,
		pickStore: pickStore,
		clock:     clock,
		sink:      sink,
		logger:    logger.WithComponent("capture"),
	}
}

// jpegBytesPerPixel is a rough upper estimate for quality ~85 captures,
// used only to choose between the memory and disk stores.
const jpegBytesPerPixel = 0.5

// Execute loads the document, computes the plan and runs the capture
// loop. The browser is closed before returning: encoding does not need
// the rendering session, so it is released as early as possible.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	result := pipeline.CaptureResult{}

	if input.Browser.Headless {
		s.logger.Debug("Launching browser in headless mode")
	} else {
		s.logger.Debug("Launching browser in visible mode")
	}
	if err := s.browser.Launch(ctx, input.Browser); err != nil {
		return result, fmt.Errorf("launch browser: %w", err)
	}
	defer func() {
		s.browser.Close()
		s.logger.Debug("Browser closed")
	}()

	s.logger.Debug("Loading document (%d bytes)", len(input.HTML))
	metrics, err := s.browser.LoadDocument(input.HTML)
	if err != nil {
		return result, fmt.Errorf("load document: %w", err)
	}
	result.Page = *metrics
	s.logger.Debug("Page measured: %d px tall", metrics.ScrollHeight)

	params := input.Plan
	params.PageHeight = metrics.ScrollHeight
	plan, err := choreo.ComputePlan(params)
	if err != nil {
		return result, err
	}
	result.Plan = plan

	estimated := uint64(float64(input.Browser.ViewportWidth) *
		float64(input.Browser.ViewportHeight) * jpegBytesPerPixel * float64(plan.TotalFrames()))
	store := s.pickStore(input.Browser.ScratchDir, estimated)
	result.Store = store

	runner := choreo.NewRunner(s.browser, store, s.clock, s.sink, s.logger)
	run, err := runner.Run(ctx, plan)
	if err != nil {
		return result, err
	}

	result.FramesCaptured = run.FramesCaptured
	result.FinalOffset = run.FinalOffset
	result.CaptureTimeMs = int(run.Elapsed.Milliseconds())

	return result, nil
}
