// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"
	"github.com/user/promoreel/pkg/choreo"
	"github.com/user/promoreel/pkg/pipeline"
	"github.com/user/promoreel/pkg/ports"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	HTML       string // Landing page document
	Label      string // Business name for the title card and overlay
	OutputPath string

	// Choreography
	Plan choreo.Params

	// Browser
	Browser ports.BrowserOptions

	// Output video. Zero width/height means "same as viewport".
	Width  int
	Height int

	// Encoding
	VideoCRF int
	Bitrate  int

	// Branding
	TitleCardEnabled bool
	LeadInMs         int
	OutroMs          int
	Theme            pipeline.CardTheme
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Plan: choreo.DefaultParams(),

		Browser: ports.BrowserOptions{
			Headless:          true,
			ViewportWidth:     1920,
			ViewportHeight:    1080,
			DeviceScaleFactor: 1.0,
			CaptureQuality:    85,
			LoadTimeoutMs:     30000,
			CaptureTimeoutMs:  10000,
			SettleDelayMs:     500,
			Incognito:         true,
		},

		VideoCRF: 25,
		Bitrate:  2000,

		TitleCardEnabled: true,
		LeadInMs:         1500,
		OutroMs:          2000,
		Theme:            pipeline.DefaultCardTheme(),
	}
}

// RunResult summarizes a completed run.
type RunResult struct {
	OutputPath      string
	PageTitle       string
	PageHeight      int
	CapturedFrames  int
	FrameCount      int // Frames in the final video, lead-in included
	DurationSeconds float64
	VideoFileSize   int
	CaptureTimeMs   int
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	captureStage   pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult]
	titleCardStage pipeline.Stage[pipeline.TitleCardInput, pipeline.TitleCardResult]
	encodeStage    pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	fs             ports.FileSystem
	sink           ports.DebugSink
	logger         ports.Logger
}

// New creates a new Orchestrator.
func New(
	captureStage pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult],
	titleCardStage pipeline.Stage[pipeline.TitleCardInput, pipeline.TitleCardResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		captureStage:   captureStage,
		titleCardStage: titleCardStage,
		encodeStage:    encodeStage,
		fs:             fs,
		sink:           sink,
		logger:         logger,
	}
}

// Run executes the complete pipeline. The returned error always wraps
// one of the kinds declared in errors.go.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	if err := o.preflight(config); err != nil {
		return RunResult{}, err
	}

	o.logger.Info(l10n.F("Generating video for %s...", displayLabel(config)))

	// Every run gets its own scratch namespace so concurrent jobs
	// cannot collide on temp documents or spilled frames.
	scratchDir := filepath.Join(o.fs.TempDir(), "promoreel-"+uuid.NewString())
	if err := o.fs.MkdirAll(scratchDir); err != nil {
		return RunResult{}, fmt.Errorf("%w: create scratch dir: %w", ErrRenderBackend, err)
	}
	defer func() {
		if err := o.fs.RemoveAll(scratchDir); err != nil {
			o.logger.Debug("Scratch cleanup failed: %s", err)
		}
	}()
	config.Browser.ScratchDir = scratchDir

	// 1. Capture
	capture, err := o.captureStage.Execute(ctx, o.buildCaptureInput(config))
	if capture.Store != nil {
		defer func() {
			if err := capture.Store.Purge(); err != nil {
				o.logger.Debug("Frame store cleanup failed: %s", err)
			}
		}()
	}
	if err != nil {
		o.logger.Error(l10n.F("Failed to capture page: %s", err))
		return RunResult{}, classify(ErrRenderBackend, fmt.Errorf("capture stage: %w", err))
	}
	o.logger.Info(l10n.F("Capture plan: %d pause + %d scroll frames at %d fps, max scroll %d px",
		capture.Plan.PauseFrames, capture.Plan.ScrollFrames, capture.Plan.FrameRate, capture.Plan.MaxScroll))
	o.logger.Info(l10n.F("Captured %d frames in %d ms", capture.FramesCaptured, capture.CaptureTimeMs))

	if o.sink.Enabled() {
		if data, err := json.MarshalIndent(capture.Plan, "", "  "); err == nil {
			o.sink.SavePlanJSON(data)
		}
	}

	// 2. Title card (optional)
	var card pipeline.TitleCardResult
	if config.TitleCardEnabled && config.Label != "" {
		o.logger.Info(l10n.T("Generating title card"))
		card, err = o.titleCardStage.Execute(ctx, o.buildTitleCardInput(config))
		if err != nil {
			o.logger.Error(l10n.F("Failed to generate title card: %s", err))
			return RunResult{}, classify(ErrEncoding, fmt.Errorf("title card stage: %w", err))
		}
	}

	// 3. Encode
	o.logger.Info(l10n.F("Encoding video with CRF %d", config.VideoCRF))
	encoded, err := o.encodeStage.Execute(ctx, o.buildEncodeInput(config, capture, card))
	if err != nil {
		o.logger.Error(l10n.F("Failed to encode video: %s", err))
		return RunResult{}, classify(ErrEncoding, fmt.Errorf("encode stage: %w", err))
	}
	o.logger.Info(l10n.F("Video encoded: %d bytes", len(encoded.VideoData)))

	// 4. Write output file
	if err := o.fs.WriteFile(config.OutputPath, encoded.VideoData); err != nil {
		o.logger.Error(l10n.F("Failed to write output: %s", err))
		o.removePartialOutput(config.OutputPath)
		return RunResult{}, fmt.Errorf("%w: write output: %w", ErrEncoding, err)
	}

	o.logger.Info(l10n.F("Video saved to %s", config.OutputPath))

	return RunResult{
		OutputPath:      config.OutputPath,
		PageTitle:       capture.Page.Title,
		PageHeight:      capture.Page.ScrollHeight,
		CapturedFrames:  capture.FramesCaptured,
		FrameCount:      encoded.FrameCount,
		DurationSeconds: float64(encoded.DurationMs) / 1000.0,
		VideoFileSize:   len(encoded.VideoData),
		CaptureTimeMs:   capture.CaptureTimeMs,
	}, nil
}

// preflight rejects bad configuration before any browser work starts.
// The plan is recomputed later with the measured page height; here a
// placeholder height only exercises the parameter checks.
func (o *Orchestrator) preflight(config Config) error {
	if config.HTML == "" {
		return fmt.Errorf("%w: empty document", ErrInvalidParameters)
	}
	if config.OutputPath == "" {
		return fmt.Errorf("%w: empty output path", ErrInvalidParameters)
	}
	if config.Browser.ViewportWidth <= 0 || config.Browser.ViewportHeight <= 0 {
		return fmt.Errorf("%w: viewport must be positive, got %dx%d",
			ErrInvalidParameters, config.Browser.ViewportWidth, config.Browser.ViewportHeight)
	}

	params := config.Plan
	params.ViewportHeight = config.Browser.ViewportHeight
	params.PageHeight = config.Browser.ViewportHeight
	if _, err := choreo.ComputePlan(params); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	}
	return nil
}

func (o *Orchestrator) buildCaptureInput(config Config) pipeline.CaptureInput {
	params := config.Plan
	params.ViewportHeight = config.Browser.ViewportHeight
	return pipeline.CaptureInput{
		HTML:    config.HTML,
		Plan:    params,
		Browser: config.Browser,
	}
}

func (o *Orchestrator) buildTitleCardInput(config Config) pipeline.TitleCardInput {
	return pipeline.TitleCardInput{
		Width:  outputDim(config.Width, config.Browser.ViewportWidth),
		Height: outputDim(config.Height, config.Browser.ViewportHeight),
		Label:  config.Label,
		Theme:  config.Theme,
	}
}

func (o *Orchestrator) buildEncodeInput(config Config, capture pipeline.CaptureResult, card pipeline.TitleCardResult) pipeline.EncodeInput {
	return pipeline.EncodeInput{
		Store:      capture.Store,
		FrameCount: capture.FramesCaptured,
		FrameRate:  capture.Plan.FrameRate,
		Width:      outputDim(config.Width, config.Browser.ViewportWidth),
		Height:     outputDim(config.Height, config.Browser.ViewportHeight),
		Quality:    config.VideoCRF,
		Bitrate:    config.Bitrate,
		Label:      config.Label,
		Theme:      config.Theme,
		TitleCard:  card.Image,
		LeadInMs:   config.LeadInMs,
		OutroMs:    config.OutroMs,
	}
}

func (o *Orchestrator) removePartialOutput(path string) {
	if exists, err := o.fs.Exists(path); err == nil && exists {
		if err := o.fs.Remove(path); err != nil {
			o.logger.Debug("Partial output cleanup failed: %s", err)
		}
	}
}

// classify wraps a stage error with the matching error kind. Context
// cancellation and parameter errors take precedence over the stage's
// default kind.
func classify(kind error, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	case errors.Is(err, choreo.ErrInvalidParams):
		return fmt.Errorf("%w: %w", ErrInvalidParameters, err)
	default:
		return fmt.Errorf("%w: %w", kind, err)
	}
}

func displayLabel(config Config) string {
	if config.Label != "" {
		return config.Label
	}
	return config.OutputPath
}

func outputDim(configured, viewport int) int {
	if configured > 0 {
		return configured
	}
	return viewport
}
