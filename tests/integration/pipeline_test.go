// Package integration contains integration tests for the promoreel pipeline.
package integration

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/user/promoreel/pkg/adapters/framestore"
	"github.com/user/promoreel/pkg/adapters/ggrenderer"
	"github.com/user/promoreel/pkg/adapters/logger"
	"github.com/user/promoreel/pkg/adapters/nullsink"
	"github.com/user/promoreel/pkg/choreo"
	"github.com/user/promoreel/pkg/mocks"
	"github.com/user/promoreel/pkg/orchestrator"
	"github.com/user/promoreel/pkg/pipeline"
	"github.com/user/promoreel/pkg/ports"
	"github.com/user/promoreel/pkg/stages/capture"
	"github.com/user/promoreel/pkg/stages/encode"
	"github.com/user/promoreel/pkg/stages/titlecard"
)

func testPlanParams() choreo.Params {
	params := choreo.DefaultParams()
	params.FrameRate = 10
	params.PauseSeconds = 0.5
	params.ViewportHeight = 720
	params.Policy = choreo.PolicySpeedDriven
	params.ScrollSpeed = 1000
	params.Easing = choreo.EasingLinear
	return params
}

func testBrowserOptions() ports.BrowserOptions {
	return ports.BrowserOptions{
		Headless:       true,
		ViewportWidth:  1280,
		ViewportHeight: 720,
		CaptureQuality: 85,
		ScratchDir:     "/scratch/job",
	}
}

func pickMemory(string, uint64) ports.FrameStore {
	return framestore.NewMemory()
}

// TestCaptureToEncode drives the capture stage against a mock browser and
// feeds the resulting store straight into the encode stage.
func TestCaptureToEncode(t *testing.T) {
	browser := &mocks.Browser{}
	clock := mocks.NewClock(time.Now())
	log := logger.NewNoop()

	captureStage := capture.New(browser, pickMemory, clock, nullsink.New(), log)

	captureResult, err := captureStage.Execute(context.Background(), pipeline.CaptureInput{
		HTML:    "<html><body>Cafe Aroma</body></html>",
		Plan:    testPlanParams(),
		Browser: testBrowserOptions(),
	})
	if err != nil {
		t.Fatalf("capture stage failed: %v", err)
	}

	if captureResult.FramesCaptured != captureResult.Plan.TotalFrames() {
		t.Errorf("expected %d frames, got %d",
			captureResult.Plan.TotalFrames(), captureResult.FramesCaptured)
	}
	if captureResult.FinalOffset != captureResult.Plan.MaxScroll {
		t.Errorf("expected final offset %d, got %d",
			captureResult.Plan.MaxScroll, captureResult.FinalOffset)
	}
	if err := captureResult.Store.Validate(captureResult.FramesCaptured); err != nil {
		t.Fatalf("store validation failed: %v", err)
	}

	encoder := &mocks.VideoEncoder{}
	encodeStage := encode.NewStage(encoder, ggrenderer.New(), nullsink.New(), log)

	encodeResult, err := encodeStage.Execute(context.Background(), pipeline.EncodeInput{
		Store:      captureResult.Store,
		FrameCount: captureResult.FramesCaptured,
		FrameRate:  captureResult.Plan.FrameRate,
		Width:      1280,
		Height:     720,
		Quality:    25,
		Label:      "Cafe Aroma",
		Theme:      pipeline.DefaultCardTheme(),
		OutroMs:    500,
	})
	if err != nil {
		t.Fatalf("encode stage failed: %v", err)
	}

	wantFrames := captureResult.FramesCaptured + 5 // 500 ms outro at 10 fps
	if encoder.FrameCount != wantFrames {
		t.Errorf("expected encoder to receive %d frames, got %d", wantFrames, encoder.FrameCount)
	}
	if encodeResult.FrameCount != wantFrames {
		t.Errorf("expected result frame count %d, got %d", wantFrames, encodeResult.FrameCount)
	}
	if len(encodeResult.VideoData) == 0 {
		t.Error("expected non-empty video data")
	}
}

// TestTitleCardToEncode renders a title card and verifies the encode stage
// holds it for the configured lead-in.
func TestTitleCardToEncode(t *testing.T) {
	log := logger.NewNoop()
	renderer := ggrenderer.New()

	cardStage := titlecard.NewStage(renderer, nullsink.New(), log)
	cardResult, err := cardStage.Execute(context.Background(), pipeline.TitleCardInput{
		Width:  1280,
		Height: 720,
		Label:  "Cafe Aroma",
		Theme:  pipeline.DefaultCardTheme(),
	})
	if err != nil {
		t.Fatalf("title card stage failed: %v", err)
	}
	if cardResult.Image == nil {
		t.Fatal("expected a rendered card image")
	}

	store := framestore.NewMemory()
	if err := store.Put(0, mocks.EncodedJPEG(1280, 720)); err != nil {
		t.Fatal(err)
	}

	encoder := &mocks.VideoEncoder{}
	encodeStage := encode.NewStage(encoder, renderer, nullsink.New(), log)

	_, err = encodeStage.Execute(context.Background(), pipeline.EncodeInput{
		Store:      store,
		FrameCount: 1,
		FrameRate:  10,
		Width:      1280,
		Height:     720,
		Theme:      pipeline.DefaultCardTheme(),
		TitleCard:  cardResult.Image,
		LeadInMs:   1000,
	})
	if err != nil {
		t.Fatalf("encode stage failed: %v", err)
	}

	if encoder.FrameCount != 11 { // 10 lead-in frames + 1 page frame
		t.Errorf("expected 11 frames, got %d", encoder.FrameCount)
	}
}

// TestFullPipeline runs the orchestrator end to end with real stages and
// mock adapters on the outside.
func TestFullPipeline(t *testing.T) {
	browser := &mocks.Browser{}
	encoder := &mocks.VideoEncoder{}
	fs := mocks.NewFileSystem()
	clock := mocks.NewClock(time.Now())
	sink := mocks.NewDebugSink(false)
	log := logger.NewNoop()
	renderer := ggrenderer.New()

	orch := orchestrator.New(
		capture.New(browser, pickMemory, clock, sink, log),
		titlecard.NewStage(renderer, sink, log),
		encode.NewStage(encoder, renderer, sink, log),
		fs,
		sink,
		log,
	)

	config := orchestrator.DefaultConfig()
	config.HTML = "<html><body>Cafe Aroma</body></html>"
	config.Label = "Cafe Aroma"
	config.OutputPath = "/videos/cafe-aroma.mp4"
	config.Plan = testPlanParams()
	config.Browser = testBrowserOptions()
	config.Browser.ScratchDir = "" // the orchestrator assigns one
	config.LeadInMs = 500
	config.OutroMs = 500

	result, err := orch.Run(context.Background(), config)
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}

	data, ok := fs.GetFile("/videos/cafe-aroma.mp4")
	if !ok {
		t.Fatal("expected output video to be written")
	}
	if len(data) == 0 {
		t.Error("expected non-empty output video")
	}

	if result.PageTitle != "Mock Page" {
		t.Errorf("unexpected page title: %q", result.PageTitle)
	}
	if result.PageHeight != 2000 {
		t.Errorf("unexpected page height: %d", result.PageHeight)
	}
	if result.FrameCount != result.CapturedFrames+10 { // 500 ms lead-in + 500 ms outro at 10 fps
		t.Errorf("expected %d encoded frames, got %d", result.CapturedFrames+10, result.FrameCount)
	}
	if result.VideoFileSize != len(data) {
		t.Errorf("expected file size %d, got %d", len(data), result.VideoFileSize)
	}

	// The mock browser's scroll offsets must follow the plan exactly.
	if len(browser.ScrollOffsets) != result.CapturedFrames {
		t.Fatalf("expected %d scroll offsets, got %d", result.CapturedFrames, len(browser.ScrollOffsets))
	}
	if !browser.CloseCalled {
		t.Error("expected the browser session to be closed")
	}

	// No scratch directories left behind.
	for path := range fs.GetAllFiles() {
		if strings.Contains(path, "promoreel-") {
			t.Errorf("scratch file left behind: %s", path)
		}
	}
}

// TestFullPipeline_BackendFailure verifies the orchestrator surfaces a
// render backend failure and writes nothing.
func TestFullPipeline_BackendFailure(t *testing.T) {
	browser := &mocks.Browser{}
	browser.LaunchFunc = func(ctx context.Context, opts ports.BrowserOptions) error {
		return context.DeadlineExceeded
	}

	fs := mocks.NewFileSystem()
	sink := mocks.NewDebugSink(false)
	log := logger.NewNoop()
	renderer := ggrenderer.New()

	orch := orchestrator.New(
		capture.New(browser, pickMemory, mocks.NewClock(time.Now()), sink, log),
		titlecard.NewStage(renderer, sink, log),
		encode.NewStage(&mocks.VideoEncoder{}, renderer, sink, log),
		fs,
		sink,
		log,
	)

	config := orchestrator.DefaultConfig()
	config.HTML = "<html></html>"
	config.OutputPath = "/videos/out.mp4"
	config.Plan = testPlanParams()
	config.Browser = testBrowserOptions()

	_, err := orch.Run(context.Background(), config)
	if err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := fs.GetFile("/videos/out.mp4"); ok {
		t.Error("no output should be written on failure")
	}
}
