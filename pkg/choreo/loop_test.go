package choreo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/user/promoreel/pkg/adapters/framestore"
	"github.com/user/promoreel/pkg/adapters/logger"
	"github.com/user/promoreel/pkg/mocks"
)

func testPlan(t *testing.T, mutate func(*Params)) Plan {
	t.Helper()
	params := Params{
		FrameRate:      10,
		PauseSeconds:   0.5,
		ViewportHeight: 1000,
		PageHeight:     3000,
		Policy:         PolicySpeedDriven,
		ScrollSpeed:    1000,
		Easing:         EasingLinear,
	}
	if mutate != nil {
		mutate(&params)
	}
	plan, err := ComputePlan(params)
	if err != nil {
		t.Fatalf("compute plan: %v", err)
	}
	return plan
}

func TestRunner_Run_CapturesAllFrames(t *testing.T) {
	plan := testPlan(t, nil)
	browser := &mocks.Browser{}
	store := framestore.NewMemory()
	clock := mocks.NewClock(time.Unix(0, 0))
	runner := NewRunner(browser, store, clock, mocks.NewDebugSink(false), logger.NewNoop())

	result, err := runner.Run(context.Background(), plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.FramesCaptured != plan.TotalFrames() {
		t.Errorf("expected %d frames, got %d", plan.TotalFrames(), result.FramesCaptured)
	}
	if store.Count() != plan.TotalFrames() {
		t.Errorf("expected %d stored frames, got %d", plan.TotalFrames(), store.Count())
	}
	if result.FinalOffset != plan.MaxScroll {
		t.Errorf("expected final offset %d, got %d", plan.MaxScroll, result.FinalOffset)
	}
	if err := store.Validate(plan.TotalFrames()); err != nil {
		t.Errorf("store validation failed: %v", err)
	}

	// The scroll offsets applied to the backend follow the plan exactly.
	if len(browser.ScrollOffsets) != plan.TotalFrames() {
		t.Fatalf("expected %d scroll calls, got %d", plan.TotalFrames(), len(browser.ScrollOffsets))
	}
	for i, y := range browser.ScrollOffsets {
		if want := plan.OffsetAt(i); y != want {
			t.Errorf("frame %d: scrolled to %d, plan says %d", i, y, want)
		}
	}
}

func TestRunner_Run_PacesToFrameInterval(t *testing.T) {
	plan := testPlan(t, nil)
	browser := &mocks.Browser{}
	clock := mocks.NewClock(time.Unix(0, 0))
	runner := NewRunner(browser, framestore.NewMemory(), clock, mocks.NewDebugSink(false), logger.NewNoop())

	if _, err := runner.Run(context.Background(), plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Capture work takes zero simulated time, so every non-final frame
	// sleeps the full interval.
	if want := plan.TotalFrames() - 1; len(clock.Sleeps) != want {
		t.Fatalf("expected %d sleeps, got %d", want, len(clock.Sleeps))
	}
	for i, d := range clock.Sleeps {
		if d != plan.FrameInterval() {
			t.Errorf("sleep %d: expected %s, got %s", i, plan.FrameInterval(), d)
		}
	}
}

func TestRunner_Run_SlowCaptureSkipsSleep(t *testing.T) {
	plan := testPlan(t, nil)
	clock := mocks.NewClock(time.Unix(0, 0))
	browser := &mocks.Browser{
		CaptureFrameFunc: func() ([]byte, error) {
			// Each capture overruns the frame budget.
			clock.Advance(2 * plan.FrameInterval())
			return mocks.EncodedJPEG(2, 2), nil
		},
	}
	runner := NewRunner(browser, framestore.NewMemory(), clock, mocks.NewDebugSink(false), logger.NewNoop())

	result, err := runner.Run(context.Background(), plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// No catch-up: every frame is still captured, just late.
	if result.FramesCaptured != plan.TotalFrames() {
		t.Errorf("expected %d frames, got %d", plan.TotalFrames(), result.FramesCaptured)
	}
	if len(clock.Sleeps) != 0 {
		t.Errorf("expected no sleeps during overrun, got %d", len(clock.Sleeps))
	}
	if want := time.Duration(plan.TotalFrames()) * 2 * plan.FrameInterval(); result.Elapsed != want {
		t.Errorf("expected elapsed %s, got %s", want, result.Elapsed)
	}
}

func TestRunner_Run_Cancellation(t *testing.T) {
	plan := testPlan(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	captured := 0
	browser := &mocks.Browser{
		CaptureFrameFunc: func() ([]byte, error) {
			captured++
			if captured == 3 {
				cancel()
			}
			return mocks.EncodedJPEG(2, 2), nil
		},
	}
	clock := mocks.NewClock(time.Unix(0, 0))
	runner := NewRunner(browser, framestore.NewMemory(), clock, mocks.NewDebugSink(false), logger.NewNoop())

	result, err := runner.Run(ctx, plan)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.FramesCaptured != 3 {
		t.Errorf("expected 3 frames before cancellation, got %d", result.FramesCaptured)
	}
}

func TestRunner_Run_BackendError(t *testing.T) {
	plan := testPlan(t, nil)
	backendErr := errors.New("target crashed")

	captured := 0
	browser := &mocks.Browser{
		CaptureFrameFunc: func() ([]byte, error) {
			captured++
			if captured == 2 {
				return nil, backendErr
			}
			return mocks.EncodedJPEG(2, 2), nil
		},
	}
	store := framestore.NewMemory()
	runner := NewRunner(browser, store, mocks.NewClock(time.Unix(0, 0)), mocks.NewDebugSink(false), logger.NewNoop())

	result, err := runner.Run(context.Background(), plan)
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if result.FramesCaptured != 1 {
		t.Errorf("expected 1 captured frame, got %d", result.FramesCaptured)
	}
	if store.Count() != 1 {
		t.Errorf("expected 1 stored frame, got %d", store.Count())
	}
}

func TestRunner_Run_SavesRawFramesWhenDebugging(t *testing.T) {
	plan := testPlan(t, func(p *Params) { p.PageHeight = 1200 })
	sink := mocks.NewDebugSink(true)
	runner := NewRunner(&mocks.Browser{}, framestore.NewMemory(), mocks.NewClock(time.Unix(0, 0)), sink, logger.NewNoop())

	result, err := runner.Run(context.Background(), plan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sink.RawFrames) != result.FramesCaptured {
		t.Errorf("expected %d raw frames in sink, got %d", result.FramesCaptured, len(sink.RawFrames))
	}
}
