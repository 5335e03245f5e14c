package choreo

import (
	"context"
	"fmt"
	"time"

	"github.com/user/promoreel/pkg/ports"
)

// FrameCapturer is the capture-backend capability the loop drives. It is
// a subset of ports.Browser so the full browser adapter satisfies it.
type FrameCapturer interface {
	SetScrollOffset(y int) error
	CaptureFrame() ([]byte, error)
}

// RunResult describes a completed capture loop.
type RunResult struct {
	FramesCaptured int
	FinalOffset    int
	Elapsed        time.Duration
}

// Runner executes a Plan against a capture backend. The loop is strictly
// sequential: frame N+1 does not begin until frame N's capture and pacing
// wait complete, because the scroll offset is shared mutable state of the
// one page being captured.
type Runner struct {
	capturer FrameCapturer
	store    ports.FrameStore
	clock    ports.Clock
	sink     ports.DebugSink
	logger   ports.Logger
}

// NewRunner creates a capture loop runner.
func NewRunner(capturer FrameCapturer, store ports.FrameStore, clock ports.Clock, sink ports.DebugSink, logger ports.Logger) *Runner {
	return &Runner{
		capturer: capturer,
		store:    store,
		clock:    clock,
		sink:     sink,
		logger:   logger.WithComponent("choreo"),
	}
}

// Run captures frames according to the plan, pacing emission to the
// plan's frame rate. When a frame's scroll+capture work exceeds the frame
// interval the loop proceeds immediately without dropping frames, so the
// total wall-clock time may exceed the nominal duration under load.
//
// Any backend or store error aborts the loop with no partial result; the
// caller owns releasing the backend and purging stored frames.
func (r *Runner) Run(ctx context.Context, plan Plan) (RunResult, error) {
	result := RunResult{}
	interval := plan.FrameInterval()
	total := plan.TotalFrames()

	r.logger.Debug("Capture plan: %d pause + %d scroll frames at %d fps, max scroll %d px",
		plan.PauseFrames, plan.ScrollFrames, plan.FrameRate, plan.MaxScroll)

	start := r.clock.Now()
	for index := 0; index < total; index++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		y, final := plan.StepAt(index)

		frameStart := r.clock.Now()
		if err := r.capturer.SetScrollOffset(y); err != nil {
			return result, fmt.Errorf("set scroll offset %d: %w", y, err)
		}

		data, err := r.capturer.CaptureFrame()
		if err != nil {
			return result, fmt.Errorf("capture frame %d: %w", index, err)
		}

		if err := r.store.Put(index, data); err != nil {
			return result, fmt.Errorf("store frame %d: %w", index, err)
		}
		if r.sink.Enabled() {
			r.sink.SaveRawFrame(index, data)
		}

		result.FramesCaptured = index + 1
		result.FinalOffset = y

		if final {
			break
		}

		// Pace to the frame rate: sleep out the remaining frame budget.
		// Overruns are not compensated.
		if remaining := interval - r.clock.Now().Sub(frameStart); remaining > 0 {
			if err := r.clock.Sleep(ctx, remaining); err != nil {
				return result, err
			}
		}
	}

	result.Elapsed = r.clock.Now().Sub(start)
	r.logger.Debug("Captured %d frames in %s, final offset %d px",
		result.FramesCaptured, result.Elapsed, result.FinalOffset)

	return result, nil
}
