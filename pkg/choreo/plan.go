// Package choreo computes the scroll choreography for a landing-page
// capture and drives it against a capture backend with soft real-time
// pacing. A CapturePlan is computed once, after the page height is
// measured, and is immutable thereafter.
package choreo

import (
	"fmt"
	"math"
	"time"
)

// Policy selects how the plan derives its scroll-phase duration.
type Policy string

const (
	// PolicySpeedDriven scrolls at a constant speed in px/s with a
	// minimum scroll-phase duration, so short and long pages both get a
	// watchable video. This is the default policy.
	PolicySpeedDriven Policy = "speed"

	// PolicyFixedDuration fixes the total video duration and derives the
	// scroll speed from the page height.
	PolicyFixedDuration Policy = "fixed"

	// PolicyStopAtBottom scrolls at a constant speed and ends the capture
	// as soon as the bottom of the page is reached. The frame count is an
	// output of the capture loop, not an input.
	PolicyStopAtBottom Policy = "bottom"
)

// ParsePolicy resolves a policy name. An empty name selects PolicySpeedDriven.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "":
		return PolicySpeedDriven, nil
	case PolicySpeedDriven, PolicyFixedDuration, PolicyStopAtBottom:
		return Policy(s), nil
	default:
		return "", fmt.Errorf("%w: unknown policy %q", ErrInvalidParams, s)
	}
}

// Params are the inputs to plan computation.
type Params struct {
	FrameRate      int     // Frames per second (must be > 0)
	PauseSeconds   float64 // Hold at the top of the page before scrolling
	ViewportHeight int     // Viewport height in CSS pixels (must be > 0)
	PageHeight     int     // Measured scrollable content height in CSS pixels

	Policy Policy

	// ScrollSpeed drives the speed and bottom policies, in px/s.
	ScrollSpeed float64

	// TotalDurationSeconds drives the fixed policy.
	TotalDurationSeconds float64

	// MinScrollSeconds floors the scroll-phase duration under the speed
	// and bottom policies so short pages never degenerate into a
	// jump-cut. Zero selects the default of 3 seconds.
	MinScrollSeconds float64

	Easing EasingName
}

// DefaultParams returns Params with the canonical defaults.
func DefaultParams() Params {
	return Params{
		FrameRate:        60,
		PauseSeconds:     1.0,
		ViewportHeight:   1080,
		Policy:           PolicySpeedDriven,
		ScrollSpeed:      800,
		MinScrollSeconds: 3.0,
		Easing:           EasingOutCubic,
	}
}

// Plan is the computed, immutable capture schedule. It is a pure value:
// identical Params always produce an identical Plan.
type Plan struct {
	FrameRate      int
	ViewportHeight int
	PageHeight     int
	MaxScroll      int // Furthest valid scroll offset

	PauseFrames  int
	ScrollFrames int // Under PolicyStopAtBottom this is a frame budget

	Policy Policy
	Easing EasingName

	// ScrollSeconds is the derived scroll-phase duration.
	ScrollSeconds float64

	// Increment is the per-frame advance in pixels under
	// PolicyStopAtBottom. Zero for the other policies.
	Increment float64
}

// ComputePlan derives a capture plan from the given parameters.
func ComputePlan(params Params) (Plan, error) {
	if params.FrameRate <= 0 {
		return Plan{}, fmt.Errorf("%w: frame rate must be positive, got %d", ErrInvalidParams, params.FrameRate)
	}
	if params.ViewportHeight <= 0 {
		return Plan{}, fmt.Errorf("%w: viewport height must be positive, got %d", ErrInvalidParams, params.ViewportHeight)
	}
	if params.PageHeight < 0 {
		return Plan{}, fmt.Errorf("%w: page height must not be negative, got %d", ErrInvalidParams, params.PageHeight)
	}
	if params.PauseSeconds < 0 {
		return Plan{}, fmt.Errorf("%w: pause must not be negative, got %g", ErrInvalidParams, params.PauseSeconds)
	}

	policy, err := ParsePolicy(string(params.Policy))
	if err != nil {
		return Plan{}, err
	}
	easing, err := ParseEasing(params.Easing)
	if err != nil {
		return Plan{}, err
	}

	minScroll := params.MinScrollSeconds
	if minScroll <= 0 {
		minScroll = 3.0
	}

	fps := float64(params.FrameRate)
	maxScroll := params.PageHeight - params.ViewportHeight
	if maxScroll < 0 {
		maxScroll = 0
	}

	plan := Plan{
		FrameRate:      params.FrameRate,
		ViewportHeight: params.ViewportHeight,
		PageHeight:     params.PageHeight,
		MaxScroll:      maxScroll,
		PauseFrames:    int(math.Round(params.PauseSeconds * fps)),
		Policy:         policy,
		Easing:         easing,
	}

	switch policy {
	case PolicyFixedDuration:
		if params.TotalDurationSeconds <= params.PauseSeconds {
			return Plan{}, fmt.Errorf("%w: total duration %gs must exceed pause %gs",
				ErrInvalidParams, params.TotalDurationSeconds, params.PauseSeconds)
		}
		totalFrames := int(math.Round(params.TotalDurationSeconds * fps))
		plan.ScrollFrames = totalFrames - plan.PauseFrames
		// Rounding can swallow a scroll phase shorter than one frame
		// interval, leaving a scrollable page that never scrolls.
		if plan.ScrollFrames <= 0 {
			if maxScroll > 0 {
				return Plan{}, fmt.Errorf("%w: total duration %gs leaves no scroll frames at %d fps",
					ErrInvalidParams, params.TotalDurationSeconds, params.FrameRate)
			}
			plan.ScrollFrames = 0
		}
		plan.ScrollSeconds = float64(plan.ScrollFrames) / fps

	case PolicySpeedDriven:
		if params.ScrollSpeed <= 0 {
			return Plan{}, fmt.Errorf("%w: scroll speed must be positive, got %g", ErrInvalidParams, params.ScrollSpeed)
		}
		plan.ScrollSeconds = math.Max(minScroll, float64(maxScroll)/params.ScrollSpeed)
		plan.ScrollFrames = int(math.Round(plan.ScrollSeconds * fps))

	case PolicyStopAtBottom:
		if params.ScrollSpeed <= 0 {
			return Plan{}, fmt.Errorf("%w: scroll speed must be positive, got %g", ErrInvalidParams, params.ScrollSpeed)
		}
		plan.Increment = params.ScrollSpeed / fps
		if maxScroll == 0 {
			// Nothing to scroll: the capture ends right after the pause.
			plan.ScrollFrames = 0
			plan.ScrollSeconds = 0
		} else {
			plan.ScrollSeconds = math.Max(minScroll, float64(maxScroll)/params.ScrollSpeed)
			plan.ScrollFrames = int(math.Ceil(plan.ScrollSeconds * fps))
		}
		// Easing would break the constant-speed termination condition.
		plan.Easing = EasingLinear
	}

	return plan, nil
}

// TotalFrames is the planned frame count. Under PolicyStopAtBottom it is
// an upper bound; the loop usually terminates earlier.
func (p Plan) TotalFrames() int {
	return p.PauseFrames + p.ScrollFrames
}

// FrameInterval is the nominal wall-clock time between frames.
func (p Plan) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / float64(p.FrameRate))
}

// DurationSeconds is the planned video duration.
func (p Plan) DurationSeconds() float64 {
	return float64(p.TotalFrames()) / float64(p.FrameRate)
}

// OffsetAt returns the scroll offset for the given frame index.
// Offsets are non-decreasing in the index and always within
// [0, MaxScroll]; the last scroll-phase frame lands exactly on MaxScroll.
func (p Plan) OffsetAt(index int) int {
	y, _ := p.StepAt(index)
	return y
}

// StepAt returns the scroll offset for the given frame index and whether
// it is the final frame of the capture.
func (p Plan) StepAt(index int) (int, bool) {
	if index < p.PauseFrames {
		return 0, index == p.TotalFrames()-1
	}

	if p.Policy == PolicyStopAtBottom {
		// Constant-speed advance; the clamp marks the final frame.
		raw := float64(index-p.PauseFrames+1) * p.Increment
		if raw >= float64(p.MaxScroll) {
			return p.MaxScroll, true
		}
		return int(math.Round(raw)), index == p.TotalFrames()-1
	}

	final := index == p.TotalFrames()-1
	if p.ScrollFrames <= 1 {
		return p.MaxScroll, final
	}

	progress := float64(index-p.PauseFrames) / float64(p.ScrollFrames-1)
	y := int(math.Round(p.Easing.Func()(progress) * float64(p.MaxScroll)))
	// Guard against floating error past the bottom.
	if y > p.MaxScroll {
		y = p.MaxScroll
	}
	if y < 0 {
		y = 0
	}
	return y, final
}
