package choreo

import (
	"fmt"
)

// EasingName identifies an easing curve by its configuration name.
type EasingName string

const (
	// EasingLinear advances the scroll offset at constant speed.
	EasingLinear EasingName = "linear"
	// EasingOutCubic starts fast and decelerates toward the bottom.
	EasingOutCubic EasingName = "ease-out-cubic"
	// EasingInOutCubic accelerates, cruises, then decelerates.
	EasingInOutCubic EasingName = "ease-in-out-cubic"
)

// EasingFunc maps phase progress in [0,1] to scroll progress in [0,1].
// Every easing must be monotone non-decreasing with f(0)=0 and f(1)=1 so
// the forward-only scroll invariant holds.
type EasingFunc func(t float64) float64

// ParseEasing resolves an easing name. An empty name selects EasingOutCubic.
func ParseEasing(name EasingName) (EasingName, error) {
	switch name {
	case "":
		return EasingOutCubic, nil
	case EasingLinear, EasingOutCubic, EasingInOutCubic:
		return name, nil
	default:
		return "", fmt.Errorf("%w: unknown easing %q", ErrInvalidParams, name)
	}
}

// Func returns the easing function for the name. Unknown names fall back
// to linear.
func (n EasingName) Func() EasingFunc {
	switch n {
	case EasingOutCubic:
		return easeOutCubic
	case EasingInOutCubic:
		return easeInOutCubic
	default:
		return linear
	}
}

func linear(t float64) float64 {
	return t
}

func easeOutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
