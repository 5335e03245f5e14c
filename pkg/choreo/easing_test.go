package choreo

import (
	"errors"
	"math"
	"testing"
)

func TestParseEasing(t *testing.T) {
	if name, err := ParseEasing(""); err != nil || name != EasingOutCubic {
		t.Errorf("empty name: expected default %s, got %s (%v)", EasingOutCubic, name, err)
	}
	for _, name := range []EasingName{EasingLinear, EasingOutCubic, EasingInOutCubic} {
		if got, err := ParseEasing(name); err != nil || got != name {
			t.Errorf("expected %s, got %s (%v)", name, got, err)
		}
	}
	if _, err := ParseEasing("bounce"); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for unknown easing, got %v", err)
	}
}

func TestEasingFunc_Endpoints(t *testing.T) {
	for _, name := range []EasingName{EasingLinear, EasingOutCubic, EasingInOutCubic} {
		fn := name.Func()
		if got := fn(0); math.Abs(got) > 1e-9 {
			t.Errorf("%s(0) = %g, expected 0", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(1) = %g, expected 1", name, got)
		}
	}
}

func TestEasingFunc_Monotonic(t *testing.T) {
	const steps = 1000
	for _, name := range []EasingName{EasingLinear, EasingOutCubic, EasingInOutCubic} {
		fn := name.Func()
		prev := fn(0)
		for i := 1; i <= steps; i++ {
			v := fn(float64(i) / steps)
			if v < prev {
				t.Fatalf("%s decreased at t=%g", name, float64(i)/steps)
			}
			prev = v
		}
	}
}

func TestEaseOutCubic_FrontLoaded(t *testing.T) {
	fn := EasingOutCubic.Func()
	// Deceleration curve: halfway through the time, most of the
	// distance is already covered.
	if got := fn(0.5); got <= 0.5 {
		t.Errorf("ease-out-cubic(0.5) = %g, expected > 0.5", got)
	}
	if got := fn(0.5); math.Abs(got-0.875) > 1e-9 {
		t.Errorf("ease-out-cubic(0.5) = %g, expected 0.875", got)
	}
}
