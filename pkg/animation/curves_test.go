package animation

import (
	"math"
	"testing"
)

func TestCurvesEndpoints(t *testing.T) {
	curves := map[string]Curve{
		"Linear":        Linear,
		"SineEaseIn":    SineEaseIn,
		"SineEaseOut":   SineEaseOut,
		"SineEaseInOut": SineEaseInOut,
		"QuadEaseIn":    QuadEaseIn,
		"QuadEaseOut":   QuadEaseOut,
		"QuadEaseInOut": QuadEaseInOut,
		"Ease":          Ease,
		"EaseIn":        EaseIn,
		"EaseOut":       EaseOut,
		"EaseInOut":     EaseInOut,
	}
	for name, curve := range curves {
		if got := curve(0); math.Abs(got) > 1e-6 {
			t.Errorf("%s(0) = %f, want 0", name, got)
		}
		if got := curve(1); math.Abs(got-1) > 1e-6 {
			t.Errorf("%s(1) = %f, want 1", name, got)
		}
		// Out-of-range inputs clamp instead of extrapolating.
		if got := curve(-0.5); math.Abs(got) > 1e-6 {
			t.Errorf("%s(-0.5) = %f, want 0", name, got)
		}
		if got := curve(1.5); math.Abs(got-1) > 1e-6 {
			t.Errorf("%s(1.5) = %f, want 1", name, got)
		}
	}
}

func TestSineEaseInOutMidpoint(t *testing.T) {
	if got := SineEaseInOut(0.5); math.Abs(got-0.5) > 1e-6 {
		t.Errorf("SineEaseInOut(0.5) = %f, want 0.5", got)
	}
}

func TestCurvesMonotonic(t *testing.T) {
	curves := map[string]Curve{
		"SineEaseInOut": SineEaseInOut,
		"QuadEaseInOut": QuadEaseInOut,
		"EaseInOut":     EaseInOut,
	}
	for name, curve := range curves {
		prev := curve(0)
		for i := 1; i <= 100; i++ {
			v := curve(float64(i) / 100)
			if v < prev-1e-9 {
				t.Errorf("%s not monotonic at t=%f: %f < %f", name, float64(i)/100, v, prev)
			}
			prev = v
		}
	}
}

func TestCubicBezierMatchesLinear(t *testing.T) {
	linearish := CubicBezier(0.25, 0.25, 0.75, 0.75)
	for i := 0; i <= 10; i++ {
		tv := float64(i) / 10
		if got := linearish(tv); math.Abs(got-tv) > 0.01 {
			t.Errorf("linear bezier(%f) = %f", tv, got)
		}
	}
}
