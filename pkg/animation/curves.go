// Package animation provides the timing primitives that drive animated
// page navigation: easing curves, an injectable clock, frame tickers
// pumped by the host, and a one-shot eased progress driver.
//
// The engine never spawns goroutines. Tickers advance only when the host
// calls [StepTickers] from its frame loop, so between frames all engine
// state is quiescent and safe to inspect.
package animation

import "math"

// Curve transforms normalized time t in [0, 1] into eased progress in [0, 1].
// Curves must be pure and total; the engine treats a misbehaving curve as a
// programming error.
type Curve func(t float64) float64

// Linear returns linear progress (no easing).
func Linear(t float64) float64 {
	return clampUnit(t)
}

// SineEaseIn starts slowly following a quarter sine wave.
func SineEaseIn(t float64) float64 {
	t = clampUnit(t)
	return 1 - math.Cos(t*math.Pi/2)
}

// SineEaseOut decelerates following a quarter sine wave.
func SineEaseOut(t float64) float64 {
	t = clampUnit(t)
	return math.Sin(t * math.Pi / 2)
}

// SineEaseInOut accelerates then decelerates along a half sine wave.
// This is the default navigation curve.
func SineEaseInOut(t float64) float64 {
	t = clampUnit(t)
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// QuadEaseIn starts slowly and accelerates quadratically.
func QuadEaseIn(t float64) float64 {
	t = clampUnit(t)
	return t * t
}

// QuadEaseOut starts quickly and decelerates quadratically.
func QuadEaseOut(t float64) float64 {
	t = clampUnit(t)
	return t * (2 - t)
}

// QuadEaseInOut accelerates then decelerates quadratically.
func QuadEaseInOut(t float64) float64 {
	t = clampUnit(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// Ease is a standard cubic bezier curve for general-purpose easing.
// Equivalent to CSS ease.
var Ease = CubicBezier(0.25, 0.1, 0.25, 1.0)

// EaseIn starts slowly and accelerates. Equivalent to CSS ease-in.
var EaseIn = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly with acceleration in the middle.
// Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// CubicBezier returns a cubic-bezier easing curve matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2) of the
// curve. The curve starts at (0,0) and ends at (1,1).
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most values.
		for range 8 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Fallback to bisection to guarantee a stable solution in [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for range 12 {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
