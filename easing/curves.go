package easing

import "math"

// Standard returns the core curve set keyed by name.
func Standard() map[string]Func {
	return map[string]Func{
		"linear":        Linear,
		"swing":         Swing,
		"sin":           Sin,
		"speedup":       Speedup,
		"slowdown":      Slowdown,
		"elastic":       Elastic,
		"bounce":        Bounce,
		"easeOutBounce": EaseOutBounce,
	}
}

// Linear returns progress unchanged.
func Linear(p float64) float64 {
	return p
}

// Swing is a half cosine: slow at both ends.
func Swing(p float64) float64 {
	return 0.5 - math.Cos(p*math.Pi)/2
}

// Sin rises to 1 at the midpoint and falls back to 0.
func Sin(p float64) float64 {
	return math.Sin(p * math.Pi)
}

// Speedup accelerates from rest.
func Speedup(p float64) float64 {
	return math.Pow(p, 4)
}

// Slowdown decelerates into the end.
func Slowdown(p float64) float64 {
	return 1 - math.Pow(1-p, 4)
}

const elasticBounces = 5

// Elastic overshoots the end value with decaying oscillation.
func Elastic(p float64) float64 {
	s := Swing(p)
	return (1-math.Cos(s*math.Pi*elasticBounces))*(1-s) + s
}

// Bounce folds Elastic's overshoot back below 1.
func Bounce(p float64) float64 {
	e := Elastic(p)
	if e <= 1 {
		return e
	}
	return 2 - e
}

// EaseOutBounce is the quadratic bounce-out curve over four segments.
func EaseOutBounce(t float64) float64 {
	switch {
	case t < 1/2.75:
		return 7.5625 * t * t
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return 7.5625*t*t + 0.75
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return 7.5625*t*t + 0.9375
	default:
		t -= 2.625 / 2.75
		return 7.5625*t*t + 0.984375
	}
}
