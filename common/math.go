package common

import "math"

// AxisDeadzone is the magnitude below which an analog axis reads as neutral.
const AxisDeadzone = 0.2

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// MoveTowards moves current toward target by at most maxDelta.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + Sign(target-current)*maxDelta
}

// Sign returns 1 for values >= 0 and -1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// AxisToDir maps an analog axis to -1, 0 or 1 using AxisDeadzone.
func AxisToDir(axis float64) int {
	switch {
	case axis > AxisDeadzone:
		return 1
	case axis < -AxisDeadzone:
		return -1
	default:
		return 0
	}
}
