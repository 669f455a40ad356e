package mech

import (
	"math"
	"testing"
)

func TestSpeedCurveEvaluate(t *testing.T) {
	cases := []struct {
		name  string
		curve SpeedCurve
		t     float64
		want  float64
	}{
		{"default_start", DefaultSpeedCurve(), 0, 1},
		{"default_knee", DefaultSpeedCurve(), 0.7, 0.35},
		{"default_between", DefaultSpeedCurve(), 0.35, 0.675},
		{"default_end", DefaultSpeedCurve(), 1, 0},
		{"clamped_below", DefaultSpeedCurve(), -3, 1},
		{"clamped_above", DefaultSpeedCurve(), 4, 0},
		{"linear_ease_mid", SpeedCurve{Ease: "linear"}, 0.25, 0.75},
		{"ease_end", SpeedCurve{Ease: "out_quad"}, 1, 0},
		{"empty_is_flat", SpeedCurve{}, 0.5, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.curve.Evaluate(c.t)
			if math.Abs(got-c.want) > 1e-5 {
				t.Fatalf("Evaluate(%v) = %v, want %v", c.t, got, c.want)
			}
		})
	}
}

func TestSpeedCurveValidate(t *testing.T) {
	cases := []struct {
		name    string
		curve   SpeedCurve
		wantErr bool
	}{
		{"default", DefaultSpeedCurve(), false},
		{"known_ease", SpeedCurve{Ease: "in_out_sine"}, false},
		{"unknown_ease", SpeedCurve{Ease: "wobble"}, true},
		{"no_keys", SpeedCurve{}, true},
		{"unsorted", SpeedCurve{Keys: []Keyframe{{T: 1, V: 0}, {T: 0, V: 1}}}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.curve.Validate()
			if (err != nil) != c.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}
