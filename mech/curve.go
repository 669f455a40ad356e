package mech

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"

	"github.com/milk9111/mercmech/common"
)

// Keyframe is a point on a SpeedCurve. T and V are both normalized.
type Keyframe struct {
	T float64 `yaml:"t"`
	V float64 `yaml:"v"`
}

// SpeedCurve maps dash progress in [0,1] to a speed multiplier. A named Ease
// takes precedence over Keys and always runs from 1 down to 0.
type SpeedCurve struct {
	Ease string     `yaml:"ease,omitempty"`
	Keys []Keyframe `yaml:"keys,omitempty"`
}

var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"in_quad":     ease.InQuad,
	"out_quad":    ease.OutQuad,
	"in_out_quad": ease.InOutQuad,
	"in_cubic":    ease.InCubic,
	"out_cubic":   ease.OutCubic,
	"in_sine":     ease.InSine,
	"out_sine":    ease.OutSine,
	"in_out_sine": ease.InOutSine,
	"in_expo":     ease.InExpo,
	"out_expo":    ease.OutExpo,
	"in_circ":     ease.InCirc,
	"out_circ":    ease.OutCirc,
}

// EaseFunc looks up a named easing.
func EaseFunc(name string) (ease.TweenFunc, bool) {
	fn, ok := easings[name]
	return fn, ok
}

func DefaultSpeedCurve() SpeedCurve {
	return SpeedCurve{Keys: []Keyframe{{T: 0, V: 1}, {T: 0.7, V: 0.35}, {T: 1, V: 0}}}
}

func (c SpeedCurve) Validate() error {
	if c.Ease != "" {
		if _, ok := easings[c.Ease]; !ok {
			return fmt.Errorf("unknown ease %q", c.Ease)
		}
		return nil
	}
	if len(c.Keys) == 0 {
		return errors.New("no keys")
	}
	if !sort.SliceIsSorted(c.Keys, func(i, j int) bool { return c.Keys[i].T < c.Keys[j].T }) {
		return errors.New("keys must be sorted by t")
	}
	return nil
}

// Evaluate samples the curve at t, clamped to [0,1].
func (c SpeedCurve) Evaluate(t float64) float64 {
	t = common.Clamp01(t)
	if fn, ok := easings[c.Ease]; ok {
		return float64(fn(float32(t), 1, -1, 1))
	}

	keys := c.Keys
	switch {
	case len(keys) == 0:
		return 1
	case t <= keys[0].T:
		return keys[0].V
	case t >= keys[len(keys)-1].T:
		return keys[len(keys)-1].V
	}
	for i := 1; i < len(keys); i++ {
		a, b := keys[i-1], keys[i]
		if t > b.T {
			continue
		}
		span := b.T - a.T
		if span <= 0 {
			return b.V
		}
		return common.Lerp(a.V, b.V, (t-a.T)/span)
	}
	return keys[len(keys)-1].V
}
