package mech

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

func TestCPBodyGravityScale(t *testing.T) {
	cases := []struct {
		name  string
		scale float64
	}{
		{"pinned", 0},
		{"normal", 3},
		{"flying", 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			space := cp.NewSpace()
			space.SetGravity(cp.Vector{Y: -10})
			raw := cp.NewBody(1, math.Inf(1))
			space.AddBody(raw)
			body := NewCPBody(raw, nil)
			body.SetGravityScale(c.scale)

			space.Step(0.1)
			if want := -10 * c.scale * 0.1; math.Abs(body.Velocity().Y-want) > 1e-9 {
				t.Fatalf("vy = %v, want %v", body.Velocity().Y, want)
			}
		})
	}
}

func TestCPBodyForceAndVelocity(t *testing.T) {
	space := cp.NewSpace()
	raw := cp.NewBody(1, math.Inf(1))
	space.AddBody(raw)
	body := NewCPBody(raw, nil)

	body.SetVelocity(cp.Vector{X: 2})
	body.ApplyForce(cp.Vector{X: 10})
	space.Step(0.1)
	if math.Abs(body.Velocity().X-3) > 1e-9 {
		t.Fatalf("vx = %v, want 3", body.Velocity().X)
	}
	if _, ok := body.Bounds(); ok {
		t.Fatalf("body without shape should report no bounds")
	}
}
