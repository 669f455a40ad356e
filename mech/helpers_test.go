package mech

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	testDt      = 1.0 / 60.0
	testGravity = -9.81
)

// fakeBody is a unit-mass body with explicit Euler integration.
type fakeBody struct {
	pos          cp.Vector
	vel          cp.Vector
	force        cp.Vector
	gravityScale float64
	bounds       cp.BB
	noShape      bool
	setCalls     int
}

func newFakeBody() *fakeBody {
	return &fakeBody{gravityScale: 1, bounds: cp.BB{L: -0.5, B: -1, R: 0.5, T: 1}}
}

func (b *fakeBody) Position() cp.Vector { return b.pos }
func (b *fakeBody) Velocity() cp.Vector { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector) {
	b.vel = v
	b.setCalls++
}
func (b *fakeBody) GravityScale() float64         { return b.gravityScale }
func (b *fakeBody) SetGravityScale(scale float64) { b.gravityScale = scale }
func (b *fakeBody) ApplyForce(f cp.Vector)        { b.force = b.force.Add(f) }
func (b *fakeBody) Bounds() (cp.BB, bool) {
	if b.noShape {
		return cp.BB{}, false
	}
	return b.bounds, true
}

func (b *fakeBody) integrate(dt float64) {
	b.vel.X += b.force.X * dt
	b.vel.Y += (b.force.Y + testGravity*b.gravityScale) * dt
	b.pos = b.pos.Add(b.vel.Mult(dt))
	b.force = cp.Vector{}
}

type stubSensor struct {
	grounded bool
}

func (s *stubSensor) Evaluate(Body) bool { return s.grounded }

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func defaultSettingsPtr() *Settings {
	s := DefaultSettings()
	return &s
}
