package mech

import "github.com/jakecoffman/cp"

// Body is the physics body the controller drives. The world is y-up.
type Body interface {
	Position() cp.Vector
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	GravityScale() float64
	SetGravityScale(scale float64)
	// ApplyForce adds a force at the center of mass for the next step.
	ApplyForce(f cp.Vector)
	// Bounds reports the collider box, or false if there is no collider.
	Bounds() (cp.BB, bool)
}

// CPBody adapts a Chipmunk body and its box shape.
type CPBody struct {
	body         *cp.Body
	shape        *cp.Shape
	gravityScale float64
}

func NewCPBody(body *cp.Body, shape *cp.Shape) *CPBody {
	b := &CPBody{body: body, shape: shape, gravityScale: 1}
	if body != nil {
		body.SetVelocityUpdateFunc(func(cb *cp.Body, gravity cp.Vector, damping, dt float64) {
			cp.BodyUpdateVelocity(cb, gravity.Mult(b.gravityScale), damping, dt)
		})
	}
	return b
}

func (b *CPBody) Body() *cp.Body   { return b.body }
func (b *CPBody) Shape() *cp.Shape { return b.shape }

func (b *CPBody) Position() cp.Vector {
	if b.body == nil {
		return cp.Vector{}
	}
	return b.body.Position()
}

func (b *CPBody) Velocity() cp.Vector {
	if b.body == nil {
		return cp.Vector{}
	}
	return b.body.Velocity()
}

func (b *CPBody) SetVelocity(v cp.Vector) {
	if b.body == nil {
		return
	}
	b.body.SetVelocityVector(v)
}

func (b *CPBody) GravityScale() float64 {
	return b.gravityScale
}

func (b *CPBody) SetGravityScale(scale float64) {
	b.gravityScale = scale
}

func (b *CPBody) ApplyForce(f cp.Vector) {
	if b.body == nil {
		return
	}
	b.body.ApplyForceAtWorldPoint(f, b.body.Position())
}

func (b *CPBody) Bounds() (cp.BB, bool) {
	if b.body == nil || b.shape == nil {
		return cp.BB{}, false
	}
	return b.shape.BB(), true
}
