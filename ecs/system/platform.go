package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
)

// PlatformSystem drives kinematic platforms along their tween. It sets a
// velocity instead of a position so the solver carries riders.
type PlatformSystem struct{}

func NewPlatformSystem() *PlatformSystem {
	return &PlatformSystem{}
}

func (p *PlatformSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	ecs.ForEach2(w, component.PlatformComponent.Kind(), component.PhysicsBodyComponent.Kind(), func(e ecs.Entity, plat *component.Platform, body *component.PhysicsBody) {
		if plat.Sequence == nil || body.Body == nil {
			return
		}
		offset, _, done := plat.Sequence.Update(float32(dt))
		if done {
			plat.Sequence.Reset()
		}
		plat.Offset = float64(offset)

		pos := body.Body.Position()
		target := plat.Origin + plat.Offset
		switch plat.Axis {
		case component.PlatformAxisY:
			body.Body.SetVelocityVector(cp.Vector{Y: (target - pos.Y) / dt})
		default:
			body.Body.SetVelocityVector(cp.Vector{X: (target - pos.X) / dt})
		}
	})
}
