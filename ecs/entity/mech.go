package entity

import (
	"fmt"

	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
	"github.com/milk9111/mercmech/ecs/system"
	"github.com/milk9111/mercmech/mech"
	"github.com/milk9111/mercmech/prefabs"
)

// BuildMech spawns a mech from spec with a Chipmunk body in the physics
// space. A non-empty spec.Pilot hands control to that script.
func BuildMech(w *ecs.World, physics *system.PhysicsSystem, spec *prefabs.MechSpec, killY float64) (ecs.Entity, error) {
	if w == nil || physics == nil || spec == nil {
		return 0, fmt.Errorf("entity: build mech: missing world, physics or spec")
	}

	e := ecs.CreateEntity(w)
	fail := func(err error) (ecs.Entity, error) {
		ecs.DestroyEntity(w, e)
		physics.Update(w)
		return 0, fmt.Errorf("entity: build mech %q: %w", spec.Name, err)
	}

	m := &component.Mech{Name: spec.Name, Color: spec.Color.RGB()}
	if err := ecs.Add(w, e, component.MechComponent.Kind(), m); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: spec.Spawn.X, Y: spec.Spawn.Y, Facing: 1}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    spec.Collider.Width,
		Height:   spec.Collider.Height,
		Mass:     spec.Collider.Mass,
		Friction: spec.Collider.Friction,
	}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.SpawnComponent.Kind(), &component.Spawn{X: spec.Spawn.X, Y: spec.Spawn.Y, KillY: killY}); err != nil {
		return fail(err)
	}
	if spec.Pilot != "" {
		if err := ecs.Add(w, e, component.PilotComponent.Kind(), &component.Pilot{ScriptPath: spec.Pilot}); err != nil {
			return fail(err)
		}
	}

	body, shape, err := physics.EnsureBody(w, e)
	if err != nil {
		return fail(err)
	}
	character, err := mech.NewCharacter(mech.NewCPBody(body, shape), physics.Space(), spec.Tuning)
	if err != nil {
		return fail(err)
	}
	m.Character = character
	m.Last = character.Status()
	return e, nil
}
