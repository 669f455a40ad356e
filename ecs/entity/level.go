package entity

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
	"github.com/milk9111/mercmech/ecs/system"
	"github.com/milk9111/mercmech/mech"
	"github.com/milk9111/mercmech/prefabs"
)

// BuildLevel creates the static solids, moving platforms and camera of a
// level.
func BuildLevel(w *ecs.World, physics *system.PhysicsSystem, level *prefabs.LevelSpec) error {
	if w == nil || physics == nil || level == nil {
		return fmt.Errorf("entity: build level: missing world, physics or level")
	}

	for _, box := range level.Solids {
		e := ecs.CreateEntity(w)
		if err := addBox(w, e, box, true); err != nil {
			return fmt.Errorf("entity: solid %q: %w", box.Name, err)
		}
		if err := ecs.Add(w, e, component.SolidComponent.Kind(), &component.Solid{Name: box.Name}); err != nil {
			return err
		}
		if _, _, err := physics.EnsureBody(w, e); err != nil {
			return fmt.Errorf("entity: solid %q: %w", box.Name, err)
		}
	}

	for _, p := range level.Platforms {
		if _, err := BuildPlatform(w, physics, p); err != nil {
			return err
		}
	}

	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		TargetName: level.Camera.Target,
		Smoothness: level.Camera.Smoothness,
		LookAhead:  level.Camera.LookAhead,
	}); err != nil {
		return err
	}
	return ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{})
}

// BuildPlatform creates one kinematic platform that ping-pongs along its axis.
func BuildPlatform(w *ecs.World, physics *system.PhysicsSystem, p prefabs.PlatformSpec) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := addBox(w, e, p.BoxSpec, false); err != nil {
		return 0, fmt.Errorf("entity: platform %q: %w", p.Name, err)
	}

	fn := ease.Linear
	if p.Ease != "" {
		if named, ok := mech.EaseFunc(p.Ease); ok {
			fn = named
		}
	}
	dist, dur := float32(p.Distance), float32(p.Duration)
	seq := gween.NewSequence(
		gween.New(0, dist, dur, fn),
		gween.New(dist, 0, dur, fn),
	)

	plat := &component.Platform{Axis: component.PlatformAxisX, Origin: p.X, Sequence: seq}
	if p.Axis == "y" {
		plat.Axis = component.PlatformAxisY
		plat.Origin = p.Y
	}
	if err := ecs.Add(w, e, component.PlatformComponent.Kind(), plat); err != nil {
		return 0, err
	}
	if _, _, err := physics.EnsureBody(w, e); err != nil {
		return 0, fmt.Errorf("entity: platform %q: %w", p.Name, err)
	}
	return e, nil
}

func addBox(w *ecs.World, e ecs.Entity, box prefabs.BoxSpec, static bool) error {
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: box.X, Y: box.Y}); err != nil {
		return err
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:     box.Width,
		Height:    box.Height,
		Friction:  box.Friction,
		Static:    static,
		Kinematic: !static,
	})
}
