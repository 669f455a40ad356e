package system

import (
	"fmt"
	"log"

	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
	"github.com/milk9111/mercmech/mech"
)

// MechSystem feeds input to every character once per frame and runs their
// fixed steps on the simulation clock.
type MechSystem struct {
	physics *PhysicsSystem
	frameDt float64
}

func NewMechSystem(physics *PhysicsSystem, frameDt float64) *MechSystem {
	return &MechSystem{physics: physics, frameDt: frameDt}
}

func (ms *MechSystem) Update(w *ecs.World) {
	if ms == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.MechComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, m *component.Mech, in *component.Input) {
		if m.Character == nil {
			return
		}
		m.Character.HandleInput(in.Input, ms.frameDt)
		// The dash request is an edge and must not repeat on later frames.
		in.QuickBoost = false
	})
}

func (ms *MechSystem) FixedUpdate(w *ecs.World, dt float64) {
	if ms == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.MechComponent.Kind(), func(e ecs.Entity, m *component.Mech) {
		if m.Character == nil {
			return
		}
		before := m.Last
		m.Character.FixedStep(dt)
		after := m.Character.Status()
		emitTransitions(w, e, m.Name, before, after)
		m.Last = after

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Facing = after.Facing
		}
		ms.respawnIfLost(w, e, m, after)
	})
}

func emitTransitions(w *ecs.World, e ecs.Entity, name string, before, after mech.Status) {
	push := func(kind string, value float64, detail string) {
		w.Events().Push(ecs.Event{Type: kind, Data: MechEvent{Entity: e, Name: name, Value: value, Detail: detail}})
	}

	switch {
	case !before.QuickBoosting && after.QuickBoosting:
		push(EventQuickBoostStarted, after.Energy, "")
	case before.QuickBoosting && after.QuickBoosting && after.QuickBoostProgress < before.QuickBoostProgress:
		push(EventQuickBoostChained, before.QuickBoostProgress, "")
	case before.QuickBoosting && !after.QuickBoosting:
		detail := "ground"
		if after.Flying {
			detail = "flight"
		}
		push(EventQuickBoostEnded, after.Velocity.X, detail)
	}

	if !before.Flying && after.Flying {
		push(EventFlightStarted, after.Energy, "")
	} else if before.Flying && !after.Flying {
		push(EventFlightStopped, after.Energy, "")
	}

	if before.Energy > 0 && after.Energy <= 0 && before.EnergyMax > 0 {
		push(EventEnergyDepleted, 0, "")
	}
}

func (ms *MechSystem) respawnIfLost(w *ecs.World, e ecs.Entity, m *component.Mech, st mech.Status) {
	spawn, ok := ecs.Get(w, e, component.SpawnComponent.Kind())
	if !ok || st.Position.Y >= spawn.KillY {
		return
	}
	ms.Respawn(w, e)
	w.Events().Push(ecs.Event{Type: EventMechRespawned, Data: MechEvent{Entity: e, Name: m.Name, Value: st.Position.Y, Detail: "fell"}})
}

// Respawn puts e back at its spawn point with a fresh controller state.
func (ms *MechSystem) Respawn(w *ecs.World, e ecs.Entity) {
	m, ok := ecs.Get(w, e, component.MechComponent.Kind())
	if !ok || m.Character == nil {
		return
	}
	if spawn, ok := ecs.Get(w, e, component.SpawnComponent.Kind()); ok && ms.physics != nil {
		ms.physics.Teleport(w, e, spawn.X, spawn.Y)
	}
	m.Character.Reset()
	m.Last = m.Character.Status()
}

// ResetAll respawns every mech.
func (ms *MechSystem) ResetAll(w *ecs.World) {
	ecs.ForEach(w, component.MechComponent.Kind(), func(e ecs.Entity, _ *component.Mech) {
		ms.Respawn(w, e)
	})
}

// Retune applies settings to every mech. It stops at the first rejection
// so a bad file never leaves mechs tuned differently from each other.
func (ms *MechSystem) Retune(w *ecs.World, settings mech.Settings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("mech system: retune: %w", err)
	}
	var err error
	ecs.ForEach(w, component.MechComponent.Kind(), func(e ecs.Entity, m *component.Mech) {
		if err != nil || m.Character == nil {
			return
		}
		if rerr := m.Character.Retune(settings); rerr != nil {
			err = fmt.Errorf("mech system: retune %q: %w", m.Name, rerr)
			return
		}
		log.Printf("mech: retuned %q", m.Name)
	})
	return err
}
