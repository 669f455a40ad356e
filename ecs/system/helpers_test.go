package system

import (
	"testing"

	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
	"github.com/milk9111/mercmech/mech"
)

const testFixedDt = 1.0 / 120.0

func addBox(t *testing.T, w *ecs.World, ps *PhysicsSystem, x, y, width, height float64, static, kinematic bool) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		t.Fatalf("add transform: %v", err)
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width: width, Height: height, Static: static, Kinematic: kinematic,
	}); err != nil {
		t.Fatalf("add body: %v", err)
	}
	if _, _, err := ps.EnsureBody(w, e); err != nil {
		t.Fatalf("EnsureBody: %v", err)
	}
	return e
}

func addFloor(t *testing.T, w *ecs.World, ps *PhysicsSystem) ecs.Entity {
	t.Helper()
	return addBox(t, w, ps, 0, -0.5, 40, 1, true, false)
}

// addMech spawns a 1x2 mech with default tuning standing at (x, y).
func addMech(t *testing.T, w *ecs.World, ps *PhysicsSystem, name string, x, y float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	m := &component.Mech{Name: name}
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("add component: %v", err)
		}
	}
	must(ecs.Add(w, e, component.MechComponent.Kind(), m))
	must(ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y, Facing: 1}))
	must(ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Width: 1, Height: 2, Mass: 1}))
	must(ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	must(ecs.Add(w, e, component.SpawnComponent.Kind(), &component.Spawn{X: x, Y: y, KillY: -20}))

	body, shape, err := ps.EnsureBody(w, e)
	if err != nil {
		t.Fatalf("EnsureBody: %v", err)
	}
	c, err := mech.NewCharacter(mech.NewCPBody(body, shape), ps.Space(), mech.DefaultSettings())
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	m.Character = c
	m.Last = c.Status()
	return e
}

// eventRecorder collects events through an EventLogSystem sink.
type eventRecorder struct {
	events []ecs.Event
}

func (r *eventRecorder) system() *EventLogSystem {
	s := NewEventLogSystem(false)
	s.Sink = func(evt ecs.Event) { r.events = append(r.events, evt) }
	return s
}

func (r *eventRecorder) count(kind string) int {
	n := 0
	for _, evt := range r.events {
		if evt.Type == kind {
			n++
		}
	}
	return n
}

func countEvents(w *ecs.World, kind string) int {
	return len(w.Events().Of(kind))
}
