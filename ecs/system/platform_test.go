package system

import (
	"math"
	"testing"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
)

func TestPlatformFollowsTween(t *testing.T) {
	cases := []struct {
		name  string
		axis  component.PlatformAxis
		steps int
		want  float64
	}{
		{"x_outbound_half", component.PlatformAxisX, 60, 1},
		{"x_turnaround", component.PlatformAxisX, 120, 2},
		{"y_return_half", component.PlatformAxisY, 180, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			ps := NewPhysicsSystem(DefaultGravity)
			e := addBox(t, w, ps, 0, 0, 3, 0.5, false, true)
			plat := &component.Platform{
				Axis: c.axis,
				Sequence: gween.NewSequence(
					gween.New(0, 2, 1, ease.Linear),
					gween.New(2, 0, 1, ease.Linear),
				),
			}
			if err := ecs.Add(w, e, component.PlatformComponent.Kind(), plat); err != nil {
				t.Fatalf("add platform: %v", err)
			}

			platforms := NewPlatformSystem()
			for i := 0; i < c.steps; i++ {
				platforms.FixedUpdate(w, testFixedDt)
				ps.FixedUpdate(w, testFixedDt)
			}

			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			got, other := tr.X, tr.Y
			if c.axis == component.PlatformAxisY {
				got, other = tr.Y, tr.X
			}
			if math.Abs(got-c.want) > 0.02 || math.Abs(other) > 1e-9 {
				t.Fatalf("position = %v,%v, want %v along the axis", tr.X, tr.Y, c.want)
			}
			if math.Abs(plat.Offset-c.want) > 0.02 {
				t.Fatalf("offset = %v, want %v", plat.Offset, c.want)
			}
		})
	}
}

func TestPlatformCarriesRider(t *testing.T) {
	w := ecs.NewWorld()
	ps := NewPhysicsSystem(DefaultGravity)
	e := addBox(t, w, ps, 0, -0.25, 6, 0.5, false, true)
	plat := &component.Platform{
		Axis:     component.PlatformAxisY,
		Origin:   -0.25,
		Sequence: gween.NewSequence(gween.New(0, 3, 2, ease.Linear), gween.New(3, 0, 2, ease.Linear)),
	}
	_ = ecs.Add(w, e, component.PlatformComponent.Kind(), plat)
	rider := addMech(t, w, ps, "merc", 0, 1)

	platforms := NewPlatformSystem()
	for i := 0; i < 120; i++ {
		platforms.FixedUpdate(w, testFixedDt)
		ps.FixedUpdate(w, testFixedDt)
	}
	tr, _ := ecs.Get(w, rider, component.TransformComponent.Kind())
	if tr.Y < 2 {
		t.Fatalf("rider at y=%v, want lifted with the platform", tr.Y)
	}
}
