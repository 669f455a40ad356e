package system

import (
	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
	"github.com/milk9111/mercmech/mech"
)

// InputReader samples a device once per frame.
type InputReader func() mech.Input

// InputSystem copies device input into every mech that has no pilot.
type InputSystem struct {
	read InputReader
}

func NewInputSystem(read InputReader) *InputSystem {
	return &InputSystem{read: read}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.read == nil {
		return
	}

	state := i.read()
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		if pilot, ok := ecs.Get(w, e, component.PilotComponent.Kind()); ok && !pilot.Disabled {
			return
		}
		input.Input = state
		input.Source = component.InputSourceDevice
	})
}
