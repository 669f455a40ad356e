package system

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
	"github.com/milk9111/mercmech/prefabs"
)

// DefaultPilotBudget bounds one script call.
const DefaultPilotBudget = 20 * time.Millisecond

// ScriptLoader returns the source of a pilot script by name.
type ScriptLoader func(path string) ([]byte, error)

// PilotSystem runs each pilot's tengo script once per frame and writes the
// returned intent into the entity's Input.
type PilotSystem struct {
	Budget time.Duration

	load     ScriptLoader
	runtimes map[ecs.Entity]*pilotRuntime
}

func NewPilotSystem(load ScriptLoader) *PilotSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &PilotSystem{
		Budget:   DefaultPilotBudget,
		load:     load,
		runtimes: make(map[ecs.Entity]*pilotRuntime),
	}
}

func (ps *PilotSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	for e := range ps.runtimes {
		if !ecs.IsAlive(w, e) || !ecs.Has(w, e, component.PilotComponent.Kind()) {
			delete(ps.runtimes, e)
		}
	}

	ecs.ForEach3(w, component.PilotComponent.Kind(), component.MechComponent.Kind(), component.InputComponent.Kind(),
		func(e ecs.Entity, pilot *component.Pilot, m *component.Mech, input *component.Input) {
			if pilot.Disabled || m.Character == nil {
				return
			}
			rt, err := ps.runtime(e, pilot.ScriptPath)
			if err != nil {
				ps.fail(w, e, pilot, m.Name, err)
				return
			}

			out, err := rt.call(pilot.Tick, m.Character.Status(), ps.Budget)
			if err != nil {
				ps.fail(w, e, pilot, m.Name, err)
				return
			}
			pilot.Tick++
			pilot.LastError = ""
			input.Input = out
			input.Source = component.InputSourceScript
		})
}

// fail disables the pilot so a broken script does not spam every frame.
// The mech falls back to device input until the script is reloaded.
func (ps *PilotSystem) fail(w *ecs.World, e ecs.Entity, pilot *component.Pilot, name string, err error) {
	pilot.Disabled = true
	pilot.LastError = err.Error()
	delete(ps.runtimes, e)
	log.Printf("pilot: entity=%v script=%s error: %v", e, pilot.ScriptPath, err)
	w.Events().Push(ecs.Event{Type: EventPilotError, Data: MechEvent{Entity: e, Name: name, Detail: err.Error()}})
}

func (ps *PilotSystem) runtime(e ecs.Entity, path string) (*pilotRuntime, error) {
	if rt, ok := ps.runtimes[e]; ok && rt.scriptPath == path {
		return rt, nil
	}
	src, err := ps.load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	rt, err := compilePilot(path, src)
	if err != nil {
		return nil, err
	}
	ps.runtimes[e] = rt
	return rt, nil
}

// Reload drops the cached runtime of every pilot running path, re-enables
// them and restarts their tick count.
func (ps *PilotSystem) Reload(w *ecs.World, path string) {
	if ps == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.PilotComponent.Kind(), func(e ecs.Entity, pilot *component.Pilot) {
		if scriptKey(pilot.ScriptPath) != scriptKey(path) {
			return
		}
		delete(ps.runtimes, e)
		pilot.Disabled = false
		pilot.LastError = ""
		pilot.Tick = 0
	})
}

func scriptKey(path string) string {
	return strings.TrimSuffix(filepath.Base(filepath.ToSlash(path)), ".tengo")
}
