// Package sim wires the ECS world, the physics space and the mech systems
// into one steppable simulation shared by the demo and the headless runner.
package sim

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
	"github.com/milk9111/mercmech/ecs/entity"
	"github.com/milk9111/mercmech/ecs/system"
	"github.com/milk9111/mercmech/mech"
	"github.com/milk9111/mercmech/prefabs"
)

const (
	DefaultFrameDt  = 1.0 / 60.0
	DefaultFixedDt  = 1.0 / 120.0
	maxStepsPerTick = 8
)

type Options struct {
	MechFile  string
	LevelFile string
	// Pilot overrides the mech file's pilot script. "-" forces device input.
	Pilot   string
	Input   system.InputReader
	Tuning  *mech.Settings
	FrameDt float64
	FixedDt float64
	Verbose bool
	Debug   bool
	// OnEvent sees every event once, after the frame that produced it.
	OnEvent func(ecs.Event)
}

type Simulation struct {
	World   *ecs.World
	Physics *system.PhysicsSystem
	Mechs   *system.MechSystem
	Pilots  *system.PilotSystem

	Player    ecs.Entity
	MechSpec  *prefabs.MechSpec
	LevelSpec *prefabs.LevelSpec

	opts      Options
	scheduler *ecs.Scheduler
	frames    int
}

func New(opts Options) (*Simulation, error) {
	if opts.MechFile == "" {
		opts.MechFile = "mech.yaml"
	}
	if opts.LevelFile == "" {
		opts.LevelFile = "level.yaml"
	}
	if opts.FrameDt <= 0 {
		opts.FrameDt = DefaultFrameDt
	}
	if opts.FixedDt <= 0 {
		opts.FixedDt = DefaultFixedDt
	}

	s := &Simulation{opts: opts}
	if err := s.build(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) build() error {
	mechSpec, err := prefabs.LoadMechSpec(s.opts.MechFile)
	if err != nil {
		return err
	}
	levelSpec, err := prefabs.LoadLevelSpec(s.opts.LevelFile)
	if err != nil {
		return err
	}
	if s.opts.Tuning != nil {
		mechSpec.Tuning = *s.opts.Tuning
	}
	mechSpec.Tuning.Debug = s.opts.Debug
	switch s.opts.Pilot {
	case "":
	case "-":
		mechSpec.Pilot = ""
	default:
		mechSpec.Pilot = s.opts.Pilot
	}

	w := ecs.NewWorld()
	physics := system.NewPhysicsSystem(levelSpec.Gravity)
	if err := entity.BuildLevel(w, physics, levelSpec); err != nil {
		return fmt.Errorf("sim: build level: %w", err)
	}
	player, err := entity.BuildMech(w, physics, mechSpec, levelSpec.KillY)
	if err != nil {
		return fmt.Errorf("sim: %w", err)
	}

	mechs := system.NewMechSystem(physics, s.opts.FrameDt)
	pilots := system.NewPilotSystem(prefabs.LoadScript)
	events := system.NewEventLogSystem(s.opts.Verbose)
	events.Sink = s.opts.OnEvent

	scheduler := ecs.NewScheduler(
		physics,
		system.NewInputSystem(s.opts.Input),
		pilots,
		mechs,
	)
	scheduler.AddFixed(system.NewPlatformSystem())
	scheduler.AddFixed(mechs)
	scheduler.AddFixed(physics)
	scheduler.AddLate(system.NewCameraSystem())
	scheduler.AddLate(events)
	scheduler.SetTiming(s.opts.FrameDt, s.opts.FixedDt, maxStepsPerTick)

	s.World = w
	s.Physics = physics
	s.Mechs = mechs
	s.Pilots = pilots
	s.Player = player
	s.MechSpec = mechSpec
	s.LevelSpec = levelSpec
	s.scheduler = scheduler
	s.frames = 0
	return nil
}

// Update advances one frame.
func (s *Simulation) Update() {
	s.scheduler.Update(s.World)
	s.frames++
}

func (s *Simulation) Frames() int { return s.frames }

func (s *Simulation) FixedDt() float64 { return s.opts.FixedDt }

// Character returns the player's controller.
func (s *Simulation) Character() *mech.Character {
	m, ok := ecs.Get(s.World, s.Player, component.MechComponent.Kind())
	if !ok {
		return nil
	}
	return m.Character
}

// Reset returns every mech to its spawn point.
func (s *Simulation) Reset() {
	s.Mechs.ResetAll(s.World)
}

// Rebuild throws the world away and loads both files again.
func (s *Simulation) Rebuild() error {
	old := *s
	if err := s.build(); err != nil {
		*s = old
		return err
	}
	return nil
}

// Retune applies new tuning to every mech, keeping the debug flag.
func (s *Simulation) Retune(settings mech.Settings) error {
	settings.Debug = s.opts.Debug
	if err := s.Mechs.Retune(s.World, settings); err != nil {
		return err
	}
	s.MechSpec.Tuning = settings
	return nil
}

// HandleFileChange reacts to an edited prefab file: the mech file retunes,
// the level file rebuilds and scripts reload the pilots that run them.
func (s *Simulation) HandleFileChange(path string) error {
	name := filepath.Base(path)
	switch {
	case strings.HasSuffix(name, ".tengo"):
		s.Pilots.Reload(s.World, name)
		log.Printf("sim: reloaded script %s", name)
		return nil
	case name == filepath.Base(s.opts.MechFile):
		spec, err := prefabs.LoadMechSpec(s.opts.MechFile)
		if err != nil {
			return err
		}
		return s.Retune(spec.Tuning)
	case name == filepath.Base(s.opts.LevelFile):
		return s.Rebuild()
	}
	return nil
}

func (s *Simulation) Debug() bool { return s.opts.Debug }

// SetDebug turns movement sampling on or off for every mech.
func (s *Simulation) SetDebug(on bool) error {
	s.opts.Debug = on
	settings := s.MechSpec.Tuning
	settings.Debug = on
	return s.Retune(settings)
}

// Pilot is the script driving the player, or "" for device input.
func (s *Simulation) Pilot() string {
	if p, ok := ecs.Get(s.World, s.Player, component.PilotComponent.Kind()); ok {
		return p.ScriptPath
	}
	return ""
}

// SetPilot rebuilds the world with name driving the player. "-" or ""
// hands control back to the device.
func (s *Simulation) SetPilot(name string) error {
	if name == "" {
		name = "-"
	}
	prev := s.opts.Pilot
	s.opts.Pilot = name
	if err := s.Rebuild(); err != nil {
		s.opts.Pilot = prev
		return err
	}
	return nil
}
