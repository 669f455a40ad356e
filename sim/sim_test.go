package sim

import (
	"testing"

	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
	"github.com/milk9111/mercmech/ecs/system"
	"github.com/milk9111/mercmech/mech"
)

func newSim(t *testing.T, opts Options) *Simulation {
	t.Helper()
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSimulationRunsPilot(t *testing.T) {
	counts := map[string]int{}
	s := newSim(t, Options{
		Pilot:   "dash_chain",
		OnEvent: func(evt ecs.Event) { counts[evt.Type]++ },
	})
	if s.Pilot() != "dash_chain" {
		t.Fatalf("pilot = %q", s.Pilot())
	}

	for i := 0; i < 240; i++ {
		s.Update()
	}
	if s.Frames() != 240 {
		t.Fatalf("frames = %d", s.Frames())
	}
	if counts[system.EventQuickBoostStarted] == 0 {
		t.Fatalf("pilot never dashed: %v", counts)
	}
	if counts[system.EventPilotError] != 0 {
		t.Fatalf("bundled pilot failed: %v", counts)
	}
	in, _ := ecs.Get(s.World, s.Player, component.InputComponent.Kind())
	if in.Source != component.InputSourceScript {
		t.Fatalf("input source = %v, want script", in.Source)
	}
}

func TestSimulationDeviceInput(t *testing.T) {
	s := newSim(t, Options{
		Pilot: "-",
		Input: func() mech.Input { return mech.Input{MoveAxis: -1} },
	})
	if s.Pilot() != "" {
		t.Fatalf("pilot = %q, want device", s.Pilot())
	}
	start := s.Character().Status().Position.X
	for i := 0; i < 60; i++ {
		s.Update()
	}
	st := s.Character().Status()
	if st.Position.X >= start || st.Facing != -1 {
		t.Fatalf("status = %+v, want walking left", st)
	}
	if !st.Grounded {
		t.Fatalf("mech should have landed on the floor")
	}

	s.Reset()
	if got := s.Character().Status().Position; got.X != s.MechSpec.Spawn.X || got.Y != s.MechSpec.Spawn.Y {
		t.Fatalf("position after reset = %v", got)
	}
}

func TestSimulationTuningOverride(t *testing.T) {
	tuning := mech.DefaultSettings()
	tuning.Move.WalkSpeed = 1.5
	s := newSim(t, Options{Pilot: "-", Tuning: &tuning, Debug: true})
	got := s.Character().Settings()
	if got.Move.WalkSpeed != 1.5 || !got.Debug {
		t.Fatalf("settings = %+v", got.Move)
	}
	if s.FixedDt() != DefaultFixedDt {
		t.Fatalf("fixed dt = %v", s.FixedDt())
	}
}

func TestSimulationRetuneAndDebug(t *testing.T) {
	s := newSim(t, Options{Pilot: "-"})

	bad := s.MechSpec.Tuning
	bad.MaxFallSpeed = 0
	if err := s.Retune(bad); err == nil {
		t.Fatalf("expected invalid tuning to be rejected")
	}

	if err := s.SetDebug(true); err != nil {
		t.Fatalf("SetDebug: %v", err)
	}
	if !s.Debug() || !s.Character().Settings().Debug {
		t.Fatalf("debug flag did not reach the character")
	}
	for i := 0; i < 10; i++ {
		s.Update()
	}
	if len(s.Character().Samples()) == 0 {
		t.Fatalf("expected movement samples in debug mode")
	}

	good := s.MechSpec.Tuning
	good.Debug = false
	if err := s.Retune(good); err != nil {
		t.Fatalf("Retune: %v", err)
	}
	if !s.Character().Settings().Debug {
		t.Fatalf("retune must keep the debug flag")
	}
}

func TestSimulationHandleFileChange(t *testing.T) {
	s := newSim(t, Options{Pilot: "dash_chain"})
	pilot, _ := ecs.Get(s.World, s.Player, component.PilotComponent.Kind())
	pilot.Disabled = true
	pilot.LastError = "boom"

	if err := s.HandleFileChange("prefabs/scripts/dash_chain.tengo"); err != nil {
		t.Fatalf("script change: %v", err)
	}
	if pilot.Disabled || pilot.LastError != "" {
		t.Fatalf("pilot not reloaded: %+v", pilot)
	}

	if err := s.HandleFileChange("prefabs/mech.yaml"); err != nil {
		t.Fatalf("mech change: %v", err)
	}

	oldWorld := s.World
	if err := s.HandleFileChange("prefabs/level.yaml"); err != nil {
		t.Fatalf("level change: %v", err)
	}
	if s.World == oldWorld || s.Frames() != 0 {
		t.Fatalf("level change should rebuild the world")
	}

	if err := s.HandleFileChange("prefabs/readme.md"); err != nil {
		t.Fatalf("unrelated file: %v", err)
	}
}

func TestSimulationRebuildKeepsStateOnFailure(t *testing.T) {
	s := newSim(t, Options{Pilot: "-"})
	world := s.World
	s.opts.LevelFile = "missing.yaml"
	if err := s.Rebuild(); err == nil {
		t.Fatalf("expected rebuild to fail")
	}
	if s.World != world || s.Player == 0 {
		t.Fatalf("failed rebuild replaced the simulation")
	}
}

func TestSimulationSetPilot(t *testing.T) {
	s := newSim(t, Options{Pilot: "-"})
	if err := s.SetPilot("hover"); err != nil {
		t.Fatalf("SetPilot: %v", err)
	}
	if s.Pilot() != "hover" {
		t.Fatalf("pilot = %q", s.Pilot())
	}
	if err := s.SetPilot(""); err != nil {
		t.Fatalf("SetPilot(\"\"): %v", err)
	}
	if s.Pilot() != "" {
		t.Fatalf("pilot = %q, want device", s.Pilot())
	}
}

func TestNewFailsOnMissingFiles(t *testing.T) {
	if _, err := New(Options{MechFile: "missing.yaml"}); err == nil {
		t.Fatalf("expected an error for a missing mech file")
	}
	if _, err := New(Options{LevelFile: "missing.yaml"}); err == nil {
		t.Fatalf("expected an error for a missing level file")
	}
}
