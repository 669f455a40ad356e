package mech

import (
	"errors"
	"testing"
)

type rig struct {
	c      *Character
	body   *fakeBody
	sensor *stubSensor
}

func newRig(t *testing.T, mutate func(*Settings)) *rig {
	t.Helper()
	s := DefaultSettings()
	if mutate != nil {
		mutate(&s)
	}
	body := newFakeBody()
	c, err := NewCharacter(body, nil, s)
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	sensor := &stubSensor{grounded: true}
	c.SetGroundSensor(sensor)
	c.FixedStep(testDt)
	return &rig{c: c, body: body, sensor: sensor}
}

// frame runs one input frame, one fixed step and one integration step.
func (r *rig) frame(in Input) {
	r.c.HandleInput(in, testDt)
	r.c.FixedStep(testDt)
	r.body.integrate(testDt)
	if r.sensor.grounded && r.body.vel.Y < 0 {
		r.body.vel.Y = 0
	}
}

func TestNewCharacterValidates(t *testing.T) {
	s := DefaultSettings()
	s.QuickBoost.Duration = 0
	if _, err := NewCharacter(newFakeBody(), nil, s); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("err = %v, want ErrInvalidSettings", err)
	}
	if _, err := NewCharacter(nil, nil, DefaultSettings()); err == nil {
		t.Fatalf("expected error for nil body")
	}
}

func TestCharacterStartsWithNormalGravity(t *testing.T) {
	r := newRig(t, nil)
	if r.body.gravityScale != DefaultSettings().Flight.NormalGravityScale {
		t.Fatalf("gravity = %v", r.body.gravityScale)
	}
	if r.c.Facing() != 1 || r.c.Energy() != r.c.EnergyMax() {
		t.Fatalf("facing=%d energy=%v", r.c.Facing(), r.c.Energy())
	}
}

func TestCharacterWalksToWalkSpeed(t *testing.T) {
	r := newRig(t, nil)
	for i := 0; i < 60; i++ {
		r.frame(Input{MoveAxis: 1})
	}
	if !near(r.body.vel.X, DefaultSettings().Move.WalkSpeed) {
		t.Fatalf("vx = %v, want walk speed", r.body.vel.X)
	}
	r.frame(Input{MoveAxis: -1})
	if r.c.Facing() != -1 {
		t.Fatalf("facing = %d, want -1", r.c.Facing())
	}
}

func TestCharacterJumpThenFly(t *testing.T) {
	r := newRig(t, nil)
	s := r.c.Settings()

	r.frame(Input{Jump: true})
	if r.c.JumpPhase() != JumpWindingUp {
		t.Fatalf("phase = %v, want winding up", r.c.JumpPhase())
	}
	r.sensor.grounded = false

	jumped := false
	flewAt := -1
	for i := 0; i < 120 && flewAt < 0; i++ {
		r.frame(Input{Jump: true})
		if r.body.vel.Y > s.Flight.EngageVelocityThreshold {
			jumped = true
			if r.c.IsFlying() {
				t.Fatalf("flight engaged while still rising fast at step %d", i)
			}
		}
		if r.c.IsFlying() {
			flewAt = i
		}
	}
	if !jumped {
		t.Fatalf("jump never happened")
	}
	if flewAt < 0 {
		t.Fatalf("holding jump never engaged flight")
	}
	if r.body.gravityScale != s.Flight.FlyGravityScale {
		t.Fatalf("gravity = %v, want fly gravity", r.body.gravityScale)
	}
}

func TestCharacterFlightDrainsAndStops(t *testing.T) {
	r := newRig(t, nil)
	r.sensor.grounded = false
	flew := false
	for i := 0; i < 2000; i++ {
		r.frame(Input{Fly: true})
		if r.c.IsFlying() {
			flew = true
		} else if flew {
			break
		}
	}
	if !flew || r.c.IsFlying() {
		t.Fatalf("flight should start and then stop once energy runs out")
	}
	if r.c.Energy() > energyEpsilon {
		t.Fatalf("flight stopped with energy %v left", r.c.Energy())
	}
	r.frame(Input{Fly: true})
	if r.c.IsFlying() {
		t.Fatalf("flight must not restart below the start threshold")
	}
}

func TestCharacterBoostStartCost(t *testing.T) {
	r := newRig(t, nil)
	s := r.c.Settings()

	r.c.HandleInput(Input{Boost: true}, testDt)
	if !r.c.IsBoosting() || !near(r.c.Energy(), s.Energy.Max-s.Energy.HorizontalBoostStartCost) {
		t.Fatalf("boosting=%v energy=%v", r.c.IsBoosting(), r.c.Energy())
	}
	r.c.HandleInput(Input{Boost: true}, testDt)
	if !near(r.c.Energy(), s.Energy.Max-s.Energy.HorizontalBoostStartCost) {
		t.Fatalf("holding boost must not charge again")
	}
	r.c.HandleInput(Input{}, testDt)
	if r.c.IsBoosting() {
		t.Fatalf("release should stop boosting")
	}

	r.c.energy.current = 1
	r.c.HandleInput(Input{Boost: true}, testDt)
	if r.c.IsBoosting() {
		t.Fatalf("boost should be refused without the start cost")
	}
}

func TestCharacterDashOwnsVelocity(t *testing.T) {
	r := newRig(t, nil)
	r.frame(Input{MoveAxis: 1, QuickBoost: true})
	if !r.c.IsQuickBoosting() {
		t.Fatalf("expected dash")
	}
	energy := r.c.Energy()

	for r.c.IsQuickBoosting() {
		r.frame(Input{MoveAxis: -1})
		if r.c.IsQuickBoosting() && r.body.vel.X <= 0 {
			t.Fatalf("locomotion steered the body during a dash: vx=%v", r.body.vel.X)
		}
		if r.c.IsQuickBoosting() && r.c.Energy() != energy {
			t.Fatalf("energy changed during dash: %v -> %v", energy, r.c.Energy())
		}
	}
}

func TestCharacterDashExitHandsOffFlight(t *testing.T) {
	r := newRig(t, nil)
	r.sensor.grounded = false
	r.frame(Input{MoveAxis: 1, QuickBoost: true})
	if !r.c.IsQuickBoosting() {
		t.Fatalf("expected dash")
	}
	for i := 0; i < 60 && r.c.IsQuickBoosting(); i++ {
		r.c.HandleInput(Input{MoveAxis: 1, Fly: true}, testDt)
		r.c.FixedStep(testDt)
		if !r.c.IsQuickBoosting() {
			break
		}
		r.body.integrate(testDt)
	}
	if !r.c.IsFlying() {
		t.Fatalf("dash exit with fly held should hand off into flight")
	}
	if r.body.gravityScale != r.c.Settings().Flight.FlyGravityScale {
		t.Fatalf("gravity = %v, want fly gravity", r.body.gravityScale)
	}
}

func TestCharacterDashRefusedOnCooldownUntilFrames(t *testing.T) {
	r := newRig(t, func(s *Settings) { s.QuickBoost.Cooldown = 10 })
	r.frame(Input{QuickBoost: true})
	for r.c.IsQuickBoosting() {
		r.frame(Input{})
	}
	r.frame(Input{QuickBoost: true})
	if r.c.IsQuickBoosting() {
		t.Fatalf("dash should be on cooldown")
	}
	r.c.HandleInput(Input{}, 10)
	r.frame(Input{QuickBoost: true})
	if !r.c.IsQuickBoosting() {
		t.Fatalf("cooldown should clear with frame time")
	}
}

func TestCharacterFallSpeedClamp(t *testing.T) {
	r := newRig(t, nil)
	r.sensor.grounded = false
	r.body.vel.Y = -50
	r.c.HandleInput(Input{}, testDt)
	r.c.FixedStep(testDt)
	if r.body.vel.Y != -r.c.Settings().MaxFallSpeed {
		t.Fatalf("vy = %v, want clamp", r.body.vel.Y)
	}
}

func TestCharacterFlightStartFee(t *testing.T) {
	cases := []struct {
		name       string
		energy     float64
		wantFlying bool
	}{
		{"fee_paid", 50, true},
		{"fee_unpayable", 5, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, func(s *Settings) {
				s.Energy.ChargeFlightStartFee = true
				s.Energy.FlightStartCost = 8
			})
			r.sensor.grounded = false
			r.c.energy.current = c.energy
			r.c.HandleInput(Input{Fly: true}, testDt)
			r.c.FixedStep(testDt)
			if r.c.IsFlying() != c.wantFlying {
				t.Fatalf("flying = %v, want %v (energy %v)", r.c.IsFlying(), c.wantFlying, r.c.Energy())
			}
			if !c.wantFlying && r.body.gravityScale != r.c.Settings().Flight.NormalGravityScale {
				t.Fatalf("cancelled flight left gravity at %v", r.body.gravityScale)
			}
		})
	}
}

func TestCharacterRetune(t *testing.T) {
	r := newRig(t, nil)
	s := r.c.Settings()
	s.Energy.Max = 40
	s.Move.WalkSpeed = 2
	if err := r.c.Retune(s); err != nil {
		t.Fatalf("Retune: %v", err)
	}
	if r.c.Energy() != 40 {
		t.Fatalf("energy = %v, want clamped to new max", r.c.Energy())
	}
	for i := 0; i < 60; i++ {
		r.frame(Input{MoveAxis: 1})
	}
	if !near(r.body.vel.X, 2) {
		t.Fatalf("vx = %v, want retuned walk speed", r.body.vel.X)
	}

	bad := s
	bad.MaxFallSpeed = 0
	if err := r.c.Retune(bad); err == nil {
		t.Fatalf("expected invalid settings to be rejected")
	}
}

func TestCharacterDebugSamples(t *testing.T) {
	r := newRig(t, func(s *Settings) { s.Debug = true })
	for i := 0; i < SampleCount+5; i++ {
		r.frame(Input{MoveAxis: 1})
	}
	samples := r.c.Samples()
	if len(samples) != SampleCount {
		t.Fatalf("len = %d, want %d", len(samples), SampleCount)
	}
	if samples[len(samples)-1].Speed < samples[0].Speed {
		t.Fatalf("samples should be oldest first")
	}

	quiet := newRig(t, nil)
	quiet.frame(Input{MoveAxis: 1})
	if len(quiet.c.Samples()) != 0 {
		t.Fatalf("samples recorded without debug")
	}
}

func TestCharacterReset(t *testing.T) {
	r := newRig(t, nil)
	r.frame(Input{MoveAxis: 1, QuickBoost: true, Boost: true})
	r.c.Reset()
	st := r.c.Status()
	if st.QuickBoosting || st.Boosting || st.Flying || st.Energy != st.EnergyMax {
		t.Fatalf("status after reset = %+v", st)
	}
	if r.body.vel.X != 0 || r.body.vel.Y != 0 {
		t.Fatalf("velocity after reset = %v", r.body.vel)
	}
}

// jumpUntilRising performs a jump with jump held and returns once the body
// rises faster than flight may engage.
func (r *rig) jumpUntilRising(t *testing.T) {
	t.Helper()
	r.frame(Input{Jump: true})
	r.sensor.grounded = false
	for i := 0; i < 60; i++ {
		r.frame(Input{Jump: true})
		if r.body.vel.Y > r.c.Settings().Flight.EngageVelocityThreshold {
			return
		}
	}
	t.Fatalf("jump never rose past the flight threshold")
}

// dashUntilExit starts a dash and holds input until it ends, returning the
// vertical velocity the dash left on the body.
func (r *rig) dashUntilExit(t *testing.T, held Input) float64 {
	t.Helper()
	start := held
	start.QuickBoost = true
	r.frame(start)
	if !r.c.IsQuickBoosting() {
		t.Fatalf("expected dash")
	}
	for i := 0; i < 60; i++ {
		r.c.HandleInput(held, testDt)
		r.c.FixedStep(testDt)
		if !r.c.IsQuickBoosting() {
			return r.body.vel.Y
		}
		r.body.integrate(testDt)
	}
	t.Fatalf("dash never ended")
	return 0
}

func TestCharacterDashFromJumpKeepsFlight(t *testing.T) {
	r := newRig(t, nil)
	s := r.c.Settings()
	r.jumpUntilRising(t)
	if r.c.IsFlying() {
		t.Fatalf("flight should be blocked while rising from the jump")
	}

	held := Input{MoveAxis: 1, Jump: true}
	r.dashUntilExit(t, held)
	if !r.c.IsFlying() {
		t.Fatalf("dash exit with jump held should hand off into flight")
	}
	r.body.integrate(testDt)

	for i := 0; i < 5; i++ {
		r.frame(held)
		if !r.c.IsFlying() {
			t.Fatalf("flight dropped %d steps after the dash exit", i+1)
		}
		if r.body.gravityScale != s.Flight.FlyGravityScale {
			t.Fatalf("gravity = %v, want fly gravity", r.body.gravityScale)
		}
	}
}

func TestCharacterDashExitKickFollowsFlightState(t *testing.T) {
	cases := []struct {
		name      string
		setup     func(t *testing.T, r *rig)
		held      Input
		wantMulti func(s Settings) float64
	}{
		{
			name:      "rising_from_jump_gets_partial_kick",
			setup:     func(t *testing.T, r *rig) { r.jumpUntilRising(t) },
			held:      Input{MoveAxis: 1, Jump: true},
			wantMulti: func(s Settings) float64 { return s.QuickBoost.FlyExitNonFlightMultiplier },
		},
		{
			name: "already_flying_gets_full_kick",
			setup: func(t *testing.T, r *rig) {
				r.sensor.grounded = false
				r.frame(Input{Fly: true})
				if !r.c.IsFlying() {
					t.Fatalf("expected flight before the dash")
				}
			},
			held:      Input{MoveAxis: 1, Fly: true},
			wantMulti: func(s Settings) float64 { return s.QuickBoost.FlyExitFlightMultiplier },
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := newRig(t, nil)
			s := r.c.Settings()
			c.setup(t, r)

			got := r.dashUntilExit(t, c.held)
			want := s.QuickBoost.FlyExitUpVelocity * c.wantMulti(s)
			if !near(got, want) {
				t.Fatalf("exit vy = %v, want %v", got, want)
			}
		})
	}
}
