package mech

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/mercmech/common"
)

// Input is one frame of player intent. Jump, Fly and Boost are held levels;
// QuickBoost is true only on the frame the dash was requested.
type Input struct {
	MoveAxis   float64
	Jump       bool
	Fly        bool
	Boost      bool
	QuickBoost bool
}

// Status is a read-only snapshot for HUDs, scripts and logs.
type Status struct {
	Position           cp.Vector
	Velocity           cp.Vector
	Grounded           bool
	Flying             bool
	Boosting           bool
	QuickBoosting      bool
	Jump               JumpPhase
	FlyThrottle        float64
	QuickBoostProgress float64
	Energy             float64
	EnergyMax          float64
	Facing             int
}

// Character runs the motors against a single body in a fixed order. Only
// one of the dash or the locomotion motors touches the body in a step.
type Character struct {
	body     Body
	sensor   GroundSensor
	probe    *GroundProbe
	settings *Settings

	energy     *EnergyPool
	horizontal *HorizontalMotor
	jump       *JumpMotor
	flight     *FlightMotor
	quickBoost *QuickBoostMotor
	samples    MovementSamples

	input         Input
	facing        int
	grounded      bool
	boosting      bool
	dashRequested bool
}

// NewCharacter builds a controller whose ground probe queries space. A nil
// space leaves the character ungrounded until SetGroundSensor is called.
func NewCharacter(body Body, space *cp.Space, settings Settings) (*Character, error) {
	if body == nil {
		return nil, fmt.Errorf("mech: new character: nil body")
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	s := new(Settings)
	*s = settings
	c := &Character{
		body:       body,
		settings:   s,
		energy:     NewEnergyPool(&s.Energy),
		horizontal: NewHorizontalMotor(&s.Move),
		jump:       NewJumpMotor(&s.Jump),
		flight:     NewFlightMotor(&s.Flight),
		quickBoost: NewQuickBoostMotor(&s.QuickBoost, &s.Flight),
		facing:     1,
	}
	c.probe = NewGroundProbe(space, &s.Ground)
	c.sensor = c.probe
	body.SetGravityScale(s.Flight.NormalGravityScale)
	return c, nil
}

// SetGroundSensor replaces the probe, mostly for headless tests.
func (c *Character) SetGroundSensor(sensor GroundSensor) {
	c.sensor = sensor
}

// Retune swaps every tunable in place.
func (c *Character) Retune(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	*c.settings = settings
	c.energy.Add(0)
	if !c.quickBoost.IsDashing() {
		c.flight.HandOff(c.body, c.flight.IsFlying())
	}
	return nil
}

func (c *Character) Settings() Settings { return *c.settings }

// HandleInput is the per-frame tick. It records intent and ticks cosmetic
// timers but never touches the body.
func (c *Character) HandleInput(in Input, frameDt float64) {
	prev := c.input
	c.input = in

	if dir := common.AxisToDir(in.MoveAxis); dir != 0 {
		c.facing = dir
	}

	switch {
	case in.Jump && !prev.Jump:
		c.jump.OnJumpPressed(c.grounded)
	case !in.Jump && prev.Jump:
		c.jump.OnJumpReleased()
	}

	switch {
	case in.Boost && !prev.Boost:
		c.boosting = c.energy.TrySpend(c.settings.Energy.HorizontalBoostStartCost)
	case !in.Boost:
		c.boosting = false
	}

	if in.QuickBoost {
		c.dashRequested = true
	}
	c.quickBoost.TickCooldown(frameDt)
}

func (c *Character) flyHeld() bool {
	return c.input.Jump || c.input.Fly
}

// FixedStep advances the controller by one simulation step.
func (c *Character) FixedStep(dt float64) {
	c.jump.Tick(c.body, dt)
	c.quickBoost.TickTimers(dt)

	c.grounded = c.sensor != nil && c.sensor.Evaluate(c.body)

	if c.dashRequested {
		c.dashRequested = false
		c.quickBoost.TryStart(c.body, QuickBoostRequest{
			MoveAxis: c.input.MoveAxis,
			Facing:   c.facing,
			FlyHeld:  c.flyHeld(),
			Grounded: c.grounded,
			Flying:   c.flight.IsFlying(),
		}, c.energy)
	}

	c.energy.Tick(c.grounded, c.boosting, c.flight.IsFlying(), c.quickBoost.IsDashing(), dt)

	if c.quickBoost.IsDashing() {
		exit := c.quickBoost.Step(c.body, QuickBoostStepInput{
			MoveAxis:  c.input.MoveAxis,
			Facing:    c.facing,
			FlyHeld:   c.flyHeld(),
			Grounded:  c.grounded,
			WalkSpeed: c.settings.Move.WalkSpeed,
		}, dt)
		if exit != nil {
			c.flight.HandOff(c.body, exit.WantsFly)
			if exit.WantsFly {
				c.jump.ClearRiseGate()
			}
		}
		c.finishStep(dt)
		return
	}

	c.horizontal.Process(c.body, HorizontalInput{
		Grounded:   c.grounded,
		MoveAxis:   c.input.MoveAxis,
		Boosting:   c.boosting,
		Flying:     c.flight.IsFlying(),
		CarryTimer: c.quickBoost.CarryTimer(),
		CarryVx:    c.quickBoost.CarryVx(),
	}, dt)

	if !c.jump.IsWindingUp() {
		c.stepFlight(dt)
	}
	c.finishStep(dt)
}

func (c *Character) stepFlight(dt float64) {
	fee := c.settings.Energy.ChargeFlightStartFee
	wasFlying := c.flight.IsFlying()
	hasEnergy := c.energy.CanStartFlight()
	if wasFlying || fee {
		hasEnergy = c.energy.HasEnergy()
	}
	if c.flight.Process(c.body, c.flyHeld(), c.jump.RiseGate(), hasEnergy, dt) {
		c.jump.ClearRiseGate()
	}
	if fee && !wasFlying && c.flight.IsFlying() {
		if !c.energy.TrySpend(c.settings.Energy.FlightStartCost) {
			c.flight.ForceStop(c.body)
		}
	}
}

func (c *Character) finishStep(dt float64) {
	vel := c.body.Velocity()
	if vel.Y < -c.settings.MaxFallSpeed {
		vel.Y = -c.settings.MaxFallSpeed
		c.body.SetVelocity(vel)
	}
	if c.settings.Debug {
		c.samples.Sample(c.body.Velocity(), dt)
	}
}

// Reset idles every motor and refills energy. The caller repositions the
// body.
func (c *Character) Reset() {
	c.jump.Reset()
	c.quickBoost.Reset()
	c.flight.Reset(c.body)
	c.energy.Refill()
	c.samples.Reset()
	c.input = Input{}
	c.boosting = false
	c.grounded = false
	c.dashRequested = false
	c.body.SetVelocity(cp.Vector{})
}

func (c *Character) Body() Body             { return c.body }
func (c *Character) IsGrounded() bool       { return c.grounded }
func (c *Character) IsFlying() bool         { return c.flight.IsFlying() }
func (c *Character) IsBoosting() bool       { return c.boosting }
func (c *Character) IsQuickBoosting() bool  { return c.quickBoost.IsDashing() }
func (c *Character) FlyThrottle01() float64 { return c.flight.Throttle01() }
func (c *Character) Energy() float64        { return c.energy.Current() }
func (c *Character) EnergyMax() float64     { return c.energy.Max() }
func (c *Character) Facing() int            { return c.facing }
func (c *Character) JumpPhase() JumpPhase   { return c.jump.Phase() }

func (c *Character) QuickBoostProgress01() float64 { return c.quickBoost.Progress01() }
func (c *Character) QuickBoostStrength01() float64 { return c.quickBoost.Strength01() }

// Samples returns recent movement samples, oldest first. It stays empty
// unless Settings.Debug is set.
func (c *Character) Samples() []MovementSample {
	return c.samples.Ordered()
}

// Ground returns the last probe result, if the built-in probe is in use.
func (c *Character) Ground() GroundInfo {
	if c.probe == nil || c.sensor != GroundSensor(c.probe) {
		return GroundInfo{Grounded: c.grounded}
	}
	return c.probe.Info()
}

func (c *Character) Status() Status {
	return Status{
		Position:           c.body.Position(),
		Velocity:           c.body.Velocity(),
		Grounded:           c.grounded,
		Flying:             c.flight.IsFlying(),
		Boosting:           c.boosting,
		QuickBoosting:      c.quickBoost.IsDashing(),
		Jump:               c.jump.Phase(),
		FlyThrottle:        c.flight.Throttle01(),
		QuickBoostProgress: c.quickBoost.Progress01(),
		Energy:             c.energy.Current(),
		EnergyMax:          c.energy.Max(),
		Facing:             c.facing,
	}
}

// Speed is the horizontal speed magnitude.
func (c *Character) Speed() float64 {
	return math.Abs(c.body.Velocity().X)
}
