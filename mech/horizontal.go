package mech

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/mercmech/common"
)

// HorizontalInput is everything the horizontal motor reads for one step.
type HorizontalInput struct {
	Grounded bool
	MoveAxis float64
	Boosting bool
	Flying   bool
	// CarryTimer and CarryVx protect momentum handed over by a finished dash.
	CarryTimer float64
	CarryVx    float64
}

type HorizontalMotor struct {
	settings *HorizontalSettings
}

func NewHorizontalMotor(settings *HorizontalSettings) *HorizontalMotor {
	return &HorizontalMotor{settings: settings}
}

// MaxSpeed returns the speed cap for the current locomotion mode.
func (m *HorizontalMotor) MaxSpeed(grounded, boosting, flying bool) float64 {
	s := m.settings
	switch {
	case flying:
		return s.FlyingSpeed
	case grounded && boosting:
		return s.GroundBoostSpeed
	case grounded:
		return s.WalkSpeed
	case boosting:
		return s.FallingBoostSpeed
	default:
		return s.FallingSpeed
	}
}

func (m *HorizontalMotor) Process(body Body, in HorizontalInput, dt float64) {
	s := m.settings
	vel := body.Velocity()
	vx := vel.X

	maxSpeed := m.MaxSpeed(in.Grounded, in.Boosting, in.Flying)
	target := in.MoveAxis * maxSpeed

	heldDir := common.AxisToDir(in.MoveAxis)
	carryDir := common.AxisToDir(in.CarryVx)
	carrying := in.CarryTimer > 0 && carryDir != 0 && (heldDir == 0 || heldDir == carryDir)
	if carrying {
		target = carryFloor(target, in.CarryVx, carryDir)
	}

	hasInput := math.Abs(in.MoveAxis) > s.InputEpsilon
	reversing := hasInput &&
		common.Sign(target) != common.Sign(vx) &&
		math.Abs(vx) > s.ReverseThreshold

	boostMul := 1.0
	if in.Boosting {
		boostMul = s.BoostAccelMultiplier
	}

	if in.Grounded {
		rate := s.GroundAccel
		switch {
		case !hasInput:
			rate = s.GroundDecel
		case reversing:
			rate = s.GroundTurnAccel
		}
		vx = common.MoveTowards(vx, target, rate*boostMul*dt)
		body.SetVelocity(cp.Vector{X: vx, Y: vel.Y})
		return
	}

	if hasInput {
		thrust := s.AirAccel
		if reversing {
			thrust = s.AirTurnAccel
		}
		body.ApplyForce(cp.Vector{X: in.MoveAxis * thrust * boostMul})
		vel = body.Velocity()
		body.SetVelocity(cp.Vector{X: common.Clamp(vel.X, -maxSpeed, maxSpeed), Y: vel.Y})
		return
	}

	decel := s.AirBrakeDecel
	if in.Boosting || in.Flying {
		decel = s.AirDecel
	}
	vx = common.MoveTowards(vx, 0, decel*dt)
	if carrying {
		vx = carryFloor(vx, in.CarryVx, carryDir)
	}
	body.SetVelocity(cp.Vector{X: vx, Y: vel.Y})
}

// carryFloor keeps v at least as fast as carry in the carry direction.
func carryFloor(v, carry float64, dir int) float64 {
	if dir > 0 {
		return math.Max(v, carry)
	}
	return math.Min(v, carry)
}
