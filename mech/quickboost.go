package mech

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/mercmech/common"
)

type QuickBoostPhase int

const (
	QuickBoostIdle QuickBoostPhase = iota
	QuickBoostDashing
)

func (p QuickBoostPhase) String() string {
	switch p {
	case QuickBoostDashing:
		return "dashing"
	default:
		return "idle"
	}
}

// QuickBoostRequest is the input snapshot used when a dash is requested.
type QuickBoostRequest struct {
	MoveAxis float64
	Facing   int
	FlyHeld  bool
	Grounded bool

	// Flying is whether flight was engaged before the dash. It picks the
	// upward kick used if the dash ends into flight.
	Flying bool
}

// QuickBoostStepInput is read on every dash step.
type QuickBoostStepInput struct {
	MoveAxis  float64
	Facing    int
	FlyHeld   bool
	Grounded  bool
	WalkSpeed float64
}

// QuickBoostExit describes how a dash ended.
type QuickBoostExit struct {
	WantsFly bool
	Velocity cp.Vector
}

type chainRequest struct {
	dir     int
	buffer  float64
	present bool
}

// QuickBoostMotor is a short burst dash that can be chained and that hands
// its momentum over to the horizontal motor and flight when it ends.
type QuickBoostMotor struct {
	settings *QuickBoostSettings
	gravity  *FlightSettings

	phase     QuickBoostPhase
	timer     float64
	dir       int
	cooldown  float64
	wasFlying bool

	chain         chainRequest
	chainInterval float64

	carryVx    float64
	carryTimer float64
}

func NewQuickBoostMotor(settings *QuickBoostSettings, gravity *FlightSettings) *QuickBoostMotor {
	return &QuickBoostMotor{settings: settings, gravity: gravity, dir: 1}
}

func (m *QuickBoostMotor) Phase() QuickBoostPhase { return m.phase }
func (m *QuickBoostMotor) IsDashing() bool        { return m.phase == QuickBoostDashing }
func (m *QuickBoostMotor) Direction() int         { return m.dir }
func (m *QuickBoostMotor) Cooldown() float64      { return m.cooldown }
func (m *QuickBoostMotor) CarryTimer() float64    { return m.carryTimer }
func (m *QuickBoostMotor) CarryVx() float64       { return m.carryVx }
func (m *QuickBoostMotor) ChainQueued() bool      { return m.chain.present }

// Progress01 is the normalized dash time, zero when idle.
func (m *QuickBoostMotor) Progress01() float64 {
	if !m.IsDashing() {
		return 0
	}
	return common.Clamp01(m.timer / m.settings.Duration)
}

// Strength01 fades from 1 to 0 across a dash.
func (m *QuickBoostMotor) Strength01() float64 {
	if !m.IsDashing() {
		return 0
	}
	return 1 - m.Progress01()
}

// TargetSpeed is the unsigned speed the dash steers toward at progress.
func (m *QuickBoostMotor) TargetSpeed(progress float64, holdingDir bool, walkSpeed float64) float64 {
	s := m.settings
	mult := math.Max(s.Curve.Evaluate(progress), s.MinMultiplier)
	target := s.StartSpeed * mult
	if holdingDir {
		target = math.Max(target, walkSpeed)
	}
	return target
}

// TryStart starts a dash, or queues a chained one while dashing. A refused
// request changes nothing.
func (m *QuickBoostMotor) TryStart(body Body, req QuickBoostRequest, energy *EnergyPool) bool {
	dir := dashDirection(req.MoveAxis, req.Facing)

	if m.IsDashing() {
		if m.chainInterval > 0 {
			return false
		}
		m.chain = chainRequest{dir: dir, buffer: m.settings.ChainBufferTime, present: true}
		m.chainInterval = m.settings.ChainMinInterval
		return true
	}

	if m.cooldown > 0 {
		return false
	}
	if !energy.TrySpend(energy.settings.QuickBoostCost) {
		return false
	}

	m.wasFlying = req.Flying
	m.phase = QuickBoostDashing
	m.timer = 0
	m.dir = dir
	m.cooldown = m.settings.Cooldown
	m.chain = chainRequest{}
	m.chainInterval = m.settings.ChainMinInterval

	body.SetGravityScale(0)
	vel := body.Velocity()
	vel.Y = 0
	if m.settings.WipeHorizontalOnStart {
		vel.X = 0
	}
	body.SetVelocity(vel)
	return true
}

// Step drives the body for one fixed step of a dash and returns the exit
// description on the step the dash ends.
func (m *QuickBoostMotor) Step(body Body, in QuickBoostStepInput, dt float64) *QuickBoostExit {
	if !m.IsDashing() {
		return nil
	}
	s := m.settings

	if m.chain.present && m.chain.buffer > 0 && m.Progress01() >= s.ChainStartPercent {
		m.timer = 0
		m.dir = m.chain.dir
		m.chain = chainRequest{}
		m.chainInterval = s.ChainMinInterval
		vel := body.Velocity()
		body.SetVelocity(cp.Vector{X: vel.X, Y: 0})
		return nil
	}

	m.timer += dt
	progress := m.Progress01()

	heldDir := common.AxisToDir(in.MoveAxis)
	target := m.TargetSpeed(progress, heldDir == m.dir, in.WalkSpeed)

	vx := body.Velocity().X
	rate := s.Decel
	if target > math.Abs(vx) {
		rate = s.Accel
	}
	vx = common.MoveTowards(vx, float64(m.dir)*target, rate*dt)
	body.SetVelocity(cp.Vector{X: vx, Y: 0})
	body.SetGravityScale(0)

	wantsFly := in.FlyHeld && !in.Grounded
	if (wantsFly && progress >= s.FlyReleasePercent) || progress >= 1 {
		return m.end(body, wantsFly, heldDir, in.WalkSpeed)
	}
	return nil
}

func (m *QuickBoostMotor) end(body Body, wantsFly bool, heldDir int, walkSpeed float64) *QuickBoostExit {
	s := m.settings
	vx := body.Velocity().X
	m.carryVx = vx
	m.carryTimer = s.CarryTime

	if wantsFly {
		body.SetGravityScale(m.gravity.FlyGravityScale)
	} else {
		body.SetGravityScale(m.gravity.NormalGravityScale)
	}

	floor := s.NeutralExitSpeed
	if heldDir == m.dir {
		floor = math.Max(floor, walkSpeed)
	}
	exitVx := float64(m.dir) * floor
	if math.Abs(vx) > math.Abs(exitVx) {
		exitVx = vx
	}

	exitVy := 0.0
	if wantsFly {
		mult := s.FlyExitNonFlightMultiplier
		if m.wasFlying {
			mult = s.FlyExitFlightMultiplier
		}
		exitVy = s.FlyExitUpVelocity * mult
	}

	exit := &QuickBoostExit{WantsFly: wantsFly, Velocity: cp.Vector{X: exitVx, Y: exitVy}}
	body.SetVelocity(exit.Velocity)

	m.phase = QuickBoostIdle
	m.timer = 0
	m.wasFlying = false
	m.chain = chainRequest{}
	return exit
}

// TickTimers runs on the fixed step.
func (m *QuickBoostMotor) TickTimers(dt float64) {
	m.chainInterval = math.Max(0, m.chainInterval-dt)
	m.carryTimer = math.Max(0, m.carryTimer-dt)
	if m.chain.present {
		m.chain.buffer = math.Max(0, m.chain.buffer-dt)
		if m.chain.buffer == 0 {
			m.chain = chainRequest{}
		}
	}
}

// TickCooldown runs once per rendered frame.
func (m *QuickBoostMotor) TickCooldown(dt float64) {
	m.cooldown = math.Max(0, m.cooldown-dt)
}

func (m *QuickBoostMotor) Reset() {
	*m = QuickBoostMotor{settings: m.settings, gravity: m.gravity, dir: 1}
}

// dashDirection prefers held input and falls back to facing.
func dashDirection(moveAxis float64, facing int) int {
	if dir := common.AxisToDir(moveAxis); dir != 0 {
		return dir
	}
	if facing < 0 {
		return -1
	}
	return 1
}
