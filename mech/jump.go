package mech

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/mercmech/common"
)

type JumpPhase int

const (
	JumpIdle JumpPhase = iota
	JumpWindingUp
)

func (p JumpPhase) String() string {
	switch p {
	case JumpWindingUp:
		return "winding_up"
	default:
		return "idle"
	}
}

// jumpState carries the elapsed wind-up time only while winding up.
type jumpState struct {
	phase   JumpPhase
	elapsed float64
}

func idleJump() jumpState   { return jumpState{phase: JumpIdle} }
func windupJump() jumpState { return jumpState{phase: JumpWindingUp} }

func (s jumpState) advance(dt float64) jumpState {
	if s.phase != JumpWindingUp {
		return s
	}
	s.elapsed += dt
	return s
}

// JumpMotor performs a grounded jump after a short wind-up. A performed
// jump raises the rise gate, which keeps flight from engaging while the
// jump is still climbing fast.
type JumpMotor struct {
	settings *JumpSettings
	state    jumpState
	keyHeld  bool
	riseGate bool
}

func NewJumpMotor(settings *JumpSettings) *JumpMotor {
	return &JumpMotor{settings: settings}
}

func (m *JumpMotor) Phase() JumpPhase  { return m.state.phase }
func (m *JumpMotor) IsWindingUp() bool { return m.state.phase == JumpWindingUp }
func (m *JumpMotor) RiseGate() bool    { return m.riseGate }
func (m *JumpMotor) ClearRiseGate()    { m.riseGate = false }
func (m *JumpMotor) KeyHeld() bool     { return m.keyHeld }

// WindupProgress01 is zero unless winding up.
func (m *JumpMotor) WindupProgress01() float64 {
	if !m.IsWindingUp() || m.settings.Windup <= 0 {
		return 0
	}
	return common.Clamp01(m.state.elapsed / m.settings.Windup)
}

func (m *JumpMotor) OnJumpPressed(grounded bool) {
	m.keyHeld = true
	if grounded {
		m.state = windupJump()
	}
}

// OnJumpReleased cancels a pending wind-up. It is safe to call repeatedly.
func (m *JumpMotor) OnJumpReleased() {
	m.keyHeld = false
	m.riseGate = false
	if m.IsWindingUp() {
		m.state = idleJump()
	}
}

// Tick advances the wind-up and fires the jump once it completes with the
// key still held.
func (m *JumpMotor) Tick(body Body, dt float64) {
	if !m.IsWindingUp() {
		return
	}
	m.state = m.state.advance(dt)
	if m.state.elapsed < m.settings.Windup {
		return
	}
	m.state = idleJump()
	if !m.keyHeld {
		return
	}
	vel := body.Velocity()
	body.SetVelocity(cp.Vector{X: vel.X, Y: m.settings.Force})
	m.riseGate = true
}

// Reset idles the motor and drops the gate.
func (m *JumpMotor) Reset() {
	m.state = idleJump()
	m.keyHeld = false
	m.riseGate = false
}
