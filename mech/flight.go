package mech

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/mercmech/common"
)

// FlightMotor sustains upward thrust while fly input is held and energy
// allows it.
type FlightMotor struct {
	settings *FlightSettings
	flying   bool
	throttle float64
}

func NewFlightMotor(settings *FlightSettings) *FlightMotor {
	return &FlightMotor{settings: settings}
}

func (m *FlightMotor) IsFlying() bool { return m.flying }

// Throttle01 reports thrust ramp, zero when not flying.
func (m *FlightMotor) Throttle01() float64 {
	if !m.flying {
		return 0
	}
	return m.throttle
}

// Process runs one step and reports whether the jump rise gate should be
// cleared.
func (m *FlightMotor) Process(body Body, flyHeld, riseGate, hasEnergy bool, dt float64) bool {
	s := m.settings
	blocked := riseGate && body.Velocity().Y > s.EngageVelocityThreshold
	shouldFly := !blocked && flyHeld && hasEnergy

	if shouldFly != m.flying {
		m.setFlying(body, shouldFly)
	}

	if !m.flying {
		m.throttle = common.MoveTowards(m.throttle, 0, s.RampDownRate*dt)
		return false
	}

	m.throttle = common.MoveTowards(m.throttle, 1, s.RampUpRate*dt)
	if body.Velocity().Y < s.MaxUpSpeed {
		body.ApplyForce(cp.Vector{Y: s.Acceleration * m.throttle})
	}
	return true
}

// HandOff syncs the flying flag after another motor owned the body, e.g. at
// the end of a dash.
func (m *FlightMotor) HandOff(body Body, flying bool) {
	m.setFlying(body, flying)
}

// ForceStop ends flight and restores normal gravity.
func (m *FlightMotor) ForceStop(body Body) {
	m.setFlying(body, false)
}

func (m *FlightMotor) setFlying(body Body, flying bool) {
	m.flying = flying
	if flying {
		body.SetGravityScale(m.settings.FlyGravityScale)
		return
	}
	body.SetGravityScale(m.settings.NormalGravityScale)
}

func (m *FlightMotor) Reset(body Body) {
	m.throttle = 0
	m.setFlying(body, false)
}
