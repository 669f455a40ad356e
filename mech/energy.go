package mech

import "github.com/milk9111/mercmech/common"

const energyEpsilon = 0.0001

// EnergyPool is the shared resource for dashing, boosting and flight.
// Current always stays within [0, Max].
type EnergyPool struct {
	settings *EnergySettings
	current  float64
}

// NewEnergyPool returns a full pool.
func NewEnergyPool(settings *EnergySettings) *EnergyPool {
	return &EnergyPool{settings: settings, current: settings.Max}
}

func (e *EnergyPool) Current() float64 { return e.current }
func (e *EnergyPool) Max() float64     { return e.settings.Max }

func (e *EnergyPool) Fraction01() float64 {
	if e.settings.Max <= 0 {
		return 0
	}
	return common.Clamp01(e.current / e.settings.Max)
}

// Tick applies drain or regeneration. Dashing freezes the pool.
func (e *EnergyPool) Tick(grounded, boosting, flying, dashing bool, dt float64) {
	if dt <= 0 || dashing {
		return
	}
	if flying {
		e.add(-e.settings.FlyingDrainRate * dt)
		return
	}
	e.add(e.regenRate(grounded, boosting) * dt)
}

func (e *EnergyPool) regenRate(grounded, boosting bool) float64 {
	s := e.settings
	switch {
	case grounded && boosting:
		return s.GroundBoostRegen
	case grounded:
		return s.GroundRegen
	case boosting:
		return s.FallingBoostRegen
	default:
		return s.FallingRegen
	}
}

// TrySpend deducts amount if the pool holds at least that much.
func (e *EnergyPool) TrySpend(amount float64) bool {
	if amount <= 0 {
		return true
	}
	if e.current < amount {
		return false
	}
	e.add(-amount)
	return true
}

// CanStartFlight is a threshold check; nothing is spent.
func (e *EnergyPool) CanStartFlight() bool {
	return e.current >= e.settings.FlightStartCost
}

func (e *EnergyPool) HasEnergy() bool {
	return e.current > energyEpsilon
}

func (e *EnergyPool) Add(amount float64) {
	e.add(amount)
}

// Refill sets the pool to Max.
func (e *EnergyPool) Refill() {
	e.current = e.settings.Max
}

func (e *EnergyPool) add(amount float64) {
	e.current = common.Clamp(e.current+amount, 0, e.settings.Max)
}
