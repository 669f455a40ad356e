package mech

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSettings = errors.New("mech: invalid settings")

// Collision categories used by the probe filter and by the shapes the host
// creates.
const (
	CategoryGround uint = 1 << iota
	CategoryMech
)

// Settings groups every tunable of the controller. Zero values are not
// meaningful; start from DefaultSettings.
type Settings struct {
	Ground       GroundProbeSettings `yaml:"ground"`
	Energy       EnergySettings      `yaml:"energy"`
	Move         HorizontalSettings  `yaml:"move"`
	Jump         JumpSettings        `yaml:"jump"`
	Flight       FlightSettings      `yaml:"flight"`
	QuickBoost   QuickBoostSettings  `yaml:"quick_boost"`
	MaxFallSpeed float64             `yaml:"max_fall_speed"`
	// Debug enables movement sampling for overlays.
	Debug bool `yaml:"debug"`
}

type GroundProbeSettings struct {
	WidthMultiplier float64 `yaml:"width_multiplier"`
	Height          float64 `yaml:"height"`
	OffsetX         float64 `yaml:"offset_x"`
	OffsetY         float64 `yaml:"offset_y"`
	Mask            uint    `yaml:"mask"`
}

type EnergySettings struct {
	Max                      float64 `yaml:"max"`
	QuickBoostCost           float64 `yaml:"quick_boost_cost"`
	HorizontalBoostStartCost float64 `yaml:"horizontal_boost_start_cost"`
	FlightStartCost          float64 `yaml:"flight_start_cost"`
	GroundRegen              float64 `yaml:"ground_regen"`
	GroundBoostRegen         float64 `yaml:"ground_boost_regen"`
	FallingRegen             float64 `yaml:"falling_regen"`
	FallingBoostRegen        float64 `yaml:"falling_boost_regen"`
	FlyingDrainRate          float64 `yaml:"flying_drain_rate"`
	// ChargeFlightStartFee spends FlightStartCost when flight engages and
	// refuses flight that cannot pay it.
	ChargeFlightStartFee bool `yaml:"charge_flight_start_fee"`
}

type HorizontalSettings struct {
	WalkSpeed         float64 `yaml:"walk_speed"`
	GroundBoostSpeed  float64 `yaml:"ground_boost_speed"`
	FallingSpeed      float64 `yaml:"falling_speed"`
	FallingBoostSpeed float64 `yaml:"falling_boost_speed"`
	FlyingSpeed       float64 `yaml:"flying_speed"`

	GroundAccel     float64 `yaml:"ground_accel"`
	GroundDecel     float64 `yaml:"ground_decel"`
	GroundTurnAccel float64 `yaml:"ground_turn_accel"`
	AirAccel        float64 `yaml:"air_accel"`
	AirDecel        float64 `yaml:"air_decel"`
	AirBrakeDecel   float64 `yaml:"air_brake_decel"`
	AirTurnAccel    float64 `yaml:"air_turn_accel"`

	BoostAccelMultiplier float64 `yaml:"boost_accel_multiplier"`
	ReverseThreshold     float64 `yaml:"reverse_threshold"`
	InputEpsilon         float64 `yaml:"input_epsilon"`
}

type JumpSettings struct {
	Force  float64 `yaml:"force"`
	Windup float64 `yaml:"windup"`
}

type FlightSettings struct {
	Acceleration            float64 `yaml:"acceleration"`
	MaxUpSpeed              float64 `yaml:"max_up_speed"`
	FlyGravityScale         float64 `yaml:"fly_gravity_scale"`
	NormalGravityScale      float64 `yaml:"normal_gravity_scale"`
	EngageVelocityThreshold float64 `yaml:"engage_velocity_threshold"`
	RampUpRate              float64 `yaml:"ramp_up_rate"`
	RampDownRate            float64 `yaml:"ramp_down_rate"`
}

type QuickBoostSettings struct {
	StartSpeed            float64    `yaml:"start_speed"`
	Duration              float64    `yaml:"duration"`
	Curve                 SpeedCurve `yaml:"curve"`
	Cooldown              float64    `yaml:"cooldown"`
	Accel                 float64    `yaml:"accel"`
	Decel                 float64    `yaml:"decel"`
	MinMultiplier         float64    `yaml:"min_multiplier"`
	WipeHorizontalOnStart bool       `yaml:"wipe_horizontal_on_start"`

	FlyExitUpVelocity          float64 `yaml:"fly_exit_up_velocity"`
	FlyExitFlightMultiplier    float64 `yaml:"fly_exit_flight_multiplier"`
	FlyExitNonFlightMultiplier float64 `yaml:"fly_exit_non_flight_multiplier"`
	NeutralExitSpeed           float64 `yaml:"neutral_exit_speed"`
	FlyReleasePercent          float64 `yaml:"fly_release_percent"`
	CarryTime                  float64 `yaml:"carry_time"`

	ChainBufferTime   float64 `yaml:"chain_buffer_time"`
	ChainStartPercent float64 `yaml:"chain_start_percent"`
	ChainMinInterval  float64 `yaml:"chain_min_interval"`
}

func DefaultSettings() Settings {
	return Settings{
		Ground: GroundProbeSettings{
			WidthMultiplier: 0.9,
			Height:          0.08,
			OffsetY:         -0.01,
			Mask:            CategoryGround,
		},
		Energy: EnergySettings{
			Max:                      100,
			QuickBoostCost:           25,
			HorizontalBoostStartCost: 10,
			FlightStartCost:          8,
			GroundRegen:              25,
			GroundBoostRegen:         12,
			FallingRegen:             10,
			FallingBoostRegen:        4,
			FlyingDrainRate:          20,
		},
		Move: HorizontalSettings{
			WalkSpeed:            4,
			GroundBoostSpeed:     8,
			FallingSpeed:         3,
			FallingBoostSpeed:    4.5,
			FlyingSpeed:          6,
			GroundAccel:          30,
			GroundDecel:          15,
			GroundTurnAccel:      30,
			AirAccel:             15,
			AirDecel:             5,
			AirBrakeDecel:        12,
			AirTurnAccel:         25,
			BoostAccelMultiplier: 1.5,
			ReverseThreshold:     0.1,
			InputEpsilon:         0.001,
		},
		Jump: JumpSettings{
			Force:  10,
			Windup: 0.2,
		},
		Flight: FlightSettings{
			Acceleration:            30,
			MaxUpSpeed:              7,
			FlyGravityScale:         2,
			NormalGravityScale:      3,
			EngageVelocityThreshold: 4,
			RampUpRate:              12,
			RampDownRate:            18,
		},
		QuickBoost: QuickBoostSettings{
			StartSpeed:                 16,
			Duration:                   0.35,
			Curve:                      DefaultSpeedCurve(),
			Cooldown:                   0.4,
			Accel:                      200,
			Decel:                      260,
			MinMultiplier:              0.18,
			WipeHorizontalOnStart:      true,
			FlyExitUpVelocity:          10,
			FlyExitFlightMultiplier:    1,
			FlyExitNonFlightMultiplier: 0.6,
			NeutralExitSpeed:           2,
			FlyReleasePercent:          0.85,
			CarryTime:                  0.18,
			ChainBufferTime:            0.2,
			ChainStartPercent:          0.8,
			ChainMinInterval:           0.05,
		},
		MaxFallSpeed: 12,
	}
}

// Validate reports the first tunable that would break the controller.
func (s Settings) Validate() error {
	checks := []struct {
		name string
		ok   bool
	}{
		{"ground.width_multiplier", s.Ground.WidthMultiplier > 0},
		{"ground.height", s.Ground.Height > 0},
		{"energy.max", s.Energy.Max > 0},
		{"energy.ground_boost_regen", s.Energy.GroundBoostRegen <= s.Energy.GroundRegen},
		{"energy.falling_boost_regen", s.Energy.FallingBoostRegen <= s.Energy.FallingRegen},
		{"jump.windup", s.Jump.Windup >= 0},
		{"flight.ramp_up_rate", s.Flight.RampUpRate >= 0},
		{"flight.ramp_down_rate", s.Flight.RampDownRate >= 0},
		{"quick_boost.duration", s.QuickBoost.Duration > 0},
		{"quick_boost.min_multiplier", s.QuickBoost.MinMultiplier >= 0 && s.QuickBoost.MinMultiplier <= 1},
		{"quick_boost.fly_release_percent", inUnit(s.QuickBoost.FlyReleasePercent)},
		{"quick_boost.chain_start_percent", inUnit(s.QuickBoost.ChainStartPercent)},
		{"move.reverse_threshold", s.Move.ReverseThreshold >= 0},
		{"max_fall_speed", s.MaxFallSpeed > 0},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s out of range", ErrInvalidSettings, c.name)
		}
	}

	nonNegative := map[string]float64{
		"energy.quick_boost_cost":            s.Energy.QuickBoostCost,
		"energy.horizontal_boost_start_cost": s.Energy.HorizontalBoostStartCost,
		"energy.flight_start_cost":           s.Energy.FlightStartCost,
		"energy.ground_regen":                s.Energy.GroundRegen,
		"energy.ground_boost_regen":          s.Energy.GroundBoostRegen,
		"energy.falling_regen":               s.Energy.FallingRegen,
		"energy.falling_boost_regen":         s.Energy.FallingBoostRegen,
		"energy.flying_drain_rate":           s.Energy.FlyingDrainRate,
		"move.ground_accel":                  s.Move.GroundAccel,
		"move.ground_decel":                  s.Move.GroundDecel,
		"move.ground_turn_accel":             s.Move.GroundTurnAccel,
		"move.air_accel":                     s.Move.AirAccel,
		"move.air_decel":                     s.Move.AirDecel,
		"move.air_brake_decel":               s.Move.AirBrakeDecel,
		"move.air_turn_accel":                s.Move.AirTurnAccel,
		"move.boost_accel_multiplier":        s.Move.BoostAccelMultiplier,
		"quick_boost.accel":                  s.QuickBoost.Accel,
		"quick_boost.decel":                  s.QuickBoost.Decel,
		"quick_boost.cooldown":               s.QuickBoost.Cooldown,
		"quick_boost.carry_time":             s.QuickBoost.CarryTime,
		"quick_boost.chain_buffer_time":      s.QuickBoost.ChainBufferTime,
		"quick_boost.chain_min_interval":     s.QuickBoost.ChainMinInterval,
	}
	for name, v := range nonNegative {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidSettings, name)
		}
	}

	if err := s.QuickBoost.Curve.Validate(); err != nil {
		return fmt.Errorf("%w: quick_boost.curve: %v", ErrInvalidSettings, err)
	}
	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
