package mech

import (
	"math/rand"
	"testing"
)

func TestEnergyTickTable(t *testing.T) {
	s := DefaultSettings().Energy
	cases := []struct {
		name                               string
		grounded, boosting, flying, dashing bool
		start                              float64
		want                               float64
	}{
		{"ground_regen", true, false, false, false, 50, 50 + s.GroundRegen},
		{"ground_boost_regen", true, true, false, false, 50, 50 + s.GroundBoostRegen},
		{"falling_regen", false, false, false, false, 50, 50 + s.FallingRegen},
		{"falling_boost_regen", false, true, false, false, 50, 50 + s.FallingBoostRegen},
		{"flying_drains", false, false, true, false, 50, 50 - s.FlyingDrainRate},
		{"dashing_frozen", true, false, false, true, 50, 50},
		{"dashing_frozen_while_flying", false, false, true, true, 50, 50},
		{"regen_clamps_to_max", true, false, false, false, 95, s.Max},
		{"drain_clamps_to_zero", false, false, true, false, 5, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			settings := s
			pool := NewEnergyPool(&settings)
			pool.current = c.start
			pool.Tick(c.grounded, c.boosting, c.flying, c.dashing, 1)
			if !near(pool.Current(), c.want) {
				t.Fatalf("energy = %v, want %v", pool.Current(), c.want)
			}
		})
	}
}

func TestEnergyBoostRegenIsSlower(t *testing.T) {
	s := DefaultSettings().Energy
	if s.GroundBoostRegen >= s.GroundRegen || s.FallingBoostRegen >= s.FallingRegen {
		t.Fatalf("boosting regen should be slower: %+v", s)
	}
	if s.GroundBoostRegen < 0 || s.FallingBoostRegen < 0 {
		t.Fatalf("boosting regen should never drain: %+v", s)
	}
}

func TestEnergyTrySpend(t *testing.T) {
	cases := []struct {
		name    string
		start   float64
		amount  float64
		wantOK  bool
		wantNow float64
	}{
		{"enough", 30, 25, true, 5},
		{"exact", 25, 25, true, 0},
		{"short", 10, 25, false, 10},
		{"zero_amount", 0, 0, true, 0},
		{"negative_amount_is_free", 10, -5, true, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := DefaultSettings().Energy
			pool := NewEnergyPool(&s)
			pool.current = c.start
			if ok := pool.TrySpend(c.amount); ok != c.wantOK {
				t.Fatalf("TrySpend(%v) = %v, want %v", c.amount, ok, c.wantOK)
			}
			if !near(pool.Current(), c.wantNow) {
				t.Fatalf("energy = %v, want %v", pool.Current(), c.wantNow)
			}
		})
	}
}

func TestEnergyFlightThresholds(t *testing.T) {
	s := DefaultSettings().Energy
	pool := NewEnergyPool(&s)

	pool.current = s.FlightStartCost
	if !pool.CanStartFlight() {
		t.Fatalf("expected flight start at exactly the start cost")
	}
	if pool.Current() != s.FlightStartCost {
		t.Fatalf("CanStartFlight must not spend")
	}
	pool.current = s.FlightStartCost - 0.01
	if pool.CanStartFlight() {
		t.Fatalf("expected flight start refused below the start cost")
	}

	pool.current = energyEpsilon / 2
	if pool.HasEnergy() {
		t.Fatalf("expected jitter below epsilon to read as empty")
	}
	pool.current = 0.01
	if !pool.HasEnergy() {
		t.Fatalf("expected energy present")
	}
}

func TestEnergyStaysInBounds(t *testing.T) {
	s := DefaultSettings().Energy
	pool := NewEnergyPool(&s)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		switch rng.Intn(3) {
		case 0:
			pool.Tick(rng.Intn(2) == 0, rng.Intn(2) == 0, rng.Intn(2) == 0, rng.Intn(4) == 0, rng.Float64()*0.5)
		case 1:
			pool.TrySpend(rng.Float64() * 40)
		default:
			pool.Add(rng.Float64()*80 - 40)
		}
		if pool.Current() < 0 || pool.Current() > pool.Max() {
			t.Fatalf("step %d: energy %v outside [0, %v]", i, pool.Current(), pool.Max())
		}
	}
}
