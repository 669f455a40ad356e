package system

import (
	"log"

	"github.com/milk9111/mercmech/ecs"
)

const (
	EventMechLanded        = "mech.landed"
	EventQuickBoostStarted = "mech.quick_boost.started"
	EventQuickBoostChained = "mech.quick_boost.chained"
	EventQuickBoostEnded   = "mech.quick_boost.ended"
	EventFlightStarted     = "mech.flight.started"
	EventFlightStopped     = "mech.flight.stopped"
	EventEnergyDepleted    = "mech.energy.depleted"
	EventMechRespawned     = "mech.respawned"
	EventPilotError        = "pilot.error"
)

// MechEvent is the payload of every mech.* event. Value carries the one
// number that matters for the event type, e.g. impact speed for landings.
type MechEvent struct {
	Entity ecs.Entity
	Name   string
	Value  float64
	Detail string
}

// EventLogSystem prints the frame's events when verbose logging is on and
// hands them to an optional sink.
type EventLogSystem struct {
	Verbose bool
	Sink    func(ecs.Event)
}

func NewEventLogSystem(verbose bool) *EventLogSystem {
	return &EventLogSystem{Verbose: verbose}
}

func (s *EventLogSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Peek() {
		if s.Verbose {
			if me, ok := evt.Data.(MechEvent); ok {
				log.Printf("events: frame=%d %s entity=%v name=%q value=%.2f %s", evt.Frame, evt.Type, me.Entity, me.Name, me.Value, me.Detail)
			} else {
				log.Printf("events: frame=%d %s %v", evt.Frame, evt.Type, evt.Data)
			}
		}
		if s.Sink != nil {
			s.Sink(evt)
		}
	}
}
