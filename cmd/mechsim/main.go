// Command mechsim runs the mech simulation without a window, driven by a
// pilot script, and logs what the controller did.
package main

import (
	"flag"
	"log"
	"math"
	"os"
	"sort"

	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/mech"
	"github.com/milk9111/mercmech/prefabs"
	"github.com/milk9111/mercmech/sim"
)

type summary struct {
	events    map[string]int
	maxSpeed  float64
	minEnergy float64
	airFrames int
}

func main() {
	script := flag.String("script", "dash_chain", "pilot script in prefabs/scripts")
	ticks := flag.Int("ticks", 600, "frames to simulate")
	every := flag.Int("every", 60, "log a status line every N frames (0 disables)")
	tuningPath := flag.String("tuning", "", "yaml file with a tuning: block applied over mech.yaml")
	mechFile := flag.String("mech", "mech.yaml", "mech prefab file")
	levelFile := flag.String("level", "level.yaml", "level prefab file")
	verbose := flag.Bool("v", false, "log every event")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("mechsim: ")

	sum := &summary{events: make(map[string]int), minEnergy: math.Inf(1)}
	opts := sim.Options{
		MechFile:  *mechFile,
		LevelFile: *levelFile,
		Pilot:     *script,
		Verbose:   *verbose,
		OnEvent: func(evt ecs.Event) {
			sum.events[evt.Type]++
		},
	}

	if *tuningPath != "" {
		base, err := prefabs.LoadMechSpec(*mechFile)
		if err != nil {
			log.Fatal(err)
		}
		data, err := os.ReadFile(*tuningPath)
		if err != nil {
			log.Fatalf("read tuning: %v", err)
		}
		tuning, err := prefabs.DecodeTuning(data, base.Tuning)
		if err != nil {
			log.Fatal(err)
		}
		opts.Tuning = &tuning
	}

	s, err := sim.New(opts)
	if err != nil {
		log.Fatal(err)
	}
	c := s.Character()
	if c == nil {
		log.Fatal("no player mech")
	}

	for i := 1; i <= *ticks; i++ {
		s.Update()
		st := c.Status()
		sum.observe(st)
		if *every > 0 && i%*every == 0 {
			logStatus(i, st)
		}
	}

	log.Printf("done: %d frames, pilot %s", s.Frames(), s.Pilot())
	log.Printf("max speed %.2f, min energy %.1f, airborne %d frames", sum.maxSpeed, sum.minEnergy, sum.airFrames)
	types := make([]string, 0, len(sum.events))
	for t := range sum.events {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		log.Printf("  %-28s %d", t, sum.events[t])
	}
}

func (s *summary) observe(st mech.Status) {
	if speed := st.Velocity.Length(); speed > s.maxSpeed {
		s.maxSpeed = speed
	}
	if st.Energy < s.minEnergy {
		s.minEnergy = st.Energy
	}
	if !st.Grounded {
		s.airFrames++
	}
}

func logStatus(frame int, st mech.Status) {
	state := "walk"
	switch {
	case st.QuickBoosting:
		state = "dash"
	case st.Flying:
		state = "fly"
	case !st.Grounded:
		state = "air"
	case st.Boosting:
		state = "boost"
	}
	log.Printf("%5d %-5s pos=(%6.2f,%6.2f) vel=(%6.2f,%6.2f) energy=%5.1f facing=%+d",
		frame, state, st.Position.X, st.Position.Y, st.Velocity.X, st.Velocity.Y, st.Energy, st.Facing)
}
