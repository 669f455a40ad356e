package ecs

type System interface {
	Update(w *World)
}

// FixedSystem runs zero or more times per update at a constant dt.
type FixedSystem interface {
	FixedUpdate(w *World, dt float64)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(w *World)

func (f SystemFunc) Update(w *World) { f(w) }

// FixedClock turns variable frame time into a whole number of fixed steps.
type FixedClock struct {
	Step     float64
	MaxSteps int

	acc float64
}

// Advance accumulates frameDt and returns how many fixed steps are due.
// Leftover time beyond MaxSteps is dropped so a stall cannot spiral.
func (c *FixedClock) Advance(frameDt float64) int {
	if c == nil || c.Step <= 0 || frameDt <= 0 {
		return 0
	}
	c.acc += frameDt
	n := 0
	for c.acc >= c.Step {
		c.acc -= c.Step
		n++
		if c.MaxSteps > 0 && n >= c.MaxSteps {
			c.acc = 0
			break
		}
	}
	return n
}

func (c *FixedClock) Reset() {
	if c != nil {
		c.acc = 0
	}
}

// Scheduler runs frame systems in registration order, then the fixed
// systems for every due step, then late systems, and finally clears the
// event queue.
type Scheduler struct {
	systems []System
	fixed   []FixedSystem
	late    []System
	clock   FixedClock
	frameDt float64
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

func (s *Scheduler) AddFixed(system FixedSystem) {
	if system == nil {
		return
	}
	s.fixed = append(s.fixed, system)
}

func (s *Scheduler) AddLate(system System) {
	if system == nil {
		return
	}
	s.late = append(s.late, system)
}

// SetTiming sets the frame duration fed to the clock each update and the
// fixed step length. maxSteps <= 0 means unbounded.
func (s *Scheduler) SetTiming(frameDt, fixedDt float64, maxSteps int) {
	s.frameDt = frameDt
	s.clock = FixedClock{Step: fixedDt, MaxSteps: maxSteps}
}

func (s *Scheduler) FrameDt() float64 { return s.frameDt }
func (s *Scheduler) FixedDt() float64 { return s.clock.Step }

func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
	if len(s.fixed) > 0 {
		steps := s.clock.Advance(s.frameDt)
		for i := 0; i < steps; i++ {
			for _, system := range s.fixed {
				system.FixedUpdate(w, s.clock.Step)
			}
		}
	}
	for _, system := range s.late {
		system.Update(w)
	}
	w.events.flush()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
