package mech

import "github.com/jakecoffman/cp"

const SampleCount = 60

type MovementSample struct {
	Velocity cp.Vector
	Speed    float64
	Accel    float64
}

// MovementSamples is a fixed ring of recent velocity samples.
type MovementSamples struct {
	samples [SampleCount]MovementSample
	next    int
	filled  int
	last    cp.Vector
}

func (m *MovementSamples) Sample(v cp.Vector, dt float64) {
	accel := 0.0
	if dt > 0 {
		accel = v.Sub(m.last).Length() / dt
	}
	m.samples[m.next] = MovementSample{Velocity: v, Speed: v.Length(), Accel: accel}
	m.last = v
	m.next = (m.next + 1) % SampleCount
	if m.filled < SampleCount {
		m.filled++
	}
}

func (m *MovementSamples) Len() int {
	return m.filled
}

// Ordered returns samples oldest first.
func (m *MovementSamples) Ordered() []MovementSample {
	out := make([]MovementSample, 0, m.filled)
	start := (m.next - m.filled + SampleCount) % SampleCount
	for i := 0; i < m.filled; i++ {
		out = append(out, m.samples[(start+i)%SampleCount])
	}
	return out
}

func (m *MovementSamples) Reset() {
	*m = MovementSamples{}
}
