package mech

import "github.com/jakecoffman/cp"

// GroundSensor decides whether a body stands on ground this tick.
type GroundSensor interface {
	Evaluate(body Body) bool
}

// GroundInfo is the last probe result. Normals are collected for debug
// drawing and never influence grounding.
type GroundInfo struct {
	Grounded bool
	Probe    cp.BB
	Normals  []cp.Vector
}

// GroundProbe overlaps a thin box under the collider against shapes whose
// categories match the mask.
type GroundProbe struct {
	space    *cp.Space
	settings *GroundProbeSettings
	info     GroundInfo
}

func NewGroundProbe(space *cp.Space, settings *GroundProbeSettings) *GroundProbe {
	return &GroundProbe{space: space, settings: settings}
}

func (g *GroundProbe) Info() GroundInfo {
	return g.info
}

// ProbeBox returns the query box for the given collider bounds.
func (g *GroundProbe) ProbeBox(bounds cp.BB) cp.BB {
	s := g.settings
	width := (bounds.R - bounds.L) * s.WidthMultiplier
	cx := (bounds.L+bounds.R)/2 + s.OffsetX
	cy := bounds.B + s.OffsetY
	return cp.BB{
		L: cx - width/2,
		R: cx + width/2,
		B: cy - s.Height/2,
		T: cy + s.Height/2,
	}
}

func (g *GroundProbe) Evaluate(body Body) bool {
	if g == nil {
		return false
	}
	g.info = GroundInfo{Normals: g.info.Normals[:0]}
	if g.space == nil || body == nil {
		return false
	}
	bounds, ok := body.Bounds()
	if !ok {
		return false
	}

	var self *cp.Body
	if cb, ok := body.(*CPBody); ok {
		self = cb.body
	}

	probe := g.ProbeBox(bounds)
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: g.settings.Mask}
	grounded := false
	g.space.BBQuery(probe, filter, func(shape *cp.Shape, _ interface{}) {
		if grounded || shape == nil || shape.Sensor() {
			return
		}
		if self != nil && shape.Body() == self {
			return
		}
		grounded = true
	}, nil)

	g.info.Grounded = grounded
	g.info.Probe = probe
	if self != nil {
		self.EachArbiter(func(arb *cp.Arbiter) {
			n := arb.Normal()
			if a, _ := arb.Shapes(); a != nil && a.Body() == self {
				n = n.Neg()
			}
			g.info.Normals = append(g.info.Normals, n)
		})
	}
	return grounded
}
