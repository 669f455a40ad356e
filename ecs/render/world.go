package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/mercmech/common"
	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
	"github.com/milk9111/mercmech/mech"
)

const normalLength = 0.75

var (
	solidColor    = colornames.Slategray
	platformColor = colornames.Darkkhaki
	dashColor     = colornames.Orange
	flightColor   = colornames.Deepskyblue
	windupColor   = colornames.Gold
	probeOnColor  = color.RGBA{R: 0, G: 255, B: 0, A: 160}
	probeOffColor = color.RGBA{R: 255, G: 0, B: 0, A: 160}
)

// DrawWorld paints level geometry and mechs. With debug on it adds probe
// boxes, contact normals and Chipmunk outlines.
func DrawWorld(screen *ebiten.Image, w *ecs.World, space *cp.Space, debug bool) {
	if screen == nil || w == nil {
		return
	}
	screen.Fill(colornames.Midnightblue)
	view := ViewFor(w)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.PhysicsBody, t *component.Transform) {
		if ecs.Has(w, e, component.MechComponent.Kind()) {
			return
		}
		fill := solidColor
		if ecs.Has(w, e, component.PlatformComponent.Kind()) {
			fill = platformColor
		}
		x, y, wd, ht := view.Rect(t.X-body.Width/2, t.Y-body.Height/2, t.X+body.Width/2, t.Y+body.Height/2)
		vector.FillRect(screen, x, y, wd, ht, fill, false)
	})

	ecs.ForEach3(w, component.MechComponent.Kind(), component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, m *component.Mech, body *component.PhysicsBody, t *component.Transform) {
		drawMech(screen, view, m, body, t)
		if debug && m.Character != nil {
			drawGround(screen, view, m.Character.Ground())
		}
	})

	if debug && space != nil {
		DrawPhysicsDebug(screen, space, view)
	}
}

func drawMech(screen *ebiten.Image, view View, m *component.Mech, body *component.PhysicsBody, t *component.Transform) {
	fill := color.Color(color.RGBA{R: m.Color[0], G: m.Color[1], B: m.Color[2], A: 255})
	switch {
	case m.Last.QuickBoosting:
		fill = dashColor
	case m.Last.Flying:
		fill = flightColor
	case m.Last.Jump == mech.JumpWindingUp:
		fill = windupColor
	}

	halfW, halfH := body.Width/2, body.Height/2
	x, y, wd, ht := view.Rect(t.X-halfW, t.Y-halfH, t.X+halfW, t.Y+halfH)
	vector.FillRect(screen, x, y, wd, ht, fill, false)
	vector.StrokeRect(screen, x, y, wd, ht, 1, colornames.White, false)

	// Visor on the facing side.
	eyeX, eyeY := view.Point(t.X+float64(t.Facing)*halfW*0.6, t.Y+halfH*0.5)
	vector.FillRect(screen, eyeX-3, eyeY-3, 6, 6, colornames.White, false)

	if m.Last.Flying && m.Last.FlyThrottle > 0 {
		fx, fy := view.Point(t.X, t.Y-halfH)
		flame := float32(m.Last.FlyThrottle * common.PixelsPerMeter * 0.6)
		vector.StrokeLine(screen, fx, fy, fx, fy+flame, 4, colornames.Orangered, true)
	}
}

func drawGround(screen *ebiten.Image, view View, info mech.GroundInfo) {
	probe := info.Probe
	if probe.R > probe.L {
		clr := probeOffColor
		if info.Grounded {
			clr = probeOnColor
		}
		x, y, wd, ht := view.Rect(probe.L, probe.B, probe.R, probe.T)
		vector.StrokeRect(screen, x, y, wd, ht, 1, clr, false)
	}
	cx := (probe.L + probe.R) / 2
	for _, n := range info.Normals {
		x0, y0 := view.Point(cx, probe.T)
		x1, y1 := view.Point(cx+n.X*normalLength, probe.T+n.Y*normalLength)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, colornames.Yellow, true)
	}
}
