package render

import (
	"github.com/milk9111/mercmech/common"
	"github.com/milk9111/mercmech/ecs"
	"github.com/milk9111/mercmech/ecs/component"
)

// View converts world units to screen pixels for one frame.
type View struct {
	CamX, CamY float64
}

// ViewFor centres the view on the camera entity, or on the origin when the
// world has none.
func ViewFor(w *ecs.World) View {
	cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return View{}
	}
	t, ok := ecs.Get(w, cam, component.TransformComponent.Kind())
	if !ok {
		return View{}
	}
	return View{CamX: t.X, CamY: t.Y}
}

func (v View) Point(x, y float64) (float32, float32) {
	sx, sy := common.WorldToScreen(x, y, v.CamX, v.CamY)
	return float32(sx), float32(sy)
}

// Rect maps a world box given by its corners to a screen rect.
func (v View) Rect(l, b, r, t float64) (x, y, w, h float32) {
	x, y = v.Point(l, t)
	w = float32((r - l) * common.PixelsPerMeter)
	h = float32((t - b) * common.PixelsPerMeter)
	return x, y, w, h
}
