package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/mercmech/mech"
)

const (
	hudX         = 10
	hudY         = 10
	energyBarW   = 240
	energyBarH   = 14
	sparklineH   = 60
	sparklineMax = 20.0
)

// HUD is what the overlay needs besides the mech status.
type HUD struct {
	Name    string
	Source  string
	Pilot   string
	Error   string
	Samples []mech.MovementSample
	FPS     float64
	Debug   bool
}

func DrawHUD(screen *ebiten.Image, st mech.Status, hud HUD) {
	if screen == nil {
		return
	}

	frac := 0.0
	if st.EnergyMax > 0 {
		frac = st.Energy / st.EnergyMax
	}
	barColor := color.Color(colornames.Limegreen)
	if frac < 0.25 {
		barColor = colornames.Orangered
	}
	vector.FillRect(screen, hudX, hudY, energyBarW, energyBarH, colornames.Dimgray, false)
	vector.FillRect(screen, hudX, hudY, float32(energyBarW*frac), energyBarH, barColor, false)
	vector.StrokeRect(screen, hudX, hudY, energyBarW, energyBarH, 1, colornames.White, false)

	var b strings.Builder
	fmt.Fprintf(&b, "%s  energy %.0f/%.0f  input %s", hud.Name, st.Energy, st.EnergyMax, hud.Source)
	if hud.Pilot != "" {
		fmt.Fprintf(&b, " (%s)", hud.Pilot)
	}
	fmt.Fprintf(&b, "\npos %.2f, %.2f  vel %.2f, %.2f", st.Position.X, st.Position.Y, st.Velocity.X, st.Velocity.Y)
	fmt.Fprintf(&b, "\ngrounded %v  jump %s  flying %v (%.2f)", st.Grounded, st.Jump, st.Flying, st.FlyThrottle)
	fmt.Fprintf(&b, "\nboost %v  quick boost %v (%.2f)  facing %d", st.Boosting, st.QuickBoosting, st.QuickBoostProgress, st.Facing)
	if hud.Debug {
		fmt.Fprintf(&b, "\nfps %.1f", hud.FPS)
	}
	if hud.Error != "" {
		fmt.Fprintf(&b, "\npilot error: %s", hud.Error)
	}
	ebitenutil.DebugPrintAt(screen, b.String(), hudX, hudY+energyBarH+6)

	if hud.Debug && len(hud.Samples) > 1 {
		drawSparkline(screen, hud.Samples, hudX, hudY+energyBarH+100)
	}
}

// drawSparkline plots speed over the sample window, oldest on the left.
func drawSparkline(screen *ebiten.Image, samples []mech.MovementSample, x, y float32) {
	w := float32(mech.SampleCount * 4)
	vector.StrokeRect(screen, x, y, w, sparklineH, 1, colornames.Gray, false)
	step := w / float32(mech.SampleCount-1)
	prevX, prevY := float32(0), float32(0)
	for i, s := range samples {
		v := s.Speed / sparklineMax
		if v > 1 {
			v = 1
		}
		px := x + float32(i)*step
		py := y + sparklineH - float32(v)*sparklineH
		if i > 0 {
			vector.StrokeLine(screen, prevX, prevY, px, py, 1, colornames.Aqua, true)
		}
		prevX, prevY = px, py
	}
	ebitenutil.DebugPrintAt(screen, "speed", int(x)+2, int(y)+2)
}
