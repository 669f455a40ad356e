package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerMeter converts world units to screen pixels.
	PixelsPerMeter = 48.0
)

// WorldToScreen maps a y-up world point to y-down screen pixels around a camera centre.
func WorldToScreen(x, y, camX, camY float64) (float64, float64) {
	sx := (x-camX)*PixelsPerMeter + BaseWidth/2
	sy := BaseHeight/2 - (y-camY)*PixelsPerMeter
	return sx, sy
}
