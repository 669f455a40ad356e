package component

import "github.com/tanema/gween"

// Platform is a kinematic solid moved along one axis by a looping tween.
type Platform struct {
	Axis     PlatformAxis
	Origin   float64
	Sequence *gween.Sequence
	Offset   float64
}

type PlatformAxis uint8

const (
	PlatformAxisX PlatformAxis = iota
	PlatformAxisY
)

var PlatformComponent = NewComponent[Platform]()
