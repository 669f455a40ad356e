package component

type Camera struct {
	TargetName string
	Smoothness float64
	LookAhead  float64
}

var CameraComponent = NewComponent[Camera]()
