package component

// Transform is the last simulated pose, y-up in world units.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
	Facing   int
}

var TransformComponent = NewComponent[Transform]()
