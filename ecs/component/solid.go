package component

// Solid marks static level geometry that counts as ground.
type Solid struct {
	Name string
}

var SolidComponent = NewComponent[Solid]()
