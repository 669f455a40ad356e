package component

// Spawn is where a mech returns to on reset or when it leaves the level.
type Spawn struct {
	X     float64
	Y     float64
	KillY float64
}

var SpawnComponent = NewComponent[Spawn]()
