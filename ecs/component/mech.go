package component

import "github.com/milk9111/mercmech/mech"

// Mech binds an entity to its character controller.
type Mech struct {
	Name      string
	Character *mech.Character
	Color     [3]uint8

	// Last is the status captured after the most recent fixed step.
	Last mech.Status
}

var MechComponent = NewComponent[Mech]()
