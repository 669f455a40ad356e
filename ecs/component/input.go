package component

import "github.com/milk9111/mercmech/mech"

// Input stores the latest intent for a mech. Source tells which system
// last wrote it.
type Input struct {
	mech.Input
	Source InputSource
}

type InputSource uint8

const (
	InputSourceNone InputSource = iota
	InputSourceDevice
	InputSourceScript
)

func (s InputSource) String() string {
	switch s {
	case InputSourceDevice:
		return "device"
	case InputSourceScript:
		return "script"
	default:
		return "none"
	}
}

var InputComponent = NewComponent[Input]()
