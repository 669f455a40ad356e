package component

// Pilot drives a mech from a tengo script instead of a device.
type Pilot struct {
	ScriptPath string
	Tick       int
	Disabled   bool
	LastError  string
}

var PilotComponent = NewComponent[Pilot]()
