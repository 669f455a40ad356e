package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and collider configuration.
// Sizes are in world units; positions are the collider centre.
type PhysicsBody struct {
	Body      *cp.Body
	Shape     *cp.Shape
	Width     float64
	Height    float64
	Mass      float64
	Friction  float64
	Static    bool
	Kinematic bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
