package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data for a ball moving on the arena
// plane. cp X maps to world X and cp Y to world Z.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Radius     float64
	Mass       float64
	Elasticity float64
	VelocityX  float64
	VelocityZ  float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// ArenaBounds walls the arena from (0,0) to (Width,Depth).
type ArenaBounds struct {
	Width float64
	Depth float64
}

var ArenaBoundsComponent = NewComponent[ArenaBounds]()
