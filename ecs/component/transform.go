package component

import "github.com/go-gl/mathgl/mgl32"

// Transform is a world-space pose. Y is up; the arena lies on the XZ plane.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

var TransformComponent = NewComponent[Transform]()
