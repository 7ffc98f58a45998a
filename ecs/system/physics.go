package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/camrig/ecs"
	"github.com/milk9111/camrig/ecs/component"
)

const wallThickness = 0.5

// PhysicsSystem moves PhysicsBody entities inside the arena walls. The arena
// is the world XZ plane; cp X is world X and cp Y is world Z.
type PhysicsSystem struct {
	space     *cp.Space
	DeltaTime float64

	bodies map[ecs.Entity]*bodyInfo
	walls  map[ecs.Entity][]*cp.Shape
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
}

func NewPhysicsSystem(dt float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:     space,
		DeltaTime: dt,
		bodies:    make(map[ecs.Entity]*bodyInfo),
		walls:     make(map[ecs.Entity][]*cp.Shape),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.cleanupEntities(w)
	ps.syncArena(w)
	ps.syncEntities(w)

	if ps.DeltaTime > 0 {
		ps.space.Step(ps.DeltaTime)
	}

	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncArena(w *ecs.World) {
	ecs.ForEach(w, component.ArenaBoundsComponent.Kind(), func(e ecs.Entity, bounds *component.ArenaBounds) {
		if _, ok := ps.walls[e]; ok || bounds.Width <= 0 || bounds.Depth <= 0 {
			return
		}
		width, depth := bounds.Width, bounds.Depth
		segments := [][2]cp.Vector{
			{{X: 0, Y: 0}, {X: width, Y: 0}},
			{{X: 0, Y: depth}, {X: width, Y: depth}},
			{{X: 0, Y: 0}, {X: 0, Y: depth}},
			{{X: width, Y: 0}, {X: width, Y: depth}},
		}
		shapes := make([]*cp.Shape, 0, len(segments))
		for _, seg := range segments {
			shape := cp.NewSegment(ps.space.StaticBody, seg[0], seg[1], wallThickness)
			shape.SetElasticity(1)
			shape.SetFriction(0)
			ps.space.AddShape(shape)
			shapes = append(shapes, shape)
		}
		ps.walls[e] = shapes
	})
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if _, ok := ps.bodies[e]; ok {
			return
		}
		mass := pb.Mass
		if mass <= 0 {
			mass = 1
		}
		body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, pb.Radius, cp.Vector{}))
		body.SetPosition(cp.Vector{X: float64(t.Position.X()), Y: float64(t.Position.Z())})
		body.SetVelocityVector(cp.Vector{X: pb.VelocityX, Y: pb.VelocityZ})

		shape := cp.NewCircle(body, pb.Radius, cp.Vector{})
		shape.SetElasticity(pb.Elasticity)
		shape.SetFriction(0)

		ps.space.AddBody(body)
		ps.space.AddShape(shape)
		ps.bodies[e] = &bodyInfo{body: body, shape: shape}
		pb.Body = body
		pb.Shape = shape
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil {
			return
		}
		pos := pb.Body.Position()
		vel := pb.Body.Velocity()
		t.Position[0] = float32(pos.X)
		t.Position[2] = float32(pos.Y)
		pb.VelocityX, pb.VelocityZ = vel.X, vel.Y
	})
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent.Kind()) {
			continue
		}
		ps.space.RemoveShape(info.shape)
		ps.space.RemoveBody(info.body)
		delete(ps.bodies, e)
	}
	for e, shapes := range ps.walls {
		if w.IsAlive(e) && ecs.Has(w, e, component.ArenaBoundsComponent.Kind()) {
			continue
		}
		for _, shape := range shapes {
			ps.space.RemoveShape(shape)
		}
		delete(ps.walls, e)
	}
}
