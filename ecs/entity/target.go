package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/camrig/ecs"
	"github.com/milk9111/camrig/ecs/component"
	"github.com/milk9111/camrig/prefabs"
)

func NewTarget(w *ecs.World, spec prefabs.TargetSpec) (ecs.Entity, error) {
	if spec.Name == "" {
		return 0, fmt.Errorf("target: name is required")
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TargetTagComponent.Kind(), &component.TargetTag{Name: spec.Name}); err != nil {
		return 0, fmt.Errorf("target %s: add tag: %w", spec.Name, err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: spec.Position.Vec3(),
		Rotation: mgl32.QuatIdent(),
	}); err != nil {
		return 0, fmt.Errorf("target %s: add transform: %w", spec.Name, err)
	}

	if spec.Radius <= 0 {
		return e, nil
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Radius:     spec.Radius,
		Mass:       1,
		Elasticity: 1,
		VelocityX:  float64(spec.Velocity[0]),
		VelocityZ:  float64(spec.Velocity[2]),
	}); err != nil {
		return 0, fmt.Errorf("target %s: add physics body: %w", spec.Name, err)
	}
	return e, nil
}

func NewArena(w *ecs.World, spec prefabs.ArenaSpec) (ecs.Entity, error) {
	if spec.Width <= 0 || spec.Depth <= 0 {
		return 0, fmt.Errorf("arena: size must be positive, got %vx%v", spec.Width, spec.Depth)
	}
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ArenaBoundsComponent.Kind(), &component.ArenaBounds{
		Width: spec.Width,
		Depth: spec.Depth,
	}); err != nil {
		return 0, fmt.Errorf("arena: add bounds: %w", err)
	}
	return e, nil
}

func NewBrain(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.BrainComponent.Kind(), &component.Brain{}); err != nil {
		return 0, fmt.Errorf("brain: add brain: %w", err)
	}
	return e, nil
}
