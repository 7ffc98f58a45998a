package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/camrig/camera"
	"github.com/milk9111/camrig/ecs"
	"github.com/milk9111/camrig/ecs/component"
	"github.com/milk9111/camrig/prefabs"
)

// CameraRef is a camera.Camera backed by a VirtualCamera entity. It stops
// being valid once the entity is destroyed or loses the component.
type CameraRef struct {
	world  *ecs.World
	entity ecs.Entity
	name   string
}

func NewCameraRef(w *ecs.World, e ecs.Entity) CameraRef {
	ref := CameraRef{world: w, entity: e}
	if vc, ok := ecs.Get(w, e, component.VirtualCameraComponent.Kind()); ok {
		ref.name = vc.Name
	}
	return ref
}

func (c CameraRef) Entity() ecs.Entity {
	return c.entity
}

func (c CameraRef) Name() string {
	return c.name
}

func (c CameraRef) State() camera.CameraState {
	vc, ok := ecs.Get(c.world, c.entity, component.VirtualCameraComponent.Kind())
	if !ok {
		return camera.NewCameraState()
	}
	return vc.State
}

func (c CameraRef) IsValid() bool {
	return c.world.IsAlive(c.entity) && ecs.Has(c.world, c.entity, component.VirtualCameraComponent.Kind())
}

func NewVirtualCamera(w *ecs.World, spec prefabs.VirtualCameraSpec) (ecs.Entity, error) {
	if spec.Name == "" {
		return 0, fmt.Errorf("virtual camera: name is required")
	}
	lens, err := spec.Lens.Settings()
	if err != nil {
		return 0, fmt.Errorf("virtual camera %s: %w", spec.Name, err)
	}
	hints, err := camera.ParseBlendHints(spec.Hints)
	if err != nil {
		return 0, fmt.Errorf("virtual camera %s: %w", spec.Name, err)
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: spec.Position.Vec3(),
		Rotation: mgl32.QuatIdent(),
	}); err != nil {
		return 0, fmt.Errorf("virtual camera %s: add transform: %w", spec.Name, err)
	}

	state := camera.NewCameraState()
	state.Lens = lens
	state.BlendHint = hints
	state.RawPosition = spec.Position.Vec3()
	if err := ecs.Add(w, e, component.VirtualCameraComponent.Kind(), &component.VirtualCamera{
		Name:     spec.Name,
		Priority: spec.Priority,
		Enabled:  !spec.Disabled,
		Follow:   spec.Follow,
		LookAt:   spec.LookAt,
		Offset:   spec.Position,
		Lens:     lens,
		Hints:    hints,
		State:    state,
		Seq:      nextSeq(),
	}); err != nil {
		return 0, fmt.Errorf("virtual camera %s: add virtual camera: %w", spec.Name, err)
	}

	return e, nil
}
