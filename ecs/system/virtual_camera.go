package system

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/camrig/camera"
	"github.com/milk9111/camrig/common"
	"github.com/milk9111/camrig/ecs"
	"github.com/milk9111/camrig/ecs/component"
)

// VirtualCameraSystem poses each virtual camera from its follow and look-at
// targets and stores the resulting CameraState on the component.
type VirtualCameraSystem struct {
	WorldUp mgl32.Vec3

	targets map[string]mgl32.Vec3
}

func NewVirtualCameraSystem() *VirtualCameraSystem {
	return &VirtualCameraSystem{WorldUp: common.WorldUp, targets: make(map[string]mgl32.Vec3)}
}

func (vs *VirtualCameraSystem) Update(w *ecs.World) {
	if vs == nil || w == nil {
		return
	}

	clear(vs.targets)
	ecs.ForEach2(w, component.TargetTagComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, tag *component.TargetTag, t *component.Transform) {
		vs.targets[tag.Name] = t.Position
	})

	ecs.ForEach2(w, component.VirtualCameraComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, vc *component.VirtualCamera, t *component.Transform) {
		if follow, ok := vs.targets[vc.Follow]; ok && vc.Follow != "" {
			t.Position = follow.Add(mgl32.Vec3(vc.Offset))
		}

		state := camera.NewCameraState()
		state.ReferenceUp = vs.WorldUp
		state.Lens = vc.Lens
		state.BlendHint = vc.Hints
		state.RawPosition = t.Position

		if target, ok := vs.targets[vc.LookAt]; ok && vc.LookAt != "" {
			state.ReferenceLookAt = target
			state.HasLookAt = true
			t.Rotation = common.LookRotation(target.Sub(t.Position), vs.WorldUp)
		}
		state.RawOrientation = t.Rotation
		vc.State = state
	})
}
