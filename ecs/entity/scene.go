package entity

import (
	"fmt"
	"sync/atomic"

	"github.com/milk9111/camrig/ecs"
	"github.com/milk9111/camrig/ecs/component"
	"github.com/milk9111/camrig/prefabs"
)

var seq atomic.Uint64

func nextSeq() uint64 {
	return seq.Add(1)
}

// Scene indexes the entities built from a SceneSpec.
type Scene struct {
	Name    string
	Arena   ecs.Entity
	Brain   ecs.Entity
	Targets map[string]ecs.Entity
	// Cameras keeps scene order so number keys map to the same camera.
	Cameras []ecs.Entity
}

func BuildScene(w *ecs.World, spec *prefabs.SceneSpec) (*Scene, error) {
	if spec == nil {
		return nil, fmt.Errorf("scene: nil spec")
	}
	scene := &Scene{Name: spec.Name, Targets: make(map[string]ecs.Entity)}

	if spec.Arena.Width > 0 || spec.Arena.Depth > 0 {
		arena, err := NewArena(w, spec.Arena)
		if err != nil {
			return nil, err
		}
		scene.Arena = arena
	}

	for _, ts := range spec.Targets {
		if _, dup := scene.Targets[ts.Name]; dup {
			return nil, fmt.Errorf("scene: duplicate target %q", ts.Name)
		}
		e, err := NewTarget(w, ts)
		if err != nil {
			return nil, err
		}
		scene.Targets[ts.Name] = e
	}

	names := make(map[string]bool, len(spec.Cameras))
	for _, cs := range spec.Cameras {
		if names[cs.Name] {
			return nil, fmt.Errorf("scene: duplicate camera %q", cs.Name)
		}
		names[cs.Name] = true
		for _, ref := range []string{cs.Follow, cs.LookAt} {
			if _, ok := scene.Targets[ref]; ref != "" && !ok {
				return nil, fmt.Errorf("scene: camera %s references unknown target %q", cs.Name, ref)
			}
		}
		e, err := NewVirtualCamera(w, cs)
		if err != nil {
			return nil, err
		}
		scene.Cameras = append(scene.Cameras, e)
	}

	brain, err := NewBrain(w)
	if err != nil {
		return nil, err
	}
	scene.Brain = brain
	return scene, nil
}

// Prioritize makes e the highest-priority enabled camera.
func Prioritize(w *ecs.World, e ecs.Entity) bool {
	vc, ok := ecs.Get(w, e, component.VirtualCameraComponent.Kind())
	if !ok {
		return false
	}
	top := vc.Priority
	ecs.ForEach(w, component.VirtualCameraComponent.Kind(), func(_ ecs.Entity, other *component.VirtualCamera) {
		if other.Enabled && other.Priority > top {
			top = other.Priority
		}
	})
	vc.Priority = top
	vc.Enabled = true
	vc.Seq = nextSeq()
	return true
}

// LiveCameras returns the scene cameras whose entities still exist.
func (s *Scene) LiveCameras(w *ecs.World) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(s.Cameras))
	for _, e := range s.Cameras {
		if w.IsAlive(e) {
			out = append(out, e)
		}
	}
	return out
}
