package system

import (
	"testing"

	"github.com/milk9111/camrig/camera"
	"github.com/milk9111/camrig/ecs"
	"github.com/milk9111/camrig/ecs/component"
	"github.com/milk9111/camrig/ecs/entity"
	"github.com/milk9111/camrig/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const step = 0.125

type brainFixture struct {
	w      *ecs.World
	brain  *BrainSystem
	scene  *entity.Scene
	events []ecs.Event
}

func newBrainFixture(t *testing.T) *brainFixture {
	t.Helper()
	w := ecs.NewWorld()
	scene, err := entity.BuildScene(w, &prefabs.SceneSpec{
		Cameras: []prefabs.VirtualCameraSpec{
			{Name: "a", Priority: 10, Position: prefabs.Vec3Spec{0, 5, 10}},
			{Name: "b", Priority: 5, Position: prefabs.Vec3Spec{10, 5, 0}},
		},
	})
	require.NoError(t, err)

	brain := NewBrainSystem(camera.ConstantLookup(camera.BlendDefinition{Style: camera.EaseInOut, Duration: 1}), step, nil)
	w.AddSystem(NewVirtualCameraSystem())
	w.AddSystem(brain)
	return &brainFixture{w: w, brain: brain, scene: scene}
}

func (f *brainFixture) update() *component.Brain {
	f.w.Update()
	f.events = append(f.events, f.w.Events().Drain()...)
	brain, _ := ecs.Get(f.w, f.scene.Brain, component.BrainComponent.Kind())
	return brain
}

func (f *brainFixture) count(kind camera.EventKind) int {
	n := 0
	for _, e := range f.events {
		if e.Type == string(kind) {
			n++
		}
	}
	return n
}

func TestBrainCutsToHighestPriority(t *testing.T) {
	f := newBrainFixture(t)
	out := f.update()

	assert.Equal(t, "a", out.Active)
	assert.False(t, out.Blending)
	assert.Equal(t, 1, f.count(camera.EventActivated))
	assert.Equal(t, 1, f.count(camera.EventCut))
	assert.InDelta(t, 10, out.Output.FinalPosition().Z(), 1e-5)
	require.NotEmpty(t, out.Log)
	assert.Equal(t, camera.EventCut, out.Log[len(out.Log)-1].Kind)
}

func TestBrainBlendsOnPriorityChange(t *testing.T) {
	f := newBrainFixture(t)
	f.update()

	require.True(t, entity.Prioritize(f.w, f.scene.Cameras[1]))
	out := f.update()
	assert.Equal(t, "b", out.Active)
	assert.True(t, out.Blending)
	assert.Equal(t, 1, f.count(camera.EventBlendCreated))
	assert.Contains(t, out.Description, "->")

	for range 6 {
		out = f.update()
	}
	assert.True(t, out.Blending)
	assert.Zero(t, f.count(camera.EventBlendFinished))

	out = f.update()
	assert.False(t, out.Blending)
	assert.Equal(t, 1, f.count(camera.EventBlendFinished))
	assert.Equal(t, 1, f.count(camera.EventDeactivated))
	assert.InDelta(t, 10, out.Output.FinalPosition().X(), 1e-5)
}

func TestBrainSurvivesDestroyedCamera(t *testing.T) {
	f := newBrainFixture(t)
	f.update()
	require.True(t, entity.Prioritize(f.w, f.scene.Cameras[1]))
	f.update()
	f.update()

	require.True(t, f.w.DestroyEntity(f.scene.Cameras[1]))
	out := f.update()
	assert.Equal(t, "a", out.Active)
	assert.False(t, out.Blending)
	assert.Equal(t, 1, f.count(camera.EventDeactivated))
	assert.Len(t, f.scene.LiveCameras(f.w), 1)
	assert.True(t, f.brain.IsLiveChild(entity.NewCameraRef(f.w, f.scene.Cameras[0])))
}

func TestBrainReset(t *testing.T) {
	f := newBrainFixture(t)
	f.update()
	f.brain.Reset()
	f.events = nil

	out := f.update()
	assert.Equal(t, "a", out.Active)
	assert.Equal(t, 1, f.count(camera.EventCut), "reset forgets the live camera, so it is cut to again")
	assert.Zero(t, f.count(camera.EventDeactivated))
}

func TestBrainNoEnabledCamera(t *testing.T) {
	f := newBrainFixture(t)
	f.update()
	ecs.ForEach(f.w, component.VirtualCameraComponent.Kind(), func(_ ecs.Entity, vc *component.VirtualCamera) {
		vc.Enabled = false
	})

	out := f.update()
	assert.Equal(t, "(none)", out.Active)
	assert.Equal(t, "(none)", out.Description)
	assert.Equal(t, 1, f.count(camera.EventDeactivated))
}
