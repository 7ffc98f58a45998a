package system

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/camrig/camera"
	"github.com/milk9111/camrig/common"
	"github.com/milk9111/camrig/ecs"
	"github.com/milk9111/camrig/ecs/component"
	"github.com/milk9111/camrig/ecs/entity"
)

const brainLogLimit = 8

// BrainSystem picks the enabled virtual camera with the highest priority
// (latest Seq on ties), drives a BlendManager with it, and writes the blended
// result to the Brain component. It is the root camera.Mixer of the world.
type BrainSystem struct {
	Manager   *camera.BlendManager
	DeltaTime float32
	WorldUp   mgl32.Vec3

	world    *ecs.World
	recorder camera.Recorder
}

func NewBrainSystem(lookup camera.BlendLookup, dt float32, logger *slog.Logger) *BrainSystem {
	b := &BrainSystem{
		Manager:   camera.NewBlendManager(lookup),
		DeltaTime: dt,
		WorldUp:   common.WorldUp,
		recorder:  camera.Recorder{Limit: brainLogLimit},
	}
	b.Manager.SetLogger(logger)
	b.recorder.Attach(b.Manager.Events())
	b.forwardEvents(b.Manager.Events())
	return b
}

// forwardEvents copies manager events onto the world queue of the frame
// being updated.
func (b *BrainSystem) forwardEvents(d *camera.Dispatcher) {
	push := func(kind camera.EventKind, data any) {
		if b.world != nil {
			b.world.Events().Push(ecs.Event{Type: string(kind), Data: data})
		}
	}
	d.OnCameraActivated(func(e camera.CameraActivatedEvent) { push(camera.EventActivated, e) })
	d.OnCameraDeactivated(func(e camera.CameraDeactivatedEvent) { push(camera.EventDeactivated, e) })
	d.OnBlendCreated(func(e camera.BlendCreatedEvent) { push(camera.EventBlendCreated, e) })
	d.OnBlendFinished(func(e camera.BlendFinishedEvent) { push(camera.EventBlendFinished, e) })
	d.OnCameraCut(func(e camera.CameraCutEvent) { push(camera.EventCut, e) })
}

func (b *BrainSystem) Name() string { return "brain" }

func (b *BrainSystem) State() camera.CameraState { return b.Manager.State() }

func (b *BrainSystem) IsValid() bool { return true }

func (b *BrainSystem) IsLiveChild(cam camera.Camera) bool { return b.Manager.IsLive(cam) }

// Reset drops the current blend; the next update cuts to the chosen camera.
func (b *BrainSystem) Reset() {
	b.Manager.ResetRootFrame()
}

// Events is the dispatcher listeners attach to.
func (b *BrainSystem) Events() *camera.Dispatcher {
	return b.Manager.Events()
}

func (b *BrainSystem) Update(w *ecs.World) {
	if b == nil || w == nil {
		return
	}
	b.world = w
	defer func() { b.world = nil }()

	desired := b.choose(w)
	b.Manager.UpdateRootFrame(b, desired, b.WorldUp, b.DeltaTime)
	b.Manager.ComputeCurrentBlend()
	out := b.Manager.ProcessActiveCamera(b, b.WorldUp, b.DeltaTime)

	active := "(none)"
	if cam := b.Manager.ActiveCamera(); cam != nil {
		active = cam.Name()
	}
	ecs.ForEach(w, component.BrainComponent.Kind(), func(_ ecs.Entity, brain *component.Brain) {
		brain.Output = out
		brain.Active = active
		brain.Blending = b.Manager.IsBlending()
		brain.Description = b.Manager.Description()
		brain.Log = append(brain.Log[:0], b.recorder.Records...)
	})
}

func (b *BrainSystem) choose(w *ecs.World) camera.Camera {
	var (
		best  ecs.Entity
		found bool
		top   *component.VirtualCamera
	)
	ecs.ForEach(w, component.VirtualCameraComponent.Kind(), func(e ecs.Entity, vc *component.VirtualCamera) {
		if !vc.Enabled {
			return
		}
		if top == nil || vc.Priority > top.Priority || (vc.Priority == top.Priority && vc.Seq > top.Seq) {
			best, found, top = e, true, vc
		}
	})
	if !found {
		return nil
	}
	return entity.NewCameraRef(w, best)
}
