package camera

import (
	"log/slog"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/camrig/common"
)

// rootFrame is the per-mixer state carried across frames.
type rootFrame struct {
	mixer           Mixer
	desired         Camera
	activeLastFrame Camera
	worldUp         mgl32.Vec3
	deltaTime       float32
	node            blendNode
}

// BlendManager owns the activation state machine of one mixer. Each frame
// call UpdateRootFrame, ComputeCurrentBlend and ProcessActiveCamera in that
// order, from a single goroutine.
type BlendManager struct {
	lookup BlendLookup
	events *Dispatcher
	logger *slog.Logger

	frame  rootFrame
	live   []Camera
	gone   []Camera
	output CameraState
}

// NewBlendManager creates a manager using lookup to choose blends. A nil
// lookup cuts on every activation.
func NewBlendManager(lookup BlendLookup) *BlendManager {
	m := &BlendManager{
		logger: slog.Default(),
	}
	m.events = NewDispatcher(m.logger)
	m.SetLookup(lookup)
	m.ResetRootFrame()
	return m
}

// SetLookup replaces the blend lookup strategy.
func (m *BlendManager) SetLookup(lookup BlendLookup) {
	if lookup == nil {
		lookup = CutLookup
	}
	m.lookup = lookup
}

// SetLogger sets the logger used for diagnostics and handler panics.
func (m *BlendManager) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	m.logger = logger
	m.events.logger = logger
}

// Events returns the dispatcher listeners subscribe to.
func (m *BlendManager) Events() *Dispatcher {
	return m.events
}

// ResetRootFrame forgets every live camera and blend without raising events.
func (m *BlendManager) ResetRootFrame() {
	m.frame = rootFrame{worldUp: common.WorldUp}
	m.live = m.live[:0]
	m.output = NewCameraState()
}

// UpdateRootFrame records the camera that should be active this frame. A nil
// desired camera means none.
func (m *BlendManager) UpdateRootFrame(mixer Mixer, desired Camera, worldUp mgl32.Vec3, deltaTime float32) {
	m.frame.mixer = mixer
	m.frame.desired = desired
	m.frame.worldUp = worldUp
	m.frame.deltaTime = deltaTime
}

// ComputeCurrentBlend compares the desired camera against last frame's and
// starts, nests, or cuts blends accordingly.
func (m *BlendManager) ComputeCurrentBlend() {
	f := &m.frame
	m.pruneStale()
	m.syncLive()

	prev, next := f.activeLastFrame, f.desired
	if next != nil && !next.IsValid() {
		// a destroyed camera cannot be activated; keep what is live
		next = prev
	}
	if prev == next {
		return
	}
	f.activeLastFrame = next

	if next == nil {
		m.logger.Debug("camera: no active camera", "previous", cameraName(prev))
		f.node = nil
		m.syncLive()
		return
	}

	if prev == nil || f.node == nil {
		f.node = &leafNode{cam: next}
		m.syncLive()
		m.events.emitActivated(CameraActivatedEvent{Origin: f.mixer, Incoming: next, IsCut: true})
		m.events.emitCut(CameraCutEvent{Origin: f.mixer, Camera: next})
		return
	}

	def := m.lookup.LookupBlend(prev, next)
	if cur, ok := f.node.(*mixNode); ok && isReverseOf(cur, prev, next, def) {
		def.Duration = cur.elapsed
	}

	if cur, ok := f.node.(*mixNode); ok {
		cur.interrupted = true
	}
	node := &mixNode{from: f.node, to: next, def: def}
	f.node = node
	m.syncLive()
	m.logger.Debug("camera: activated", "from", cameraName(prev), "to", cameraName(next), "blend", def.String())

	m.events.emitActivated(CameraActivatedEvent{Origin: f.mixer, Incoming: next, Outgoing: prev, IsCut: def.IsCut()})
	if !def.IsCut() {
		m.events.emitBlendCreated(BlendCreatedEvent{Origin: f.mixer, Outgoing: prev, Incoming: next, Blend: &node.def})
	}

	if node.def.IsCut() {
		f.node = &leafNode{cam: next}
		m.events.emitCut(CameraCutEvent{Origin: f.mixer, Camera: next})
		m.syncLive()
	}
}

// isReverseOf reports whether activating next undoes the simple blend cur.
func isReverseOf(cur *mixNode, prev, next Camera, def BlendDefinition) bool {
	from, ok := cur.from.(*leafNode)
	if !ok || from.cam != next || cur.to != prev || cur.complete() {
		return false
	}
	return !def.IsCut() && def.BlendTime() == cur.def.BlendTime()
}

// ProcessActiveCamera advances the current blend by deltaTime, raises
// BlendFinished and CameraDeactivated where due, and returns the blended
// state. A negative deltaTime completes every blend immediately.
func (m *BlendManager) ProcessActiveCamera(mixer Mixer, worldUp mgl32.Vec3, deltaTime float32) CameraState {
	f := &m.frame
	if mixer != nil {
		f.mixer = mixer
	}
	m.pruneStale()

	var finished Camera
	if root, ok := f.node.(*mixNode); ok {
		advance(root, deltaTime)
		root.from = collapseComplete(root.from)
		if root.complete() {
			f.node = &leafNode{cam: root.to}
			if !root.interrupted {
				finished = root.to
			}
		}
	}

	if f.node == nil {
		out := NewCameraState()
		if worldUp.Len() > common.Epsilon {
			out.ReferenceUp = worldUp
		}
		m.output = out
	} else {
		m.output = evaluate(f.node)
	}

	if finished != nil {
		m.logger.Debug("camera: blend finished", "camera", cameraName(finished))
		m.events.emitBlendFinished(BlendFinishedEvent{Origin: f.mixer, Camera: finished})
	}
	m.syncLive()
	return m.output
}

// pruneStale drops invalid cameras from the tree. When the root itself goes,
// the camera the remaining tree resolves to becomes the active camera.
func (m *BlendManager) pruneStale() {
	f := &m.frame
	if f.node == nil {
		return
	}
	if pruned := prune(f.node); pruned != f.node {
		f.node = pruned
		f.activeLastFrame = activeOf(pruned)
	}
}

// syncLive records the cameras now in the tree and raises CameraDeactivated
// for those that dropped out, deepest outgoing first.
func (m *BlendManager) syncLive() {
	now := appendLive(m.gone[:0], m.frame.node)
	var gone []Camera
	for _, cam := range m.live {
		if !containsCamera(now, cam) {
			gone = append(gone, cam)
		}
	}
	m.live, m.gone = now, m.live
	for _, cam := range gone {
		m.logger.Debug("camera: deactivated", "camera", cameraName(cam))
		m.events.emitDeactivated(CameraDeactivatedEvent{Origin: m.frame.mixer, Outgoing: cam})
	}
}

// IsBlending reports whether a blend is in progress.
func (m *BlendManager) IsBlending() bool {
	root, ok := m.frame.node.(*mixNode)
	return ok && !root.complete()
}

// ActiveCamera is the camera most recently activated, or nil.
func (m *BlendManager) ActiveCamera() Camera {
	return m.frame.activeLastFrame
}

// IsLive reports whether cam contributes to the current output.
func (m *BlendManager) IsLive(cam Camera) bool {
	if cam == nil || m.frame.node == nil {
		return false
	}
	return nodeContains(m.frame.node, cam)
}

// State is the output of the last ProcessActiveCamera call.
func (m *BlendManager) State() CameraState {
	return m.output
}

// Description summarizes the current blend, e.g. "(A 60% -> B) 20% -> C".
func (m *BlendManager) Description() string {
	if m.frame.node == nil {
		return "(none)"
	}
	var sb strings.Builder
	describe(&sb, m.frame.node)
	return sb.String()
}
