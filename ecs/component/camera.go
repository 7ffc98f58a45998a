package component

import "github.com/milk9111/camrig/camera"

// VirtualCamera is a camera the brain can choose. Follow and LookAt name
// TargetTag entities; Offset is relative to the follow target when set.
type VirtualCamera struct {
	Name     string
	Priority int
	Enabled  bool
	Follow   string
	LookAt   string
	Offset   [3]float32
	Lens     camera.LensSettings
	Hints    camera.BlendHints

	// State is rebuilt every frame by the virtual camera system.
	State camera.CameraState
	// Seq orders activations; the higher value wins priority ties.
	Seq uint64
}

var VirtualCameraComponent = NewComponent[VirtualCamera]()

// Brain holds the blended output of the camera system.
type Brain struct {
	Output      camera.CameraState
	Active      string
	Blending    bool
	Description string
	// Log keeps recent camera events, newest last.
	Log []camera.EventRecord
}

var BrainComponent = NewComponent[Brain]()
