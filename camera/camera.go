// Package camera decides which virtual camera is live and blends the
// outgoing and incoming cameras into one CameraState per frame.
package camera

// Camera is anything that produces a CameraState each frame. Implementations
// must be comparable (usually pointers): the manager tracks cameras by identity.
type Camera interface {
	Name() string
	State() CameraState
	IsValid() bool
}

// Mixer is a camera that selects among child cameras.
type Mixer interface {
	Camera
	IsLiveChild(cam Camera) bool
}

func isValid(cam Camera) bool {
	return cam != nil && cam.IsValid()
}

func cameraName(cam Camera) string {
	if cam == nil {
		return "(none)"
	}
	return cam.Name()
}

func containsCamera(cams []Camera, cam Camera) bool {
	for _, c := range cams {
		if c == cam {
			return true
		}
	}
	return false
}
