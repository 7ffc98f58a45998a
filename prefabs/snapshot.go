package prefabs

import (
	"github.com/milk9111/camrig/camera"
	"gopkg.in/yaml.v3"
)

// StateSnapshot is the yaml form of a blended camera state.
type StateSnapshot struct {
	Position    Vec3Spec   `yaml:"position"`
	Orientation [4]float32 `yaml:"orientation"`
	LookAt      *Vec3Spec  `yaml:"look_at,omitempty"`
	FieldOfView float32    `yaml:"fov"`
	Dutch       float32    `yaml:"dutch,omitempty"`
	Mode        string     `yaml:"mode"`
}

func NewStateSnapshot(s camera.CameraState) StateSnapshot {
	pos := s.FinalPosition()
	q := s.FinalOrientation()
	snap := StateSnapshot{
		Position:    Vec3Spec(pos),
		Orientation: [4]float32{q.V.X(), q.V.Y(), q.V.Z(), q.W},
		FieldOfView: s.Lens.FieldOfView,
		Dutch:       s.Lens.Dutch,
		Mode:        lensModeNames[s.Lens.Mode],
	}
	if s.HasLookAt {
		at := Vec3Spec(s.ReferenceLookAt)
		snap.LookAt = &at
	}
	return snap
}

var lensModeNames = map[camera.LensMode]string{
	camera.LensPerspective:  "perspective",
	camera.LensOrthographic: "orthographic",
	camera.LensPhysical:     "physical",
}

func (s StateSnapshot) YAML() ([]byte, error) {
	return yaml.Marshal(s)
}
