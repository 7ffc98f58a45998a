package prefabs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/camrig/camera"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// BlendStyleSpec is a blend style written by name, e.g. "ease_in_out".
type BlendStyleSpec camera.BlendStyle

func (s *BlendStyleSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("blend style must be a string")
	}
	style, err := camera.ParseBlendStyle(value.Value)
	if err != nil {
		return err
	}
	*s = BlendStyleSpec(style)
	return nil
}

type BlendSpec struct {
	Style    BlendStyleSpec `yaml:"style"`
	Duration float32        `yaml:"duration"`
}

func (b BlendSpec) Definition() camera.BlendDefinition {
	return camera.BlendDefinition{Style: camera.BlendStyle(b.Style), Duration: b.Duration}
}

type CustomBlendSpec struct {
	From     string         `yaml:"from"`
	To       string         `yaml:"to"`
	Style    BlendStyleSpec `yaml:"style"`
	Duration float32        `yaml:"duration"`
}

func (b CustomBlendSpec) Definition() camera.BlendDefinition {
	return camera.BlendDefinition{Style: camera.BlendStyle(b.Style), Duration: b.Duration}
}

// BlenderSpec lists the blends used between named cameras.
type BlenderSpec struct {
	Default BlendSpec         `yaml:"default"`
	Blends  []CustomBlendSpec `yaml:"blends"`
	// Script optionally names a tengo script consulted before Blends.
	Script string `yaml:"script"`
}

func LoadBlenderSpec(name string) (*BlenderSpec, error) {
	spec, err := LoadSpec[BlenderSpec](name)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type Vec3Spec [3]float32

func (v Vec3Spec) Vec3() mgl32.Vec3 {
	return mgl32.Vec3(v)
}

type LensSpec struct {
	FieldOfView      float32 `yaml:"fov"`
	OrthographicSize float32 `yaml:"ortho_size"`
	Near             float32 `yaml:"near"`
	Far              float32 `yaml:"far"`
	Dutch            float32 `yaml:"dutch"`
	Mode             string  `yaml:"mode"`
}

// Settings fills unset fields from camera.DefaultLens.
func (l LensSpec) Settings() (camera.LensSettings, error) {
	lens := camera.DefaultLens()
	if l.FieldOfView > 0 {
		lens.FieldOfView = l.FieldOfView
	}
	if l.OrthographicSize > 0 {
		lens.OrthographicSize = l.OrthographicSize
	}
	if l.Near > 0 {
		lens.NearClipPlane = l.Near
	}
	if l.Far > 0 {
		lens.FarClipPlane = l.Far
	}
	lens.Dutch = l.Dutch
	mode, err := camera.ParseLensMode(l.Mode)
	if err != nil {
		return lens, err
	}
	lens.Mode = mode
	return lens, nil
}

type VirtualCameraSpec struct {
	Name     string   `yaml:"name"`
	Priority int      `yaml:"priority"`
	Disabled bool     `yaml:"disabled"`
	Position Vec3Spec `yaml:"position"`
	// Follow names a target; Position is then an offset from it.
	Follow string   `yaml:"follow"`
	LookAt string   `yaml:"look_at"`
	Lens   LensSpec `yaml:"lens"`
	Hints  []string `yaml:"hints"`
}

type TargetSpec struct {
	Name     string   `yaml:"name"`
	Position Vec3Spec `yaml:"position"`
	Velocity Vec3Spec `yaml:"velocity"`
	Radius   float64  `yaml:"radius"`
}

type ArenaSpec struct {
	Width float64 `yaml:"width"`
	Depth float64 `yaml:"depth"`
}

// SceneSpec describes the world hosted by the viewer.
type SceneSpec struct {
	Name    string              `yaml:"name"`
	Arena   ArenaSpec           `yaml:"arena"`
	Targets []TargetSpec        `yaml:"targets"`
	Cameras []VirtualCameraSpec `yaml:"cameras"`
}

func LoadSceneSpec(name string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](name)
	if err != nil {
		return nil, err
	}
	if len(spec.Cameras) == 0 {
		return nil, fmt.Errorf("prefabs: scene %s has no cameras", name)
	}
	return &spec, nil
}

// TimelineStepSpec happens once simulated time reaches At seconds.
type TimelineStepSpec struct {
	At       float32 `yaml:"at"`
	Activate string  `yaml:"activate"`
	Destroy  string  `yaml:"destroy"`
	Reset    bool    `yaml:"reset"`
	Clear    bool    `yaml:"clear"`
}

// TimelineSpec is a scripted sequence of activations replayed at a fixed tick.
type TimelineSpec struct {
	TickRate float32             `yaml:"tick_rate"`
	Duration float32             `yaml:"duration"`
	Blends   string              `yaml:"blends"`
	Cameras  []VirtualCameraSpec `yaml:"cameras"`
	Steps    []TimelineStepSpec  `yaml:"steps"`
}

func LoadTimelineSpec(name string) (*TimelineSpec, error) {
	spec, err := LoadSpec[TimelineSpec](name)
	if err != nil {
		return nil, err
	}
	if spec.TickRate <= 0 {
		spec.TickRate = 60
	}
	return &spec, nil
}
