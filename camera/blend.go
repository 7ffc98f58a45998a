package camera

import (
	"fmt"
	"strings"

	"github.com/milk9111/camrig/common"
)

// BlendStyle is the shape of the weight curve used by a blend.
type BlendStyle int

const (
	Cut BlendStyle = iota
	EaseInOut
	EaseIn
	EaseOut
	HardIn
	HardOut
	Linear
	Custom
)

var blendStyleNames = map[BlendStyle]string{
	Cut:       "cut",
	EaseInOut: "ease_in_out",
	EaseIn:    "ease_in",
	EaseOut:   "ease_out",
	HardIn:    "hard_in",
	HardOut:   "hard_out",
	Linear:    "linear",
	Custom:    "custom",
}

func (s BlendStyle) String() string {
	if name, ok := blendStyleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("BlendStyle(%d)", int(s))
}

// ParseBlendStyle accepts the snake_case names produced by String, ignoring
// case, dashes and spaces.
func ParseBlendStyle(name string) (BlendStyle, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	switch norm {
	case "easeinout":
		norm = "ease_in_out"
	case "easein":
		norm = "ease_in"
	case "easeout":
		norm = "ease_out"
	case "hardin":
		norm = "hard_in"
	case "hardout":
		norm = "hard_out"
	}
	for style, n := range blendStyleNames {
		if n == norm {
			return style, nil
		}
	}
	return Cut, fmt.Errorf("camera: unknown blend style %q", name)
}

// Curve maps normalized blend time to a blend weight.
type Curve func(t float32) float32

// BlendDefinition describes how to blend into a camera.
type BlendDefinition struct {
	Style    BlendStyle
	Duration float32
	// CustomCurve is used when Style is Custom.
	CustomCurve Curve
}

// BlendTime is the effective duration; zero means an instant cut.
func (d BlendDefinition) BlendTime() float32 {
	if d.Style == Cut || d.Duration <= 0 {
		return 0
	}
	return d.Duration
}

// IsCut reports whether the definition replaces the camera instantly.
func (d BlendDefinition) IsCut() bool {
	return d.BlendTime() <= 0
}

// Weight maps normalized time t to the blend weight of the incoming camera.
func (d BlendDefinition) Weight(t float32) float32 {
	t = common.Clamp01(t)
	switch d.Style {
	case Cut:
		if t > 0 {
			return 1
		}
		return 0
	case Linear:
		return t
	case EaseIn:
		return t * t * (2 - t)
	case EaseOut:
		return t + t*t - t*t*t
	case HardIn:
		return t * t * t
	case HardOut:
		u := 1 - t
		return 1 - u*u*u
	case Custom:
		if d.CustomCurve != nil {
			switch {
			case t <= 0:
				return 0
			case t >= 1:
				return 1
			}
			return common.Clamp01(d.CustomCurve(t))
		}
	}
	return t * t * (3 - 2*t)
}

func (d BlendDefinition) String() string {
	if d.IsCut() {
		return "cut"
	}
	return fmt.Sprintf("%s %.2fs", d.Style, d.Duration)
}

// BlendLookup chooses the blend used when outgoing hands over to incoming.
// outgoing is nil when nothing was live.
type BlendLookup interface {
	LookupBlend(outgoing, incoming Camera) BlendDefinition
}

// BlendLookupFunc adapts a function to BlendLookup.
type BlendLookupFunc func(outgoing, incoming Camera) BlendDefinition

func (f BlendLookupFunc) LookupBlend(outgoing, incoming Camera) BlendDefinition {
	return f(outgoing, incoming)
}

// CutLookup always cuts.
var CutLookup BlendLookup = BlendLookupFunc(func(Camera, Camera) BlendDefinition {
	return BlendDefinition{Style: Cut}
})

// ConstantLookup returns def for every pair.
func ConstantLookup(def BlendDefinition) BlendLookup {
	return BlendLookupFunc(func(Camera, Camera) BlendDefinition {
		return def
	})
}
