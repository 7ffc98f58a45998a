// Package blendrules provides camera.BlendLookup strategies loaded from yaml
// blender settings and tengo scripts, with hot reload.
package blendrules

import (
	"fmt"

	"github.com/milk9111/camrig/camera"
	"github.com/milk9111/camrig/prefabs"
)

// AnyCamera matches every camera name in a Rule.
const AnyCamera = "**ANY CAMERA**"

type Rule struct {
	From  string
	To    string
	Blend camera.BlendDefinition
}

// Settings chooses blends by camera name. The first exact From/To pair wins,
// then AnyCamera -> To, then From -> AnyCamera, then Default.
type Settings struct {
	Default camera.BlendDefinition
	Rules   []Rule
}

func NewSettings(spec *prefabs.BlenderSpec) (*Settings, error) {
	if spec == nil {
		return nil, fmt.Errorf("blendrules: nil blender spec")
	}

	s := &Settings{Default: spec.Default.Definition()}
	for i, b := range spec.Blends {
		if b.From == "" || b.To == "" {
			return nil, fmt.Errorf("blendrules: blend %d needs both from and to", i)
		}
		if b.Duration < 0 {
			return nil, fmt.Errorf("blendrules: blend %s -> %s has negative duration", b.From, b.To)
		}
		s.Rules = append(s.Rules, Rule{From: b.From, To: b.To, Blend: b.Definition()})
	}
	return s, nil
}

// LoadSettings reads a blender yaml through prefabs.Load.
func LoadSettings(name string) (*Settings, error) {
	spec, err := prefabs.LoadBlenderSpec(name)
	if err != nil {
		return nil, err
	}
	return NewSettings(spec)
}

// Find returns the blend for a pair of names and whether a rule matched.
func (s *Settings) Find(from, to string) (camera.BlendDefinition, bool) {
	var anyTo, fromAny *Rule
	for i := range s.Rules {
		r := &s.Rules[i]
		switch {
		case r.From == from && r.To == to:
			return r.Blend, true
		case r.From == AnyCamera && r.To == to:
			if anyTo == nil {
				anyTo = r
			}
		case r.From == from && r.To == AnyCamera:
			if fromAny == nil {
				fromAny = r
			}
		}
	}
	if anyTo != nil {
		return anyTo.Blend, true
	}
	if fromAny != nil {
		return fromAny.Blend, true
	}
	return s.Default, false
}

func (s *Settings) LookupBlend(outgoing, incoming camera.Camera) camera.BlendDefinition {
	def, _ := s.Find(nameOf(outgoing), nameOf(incoming))
	return def
}

func nameOf(cam camera.Camera) string {
	if cam == nil {
		return ""
	}
	return cam.Name()
}
