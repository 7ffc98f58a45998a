package blendrules

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/camrig/camera"
	"github.com/milk9111/camrig/prefabs"
)

// appended to every rule script; the script must define lookup(from, to)
const lookupDispatchScript = `
__result := lookup(__from, __to)
`

// Script asks a tengo script for blends. lookup(from, to) returns a map with
// style and duration keys, or undefined to defer to Fallback. Not safe for
// concurrent use.
type Script struct {
	Path     string
	Fallback camera.BlendLookup

	compiled *tengo.Compiled
	logger   *slog.Logger
	reported map[string]bool
}

// LoadScript compiles the script found by prefabs.LoadScript.
func LoadScript(path string, fallback camera.BlendLookup, logger *slog.Logger) (*Script, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}
	return NewScript(path, src, fallback, logger)
}

func NewScript(path string, src []byte, fallback camera.BlendLookup, logger *slog.Logger) (*Script, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if fallback == nil {
		fallback = camera.CutLookup
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + lookupDispatchScript))
	_ = script.Add("__from", "")
	_ = script.Add("__to", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("blendrules: compile %s: %w", path, err)
	}

	return &Script{
		Path:     path,
		Fallback: fallback,
		compiled: compiled,
		logger:   logger,
		reported: map[string]bool{},
	}, nil
}

func (s *Script) LookupBlend(outgoing, incoming camera.Camera) camera.BlendDefinition {
	def, ok, err := s.Find(nameOf(outgoing), nameOf(incoming))
	if err != nil {
		s.report(err)
	}
	if !ok {
		return s.Fallback.LookupBlend(outgoing, incoming)
	}
	return def
}

// Find runs the script for a pair of names. ok is false when the script
// returned undefined or failed.
func (s *Script) Find(from, to string) (camera.BlendDefinition, bool, error) {
	if err := s.compiled.Set("__from", from); err != nil {
		return camera.BlendDefinition{}, false, err
	}
	if err := s.compiled.Set("__to", to); err != nil {
		return camera.BlendDefinition{}, false, err
	}
	if err := s.compiled.Run(); err != nil {
		return camera.BlendDefinition{}, false, fmt.Errorf("blendrules: run %s: %w", s.Path, err)
	}

	result := s.compiled.Get("__result")
	if result == nil || result.IsUndefined() {
		return camera.BlendDefinition{}, false, nil
	}
	def, err := definitionFromScript(result.Map())
	if err != nil {
		return camera.BlendDefinition{}, false, fmt.Errorf("blendrules: %s -> %s in %s: %w", from, to, s.Path, err)
	}
	return def, true, nil
}

func (s *Script) report(err error) {
	msg := err.Error()
	if s.reported[msg] {
		return
	}
	s.reported[msg] = true
	s.logger.Warn("blend script failed, using fallback", "script", s.Path, "err", err)
}

func definitionFromScript(m map[string]any) (camera.BlendDefinition, error) {
	if m == nil {
		return camera.BlendDefinition{}, fmt.Errorf("lookup must return a map or undefined")
	}

	name, _ := m["style"].(string)
	style, err := camera.ParseBlendStyle(strings.TrimSpace(name))
	if err != nil {
		return camera.BlendDefinition{}, err
	}

	var duration float32
	switch v := m["duration"].(type) {
	case nil:
	case int64:
		duration = float32(v)
	case float64:
		duration = float32(v)
	default:
		return camera.BlendDefinition{}, fmt.Errorf("duration must be a number, got %T", v)
	}
	if duration < 0 {
		return camera.BlendDefinition{}, fmt.Errorf("negative duration %v", duration)
	}

	return camera.BlendDefinition{Style: style, Duration: duration}, nil
}
