package main

import (
	"bytes"
	"testing"

	"github.com/milk9111/camrig/blendrules"
	"github.com/milk9111/camrig/camera"
	"github.com/milk9111/camrig/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type want struct {
	frame  int
	kind   camera.EventKind
	camera string
}

func TestEmbeddedTimeline(t *testing.T) {
	spec, err := prefabs.LoadTimelineSpec("timeline.yaml")
	require.NoError(t, err)
	lookup, err := blendrules.Build(spec.Blends, "", nil)
	require.NoError(t, err)

	var out bytes.Buffer
	lines, final, err := Run(spec, lookup, &out, false, nil)
	require.NoError(t, err)

	expected := []want{
		{0, camera.EventActivated, "chase"},
		{0, camera.EventCut, "chase"},
		{2, camera.EventActivated, "side"},
		{2, camera.EventBlendCreated, "side"},
		{4, camera.EventActivated, "overview"},
		{4, camera.EventBlendCreated, "overview"},
		{7, camera.EventDeactivated, "chase"},
		{15, camera.EventBlendFinished, "overview"},
		{15, camera.EventDeactivated, "side"},
		{24, camera.EventActivated, "chase"},
		{24, camera.EventBlendCreated, "chase"},
		{31, camera.EventBlendFinished, "chase"},
		{31, camera.EventDeactivated, "overview"},
	}
	require.Len(t, lines, len(expected), out.String())
	for i, w := range expected {
		assert.Equal(t, w.frame, lines[i].Frame, "line %d: %s", i, lines[i])
		assert.Equal(t, w.kind, lines[i].Record.Kind, "line %d: %s", i, lines[i])
		assert.Equal(t, w.camera, lines[i].Record.Camera, "line %d: %s", i, lines[i])
	}

	assert.Contains(t, lines[3].Record.Blend, "linear")
	assert.Contains(t, lines[5].Record.Blend, "ease_in_out")
	assert.Contains(t, lines[10].Record.Blend, "ease_out")
	assert.InDelta(t, 10, final.FinalPosition().Z(), 1e-4)
}

func TestTimelineSteps(t *testing.T) {
	spec := &prefabs.TimelineSpec{
		TickRate: 8,
		Duration: 1,
		Cameras: []prefabs.VirtualCameraSpec{
			{Name: "a"},
			{Name: "b"},
		},
		Steps: []prefabs.TimelineStepSpec{
			{At: 0, Activate: "a"},
			{At: 0.25, Activate: "b"},
			{At: 0.5, Destroy: "b"},
			{At: 0.75, Clear: true},
		},
	}
	lookup := camera.ConstantLookup(camera.BlendDefinition{Style: camera.Linear, Duration: 2})

	var out bytes.Buffer
	lines, _, err := Run(spec, lookup, &out, true, nil)
	require.NoError(t, err)

	kinds := make([]camera.EventKind, 0, len(lines))
	for _, l := range lines {
		kinds = append(kinds, l.Record.Kind)
	}
	assert.Equal(t, []camera.EventKind{
		camera.EventActivated, camera.EventCut,
		camera.EventActivated, camera.EventBlendCreated,
		camera.EventDeactivated,
		camera.EventDeactivated,
	}, kinds)
	assert.Equal(t, "b", lines[4].Record.Camera)
	assert.Equal(t, 4, lines[4].Frame)
	assert.Equal(t, "a", lines[5].Record.Camera)
	assert.Equal(t, 6, lines[5].Frame)
	assert.Contains(t, out.String(), "(none)")
}

func TestTimelineErrors(t *testing.T) {
	lookup := camera.CutLookup
	_, _, err := Run(&prefabs.TimelineSpec{TickRate: 8, Duration: 1, Cameras: []prefabs.VirtualCameraSpec{{Name: "a"}, {Name: "a"}}}, lookup, &bytes.Buffer{}, false, nil)
	assert.Error(t, err)

	_, _, err = Run(&prefabs.TimelineSpec{TickRate: 8, Duration: 1, Steps: []prefabs.TimelineStepSpec{{Activate: "ghost"}}}, lookup, &bytes.Buffer{}, false, nil)
	assert.Error(t, err)
}
