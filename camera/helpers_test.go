package camera

import (
	"io"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/camrig/common"
)

type testCamera struct {
	name  string
	state CameraState
	valid bool
}

func newTestCamera(name string, x float32) *testCamera {
	s := NewCameraState()
	s.RawPosition = mgl32.Vec3{x, 0, 0}
	return &testCamera{name: name, state: s, valid: true}
}

func (c *testCamera) Name() string       { return c.name }
func (c *testCamera) State() CameraState { return c.state }
func (c *testCamera) IsValid() bool      { return c.valid }

type testMixer struct {
	testCamera
	manager *BlendManager
}

func (m *testMixer) IsLiveChild(cam Camera) bool {
	return m.manager != nil && m.manager.IsLive(cam)
}

type harness struct {
	t     *testing.T
	m     *BlendManager
	mixer *testMixer
	rec   *Recorder
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newHarness(t *testing.T, lookup BlendLookup) *harness {
	t.Helper()
	m := NewBlendManager(lookup)
	m.SetLogger(quietLogger())
	mixer := &testMixer{testCamera: testCamera{name: "mixer", valid: true}, manager: m}
	rec := &Recorder{}
	rec.Attach(m.Events())
	t.Cleanup(rec.Detach)
	return &harness{t: t, m: m, mixer: mixer, rec: rec}
}

// frame runs one full update with desired as the active camera.
func (h *harness) frame(desired Camera, dt float32) CameraState {
	h.m.UpdateRootFrame(h.mixer, desired, common.WorldUp, dt)
	h.m.ComputeCurrentBlend()
	return h.m.ProcessActiveCamera(h.mixer, common.WorldUp, dt)
}

func (h *harness) frames(n int, desired Camera, dt float32) {
	for i := 0; i < n; i++ {
		h.frame(desired, dt)
	}
}

func (h *harness) count(kind EventKind) int {
	return h.rec.Count(kind, "")
}

func kinds(recs []EventRecord) []EventKind {
	out := make([]EventKind, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Kind)
	}
	return out
}
