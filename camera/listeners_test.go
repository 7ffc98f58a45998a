package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCameraEventsOnlySeesTarget(t *testing.T) {
	h := newHarness(t, ConstantLookup(oneSecond))
	c1, c2 := newTestCamera("c1", 0), newTestCamera("c2", 10)

	var activated, finished, deactivated int
	listener := &CameraEvents{
		Target: c2,
		EventCallbacks: EventCallbacks{
			OnActivated:     func(CameraActivatedEvent) { activated++ },
			OnBlendFinished: func(BlendFinishedEvent) { finished++ },
			OnDeactivated:   func(CameraDeactivatedEvent) { deactivated++ },
		},
	}
	listener.Attach(h.m.Events())

	h.frame(c1, dt)
	assert.Equal(t, 0, activated)

	h.frames(8, c2, dt)
	assert.Equal(t, 1, activated)
	assert.Equal(t, 1, finished)
	assert.Equal(t, 0, deactivated, "c1 deactivation is not about c2")

	listener.Detach()
	h.frame(c1, dt)
	h.frames(8, c1, dt)
	assert.Equal(t, 0, deactivated, "detached listener must not be called")
	assert.Equal(t, 1, h.rec.Count(EventDeactivated, "c2"))
}

func TestAttachTwiceDoesNotDoubleSubscribe(t *testing.T) {
	h := newHarness(t, nil)
	calls := 0
	listener := &CameraEvents{Target: nil, EventCallbacks: EventCallbacks{
		OnCut: func(CameraCutEvent) { calls++ },
	}}
	c1 := newTestCamera("c1", 0)
	listener.Target = c1
	listener.Attach(h.m.Events())
	listener.Attach(h.m.Events())
	defer listener.Detach()

	h.frame(c1, dt)
	assert.Equal(t, 1, calls)
}

func TestMixerEventsScopesToMixerAndLiveChildren(t *testing.T) {
	h := newHarness(t, ConstantLookup(oneSecond))
	c1 := newTestCamera("c1", 0)

	other := &testMixer{testCamera: testCamera{name: "other", valid: true}}
	parent := &testMixer{testCamera: testCamera{name: "parent", valid: true}}

	var forParent, forOther int
	parentEvents := &MixerEvents{Mixer: parent, EventCallbacks: EventCallbacks{
		OnActivated: func(CameraActivatedEvent) { forParent++ },
	}}
	otherEvents := &MixerEvents{Mixer: other, EventCallbacks: EventCallbacks{
		OnActivated: func(CameraActivatedEvent) { forOther++ },
	}}
	parentEvents.Attach(h.m.Events())
	otherEvents.Attach(h.m.Events())
	defer parentEvents.Detach()
	defer otherEvents.Detach()

	// parent's own manager has the harness mixer live
	parent.manager = NewBlendManager(nil)
	parent.manager.SetLogger(quietLogger())
	parent.manager.UpdateRootFrame(parent, h.mixer, h.mixer.state.ReferenceUp, dt)
	parent.manager.ComputeCurrentBlend()

	h.frame(c1, dt)
	assert.Equal(t, 1, forParent)
	assert.Equal(t, 0, forOther)
}

func TestRecorderLimit(t *testing.T) {
	r := &Recorder{Limit: 2}
	r.push(EventRecord{Kind: EventActivated, Camera: "a"})
	r.push(EventRecord{Kind: EventCut, Camera: "a"})
	r.push(EventRecord{Kind: EventDeactivated, Camera: "a"})
	assert.Equal(t, []EventRecord{
		{Kind: EventCut, Camera: "a"},
		{Kind: EventDeactivated, Camera: "a"},
	}, r.Records)
	assert.Equal(t, "deactivated a", r.Records[1].String())
}

func TestSubscriptionCancelIsIdempotent(t *testing.T) {
	d := NewDispatcher(quietLogger())
	n := 0
	sub := d.OnCameraCut(func(CameraCutEvent) { n++ })
	d.emitCut(CameraCutEvent{})
	sub.Cancel()
	sub.Cancel()
	d.emitCut(CameraCutEvent{})
	assert.Equal(t, 1, n)
	Subscription{}.Cancel()
}
