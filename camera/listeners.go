package camera

import "fmt"

// Listener is registered against a Dispatcher between Attach and Detach.
type Listener interface {
	Attach(d *Dispatcher)
	Detach()
}

type subscriptions []Subscription

func (s *subscriptions) add(sub Subscription) {
	*s = append(*s, sub)
}

func (s *subscriptions) cancelAll() {
	for _, sub := range *s {
		sub.Cancel()
	}
	*s = nil
}

// EventCallbacks are the optional handlers of CameraEvents and MixerEvents.
type EventCallbacks struct {
	OnActivated     func(CameraActivatedEvent)
	OnDeactivated   func(CameraDeactivatedEvent)
	OnBlendCreated  func(BlendCreatedEvent)
	OnBlendFinished func(BlendFinishedEvent)
	OnCut           func(CameraCutEvent)
}

func (c EventCallbacks) subscribe(d *Dispatcher, subs *subscriptions, keep func(origin Mixer, cam Camera) bool) {
	if c.OnActivated != nil {
		subs.add(d.OnCameraActivated(func(e CameraActivatedEvent) {
			if keep(e.Origin, e.Incoming) {
				c.OnActivated(e)
			}
		}))
	}
	if c.OnDeactivated != nil {
		subs.add(d.OnCameraDeactivated(func(e CameraDeactivatedEvent) {
			if keep(e.Origin, e.Outgoing) {
				c.OnDeactivated(e)
			}
		}))
	}
	if c.OnBlendCreated != nil {
		subs.add(d.OnBlendCreated(func(e BlendCreatedEvent) {
			if keep(e.Origin, e.Incoming) {
				c.OnBlendCreated(e)
			}
		}))
	}
	if c.OnBlendFinished != nil {
		subs.add(d.OnBlendFinished(func(e BlendFinishedEvent) {
			if keep(e.Origin, e.Camera) {
				c.OnBlendFinished(e)
			}
		}))
	}
	if c.OnCut != nil {
		subs.add(d.OnCameraCut(func(e CameraCutEvent) {
			if keep(e.Origin, e.Camera) {
				c.OnCut(e)
			}
		}))
	}
}

// CameraEvents calls back only for events about Target.
type CameraEvents struct {
	Target Camera
	EventCallbacks

	subs subscriptions
}

func (c *CameraEvents) Attach(d *Dispatcher) {
	c.Detach()
	c.EventCallbacks.subscribe(d, &c.subs, func(_ Mixer, cam Camera) bool {
		return cam != nil && cam == c.Target
	})
}

func (c *CameraEvents) Detach() {
	c.subs.cancelAll()
}

// MixerEvents calls back for events raised by Mixer, or by a mixer that is
// currently a live child of Mixer.
type MixerEvents struct {
	Mixer Mixer
	EventCallbacks

	subs subscriptions
}

func (c *MixerEvents) Attach(d *Dispatcher) {
	c.Detach()
	c.EventCallbacks.subscribe(d, &c.subs, func(origin Mixer, _ Camera) bool {
		if origin == nil || c.Mixer == nil {
			return false
		}
		if origin == c.Mixer {
			return true
		}
		return c.Mixer.IsLiveChild(origin)
	})
}

func (c *MixerEvents) Detach() {
	c.subs.cancelAll()
}

type EventKind string

const (
	EventActivated     EventKind = "activated"
	EventDeactivated   EventKind = "deactivated"
	EventBlendCreated  EventKind = "blend_created"
	EventBlendFinished EventKind = "blend_finished"
	EventCut           EventKind = "cut"
)

// EventRecord is one recorded lifecycle event.
type EventRecord struct {
	Kind   EventKind
	Camera string
	// Other is the outgoing camera for activations and blends.
	Other string
	Blend  string
}

func (r EventRecord) String() string {
	switch r.Kind {
	case EventActivated, EventBlendCreated:
		if r.Blend != "" {
			return fmt.Sprintf("%s %s <- %s (%s)", r.Kind, r.Camera, r.Other, r.Blend)
		}
		return fmt.Sprintf("%s %s <- %s", r.Kind, r.Camera, r.Other)
	}
	return fmt.Sprintf("%s %s", r.Kind, r.Camera)
}

// Recorder keeps the most recent events, up to Limit (unbounded when zero).
type Recorder struct {
	Limit   int
	Records []EventRecord

	subs subscriptions
}

func (r *Recorder) Attach(d *Dispatcher) {
	r.Detach()
	r.subs.add(d.OnCameraActivated(func(e CameraActivatedEvent) {
		blend := ""
		if e.IsCut {
			blend = "cut"
		}
		r.push(EventRecord{Kind: EventActivated, Camera: cameraName(e.Incoming), Other: cameraName(e.Outgoing), Blend: blend})
	}))
	r.subs.add(d.OnCameraDeactivated(func(e CameraDeactivatedEvent) {
		r.push(EventRecord{Kind: EventDeactivated, Camera: cameraName(e.Outgoing)})
	}))
	r.subs.add(d.OnBlendCreated(func(e BlendCreatedEvent) {
		r.push(EventRecord{Kind: EventBlendCreated, Camera: cameraName(e.Incoming), Other: cameraName(e.Outgoing), Blend: e.Blend.String()})
	}))
	r.subs.add(d.OnBlendFinished(func(e BlendFinishedEvent) {
		r.push(EventRecord{Kind: EventBlendFinished, Camera: cameraName(e.Camera)})
	}))
	r.subs.add(d.OnCameraCut(func(e CameraCutEvent) {
		r.push(EventRecord{Kind: EventCut, Camera: cameraName(e.Camera)})
	}))
}

func (r *Recorder) Detach() {
	r.subs.cancelAll()
}

func (r *Recorder) push(rec EventRecord) {
	r.Records = append(r.Records, rec)
	if r.Limit > 0 && len(r.Records) > r.Limit {
		r.Records = append(r.Records[:0], r.Records[len(r.Records)-r.Limit:]...)
	}
}

// Count returns how many recorded events are of kind, optionally about camera.
func (r *Recorder) Count(kind EventKind, camera string) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Kind == kind && (camera == "" || rec.Camera == camera) {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.Records = r.Records[:0]
}
