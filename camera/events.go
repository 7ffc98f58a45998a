package camera

import (
	"log/slog"
)

// CameraActivatedEvent is raised when a camera becomes the active camera of a mixer.
type CameraActivatedEvent struct {
	Origin   Mixer
	Incoming Camera
	// Outgoing is nil on the first activation after a reset.
	Outgoing Camera
	IsCut    bool
}

// CameraDeactivatedEvent is raised when a camera stops contributing to the output.
type CameraDeactivatedEvent struct {
	Origin   Mixer
	Outgoing Camera
}

// BlendCreatedEvent is raised when a timed blend starts. Handlers may change
// Blend; the change is used from the same frame on.
type BlendCreatedEvent struct {
	Origin   Mixer
	Outgoing Camera
	Incoming Camera
	Blend    *BlendDefinition
}

// BlendFinishedEvent is raised when an uninterrupted blend into Camera completes.
type BlendFinishedEvent struct {
	Origin Mixer
	Camera Camera
}

// CameraCutEvent is raised when a camera is activated without a blend.
type CameraCutEvent struct {
	Origin Mixer
	Camera Camera
}

// Subscription unregisters a handler.
type Subscription struct {
	cancel func()
}

// Cancel unregisters the handler. Safe to call more than once.
func (s Subscription) Cancel() {
	if s.cancel != nil {
		s.cancel()
	}
}

type handlerEntry[E any] struct {
	id uint64
	fn func(E)
}

type signal[E any] struct {
	name     string
	handlers []handlerEntry[E]
}

func (s *signal[E]) subscribe(d *Dispatcher, fn func(E)) Subscription {
	if fn == nil {
		return Subscription{}
	}
	d.nextID++
	id := d.nextID
	s.handlers = append(s.handlers, handlerEntry[E]{id: id, fn: fn})
	return Subscription{cancel: func() { s.remove(id) }}
}

func (s *signal[E]) remove(id uint64) {
	for i, h := range s.handlers {
		if h.id == id {
			// copy so an emit in progress keeps iterating its own slice
			s.handlers = append(s.handlers[:i:i], s.handlers[i+1:]...)
			return
		}
	}
}

func (s *signal[E]) emit(log *slog.Logger, evt E) {
	for _, h := range s.handlers {
		call(log, s.name, h.fn, evt)
	}
}

func call[E any](log *slog.Logger, name string, fn func(E), evt E) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn("camera: event handler panicked", "event", name, "panic", r)
		}
	}()
	fn(evt)
}

// Dispatcher holds the listeners of one BlendManager. It is not safe for
// concurrent use; handlers run synchronously on the frame thread.
type Dispatcher struct {
	logger *slog.Logger
	nextID uint64

	activated   signal[CameraActivatedEvent]
	deactivated signal[CameraDeactivatedEvent]
	created     signal[BlendCreatedEvent]
	finished    signal[BlendFinishedEvent]
	cut         signal[CameraCutEvent]
}

// NewDispatcher creates a dispatcher that logs handler panics to logger
// (slog.Default when nil).
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		logger:      logger,
		activated:   signal[CameraActivatedEvent]{name: "camera_activated"},
		deactivated: signal[CameraDeactivatedEvent]{name: "camera_deactivated"},
		created:     signal[BlendCreatedEvent]{name: "blend_created"},
		finished:    signal[BlendFinishedEvent]{name: "blend_finished"},
		cut:         signal[CameraCutEvent]{name: "camera_cut"},
	}
}

func (d *Dispatcher) OnCameraActivated(fn func(CameraActivatedEvent)) Subscription {
	return d.activated.subscribe(d, fn)
}

func (d *Dispatcher) OnCameraDeactivated(fn func(CameraDeactivatedEvent)) Subscription {
	return d.deactivated.subscribe(d, fn)
}

func (d *Dispatcher) OnBlendCreated(fn func(BlendCreatedEvent)) Subscription {
	return d.created.subscribe(d, fn)
}

func (d *Dispatcher) OnBlendFinished(fn func(BlendFinishedEvent)) Subscription {
	return d.finished.subscribe(d, fn)
}

func (d *Dispatcher) OnCameraCut(fn func(CameraCutEvent)) Subscription {
	return d.cut.subscribe(d, fn)
}

func (d *Dispatcher) emitActivated(evt CameraActivatedEvent) {
	d.activated.emit(d.logger, evt)
}

func (d *Dispatcher) emitDeactivated(evt CameraDeactivatedEvent) {
	d.deactivated.emit(d.logger, evt)
}

func (d *Dispatcher) emitBlendCreated(evt BlendCreatedEvent) {
	d.created.emit(d.logger, evt)
}

func (d *Dispatcher) emitBlendFinished(evt BlendFinishedEvent) {
	d.finished.emit(d.logger, evt)
}

func (d *Dispatcher) emitCut(evt CameraCutEvent) {
	d.cut.emit(d.logger, evt)
}
