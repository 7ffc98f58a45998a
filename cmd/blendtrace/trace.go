package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/milk9111/camrig/camera"
	"github.com/milk9111/camrig/ecs"
	"github.com/milk9111/camrig/ecs/component"
	"github.com/milk9111/camrig/ecs/entity"
	"github.com/milk9111/camrig/ecs/system"
	"github.com/milk9111/camrig/prefabs"
)

// TraceLine is one camera event and the simulated time it happened at.
type TraceLine struct {
	Frame  int
	Time   float32
	Record camera.EventRecord
}

func (l TraceLine) String() string {
	return fmt.Sprintf("%4d t=%6.3f %s", l.Frame, l.Time, l.Record)
}

type tracer struct {
	world   *ecs.World
	brain   *system.BrainSystem
	cameras map[string]ecs.Entity
	log     *slog.Logger
}

// Run replays spec through a brain using lookup and writes one line per
// event to out. verbose adds the blend description of every frame.
func Run(spec *prefabs.TimelineSpec, lookup camera.BlendLookup, out io.Writer, verbose bool, logger *slog.Logger) ([]TraceLine, camera.CameraState, error) {
	if logger == nil {
		logger = slog.Default()
	}
	t := &tracer{world: ecs.NewWorld(), cameras: make(map[string]ecs.Entity), log: logger}

	for _, cs := range spec.Cameras {
		if _, dup := t.cameras[cs.Name]; dup {
			return nil, camera.CameraState{}, fmt.Errorf("timeline: duplicate camera %q", cs.Name)
		}
		e, err := entity.NewVirtualCamera(t.world, cs)
		if err != nil {
			return nil, camera.CameraState{}, err
		}
		t.cameras[cs.Name] = e
	}

	dt := 1 / spec.TickRate
	t.brain = system.NewBrainSystem(lookup, dt, logger)
	t.world.AddSystem(system.NewVirtualCameraSystem())
	t.world.AddSystem(t.brain)

	rec := &camera.Recorder{}
	rec.Attach(t.brain.Events())
	defer rec.Detach()

	frames := int(math.Ceil(float64(spec.Duration / dt)))
	var lines []TraceLine
	next := 0
	for frame := 0; frame < frames; frame++ {
		now := float32(frame) * dt
		for next < len(spec.Steps) && spec.Steps[next].At <= now+dt/1000 {
			if err := t.apply(spec.Steps[next]); err != nil {
				return lines, t.brain.State(), fmt.Errorf("timeline: step at %.3fs: %w", spec.Steps[next].At, err)
			}
			next++
		}

		t.world.Update()

		for _, r := range rec.Records {
			line := TraceLine{Frame: frame, Time: now, Record: r}
			lines = append(lines, line)
			fmt.Fprintln(out, line)
		}
		rec.Reset()

		if verbose {
			fmt.Fprintf(out, "%4d t=%6.3f   %s\n", frame, now, t.brain.Manager.Description())
		}
	}
	return lines, t.brain.State(), nil
}

func (t *tracer) apply(step prefabs.TimelineStepSpec) error {
	if step.Reset {
		t.log.Debug("timeline: reset")
		t.brain.Reset()
	}
	if step.Clear {
		ecs.ForEach(t.world, component.VirtualCameraComponent.Kind(), func(_ ecs.Entity, vc *component.VirtualCamera) {
			vc.Enabled = false
		})
	}
	if step.Destroy != "" {
		e, ok := t.cameras[step.Destroy]
		if !ok {
			return fmt.Errorf("unknown camera %q", step.Destroy)
		}
		t.world.DestroyEntity(e)
	}
	if step.Activate != "" {
		e, ok := t.cameras[step.Activate]
		if !ok {
			return fmt.Errorf("unknown camera %q", step.Activate)
		}
		if !entity.Prioritize(t.world, e) {
			return fmt.Errorf("camera %q was destroyed", step.Activate)
		}
	}
	return nil
}
