package ecs

import "github.com/milk9111/camrig/ecs/component"

// World owns entities, component stores, and system order.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]storage
	scheduler Scheduler
	events    EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]storage)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its id. It reports
// false when e was not alive.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in id order.
func (w *World) Entities() []Entity {
	return w.entities.all()
}

// Query returns the entities that have every kind.
func (w *World) Query(kinds ...component.Kind) []Entity {
	stores := make([]storage, 0, len(kinds))
	for _, k := range kinds {
		stores = append(stores, w.stores[k.ID()])
	}
	return intersect(stores...)
}

// First returns any entity that has kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	s := w.stores[kind.ID()]
	if s == nil || len(s.entities()) == 0 {
		return 0, false
	}
	return s.entities()[0], true
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	w.scheduler.Add(s)
}

func (w *World) Systems() []System {
	return w.scheduler.Systems()
}

// Update clears last frame's events and runs all systems once.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.events.flush()
	w.scheduler.Update(w)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
