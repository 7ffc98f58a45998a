package ecs

import (
	"fmt"

	"github.com/milk9111/camrig/ecs/component"
)

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}

func storeOf[T any](w *World, kind component.ComponentKind[T], create bool) *SparseSet[T] {
	if s, ok := w.stores[kind.ID()]; ok {
		return s.(*SparseSet[T])
	}
	if !create {
		return nil
	}
	s := &SparseSet[T]{}
	w.stores[kind.ID()] = s
	return s
}

// Add attaches value to e, replacing any existing component of that kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("add component to %s: %w", e, component.ErrEntityNotAlive)
	}
	storeOf(w, kind, true).set(e, value)
	return nil
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	s := storeOf(w, kind, false)
	if s == nil {
		return nil, false
	}
	return s.get(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := storeOf(w, kind, false)
	return s != nil && s.has(e)
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s := storeOf(w, kind, false)
	return s != nil && s.remove(e)
}

// ForEach visits every entity with kind. fn must not add or remove
// components of kind.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	s := storeOf(w, kind, false)
	if s == nil {
		return
	}
	for i := 0; i < len(s.dense); i++ {
		fn(s.dense[i], s.values[i])
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := storeOf(w, ka, false), storeOf(w, kb, false)
	if sa == nil || sb == nil {
		return
	}
	for _, e := range intersect(sa, sb) {
		a, _ := sa.get(e)
		b, _ := sb.get(e)
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeOf(w, ka, false), storeOf(w, kb, false), storeOf(w, kc, false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, e := range intersect(sa, sb, sc) {
		a, _ := sa.get(e)
		b, _ := sb.get(e)
		c, _ := sc.get(e)
		fn(e, a, b, c)
	}
}
