package ecs

// storage is the type-erased view of a SparseSet the world keeps per kind.
type storage interface {
	has(e Entity) bool
	remove(e Entity) bool
	entities() []Entity
}

// SparseSet stores one component type densely, indexed by entity id.
type SparseSet[T any] struct {
	dense  []Entity
	values []*T
	sparse []int
}

func (s *SparseSet[T]) index(e Entity) (int, bool) {
	id := int(e.id())
	if id <= 0 || id > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.dense) || s.dense[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *SparseSet[T]) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *SparseSet[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

// set inserts or replaces the component for e.
func (s *SparseSet[T]) set(e Entity, v *T) {
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		return
	}
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	s.dense = append(s.dense, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.dense) - 1
}

// remove swaps the last element into the removed slot.
func (s *SparseSet[T]) remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.dense) - 1
	moved := s.dense[last]

	s.dense[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = idx

	s.values[last] = nil
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *SparseSet[T]) entities() []Entity {
	return s.dense
}

func (s *SparseSet[T]) Len() int {
	return len(s.dense)
}
