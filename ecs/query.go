package ecs

// intersect returns the entities present in every store, iterating the
// smallest one. A missing store yields nothing.
func intersect(stores ...storage) []Entity {
	if len(stores) == 0 {
		return nil
	}
	smallest := 0
	for i, s := range stores {
		if s == nil {
			return nil
		}
		if len(s.entities()) < len(stores[smallest].entities()) {
			smallest = i
		}
	}

	base := stores[smallest].entities()
	out := make([]Entity, 0, len(base))
outer:
	for _, e := range base {
		for i, s := range stores {
			if i != smallest && !s.has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}
