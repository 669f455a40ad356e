package ecs

import "github.com/milk9111/mercmech/ecs/component"

func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	return w.addComponent(e, kind.ID(), value)
}

func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.getComponent(e, kind.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	return cast, ok
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := w.getComponent(e, kind.ID())
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.removeComponent(e, kind.ID())
}

// First returns the first live entity holding kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	for _, id := range w.store(kind.ID(), false).ids() {
		if e, ok := w.entities.entity(id); ok {
			return e, true
		}
	}
	return 0, false
}

func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	store := w.store(kind.ID(), false)
	for _, id := range store.ids() {
		e, ok := w.entities.entity(id)
		if !ok {
			continue
		}
		if a, ok := get[T](store, id); ok {
			fn(e, a)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := w.store(ka.ID(), false), w.store(kb.ID(), false)
	for _, id := range smaller(sa, sb).ids() {
		e, ok := w.entities.entity(id)
		if !ok {
			continue
		}
		a, okA := get[A](sa, id)
		b, okB := get[B](sb, id)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := w.store(ka.ID(), false), w.store(kb.ID(), false), w.store(kc.ID(), false)
	for _, id := range smaller(smaller(sa, sb), sc).ids() {
		e, ok := w.entities.entity(id)
		if !ok {
			continue
		}
		a, okA := get[A](sa, id)
		b, okB := get[B](sb, id)
		c, okC := get[C](sc, id)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

func get[T any](s *SparseSet, id entityID) (*T, bool) {
	v, ok := s.Get(id)
	if !ok {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

func smaller(a, b *SparseSet) *SparseSet {
	if a.Len() <= b.Len() {
		return a
	}
	return b
}
