package ecs

import (
	"fmt"

	"github.com/milk9111/mercmech/ecs/component"
)

// World owns entities and their component stores.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity drops the entity and every component attached to it.
func DestroyEntity(w *World, e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, store := range w.stores {
		store.Remove(e.id())
	}
	return true
}

func IsAlive(w *World, e Entity) bool {
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	return w.entities.all()
}

func (w *World) Events() *EventQueue {
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}

func (w *World) addComponent(e Entity, id component.ComponentID, value any) error {
	if !w.entities.isAlive(e) {
		return fmt.Errorf("%w: add %s to %v", component.ErrEntityNotAlive, component.NameOf(id), e)
	}
	w.store(id, true).Set(e.id(), value)
	return nil
}

func (w *World) getComponent(e Entity, id component.ComponentID) (any, bool) {
	if !w.entities.isAlive(e) {
		return nil, false
	}
	return w.store(id, false).Get(e.id())
}

func (w *World) removeComponent(e Entity, id component.ComponentID) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	return w.store(id, false).Remove(e.id())
}
