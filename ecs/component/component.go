package component

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID selects the sparse set a component type lives in. Ids are
// handed out once per process, starting at 1.
type ComponentID uint32

var (
	nextComponentID atomic.Uint32

	namesMu sync.RWMutex
	names   = map[ComponentID]string{}
)

type ComponentKind[T any] struct {
	id ComponentID
}

func NewComponentKind[T any]() ComponentKind[T] {
	id := ComponentID(nextComponentID.Add(1))
	var zero T
	name := strings.TrimPrefix(fmt.Sprintf("%T", zero), "component.")

	namesMu.Lock()
	names[id] = name
	namesMu.Unlock()
	return ComponentKind[T]{id: id}
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

func (k ComponentKind[T]) String() string {
	return NameOf(k.id)
}

// NameOf returns the Go type name a component id was registered with.
func NameOf(id ComponentID) string {
	namesMu.RLock()
	name, ok := names[id]
	namesMu.RUnlock()
	if !ok {
		return "component#" + strconv.FormatUint(uint64(id), 10)
	}
	return name
}

// ComponentHandle is the package-level value each component file exports,
// e.g. MechComponent.Kind().
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: NewComponentKind[T]()}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
