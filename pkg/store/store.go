// Package store provides generation-tagged slot storage. Handles issued by
// a Store stay valid until the value they name is removed; after that they
// resolve to nothing, even when the slot has been reused.
package store

import (
	"fmt"
	"iter"
)

// Handle names a value in a Store[T]. The zero Handle is never issued and
// is used as "none" by callers.
type Handle[T any] struct {
	index      uint32
	generation uint32
}

// Index returns the backing slot index.
func (h Handle[T]) Index() uint32 {
	return h.index
}

// Generation returns the slot generation the handle was issued for.
func (h Handle[T]) Generation() uint32 {
	return h.generation
}

// IsZero reports whether h is the zero ("none") handle.
func (h Handle[T]) IsZero() bool {
	return h.generation == 0
}

func (h Handle[T]) String() string {
	if h.IsZero() {
		return "nil"
	}
	return fmt.Sprintf("%d:%d", h.index, h.generation)
}

type slot[T any] struct {
	value      T
	generation uint32
	occupied   bool
}

// Store is a slot arena with free-list reuse. It is not safe for
// concurrent use.
type Store[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// New returns an empty store.
func New[T any]() *Store[T] {
	return &Store[T]{}
}

// Insert stores v and returns its handle. Freed slots are reused before
// the store grows.
func (s *Store[T]) Insert(v T) Handle[T] {
	var index uint32
	if n := len(s.free); n > 0 {
		index = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		index = uint32(len(s.slots))
		s.slots = append(s.slots, slot[T]{generation: 1})
	}

	sl := &s.slots[index]
	sl.value = v
	sl.occupied = true
	s.live++
	return Handle[T]{index: index, generation: sl.generation}
}

// Get returns a copy of the value named by h.
func (s *Store[T]) Get(h Handle[T]) (T, bool) {
	if p := s.Ref(h); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Ref returns a pointer to the value named by h, or nil if h is stale or
// out of range. The pointer is invalidated by the next Insert.
func (s *Store[T]) Ref(h Handle[T]) *T {
	if h.IsZero() || h.index >= uint32(len(s.slots)) {
		return nil
	}
	sl := &s.slots[h.index]
	if !sl.occupied || sl.generation != h.generation {
		return nil
	}
	return &sl.value
}

// Contains reports whether h names a live value.
func (s *Store[T]) Contains(h Handle[T]) bool {
	return s.Ref(h) != nil
}

// Remove deletes the value named by h and returns it. The slot generation
// is bumped so h, and every copy of it, stops resolving.
func (s *Store[T]) Remove(h Handle[T]) (T, bool) {
	p := s.Ref(h)
	if p == nil {
		var zero T
		return zero, false
	}
	v := *p

	sl := &s.slots[h.index]
	var zero T
	sl.value = zero
	sl.occupied = false
	sl.generation++
	if sl.generation == 0 {
		// wrapped; skip the zero generation so the zero handle stays unissued
		sl.generation = 1
	}
	s.free = append(s.free, h.index)
	s.live--
	return v, true
}

// Len returns the number of live values.
func (s *Store[T]) Len() int {
	return s.live
}

// All yields every live handle with a pointer to its value, in slot order.
// The store must not be mutated while iterating.
func (s *Store[T]) All() iter.Seq2[Handle[T], *T] {
	return func(yield func(Handle[T], *T) bool) {
		for i := range s.slots {
			sl := &s.slots[i]
			if !sl.occupied {
				continue
			}
			if !yield(Handle[T]{index: uint32(i), generation: sl.generation}, &sl.value) {
				return
			}
		}
	}
}
