// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package propmap

// HashMap is a PropStoreMut backed by a Go map, for handle sets that are
// sparse or arrive out of order (e.g. properties attached after the mesh
// already has holes from removal).
type HashMap[H comparable, T any] struct {
	m map[H]T
}

// NewHashMap builds an empty HashMap.
func NewHashMap[H comparable, T any]() *HashMap[H, T] {
	return &HashMap[H, T]{m: make(map[H]T)}
}

// Get implements PropMap.
func (h *HashMap[H, T]) Get(k H) (Value[T], bool) {
	v, ok := h.m[k]
	if !ok {
		return Value[T]{}, false
	}
	return Borrowed(v), true
}

// Ref implements PropStore. Go maps don't allow taking the address of a
// value in place, so Ref copies the value into a fresh box and returns a
// pointer to the box; PropStore promises read access by reference, not
// write-through, so this satisfies the contract (use Insert to mutate).
func (h *HashMap[H, T]) Ref(k H) (*T, bool) {
	v, ok := h.m[k]
	if !ok {
		return nil, false
	}
	box := v
	return &box, true
}

// Len implements PropStore.
func (h *HashMap[H, T]) Len() int { return len(h.m) }

// Handles implements PropStore.
func (h *HashMap[H, T]) Handles() []H {
	out := make([]H, 0, len(h.m))
	for k := range h.m {
		out = append(out, k)
	}
	return out
}

// Insert implements PropStoreMut.
func (h *HashMap[H, T]) Insert(k H, value T) (T, bool) {
	prev, had := h.m[k]
	h.m[k] = value
	return prev, had
}

// Remove implements PropStoreMut.
func (h *HashMap[H, T]) Remove(k H) (T, bool) {
	prev, had := h.m[k]
	delete(h.m, k)
	return prev, had
}

// Clear implements PropStoreMut.
func (h *HashMap[H, T]) Clear() { h.m = make(map[H]T) }

// Reserve implements PropStoreMut.
func (h *HashMap[H, T]) Reserve(n int) {
	grown := make(map[H]T, len(h.m)+n)
	for k, v := range h.m {
		grown[k] = v
	}
	h.m = grown
}
