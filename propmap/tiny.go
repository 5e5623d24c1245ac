// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package propmap

// Tiny is a PropStoreMut optimized for one or two entries: a mesh corner
// case (a single pinned vertex, a single tagged face) doesn't deserve a map
// allocation. Beyond two entries it falls back to an internally-owned
// HashMap.
type Tiny[H comparable, T any] struct {
	k0, k1       H
	v0, v1       T
	has0, has1   bool
	overflow     *HashMap[H, T]
}

// NewTiny builds an empty Tiny map.
func NewTiny[H comparable, T any]() *Tiny[H, T] {
	return &Tiny[H, T]{}
}

// Get implements PropMap.
func (t *Tiny[H, T]) Get(h H) (Value[T], bool) {
	if t.has0 && t.k0 == h {
		return Borrowed(t.v0), true
	}
	if t.has1 && t.k1 == h {
		return Borrowed(t.v1), true
	}
	if t.overflow != nil {
		return t.overflow.Get(h)
	}
	return Value[T]{}, false
}

// Ref implements PropStore.
func (t *Tiny[H, T]) Ref(h H) (*T, bool) {
	if t.has0 && t.k0 == h {
		return &t.v0, true
	}
	if t.has1 && t.k1 == h {
		return &t.v1, true
	}
	if t.overflow != nil {
		return t.overflow.Ref(h)
	}
	return nil, false
}

// Len implements PropStore.
func (t *Tiny[H, T]) Len() int {
	n := 0
	if t.has0 {
		n++
	}
	if t.has1 {
		n++
	}
	if t.overflow != nil {
		n += t.overflow.Len()
	}
	return n
}

// Handles implements PropStore.
func (t *Tiny[H, T]) Handles() []H {
	out := make([]H, 0, t.Len())
	if t.has0 {
		out = append(out, t.k0)
	}
	if t.has1 {
		out = append(out, t.k1)
	}
	if t.overflow != nil {
		out = append(out, t.overflow.Handles()...)
	}
	return out
}

// Insert implements PropStoreMut.
func (t *Tiny[H, T]) Insert(h H, value T) (T, bool) {
	if t.has0 && t.k0 == h {
		prev := t.v0
		t.v0 = value
		return prev, true
	}
	if t.has1 && t.k1 == h {
		prev := t.v1
		t.v1 = value
		return prev, true
	}
	if t.overflow != nil {
		return t.overflow.Insert(h, value)
	}
	if !t.has0 {
		t.k0, t.v0, t.has0 = h, value, true
		var zero T
		return zero, false
	}
	if !t.has1 {
		t.k1, t.v1, t.has1 = h, value, true
		var zero T
		return zero, false
	}
	t.overflow = NewHashMap[H, T]()
	t.overflow.Insert(h, value)
	var zero T
	return zero, false
}

// Remove implements PropStoreMut.
func (t *Tiny[H, T]) Remove(h H) (T, bool) {
	if t.has0 && t.k0 == h {
		v := t.v0
		t.has0 = false
		var zero T
		t.v0 = zero
		return v, true
	}
	if t.has1 && t.k1 == h {
		v := t.v1
		t.has1 = false
		var zero T
		t.v1 = zero
		return v, true
	}
	if t.overflow != nil {
		return t.overflow.Remove(h)
	}
	var zero T
	return zero, false
}

// Clear implements PropStoreMut.
func (t *Tiny[H, T]) Clear() {
	var zeroH H
	var zeroT T
	t.k0, t.v0, t.has0 = zeroH, zeroT, false
	t.k1, t.v1, t.has1 = zeroH, zeroT, false
	t.overflow = nil
}

// Reserve implements PropStoreMut. Tiny has no bulk allocation to hint;
// reserving more than two entries eagerly creates the overflow map.
func (t *Tiny[H, T]) Reserve(n int) {
	if n > 2 && t.overflow == nil {
		t.overflow = NewHashMap[H, T]()
	}
	if t.overflow != nil {
		t.overflow.Reserve(n)
	}
}
