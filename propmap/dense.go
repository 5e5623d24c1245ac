// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package propmap

// Indexer extracts the dense integer backing a handle, so Dense can work
// for any handle type without importing the handle package (which would
// otherwise create an import cycle with packages that build property maps
// over non-mesh handle-like keys in tests).
type Indexer[H comparable] func(H) uint32

// Builder reconstructs a handle from its dense integer index, the inverse
// of Indexer. Needed only to implement Handles().
type Builder[H comparable] func(uint32) H

// Dense is a PropStoreMut backed by a flat slice indexed by the handle's
// integer value. Preferred whenever handles are densely packed, as they are
// immediately after a sequential read: no hashing, no per-entry overhead.
type Dense[H comparable, T any] struct {
	index   Indexer[H]
	build   Builder[H]
	values  []T
	set     []bool
	count   int
}

// NewDense builds an empty Dense map using idx to recover a handle's integer
// index and build to reconstruct a handle for Handles().
func NewDense[H comparable, T any](idx Indexer[H], build Builder[H]) *Dense[H, T] {
	return &Dense[H, T]{index: idx, build: build}
}

func (d *Dense[H, T]) grow(n int) {
	if n < len(d.values) {
		return
	}
	values := make([]T, n+1)
	copy(values, d.values)
	set := make([]bool, n+1)
	copy(set, d.set)
	d.values = values
	d.set = set
}

// Get implements PropMap.
func (d *Dense[H, T]) Get(h H) (Value[T], bool) {
	i := int(d.index(h))
	if i >= len(d.set) || !d.set[i] {
		return Value[T]{}, false
	}
	return Borrowed(d.values[i]), true
}

// Ref implements PropStore.
func (d *Dense[H, T]) Ref(h H) (*T, bool) {
	i := int(d.index(h))
	if i >= len(d.set) || !d.set[i] {
		return nil, false
	}
	return &d.values[i], true
}

// Len implements PropStore.
func (d *Dense[H, T]) Len() int { return d.count }

// Handles implements PropStore.
func (d *Dense[H, T]) Handles() []H {
	out := make([]H, 0, d.count)
	for i, present := range d.set {
		if present {
			out = append(out, d.build(uint32(i)))
		}
	}
	return out
}

// Insert implements PropStoreMut.
func (d *Dense[H, T]) Insert(h H, value T) (T, bool) {
	i := int(d.index(h))
	d.grow(i)
	var prev T
	hadPrev := d.set[i]
	if hadPrev {
		prev = d.values[i]
	} else {
		d.count++
	}
	d.values[i] = value
	d.set[i] = true
	return prev, hadPrev
}

// Remove implements PropStoreMut.
func (d *Dense[H, T]) Remove(h H) (T, bool) {
	i := int(d.index(h))
	if i >= len(d.set) || !d.set[i] {
		var zero T
		return zero, false
	}
	v := d.values[i]
	var zero T
	d.values[i] = zero
	d.set[i] = false
	d.count--
	return v, true
}

// Clear implements PropStoreMut.
func (d *Dense[H, T]) Clear() {
	d.values = nil
	d.set = nil
	d.count = 0
}

// Reserve implements PropStoreMut.
func (d *Dense[H, T]) Reserve(n int) { d.grow(n) }
