// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package propmap implements the associative storage from mesh handles to
// typed values, at the three refinement levels named in §3: PropMap
// (read-only, possibly computed), PropStore (storage, by-reference access
// and enumeration) and PropStoreMut (mutable storage). Several back-ends
// are provided; lazy adaptors (ConstMap, FnMap, a mapped view) deliberately
// implement only PropMap, never PropStore, per the design note in §9.
package propmap

// Value is a small sum type distinguishing a value a PropMap computed on the
// spot from one that lives in storage and was handed back by reference.
// Get() returns a copy of the value either way; IsBorrowed reports which
// kind it was. By-reference access into storage is PropStore.Ref.
type Value[T any] struct {
	v        T
	borrowed bool
}

// Owned wraps a freshly computed value.
func Owned[T any](v T) Value[T] { return Value[T]{v: v} }

// Borrowed wraps a value that aliases storage.
func Borrowed[T any](v T) Value[T] { return Value[T]{v: v, borrowed: true} }

// Get returns the underlying value regardless of provenance.
func (v Value[T]) Get() T { return v.v }

// IsBorrowed reports whether the value aliases map storage rather than
// having been computed fresh.
func (v Value[T]) IsBorrowed() bool { return v.borrowed }

// PropMap is a read-only, possibly-computed partial mapping from handles of
// kind H to values of type T.
type PropMap[H comparable, T any] interface {
	// Get returns the value associated with h, if any.
	Get(h H) (Value[T], bool)
}

// PropStore refines PropMap with storage guarantees: by-reference access,
// element count, and enumeration of the handles present.
type PropStore[H comparable, T any] interface {
	PropMap[H, T]

	// Ref returns a pointer into storage for h, if present.
	Ref(h H) (*T, bool)

	// Len returns the number of handles with an associated value.
	Len() int

	// Handles returns every handle currently stored, in an
	// implementation-defined but stable-for-the-call order.
	Handles() []H
}

// PropStoreMut refines PropStore with mutation.
type PropStoreMut[H comparable, T any] interface {
	PropStore[H, T]

	// Insert associates value with h, returning the previous value if any.
	Insert(h H, value T) (T, bool)

	// Remove drops the association for h, returning the removed value if
	// any.
	Remove(h H) (T, bool)

	// Clear drops every association.
	Clear()

	// Reserve hints that at least n additional entries will be inserted.
	Reserve(n int)
}
