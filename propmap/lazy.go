// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package propmap

// ConstMap, EmptyMap, FnMap and Mapped are computed PropMaps: they hold no
// storage of their own and therefore implement only PropMap, never
// PropStore, per the design note in §9 (a lazy adaptor must not claim
// enumeration or by-reference access it cannot provide cheaply).

// ConstMap returns the same value for every handle it is asked about.
type ConstMap[H comparable, T any] struct {
	v T
}

// NewConstMap builds a ConstMap returning v for any handle.
func NewConstMap[H comparable, T any](v T) ConstMap[H, T] { return ConstMap[H, T]{v: v} }

// Get implements PropMap.
func (c ConstMap[H, T]) Get(H) (Value[T], bool) { return Owned(c.v), true }

// EmptyMap never has a value for any handle. Useful as a zero-cost default
// where an optional property map is absent.
type EmptyMap[H comparable, T any] struct{}

// Get implements PropMap.
func (EmptyMap[H, T]) Get(H) (Value[T], bool) { return Value[T]{}, false }

// FnMap computes a value on demand by calling a user function, which itself
// reports presence.
type FnMap[H comparable, T any] struct {
	fn func(H) (T, bool)
}

// NewFnMap builds an FnMap backed by fn.
func NewFnMap[H comparable, T any](fn func(H) (T, bool)) FnMap[H, T] {
	return FnMap[H, T]{fn: fn}
}

// Get implements PropMap.
func (f FnMap[H, T]) Get(h H) (Value[T], bool) {
	v, ok := f.fn(h)
	if !ok {
		return Value[T]{}, false
	}
	return Owned(v), true
}

// Mapped lazily transforms the values of an underlying PropMap, e.g. to view
// a PropStore[H, int32] as a PropMap[H, float64].
type Mapped[H comparable, S, T any] struct {
	inner PropMap[H, S]
	fn    func(S) T
}

// NewMapped builds a Mapped view over inner using fn to transform values.
func NewMapped[H comparable, S, T any](inner PropMap[H, S], fn func(S) T) Mapped[H, S, T] {
	return Mapped[H, S, T]{inner: inner, fn: fn}
}

// Get implements PropMap.
func (m Mapped[H, S, T]) Get(h H) (Value[T], bool) {
	v, ok := m.inner.Get(h)
	if !ok {
		return Value[T]{}, false
	}
	return Owned(m.fn(v.Get())), true
}
