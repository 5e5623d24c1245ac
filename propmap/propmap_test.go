// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package propmap

import "testing"

type key struct{ i uint32 }

func keyIndex(k key) uint32  { return k.i }
func keyBuild(i uint32) key  { return key{i} }

func TestDenseInsertGetRemove(t *testing.T) {
	d := NewDense[key, string](keyIndex, keyBuild)

	d.Insert(key{0}, "a")
	d.Insert(key{2}, "c")

	if got, ok := d.Get(key{0}); !ok || got.Get() != "a" {
		t.Fatalf("Get(0) = %v, %v; want a, true", got, ok)
	}
	if _, ok := d.Get(key{1}); ok {
		t.Fatalf("Get(1) ok = true, want false")
	}
	if got := d.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}

	v, ok := d.Remove(key{0})
	if !ok || v != "a" {
		t.Fatalf("Remove(0) = %v, %v; want a, true", v, ok)
	}
	if got := d.Len(); got != 1 {
		t.Fatalf("Len() after remove = %d, want 1", got)
	}
}

func TestTinyOverflowsToHashMap(t *testing.T) {
	ti := NewTiny[key, int]()

	for i := uint32(0); i < 5; i++ {
		ti.Insert(key{i}, int(i)*10)
	}

	if got := ti.Len(); got != 5 {
		t.Fatalf("Len() = %d, want 5", got)
	}

	for i := uint32(0); i < 5; i++ {
		v, ok := ti.Get(key{i})
		if !ok || v.Get() != int(i)*10 {
			t.Errorf("Get(%d) = %v, %v; want %d, true", i, v.Get(), ok, int(i)*10)
		}
	}
}

func TestConstMapAlwaysPresent(t *testing.T) {
	c := NewConstMap[key, float64](1.5)

	v, ok := c.Get(key{999})
	if !ok || v.Get() != 1.5 {
		t.Fatalf("Get(999) = %v, %v; want 1.5, true", v.Get(), ok)
	}
}

func TestEmptyMapNeverPresent(t *testing.T) {
	var e EmptyMap[key, int]
	if _, ok := e.Get(key{0}); ok {
		t.Fatalf("Get(0) ok = true, want false")
	}
}

func TestFnMapDelegates(t *testing.T) {
	f := NewFnMap[key, int](func(k key) (int, bool) {
		if k.i == 3 {
			return 42, true
		}
		return 0, false
	})

	if v, ok := f.Get(key{3}); !ok || v.Get() != 42 {
		t.Fatalf("Get(3) = %v, %v; want 42, true", v.Get(), ok)
	}
	if _, ok := f.Get(key{4}); ok {
		t.Fatalf("Get(4) ok = true, want false")
	}
}

func TestMappedTransformsValue(t *testing.T) {
	d := NewDense[key, int32](keyIndex, keyBuild)
	d.Insert(key{0}, 7)

	m := NewMapped[key, int32, float64](d, func(v int32) float64 { return float64(v) * 2 })

	v, ok := m.Get(key{0})
	if !ok || v.Get() != 14 {
		t.Fatalf("Get(0) = %v, %v; want 14, true", v.Get(), ok)
	}
}
