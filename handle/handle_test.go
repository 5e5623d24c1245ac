// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package handle

import "testing"

func TestOptionVertexSentinel(t *testing.T) {
	tests := []struct {
		name string
		in   OptionVertex
		want bool
	}{
		{"empty", NoVertex, false},
		{"zero handle is some", SomeVertex(NewVertex(0)), true},
		{"max raw index is some", SomeVertex(NewVertex(1<<32 - 2)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.IsSome()
			if got != tt.want {
				t.Errorf("IsSome() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOptionVertexGet(t *testing.T) {
	v := NewVertex(42)
	opt := SomeVertex(v)

	got, ok := opt.Get()
	if !ok {
		t.Fatalf("Get() ok = false, want true")
	}
	if got.Index() != 42 {
		t.Errorf("Get() index = %d, want 42", got.Index())
	}

	if _, ok := NoVertex.Get(); ok {
		t.Errorf("NoVertex.Get() ok = true, want false")
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		in   Kind
		want string
	}{
		{KindVertex, "vertex"},
		{KindFace, "face"},
		{KindEdge, "edge"},
	}

	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}
