// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package mesh

import "testing"

func TestAddTriangleRejectsRepeatedVertex(t *testing.T) {
	m := NewSharedVertexMesh()
	a := m.AddVertex()
	b := m.AddVertex()

	if _, err := m.AddTriangle(a, a, b); err == nil {
		t.Fatalf("AddTriangle(a, a, b) err = nil, want error")
	}
}

func TestAddTriangleRejectsMissingVertex(t *testing.T) {
	m := NewSharedVertexMesh()
	a := m.AddVertex()
	b := m.AddVertex()
	c := m.AddVertex()
	m2 := NewSharedVertexMesh()
	for i := 0; i < 3; i++ {
		m2.AddVertex()
	}
	foreign := m2.AddVertex() // index 3: no vertex of m has it

	if _, err := m.AddTriangle(a, b, foreign); err == nil {
		t.Fatalf("AddTriangle with foreign vertex err = nil, want error")
	}
	_ = c
}

func TestFaceVertexClosure(t *testing.T) {
	m := NewSharedVertexMesh()
	a := m.AddVertex()
	b := m.AddVertex()
	c := m.AddVertex()

	f, err := m.AddTriangle(a, b, c)
	if err != nil {
		t.Fatalf("AddTriangle() err = %v", err)
	}

	verts, ok := m.VerticesOfFace(f)
	if !ok {
		t.Fatalf("VerticesOfFace(%s) ok = false", f)
	}
	for _, v := range verts {
		if !m.ContainsVertex(v) {
			t.Errorf("face vertex %s not contained in mesh", v)
		}
	}
}

func TestRemoveVertexRequiresEmptyFaces(t *testing.T) {
	m := NewSharedVertexMesh()
	a := m.AddVertex()
	b := m.AddVertex()
	c := m.AddVertex()
	f, _ := m.AddTriangle(a, b, c)

	if err := m.RemoveVertex(a); err == nil {
		t.Fatalf("RemoveVertex(a) err = nil while still referenced, want error")
	}

	if err := m.RemoveFace(f); err != nil {
		t.Fatalf("RemoveFace() err = %v", err)
	}
	if err := m.RemoveVertex(a); err != nil {
		t.Errorf("RemoveVertex(a) after face removal err = %v, want nil", err)
	}
}

func TestHandlesMintedMonotonically(t *testing.T) {
	m := NewSharedVertexMesh()
	for i := uint32(0); i < 5; i++ {
		v := m.AddVertex()
		if v.Index() != i {
			t.Errorf("vertex %d got index %d, want %d", i, v.Index(), i)
		}
	}
}
