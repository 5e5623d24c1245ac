// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"

	"github.com/go-mesh/meshio/handle"
)

// SharedVertexMesh is the one reference mesh kind in scope for this repo
// (§1): a triangle mesh where faces reference shared vertex handles, with
// handles minted monotonically and never reused (§3 Lifecycle). It
// implements Basic, Mutable, Adjacency and Tri.
type SharedVertexMesh struct {
	vertexAlive []bool
	faceVerts   [][3]handle.Vertex
	faceAlive   []bool
	numVerts    int
	numFaces    int
}

// NewSharedVertexMesh builds an empty mesh.
func NewSharedVertexMesh() *SharedVertexMesh {
	return &SharedVertexMesh{}
}

// NumVertices implements Basic.
func (m *SharedVertexMesh) NumVertices() int { return m.numVerts }

// NumFaces implements Basic.
func (m *SharedVertexMesh) NumFaces() int { return m.numFaces }

// ContainsVertex implements Basic.
func (m *SharedVertexMesh) ContainsVertex(v handle.Vertex) bool {
	i := int(v.Index())
	return i >= 0 && i < len(m.vertexAlive) && m.vertexAlive[i]
}

// ContainsFace implements Basic.
func (m *SharedVertexMesh) ContainsFace(f handle.Face) bool {
	i := int(f.Index())
	return i >= 0 && i < len(m.faceAlive) && m.faceAlive[i]
}

// Vertices implements Basic.
func (m *SharedVertexMesh) Vertices() []handle.Vertex {
	out := make([]handle.Vertex, 0, m.numVerts)
	for i, alive := range m.vertexAlive {
		if alive {
			out = append(out, handle.NewVertex(uint32(i)))
		}
	}
	return out
}

// Faces implements Basic.
func (m *SharedVertexMesh) Faces() []handle.Face {
	out := make([]handle.Face, 0, m.numFaces)
	for i, alive := range m.faceAlive {
		if alive {
			out = append(out, handle.NewFace(uint32(i)))
		}
	}
	return out
}

// AddVertex implements Basic.
func (m *SharedVertexMesh) AddVertex() handle.Vertex {
	idx := uint32(len(m.vertexAlive))
	m.vertexAlive = append(m.vertexAlive, true)
	m.numVerts++
	return handle.NewVertex(idx)
}

// AddFace implements Basic. For SharedVertexMesh verts must have length 3;
// use AddTriangle to avoid the slice allocation.
func (m *SharedVertexMesh) AddFace(verts []handle.Vertex) (handle.Face, error) {
	if len(verts) != 3 {
		return handle.Face{}, fmt.Errorf(
			"mesh: SharedVertexMesh only accepts triangular faces, got %d vertices", len(verts))
	}
	return m.AddTriangle(verts[0], verts[1], verts[2])
}

// AddTriangle implements Tri.
func (m *SharedVertexMesh) AddTriangle(a, b, c handle.Vertex) (handle.Face, error) {
	if err := m.checkFaceVertices(a, b, c); err != nil {
		return handle.Face{}, err
	}

	idx := uint32(len(m.faceAlive))
	m.faceVerts = append(m.faceVerts, [3]handle.Vertex{a, b, c})
	m.faceAlive = append(m.faceAlive, true)
	m.numFaces++
	return handle.NewFace(idx), nil
}

func (m *SharedVertexMesh) checkFaceVertices(a, b, c handle.Vertex) error {
	if a == b || b == c || a == c {
		return fmt.Errorf("mesh: face vertex list has a repeated vertex")
	}
	for _, v := range [3]handle.Vertex{a, b, c} {
		if !m.ContainsVertex(v) {
			return fmt.Errorf("mesh: face references %s which does not exist", v)
		}
	}
	return nil
}

// VerticesOfFace implements Adjacency.
func (m *SharedVertexMesh) VerticesOfFace(f handle.Face) ([]handle.Vertex, bool) {
	i := int(f.Index())
	if i < 0 || i >= len(m.faceAlive) || !m.faceAlive[i] {
		return nil, false
	}
	tri := m.faceVerts[i]
	return []handle.Vertex{tri[0], tri[1], tri[2]}, true
}

// RemoveFace implements Mutable.
func (m *SharedVertexMesh) RemoveFace(f handle.Face) error {
	i := int(f.Index())
	if i < 0 || i >= len(m.faceAlive) || !m.faceAlive[i] {
		return fmt.Errorf("mesh: %s does not exist", f)
	}
	m.faceAlive[i] = false
	m.numFaces--
	return nil
}

// RemoveVertex implements Mutable. Per §3's Lifecycle invariant, removing
// the last vertices requires the face set to already be empty.
func (m *SharedVertexMesh) RemoveVertex(v handle.Vertex) error {
	i := int(v.Index())
	if i < 0 || i >= len(m.vertexAlive) || !m.vertexAlive[i] {
		return fmt.Errorf("mesh: %s does not exist", v)
	}
	if m.numFaces > 0 {
		for i, tri := range m.faceVerts {
			if !m.faceAlive[i] {
				continue
			}
			if tri[0] == v || tri[1] == v || tri[2] == v {
				return fmt.Errorf("mesh: cannot remove %s, still referenced by a face", v)
			}
		}
	}
	m.vertexAlive[i] = false
	m.numVerts--
	return nil
}

// SupportsMultiBladeVertices implements MultiBlade: SharedVertexMesh stores
// faces independently of any per-vertex fan structure, so a vertex shared by
// disconnected fans is representationally fine.
func (m *SharedVertexMesh) SupportsMultiBladeVertices() bool { return true }

var (
	_ Basic      = (*SharedVertexMesh)(nil)
	_ Mutable    = (*SharedVertexMesh)(nil)
	_ Adjacency  = (*SharedVertexMesh)(nil)
	_ Tri        = (*SharedVertexMesh)(nil)
	_ MultiBlade = (*SharedVertexMesh)(nil)
)
