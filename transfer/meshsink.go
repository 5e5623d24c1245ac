// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/go-mesh/meshio/handle"
	"github.com/go-mesh/meshio/mesh"
	"github.com/go-mesh/meshio/propmap"
	"github.com/go-mesh/meshio/typedprop"
)

// MeshSink is the reference Sink implementation: topology goes into a
// mesh.Basic (usually also mesh.Tri and mesh.Adjacency), everything else —
// positions, normals, arbitrary named properties — goes into propmap
// stores keyed by the handles that mesh mints. Splitting storage this way
// mirrors §3's own separation between the mesh graph and its property
// maps.
type MeshSink struct {
	Mesh mesh.Basic
	Adj  mesh.Adjacency // non-nil iff Mesh implements it
	tri  mesh.Tri       // non-nil iff Mesh implements it

	Positions     propmap.PropStoreMut[handle.Vertex, [3]float64]
	VertexNormals propmap.PropStoreMut[handle.Vertex, [3]float64]
	FaceNormals   propmap.PropStoreMut[handle.Face, [3]float64]
	VertexProps   map[string]propmap.PropStoreMut[handle.Vertex, typedprop.Property]
	FaceProps     map[string]propmap.PropStoreMut[handle.Face, typedprop.Property]

	// PositionScalar is the scalar type the structured facade casts every
	// incoming position/normal component to (§4.1, §4.4). NewMeshSink
	// defaults it to F64, which never rejects a file since every scalar
	// type this package has widens losslessly into f64; callers that want
	// narrower in-memory precision (and the cast rejection that can come
	// with it, bounded by the reader's Fidelity) set it after construction.
	PositionScalar typedprop.ScalarType
}

// NewMeshSink wraps m, detecting its optional Adjacency/Tri capabilities.
func NewMeshSink(m mesh.Basic) *MeshSink {
	s := &MeshSink{
		Mesh:           m,
		Positions:      propmap.NewDense[handle.Vertex, [3]float64](vertexIndex, handle.NewVertex),
		VertexNormals:  propmap.NewDense[handle.Vertex, [3]float64](vertexIndex, handle.NewVertex),
		FaceNormals:    propmap.NewDense[handle.Face, [3]float64](faceIndex, handle.NewFace),
		VertexProps:    map[string]propmap.PropStoreMut[handle.Vertex, typedprop.Property]{},
		FaceProps:      map[string]propmap.PropStoreMut[handle.Face, typedprop.Property]{},
		PositionScalar: typedprop.F64,
	}
	if adj, ok := m.(mesh.Adjacency); ok {
		s.Adj = adj
	}
	if tri, ok := m.(mesh.Tri); ok {
		s.tri = tri
	}
	return s
}

// PositionScalarType implements Sink.
func (s *MeshSink) PositionScalarType() typedprop.ScalarType { return s.PositionScalar }

func vertexIndex(v handle.Vertex) uint32 { return v.Index() }
func faceIndex(f handle.Face) uint32     { return f.Index() }

// PrepareVertices implements Sink.
func (s *MeshSink) PrepareVertices(hint uint64) {
	s.Positions.Reserve(int(hint))
	s.VertexNormals.Reserve(int(hint))
}

// PrepareFaces implements Sink.
func (s *MeshSink) PrepareFaces(hint uint64) {
	s.FaceNormals.Reserve(int(hint))
}

// AddVertex implements Sink.
func (s *MeshSink) AddVertex() handle.Vertex { return s.Mesh.AddVertex() }

// AddFace implements Sink. A polygon handed to a triangle-only mesh is
// fan-triangulated here (§4.4); anything else goes straight to the
// underlying mesh's own AddFace.
func (s *MeshSink) AddFace(verts []handle.Vertex) ([]handle.Face, error) {
	if s.tri == nil || len(verts) <= 3 {
		if s.tri != nil && len(verts) == 3 {
			f, err := s.tri.AddTriangle(verts[0], verts[1], verts[2])
			if err != nil {
				return nil, err
			}
			return []handle.Face{f}, nil
		}
		f, err := s.Mesh.AddFace(verts)
		if err != nil {
			return nil, err
		}
		return []handle.Face{f}, nil
	}

	out := make([]handle.Face, 0, len(verts)-2)
	for i := 1; i < len(verts)-1; i++ {
		f, err := s.tri.AddTriangle(verts[0], verts[i], verts[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// SetVertexPosition implements Sink.
func (s *MeshSink) SetVertexPosition(v handle.Vertex, pos [3]float64) {
	s.Positions.Insert(v, pos)
}

// SetVertexNormal implements Sink.
func (s *MeshSink) SetVertexNormal(v handle.Vertex, n [3]float64) {
	s.VertexNormals.Insert(v, n)
}

// SetFaceNormal implements Sink.
func (s *MeshSink) SetFaceNormal(f handle.Face, n [3]float64) {
	s.FaceNormals.Insert(f, n)
}

// SetVertexProperty implements Sink, lazily creating a store for names seen
// for the first time.
func (s *MeshSink) SetVertexProperty(v handle.Vertex, name string, val typedprop.Property) {
	store, ok := s.VertexProps[name]
	if !ok {
		store = propmap.NewDense[handle.Vertex, typedprop.Property](vertexIndex, handle.NewVertex)
		s.VertexProps[name] = store
	}
	store.Insert(v, val)
}

// SetFaceProperty implements Sink.
func (s *MeshSink) SetFaceProperty(f handle.Face, name string, val typedprop.Property) {
	store, ok := s.FaceProps[name]
	if !ok {
		store = propmap.NewDense[handle.Face, typedprop.Property](faceIndex, handle.NewFace)
		s.FaceProps[name] = store
	}
	store.Insert(f, val)
}

// Finish implements Sink. SharedVertexMesh (the one mesh kind in scope,
// §1) needs no end-of-stream finalization.
func (s *MeshSink) Finish() error { return nil }

var _ Sink = (*MeshSink)(nil)
