// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package transfer

import (
	"fmt"
	"io"

	"github.com/go-mesh/meshio/handle"
	"github.com/go-mesh/meshio/mesh"
	"github.com/go-mesh/meshio/ply"
	"github.com/go-mesh/meshio/propmap"
	"github.com/go-mesh/meshio/typedprop"
)

// ToPLY writes sink's mesh and attached property maps as a PLY file (§4.5):
// a "vertex" element for every live vertex handle in ascending handle
// order, carrying x,y,z and nx,ny,nz when positions/normals are present
// plus any custom vertex property; a "face" element with a
// vertex_indices connectivity list plus any custom face property. Writing
// faces requires sink.Mesh to implement mesh.Adjacency. Custom properties
// are taken from sink's VertexProps/FaceProps maps, so their order within
// an element is not defined.
func ToPLY(w io.Writer, opts ply.WriteOptions, sink *MeshSink) error {
	var elements []ply.ElementSpec

	verts := sink.Mesh.Vertices()
	if len(verts) > 0 {
		elements = append(elements, vertexElementSpec(verts, sink))
	}

	faces := sink.Mesh.Faces()
	if len(faces) > 0 {
		if sink.Adj == nil {
			return fmt.Errorf("transfer: mesh does not implement Adjacency, cannot write face connectivity")
		}
		elements = append(elements, faceElementSpec(faces, verts, sink))
	}

	return ply.Write(w, opts, elements)
}

func vertexElementSpec(verts []handle.Vertex, sink *MeshSink) ply.ElementSpec {
	es := ply.ElementSpec{Name: "vertex", Count: len(verts)}

	if sink.Positions.Len() > 0 {
		es.Attrs = append(es.Attrs,
			vec3ComponentAttr[handle.Vertex]{"x", 0, typedprop.F32, verts, sink.Positions},
			vec3ComponentAttr[handle.Vertex]{"y", 1, typedprop.F32, verts, sink.Positions},
			vec3ComponentAttr[handle.Vertex]{"z", 2, typedprop.F32, verts, sink.Positions},
		)
	}
	if sink.VertexNormals.Len() > 0 {
		es.Attrs = append(es.Attrs,
			vec3ComponentAttr[handle.Vertex]{"nx", 0, typedprop.F32, verts, sink.VertexNormals},
			vec3ComponentAttr[handle.Vertex]{"ny", 1, typedprop.F32, verts, sink.VertexNormals},
			vec3ComponentAttr[handle.Vertex]{"nz", 2, typedprop.F32, verts, sink.VertexNormals},
		)
	}
	for name, store := range sink.VertexProps {
		if typ, ok := firstType[handle.Vertex](store, verts); ok {
			es.Attrs = append(es.Attrs, propertyAttr[handle.Vertex]{name, typ, verts, store})
		}
	}
	return es
}

func faceElementSpec(faces []handle.Face, verts []handle.Vertex, sink *MeshSink) ply.ElementSpec {
	es := ply.ElementSpec{Name: "face", Count: len(faces)}
	es.Attrs = append(es.Attrs, faceIndicesAttr{sink.Adj, faces, buildVertexRecordIndex(verts)})
	for name, store := range sink.FaceProps {
		if typ, ok := firstType[handle.Face](store, faces); ok {
			es.Attrs = append(es.Attrs, propertyAttr[handle.Face]{name, typ, faces, store})
		}
	}
	return es
}

func buildVertexRecordIndex(verts []handle.Vertex) map[handle.Vertex]uint32 {
	m := make(map[handle.Vertex]uint32, len(verts))
	for i, v := range verts {
		m[v] = uint32(i)
	}
	return m
}

// firstType reports the runtime Type of any one value in store, used to
// pick the PLY property type for a custom property whose homogeneity is
// assumed, not enforced, by this package (the underlying typedprop.Property
// values themselves always carry a concrete type; nothing here mixes
// types across records).
func firstType[H comparable](store propmap.PropStore[H, typedprop.Property], handles []H) (typedprop.Type, bool) {
	for _, h := range handles {
		if v, ok := store.Get(h); ok {
			return v.Get().Type(), true
		}
	}
	return typedprop.Type{}, false
}

// vec3ComponentAttr adapts one component of a [3]float64-valued propmap
// store to a single scalar ply.AttrSource.
type vec3ComponentAttr[H comparable] struct {
	name      string
	component int
	scalar    typedprop.ScalarType
	handles   []H
	store     propmap.PropStore[H, [3]float64]
}

func (a vec3ComponentAttr[H]) Name() string         { return a.name }
func (a vec3ComponentAttr[H]) Type() typedprop.Type { return typedprop.Scalar(a.scalar) }
func (a vec3ComponentAttr[H]) Value(idx uint32) (typedprop.Property, bool) {
	v, ok := a.store.Get(a.handles[idx])
	if !ok {
		return typedprop.Property{}, false
	}
	c := v.Get()[a.component]
	if a.scalar == typedprop.F64 {
		return typedprop.NewF64(c), true
	}
	return typedprop.NewF32(float32(c)), true
}

// propertyAttr adapts a typedprop.Property-valued propmap store directly to
// ply.AttrSource, used for every custom (non-recognized) property name.
type propertyAttr[H comparable] struct {
	name    string
	typ     typedprop.Type
	handles []H
	store   propmap.PropStore[H, typedprop.Property]
}

func (a propertyAttr[H]) Name() string         { return a.name }
func (a propertyAttr[H]) Type() typedprop.Type { return a.typ }
func (a propertyAttr[H]) Value(idx uint32) (typedprop.Property, bool) {
	v, ok := a.store.Get(a.handles[idx])
	if !ok {
		return typedprop.Property{}, false
	}
	return v.Get(), true
}

// faceIndicesAttr emits each face's vertex_indices list, translating
// mesh-internal vertex handles to their position within the vertex
// element's record order.
type faceIndicesAttr struct {
	adj               mesh.Adjacency
	faces             []handle.Face
	vertexRecordIndex map[handle.Vertex]uint32
}

func (a faceIndicesAttr) Name() string { return "vertex_indices" }
func (a faceIndicesAttr) Type() typedprop.Type {
	return typedprop.List(typedprop.U8, typedprop.U32)
}
func (a faceIndicesAttr) Value(idx uint32) (typedprop.Property, bool) {
	verts, ok := a.adj.VerticesOfFace(a.faces[idx])
	if !ok {
		return typedprop.Property{}, false
	}
	out := make([]uint32, len(verts))
	for i, v := range verts {
		out[i] = a.vertexRecordIndex[v]
	}
	return typedprop.NewListU32(typedprop.U8, out), true
}
