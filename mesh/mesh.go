// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package mesh defines the mesh data model of §3: a graph of vertices and
// faces exposed through a capability-set of small interfaces rather than
// one monolithic trait, per the Open Question resolution in §9 ("the
// broader capability set is the intended evolution"; the older
// single-trait-set SharedVertexMesh from the Rust original is not
// reproduced).
package mesh

import "github.com/go-mesh/meshio/handle"

// Basic is the capability every mesh exposes: enumeration and construction
// of vertices and faces.
type Basic interface {
	// NumVertices returns the number of live vertices.
	NumVertices() int
	// NumFaces returns the number of live faces.
	NumFaces() int
	// ContainsVertex reports whether v names a live vertex.
	ContainsVertex(v handle.Vertex) bool
	// ContainsFace reports whether f names a live face.
	ContainsFace(f handle.Face) bool
	// Vertices returns every live vertex handle, in ascending mint order.
	Vertices() []handle.Vertex
	// Faces returns every live face handle, in ascending mint order.
	Faces() []handle.Face

	// AddVertex mints a new vertex and returns its handle.
	AddVertex() handle.Vertex
	// AddFace mints a new face over the given (ordered) vertex handles,
	// which must each already be live and must not repeat. For a
	// triangle-only mesh this is only ever called with three handles; see
	// Tri for the specialized entry point.
	AddFace(verts []handle.Vertex) (handle.Face, error)
}

// Mutable adds removal to Basic. Every mesh in this repo supports removal;
// it is split out because some capability-set consumers (e.g. a streaming
// sink that only ever appends) never need it.
type Mutable interface {
	Basic

	// RemoveVertex removes v. It is an error to remove a vertex still
	// referenced by a live face.
	RemoveVertex(v handle.Vertex) error
	// RemoveFace removes f.
	RemoveFace(f handle.Face) error
}

// Adjacency is the minimal adjacency query every mesh in this repo supports:
// the ordered vertex list of a face.
type Adjacency interface {
	// VerticesOfFace returns the ordered vertex handles bounding f.
	VerticesOfFace(f handle.Face) ([]handle.Vertex, bool)
}

// Tri marks a mesh that enforces the triangle invariant (exactly three
// vertices per face) and offers a specialized constructor for it. A
// structured reader facade (§4.4) fan-triangulates polygonal input only
// when writing into a sink that also satisfies this interface.
type Tri interface {
	Basic

	// AddTriangle is equivalent to AddFace([]handle.Vertex{a, b, c}) but
	// avoids the slice allocation on the hot path of a PLY/STL read.
	AddTriangle(a, b, c handle.Vertex) (handle.Face, error)
}

// MultiBlade marks a mesh whose data structure tolerates a vertex shared by
// two or more otherwise-disconnected face fans (a "multi-blade" vertex).
// Its single method reports the capability; callers detect it with a type
// assertion on the concrete mesh.
type MultiBlade interface {
	SupportsMultiBladeVertices() bool
}
