// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package handle defines the opaque, typed integer identifiers used to
// address mesh elements. Handles carry no back-pointer into the mesh that
// minted them; they are plain comparable values.
package handle

import "fmt"

// invalidIndex is the sentinel reserved to mean "no handle". It occupies the
// same bit pattern a handle's index can never legitimately take, so an
// OptionHandle needs no extra tag byte.
const invalidIndex uint32 = 1<<32 - 1

// Kind tags which element set a handle indexes into.
type Kind uint8

// The three element kinds a mesh may expose.
const (
	KindVertex Kind = iota
	KindFace
	KindEdge
)

func (k Kind) String() string {
	switch k {
	case KindVertex:
		return "vertex"
	case KindFace:
		return "face"
	case KindEdge:
		return "edge"
	default:
		return "unknown"
	}
}

// Vertex identifies a vertex within a mesh.
type Vertex struct{ idx uint32 }

// Face identifies a face within a mesh.
type Face struct{ idx uint32 }

// Edge identifies an edge within a mesh.
type Edge struct{ idx uint32 }

// NewVertex wraps a raw index as a Vertex handle.
func NewVertex(idx uint32) Vertex { return Vertex{idx} }

// NewFace wraps a raw index as a Face handle.
func NewFace(idx uint32) Face { return Face{idx} }

// NewEdge wraps a raw index as an Edge handle.
func NewEdge(idx uint32) Edge { return Edge{idx} }

// Index returns the raw integer backing the handle.
func (v Vertex) Index() uint32 { return v.idx }

// Index returns the raw integer backing the handle.
func (f Face) Index() uint32 { return f.idx }

// Index returns the raw integer backing the handle.
func (e Edge) Index() uint32 { return e.idx }

func (v Vertex) String() string { return fmt.Sprintf("VertexHandle(%d)", v.idx) }
func (f Face) String() string   { return fmt.Sprintf("FaceHandle(%d)", f.idx) }
func (e Edge) String() string   { return fmt.Sprintf("EdgeHandle(%d)", e.idx) }

// OptionVertex is a space-efficient optional Vertex handle: the sentinel
// index doubles as "absent", so this type is the same size as Vertex.
type OptionVertex struct{ idx uint32 }

// NoVertex is the empty OptionVertex.
var NoVertex = OptionVertex{invalidIndex}

// SomeVertex wraps a present handle.
func SomeVertex(v Vertex) OptionVertex { return OptionVertex{v.idx} }

// Get returns the wrapped handle and whether one is present.
func (o OptionVertex) Get() (Vertex, bool) {
	if o.idx == invalidIndex {
		return Vertex{}, false
	}
	return Vertex{o.idx}, true
}

// IsSome reports whether a handle is present.
func (o OptionVertex) IsSome() bool { return o.idx != invalidIndex }

// OptionFace is the Face analogue of OptionVertex.
type OptionFace struct{ idx uint32 }

// NoFace is the empty OptionFace.
var NoFace = OptionFace{invalidIndex}

// SomeFace wraps a present handle.
func SomeFace(f Face) OptionFace { return OptionFace{f.idx} }

// Get returns the wrapped handle and whether one is present.
func (o OptionFace) Get() (Face, bool) {
	if o.idx == invalidIndex {
		return Face{}, false
	}
	return Face{o.idx}, true
}

// IsSome reports whether a handle is present.
func (o OptionFace) IsSome() bool { return o.idx != invalidIndex }

// OptionEdge is the Edge analogue of OptionVertex.
type OptionEdge struct{ idx uint32 }

// NoEdge is the empty OptionEdge.
var NoEdge = OptionEdge{invalidIndex}

// SomeEdge wraps a present handle.
func SomeEdge(e Edge) OptionEdge { return OptionEdge{e.idx} }

// Get returns the wrapped handle and whether one is present.
func (o OptionEdge) Get() (Edge, bool) {
	if o.idx == invalidIndex {
		return Edge{}, false
	}
	return Edge{o.idx}, true
}

// IsSome reports whether a handle is present.
func (o OptionEdge) IsSome() bool { return o.idx != invalidIndex }
