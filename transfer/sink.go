// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package transfer implements the structured reader facade and the
// source->sink transfer protocol of §4.4: it wraps a raw ply.Reader or
// stl.Reader, recognizes well-known PLY property names (§4.4's name table),
// fan-triangulates polygonal faces into triangle-only sinks, and drives a
// Sink with the resulting vertices, faces, and property values. The
// opposite direction (mesh + property maps -> ply/stl writer) lives here
// too, since it is this package's job to bridge generic mesh/propmap types
// to the raw writers' type-erased AttrSource, never the raw packages' (§9
// design note: raw packages stay name- and mesh-agnostic).
package transfer

import (
	"github.com/go-mesh/meshio/handle"
	"github.com/go-mesh/meshio/typedprop"
)

// Sink is the structured facade's drain, matching §4.4's vocabulary:
// capacity hints, vertex/face construction, and per-element property
// setters. AddFace fan-triangulates internally when the underlying mesh is
// triangle-only and the caller hands it more than three vertices (§4.4:
// "if and only if the sink declares itself triangular"), which is why it
// returns every resulting face rather than a single handle.
type Sink interface {
	PrepareVertices(hint uint64)
	PrepareFaces(hint uint64)

	AddVertex() handle.Vertex
	AddFace(verts []handle.Vertex) ([]handle.Face, error)

	SetVertexPosition(v handle.Vertex, pos [3]float64)
	SetVertexNormal(v handle.Vertex, n [3]float64)
	SetFaceNormal(f handle.Face, n [3]float64)
	SetVertexProperty(v handle.Vertex, name string, val typedprop.Property)
	SetFaceProperty(f handle.Face, name string, val typedprop.Property)

	Finish() error

	// PositionScalarType reports the scalar type the sink wants
	// position/normal components widened or narrowed to (§4.1 "numeric
	// widening on read"). The facade casts every incoming x/y/z/nx/ny/nz
	// property to this type, at the reader's configured Fidelity, before
	// handing it to SetVertexPosition/SetVertexNormal/SetFaceNormal; a cast
	// the type table in §4.1 does not permit at that fidelity is reported
	// as CastFailed instead of silently truncated.
	PositionScalarType() typedprop.ScalarType
}

// Well-known PLY property names the facade recognizes by construction
// (§4.4); everything else is forwarded to the sink by name as a custom
// property.
func isKnownVertexName(name string) bool {
	switch name {
	case "x", "y", "z", "nx", "ny", "nz":
		return true
	default:
		return false
	}
}

func isConnectivityName(name string) bool {
	return name == "vertex_indices" || name == "vertex_index"
}
