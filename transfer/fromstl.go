// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package transfer

import (
	"github.com/go-mesh/meshio/handle"
	"github.com/go-mesh/meshio/stl"
	"github.com/go-mesh/meshio/typedprop"
)

// FromSTL drives r's triangle stream into sink. STL has no shared
// vertices (§4.3): every triangle contributes three fresh vertex handles,
// and both vertex positions and the face normal are injected directly
// rather than looked up by property name, since STL's layout carries no
// names to recognize.
func FromSTL(r *stl.Reader, sink Sink) error {
	return r.VisitBody(&stlToSinkVisitor{sink: sink, fidelity: r.Fidelity()})
}

type stlToSinkVisitor struct {
	sink     Sink
	fidelity typedprop.Fidelity
}

func (v *stlToSinkVisitor) Begin(name string, numTrianglesHint uint32) error {
	if numTrianglesHint > 0 {
		v.sink.PrepareVertices(uint64(numTrianglesHint) * 3)
		v.sink.PrepareFaces(uint64(numTrianglesHint))
	}
	return nil
}

func (v *stlToSinkVisitor) Triangle(t stl.Triangle) error {
	target := v.sink.PositionScalarType()

	verts := make([]handle.Vertex, 3)
	for i, p := range t.Vertices {
		pos, err := castVec3F32(p, target, v.fidelity)
		if err != nil {
			return err
		}
		vh := v.sink.AddVertex()
		v.sink.SetVertexPosition(vh, pos)
		verts[i] = vh
	}

	faces, err := v.sink.AddFace(verts)
	if err != nil {
		return err
	}

	n, err := castVec3F32(t.Normal, target, v.fidelity)
	if err != nil {
		return err
	}
	for _, f := range faces {
		v.sink.SetFaceNormal(f, n)
	}
	return nil
}

// castVec3F32 casts each f32 component of p to target at fidelity (§4.1,
// §4.4); STL's components are always f32 on the wire, but the sink may
// still request a narrower in-memory type.
func castVec3F32(p [3]float32, target typedprop.ScalarType, fidelity typedprop.Fidelity) ([3]float64, error) {
	var out [3]float64
	for i, c := range p {
		casted, err := typedprop.Cast(typedprop.NewF32(c), target, fidelity)
		if err != nil {
			return [3]float64{}, castFailedError(err)
		}
		out[i] = casted.AsFloat64()
	}
	return out, nil
}

func (v *stlToSinkVisitor) End() error { return v.sink.Finish() }
