// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package transfer

import (
	"errors"

	"github.com/go-mesh/meshio/handle"
	"github.com/go-mesh/meshio/mioerr"
	"github.com/go-mesh/meshio/ply"
	"github.com/go-mesh/meshio/typedprop"
)

// FromPLY drives r's body, in streaming mode, into sink: a "vertex" element
// contributes one AddVertex per record plus recognized x,y,z/nx,ny,nz
// properties and any custom ones; a "face" element contributes one AddFace
// per record, its connectivity taken from vertex_indices/vertex_index
// (§4.4). Elements named anything else are consumed but otherwise ignored,
// since this repo's mesh model only has vertices and faces.
func FromPLY(r *ply.Reader, sink Sink) error {
	v := &plyToSinkVisitor{sink: sink, fidelity: r.Fidelity()}
	if err := r.VisitBody(v); err != nil {
		return err
	}
	return sink.Finish()
}

type plyToSinkVisitor struct {
	sink     Sink
	fidelity typedprop.Fidelity

	elementName string
	propIndex   map[string]int
}

func (v *plyToSinkVisitor) BeginElement(def ply.ElementDef) error {
	v.elementName = def.Name
	v.propIndex = make(map[string]int, len(def.Properties))
	for i, p := range def.Properties {
		v.propIndex[p.Name] = i
	}

	switch def.Name {
	case "vertex":
		v.sink.PrepareVertices(uint64(def.Count))
	case "face":
		v.sink.PrepareFaces(uint64(def.Count))
	}
	return nil
}

func (v *plyToSinkVisitor) Record(rec ply.Record) error {
	switch v.elementName {
	case "vertex":
		return v.vertexRecord(rec)
	case "face":
		return v.faceRecord(rec)
	default:
		return nil
	}
}

func (v *plyToSinkVisitor) EndElement(def ply.ElementDef) error { return nil }

func (v *plyToSinkVisitor) vertexRecord(rec ply.Record) error {
	vh := v.sink.AddVertex()

	pos, ok, err := v.vec3(rec, "x", "y", "z")
	if err != nil {
		return err
	}
	if ok {
		v.sink.SetVertexPosition(vh, pos)
	}
	n, ok, err := v.vec3(rec, "nx", "ny", "nz")
	if err != nil {
		return err
	}
	if ok {
		v.sink.SetVertexNormal(vh, n)
	}
	for name, i := range v.propIndex {
		if isKnownVertexName(name) {
			continue
		}
		v.sink.SetVertexProperty(vh, name, rec.Fields[i])
	}
	return nil
}

func (v *plyToSinkVisitor) faceRecord(rec ply.Record) error {
	connIdx, ok := v.propIndex["vertex_indices"]
	if !ok {
		connIdx, ok = v.propIndex["vertex_index"]
	}
	if !ok {
		return mioerr.New(mioerr.MissingProperty, mioerr.Pos{},
			"face element has neither vertex_indices nor vertex_index")
	}

	list := rec.Fields[connIdx].List()
	verts := make([]handle.Vertex, list.Len())
	for i := 0; i < list.Len(); i++ {
		verts[i] = handle.NewVertex(listElemU32(list, i))
	}

	faces, err := v.sink.AddFace(verts)
	if err != nil {
		return err
	}

	for name, i := range v.propIndex {
		if isConnectivityName(name) {
			continue
		}
		for _, f := range faces {
			v.sink.SetFaceProperty(f, name, rec.Fields[i])
		}
	}
	return nil
}

// vec3 reads the three named scalar properties off rec and casts each to
// the sink's requested scalar type at the sink's requested fidelity (§4.1
// "numeric widening on read", §4.4 "property types are cast on the fly
// using the user-selected fidelity"). A cast the fidelity ladder does not
// permit is reported as CastFailed rather than silently truncated (§8
// scenario 6).
func (v *plyToSinkVisitor) vec3(rec ply.Record, x, y, z string) ([3]float64, bool, error) {
	xi, xok := v.propIndex[x]
	yi, yok := v.propIndex[y]
	zi, zok := v.propIndex[z]
	if !xok || !yok || !zok {
		return [3]float64{}, false, nil
	}

	target := v.sink.PositionScalarType()

	var out [3]float64
	for i, idx := range [3]int{xi, yi, zi} {
		casted, err := typedprop.Cast(rec.Fields[idx], target, v.fidelity)
		if err != nil {
			return [3]float64{}, false, castFailedError(err)
		}
		out[i] = casted.AsFloat64()
	}
	return out, true, nil
}

// castFailedError converts a *typedprop.CastError into the uniform
// mioerr.Error taxonomy (§4.6).
func castFailedError(err error) error {
	var ce *typedprop.CastError
	if errors.As(err, &ce) {
		e := mioerr.Wrap(mioerr.CastFailed, mioerr.Pos{}, err,
			"cast %s -> %s requires fidelity %s, have %s", ce.From, ce.To, ce.Required, ce.Have)
		e.Expected, e.Got = ce.To.String(), ce.From.String()
		return e
	}
	return mioerr.Wrap(mioerr.CastFailed, mioerr.Pos{}, err, "cast failed")
}

func listElemU32(l typedprop.List_, i int) uint32 {
	switch {
	case l.I8 != nil:
		return uint32(l.I8[i])
	case l.U8 != nil:
		return uint32(l.U8[i])
	case l.I16 != nil:
		return uint32(l.I16[i])
	case l.U16 != nil:
		return uint32(l.U16[i])
	case l.I32 != nil:
		return uint32(l.I32[i])
	case l.U32 != nil:
		return l.U32[i]
	default:
		return 0
	}
}
