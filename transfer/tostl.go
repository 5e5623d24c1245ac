// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package transfer

import (
	"fmt"
	"io"
	"math"

	"github.com/go-mesh/meshio/stl"
)

// ToSTL writes sink's mesh as a binary or ASCII STL file (§4.5): every live
// face becomes one triangle record, its normal taken from sink.FaceNormals
// when present, otherwise computed as the unit cross product of its edge
// vectors, with the degenerate case (zero-length cross product) emitted as
// the zero vector rather than NaN. Every face must be triangular and every
// referenced vertex must have a position; both are write-time errors
// (§4.5: "missing properties are a fatal write error, not silently
// filled").
func ToSTL(w io.Writer, opts stl.WriteOptions, sink *MeshSink) error {
	if sink.Adj == nil {
		return fmt.Errorf("transfer: mesh does not implement Adjacency, cannot write stl triangles")
	}

	faces := sink.Mesh.Faces()
	tris := make([]stl.Triangle, 0, len(faces))

	for _, f := range faces {
		verts, ok := sink.Adj.VerticesOfFace(f)
		if !ok {
			return fmt.Errorf("transfer: face %s has no adjacency", f)
		}
		if len(verts) != 3 {
			return fmt.Errorf("transfer: stl export requires triangular faces, face %s has %d vertices", f, len(verts))
		}

		var tri stl.Triangle
		for i, v := range verts {
			pos, ok := sink.Positions.Get(v)
			if !ok {
				return fmt.Errorf("transfer: vertex %s has no position, required for stl export", v)
			}
			p := pos.Get()
			tri.Vertices[i] = [3]float32{float32(p[0]), float32(p[1]), float32(p[2])}
		}

		if n, ok := sink.FaceNormals.Get(f); ok {
			nv := n.Get()
			tri.Normal = [3]float32{float32(nv[0]), float32(nv[1]), float32(nv[2])}
		} else {
			tri.Normal = computeFaceNormal(tri.Vertices)
		}

		tris = append(tris, tri)
	}

	return stl.Write(w, opts, tris)
}

func computeFaceNormal(v [3][3]float32) [3]float32 {
	e1 := sub3(v[1], v[0])
	e2 := sub3(v[2], v[0])
	n := cross3(e1, e2)

	length := math.Sqrt(float64(n[0])*float64(n[0]) + float64(n[1])*float64(n[1]) + float64(n[2])*float64(n[2]))
	if length == 0 {
		return [3]float32{0, 0, 0}
	}
	return [3]float32{
		float32(float64(n[0]) / length),
		float32(float64(n[1]) / length),
		float32(float64(n[2]) / length),
	}
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
