// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package transfer

import (
	"bytes"
	"testing"

	"github.com/go-mesh/meshio/handle"
	"github.com/go-mesh/meshio/mesh"
	"github.com/go-mesh/meshio/ply"
	"github.com/go-mesh/meshio/stl"
)

const asciiTriangleWithColor = `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
property uchar red
element face 1
property list uchar int vertex_indices
end_header
0 0 0 255
3 5 8 0
1.942 152.99 0.007 128
3 0 1 2
`

func TestFromPLYPopulatesMeshAndProperties(t *testing.T) {
	r, err := ply.NewReader([]byte(asciiTriangleWithColor), nil)
	if err != nil {
		t.Fatalf("ply.NewReader() err = %v", err)
	}
	defer r.Close()

	m := mesh.NewSharedVertexMesh()
	sink := NewMeshSink(m)

	if err := FromPLY(r, sink); err != nil {
		t.Fatalf("FromPLY() err = %v", err)
	}

	if m.NumVertices() != 3 {
		t.Fatalf("NumVertices() = %d, want 3", m.NumVertices())
	}
	if m.NumFaces() != 1 {
		t.Fatalf("NumFaces() = %d, want 1", m.NumFaces())
	}

	verts := m.Vertices()
	pos, ok := sink.Positions.Get(verts[1])
	if !ok || pos.Get() != [3]float64{3, 5, 8} {
		t.Errorf("vertex[1] position = %v, ok=%v, want (3,5,8)", pos.Get(), ok)
	}

	redStore, ok := sink.VertexProps["red"]
	if !ok {
		t.Fatalf("no custom property %q recorded", "red")
	}
	redVal, ok := redStore.Get(verts[0])
	if !ok || redVal.Get().AsInt64() != 255 {
		t.Errorf("red[0] = %v, ok=%v, want 255", redVal.Get(), ok)
	}
}

func TestRoundTripPLYThroughTransfer(t *testing.T) {
	r, err := ply.NewReader([]byte(asciiTriangleWithColor), nil)
	if err != nil {
		t.Fatalf("ply.NewReader() err = %v", err)
	}
	defer r.Close()

	m := mesh.NewSharedVertexMesh()
	sink := NewMeshSink(m)
	if err := FromPLY(r, sink); err != nil {
		t.Fatalf("FromPLY() err = %v", err)
	}

	var buf bytes.Buffer
	if err := ToPLY(&buf, ply.WriteOptions{Encoding: ply.ASCII}, sink); err != nil {
		t.Fatalf("ToPLY() err = %v", err)
	}

	r2, err := ply.NewReader(buf.Bytes(), nil)
	if err != nil {
		t.Fatalf("re-parse NewReader() err = %v: output was %q", err, buf.String())
	}
	m2 := mesh.NewSharedVertexMesh()
	sink2 := NewMeshSink(m2)
	if err := FromPLY(r2, sink2); err != nil {
		t.Fatalf("re-parse FromPLY() err = %v", err)
	}

	if m2.NumVertices() != 3 || m2.NumFaces() != 1 {
		t.Fatalf("re-parsed mesh = %d verts/%d faces, want 3/1", m2.NumVertices(), m2.NumFaces())
	}
	verts2 := m2.Vertices()
	redStore2, ok := sink2.VertexProps["red"]
	if !ok {
		t.Fatalf("round trip lost custom property %q", "red")
	}
	redVal, ok := redStore2.Get(verts2[2])
	if !ok || redVal.Get().AsInt64() != 128 {
		t.Errorf("round-tripped red[2] = %v, ok=%v, want 128", redVal.Get(), ok)
	}
}

func TestFromSTLThenToSTLRoundTrip(t *testing.T) {
	var src bytes.Buffer
	if err := stl.Write(&src, stl.WriteOptions{Encoding: stl.Binary}, []stl.Triangle{
		{Normal: [3]float32{0, 0, 1}, Vertices: [3][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}},
	}); err != nil {
		t.Fatalf("stl.Write() err = %v", err)
	}

	r, err := stl.NewReader(src.Bytes(), nil)
	if err != nil {
		t.Fatalf("stl.NewReader() err = %v", err)
	}

	m := mesh.NewSharedVertexMesh()
	sink := NewMeshSink(m)
	if err := FromSTL(r, sink); err != nil {
		t.Fatalf("FromSTL() err = %v", err)
	}
	if m.NumVertices() != 3 || m.NumFaces() != 1 {
		t.Fatalf("mesh = %d verts/%d faces, want 3/1", m.NumVertices(), m.NumFaces())
	}

	var out bytes.Buffer
	if err := ToSTL(&out, stl.WriteOptions{Encoding: stl.Binary}, sink); err != nil {
		t.Fatalf("ToSTL() err = %v", err)
	}

	r2, err := stl.NewReader(out.Bytes(), nil)
	if err != nil {
		t.Fatalf("re-parse stl.NewReader() err = %v", err)
	}
	tris, err := r2.IntoTriangles()
	if err != nil {
		t.Fatalf("IntoTriangles() err = %v", err)
	}
	if len(tris) != 1 || tris[0].Normal != [3]float32{0, 0, 1} {
		t.Errorf("triangles = %+v, want normal (0,0,1)", tris)
	}
}

// TestToSTLComputesDegenerateNormalAsZero covers §4.5's degenerate-face
// fallback: a zero-area triangle gets the zero normal instead of NaN.
func TestToSTLComputesDegenerateNormalAsZero(t *testing.T) {
	m := mesh.NewSharedVertexMesh()
	sink := NewMeshSink(m)

	a := sink.AddVertex()
	b := sink.AddVertex()
	c := sink.AddVertex()
	sink.SetVertexPosition(a, [3]float64{0, 0, 0})
	sink.SetVertexPosition(b, [3]float64{1, 0, 0})
	sink.SetVertexPosition(c, [3]float64{2, 0, 0}) // collinear with a,b: zero-area
	if _, err := sink.AddFace([]handle.Vertex{a, b, c}); err != nil {
		t.Fatalf("AddFace() err = %v", err)
	}

	var out bytes.Buffer
	if err := ToSTL(&out, stl.WriteOptions{Encoding: stl.Binary}, sink); err != nil {
		t.Fatalf("ToSTL() err = %v", err)
	}

	r, err := stl.NewReader(out.Bytes(), nil)
	if err != nil {
		t.Fatalf("stl.NewReader() err = %v", err)
	}
	tris, err := r.IntoTriangles()
	if err != nil {
		t.Fatalf("IntoTriangles() err = %v", err)
	}
	if tris[0].Normal != [3]float32{0, 0, 0} {
		t.Errorf("degenerate normal = %v, want zero vector", tris[0].Normal)
	}
}
