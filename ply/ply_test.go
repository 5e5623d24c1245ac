// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ply

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-mesh/meshio/typedprop"
)

const asciiTriangle = `ply
format ascii 1.0
comment exported by meshio
element vertex 3
property float x
property float y
property float z
element face 1
property list uchar int vertex_indices
end_header
0 0 0
3 5 8
1.942 152.99 0.007
3 0 1 2
`

func TestParseHeaderASCII(t *testing.T) {
	r, err := NewReader([]byte(asciiTriangle), nil)
	if err != nil {
		t.Fatalf("NewReader() err = %v", err)
	}
	defer r.Close()

	h := r.Header()
	if h.Encoding != ASCII {
		t.Errorf("Encoding = %v, want ASCII", h.Encoding)
	}
	if len(h.Elements) != 2 {
		t.Fatalf("len(Elements) = %d, want 2", len(h.Elements))
	}
	if h.Elements[0].Name != "vertex" || h.Elements[0].Count != 3 {
		t.Errorf("Elements[0] = %+v, want vertex/3", h.Elements[0])
	}
	if h.Elements[1].Properties[0].Type.Kind != typedprop.KindList {
		t.Errorf("face property 0 is not a list")
	}
}

func TestIntoRawResultASCIITriangle(t *testing.T) {
	r, err := NewReader([]byte(asciiTriangle), nil)
	if err != nil {
		t.Fatalf("NewReader() err = %v", err)
	}
	defer r.Close()

	result, err := r.IntoRawResult()
	if err != nil {
		t.Fatalf("IntoRawResult() err = %v", err)
	}

	if len(result.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(result.Groups))
	}
	verts := result.Groups[0]
	if len(verts.Records) != 3 {
		t.Fatalf("len(vertex Records) = %d, want 3", len(verts.Records))
	}
	got := verts.Records[1].Fields[1].AsFloat64()
	if got != 5 {
		t.Errorf("vertex[1].y = %v, want 5", got)
	}

	faces := result.Groups[1]
	idxList := faces.Records[0].Fields[0].List()
	if idxList.Len() != 3 {
		t.Fatalf("face index list len = %d, want 3", idxList.Len())
	}
	if idxList.I32[2] != 2 {
		t.Errorf("face index[2] = %d, want 2", idxList.I32[2])
	}
}

func TestRawRoundTripASCII(t *testing.T) {
	r, err := NewReader([]byte(asciiTriangle), nil)
	if err != nil {
		t.Fatalf("NewReader() err = %v", err)
	}
	defer r.Close()

	result, err := r.IntoRawResult()
	if err != nil {
		t.Fatalf("IntoRawResult() err = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteRaw(&buf, result); err != nil {
		t.Fatalf("WriteRaw() err = %v", err)
	}

	// Same tokens, same order (§8): re-parsing reproduces the same values,
	// independent of insignificant ASCII whitespace differences.
	r2, err := NewReader(buf.Bytes(), nil)
	if err != nil {
		t.Fatalf("re-parse NewReader() err = %v: output was %q", err, buf.String())
	}
	result2, err := r2.IntoRawResult()
	if err != nil {
		t.Fatalf("re-parse IntoRawResult() err = %v", err)
	}

	if len(result2.Groups) != len(result.Groups) {
		t.Fatalf("re-parsed group count = %d, want %d", len(result2.Groups), len(result.Groups))
	}
	for gi, g := range result.Groups {
		if len(result2.Groups[gi].Records) != len(g.Records) {
			t.Fatalf("group %d record count mismatch", gi)
		}
	}
}

func TestRawRoundTripBinaryBigEndianByteExact(t *testing.T) {
	// Scenario 2: triangle (0,0,0),(3,5,8),(1.942,152.99,0.007), face [0,1,2].
	var buf bytes.Buffer
	elements := []ElementSpec{
		{
			Name: "vertex", Count: 3,
			Attrs: []AttrSource{
				constAttr{"x", typedprop.Scalar(typedprop.F32), []float64{0, 3, 1.942}},
				constAttr{"y", typedprop.Scalar(typedprop.F32), []float64{0, 5, 152.99}},
				constAttr{"z", typedprop.Scalar(typedprop.F32), []float64{0, 8, 0.007}},
			},
		},
		{
			Name: "face", Count: 1,
			Attrs: []AttrSource{
				listAttr{"vertex_indices", typedprop.U8, typedprop.U32, [][]uint32{{0, 1, 2}}},
			},
		},
	}
	if err := Write(&buf, WriteOptions{Encoding: BinaryBigEndian}, elements); err != nil {
		t.Fatalf("Write() err = %v", err)
	}

	body := buf.Bytes()
	idx := bytes.Index(body, []byte("end_header\n"))
	if idx < 0 {
		t.Fatalf("no end_header in output")
	}
	payload := body[idx+len("end_header\n"):]
	if len(payload) != 36+1+4+4+4 {
		t.Fatalf("payload length = %d, want %d", len(payload), 36+1+4+4+4)
	}
	if payload[36] != 0x03 {
		t.Errorf("list length byte = %#x, want 0x03", payload[36])
	}

	r, err := NewReader(body, nil)
	if err != nil {
		t.Fatalf("re-parse NewReader() err = %v", err)
	}
	result, err := r.IntoRawResult()
	if err != nil {
		t.Fatalf("re-parse IntoRawResult() err = %v", err)
	}
	faceIdx := result.Groups[1].Records[0].Fields[0].List().U32
	if faceIdx[0] != 0 || faceIdx[1] != 1 || faceIdx[2] != 2 {
		t.Errorf("face indices = %v, want [0 1 2]", faceIdx)
	}
}

func TestCommentsPreservedInPosition(t *testing.T) {
	src := `ply
format ascii 1.0
comment first
element vertex 1
property float x
comment between element and property? not valid PLY but comments may appear anywhere
property float y
property float z
comment last
end_header
1 2 3
`
	r, err := NewReader([]byte(src), nil)
	if err != nil {
		t.Fatalf("NewReader() err = %v", err)
	}
	if len(r.Header().Comments) != 3 {
		t.Fatalf("len(Comments) = %d, want 3", len(r.Header().Comments))
	}

	var buf bytes.Buffer
	result, err := r.IntoRawResult()
	if err != nil {
		t.Fatalf("IntoRawResult() err = %v", err)
	}
	if err := WriteRaw(&buf, result); err != nil {
		t.Fatalf("WriteRaw() err = %v", err)
	}
	if !strings.Contains(buf.String(), "property float x\ncomment between element and property") {
		t.Errorf("re-serialized header lost an interior comment or its position:\n%s", buf.String())
	}
}

// constAttr is a test-only AttrSource yielding a fixed per-record scalar.
type constAttr struct {
	name string
	typ  typedprop.Type
	vals []float64
}

func (c constAttr) Name() string         { return c.name }
func (c constAttr) Type() typedprop.Type { return c.typ }
func (c constAttr) Value(idx uint32) (typedprop.Property, bool) {
	if int(idx) >= len(c.vals) {
		return typedprop.Property{}, false
	}
	return typedprop.NewF32(float32(c.vals[idx])), true
}

// listAttr is a test-only AttrSource yielding a fixed per-record u32 list.
type listAttr struct {
	name    string
	lenType typedprop.ScalarType
	elem    typedprop.ScalarType
	vals    [][]uint32
}

func (l listAttr) Name() string { return l.name }
func (l listAttr) Type() typedprop.Type {
	return typedprop.List(l.lenType, l.elem)
}
func (l listAttr) Value(idx uint32) (typedprop.Property, bool) {
	if int(idx) >= len(l.vals) {
		return typedprop.Property{}, false
	}
	return typedprop.NewListU32(l.lenType, l.vals[idx]), true
}
