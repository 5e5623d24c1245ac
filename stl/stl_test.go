// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package stl

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

const asciiTetrahedronFacet = `solid tetrahedron
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 1 0 0
      vertex 0 1 0
    endloop
  endfacet
endsolid tetrahedron
`

func TestDetectEncodingASCII(t *testing.T) {
	if got := DetectEncoding([]byte(asciiTetrahedronFacet)); got != ASCII {
		t.Errorf("DetectEncoding() = %v, want ASCII", got)
	}
}

func TestDetectEncodingBinaryByFirstByte(t *testing.T) {
	data := makeBinary(t, nil)
	if data[0] == 's' {
		t.Fatalf("test fixture accidentally starts with 's'")
	}
	if got := DetectEncoding(data); got != Binary {
		t.Errorf("DetectEncoding() = %v, want Binary", got)
	}
}

// TestDetectEncodingLengthWinsAmbiguousPrefix covers §8 scenario 5: a file
// starting with "solid" whose length exactly matches 84+50*N for its
// embedded N is still binary.
func TestDetectEncodingLengthWinsAmbiguousPrefix(t *testing.T) {
	data := makeBinary(t, []Triangle{{
		Normal:   [3]float32{0, 0, 1},
		Vertices: [3][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	}})
	copy(data[:5], "solid")

	if got := DetectEncoding(data); got != Binary {
		t.Errorf("DetectEncoding() = %v, want Binary (length check must win)", got)
	}
}

func TestParseASCIISingleTriangle(t *testing.T) {
	r, err := NewReader([]byte(asciiTetrahedronFacet), nil)
	if err != nil {
		t.Fatalf("NewReader() err = %v", err)
	}
	if r.Header().Name != "tetrahedron" {
		t.Errorf("Name = %q, want tetrahedron", r.Header().Name)
	}

	tris, err := r.IntoTriangles()
	if err != nil {
		t.Fatalf("IntoTriangles() err = %v", err)
	}
	if len(tris) != 1 {
		t.Fatalf("len(tris) = %d, want 1", len(tris))
	}
	if tris[0].Vertices[1] != [3]float32{1, 0, 0} {
		t.Errorf("Vertices[1] = %v, want (1,0,0)", tris[0].Vertices[1])
	}
}

// TestParseBinarySingleTriangle covers §8 scenario 4.
func TestParseBinarySingleTriangle(t *testing.T) {
	want := Triangle{
		Normal:   [3]float32{0, 0, 1},
		Vertices: [3][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	}
	data := makeBinary(t, []Triangle{want})

	r, err := NewReader(data, nil)
	if err != nil {
		t.Fatalf("NewReader() err = %v", err)
	}
	if r.Header().Encoding != Binary {
		t.Fatalf("Encoding = %v, want Binary", r.Header().Encoding)
	}
	if n, ok := r.NumTrianglesHint(); !ok || n != 1 {
		t.Errorf("NumTrianglesHint() = (%d, %v), want (1, true)", n, ok)
	}

	tris, err := r.IntoTriangles()
	if err != nil {
		t.Fatalf("IntoTriangles() err = %v", err)
	}
	if len(tris) != 1 || tris[0] != want {
		t.Errorf("tris = %+v, want [%+v]", tris, want)
	}
}

func TestWriteBinaryThenReadRoundTrip(t *testing.T) {
	tris := []Triangle{
		{Normal: [3]float32{0, 0, 1}, Vertices: [3][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}},
		{Normal: [3]float32{1, 0, 0}, Vertices: [3][3]float32{{0, 0, 0}, {0, 1, 0}, {0, 0, 1}}, Attribute: 7},
	}

	var buf bytes.Buffer
	if err := Write(&buf, WriteOptions{Encoding: Binary}, tris); err != nil {
		t.Fatalf("Write() err = %v", err)
	}

	r, err := NewReader(buf.Bytes(), nil)
	if err != nil {
		t.Fatalf("NewReader() err = %v", err)
	}
	got, err := r.IntoTriangles()
	if err != nil {
		t.Fatalf("IntoTriangles() err = %v", err)
	}
	if len(got) != len(tris) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(tris))
	}
	for i := range tris {
		if got[i] != tris[i] {
			t.Errorf("triangle %d = %+v, want %+v", i, got[i], tris[i])
		}
	}
}

func TestWriteASCIIThenReadRoundTrip(t *testing.T) {
	tris := []Triangle{
		{Normal: [3]float32{0, 0, 1}, Vertices: [3][3]float32{{0, 0, 0}, {3, 5, 8}, {1.942, 152.99, 0.007}}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, WriteOptions{Encoding: ASCII, Name: "exported"}, tris); err != nil {
		t.Fatalf("Write() err = %v", err)
	}

	r, err := NewReader(buf.Bytes(), nil)
	if err != nil {
		t.Fatalf("NewReader() err = %v", err)
	}
	if r.Header().Name != "exported" {
		t.Errorf("Name = %q, want exported", r.Header().Name)
	}
	got, err := r.IntoTriangles()
	if err != nil {
		t.Fatalf("IntoTriangles() err = %v", err)
	}
	if len(got) != 1 || got[0].Vertices[2] != tris[0].Vertices[2] {
		t.Errorf("got = %+v, want %+v", got, tris)
	}
}

func makeBinary(t *testing.T, tris []Triangle) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := Write(&buf, WriteOptions{Encoding: Binary}, tris); err != nil {
		t.Fatalf("Write() err = %v", err)
	}
	return buf.Bytes()
}

func TestDecodeBinaryTriangleBitExact(t *testing.T) {
	var rec [triangleRecordSize]byte
	binary.LittleEndian.PutUint32(rec[0:4], math.Float32bits(0))
	binary.LittleEndian.PutUint32(rec[4:8], math.Float32bits(0))
	binary.LittleEndian.PutUint32(rec[8:12], math.Float32bits(1))
	binary.LittleEndian.PutUint16(rec[48:50], 0xABCD)

	got := decodeBinaryTriangle(rec[:])
	if got.Normal != [3]float32{0, 0, 1} {
		t.Errorf("Normal = %v, want (0,0,1)", got.Normal)
	}
	if got.Attribute != 0xABCD {
		t.Errorf("Attribute = %#x, want 0xabcd", got.Attribute)
	}
}
