// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package stl implements the STL raw reader and writer of §4.3: ASCII and
// binary triangle-soup parsing and emission, and the length-vs-keyword
// heuristic that decides which grammar a given file uses.
package stl

// Encoding is one of the two STL body encodings.
type Encoding int

// The two encodings §4.3 describes.
const (
	ASCII Encoding = iota
	Binary
)

func (e Encoding) String() string {
	switch e {
	case ASCII:
		return "ascii"
	case Binary:
		return "binary"
	default:
		return "unknown"
	}
}

// binaryHeaderSize is the fixed zero-filled preamble every binary file
// carries ahead of its triangle count.
const binaryHeaderSize = 80

// triangleRecordSize is the fixed per-triangle byte size in binary encoding:
// f32[3] normal, f32[3]*3 vertices, u16 attribute.
const triangleRecordSize = 50

// Triangle is one parsed or to-be-written facet: its normal (given or to be
// computed by a caller) and its three vertex positions, in winding order.
// Attribute carries the binary format's 16-bit per-facet attribute field,
// forwarded but otherwise uninterpreted (§4.3).
type Triangle struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16
}

// Header is the minimal preamble information a Reader exposes ahead of the
// triangle stream: the detected encoding and, for ASCII input, the solid
// name (binary carries no name).
type Header struct {
	Encoding Encoding
	Name     string
}

// Visitor receives a triangle stream, mirroring ply.Visitor's
// Begin/Record/End shape so the structured facade in package transfer can
// drive either raw reader through a uniform streaming loop.
type Visitor interface {
	// Begin is called once, before any triangle, with the solid name (ASCII
	// only; empty for binary) and a triangle-count hint (binary only; 0 for
	// ASCII, since the ASCII grammar declares no count).
	Begin(name string, numTrianglesHint uint32) error
	// Triangle is called once per parsed facet.
	Triangle(t Triangle) error
	// End is called after the last triangle.
	End() error
}
