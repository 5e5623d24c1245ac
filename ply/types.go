// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package ply implements the PLY 1.0 raw reader and writer of §4.2: header
// parsing, the two body-parsing output modes (materializing into raw
// element groups, or streaming to a visitor), and round-trip serialization
// in all three encodings (byte-exact for the binary ones; ASCII numbers are
// re-formatted, so ASCII round-trips value for value).
package ply

import "github.com/go-mesh/meshio/typedprop"

// Encoding is one of the three PLY body encodings named in the format line.
type Encoding int

// The three encodings §6 requires support for.
const (
	ASCII Encoding = iota
	BinaryLittleEndian
	BinaryBigEndian
)

func (e Encoding) String() string {
	switch e {
	case ASCII:
		return "ascii"
	case BinaryLittleEndian:
		return "binary_little_endian"
	case BinaryBigEndian:
		return "binary_big_endian"
	default:
		return "unknown"
	}
}

// PLYKeyword returns the format-line token for the encoding.
func (e Encoding) PLYKeyword() string { return e.String() }

// EncodingFromKeyword resolves a format-line token to an Encoding.
func EncodingFromKeyword(kw string) (Encoding, bool) {
	switch kw {
	case "ascii":
		return ASCII, true
	case "binary_little_endian":
		return BinaryLittleEndian, true
	case "binary_big_endian":
		return BinaryBigEndian, true
	default:
		return 0, false
	}
}

// PropertyDef names and types one property of an element group, in
// declaration order.
type PropertyDef struct {
	Name string
	Type typedprop.Type
}

// ElementDef names a PLY element section: its name, declared count, and
// ordered property schema. The raw layer never interprets element or
// property names (§9 design note); recognition is the structured layer's
// job.
type ElementDef struct {
	Name       string
	Count      int
	Properties []PropertyDef
}

// FixedSize reports whether every property in the element is a scalar,
// meaning every record occupies the same number of bytes in a binary
// encoding.
func (e ElementDef) FixedSize() bool {
	for _, p := range e.Properties {
		if p.Type.Kind == typedprop.KindList {
			return false
		}
	}
	return true
}

// RecordSize returns the fixed per-record byte size. Only meaningful when
// FixedSize() is true.
func (e ElementDef) RecordSize() int {
	n := 0
	for _, p := range e.Properties {
		n += p.Type.Scalar.Width()
	}
	return n
}

// Header is the fully parsed PLY header: format, version, element/property
// schema in file order, and the verbatim comment/obj_info lines.
type Header struct {
	Encoding Encoding
	Version  string
	Elements []ElementDef
	Comments []string
	ObjInfo  []string

	// RawLines holds every header line as read, verbatim and in original
	// order, excluding the magic line and end_header. It is set only by
	// parseHeader and is what formatHeaderLine replays for an exact
	// round-trip (§8: "re-serializing... yields a byte-identical file");
	// a header built programmatically (e.g. by the structured writer)
	// leaves it nil and formatHeaderLine synthesizes lines from the
	// structured fields instead.
	RawLines []string
}

// ElementByName returns the ElementDef named name, if the header declares
// one.
func (h *Header) ElementByName(name string) (ElementDef, bool) {
	for _, e := range h.Elements {
		if e.Name == name {
			return e, true
		}
	}
	return ElementDef{}, false
}

// Record is one parsed element record: one typed Property per declared
// property, in schema order.
type Record struct {
	Fields []typedprop.Property
}

// RawElementGroup is the materialized form of one PLY element section: its
// schema plus every record (§3's "raw element group").
type RawElementGroup struct {
	Def     ElementDef
	Records []Record
}

// RawResult is the fully materialized form of a PLY file's body, in file
// order, returned by Reader.IntoRawResult.
type RawResult struct {
	Header Header
	Groups []RawElementGroup
}
