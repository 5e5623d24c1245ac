// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package typedprop implements the runtime-typed scalar and list values
// that flow out of a raw format reader, the property-type descriptors that
// name them, and the numeric cast fidelity ladder used to move between a
// file's declared type and a sink's requested type.
package typedprop

import "fmt"

// ScalarType tags one of the eight scalar wire types a PLY/STL property can
// carry.
type ScalarType uint8

// The eight scalar types, in ascending width-then-signedness order used by
// the cast table in cast.go.
const (
	I8 ScalarType = iota
	U8
	I16
	U16
	I32
	U32
	F32
	F64

	numScalarTypes = int(F64) + 1
)

func (t ScalarType) String() string {
	switch t {
	case I8:
		return "i8"
	case U8:
		return "u8"
	case I16:
		return "i16"
	case U16:
		return "u16"
	case I32:
		return "i32"
	case U32:
		return "u32"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return fmt.Sprintf("ScalarType(%d)", uint8(t))
	}
}

// Width returns the in-memory and on-wire byte width of the scalar type.
func (t ScalarType) Width() int {
	switch t {
	case I8, U8:
		return 1
	case I16, U16:
		return 2
	case I32, U32, F32:
		return 4
	case F64:
		return 8
	default:
		return 0
	}
}

// IsFloat reports whether the scalar type is a floating point type.
func (t ScalarType) IsFloat() bool { return t == F32 || t == F64 }

// IsSigned reports whether the scalar type is a signed integer type.
func (t ScalarType) IsSigned() bool { return t == I8 || t == I16 || t == I32 }

// PLYTypeKeyword maps a ScalarType to its canonical PLY header keyword.
func (t ScalarType) PLYTypeKeyword() string {
	switch t {
	case I8:
		return "char"
	case U8:
		return "uchar"
	case I16:
		return "short"
	case U16:
		return "ushort"
	case I32:
		return "int"
	case U32:
		return "uint"
	case F32:
		return "float"
	case F64:
		return "double"
	default:
		return "?"
	}
}

// ScalarTypeFromPLYKeyword resolves a PLY header type keyword (including the
// C99-style aliases) to a ScalarType.
func ScalarTypeFromPLYKeyword(kw string) (ScalarType, bool) {
	switch kw {
	case "char", "int8":
		return I8, true
	case "uchar", "uint8":
		return U8, true
	case "short", "int16":
		return I16, true
	case "ushort", "uint16":
		return U16, true
	case "int", "int32":
		return I32, true
	case "uint", "uint32":
		return U32, true
	case "float", "float32":
		return F32, true
	case "double", "float64":
		return F64, true
	default:
		return 0, false
	}
}

// ListLenType is the subset of scalar types PLY allows as a list's length
// prefix.
type ListLenType = ScalarType

// Kind distinguishes a scalar property from a list property.
type Kind uint8

// The two property shapes.
const (
	KindScalar Kind = iota
	KindList
)

// Type fully describes a property's shape: a bare scalar, or a list with a
// declared length-prefix type and element type.
type Type struct {
	Kind    Kind
	Scalar  ScalarType // valid when Kind == KindScalar
	LenType ListLenType // valid when Kind == KindList
	Elem    ScalarType  // valid when Kind == KindList
}

// Scalar builds a scalar Type.
func Scalar(s ScalarType) Type { return Type{Kind: KindScalar, Scalar: s} }

// List builds a list Type.
func List(lenType, elem ScalarType) Type {
	return Type{Kind: KindList, LenType: lenType, Elem: elem}
}

func (t Type) String() string {
	if t.Kind == KindScalar {
		return t.Scalar.String()
	}
	return fmt.Sprintf("list<%s,%s>", t.LenType, t.Elem)
}
