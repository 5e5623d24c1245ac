// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package typedprop

// Property is a single typed value: either a scalar or a homogeneous list,
// carrying its own type tag so a caller never has to consult an external
// schema to know how to interpret it.
type Property struct {
	typ  Type
	scal uint64 // scalar payload, reinterpreted per typ.Scalar
	list List_   // list payload, valid when typ.Kind == KindList
}

// List_ is the boxed payload of a list-typed Property. Only the field
// matching Elem is meaningful.
type List_ struct {
	I8  []int8
	U8  []uint8
	I16 []int16
	U16 []uint16
	I32 []int32
	U32 []uint32
	F32 []float32
	F64 []float64
}

// Len returns the number of elements in a list payload, regardless of which
// typed slice backs it.
func (l List_) Len() int {
	switch {
	case l.I8 != nil:
		return len(l.I8)
	case l.U8 != nil:
		return len(l.U8)
	case l.I16 != nil:
		return len(l.I16)
	case l.U16 != nil:
		return len(l.U16)
	case l.I32 != nil:
		return len(l.I32)
	case l.U32 != nil:
		return len(l.U32)
	case l.F32 != nil:
		return len(l.F32)
	case l.F64 != nil:
		return len(l.F64)
	default:
		return 0
	}
}

// Type reports the property's runtime type.
func (p Property) Type() Type { return p.typ }

// IsList reports whether the property carries a list.
func (p Property) IsList() bool { return p.typ.Kind == KindList }

// List returns the list payload. Panics if the property is a scalar.
func (p Property) List() List_ {
	if p.typ.Kind != KindList {
		panic("typedprop: List() called on a scalar Property")
	}
	return p.list
}

// AsFloat64 and AsInt64 below expose the scalar payload widened to
// float64 or int64 without a cast fidelity check; callers that need a
// fidelity-checked conversion should use Cast in cast.go instead. These are
// meant for internal dispatch once a type is already known to match.

func scalarPropertyBits(t ScalarType, bits uint64) Property {
	return Property{typ: Scalar(t), scal: bits}
}

// NewI8 builds a scalar i8 Property.
func NewI8(v int8) Property { return scalarPropertyBits(I8, uint64(uint8(v))) }

// NewU8 builds a scalar u8 Property.
func NewU8(v uint8) Property { return scalarPropertyBits(U8, uint64(v)) }

// NewI16 builds a scalar i16 Property.
func NewI16(v int16) Property { return scalarPropertyBits(I16, uint64(uint16(v))) }

// NewU16 builds a scalar u16 Property.
func NewU16(v uint16) Property { return scalarPropertyBits(U16, uint64(v)) }

// NewI32 builds a scalar i32 Property.
func NewI32(v int32) Property { return scalarPropertyBits(I32, uint64(uint32(v))) }

// NewU32 builds a scalar u32 Property.
func NewU32(v uint32) Property { return scalarPropertyBits(U32, uint64(v)) }

// NewF32 builds a scalar f32 Property.
func NewF32(v float32) Property {
	return scalarPropertyBits(F32, uint64(float32bits(v)))
}

// NewF64 builds a scalar f64 Property.
func NewF64(v float64) Property {
	return scalarPropertyBits(F64, float64bits(v))
}

// NewListI8 builds a list-of-i8 Property.
func NewListI8(lenT ScalarType, v []int8) Property {
	return Property{typ: List(lenT, I8), list: List_{I8: v}}
}

// NewListU8 builds a list-of-u8 Property.
func NewListU8(lenT ScalarType, v []uint8) Property {
	return Property{typ: List(lenT, U8), list: List_{U8: v}}
}

// NewListI16 builds a list-of-i16 Property.
func NewListI16(lenT ScalarType, v []int16) Property {
	return Property{typ: List(lenT, I16), list: List_{I16: v}}
}

// NewListU16 builds a list-of-u16 Property.
func NewListU16(lenT ScalarType, v []uint16) Property {
	return Property{typ: List(lenT, U16), list: List_{U16: v}}
}

// NewListI32 builds a list-of-i32 Property.
func NewListI32(lenT ScalarType, v []int32) Property {
	return Property{typ: List(lenT, I32), list: List_{I32: v}}
}

// NewListU32 builds a list-of-u32 Property.
func NewListU32(lenT ScalarType, v []uint32) Property {
	return Property{typ: List(lenT, U32), list: List_{U32: v}}
}

// NewListF32 builds a list-of-f32 Property.
func NewListF32(lenT ScalarType, v []float32) Property {
	return Property{typ: List(lenT, F32), list: List_{F32: v}}
}

// NewListF64 builds a list-of-f64 Property.
func NewListF64(lenT ScalarType, v []float64) Property {
	return Property{typ: List(lenT, F64), list: List_{F64: v}}
}

// AsFloat64 widens any scalar payload to a float64 without fidelity
// checking; used by writers emitting ASCII decimal text, which never loses
// precision relative to the original typed value for the scalar widths this
// package supports (F64 is the widest scalar).
func (p Property) AsFloat64() float64 {
	switch p.typ.Scalar {
	case I8:
		return float64(int8(p.scal))
	case U8:
		return float64(uint8(p.scal))
	case I16:
		return float64(int16(p.scal))
	case U16:
		return float64(uint16(p.scal))
	case I32:
		return float64(int32(p.scal))
	case U32:
		return float64(uint32(p.scal))
	case F32:
		return float64(float32frombits(uint32(p.scal)))
	case F64:
		return float64frombits(p.scal)
	default:
		panic("typedprop: AsFloat64 called on a list Property")
	}
}

// AsInt64 widens any integer scalar payload to an int64.
func (p Property) AsInt64() int64 {
	switch p.typ.Scalar {
	case I8:
		return int64(int8(p.scal))
	case U8:
		return int64(uint8(p.scal))
	case I16:
		return int64(int16(p.scal))
	case U16:
		return int64(uint16(p.scal))
	case I32:
		return int64(int32(p.scal))
	case U32:
		return int64(uint32(p.scal))
	default:
		panic("typedprop: AsInt64 called on a non-integer Property")
	}
}

// Bits returns the raw scalar payload bit pattern, for binary writers that
// dispatch on width rather than Go type.
func (p Property) Bits() uint64 { return p.scal }
