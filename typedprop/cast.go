// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package typedprop

import (
	"fmt"
	"math"
)

// Fidelity ranks how much information loss a numeric cast is allowed to
// introduce, from none to unchecked truncation.
type Fidelity uint8

// The four fidelity levels, in ascending permissiveness.
const (
	// Lossless permits only casts that cannot change the represented value:
	// widening an integer, or widening a float.
	Lossless Fidelity = iota
	// Clamping additionally permits narrowing casts that saturate at the
	// destination type's range instead of wrapping.
	Clamping
	// Rounding additionally permits casts that round to the nearest
	// representable value of the destination (a 32-bit integer to f32).
	Rounding
	// Lossy permits every cast this package knows how to perform, including
	// f64 to f32 and float to integer, which truncates the fraction.
	Lossy
)

func (f Fidelity) String() string {
	switch f {
	case Lossless:
		return "lossless"
	case Clamping:
		return "clamping"
	case Rounding:
		return "rounding"
	case Lossy:
		return "lossy"
	default:
		return fmt.Sprintf("Fidelity(%d)", uint8(f))
	}
}

// CastError reports a cast that would have needed a higher fidelity than the
// caller selected.
type CastError struct {
	From, To       ScalarType
	Have, Required Fidelity
}

func (e *CastError) Error() string {
	return fmt.Sprintf("cast %s -> %s requires fidelity %s, have %s",
		e.From, e.To, e.Required, e.Have)
}

// requiredFidelity[from][to] is the minimum Fidelity a cast from `from` to
// `to` needs to be attempted at all. It is built once at init time from the
// width/signedness rules below rather than hand-enumerated cell by cell.
var requiredFidelity [numScalarTypes][numScalarTypes]Fidelity

func init() {
	all := []ScalarType{I8, U8, I16, U16, I32, U32, F32, F64}
	for _, from := range all {
		for _, to := range all {
			requiredFidelity[from][to] = classify(from, to)
		}
	}
}

func classify(from, to ScalarType) Fidelity {
	if from == to {
		return Lossless
	}

	fromFloat, toFloat := from.IsFloat(), to.IsFloat()

	switch {
	case !fromFloat && !toFloat:
		// integer -> integer
		if losslessIntWiden(from, to) {
			return Lossless
		}
		return Clamping

	case fromFloat && toFloat:
		// float -> float: only f32 -> f64 is lossless widening.
		if from == F32 && to == F64 {
			return Lossless
		}
		// f64 -> f32 both narrows range (needs clamping against +/-Inf)
		// and mantissa (needs rounding to the nearest f32): the ground
		// truth table marks this ⊗, the minimum ladder level giving both
		// is Lossy.
		return Lossy

	case !fromFloat && toFloat:
		// integer -> float: every integer width this package has fits in a
		// float64 exactly, and in a float32 exactly only for widths <= 16
		// bits; 32-bit integers to f32 round to the nearest f32.
		if to == F64 {
			return Lossless
		}
		// to == F32
		if from.Width() <= 2 {
			return Lossless
		}
		return Rounding

	default: // fromFloat && !toFloat
		// float -> integer both clamps (the integer widths this package
		// has never cover a float's full range) and rounds (no integer
		// exactly represents most floats): the ground truth table marks
		// every float->int pair in our width range ⊗, so Lossy is the
		// minimum sufficient level.
		return Lossy
	}
}

func losslessIntWiden(from, to ScalarType) bool {
	fromSigned, toSigned := from.IsSigned(), to.IsSigned()
	fw, tw := from.Width(), to.Width()

	switch {
	case fromSigned == toSigned:
		return tw >= fw
	case fromSigned && !toSigned:
		// signed -> unsigned never lossless (negative values have no
		// unsigned representation).
		return false
	default: // !fromSigned && toSigned, unsigned -> signed
		// needs strictly more bits to keep the sign bit free.
		return tw > fw
	}
}

// CastAllowed reports whether a cast from `from` to `to` is permitted at the
// given fidelity, per the table in §4.1.
func CastAllowed(from, to ScalarType, have Fidelity) bool {
	return have >= requiredFidelity[from][to]
}

// Cast converts p (which must be a scalar) to the destination scalar type at
// the given fidelity, returning a CastError if the fidelity is insufficient.
func Cast(p Property, to ScalarType, have Fidelity) (Property, error) {
	from := p.typ.Scalar
	if p.typ.Kind != KindScalar {
		return Property{}, fmt.Errorf("typedprop: Cast called on a list Property")
	}

	required := requiredFidelity[from][to]
	if have < required {
		return Property{}, &CastError{From: from, To: to, Have: have, Required: required}
	}

	return castUnchecked(p, to), nil
}

func castUnchecked(p Property, to ScalarType) Property {
	if to.IsFloat() {
		v := p.AsFloat64()
		if to == F32 {
			return NewF32(float32(v))
		}
		return NewF64(v)
	}

	var v int64
	if p.typ.Scalar.IsFloat() {
		// Bound the float first so the int64 conversion is defined; every
		// integer destination range lies well inside +/-2^40.
		v = int64(max(-1<<40, min(1<<40, p.AsFloat64())))
	} else {
		v = p.AsInt64()
	}

	// Integer destinations saturate at their range rather than wrap.
	switch to {
	case I8:
		return NewI8(int8(min(max(v, math.MinInt8), math.MaxInt8)))
	case U8:
		return NewU8(uint8(min(max(v, 0), math.MaxUint8)))
	case I16:
		return NewI16(int16(min(max(v, math.MinInt16), math.MaxInt16)))
	case U16:
		return NewU16(uint16(min(max(v, 0), math.MaxUint16)))
	case I32:
		return NewI32(int32(min(max(v, math.MinInt32), math.MaxInt32)))
	case U32:
		return NewU32(uint32(min(max(v, 0), math.MaxUint32)))
	default:
		panic("typedprop: unreachable scalar type in castUnchecked")
	}
}
