// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package typedprop

import "testing"

func TestCastAllowedTable(t *testing.T) {
	// Representative (from, to, fidelity) triples, hand-derived from the
	// ground truth table in original_source/src/cast.rs: blank cells there
	// are Lossless; '×' (clamping only) is Clamping; '○' (rounding only) is
	// Rounding; '⊗' (both) is Lossy.
	tests := []struct {
		name     string
		from, to ScalarType
		fidelity Fidelity
		want     bool
	}{
		{"same type always lossless", I32, I32, Lossless, true},
		{"int widen same signedness lossless", I8, I16, Lossless, true},
		{"int narrow same signedness needs clamping", I16, I8, Lossless, false},
		{"int narrow same signedness allowed at clamping", I16, I8, Clamping, true},
		{"unsigned widen to signed needs more bits: lossless", U16, I32, Lossless, true},
		{"unsigned to signed same width not lossless", U8, I8, Lossless, false},
		{"unsigned to signed same width allowed at clamping", U8, I8, Clamping, true},
		{"signed to unsigned never lossless", I32, U32, Lossless, false},
		{"signed to unsigned allowed at clamping", I32, U32, Clamping, true},
		{"f32 to f64 lossless widen", F32, F64, Lossless, true},
		{"f64 to f32 not allowed below lossy", F64, F32, Rounding, false},
		{"f64 to f32 allowed at lossy", F64, F32, Lossy, true},
		{"narrow int to f32 lossless", I16, F32, Lossless, true},
		{"wide int to f32 needs rounding", I32, F32, Lossless, false},
		{"wide int to f32 allowed at rounding", I32, F32, Rounding, true},
		{"any int to f64 lossless", U32, F64, Lossless, true},
		{"float to int not allowed below lossy", F32, I32, Rounding, false},
		{"float to int allowed at lossy", F32, I32, Lossy, true},
		{"f64 to int not allowed below lossy", F64, I8, Clamping, false},
		{"f64 to int allowed at lossy", F64, I8, Lossy, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CastAllowed(tc.from, tc.to, tc.fidelity); got != tc.want {
				t.Errorf("CastAllowed(%s, %s, %s) = %v, want %v", tc.from, tc.to, tc.fidelity, got, tc.want)
			}
		})
	}
}

func TestCastFailsBelowRequiredFidelity(t *testing.T) {
	p := NewF64(3.5)
	_, err := Cast(p, F32, Rounding)
	if err == nil {
		t.Fatal("Cast(f64, f32, Rounding) err = nil, want CastError")
	}

	ce, ok := err.(*CastError)
	if !ok {
		t.Fatalf("Cast() err type = %T, want *CastError", err)
	}
	if ce.From != F64 || ce.To != F32 || ce.Have != Rounding || ce.Required != Lossy {
		t.Errorf("CastError = %+v, want {From:f64 To:f32 Have:rounding Required:lossy}", ce)
	}
}

func TestCastSucceedsAtSufficientFidelity(t *testing.T) {
	p := NewF32(2.5)
	got, err := Cast(p, F64, Lossless)
	if err != nil {
		t.Fatalf("Cast(f32, f64, Lossless) err = %v", err)
	}
	if got.Type().Scalar != F64 {
		t.Errorf("Cast() result type = %s, want f64", got.Type().Scalar)
	}
	if got.AsFloat64() != 2.5 {
		t.Errorf("Cast() result value = %v, want 2.5", got.AsFloat64())
	}
}

func TestCastOnListPropertyErrors(t *testing.T) {
	list := NewListU32(U8, []uint32{1, 2, 3})
	if _, err := Cast(list, F32, Lossy); err == nil {
		t.Error("Cast() on a list Property err = nil, want error")
	}
}

func TestFidelityString(t *testing.T) {
	tests := []struct {
		f    Fidelity
		want string
	}{
		{Lossless, "lossless"},
		{Clamping, "clamping"},
		{Rounding, "rounding"},
		{Lossy, "lossy"},
	}
	for _, tc := range tests {
		if got := tc.f.String(); got != tc.want {
			t.Errorf("Fidelity(%d).String() = %q, want %q", tc.f, got, tc.want)
		}
	}
}
