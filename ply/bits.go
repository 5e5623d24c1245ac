// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ply

import "math"

func int32BitsToFloat32(b uint32) float32 { return math.Float32frombits(b) }
func int64BitsToFloat64(b uint64) float64 { return math.Float64frombits(b) }
func float32ToBits(v float32) uint32      { return math.Float32bits(v) }
func float64ToBits(v float64) uint64      { return math.Float64bits(v) }
