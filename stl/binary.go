// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package stl

import (
	"encoding/binary"
	"math"

	"github.com/go-mesh/meshio/mioerr"
)

// parseBinary drives v over the fixed 50-byte-per-record binary layout of
// §4.3. data must include the 80-byte header and 4-byte count; the count is
// re-read here rather than trusted from a caller, so VisitBody stays
// correct even when called directly on bytes whose Header was synthesized
// by peekSolidName's ASCII path (which never happens in practice, but
// keeps this function self-contained).
func parseBinary(data []byte, v Visitor) error {
	if len(data) < binaryHeaderSize+4 {
		return mioerr.New(mioerr.UnexpectedEOF, mioerr.Pos{Binary: true, Byte: int64(len(data))},
			"binary stl shorter than the fixed 84-byte preamble")
	}

	count := binary.LittleEndian.Uint32(data[binaryHeaderSize : binaryHeaderSize+4])
	body := data[binaryHeaderSize+4:]

	want := int64(count) * triangleRecordSize
	if int64(len(body)) < want {
		return mioerr.New(mioerr.CountMismatch, mioerr.Pos{Binary: true, Byte: int64(binaryHeaderSize + 4)},
			"binary stl declares %d triangles (%d bytes) but only %d body bytes remain", count, want, len(body))
	}

	if err := v.Begin("", count); err != nil {
		return err
	}

	for i := uint32(0); i < count; i++ {
		rec := body[int64(i)*triangleRecordSize : int64(i+1)*triangleRecordSize]
		if err := v.Triangle(decodeBinaryTriangle(rec)); err != nil {
			return err
		}
	}

	return v.End()
}

func decodeBinaryTriangle(rec []byte) Triangle {
	var t Triangle
	t.Normal = decodeVec3(rec[0:12])
	t.Vertices[0] = decodeVec3(rec[12:24])
	t.Vertices[1] = decodeVec3(rec[24:36])
	t.Vertices[2] = decodeVec3(rec[36:48])
	t.Attribute = binary.LittleEndian.Uint16(rec[48:50])
	return t
}

func decodeVec3(buf []byte) [3]float32 {
	var v [3]float32
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
	}
	return v
}

func encodeVec3(buf []byte, v [3]float32) {
	for i, c := range v {
		binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(c))
	}
}
