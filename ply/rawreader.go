// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ply

import (
	"bufio"
	"encoding/binary"
	"io"
	"strconv"
	"strings"

	"github.com/go-mesh/meshio/mioerr"
	"github.com/go-mesh/meshio/typedprop"
)

// Visitor receives the body in streaming mode (§4.2 "streaming mode"),
// letting a caller (normally the structured facade in package transfer)
// route records into a sink without buffering the whole file.
type Visitor interface {
	// BeginElement is called once per element section, before any of its
	// records.
	BeginElement(def ElementDef) error
	// Record is called once per record within the current element section.
	Record(rec Record) error
	// EndElement is called after the last record of an element section.
	EndElement(def ElementDef) error
}

// byteOrderOf returns the binary.ByteOrder matching enc, or nil for ASCII.
func byteOrderOf(enc Encoding) binary.ByteOrder {
	switch enc {
	case BinaryLittleEndian:
		return binary.LittleEndian
	case BinaryBigEndian:
		return binary.BigEndian
	default:
		return nil
	}
}

// readBody drives v over every element section declared in h, reading from
// r which must be positioned exactly at the first body byte.
func readBody(r *bufio.Reader, h *Header, v Visitor) error {
	switch h.Encoding {
	case ASCII:
		return readBodyASCII(r, h, v)
	default:
		return readBodyBinary(r, h, v)
	}
}

func readBodyBinary(r *bufio.Reader, h *Header, v Visitor) error {
	order := byteOrderOf(h.Encoding)
	byteOff := int64(0)

	for _, elem := range h.Elements {
		if err := v.BeginElement(elem); err != nil {
			return err
		}

		if elem.FixedSize() {
			size := elem.RecordSize()
			buf := make([]byte, size*elem.Count)
			if _, err := io.ReadFull(r, buf); err != nil {
				return mioerr.Wrap(mioerr.UnexpectedEOF, mioerr.Pos{Binary: true, Byte: byteOff}, err,
					"reading %s element records", elem.Name)
			}
			for i := 0; i < elem.Count; i++ {
				rec, err := decodeFixedRecord(buf[i*size:(i+1)*size], elem.Properties, order)
				if err != nil {
					return err
				}
				if err := v.Record(rec); err != nil {
					return err
				}
			}
			byteOff += int64(len(buf))
		} else {
			for i := 0; i < elem.Count; i++ {
				rec, n, err := decodeVariableRecord(r, elem.Properties, order, byteOff)
				if err != nil {
					return err
				}
				byteOff += n
				if err := v.Record(rec); err != nil {
					return err
				}
			}
		}

		if err := v.EndElement(elem); err != nil {
			return err
		}
	}
	return nil
}

func decodeFixedRecord(buf []byte, props []PropertyDef, order binary.ByteOrder) (Record, error) {
	rec := Record{Fields: make([]typedprop.Property, len(props))}
	off := 0
	for i, p := range props {
		w := p.Type.Scalar.Width()
		rec.Fields[i] = decodeScalar(buf[off:off+w], p.Type.Scalar, order)
		off += w
	}
	return rec, nil
}

func decodeVariableRecord(r *bufio.Reader, props []PropertyDef, order binary.ByteOrder, byteOff int64) (Record, int64, error) {
	rec := Record{Fields: make([]typedprop.Property, len(props))}
	consumed := int64(0)

	for i, p := range props {
		if p.Type.Kind == typedprop.KindScalar {
			w := p.Type.Scalar.Width()
			buf := make([]byte, w)
			if _, err := io.ReadFull(r, buf); err != nil {
				return Record{}, 0, mioerr.Wrap(mioerr.UnexpectedEOF,
					mioerr.Pos{Binary: true, Byte: byteOff + consumed}, err, "reading property %q", p.Name)
			}
			consumed += int64(w)
			rec.Fields[i] = decodeScalar(buf, p.Type.Scalar, order)
			continue
		}

		lenBuf := make([]byte, p.Type.LenType.Width())
		if _, err := io.ReadFull(r, lenBuf); err != nil {
			return Record{}, 0, mioerr.Wrap(mioerr.UnexpectedEOF,
				mioerr.Pos{Binary: true, Byte: byteOff + consumed}, err, "reading list length for %q", p.Name)
		}
		consumed += int64(len(lenBuf))
		n := int(decodeScalar(lenBuf, p.Type.LenType, order).AsInt64())
		if n < 0 {
			return Record{}, 0, mioerr.New(mioerr.ListLengthOverflow,
				mioerr.Pos{Binary: true, Byte: byteOff + consumed}, "negative list length for %q", p.Name)
		}

		elemWidth := p.Type.Elem.Width()
		elemBuf := make([]byte, elemWidth*n)
		if _, err := io.ReadFull(r, elemBuf); err != nil {
			return Record{}, 0, mioerr.Wrap(mioerr.UnexpectedEOF,
				mioerr.Pos{Binary: true, Byte: byteOff + consumed}, err, "reading %d list elements for %q", n, p.Name)
		}
		consumed += int64(len(elemBuf))
		rec.Fields[i] = decodeList(elemBuf, p.Type.LenType, p.Type.Elem, order)
	}

	return rec, consumed, nil
}

func decodeScalar(buf []byte, t typedprop.ScalarType, order binary.ByteOrder) typedprop.Property {
	switch t {
	case typedprop.I8:
		return typedprop.NewI8(int8(buf[0]))
	case typedprop.U8:
		return typedprop.NewU8(buf[0])
	case typedprop.I16:
		return typedprop.NewI16(int16(order.Uint16(buf)))
	case typedprop.U16:
		return typedprop.NewU16(order.Uint16(buf))
	case typedprop.I32:
		return typedprop.NewI32(int32(order.Uint32(buf)))
	case typedprop.U32:
		return typedprop.NewU32(order.Uint32(buf))
	case typedprop.F32:
		return typedprop.NewF32(int32BitsToFloat32(order.Uint32(buf)))
	case typedprop.F64:
		return typedprop.NewF64(int64BitsToFloat64(order.Uint64(buf)))
	default:
		panic("ply: unreachable scalar type")
	}
}

func decodeList(buf []byte, lenType, elem typedprop.ScalarType, order binary.ByteOrder) typedprop.Property {
	w := elem.Width()
	n := len(buf) / w

	switch elem {
	case typedprop.I8:
		v := make([]int8, n)
		for i := range v {
			v[i] = int8(buf[i])
		}
		return typedprop.NewListI8(lenType, v)
	case typedprop.U8:
		v := make([]uint8, n)
		copy(v, buf)
		return typedprop.NewListU8(lenType, v)
	case typedprop.I16:
		v := make([]int16, n)
		for i := range v {
			v[i] = int16(order.Uint16(buf[i*w:]))
		}
		return typedprop.NewListI16(lenType, v)
	case typedprop.U16:
		v := make([]uint16, n)
		for i := range v {
			v[i] = order.Uint16(buf[i*w:])
		}
		return typedprop.NewListU16(lenType, v)
	case typedprop.I32:
		v := make([]int32, n)
		for i := range v {
			v[i] = int32(order.Uint32(buf[i*w:]))
		}
		return typedprop.NewListI32(lenType, v)
	case typedprop.U32:
		v := make([]uint32, n)
		for i := range v {
			v[i] = order.Uint32(buf[i*w:])
		}
		return typedprop.NewListU32(lenType, v)
	case typedprop.F32:
		v := make([]float32, n)
		for i := range v {
			v[i] = int32BitsToFloat32(order.Uint32(buf[i*w:]))
		}
		return typedprop.NewListF32(lenType, v)
	case typedprop.F64:
		v := make([]float64, n)
		for i := range v {
			v[i] = int64BitsToFloat64(order.Uint64(buf[i*w:]))
		}
		return typedprop.NewListF64(lenType, v)
	default:
		panic("ply: unreachable list element type")
	}
}

func readBodyASCII(r *bufio.Reader, h *Header, v Visitor) error {
	lineNo := len(h.RawLines) + 2 // magic + header lines already consumed

	for _, elem := range h.Elements {
		if err := v.BeginElement(elem); err != nil {
			return err
		}

		for i := 0; i < elem.Count; i++ {
			line, _, err := readLine(r)
			if err != nil {
				return mioerr.Wrap(mioerr.UnexpectedEOF, mioerr.Pos{Line: lineNo, Col: 1}, err,
					"reading %s record %d", elem.Name, i)
			}
			lineNo++

			rec, err := decodeASCIIRecord(strings.TrimRight(line, "\r"), elem.Properties, lineNo)
			if err != nil {
				return err
			}
			if err := v.Record(rec); err != nil {
				return err
			}
		}

		if err := v.EndElement(elem); err != nil {
			return err
		}
	}
	return nil
}

func decodeASCIIRecord(line string, props []PropertyDef, lineNo int) (Record, error) {
	tokens := strings.Fields(line)
	rec := Record{Fields: make([]typedprop.Property, len(props))}
	pos := 0

	for i, p := range props {
		if p.Type.Kind == typedprop.KindScalar {
			if pos >= len(tokens) {
				return Record{}, mioerr.New(mioerr.MalformedRecord, mioerr.Pos{Line: lineNo, Col: pos + 1},
					"missing token for property %q", p.Name)
			}
			val, err := parseASCIIScalar(tokens[pos], p.Type.Scalar)
			if err != nil {
				return Record{}, mioerr.Wrap(mioerr.MalformedRecord, mioerr.Pos{Line: lineNo, Col: pos + 1}, err,
					"parsing property %q", p.Name)
			}
			rec.Fields[i] = val
			pos++
			continue
		}

		if pos >= len(tokens) {
			return Record{}, mioerr.New(mioerr.MalformedRecord, mioerr.Pos{Line: lineNo, Col: pos + 1},
				"missing list length for property %q", p.Name)
		}
		n, err := strconv.Atoi(tokens[pos])
		if err != nil || n < 0 {
			return Record{}, mioerr.New(mioerr.ListLengthOverflow, mioerr.Pos{Line: lineNo, Col: pos + 1},
				"invalid list length %q for property %q", tokens[pos], p.Name)
		}
		pos++
		if pos+n > len(tokens) {
			return Record{}, mioerr.New(mioerr.MalformedRecord, mioerr.Pos{Line: lineNo, Col: pos + 1},
				"list property %q declares %d elements, only %d tokens remain", p.Name, n, len(tokens)-pos)
		}
		val, err := parseASCIIList(tokens[pos:pos+n], p.Type.LenType, p.Type.Elem)
		if err != nil {
			return Record{}, mioerr.Wrap(mioerr.MalformedRecord, mioerr.Pos{Line: lineNo, Col: pos + 1}, err,
				"parsing list property %q", p.Name)
		}
		rec.Fields[i] = val
		pos += n
	}

	return rec, nil
}

func parseASCIIScalar(tok string, t typedprop.ScalarType) (typedprop.Property, error) {
	if t.IsFloat() {
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return typedprop.Property{}, err
		}
		if t == typedprop.F32 {
			return typedprop.NewF32(float32(f)), nil
		}
		return typedprop.NewF64(f), nil
	}

	if t.IsSigned() {
		i, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return typedprop.Property{}, err
		}
		switch t {
		case typedprop.I8:
			return typedprop.NewI8(int8(i)), nil
		case typedprop.I16:
			return typedprop.NewI16(int16(i)), nil
		default:
			return typedprop.NewI32(int32(i)), nil
		}
	}

	u, err := strconv.ParseUint(tok, 10, 64)
	if err != nil {
		return typedprop.Property{}, err
	}
	switch t {
	case typedprop.U8:
		return typedprop.NewU8(uint8(u)), nil
	case typedprop.U16:
		return typedprop.NewU16(uint16(u)), nil
	default:
		return typedprop.NewU32(uint32(u)), nil
	}
}

func parseASCIIList(toks []string, lenType, elem typedprop.ScalarType) (typedprop.Property, error) {
	scalars := make([]typedprop.Property, len(toks))
	for i, tok := range toks {
		v, err := parseASCIIScalar(tok, elem)
		if err != nil {
			return typedprop.Property{}, err
		}
		scalars[i] = v
	}

	switch elem {
	case typedprop.I8:
		v := make([]int8, len(scalars))
		for i, s := range scalars {
			v[i] = int8(s.AsInt64())
		}
		return typedprop.NewListI8(lenType, v), nil
	case typedprop.U8:
		v := make([]uint8, len(scalars))
		for i, s := range scalars {
			v[i] = uint8(s.AsInt64())
		}
		return typedprop.NewListU8(lenType, v), nil
	case typedprop.I16:
		v := make([]int16, len(scalars))
		for i, s := range scalars {
			v[i] = int16(s.AsInt64())
		}
		return typedprop.NewListI16(lenType, v), nil
	case typedprop.U16:
		v := make([]uint16, len(scalars))
		for i, s := range scalars {
			v[i] = uint16(s.AsInt64())
		}
		return typedprop.NewListU16(lenType, v), nil
	case typedprop.I32:
		v := make([]int32, len(scalars))
		for i, s := range scalars {
			v[i] = int32(s.AsInt64())
		}
		return typedprop.NewListI32(lenType, v), nil
	case typedprop.U32:
		v := make([]uint32, len(scalars))
		for i, s := range scalars {
			v[i] = uint32(s.AsInt64())
		}
		return typedprop.NewListU32(lenType, v), nil
	case typedprop.F32:
		v := make([]float32, len(scalars))
		for i, s := range scalars {
			v[i] = float32(s.AsFloat64())
		}
		return typedprop.NewListF32(lenType, v), nil
	case typedprop.F64:
		v := make([]float64, len(scalars))
		for i, s := range scalars {
			v[i] = s.AsFloat64()
		}
		return typedprop.NewListF64(lenType, v), nil
	default:
		panic("ply: unreachable list element type")
	}
}
