// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ply

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/go-mesh/meshio/mioerr"
	"github.com/go-mesh/meshio/typedprop"
)

// AttrSource is a type-erased, per-record property source a PLY writer can
// attach to an element group: given a record index it yields the typed
// value for that record, or reports it missing. Package transfer adapts
// concrete propmap.PropStore values to this interface so the writer itself
// never needs to know about mesh handles or generics.
type AttrSource interface {
	Name() string
	Type() typedprop.Type
	Value(idx uint32) (typedprop.Property, bool)
}

// ElementSpec describes one element section to emit: its name, record
// count, and the attached attribute sources providing its properties in
// declaration order.
type ElementSpec struct {
	Name  string
	Count int
	Attrs []AttrSource
}

// WriteOptions configures the PLY writer.
type WriteOptions struct {
	Encoding Encoding
	Comments []string
	ObjInfo  []string
}

// Write emits a complete PLY file: header reflecting every attached
// attribute source (§4.5), followed by the body in the requested encoding,
// iterating each element's records in ascending index order.
func Write(w io.Writer, opts WriteOptions, elements []ElementSpec) error {
	h := Header{Encoding: opts.Encoding, Version: "1.0", Comments: opts.Comments, ObjInfo: opts.ObjInfo}
	for _, es := range elements {
		def := ElementDef{Name: es.Name, Count: es.Count}
		for _, a := range es.Attrs {
			def.Properties = append(def.Properties, PropertyDef{Name: a.Name(), Type: a.Type()})
		}
		h.Elements = append(h.Elements, def)
	}

	bw := bufio.NewWriterSize(w, 1<<20)
	if _, err := bw.Write(formatHeaderLine(&h)); err != nil {
		return err
	}

	for _, es := range elements {
		if err := writeElementBody(bw, opts.Encoding, es); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func writeElementBody(bw *bufio.Writer, enc Encoding, es ElementSpec) error {
	order := byteOrderOf(enc)

	for i := 0; i < es.Count; i++ {
		idx := uint32(i)

		if enc == ASCII {
			for j, a := range es.Attrs {
				v, ok := a.Value(idx)
				if !ok {
					return mioerr.New(mioerr.MissingProperty, mioerr.Pos{},
						"%s[%d]: missing property %q", es.Name, i, a.Name())
				}
				if j > 0 {
					bw.WriteByte(' ')
				}
				writeASCIIValue(bw, v)
			}
			bw.WriteByte('\n')
			continue
		}

		for _, a := range es.Attrs {
			v, ok := a.Value(idx)
			if !ok {
				return mioerr.New(mioerr.MissingProperty, mioerr.Pos{Binary: true},
					"%s[%d]: missing property %q", es.Name, i, a.Name())
			}
			if err := writeBinaryValue(bw, v, order); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeASCIIValue(bw *bufio.Writer, v typedprop.Property) {
	if v.IsList() {
		l := v.List()
		n := l.Len()
		bw.WriteString(strconv.Itoa(n))
		writeASCIIListElements(bw, v)
		return
	}
	writeASCIIScalar(bw, v)
}

func writeASCIIScalar(bw *bufio.Writer, v typedprop.Property) {
	t := v.Type().Scalar
	if t.IsFloat() {
		bw.WriteString(strconv.FormatFloat(v.AsFloat64(), 'g', -1, floatBitSize(t)))
		return
	}
	if t.IsSigned() {
		bw.WriteString(strconv.FormatInt(v.AsInt64(), 10))
		return
	}
	bw.WriteString(strconv.FormatUint(uint64(uint32(v.AsInt64())), 10))
}

func floatBitSize(t typedprop.ScalarType) int {
	if t == typedprop.F32 {
		return 32
	}
	return 64
}

func writeASCIIListElements(bw *bufio.Writer, v typedprop.Property) {
	l := v.List()
	elem := v.Type().Elem
	n := l.Len()
	for i := 0; i < n; i++ {
		bw.WriteByte(' ')
		switch elem {
		case typedprop.I8:
			bw.WriteString(strconv.FormatInt(int64(l.I8[i]), 10))
		case typedprop.U8:
			bw.WriteString(strconv.FormatUint(uint64(l.U8[i]), 10))
		case typedprop.I16:
			bw.WriteString(strconv.FormatInt(int64(l.I16[i]), 10))
		case typedprop.U16:
			bw.WriteString(strconv.FormatUint(uint64(l.U16[i]), 10))
		case typedprop.I32:
			bw.WriteString(strconv.FormatInt(int64(l.I32[i]), 10))
		case typedprop.U32:
			bw.WriteString(strconv.FormatUint(uint64(l.U32[i]), 10))
		case typedprop.F32:
			bw.WriteString(strconv.FormatFloat(float64(l.F32[i]), 'g', -1, 32))
		case typedprop.F64:
			bw.WriteString(strconv.FormatFloat(l.F64[i], 'g', -1, 64))
		}
	}
}

func writeBinaryValue(bw *bufio.Writer, v typedprop.Property, order binary.ByteOrder) error {
	if !v.IsList() {
		return writeBinaryScalar(bw, v, order)
	}

	l := v.List()
	n := l.Len()
	lenBuf := make([]byte, v.Type().LenType.Width())
	putUint(lenBuf, uint64(n), order)
	if _, err := bw.Write(lenBuf); err != nil {
		return err
	}

	elem := v.Type().Elem
	w := elem.Width()
	buf := make([]byte, w)
	for i := 0; i < n; i++ {
		switch elem {
		case typedprop.I8:
			buf[0] = byte(l.I8[i])
		case typedprop.U8:
			buf[0] = l.U8[i]
		case typedprop.I16:
			order.PutUint16(buf, uint16(l.I16[i]))
		case typedprop.U16:
			order.PutUint16(buf, l.U16[i])
		case typedprop.I32:
			order.PutUint32(buf, uint32(l.I32[i]))
		case typedprop.U32:
			order.PutUint32(buf, l.U32[i])
		case typedprop.F32:
			order.PutUint32(buf, float32ToBits(l.F32[i]))
		case typedprop.F64:
			order.PutUint64(buf, float64ToBits(l.F64[i]))
		}
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return nil
}

func writeBinaryScalar(bw *bufio.Writer, v typedprop.Property, order binary.ByteOrder) error {
	t := v.Type().Scalar
	buf := make([]byte, t.Width())
	switch t {
	case typedprop.I8, typedprop.U8:
		buf[0] = byte(v.Bits())
	case typedprop.I16, typedprop.U16:
		order.PutUint16(buf, uint16(v.Bits()))
	case typedprop.I32, typedprop.U32:
		order.PutUint32(buf, uint32(v.Bits()))
	case typedprop.F32:
		order.PutUint32(buf, uint32(v.Bits()))
	case typedprop.F64:
		order.PutUint64(buf, v.Bits())
	default:
		return fmt.Errorf("ply: unreachable scalar type %s", t)
	}
	_, err := bw.Write(buf)
	return err
}

func putUint(buf []byte, v uint64, order binary.ByteOrder) {
	switch len(buf) {
	case 1:
		buf[0] = byte(v)
	case 2:
		order.PutUint16(buf, uint16(v))
	case 4:
		order.PutUint32(buf, uint32(v))
	}
}
