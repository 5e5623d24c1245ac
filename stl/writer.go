// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
)

// WriteOptions configures the STL writer. Encoding chooses ASCII or binary;
// Name is the solid name (ASCII only — binary carries none).
type WriteOptions struct {
	Encoding Encoding
	Name     string
}

// Write emits triangles in the requested encoding. Each Triangle's Normal
// is written as given: computing a missing face normal from vertex
// positions (§4.5's cross-product rule) is the structured writer's job in
// package transfer, which has the mesh and property maps this package
// deliberately knows nothing about.
func Write(w io.Writer, opts WriteOptions, triangles []Triangle) error {
	if opts.Encoding == ASCII {
		return writeASCII(w, opts.Name, triangles)
	}
	return writeBinary(w, triangles)
}

func writeASCII(w io.Writer, name string, triangles []Triangle) error {
	bw := bufio.NewWriterSize(w, 1<<20)

	fmt.Fprintf(bw, "solid %s\n", name)
	for _, t := range triangles {
		fmt.Fprintf(bw, "facet normal %s %s %s\n", formatASCIIFloat(t.Normal[0]), formatASCIIFloat(t.Normal[1]), formatASCIIFloat(t.Normal[2]))
		bw.WriteString("outer loop\n")
		for _, v := range t.Vertices {
			fmt.Fprintf(bw, "vertex %s %s %s\n", formatASCIIFloat(v[0]), formatASCIIFloat(v[1]), formatASCIIFloat(v[2]))
		}
		bw.WriteString("endloop\n")
		bw.WriteString("endfacet\n")
	}
	fmt.Fprintf(bw, "endsolid %s\n", name)

	return bw.Flush()
}

// formatASCIIFloat renders a float in mantissa-and-exponent form ("m
// Esgnexp"), per §4.3's note that the STL "specification" underspecifies
// ASCII float syntax and this writer picks a deterministic one.
func formatASCIIFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'E', -1, 32)
}

func writeBinary(w io.Writer, triangles []Triangle) error {
	bw := bufio.NewWriterSize(w, 1<<20)

	var header [binaryHeaderSize]byte
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	var countBuf [4]byte
	binary.LittleEndian.PutUint32(countBuf[:], uint32(len(triangles)))
	if _, err := bw.Write(countBuf[:]); err != nil {
		return err
	}

	var rec [triangleRecordSize]byte
	for _, t := range triangles {
		encodeVec3(rec[0:12], t.Normal)
		encodeVec3(rec[12:24], t.Vertices[0])
		encodeVec3(rec[24:36], t.Vertices[1])
		encodeVec3(rec[36:48], t.Vertices[2])
		binary.LittleEndian.PutUint16(rec[48:50], t.Attribute)
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}

	return bw.Flush()
}
