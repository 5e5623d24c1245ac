// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package stl

import (
	"encoding/binary"
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/go-mesh/meshio/internal/rlog"
	"github.com/go-mesh/meshio/typedprop"
)

// Options configures a Reader.
type Options struct {
	// Fidelity bounds how lossy a numeric cast the structured layer may
	// perform materializing this file's vertices/normals into a sink's
	// requested scalar type (§4.1, §4.4). STL's own wire values are always
	// f32, so this only matters when a sink requests something narrower.
	Fidelity typedprop.Fidelity

	// Logger is kept with the Reader's options and defaults to a no-op
	// Helper. The parser does not write any diagnostics to it.
	Logger *rlog.Helper
}

// Reader parses an STL file: its encoding and (for ASCII) solid name
// eagerly at construction time, its triangle stream lazily via
// IntoTriangles or VisitBody. A Reader owns one underlying stream and is
// not safe for concurrent use, mirroring ply.Reader.
type Reader struct {
	header Header
	data   []byte
	mm     mmap.MMap
	f      *os.File
	opts   Options
}

// Open mmaps the file at path and detects its encoding immediately.
func Open(path string, opts *Options) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	r := newReader([]byte(data), opts)
	r.mm = data
	r.f = f
	return r, nil
}

// NewReader detects the encoding of an in-memory byte slice.
func NewReader(data []byte, opts *Options) (*Reader, error) {
	return newReader(data, opts), nil
}

func newReader(data []byte, opts *Options) *Reader {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if o.Logger == nil {
		o.Logger = rlog.Nop()
	}

	enc := DetectEncoding(data)
	name := ""
	if enc == ASCII {
		name = peekSolidName(data)
	}

	return &Reader{header: Header{Encoding: enc, Name: name}, data: data, opts: o}
}

// Close releases the underlying mmap and file handle, if any.
func (r *Reader) Close() error {
	if r.mm != nil {
		_ = r.mm.Unmap()
	}
	if r.f != nil {
		return r.f.Close()
	}
	return nil
}

// Header returns the detected encoding and (ASCII-only) solid name.
func (r *Reader) Header() *Header { return &r.header }

// Fidelity reports the maximum cast information loss the structured layer
// may introduce materializing this file's vertices/normals (§4.1, §4.4).
func (r *Reader) Fidelity() typedprop.Fidelity { return r.opts.Fidelity }

// NumTrianglesHint returns the binary header's declared triangle count.
// ASCII carries no count, so it reports false.
func (r *Reader) NumTrianglesHint() (uint32, bool) {
	if r.header.Encoding != Binary || len(r.data) < binaryHeaderSize+4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(r.data[binaryHeaderSize : binaryHeaderSize+4]), true
}

// IntoTriangles materializes every triangle into memory.
func (r *Reader) IntoTriangles() ([]Triangle, error) {
	c := &sliceCollector{}
	if err := r.VisitBody(c); err != nil {
		return nil, err
	}
	return c.tris, nil
}

// VisitBody drives v over the triangle stream in streaming mode, without
// materializing the whole file. The structured facade in package transfer
// is the normal caller.
func (r *Reader) VisitBody(v Visitor) error {
	if r.header.Encoding == ASCII {
		return parseASCII(r.data, v)
	}
	return parseBinary(r.data, v)
}

type sliceCollector struct {
	tris []Triangle
}

func (c *sliceCollector) Begin(name string, hint uint32) error {
	if hint > 0 {
		c.tris = make([]Triangle, 0, hint)
	}
	return nil
}

func (c *sliceCollector) Triangle(t Triangle) error {
	c.tris = append(c.tris, t)
	return nil
}

func (c *sliceCollector) End() error { return nil }

// Fuzz is the go-fuzz entry point, matching ply.Fuzz and the teacher's
// single-function fuzz.go convention.
func Fuzz(data []byte) int {
	r, err := NewReader(data, nil)
	if err != nil {
		return 0
	}
	if _, err := r.IntoTriangles(); err != nil {
		return 0
	}
	return 1
}
