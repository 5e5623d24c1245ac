// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ply

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-mesh/meshio/mioerr"
	"github.com/go-mesh/meshio/typedprop"
)

const magicLine = "ply"

// parsedHeader bundles the header and the number of bytes consumed from r,
// so the caller can position a binary body parser correctly even when the
// header was read through a buffering scanner.
type parsedHeader struct {
	header    Header
	bytesRead int64
}

// parseHeader reads a PLY header from r, starting at the magic line, and
// stops immediately after the end_header line. It fails eagerly (§7): no
// body byte is consumed, and no body byte is needed to detect a malformed
// header.
func parseHeader(r io.Reader) (*parsedHeader, error) {
	br := bufio.NewReader(r)

	line, n, err := readLine(br)
	if err != nil {
		return nil, mioerr.Wrap(mioerr.UnexpectedEOF, mioerr.Pos{Binary: true}, err, "reading magic line")
	}
	bytesRead := int64(n)
	if strings.TrimRight(line, "\r") != magicLine {
		return nil, mioerr.New(mioerr.InvalidMagic, mioerr.Pos{Binary: true, Byte: 0},
			"expected %q magic, got %q", magicLine, line)
	}

	h := Header{}
	var currentElemIdx = -1
	sawFormat := false
	lineNo := 1

	for {
		line, n, err := readLine(br)
		if err != nil {
			return nil, mioerr.Wrap(mioerr.UnexpectedEOF, mioerr.Pos{Binary: true, Byte: bytesRead}, err,
				"reading header")
		}
		bytesRead += int64(n)
		lineNo++
		pos := mioerr.Pos{Line: lineNo, Col: 1}

		trimmed := strings.TrimRight(line, "\r")
		if trimmed == "end_header" {
			break
		}

		fields := strings.Fields(trimmed)
		if len(fields) == 0 {
			continue
		}
		h.RawLines = append(h.RawLines, trimmed)

		switch fields[0] {
		case "format":
			if len(fields) != 3 {
				return nil, mioerr.New(mioerr.InvalidHeader, pos, "malformed format line %q", trimmed)
			}
			enc, ok := EncodingFromKeyword(fields[1])
			if !ok {
				return nil, mioerr.New(mioerr.InvalidHeader, pos, "unknown format %q", fields[1])
			}
			if fields[2] != "1.0" {
				return nil, mioerr.New(mioerr.InvalidHeader, pos,
					"unsupported PLY version %q, only 1.0 is accepted", fields[2])
			}
			h.Encoding = enc
			h.Version = fields[2]
			sawFormat = true

		case "comment":
			h.Comments = append(h.Comments, strings.TrimPrefix(trimmed, "comment "))

		case "obj_info":
			h.ObjInfo = append(h.ObjInfo, strings.TrimPrefix(trimmed, "obj_info "))

		case "element":
			if !sawFormat {
				return nil, mioerr.New(mioerr.InvalidHeader, pos, "element line before format line")
			}
			if len(fields) != 3 {
				return nil, mioerr.New(mioerr.InvalidHeader, pos, "malformed element line %q", trimmed)
			}
			count, err := strconv.ParseUint(fields[2], 10, 32)
			if err != nil {
				return nil, mioerr.New(mioerr.InvalidHeader, pos, "invalid element count %q", fields[2])
			}
			h.Elements = append(h.Elements, ElementDef{Name: fields[1], Count: int(count)})
			currentElemIdx = len(h.Elements) - 1

		case "property":
			if currentElemIdx < 0 {
				return nil, mioerr.New(mioerr.InvalidHeader, pos, "property line before any element line")
			}
			def, err := parsePropertyLine(fields[1:], pos)
			if err != nil {
				return nil, err
			}
			elem := &h.Elements[currentElemIdx]
			elem.Properties = append(elem.Properties, def)

		default:
			return nil, mioerr.New(mioerr.InvalidHeader, pos, "unrecognized header keyword %q", fields[0])
		}
	}

	if !sawFormat {
		return nil, mioerr.New(mioerr.InvalidHeader, mioerr.Pos{Binary: true}, "missing format line")
	}

	return &parsedHeader{header: h, bytesRead: bytesRead}, nil
}

func parsePropertyLine(fields []string, pos mioerr.Pos) (PropertyDef, error) {
	if len(fields) < 2 {
		return PropertyDef{}, mioerr.New(mioerr.InvalidHeader, pos, "malformed property line")
	}

	if fields[0] == "list" {
		if len(fields) != 4 {
			return PropertyDef{}, mioerr.New(mioerr.InvalidHeader, pos, "malformed list property line")
		}
		lenType, ok := typedprop.ScalarTypeFromPLYKeyword(fields[1])
		if !ok {
			return PropertyDef{}, mioerr.New(mioerr.UnknownType, pos, "unknown list length type %q", fields[1])
		}
		elemType, ok := typedprop.ScalarTypeFromPLYKeyword(fields[2])
		if !ok {
			return PropertyDef{}, mioerr.New(mioerr.UnknownType, pos, "unknown list element type %q", fields[2])
		}
		return PropertyDef{Name: fields[3], Type: typedprop.List(lenType, elemType)}, nil
	}

	scalar, ok := typedprop.ScalarTypeFromPLYKeyword(fields[0])
	if !ok {
		return PropertyDef{}, mioerr.New(mioerr.UnknownType, pos, "unknown property type %q", fields[0])
	}
	return PropertyDef{Name: fields[1], Type: typedprop.Scalar(scalar)}, nil
}

// readLine reads one '\n'-terminated line, excluding the newline, and
// returns the number of bytes consumed from r (including the newline).
func readLine(br *bufio.Reader) (string, int, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF && len(line) > 0 {
			return line, len(line), nil
		}
		return "", len(line), err
	}
	return strings.TrimSuffix(line, "\n"), len(line), nil
}

// formatHeaderLine renders the header back to PLY text. When h.RawLines was
// populated by parseHeader it is replayed verbatim, preserving comment/
// obj_info position relative to element/property lines exactly, which is
// what the round-trip invariant in §8 requires. A header assembled
// programmatically (RawLines nil) gets lines synthesized from the
// structured fields instead, with comments and obj_info emitted before the
// element sections.
func formatHeaderLine(h *Header) []byte {
	var buf bytes.Buffer
	buf.WriteString("ply\n")

	if h.RawLines != nil {
		for _, line := range h.RawLines {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
		buf.WriteString("end_header\n")
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, "format %s %s\n", h.Encoding.PLYKeyword(), h.Version)
	for _, c := range h.Comments {
		fmt.Fprintf(&buf, "comment %s\n", c)
	}
	for _, o := range h.ObjInfo {
		fmt.Fprintf(&buf, "obj_info %s\n", o)
	}
	for _, elem := range h.Elements {
		fmt.Fprintf(&buf, "element %s %d\n", elem.Name, elem.Count)
		for _, p := range elem.Properties {
			if p.Type.Kind == typedprop.KindList {
				fmt.Fprintf(&buf, "property list %s %s %s\n",
					p.Type.LenType.PLYTypeKeyword(), p.Type.Elem.PLYTypeKeyword(), p.Name)
			} else {
				fmt.Fprintf(&buf, "property %s %s\n", p.Type.Scalar.PLYTypeKeyword(), p.Name)
			}
		}
	}
	buf.WriteString("end_header\n")
	return buf.Bytes()
}
