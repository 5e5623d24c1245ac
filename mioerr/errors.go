// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package mioerr is the shared error taxonomy for mesh I/O parsers and
// writers: a closed set of Kinds, each either recoverable or fatal, carrying
// enough position information for a CLI to print "file:line:col: message".
package mioerr

import (
	"errors"
	"fmt"
)

// Kind is one of the uniform error kinds a reader or writer can report.
type Kind int

// The error kinds named in §4.6.
const (
	Io Kind = iota
	UnexpectedEOF
	InvalidMagic
	InvalidHeader
	UnknownType
	CountMismatch
	MalformedRecord
	ListLengthOverflow
	CastFailed
	MissingProperty
	UnsupportedEncoding
	MeshInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "Io"
	case UnexpectedEOF:
		return "UnexpectedEof"
	case InvalidMagic:
		return "InvalidMagic"
	case InvalidHeader:
		return "InvalidHeader"
	case UnknownType:
		return "UnknownType"
	case CountMismatch:
		return "CountMismatch"
	case MalformedRecord:
		return "MalformedRecord"
	case ListLengthOverflow:
		return "ListLengthOverflow"
	case CastFailed:
		return "CastFailed"
	case MissingProperty:
		return "MissingProperty"
	case UnsupportedEncoding:
		return "UnsupportedEncoding"
	case MeshInvariantViolation:
		return "MeshInvariantViolation"
	default:
		return "Unknown"
	}
}

// Recoverable reports whether a Kind is one the parser may skip past (only
// an unrecognized comment body, which is always kept verbatim rather than
// treated as an error at all — listed here for completeness of the taxonomy
// per §4.6, not because the parser ever constructs one).
func (k Kind) Recoverable() bool { return false }

// Pos locates an error in its source stream. For ASCII PLY it is a
// 1-indexed line and column; the ASCII STL parser leaves Line zero and puts
// a token index in Col. For binary streams it is a byte offset and Line/Col
// are zero.
type Pos struct {
	Byte      int64
	Line, Col int
	Binary    bool
}

func (p Pos) String() string {
	if p.Binary {
		return fmt.Sprintf("byte %d", p.Byte)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Error is the error type the ply and stl parsers, the ply writer and the
// casts in package transfer report. Errors returned by a sink (such as a
// mesh rejecting a face), ToPLY/ToSTL's own checks and IntoRawResult's
// record-count check are plain errors, not wrapped in an Error.
type Error struct {
	Kind   Kind
	Pos    Pos
	Detail string
	Cause  error

	// Extra fields populated for specific kinds, kept alongside Detail so
	// callers that care (e.g. a CastFailed handler widening its fidelity)
	// don't have to parse Detail.
	Expected, Got string
}

func (e *Error) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Pos != (Pos{}) {
		return fmt.Sprintf("%s: %s", e.Pos, msg)
	}
	return msg
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Offset implements a Positioned-style accessor used by callers (e.g. the
// CLI) that want to print "file:line:col:" without a type switch on Kind.
func (e *Error) Offset() (line, col int, isBinary bool) {
	return e.Pos.Line, e.Pos.Col, e.Pos.Binary
}

// New builds an *Error of the given kind with a formatted detail message.
func New(kind Kind, pos Pos, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Detail: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error that carries an underlying cause (typically an I/O
// error from the byte stream).
func Wrap(kind Kind, pos Pos, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Detail: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err (or any error it wraps) is a *Error of kind k, so
// callers can write `mioerr.Is(err, mioerr.UnexpectedEOF)`.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
