// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package stl

import (
	"bytes"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/go-mesh/meshio/mioerr"
)

// foldCaser case-folds ASCII STL keywords for comparison (§4.3:
// "case-insensitive on keywords"), reusing the same x/text facility the
// teacher's helper.go pulls in for its own text normalization rather than a
// hand-rolled strings.ToLower loop.
var foldCaser = cases.Fold()

func keywordIs(tok, keyword string) bool {
	return foldCaser.String(tok) == keyword
}

// tokenizer walks the whitespace-separated token stream of an ASCII STL
// file (§4.3: "tokens are whitespace-separated"), tracking a token index
// for error reporting in lieu of line/column (the grammar carries no
// newline semantics of its own).
type tokenizer struct {
	toks []string
	i    int
}

func newTokenizer(data []byte) *tokenizer {
	return &tokenizer{toks: strings.Fields(string(data))}
}

func (t *tokenizer) next() (string, bool) {
	if t.i >= len(t.toks) {
		return "", false
	}
	tok := t.toks[t.i]
	t.i++
	return tok, true
}

func (t *tokenizer) peek() (string, bool) {
	if t.i >= len(t.toks) {
		return "", false
	}
	return t.toks[t.i], true
}

func (t *tokenizer) pos() mioerr.Pos { return mioerr.Pos{Line: 0, Col: t.i} }

func (t *tokenizer) expectKeyword(keyword string) error {
	tok, ok := t.next()
	if !ok {
		return mioerr.New(mioerr.UnexpectedEOF, t.pos(), "expected %q, reached end of input", keyword)
	}
	if !keywordIs(tok, keyword) {
		return mioerr.New(mioerr.MalformedRecord, t.pos(), "expected %q, got %q", keyword, tok)
	}
	return nil
}

func (t *tokenizer) float32() (float32, error) {
	tok, ok := t.next()
	if !ok {
		return 0, mioerr.New(mioerr.UnexpectedEOF, t.pos(), "expected a number, reached end of input")
	}
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, mioerr.Wrap(mioerr.MalformedRecord, t.pos(), err, "parsing float token %q", tok)
	}
	return float32(v), nil
}

func (t *tokenizer) vec3() ([3]float32, error) {
	var v [3]float32
	for i := range v {
		f, err := t.float32()
		if err != nil {
			return v, err
		}
		v[i] = f
	}
	return v, nil
}

// parseASCII drives v over the "solid ... endsolid" grammar of §4.3.
func parseASCII(data []byte, v Visitor) error {
	tk := newTokenizer(data)

	if err := tk.expectKeyword("solid"); err != nil {
		return mioerr.New(mioerr.InvalidMagic, tk.pos(), "ascii stl must begin with \"solid\": %v", err)
	}

	name := ""
	if peeked, ok := tk.peek(); ok && !keywordIs(peeked, "facet") && !keywordIs(peeked, "endsolid") {
		name, _ = tk.next()
	}

	if err := v.Begin(name, 0); err != nil {
		return err
	}

	for {
		tok, ok := tk.next()
		if !ok {
			return mioerr.New(mioerr.UnexpectedEOF, tk.pos(), "missing endsolid")
		}
		if keywordIs(tok, "endsolid") {
			// The trailing name, if present, need not match the opening one
			// (§4.3) and is otherwise discarded.
			if _, ok := tk.peek(); ok {
				tk.next()
			}
			break
		}
		if !keywordIs(tok, "facet") {
			return mioerr.New(mioerr.MalformedRecord, tk.pos(), "expected \"facet\" or \"endsolid\", got %q", tok)
		}

		if err := tk.expectKeyword("normal"); err != nil {
			return err
		}
		normal, err := tk.vec3()
		if err != nil {
			return err
		}
		if err := tk.expectKeyword("outer"); err != nil {
			return err
		}
		if err := tk.expectKeyword("loop"); err != nil {
			return err
		}

		var verts [3][3]float32
		for i := range verts {
			if err := tk.expectKeyword("vertex"); err != nil {
				return err
			}
			verts[i], err = tk.vec3()
			if err != nil {
				return err
			}
		}

		if err := tk.expectKeyword("endloop"); err != nil {
			return err
		}
		if err := tk.expectKeyword("endfacet"); err != nil {
			return err
		}

		if err := v.Triangle(Triangle{Normal: normal, Vertices: verts}); err != nil {
			return err
		}
	}

	return v.End()
}

// peekSolidName extracts just the solid name from an ASCII file's opening
// line, without parsing the rest of the body — used by Reader's eager
// header step so constructing a Reader stays O(header), like ply.Open.
func peekSolidName(data []byte) string {
	data = bytes.TrimLeft(data, " \t\r\n")
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	tk := newTokenizer(data)
	tok, ok := tk.next()
	if !ok || !keywordIs(tok, "solid") {
		return ""
	}
	if peeked, ok := tk.peek(); ok && !keywordIs(peeked, "facet") && !keywordIs(peeked, "endsolid") {
		name, _ := tk.next()
		return name
	}
	return ""
}
