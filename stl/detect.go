// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package stl

import (
	"bytes"
	"encoding/binary"
)

// DetectEncoding applies the §4.3/§8-scenario-5 heuristic: a file whose
// length equals 84 + 50*N for the u32 N read at offset 80 is binary,
// regardless of whether it also happens to start with "solid" — the length
// check wins the ambiguous case. Otherwise a leading "solid" keyword
// (case-insensitive, modulo leading whitespace) indicates ASCII; a file
// starting with anything else is routed to binary, per §4.3.
func DetectEncoding(data []byte) Encoding {
	if len(data) >= binaryHeaderSize+4 {
		n := binary.LittleEndian.Uint32(data[binaryHeaderSize : binaryHeaderSize+4])
		if n > 0 && int64(binaryHeaderSize+4)+int64(n)*triangleRecordSize == int64(len(data)) {
			return Binary
		}
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) >= 5 && foldCaser.String(string(trimmed[:5])) == "solid" {
		return ASCII
	}

	return Binary
}
