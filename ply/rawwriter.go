// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package ply

import (
	"bufio"
	"io"
)

// WriteRaw re-serializes a RawResult exactly as read, in its own recorded
// encoding, backing the round-trip invariant in §8: re-parsing the output
// must reproduce an equal RawResult, and for binary encodings the bytes
// must match exactly.
func WriteRaw(w io.Writer, result *RawResult) error {
	bw := bufio.NewWriterSize(w, 1<<20)
	if _, err := bw.Write(formatHeaderLine(&result.Header)); err != nil {
		return err
	}

	order := byteOrderOf(result.Header.Encoding)

	for _, group := range result.Groups {
		for _, rec := range group.Records {
			if result.Header.Encoding == ASCII {
				for i, v := range rec.Fields {
					if i > 0 {
						bw.WriteByte(' ')
					}
					writeASCIIValue(bw, v)
				}
				bw.WriteByte('\n')
				continue
			}

			for _, v := range rec.Fields {
				if err := writeBinaryValue(bw, v, order); err != nil {
					return err
				}
			}
		}
	}

	return bw.Flush()
}
