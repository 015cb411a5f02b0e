// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import "bytes"

// StringRef is a 1-based index into a structure's private string
// table. 0 means "no string".
type StringRef uint8

// stringTable holds the string area of one structure as views into
// the source buffer, in table order, without the terminator. The
// format does not mandate a charset, so entries stay raw bytes.
type stringTable [][]byte

// scanStrings splits the string area at the start of b and returns the
// table plus the number of bytes the area occupies.
//
// The area is a sequence of NUL-terminated byte strings closed by an
// extra NUL, so an empty area is canonically encoded as two NUL bytes.
// A lone NUL is accepted as an empty area too; some tooling emits only
// the area terminator when there are no strings.
//
// A missing terminator is reported as ErrTruncated.
func scanStrings(b []byte) (stringTable, int, error) {
	if len(b) == 0 {
		return nil, 0, ErrTruncated
	}

	if b[0] == 0 {
		if len(b) >= 2 && b[1] == 0 {
			return nil, 2, nil
		}

		return nil, 1, nil
	}

	var table stringTable

	off := 0
	for {
		i := bytes.IndexByte(b[off:], 0)
		if i < 0 {
			return nil, 0, ErrTruncated
		}

		if i == 0 {
			// Empty segment, the list terminator.
			return table, off + 1, nil
		}

		table = append(table, b[off:off+i])

		off += i + 1
		if off == len(b) {
			// The last string's NUL was also the last byte,
			// leaving no room for the terminator.
			return nil, 0, ErrTruncated
		}
	}
}

// resolve maps ref to its string. Index 0 resolves to no string at
// all, which is not an error.
func (t stringTable) resolve(ref StringRef) ([]byte, error) {
	if ref == 0 {
		return nil, nil
	}

	if int(ref) > len(t) {
		return nil, ErrInvalidStringRef
	}

	return t[ref-1], nil
}
