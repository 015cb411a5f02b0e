// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import (
	"io"

	"system-transparency.org/smbios/sterror"
)

// Table iterates over the structures of an SMBIOS table buffer. It
// yields records lazily and in buffer order. A Table is not resumable
// after an error; restart by constructing a new one over the original
// buffer.
//
// Concurrent iteration requires one Table per goroutine; all reads are
// against the immutable buffer, so separate Tables never synchronize.
type Table struct {
	data    []byte
	off     int
	hint    int
	yielded int
	done    bool
	err     error
}

// NewTable returns an iterator over buf. Without a structure count the
// table ends at the end-of-table structure (type 127) or when the
// buffer is exhausted. This matches the 64-bit entry point form, which
// carries no count.
func NewTable(buf []byte) *Table {
	return &Table{data: buf}
}

// NewTableCount returns an iterator over buf that additionally stops
// after count structures, as announced by a 32-bit entry point.
// Running out of buffer before reaching count is reported as
// ErrTruncated instead of a silent end; real-world firmware gets both
// fields wrong and the mismatch must reach the caller.
func NewTableCount(buf []byte, count int) *Table {
	return &Table{data: buf, hint: count}
}

// Next returns the next structure. It returns io.EOF when the table
// ended regularly: after the end-of-table structure, after the
// announced structure count, or at the exact end of the buffer. Any
// other condition yields a typed error; the first error is sticky and
// the sequence ends with it, no partial record is returned.
func (t *Table) Next() (*Structure, error) {
	if t.err != nil {
		return nil, t.err
	}

	if t.done || (t.hint > 0 && t.yielded >= t.hint) {
		return nil, io.EOF
	}

	if t.off == len(t.data) {
		if t.hint > 0 && t.yielded < t.hint {
			t.err = sterror.E(ErrScope, ErrOpNextStructure, "structure count not reached", ErrTruncated)
			return nil, t.err
		}

		return nil, io.EOF
	}

	hdr, err := parseHeader(t.data[t.off:])
	if err != nil {
		t.err = sterror.E(ErrScope, ErrOpNextStructure, err)
		return nil, t.err
	}

	end := t.off + int(hdr.Length)
	if end > len(t.data) {
		t.err = sterror.E(ErrScope, ErrOpNextStructure, "formatted area exceeds buffer", ErrTruncated)
		return nil, t.err
	}

	strs, consumed, err := scanStrings(t.data[end:])
	if err != nil {
		t.err = sterror.E(ErrScope, ErrOpNextStructure, "string area", err)
		return nil, t.err
	}

	s := &Structure{
		Header:    hdr,
		Formatted: t.data[t.off+headerLen : end],
		strings:   strs,
	}

	t.off = end + consumed
	t.yielded++

	if hdr.Type == TypeEndOfTable {
		t.done = true
	}

	return s, nil
}

// Structures drains the iterator and returns all remaining records. On
// error the structures decoded so far are returned along with it.
func (t *Table) Structures() ([]*Structure, error) {
	var ss []*Structure

	for {
		s, err := t.Next()
		if err == io.EOF {
			return ss, nil
		}

		if err != nil {
			return ss, err
		}

		ss = append(ss, s)
	}
}
