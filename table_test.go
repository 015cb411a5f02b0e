// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func endOfTable(t *testing.T) []byte {
	t.Helper()

	return buildStructure(t, TypeEndOfTable, 0xFEFF, nil, nil)
}

func TestTableSingleEndOfTable(t *testing.T) {
	table := NewTable(endOfTable(t))

	s, err := table.Next()
	require.NoError(t, err)
	require.Equal(t, TypeEndOfTable, s.Header.Type)
	require.Empty(t, s.Formatted)
	require.Zero(t, s.StringCount())

	_, err = table.Next()
	require.Equal(t, io.EOF, err)

	// The end state is stable.
	_, err = table.Next()
	require.Equal(t, io.EOF, err)
}

func TestTableEndOfTableWithLoneTerminator(t *testing.T) {
	// Header plus a single string-area terminator byte.
	buf := []byte{127, 4, 0xFF, 0xFE, 0}

	table := NewTable(buf)

	s, err := table.Next()
	require.NoError(t, err)
	require.Equal(t, TypeEndOfTable, s.Header.Type)

	_, err = table.Next()
	require.Equal(t, io.EOF, err)
}

func TestTableEmptyBuffer(t *testing.T) {
	_, err := NewTable(nil).Next()
	require.Equal(t, io.EOF, err)
}

func TestTableBIOSScenario(t *testing.T) {
	// A BIOS information structure of length 18 with vendor and
	// version strings, followed by the end-of-table marker.
	var buf []byte
	buf = append(buf, buildStructure(t, TypeBIOSInformation, 0x0000,
		biosFormatted(1, 2, 0), []string{"ACME", "1.0"})...)
	buf = append(buf, endOfTable(t)...)

	table := NewTable(buf)

	ss, err := table.Structures()
	require.NoError(t, err)
	require.Len(t, ss, 2)

	require.Equal(t, TypeBIOSInformation, ss[0].Header.Type)
	require.Equal(t, uint8(18), ss[0].Header.Length)
	require.Equal(t, TypeEndOfTable, ss[1].Header.Type)

	bios, err := NewBIOSInformation(ss[0])
	require.NoError(t, err)

	vendor, err := bios.Vendor()
	require.NoError(t, err)
	require.Equal(t, "ACME", vendor)

	version, err := bios.BIOSVersion()
	require.NoError(t, err)
	require.Equal(t, "1.0", version)

	// String ref 0: no release date.
	date, err := bios.ReleaseDate()
	require.NoError(t, err)
	require.Equal(t, "", date)
}

func TestTableRoundTrip(t *testing.T) {
	formatted := []byte{0xAA, 0xBB, 0xCC}
	in := buildStructure(t, StructureType(200), 0x0042, formatted, []string{"one", "two"})

	s, err := NewTable(in).Next()
	require.NoError(t, err)

	require.Equal(t, StructureType(200), s.Header.Type)
	require.True(t, s.Header.Type.Vendor())
	require.Equal(t, uint16(0x0042), s.Header.Handle)
	require.Equal(t, uint8(7), s.Header.Length)
	require.Equal(t, formatted, s.Formatted)
	require.Equal(t, []string{"one", "two"}, s.Strings())
}

func TestTableCountHint(t *testing.T) {
	var buf []byte
	buf = append(buf, buildStructure(t, TypeSystemInformation, 1,
		[]byte{1, 2, 3, 4}, []string{"A", "B", "C", "D"})...)
	buf = append(buf, buildStructure(t, TypeSystemInformation, 2,
		[]byte{1, 2, 3, 4}, nil)...)

	// Count hint reached: stop without an end-of-table marker.
	table := NewTableCount(buf, 2)

	ss, err := table.Structures()
	require.NoError(t, err)
	require.Len(t, ss, 2)

	// Count hint cuts the iteration short even with bytes left.
	table = NewTableCount(buf, 1)

	ss, err = table.Structures()
	require.NoError(t, err)
	require.Len(t, ss, 1)

	// Buffer exhausted before the hint: surfaced as truncation, not
	// silent success.
	table = NewTableCount(buf, 3)

	_, err = table.Structures()
	require.ErrorIs(t, err, ErrTruncated)
}

func TestTableErrors(t *testing.T) {
	for _, tt := range []struct {
		name    string
		buf     []byte
		wantErr error
	}{
		{
			name:    "header cut off",
			buf:     []byte{0, 10},
			wantErr: ErrTruncated,
		},
		{
			name:    "length below header size",
			buf:     []byte{0, 3, 0, 0, 0, 0},
			wantErr: ErrInvalidLength,
		},
		{
			name:    "formatted area exceeds buffer",
			buf:     []byte{0, 200, 0, 0, 1, 2, 3},
			wantErr: ErrTruncated,
		},
		{
			name:    "string table missing terminator",
			buf:     append([]byte{1, 4, 0, 0}, "ACME"...),
			wantErr: ErrTruncated,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(tt.buf)

			s, err := table.Next()
			if s != nil {
				t.Fatalf("Next() yielded a partial record %v", s)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Next() error = %v, want %v", err, tt.wantErr)
			}

			// The first fatal error is sticky.
			_, again := table.Next()
			if !errors.Is(again, tt.wantErr) {
				t.Errorf("second Next() error = %v, want %v", again, tt.wantErr)
			}
		})
	}
}

func TestTableMinimalStructure(t *testing.T) {
	// A structure of length 4 has an empty formatted area; typed
	// field accessors must report the fields as absent.
	buf := buildStructure(t, TypeSystemInformation, 7, nil, nil)

	s, err := NewTable(buf).Next()
	require.NoError(t, err)
	require.Empty(t, s.Formatted)

	if _, err := s.byteAt(0x04); !errors.Is(err, ErrUnsupportedField) {
		t.Errorf("byteAt(0x04) error = %v, want %v", err, ErrUnsupportedField)
	}

	if _, err := s.wordAt(0x04); !errors.Is(err, ErrUnsupportedField) {
		t.Errorf("wordAt(0x04) error = %v, want %v", err, ErrUnsupportedField)
	}

	if _, err := s.stringAt(0x04); !errors.Is(err, ErrUnsupportedField) {
		t.Errorf("stringAt(0x04) error = %v, want %v", err, ErrUnsupportedField)
	}
}

func TestTableIndependentIteration(t *testing.T) {
	buf := endOfTable(t)

	t1 := NewTable(buf)
	t2 := NewTable(buf)

	s1, err := t1.Next()
	require.NoError(t, err)

	s2, err := t2.Next()
	require.NoError(t, err)

	require.Equal(t, s1.Header, s2.Header)
}
