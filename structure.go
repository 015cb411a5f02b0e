// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import "encoding/binary"

// Structure is one record of the table: the common header, the
// formatted area and the private string table following it. Both areas
// are views into the iterated buffer; a structure's string table
// belongs to that structure alone.
type Structure struct {
	Header Header

	// Formatted is the type-specific field area without the header,
	// so len(Formatted) == Header.Length - 4.
	Formatted []byte

	strings stringTable
}

// StringCount returns the number of strings in the structure's string
// table.
func (s *Structure) StringCount() int {
	return len(s.strings)
}

// StringAt resolves a 1-based string reference to the raw bytes of
// the referenced string. Reference 0 resolves to (nil, nil), meaning
// no string. A reference beyond the table fails with
// ErrInvalidStringRef; treating that as fatal or as an empty string is
// the caller's choice (Text chooses empty).
func (s *Structure) StringAt(ref StringRef) ([]byte, error) {
	return s.strings.resolve(ref)
}

// Text resolves a string reference leniently: reference 0 and invalid
// references become the empty string. The bytes are converted as-is,
// no charset validation is applied.
func (s *Structure) Text(ref StringRef) string {
	b, err := s.strings.resolve(ref)
	if err != nil || b == nil {
		return ""
	}

	return string(b)
}

// Strings returns all strings of the structure in table order,
// converted to Go strings.
func (s *Structure) Strings() []string {
	if len(s.strings) == 0 {
		return nil
	}

	strs := make([]string, len(s.strings))
	for i, b := range s.strings {
		strs[i] = string(b)
	}

	return strs
}

// Field access helpers for the typed views. Offsets count from the
// structure start as the SMBIOS tables in DSP0134 do, header included.
// Every access is gated on the declared structure length: fields that
// later specification revisions added beyond this structure's length
// report ErrUnsupportedField instead of reading out of bounds.

func (s *Structure) fieldBytes(off, n int) ([]byte, error) {
	if off < headerLen {
		return nil, ErrUnsupportedField
	}

	if off+n > int(s.Header.Length) {
		return nil, ErrUnsupportedField
	}

	return s.Formatted[off-headerLen : off-headerLen+n], nil
}

func (s *Structure) byteAt(off int) (uint8, error) {
	b, err := s.fieldBytes(off, 1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (s *Structure) wordAt(off int) (uint16, error) {
	b, err := s.fieldBytes(off, 2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

func (s *Structure) dwordAt(off int) (uint32, error) {
	b, err := s.fieldBytes(off, 4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

func (s *Structure) qwordAt(off int) (uint64, error) {
	b, err := s.fieldBytes(off, 8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(b), nil
}

// stringAt reads the string reference at off and resolves it
// strictly. An absent string (reference 0) is returned as "".
func (s *Structure) stringAt(off int) (string, error) {
	ref, err := s.byteAt(off)
	if err != nil {
		return "", err
	}

	b, err := s.strings.resolve(StringRef(ref))
	if err != nil {
		return "", err
	}

	return string(b), nil
}
