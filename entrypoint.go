// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import (
	"bytes"

	"github.com/u-root/uio/uio"
	"system-transparency.org/smbios/sterror"
)

// Anchor strings of the two entry point formats.
var (
	anchor32             = []byte("_SM_")
	anchor32Intermediate = []byte("_DMI_")
	anchor64             = []byte("_SM3_")
)

const (
	// entryPoint32Len is the fixed size of the 32-bit entry point.
	entryPoint32Len = 31
	// entryPoint64Len is the fixed size of the 64-bit entry point.
	entryPoint64Len = 24

	// intermediateOff is the offset of the "_DMI_" subsection
	// within the 32-bit entry point. Its checksum covers the bytes
	// from there to the end of the fixed header.
	intermediateOff = 0x10
)

// EntryPoint is the normalized view over both entry point formats. It
// describes where the structure table lives and how large it is.
type EntryPoint interface {
	// Table returns the physical address of the structure table and
	// its size in bytes. For the 64-bit format the size is the
	// maximum possible size, the actual table ends at the
	// end-of-table structure.
	Table() (address uint64, size int)

	// Version returns the SMBIOS version. The revision is the
	// document revision of the 64-bit format and 0 for the 32-bit
	// format.
	Version() (major, minor, revision uint8)

	// ChecksumOK reports the checksum validation result recorded
	// during parsing. It can only be false after parsing with
	// Options.AllowBadChecksum.
	ChecksumOK() bool
}

// EntryPoint32 is the 31-byte "_SM_" entry point defined since SMBIOS
// 2.1. It carries an exact table length and structure count.
type EntryPoint32 struct {
	Checksum             uint8
	Length               uint8
	Major                uint8
	Minor                uint8
	MaxStructureSize     uint16
	Revision             uint8
	Formatted            [5]byte
	IntermediateChecksum uint8
	TableLength          uint16
	TableAddress         uint32
	StructureCount       uint16
	BCDRevision          uint8

	checksumOK bool
}

var _ EntryPoint = &EntryPoint32{}

// Table implements EntryPoint.
func (e *EntryPoint32) Table() (uint64, int) {
	return uint64(e.TableAddress), int(e.TableLength)
}

// Version implements EntryPoint.
func (e *EntryPoint32) Version() (uint8, uint8, uint8) {
	return e.Major, e.Minor, 0
}

// ChecksumOK implements EntryPoint.
func (e *EntryPoint32) ChecksumOK() bool {
	return e.checksumOK
}

// EntryPoint64 is the 24-byte "_SM3_" entry point defined since SMBIOS
// 3.0. It supports 64-bit table addresses and reports only a maximum
// table size; the table ends at the end-of-table structure.
type EntryPoint64 struct {
	Checksum uint8
	Length   uint8
	Major    uint8
	Minor    uint8
	DocRev   uint8
	Revision uint8
	MaxSize  uint32
	Address  uint64

	checksumOK bool
}

var _ EntryPoint = &EntryPoint64{}

// Table implements EntryPoint.
func (e *EntryPoint64) Table() (uint64, int) {
	return e.Address, int(e.MaxSize)
}

// Version implements EntryPoint.
func (e *EntryPoint64) Version() (uint8, uint8, uint8) {
	return e.Major, e.Minor, e.DocRev
}

// ChecksumOK implements EntryPoint.
func (e *EntryPoint64) ChecksumOK() bool {
	return e.checksumOK
}

// ParseEntryPoint sniffs the anchor string of b and parses it as the
// matching entry point format.
func ParseEntryPoint(b []byte, opts Options) (EntryPoint, error) {
	switch {
	case len(b) >= len(anchor64) && bytes.Equal(b[:len(anchor64)], anchor64):
		return ParseEntryPoint64(b, opts)
	case len(b) >= len(anchor32) && bytes.Equal(b[:len(anchor32)], anchor32):
		return ParseEntryPoint32(b, opts)
	default:
		return nil, sterror.E(ErrScope, ErrOpParseEntryPoint, ErrBadAnchor)
	}
}

// ParseEntryPoint32 parses the 31-byte "_SM_" entry point form. It is
// a pure function of b; no bytes beyond the declared length are
// inspected.
func ParseEntryPoint32(b []byte, opts Options) (*EntryPoint32, error) {
	const op = ErrOpParseEntryPoint32

	if len(b) < entryPoint32Len {
		return nil, sterror.E(ErrScope, op, ErrTruncated)
	}

	lex := uio.NewLittleEndianBuffer(b)
	if !bytes.Equal(lex.Consume(len(anchor32)), anchor32) {
		return nil, sterror.E(ErrScope, op, ErrBadAnchor)
	}

	ep := &EntryPoint32{}
	ep.Checksum = lex.Read8()
	ep.Length = lex.Read8()
	ep.Major = lex.Read8()
	ep.Minor = lex.Read8()
	ep.MaxStructureSize = lex.Read16()
	ep.Revision = lex.Read8()
	lex.ReadBytes(ep.Formatted[:])

	if !bytes.Equal(lex.Consume(len(anchor32Intermediate)), anchor32Intermediate) {
		return nil, sterror.E(ErrScope, op, ErrBadAnchor)
	}

	ep.IntermediateChecksum = lex.Read8()
	ep.TableLength = lex.Read16()
	ep.TableAddress = lex.Read32()
	ep.StructureCount = lex.Read16()
	ep.BCDRevision = lex.Read8()

	if err := lex.Error(); err != nil {
		return nil, sterror.E(ErrScope, op, ErrTruncated)
	}

	switch {
	case int(ep.Length) < entryPoint32Len:
		return nil, sterror.E(ErrScope, op, ErrInvalidLength)
	case int(ep.Length) > len(b):
		return nil, sterror.E(ErrScope, op, ErrTruncated)
	}

	// The full checksum covers the declared length, the intermediate
	// checksum covers the "_DMI_" subsection only.
	ep.checksumOK = checksumOK(b[:ep.Length]) && checksumOK(b[intermediateOff:entryPoint32Len])
	if !ep.checksumOK && !opts.AllowBadChecksum {
		return nil, sterror.E(ErrScope, op, ErrChecksumMismatch)
	}

	return ep, nil
}

// ParseEntryPoint64 parses the 24-byte "_SM3_" entry point form. It is
// a pure function of b; no bytes beyond the declared length are
// inspected.
func ParseEntryPoint64(b []byte, opts Options) (*EntryPoint64, error) {
	const op = ErrOpParseEntryPoint64

	if len(b) < entryPoint64Len {
		return nil, sterror.E(ErrScope, op, ErrTruncated)
	}

	lex := uio.NewLittleEndianBuffer(b)
	if !bytes.Equal(lex.Consume(len(anchor64)), anchor64) {
		return nil, sterror.E(ErrScope, op, ErrBadAnchor)
	}

	ep := &EntryPoint64{}
	ep.Checksum = lex.Read8()
	ep.Length = lex.Read8()
	ep.Major = lex.Read8()
	ep.Minor = lex.Read8()
	ep.DocRev = lex.Read8()
	ep.Revision = lex.Read8()
	lex.Read8() // reserved
	ep.MaxSize = lex.Read32()
	ep.Address = lex.Read64()

	if err := lex.Error(); err != nil {
		return nil, sterror.E(ErrScope, op, ErrTruncated)
	}

	switch {
	case int(ep.Length) < entryPoint64Len:
		return nil, sterror.E(ErrScope, op, ErrInvalidLength)
	case int(ep.Length) > len(b):
		return nil, sterror.E(ErrScope, op, ErrTruncated)
	}

	ep.checksumOK = checksumOK(b[:ep.Length])
	if !ep.checksumOK && !opts.AllowBadChecksum {
		return nil, sterror.E(ErrScope, op, ErrChecksumMismatch)
	}

	return ep, nil
}
