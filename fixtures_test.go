// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import (
	"testing"

	"github.com/u-root/uio/uio"
)

// buildStructure encodes one structure: header, formatted area and
// string area. An empty string list is encoded as the canonical
// double NUL.
func buildStructure(t *testing.T, typ StructureType, handle uint16, formatted []byte, strs []string) []byte {
	t.Helper()

	buf := uio.NewLittleEndianBuffer(nil)
	buf.Write8(uint8(typ))
	buf.Write8(uint8(headerLen + len(formatted)))
	buf.Write16(handle)
	buf.WriteBytes(formatted)

	for _, s := range strs {
		buf.WriteBytes([]byte(s))
		buf.Write8(0)
	}

	buf.Write8(0)

	if len(strs) == 0 {
		buf.Write8(0)
	}

	return buf.Data()
}

// patchChecksum stores the byte at off that makes b[from:to] sum to
// zero.
func patchChecksum(b []byte, off, from, to int) {
	b[off] = 0

	var sum uint8
	for _, c := range b[from:to] {
		sum += c
	}

	b[off] = -sum
}

// buildEntryPoint32 encodes a valid 31-byte "_SM_" entry point.
func buildEntryPoint32(t *testing.T, addr uint32, tableLen, count uint16) []byte {
	t.Helper()

	buf := uio.NewLittleEndianBuffer(nil)
	buf.WriteBytes(anchor32)
	buf.Write8(0) // checksum, patched below
	buf.Write8(entryPoint32Len)
	buf.Write8(2) // major
	buf.Write8(8) // minor
	buf.Write16(0x1000)
	buf.Write8(0)
	buf.WriteBytes([]byte{0xA0, 0xA1, 0xA2, 0xA3, 0xA4})
	buf.WriteBytes(anchor32Intermediate)
	buf.Write8(0) // intermediate checksum, patched below
	buf.Write16(tableLen)
	buf.Write32(addr)
	buf.Write16(count)
	buf.Write8(0x28)

	b := buf.Data()
	patchChecksum(b, 0x15, intermediateOff, entryPoint32Len)
	patchChecksum(b, 0x04, 0, entryPoint32Len)

	return b
}

// buildEntryPoint64 encodes a valid 24-byte "_SM3_" entry point.
func buildEntryPoint64(t *testing.T, addr uint64, maxSize uint32) []byte {
	t.Helper()

	buf := uio.NewLittleEndianBuffer(nil)
	buf.WriteBytes(anchor64)
	buf.Write8(0) // checksum, patched below
	buf.Write8(entryPoint64Len)
	buf.Write8(3) // major
	buf.Write8(4) // minor
	buf.Write8(0) // docrev
	buf.Write8(1) // revision
	buf.Write8(0) // reserved
	buf.Write32(maxSize)
	buf.Write64(addr)

	b := buf.Data()
	patchChecksum(b, 0x05, 0, entryPoint64Len)

	return b
}

// biosFormatted encodes a minimal SMBIOS 2.0 type 0 formatted area
// (14 bytes, structure length 0x12) with the given string refs.
func biosFormatted(vendor, version, date StringRef) []byte {
	buf := uio.NewLittleEndianBuffer(nil)
	buf.Write8(uint8(vendor))
	buf.Write8(uint8(version))
	buf.Write16(0xE800) // starting address segment
	buf.Write8(uint8(date))
	buf.Write8(0x0F)                // 1 MiB ROM
	buf.Write64(1<<7 | 1<<9 | 1<<4) // PCI, PnP, ISA

	return buf.Data()
}
