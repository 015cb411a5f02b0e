// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package smbios parses SMBIOS entry points and structure tables.
//
// The caller provides the raw bytes: the firmware-provided entry point
// (31 bytes for the 32-bit "_SM_" form, 24 bytes for the 64-bit "_SM3_"
// form) and a buffer covering the structure table. Locating those bytes
// in physical or firmware memory is not part of this package.
//
// A structure table is a packed sequence of variable-length structures.
// Each structure starts with a 4-byte header (type, length, handle),
// followed by its formatted area and a trailing set of NUL-terminated
// strings closed by an extra NUL. Table iterates over such a buffer and
// yields one Structure view per record; typed views like
// BIOSInformation decode the formatted area of known structure types.
//
// All views reference the caller's buffer without copying. The buffer
// must stay alive and unmodified for as long as any derived Structure
// or string slice is in use.
package smbios

// Options controls parsing strictness. The zero value is the strict
// default.
type Options struct {
	// AllowBadChecksum continues entry point parsing when the
	// checksum over the declared length does not sum to zero. Some
	// vendor firmware ships broken checksums; opting in here trades
	// integrity checking for compatibility. The parsed entry point
	// still records the result, see EntryPoint.ChecksumOK.
	AllowBadChecksum bool
}

// checksumOK sums b as unsigned bytes with wraparound and reports
// whether the sum is zero. Both entry point forms store their checksum
// byte such that the covered region sums to zero when intact.
func checksumOK(b []byte) bool {
	var sum uint8
	for _, c := range b {
		sum += c
	}

	return sum == 0
}
