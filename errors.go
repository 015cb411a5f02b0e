// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import (
	"errors"

	"system-transparency.org/smbios/sterror"
)

// Scope and operations used for raising Errors of this package.
const (
	ErrScope sterror.Scope = "SMBIOS"

	ErrOpParseEntryPoint   sterror.Op = "parse entry point"
	ErrOpParseEntryPoint32 sterror.Op = "parse 32-bit entry point"
	ErrOpParseEntryPoint64 sterror.Op = "parse 64-bit entry point"
	ErrOpNextStructure     sterror.Op = "next structure"
)

// Errors which may be raised and wrapped in this package. Use
// errors.Is to test for them.
var (
	// ErrBadAnchor reports entry point magic bytes that do not
	// match the expected anchor string.
	ErrBadAnchor = errors.New("anchor string mismatch")

	// ErrChecksumMismatch reports a checksum region that does not
	// sum to zero. Recoverable only via Options.AllowBadChecksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrTruncated reports that fewer bytes remain than a field,
	// structure or string terminator requires.
	ErrTruncated = errors.New("unexpected end of data")

	// ErrInvalidLength reports a structure length smaller than the
	// mandatory 4-byte header.
	ErrInvalidLength = errors.New("structure length below header size")

	// ErrInvalidStringRef reports a string reference with no
	// corresponding entry in the structure's string table.
	ErrInvalidStringRef = errors.New("string reference out of range")

	// ErrUnsupportedField reports an access to a field that the
	// structure's declared length does not cover. It signals an
	// absent optional field, not a malformed structure.
	ErrUnsupportedField = errors.New("field not covered by structure length")

	// ErrUnexpectedType reports a typed view constructed from a
	// structure of a different type.
	ErrUnexpectedType = errors.New("unexpected structure type")
)
