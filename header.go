// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import (
	"fmt"

	"github.com/u-root/uio/uio"
)

// headerLen is the size of the common structure header. A structure's
// declared length includes it, so no valid length is below headerLen.
const headerLen = 4

// StructureType tags a structure. The specification keeps adding
// types, so unknown values pass through unchanged instead of failing;
// values of 128 and above are vendor-specific.
type StructureType uint8

// Structure types handled by the typed views of this package.
const (
	TypeBIOSInformation          StructureType = 0
	TypeSystemInformation        StructureType = 1
	TypeSystemEnclosure          StructureType = 3
	TypeProcessorInformation     StructureType = 4
	TypeCacheInformation         StructureType = 7
	TypeSystemSlot               StructureType = 9
	TypePhysicalMemoryArray      StructureType = 16
	TypeMemoryDevice             StructureType = 17
	TypeMemoryArrayMappedAddress StructureType = 19
	TypeSystemBootInformation    StructureType = 32

	// TypeEndOfTable marks that no further structures follow.
	TypeEndOfTable StructureType = 127
)

//nolint:gochecknoglobals
var structureTypeNames = map[StructureType]string{
	TypeBIOSInformation:          "BIOS Information",
	TypeSystemInformation:        "System Information",
	TypeSystemEnclosure:          "System Enclosure",
	TypeProcessorInformation:     "Processor Information",
	TypeCacheInformation:         "Cache Information",
	TypeSystemSlot:               "System Slot",
	TypePhysicalMemoryArray:      "Physical Memory Array",
	TypeMemoryDevice:             "Memory Device",
	TypeMemoryArrayMappedAddress: "Memory Array Mapped Address",
	TypeSystemBootInformation:    "System Boot Information",
	TypeEndOfTable:               "End Of Table",
}

// Vendor reports whether t lies in the vendor-specific range.
func (t StructureType) Vendor() bool {
	return t >= 128
}

// String implements fmt.Stringer.
func (t StructureType) String() string {
	if name, ok := structureTypeNames[t]; ok {
		return name
	}

	if t.Vendor() {
		return fmt.Sprintf("OEM-specific Type %d", uint8(t))
	}

	return fmt.Sprintf("Unknown Type %d", uint8(t))
}

// Header is the fixed 4-byte header common to all structures.
type Header struct {
	// Type tags the structure's layout.
	Type StructureType
	// Length of the formatted area including the header itself. The
	// trailing strings are not counted.
	Length uint8
	// Handle identifies the structure within one boot session. It
	// is not stable across reboots. Values above 0xFFFE (SMBIOS 2)
	// or 0xFEFF (SMBIOS 3) are reserved sentinels; they are passed
	// through, interpreting them is the caller's concern.
	Handle uint16
}

// String implements fmt.Stringer in the style of dmidecode record
// headings.
func (h Header) String() string {
	return fmt.Sprintf("Handle 0x%04X, DMI type %d, %d bytes", h.Handle, uint8(h.Type), h.Length)
}

// parseHeader reads the common header from the start of b. It fails
// with ErrTruncated on short input and ErrInvalidLength if the
// declared length cannot even cover the header.
func parseHeader(b []byte) (Header, error) {
	if len(b) < headerLen {
		return Header{}, ErrTruncated
	}

	lex := uio.NewLittleEndianBuffer(b)
	hdr := Header{
		Type:   StructureType(lex.Read8()),
		Length: lex.Read8(),
		Handle: lex.Read16(),
	}

	if hdr.Length < headerLen {
		return Header{}, ErrInvalidLength
	}

	return hdr, nil
}
