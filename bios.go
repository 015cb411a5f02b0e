// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import "system-transparency.org/smbios/sterror"

// Revision minimum lengths of the BIOS information structure. The
// declared length is the only reliable signal for which fields exist.
const (
	biosInfoLen20 = 0x12 // through characteristics
	biosInfoLen24 = 0x18 // extension bytes + revision tail
	biosInfoLen31 = 0x1A // extended ROM size
)

// BIOSInformation is the typed view over a type 0 structure.
type BIOSInformation struct {
	s *Structure
}

// NewBIOSInformation wraps s. It fails with ErrUnexpectedType for
// other structure types and ErrInvalidLength if the mandatory SMBIOS
// 2.0 fields are not covered.
func NewBIOSInformation(s *Structure) (*BIOSInformation, error) {
	const op = sterror.Op("BIOS information view")

	if s.Header.Type != TypeBIOSInformation {
		return nil, sterror.E(ErrScope, op, ErrUnexpectedType, s.Header.Type.String())
	}

	if int(s.Header.Length) < biosInfoLen20 {
		return nil, sterror.E(ErrScope, op, ErrInvalidLength)
	}

	return &BIOSInformation{s: s}, nil
}

// Structure returns the underlying record.
func (b *BIOSInformation) Structure() *Structure {
	return b.s
}

// Vendor returns the BIOS vendor string.
func (b *BIOSInformation) Vendor() (string, error) {
	return b.s.stringAt(0x04)
}

// BIOSVersion returns the free-form BIOS version string.
func (b *BIOSInformation) BIOSVersion() (string, error) {
	return b.s.stringAt(0x05)
}

// StartingAddressSegment returns the segment of the BIOS starting
// address.
func (b *BIOSInformation) StartingAddressSegment() (uint16, error) {
	return b.s.wordAt(0x06)
}

// ReleaseDate returns the BIOS release date string, conventionally in
// mm/dd/yyyy format.
func (b *BIOSInformation) ReleaseDate() (string, error) {
	return b.s.stringAt(0x08)
}

// ROMSize returns the raw ROM size byte: the ROM holds (n+1) * 64 KiB.
// The value 0xFF means 16 MiB or more, see ROMSizeBytes.
func (b *BIOSInformation) ROMSize() (uint8, error) {
	return b.s.byteAt(0x09)
}

// ROMSizeBytes resolves the ROM size to bytes, consulting the SMBIOS
// 3.1 extended ROM size field when the size byte saturates at 0xFF and
// the structure carries the extension.
func (b *BIOSInformation) ROMSizeBytes() (uint64, error) {
	size, err := b.ROMSize()
	if err != nil {
		return 0, err
	}

	if size == 0xFF {
		if ext, err := b.ExtendedROMSize(); err == nil {
			const (
				unitMask  = 0xC000
				unitMiB   = 0x0000
				unitGiB   = 0x4000
				countMask = 0x3FFF
			)

			count := uint64(ext & countMask)
			switch ext & unitMask {
			case unitMiB:
				return count << 20, nil
			case unitGiB:
				return count << 30, nil
			}
			// Reserved unit, fall back to the saturated byte.
		}
	}

	return (uint64(size) + 1) * 64 * 1024, nil
}

// Characteristics returns the BIOS characteristics bitmask.
func (b *BIOSInformation) Characteristics() (BIOSCharacteristics, error) {
	c, err := b.s.qwordAt(0x0A)
	return BIOSCharacteristics(c), err
}

// ExtendedCharacteristics returns the two defined BIOS characteristics
// extension bytes as one little-endian word. Present since SMBIOS 2.4.
func (b *BIOSInformation) ExtendedCharacteristics() (BIOSExtendedCharacteristics, error) {
	if int(b.s.Header.Length) < biosInfoLen24 {
		return 0, ErrUnsupportedField
	}

	c, err := b.s.wordAt(0x12)
	return BIOSExtendedCharacteristics(c), err
}

// tailOffset locates the fixed-size revision tail. The tail sits at
// the end of the formatted area, so it is anchored by subtraction from
// the declared length rather than by a fixed offset.
func (b *BIOSInformation) tailOffset() (int, error) {
	length := int(b.s.Header.Length)

	switch {
	case length >= biosInfoLen31:
		return length - 6, nil
	case length >= biosInfoLen24:
		return length - 4, nil
	default:
		return 0, ErrUnsupportedField
	}
}

// Revision returns the system BIOS major and minor release. Present
// since SMBIOS 2.4; both bytes are 0xFF if the vendor does not use
// this field.
func (b *BIOSInformation) Revision() (major, minor uint8, err error) {
	off, err := b.tailOffset()
	if err != nil {
		return 0, 0, err
	}

	if major, err = b.s.byteAt(off); err != nil {
		return 0, 0, err
	}

	minor, err = b.s.byteAt(off + 1)

	return major, minor, err
}

// ECRevision returns the embedded controller firmware release. Present
// since SMBIOS 2.4; both bytes are 0xFF if no embedded controller is
// present.
func (b *BIOSInformation) ECRevision() (major, minor uint8, err error) {
	off, err := b.tailOffset()
	if err != nil {
		return 0, 0, err
	}

	if major, err = b.s.byteAt(off + 2); err != nil {
		return 0, 0, err
	}

	minor, err = b.s.byteAt(off + 3)

	return major, minor, err
}

// ExtendedROMSize returns the SMBIOS 3.1 extended ROM size word. Bits
// 15:14 select the unit (0 MiB, 1 GiB), the rest is the count.
func (b *BIOSInformation) ExtendedROMSize() (uint16, error) {
	if int(b.s.Header.Length) < biosInfoLen31 {
		return 0, ErrUnsupportedField
	}

	return b.s.wordAt(int(b.s.Header.Length) - 2)
}

// BIOSCharacteristics is the 64-bit characteristics bitmask. Only the
// defined bits have query methods; unrecognized bits are preserved and
// reachable through Bit.
type BIOSCharacteristics uint64

// Bit reports whether bit n is set.
func (c BIOSCharacteristics) Bit(n uint) bool {
	return n < 64 && c&(1<<n) != 0
}

// NotSupported reports that BIOS characteristics are not supported at
// all; the remaining bits carry no meaning then.
func (c BIOSCharacteristics) NotSupported() bool { return c.Bit(3) }

// ISASupported reports ISA support.
func (c BIOSCharacteristics) ISASupported() bool { return c.Bit(4) }

// PCISupported reports PCI support.
func (c BIOSCharacteristics) PCISupported() bool { return c.Bit(7) }

// PlugAndPlay reports a Plug-and-Play BIOS.
func (c BIOSCharacteristics) PlugAndPlay() bool { return c.Bit(9) }

// APMSupported reports Advanced Power Management support.
func (c BIOSCharacteristics) APMSupported() bool { return c.Bit(10) }

// Upgradeable reports flash-upgradeable BIOS firmware.
func (c BIOSCharacteristics) Upgradeable() bool { return c.Bit(11) }

// ShadowingAllowed reports that BIOS shadowing is allowed.
func (c BIOSCharacteristics) ShadowingAllowed() bool { return c.Bit(12) }

// BootFromCD reports boot-from-CD capability.
func (c BIOSCharacteristics) BootFromCD() bool { return c.Bit(15) }

// SelectableBoot reports selectable boot capability.
func (c BIOSCharacteristics) SelectableBoot() bool { return c.Bit(16) }

// BIOSExtendedCharacteristics is the 16-bit view over the two defined
// characteristics extension bytes.
type BIOSExtendedCharacteristics uint16

// Bit reports whether bit n is set.
func (c BIOSExtendedCharacteristics) Bit(n uint) bool {
	return n < 16 && c&(1<<n) != 0
}

// ACPI reports ACPI support.
func (c BIOSExtendedCharacteristics) ACPI() bool { return c.Bit(0) }

// USBLegacy reports legacy USB support (USB keyboard emulated as
// PS/2).
func (c BIOSExtendedCharacteristics) USBLegacy() bool { return c.Bit(1) }

// SmartBattery reports Smart Battery support.
func (c BIOSExtendedCharacteristics) SmartBattery() bool { return c.Bit(7) }

// BIOSBootSpecification reports BIOS Boot Specification support.
func (c BIOSExtendedCharacteristics) BIOSBootSpecification() bool { return c.Bit(8) }

// TargetedContentDistribution reports targeted content distribution
// support.
func (c BIOSExtendedCharacteristics) TargetedContentDistribution() bool { return c.Bit(10) }

// UEFI reports UEFI firmware support.
func (c BIOSExtendedCharacteristics) UEFI() bool { return c.Bit(11) }

// VirtualMachine reports that the system runs in a virtual machine.
func (c BIOSExtendedCharacteristics) VirtualMachine() bool { return c.Bit(12) }
