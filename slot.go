// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import "system-transparency.org/smbios/sterror"

const (
	slotLen20 = 0x0C // designation through characteristics 1
	slotLen21 = 0x0D // characteristics 2
	slotLen26 = 0x11 // segment group, bus, device/function
)

// SystemSlot is the typed view over a type 9 structure.
type SystemSlot struct {
	s *Structure
}

// NewSystemSlot wraps s. It fails with ErrUnexpectedType for other
// structure types and ErrInvalidLength if the mandatory SMBIOS 2.0
// fields are not covered.
func NewSystemSlot(s *Structure) (*SystemSlot, error) {
	const op = sterror.Op("system slot view")

	if s.Header.Type != TypeSystemSlot {
		return nil, sterror.E(ErrScope, op, ErrUnexpectedType, s.Header.Type.String())
	}

	if int(s.Header.Length) < slotLen20 {
		return nil, sterror.E(ErrScope, op, ErrInvalidLength)
	}

	return &SystemSlot{s: s}, nil
}

// Structure returns the underlying record.
func (sl *SystemSlot) Structure() *Structure {
	return sl.s
}

// Designation returns the slot reference string, e.g. "PCIe x16_1".
func (sl *SystemSlot) Designation() (string, error) {
	return sl.s.stringAt(0x04)
}

// SlotType returns the slot type code.
func (sl *SystemSlot) SlotType() (uint8, error) {
	return sl.s.byteAt(0x05)
}

// DataBusWidth returns the data bus width code.
func (sl *SystemSlot) DataBusWidth() (uint8, error) {
	return sl.s.byteAt(0x06)
}

// CurrentUsage returns the usage code (3 = available, 4 = in use).
func (sl *SystemSlot) CurrentUsage() (uint8, error) {
	return sl.s.byteAt(0x07)
}

// SlotLength returns the physical length code.
func (sl *SystemSlot) SlotLength() (uint8, error) {
	return sl.s.byteAt(0x08)
}

// ID returns the slot identifier word; its meaning depends on the
// slot type.
func (sl *SystemSlot) ID() (uint16, error) {
	return sl.s.wordAt(0x09)
}

// Characteristics returns the slot characteristics: the SMBIOS 2.0
// byte in bits 7:0 and, when present, the SMBIOS 2.1 second byte in
// bits 15:8. Unrecognized bits are preserved.
func (sl *SystemSlot) Characteristics() (uint16, error) {
	char1, err := sl.s.byteAt(0x0B)
	if err != nil {
		return 0, err
	}

	characteristics := uint16(char1)

	if int(sl.s.Header.Length) >= slotLen21 {
		char2, err := sl.s.byteAt(0x0C)
		if err != nil {
			return 0, err
		}

		characteristics |= uint16(char2) << 8
	}

	return characteristics, nil
}

// SegmentGroup returns the PCI segment group number. Present since
// SMBIOS 2.6.
func (sl *SystemSlot) SegmentGroup() (uint16, error) {
	if int(sl.s.Header.Length) < slotLen26 {
		return 0, ErrUnsupportedField
	}

	return sl.s.wordAt(0x0D)
}

// BusNumber returns the PCI bus number. Present since SMBIOS 2.6.
func (sl *SystemSlot) BusNumber() (uint8, error) {
	if int(sl.s.Header.Length) < slotLen26 {
		return 0, ErrUnsupportedField
	}

	return sl.s.byteAt(0x0F)
}

// DeviceFunction returns the PCI device number in bits 7:3 and the
// function number in bits 2:0. Present since SMBIOS 2.6.
func (sl *SystemSlot) DeviceFunction() (uint8, error) {
	if int(sl.s.Header.Length) < slotLen26 {
		return 0, ErrUnsupportedField
	}

	return sl.s.byteAt(0x10)
}
