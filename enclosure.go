// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import (
	"fmt"

	"system-transparency.org/smbios/sterror"
)

const (
	enclosureLen20 = 0x09 // manufacturer through asset tag
	enclosureLen21 = 0x0D // state and security fields
	enclosureLen23 = 0x15 // OEM word, height, cords, contained elements
)

// SystemEnclosure is the typed view over a type 3 structure.
type SystemEnclosure struct {
	s *Structure
}

// NewSystemEnclosure wraps s. It fails with ErrUnexpectedType for
// other structure types and ErrInvalidLength if the mandatory SMBIOS
// 2.0 fields are not covered.
func NewSystemEnclosure(s *Structure) (*SystemEnclosure, error) {
	const op = sterror.Op("system enclosure view")

	if s.Header.Type != TypeSystemEnclosure {
		return nil, sterror.E(ErrScope, op, ErrUnexpectedType, s.Header.Type.String())
	}

	if int(s.Header.Length) < enclosureLen20 {
		return nil, sterror.E(ErrScope, op, ErrInvalidLength)
	}

	return &SystemEnclosure{s: s}, nil
}

// Structure returns the underlying record.
func (e *SystemEnclosure) Structure() *Structure {
	return e.s
}

// Manufacturer returns the enclosure manufacturer string.
func (e *SystemEnclosure) Manufacturer() (string, error) {
	return e.s.stringAt(0x04)
}

// ChassisType returns the chassis type with the lock bit masked off.
func (e *SystemEnclosure) ChassisType() (ChassisType, error) {
	t, err := e.s.byteAt(0x05)

	return ChassisType(t & 0x7F), err
}

// HasLock reports the chassis lock bit.
func (e *SystemEnclosure) HasLock() (bool, error) {
	t, err := e.s.byteAt(0x05)

	return t&0x80 != 0, err
}

// EnclosureVersion returns the enclosure version string.
func (e *SystemEnclosure) EnclosureVersion() (string, error) {
	return e.s.stringAt(0x06)
}

// SerialNumber returns the enclosure serial number string.
func (e *SystemEnclosure) SerialNumber() (string, error) {
	return e.s.stringAt(0x07)
}

// AssetTag returns the asset tag string.
func (e *SystemEnclosure) AssetTag() (string, error) {
	return e.s.stringAt(0x08)
}

// BootUpState returns the enclosure state when last booted. Present
// since SMBIOS 2.1.
func (e *SystemEnclosure) BootUpState() (uint8, error) {
	if int(e.s.Header.Length) < enclosureLen21 {
		return 0, ErrUnsupportedField
	}

	return e.s.byteAt(0x09)
}

// PowerSupplyState returns the power supply state when last booted.
// Present since SMBIOS 2.1.
func (e *SystemEnclosure) PowerSupplyState() (uint8, error) {
	if int(e.s.Header.Length) < enclosureLen21 {
		return 0, ErrUnsupportedField
	}

	return e.s.byteAt(0x0A)
}

// ThermalState returns the thermal state when last booted. Present
// since SMBIOS 2.1.
func (e *SystemEnclosure) ThermalState() (uint8, error) {
	if int(e.s.Header.Length) < enclosureLen21 {
		return 0, ErrUnsupportedField
	}

	return e.s.byteAt(0x0B)
}

// SecurityStatus returns the physical security status when last
// booted. Present since SMBIOS 2.1.
func (e *SystemEnclosure) SecurityStatus() (uint8, error) {
	if int(e.s.Header.Length) < enclosureLen21 {
		return 0, ErrUnsupportedField
	}

	return e.s.byteAt(0x0C)
}

// Height returns the enclosure height in U, 0 if unspecified. Present
// since SMBIOS 2.3.
func (e *SystemEnclosure) Height() (uint8, error) {
	if int(e.s.Header.Length) < enclosureLen23 {
		return 0, ErrUnsupportedField
	}

	return e.s.byteAt(0x11)
}

// NumberOfPowerCords returns the number of power cords, 0 if
// unspecified. Present since SMBIOS 2.3.
func (e *SystemEnclosure) NumberOfPowerCords() (uint8, error) {
	if int(e.s.Header.Length) < enclosureLen23 {
		return 0, ErrUnsupportedField
	}

	return e.s.byteAt(0x12)
}

// ContainedElements returns the raw contained-element records: n
// records of m bytes each, both announced in the structure. Present
// since SMBIOS 2.3.
func (e *SystemEnclosure) ContainedElements() (count, recordLen uint8, data []byte, err error) {
	if int(e.s.Header.Length) < enclosureLen23 {
		return 0, 0, nil, ErrUnsupportedField
	}

	if count, err = e.s.byteAt(0x13); err != nil {
		return 0, 0, nil, err
	}

	if recordLen, err = e.s.byteAt(0x14); err != nil {
		return 0, 0, nil, err
	}

	data, err = e.s.fieldBytes(0x15, int(count)*int(recordLen))
	if err != nil {
		return 0, 0, nil, err
	}

	return count, recordLen, data, nil
}

// SKU returns the chassis SKU string. Present since SMBIOS 2.7. The
// field sits behind the variable contained-element block, so its
// offset is computed, not fixed.
func (e *SystemEnclosure) SKU() (string, error) {
	count, recordLen, _, err := e.ContainedElements()
	if err != nil {
		return "", err
	}

	off := 0x15 + int(count)*int(recordLen)
	if off+1 > int(e.s.Header.Length) {
		return "", ErrUnsupportedField
	}

	return e.s.stringAt(off)
}

// ChassisType classifies the enclosure.
type ChassisType uint8

//nolint:gochecknoglobals
var chassisTypeNames = map[ChassisType]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "Desktop",
	0x04: "Low Profile Desktop",
	0x05: "Pizza Box",
	0x06: "Mini Tower",
	0x07: "Tower",
	0x08: "Portable",
	0x09: "Laptop",
	0x0A: "Notebook",
	0x0B: "Hand Held",
	0x0C: "Docking Station",
	0x0D: "All In One",
	0x0E: "Sub Notebook",
	0x0F: "Space-saving",
	0x10: "Lunch Box",
	0x11: "Main Server Chassis",
	0x12: "Expansion Chassis",
	0x13: "SubChassis",
	0x14: "Bus Expansion Chassis",
	0x15: "Peripheral Chassis",
	0x16: "RAID Chassis",
	0x17: "Rack Mount Chassis",
	0x18: "Sealed-case PC",
	0x19: "Multi-system Chassis",
	0x1A: "Compact PCI",
	0x1B: "Advanced TCA",
	0x1C: "Blade",
	0x1D: "Blade Enclosure",
	0x1E: "Tablet",
	0x1F: "Convertible",
	0x20: "Detachable",
	0x21: "IoT Gateway",
	0x22: "Embedded PC",
	0x23: "Mini PC",
	0x24: "Stick PC",
}

// String implements fmt.Stringer.
func (c ChassisType) String() string {
	if name, ok := chassisTypeNames[c]; ok {
		return name
	}

	return fmt.Sprintf("Unknown (0x%02X)", uint8(c))
}
