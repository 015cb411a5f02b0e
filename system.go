// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import (
	"fmt"

	"system-transparency.org/smbios/sterror"
)

const (
	sysInfoLen20 = 0x08 // manufacturer through serial number
	sysInfoLen21 = 0x19 // UUID and wake-up type
	sysInfoLen24 = 0x1B // SKU and family
)

// SystemInformation is the typed view over a type 1 structure.
type SystemInformation struct {
	s *Structure
}

// NewSystemInformation wraps s. It fails with ErrUnexpectedType for
// other structure types and ErrInvalidLength if the mandatory SMBIOS
// 2.0 fields are not covered.
func NewSystemInformation(s *Structure) (*SystemInformation, error) {
	const op = sterror.Op("system information view")

	if s.Header.Type != TypeSystemInformation {
		return nil, sterror.E(ErrScope, op, ErrUnexpectedType, s.Header.Type.String())
	}

	if int(s.Header.Length) < sysInfoLen20 {
		return nil, sterror.E(ErrScope, op, ErrInvalidLength)
	}

	return &SystemInformation{s: s}, nil
}

// Structure returns the underlying record.
func (si *SystemInformation) Structure() *Structure {
	return si.s
}

// Manufacturer returns the system manufacturer string.
func (si *SystemInformation) Manufacturer() (string, error) {
	return si.s.stringAt(0x04)
}

// ProductName returns the product name string.
func (si *SystemInformation) ProductName() (string, error) {
	return si.s.stringAt(0x05)
}

// ProductVersion returns the product version string.
func (si *SystemInformation) ProductVersion() (string, error) {
	return si.s.stringAt(0x06)
}

// SerialNumber returns the system serial number string.
func (si *SystemInformation) SerialNumber() (string, error) {
	return si.s.stringAt(0x07)
}

// UUID returns the universal unique identifier. Present since SMBIOS
// 2.1.
func (si *SystemInformation) UUID() (UUID, error) {
	if int(si.s.Header.Length) < sysInfoLen21 {
		return UUID{}, ErrUnsupportedField
	}

	b, err := si.s.fieldBytes(0x08, 16)
	if err != nil {
		return UUID{}, err
	}

	var uuid UUID
	copy(uuid[:], b)

	return uuid, nil
}

// WakeUpType returns the event that last switched the system on.
// Present since SMBIOS 2.1.
func (si *SystemInformation) WakeUpType() (WakeUpType, error) {
	if int(si.s.Header.Length) < sysInfoLen21 {
		return 0, ErrUnsupportedField
	}

	t, err := si.s.byteAt(0x18)

	return WakeUpType(t), err
}

// SKU returns the SKU number string. Present since SMBIOS 2.4.
func (si *SystemInformation) SKU() (string, error) {
	if int(si.s.Header.Length) < sysInfoLen24 {
		return "", ErrUnsupportedField
	}

	return si.s.stringAt(0x19)
}

// Family returns the product family string. Present since SMBIOS 2.4.
func (si *SystemInformation) Family() (string, error) {
	if int(si.s.Header.Length) < sysInfoLen24 {
		return "", ErrUnsupportedField
	}

	return si.s.stringAt(0x1A)
}

// UUID is the 16-byte system identifier of the type 1 structure. The
// first three fields are little-endian per SMBIOS 2.6, which String
// accounts for.
type UUID [16]byte

// NotPresent reports the all-zero UUID, meaning the ID is not present
// in the system.
func (u UUID) NotPresent() bool {
	return u == UUID{}
}

// NotSettable reports the all-0xFF UUID, meaning the ID is present but
// not settable.
func (u UUID) NotSettable() bool {
	return u == UUID{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}
}

// String implements fmt.Stringer.
func (u UUID) String() string {
	return fmt.Sprintf("%02X%02X%02X%02X-%02X%02X-%02X%02X-%02X%02X-%02X%02X%02X%02X%02X%02X",
		u[3], u[2], u[1], u[0],
		u[5], u[4],
		u[7], u[6],
		u[8], u[9],
		u[10], u[11], u[12], u[13], u[14], u[15])
}

// WakeUpType identifies the event that switched the system on.
type WakeUpType uint8

const (
	WakeUpReserved WakeUpType = iota
	WakeUpOther
	WakeUpUnknown
	WakeUpAPMTimer
	WakeUpModemRing
	WakeUpLANRemote
	WakeUpPowerSwitch
	WakeUpPCIPME
	WakeUpACPowerRestored
)

//nolint:gochecknoglobals
var wakeUpTypeNames = map[WakeUpType]string{
	WakeUpReserved:        "Reserved",
	WakeUpOther:           "Other",
	WakeUpUnknown:         "Unknown",
	WakeUpAPMTimer:        "APM Timer",
	WakeUpModemRing:       "Modem Ring",
	WakeUpLANRemote:       "LAN Remote",
	WakeUpPowerSwitch:     "Power Switch",
	WakeUpPCIPME:          "PCI PME#",
	WakeUpACPowerRestored: "AC Power Restored",
}

// String implements fmt.Stringer.
func (w WakeUpType) String() string {
	if name, ok := wakeUpTypeNames[w]; ok {
		return name
	}

	return fmt.Sprintf("Unknown (0x%02X)", uint8(w))
}
