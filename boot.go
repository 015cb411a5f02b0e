// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import (
	"fmt"

	"system-transparency.org/smbios/sterror"
)

// bootInfoLen is the minimum length of the type 32 structure: six
// reserved bytes and the status byte.
const bootInfoLen = 0x0B

// SystemBootInformation is the typed view over a type 32 structure.
type SystemBootInformation struct {
	s *Structure
}

// NewSystemBootInformation wraps s. It fails with ErrUnexpectedType
// for other structure types and ErrInvalidLength if the mandatory
// fields are not covered.
func NewSystemBootInformation(s *Structure) (*SystemBootInformation, error) {
	const op = sterror.Op("system boot information view")

	if s.Header.Type != TypeSystemBootInformation {
		return nil, sterror.E(ErrScope, op, ErrUnexpectedType, s.Header.Type.String())
	}

	if int(s.Header.Length) < bootInfoLen {
		return nil, sterror.E(ErrScope, op, ErrInvalidLength)
	}

	return &SystemBootInformation{s: s}, nil
}

// Structure returns the underlying record.
func (b *SystemBootInformation) Structure() *Structure {
	return b.s
}

// Status returns the boot status code of the last boot.
func (b *SystemBootInformation) Status() (BootStatus, error) {
	status, err := b.s.byteAt(0x0A)

	return BootStatus(status), err
}

// Data returns the bytes following the status code. Codes 128 and
// above put vendor- or product-specific data here.
func (b *SystemBootInformation) Data() ([]byte, error) {
	return b.s.fieldBytes(0x0B, int(b.s.Header.Length)-bootInfoLen)
}

// BootStatus describes how the last boot went.
type BootStatus uint8

const (
	BootStatusNoError BootStatus = iota
	BootStatusNoBootableMedia
	BootStatusOSFailedToLoad
	BootStatusFirmwareHardwareFailure
	BootStatusOSHardwareFailure
	BootStatusUserRequestedBoot
	BootStatusSecurityViolation
	BootStatusPreviouslyRequestedImage
	BootStatusWatchdogExpired
)

//nolint:gochecknoglobals
var bootStatusNames = map[BootStatus]string{
	BootStatusNoError:                  "No errors detected",
	BootStatusNoBootableMedia:          "No bootable media",
	BootStatusOSFailedToLoad:           "Operating system failed to load",
	BootStatusFirmwareHardwareFailure:  "Firmware-detected hardware failure",
	BootStatusOSHardwareFailure:        "Operating system-detected hardware failure",
	BootStatusUserRequestedBoot:        "User-requested boot",
	BootStatusSecurityViolation:        "System security violation",
	BootStatusPreviouslyRequestedImage: "Previously-requested image",
	BootStatusWatchdogExpired:          "System watchdog timer expired",
}

// String implements fmt.Stringer.
func (s BootStatus) String() string {
	if name, ok := bootStatusNames[s]; ok {
		return name
	}

	if s >= 128 && s <= 191 {
		return fmt.Sprintf("OEM-specific (0x%02X)", uint8(s))
	}

	if s >= 192 {
		return fmt.Sprintf("Product-specific (0x%02X)", uint8(s))
	}

	return fmt.Sprintf("Reserved (0x%02X)", uint8(s))
}
