// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import "system-transparency.org/smbios/sterror"

const (
	processorLen20 = 0x1A // socket through upgrade
	processorLen21 = 0x20 // cache handles
	processorLen23 = 0x23 // serial, asset tag, part number
	processorLen25 = 0x28 // core counts and characteristics
	processorLen26 = 0x2A // family 2
	processorLen30 = 0x30 // 16-bit core counts
)

// ProcessorInformation is the typed view over a type 4 structure.
type ProcessorInformation struct {
	s *Structure
}

// NewProcessorInformation wraps s. It fails with ErrUnexpectedType for
// other structure types and ErrInvalidLength if the mandatory SMBIOS
// 2.0 fields are not covered.
func NewProcessorInformation(s *Structure) (*ProcessorInformation, error) {
	const op = sterror.Op("processor information view")

	if s.Header.Type != TypeProcessorInformation {
		return nil, sterror.E(ErrScope, op, ErrUnexpectedType, s.Header.Type.String())
	}

	if int(s.Header.Length) < processorLen20 {
		return nil, sterror.E(ErrScope, op, ErrInvalidLength)
	}

	return &ProcessorInformation{s: s}, nil
}

// Structure returns the underlying record.
func (p *ProcessorInformation) Structure() *Structure {
	return p.s
}

// SocketDesignation returns the socket reference string, e.g. "CPU0".
func (p *ProcessorInformation) SocketDesignation() (string, error) {
	return p.s.stringAt(0x04)
}

// ProcessorType returns the processor type code (3 = central
// processor).
func (p *ProcessorInformation) ProcessorType() (uint8, error) {
	return p.s.byteAt(0x05)
}

// Family returns the processor family, consulting the SMBIOS 2.6
// family 2 word when the byte saturates at 0xFE.
func (p *ProcessorInformation) Family() (uint16, error) {
	family, err := p.s.byteAt(0x06)
	if err != nil {
		return 0, err
	}

	if family == 0xFE {
		if family2, err := p.Family2(); err == nil {
			return family2, nil
		}
	}

	return uint16(family), nil
}

// Manufacturer returns the processor manufacturer string.
func (p *ProcessorInformation) Manufacturer() (string, error) {
	return p.s.stringAt(0x07)
}

// ID returns the raw 8-byte processor identifier (CPUID on x86).
func (p *ProcessorInformation) ID() (uint64, error) {
	return p.s.qwordAt(0x08)
}

// ProcessorVersion returns the processor version string.
func (p *ProcessorInformation) ProcessorVersion() (string, error) {
	return p.s.stringAt(0x10)
}

// Voltage returns the raw voltage byte.
func (p *ProcessorInformation) Voltage() (uint8, error) {
	return p.s.byteAt(0x11)
}

// ExternalClock returns the external clock in MHz, 0 if unknown.
func (p *ProcessorInformation) ExternalClock() (uint16, error) {
	return p.s.wordAt(0x12)
}

// MaxSpeed returns the maximum speed in MHz, 0 if unknown.
func (p *ProcessorInformation) MaxSpeed() (uint16, error) {
	return p.s.wordAt(0x14)
}

// CurrentSpeed returns the speed at boot in MHz, 0 if unknown.
func (p *ProcessorInformation) CurrentSpeed() (uint16, error) {
	return p.s.wordAt(0x16)
}

// Status returns the raw status byte; bit 6 means the socket is
// populated, bits 2:0 encode the CPU status.
func (p *ProcessorInformation) Status() (uint8, error) {
	return p.s.byteAt(0x18)
}

// Populated reports whether the socket holds a processor.
func (p *ProcessorInformation) Populated() (bool, error) {
	status, err := p.Status()

	return status&0x40 != 0, err
}

// Upgrade returns the processor upgrade code.
func (p *ProcessorInformation) Upgrade() (uint8, error) {
	return p.s.byteAt(0x19)
}

// cacheHandle gates the SMBIOS 2.1 cache handle fields.
func (p *ProcessorInformation) cacheHandle(off int) (uint16, error) {
	if int(p.s.Header.Length) < processorLen21 {
		return 0, ErrUnsupportedField
	}

	return p.s.wordAt(off)
}

// L1CacheHandle returns the handle of the L1 cache structure, 0xFFFF
// if not provided. Present since SMBIOS 2.1.
func (p *ProcessorInformation) L1CacheHandle() (uint16, error) {
	return p.cacheHandle(0x1A)
}

// L2CacheHandle returns the handle of the L2 cache structure, 0xFFFF
// if not provided. Present since SMBIOS 2.1.
func (p *ProcessorInformation) L2CacheHandle() (uint16, error) {
	return p.cacheHandle(0x1C)
}

// L3CacheHandle returns the handle of the L3 cache structure, 0xFFFF
// if not provided. Present since SMBIOS 2.1.
func (p *ProcessorInformation) L3CacheHandle() (uint16, error) {
	return p.cacheHandle(0x1E)
}

// SerialNumber returns the processor serial number string. Present
// since SMBIOS 2.3.
func (p *ProcessorInformation) SerialNumber() (string, error) {
	if int(p.s.Header.Length) < processorLen23 {
		return "", ErrUnsupportedField
	}

	return p.s.stringAt(0x20)
}

// AssetTag returns the asset tag string. Present since SMBIOS 2.3.
func (p *ProcessorInformation) AssetTag() (string, error) {
	if int(p.s.Header.Length) < processorLen23 {
		return "", ErrUnsupportedField
	}

	return p.s.stringAt(0x21)
}

// PartNumber returns the part number string. Present since SMBIOS 2.3.
func (p *ProcessorInformation) PartNumber() (string, error) {
	if int(p.s.Header.Length) < processorLen23 {
		return "", ErrUnsupportedField
	}

	return p.s.stringAt(0x22)
}

// CoreCount returns the number of cores, consulting the SMBIOS 3.0
// 16-bit count when the byte saturates at 0xFF. Present since SMBIOS
// 2.5; 0 means unknown.
func (p *ProcessorInformation) CoreCount() (uint16, error) {
	if int(p.s.Header.Length) < processorLen25 {
		return 0, ErrUnsupportedField
	}

	count, err := p.s.byteAt(0x23)
	if err != nil {
		return 0, err
	}

	if count == 0xFF && int(p.s.Header.Length) >= processorLen30 {
		return p.s.wordAt(0x2A)
	}

	return uint16(count), nil
}

// ThreadCount returns the number of threads, consulting the SMBIOS
// 3.0 16-bit count when the byte saturates at 0xFF. Present since
// SMBIOS 2.5; 0 means unknown.
func (p *ProcessorInformation) ThreadCount() (uint16, error) {
	if int(p.s.Header.Length) < processorLen25 {
		return 0, ErrUnsupportedField
	}

	count, err := p.s.byteAt(0x25)
	if err != nil {
		return 0, err
	}

	if count == 0xFF && int(p.s.Header.Length) >= processorLen30 {
		return p.s.wordAt(0x2E)
	}

	return uint16(count), nil
}

// Characteristics returns the processor characteristics word. Present
// since SMBIOS 2.5.
func (p *ProcessorInformation) Characteristics() (uint16, error) {
	if int(p.s.Header.Length) < processorLen25 {
		return 0, ErrUnsupportedField
	}

	return p.s.wordAt(0x26)
}

// Family2 returns the SMBIOS 2.6 processor family word.
func (p *ProcessorInformation) Family2() (uint16, error) {
	if int(p.s.Header.Length) < processorLen26 {
		return 0, ErrUnsupportedField
	}

	return p.s.wordAt(0x28)
}
