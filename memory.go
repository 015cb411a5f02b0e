// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import "system-transparency.org/smbios/sterror"

// Revision minimum lengths of the memory structures.
const (
	memArrayLen21 = 0x0F // location through device count
	memArrayLen27 = 0x17 // extended maximum capacity

	memDeviceLen21 = 0x15 // handles through type detail
	memDeviceLen23 = 0x1B // speed and inventory strings
	memDeviceLen26 = 0x1C // attributes
	memDeviceLen27 = 0x22 // extended size, configured speed
	memDeviceLen28 = 0x28 // voltages

	memMappedLen21 = 0x0F // 32-bit range
	memMappedLen27 = 0x1F // 64-bit extended range
)

// PhysicalMemoryArray is the typed view over a type 16 structure.
type PhysicalMemoryArray struct {
	s *Structure
}

// NewPhysicalMemoryArray wraps s. It fails with ErrUnexpectedType for
// other structure types and ErrInvalidLength if the mandatory SMBIOS
// 2.1 fields are not covered.
func NewPhysicalMemoryArray(s *Structure) (*PhysicalMemoryArray, error) {
	const op = sterror.Op("physical memory array view")

	if s.Header.Type != TypePhysicalMemoryArray {
		return nil, sterror.E(ErrScope, op, ErrUnexpectedType, s.Header.Type.String())
	}

	if int(s.Header.Length) < memArrayLen21 {
		return nil, sterror.E(ErrScope, op, ErrInvalidLength)
	}

	return &PhysicalMemoryArray{s: s}, nil
}

// Structure returns the underlying record.
func (m *PhysicalMemoryArray) Structure() *Structure {
	return m.s
}

// Location returns the array location code (3 = system board).
func (m *PhysicalMemoryArray) Location() (uint8, error) {
	return m.s.byteAt(0x04)
}

// Use returns the array function code (3 = system memory).
func (m *PhysicalMemoryArray) Use() (uint8, error) {
	return m.s.byteAt(0x05)
}

// ErrorCorrection returns the error correction code of the array.
func (m *PhysicalMemoryArray) ErrorCorrection() (uint8, error) {
	return m.s.byteAt(0x06)
}

// MaxCapacityBytes returns the maximum memory capacity in bytes,
// consulting the SMBIOS 2.7 extended field when the 32-bit KiB field
// saturates at 0x80000000.
func (m *PhysicalMemoryArray) MaxCapacityBytes() (uint64, error) {
	kib, err := m.s.dwordAt(0x07)
	if err != nil {
		return 0, err
	}

	if kib == 0x80000000 && int(m.s.Header.Length) >= memArrayLen27 {
		// The extended field counts bytes, not KiB.
		return m.s.qwordAt(0x0F)
	}

	return uint64(kib) * 1024, nil
}

// ErrorInformationHandle returns the handle of the error information
// structure, 0xFFFE if not provided, 0xFFFF if no error was detected.
func (m *PhysicalMemoryArray) ErrorInformationHandle() (uint16, error) {
	return m.s.wordAt(0x0B)
}

// NumberOfDevices returns the number of memory device slots in the
// array, populated or not.
func (m *PhysicalMemoryArray) NumberOfDevices() (uint16, error) {
	return m.s.wordAt(0x0D)
}

// MemoryDevice is the typed view over a type 17 structure.
type MemoryDevice struct {
	s *Structure
}

// NewMemoryDevice wraps s. It fails with ErrUnexpectedType for other
// structure types and ErrInvalidLength if the mandatory SMBIOS 2.1
// fields are not covered.
func NewMemoryDevice(s *Structure) (*MemoryDevice, error) {
	const op = sterror.Op("memory device view")

	if s.Header.Type != TypeMemoryDevice {
		return nil, sterror.E(ErrScope, op, ErrUnexpectedType, s.Header.Type.String())
	}

	if int(s.Header.Length) < memDeviceLen21 {
		return nil, sterror.E(ErrScope, op, ErrInvalidLength)
	}

	return &MemoryDevice{s: s}, nil
}

// Structure returns the underlying record.
func (m *MemoryDevice) Structure() *Structure {
	return m.s
}

// ArrayHandle returns the handle of the physical memory array this
// device belongs to.
func (m *MemoryDevice) ArrayHandle() (uint16, error) {
	return m.s.wordAt(0x04)
}

// ErrorInformationHandle returns the handle of the error information
// structure, 0xFFFE if not provided, 0xFFFF if no error was detected.
func (m *MemoryDevice) ErrorInformationHandle() (uint16, error) {
	return m.s.wordAt(0x06)
}

// TotalWidth returns the total width in bits including ECC bits,
// 0xFFFF if unknown.
func (m *MemoryDevice) TotalWidth() (uint16, error) {
	return m.s.wordAt(0x08)
}

// DataWidth returns the data width in bits, 0xFFFF if unknown.
func (m *MemoryDevice) DataWidth() (uint16, error) {
	return m.s.wordAt(0x0A)
}

// RawSize returns the raw 16-bit size field: bit 15 selects KiB
// instead of MiB granularity, 0x7FFF redirects to the extended size,
// 0xFFFF means unknown.
func (m *MemoryDevice) RawSize() (uint16, error) {
	return m.s.wordAt(0x0C)
}

// SizeBytes resolves the device size to bytes. An empty slot yields
// 0; an unknown size (raw 0xFFFF) also yields 0, check RawSize to
// tell the cases apart. Sizes of 32 GiB and more live in the SMBIOS
// 2.7 extended field, reached via the 0x7FFF sentinel.
func (m *MemoryDevice) SizeBytes() (uint64, error) {
	raw, err := m.RawSize()
	if err != nil {
		return 0, err
	}

	switch raw {
	case 0, 0xFFFF:
		return 0, nil
	case 0x7FFF:
		ext, err := m.ExtendedSize()
		if err != nil {
			return 0, err
		}

		// Extended size counts MiB, bit 31 reserved.
		return uint64(ext&0x7FFFFFFF) << 20, nil
	}

	size := uint64(raw &^ uint16(0x8000))
	if raw&0x8000 != 0 {
		return size << 10, nil
	}

	return size << 20, nil
}

// FormFactor returns the form factor code (9 = DIMM).
func (m *MemoryDevice) FormFactor() (uint8, error) {
	return m.s.byteAt(0x0E)
}

// DeviceSet identifies the set of devices that must be populated
// together, 0 if the device is not part of one.
func (m *MemoryDevice) DeviceSet() (uint8, error) {
	return m.s.byteAt(0x0F)
}

// DeviceLocator returns the device socket label string, e.g.
// "DIMM_A1".
func (m *MemoryDevice) DeviceLocator() (string, error) {
	return m.s.stringAt(0x10)
}

// BankLocator returns the bank label string.
func (m *MemoryDevice) BankLocator() (string, error) {
	return m.s.stringAt(0x11)
}

// MemoryType returns the memory type code (26 = DDR4).
func (m *MemoryDevice) MemoryType() (uint8, error) {
	return m.s.byteAt(0x12)
}

// TypeDetail returns the type detail bit field.
func (m *MemoryDevice) TypeDetail() (uint16, error) {
	return m.s.wordAt(0x13)
}

// Speed returns the maximum speed in MT/s, 0 if unknown. Present
// since SMBIOS 2.3.
func (m *MemoryDevice) Speed() (uint16, error) {
	if int(m.s.Header.Length) < memDeviceLen23 {
		return 0, ErrUnsupportedField
	}

	return m.s.wordAt(0x15)
}

// Manufacturer returns the module manufacturer string. Present since
// SMBIOS 2.3.
func (m *MemoryDevice) Manufacturer() (string, error) {
	if int(m.s.Header.Length) < memDeviceLen23 {
		return "", ErrUnsupportedField
	}

	return m.s.stringAt(0x17)
}

// SerialNumber returns the module serial number string. Present since
// SMBIOS 2.3.
func (m *MemoryDevice) SerialNumber() (string, error) {
	if int(m.s.Header.Length) < memDeviceLen23 {
		return "", ErrUnsupportedField
	}

	return m.s.stringAt(0x18)
}

// AssetTag returns the asset tag string. Present since SMBIOS 2.3.
func (m *MemoryDevice) AssetTag() (string, error) {
	if int(m.s.Header.Length) < memDeviceLen23 {
		return "", ErrUnsupportedField
	}

	return m.s.stringAt(0x19)
}

// PartNumber returns the part number string. Present since SMBIOS
// 2.3.
func (m *MemoryDevice) PartNumber() (string, error) {
	if int(m.s.Header.Length) < memDeviceLen23 {
		return "", ErrUnsupportedField
	}

	return m.s.stringAt(0x1A)
}

// Attributes returns the rank in bits 3:0, 0 if unknown. Present
// since SMBIOS 2.6.
func (m *MemoryDevice) Attributes() (uint8, error) {
	if int(m.s.Header.Length) < memDeviceLen26 {
		return 0, ErrUnsupportedField
	}

	return m.s.byteAt(0x1B)
}

// ExtendedSize returns the SMBIOS 2.7 extended size field in MiB.
func (m *MemoryDevice) ExtendedSize() (uint32, error) {
	if int(m.s.Header.Length) < memDeviceLen27 {
		return 0, ErrUnsupportedField
	}

	return m.s.dwordAt(0x1C)
}

// ConfiguredSpeed returns the configured speed in MT/s, 0 if unknown.
// Present since SMBIOS 2.7.
func (m *MemoryDevice) ConfiguredSpeed() (uint16, error) {
	if int(m.s.Header.Length) < memDeviceLen27 {
		return 0, ErrUnsupportedField
	}

	return m.s.wordAt(0x20)
}

// MinimumVoltage returns the minimum operating voltage in mV, 0 if
// unknown. Present since SMBIOS 2.8.
func (m *MemoryDevice) MinimumVoltage() (uint16, error) {
	if int(m.s.Header.Length) < memDeviceLen28 {
		return 0, ErrUnsupportedField
	}

	return m.s.wordAt(0x22)
}

// MaximumVoltage returns the maximum operating voltage in mV, 0 if
// unknown. Present since SMBIOS 2.8.
func (m *MemoryDevice) MaximumVoltage() (uint16, error) {
	if int(m.s.Header.Length) < memDeviceLen28 {
		return 0, ErrUnsupportedField
	}

	return m.s.wordAt(0x24)
}

// ConfiguredVoltage returns the configured voltage in mV, 0 if
// unknown. Present since SMBIOS 2.8.
func (m *MemoryDevice) ConfiguredVoltage() (uint16, error) {
	if int(m.s.Header.Length) < memDeviceLen28 {
		return 0, ErrUnsupportedField
	}

	return m.s.wordAt(0x26)
}

// MemoryArrayMappedAddress is the typed view over a type 19
// structure.
type MemoryArrayMappedAddress struct {
	s *Structure
}

// NewMemoryArrayMappedAddress wraps s. It fails with
// ErrUnexpectedType for other structure types and ErrInvalidLength if
// the mandatory SMBIOS 2.1 fields are not covered.
func NewMemoryArrayMappedAddress(s *Structure) (*MemoryArrayMappedAddress, error) {
	const op = sterror.Op("memory array mapped address view")

	if s.Header.Type != TypeMemoryArrayMappedAddress {
		return nil, sterror.E(ErrScope, op, ErrUnexpectedType, s.Header.Type.String())
	}

	if int(s.Header.Length) < memMappedLen21 {
		return nil, sterror.E(ErrScope, op, ErrInvalidLength)
	}

	return &MemoryArrayMappedAddress{s: s}, nil
}

// Structure returns the underlying record.
func (m *MemoryArrayMappedAddress) Structure() *Structure {
	return m.s
}

// ArrayHandle returns the handle of the mapped physical memory array.
func (m *MemoryArrayMappedAddress) ArrayHandle() (uint16, error) {
	return m.s.wordAt(0x0C)
}

// PartitionWidth returns the number of memory devices forming one row
// of the mapped address space.
func (m *MemoryArrayMappedAddress) PartitionWidth() (uint8, error) {
	return m.s.byteAt(0x0E)
}

// Range returns the mapped physical address range in bytes. The
// 32-bit KiB fields saturate at 0xFFFFFFFF, redirecting to the SMBIOS
// 2.7 64-bit fields.
func (m *MemoryArrayMappedAddress) Range() (start, end uint64, err error) {
	start32, err := m.s.dwordAt(0x04)
	if err != nil {
		return 0, 0, err
	}

	end32, err := m.s.dwordAt(0x08)
	if err != nil {
		return 0, 0, err
	}

	if start32 == 0xFFFFFFFF && int(m.s.Header.Length) >= memMappedLen27 {
		if start, err = m.s.qwordAt(0x0F); err != nil {
			return 0, 0, err
		}

		if end, err = m.s.qwordAt(0x17); err != nil {
			return 0, 0, err
		}

		return start, end, nil
	}

	return uint64(start32) * 1024, uint64(end32) * 1024, nil
}
