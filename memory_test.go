// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/u-root/uio/uio"
)

func memArrayFormatted(capacityKiB uint32, capacityExt uint64) []byte {
	buf := uio.NewLittleEndianBuffer(nil)
	buf.Write8(3) // location: system board
	buf.Write8(3) // use: system memory
	buf.Write8(6) // multi-bit ECC
	buf.Write32(capacityKiB)
	buf.Write16(0xFFFE)
	buf.Write16(4)
	buf.Write64(capacityExt)

	return buf.Data()
}

func TestPhysicalMemoryArray(t *testing.T) {
	s, err := NewTable(buildStructure(t, TypePhysicalMemoryArray, 0x1000,
		memArrayFormatted(64<<20, 0), nil)).Next()
	require.NoError(t, err)

	m, err := NewPhysicalMemoryArray(s)
	require.NoError(t, err)

	location, err := m.Location()
	require.NoError(t, err)
	require.Equal(t, uint8(3), location)

	use, err := m.Use()
	require.NoError(t, err)
	require.Equal(t, uint8(3), use)

	ecc, err := m.ErrorCorrection()
	require.NoError(t, err)
	require.Equal(t, uint8(6), ecc)

	capacity, err := m.MaxCapacityBytes()
	require.NoError(t, err)
	require.Equal(t, uint64(64<<30), capacity)

	handle, err := m.ErrorInformationHandle()
	require.NoError(t, err)
	require.Equal(t, uint16(0xFFFE), handle)

	devices, err := m.NumberOfDevices()
	require.NoError(t, err)
	require.Equal(t, uint16(4), devices)
}

func TestPhysicalMemoryArrayExtendedCapacity(t *testing.T) {
	s, err := NewTable(buildStructure(t, TypePhysicalMemoryArray, 0,
		memArrayFormatted(0x80000000, 6<<40), nil)).Next()
	require.NoError(t, err)

	m, err := NewPhysicalMemoryArray(s)
	require.NoError(t, err)

	capacity, err := m.MaxCapacityBytes()
	require.NoError(t, err)
	require.Equal(t, uint64(6<<40), capacity)
}

func memDeviceFormatted(rawSize uint16, extSize uint32) []byte {
	buf := uio.NewLittleEndianBuffer(nil)
	buf.Write16(0x1000) // array handle
	buf.Write16(0xFFFE)
	buf.Write16(72) // total width
	buf.Write16(64) // data width
	buf.Write16(rawSize)
	buf.Write8(9) // DIMM
	buf.Write8(0)
	buf.Write8(1) // device locator
	buf.Write8(2) // bank locator
	buf.Write8(26)
	buf.Write16(0x0080) // synchronous
	buf.Write16(3200)
	buf.Write8(3) // manufacturer
	buf.Write8(4) // serial number
	buf.Write8(5) // asset tag
	buf.Write8(6) // part number
	buf.Write8(2) // two ranks
	buf.Write32(extSize)
	buf.Write16(2933)
	buf.Write16(1140)
	buf.Write16(1260)
	buf.Write16(1200)

	return buf.Data()
}

func TestMemoryDevice(t *testing.T) {
	strs := []string{"DIMM_A1", "BANK 0", "ACME", "SN-M1", "AT-M1", "PN-M1"}

	s, err := NewTable(buildStructure(t, TypeMemoryDevice, 0x1100,
		memDeviceFormatted(16<<10, 0), strs)).Next() // 16 GiB in MiB units
	require.NoError(t, err)

	m, err := NewMemoryDevice(s)
	require.NoError(t, err)

	array, err := m.ArrayHandle()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1000), array)

	total, err := m.TotalWidth()
	require.NoError(t, err)
	require.Equal(t, uint16(72), total)

	data, err := m.DataWidth()
	require.NoError(t, err)
	require.Equal(t, uint16(64), data)

	size, err := m.SizeBytes()
	require.NoError(t, err)
	require.Equal(t, uint64(16<<30), size)

	form, err := m.FormFactor()
	require.NoError(t, err)
	require.Equal(t, uint8(9), form)

	locator, err := m.DeviceLocator()
	require.NoError(t, err)
	require.Equal(t, "DIMM_A1", locator)

	bank, err := m.BankLocator()
	require.NoError(t, err)
	require.Equal(t, "BANK 0", bank)

	typ, err := m.MemoryType()
	require.NoError(t, err)
	require.Equal(t, uint8(26), typ)

	speed, err := m.Speed()
	require.NoError(t, err)
	require.Equal(t, uint16(3200), speed)

	manufacturer, err := m.Manufacturer()
	require.NoError(t, err)
	require.Equal(t, "ACME", manufacturer)

	part, err := m.PartNumber()
	require.NoError(t, err)
	require.Equal(t, "PN-M1", part)

	attrs, err := m.Attributes()
	require.NoError(t, err)
	require.Equal(t, uint8(2), attrs)

	configured, err := m.ConfiguredSpeed()
	require.NoError(t, err)
	require.Equal(t, uint16(2933), configured)

	voltage, err := m.ConfiguredVoltage()
	require.NoError(t, err)
	require.Equal(t, uint16(1200), voltage)
}

func TestMemoryDeviceSizes(t *testing.T) {
	for _, tt := range []struct {
		name    string
		rawSize uint16
		extSize uint32
		want    uint64
	}{
		{name: "empty slot", rawSize: 0, want: 0},
		{name: "unknown", rawSize: 0xFFFF, want: 0},
		{name: "MiB granularity", rawSize: 2048, want: 2 << 30},
		{name: "KiB granularity", rawSize: 0x8000 | 640, want: 640 << 10},
		{name: "extended size", rawSize: 0x7FFF, extSize: 48 << 10, want: 48 << 30},
	} {
		t.Run(tt.name, func(t *testing.T) {
			strs := []string{"DIMM_A1", "BANK 0", "ACME", "S", "A", "P"}

			s, err := NewTable(buildStructure(t, TypeMemoryDevice, 0,
				memDeviceFormatted(tt.rawSize, tt.extSize), strs)).Next()
			require.NoError(t, err)

			m, err := NewMemoryDevice(s)
			require.NoError(t, err)

			size, err := m.SizeBytes()
			require.NoError(t, err)
			require.Equal(t, tt.want, size)
		})
	}
}

func TestMemoryDeviceShortLengths(t *testing.T) {
	// SMBIOS 2.1 form: no speed, inventory strings or voltages.
	formatted := memDeviceFormatted(2048, 0)[:memDeviceLen21-headerLen]

	s, err := NewTable(buildStructure(t, TypeMemoryDevice, 0,
		formatted, []string{"DIMM_A1", "BANK 0"})).Next()
	require.NoError(t, err)

	m, err := NewMemoryDevice(s)
	require.NoError(t, err)

	size, err := m.SizeBytes()
	require.NoError(t, err)
	require.Equal(t, uint64(2<<30), size)

	if _, err := m.Speed(); !errors.Is(err, ErrUnsupportedField) {
		t.Errorf("Speed() error = %v, want %v", err, ErrUnsupportedField)
	}

	if _, err := m.Manufacturer(); !errors.Is(err, ErrUnsupportedField) {
		t.Errorf("Manufacturer() error = %v, want %v", err, ErrUnsupportedField)
	}

	if _, err := m.ExtendedSize(); !errors.Is(err, ErrUnsupportedField) {
		t.Errorf("ExtendedSize() error = %v, want %v", err, ErrUnsupportedField)
	}

	if _, err := m.MinimumVoltage(); !errors.Is(err, ErrUnsupportedField) {
		t.Errorf("MinimumVoltage() error = %v, want %v", err, ErrUnsupportedField)
	}

	// A saturated raw size without the extended field is an error, not
	// a silent zero.
	formatted = memDeviceFormatted(0x7FFF, 0)[:memDeviceLen21-headerLen]

	s, err = NewTable(buildStructure(t, TypeMemoryDevice, 0,
		formatted, []string{"DIMM_A1", "BANK 0"})).Next()
	require.NoError(t, err)

	m, err = NewMemoryDevice(s)
	require.NoError(t, err)

	if _, err := m.SizeBytes(); !errors.Is(err, ErrUnsupportedField) {
		t.Errorf("SizeBytes() error = %v, want %v", err, ErrUnsupportedField)
	}
}

func memMappedFormatted(start32, end32 uint32, start64, end64 uint64) []byte {
	buf := uio.NewLittleEndianBuffer(nil)
	buf.Write32(start32)
	buf.Write32(end32)
	buf.Write16(0x1000) // array handle
	buf.Write8(1)       // partition width
	buf.Write64(start64)
	buf.Write64(end64)

	return buf.Data()
}

func TestMemoryArrayMappedAddress(t *testing.T) {
	// 0..4 GiB in KiB units.
	s, err := NewTable(buildStructure(t, TypeMemoryArrayMappedAddress, 0x1300,
		memMappedFormatted(0, 4<<20, 0, 0), nil)).Next()
	require.NoError(t, err)

	m, err := NewMemoryArrayMappedAddress(s)
	require.NoError(t, err)

	array, err := m.ArrayHandle()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1000), array)

	width, err := m.PartitionWidth()
	require.NoError(t, err)
	require.Equal(t, uint8(1), width)

	start, end, err := m.Range()
	require.NoError(t, err)
	require.Equal(t, uint64(0), start)
	require.Equal(t, uint64(4<<30), end)
}

func TestMemoryArrayMappedAddressExtendedRange(t *testing.T) {
	s, err := NewTable(buildStructure(t, TypeMemoryArrayMappedAddress, 0,
		memMappedFormatted(0xFFFFFFFF, 0xFFFFFFFF, 1<<40, 1<<41), nil)).Next()
	require.NoError(t, err)

	m, err := NewMemoryArrayMappedAddress(s)
	require.NoError(t, err)

	start, end, err := m.Range()
	require.NoError(t, err)
	require.Equal(t, uint64(1<<40), start)
	require.Equal(t, uint64(1<<41), end)
}
