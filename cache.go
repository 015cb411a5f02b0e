// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package smbios

import "system-transparency.org/smbios/sterror"

const (
	cacheLen20 = 0x0F // socket through current SRAM type
	cacheLen21 = 0x13 // speed, ECC, type, associativity
	cacheLen31 = 0x1B // 32-bit sizes
)

// cacheSizeGranularityMask selects the granularity bit of the 16-bit
// cache size fields: 0 means 1 KiB units, 1 means 64 KiB units.
const cacheSizeGranularityMask = 0x8000

// CacheInformation is the typed view over a type 7 structure.
type CacheInformation struct {
	s *Structure
}

// NewCacheInformation wraps s. It fails with ErrUnexpectedType for
// other structure types and ErrInvalidLength if the mandatory SMBIOS
// 2.0 fields are not covered.
func NewCacheInformation(s *Structure) (*CacheInformation, error) {
	const op = sterror.Op("cache information view")

	if s.Header.Type != TypeCacheInformation {
		return nil, sterror.E(ErrScope, op, ErrUnexpectedType, s.Header.Type.String())
	}

	if int(s.Header.Length) < cacheLen20 {
		return nil, sterror.E(ErrScope, op, ErrInvalidLength)
	}

	return &CacheInformation{s: s}, nil
}

// Structure returns the underlying record.
func (c *CacheInformation) Structure() *Structure {
	return c.s
}

// SocketDesignation returns the cache socket string, e.g. "L2 Cache".
func (c *CacheInformation) SocketDesignation() (string, error) {
	return c.s.stringAt(0x04)
}

// Configuration returns the cache configuration word: level,
// socketed, location, enabled, operational mode.
func (c *CacheInformation) Configuration() (uint16, error) {
	return c.s.wordAt(0x05)
}

// Level returns the 1-based cache level decoded from the
// configuration word.
func (c *CacheInformation) Level() (uint8, error) {
	cfg, err := c.Configuration()

	return uint8(cfg&0x7) + 1, err
}

// Enabled reports whether the cache is enabled, decoded from the
// configuration word.
func (c *CacheInformation) Enabled() (bool, error) {
	cfg, err := c.Configuration()

	return cfg&0x80 != 0, err
}

// decodeCacheSize turns a 16-bit size field into bytes, honoring the
// granularity bit.
func decodeCacheSize(raw uint16) uint64 {
	size := uint64(raw &^ uint16(cacheSizeGranularityMask))
	if raw&cacheSizeGranularityMask != 0 {
		return size * 64 * 1024
	}

	return size * 1024
}

// MaxSizeBytes returns the maximum installable cache size in bytes,
// consulting the SMBIOS 3.1 32-bit field when the word saturates.
func (c *CacheInformation) MaxSizeBytes() (uint64, error) {
	raw, err := c.s.wordAt(0x07)
	if err != nil {
		return 0, err
	}

	if raw == 0xFFFF && int(c.s.Header.Length) >= cacheLen31 {
		return c.decodeCacheSize2(0x13)
	}

	return decodeCacheSize(raw), nil
}

// InstalledSizeBytes returns the installed cache size in bytes, 0 if
// no cache is installed, consulting the SMBIOS 3.1 32-bit field when
// the word saturates.
func (c *CacheInformation) InstalledSizeBytes() (uint64, error) {
	raw, err := c.s.wordAt(0x09)
	if err != nil {
		return 0, err
	}

	if raw == 0xFFFF && int(c.s.Header.Length) >= cacheLen31 {
		return c.decodeCacheSize2(0x17)
	}

	return decodeCacheSize(raw), nil
}

// decodeCacheSize2 reads an SMBIOS 3.1 32-bit cache size field: bit
// 31 selects 64 KiB granularity, the rest is the count.
func (c *CacheInformation) decodeCacheSize2(off int) (uint64, error) {
	raw, err := c.s.dwordAt(off)
	if err != nil {
		return 0, err
	}

	size := uint64(raw &^ uint32(1<<31))
	if raw&(1<<31) != 0 {
		return size * 64 * 1024, nil
	}

	return size * 1024, nil
}

// SupportedSRAMType returns the supported SRAM type bit field.
func (c *CacheInformation) SupportedSRAMType() (uint16, error) {
	return c.s.wordAt(0x0B)
}

// CurrentSRAMType returns the current SRAM type bit field.
func (c *CacheInformation) CurrentSRAMType() (uint16, error) {
	return c.s.wordAt(0x0D)
}

// Speed returns the cache speed in ns, 0 if unknown. Present since
// SMBIOS 2.1.
func (c *CacheInformation) Speed() (uint8, error) {
	if int(c.s.Header.Length) < cacheLen21 {
		return 0, ErrUnsupportedField
	}

	return c.s.byteAt(0x0F)
}

// ErrorCorrectionType returns the error correction code. Present
// since SMBIOS 2.1.
func (c *CacheInformation) ErrorCorrectionType() (uint8, error) {
	if int(c.s.Header.Length) < cacheLen21 {
		return 0, ErrUnsupportedField
	}

	return c.s.byteAt(0x10)
}

// SystemCacheType returns the cache type code (instruction, data,
// unified). Present since SMBIOS 2.1.
func (c *CacheInformation) SystemCacheType() (uint8, error) {
	if int(c.s.Header.Length) < cacheLen21 {
		return 0, ErrUnsupportedField
	}

	return c.s.byteAt(0x11)
}

// Associativity returns the raw associativity code. Decoding it into
// way counts is left to the caller. Present since SMBIOS 2.1.
func (c *CacheInformation) Associativity() (uint8, error) {
	if int(c.s.Header.Length) < cacheLen21 {
		return 0, ErrUnsupportedField
	}

	return c.s.byteAt(0x12)
}
