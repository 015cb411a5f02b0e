// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"

	"system-transparency.org/smbios"
	"system-transparency.org/smbios/stlog"
)

func dump(w io.Writer, entry, table []byte, lenient bool) error {
	opts := smbios.Options{AllowBadChecksum: lenient}

	ep, err := smbios.ParseEntryPoint(entry, opts)
	if err != nil {
		return err
	}

	major, minor, rev := ep.Version()
	fmt.Fprintf(w, "SMBIOS %d.%d", major, minor)
	if rev != 0 {
		fmt.Fprintf(w, ".%d", rev)
	}
	fmt.Fprintln(w, " present.")

	if !ep.ChecksumOK() {
		stlog.Warn("entry point checksum mismatch")
	}

	addr, size := ep.Table()
	fmt.Fprintf(w, "Table at 0x%08X, %d bytes.\n", addr, size)

	if len(table) != size {
		stlog.Warn("table dump is %d bytes, entry point announces %d", len(table), size)
	}

	it := smbios.NewTable(table)
	if ep32, ok := ep.(*smbios.EntryPoint32); ok {
		fmt.Fprintf(w, "%d structures announced.\n", ep32.StructureCount)
		it = smbios.NewTableCount(table, int(ep32.StructureCount))
	}

	for {
		s, err := it.Next()
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}

		fmt.Fprintf(w, "\n%s\n", s.Header)
		printStructure(w, s)
	}
}

func printStructure(w io.Writer, s *smbios.Structure) {
	fmt.Fprintf(w, "%s\n", s.Header.Type)

	switch s.Header.Type {
	case smbios.TypeBIOSInformation:
		printBIOS(w, s)
	case smbios.TypeSystemInformation:
		printSystem(w, s)
	case smbios.TypeSystemEnclosure:
		printEnclosure(w, s)
	case smbios.TypeProcessorInformation:
		printProcessor(w, s)
	case smbios.TypeCacheInformation:
		printCache(w, s)
	case smbios.TypeSystemSlot:
		printSlot(w, s)
	case smbios.TypePhysicalMemoryArray:
		printMemoryArray(w, s)
	case smbios.TypeMemoryDevice:
		printMemoryDevice(w, s)
	case smbios.TypeMemoryArrayMappedAddress:
		printMemoryMapped(w, s)
	case smbios.TypeSystemBootInformation:
		printBoot(w, s)
	default:
		printRaw(w, s)
	}
}

// field prints one decoded value. Fields excluded by the structure's
// declared length are skipped silently, they are not an error of the
// dump.
func field(w io.Writer, name string, v interface{}, err error) {
	if errors.Is(err, smbios.ErrUnsupportedField) {
		return
	}

	if err != nil {
		stlog.Debug("%s: %v", name, err)
		return
	}

	fmt.Fprintf(w, "\t%s: %v\n", name, v)
}

func printRaw(w io.Writer, s *smbios.Structure) {
	fmt.Fprintf(w, "\tFormatted: % X\n", s.Formatted)

	for i, str := range s.Strings() {
		fmt.Fprintf(w, "\tString %d: %s\n", i+1, str)
	}
}

func printBIOS(w io.Writer, s *smbios.Structure) {
	b, err := smbios.NewBIOSInformation(s)
	if err != nil {
		stlog.Warn("%v", err)
		printRaw(w, s)
		return
	}

	vendor, err := b.Vendor()
	field(w, "Vendor", vendor, err)

	version, err := b.BIOSVersion()
	field(w, "Version", version, err)

	date, err := b.ReleaseDate()
	field(w, "Release Date", date, err)

	size, err := b.ROMSizeBytes()
	field(w, "ROM Size", fmtBytes(size), err)

	if c, err := b.Characteristics(); err == nil {
		field(w, "PCI supported", c.PCISupported(), nil)
		field(w, "Upgradeable", c.Upgradeable(), nil)
		field(w, "Selectable boot", c.SelectableBoot(), nil)
	}

	if ext, err := b.ExtendedCharacteristics(); err == nil {
		field(w, "ACPI", ext.ACPI(), nil)
		field(w, "UEFI", ext.UEFI(), nil)
		field(w, "Virtual machine", ext.VirtualMachine(), nil)
	}

	if major, minor, err := b.Revision(); err == nil && major != 0xFF {
		field(w, "BIOS Revision", fmt.Sprintf("%d.%d", major, minor), nil)
	}

	if major, minor, err := b.ECRevision(); err == nil && major != 0xFF {
		field(w, "Firmware Revision", fmt.Sprintf("%d.%d", major, minor), nil)
	}
}

func printSystem(w io.Writer, s *smbios.Structure) {
	si, err := smbios.NewSystemInformation(s)
	if err != nil {
		stlog.Warn("%v", err)
		printRaw(w, s)
		return
	}

	manufacturer, err := si.Manufacturer()
	field(w, "Manufacturer", manufacturer, err)

	product, err := si.ProductName()
	field(w, "Product Name", product, err)

	version, err := si.ProductVersion()
	field(w, "Version", version, err)

	serial, err := si.SerialNumber()
	field(w, "Serial Number", serial, err)

	uuid, err := si.UUID()
	field(w, "UUID", uuid, err)

	wake, err := si.WakeUpType()
	field(w, "Wake-up Type", wake, err)

	sku, err := si.SKU()
	field(w, "SKU Number", sku, err)

	family, err := si.Family()
	field(w, "Family", family, err)
}

func printEnclosure(w io.Writer, s *smbios.Structure) {
	e, err := smbios.NewSystemEnclosure(s)
	if err != nil {
		stlog.Warn("%v", err)
		printRaw(w, s)
		return
	}

	manufacturer, err := e.Manufacturer()
	field(w, "Manufacturer", manufacturer, err)

	chassis, err := e.ChassisType()
	field(w, "Type", chassis, err)

	lock, err := e.HasLock()
	field(w, "Lock", lock, err)

	version, err := e.EnclosureVersion()
	field(w, "Version", version, err)

	serial, err := e.SerialNumber()
	field(w, "Serial Number", serial, err)

	tag, err := e.AssetTag()
	field(w, "Asset Tag", tag, err)

	height, err := e.Height()
	field(w, "Height", height, err)

	cords, err := e.NumberOfPowerCords()
	field(w, "Number Of Power Cords", cords, err)

	sku, err := e.SKU()
	field(w, "SKU Number", sku, err)
}

func printProcessor(w io.Writer, s *smbios.Structure) {
	p, err := smbios.NewProcessorInformation(s)
	if err != nil {
		stlog.Warn("%v", err)
		printRaw(w, s)
		return
	}

	socket, err := p.SocketDesignation()
	field(w, "Socket Designation", socket, err)

	family, err := p.Family()
	field(w, "Family", fmt.Sprintf("0x%X", family), err)

	manufacturer, err := p.Manufacturer()
	field(w, "Manufacturer", manufacturer, err)

	id, err := p.ID()
	field(w, "ID", fmt.Sprintf("0x%016X", id), err)

	version, err := p.ProcessorVersion()
	field(w, "Version", version, err)

	maxSpeed, err := p.MaxSpeed()
	field(w, "Max Speed", fmt.Sprintf("%d MHz", maxSpeed), err)

	curSpeed, err := p.CurrentSpeed()
	field(w, "Current Speed", fmt.Sprintf("%d MHz", curSpeed), err)

	populated, err := p.Populated()
	field(w, "Populated", populated, err)

	serial, err := p.SerialNumber()
	field(w, "Serial Number", serial, err)

	part, err := p.PartNumber()
	field(w, "Part Number", part, err)

	cores, err := p.CoreCount()
	field(w, "Core Count", cores, err)

	threads, err := p.ThreadCount()
	field(w, "Thread Count", threads, err)
}

func printCache(w io.Writer, s *smbios.Structure) {
	c, err := smbios.NewCacheInformation(s)
	if err != nil {
		stlog.Warn("%v", err)
		printRaw(w, s)
		return
	}

	socket, err := c.SocketDesignation()
	field(w, "Socket Designation", socket, err)

	level, err := c.Level()
	field(w, "Level", level, err)

	enabled, err := c.Enabled()
	field(w, "Enabled", enabled, err)

	maxSize, err := c.MaxSizeBytes()
	field(w, "Maximum Size", fmtBytes(maxSize), err)

	installed, err := c.InstalledSizeBytes()
	field(w, "Installed Size", fmtBytes(installed), err)

	assoc, err := c.Associativity()
	field(w, "Associativity", fmt.Sprintf("0x%02X", assoc), err)
}

func printSlot(w io.Writer, s *smbios.Structure) {
	sl, err := smbios.NewSystemSlot(s)
	if err != nil {
		stlog.Warn("%v", err)
		printRaw(w, s)
		return
	}

	designation, err := sl.Designation()
	field(w, "Designation", designation, err)

	typ, err := sl.SlotType()
	field(w, "Type", fmt.Sprintf("0x%02X", typ), err)

	usage, err := sl.CurrentUsage()
	field(w, "Current Usage", fmt.Sprintf("0x%02X", usage), err)

	id, err := sl.ID()
	field(w, "ID", id, err)

	characteristics, err := sl.Characteristics()
	field(w, "Characteristics", fmt.Sprintf("0x%04X", characteristics), err)

	bus, err := sl.BusNumber()
	field(w, "Bus Number", fmt.Sprintf("0x%02X", bus), err)
}

func printMemoryArray(w io.Writer, s *smbios.Structure) {
	m, err := smbios.NewPhysicalMemoryArray(s)
	if err != nil {
		stlog.Warn("%v", err)
		printRaw(w, s)
		return
	}

	location, err := m.Location()
	field(w, "Location", fmt.Sprintf("0x%02X", location), err)

	use, err := m.Use()
	field(w, "Use", fmt.Sprintf("0x%02X", use), err)

	capacity, err := m.MaxCapacityBytes()
	field(w, "Maximum Capacity", fmtBytes(capacity), err)

	devices, err := m.NumberOfDevices()
	field(w, "Number Of Devices", devices, err)
}

func printMemoryDevice(w io.Writer, s *smbios.Structure) {
	m, err := smbios.NewMemoryDevice(s)
	if err != nil {
		stlog.Warn("%v", err)
		printRaw(w, s)
		return
	}

	locator, err := m.DeviceLocator()
	field(w, "Locator", locator, err)

	bank, err := m.BankLocator()
	field(w, "Bank Locator", bank, err)

	size, err := m.SizeBytes()
	field(w, "Size", fmtBytes(size), err)

	typ, err := m.MemoryType()
	field(w, "Type", fmt.Sprintf("0x%02X", typ), err)

	speed, err := m.Speed()
	field(w, "Speed", fmt.Sprintf("%d MT/s", speed), err)

	manufacturer, err := m.Manufacturer()
	field(w, "Manufacturer", manufacturer, err)

	serial, err := m.SerialNumber()
	field(w, "Serial Number", serial, err)

	part, err := m.PartNumber()
	field(w, "Part Number", part, err)

	configured, err := m.ConfiguredSpeed()
	field(w, "Configured Speed", fmt.Sprintf("%d MT/s", configured), err)
}

func printMemoryMapped(w io.Writer, s *smbios.Structure) {
	m, err := smbios.NewMemoryArrayMappedAddress(s)
	if err != nil {
		stlog.Warn("%v", err)
		printRaw(w, s)
		return
	}

	start, end, err := m.Range()
	field(w, "Starting Address", fmt.Sprintf("0x%016X", start), err)
	field(w, "Ending Address", fmt.Sprintf("0x%016X", end), err)

	array, err := m.ArrayHandle()
	field(w, "Array Handle", fmt.Sprintf("0x%04X", array), err)

	width, err := m.PartitionWidth()
	field(w, "Partition Width", width, err)
}

func printBoot(w io.Writer, s *smbios.Structure) {
	b, err := smbios.NewSystemBootInformation(s)
	if err != nil {
		stlog.Warn("%v", err)
		printRaw(w, s)
		return
	}

	status, err := b.Status()
	field(w, "Status", status, err)

	if data, err := b.Data(); err == nil && len(data) > 0 {
		field(w, "Data", fmt.Sprintf("% X", data), nil)
	}
}

func fmtBytes(n uint64) string {
	switch {
	case n >= 1<<30 && n%(1<<30) == 0:
		return fmt.Sprintf("%d GB", n>>30)
	case n >= 1<<20 && n%(1<<20) == 0:
		return fmt.Sprintf("%d MB", n>>20)
	case n >= 1<<10 && n%(1<<10) == 0:
		return fmt.Sprintf("%d kB", n>>10)
	default:
		return fmt.Sprintf("%d bytes", n)
	}
}
