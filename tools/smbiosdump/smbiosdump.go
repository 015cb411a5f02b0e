// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

// smbiosdump decodes a dumped SMBIOS entry point and structure table,
// e.g. copies of /sys/firmware/dmi/tables/smbios_entry_point and
// /sys/firmware/dmi/tables/DMI. It does not read firmware memory
// itself.

import (
	"os"

	"gopkg.in/alecthomas/kingpin.v2"
	"system-transparency.org/smbios/stlog"
)

const HelpText = "smbiosdump decodes a dumped SMBIOS entry point and structure table"

var goversion string

var (
	logLevel = kingpin.Flag("loglevel", "Log level: error, warn, info or debug").Default("info").String()
	lenient  = kingpin.Flag("lenient", "Accept entry points with bad checksums").Bool()

	entryPointFile = kingpin.Arg("entry-point", "File holding the raw entry point").Required().ExistingFile()
	tableFile      = kingpin.Arg("table", "File holding the raw structure table").Required().ExistingFile()
)

func main() {
	kingpin.UsageTemplate(kingpin.CompactUsageTemplate).Version(goversion)
	kingpin.CommandLine.Help = HelpText
	kingpin.Parse()

	level, err := stlog.ParseLevel(*logLevel)
	if err != nil {
		stlog.Error("%v", err)
		os.Exit(1)
	}
	stlog.SetLevel(level)

	entry, err := os.ReadFile(*entryPointFile)
	if err != nil {
		stlog.Error("reading entry point: %v", err)
		os.Exit(1)
	}

	table, err := os.ReadFile(*tableFile)
	if err != nil {
		stlog.Error("reading table: %v", err)
		os.Exit(1)
	}

	if err := dump(os.Stdout, entry, table, *lenient); err != nil {
		stlog.Error("%v", err)
		os.Exit(1)
	}
}
