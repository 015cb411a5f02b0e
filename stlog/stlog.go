// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stlog adds log levels on top of the log facility in the
// standard library.
package stlog

import (
	"fmt"
	"io"
	"log"
	"sync/atomic"
)

const (
	prefix   string = "smbios: "
	errorTag string = "[ERROR] "
	warnTag  string = "[WARN]  "
	infoTag  string = "[INFO]  "
	debugTag string = "[DEBUG] "
)

type LogLevel int32

const (
	ErrorLevel LogLevel = iota
	WarnLevel
	InfoLevel
	DebugLevel
)

//nolint:gochecknoglobals
var (
	currentLevel int32 = int32(InfoLevel)
	logger             = log.New(log.Writer(), prefix, log.LstdFlags)
)

// SetLevel sets the logging level. Unknown values select DebugLevel.
func SetLevel(level LogLevel) {
	switch level {
	case ErrorLevel, WarnLevel, InfoLevel, DebugLevel:
	default:
		level = DebugLevel
	}

	atomic.StoreInt32(&currentLevel, int32(level))
}

// Level returns the log level currently set.
func Level() LogLevel {
	return LogLevel(atomic.LoadInt32(&currentLevel))
}

// SetOutput directs all following log output to w.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// ParseLevel maps the level strings used on command lines to a
// LogLevel. It accepts the long form ("error") and the first letter
// short form ("e").
func ParseLevel(s string) (LogLevel, error) {
	switch s {
	case "error", "e":
		return ErrorLevel, nil
	case "warn", "w":
		return WarnLevel, nil
	case "info", "i":
		return InfoLevel, nil
	case "debug", "d":
		return DebugLevel, nil
	default:
		return DebugLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Error prints error messages when permitted by the log level. Input
// can be formatted according to fmt.Printf.
func Error(format string, v ...interface{}) {
	print(ErrorLevel, errorTag, format, v...)
}

// Warn prints warning messages when permitted by the log level. Input
// can be formatted according to fmt.Printf.
func Warn(format string, v ...interface{}) {
	print(WarnLevel, warnTag, format, v...)
}

// Info prints info messages when permitted by the log level. Input can
// be formatted according to fmt.Printf.
func Info(format string, v ...interface{}) {
	print(InfoLevel, infoTag, format, v...)
}

// Debug prints debug messages when permitted by the log level. Input
// can be formatted according to fmt.Printf.
func Debug(format string, v ...interface{}) {
	print(DebugLevel, debugTag, format, v...)
}

func print(level LogLevel, tag, format string, v ...interface{}) {
	if Level() >= level {
		logger.Print(tag + fmt.Sprintf(format, v...))
	}
}
