// Copyright 2021 the System Transparency Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	for _, tt := range []struct {
		name    string
		level   LogLevel
		tag     string
		logFunc func(string, ...interface{})
		visible bool
	}{
		{
			name:    "error visible at error level",
			level:   ErrorLevel,
			tag:     errorTag,
			logFunc: Error,
			visible: true,
		},
		{
			name:    "debug hidden at error level",
			level:   ErrorLevel,
			tag:     debugTag,
			logFunc: Debug,
			visible: false,
		},
		{
			name:    "warn visible at info level",
			level:   InfoLevel,
			tag:     warnTag,
			logFunc: Warn,
			visible: true,
		},
		{
			name:    "debug visible at debug level",
			level:   DebugLevel,
			tag:     debugTag,
			logFunc: Debug,
			visible: true,
		},
		{
			name:    "info hidden at warn level",
			level:   WarnLevel,
			tag:     infoTag,
			logFunc: Info,
			visible: false,
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			SetOutput(&buf)
			SetLevel(tt.level)

			tt.logFunc("some message %d", 5)

			got := buf.String()
			if tt.visible {
				if !strings.Contains(got, tt.tag) || !strings.Contains(got, "some message 5") {
					t.Errorf("output %q does not contain %q", got, tt.tag)
				}
			} else if got != "" {
				t.Errorf("unexpected output %q", got)
			}
		})
	}
}

func TestSetLevelInvalid(t *testing.T) {
	SetLevel(LogLevel(42))

	if Level() != DebugLevel {
		t.Errorf("Level() = %d, want %d", Level(), DebugLevel)
	}
}

func TestParseLevel(t *testing.T) {
	for _, tt := range []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{in: "error", want: ErrorLevel},
		{in: "e", want: ErrorLevel},
		{in: "warn", want: WarnLevel},
		{in: "w", want: WarnLevel},
		{in: "info", want: InfoLevel},
		{in: "i", want: InfoLevel},
		{in: "debug", want: DebugLevel},
		{in: "d", want: DebugLevel},
		{in: "verbose", wantErr: true},
	} {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLevel(%q) = %d, want error", tt.in, got)
				}

				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
