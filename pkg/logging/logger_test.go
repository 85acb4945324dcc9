// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// Level Tests
// =============================================================================

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
		{Level(-1), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := tt.level.String()
			if got != tt.want {
				t.Errorf("Level.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{Level(99), slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			got := tt.level.toSlogLevel()
			if got != tt.want {
				t.Errorf("Level.toSlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{" warn ", LevelWarn},
		{"warning", LevelWarn},
		{"Error", LevelError},
		{"", LevelWarn},
		{"verbose", LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Logger Output Tests
// =============================================================================

func TestNew_WritesToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Service: "detective", Output: &buf})
	defer logger.Close()

	logger.Info("session started", "session_id", "abc")

	out := buf.String()
	if !strings.Contains(out, "session started") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "session_id=abc") {
		t.Errorf("output missing attribute: %q", out)
	}
	if !strings.Contains(out, "service=detective") {
		t.Errorf("output missing service attribute: %q", out)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf})
	defer logger.Close()

	logger.Debug("debug hidden")
	logger.Info("info hidden")
	logger.Warn("warn shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("messages below Warn leaked: %q", out)
	}
	if !strings.Contains(out, "warn shown") {
		t.Errorf("warn message missing: %q", out)
	}
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, JSON: true, Output: &buf})
	defer logger.Close()

	logger.Info("verdict", "tally", 2)

	if !strings.Contains(buf.String(), `"tally":2`) {
		t.Errorf("expected JSON attribute, got %q", buf.String())
	}
}

func TestNew_QuietWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Quiet: true, Output: &buf})
	defer logger.Close()

	logger.Error("should not appear")

	if buf.Len() != 0 {
		t.Errorf("quiet logger wrote %q", buf.String())
	}
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelInfo, Output: &buf})
	defer logger.Close()

	child := logger.With("session_id", "s-1")
	child.Info("exploration finished")

	if !strings.Contains(buf.String(), "session_id=s-1") {
		t.Errorf("child logger lost attribute: %q", buf.String())
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	defer logger.Close()
	logger.Error("dropped")
}

// =============================================================================
// File Logging Tests
// =============================================================================

func TestNew_FileLogging(t *testing.T) {
	dir := t.TempDir()
	logger := New(Config{Level: LevelInfo, LogDir: dir, Service: "quest", Quiet: true})

	logger.Info("written to file", "room", "Cozinha")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	name := "quest_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), `"room":"Cozinha"`) {
		t.Errorf("log file missing entry: %q", string(data))
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandPath("~/logs"); got != filepath.Join(home, "logs") {
		t.Errorf("expandPath(~/logs) = %q", got)
	}
	if got := expandPath("/var/log"); got != "/var/log" {
		t.Errorf("expandPath(/var/log) = %q", got)
	}
}

// =============================================================================
// Exporter Tests
// =============================================================================

func TestBufferedExporter_ReceivesEntries(t *testing.T) {
	exporter := NewBufferedExporter()
	logger := New(Config{Level: LevelInfo, Quiet: true, Service: "detective", Exporter: exporter})

	logger.Debug("below level")
	logger.Info("clue collected", "clue", "Faca suja")
	logger.Warn("invalid command", "input", "x")

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := exporter.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	var found bool
	for _, e := range entries {
		if e.Message == "clue collected" {
			found = true
			if e.Attrs["clue"] != "Faca suja" {
				t.Errorf("clue attr = %v", e.Attrs["clue"])
			}
			if e.Service != "detective" {
				t.Errorf("service = %q", e.Service)
			}
		}
	}
	if !found {
		t.Errorf("clue collected entry missing: %v", exporter.Messages())
	}
}

type failingExporter struct{}

func (failingExporter) Export(ctx context.Context, entry LogEntry) error { return nil }
func (failingExporter) Flush(ctx context.Context) error                  { return errors.New("flush failed") }
func (failingExporter) Close() error                                     { return nil }

func TestClose_ReportsExporterError(t *testing.T) {
	logger := New(Config{Quiet: true, Exporter: failingExporter{}})
	err := logger.Close()
	if err == nil || !strings.Contains(err.Error(), "flush exporter") {
		t.Errorf("Close() error = %v, want flush exporter error", err)
	}
}

func TestArgsToMap(t *testing.T) {
	got := argsToMap([]any{"room", "Hall", "visited", 3, 42, "ignored", "dangling"})
	if got["room"] != "Hall" || got["visited"] != 3 {
		t.Errorf("argsToMap() = %v", got)
	}
	if len(got) != 2 {
		t.Errorf("argsToMap() kept %d keys, want 2", len(got))
	}
}
