// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package table

import (
	"bytes"
	"strings"
	"testing"
)

func render(t *testing.T, tb *Table, color bool) string {
	t.Helper()
	var buf bytes.Buffer
	if err := tb.Render(&buf, color); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestRenderPlain(t *testing.T) {
	tb := New("NAME", "W", "H").SetAlign(1, Right).SetAlign(2, Right)
	tb.AddRow("primary", 1920, 1080)
	tb.AddRow("side", 800, 600)

	want := "" +
		"NAME        W     H\n" +
		"primary  1920  1080\n" +
		"side      800   600\n"
	if got := render(t, tb, false); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
	if got := tb.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderColorHeader(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR", "")
	tb := New("A", "B")
	tb.AddRow("x", "y")

	lines := strings.Split(strings.TrimSuffix(render(t, tb, true), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "\x1b[") {
		t.Errorf("header %q is not styled", lines[0])
	}
	if lines[1] != "x  y" {
		t.Errorf("row = %q, want %q", lines[1], "x  y")
	}
}

func TestNoColorEnvironment(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if got := render(t, New("A"), true); strings.Contains(got, "\x1b[") {
		t.Errorf("Render() = %q, want no escape sequences with NO_COLOR", got)
	}
}

func TestWideCharacters(t *testing.T) {
	tb := New("K", "V")
	tb.AddRow("日本", 1)
	tb.AddRow("ab", 2)
	if got, want := tb.String(), "K     V\n日本  1\nab    2\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRaggedRows(t *testing.T) {
	tb := New("A", "B")
	tb.AddRow("1")
	tb.AddRow("2", "3", "ignored")
	if got, want := tb.String(), "A  B\n1\n2  3\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
