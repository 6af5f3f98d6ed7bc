// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func runArgs(t *testing.T, args ...string) (int, string) {
	t.Helper()
	var out bytes.Buffer
	code := run(context.Background(), args, &out)
	return code, out.String()
}

// mustRunArgs runs args and fails unless the command exits 0.
func mustRunArgs(t *testing.T, args ...string) string {
	t.Helper()
	code, out := runArgs(t, args...)
	if code != 0 {
		t.Fatalf("run(%q) = %d, output:\n%s", args, code, out)
	}
	return out
}

// contains reports every substring of want missing from out.
func contains(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output does not contain %q:\n%s", w, out)
		}
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMalformedConfigExitsOne(t *testing.T) {
	path := writeFile(t, "window.toml", []byte("width = [\n"))

	code, out := runArgs(t, "--config", path, "numeric")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	contains(t, out, path)
	if !strings.HasPrefix(out, "error: config ") {
		t.Errorf("output %q does not start with the config diagnostic", out)
	}
	if n := strings.Count(out, "\n"); n != 1 {
		t.Errorf("diagnostic spans %d lines, want 1", n)
	}
}

func TestInvalidConfigExitsOne(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"file type", "window.ini", "width=1\n"},
		{"negative width", "window.yaml", "width: -5\n"},
		{"nan supersample", "window.toml", "supersample = nan\n"},
		{"huge supersample", "window.yaml", "supersample: 1e9\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, []byte(tt.content))
			code, out := runArgs(t, "--config", path, "--headless", "--frames", "1")
			if code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
			contains(t, out, path)
		})
	}
}

func TestHeadlessDemo(t *testing.T) {
	path := writeFile(t, "window.yaml", []byte("title: demo\nwidth: 320\nheight: 240\nsupersample: 2\n"))

	if out := mustRunArgs(t, "--headless", "--frames", "3", "--config", path); out != "rendered 3 frames\n" {
		t.Errorf("output = %q, want %q", out, "rendered 3 frames\n")
	}
}

func TestHeadlessEvents(t *testing.T) {
	out := mustRunArgs(t, "--headless", "events")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != len(eventScript())+2 {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(eventScript())+2, out)
	}
	contains(t, lines[0], "Focused true")
	contains(t, lines[1], "RedrawRequested")
	contains(t, out, "Resized 1024x768", "KeyboardInput", "TouchpadPressure")
	contains(t, lines[len(lines)-1], "CloseRequested")
}

func TestMonitors(t *testing.T) {
	out := mustRunArgs(t, "--headless", "--no-color", "monitors")
	contains(t, out, "headless-0", "yes")
	if strings.Contains(out, "\x1b[") {
		t.Errorf("--no-color output has escape sequences: %q", out)
	}

	out = mustRunArgs(t, "--headless", "--no-color", "monitors", "--modes", "-n", "0")
	contains(t, out, "144Hz", "24bpp")

	code, out := runArgs(t, "--headless", "monitors", "-n", "3")
	if code != 1 {
		t.Errorf("monitors -n 3 exit code = %d, want 1", code)
	}
	contains(t, out, "out of range")
}

func TestBackendList(t *testing.T) {
	contains(t, mustRunArgs(t, "--no-color", "backend"), "wgpu", "software")
}

func TestReportHeadless(t *testing.T) {
	contains(t, mustRunArgs(t, "--headless", "--no-color", "report"), "software", "shapes", "blit", "fifo")
}

func TestNumeric(t *testing.T) {
	out := mustRunArgs(t, "--no-color", "numeric", "-t", "i16")
	contains(t, out, "-32,768", "32,767")
	if strings.Contains(out, "u64") {
		t.Errorf("-t i16 output lists u64:\n%s", out)
	}

	contains(t, mustRunArgs(t, "--no-color", "numeric"), "18,446,744,073,709,551,615")

	code, out := runArgs(t, "numeric", "-t", "i128")
	if code != 1 {
		t.Errorf("numeric -t i128 exit code = %d, want 1", code)
	}
	contains(t, out, `"i128"`)
}

func TestFontCommand(t *testing.T) {
	path := writeFile(t, "go.ttf", goregular.TTF)
	contains(t, mustRunArgs(t, "--no-color", "font", path), "Go Regular", "2048")
}

func TestBitmapCommand(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, "dot.png", buf.Bytes())

	contains(t, mustRunArgs(t, "--no-color", "bitmap", path), "png 3x2, 6 pixels")
}

func TestBitmapUnknownFormat(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("plain text"))

	code, out := runArgs(t, "bitmap", path)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	contains(t, out, path)
}
