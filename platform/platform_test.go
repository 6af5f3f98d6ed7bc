// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"math"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindCloseRequested, "CloseRequested"},
		{KindFocused, "Focused"},
		{Kind(200), "Kind(200)"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}

	for k := range KindCount {
		if kindNames[k] == "" {
			t.Errorf("kind %d has no name", k)
		}
	}
}

func TestEventKinds(t *testing.T) {
	events := []Event{
		CloseRequested{}, KeyboardInput{}, Resized{}, RedrawRequested{},
		CursorMoved{}, CursorEntered{}, CursorLeft{}, MouseInput{},
		MouseWheel{}, TouchpadPressure{}, AxisMotion{}, DeviceButton{},
		DeviceMotion{}, ScaleFactorChanged{}, Focused{},
	}
	if len(events) != int(KindCount) {
		t.Fatalf("len(events) = %d, want %d", len(events), KindCount)
	}
	for i, ev := range events {
		if got := ev.Kind(); got != Kind(i) {
			t.Errorf("%T.Kind() = %v, want %v", ev, got, Kind(i))
		}
	}
}

func TestDescribe(t *testing.T) {
	exact := []struct {
		ev   Event
		want string
	}{
		{Resized{Width: 640, Height: 480}, "Resized 640x480"},
		{CloseRequested{}, "CloseRequested"},
		{Focused{Focused: true}, "Focused true"},
		{nil, "<nil>"},
	}
	for _, tt := range exact {
		if got := Describe(tt.ev); got != tt.want {
			t.Errorf("Describe(%#v) = %q, want %q", tt.ev, got, tt.want)
		}
	}

	partial := []struct {
		ev   Event
		want string
	}{
		{KeyboardInput{Key: gpucontext.KeyEscape, Action: Press}, "press"},
		{DeviceButton{Device: 1, Button: 3, Action: Release}, "device=1 button=3 release"},
	}
	for _, tt := range partial {
		if got := Describe(tt.ev); !strings.Contains(got, tt.want) {
			t.Errorf("Describe(%#v) = %q, want it to contain %q", tt.ev, got, tt.want)
		}
	}
}

func TestVideoMode(t *testing.T) {
	m := VideoMode{Width: 1920, Height: 1080, RedBits: 8, GreenBits: 8, BlueBits: 8, RefreshRate: 60}
	if got := m.Depth(); got != 24 {
		t.Errorf("Depth() = %d, want 24", got)
	}
	if got := m.String(); got != "1920x1080@60Hz 24bpp" {
		t.Errorf("String() = %q, want %q", got, "1920x1080@60Hz 24bpp")
	}
}

func TestMonitorDPI(t *testing.T) {
	m := Monitor{WidthMM: 254, Current: VideoMode{Width: 1000}}
	if got := m.DPI(); math.Abs(got-100) > 1e-9 {
		t.Errorf("DPI() = %v, want 100", got)
	}
	if got := (Monitor{}).DPI(); got != 0 {
		t.Errorf("zero Monitor DPI() = %v, want 0", got)
	}
}

func TestWindowAttributesValidate(t *testing.T) {
	tests := []struct {
		w, h int
		ok   bool
	}{
		{1, 1, true},
		{0, 10, false},
		{10, -1, false},
	}
	for _, tt := range tests {
		err := WindowAttributes{Width: tt.w, Height: tt.h}.Validate()
		if (err == nil) != tt.ok {
			t.Errorf("Validate(%dx%d) = %v, want ok=%v", tt.w, tt.h, err, tt.ok)
		}
	}
}
