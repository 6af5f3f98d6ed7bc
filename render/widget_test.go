// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/winloop"
)

func TestEncoderRecordsInOrder(t *testing.T) {
	target := NewPixmapTarget(10, 10)
	enc := NewEncoder()

	enc.Clear(target, red)
	enc.FillCircle(target, Pt(5, 5), 2, white)
	enc.DrawImage(target, image.NewRGBA(image.Rect(0, 0, 1, 1)), image.Rect(0, 0, 4, 4))

	want := []Op{OpClear, OpCircle, OpImage}
	if enc.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", enc.Len(), len(want))
	}
	for i, cmd := range enc.Commands() {
		if cmd.Op != want[i] {
			t.Errorf("command %d = %v, want %v", i, cmd.Op, want[i])
		}
		if cmd.Target != target {
			t.Errorf("command %d target not recorded", i)
		}
	}
}

func TestEncoderSkipsDegenerateCommands(t *testing.T) {
	target := NewPixmapTarget(10, 10)
	enc := NewEncoder()

	enc.FillCircle(target, Pt(5, 5), 0, white)
	enc.FillCircle(target, Pt(5, 5), -1, white)
	enc.DrawImage(target, nil, image.Rect(0, 0, 4, 4))
	enc.DrawImage(target, image.NewRGBA(image.Rect(0, 0, 1, 1)), image.Rectangle{})

	if enc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", enc.Len())
	}
}

func TestEncoderReset(t *testing.T) {
	target := NewPixmapTarget(10, 10)
	enc := NewEncoder()
	enc.Clear(target, red)

	enc.Reset()

	if enc.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", enc.Len())
	}
}

func TestEncoderPremultipliesColor(t *testing.T) {
	enc := NewEncoder()
	enc.Clear(NewPixmapTarget(1, 1), color.NRGBA{R: 255, A: 128})

	got := enc.Commands()[0].Color
	if got.A != 128 || got.R != 128 {
		t.Errorf("Color = %v, want premultiplied {128 0 0 128}", got)
	}
}

func TestOpString(t *testing.T) {
	for op, want := range map[Op]string{
		OpClear: "clear", OpCircle: "circle", OpImage: "image", OpResolve: "resolve", Op(99): "unknown",
	} {
		if got := op.String(); got != want {
			t.Errorf("Op(%d).String() = %q, want %q", op, got, want)
		}
	}
}

func TestWidgetsRejectNilTarget(t *testing.T) {
	widgets := map[string]Widget{
		"clear":  Clear{Color: red},
		"circle": Circle{Radius: 1, Color: red},
		"load":   LoadImage(image.NewRGBA(image.Rect(0, 0, 1, 1)), image.Rectangle{}),
	}
	for name, w := range widgets {
		t.Run(name, func(t *testing.T) {
			err := w.Render(NewContext(nil), NewEncoder(), nil)
			if !errors.Is(err, winloop.ErrRender) {
				t.Errorf("Render(nil target) error = %v, want ErrRender", err)
			}
		})
	}
}

func TestStepsFailFast(t *testing.T) {
	var calls []string
	record := func(name string, err error) Widget {
		return WidgetFunc(func(*Context, *Encoder, ColorTarget) error {
			calls = append(calls, name)
			return err
		})
	}
	boom := errors.New("boom")

	steps := Steps{record("a", nil), record("b", boom), record("c", nil)}
	err := steps.Render(NewContext(nil), NewEncoder(), NewPixmapTarget(1, 1))

	if !errors.Is(err, boom) {
		t.Errorf("Render() error = %v, want %v", err, boom)
	}
	if len(calls) != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Errorf("calls = %v, want [a b]", calls)
	}
}

func TestMatrix(t *testing.T) {
	m := Translate(10, 20).Multiply(Scale(2, 3))
	got := m.TransformPoint(Pt(1, 1))
	if got != Pt(12, 23) {
		t.Errorf("TransformPoint() = %v, want (12,23)", got)
	}
	if sf := Scale(2, 2).ScaleFactor(); sf != 2 {
		t.Errorf("ScaleFactor() = %v, want 2", sf)
	}
	if !Identity().IsIdentity() || Translate(1, 0).IsIdentity() {
		t.Error("IsIdentity() misreports")
	}
}
