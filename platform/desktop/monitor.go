// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package desktop

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/platform"
)

// monitors lists the connected monitors. GLFW returns the primary monitor
// first.
func monitors() []platform.Monitor {
	glfwMons := glfw.GetMonitors()
	primary := glfw.GetPrimaryMonitor()
	out := make([]platform.Monitor, 0, len(glfwMons))
	for _, mon := range glfwMons {
		m := platform.Monitor{
			Name:    mon.GetName(),
			Primary: primary != nil && mon.GetName() == primary.GetName(),
		}
		m.X, m.Y = mon.GetPos()
		m.WidthMM, m.HeightMM = mon.GetPhysicalSize()
		m.ScaleX, m.ScaleY = mon.GetContentScale()
		m.ScaleX, m.ScaleY = sanitizeScale(m.ScaleX), sanitizeScale(m.ScaleY)
		if vm := mon.GetVideoMode(); vm != nil {
			m.Current = videoMode(vm)
		}
		for _, vm := range mon.GetVideoModes() {
			m.Modes = append(m.Modes, videoMode(vm))
		}
		if m.Current.Width == 0 || m.Current.Height == 0 {
			winloop.Logger().Debug("desktop: monitor has no size", "monitor", m.Name)
		}
		out = append(out, m)
	}
	return out
}

func videoMode(vm *glfw.VidMode) platform.VideoMode {
	return platform.VideoMode{
		Width:       vm.Width,
		Height:      vm.Height,
		RedBits:     vm.RedBits,
		GreenBits:   vm.GreenBits,
		BlueBits:    vm.BlueBits,
		RefreshRate: vm.RefreshRate,
	}
}

// sanitizeScale maps NaN and sub-unit content scales, which some drivers
// report for virtual displays, to 1.
func sanitizeScale(s float32) float32 {
	if math.IsNaN(float64(s)) || s < 1 {
		return 1
	}
	return s
}
