// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/winloop"
	"github.com/gogpu/winloop/platform"
)

// axisEpsilon is the smallest axis change reported as AxisMotion.
const axisEpsilon = 1.0 / 256

type joystickState struct {
	axes    []float32
	buttons []glfw.Action
}

// scanJoysticks records the joysticks connected before the callback was
// installed.
func (p *Platform) scanJoysticks() {
	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() {
			p.joysticks[joy] = &joystickState{}
		}
	}
}

// joystickChanged tracks connections.
func (p *Platform) joystickChanged(joy glfw.Joystick, event glfw.PeripheralEvent) {
	switch event {
	case glfw.Connected:
		p.joysticks[joy] = &joystickState{}
		winloop.Logger().Info("desktop: joystick connected", "device", int(joy), "name", joy.GetName())
	case glfw.Disconnected:
		delete(p.joysticks, joy)
		winloop.Logger().Info("desktop: joystick disconnected", "device", int(joy))
	}
}

// pollJoysticks queues axis and button changes of connected joysticks.
func (p *Platform) pollJoysticks() {
	for joy, st := range p.joysticks {
		next := &joystickState{axes: joy.GetAxes(), buttons: joy.GetButtons()}
		for _, ev := range diffJoystick(int(joy), st, next) {
			p.push(ev)
		}
		*st = *next
	}
}

// diffJoystick returns the events that turn prev into next. Axes and
// buttons absent from prev are compared against rest and Release.
func diffJoystick(device int, prev, next *joystickState) []platform.Event {
	var events []platform.Event
	for i, v := range next.axes {
		var old float32
		if i < len(prev.axes) {
			old = prev.axes[i]
		}
		if d := v - old; d > axisEpsilon || d < -axisEpsilon {
			events = append(events, platform.AxisMotion{Device: device, Axis: i, Value: float64(v)})
		}
	}
	for i, a := range next.buttons {
		old := glfw.Release
		if i < len(prev.buttons) {
			old = prev.buttons[i]
		}
		if a != old {
			events = append(events, platform.DeviceButton{Device: device, Button: i, Action: mapAction(a)})
		}
	}
	return events
}
