package translate

import (
	"github.com/soar/padbridge/internal/binding"
	"github.com/soar/padbridge/internal/gamepad"
)

// the digital controls an axis can be routed to, in the order their events
// are sent
var triggerControls = [...]gamepad.Control{
	gamepad.ControlTriggerL,
	gamepad.ControlTriggerR,
	gamepad.ControlZL,
	gamepad.ControlZR,
}

type trigger struct {
	mapped  bool
	pressed bool
}

// HandleMotion translates one motion sample covering every axis of a device.
// It returns true if the sample was consumed. Samples from sources other
// than joysticks are left for the caller; cancelled samples are consumed
// without effect. A sample whose device has gone away is dropped and
// returns false.
//
// Both sticks are reported on every sample, even when centred, and the D-pad
// buttons are re-asserted on every sample. Triggers are only reported when
// some axis is routed to them.
func (t *Translator) HandleMotion(ev gamepad.MotionSample) bool {
	if ev.Source != gamepad.SourceJoystick {
		return false
	}
	if ev.Action == gamepad.MotionCancel {
		return true
	}

	dev := ev.Device
	if dev == nil {
		return false
	}

	var primary, secondary, dpad [2]float64
	var triggers [len(triggerControls)]trigger

	for _, r := range dev.Axes {
		value := t.calibrator.Scale(dev, r.Axis, ev.Value(r.Axis))

		target, ok := binding.ResolveAxis(t.store, t.defaults, r.Axis)
		if !ok {
			continue
		}

		value = gamepad.ApplyDeadzone(value, deadzone)

		switch target.Control {
		case gamepad.ControlPrimaryStick:
			primary[target.Orientation] = value
		case gamepad.ControlSecondaryStick:
			secondary[target.Orientation] = value
		case gamepad.ControlDpad:
			dpad[target.Orientation] = value
		default:
			for i, c := range triggerControls {
				if c == target.Control {
					triggers[i] = trigger{mapped: true, pressed: value != 0}
				}
			}
		}
	}

	t.stick(dev.Descriptor, gamepad.StickPrimary, primary)
	t.stick(dev.Descriptor, gamepad.StickSecondary, secondary)

	t.dpadAxis(dpad[gamepad.Horizontal], gamepad.DpadLeft, gamepad.DpadRight)
	t.dpadAxis(dpad[gamepad.Vertical], gamepad.DpadUp, gamepad.DpadDown)

	for i, tr := range triggers {
		if !tr.mapped {
			continue
		}
		state := gamepad.Released
		if tr.pressed {
			state = gamepad.Pressed
		}
		t.button(triggerControls[i].Button(), state)
	}

	return true
}

// dpadAxis sends one pair of D-pad button events for an axis of the D-pad
// vector. neg is pressed for negative values, pos for positive values.
func (t *Translator) dpadAxis(v float64, neg, pos gamepad.ButtonID) {
	switch {
	case v < 0:
		t.button(neg, gamepad.Pressed)
		t.button(pos, gamepad.Released)
	case v > 0:
		t.button(neg, gamepad.Released)
		t.button(pos, gamepad.Pressed)
	default:
		t.button(neg, gamepad.Released)
		t.button(pos, gamepad.Released)
	}
}
