package gamepad

import "math"

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ButtonsState struct {
	A      bool `json:"a"`
	B      bool `json:"b"`
	X      bool `json:"x"`
	Y      bool `json:"y"`
	L      bool `json:"l"`
	R      bool `json:"r"`
	ZL     bool `json:"zl"`
	ZR     bool `json:"zr"`
	Start  bool `json:"start"`
	Select bool `json:"select"`
	Home   bool `json:"home"`
}

type DpadState struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

type SticksState struct {
	CirclePad Vector `json:"circlePad"`
	CStick    Vector `json:"cStick"`
}

// ConsoleState is the input state of the emulated console as seen through
// the translated event stream.
type ConsoleState struct {
	Connected bool         `json:"connected"`
	Name      string       `json:"name"`
	Layout    string       `json:"layout"`
	Buttons   ButtonsState `json:"buttons"`
	Dpad      DpadState    `json:"dpad"`
	Sticks    SticksState  `json:"sticks"`
}

// button returns the field backing a console button, or nil for ids the
// console does not have.
func (s *ConsoleState) button(id ButtonID) *bool {
	switch id {
	case ButtonA:
		return &s.Buttons.A
	case ButtonB:
		return &s.Buttons.B
	case ButtonX:
		return &s.Buttons.X
	case ButtonY:
		return &s.Buttons.Y
	case TriggerL:
		return &s.Buttons.L
	case TriggerR:
		return &s.Buttons.R
	case ButtonZL:
		return &s.Buttons.ZL
	case ButtonZR:
		return &s.Buttons.ZR
	case ButtonStart:
		return &s.Buttons.Start
	case ButtonSelect:
		return &s.Buttons.Select
	case ButtonHome:
		return &s.Buttons.Home
	case DpadUp:
		return &s.Dpad.Up
	case DpadDown:
		return &s.Dpad.Down
	case DpadLeft:
		return &s.Dpad.Left
	case DpadRight:
		return &s.Dpad.Right
	}
	return nil
}

type DeltaChanges struct {
	Connected *bool         `json:"connected,omitempty"`
	Name      *string       `json:"name,omitempty"`
	Layout    *string       `json:"layout,omitempty"`
	Buttons   *ButtonsState `json:"buttons,omitempty"`
	Dpad      *DpadState    `json:"dpad,omitempty"`
	Sticks    *SticksState  `json:"sticks,omitempty"`
}

func (d *DeltaChanges) IsEmpty() bool {
	return d.Connected == nil &&
		d.Name == nil &&
		d.Layout == nil &&
		d.Buttons == nil &&
		d.Dpad == nil &&
		d.Sticks == nil
}

const analogThreshold = 0.01

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < analogThreshold
}

func ComputeDelta(old, new_ ConsoleState) *DeltaChanges {
	d := &DeltaChanges{}

	if old.Connected != new_.Connected {
		d.Connected = &new_.Connected
	}
	if old.Name != new_.Name {
		d.Name = &new_.Name
	}
	if old.Layout != new_.Layout {
		d.Layout = &new_.Layout
	}
	if old.Buttons != new_.Buttons {
		d.Buttons = &new_.Buttons
	}
	if old.Dpad != new_.Dpad {
		d.Dpad = &new_.Dpad
	}

	if !floatEqual(old.Sticks.CirclePad.X, new_.Sticks.CirclePad.X) ||
		!floatEqual(old.Sticks.CirclePad.Y, new_.Sticks.CirclePad.Y) ||
		!floatEqual(old.Sticks.CStick.X, new_.Sticks.CStick.X) ||
		!floatEqual(old.Sticks.CStick.Y, new_.Sticks.CStick.Y) {
		d.Sticks = &new_.Sticks
	}

	return d
}
