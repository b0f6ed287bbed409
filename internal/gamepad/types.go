package gamepad

import "fmt"

// ButtonID identifies a logical button of the emulated console. Key codes
// without a binding are forwarded unchanged, so any non-negative value is a
// valid id and the named constants below are only the ones the console knows.
type ButtonID int

const (
	ButtonA ButtonID = 700 + iota
	ButtonB
	ButtonX
	ButtonY
	ButtonStart
	ButtonSelect
	ButtonHome
	ButtonZL
	ButtonZR
	DpadUp
	DpadDown
	DpadLeft
	DpadRight
	StickLeft
	StickC
	TriggerL
	TriggerR
)

// Dpad is the axis-driven D-pad emulation control. It never reaches the core
// directly; it is turned into DpadUp/Down/Left/Right presses.
const Dpad ButtonID = 780

var buttonNames = map[ButtonID]string{
	ButtonA:      "a",
	ButtonB:      "b",
	ButtonX:      "x",
	ButtonY:      "y",
	ButtonStart:  "start",
	ButtonSelect: "select",
	ButtonHome:   "home",
	ButtonZL:     "zl",
	ButtonZR:     "zr",
	DpadUp:       "dpad_up",
	DpadDown:     "dpad_down",
	DpadLeft:     "dpad_left",
	DpadRight:    "dpad_right",
	StickLeft:    "circle_pad",
	StickC:       "c_stick",
	TriggerL:     "l",
	TriggerR:     "r",
	Dpad:         "dpad",
}

func (b ButtonID) String() string {
	if n, ok := buttonNames[b]; ok {
		return n
	}
	return fmt.Sprintf("button(%d)", int(b))
}

// ButtonState is the level of a digital button.
type ButtonState int

const (
	Released ButtonState = iota
	Pressed
)

func (s ButtonState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// StickID names one of the two analog sticks of the emulated console.
type StickID int

const (
	StickPrimary StickID = iota
	StickSecondary
)

// Button returns the console id the core uses for the stick.
func (s StickID) Button() ButtonID {
	if s == StickSecondary {
		return StickC
	}
	return StickLeft
}

func (s StickID) String() string {
	if s == StickSecondary {
		return "secondary"
	}
	return "primary"
}

// Orientation selects the component of a dual-axis control an axis feeds.
// The values double as indexes into a {x, y} pair.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Control is the logical control an analog axis can be routed to.
type Control int

const (
	ControlNone Control = iota
	ControlPrimaryStick
	ControlSecondaryStick
	ControlDpad
	ControlTriggerL
	ControlTriggerR
	ControlZL
	ControlZR
)

// ControlForButton maps the console id stored in an axis binding to the
// control it names. Ids that are not analog-capable give ControlNone.
func ControlForButton(id ButtonID) Control {
	switch id {
	case StickLeft:
		return ControlPrimaryStick
	case StickC:
		return ControlSecondaryStick
	case Dpad:
		return ControlDpad
	case TriggerL:
		return ControlTriggerL
	case TriggerR:
		return ControlTriggerR
	case ButtonZL:
		return ControlZL
	case ButtonZR:
		return ControlZR
	}
	return ControlNone
}

// Button is the inverse of ControlForButton.
func (c Control) Button() ButtonID {
	switch c {
	case ControlPrimaryStick:
		return StickLeft
	case ControlSecondaryStick:
		return StickC
	case ControlDpad:
		return Dpad
	case ControlTriggerL:
		return TriggerL
	case ControlTriggerR:
		return TriggerR
	case ControlZL:
		return ButtonZL
	case ControlZR:
		return ButtonZR
	}
	return -1
}

func (c Control) String() string {
	if c == ControlNone {
		return "none"
	}
	return c.Button().String()
}

// KeyCode is a host key code. Numbering follows the Android key event
// constants since that is what stored bindings were written against.
type KeyCode int

const (
	KeyBack         KeyCode = 4
	KeyDpadUp       KeyCode = 19
	KeyDpadDown     KeyCode = 20
	KeyDpadLeft     KeyCode = 21
	KeyDpadRight    KeyCode = 22
	KeyButtonA      KeyCode = 96
	KeyButtonB      KeyCode = 97
	KeyButtonC      KeyCode = 98
	KeyButtonX      KeyCode = 99
	KeyButtonY      KeyCode = 100
	KeyButtonZ      KeyCode = 101
	KeyButtonL1     KeyCode = 102
	KeyButtonR1     KeyCode = 103
	KeyButtonL2     KeyCode = 104
	KeyButtonR2     KeyCode = 105
	KeyButtonThumbL KeyCode = 106
	KeyButtonThumbR KeyCode = 107
	KeyButtonStart  KeyCode = 108
	KeyButtonSelect KeyCode = 109
	KeyButtonMode   KeyCode = 110
)

// AxisID is a host axis id, numbered like the Android motion event axes.
type AxisID int

const (
	AxisX        AxisID = 0
	AxisY        AxisID = 1
	AxisZ        AxisID = 11
	AxisRX       AxisID = 12
	AxisRY       AxisID = 13
	AxisRZ       AxisID = 14
	AxisHatX     AxisID = 15
	AxisHatY     AxisID = 16
	AxisLTrigger AxisID = 17
	AxisRTrigger AxisID = 18
	AxisGeneric1 AxisID = 32
)

// AxisRange describes one axis reported by a device. Flat and Fuzz are the
// hardware tolerances, in the same normalized units as the axis values.
type AxisRange struct {
	Axis AxisID
	Flat float64
	Fuzz float64
}

// Device is a connected physical controller. It is owned by whatever source
// produced it and only read for the duration of one event.
type Device struct {
	Descriptor string
	Name       string
	VendorID   uint16
	ProductID  uint16
	Axes       []AxisRange
}

// Range returns the descriptor of the given axis.
func (d *Device) Range(axis AxisID) (AxisRange, bool) {
	for _, r := range d.Axes {
		if r.Axis == axis {
			return r, true
		}
	}
	return AxisRange{}, false
}

// DeviceInfo describes one open controller to monitors.
type DeviceInfo struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Layout     string `json:"layout"`
	Descriptor string `json:"descriptor"`
	Active     bool   `json:"active"`
}

// KeyAction is the transition carried by a KeyEvent.
type KeyAction int

const (
	KeyDown KeyAction = iota
	KeyUp
	KeyMultiple
)

// KeyEvent is one discrete key transition. A nil Device means the controller
// went away while the event was in flight.
type KeyEvent struct {
	Code   KeyCode
	Action KeyAction
	Device *Device
}

// Source classifies where a motion sample came from.
type Source int

const (
	SourceJoystick Source = iota
	SourcePointer
)

// MotionAction is the action of a motion sample.
type MotionAction int

const (
	MotionMove MotionAction = iota
	MotionCancel
)

// MotionSample is one sample of every axis of a device. Axes missing from
// Values read as zero. A nil Device means the controller went away.
type MotionSample struct {
	Device *Device
	Source Source
	Action MotionAction
	Values map[AxisID]float64
}

// Value returns the raw value of an axis.
func (m MotionSample) Value(axis AxisID) float64 {
	return m.Values[axis]
}
