package translate

import (
	"github.com/soar/padbridge/internal/binding"
	"github.com/soar/padbridge/internal/gamepad"
)

// deadzone is the band around zero in which calibrated axis values are
// treated as idle.
const deadzone = 0.1

// DefaultVirtualDevice is the device identity digital events are reported on.
const DefaultVirtualDevice = "Touchscreen"

// Sink receives the translated event stream. It is implemented by the
// emulation core and by anything watching it.
type Sink interface {
	OnButtonEvent(device string, id gamepad.ButtonID, state gamepad.ButtonState)
	OnStickEvent(device string, stick gamepad.StickID, x, y float64)
}

// Calibrator converts a raw axis sample to a value in -1..1.
type Calibrator interface {
	Scale(dev *gamepad.Device, axis gamepad.AxisID, raw float64) float64
}

// Menu opens the host menu.
type Menu interface {
	OpenMenu()
}

// MenuFunc adapts a function to Menu.
type MenuFunc func()

func (f MenuFunc) OpenMenu() {
	f()
}

// Options configure a Translator. Store and Menu may be nil. A nil
// AxisDefaults means binding.DefaultAxes(); pass a pointer to an empty table
// to disable defaults.
type Options struct {
	Store         binding.Store
	Calibrator    Calibrator
	Sink          Sink
	Menu          Menu
	AxisDefaults  *binding.AxisDefaults
	VirtualDevice string
}

// Translator turns key transitions and motion samples from physical devices
// into events for the emulated console. It keeps no state between calls and
// is meant to be driven from the thread that receives input.
type Translator struct {
	store      binding.Store
	calibrator Calibrator
	sink       Sink
	menu       Menu
	defaults   binding.AxisDefaults
	virtual    string
}

// New creates a Translator. A nil Calibrator means the built-in calibrator.
func New(opts Options) *Translator {
	t := &Translator{
		store:      opts.Store,
		calibrator: opts.Calibrator,
		sink:       opts.Sink,
		menu:       opts.Menu,
		virtual:    opts.VirtualDevice,
	}
	if t.calibrator == nil {
		t.calibrator = gamepad.NewCalibrator()
	}
	if opts.AxisDefaults != nil {
		t.defaults = *opts.AxisDefaults
	} else {
		t.defaults = binding.DefaultAxes()
	}
	if t.virtual == "" {
		t.virtual = DefaultVirtualDevice
	}
	return t
}

func (t *Translator) button(id gamepad.ButtonID, state gamepad.ButtonState) {
	if t.sink != nil {
		t.sink.OnButtonEvent(t.virtual, id, state)
	}
}

func (t *Translator) stick(device string, stick gamepad.StickID, v [2]float64) {
	if t.sink != nil {
		t.sink.OnStickEvent(device, stick, v[gamepad.Horizontal], v[gamepad.Vertical])
	}
}
