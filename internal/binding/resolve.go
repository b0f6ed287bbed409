package binding

import (
	"errors"
	"fmt"

	"github.com/soar/padbridge/internal/gamepad"
)

var (
	// ErrNoTable is returned when there is no binding store at all.
	ErrNoTable = errors.New("no binding table")

	// ErrNoOverride is returned when nothing is stored for the key.
	ErrNoOverride = errors.New("no binding override")

	// ErrEmptyValue is returned when the stored value is empty.
	ErrEmptyValue = errors.New("empty binding value")
)

// Resolution is the outcome of resolving a key code override. Either Button
// holds the resolved id, or Err says why resolution fell back.
type Resolution struct {
	Button gamepad.ButtonID
	Err    error
}

// Resolved reports whether the override produced a button id.
func (r Resolution) Resolved() bool {
	return r.Err == nil
}

// Or returns the resolved button, or fallback if resolution failed.
func (r Resolution) Or(fallback gamepad.ButtonID) gamepad.ButtonID {
	if r.Err != nil {
		return fallback
	}
	return r.Button
}

// ResolveKey resolves the stored override of a host key code.
func ResolveKey(store Store, code gamepad.KeyCode) Resolution {
	if store == nil {
		return Resolution{Err: ErrNoTable}
	}

	key := KeyName(code)
	v, ok := store.GetString(key)
	if !ok {
		return Resolution{Err: fmt.Errorf("%s: %w", key, ErrNoOverride)}
	}
	if v == "" {
		return Resolution{Err: fmt.Errorf("%s: %w", key, ErrEmptyValue)}
	}

	d, err := Parse(v)
	if err != nil {
		return Resolution{Err: fmt.Errorf("%s: %w", key, err)}
	}
	return Resolution{Button: d.Button()}
}

// AxisTarget is where an analog axis is routed.
type AxisTarget struct {
	Control     gamepad.Control
	Orientation gamepad.Orientation
}

// AxisDefaults is the fixed table of targets used for axes without a
// binding. It is immutable once built.
type AxisDefaults struct {
	targets map[gamepad.AxisID]AxisTarget
}

// NewAxisDefaults copies targets into a new table.
func NewAxisDefaults(targets map[gamepad.AxisID]AxisTarget) AxisDefaults {
	d := AxisDefaults{targets: make(map[gamepad.AxisID]AxisTarget, len(targets))}
	for a, t := range targets {
		d.targets[a] = t
	}
	return d
}

// DefaultAxes is the built-in table: the left stick axes drive the primary
// stick and the right stick axes drive the secondary stick.
func DefaultAxes() AxisDefaults {
	return NewAxisDefaults(map[gamepad.AxisID]AxisTarget{
		gamepad.AxisX:  {gamepad.ControlPrimaryStick, gamepad.Horizontal},
		gamepad.AxisY:  {gamepad.ControlPrimaryStick, gamepad.Vertical},
		gamepad.AxisZ:  {gamepad.ControlSecondaryStick, gamepad.Horizontal},
		gamepad.AxisRZ: {gamepad.ControlSecondaryStick, gamepad.Vertical},
	})
}

// DefaultAxesWithHat extends DefaultAxes with the hat axes driving the
// D-pad, for hosts that report a joystick hat as HAT_X and HAT_Y values.
func DefaultAxesWithHat() AxisDefaults {
	d := DefaultAxes()
	d.targets[gamepad.AxisHatX] = AxisTarget{gamepad.ControlDpad, gamepad.Horizontal}
	d.targets[gamepad.AxisHatY] = AxisTarget{gamepad.ControlDpad, gamepad.Vertical}
	return d
}

// Lookup returns the default target of an axis.
func (d AxisDefaults) Lookup(axis gamepad.AxisID) (AxisTarget, bool) {
	t, ok := d.targets[axis]
	return t, ok
}

// ResolveAxis returns the target of a host axis. A stored binding wins if it
// parses and carries an orientation; otherwise the default table is used.
// The second return is false if the axis goes nowhere.
func ResolveAxis(store Store, defaults AxisDefaults, axis gamepad.AxisID) (AxisTarget, bool) {
	if store != nil {
		if v, ok := store.GetString(AxisName(axis)); ok {
			if d, err := Parse(v); err == nil {
				if o, ok := d.Orientation(); ok {
					c := gamepad.ControlForButton(d.Button())
					return AxisTarget{Control: c, Orientation: o}, c != gamepad.ControlNone
				}
			}
		}
	}
	return defaults.Lookup(axis)
}
