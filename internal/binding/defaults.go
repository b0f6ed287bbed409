package binding

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/soar/padbridge/internal/gamepad"
)

// DefaultKeyMap is the stock gamepad layout: host gamepad keys to the
// console buttons in the same position.
var DefaultKeyMap = map[gamepad.KeyCode]gamepad.ButtonID{
	gamepad.KeyButtonA:      gamepad.ButtonA,
	gamepad.KeyButtonB:      gamepad.ButtonB,
	gamepad.KeyButtonX:      gamepad.ButtonX,
	gamepad.KeyButtonY:      gamepad.ButtonY,
	gamepad.KeyButtonStart:  gamepad.ButtonStart,
	gamepad.KeyButtonSelect: gamepad.ButtonSelect,
	gamepad.KeyButtonMode:   gamepad.ButtonHome,
	gamepad.KeyButtonL2:     gamepad.ButtonZL,
	gamepad.KeyButtonR2:     gamepad.ButtonZR,
	gamepad.KeyDpadUp:       gamepad.DpadUp,
	gamepad.KeyDpadDown:     gamepad.DpadDown,
	gamepad.KeyDpadLeft:     gamepad.DpadLeft,
	gamepad.KeyDpadRight:    gamepad.DpadRight,
	gamepad.KeyButtonL1:     gamepad.TriggerL,
	gamepad.KeyButtonR1:     gamepad.TriggerR,
}

// DefaultAxisBindings routes the analog triggers to L and R on top of the
// built-in stick defaults.
var DefaultAxisBindings = map[gamepad.AxisID]AxisTarget{
	gamepad.AxisLTrigger: {gamepad.ControlTriggerL, gamepad.Horizontal},
	gamepad.AxisRTrigger: {gamepad.ControlTriggerR, gamepad.Horizontal},
	gamepad.AxisHatX:     {gamepad.ControlDpad, gamepad.Horizontal},
	gamepad.AxisHatY:     {gamepad.ControlDpad, gamepad.Vertical},
}

const defaultToken = "engine:gamepad"

// WriteDefaults writes the stock key and axis bindings to path. The format
// is chosen from the file extension.
func WriteDefaults(path string) error {
	v := viper.New()
	for k, b := range DefaultKeyMap {
		d := Descriptor{Token: defaultToken, Axis: "code", Code: int(b)}
		v.Set(KeyName(k), d.String())
	}
	for a, t := range DefaultAxisBindings {
		d := Descriptor{Token: defaultToken, Axis: fmt.Sprint(int(t.Orientation)), Code: int(t.Control.Button())}
		v.Set(AxisName(a), d.String())
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("bindings: writing defaults: %w", err)
	}
	return nil
}
