package translate

import (
	"github.com/soar/padbridge/internal/binding"
	"github.com/soar/padbridge/internal/gamepad"
)

// directional keys also drive the console D-pad whatever they are bound to,
// so a plain directional keypad works without any bindings
var dpadKeys = map[gamepad.KeyCode]gamepad.ButtonID{
	gamepad.KeyDpadUp:    gamepad.DpadUp,
	gamepad.KeyDpadDown:  gamepad.DpadDown,
	gamepad.KeyDpadLeft:  gamepad.DpadLeft,
	gamepad.KeyDpadRight: gamepad.DpadRight,
}

// HandleKey translates one key transition. It returns true if the event was
// consumed. Pressing back opens the host menu instead of reaching the core.
// Events whose device has gone away are not forwarded and return false.
func (t *Translator) HandleKey(ev gamepad.KeyEvent) bool {
	button := binding.ResolveKey(t.store, ev.Code).Or(gamepad.ButtonID(ev.Code))

	var state gamepad.ButtonState
	switch ev.Action {
	case gamepad.KeyDown:
		if ev.Code == gamepad.KeyBack {
			if t.menu != nil {
				t.menu.OpenMenu()
			}
			return true
		}
		state = gamepad.Pressed
	case gamepad.KeyUp:
		state = gamepad.Released
	default:
		return false
	}

	if id, ok := dpadKeys[ev.Code]; ok {
		t.button(id, state)
	}

	if ev.Device == nil {
		return false
	}

	t.button(button, state)
	return true
}
