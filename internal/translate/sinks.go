package translate

import (
	"log"

	"github.com/soar/padbridge/internal/gamepad"
)

// Tee returns a Sink that forwards every event to each of sinks in order.
func Tee(sinks ...Sink) Sink {
	return teeSink(sinks)
}

type teeSink []Sink

func (ts teeSink) OnButtonEvent(device string, id gamepad.ButtonID, state gamepad.ButtonState) {
	for _, s := range ts {
		s.OnButtonEvent(device, id, state)
	}
}

func (ts teeSink) OnStickEvent(device string, stick gamepad.StickID, x, y float64) {
	for _, s := range ts {
		s.OnStickEvent(device, stick, x, y)
	}
}

// LogSink logs the translated stream. Level-triggered events are repeated on
// every sample, so only changes are logged.
type LogSink struct {
	buttons map[gamepad.ButtonID]gamepad.ButtonState
	sticks  [2][2]float64
}

func NewLogSink() *LogSink {
	return &LogSink{buttons: make(map[gamepad.ButtonID]gamepad.ButtonState)}
}

func (l *LogSink) OnButtonEvent(device string, id gamepad.ButtonID, state gamepad.ButtonState) {
	if prev, ok := l.buttons[id]; ok && prev == state {
		return
	}
	l.buttons[id] = state
	log.Printf("[DEBUG] Button %s %s device=%s", id, state, device)
}

func (l *LogSink) OnStickEvent(device string, stick gamepad.StickID, x, y float64) {
	if l.sticks[stick] == [2]float64{x, y} {
		return
	}
	l.sticks[stick] = [2]float64{x, y}
	log.Printf("[DEBUG] Stick %s x=%.2f y=%.2f device=%s", stick, x, y, device)
}
