package gamepad

import "sync"

// Tracker folds translated button and stick events into a ConsoleState and
// emits every state that differs from the last one emitted. It satisfies the
// event sink the translators write to.
type Tracker struct {
	state     ConsoleState
	prevState ConsoleState
	changes   chan ConsoleState
	mu        sync.RWMutex
}

func NewTracker() *Tracker {
	return &Tracker{
		changes: make(chan ConsoleState, 64),
	}
}

// Changes returns the channel on which state changes are sent.
func (t *Tracker) Changes() <-chan ConsoleState {
	return t.changes
}

// CurrentState returns a snapshot of the current console state.
func (t *Tracker) CurrentState() ConsoleState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// SetDevice records which physical controller is driving the console. A
// disconnect clears all input state.
func (t *Tracker) SetDevice(name, layout string, connected bool) {
	t.update(func(s *ConsoleState) {
		if !connected {
			*s = ConsoleState{}
			return
		}
		s.Connected = true
		s.Name = name
		s.Layout = layout
	})
}

// OnButtonEvent implements the event sink. Ids the console does not have are
// ignored.
func (t *Tracker) OnButtonEvent(device string, id ButtonID, state ButtonState) {
	t.update(func(s *ConsoleState) {
		if b := s.button(id); b != nil {
			*b = state == Pressed
		}
	})
}

// OnStickEvent implements the event sink.
func (t *Tracker) OnStickEvent(device string, stick StickID, x, y float64) {
	t.update(func(s *ConsoleState) {
		if stick == StickSecondary {
			s.Sticks.CStick = Vector{X: x, Y: y}
		} else {
			s.Sticks.CirclePad = Vector{X: x, Y: y}
		}
	})
}

func (t *Tracker) update(fn func(s *ConsoleState)) {
	t.mu.Lock()
	fn(&t.state)
	delta := ComputeDelta(t.prevState, t.state)
	if delta.IsEmpty() {
		t.mu.Unlock()
		return
	}
	t.prevState = t.state
	s := t.state
	t.mu.Unlock()

	select {
	case t.changes <- s:
	default:
		// Drop if channel is full to avoid blocking the input thread
	}
}
