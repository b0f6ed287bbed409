package gamepad

import "testing"

func TestComputeDelta(t *testing.T) {
	var old ConsoleState
	if d := ComputeDelta(old, old); !d.IsEmpty() {
		t.Errorf("delta of equal states not empty: %+v", d)
	}

	next := old
	next.Buttons.A = true
	d := ComputeDelta(old, next)
	if d.Buttons == nil || !d.Buttons.A {
		t.Errorf("button change missing from delta: %+v", d)
	}
	if d.Sticks != nil || d.Dpad != nil || d.Connected != nil {
		t.Errorf("unexpected fields in delta: %+v", d)
	}

	// analog jitter below the threshold is not a change
	next = old
	next.Sticks.CirclePad.X = 0.005
	if d := ComputeDelta(old, next); !d.IsEmpty() {
		t.Errorf("jitter produced delta: %+v", d)
	}
	next.Sticks.CStick.Y = 0.5
	if d := ComputeDelta(old, next); d.Sticks == nil {
		t.Error("stick move missing from delta")
	}
}

func TestTracker(t *testing.T) {
	tr := NewTracker()

	tr.SetDevice("Pad", "xbox", true)
	tr.OnButtonEvent("v", ButtonA, Pressed)
	tr.OnButtonEvent("v", DpadLeft, Pressed)
	tr.OnButtonEvent("v", TriggerR, Pressed)
	tr.OnStickEvent("pad", StickPrimary, 0.5, -0.5)
	tr.OnStickEvent("pad", StickSecondary, 0, 1)

	s := tr.CurrentState()
	if !s.Connected || s.Name != "Pad" || s.Layout != "xbox" {
		t.Errorf("device = %v %q %q", s.Connected, s.Name, s.Layout)
	}
	if !s.Buttons.A || !s.Dpad.Left || !s.Buttons.R {
		t.Errorf("buttons = %+v dpad = %+v", s.Buttons, s.Dpad)
	}
	if s.Sticks.CirclePad != (Vector{0.5, -0.5}) || s.Sticks.CStick != (Vector{0, 1}) {
		t.Errorf("sticks = %+v", s.Sticks)
	}

	// every event above changed the state
	if n := len(tr.Changes()); n != 6 {
		t.Errorf("%d changes emitted, want 6", n)
	}

	// repeated levels and unknown ids are not changes
	tr.OnButtonEvent("v", ButtonA, Pressed)
	tr.OnButtonEvent("v", ButtonID(96), Pressed)
	tr.OnStickEvent("pad", StickPrimary, 0.5, -0.5)
	if n := len(tr.Changes()); n != 6 {
		t.Errorf("%d changes after repeats, want 6", n)
	}

	tr.SetDevice("", "", false)
	if s := tr.CurrentState(); s != (ConsoleState{}) {
		t.Errorf("state after disconnect = %+v", s)
	}
}
