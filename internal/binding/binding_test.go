package binding

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/soar/padbridge/internal/gamepad"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in    string
		token string
		axis  string
		code  int
	}{
		{"foo,1:42", "foo", "1", 42},
		{"engine:gamepad,code:700", "engine:gamepad", "code", 700},
		{"a,b,0: 713 ", "a,b", "0", 713},
		{"x,y:0", "x", "y", 0},
	}
	for _, tt := range tests {
		d, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.in, err)
			continue
		}
		if d.Token != tt.token || d.Axis != tt.axis || d.Code != tt.code {
			t.Errorf("Parse(%q) = %+v, want {%s %s %d}", tt.in, d, tt.token, tt.axis, tt.code)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrMalformed},
		{"42", ErrMalformed},
		{"foo,42", ErrMalformed},
		{"foo,1:bar", ErrBadCode},
		{"foo,1:", ErrBadCode},
		{"foo,1:-1", ErrBadCode},
		{"foo,1:4.2", ErrBadCode},
	}
	for _, tt := range tests {
		_, err := Parse(tt.in)
		if !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) error = %v, want %v", tt.in, err, tt.want)
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Value != tt.in {
			t.Errorf("Parse(%q) error is not a ParseError for the input: %v", tt.in, err)
		}
	}
}

func TestDescriptorOrientation(t *testing.T) {
	tests := []struct {
		axis string
		want gamepad.Orientation
		ok   bool
	}{
		{"0", gamepad.Horizontal, true},
		{"x", gamepad.Horizontal, true},
		{"1", gamepad.Vertical, true},
		{"Vertical", gamepad.Vertical, true},
		{"code", 0, false},
	}
	for _, tt := range tests {
		o, ok := Descriptor{Axis: tt.axis}.Orientation()
		if o != tt.want || ok != tt.ok {
			t.Errorf("Orientation(%q) = %v %v, want %v %v", tt.axis, o, ok, tt.want, tt.ok)
		}
	}

	d := Descriptor{Token: "engine:gamepad", Axis: "code", Code: 700}
	back, err := Parse(d.String())
	if err != nil || back != d {
		t.Errorf("Parse(%q) = %+v %v", d.String(), back, err)
	}
}

func TestResolveKey(t *testing.T) {
	store := NewMapStore(map[string]string{
		KeyName(96): "foo,1:42",
		KeyName(97): "",
		KeyName(98): "foo,1:bar",
		KeyName(99): "garbage",
		"KEY_100":   "foo,code:0",
	})

	tests := []struct {
		code gamepad.KeyCode
		want gamepad.ButtonID
		err  error
	}{
		{96, 42, nil},
		{97, 97, ErrEmptyValue},
		{98, 98, ErrBadCode},
		{99, 99, ErrMalformed},
		{100, 0, nil},
		{101, 101, ErrNoOverride},
	}
	for _, tt := range tests {
		r := ResolveKey(store, tt.code)
		if got := r.Or(gamepad.ButtonID(tt.code)); got != tt.want {
			t.Errorf("key %d: button = %d, want %d", tt.code, got, tt.want)
		}
		if tt.err == nil {
			if !r.Resolved() {
				t.Errorf("key %d: unexpected failure %v", tt.code, r.Err)
			}
		} else if r.Resolved() || !errors.Is(r.Err, tt.err) {
			t.Errorf("key %d: error = %v, want %v", tt.code, r.Err, tt.err)
		}
	}

	if r := ResolveKey(nil, 96); !errors.Is(r.Err, ErrNoTable) {
		t.Errorf("nil store: error = %v, want %v", r.Err, ErrNoTable)
	}
}

func TestResolveAxis(t *testing.T) {
	store := NewMapStore(map[string]string{
		AxisName(gamepad.AxisX):        "gamepad,1:714",
		AxisName(gamepad.AxisY):        "gamepad,code:714",
		AxisName(gamepad.AxisLTrigger): "gamepad,0:707",
		AxisName(gamepad.AxisRTrigger): "gamepad,0:700",
	})
	defaults := DefaultAxes()

	tests := []struct {
		axis gamepad.AxisID
		want AxisTarget
		ok   bool
	}{
		{gamepad.AxisX, AxisTarget{gamepad.ControlSecondaryStick, gamepad.Vertical}, true},
		// no orientation: falls back to the default
		{gamepad.AxisY, AxisTarget{gamepad.ControlPrimaryStick, gamepad.Vertical}, true},
		{gamepad.AxisZ, AxisTarget{gamepad.ControlSecondaryStick, gamepad.Horizontal}, true},
		{gamepad.AxisRZ, AxisTarget{gamepad.ControlSecondaryStick, gamepad.Vertical}, true},
		{gamepad.AxisLTrigger, AxisTarget{gamepad.ControlZL, gamepad.Horizontal}, true},
		{gamepad.AxisRTrigger, AxisTarget{gamepad.ControlNone, gamepad.Horizontal}, false},
		{gamepad.AxisHatX, AxisTarget{}, false},
	}
	for _, tt := range tests {
		got, ok := ResolveAxis(store, defaults, tt.axis)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("axis %d = %+v %v, want %+v %v", tt.axis, got, ok, tt.want, tt.ok)
		}
	}

	if _, ok := ResolveAxis(nil, defaults, gamepad.AxisX); !ok {
		t.Error("nil store: default not used")
	}
}

func TestAxisDefaultsImmutable(t *testing.T) {
	src := map[gamepad.AxisID]AxisTarget{gamepad.AxisX: {gamepad.ControlDpad, gamepad.Horizontal}}
	d := NewAxisDefaults(src)
	delete(src, gamepad.AxisX)
	if _, ok := d.Lookup(gamepad.AxisX); !ok {
		t.Error("defaults changed with their source map")
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindings.yaml")
	if err := WriteDefaults(path); err != nil {
		t.Fatalf("WriteDefaults: %v", err)
	}

	s, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if s.Len() != len(DefaultKeyMap)+len(DefaultAxisBindings) {
		t.Errorf("store has %d entries, want %d", s.Len(), len(DefaultKeyMap)+len(DefaultAxisBindings))
	}
	if r := ResolveKey(s, gamepad.KeyButtonA); r.Or(-1) != gamepad.ButtonA {
		t.Errorf("button A resolves to %v (%v)", r.Button, r.Err)
	}
	got, ok := ResolveAxis(s, NewAxisDefaults(nil), gamepad.AxisHatY)
	if !ok || got != (AxisTarget{gamepad.ControlDpad, gamepad.Vertical}) {
		t.Errorf("hat y = %+v %v", got, ok)
	}

	if err := os.WriteFile(path, []byte("key_96: \"foo,1:42\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("store has %d entries after reload, want 1", s.Len())
	}
	if r := ResolveKey(s, 96); r.Or(-1) != 42 {
		t.Errorf("key 96 after reload = %v (%v)", r.Button, r.Err)
	}
}

func TestFileStoreMissing(t *testing.T) {
	s, err := OpenFile(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("missing file gave %d entries", s.Len())
	}
	if r := ResolveKey(s, 96); !errors.Is(r.Err, ErrNoOverride) {
		t.Errorf("error = %v, want %v", r.Err, ErrNoOverride)
	}
}

func TestFileStoreBroken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("key_96: [unterminated\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(path); err == nil {
		t.Error("broken file: expected error")
	}
}

func TestDefaultAxesWithHat(t *testing.T) {
	d := DefaultAxesWithHat()
	if got, ok := d.Lookup(gamepad.AxisHatY); !ok || got != (AxisTarget{gamepad.ControlDpad, gamepad.Vertical}) {
		t.Errorf("hat y = %+v %v", got, ok)
	}
	if _, ok := d.Lookup(gamepad.AxisX); !ok {
		t.Error("stick default missing")
	}
	if _, ok := DefaultAxes().Lookup(gamepad.AxisHatX); ok {
		t.Error("plain defaults route the hat")
	}
}
