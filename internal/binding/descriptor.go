package binding

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/soar/padbridge/internal/gamepad"
)

var (
	// ErrMalformed is returned for values that are not "<token>,<axis>:<code>".
	ErrMalformed = errors.New("malformed binding")

	// ErrBadCode is returned when the code is not a non-negative integer.
	ErrBadCode = errors.New("bad binding code")
)

// ParseError describes a stored binding value that could not be parsed.
type ParseError struct {
	Value  string
	Reason error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", e.Reason, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Reason
}

// Descriptor is a parsed binding value. Stored bindings are strings of the
// form "<token>,<axis>:<code>", for example "engine:gamepad,code:700" or
// "gamepad,1:713".
type Descriptor struct {
	Token string
	Axis  string
	Code  int
}

// Parse parses a stored binding value. The last comma separated pair carries
// the axis and the code.
func Parse(s string) (Descriptor, error) {
	pairs := strings.Split(s, ",")
	if len(pairs) < 2 {
		return Descriptor{}, &ParseError{Value: s, Reason: ErrMalformed}
	}

	last := strings.Split(pairs[len(pairs)-1], ":")
	if len(last) < 2 {
		return Descriptor{}, &ParseError{Value: s, Reason: ErrMalformed}
	}

	code, err := strconv.Atoi(strings.TrimSpace(last[len(last)-1]))
	if err != nil || code < 0 {
		return Descriptor{}, &ParseError{Value: s, Reason: ErrBadCode}
	}

	return Descriptor{
		Token: strings.Join(pairs[:len(pairs)-1], ","),
		Axis:  strings.TrimSpace(last[0]),
		Code:  code,
	}, nil
}

// Button returns the code as a console button id.
func (d Descriptor) Button() gamepad.ButtonID {
	return gamepad.ButtonID(d.Code)
}

// Orientation interprets the axis part of the descriptor. Button bindings
// carry no orientation.
func (d Descriptor) Orientation() (gamepad.Orientation, bool) {
	switch strings.ToLower(d.Axis) {
	case "0", "x", "horizontal":
		return gamepad.Horizontal, true
	case "1", "y", "vertical":
		return gamepad.Vertical, true
	}
	return 0, false
}

func (d Descriptor) String() string {
	return fmt.Sprintf("%s,%s:%d", d.Token, d.Axis, d.Code)
}
