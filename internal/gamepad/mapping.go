package gamepad

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile holds the calibration quirks of one controller model.
type Profile struct {
	Name      string `yaml:"name"`
	VendorID  uint16 `yaml:"vendor"`
	ProductID uint16 `yaml:"product"`
	// Triggers reported as a full axis resting at -1. They are rescaled to 0..1.
	CentredTriggers []AxisID `yaml:"centred_triggers"`
	// Axes stuck at a constant value. They always read as zero.
	IgnoredAxes []AxisID `yaml:"ignored_axes"`
}

func (p *Profile) centred(axis AxisID) bool {
	for _, a := range p.CentredTriggers {
		if a == axis {
			return true
		}
	}
	return false
}

func (p *Profile) ignored(axis AxisID) bool {
	for _, a := range p.IgnoredAxes {
		if a == axis {
			return true
		}
	}
	return false
}

// NormalizeAxis converts a raw axis value (-32768..32767) to -1.0..1.0.
func NormalizeAxis(raw int16) float64 {
	v := float64(raw) / math.MaxInt16
	if v < -1.0 {
		v = -1.0
	}
	return v
}

// NormalizeTrigger converts a raw trigger value to 0.0..1.0.
func NormalizeTrigger(raw int16, rawMin, rawMax int16) float64 {
	if rawMax == rawMin {
		return 0
	}
	v := (float64(raw) - float64(rawMin)) / (float64(rawMax) - float64(rawMin))
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// ApplyDeadzone returns 0 if the value is strictly within the deadzone
// threshold. A value exactly on the threshold is kept.
func ApplyDeadzone(v float64, threshold float64) float64 {
	if math.Abs(v) < threshold {
		return 0
	}
	return v
}

// Built-in profiles for controllers whose axes the host reports badly.

var dualShock4Profile = &Profile{
	Name:            "dualshock4",
	VendorID:        0x054C,
	ProductID:       0x05C4,
	CentredTriggers: []AxisID{AxisRX, AxisRY},
}

var xboxOneWirelessProfile = &Profile{
	Name:            "xbox_one_wireless",
	VendorID:        0x045E,
	ProductID:       0x02E0,
	CentredTriggers: []AxisID{AxisZ, AxisRZ},
	IgnoredAxes:     []AxisID{AxisGeneric1},
}

var mogaPro2Profile = &Profile{
	Name:        "moga_pro2",
	VendorID:    0x20D6,
	ProductID:   0x6271,
	IgnoredAxes: []AxisID{AxisGeneric1},
}

var genericProfile = &Profile{
	Name: "generic",
}

// Known vendor/product IDs.
type deviceKey struct {
	VendorID  uint16
	ProductID uint16
}

func builtinProfiles() map[deviceKey]*Profile {
	return map[deviceKey]*Profile{
		{0x054C, 0x05C4}: dualShock4Profile,
		{0x054C, 0x09CC}: dualShock4Profile, // DualShock 4 v2
		{0x045E, 0x02E0}: xboxOneWirelessProfile,
		{0x20D6, 0x6271}: mogaPro2Profile,
	}
}

// Calibrator is the default calibration function. It applies per-model
// quirks, clamps to -1..1 and honours the device reported flat and fuzz.
type Calibrator struct {
	profiles map[deviceKey]*Profile
}

// NewCalibrator returns a calibrator with the built-in profiles. Extra
// profiles replace built-in ones for the same vendor/product.
func NewCalibrator(extra ...*Profile) *Calibrator {
	c := &Calibrator{profiles: builtinProfiles()}
	for _, p := range extra {
		c.profiles[deviceKey{p.VendorID, p.ProductID}] = p
	}
	return c
}

// GetProfile returns the profile for a device identified by vendor/product ID.
// Falls back to the generic profile if no specific one is found.
func (c *Calibrator) GetProfile(vendorID, productID uint16) *Profile {
	if p, ok := c.profiles[deviceKey{vendorID, productID}]; ok {
		return p
	}
	return genericProfile
}

// Scale returns the calibrated value of a raw axis sample.
func (c *Calibrator) Scale(dev *Device, axis AxisID, raw float64) float64 {
	if math.IsNaN(raw) {
		return 0
	}

	p := c.GetProfile(dev.VendorID, dev.ProductID)
	if p.ignored(axis) {
		return 0
	}

	v := raw
	if p.centred(axis) {
		v = (v + 1) / 2
	}
	v = math.Max(-1, math.Min(1, v))

	r, ok := dev.Range(axis)
	if !ok {
		return v
	}
	if math.Abs(v) < r.Flat {
		return 0
	}
	// readings within fuzz of full deflection are full deflection
	if r.Fuzz > 0 && 1-math.Abs(v) < r.Fuzz {
		return math.Copysign(1, v)
	}
	return v
}

type profileFile struct {
	Profiles []*Profile `yaml:"profiles"`
}

// LoadProfiles reads extra calibration profiles from a YAML file.
func LoadProfiles(filename string) ([]*Profile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("profiles: %w", err)
	}
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("profiles: %s: %w", filename, err)
	}
	for i, p := range pf.Profiles {
		if p == nil || p.VendorID == 0 {
			return nil, fmt.Errorf("profiles: %s: entry %d has no vendor id", filename, i)
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("%04x:%04x", p.VendorID, p.ProductID)
		}
	}
	return pf.Profiles, nil
}
