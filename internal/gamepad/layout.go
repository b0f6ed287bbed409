package gamepad

// AxisMapping defines how a raw joystick axis index maps to a host axis.
type AxisMapping struct {
	Index     int32
	Axis      AxisID
	IsTrigger bool
	Invert    bool
	// For triggers: raw range. Some devices use -32768..32767, others 0..32767.
	RawMin int16
	RawMax int16
}

// ButtonMapping defines how a raw joystick button index maps to a host key.
type ButtonMapping struct {
	Index int32
	Key   KeyCode
}

// Layout holds the raw index layout of a joystick family.
type Layout struct {
	Name    string
	Axes    []AxisMapping
	Buttons []ButtonMapping
	HasHat  bool
}

// KeyForButton returns the host key of a raw button index.
func (l *Layout) KeyForButton(index int32) (KeyCode, bool) {
	for _, bm := range l.Buttons {
		if bm.Index == index {
			return bm.Key, true
		}
	}
	return 0, false
}

// Value converts a raw reading of the axis to a host axis value.
func (am AxisMapping) Value(raw int16) float64 {
	if am.IsTrigger {
		return NormalizeTrigger(raw, am.RawMin, am.RawMax)
	}
	v := NormalizeAxis(raw)
	if am.Invert {
		v = -v
	}
	return v
}

var standardAxes = []AxisMapping{
	{Index: 0, Axis: AxisX},
	{Index: 1, Axis: AxisY},
	{Index: 2, Axis: AxisZ},
	{Index: 3, Axis: AxisRZ},
	{Index: 4, Axis: AxisLTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
	{Index: 5, Axis: AxisRTrigger, IsTrigger: true, RawMin: -32768, RawMax: 32767},
}

var xboxLayout = &Layout{
	Name: "xbox",
	Axes: standardAxes,
	Buttons: []ButtonMapping{
		{Index: 0, Key: KeyButtonA},
		{Index: 1, Key: KeyButtonB},
		{Index: 2, Key: KeyButtonX},
		{Index: 3, Key: KeyButtonY},
		{Index: 4, Key: KeyButtonL1},
		{Index: 5, Key: KeyButtonR1},
		{Index: 6, Key: KeyButtonSelect},
		{Index: 7, Key: KeyButtonStart},
		{Index: 8, Key: KeyButtonThumbL},
		{Index: 9, Key: KeyButtonThumbR},
		{Index: 10, Key: KeyButtonMode},
	},
	HasHat: true,
}

var playstationLayout = &Layout{
	Name: "playstation",
	Axes: standardAxes,
	Buttons: []ButtonMapping{
		{Index: 0, Key: KeyButtonA},      // Cross
		{Index: 1, Key: KeyButtonB},      // Circle
		{Index: 2, Key: KeyButtonX},      // Square
		{Index: 3, Key: KeyButtonY},      // Triangle
		{Index: 4, Key: KeyButtonSelect}, // Share / Create
		{Index: 5, Key: KeyButtonMode},   // PS button
		{Index: 6, Key: KeyButtonStart},  // Options
		{Index: 7, Key: KeyButtonThumbL},
		{Index: 8, Key: KeyButtonThumbR},
		{Index: 9, Key: KeyButtonL1},
		{Index: 10, Key: KeyButtonR1},
	},
	HasHat: true,
}

var switchProLayout = &Layout{
	Name: "switch_pro",
	Axes: standardAxes[:4],
	Buttons: []ButtonMapping{
		{Index: 0, Key: KeyButtonA},
		{Index: 1, Key: KeyButtonB},
		{Index: 2, Key: KeyButtonX},
		{Index: 3, Key: KeyButtonY},
		{Index: 4, Key: KeyButtonL1},
		{Index: 5, Key: KeyButtonR1},
		{Index: 6, Key: KeyButtonSelect},
		{Index: 7, Key: KeyButtonStart},
		{Index: 8, Key: KeyButtonThumbL},
		{Index: 9, Key: KeyButtonThumbR},
		{Index: 10, Key: KeyButtonMode},
		{Index: 11, Key: KeyButtonL2}, // ZL
		{Index: 12, Key: KeyButtonR2}, // ZR
	},
	HasHat: true,
}

var genericLayout = &Layout{
	Name:    "generic",
	Axes:    standardAxes,
	Buttons: xboxLayout.Buttons,
	HasHat:  true,
}

var knownLayouts = map[deviceKey]*Layout{
	// Microsoft Xbox controllers
	{0x045E, 0x028E}: xboxLayout, // Xbox 360
	{0x045E, 0x02FF}: xboxLayout, // Xbox One
	{0x045E, 0x0B12}: xboxLayout, // Xbox Series X|S
	{0x045E, 0x0B13}: xboxLayout, // Xbox Series X|S (wireless)
	// Sony PlayStation controllers
	{0x054C, 0x0CE6}: playstationLayout, // DualSense
	{0x054C, 0x09CC}: playstationLayout, // DualShock 4 v2
	{0x054C, 0x05C4}: playstationLayout, // DualShock 4 v1
	// Nintendo Switch Pro Controller
	{0x057E, 0x2009}: switchProLayout,
}

// GetLayout returns the layout for a joystick identified by vendor/product ID.
// Falls back to the generic layout if no specific one is found.
func GetLayout(vendorID, productID uint16) *Layout {
	if l, ok := knownLayouts[deviceKey{vendorID, productID}]; ok {
		return l
	}
	return genericLayout
}

const (
	HatUp    uint8 = 0x01
	HatRight uint8 = 0x02
	HatDown  uint8 = 0x04
	HatLeft  uint8 = 0x08
)

// HatAxes converts a hat position to the values of the HAT_X and HAT_Y axes.
// Up and left are negative.
func HatAxes(hat uint8) (x, y float64) {
	switch {
	case hat&HatLeft != 0 && hat&HatRight == 0:
		x = -1
	case hat&HatRight != 0 && hat&HatLeft == 0:
		x = 1
	}
	switch {
	case hat&HatUp != 0 && hat&HatDown == 0:
		y = -1
	case hat&HatDown != 0 && hat&HatUp == 0:
		y = 1
	}
	return x, y
}
