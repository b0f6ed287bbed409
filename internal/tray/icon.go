package tray

import _ "embed"

// 16x16 D-pad glyph.
//
//go:embed icon.ico
var iconData []byte

// GetIcon returns the tray icon in ICO format, which every systray backend accepts.
func GetIcon() []byte {
	return iconData
}
