package tray

import (
	"bytes"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "http://localhost:8080"}},
		{"darwin", "open", []string{"http://localhost:8080"}},
		{"linux", "xdg-open", []string{"http://localhost:8080"}},
		{"freebsd", "xdg-open", []string{"http://localhost:8080"}},
	}
	for _, tt := range tests {
		name, args := browserCommand(tt.goos, "http://localhost:8080")
		if name != tt.name || len(args) != len(tt.args) {
			t.Errorf("%s: %s %v", tt.goos, name, args)
			continue
		}
		for i := range args {
			if args[i] != tt.args[i] {
				t.Errorf("%s: arg %d = %q, want %q", tt.goos, i, args[i], tt.args[i])
			}
		}
	}
}

func TestIcon(t *testing.T) {
	// ICO header: reserved 0, type 1
	if !bytes.HasPrefix(GetIcon(), []byte{0, 0, 1, 0}) {
		t.Error("embedded icon is not an ICO file")
	}
}
