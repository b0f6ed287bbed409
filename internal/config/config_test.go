package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":8080" || cfg.Bindings != "bindings.yaml" || cfg.Profiles != "" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.PollInterval != 16*time.Millisecond || cfg.VirtualDevice != "Touchscreen" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Debug || !cfg.Minify || cfg.WriteDefaults {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "padbridge.yaml")
	data := []byte("listen: \":9000\"\nbindings: file.yaml\npoll_interval: 8ms\ndebug: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PADBRIDGE_BINDINGS", "env.yaml")
	t.Setenv("PADBRIDGE_VIRTUAL_DEVICE", "Pad")

	cfg, err := Load([]string{"--config", path, "--listen", "127.0.0.1:7000"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name, got, want string
	}{
		{"flag over file", cfg.Listen, "127.0.0.1:7000"},
		{"env over file", cfg.Bindings, "env.yaml"},
		{"env over default", cfg.VirtualDevice, "Pad"},
		{"file over default", cfg.PollInterval.String(), "8ms"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, tt.got, tt.want)
		}
	}
	if !cfg.Debug {
		t.Error("debug from file not applied")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load([]string{"--no-such-flag"}); err == nil {
		t.Error("unknown flag: expected error")
	}
	if _, err := Load([]string{"--help"}); !errors.Is(err, pflag.ErrHelp) {
		t.Errorf("help: error = %v", err)
	}
	if _, err := Load([]string{"--poll-interval", "0s"}); err == nil {
		t.Error("zero poll interval: expected error")
	}
	if _, err := Load([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}); err == nil {
		t.Error("missing config file: expected error")
	}
}

func TestMonitorURL(t *testing.T) {
	tests := []struct {
		listen, want string
	}{
		{":8080", "http://localhost:8080"},
		{"0.0.0.0:80", "http://localhost:80"},
		{"192.168.1.5:8080", "http://192.168.1.5:8080"},
		{"[::]:8080", "http://localhost:8080"},
		{"[::1]:8080", "http://[::1]:8080"},
		{"pad.local", "http://pad.local"},
	}
	for _, tt := range tests {
		c := Config{Listen: tt.listen}
		if got := c.MonitorURL(); got != tt.want {
			t.Errorf("MonitorURL(%q) = %q, want %q", tt.listen, got, tt.want)
		}
	}
}
