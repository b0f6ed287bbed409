// Package config loads the host program settings from flags, environment
// variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"net"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PADBRIDGE_LISTEN.
const EnvPrefix = "PADBRIDGE"

type Config struct {
	ConfigFile    string
	Listen        string
	Bindings      string
	Profiles      string
	PollInterval  time.Duration
	VirtualDevice string
	Debug         bool
	Tray          bool
	Minify        bool
	WriteDefaults bool
}

// keys maps viper keys to their flag names.
var keys = map[string]string{
	"config":         "config",
	"listen":         "listen",
	"bindings":       "bindings",
	"profiles":       "profiles",
	"poll_interval":  "poll-interval",
	"virtual_device": "virtual-device",
	"debug":          "debug",
	"tray":           "tray",
	"minify":         "minify",
	"write_defaults": "write-defaults",
}

// NewFlagSet returns the command line flags with their defaults.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (yaml, toml or json)")
	fs.StringP("listen", "l", ":8080", "monitor HTTP listen address")
	fs.StringP("bindings", "b", "bindings.yaml", "bindings file")
	fs.String("profiles", "", "extra calibration profiles file")
	fs.Duration("poll-interval", 16*time.Millisecond, "joystick poll interval")
	fs.String("virtual-device", "Touchscreen", "device name digital events are reported on")
	fs.BoolP("debug", "d", false, "log every translated event")
	fs.Bool("tray", runtime.GOOS == "windows", "show a system tray icon")
	fs.Bool("minify", true, "minify the monitor frontend")
	fs.Bool("write-defaults", false, "write the default bindings file and exit")
	return fs
}

// Load parses args and resolves every setting. Explicit flags win over
// environment variables, which win over the config file.
func Load(args []string) (*Config, error) {
	fs := NewFlagSet("padbridge")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for key, flag := range keys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	cfg := &Config{
		ConfigFile:    v.GetString("config"),
		Listen:        v.GetString("listen"),
		Bindings:      v.GetString("bindings"),
		Profiles:      v.GetString("profiles"),
		PollInterval:  v.GetDuration("poll_interval"),
		VirtualDevice: v.GetString("virtual_device"),
		Debug:         v.GetBool("debug"),
		Tray:          v.GetBool("tray"),
		Minify:        v.GetBool("minify"),
		WriteDefaults: v.GetBool("write_defaults"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Listen == "" {
		errs = append(errs, errors.New("listen address is empty"))
	}
	if c.Bindings == "" {
		errs = append(errs, errors.New("bindings file is empty"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval %v is not positive", c.PollInterval))
	}
	if c.VirtualDevice == "" {
		errs = append(errs, errors.New("virtual device name is empty"))
	}
	return errors.Join(errs...)
}

// MonitorURL returns the address a browser on this machine should open.
func (c *Config) MonitorURL() string {
	host, port, err := net.SplitHostPort(c.Listen)
	if err != nil {
		return "http://" + c.Listen
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
