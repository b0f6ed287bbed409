package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/soar/padbridge/internal/binding"
	"github.com/soar/padbridge/internal/config"
	"github.com/soar/padbridge/internal/gamepad"
	"github.com/soar/padbridge/internal/hub"
	"github.com/soar/padbridge/internal/server"
	"github.com/soar/padbridge/internal/source"
	"github.com/soar/padbridge/internal/translate"
	"github.com/soar/padbridge/internal/tray"
)

// os.Interrupt is Ctrl+C on every platform
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if cfg.ConfigFile != "" {
		log.Printf("Using config file %s", cfg.ConfigFile)
	}

	if cfg.WriteDefaults {
		if err := binding.WriteDefaults(cfg.Bindings); err != nil {
			log.Fatalf("Writing default bindings: %v", err)
		}
		log.Printf("Default bindings written to %s", cfg.Bindings)
		return
	}

	store, err := binding.OpenFile(cfg.Bindings)
	if err != nil {
		log.Fatalf("Loading bindings: %v", err)
	}
	store.Watch(func() {
		log.Printf("Bindings reloaded from %s (%d entries)", store.Path(), store.Len())
	})

	var profiles []*gamepad.Profile
	if cfg.Profiles != "" {
		if profiles, err = gamepad.LoadProfiles(cfg.Profiles); err != nil {
			log.Fatalf("Loading calibration profiles: %v", err)
		}
		log.Printf("Loaded %d calibration profiles from %s", len(profiles), cfg.Profiles)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Console state seen by monitors
	tracker := gamepad.NewTracker()
	var sink translate.Sink = tracker
	if cfg.Debug {
		sink = translate.Tee(tracker, translate.NewLogSink())
	}

	h := hub.NewHub()
	go h.Run()

	broadcaster := hub.NewBroadcaster(h, tracker.Changes())
	go broadcaster.Run(ctx)

	// the SDL reader reports the hat as HAT_X/HAT_Y
	axisDefaults := binding.DefaultAxesWithHat()
	translator := translate.New(translate.Options{
		Store:        store,
		AxisDefaults: &axisDefaults,
		Calibrator:   gamepad.NewCalibrator(profiles...),
		Sink:         sink,
		Menu: translate.MenuFunc(func() {
			log.Println("Menu requested")
			broadcaster.OpenMenu()
		}),
		VirtualDevice: cfg.VirtualDevice,
	})

	reader := source.NewReader(translator, tracker, cfg.PollInterval)

	srv, err := server.New(server.Options{
		Hub:         h,
		Broadcaster: broadcaster,
		State:       tracker,
		Devices:     reader,
		Frontend:    getFrontendFS(),
		Addr:        cfg.Listen,
		Minify:      cfg.Minify,
	})
	if err != nil {
		log.Fatalf("Server setup: %v", err)
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	log.Printf("padbridge started: %s", cfg.MonitorURL())

	// Channel for tray-triggered shutdown
	shutdownRequested := make(chan struct{})

	var t *tray.Tray
	if cfg.Tray {
		t = tray.New(tray.Options{
			URL:      cfg.MonitorURL(),
			Reload:   store.Reload,
			Shutdown: func() { close(shutdownRequested) },
		})
		go t.Run(tray.GetIcon())
	} else {
		log.Println("Press Ctrl+C to exit")
	}

	// The reader locks its goroutine to an OS thread for SDL
	readerErrCh := make(chan error, 1)
	go func() {
		readerErrCh <- reader.Run(ctx)
	}()

	// Wait for shutdown signal, tray request, reader failure or server error
	select {
	case <-sigCh:
		log.Println("Shutting down...")
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
	case err := <-readerErrCh:
		log.Printf("Joystick reader error: %v", err)
		readerErrCh <- nil
	case err := <-serverErrCh:
		log.Printf("HTTP server error: %v", err)
	}
	cancel()

	// Wait for reader to finish
	if err := <-readerErrCh; err != nil {
		log.Printf("Joystick reader error: %v", err)
	}

	// Shutdown the HTTP server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	h.Stop()
	if t != nil {
		t.Quit()
	}

	log.Println("padbridge stopped")
}
