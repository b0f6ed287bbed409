package tray

import (
	"log"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
)

// Options configure the tray menu. Nil callbacks disable their menu item.
type Options struct {
	// URL is opened by "Open Monitor".
	URL string
	// Reload is called by "Reload Bindings".
	Reload func() error
	// Shutdown is called once when "Exit" is clicked.
	Shutdown func()
}

// Tray manages the system tray icon and menu
type Tray struct {
	opts         Options
	once         sync.Once
	shuttingDown atomic.Bool
	menuOpen     *systray.MenuItem
	menuReload   *systray.MenuItem
	menuExit     *systray.MenuItem
}

// New creates a new Tray instance
func New(opts Options) *Tray {
	return &Tray{opts: opts}
}

// Run initializes and runs the system tray (blocks until Quit())
func (t *Tray) Run(iconData []byte) {
	systray.Run(func() {
		t.onReady(iconData)
	}, func() {
		t.onExit()
	})
}

// Quit removes the tray icon, ending Run.
func (t *Tray) Quit() {
	t.shuttingDown.Store(true)
	systray.Quit()
}

func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle("padbridge")
	systray.SetTooltip("padbridge - " + t.opts.URL)

	t.menuOpen = systray.AddMenuItem("Open Monitor", "Open the input monitor")
	t.menuReload = systray.AddMenuItem("Reload Bindings", "Re-read the bindings file")
	systray.AddSeparator()
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")
	if t.opts.URL == "" {
		t.menuOpen.Disable()
	}
	if t.opts.Reload == nil {
		t.menuReload.Disable()
	}

	// Handle menu clicks in separate goroutines to prevent blocking
	go t.handleMenuClicks()

	log.Println("System tray initialized")
}

func (t *Tray) handleMenuClicks() {
	for {
		select {
		case <-t.menuOpen.ClickedCh:
			if !t.shuttingDown.Load() {
				openBrowser(t.opts.URL)
			}
		case <-t.menuReload.ClickedCh:
			if t.opts.Reload == nil {
				continue
			}
			if err := t.opts.Reload(); err != nil {
				log.Printf("Reload bindings failed: %v", err)
			} else {
				log.Println("Bindings reloaded from tray")
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				if t.opts.Shutdown != nil {
					t.once.Do(t.opts.Shutdown)
				}
				systray.Quit()
				return
			}
		}
	}
}

func (t *Tray) onExit() {
	t.shuttingDown.Store(true)
	log.Println("System tray exiting")
}

// browserCommand returns the command that opens url in the default browser.
func browserCommand(goos, url string) (string, []string) {
	switch goos {
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		return "open", []string{url}
	default:
		return "xdg-open", []string{url}
	}
}

func openBrowser(url string) {
	name, args := browserCommand(runtime.GOOS, url)
	if err := exec.Command(name, args...).Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
