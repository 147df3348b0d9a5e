// Package tray shows a system tray icon with shortcuts to the web viewer.
package tray

import (
	"log"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"fyne.io/systray"
)

const title = "Virtual Input"

// Options configures the tray menu. OnReload may be nil.
type Options struct {
	URL      string
	OnReload func()
	OnExit   func()
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

func (t *Tray) onReady(iconData []byte) {
	if iconData != nil {
		systray.SetIcon(iconData)
	}
	systray.SetTitle(title)
	systray.SetTooltip(title + " - " + t.opts.URL)

	t.menuOpen = systray.AddMenuItem("Open Viewer", "Open web interface")
	t.menuReload = systray.AddMenuItem("Reload Bindings", "Re-read the bindings file")
	if t.opts.OnReload == nil {
		t.menuReload.Disable()
	}
	systray.AddSeparator()
	t.menuExit = systray.AddMenuItem("Exit", "Quit application")

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
			if !t.shuttingDown.Load() && t.opts.OnReload != nil {
				t.opts.OnReload()
			}
		case <-t.menuExit.ClickedCh:
			if t.shuttingDown.CompareAndSwap(false, true) {
				if t.opts.OnExit != nil {
					t.once.Do(t.opts.OnExit)
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
func browserCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		return exec.Command("open", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

func openBrowser(url string) {
	if err := browserCommand(runtime.GOOS, url).Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
