package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/soar/virtualinput/internal/bindings"
	"github.com/soar/virtualinput/internal/config"
	"github.com/soar/virtualinput/internal/control"
	"github.com/soar/virtualinput/internal/gamepad"
	"github.com/soar/virtualinput/internal/hub"
	"github.com/soar/virtualinput/internal/keyboard"
	"github.com/soar/virtualinput/internal/output"
	"github.com/soar/virtualinput/internal/runner"
	"github.com/soar/virtualinput/internal/server"
	"github.com/soar/virtualinput/internal/tray"
	"github.com/soar/virtualinput/internal/vinput"
)

// Cross-platform signal handling: use os.Interrupt on all platforms
// On Windows: os.Interrupt is sent when Ctrl+C is pressed
// On Unix: os.Interrupt is equivalent to syscall.SIGINT
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	defer setupLogging(cfg).Close()

	// Create cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)

	// Build the registry from saved bindings
	store := bindings.NewStore(cfg.Bindings)
	file, err := store.Load()
	if errors.Is(err, bindings.ErrNotFound) {
		log.Printf("No bindings at %s, writing built-in defaults", cfg.Bindings)
		file = bindings.Default()
		if err := store.Save(file); err != nil {
			log.Printf("Could not write default bindings: %v", err)
		}
	} else if err != nil {
		log.Fatalf("Bindings error: %v", err)
	}

	registry := vinput.NewRegistry()
	if err := file.Apply(registry); err != nil {
		log.Fatalf("Bindings error: %v", err)
	}

	keys := keyboard.NewState()

	// Controllers are optional; a nil PadSource reads every slot as idle.
	var pads runner.PadSource
	readerDone := make(chan struct{})
	if cfg.Controllers {
		reader := gamepad.NewReader(cfg.Deadzone, cfg.Debug)
		pads = reader
		// reader.Run locks its OS thread for SDL and returns when ctx is cancelled
		go func() {
			reader.Run(ctx)
			close(readerDone)
		}()
	} else {
		close(readerDone)
	}

	inputRunner := runner.New(registry, keys, pads, cfg.TickInterval())
	ctrl := control.New(inputRunner, keys, store, file)

	// Subscribers must exist before the loop starts emitting.
	var gamepadChanges <-chan vinput.RegistryInfo
	if cfg.VirtualGamepads {
		gamepadChanges = inputRunner.Subscribe()
	}

	runnerDone := make(chan struct{})
	go func() {
		inputRunner.Run(ctx)
		close(runnerDone)
	}()

	mirrorDone := make(chan struct{})
	if gamepadChanges != nil {
		mirror := output.NewMirror(output.UinputFactory)
		go func() {
			mirror.Run(ctx, gamepadChanges)
			close(mirrorDone)
		}()
	} else {
		close(mirrorDone)
	}

	if cfg.WatchBindings {
		err := store.Watch(func(f *bindings.File) {
			if err := ctrl.Reload(f); err != nil {
				log.Printf("Bindings reload failed: %v", err)
			}
		})
		if err != nil {
			log.Printf("Not watching bindings: %v", err)
		}
	}

	// Create and start hub
	h := hub.NewHub()
	go h.Run()

	// Create broadcaster
	broadcaster := hub.NewBroadcaster(h, inputRunner.Changes())
	go broadcaster.Run()

	// Create and start HTTP server
	srv := server.New(h, broadcaster, ctrl, inputRunner, getFrontendFS(), server.Options{
		Addr:        cfg.Listen,
		Minify:      cfg.Minify,
		CORSOrigins: cfg.CORSOrigins,
	})
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	url := server.URL(cfg.Listen)
	log.Printf("Virtual input started: %s", url)

	if cfg.MDNS {
		stop, err := server.Advertise(cfg.Listen)
		if err != nil {
			log.Printf("mDNS disabled: %v", err)
		} else {
			defer stop()
		}
	}

	// Channel for tray-triggered shutdown
	shutdownRequested := make(chan struct{})

	// Initialize system tray on Windows only
	if runtime.GOOS == "windows" && cfg.Tray {
		go func() {
			t := tray.New(tray.Options{
				URL: url,
				OnReload: func() {
					f, err := store.Load()
					if err == nil {
						err = ctrl.Reload(f)
					}
					if err != nil {
						log.Printf("Bindings reload failed: %v", err)
					}
				},
				OnExit: func() {
					close(shutdownRequested)
				},
			})
			t.Run(tray.Icon())
		}()
	} else {
		log.Println("Press Ctrl+C to exit")
	}

	// Wait for shutdown signal, tray request, or server error
	select {
	case <-sigCh:
		log.Println("Shutting down...")
		cancel()
	case <-shutdownRequested:
		log.Println("Shutdown requested from tray")
		cancel()
	case err := <-serverErrCh:
		log.Printf("HTTP server error: %v", err)
		cancel()
	}

	// Wait for the input loop, reader and virtual gamepads to finish
	<-runnerDone
	<-readerDone
	<-mirrorDone

	// Shutdown the HTTP server gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Virtual input stopped")
}
