// Package runner owns the input registry and ticks it once per frame.
package runner

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/soar/virtualinput/internal/vinput"
)

const commandQueueSize = 64

var ErrQueueFull = errors.New("command queue full")

// Command mutates the registry. Commands run on the runner goroutine between
// ticks, never during one.
type Command func(r *vinput.Registry) error

type request struct {
	cmd  Command
	done chan error
}

// Runner drives a registry from keyboard and controller sources.
type Runner struct {
	registry *vinput.Registry
	keys     KeySource
	pads     PadSource
	interval time.Duration

	commands    chan request
	changes     chan vinput.RegistryInfo
	subscribers []chan vinput.RegistryInfo

	// mu guards state only; the rest belongs to the tick goroutine.
	mu    sync.RWMutex
	state vinput.RegistryInfo

	prevState vinput.RegistryInfo
	lastTick  time.Time
	now       func() time.Time
}

// New creates a runner ticking every interval. pads may be nil when no
// controller backend is available.
func New(registry *vinput.Registry, keys KeySource, pads PadSource, interval time.Duration) *Runner {
	return &Runner{
		registry: registry,
		keys:     keys,
		pads:     pads,
		interval: interval,
		commands: make(chan request, commandQueueSize),
		changes:  make(chan vinput.RegistryInfo, 64),
		now:      time.Now,
	}
}

// Changes returns the channel on which registry snapshots are sent when they
// differ from the previous tick.
func (r *Runner) Changes() <-chan vinput.RegistryInfo {
	return r.changes
}

// Subscribe returns an additional change channel. It must be called before
// Run.
func (r *Runner) Subscribe() <-chan vinput.RegistryInfo {
	ch := make(chan vinput.RegistryInfo, 64)
	r.subscribers = append(r.subscribers, ch)
	return ch
}

// CurrentState returns the snapshot taken after the last tick.
func (r *Runner) CurrentState() vinput.RegistryInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Submit queues cmd without waiting for it to run.
func (r *Runner) Submit(cmd Command) error {
	select {
	case r.commands <- request{cmd: cmd}:
		return nil
	default:
		return ErrQueueFull
	}
}

// Do queues cmd and waits for its result.
func (r *Runner) Do(ctx context.Context, cmd Command) error {
	req := request{cmd: cmd, done: make(chan error, 1)}
	select {
	case r.commands <- req:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run ticks the registry until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.lastTick = r.now()
	log.Printf("Input loop running every %v", r.interval)

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-r.commands:
			r.apply(req)
		case <-ticker.C:
			now := r.now()
			elapsed := now.Sub(r.lastTick)
			r.lastTick = now
			r.Step(elapsed)
		}
	}
}

// Step applies queued commands and runs a single tick. It must not be
// called concurrently with Run.
func (r *Runner) Step(elapsed time.Duration) vinput.RegistryInfo {
	r.drain()

	in := &frameInput{elapsed: elapsed}
	if r.keys != nil {
		in.keys = r.keys.Snapshot()
	}
	if r.pads != nil {
		in.pads = r.pads.Controllers()
	}

	r.registry.Tick(in)
	state := r.registry.Info()

	r.mu.Lock()
	r.state = state
	r.mu.Unlock()

	if !state.Equal(r.prevState) {
		r.prevState = state
		r.emit(state)
	}
	return state
}

func (r *Runner) drain() {
	for {
		select {
		case req := <-r.commands:
			r.apply(req)
		default:
			return
		}
	}
}

func (r *Runner) apply(req request) {
	err := req.cmd(r.registry)
	if req.done != nil {
		req.done <- err
	} else if err != nil {
		log.Printf("Input command failed: %v", err)
	}
}

func (r *Runner) emit(state vinput.RegistryInfo) {
	send(r.changes, state)
	for _, ch := range r.subscribers {
		send(ch, state)
	}
}

func send(ch chan vinput.RegistryInfo, state vinput.RegistryInfo) {
	select {
	case ch <- state:
	default:
		// Drop if channel is full to avoid stalling the frame loop
	}
}
