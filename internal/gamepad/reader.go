package gamepad

import (
	"context"
	"log"
	"runtime"
	"sync"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/virtualinput/internal/vinput"
)

const (
	DefaultDeadzone = 0.05
	pollDelayNS     = 16_000_000 // ~60Hz
)

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *DeviceMapping
	name     string
	id       sdl.JoystickID
	slot     int
}

// sdlDevice adapts an SDL joystick handle to device.
type sdlDevice struct {
	js *sdl.Joystick
}

func (d sdlDevice) Axis(index int32) int16  { return sdl.GetJoystickAxis(d.js, index) }
func (d sdlDevice) Button(index int32) bool { return sdl.GetJoystickButton(d.js, index) }
func (d sdlDevice) NumButtons() int32       { return sdl.GetNumJoystickButtons(d.js) }
func (d sdlDevice) NumHats() int32          { return sdl.GetNumJoystickHats(d.js) }
func (d sdlDevice) Hat(index int32) uint8   { return sdl.GetJoystickHat(d.js, index) }

// Reader reads controller input from the SDL3 Joystick API and keeps the
// latest state for each player slot.
type Reader struct {
	deadzone  float64
	debug     bool
	joysticks map[sdl.JoystickID]*joystickInfo
	slots     [vinput.MaxJoysticks]*joystickInfo
	states    [vinput.MaxJoysticks]ControllerState
	mu        sync.RWMutex
}

func NewReader(deadzone float64, debug bool) *Reader {
	return &Reader{
		deadzone:  deadzone,
		debug:     debug,
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
	}
}

// Controllers returns a snapshot of every player slot.
func (r *Reader) Controllers() [vinput.MaxJoysticks]ControllerState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.states
}

// Run initializes SDL and runs the event+polling loop on the current thread
// until ctx is cancelled.
func (r *Reader) Run(ctx context.Context) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		log.Printf("SDL Init failed, controllers disabled: %s", sdl.GetError())
		return
	}
	defer sdl.Quit()

	log.Println("SDL3 Joystick subsystem initialized")

	// Check for already-connected joysticks
	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return
		default:
		}

		r.processEvents()
		r.pollState()
		sdl.DelayNS(pollDelayNS)
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(event.JDevice().Which)

		case sdl.EventJoystickRemoved:
			r.removeJoystick(event.JDevice().Which)

		case sdl.EventJoystickButtonDown:
			if r.debug {
				be := event.JButton()
				log.Printf("[DEBUG] Button DOWN: index=%d joystick=%d", be.Button, be.Which)
			}

		case sdl.EventJoystickButtonUp:
			if r.debug {
				be := event.JButton()
				log.Printf("[DEBUG] Button UP:   index=%d joystick=%d", be.Button, be.Which)
			}

		case sdl.EventJoystickAxisMotion:
			if r.debug {
				ae := event.JAxis()
				if ae.Value > 8000 || ae.Value < -8000 {
					log.Printf("[DEBUG] Axis: index=%d value=%d joystick=%d", ae.Axis, ae.Value, ae.Which)
				}
			}

		case sdl.EventJoystickHatMotion:
			if r.debug {
				he := event.JHat()
				log.Printf("[DEBUG] Hat: index=%d value=0x%02X joystick=%d", he.Hat, he.Value, he.Which)
			}
		}
	}
}

// freeSlot returns the lowest unused player slot, or -1.
func (r *Reader) freeSlot() int {
	for i, s := range r.slots {
		if s == nil {
			return i
		}
	}
	return -1
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	slot := r.freeSlot()
	if slot < 0 {
		log.Printf("Ignoring joystick %d: all %d player slots in use", instanceID, vinput.MaxJoysticks)
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		log.Printf("Failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	mapping := GetMapping(vendorID, productID)

	info := &joystickInfo{
		joystick: js,
		mapping:  mapping,
		name:     name,
		id:       jsID,
		slot:     slot,
	}
	r.joysticks[jsID] = info
	r.slots[slot] = info

	log.Printf("Joystick connected: %s (VID=%04X PID=%04X) mapping=%s axes=%d buttons=%d hats=%d slot=%d",
		name, vendorID, productID, mapping.Name,
		sdl.GetNumJoystickAxes(js), sdl.GetNumJoystickButtons(js), sdl.GetNumJoystickHats(js), slot)

	r.mu.Lock()
	r.states[slot] = ControllerState{Connected: true, Name: name, ControllerType: mapping.Name}
	r.mu.Unlock()
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	log.Printf("Joystick disconnected: %s (slot=%d)", info.name, info.slot)
	sdl.CloseJoystick(info.joystick)
	delete(r.joysticks, instanceID)
	r.slots[info.slot] = nil

	r.mu.Lock()
	r.states[info.slot] = ControllerState{}
	r.mu.Unlock()
}

func (r *Reader) closeAll() {
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(r.joysticks, id)
		r.slots[info.slot] = nil
	}

	r.mu.Lock()
	r.states = [vinput.MaxJoysticks]ControllerState{}
	r.mu.Unlock()
}

func (r *Reader) pollState() {
	var next [vinput.MaxJoysticks]ControllerState
	for i, info := range r.slots {
		if info == nil || !sdl.JoystickConnected(info.joystick) {
			continue
		}
		state := readState(sdlDevice{js: info.joystick}, info.mapping, r.deadzone)
		state.Name = info.name
		next[i] = state
	}

	r.mu.Lock()
	r.states = next
	r.mu.Unlock()
}
