// Package output mirrors virtual joysticks onto system gamepad devices so
// that other programs see them as real controllers.
package output

import (
	"context"
	"errors"
	"log"

	"github.com/soar/virtualinput/internal/vinput"
)

var ErrUnsupported = errors.New("virtual gamepads are not supported on this platform")

// Pad is a system gamepad device. Stick values are in -1..1 with y pointing
// down, as evdev reports them.
type Pad interface {
	ButtonDown(key int) error
	ButtonUp(key int) error
	LeftStickMove(x, y float32) error
	RightStickMove(x, y float32) error
	Close() error
}

// Factory creates the pad for joystick slot.
type Factory func(slot int) (Pad, error)

// evdev button codes. They match uinput.ButtonSouth, ButtonEast, ButtonNorth,
// ButtonWest, ButtonBumperLeft/Right, ButtonTriggerLeft/Right,
// ButtonSelect, ButtonStart, ButtonThumbLeft/Right and ButtonDpadUp/Down/
// Left/Right from github.com/bendahl/uinput.
const (
	codeSouth     = 0x130
	codeEast      = 0x131
	codeNorth     = 0x133
	codeWest      = 0x134
	codeTL        = 0x136
	codeTR        = 0x137
	codeTL2       = 0x138
	codeTR2       = 0x139
	codeSelect    = 0x13a
	codeStart     = 0x13b
	codeThumbL    = 0x13d
	codeThumbR    = 0x13e
	codeDpadUp    = 0x220
	codeDpadDown  = 0x221
	codeDpadLeft  = 0x222
	codeDpadRight = 0x223
)

const (
	digitalCutoff  = 0.5
	stickTolerance = 0.01
)

var buttonCodes = [vinput.NumControllerButtons]int{
	vinput.ButtonA:               codeSouth,
	vinput.ButtonB:               codeEast,
	vinput.ButtonX:               codeNorth,
	vinput.ButtonY:               codeWest,
	vinput.ButtonLeftBumper:      codeTL,
	vinput.ButtonRightBumper:     codeTR,
	vinput.ButtonBack:            codeSelect,
	vinput.ButtonStart:           codeStart,
	vinput.ButtonLeftStickClick:  codeThumbL,
	vinput.ButtonRightStickClick: codeThumbR,
}

// buttonCode picks the code for a button bound to c. Unbound buttons fall
// back to their position in the joystick; index < 0 means no fallback.
func buttonCode(c vinput.ControllerButton, index int) int {
	if c >= 0 && int(c) < len(buttonCodes) {
		return buttonCodes[c]
	}
	if index >= 0 && index < len(buttonCodes) {
		return buttonCodes[index]
	}
	return -1
}

// frame is what one pad should report.
type frame struct {
	buttons     map[int]bool
	left, right vinput.Vector
}

func (f *frame) press(code int, down bool) {
	if code >= 0 && down {
		f.buttons[code] = true
	}
}

func (f *frame) dpad(x, y float64) {
	f.press(codeDpadRight, x > digitalCutoff)
	f.press(codeDpadLeft, x < -digitalCutoff)
	f.press(codeDpadUp, y > digitalCutoff)
	f.press(codeDpadDown, y < -digitalCutoff)
}

// layout maps a joystick snapshot onto gamepad controls using each
// component's controller binding.
func layout(js vinput.JoystickInfo) frame {
	f := frame{buttons: make(map[int]bool)}

	for i, b := range js.Buttons {
		f.press(buttonCode(b.Controller, i), b.Held)
	}

	for _, a := range js.Axes {
		p := a.Position
		switch a.Controller {
		case vinput.AxisLeftStickX:
			f.left.X = p
		case vinput.AxisLeftStickY:
			f.left.Y = p
		case vinput.AxisRightStickX:
			f.right.X = p
		case vinput.AxisRightStickY:
			f.right.Y = p
		case vinput.AxisDPadX:
			f.dpad(p, 0)
		case vinput.AxisDPadY:
			f.dpad(0, p)
		case vinput.AxisTriggers:
			f.press(codeTL2, p > digitalCutoff)
			f.press(codeTR2, p < -digitalCutoff)
		case vinput.AxisLeftTrigger:
			f.press(codeTL2, p > digitalCutoff)
		case vinput.AxisRightTrigger:
			f.press(codeTR2, p > digitalCutoff)
		}
	}

	for i, a := range js.Analogs {
		target := a.Controller
		if target == vinput.ControllerAnalogNone && i < vinput.NumControllerAnalogs {
			target = vinput.ControllerAnalog(i)
		}
		switch target {
		case vinput.AnalogLeftStick:
			f.left = a.Direction
		case vinput.AnalogRightStick:
			f.right = a.Direction
		case vinput.AnalogDPad:
			f.dpad(a.Direction.X, a.Direction.Y)
		}
		f.press(buttonCode(a.Button.Controller, -1), a.Button.Held)
	}

	return f
}

type padState struct {
	pad         Pad
	buttons     map[int]bool
	left, right vinput.Vector
}

// Mirror keeps one system pad per virtual joystick in sync with the
// registry snapshots it is given.
type Mirror struct {
	open   Factory
	pads   [vinput.MaxJoysticks]*padState
	failed [vinput.MaxJoysticks]bool
}

func NewMirror(open Factory) *Mirror {
	return &Mirror{open: open}
}

// Run applies every snapshot from changes until ctx is cancelled or
// changes is closed, then closes the pads.
func (m *Mirror) Run(ctx context.Context, changes <-chan vinput.RegistryInfo) {
	defer m.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case state, ok := <-changes:
			if !ok {
				return
			}
			m.Apply(state)
		}
	}
}

// Apply updates the pads to match state. Pads for joysticks that no longer
// exist are released but stay open.
func (m *Mirror) Apply(state vinput.RegistryInfo) {
	for slot := 0; slot < vinput.MaxJoysticks; slot++ {
		var want frame
		if slot < len(state.Joysticks) {
			want = layout(state.Joysticks[slot])
		} else if m.pads[slot] == nil {
			continue
		} else {
			want = frame{buttons: map[int]bool{}}
		}

		ps := m.padFor(slot)
		if ps == nil {
			continue
		}
		if err := ps.sync(want); err != nil {
			log.Printf("Virtual gamepad %d update failed: %v", slot, err)
		}
	}
}

func (m *Mirror) padFor(slot int) *padState {
	if m.pads[slot] != nil || m.failed[slot] {
		return m.pads[slot]
	}
	pad, err := m.open(slot)
	if err != nil {
		m.failed[slot] = true
		log.Printf("Virtual gamepad %d unavailable: %v", slot, err)
		return nil
	}
	log.Printf("Virtual gamepad %d created", slot)
	m.pads[slot] = &padState{pad: pad, buttons: make(map[int]bool)}
	return m.pads[slot]
}

func (ps *padState) sync(want frame) error {
	var errs []error
	for code, down := range want.buttons {
		if down && !ps.buttons[code] {
			errs = append(errs, ps.pad.ButtonDown(code))
			ps.buttons[code] = true
		}
	}
	for code, down := range ps.buttons {
		if down && !want.buttons[code] {
			errs = append(errs, ps.pad.ButtonUp(code))
			delete(ps.buttons, code)
		}
	}
	if !sameStick(ps.left, want.left) {
		errs = append(errs, ps.pad.LeftStickMove(float32(want.left.X), float32(-want.left.Y)))
		ps.left = want.left
	}
	if !sameStick(ps.right, want.right) {
		errs = append(errs, ps.pad.RightStickMove(float32(want.right.X), float32(-want.right.Y)))
		ps.right = want.right
	}
	return errors.Join(errs...)
}

func sameStick(a, b vinput.Vector) bool {
	return vinput.Vector{X: a.X - b.X, Y: a.Y - b.Y}.Len() < stickTolerance
}

// Close closes every open pad.
func (m *Mirror) Close() error {
	var errs []error
	for i, ps := range m.pads {
		if ps != nil {
			errs = append(errs, ps.pad.Close())
			m.pads[i] = nil
		}
	}
	return errors.Join(errs...)
}
