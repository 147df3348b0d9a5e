package runner

import (
	"time"

	"github.com/soar/virtualinput/internal/gamepad"
	"github.com/soar/virtualinput/internal/vinput"
)

// KeySource supplies the currently held keyboard keys.
type KeySource interface {
	Snapshot() map[vinput.Key]bool
}

// PadSource supplies the state of each controller slot.
type PadSource interface {
	Controllers() [vinput.MaxJoysticks]gamepad.ControllerState
}

// frameInput is the frozen device state for one tick.
type frameInput struct {
	keys    map[vinput.Key]bool
	pads    [vinput.MaxJoysticks]gamepad.ControllerState
	elapsed time.Duration
}

func (in *frameInput) KeyDown(k vinput.Key) bool {
	return in.keys[k]
}

func (in *frameInput) ButtonDown(joystick int, b vinput.ControllerButton) bool {
	if joystick < 0 || joystick >= len(in.pads) {
		return false
	}
	return in.pads[joystick].Button(b)
}

func (in *frameInput) Axis(joystick int, a vinput.ControllerAxis) float64 {
	if joystick < 0 || joystick >= len(in.pads) {
		return 0
	}
	return in.pads[joystick].Axis(a)
}

func (in *frameInput) Elapsed() time.Duration {
	return in.elapsed
}
