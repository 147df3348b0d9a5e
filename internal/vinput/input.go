package vinput

import "time"

// Input is the host's view of raw device state for a single tick. It must
// not change while a tick is running.
type Input interface {
	// KeyDown reports whether keyboard key k is held.
	KeyDown(k Key) bool
	// ButtonDown reports whether button b on controller slot joystick is held.
	ButtonDown(joystick int, b ControllerButton) bool
	// Axis reads channel a on controller slot joystick.
	Axis(joystick int, a ControllerAxis) float64
	// Elapsed is the time since the previous tick.
	Elapsed() time.Duration
}

// Frame is passed to every component tick. It carries the owning joystick's
// index and source mode so components need no reference to their parent.
type Frame struct {
	Joystick int
	Mode     Mode
	Input    Input
}

func (f Frame) keyDown(k Key) bool {
	if f.Input == nil || k == KeyNone {
		return false
	}
	return f.Input.KeyDown(k)
}

func (f Frame) buttonDown(b ControllerButton) bool {
	if f.Input == nil || b < 0 || int(b) >= NumControllerButtons {
		return false
	}
	return f.Input.ButtonDown(f.Joystick, b)
}

func (f Frame) axis(a ControllerAxis) float64 {
	if f.Input == nil || a < 0 || int(a) >= NumControllerAxes {
		return 0
	}
	return f.Input.Axis(f.Joystick, a)
}

func (f Frame) elapsed() float64 {
	if f.Input == nil {
		return 0
	}
	return f.Input.Elapsed().Seconds()
}
