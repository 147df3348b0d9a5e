package vinput

import (
	"fmt"
	"strings"
)

// Mode selects where a joystick's components read their input from.
type Mode int

const (
	ModeKeyboard Mode = iota
	ModeController
)

func (m Mode) String() string {
	switch m {
	case ModeKeyboard:
		return "keyboard"
	case ModeController:
		return "controller"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode accepts "keyboard" or "controller" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keyboard", "":
		return ModeKeyboard, nil
	case "controller":
		return ModeController, nil
	}
	return ModeKeyboard, fmt.Errorf("unknown mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Key names a keyboard key using KeyboardEvent.code style names
// ("KeyA", "ArrowUp", "Space"). KeyNone means unbound.
type Key string

const KeyNone Key = ""

// ControllerButton is a physical controller button in Xbox layout.
type ControllerButton int

const ControllerButtonNone ControllerButton = -1

const (
	ButtonA ControllerButton = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonLeftBumper
	ButtonRightBumper
	ButtonBack
	ButtonStart
	ButtonLeftStickClick
	ButtonRightStickClick

	NumControllerButtons = iota
)

var controllerButtonNames = [NumControllerButtons]string{
	"A", "B", "X", "Y",
	"LeftBumper", "RightBumper",
	"Back", "Start",
	"LeftStickClick", "RightStickClick",
}

func (b ControllerButton) String() string {
	if b >= 0 && int(b) < NumControllerButtons {
		return controllerButtonNames[b]
	}
	return "None"
}

// ParseControllerButton resolves a button name. Empty and "None" are unbound.
func ParseControllerButton(s string) (ControllerButton, error) {
	if s == "" || strings.EqualFold(s, "none") {
		return ControllerButtonNone, nil
	}
	for i, n := range controllerButtonNames {
		if strings.EqualFold(n, s) {
			return ControllerButton(i), nil
		}
	}
	return ControllerButtonNone, fmt.Errorf("unknown controller button %q", s)
}

func (b ControllerButton) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *ControllerButton) UnmarshalText(text []byte) error {
	v, err := ParseControllerButton(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// ControllerAxis is a single analog channel on a controller.
type ControllerAxis int

const ControllerAxisNone ControllerAxis = -1

const (
	AxisLeftStickX ControllerAxis = iota
	AxisLeftStickY
	AxisRightStickX
	AxisRightStickY
	AxisDPadX
	AxisDPadY
	AxisTriggers // left trigger minus right trigger
	AxisLeftTrigger
	AxisRightTrigger

	NumControllerAxes = iota
)

var controllerAxisNames = [NumControllerAxes]string{
	"LeftStickX", "LeftStickY",
	"RightStickX", "RightStickY",
	"DPadX", "DPadY",
	"Triggers", "LeftTrigger", "RightTrigger",
}

func (a ControllerAxis) String() string {
	if a >= 0 && int(a) < NumControllerAxes {
		return controllerAxisNames[a]
	}
	return "None"
}

func ParseControllerAxis(s string) (ControllerAxis, error) {
	if s == "" || strings.EqualFold(s, "none") {
		return ControllerAxisNone, nil
	}
	for i, n := range controllerAxisNames {
		if strings.EqualFold(n, s) {
			return ControllerAxis(i), nil
		}
	}
	return ControllerAxisNone, fmt.Errorf("unknown controller axis %q", s)
}

func (a ControllerAxis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ControllerAxis) UnmarshalText(text []byte) error {
	v, err := ParseControllerAxis(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ControllerAnalog is a two-channel stick on a controller.
type ControllerAnalog int

const ControllerAnalogNone ControllerAnalog = -1

const (
	AnalogLeftStick ControllerAnalog = iota
	AnalogRightStick
	AnalogDPad

	NumControllerAnalogs = iota
)

var controllerAnalogNames = [NumControllerAnalogs]string{"LeftStick", "RightStick", "DPad"}

func (a ControllerAnalog) String() string {
	if a >= 0 && int(a) < NumControllerAnalogs {
		return controllerAnalogNames[a]
	}
	return "None"
}

// Axes returns the horizontal and vertical channels of the stick.
func (a ControllerAnalog) Axes() (x, y ControllerAxis) {
	switch a {
	case AnalogLeftStick:
		return AxisLeftStickX, AxisLeftStickY
	case AnalogRightStick:
		return AxisRightStickX, AxisRightStickY
	case AnalogDPad:
		return AxisDPadX, AxisDPadY
	}
	return ControllerAxisNone, ControllerAxisNone
}

func ParseControllerAnalog(s string) (ControllerAnalog, error) {
	if s == "" || strings.EqualFold(s, "none") {
		return ControllerAnalogNone, nil
	}
	for i, n := range controllerAnalogNames {
		if strings.EqualFold(n, s) {
			return ControllerAnalog(i), nil
		}
	}
	return ControllerAnalogNone, fmt.Errorf("unknown controller analog %q", s)
}

func (a ControllerAnalog) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *ControllerAnalog) UnmarshalText(text []byte) error {
	v, err := ParseControllerAnalog(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}
