package gamepad

import "github.com/soar/virtualinput/internal/vinput"

const (
	hatUp    uint8 = 0x01
	hatRight uint8 = 0x02
	hatDown  uint8 = 0x04
	hatLeft  uint8 = 0x08
)

// ControllerState is the normalized state of the controller in one player slot.
type ControllerState struct {
	Connected      bool                              `json:"connected"`
	ControllerType string                            `json:"controllerType"`
	Name           string                            `json:"name"`
	Buttons        [vinput.NumControllerButtons]bool `json:"buttons"`
	Axes           [vinput.NumControllerAxes]float64 `json:"axes"`
}

// Button reports whether b is held. Unknown buttons read as released.
func (s *ControllerState) Button(b vinput.ControllerButton) bool {
	if b < 0 || int(b) >= vinput.NumControllerButtons {
		return false
	}
	return s.Buttons[b]
}

// Axis reads channel a. Unknown channels read as 0.
func (s *ControllerState) Axis(a vinput.ControllerAxis) float64 {
	if a < 0 || int(a) >= vinput.NumControllerAxes {
		return 0
	}
	return s.Axes[a]
}

// device is the subset of joystick queries needed to build a ControllerState.
type device interface {
	Axis(index int32) int16
	Button(index int32) bool
	NumButtons() int32
	NumHats() int32
	Hat(index int32) uint8
}

// readState samples dev through mapping. Stick values inside deadzone are
// reported as 0.
func readState(dev device, mapping *DeviceMapping, deadzone float64) ControllerState {
	state := ControllerState{
		Connected:      true,
		ControllerType: mapping.Name,
	}

	for _, am := range mapping.Axes {
		raw := dev.Axis(am.Index)
		var val float64
		if am.IsTrigger {
			val = NormalizeTrigger(raw, am.RawMin, am.RawMax)
		} else {
			val = NormalizeAxis(raw)
			if am.Invert {
				val = -val
			}
		}
		state.Axes[am.Target] = ApplyDeadzone(val, deadzone)
	}
	state.Axes[vinput.AxisTriggers] = state.Axes[vinput.AxisLeftTrigger] - state.Axes[vinput.AxisRightTrigger]

	numButtons := dev.NumButtons()
	for _, bm := range mapping.Buttons {
		if bm.Index >= numButtons {
			continue
		}
		state.Buttons[bm.Target] = dev.Button(bm.Index)
	}

	if mapping.HasHat && dev.NumHats() > 0 {
		hat := dev.Hat(0)
		if hat&hatRight != 0 {
			state.Axes[vinput.AxisDPadX] = 1
		} else if hat&hatLeft != 0 {
			state.Axes[vinput.AxisDPadX] = -1
		}
		if hat&hatUp != 0 {
			state.Axes[vinput.AxisDPadY] = 1
		} else if hat&hatDown != 0 {
			state.Axes[vinput.AxisDPadY] = -1
		}
	}

	return state
}
