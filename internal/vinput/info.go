package vinput

import "math"

// Snapshot types returned by the Info methods. They are plain values and
// safe to hand to other goroutines.

type ButtonInfo struct {
	Key         Key              `json:"key,omitempty"`
	Controller  ControllerButton `json:"controller"`
	Held        bool             `json:"held"`
	Pressed     bool             `json:"pressed,omitempty"`
	Released    bool             `json:"released,omitempty"`
	HeldTicks   uint             `json:"heldTicks"`
	HeldSeconds float64          `json:"heldSeconds"`
}

type AxisInfo struct {
	Controller ControllerAxis `json:"controller"`
	Position   float64        `json:"position"`
	Positive   ButtonInfo     `json:"positive"`
	Negative   ButtonInfo     `json:"negative"`
}

type AnalogInfo struct {
	Controller ControllerAnalog `json:"controller"`
	Direction  Vector           `json:"direction"`
	X          AxisInfo         `json:"x"`
	Y          AxisInfo         `json:"y"`
	Button     ButtonInfo       `json:"button"`
}

type JoystickInfo struct {
	ID      int          `json:"id"`
	Mode    Mode         `json:"mode"`
	Analogs []AnalogInfo `json:"analogs"`
	Axes    []AxisInfo   `json:"axes"`
	Buttons []ButtonInfo `json:"buttons"`
}

type RegistryInfo struct {
	Joysticks []JoystickInfo `json:"joysticks"`
}

const analogThreshold = 0.01

func floatEqual(a, b float64) bool {
	return math.Abs(a-b) < analogThreshold
}

// Equal reports whether two button snapshots match. Hold seconds are
// compared with a small tolerance.
func (b ButtonInfo) Equal(o ButtonInfo) bool {
	return b.Key == o.Key &&
		b.Controller == o.Controller &&
		b.Held == o.Held &&
		b.Pressed == o.Pressed &&
		b.Released == o.Released &&
		b.HeldTicks == o.HeldTicks &&
		floatEqual(b.HeldSeconds, o.HeldSeconds)
}

func (a AxisInfo) Equal(o AxisInfo) bool {
	return a.Controller == o.Controller &&
		floatEqual(a.Position, o.Position) &&
		a.Positive.Equal(o.Positive) &&
		a.Negative.Equal(o.Negative)
}

func (a AnalogInfo) Equal(o AnalogInfo) bool {
	return a.Controller == o.Controller &&
		floatEqual(a.Direction.X, o.Direction.X) &&
		floatEqual(a.Direction.Y, o.Direction.Y) &&
		a.X.Equal(o.X) &&
		a.Y.Equal(o.Y) &&
		a.Button.Equal(o.Button)
}

func (j JoystickInfo) Equal(o JoystickInfo) bool {
	if j.ID != o.ID || j.Mode != o.Mode ||
		len(j.Analogs) != len(o.Analogs) ||
		len(j.Axes) != len(o.Axes) ||
		len(j.Buttons) != len(o.Buttons) {
		return false
	}
	for i := range j.Analogs {
		if !j.Analogs[i].Equal(o.Analogs[i]) {
			return false
		}
	}
	for i := range j.Axes {
		if !j.Axes[i].Equal(o.Axes[i]) {
			return false
		}
	}
	for i := range j.Buttons {
		if !j.Buttons[i].Equal(o.Buttons[i]) {
			return false
		}
	}
	return true
}

func (r RegistryInfo) Equal(o RegistryInfo) bool {
	if len(r.Joysticks) != len(o.Joysticks) {
		return false
	}
	for i := range r.Joysticks {
		if !r.Joysticks[i].Equal(o.Joysticks[i]) {
			return false
		}
	}
	return true
}
