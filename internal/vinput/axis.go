package vinput

// Axis produces a value in [-1, 1] from a pair of buttons, or the raw value
// of a controller channel in controller mode.
type Axis struct {
	Positive   Button
	Negative   Button
	Controller ControllerAxis

	position float64
}

func NewAxis() *Axis {
	return &Axis{
		Positive:   Button{Controller: ControllerButtonNone},
		Negative:   Button{Controller: ControllerButtonNone},
		Controller: AxisLeftStickX,
	}
}

// Tick recomputes the position for the frame. Nothing is carried over from
// the previous tick, so a mode change takes effect immediately.
func (a *Axis) Tick(f Frame) float64 {
	if f.Mode == ModeController {
		a.Positive.clear()
		a.Negative.clear()
		a.position = f.axis(a.Controller)
		return a.position
	}

	pos := a.Positive.Tick(f)
	neg := a.Negative.Tick(f)

	a.position = 0
	if pos != neg {
		if pos {
			a.position = 1
		} else {
			a.position = -1
		}
	}
	return a.position
}

func (a *Axis) clear() {
	a.Positive.clear()
	a.Negative.clear()
	a.position = 0
}

// Value returns the position computed by the last tick.
func (a *Axis) Value() float64 {
	if a == nil {
		return 0
	}
	return a.position
}

func (a *Axis) Info() AxisInfo {
	if a == nil {
		return AxisInfo{Controller: ControllerAxisNone}
	}
	return AxisInfo{
		Controller: a.Controller,
		Position:   a.Value(),
		Positive:   a.Positive.Info(),
		Negative:   a.Negative.Info(),
	}
}
