package vinput

// Analog produces a 2D direction from two axes, or from a controller stick.
type Analog struct {
	X          Axis
	Y          Axis
	Button     Button // stick click
	Controller ControllerAnalog

	direction Vector
}

func NewAnalog() *Analog {
	a := &Analog{
		X:          *NewAxis(),
		Y:          *NewAxis(),
		Button:     Button{Controller: ButtonLeftStickClick},
		Controller: AnalogLeftStick,
	}
	a.Y.Controller = AxisLeftStickY
	return a
}

// Tick recomputes the direction. Keyboard directions are normalized;
// controller directions are clamped to unit length.
func (a *Analog) Tick(f Frame) Vector {
	a.Button.Tick(f)

	if f.Mode == ModeController {
		a.X.clear()
		a.Y.clear()
		hx, vy := a.Controller.Axes()
		raw := Vector{X: f.axis(hx), Y: f.axis(vy)}
		a.direction = raw.ClampMagnitude(1)
		return a.direction
	}

	v := Vector{X: a.X.Tick(f), Y: a.Y.Tick(f)}
	a.direction = v.Normalized()
	return a.direction
}

func (a *Analog) Direction() Vector {
	if a == nil {
		return Vector{}
	}
	return a.direction
}

func (a *Analog) Info() AnalogInfo {
	if a == nil {
		return AnalogInfo{Controller: ControllerAnalogNone}
	}
	return AnalogInfo{
		Controller: a.Controller,
		Direction:  a.direction,
		X:          a.X.Info(),
		Y:          a.Y.Info(),
		Button:     a.Button.Info(),
	}
}
