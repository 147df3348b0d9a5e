package bindings

import (
	"github.com/soar/virtualinput/internal/vinput"
)

// Capture records the layout and bindings of js.
func Capture(js *vinput.Joystick) Profile {
	var p Profile
	for i := 0; i < js.NumButtons(); i++ {
		p.Buttons = append(p.Buttons, captureButton(js.Button(i)))
	}
	for i := 0; i < js.NumAxes(); i++ {
		p.Axes = append(p.Axes, captureAxis(js.Axis(i)))
	}
	for i := 0; i < js.NumAnalogs(); i++ {
		a := js.Analog(i)
		p.Analogs = append(p.Analogs, AnalogBinding{
			X:          captureAxis(&a.X),
			Y:          captureAxis(&a.Y),
			Button:     captureButton(&a.Button),
			Controller: a.Controller.String(),
		})
	}
	return p
}

func captureButton(b *vinput.Button) ButtonBinding {
	return ButtonBinding{Key: string(b.Key), Controller: b.Controller.String()}
}

func captureAxis(a *vinput.Axis) AxisBinding {
	return AxisBinding{
		Positive:   captureButton(&a.Positive),
		Negative:   captureButton(&a.Negative),
		Controller: a.Controller.String(),
	}
}

// Apply resizes js's component lists to match p and binds each component.
func (p Profile) Apply(js *vinput.Joystick) error {
	if err := p.validate(); err != nil {
		return err
	}

	for js.NumButtons() > len(p.Buttons) {
		if err := js.RemoveButton(js.NumButtons() - 1); err != nil {
			return err
		}
	}
	for js.NumButtons() < len(p.Buttons) {
		if _, err := js.AddButton(); err != nil {
			return err
		}
	}
	for js.NumAxes() > len(p.Axes) {
		if err := js.RemoveAxis(js.NumAxes() - 1); err != nil {
			return err
		}
	}
	for js.NumAxes() < len(p.Axes) {
		if _, err := js.AddAxis(); err != nil {
			return err
		}
	}
	for js.NumAnalogs() > len(p.Analogs) {
		if err := js.RemoveAnalog(js.NumAnalogs() - 1); err != nil {
			return err
		}
	}
	for js.NumAnalogs() < len(p.Analogs) {
		if _, err := js.AddAnalog(); err != nil {
			return err
		}
	}

	for i, bb := range p.Buttons {
		bindButton(js.Button(i), bb)
	}
	for i, ab := range p.Axes {
		bindAxis(js.Axis(i), ab)
	}
	for i, ab := range p.Analogs {
		a := js.Analog(i)
		bindAxis(&a.X, ab.X)
		bindAxis(&a.Y, ab.Y)
		bindButton(&a.Button, ab.Button)
		a.Controller, _ = vinput.ParseControllerAnalog(ab.Controller)
	}
	return nil
}

// Names were checked by validate.
func bindButton(b *vinput.Button, bb ButtonBinding) {
	b.Key = vinput.Key(bb.Key)
	b.Controller, _ = vinput.ParseControllerButton(bb.Controller)
}

func bindAxis(a *vinput.Axis, ab AxisBinding) {
	bindButton(&a.Positive, ab.Positive)
	bindButton(&a.Negative, ab.Negative)
	a.Controller, _ = vinput.ParseControllerAxis(ab.Controller)
}

// IsEmpty reports whether the profile has no components at all.
func (p Profile) IsEmpty() bool {
	return len(p.Buttons) == 0 && len(p.Axes) == 0 && len(p.Analogs) == 0
}
