package bindings

// Default returns the built-in bindings: one joystick with WASD on the
// analog, Q/E on the axis and J/K/U/I on the face buttons, mirrored on the
// left stick, triggers and A/B/X/Y in controller mode.
func Default() *File {
	layout := Profile{
		Buttons: []ButtonBinding{
			{Key: "KeyJ", Controller: "A"},
			{Key: "KeyK", Controller: "B"},
			{Key: "KeyU", Controller: "X"},
			{Key: "KeyI", Controller: "Y"},
		},
		Axes: []AxisBinding{{
			Positive:   ButtonBinding{Key: "KeyE", Controller: "None"},
			Negative:   ButtonBinding{Key: "KeyQ", Controller: "None"},
			Controller: "Triggers",
		}},
		Analogs: []AnalogBinding{{
			X: AxisBinding{
				Positive:   ButtonBinding{Key: "KeyD", Controller: "None"},
				Negative:   ButtonBinding{Key: "KeyA", Controller: "None"},
				Controller: "LeftStickX",
			},
			Y: AxisBinding{
				Positive:   ButtonBinding{Key: "KeyW", Controller: "None"},
				Negative:   ButtonBinding{Key: "KeyS", Controller: "None"},
				Controller: "LeftStickY",
			},
			Button:     ButtonBinding{Key: "KeyF", Controller: "LeftStickClick"},
			Controller: "LeftStick",
		}},
	}

	return &File{Joysticks: []JoystickBindings{{
		Mode:       "keyboard",
		Keyboard:   layout,
		Controller: layout.clone(),
	}}}
}

func (p Profile) clone() Profile {
	return Profile{
		Buttons: append([]ButtonBinding(nil), p.Buttons...),
		Axes:    append([]AxisBinding(nil), p.Axes...),
		Analogs: append([]AnalogBinding(nil), p.Analogs...),
	}
}
