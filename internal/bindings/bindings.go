// Package bindings saves and restores default key and controller bindings
// for each joystick and source mode.
package bindings

import (
	"errors"
	"fmt"

	"github.com/soar/virtualinput/internal/vinput"
)

type ButtonBinding struct {
	Key        string `mapstructure:"key"`
	Controller string `mapstructure:"controller"`
}

type AxisBinding struct {
	Positive   ButtonBinding `mapstructure:"positive"`
	Negative   ButtonBinding `mapstructure:"negative"`
	Controller string        `mapstructure:"controller"`
}

type AnalogBinding struct {
	X          AxisBinding   `mapstructure:"x"`
	Y          AxisBinding   `mapstructure:"y"`
	Button     ButtonBinding `mapstructure:"button"`
	Controller string        `mapstructure:"controller"`
}

// Profile is the component layout and bindings of one joystick in one mode.
type Profile struct {
	Buttons []ButtonBinding `mapstructure:"buttons"`
	Axes    []AxisBinding   `mapstructure:"axes"`
	Analogs []AnalogBinding `mapstructure:"analogs"`
}

type JoystickBindings struct {
	Mode       string  `mapstructure:"mode"`
	Keyboard   Profile `mapstructure:"keyboard"`
	Controller Profile `mapstructure:"controller"`
}

// File is the on-disk set of joystick bindings.
type File struct {
	Joysticks []JoystickBindings `mapstructure:"joysticks"`
}

// Profile returns the profile for joystick i in mode m.
func (f *File) Profile(i int, m vinput.Mode) (Profile, bool) {
	if i < 0 || i >= len(f.Joysticks) {
		return Profile{}, false
	}
	if m == vinput.ModeController {
		return f.Joysticks[i].Controller, true
	}
	return f.Joysticks[i].Keyboard, true
}

// Store records js's current layout as the profile for joystick i in the
// joystick's current mode, growing the file as needed.
func (f *File) Store(i int, js *vinput.Joystick) {
	f.Set(i, js.Mode(), Capture(js))
}

// Set replaces the profile for joystick i in mode m and makes m the
// joystick's saved mode.
func (f *File) Set(i int, m vinput.Mode, p Profile) {
	for len(f.Joysticks) <= i {
		f.Joysticks = append(f.Joysticks, JoystickBindings{Mode: vinput.ModeKeyboard.String()})
	}
	jb := &f.Joysticks[i]
	jb.Mode = m.String()
	if m == vinput.ModeController {
		jb.Controller = p
	} else {
		jb.Keyboard = p
	}
}

// Clone returns a copy of f whose joystick list can be modified
// independently.
func (f *File) Clone() *File {
	return &File{Joysticks: append([]JoystickBindings(nil), f.Joysticks...)}
}

// Apply replaces the registry's joysticks with the ones described by f.
// The file must already be valid.
func (f *File) Apply(reg *vinput.Registry) error {
	reg.ClearJoysticks()
	for i, jb := range f.Joysticks {
		js, err := reg.AddJoystick()
		if err != nil {
			return fmt.Errorf("joystick %d: %w", i, err)
		}
		mode, err := vinput.ParseMode(jb.Mode)
		if err != nil {
			return fmt.Errorf("joystick %d: %w", i, err)
		}
		js.SetMode(mode)
		p, _ := f.Profile(i, mode)
		if err := p.Apply(js); err != nil {
			return fmt.Errorf("joystick %d: %w", i, err)
		}
	}
	reg.EnsureAtLeastOne()
	return nil
}

// Validate checks names and component counts.
func (f *File) Validate() error {
	var errs []error
	if len(f.Joysticks) > vinput.MaxJoysticks {
		errs = append(errs, fmt.Errorf("%d joysticks configured, max %d", len(f.Joysticks), vinput.MaxJoysticks))
	}
	for i, jb := range f.Joysticks {
		if _, err := vinput.ParseMode(jb.Mode); err != nil {
			errs = append(errs, fmt.Errorf("joystick %d: %w", i, err))
		}
		if err := jb.Keyboard.validate(); err != nil {
			errs = append(errs, fmt.Errorf("joystick %d keyboard: %w", i, err))
		}
		if err := jb.Controller.validate(); err != nil {
			errs = append(errs, fmt.Errorf("joystick %d controller: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (p *Profile) validate() error {
	var errs []error
	if len(p.Buttons) > vinput.MaxButtons {
		errs = append(errs, fmt.Errorf("%d buttons, max %d", len(p.Buttons), vinput.MaxButtons))
	}
	if len(p.Axes) > vinput.MaxAxes {
		errs = append(errs, fmt.Errorf("%d axes, max %d", len(p.Axes), vinput.MaxAxes))
	}
	if len(p.Analogs) > vinput.MaxAnalogs {
		errs = append(errs, fmt.Errorf("%d analogs, max %d", len(p.Analogs), vinput.MaxAnalogs))
	}

	check := func(what string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", what, err))
		}
	}
	for i, b := range p.Buttons {
		check(fmt.Sprintf("button %d", i), b.validate())
	}
	for i, a := range p.Axes {
		check(fmt.Sprintf("axis %d", i), a.validate())
	}
	for i, a := range p.Analogs {
		check(fmt.Sprintf("analog %d", i), a.validate())
	}
	return errors.Join(errs...)
}

func (b ButtonBinding) validate() error {
	_, err := vinput.ParseControllerButton(b.Controller)
	return err
}

func (a AxisBinding) validate() error {
	_, err := vinput.ParseControllerAxis(a.Controller)
	return errors.Join(err, a.Positive.validate(), a.Negative.validate())
}

func (a AnalogBinding) validate() error {
	_, err := vinput.ParseControllerAnalog(a.Controller)
	return errors.Join(err, a.X.validate(), a.Y.validate(), a.Button.validate())
}
