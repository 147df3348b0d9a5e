package vinput

import (
	"errors"
	"fmt"
)

// Component limits per joystick.
const (
	MaxAnalogs = 3
	MaxAxes    = 4
	MaxButtons = 10
)

var (
	ErrCapacity = errors.New("capacity reached")
	ErrIndex    = errors.New("index out of range")
)

// Joystick is an addressable set of buttons, axes and analogs sharing one
// source mode.
type Joystick struct {
	id      int
	mode    Mode
	analogs []*Analog
	axes    []*Axis
	buttons []*Button
}

// NewJoystick returns a keyboard-mode joystick with one analog, one axis and
// four buttons, all unbound.
func NewJoystick() *Joystick {
	js := &Joystick{}
	js.analogs = append(js.analogs, NewAnalog())
	js.axes = append(js.axes, NewAxis())
	for i := 0; i < 4; i++ {
		js.buttons = append(js.buttons, NewButton())
	}
	return js
}

// Tick stamps the joystick's id and updates every component: analogs, then
// axes, then buttons.
func (js *Joystick) Tick(index int, in Input) {
	if js == nil {
		return
	}
	js.id = index
	f := Frame{Joystick: index, Mode: js.mode, Input: in}

	for _, a := range js.analogs {
		a.Tick(f)
	}
	for _, a := range js.axes {
		a.Tick(f)
	}
	for _, b := range js.buttons {
		b.Tick(f)
	}
}

// ID is the joystick's position in the registry as of the last tick.
func (js *Joystick) ID() int {
	if js == nil {
		return -1
	}
	return js.id
}

func (js *Joystick) Mode() Mode {
	if js == nil {
		return ModeKeyboard
	}
	return js.mode
}

// SetMode switches the source mode. It takes effect on the next tick.
func (js *Joystick) SetMode(m Mode) {
	if js == nil {
		return
	}
	js.mode = m
}

func (js *Joystick) NumAnalogs() int {
	if js == nil {
		return 0
	}
	return len(js.analogs)
}

func (js *Joystick) NumAxes() int {
	if js == nil {
		return 0
	}
	return len(js.axes)
}

func (js *Joystick) NumButtons() int {
	if js == nil {
		return 0
	}
	return len(js.buttons)
}

// Analog returns analog i, or nil when i is out of range.
func (js *Joystick) Analog(i int) *Analog {
	if js == nil || i < 0 || i >= len(js.analogs) {
		return nil
	}
	return js.analogs[i]
}

// Axis returns axis i, or nil when i is out of range.
func (js *Joystick) Axis(i int) *Axis {
	if js == nil || i < 0 || i >= len(js.axes) {
		return nil
	}
	return js.axes[i]
}

// Button returns button i, or nil when i is out of range.
func (js *Joystick) Button(i int) *Button {
	if js == nil || i < 0 || i >= len(js.buttons) {
		return nil
	}
	return js.buttons[i]
}

func (js *Joystick) AddAnalog() (*Analog, error) {
	if js == nil {
		return nil, fmt.Errorf("add analog: %w", ErrIndex)
	}
	if len(js.analogs) >= MaxAnalogs {
		return nil, fmt.Errorf("add analog: %w (max %d)", ErrCapacity, MaxAnalogs)
	}
	a := NewAnalog()
	js.analogs = append(js.analogs, a)
	return a, nil
}

func (js *Joystick) AddAxis() (*Axis, error) {
	if js == nil {
		return nil, fmt.Errorf("add axis: %w", ErrIndex)
	}
	if len(js.axes) >= MaxAxes {
		return nil, fmt.Errorf("add axis: %w (max %d)", ErrCapacity, MaxAxes)
	}
	a := NewAxis()
	js.axes = append(js.axes, a)
	return a, nil
}

func (js *Joystick) AddButton() (*Button, error) {
	if js == nil {
		return nil, fmt.Errorf("add button: %w", ErrIndex)
	}
	if len(js.buttons) >= MaxButtons {
		return nil, fmt.Errorf("add button: %w (max %d)", ErrCapacity, MaxButtons)
	}
	b := NewButton()
	js.buttons = append(js.buttons, b)
	return b, nil
}

func (js *Joystick) RemoveAnalog(i int) error {
	if js == nil || i < 0 || i >= len(js.analogs) {
		return fmt.Errorf("remove analog %d: %w", i, ErrIndex)
	}
	js.analogs = append(js.analogs[:i], js.analogs[i+1:]...)
	return nil
}

func (js *Joystick) RemoveAxis(i int) error {
	if js == nil || i < 0 || i >= len(js.axes) {
		return fmt.Errorf("remove axis %d: %w", i, ErrIndex)
	}
	js.axes = append(js.axes[:i], js.axes[i+1:]...)
	return nil
}

func (js *Joystick) RemoveButton(i int) error {
	if js == nil || i < 0 || i >= len(js.buttons) {
		return fmt.Errorf("remove button %d: %w", i, ErrIndex)
	}
	js.buttons = append(js.buttons[:i], js.buttons[i+1:]...)
	return nil
}

// Info returns a diagnostic snapshot of the joystick. A nil joystick
// reports ID -1 and no components.
func (js *Joystick) Info() JoystickInfo {
	if js == nil {
		return JoystickInfo{
			ID:      -1,
			Analogs: []AnalogInfo{},
			Axes:    []AxisInfo{},
			Buttons: []ButtonInfo{},
		}
	}
	info := JoystickInfo{
		ID:      js.id,
		Mode:    js.mode,
		Analogs: make([]AnalogInfo, 0, len(js.analogs)),
		Axes:    make([]AxisInfo, 0, len(js.axes)),
		Buttons: make([]ButtonInfo, 0, len(js.buttons)),
	}
	for _, a := range js.analogs {
		info.Analogs = append(info.Analogs, a.Info())
	}
	for _, a := range js.axes {
		info.Axes = append(info.Axes, a.Info())
	}
	for _, b := range js.buttons {
		info.Buttons = append(info.Buttons, b.Info())
	}
	return info
}
