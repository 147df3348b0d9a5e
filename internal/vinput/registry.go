package vinput

import "fmt"

// MaxJoysticks is the number of joysticks a Registry can hold.
const MaxJoysticks = 4

// Registry is the ordered set of joysticks ticked once per frame.
//
// A Registry is not safe for concurrent use. Configuration changes must be
// serialized with Tick by the owner of the frame loop.
type Registry struct {
	joysticks []*Joystick
}

func NewRegistry() *Registry {
	return &Registry{}
}

// EnsureAtLeastOne adds a joystick if the registry is empty.
func (r *Registry) EnsureAtLeastOne() {
	if len(r.joysticks) == 0 {
		r.joysticks = append(r.joysticks, NewJoystick())
	}
}

// AddJoystick appends a new joystick.
func (r *Registry) AddJoystick() (*Joystick, error) {
	if len(r.joysticks) >= MaxJoysticks {
		return nil, fmt.Errorf("add joystick: %w (max %d)", ErrCapacity, MaxJoysticks)
	}
	js := NewJoystick()
	js.id = len(r.joysticks)
	r.joysticks = append(r.joysticks, js)
	return js, nil
}

// ClearJoysticks removes every joystick. The next lookup or tick recreates
// joystick 0.
func (r *Registry) ClearJoysticks() {
	r.joysticks = nil
}

func (r *Registry) Len() int {
	return len(r.joysticks)
}

// GetJoystick returns joystick j, or nil when j is out of range.
func (r *Registry) GetJoystick(j int) *Joystick {
	r.EnsureAtLeastOne()
	if j < 0 || j >= len(r.joysticks) {
		return nil
	}
	return r.joysticks[j]
}

func (r *Registry) GetButton(j, b int) *Button {
	return r.GetJoystick(j).Button(b)
}

func (r *Registry) GetAxis(j, a int) *Axis {
	return r.GetJoystick(j).Axis(a)
}

func (r *Registry) GetAnalog(j, a int) *Analog {
	return r.GetJoystick(j).Analog(a)
}

// Tick runs one frame over every joystick in order. Each joystick's id is
// re-stamped with its current position.
func (r *Registry) Tick(in Input) {
	r.EnsureAtLeastOne()
	for i, js := range r.joysticks {
		js.Tick(i, in)
	}
}

func (r *Registry) Info() RegistryInfo {
	info := RegistryInfo{Joysticks: make([]JoystickInfo, 0, len(r.joysticks))}
	for _, js := range r.joysticks {
		info.Joysticks = append(info.Joysticks, js.Info())
	}
	return info
}
