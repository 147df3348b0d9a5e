package hub

import "github.com/soar/virtualinput/internal/vinput"

// DeltaChanges lists the joysticks whose state differs from the last message.
type DeltaChanges struct {
	Count     *int                        `json:"count,omitempty"`
	Joysticks map[int]vinput.JoystickInfo `json:"joysticks,omitempty"`
}

func (d *DeltaChanges) IsEmpty() bool {
	return d.Count == nil && len(d.Joysticks) == 0
}

func ComputeDelta(old, new_ vinput.RegistryInfo) *DeltaChanges {
	d := &DeltaChanges{}

	if len(old.Joysticks) != len(new_.Joysticks) {
		n := len(new_.Joysticks)
		d.Count = &n
	}

	for i, js := range new_.Joysticks {
		if i < len(old.Joysticks) && old.Joysticks[i].Equal(js) {
			continue
		}
		if d.Joysticks == nil {
			d.Joysticks = make(map[int]vinput.JoystickInfo)
		}
		d.Joysticks[i] = js
	}

	return d
}
