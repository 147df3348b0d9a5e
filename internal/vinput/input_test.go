package vinput

import "time"

// fakeInput is a mutable Input for tests.
type fakeInput struct {
	keys    map[Key]bool
	buttons map[int]map[ControllerButton]bool
	axes    map[int]map[ControllerAxis]float64
	elapsed time.Duration
}

func newFakeInput(elapsed time.Duration) *fakeInput {
	return &fakeInput{
		keys:    make(map[Key]bool),
		buttons: make(map[int]map[ControllerButton]bool),
		axes:    make(map[int]map[ControllerAxis]float64),
		elapsed: elapsed,
	}
}

func (in *fakeInput) KeyDown(k Key) bool { return in.keys[k] }

func (in *fakeInput) ButtonDown(j int, b ControllerButton) bool {
	return in.buttons[j][b]
}

func (in *fakeInput) Axis(j int, a ControllerAxis) float64 {
	return in.axes[j][a]
}

func (in *fakeInput) Elapsed() time.Duration { return in.elapsed }

func (in *fakeInput) setButton(j int, b ControllerButton, down bool) {
	if in.buttons[j] == nil {
		in.buttons[j] = make(map[ControllerButton]bool)
	}
	in.buttons[j][b] = down
}

func (in *fakeInput) setAxis(j int, a ControllerAxis, v float64) {
	if in.axes[j] == nil {
		in.axes[j] = make(map[ControllerAxis]float64)
	}
	in.axes[j][a] = v
}
