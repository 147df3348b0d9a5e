package output

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soar/virtualinput/internal/vinput"
)

type fakePad struct {
	held   map[int]bool
	calls  []string
	left   [2]float32
	right  [2]float32
	closed bool
}

func newFakePad() *fakePad {
	return &fakePad{held: make(map[int]bool)}
}

func (p *fakePad) ButtonDown(key int) error {
	p.held[key] = true
	p.calls = append(p.calls, fmt.Sprintf("down %#x", key))
	return nil
}

func (p *fakePad) ButtonUp(key int) error {
	delete(p.held, key)
	p.calls = append(p.calls, fmt.Sprintf("up %#x", key))
	return nil
}

func (p *fakePad) LeftStickMove(x, y float32) error {
	p.left = [2]float32{x, y}
	p.calls = append(p.calls, "left")
	return nil
}

func (p *fakePad) RightStickMove(x, y float32) error {
	p.right = [2]float32{x, y}
	p.calls = append(p.calls, "right")
	return nil
}

func (p *fakePad) Close() error {
	p.closed = true
	return nil
}

type fakeFactory struct {
	pads   map[int]*fakePad
	failAt int
}

func (f *fakeFactory) open(slot int) (Pad, error) {
	if slot == f.failAt {
		return nil, errors.New("permission denied")
	}
	p := newFakePad()
	f.pads[slot] = p
	return p, nil
}

func newTestMirror() (*Mirror, *fakeFactory) {
	f := &fakeFactory{pads: make(map[int]*fakePad), failAt: -1}
	return NewMirror(f.open), f
}

func registryWith(js ...vinput.JoystickInfo) vinput.RegistryInfo {
	return vinput.RegistryInfo{Joysticks: js}
}

func TestButtonCode(t *testing.T) {
	assert.Equal(t, codeSouth, buttonCode(vinput.ButtonA, 5))
	assert.Equal(t, codeStart, buttonCode(vinput.ButtonStart, 0))
	assert.Equal(t, codeEast, buttonCode(vinput.ControllerButtonNone, 1))
	assert.Equal(t, -1, buttonCode(vinput.ControllerButtonNone, 10))
	assert.Equal(t, -1, buttonCode(vinput.ControllerButtonNone, -1))
}

func TestLayout(t *testing.T) {
	js := vinput.JoystickInfo{
		Buttons: []vinput.ButtonInfo{
			{Controller: vinput.ButtonY, Held: true},
			{Controller: vinput.ControllerButtonNone, Held: true}, // falls back to B
			{Controller: vinput.ButtonX},
		},
		Axes: []vinput.AxisInfo{
			{Controller: vinput.AxisTriggers, Position: -1},
			{Controller: vinput.AxisDPadY, Position: 1},
		},
		Analogs: []vinput.AnalogInfo{
			{Controller: vinput.AnalogLeftStick, Direction: vinput.Vector{X: 0.6, Y: 0.8}},
			{
				Controller: vinput.ControllerAnalogNone, // second slot is the right stick
				Direction:  vinput.Vector{X: -1},
				Button:     vinput.ButtonInfo{Controller: vinput.ButtonRightStickClick, Held: true},
			},
		},
	}

	f := layout(js)
	assert.Equal(t, map[int]bool{
		codeWest:   true,
		codeEast:   true,
		codeTR2:    true,
		codeDpadUp: true,
		codeThumbR: true,
	}, f.buttons)
	assert.Equal(t, vinput.Vector{X: 0.6, Y: 0.8}, f.left)
	assert.Equal(t, vinput.Vector{X: -1}, f.right)
}

func TestApplySendsTransitionsOnly(t *testing.T) {
	m, f := newTestMirror()
	held := registryWith(vinput.JoystickInfo{
		Buttons: []vinput.ButtonInfo{{Controller: vinput.ButtonA, Held: true}},
		Analogs: []vinput.AnalogInfo{{Controller: vinput.AnalogLeftStick, Direction: vinput.Vector{Y: 1}}},
	})

	m.Apply(held)
	pad := f.pads[0]
	require.NotNil(t, pad)
	assert.Equal(t, []string{"down 0x130", "left"}, pad.calls)
	assert.Equal(t, [2]float32{0, -1}, pad.left, "y points down on the device")

	m.Apply(held)
	assert.Len(t, pad.calls, 2)

	m.Apply(registryWith(vinput.JoystickInfo{
		Buttons: []vinput.ButtonInfo{{Controller: vinput.ButtonA}},
	}))
	assert.Equal(t, []string{"down 0x130", "left", "up 0x130", "left"}, pad.calls)
	assert.Empty(t, pad.held)
}

func TestApplyReleasesRemovedJoysticks(t *testing.T) {
	m, f := newTestMirror()
	js := vinput.JoystickInfo{Buttons: []vinput.ButtonInfo{{Controller: vinput.ButtonStart, Held: true}}}

	m.Apply(registryWith(js, js))
	require.Len(t, f.pads, 2)
	assert.True(t, f.pads[1].held[codeStart])

	m.Apply(registryWith(js))
	assert.True(t, f.pads[0].held[codeStart])
	assert.Empty(t, f.pads[1].held)
	assert.False(t, f.pads[1].closed)
}

func TestFactoryFailureIsNotRetried(t *testing.T) {
	m, f := newTestMirror()
	f.failAt = 0

	js := vinput.JoystickInfo{}
	m.Apply(registryWith(js))
	f.failAt = -1
	m.Apply(registryWith(js))
	assert.Empty(t, f.pads)
}

func TestRunClosesPads(t *testing.T) {
	m, f := newTestMirror()
	changes := make(chan vinput.RegistryInfo, 1)
	changes <- registryWith(vinput.JoystickInfo{})
	close(changes)

	done := make(chan struct{})
	go func() {
		m.Run(context.Background(), changes)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	require.Len(t, f.pads, 1)
	assert.True(t, f.pads[0].closed)
}
