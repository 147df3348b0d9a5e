package vinput

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonHoldCounters(t *testing.T) {
	in := newFakeInput(100 * time.Millisecond)
	b := NewButton()
	b.Key = "Space"
	f := Frame{Mode: ModeKeyboard, Input: in}

	in.keys["Space"] = true
	for i := 0; i < 3; i++ {
		require.True(t, b.Tick(f))
	}
	assert.Equal(t, uint(3), b.HeldTicks())
	assert.InDelta(t, 0.3, b.HeldSeconds(), 1e-9)
	assert.InDelta(t, 3, b.HoldTime(false), 1e-9)
	assert.InDelta(t, 0.3, b.HoldTime(true), 1e-9)

	in.keys["Space"] = false
	assert.False(t, b.Tick(f))
	assert.Equal(t, uint(0), b.HeldTicks())
	assert.Equal(t, 0.0, b.HeldSeconds())
}

func TestButtonResetsAfterTwoInactiveTicks(t *testing.T) {
	in := newFakeInput(16 * time.Millisecond)
	b := NewButton()
	b.Key = "KeyA"
	f := Frame{Mode: ModeKeyboard, Input: in}

	in.keys["KeyA"] = true
	b.Tick(f)
	b.Tick(f)
	in.keys["KeyA"] = false
	b.Tick(f)
	b.Tick(f)

	assert.Equal(t, uint(0), b.HeldTicks())
	assert.Equal(t, 0.0, b.HeldSeconds())
}

func TestButtonEdges(t *testing.T) {
	in := newFakeInput(time.Millisecond)
	b := NewButton()
	b.Key = "KeyZ"
	f := Frame{Mode: ModeKeyboard, Input: in}

	b.Tick(f)
	assert.False(t, b.Pressed())
	assert.False(t, b.Released())

	in.keys["KeyZ"] = true
	b.Tick(f)
	assert.True(t, b.Pressed())
	assert.True(t, b.IsHeld())

	b.Tick(f)
	assert.False(t, b.Pressed(), "pressed only on the first held tick")
	assert.True(t, b.IsHeld())

	in.keys["KeyZ"] = false
	b.Tick(f)
	assert.True(t, b.Released())
	assert.False(t, b.IsHeld())

	b.Tick(f)
	assert.False(t, b.Released())
}

func TestButtonControllerMode(t *testing.T) {
	in := newFakeInput(time.Millisecond)
	b := NewButton()
	b.Key = "KeyJ"
	b.Controller = ButtonB

	in.keys["KeyJ"] = true
	in.setButton(2, ButtonB, false)
	assert.False(t, b.Tick(Frame{Joystick: 2, Mode: ModeController, Input: in}),
		"keyboard state is ignored in controller mode")

	in.setButton(2, ButtonB, true)
	assert.True(t, b.Tick(Frame{Joystick: 2, Mode: ModeController, Input: in}))
	assert.False(t, b.Tick(Frame{Joystick: 1, Mode: ModeController, Input: in}),
		"reads only its own controller slot")
}

func TestUnboundButtonNeverHeld(t *testing.T) {
	in := newFakeInput(time.Millisecond)
	in.keys[KeyNone] = true
	in.setButton(0, ControllerButtonNone, true)

	b := NewButton()
	for _, m := range []Mode{ModeKeyboard, ModeController} {
		assert.False(t, b.Tick(Frame{Mode: m, Input: in}), m.String())
	}
	assert.False(t, b.Tick(Frame{Mode: ModeKeyboard}), "nil input")
}

func TestNilButton(t *testing.T) {
	var b *Button
	assert.False(t, b.IsHeld())
	assert.False(t, b.Pressed())
	assert.False(t, b.Released())
	assert.Zero(t, b.HeldTicks())
	assert.Zero(t, b.HoldTime(true))
	assert.Equal(t, ControllerButtonNone, b.Info().Controller)
}
