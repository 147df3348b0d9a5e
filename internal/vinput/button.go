package vinput

// Button maps one logical input to a keyboard key or a controller button.
//
// A nil *Button is a valid "absent" button: it is never held and all of its
// counters read zero.
type Button struct {
	Key        Key
	Controller ControllerButton

	held        bool
	wasHeld     bool
	heldTicks   uint
	heldSeconds float64
}

// NewButton returns an unbound button.
func NewButton() *Button {
	return &Button{Controller: ControllerButtonNone}
}

// Tick samples the bound input for this frame and updates the hold counters.
func (b *Button) Tick(f Frame) bool {
	b.wasHeld = b.held

	if f.Mode == ModeController {
		b.held = f.buttonDown(b.Controller)
	} else {
		b.held = f.keyDown(b.Key)
	}

	if b.held {
		b.heldTicks++
		b.heldSeconds += f.elapsed()
	} else {
		b.heldTicks = 0
		b.heldSeconds = 0
	}
	return b.held
}

// clear drops all runtime state without producing a release edge.
func (b *Button) clear() {
	b.held = false
	b.wasHeld = false
	b.heldTicks = 0
	b.heldSeconds = 0
}

func (b *Button) IsHeld() bool {
	return b != nil && b.held
}

// Pressed is true on the tick the button went down.
func (b *Button) Pressed() bool {
	return b != nil && b.held && !b.wasHeld
}

// Released is true on the tick the button came up.
func (b *Button) Released() bool {
	return b != nil && !b.held && b.wasHeld
}

func (b *Button) HeldTicks() uint {
	if b == nil {
		return 0
	}
	return b.heldTicks
}

func (b *Button) HeldSeconds() float64 {
	if b == nil {
		return 0
	}
	return b.heldSeconds
}

// HoldTime returns how long the button has been held, in seconds or in ticks.
func (b *Button) HoldTime(inSeconds bool) float64 {
	if inSeconds {
		return b.HeldSeconds()
	}
	return float64(b.HeldTicks())
}

// Info returns a copy of the button's bindings and state.
func (b *Button) Info() ButtonInfo {
	if b == nil {
		return ButtonInfo{Controller: ControllerButtonNone}
	}
	return ButtonInfo{
		Key:         b.Key,
		Controller:  b.Controller,
		Held:        b.held,
		Pressed:     b.Pressed(),
		Released:    b.Released(),
		HeldTicks:   b.heldTicks,
		HeldSeconds: b.heldSeconds,
	}
}
