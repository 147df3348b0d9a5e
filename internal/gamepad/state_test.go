package gamepad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soar/virtualinput/internal/vinput"
)

type fakeDevice struct {
	axes    map[int32]int16
	buttons map[int32]bool
	nbtn    int32
	hat     uint8
	hasHat  bool
}

func (d *fakeDevice) Axis(i int32) int16  { return d.axes[i] }
func (d *fakeDevice) Button(i int32) bool { return d.buttons[i] }
func (d *fakeDevice) NumButtons() int32   { return d.nbtn }
func (d *fakeDevice) Hat(int32) uint8     { return d.hat }

func (d *fakeDevice) NumHats() int32 {
	if d.hasHat {
		return 1
	}
	return 0
}

func TestNormalizeAxis(t *testing.T) {
	assert.Equal(t, 1.0, NormalizeAxis(math.MaxInt16))
	assert.Equal(t, -1.0, NormalizeAxis(math.MinInt16))
	assert.Equal(t, 0.0, NormalizeAxis(0))
}

func TestNormalizeTrigger(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeTrigger(-32768, -32768, 32767))
	assert.Equal(t, 1.0, NormalizeTrigger(32767, -32768, 32767))
	assert.Equal(t, 0.0, NormalizeTrigger(-100, 0, 32767))
	assert.Equal(t, 0.0, NormalizeTrigger(5, 3, 3))
}

func TestApplyDeadzone(t *testing.T) {
	assert.Equal(t, 0.0, ApplyDeadzone(0.04, DefaultDeadzone))
	assert.Equal(t, -0.04, ApplyDeadzone(-0.04, 0.01))
}

func TestGetMapping(t *testing.T) {
	assert.Equal(t, "xbox", GetMapping(0x045E, 0x02FF).Name)
	assert.Equal(t, "playstation", GetMapping(0x054C, 0x0CE6).Name)
	assert.Equal(t, "generic", GetMapping(0x1234, 0x5678).Name)
}

func TestReadStateXbox(t *testing.T) {
	dev := &fakeDevice{
		axes: map[int32]int16{
			0: math.MaxInt16, // left x full right
			1: math.MaxInt16, // left y full down (inverted)
			2: 100,           // inside deadzone
			4: 32767,         // LT fully pressed
			5: -32768,        // RT released
		},
		buttons: map[int32]bool{0: true, 7: true, 8: true},
		nbtn:    11,
		hasHat:  true,
		hat:     hatUp | hatLeft,
	}

	s := readState(dev, xboxMapping, DefaultDeadzone)

	assert.True(t, s.Connected)
	assert.Equal(t, "xbox", s.ControllerType)
	assert.Equal(t, 1.0, s.Axis(vinput.AxisLeftStickX))
	assert.Equal(t, -1.0, s.Axis(vinput.AxisLeftStickY))
	assert.Equal(t, 0.0, s.Axis(vinput.AxisRightStickX))
	assert.Equal(t, 1.0, s.Axis(vinput.AxisLeftTrigger))
	assert.Equal(t, 0.0, s.Axis(vinput.AxisRightTrigger))
	assert.Equal(t, 1.0, s.Axis(vinput.AxisTriggers))
	assert.Equal(t, -1.0, s.Axis(vinput.AxisDPadX))
	assert.Equal(t, 1.0, s.Axis(vinput.AxisDPadY))

	assert.True(t, s.Button(vinput.ButtonA))
	assert.True(t, s.Button(vinput.ButtonStart))
	assert.True(t, s.Button(vinput.ButtonLeftStickClick))
	assert.False(t, s.Button(vinput.ButtonB))
	assert.False(t, s.Button(vinput.ControllerButtonNone))
	assert.Equal(t, 0.0, s.Axis(vinput.ControllerAxisNone))
}

func TestReadStateSkipsMissingButtons(t *testing.T) {
	dev := &fakeDevice{
		buttons: map[int32]bool{9: true},
		nbtn:    4,
	}
	s := readState(dev, genericMapping, DefaultDeadzone)
	assert.False(t, s.Button(vinput.ButtonRightStickClick))
	assert.Equal(t, 0.0, s.Axis(vinput.AxisDPadY))
}

func TestReadStatePlayStationLayout(t *testing.T) {
	dev := &fakeDevice{
		buttons: map[int32]bool{9: true, 6: true},
		nbtn:    15,
	}
	s := readState(dev, playstationMapping, DefaultDeadzone)
	assert.True(t, s.Button(vinput.ButtonLeftBumper))
	assert.True(t, s.Button(vinput.ButtonStart))
	assert.False(t, s.Button(vinput.ButtonRightStickClick))
}
