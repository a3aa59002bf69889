package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

type fakePad struct {
	axes    map[ebiten.StandardGamepadAxis]float64
	buttons map[ebiten.StandardGamepadButton]float64
}

func (f *fakePad) axis(_ ebiten.GamepadID, a ebiten.StandardGamepadAxis) float64 {
	return f.axes[a]
}

func (f *fakePad) button(_ ebiten.GamepadID, b ebiten.StandardGamepadButton) float64 {
	return f.buttons[b]
}

func TestPollAnalogReportsChanges(t *testing.T) {
	p := NewPoller()
	pad := &fakePad{
		axes:    map[ebiten.StandardGamepadAxis]float64{},
		buttons: map[ebiten.StandardGamepadButton]float64{},
	}
	poll := func() []Event {
		p.events = p.events[:0]
		p.pollAnalog(1, pad.axis, pad.button)
		return p.events
	}

	assert.Empty(t, poll(), "a resting gamepad reports nothing")

	pad.axes[ebiten.StandardGamepadAxisLeftStickHorizontal] = -0.5
	pad.buttons[ebiten.StandardGamepadButtonFrontBottomRight] = 0.75
	pad.buttons[ebiten.StandardGamepadButtonRightBottom] = 1
	assert.Equal(t, []Event{
		MoveJoyAxis(1, ebiten.StandardGamepadAxisLeftStickHorizontal, -0.5),
		MoveJoyButton(1, ebiten.StandardGamepadButtonFrontBottomRight, 0.75),
	}, poll())

	assert.Empty(t, poll(), "unchanged values are not repeated")

	pad.buttons[ebiten.StandardGamepadButtonFrontBottomRight] = 0.7505
	assert.Empty(t, poll(), "changes below the epsilon are ignored")

	pad.buttons[ebiten.StandardGamepadButtonFrontBottomRight] = 0
	assert.Equal(t, []Event{MoveJoyButton(1, ebiten.StandardGamepadButtonFrontBottomRight, 0)}, poll())
}
