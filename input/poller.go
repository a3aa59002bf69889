package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// axisEpsilon is the smallest axis change reported as motion.
const axisEpsilon = 1e-3

// analogButtons are the buttons of the standard layout whose value is
// reported as JoyButtonMotion.
var analogButtons = []ebiten.StandardGamepadButton{
	ebiten.StandardGamepadButtonFrontBottomLeft,
	ebiten.StandardGamepadButtonFrontBottomRight,
}

// analogState is the last reported value of the axes and analog buttons of
// one gamepad.
type analogState struct {
	axes    []float64
	buttons []float64
}

// Poller converts ebiten's polled device state into the frame's event list.
// It must be polled once per ebiten Update, and only there.
type Poller struct {
	keys     []ebiten.Key
	gamepads []ebiten.GamepadID
	analog   map[ebiten.GamepadID]*analogState
	events   []Event
}

func NewPoller() *Poller {
	return &Poller{analog: make(map[ebiten.GamepadID]*analogState)}
}

// Poll returns the events of the current tick. The slice is reused by the
// next call.
func (p *Poller) Poll() []Event {
	p.events = p.events[:0]

	if ebiten.IsWindowBeingClosed() {
		p.events = append(p.events, CloseWindow())
	}

	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		p.events = append(p.events, PressKey(k))
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		p.events = append(p.events, ReleaseKey(k))
	}

	p.gamepads = ebiten.AppendGamepadIDs(p.gamepads[:0])
	for id := range p.analog {
		if inpututil.IsGamepadJustDisconnected(id) {
			delete(p.analog, id)
		}
	}
	for _, id := range p.gamepads {
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			p.pollGamepad(id)
		}
	}

	return p.events
}

func (p *Poller) pollGamepad(id ebiten.GamepadID) {
	for b := ebiten.StandardGamepadButton(0); b <= ebiten.StandardGamepadButtonMax; b++ {
		switch {
		case inpututil.IsStandardGamepadButtonJustPressed(id, b):
			p.events = append(p.events, PressJoyButton(id, b))
		case inpututil.IsStandardGamepadButtonJustReleased(id, b):
			p.events = append(p.events, ReleaseJoyButton(id, b))
		}
	}

	p.pollAnalog(id, ebiten.StandardGamepadAxisValue, ebiten.StandardGamepadButtonValue)
}

// pollAnalog appends a motion event for every axis and analog button of id
// whose value changed since the last poll.
func (p *Poller) pollAnalog(id ebiten.GamepadID,
	axis func(ebiten.GamepadID, ebiten.StandardGamepadAxis) float64,
	button func(ebiten.GamepadID, ebiten.StandardGamepadButton) float64,
) {
	last, ok := p.analog[id]
	if !ok {
		last = &analogState{
			axes:    make([]float64, ebiten.StandardGamepadAxisMax+1),
			buttons: make([]float64, len(analogButtons)),
		}
		p.analog[id] = last
	}

	for a := ebiten.StandardGamepadAxis(0); a <= ebiten.StandardGamepadAxisMax; a++ {
		v := axis(id, a)
		if math.Abs(v-last.axes[a]) > axisEpsilon {
			last.axes[a] = v
			p.events = append(p.events, MoveJoyAxis(id, a, v))
		}
	}
	for i, b := range analogButtons {
		v := button(id, b)
		if math.Abs(v-last.buttons[i]) > axisEpsilon {
			last.buttons[i] = v
			p.events = append(p.events, MoveJoyButton(id, b, v))
		}
	}
}
