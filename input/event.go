// Package input turns the raw device events of a frame into logical
// controls: Buttons, which know about presses, releases, double presses and
// held repeats, and Axes, which give a smoothed value in [-1, 1].
//
// Raw events are produced once per frame by a Poller (or by tests) and fed
// as a batch to Inputs.Trigger, the only consumer of device events.
package input

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// EventType tells which device change an Event describes.
type EventType int

const (
	KeyDown EventType = iota + 1
	KeyUp
	JoyButtonDown
	JoyButtonUp
	JoyAxisMotion
	Quit
	// JoyButtonMotion is a change of an analog button, such as the
	// triggers of a standard gamepad.
	JoyButtonMotion
)

func (t EventType) String() string {
	switch t {
	case KeyDown:
		return "KeyDown"
	case KeyUp:
		return "KeyUp"
	case JoyButtonDown:
		return "JoyButtonDown"
	case JoyButtonUp:
		return "JoyButtonUp"
	case JoyAxisMotion:
		return "JoyAxisMotion"
	case Quit:
		return "Quit"
	case JoyButtonMotion:
		return "JoyButtonMotion"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is one discrete device event. Only the fields relevant to Type are
// set.
type Event struct {
	Type   EventType
	Key    ebiten.Key
	Joy    ebiten.GamepadID
	Button ebiten.StandardGamepadButton
	Axis   ebiten.StandardGamepadAxis
	Value  float64
}

func PressKey(k ebiten.Key) Event {
	return Event{Type: KeyDown, Key: k}
}

func ReleaseKey(k ebiten.Key) Event {
	return Event{Type: KeyUp, Key: k}
}

func PressJoyButton(joy ebiten.GamepadID, b ebiten.StandardGamepadButton) Event {
	return Event{Type: JoyButtonDown, Joy: joy, Button: b}
}

func ReleaseJoyButton(joy ebiten.GamepadID, b ebiten.StandardGamepadButton) Event {
	return Event{Type: JoyButtonUp, Joy: joy, Button: b}
}

func MoveJoyAxis(joy ebiten.GamepadID, axis ebiten.StandardGamepadAxis, value float64) Event {
	return Event{Type: JoyAxisMotion, Joy: joy, Axis: axis, Value: value}
}

// MoveJoyButton reports the analog value of b, between 0 and 1.
func MoveJoyButton(joy ebiten.GamepadID, b ebiten.StandardGamepadButton, value float64) Event {
	return Event{Type: JoyButtonMotion, Joy: joy, Button: b, Value: value}
}

func CloseWindow() Event {
	return Event{Type: Quit}
}
