package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// ButtonInput is a raw source of on/off state for a Button. Implementations
// must be comparable: a Button tracks the state of each source separately.
type ButtonInput interface {
	// Match reports whether e concerns this source.
	Match(e Event) bool
	// Pressed reports whether a matching event presses or releases it.
	Pressed(e Event) bool
}

// KeyPress is a single keyboard key.
type KeyPress struct {
	Key ebiten.Key
}

// Key is shorthand for KeyPress{k}.
func Key(k ebiten.Key) KeyPress {
	return KeyPress{Key: k}
}

// Keys converts keys into button sources.
func Keys(keys ...ebiten.Key) []ButtonInput {
	out := make([]ButtonInput, len(keys))
	for i, k := range keys {
		out[i] = KeyPress{Key: k}
	}
	return out
}

func (k KeyPress) Match(e Event) bool {
	return (e.Type == KeyDown || e.Type == KeyUp) && e.Key == k.Key
}

func (k KeyPress) Pressed(e Event) bool {
	return e.Type == KeyDown
}

// JoyButton is a button of a gamepad with a standard layout.
type JoyButton struct {
	Button ebiten.StandardGamepadButton
	Joy    ebiten.GamepadID
}

func (j JoyButton) Match(e Event) bool {
	return (e.Type == JoyButtonDown || e.Type == JoyButtonUp) &&
		e.Joy == j.Joy && e.Button == j.Button
}

func (j JoyButton) Pressed(e Event) bool {
	return e.Type == JoyButtonDown
}

// JoyAxisTrigger reads a gamepad axis as a button, for a stick pushed far
// enough in one direction. With Above set the button is down while the axis
// is above Threshold, otherwise while it is below.
//
// The analog triggers of a standard gamepad are buttons, not axes: read them
// with JoyButtonTrigger.
type JoyAxisTrigger struct {
	Axis      ebiten.StandardGamepadAxis
	Threshold float64
	Above     bool
	Joy       ebiten.GamepadID
}

// Trigger returns a JoyAxisTrigger pressed above 0.5.
func Trigger(axis ebiten.StandardGamepadAxis) JoyAxisTrigger {
	return JoyAxisTrigger{Axis: axis, Threshold: 0.5, Above: true}
}

func (j JoyAxisTrigger) Match(e Event) bool {
	return e.Type == JoyAxisMotion && e.Joy == j.Joy && e.Axis == j.Axis
}

func (j JoyAxisTrigger) Pressed(e Event) bool {
	return j.Above == (e.Value > j.Threshold)
}

// JoyButtonTrigger reads the analog value of a gamepad button, pressed while
// it is above Threshold.
type JoyButtonTrigger struct {
	Button    ebiten.StandardGamepadButton
	Threshold float64
	Joy       ebiten.GamepadID
}

// AnalogTrigger returns a JoyButtonTrigger pressed above 0.5, typically on
// StandardGamepadButtonFrontBottomLeft or StandardGamepadButtonFrontBottomRight.
func AnalogTrigger(b ebiten.StandardGamepadButton) JoyButtonTrigger {
	return JoyButtonTrigger{Button: b, Threshold: 0.5}
}

func (j JoyButtonTrigger) Match(e Event) bool {
	return e.Type == JoyButtonMotion && e.Joy == j.Joy && e.Button == j.Button
}

func (j JoyButtonTrigger) Pressed(e Event) bool {
	return e.Value > j.Threshold
}

// QuitEvent is pressed when the window is asked to close.
type QuitEvent struct{}

func (QuitEvent) Match(e Event) bool {
	return e.Type == Quit
}

func (QuitEvent) Pressed(Event) bool {
	return true
}

// JoyAxis is a continuous gamepad axis feeding an Axis.
type JoyAxis struct {
	Axis ebiten.StandardGamepadAxis
	// Reversed swaps the positive and negative directions.
	Reversed bool
	// Threshold is the dead zone: smaller magnitudes read as zero.
	Threshold float64
	// Sensibility multiplies the raw value, for sticks that do not reach ±1.
	Sensibility float64
	Joy         ebiten.GamepadID
}

// Stick returns a JoyAxis with a 0.2 dead zone and unit sensibility.
func Stick(axis ebiten.StandardGamepadAxis) JoyAxis {
	return JoyAxis{Axis: axis, Threshold: 0.2, Sensibility: 1}
}

func (j JoyAxis) Match(e Event) bool {
	return e.Type == JoyAxisMotion && e.Joy == j.Joy && e.Axis == j.Axis
}

// Value returns the reading of a matching event.
func (j JoyAxis) Value(e Event) float64 {
	if math.Abs(e.Value) < j.Threshold {
		return 0
	}

	scaled := e.Value * j.Sensibility
	if j.Reversed {
		return -scaled
	}
	return scaled
}
