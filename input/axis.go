package input

import (
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flyre/vec"
)

// DefaultSmooth is how long, in seconds, a key-driven Axis takes to reach
// ±1.
const DefaultSmooth = 0.1

type axisCallback struct {
	id CallbackID
	fn func(a *Axis)
}

// Axis is a logical control with a value in [-1, 1]. Keys move it with
// smoothing, gamepad axes set it directly; the two contributions add up.
type Axis struct {
	negative []KeyPress
	positive []KeyPress
	keyDown  map[KeyPress]bool
	axes     []JoyAxis

	// Smooth is the time a held key takes to bring the value to ±1. Zero or
	// less makes keys act instantly.
	Smooth float64

	NonZeroTime float64
	ZeroTime    float64

	intValue  int
	keyValue  float64
	axisValue float64

	callbacks []axisCallback
	nextID    CallbackID
}

func NewAxis(negative, positive []ebiten.Key, axes ...JoyAxis) *Axis {
	a := &Axis{
		keyDown: make(map[KeyPress]bool, len(negative)+len(positive)),
		axes:    axes,
		Smooth:  DefaultSmooth,
	}
	for _, k := range negative {
		a.negative = append(a.negative, KeyPress{Key: k})
	}
	for _, k := range positive {
		a.positive = append(a.positive, KeyPress{Key: k})
	}
	return a
}

// Value is the combined key and gamepad reading.
func (a *Axis) Value() float64 {
	return vec.Clamp(a.keyValue+a.axisValue, -1, 1)
}

func (a *Axis) Actualise(events []Event) {
	axisValue := 0.0
	anyAxis := false

	for _, e := range events {
		for _, k := range a.positive {
			if k.Match(e) {
				a.keyDown[k] = k.Pressed(e)
			}
		}
		for _, k := range a.negative {
			if k.Match(e) {
				a.keyDown[k] = k.Pressed(e)
			}
		}
		for _, ax := range a.axes {
			if ax.Match(e) {
				// Several sticks on one axis: the most extreme wins.
				if v := ax.Value(e); math.Abs(v) > math.Abs(axisValue) {
					axisValue = v
				}
				anyAxis = true
			}
		}
	}

	a.intValue = 0
	for _, k := range a.positive {
		if a.keyDown[k] {
			a.intValue++
		}
	}
	for _, k := range a.negative {
		if a.keyDown[k] {
			a.intValue--
		}
	}
	if anyAxis {
		a.axisValue = axisValue
	}
}

func (a *Axis) Update(dt float64) {
	if a.intValue != 0 {
		a.NonZeroTime += dt
		a.ZeroTime = 0
	} else {
		a.NonZeroTime = 0
		a.ZeroTime += dt
	}

	if a.Smooth <= 0 {
		a.keyValue = float64(a.intValue)
	} else {
		dv := dt / a.Smooth
		switch {
		case a.intValue > 0:
			a.keyValue += dv
		case a.intValue < 0:
			a.keyValue -= dv
		default:
			if a.keyValue > 0 {
				a.keyValue -= dv
			} else {
				a.keyValue += dv
			}
			if math.Abs(a.keyValue) <= dv {
				a.keyValue = 0
			}
		}
	}
	a.keyValue = vec.Clamp(a.keyValue, -1, 1)

	for _, cb := range slices.Clone(a.callbacks) {
		cb.fn(a)
	}
}

// Always calls fn on every update.
func (a *Axis) Always(fn func(a *Axis)) CallbackID {
	a.nextID++
	a.callbacks = append(a.callbacks, axisCallback{id: a.nextID, fn: fn})
	return a.nextID
}

func (a *Axis) Remove(id CallbackID) {
	a.callbacks = slices.DeleteFunc(a.callbacks, func(cb axisCallback) bool {
		return cb.id == id
	})
}
