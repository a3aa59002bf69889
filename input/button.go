package input

import (
	"math"
	"slices"
)

// DefaultDoublePressWindow is the longest release-to-press gap, in seconds,
// for a press to count as a double press.
const DefaultDoublePressWindow = 0.1

// CallbackID identifies a registered callback for removal.
type CallbackID uint64

type callbackKind int

const (
	always callbackKind = iota
	onPress
	onRelease
	onDoublePress
	onRepeat
)

type callback struct {
	id   CallbackID
	kind callbackKind
	fn   func(b *Button)

	// Held repeats only.
	delay       float64
	repetitions int
}

// Button is a logical on/off control backed by any number of sources. It is
// down while at least one source is down.
type Button struct {
	sources []ButtonInput
	down    map[ButtonInput]bool

	justPressed       bool
	justReleased      bool
	justDoublePressed bool

	pressTime    float64
	sinceRelease float64

	// DoublePressWindow overrides DefaultDoublePressWindow for this button.
	DoublePressWindow float64

	callbacks []*callback
	nextID    CallbackID
}

func NewButton(sources ...ButtonInput) *Button {
	return &Button{
		sources:           sources,
		down:              make(map[ButtonInput]bool, len(sources)),
		sinceRelease:      math.Inf(1),
		DoublePressWindow: DefaultDoublePressWindow,
	}
}

// Pressed reports whether any source is currently down.
func (b *Button) Pressed() bool {
	for _, d := range b.down {
		if d {
			return true
		}
	}
	return false
}

// JustPressed reports whether the button went down during the last
// Actualise.
func (b *Button) JustPressed() bool { return b.justPressed }

// JustReleased reports whether the button went up during the last Actualise.
func (b *Button) JustReleased() bool { return b.justReleased }

// JustDoublePressed reports whether the last press followed a release by
// less than DoublePressWindow.
func (b *Button) JustDoublePressed() bool { return b.justDoublePressed }

// PressTime is how long the button has been held, in seconds. It keeps its
// last value after a release.
func (b *Button) PressTime() float64 { return b.pressTime }

// SinceRelease is the time elapsed since the last release, +Inf if the
// button was never released.
func (b *Button) SinceRelease() float64 { return b.sinceRelease }

// Actualise folds the frame's events into the button state.
func (b *Button) Actualise(events []Event) {
	wasDown := b.Pressed()
	b.justPressed, b.justReleased, b.justDoublePressed = false, false, false

	for _, e := range events {
		for _, src := range b.sources {
			if src.Match(e) {
				b.down[src] = src.Pressed(e)
			}
		}
	}

	isDown := b.Pressed()
	switch {
	case isDown && !wasDown:
		b.justPressed = true
		b.justDoublePressed = b.sinceRelease < b.DoublePressWindow
		b.pressTime = 0
	case !isDown && wasDown:
		b.justReleased = true
		b.sinceRelease = 0
		for _, cb := range b.callbacks {
			cb.repetitions = 0
		}
	}
}

// Update advances the timers by dt seconds and fires the callbacks.
func (b *Button) Update(dt float64) {
	pressed := b.Pressed()
	if pressed {
		b.pressTime += dt
	} else {
		b.sinceRelease += dt
	}

	// Callbacks may register or remove callbacks.
	for _, cb := range slices.Clone(b.callbacks) {
		switch cb.kind {
		case always:
			cb.fn(b)
		case onPress:
			if b.justPressed {
				cb.fn(b)
			}
		case onRelease:
			if b.justReleased {
				cb.fn(b)
			}
		case onDoublePress:
			if b.justDoublePressed {
				cb.fn(b)
			}
		case onRepeat:
			if pressed && cb.delay*float64(cb.repetitions) <= b.pressTime {
				cb.repetitions++
				cb.fn(b)
			}
		}
	}
}

func (b *Button) register(cb *callback) CallbackID {
	b.nextID++
	cb.id = b.nextID
	b.callbacks = append(b.callbacks, cb)
	return cb.id
}

// Always calls fn on every update.
func (b *Button) Always(fn func(b *Button)) CallbackID {
	return b.register(&callback{kind: always, fn: fn})
}

func (b *Button) OnPress(fn func(b *Button)) CallbackID {
	return b.register(&callback{kind: onPress, fn: fn})
}

func (b *Button) OnRelease(fn func(b *Button)) CallbackID {
	return b.register(&callback{kind: onRelease, fn: fn})
}

func (b *Button) OnDoublePress(fn func(b *Button)) CallbackID {
	return b.register(&callback{kind: onDoublePress, fn: fn})
}

// OnPressRepeated calls fn when the button goes down, then every delay
// seconds for as long as it is held.
func (b *Button) OnPressRepeated(delay float64, fn func(b *Button)) CallbackID {
	return b.register(&callback{kind: onRepeat, fn: fn, delay: delay})
}

// Remove unregisters a callback. Unknown ids are ignored.
func (b *Button) Remove(id CallbackID) {
	b.callbacks = slices.DeleteFunc(b.callbacks, func(cb *callback) bool {
		return cb.id == id
	})
}
