package input

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrConflict is returned when two controls are registered under one name.
var ErrConflict = errors.New("input name conflict")

// Control is a logical control driven by Inputs: a *Button, an *Axis or
// anything else that consumes the frame's events.
type Control interface {
	// Actualise folds the frame's events into the control state.
	Actualise(events []Event)
	// Update advances timers by dt seconds and fires callbacks.
	Update(dt float64)
}

// Clock returns the current time. Inputs measure frame durations with it.
type Clock func() time.Time

// Inputs is a named set of controls, triggered together once per frame.
type Inputs struct {
	names    []string
	controls map[string]Control
	clock    Clock
	last     time.Time
}

// NewInputs returns an empty set using the wall clock.
func NewInputs() *Inputs {
	return NewInputsWithClock(time.Now)
}

func NewInputsWithClock(clock Clock) *Inputs {
	return &Inputs{
		controls: make(map[string]Control),
		clock:    clock,
		last:     clock(),
	}
}

// Set registers c under name.
func (in *Inputs) Set(name string, c Control) error {
	if _, ok := in.controls[name]; ok {
		return fmt.Errorf("%w: %q", ErrConflict, name)
	}
	in.names = append(in.names, name)
	in.controls[name] = c
	return nil
}

// MustSet is Set for fixed sets of names known to be distinct.
func (in *Inputs) MustSet(name string, c Control) {
	if err := in.Set(name, c); err != nil {
		panic(err)
	}
}

// Merge adds every control of other. Nothing is added if any name is
// already taken.
func (in *Inputs) Merge(other *Inputs) error {
	if other == nil {
		return nil
	}
	for _, name := range other.names {
		if _, ok := in.controls[name]; ok {
			return fmt.Errorf("%w: %q", ErrConflict, name)
		}
	}
	for _, name := range other.names {
		in.names = append(in.names, name)
		in.controls[name] = other.controls[name]
	}
	return nil
}

func (in *Inputs) Get(name string) (Control, bool) {
	c, ok := in.controls[name]
	return c, ok
}

// Button returns the button registered under name, or nil.
func (in *Inputs) Button(name string) *Button {
	b, _ := in.controls[name].(*Button)
	return b
}

// Axis returns the axis registered under name, or nil.
func (in *Inputs) Axis(name string) *Axis {
	a, _ := in.controls[name].(*Axis)
	return a
}

// Names lists the registered names in registration order.
func (in *Inputs) Names() []string {
	return slices.Clone(in.names)
}

func (in *Inputs) Len() int {
	return len(in.names)
}

// Trigger actualises every control with events, then updates them all with
// the time elapsed since the previous Trigger.
func (in *Inputs) Trigger(events []Event) {
	for _, name := range in.names {
		in.controls[name].Actualise(events)
	}

	now := in.clock()
	dt := now.Sub(in.last).Seconds()
	in.last = now

	for _, name := range in.names {
		in.controls[name].Update(dt)
	}
}
