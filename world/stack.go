package world

import (
	"errors"
	"log"
)

// ErrNoState is returned when a push or replace carries no state.
var ErrNoState = errors.New("transition to a nil state")

// Stack is the ordered set of states of the application. Only the top
// state runs; an empty stack means the application is over.
type Stack struct {
	states []*State
}

// NewStack pushes and resumes initial.
func NewStack(initial *State) (*Stack, error) {
	if initial == nil {
		return nil, ErrNoState
	}
	s := &Stack{states: []*State{initial}}
	if err := initial.OnResume(); err != nil {
		return nil, err
	}
	return s, nil
}

// Top is the running state, nil once the stack is empty.
func (s *Stack) Top() *State {
	if len(s.states) == 0 {
		return nil
	}
	return s.states[len(s.states)-1]
}

func (s *Stack) Running() bool {
	return len(s.states) > 0
}

func (s *Stack) Len() int {
	return len(s.states)
}

// States returns the stack from bottom to top.
func (s *Stack) States() []*State {
	return s.states
}

// Apply performs the transition requested by the top state during its
// frame, if any. It must be called after the frame is drawn.
func (s *Stack) Apply() error {
	top := s.Top()
	if top == nil {
		return nil
	}

	o, next := top.takeTransition()
	switch o {
	case opNone:
		return nil

	case opPop:
		top.OnExit()
		s.states[len(s.states)-1] = nil
		s.states = s.states[:len(s.states)-1]
		top.close()
		log.Printf("[Stack] pop %s (%d left)", top, len(s.states))
		if below := s.Top(); below != nil {
			return below.OnResume()
		}
		return nil

	case opPush:
		if next == nil {
			return ErrNoState
		}
		top.OnExit()
		s.states = append(s.states, next)
		log.Printf("[Stack] push %s over %s", next, top)
		return next.OnResume()

	case opReplace:
		if next == nil {
			return ErrNoState
		}
		top.OnExit()
		s.states[len(s.states)-1] = next
		top.close()
		log.Printf("[Stack] replace %s with %s", top, next)
		return next.OnResume()
	}
	return nil
}
