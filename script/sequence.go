package script

// Step is one instruction of a Sequence. A step that finishes without
// waiting (Do, a satisfied Until, a finished Repeat) lets the sequence move
// on within the same frame; a step that waited hands the rest of the
// sequence to the next frame.
type Step interface {
	reset()
	run() (over bool, instant bool)
}

type waitStep struct {
	frames int
	left   int
}

// Wait holds the sequence for n frames.
func Wait(n int) Step {
	return &waitStep{frames: n, left: n}
}

func (w *waitStep) reset() { w.left = w.frames }

func (w *waitStep) run() (bool, bool) {
	if w.left <= 0 {
		return true, true
	}
	w.left--
	return w.left <= 0, false
}

type doStep struct {
	fn func()
}

// Do calls fn and moves on in the same frame.
func Do(fn func()) Step {
	return &doStep{fn: fn}
}

func (d *doStep) reset() {}

func (d *doStep) run() (bool, bool) {
	d.fn()
	return true, true
}

type untilStep struct {
	cond func() bool
}

// Until holds the sequence until cond holds. A condition that already holds
// does not consume a frame.
func Until(cond func() bool) Step {
	return &untilStep{cond: cond}
}

func (u *untilStep) reset() {}

func (u *untilStep) run() (bool, bool) {
	if u.cond() {
		return true, true
	}
	return false, false
}

type loopStep struct {
	times int // < 0 loops forever
	count int
	body  *Seq
}

// Repeat runs steps n times in a row.
func Repeat(n int, steps ...Step) Step {
	return &loopStep{times: n, body: Sequence(steps...)}
}

// Forever runs steps in a loop. The enclosing sequence never finishes.
func Forever(steps ...Step) Step {
	return &loopStep{times: -1, body: Sequence(steps...)}
}

func (l *loopStep) reset() {
	l.count = 0
	l.body.Reset()
}

func (l *loopStep) run() (bool, bool) {
	for l.times < 0 || l.count < l.times {
		fresh := !l.body.touched
		if !l.body.Resume() {
			return false, false
		}
		l.count++
		l.body.Reset()
		if fresh && l.times < 0 {
			// The whole body ran without suspending. Looping again now
			// would never leave this frame.
			return false, false
		}
	}
	return true, true
}

// Seq is a small interpreted program of timed steps, advanced one frame per
// Resume.
type Seq struct {
	steps   []Step
	pc      int
	touched bool
}

// Sequence builds a script running steps one after the other.
func Sequence(steps ...Step) *Seq {
	return &Seq{steps: steps}
}

// Resume runs steps until one of them needs another frame.
func (s *Seq) Resume() bool {
	s.touched = true
	for s.pc < len(s.steps) {
		over, instant := s.steps[s.pc].run()
		if !over {
			return false
		}
		s.pc++
		if !instant {
			return false
		}
	}
	return true
}

// Reset rewinds the sequence to its first step.
func (s *Seq) Reset() {
	s.pc = 0
	s.touched = false
	for _, st := range s.steps {
		st.reset()
	}
}
