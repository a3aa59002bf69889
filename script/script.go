// Package script runs sequential, multi-frame behaviours cooperatively.
//
// A Script is resumed exactly once per frame by the Set it is registered in.
// Everything a script does between two suspension points happens inside a
// single frame. Finishing is not an error: a finished script is silently
// dropped from its Set.
package script

// Script is a resumable unit of behaviour.
type Script interface {
	// Resume runs the script until its next suspension point and reports
	// whether it has finished.
	Resume() (done bool)
}

// Stopper is implemented by scripts holding resources that must be
// released when their owner is destroyed before they finish.
type Stopper interface {
	Stop()
}

// Func adapts a step function to Script. The function is called once per
// frame until it returns true.
type Func func() (done bool)

func (f Func) Resume() bool {
	return f()
}

// Once runs fn on the next frame and finishes.
func Once(fn func()) Script {
	return Func(func() bool {
		fn()
		return true
	})
}

// Later runs fn after waiting frames frames. Later(0, fn) behaves like Once.
func Later(frames int, fn func()) Script {
	return Sequence(Wait(frames), Do(fn))
}

// Stop releases s if it holds resources.
func Stop(s Script) {
	if st, ok := s.(Stopper); ok {
		st.Stop()
	}
}
