package script

import "slices"

// Set holds the scripts of one owner, an entity or a state. The zero value
// is ready to use.
//
// Scripts are kept in registration order. Siblings must not rely on that
// order.
type Set struct {
	scripts  []Script
	advances int64
	// stops counts the calls to Stop.
	stops int64
}

// Add registers s. A script added while the set is advancing first runs on
// the following Advance.
func (s *Set) Add(sc Script) {
	if sc == nil {
		return
	}
	s.scripts = append(s.scripts, sc)
}

// Advance resumes every registered script once and drops the finished ones.
func (s *Set) Advance() {
	s.advances++

	// Scripts added during this advance sit after n. A script that stops
	// the whole set ends the advance: whatever was added since belongs to
	// the next one.
	n, stops := len(s.scripts), s.stops
	for i := 0; i < n; i++ {
		sc := s.scripts[i]
		if sc == nil {
			continue
		}
		done := sc.Resume()
		if s.stops != stops {
			break
		}
		if done {
			s.scripts[i] = nil
		}
	}
	s.scripts = slices.DeleteFunc(s.scripts, func(sc Script) bool { return sc == nil })
}

// Len returns the number of running scripts.
func (s *Set) Len() int {
	return len(s.scripts)
}

// Advances returns how many times Advance has been called.
func (s *Set) Advances() int64 {
	return s.advances
}

// Stop discards every script, releasing the ones that hold resources.
func (s *Set) Stop() {
	s.stops++
	for _, sc := range s.scripts {
		Stop(sc)
	}
	clear(s.scripts)
	s.scripts = s.scripts[:0]
}
