package script

import "iter"

// stopped unwinds a coroutine body whose script was stopped.
type stopped struct{}

// Yield is handed to a coroutine body. Every method that suspends returns
// control to the Set and continues on a later frame.
type Yield struct {
	yield func(struct{}) bool
}

// Frame suspends until the next frame.
func (y *Yield) Frame() {
	if !y.yield(struct{}{}) {
		panic(stopped{})
	}
}

// Wait suspends for n frames.
func (y *Yield) Wait(n int) {
	for range n {
		y.Frame()
	}
}

// Until suspends until cond holds. cond is checked before each suspension,
// so a condition that already holds does not consume a frame.
func (y *Yield) Until(cond func() bool) {
	for !cond() {
		y.Frame()
	}
}

// While suspends as long as cond holds.
func (y *Yield) While(cond func() bool) {
	for cond() {
		y.Frame()
	}
}

// Run drives sub to completion, one resume per frame. The frame on which
// sub finishes is shared with the code following Run. Stopping the calling
// coroutine stops sub as well.
func (y *Yield) Run(sub Script) {
	finished := false
	defer func() {
		if !finished {
			Stop(sub)
		}
	}()
	for !sub.Resume() {
		y.Frame()
	}
	finished = true
}

// Coroutine is a Script whose body is ordinary sequential code. The body
// runs on a pull-iterator coroutine: control switches between the Set and
// the body synchronously and never in parallel.
type Coroutine struct {
	next func() (struct{}, bool)
	stop func()
	done bool
}

// NewCoroutine wraps body. The body does not start before the first Resume.
func NewCoroutine(body func(y *Yield)) *Coroutine {
	seq := func(yield func(struct{}) bool) {
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(stopped); !ok {
					panic(r)
				}
			}
		}()
		body(&Yield{yield: yield})
	}

	next, stop := iter.Pull(iter.Seq[struct{}](seq))
	return &Coroutine{next: next, stop: stop}
}

// Resume runs the body until its next suspension point.
func (c *Coroutine) Resume() bool {
	if c.done {
		return true
	}
	if _, ok := c.next(); !ok {
		c.done = true
		c.stop()
	}
	return c.done
}

// Stop abandons the body. It unwinds from its current suspension point
// without running the rest of its code; deferred calls in the body do run.
func (c *Coroutine) Stop() {
	if c.done {
		return
	}
	c.done = true
	c.stop()
}

// Done reports whether the body has returned or was stopped.
func (c *Coroutine) Done() bool {
	return c.done
}
