package world

// Commands buffers the structural changes requested while a State is
// running its frame. They are applied at the start of the next logic pass,
// so the entity collection never changes under an iteration.
type Commands struct {
	spawns []*Entity
	defers []func()
}

// Spawn queues the insertion of an entity.
func (c *Commands) Spawn(e *Entity) {
	c.spawns = append(c.spawns, e)
}

// Defer queues a function call.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending returns the number of queued entities.
func (c *Commands) Pending() int {
	return len(c.spawns)
}

// Flush inserts the queued entities into st, then runs the deferred calls.
// Commands queued by those calls wait for the next flush.
func (c *Commands) Flush(st *State) {
	spawns, defers := c.spawns, c.defers
	c.spawns, c.defers = nil, nil

	for _, e := range spawns {
		st.insert(e)
	}
	for _, fn := range defers {
		fn()
	}
}
