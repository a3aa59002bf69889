// Package world holds the simulation itself: entities, the State that owns
// and ticks them, and the Stack of states the application runs.
//
// A frame of the top State is HandleInput, Logic then Draw, after which the
// Stack applies the transition the State may have requested.
package world

import (
	"fmt"
	"image/color"

	"github.com/plus3/flyre/gfx"
	"github.com/plus3/flyre/input"
	"github.com/plus3/flyre/script"
	"github.com/plus3/flyre/vec"
)

// EntityID identifies an entity within its State. IDs are never reused by a
// State.
type EntityID uint64

// Kind is the behavior shared by every entity of one type. All hooks are
// optional.
type Kind struct {
	Name string

	// Update runs every frame after motion and scripts.
	Update func(e *Entity)
	Draw   func(e *Entity, s gfx.Surface)
	// Sprite is drawn by entities of the kind when Draw is nil.
	Sprite *Sprite
	// OnDeath runs once, on the frame the entity is removed from its State.
	OnDeath func(e *Entity, st *State)
	// Resize is called when the window size changes. It must only affect
	// presentation.
	Resize func(e *Entity, old, new vec.Vec2)
	// Inputs returns the controls of the entity, merged into the State's
	// when it resumes.
	Inputs func(e *Entity) *input.Inputs
}

func (k *Kind) String() string {
	if k == nil || k.Name == "" {
		return "entity"
	}
	return k.Name
}

// Entity is anything living in a State: ships, bullets, labels, spawners.
type Entity struct {
	Pos      vec.Vec2
	Size     vec.Vec2
	Vel      vec.Vec2
	Rotation float64
	Z        int

	Kind *Kind
	// Health is nil for entities that cannot be hurt.
	Health *Health
	// Data is the kind-specific payload.
	Data any

	id      EntityID
	added   bool
	state   *State
	dead    bool
	scripts script.Set

	debugColor color.NRGBA
}

func NewEntity(kind *Kind, pos, size vec.Vec2) *Entity {
	return &Entity{Kind: kind, Pos: pos, Size: size}
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s#%d(at %.1f, %.1f)", e.Kind, e.id, e.Pos.X, e.Pos.Y)
}

// ID is assigned when the entity is added to a State.
func (e *Entity) ID() EntityID {
	return e.id
}

// State is the owner of the entity, nil until it is inserted.
func (e *Entity) State() *State {
	return e.state
}

func (e *Entity) Alive() bool {
	return !e.dead
}

// MarkDead schedules the removal of the entity at the end of the frame.
// There is no way back.
func (e *Entity) MarkDead() {
	e.dead = true
}

func (e *Entity) Center() vec.Vec2 {
	return e.Pos.Add(e.Size.Scale(0.5))
}

func (e *Entity) SetCenter(c vec.Vec2) {
	e.Pos = c.Sub(e.Size.Scale(0.5))
}

func (e *Entity) Rect() vec.Rect {
	return vec.Rect{Pos: e.Pos, Size: e.Size}
}

// AddScript runs s once per frame, as part of Update, until it finishes.
func (e *Entity) AddScript(s script.Script) script.Script {
	e.scripts.Add(s)
	return s
}

// Do runs body as a coroutine script of the entity.
func (e *Entity) Do(body func(y *script.Yield)) *script.Coroutine {
	co := script.NewCoroutine(body)
	e.scripts.Add(co)
	return co
}

// DoLater calls fn frames frames from now.
func (e *Entity) DoLater(frames int, fn func()) {
	e.scripts.Add(script.Later(frames, fn))
}

// WaitUntilDead is a script that finishes once the entity is dead. Other
// scripts run it to wait for this entity.
func (e *Entity) WaitUntilDead() script.Script {
	return script.Func(func() bool {
		return e.dead
	})
}

// Scripts returns the number of running scripts.
func (e *Entity) Scripts() int {
	return e.scripts.Len()
}

// Update advances the entity one frame: motion, scripts, then the kind's
// Update. An entity out of life is marked dead last.
func (e *Entity) Update() {
	if e.state == nil {
		panic(fmt.Sprintf("world: update of %v, which is not in a state", e))
	}

	e.Pos = e.Pos.Add(e.Vel)
	e.scripts.Advance()
	if e.Kind != nil && e.Kind.Update != nil {
		e.Kind.Update(e)
	}
	if h := e.Health; h != nil {
		h.tick()
		if h.Life <= 0 {
			e.dead = true
		}
	}
}

func (e *Entity) Draw(s gfx.Surface) {
	if e.state == nil {
		panic(fmt.Sprintf("world: draw of %v, which is not in a state", e))
	}

	switch {
	case e.Kind != nil && e.Kind.Draw != nil:
		e.Kind.Draw(e, s)
	case e.sprite() != nil:
		e.DrawSprite(s)
	}
}

func (e *Entity) resize(old, new vec.Vec2) {
	if e.Kind != nil && e.Kind.Resize != nil {
		e.Kind.Resize(e, old, new)
	}
}

func (e *Entity) inputs() *input.Inputs {
	if e.Kind == nil || e.Kind.Inputs == nil {
		return nil
	}
	return e.Kind.Inputs(e)
}

// die runs the death hook and releases the scripts.
func (e *Entity) die(st *State) {
	if e.Kind != nil && e.Kind.OnDeath != nil {
		e.Kind.OnDeath(e, st)
	}
	e.scripts.Stop()
}

func (e *Entity) drawDebug(s gfx.Surface) {
	s.StrokeRect(e.Rect(), 1, e.debugColor)
	if e.Vel != (vec.Vec2{}) {
		c := e.Center()
		s.Line(c, c.Add(e.Vel.Scale(10)), 1, e.debugColor)
	}
}
