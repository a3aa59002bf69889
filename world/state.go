package world

import (
	"fmt"
	"image/color"
	"iter"
	"log"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamstrup/intmap"
	"github.com/plus3/flyre/gfx"
	"github.com/plus3/flyre/input"
	"github.com/plus3/flyre/particle"
	"github.com/plus3/flyre/script"
	"github.com/plus3/flyre/settings"
	"github.com/plus3/flyre/vec"
)

const (
	// DefaultShakeAmplitude is the largest screen offset of a shake, in
	// pixels.
	DefaultShakeAmplitude = 3
	// DefaultParticleZ is the first entity layer drawn above the particles.
	DefaultParticleZ = 0
	// DefaultCycleFrames is how long a background colour cycle takes to go
	// from one colour to the next.
	DefaultCycleFrames = 20 * 60
)

// Music plays background tracks. States start their track when they resume.
type Music interface {
	Play(track string)
	SetMuted(muted bool)
}

// Hooks customize a State. All of them are optional.
type Hooks struct {
	// Setup runs once from NewState. Entities added here are live at once.
	Setup func(st *State)
	// OnResume runs each time the state becomes the top of the stack.
	OnResume func(st *State)
	// OnExit runs each time the state stops being the top of the stack.
	OnExit func(st *State)
	// Inputs adds state-wide controls next to quit, debug and mute.
	Inputs func(st *State) *input.Inputs
	// Script is the main script of the state, started by NewState.
	Script func(st *State, y *script.Yield)
}

type Option func(*State)

func WithName(name string) Option {
	return func(st *State) { st.Name = name }
}

func WithHooks(h Hooks) Option {
	return func(st *State) { st.hooks = h }
}

func WithBackground(c color.Color) Option {
	return func(st *State) { st.background = gfx.ToNRGBA(c) }
}

// WithBackgroundCycle makes the background blend from one colour to the
// next, spending frames frames on each transition.
func WithBackgroundCycle(frames int, colors ...color.Color) Option {
	return func(st *State) {
		st.cycleFrames = max(frames, 1)
		st.cycle = st.cycle[:0]
		for _, c := range colors {
			st.cycle = append(st.cycle, gfx.ToNRGBA(c))
		}
	}
}

func WithParticleZ(z int) Option {
	return func(st *State) { st.particleZ = z }
}

func WithShakeAmplitude(px int) Option {
	return func(st *State) { st.shakeAmplitude = max(px, 0) }
}

func WithSettings(s *settings.Settings) Option {
	return func(st *State) { st.Settings = s }
}

// WithMusic plays track on m whenever the state resumes.
func WithMusic(m Music, track string) Option {
	return func(st *State) {
		st.music = m
		st.track = track
	}
}

// WithRand sets the random source of the state and of its particles.
func WithRand(rng *rand.Rand) Option {
	return func(st *State) { st.rng = rng }
}

// WithClock sets the clock the state's inputs measure time with.
func WithClock(clock input.Clock) Option {
	return func(st *State) { st.clock = clock }
}

type op int

const (
	opNone op = iota
	opPop
	opPush
	opReplace
)

func (o op) String() string {
	switch o {
	case opPop:
		return "pop"
	case opPush:
		return "push"
	case opReplace:
		return "replace"
	default:
		return "none"
	}
}

// State is one screen of the application: a level, a menu, a pause
// overlay. It owns its entities, particles, inputs and scripts.
type State struct {
	Name      string
	Particles *particle.System
	Inputs    *input.Inputs
	Settings  *settings.Settings
	// Timer counts the logic passes.
	Timer int

	entities []*Entity
	index    *intmap.Map[EntityID, int]
	nextID   EntityID
	commands Commands
	scripts  script.Set
	started  bool
	closed   bool

	next      op
	nextState *State

	hooks Hooks
	music Music
	track string
	rng   *rand.Rand
	clock input.Clock

	background     color.NRGBA
	cycle          []color.NRGBA
	cycleFrames    int
	particleZ      int
	shake          int
	shakeAmplitude int

	layers *intmap.Map[int, []*Entity]
	zs     []int
}

func NewState(opts ...Option) *State {
	st := &State{
		Name:           "state",
		index:          intmap.New[EntityID, int](64),
		layers:         intmap.New[int, []*Entity](8),
		background:     color.NRGBA{A: 255},
		cycleFrames:    DefaultCycleFrames,
		particleZ:      DefaultParticleZ,
		shakeAmplitude: DefaultShakeAmplitude,
	}
	for _, opt := range opts {
		opt(st)
	}

	if st.rng == nil {
		st.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if st.clock == nil {
		st.clock = time.Now
	}
	if st.Settings == nil {
		st.Settings = settings.Default()
	}
	st.Particles = particle.NewSystem(particle.WithRand(st.rng))
	st.Inputs = input.NewInputsWithClock(st.clock)

	if st.hooks.Setup != nil {
		st.hooks.Setup(st)
	}
	if st.hooks.Script != nil {
		st.Do(func(y *script.Yield) { st.hooks.Script(st, y) })
	}
	return st
}

func (st *State) String() string {
	return st.Name
}

// Rand is the random source of the state.
func (st *State) Rand() *rand.Rand {
	return st.rng
}

// Add hands e to the state and returns it. Before the first logic pass the
// entity is inserted at once; afterwards it is queued and becomes visible at
// the start of the next logic pass. Adding an entity twice panics.
func (st *State) Add(e *Entity) *Entity {
	if e.added {
		panic(fmt.Sprintf("world: %v added twice", e))
	}
	e.added = true
	st.nextID++
	e.id = st.nextID
	e.debugColor = gfx.HSV(st.rng.Float64()*360, 0.8, 1)
	e.debugColor.A = 80

	if st.started {
		st.commands.Spawn(e)
	} else {
		st.insert(e)
	}
	return e
}

func (st *State) insert(e *Entity) {
	e.state = st
	st.index.Put(e.id, len(st.entities))
	st.entities = append(st.entities, e)
}

// Defer runs fn at the start of the next logic pass, after pending
// entities are inserted.
func (st *State) Defer(fn func()) {
	st.commands.Defer(fn)
}

// Pending returns the number of entities waiting for insertion.
func (st *State) Pending() int {
	return st.commands.Pending()
}

// Filter selects entities in All.
type Filter func(e *Entity) bool

// Any matches every entity.
func Any(*Entity) bool { return true }

// OfKind matches entities of any of the given kinds.
func OfKind(kinds ...*Kind) Filter {
	return func(e *Entity) bool {
		return slices.Contains(kinds, e.Kind)
	}
}

func Where(pred func(e *Entity) bool) Filter {
	return Filter(pred)
}

// All yields the live entities matching every filter, in insertion order.
// It iterates over the collection as it was when All was called, so
// entities may be added or killed while iterating.
func (st *State) All(filters ...Filter) iter.Seq[*Entity] {
	snapshot := st.entities
	return func(yield func(*Entity) bool) {
	next:
		for _, e := range snapshot {
			if e.dead {
				continue
			}
			for _, f := range filters {
				if f != nil && !f(e) {
					continue next
				}
			}
			if !yield(e) {
				return
			}
		}
	}
}

// Get returns the inserted entity with the given ID.
func (st *State) Get(id EntityID) (*Entity, bool) {
	i, ok := st.index.Get(id)
	if !ok {
		return nil, false
	}
	return st.entities[i], true
}

// Len is the number of inserted entities, dead ones included until the end
// of the frame.
func (st *State) Len() int {
	return len(st.entities)
}

// AddScript runs s once per logic pass.
func (st *State) AddScript(s script.Script) script.Script {
	st.scripts.Add(s)
	return s
}

// Do runs body as a coroutine script of the state.
func (st *State) Do(body func(y *script.Yield)) *script.Coroutine {
	co := script.NewCoroutine(body)
	st.scripts.Add(co)
	return co
}

// DoLater calls fn frames logic passes from now.
func (st *State) DoLater(frames int, fn func()) {
	st.scripts.Add(script.Later(frames, fn))
}

// Logic runs one frame of simulation.
func (st *State) Logic() {
	st.started = true
	st.Timer++

	st.commands.Flush(st)
	st.scripts.Advance()

	// Dead entities are updated too: OnDeath always follows an Update of the
	// same frame.
	for _, e := range st.entities {
		e.Update()
	}
	st.Particles.Tick()
	st.sweep()
}

// sweep removes the dead entities. The collection is reallocated so that
// iterators handed out by All keep their view.
func (st *State) sweep() {
	dead := 0
	for _, e := range st.entities {
		if e.dead {
			dead++
		}
	}
	if dead == 0 {
		return
	}

	live := make([]*Entity, 0, len(st.entities)-dead)
	died := make([]*Entity, 0, dead)
	for _, e := range st.entities {
		if e.dead {
			st.index.Del(e.id)
			died = append(died, e)
			continue
		}
		st.index.Put(e.id, len(live))
		live = append(live, e)
	}
	st.entities = live

	for _, e := range died {
		e.die(st)
	}
}

// Background is the colour the frame is cleared with.
func (st *State) Background() color.NRGBA {
	if len(st.cycle) == 0 {
		return st.background
	}
	if len(st.cycle) == 1 {
		return st.cycle[0]
	}

	first := st.Timer / st.cycleFrames % len(st.cycle)
	second := (first + 1) % len(st.cycle)
	t := float64(st.Timer%st.cycleFrames) / float64(st.cycleFrames)
	return gfx.Mix(st.cycle[first], st.cycle[second], t)
}

// Draw renders the frame: background, entities by increasing Z with the
// particles under the first layer at or above the particle Z, then the debug
// overlay. An active shake scrolls the whole frame.
func (st *State) Draw(s gfx.Surface) {
	s.Fill(st.Background())

	st.layers.Clear()
	st.zs = st.zs[:0]
	for _, e := range st.entities {
		if e.dead {
			continue
		}
		layer, ok := st.layers.Get(e.Z)
		if !ok {
			st.zs = append(st.zs, e.Z)
		}
		st.layers.Put(e.Z, append(layer, e))
	}
	slices.Sort(st.zs)

	particlesDrawn := false
	for _, z := range st.zs {
		if !particlesDrawn && z >= st.particleZ {
			st.Particles.Draw(s)
			particlesDrawn = true
		}
		layer, _ := st.layers.Get(z)
		for _, e := range layer {
			e.Draw(s)
		}
	}
	if !particlesDrawn {
		st.Particles.Draw(s)
	}

	if st.Settings.Debug {
		for _, e := range st.entities {
			if !e.dead {
				e.drawDebug(s)
			}
		}
	}

	if st.shake > 0 {
		amp := st.shakeAmplitude
		dx := st.rng.IntN(2*amp+1) - amp
		dy := st.rng.IntN(2*amp+1) - amp
		s.Scroll(float64(dx), float64(dy))
		st.shake--
	}
}

// Shake shakes the screen for frames more frames.
func (st *State) Shake(frames int) {
	if frames < 0 {
		panic(fmt.Sprintf("world: negative shake %d", frames))
	}
	st.shake += frames
}

// Shaking returns the number of frames of shake left.
func (st *State) Shaking() int {
	return st.shake
}

// HandleInput feeds the frame's raw events to the state's controls.
func (st *State) HandleInput(events []input.Event) {
	st.Inputs.Trigger(events)
}

// Resize forwards a window size change to every entity.
func (st *State) Resize(old, new vec.Vec2) {
	for _, e := range st.entities {
		e.resize(old, new)
	}
}

// Pop asks the stack to remove this state and resume the one below.
func (st *State) Pop() {
	st.next, st.nextState = opPop, nil
}

// Push asks the stack to put next on top of this state.
func (st *State) Push(next *State) {
	st.next, st.nextState = opPush, next
}

// Replace asks the stack to swap this state for next. This state never
// resumes.
func (st *State) Replace(next *State) {
	st.next, st.nextState = opReplace, next
}

// Closed reports whether the state was popped or replaced.
func (st *State) Closed() bool {
	return st.closed
}

// Transition returns the pending transition, "none" without one.
func (st *State) Transition() string {
	return st.next.String()
}

func (st *State) takeTransition() (op, *State) {
	o, next := st.next, st.nextState
	st.next, st.nextState = opNone, nil
	return o, next
}

// defaultInputs are the controls every state has.
func (st *State) defaultInputs() *input.Inputs {
	in := input.NewInputsWithClock(st.clock)

	quit := input.NewButton(
		input.QuitEvent{},
		input.Key(ebiten.KeyEscape),
		input.Key(ebiten.KeyQ),
		input.JoyButton{Button: ebiten.StandardGamepadButtonCenterLeft},
	)
	quit.OnPress(func(*input.Button) { st.Pop() })

	debug := input.NewButton(
		input.Key(ebiten.KeyF11),
		input.JoyButton{Button: ebiten.StandardGamepadButtonLeftStick},
	)
	debug.OnPress(func(*input.Button) { st.Settings.ToggleDebug() })

	mute := input.NewButton(
		input.Key(ebiten.KeyM),
		input.JoyButton{Button: ebiten.StandardGamepadButtonRightStick},
	)
	mute.OnPress(func(*input.Button) { st.ToggleMute() })

	in.MustSet("quit", quit)
	in.MustSet("debug", debug)
	in.MustSet("mute", mute)
	return in
}

// ToggleMute flips the mute setting and applies it to the music.
func (st *State) ToggleMute() {
	muted := st.Settings.ToggleMute()
	if st.music != nil {
		st.music.SetMuted(muted)
	}
}

// OnResume makes the state ready to be the top of the stack: it rebuilds
// the controls from the defaults, the Inputs hook and every entity, then runs
// the OnResume hook and starts the music. Two controls with one name are an
// error wrapping input.ErrConflict.
func (st *State) OnResume() error {
	st.next, st.nextState = opNone, nil

	in := st.defaultInputs()
	if st.hooks.Inputs != nil {
		if err := in.Merge(st.hooks.Inputs(st)); err != nil {
			return fmt.Errorf("state %s: %w", st.Name, err)
		}
	}
	for _, e := range st.entities {
		if err := in.Merge(e.inputs()); err != nil {
			return fmt.Errorf("state %s, %v: %w", st.Name, e.Kind, err)
		}
	}
	st.Inputs = in

	if st.hooks.OnResume != nil {
		st.hooks.OnResume(st)
	}
	if st.music != nil && st.track != "" {
		st.music.SetMuted(st.Settings.Mute)
		st.music.Play(st.track)
	}
	log.Printf("[State] %s resumed with %d controls", st.Name, in.Len())
	return nil
}

// OnExit runs when the state stops being the top of the stack.
func (st *State) OnExit() {
	if st.hooks.OnExit != nil {
		st.hooks.OnExit(st)
	}
}

// close releases every script of a state leaving the stack for good.
func (st *State) close() {
	st.closed = true
	st.scripts.Stop()
	for _, e := range st.entities {
		e.scripts.Stop()
	}
}
