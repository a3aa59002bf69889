package world_test

import (
	"errors"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/flyre/input"
	"github.com/plus3/flyre/particle"
	"github.com/plus3/flyre/settings"
	"github.com/plus3/flyre/vec"
	"github.com/plus3/flyre/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lifecycle struct {
	resumes int
	exits   int
}

func (l *lifecycle) hooks() world.Hooks {
	return world.Hooks{
		OnResume: func(*world.State) { l.resumes++ },
		OnExit:   func(*world.State) { l.exits++ },
	}
}

func TestPushPopPreservesState(t *testing.T) {
	var la, lb lifecycle
	a := newState(world.WithName("game"), world.WithHooks(la.hooks()))
	ship := a.Add(world.NewEntity(nil, vec.V(3, 3), vec.V(1, 1)))
	a.Particles.Add(particle.Circle(color.White).Living(100).Build())

	stack, err := world.NewStack(a)
	require.NoError(t, err)
	assert.Equal(t, 1, la.resumes)

	a.Logic()
	pos := ship.Pos

	b := newState(world.WithName("pause"), world.WithHooks(lb.hooks()))
	a.Push(b)
	assert.Equal(t, "push", a.Transition())
	require.NoError(t, stack.Apply())
	assert.Same(t, b, stack.Top())
	assert.Equal(t, 1, la.exits)
	assert.Equal(t, 1, lb.resumes)

	for range 5 {
		stack.Top().Logic()
	}

	b.Pop()
	require.NoError(t, stack.Apply())
	assert.Same(t, a, stack.Top())
	assert.Equal(t, 2, la.resumes)
	assert.Equal(t, 1, lb.exits)
	assert.True(t, b.Closed())
	assert.False(t, a.Closed())

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, pos, ship.Pos)
	assert.Equal(t, 1, a.Particles.Len())
	assert.Equal(t, 1, a.Timer, "a paused state does not tick")
}

func TestReplaceNeverResumes(t *testing.T) {
	var la, lb lifecycle
	a := newState(world.WithHooks(la.hooks()))
	b := newState(world.WithHooks(lb.hooks()))

	stack, err := world.NewStack(a)
	require.NoError(t, err)

	a.Replace(b)
	require.NoError(t, stack.Apply())
	assert.Equal(t, 1, stack.Len())
	assert.Same(t, b, stack.Top())
	assert.True(t, a.Closed())

	b.Pop()
	require.NoError(t, stack.Apply())
	assert.False(t, stack.Running())
	assert.Nil(t, stack.Top())
	assert.Equal(t, 1, la.resumes)
	assert.Equal(t, 1, la.exits)
	assert.NoError(t, stack.Apply(), "nothing to do on an empty stack")
}

func TestLastTransitionWins(t *testing.T) {
	a, b, c := newState(), newState(), newState()
	stack, err := world.NewStack(a)
	require.NoError(t, err)

	a.Push(b)
	a.Push(c)
	require.NoError(t, stack.Apply())
	assert.Same(t, c, stack.Top())

	require.NoError(t, stack.Apply())
	assert.Same(t, c, stack.Top(), "a transition is applied once")
}

func TestTransitionToNil(t *testing.T) {
	a := newState()
	stack, err := world.NewStack(a)
	require.NoError(t, err)

	a.Push(nil)
	assert.ErrorIs(t, stack.Apply(), world.ErrNoState)
	_, err = world.NewStack(nil)
	assert.ErrorIs(t, err, world.ErrNoState)
}

func TestQuitInputPops(t *testing.T) {
	st := newState()
	stack, err := world.NewStack(st)
	require.NoError(t, err)
	assert.Equal(t, []string{"quit", "debug", "mute"}, st.Inputs.Names())

	st.HandleInput([]input.Event{input.PressKey(ebiten.KeyEscape)})
	assert.Equal(t, "pop", st.Transition())
	require.NoError(t, stack.Apply())
	assert.False(t, stack.Running())
}

func TestWindowCloseQuits(t *testing.T) {
	st := newState()
	stack, err := world.NewStack(st)
	require.NoError(t, err)

	st.HandleInput([]input.Event{input.CloseWindow()})
	require.NoError(t, stack.Apply())
	assert.False(t, stack.Running())
}

type fakeMusic struct {
	played []string
	muted  bool
}

func (m *fakeMusic) Play(track string)   { m.played = append(m.played, track) }
func (m *fakeMusic) SetMuted(muted bool) { m.muted = muted }

func TestDebugAndMuteInputs(t *testing.T) {
	music := &fakeMusic{}
	prefs := settings.Default()
	st := newState(world.WithSettings(prefs), world.WithMusic(music, "level1"))

	_, err := world.NewStack(st)
	require.NoError(t, err)
	assert.Equal(t, []string{"level1"}, music.played)

	st.HandleInput([]input.Event{input.PressKey(ebiten.KeyF11)})
	assert.True(t, prefs.Debug)

	st.HandleInput([]input.Event{input.PressKey(ebiten.KeyM)})
	assert.True(t, prefs.Mute)
	assert.True(t, music.muted)

	st.HandleInput([]input.Event{input.ReleaseKey(ebiten.KeyM)})
	st.HandleInput([]input.Event{input.PressKey(ebiten.KeyM)})
	assert.False(t, prefs.Mute)
	assert.False(t, music.muted)
}

func TestEntityInputsAreMerged(t *testing.T) {
	fired := 0
	gun := &world.Kind{Name: "gun", Inputs: func(e *world.Entity) *input.Inputs {
		in := input.NewInputs()
		fire := input.NewButton(input.Key(ebiten.KeySpace))
		fire.OnPress(func(*input.Button) { fired++ })
		in.MustSet("fire", fire)
		return in
	}}

	st := newState()
	st.Add(world.NewEntity(gun, vec.Vec2{}, vec.Vec2{}))
	_, err := world.NewStack(st)
	require.NoError(t, err)

	require.NotNil(t, st.Inputs.Button("fire"))
	st.HandleInput([]input.Event{input.PressKey(ebiten.KeySpace)})
	assert.Equal(t, 1, fired)
}

func TestInputConflicts(t *testing.T) {
	quitter := &world.Kind{Name: "quitter", Inputs: func(*world.Entity) *input.Inputs {
		in := input.NewInputs()
		in.MustSet("quit", input.NewButton(input.Key(ebiten.KeyX)))
		return in
	}}

	st := newState()
	st.Add(world.NewEntity(quitter, vec.Vec2{}, vec.Vec2{}))
	_, err := world.NewStack(st)
	require.Error(t, err)
	assert.True(t, errors.Is(err, input.ErrConflict))
	assert.Contains(t, err.Error(), "quitter")

	twin := &world.Kind{Name: "twin", Inputs: func(*world.Entity) *input.Inputs {
		in := input.NewInputs()
		in.MustSet("jump", input.NewButton(input.Key(ebiten.KeySpace)))
		return in
	}}
	next := newState()
	next.Add(world.NewEntity(twin, vec.Vec2{}, vec.Vec2{}))
	next.Add(world.NewEntity(twin, vec.Vec2{}, vec.Vec2{}))

	base := newState()
	stack, err := world.NewStack(base)
	require.NoError(t, err)
	base.Push(next)
	assert.ErrorIs(t, stack.Apply(), input.ErrConflict)

	withHook := newState(world.WithHooks(world.Hooks{Inputs: func(*world.State) *input.Inputs {
		in := input.NewInputs()
		in.MustSet("mute", input.NewButton())
		return in
	}}))
	_, err = world.NewStack(withHook)
	assert.ErrorIs(t, err, input.ErrConflict)
}
