package world_test

import (
	"image/color"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/plus3/flyre/gfx"
	"github.com/plus3/flyre/particle"
	"github.com/plus3/flyre/script"
	"github.com/plus3/flyre/vec"
	"github.com/plus3/flyre/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newState(opts ...world.Option) *world.State {
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(time.Second / 60)
		return now
	}
	base := []world.Option{
		world.WithRand(rand.New(rand.NewPCG(7, 7))),
		world.WithClock(clock),
	}
	return world.NewState(append(base, opts...)...)
}

func collect(st *world.State, filters ...world.Filter) []*world.Entity {
	return slices.Collect(st.All(filters...))
}

func TestAddBeforeFirstLogicIsImmediate(t *testing.T) {
	st := newState()
	e := st.Add(world.NewEntity(nil, vec.V(1, 2), vec.V(3, 4)))

	assert.Equal(t, 1, st.Len())
	assert.Same(t, st, e.State())
	assert.NotZero(t, e.ID())
	got, ok := st.Get(e.ID())
	require.True(t, ok)
	assert.Same(t, e, got)
}

func TestAddDuringFrameIsDeferred(t *testing.T) {
	st := newState()

	var child *world.Entity
	var seenDuringFrame int
	spawner := &world.Kind{Update: func(e *world.Entity) {
		if child == nil {
			child = e.State().Add(world.NewEntity(nil, vec.V(0, 0), vec.V(1, 1)))
			seenDuringFrame = len(collect(e.State()))
		}
	}}
	st.Add(world.NewEntity(spawner, vec.V(0, 0), vec.V(1, 1)))

	st.Logic()
	require.NotNil(t, child)
	assert.Equal(t, 1, seenDuringFrame, "the new entity is not visible in the frame it is added")
	assert.Equal(t, 1, st.Pending())
	assert.Nil(t, child.State())
	assert.Panics(t, func() { child.Update() })
	assert.Panics(t, func() { child.Draw(gfx.NewRecorder(1, 1)) })

	st.Logic()
	assert.Equal(t, 0, st.Pending())
	assert.Equal(t, 2, st.Len())
	assert.Same(t, st, child.State())
}

func TestAddTwicePanics(t *testing.T) {
	a, b := newState(), newState()
	e := a.Add(world.NewEntity(nil, vec.Vec2{}, vec.Vec2{}))
	assert.Panics(t, func() { b.Add(e) })
	assert.Panics(t, func() { a.Add(e) })
}

func TestEntityUpdateOrder(t *testing.T) {
	var trace []string
	kind := &world.Kind{Update: func(e *world.Entity) {
		trace = append(trace, "kind")
		assert.Equal(t, vec.V(1, 0), e.Pos, "motion comes first")
	}}

	st := newState()
	e := st.Add(world.NewEntity(kind, vec.V(0, 0), vec.V(1, 1)))
	e.Vel = vec.V(1, 0)
	e.AddScript(script.Once(func() { trace = append(trace, "script") }))

	st.Logic()
	assert.Equal(t, []string{"script", "kind"}, trace)
	assert.Equal(t, 0, e.Scripts())
}

func TestLogicFlushesBeforeScriptsAndUpdates(t *testing.T) {
	st := newState()
	var trace []string

	st.Logic()
	st.Add(world.NewEntity(&world.Kind{Update: func(*world.Entity) { trace = append(trace, "update") }}, vec.Vec2{}, vec.Vec2{}))
	st.Defer(func() { trace = append(trace, "deferred") })
	st.AddScript(script.Once(func() { trace = append(trace, "state script") }))

	st.Logic()
	assert.Equal(t, []string{"deferred", "state script", "update"}, trace)
	assert.Equal(t, 2, st.Timer)
}

func TestDeathOrdering(t *testing.T) {
	st := newState()
	var trace []string
	kill := false
	cleaned := false

	var child *world.Entity
	victimKind := &world.Kind{
		Name:   "victim",
		Update: func(*world.Entity) { trace = append(trace, "victim update") },
		OnDeath: func(e *world.Entity, owner *world.State) {
			trace = append(trace, "death")
			assert.Same(t, st, owner)
			assert.False(t, slices.Contains(collect(owner), e), "already out of the collection")
			child = owner.Add(world.NewEntity(nil, e.Pos, e.Size))
		},
	}

	victim := world.NewEntity(victimKind, vec.V(5, 5), vec.V(2, 2))
	killer := &world.Kind{Update: func(*world.Entity) {
		trace = append(trace, "killer")
		if kill {
			victim.MarkDead()
		}
	}}

	st.Add(world.NewEntity(killer, vec.Vec2{}, vec.Vec2{}))
	st.Add(victim)
	victim.Do(func(y *script.Yield) {
		defer func() { cleaned = true }()
		y.Wait(100)
	})

	st.Logic()
	assert.Equal(t, []string{"killer", "victim update"}, trace)

	trace = nil
	kill = true
	st.Logic()
	assert.Equal(t, []string{"killer", "victim update", "death"}, trace, "the victim updates before it dies")
	assert.True(t, cleaned, "scripts of a dead entity are stopped")
	assert.Equal(t, 1, st.Len())
	_, ok := st.Get(victim.ID())
	assert.False(t, ok)

	rec := gfx.NewRecorder(10, 10)
	st.Draw(rec)
	assert.Equal(t, 1, st.Pending(), "spawned on death, inserted next frame")

	st.Logic()
	assert.Same(t, st, child.State())
}

func TestKilledBetweenFramesStillUpdates(t *testing.T) {
	st := newState()
	var trace []string
	e := st.Add(world.NewEntity(&world.Kind{
		Update:  func(*world.Entity) { trace = append(trace, "update") },
		OnDeath: func(*world.Entity, *world.State) { trace = append(trace, "death") },
	}, vec.Vec2{}, vec.V(1, 1)))
	e.Vel = vec.V(1, 0)

	e.MarkDead()
	st.Logic()
	assert.Equal(t, []string{"update", "death"}, trace)
	assert.Equal(t, vec.V(1, 0), e.Pos)
	assert.Zero(t, st.Len())
}

type traceShape struct{ trace *[]string }

func (s traceShape) Draw(gfx.Surface, *particle.Particle) {
	*s.trace = append(*s.trace, "particles")
}

func drawOrder(t *testing.T, zs []int, opts ...world.Option) []string {
	t.Helper()
	var trace []string
	kind := &world.Kind{Draw: func(e *world.Entity, s gfx.Surface) {
		trace = append(trace, e.Data.(string))
	}}

	st := newState(opts...)
	for i, z := range zs {
		e := world.NewEntity(kind, vec.Vec2{}, vec.Vec2{})
		e.Z = z
		e.Data = string(rune('A' + i))
		st.Add(e)
	}
	st.Particles.Add(particle.New(traceShape{&trace}).Build())

	st.Draw(gfx.NewRecorder(10, 10))
	return trace
}

func TestDrawByZThenInsertion(t *testing.T) {
	assert.Equal(t, []string{"particles", "A", "C", "B"}, drawOrder(t, []int{0, 1, 0}))
	assert.Equal(t, []string{"C", "particles", "B", "A"}, drawOrder(t, []int{2, 0, -1}))
	assert.Equal(t, []string{"A", "B", "particles"}, drawOrder(t, []int{-3, -1}))
	assert.Equal(t, []string{"particles"}, drawOrder(t, nil))
	assert.Equal(t, []string{"A", "C", "particles", "B"}, drawOrder(t, []int{0, 1, 0}, world.WithParticleZ(1)))
}

func TestDrawFillsBackgroundFirst(t *testing.T) {
	st := newState(world.WithBackground(color.NRGBA{R: 40, G: 40, B: 50, A: 255}))
	rec := gfx.NewRecorder(10, 10)
	st.Draw(rec)

	require.NotEmpty(t, rec.Calls)
	assert.Equal(t, gfx.OpFill, rec.Calls[0].Op)
	assert.Equal(t, color.NRGBA{R: 40, G: 40, B: 50, A: 255}, rec.Calls[0].Color)
}

func TestBackgroundCycle(t *testing.T) {
	black := color.NRGBA{A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	st := newState(world.WithBackgroundCycle(10, black, white))

	assert.Equal(t, black, st.Background())
	for range 5 {
		st.Logic()
	}
	assert.Equal(t, gfx.Mix(black, white, 0.5), st.Background())
	for range 5 {
		st.Logic()
	}
	assert.Equal(t, white, st.Background())
	for range 10 {
		st.Logic()
	}
	assert.Equal(t, black, st.Background(), "the cycle wraps around")
}

func TestShake(t *testing.T) {
	st := newState()
	assert.Panics(t, func() { st.Shake(-1) })

	st.Shake(0)
	rec := gfx.NewRecorder(10, 10)
	st.Draw(rec)
	assert.Zero(t, rec.Counts[gfx.OpScroll])

	st.Shake(2)
	for range 4 {
		st.Draw(rec)
	}
	scrolls := rec.Only(gfx.OpScroll)
	require.Len(t, scrolls, 2)
	for _, s := range scrolls {
		d := s.Points[0]
		assert.LessOrEqual(t, d.X*d.X, 9.0)
		assert.LessOrEqual(t, d.Y*d.Y, 9.0)
	}
	assert.Zero(t, st.Shaking())
}

func TestDebugOverlay(t *testing.T) {
	st := newState()
	e := st.Add(world.NewEntity(nil, vec.V(1, 1), vec.V(4, 4)))
	e.Vel = vec.V(1, 0)

	rec := gfx.NewRecorder(10, 10)
	st.Draw(rec)
	assert.Zero(t, rec.Counts[gfx.OpStrokeRect])

	st.Settings.Debug = true
	st.Draw(rec)
	assert.Equal(t, 1, rec.Counts[gfx.OpStrokeRect])
	assert.Equal(t, 1, rec.Counts[gfx.OpLine])
}

func TestAllFilters(t *testing.T) {
	ship := &world.Kind{Name: "ship"}
	rock := &world.Kind{Name: "rock"}

	st := newState()
	s1 := st.Add(world.NewEntity(ship, vec.V(0, 0), vec.V(1, 1)))
	r1 := st.Add(world.NewEntity(rock, vec.V(5, 0), vec.V(1, 1)))
	r2 := st.Add(world.NewEntity(rock, vec.V(50, 0), vec.V(1, 1)))

	assert.Equal(t, []*world.Entity{s1, r1, r2}, collect(st))
	assert.Equal(t, []*world.Entity{s1, r1, r2}, collect(st, world.Any))
	assert.Equal(t, []*world.Entity{r1, r2}, collect(st, world.OfKind(rock)))
	assert.Equal(t, []*world.Entity{r1}, collect(st, world.OfKind(rock), world.Where(func(e *world.Entity) bool {
		return e.Pos.DistanceTo(s1.Pos) < 10
	})))

	var seen []*world.Entity
	for e := range st.All() {
		seen = append(seen, e)
		r1.MarkDead()
		st.Add(world.NewEntity(ship, vec.Vec2{}, vec.Vec2{}))
	}
	assert.Equal(t, []*world.Entity{s1, r2}, seen, "killed entities are skipped, new ones do not show up")
}

func TestGetAfterSweep(t *testing.T) {
	st := newState()
	a := st.Add(world.NewEntity(nil, vec.Vec2{}, vec.Vec2{}))
	b := st.Add(world.NewEntity(nil, vec.Vec2{}, vec.Vec2{}))
	c := st.Add(world.NewEntity(nil, vec.Vec2{}, vec.Vec2{}))

	a.MarkDead()
	st.Logic()

	got, ok := st.Get(c.ID())
	require.True(t, ok)
	assert.Same(t, c, got)
	got, ok = st.Get(b.ID())
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestEntityHelpers(t *testing.T) {
	e := world.NewEntity(&world.Kind{Name: "ship"}, vec.V(10, 10), vec.V(4, 2))
	assert.Equal(t, vec.V(12, 11), e.Center())

	e.SetCenter(vec.V(0, 0))
	assert.Equal(t, vec.V(-2, -1), e.Pos)
	assert.Equal(t, vec.R(-2, -1, 4, 2), e.Rect())
	assert.Contains(t, e.String(), "ship")

	st := newState()
	st.Add(e)
	fired := 0
	e.DoLater(2, func() { fired++ })
	st.Logic()
	st.Logic()
	assert.Equal(t, 0, fired)
	st.Logic()
	assert.Equal(t, 1, fired)
}

func TestWaitUntilDead(t *testing.T) {
	st := newState()
	boss := st.Add(world.NewEntity(nil, vec.Vec2{}, vec.Vec2{}))

	done := false
	st.Do(func(y *script.Yield) {
		y.Run(boss.WaitUntilDead())
		done = true
	})

	st.Logic()
	st.Logic()
	assert.False(t, done)

	boss.MarkDead()
	st.Logic()
	assert.True(t, done)
}

func TestStateScriptHook(t *testing.T) {
	var frames []int
	st := newState(world.WithHooks(world.Hooks{
		Setup: func(st *world.State) {
			st.Add(world.NewEntity(nil, vec.Vec2{}, vec.Vec2{}))
		},
		Script: func(st *world.State, y *script.Yield) {
			for range 3 {
				frames = append(frames, st.Timer)
				y.Wait(2)
			}
		},
	}))

	assert.Equal(t, 1, st.Len(), "setup adds at once")
	for range 10 {
		st.Logic()
	}
	assert.Equal(t, []int{1, 3, 5}, frames)
}

func TestResize(t *testing.T) {
	var got []vec.Vec2
	kind := &world.Kind{Resize: func(e *world.Entity, old, new vec.Vec2) {
		got = append(got, old, new)
	}}

	st := newState()
	st.Add(world.NewEntity(kind, vec.Vec2{}, vec.Vec2{}))
	st.Add(world.NewEntity(nil, vec.Vec2{}, vec.Vec2{}))
	st.Resize(vec.V(100, 100), vec.V(200, 150))

	assert.Equal(t, []vec.Vec2{vec.V(100, 100), vec.V(200, 150)}, got)
}
