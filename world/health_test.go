package world_test

import (
	"image/color"
	"testing"

	"github.com/plus3/flyre/gfx"
	"github.com/plus3/flyre/vec"
	"github.com/plus3/flyre/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numbers records the labels it renders.
type numbers struct {
	rendered []string
	colors   []color.Color
}

func (n *numbers) Render(s string, c color.Color) gfx.Image {
	n.rendered = append(n.rendered, s)
	n.colors = append(n.colors, c)
	return gfx.Blank{W: 8 * len(s), H: 10}
}

func hurtable(st *world.State, kind *world.Kind, life float64) *world.Entity {
	e := world.NewEntity(kind, vec.Vec2{}, vec.V(10, 10))
	e.Health = world.NewHealth(life)
	e.Health.Spread = 0
	return st.Add(e)
}

func TestDamageHealAndDeath(t *testing.T) {
	st := newState()
	nums := &numbers{}
	deaths := 0
	e := hurtable(st, &world.Kind{OnDeath: func(*world.Entity, *world.State) { deaths++ }}, 100)
	e.Health.Invincibility = 10
	e.Health.Numbers = nums

	assert.Equal(t, 30.0, e.Damage(30))
	assert.Equal(t, 70.0, e.Health.Life)
	assert.True(t, e.Health.Flashing())
	assert.True(t, e.Health.Invincible())
	assert.Equal(t, 1, st.Particles.Len(), "the damage floats over the entity")
	assert.Equal(t, []string{"30"}, nums.rendered)
	assert.Equal(t, world.HitColor, nums.colors[0])

	assert.Zero(t, e.Damage(30), "invincible")
	assert.Equal(t, 20.0, e.ForceDamage(20))
	assert.Equal(t, 50.0, e.Health.Life)

	for range 10 {
		st.Logic()
	}
	assert.Equal(t, 10, e.Health.SinceHit())
	assert.False(t, e.Health.Invincible())

	assert.Zero(t, e.Damage(-80), "negative damage heals")
	assert.Equal(t, 100.0, e.Health.Life, "healing stops at the maximum")
	assert.Equal(t, "50", nums.rendered[len(nums.rendered)-1])
	assert.Equal(t, world.HealColor, nums.colors[len(nums.colors)-1])
	assert.Zero(t, e.Heal(10))

	e.Damage(1000)
	assert.Zero(t, e.Health.Life)
	assert.True(t, e.Alive(), "death waits for the entity's update")
	st.Logic()
	assert.Equal(t, 1, deaths)
	assert.Zero(t, st.Len())
}

func TestDamageSpread(t *testing.T) {
	st := newState()
	e := hurtable(st, nil, 1e9)
	e.Health.Spread = world.DefaultDamageSpread

	total := 0.0
	distinct := map[float64]bool{}
	for range 400 {
		d := e.Damage(10)
		require.GreaterOrEqual(t, d, 0.0)
		total += d
		distinct[d] = true
	}
	assert.InDelta(t, 10, total/400, 0.3)
	assert.Greater(t, len(distinct), 1)
}

func TestHitFlashAndBlink(t *testing.T) {
	st := newState()
	kind := &world.Kind{Sprite: world.NewSprite(gfx.Blank{W: 8, H: 8})}
	e := hurtable(st, kind, 100)
	e.Health.Invincibility = 12
	e.Damage(1)

	var seen []string
	rec := gfx.NewRecorder(100, 100)
	for range 13 {
		rec.Reset()
		e.Draw(rec)
		blits := rec.Only(gfx.OpBlit)
		switch {
		case len(blits) == 0:
			seen = append(seen, "hidden")
		case isTinted(blits[0].Image):
			seen = append(seen, "flash")
		default:
			seen = append(seen, "shown")
		}
		st.Logic()
	}

	assert.Equal(t, []string{
		"flash", "flash", "flash", "shown", "hidden", "hidden",
		"shown", "shown", "shown", "shown", "hidden", "hidden",
		"shown",
	}, seen)
}

func isTinted(img gfx.Image) bool {
	_, ok := img.(gfx.Tinted)
	return ok
}
