package world

import (
	"image/color"
	"math"
	"strconv"

	"github.com/plus3/flyre/particle"
	"github.com/plus3/flyre/vec"
)

const (
	// DefaultDamageSpread is the standard deviation of the random factor
	// damage is multiplied by.
	DefaultDamageSpread = 0.1
	// HitFlashFrames is how many frames a hit entity is drawn in HitColor.
	HitFlashFrames = 3

	neverHit = math.MaxInt32
)

var (
	HitColor  = color.NRGBA{R: 221, G: 55, B: 69, A: 255}
	HealColor = color.NRGBA{R: 99, G: 199, B: 77, A: 255}
)

// Health is the life of an entity. An entity whose life drops to zero dies
// at the end of its next Update.
type Health struct {
	Life    float64
	MaxLife float64
	// Invincibility is the number of frames after a hit during which damage
	// is ignored.
	Invincibility int
	Spread        float64
	// Numbers renders the floating damage and heal numbers. They are not
	// shown when it is nil.
	Numbers particle.TextRenderer

	sinceHit int
}

func NewHealth(maxLife float64) *Health {
	return &Health{
		Life:     maxLife,
		MaxLife:  maxLife,
		Spread:   DefaultDamageSpread,
		sinceHit: neverHit,
	}
}

// SinceHit is the number of updates since the last hit.
func (h *Health) SinceHit() int {
	return h.sinceHit
}

func (h *Health) Invincible() bool {
	return h.sinceHit < h.Invincibility
}

// Flashing reports whether the entity was hit in the last HitFlashFrames
// frames.
func (h *Health) Flashing() bool {
	return h.sinceHit < HitFlashFrames
}

// Blinking reports whether an invincible entity is in the hidden part of
// its blink: two frames out of six.
func (h *Health) Blinking() bool {
	return h.Invincible() && h.sinceHit%6 > 3
}

func (h *Health) tick() {
	if h.sinceHit < neverHit {
		h.sinceHit++
	}
}

// Damage takes amount, randomized by Spread, from the life of the entity
// and returns what was taken. Hits during invincibility are ignored and a
// negative amount heals.
func (e *Entity) Damage(amount float64) float64 {
	return e.damage(amount, false)
}

// ForceDamage is Damage ignoring invincibility.
func (e *Entity) ForceDamage(amount float64) float64 {
	return e.damage(amount, true)
}

func (e *Entity) damage(amount float64, force bool) float64 {
	h := e.Health
	if h == nil {
		return 0
	}
	if amount < 0 {
		e.Heal(-amount)
		return 0
	}
	if h.Invincible() && !force {
		return 0
	}

	if h.Spread > 0 && e.state != nil {
		amount = max(amount*(1+e.state.rng.NormFloat64()*h.Spread), 0)
	}
	h.sinceHit = 0
	h.Life = max(h.Life-amount, 0)
	e.floatNumber(amount, HitColor)
	return amount
}

// Heal gives back up to amount of life, never above MaxLife, and returns
// what was given.
func (e *Entity) Heal(amount float64) float64 {
	h := e.Health
	if h == nil {
		return 0
	}
	amount = min(amount, h.MaxLife-h.Life)
	if amount <= 0 {
		return 0
	}

	h.Life += amount
	e.floatNumber(amount, HealColor)
	return amount
}

func (e *Entity) floatNumber(amount float64, c color.NRGBA) {
	if e.Health.Numbers == nil || e.state == nil {
		return
	}
	pos := vec.RandomInRect(e.state.rng, e.Rect())
	e.state.Particles.Add(particle.Text(e.Health.Numbers, strconv.Itoa(int(amount)), c).
		At(pos, 90).
		Velocity(0, 0).
		Sized(15).
		AnimFade().
		Build())
}
