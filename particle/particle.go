// Package particle is the visual effects layer: short-lived, purely
// decorative particles integrated once per frame and drawn on a gfx.Surface.
//
// Particles are configured through a Builder, then handed to a System, which
// owns them until they die. Fountains let a System spawn particles on its own
// every frame.
package particle

import (
	"image/color"

	"github.com/plus3/flyre/gfx"
	"github.com/plus3/flyre/vec"
)

// Anim is a per-frame animation callback. It runs after the physics step of
// a living particle.
type Anim func(p *Particle)

// Particle is the physical state of one particle. Angles are in degrees.
type Particle struct {
	Pos        vec.Vec2
	Angle      float64
	Speed      float64
	AngularVel float64
	Acc        float64
	// Force is added to the position every frame, independently of the
	// heading.
	Force vec.Vec2

	Size               float64
	InnerRotation      float64
	InnerRotationSpeed float64

	Color color.NRGBA
	Alpha uint8

	// Lifespan is the number of frames the particle lives.
	Lifespan int

	Shape Shape

	age   int
	life  float64
	dead  bool
	anims []Anim
}

// Life is the elapsed proportion of the lifespan, 0 at birth and 1 at death.
func (p *Particle) Life() float64 {
	return p.life
}

// Age is the number of ticks the particle went through.
func (p *Particle) Age() int {
	return p.age
}

func (p *Particle) Alive() bool {
	return !p.dead
}

// Kill makes the particle disappear on the next purge.
func (p *Particle) Kill() {
	p.dead = true
}

// DrawColor is Color with the particle's current alpha.
func (p *Particle) DrawColor() color.NRGBA {
	c := p.Color
	c.A = p.Alpha
	return c
}

// Tick integrates one frame of motion and runs the animations.
func (p *Particle) Tick() {
	if p.dead {
		return
	}

	p.age++
	if p.Lifespan > 0 {
		p.life = float64(p.age) / float64(p.Lifespan)
	} else {
		p.life = 1
	}

	p.Speed += p.Acc
	p.Angle += p.AngularVel
	p.Pos = p.Pos.Add(vec.Polar(p.Speed, p.Angle)).Add(p.Force)
	p.InnerRotation += p.InnerRotationSpeed

	if p.Speed < 0 || p.Size <= 0 || p.life >= 1 {
		p.dead = true
		return
	}

	for _, anim := range p.anims {
		anim(p)
	}
}

func (p *Particle) Draw(s gfx.Surface) {
	if p.Shape != nil {
		p.Shape.Draw(s, p)
	}
}
