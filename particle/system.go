package particle

import (
	"math"
	"math/rand/v2"
	"slices"

	"github.com/plus3/flyre/gfx"
)

// Generator makes one new particle.
type Generator func(rng *rand.Rand) *Particle

// Fountain spawns Frequency particles per frame. The fractional part of the
// frequency is drawn each frame: 1.4 spawns one particle every frame and a
// second one on 40% of the frames.
type Fountain struct {
	Generator Generator
	Frequency float64
}

func NewFountain(gen Generator, frequency float64) *Fountain {
	return &Fountain{Generator: gen, Frequency: frequency}
}

// Count returns how many particles to spawn this frame.
func (f *Fountain) Count(rng *rand.Rand) int {
	whole := math.Floor(f.Frequency)
	n := int(whole)
	if rng.Float64() < f.Frequency-whole {
		n++
	}
	return n
}

// System owns a flat, unordered set of particles.
type System struct {
	particles []*Particle
	fountains []*Fountain
	rng       *rand.Rand
	spawned   int64
}

type Option func(*System)

// WithRand sets the random source used by fountains.
func WithRand(rng *rand.Rand) Option {
	return func(s *System) {
		s.rng = rng
	}
}

func NewSystem(opts ...Option) *System {
	s := &System{}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return s
}

// Rand is the random source of the system, for generators that need one.
func (s *System) Rand() *rand.Rand {
	return s.rng
}

// Add hands particles to the system. Nil particles are ignored.
func (s *System) Add(ps ...*Particle) {
	for _, p := range ps {
		if p != nil {
			s.particles = append(s.particles, p)
		}
	}
}

func (s *System) AddFountain(f *Fountain) *Fountain {
	s.fountains = append(s.fountains, f)
	return f
}

func (s *System) RemoveFountain(f *Fountain) {
	s.fountains = slices.DeleteFunc(s.fountains, func(o *Fountain) bool {
		return o == f
	})
}

// Tick spawns the fountains' particles, advances every particle one frame
// and purges the dead ones.
func (s *System) Tick() {
	for _, f := range s.fountains {
		for range f.Count(s.rng) {
			s.Add(f.Generator(s.rng))
			s.spawned++
		}
	}

	for _, p := range s.particles {
		p.Tick()
	}

	s.particles = slices.DeleteFunc(s.particles, func(p *Particle) bool {
		return p.dead
	})
}

func (s *System) Draw(surf gfx.Surface) {
	for _, p := range s.particles {
		p.Draw(surf)
	}
}

func (s *System) Len() int {
	return len(s.particles)
}

// Fountains returns the number of active fountains.
func (s *System) Fountains() int {
	return len(s.fountains)
}

// Spawned is the number of particles fountains made since creation.
func (s *System) Spawned() int64 {
	return s.spawned
}

// Clear drops every particle. Fountains are kept.
func (s *System) Clear() {
	clear(s.particles)
	s.particles = s.particles[:0]
}
