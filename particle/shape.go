package particle

import (
	"github.com/plus3/flyre/gfx"
	"github.com/plus3/flyre/vec"
)

// Shape draws a particle. Shapes are owned by a single particle and may
// cache per-particle resources.
type Shape interface {
	Draw(s gfx.Surface, p *Particle)
}

// CircleShape is a disc of radius Size, or its outline.
type CircleShape struct {
	Outline bool
}

func (c *CircleShape) Draw(s gfx.Surface, p *Particle) {
	if c.Outline {
		s.StrokeCircle(p.Pos, p.Size, 1, p.DrawColor())
		return
	}
	s.FillCircle(p.Pos, p.Size, p.DrawColor())
}

// SquareShape is an axis-aligned square of side Size with its corner at
// the particle position.
type SquareShape struct{}

func (*SquareShape) Draw(s gfx.Surface, p *Particle) {
	s.FillRect(vec.Rect{Pos: p.Pos, Size: vec.V(p.Size, p.Size)}, p.DrawColor())
}

// PolygonShape is a regular polygon of radius Size turned by the inner
// rotation. Vertices are joined every Step vertices, so a step coprime with
// the vertex count draws a star.
type PolygonShape struct {
	Vertices int
	Step     int
	points   []vec.Vec2
}

func (ps *PolygonShape) Draw(s gfx.Surface, p *Particle) {
	step := max(ps.Step, 1)
	ps.points = ps.points[:0]
	for i := range ps.Vertices {
		angle := p.InnerRotation + float64(i*step)*360/float64(ps.Vertices)
		ps.points = append(ps.points, p.Pos.Add(vec.Polar(p.Size, angle)))
	}
	s.FillPolygon(ps.points, p.DrawColor())
}

// ShardShape is a kite pointing along the heading. Its half-width is Size;
// Head and Tail are the lengths in front of and behind the particle, in
// multiples of Size.
type ShardShape struct {
	Head float64
	Tail float64
}

func (sh *ShardShape) Draw(s gfx.Surface, p *Particle) {
	dir := vec.Polar(p.Size, p.Angle)
	cross := dir.Perp()
	s.FillPolygon([]vec.Vec2{
		p.Pos.Add(dir.Scale(sh.Head)),
		p.Pos.Add(cross),
		p.Pos.Sub(dir.Scale(sh.Tail)),
		p.Pos.Sub(cross),
	}, p.DrawColor())
}

// LineShape is a segment trailing behind the particle.
type LineShape struct {
	Length float64
	Width  float64
}

func (l *LineShape) Draw(s gfx.Surface, p *Particle) {
	end := p.Pos.Sub(vec.Polar(l.Length, p.Angle))
	s.Line(p.Pos, end, l.Width, p.DrawColor())
}

// ImageShape blits an image centered on the particle, scaled so that its
// smaller side equals Size. The scaled copy is only remade when the integer
// size changes.
type ImageShape struct {
	Source gfx.Image

	scaled     gfx.Image
	scaledSize int
	// Rescales counts how many scaled copies were made.
	Rescales int
}

func (im *ImageShape) Draw(s gfx.Surface, p *Particle) {
	size := int(p.Size)
	if im.scaled == nil || size != im.scaledSize {
		w, h := im.Source.Size()
		ratio := p.Size / float64(max(min(w, h), 1))
		im.scaled = s.Scale(im.Source, int(float64(w)*ratio), int(float64(h)*ratio))
		im.scaledSize = size
		im.Rescales++
	}
	s.Blit(im.scaled, p.Pos, p.Alpha)
}
