package particle

import (
	"image/color"
	"math"

	"github.com/plus3/flyre/gfx"
	"github.com/plus3/flyre/vec"
)

// Builder configures a particle before it is handed to a System.
//
//	p := particle.Circle(color.White).
//		At(pos, angle).
//		Velocity(4, 0).
//		Living(30).
//		AnimFade().
//		Build()
type Builder struct {
	p *Particle
}

// New starts a particle drawn with shape. The defaults are a white particle
// of size 10 going up at 3 px/frame for 60 frames.
func New(shape Shape) *Builder {
	return &Builder{p: &Particle{
		Angle:    -90,
		Speed:    3,
		Size:     10,
		Lifespan: 60,
		Color:    color.NRGBA{R: 255, G: 255, B: 255, A: 255},
		Alpha:    255,
		Shape:    shape,
	}}
}

func Circle(c color.Color) *Builder {
	return New(&CircleShape{}).Color(c)
}

func Square(c color.Color) *Builder {
	return New(&SquareShape{}).Color(c)
}

// Polygon builds a regular polygon, or a star when step is coprime with
// vertices and greater than one.
func Polygon(vertices, step int, c color.Color) *Builder {
	return New(&PolygonShape{Vertices: vertices, Step: step}).Color(c)
}

func Shard(head, tail float64, c color.Color) *Builder {
	return New(&ShardShape{Head: head, Tail: tail}).Color(c)
}

func Line(length, width float64, c color.Color) *Builder {
	return New(&LineShape{Length: length, Width: width}).Color(c)
}

// Image builds a particle showing img, initially at its natural size.
func Image(img gfx.Image) *Builder {
	w, h := img.Size()
	return New(&ImageShape{Source: img}).Sized(float64(min(w, h)))
}

// TextRenderer rasterizes strings. *gfx.TextCache implements it.
type TextRenderer interface {
	Render(s string, c color.Color) gfx.Image
}

// Text builds a particle showing s, for floating labels like damage numbers.
func Text(r TextRenderer, s string, c color.Color) *Builder {
	return Image(r.Render(s, c))
}

// At sets the initial position and heading.
func (b *Builder) At(pos vec.Vec2, angle float64) *Builder {
	b.p.Pos = pos
	b.p.Angle = angle
	return b
}

// Velocity sets the speed along the heading, in px/frame, and how fast the
// heading turns, in degrees/frame.
func (b *Builder) Velocity(speed, angularVel float64) *Builder {
	b.p.Speed = speed
	b.p.AngularVel = angularVel
	return b
}

// ConstantForce adds f to the position every frame.
func (b *Builder) ConstantForce(f vec.Vec2) *Builder {
	b.p.Force = f
	return b
}

// Acceleration is added to the speed every frame.
func (b *Builder) Acceleration(acc float64) *Builder {
	b.p.Acc = acc
	return b
}

// InnerRotation spins the shape without affecting the motion.
func (b *Builder) InnerRotation(start, speed float64) *Builder {
	b.p.InnerRotation = start
	b.p.InnerRotationSpeed = speed
	return b
}

func (b *Builder) Sized(size float64) *Builder {
	b.p.Size = size
	return b
}

// Living sets the lifespan in frames.
func (b *Builder) Living(frames int) *Builder {
	b.p.Lifespan = frames
	return b
}

func (b *Builder) Color(c color.Color) *Builder {
	n := gfx.ToNRGBA(c)
	b.p.Color = n
	b.p.Alpha = n.A
	return b
}

// Named sets a colour by CSS name or "#rrggbb". It panics on unknown names.
func (b *Builder) Named(name string) *Builder {
	return b.Color(gfx.MustNamed(name))
}

// HSV sets an opaque colour from a hue in degrees and saturation and value
// in [0, 1].
func (b *Builder) HSV(hue, saturation, value float64) *Builder {
	return b.Color(gfx.HSV(hue, saturation, value))
}

// Anim appends a per-frame animation. Animations run in the order they were
// added.
func (b *Builder) Anim(a Anim) *Builder {
	b.p.anims = append(b.p.anims, a)
	return b
}

// AnimFade makes the particle fade out over its life.
func (b *Builder) AnimFade() *Builder {
	return b.Anim(func(p *Particle) {
		p.Alpha = uint8(255 * (1 - p.life))
	})
}

// AnimBlink fades the particle in until upDuration of its life, then out.
// pow shapes the curves.
func (b *Builder) AnimBlink(upDuration, pow float64) *Builder {
	return b.Anim(func(p *Particle) {
		var a float64
		if p.life < upDuration {
			a = p.life / upDuration
		} else {
			a = (1 - p.life) / (1 - upDuration)
		}
		p.Alpha = uint8(255 * vec.Clamp(math.Pow(a, pow), 0, 1))
	})
}

// AnimShrink scales the particle down from its size at the time of the call
// to zero.
func (b *Builder) AnimShrink() *Builder {
	initial := b.p.Size
	return b.Anim(func(p *Particle) {
		p.Size = initial * (1 - p.life)
	})
}

// AnimColor blends from the current colour to target over the life.
func (b *Builder) AnimColor(target color.Color) *Builder {
	from := b.p.Color
	to := gfx.ToNRGBA(target)
	return b.Anim(func(p *Particle) {
		alpha := p.Alpha
		p.Color = gfx.Mix(from, to, p.life)
		p.Alpha = alpha
	})
}

// AnimBounceRect keeps the particle inside r by reflecting its heading off
// the edges.
func (b *Builder) AnimBounceRect(r vec.Rect) *Builder {
	return b.Anim(func(p *Particle) {
		angle := mod360(p.Angle)
		switch {
		case p.Pos.X-p.Size < r.Left() && angle > 90 && angle < 270:
			p.Angle = 180 - angle
		case p.Pos.X+p.Size > r.Right() && (angle < 90 || angle > 270):
			p.Angle = 180 - angle
		}

		angle = mod360(p.Angle)
		switch {
		case p.Pos.Y-p.Size < r.Top() && angle > 180:
			p.Angle = -angle
		case p.Pos.Y+p.Size > r.Bottom() && angle < 180:
			p.Angle = -angle
		}
	})
}

// Apply calls fn on the builder, to share common settings between
// particles.
func (b *Builder) Apply(fn func(b *Builder)) *Builder {
	fn(b)
	return b
}

func (b *Builder) Build() *Particle {
	return b.p
}

func mod360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
