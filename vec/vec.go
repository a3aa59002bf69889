// Package vec holds the small amount of 2D math the simulation needs:
// vectors, axis-aligned rectangles and a few easing helpers.
// Angles are in degrees, with y pointing down the screen.
package vec

import "math"

const radians = math.Pi / 180

// Vec2 is a 2D float vector.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Polar returns the vector of length r pointing at angle degrees.
func Polar(r, angle float64) Vec2 {
	s, c := math.Sincos(angle * radians)
	return Vec2{X: c * r, Y: s * r}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vec2) LenSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) DistanceTo(o Vec2) float64 {
	return o.Sub(v).Len()
}

// Angle returns the direction of v in degrees, in (-180, 180].
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X) / radians
}

// Normalize returns the unit vector of v. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// ScaleToLength returns v with length l. The zero vector stays zero.
func (v Vec2) ScaleToLength(l float64) Vec2 {
	return v.Normalize().Scale(l)
}

// ClampLength shortens v to at most maxi.
func (v Vec2) ClampLength(maxi float64) Vec2 {
	if v.Len() > maxi {
		return v.ScaleToLength(maxi)
	}
	return v
}

// Rotate rotates v by angle degrees.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle * radians)
	return Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Perp returns v rotated by 90 degrees.
func (v Vec2) Perp() Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// PartPerpTo returns the component of v perpendicular to o.
func (v Vec2) PartPerpTo(o Vec2) Vec2 {
	if o.LenSquared() == 0 {
		return v
	}
	n := o.Normalize()
	return v.Sub(n.Scale(n.Dot(v)))
}

// Ints truncates both coordinates.
func (v Vec2) Ints() (int, int) {
	return int(v.X), int(v.Y)
}
