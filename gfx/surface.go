// Package gfx is the drawing boundary of the simulation. Entities, particles
// and states render onto a Surface; Canvas implements it on top of an ebiten
// image and Recorder records the calls for tests and headless runs.
package gfx

import (
	"image/color"
	"math"

	"github.com/plus3/flyre/vec"
)

// Image is an opaque drawable produced by the asset layer or by Surface.Scale.
type Image interface {
	Size() (w, h int)
}

// Surface is everything the core needs to draw a frame.
type Surface interface {
	// Size returns the dimensions of the drawable area in pixels.
	Size() vec.Vec2

	Fill(c color.Color)
	FillCircle(center vec.Vec2, radius float64, c color.Color)
	StrokeCircle(center vec.Vec2, radius, width float64, c color.Color)
	FillRect(r vec.Rect, c color.Color)
	StrokeRect(r vec.Rect, width float64, c color.Color)
	FillPolygon(points []vec.Vec2, c color.Color)
	Line(from, to vec.Vec2, width float64, c color.Color)

	// Blit draws img centred on center with the given opacity.
	Blit(img Image, center vec.Vec2, alpha uint8)

	// Scale re-rasterizes img at w×h. This is expensive and callers are
	// expected to cache the result, as they are for Rotate and Tint.
	Scale(img Image, w, h int) Image
	// Rotate returns img turned counterclockwise by degrees, on an image
	// grown to RotatedSize.
	Rotate(img Image, degrees float64) Image
	// Tint returns the silhouette of img filled with c.
	Tint(img Image, c color.Color) Image

	// Scroll translates everything drawn so far this frame by (dx, dy).
	Scroll(dx, dy float64)
}

// RotatedSize is the size of the smallest image holding a w×h image turned
// by degrees.
func RotatedSize(w, h int, degrees float64) (int, int) {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	sin, cos = math.Abs(sin), math.Abs(cos)
	fw, fh := float64(w), float64(h)
	const eps = 1e-9
	return int(math.Ceil(fw*cos + fh*sin - eps)), int(math.Ceil(fw*sin + fh*cos - eps))
}
