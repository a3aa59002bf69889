package gfx

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Named looks a colour up by its CSS name ("white", "orange") or parses a
// "#rrggbb" hex string.
func Named(name string) (color.NRGBA, bool) {
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return color.NRGBA{}, false
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 255}, true
	}

	c, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}, true
}

// MustNamed is Named for colours known at compile time.
func MustNamed(name string) color.NRGBA {
	c, ok := Named(name)
	if !ok {
		panic("gfx: unknown colour " + name)
	}
	return c
}

// HSV builds an opaque colour from a hue in degrees and saturation and value
// in [0, 1].
func HSV(hue, saturation, value float64) color.NRGBA {
	r, g, b := colorful.Hsv(wrapHue(hue), clamp01(saturation), clamp01(value)).RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// Mix blends a (t=0) into b (t=1) in RGB space. Alpha is interpolated too.
func Mix(a, b color.NRGBA, t float64) color.NRGBA {
	t = clamp01(t)
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(alpha + 0.5)}
}

// ToNRGBA converts any colour to non-premultiplied form.
func ToNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func wrapHue(h float64) float64 {
	for h < 0 {
		h += 360
	}
	for h >= 360 {
		h -= 360
	}
	return h
}

func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
