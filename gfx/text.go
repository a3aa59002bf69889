package gfx

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

type textKey struct {
	s string
	c color.NRGBA
}

// TextCache rasterizes strings once per (text, colour) pair.
type TextCache struct {
	face       text.Face
	images     map[textKey]Picture
	maxEntries int
}

// NewTextCache renders with face, or with the x/image 7x13 bitmap face when
// face is nil. The cache is dropped wholesale once it holds maxEntries images.
func NewTextCache(face text.Face, maxEntries int) *TextCache {
	if face == nil {
		face = text.NewGoXFace(basicfont.Face7x13)
	}
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &TextCache{
		face:       face,
		images:     make(map[textKey]Picture),
		maxEntries: maxEntries,
	}
}

// Render returns the image of s drawn in c.
func (tc *TextCache) Render(s string, c color.Color) Image {
	key := textKey{s: s, c: ToNRGBA(c)}
	if img, ok := tc.images[key]; ok {
		return img
	}

	if len(tc.images) >= tc.maxEntries {
		clear(tc.images)
	}

	w, h := text.Measure(s, tc.face, 0)
	img := ebiten.NewImage(max(int(math.Ceil(w)), 1), max(int(math.Ceil(h)), 1))

	op := &text.DrawOptions{}
	op.ColorScale.ScaleWithColor(c)
	text.Draw(img, s, tc.face, op)

	pic := Picture{Image: img}
	tc.images[key] = pic
	return pic
}

// Len returns the number of cached images.
func (tc *TextCache) Len() int {
	return len(tc.images)
}
