package gfx

import (
	"image/color"
	"testing"

	"github.com/plus3/flyre/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamed(t *testing.T) {
	c, ok := Named("white")
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, c)

	c, ok = Named("#00a590")
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 0, G: 0xa5, B: 0x90, A: 255}, c)

	_, ok = Named("not-a-colour")
	assert.False(t, ok)

	assert.Panics(t, func() { MustNamed("nope") })
}

func TestHSV(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, HSV(0, 1, 1))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, HSV(360, 1, 1))
	assert.Equal(t, color.NRGBA{A: 255}, HSV(120, 1, 0))
}

func TestMix(t *testing.T) {
	black := color.NRGBA{A: 255}
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 0}

	assert.Equal(t, black, Mix(black, white, 0))
	assert.Equal(t, white, Mix(black, white, 1))

	mid := Mix(black, white, 0.5)
	assert.InDelta(t, 128, int(mid.R), 1)
	assert.InDelta(t, 128, int(mid.A), 1)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(320, 200)
	assert.Equal(t, vec.V(320, 200), r.Size())

	r.Fill(color.Black)
	r.FillCircle(vec.V(1, 2), 3, color.White)
	img := r.Scale(Blank{W: 10, H: 10}, 0, 5)
	r.Blit(img, vec.V(5, 5), 128)
	r.Scroll(2, -1)

	require.Len(t, r.Calls, 5)
	assert.Equal(t, OpFillCircle, r.Calls[1].Op)
	assert.Equal(t, 3.0, r.Calls[1].Size)

	w, h := img.Size()
	assert.Equal(t, 1, w, "scaled images are at least one pixel wide")
	assert.Equal(t, 5, h)

	assert.Len(t, r.Only(OpBlit, OpScale), 2)
	assert.Equal(t, vec.V(2, -1), r.Offset)

	r.Reset()
	assert.Empty(t, r.Calls)
	assert.Zero(t, r.Counts[OpFill])
}

func TestRecorderCountOnly(t *testing.T) {
	r := &Recorder{W: 10, H: 10}
	r.Line(vec.V(0, 0), vec.V(1, 1), 1, color.White)
	r.Line(vec.V(0, 0), vec.V(1, 1), 1, color.White)

	assert.Empty(t, r.Calls)
	assert.Equal(t, 2, r.Counts[OpLine])
}

func TestRotatedSize(t *testing.T) {
	w, h := RotatedSize(10, 4, 0)
	assert.Equal(t, [2]int{10, 4}, [2]int{w, h})
	w, h = RotatedSize(10, 4, 90)
	assert.Equal(t, [2]int{4, 10}, [2]int{w, h})
	w, h = RotatedSize(10, 4, -180)
	assert.Equal(t, [2]int{10, 4}, [2]int{w, h})
	w, h = RotatedSize(10, 10, 45)
	assert.Equal(t, [2]int{15, 15}, [2]int{w, h})
}

func TestRecorderRotateAndTint(t *testing.T) {
	r := NewRecorder(100, 100)
	base := Blank{W: 10, H: 4}

	turned := r.Rotate(base, 90)
	assert.Equal(t, Blank{W: 4, H: 10}, turned)

	red := r.Tint(turned, color.NRGBA{R: 255, A: 255})
	w, h := red.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 10, h)
	assert.Equal(t, Tinted{Source: turned, Color: color.NRGBA{R: 255, A: 255}}, red)

	assert.Equal(t, 1, r.Counts[OpRotate])
	assert.Equal(t, 1, r.Counts[OpTint])
	assert.Equal(t, 90.0, r.Calls[0].Size)
}
