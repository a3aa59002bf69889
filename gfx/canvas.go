package gfx

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/flyre/vec"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// white returns a 1x1 white source image for DrawTriangles. It is cut out of
// a 3x3 image so that linear filtering never samples outside the white area.
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Picture adapts an ebiten image to Image.
type Picture struct {
	*ebiten.Image
}

// FromEbiten wraps img so it can be drawn through a Surface.
func FromEbiten(img *ebiten.Image) Picture {
	return Picture{Image: img}
}

func (p Picture) Size() (int, int) {
	b := p.Bounds()
	return b.Dx(), b.Dy()
}

// Canvas is a Surface drawing onto an ebiten image. Scroll does not move
// pixels; it accumulates an offset that the presenter applies when the
// canvas is copied to the screen.
type Canvas struct {
	target    *ebiten.Image
	offset    vec.Vec2
	AntiAlias bool

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewCanvas returns a canvas drawing onto target.
func NewCanvas(target *ebiten.Image) *Canvas {
	return &Canvas{target: target, AntiAlias: true}
}

// Target returns the image the canvas draws onto.
func (c *Canvas) Target() *ebiten.Image {
	return c.target
}

// Offset returns the accumulated scroll and resets it.
func (c *Canvas) Offset() vec.Vec2 {
	o := c.offset
	c.offset = vec.Vec2{}
	return o
}

func (c *Canvas) Size() vec.Vec2 {
	b := c.target.Bounds()
	return vec.V(float64(b.Dx()), float64(b.Dy()))
}

func (c *Canvas) Fill(clr color.Color) {
	c.target.Fill(clr)
}

func (c *Canvas) FillCircle(center vec.Vec2, radius float64, clr color.Color) {
	vector.DrawFilledCircle(c.target, float32(center.X), float32(center.Y), float32(radius), clr, c.AntiAlias)
}

func (c *Canvas) StrokeCircle(center vec.Vec2, radius, width float64, clr color.Color) {
	vector.StrokeCircle(c.target, float32(center.X), float32(center.Y), float32(radius), float32(width), clr, c.AntiAlias)
}

func (c *Canvas) FillRect(r vec.Rect, clr color.Color) {
	vector.DrawFilledRect(c.target, float32(r.Pos.X), float32(r.Pos.Y), float32(r.Size.X), float32(r.Size.Y), clr, c.AntiAlias)
}

func (c *Canvas) StrokeRect(r vec.Rect, width float64, clr color.Color) {
	vector.StrokeRect(c.target, float32(r.Pos.X), float32(r.Pos.Y), float32(r.Size.X), float32(r.Size.Y), float32(width), clr, c.AntiAlias)
}

func (c *Canvas) Line(from, to vec.Vec2, width float64, clr color.Color) {
	vector.StrokeLine(c.target, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), float32(width), clr, c.AntiAlias)
}

func (c *Canvas) FillPolygon(points []vec.Vec2, clr color.Color) {
	if len(points) < 3 {
		return
	}

	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	c.vertices, c.indices = path.AppendVerticesAndIndicesForFilling(c.vertices[:0], c.indices[:0])

	r, g, b, a := clr.RGBA()
	for i := range c.vertices {
		c.vertices[i].SrcX = 1
		c.vertices[i].SrcY = 1
		c.vertices[i].ColorR = float32(r) / 0xffff
		c.vertices[i].ColorG = float32(g) / 0xffff
		c.vertices[i].ColorB = float32(b) / 0xffff
		c.vertices[i].ColorA = float32(a) / 0xffff
	}

	op := &ebiten.DrawTrianglesOptions{
		AntiAlias: c.AntiAlias,
		FillRule:  ebiten.FillRuleNonZero,
	}
	c.target.DrawTriangles(c.vertices, c.indices, white(), op)
}

func (c *Canvas) Blit(img Image, center vec.Vec2, alpha uint8) {
	src := ebitenImage(img)
	w, h := img.Size()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(center.X-float64(w)/2, center.Y-float64(h)/2)
	op.ColorScale.ScaleAlpha(float32(alpha) / 255)
	c.target.DrawImage(src, op)
}

func (c *Canvas) Scale(img Image, w, h int) Image {
	w, h = max(w, 1), max(h, 1)
	src := ebitenImage(img)
	ow, oh := img.Size()

	dst := ebiten.NewImage(w, h)
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(float64(w)/float64(ow), float64(h)/float64(oh))
	dst.DrawImage(src, op)
	return Picture{Image: dst}
}

func (c *Canvas) Rotate(img Image, degrees float64) Image {
	src := ebitenImage(img)
	w, h := img.Size()
	rw, rh := RotatedSize(w, h, degrees)

	dst := ebiten.NewImage(max(rw, 1), max(rh, 1))
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	// y points down: a negative angle turns counterclockwise on screen.
	op.GeoM.Rotate(-degrees * math.Pi / 180)
	op.GeoM.Translate(float64(rw)/2, float64(rh)/2)
	dst.DrawImage(src, op)
	return Picture{Image: dst}
}

func (c *Canvas) Tint(img Image, clr color.Color) Image {
	src := ebitenImage(img)
	w, h := img.Size()
	n := ToNRGBA(clr)

	var cm colorm.ColorM
	cm.Scale(0, 0, 0, 1)
	cm.Translate(float64(n.R)/255, float64(n.G)/255, float64(n.B)/255, 0)

	dst := ebiten.NewImage(max(w, 1), max(h, 1))
	colorm.DrawImage(dst, src, cm, &colorm.DrawImageOptions{})
	return Picture{Image: dst}
}

func (c *Canvas) Scroll(dx, dy float64) {
	c.offset = c.offset.Add(vec.V(dx, dy))
}

func ebitenImage(img Image) *ebiten.Image {
	switch i := img.(type) {
	case Picture:
		return i.Image
	case *Picture:
		return i.Image
	default:
		panic(fmt.Sprintf("gfx: canvas cannot draw %T", img))
	}
}

// Present copies the canvas onto screen, applying the pending scroll.
func (c *Canvas) Present(screen *ebiten.Image) {
	o := c.Offset()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(math.Round(o.X), math.Round(o.Y))
	screen.DrawImage(c.target, op)
}
