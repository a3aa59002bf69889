package gfx

import (
	"image/color"

	"github.com/plus3/flyre/vec"
)

// Op names the Surface method a Call was recorded from.
type Op string

const (
	OpFill         Op = "fill"
	OpFillCircle   Op = "fill-circle"
	OpStrokeCircle Op = "stroke-circle"
	OpFillRect     Op = "fill-rect"
	OpStrokeRect   Op = "stroke-rect"
	OpFillPolygon  Op = "fill-polygon"
	OpLine         Op = "line"
	OpBlit         Op = "blit"
	OpScale        Op = "scale"
	OpRotate       Op = "rotate"
	OpTint         Op = "tint"
	OpScroll       Op = "scroll"
)

// Call is one recorded drawing operation.
type Call struct {
	Op     Op
	Points []vec.Vec2
	Size   float64
	Color  color.Color
	Image  Image
	Alpha  uint8
}

// Blank is an Image with dimensions and no pixels.
type Blank struct {
	W, H int
}

func (b Blank) Size() (int, int) {
	return b.W, b.H
}

// Tinted is the Image a Recorder returns from Tint.
type Tinted struct {
	Source Image
	Color  color.NRGBA
}

func (t Tinted) Size() (int, int) {
	return t.Source.Size()
}

// Recorder is a Surface that keeps every call instead of drawing. Headless
// runs use it with Keep set to false to only count calls.
type Recorder struct {
	W, H   float64
	Keep   bool
	Calls  []Call
	Counts map[Op]int
	Offset vec.Vec2
}

// NewRecorder returns a recorder of the given size that keeps its calls.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h, Keep: true, Counts: make(map[Op]int)}
}

// Reset forgets all recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
	clear(r.Counts)
	r.Offset = vec.Vec2{}
}

// Only returns the recorded calls of the given operations.
func (r *Recorder) Only(ops ...Op) []Call {
	var out []Call
	for _, c := range r.Calls {
		for _, op := range ops {
			if c.Op == op {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func (r *Recorder) record(c Call) {
	if r.Counts == nil {
		r.Counts = make(map[Op]int)
	}
	r.Counts[c.Op]++
	if r.Keep {
		r.Calls = append(r.Calls, c)
	}
}

func (r *Recorder) Size() vec.Vec2 {
	return vec.V(r.W, r.H)
}

func (r *Recorder) Fill(c color.Color) {
	r.record(Call{Op: OpFill, Color: c})
}

func (r *Recorder) FillCircle(center vec.Vec2, radius float64, c color.Color) {
	r.record(Call{Op: OpFillCircle, Points: []vec.Vec2{center}, Size: radius, Color: c})
}

func (r *Recorder) StrokeCircle(center vec.Vec2, radius, width float64, c color.Color) {
	r.record(Call{Op: OpStrokeCircle, Points: []vec.Vec2{center}, Size: radius, Color: c})
}

func (r *Recorder) FillRect(rect vec.Rect, c color.Color) {
	r.record(Call{Op: OpFillRect, Points: []vec.Vec2{rect.Pos, rect.Size}, Color: c})
}

func (r *Recorder) StrokeRect(rect vec.Rect, width float64, c color.Color) {
	r.record(Call{Op: OpStrokeRect, Points: []vec.Vec2{rect.Pos, rect.Size}, Size: width, Color: c})
}

func (r *Recorder) FillPolygon(points []vec.Vec2, c color.Color) {
	r.record(Call{Op: OpFillPolygon, Points: append([]vec.Vec2(nil), points...), Color: c})
}

func (r *Recorder) Line(from, to vec.Vec2, width float64, c color.Color) {
	r.record(Call{Op: OpLine, Points: []vec.Vec2{from, to}, Size: width, Color: c})
}

func (r *Recorder) Blit(img Image, center vec.Vec2, alpha uint8) {
	r.record(Call{Op: OpBlit, Points: []vec.Vec2{center}, Image: img, Alpha: alpha})
}

func (r *Recorder) Scale(img Image, w, h int) Image {
	out := Blank{W: max(w, 1), H: max(h, 1)}
	r.record(Call{Op: OpScale, Image: out})
	return out
}

func (r *Recorder) Rotate(img Image, degrees float64) Image {
	w, h := img.Size()
	rw, rh := RotatedSize(w, h, degrees)
	out := Blank{W: max(rw, 1), H: max(rh, 1)}
	r.record(Call{Op: OpRotate, Size: degrees, Image: out})
	return out
}

func (r *Recorder) Tint(img Image, c color.Color) Image {
	out := Tinted{Source: img, Color: ToNRGBA(c)}
	r.record(Call{Op: OpTint, Color: c, Image: out})
	return out
}

func (r *Recorder) Scroll(dx, dy float64) {
	r.Offset = r.Offset.Add(vec.V(dx, dy))
	r.record(Call{Op: OpScroll, Points: []vec.Vec2{vec.V(dx, dy)}})
}
