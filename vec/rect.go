package vec

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	Pos  Vec2
	Size Vec2
}

// R builds a Rect from its top-left corner and dimensions.
func R(x, y, w, h float64) Rect {
	return Rect{Pos: V(x, y), Size: V(w, h)}
}

func (r Rect) Left() float64   { return r.Pos.X }
func (r Rect) Top() float64    { return r.Pos.Y }
func (r Rect) Right() float64  { return r.Pos.X + r.Size.X }
func (r Rect) Bottom() float64 { return r.Pos.Y + r.Size.Y }

func (r Rect) Center() Vec2 {
	return r.Pos.Add(r.Size.Scale(0.5))
}

// Contains reports whether p lies inside r. The right and bottom edges are
// excluded.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Left() && p.X < r.Right() && p.Y >= r.Top() && p.Y < r.Bottom()
}

// Intersects reports whether r and o overlap with a non-empty area.
func (r Rect) Intersects(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() &&
		r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// PointAt returns the point at the given proportions of the rectangle.
// (0, 0) is the top-left corner and (1, 1) the bottom-right one.
func (r Rect) PointAt(px, py float64) Vec2 {
	return V(r.Pos.X+r.Size.X*px, r.Pos.Y+r.Size.Y*py)
}
