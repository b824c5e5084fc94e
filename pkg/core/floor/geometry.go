package floor

import "math"

// Dimension is a width/height pair in centimetres.
type Dimension struct {
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Rect is an axis-aligned rectangle in room coordinates. X and Y locate the
// bottom-left corner.
type Rect struct {
	X float64 `json:"x" bson:"x" msgpack:"x"`
	Y float64 `json:"y" bson:"y" msgpack:"y"`
	W float64 `json:"width" bson:"width" msgpack:"width"`
	H float64 `json:"height" bson:"height" msgpack:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the upper edge.
func (r Rect) Top() float64 { return r.Y + r.H }

// CenterX returns the horizontal center point.
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center point.
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Contains reports whether o lies entirely within r. Shared edges count as
// inside.
func (r Rect) Contains(o Rect) bool {
	return r.X <= o.X && o.Right() <= r.Right() &&
		r.Y <= o.Y && o.Top() <= r.Top()
}

// Overlaps reports whether r and o share interior area. Rectangles that only
// touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Top() && o.Y < r.Top()
}

// Bounds returns the rectangle covering the whole room.
func (d Dimension) Bounds() Rect {
	return Rect{W: d.Width, H: d.Height}
}

func (d Dimension) valid() bool {
	return d.Width > 0 && d.Height > 0 && finite(d.Width) && finite(d.Height)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
