package sink

import (
	"math"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
)

// Palette is the stroke and fill colour of one kind of furniture.
type Palette struct {
	Stroke string
	Fill   string
}

var palettes = map[floor.Kind]Palette{
	floor.KindDesk:  {Stroke: "#0000FF", Fill: "#ADD8E6"},
	floor.KindTable: {Stroke: "#008000", Fill: "#90EE90"},
	floor.KindChair: {Stroke: "#FFA500", Fill: "#FFFF00"},
}

// PaletteFor returns the colours used for kind k.
func PaletteFor(k floor.Kind) Palette {
	if p, ok := palettes[k]; ok {
		return p
	}
	return Palette{Stroke: "#000000", Fill: "#FFFFFF"}
}

// Label returns the caption drawn inside an entity.
func Label(k floor.Kind) string {
	switch k {
	case floor.KindDesk:
		return "Desk"
	case floor.KindTable:
		return "Table"
	case floor.KindChair:
		return "Chair"
	}
	return string(k)
}

const (
	fontHeightRatio = 0.6
	fontWidthRatio  = 0.85
	fontCharWidth   = 0.55
	fontSizeMin     = 6.0
	fontSizeMax     = 18.0
)

// fontSize picks a label size that fits a w x h box for text of n runes.
func fontSize(w, h float64, n int) float64 {
	n = max(1, n)
	byHeight := h * fontHeightRatio
	byWidth := (w * fontWidthRatio) / (float64(n) * fontCharWidth)
	return max(fontSizeMin, min(fontSizeMax, byHeight, byWidth))
}

// canvas maps room centimetres onto output pixels with y pointing down.
type canvas struct {
	room  floor.Dimension
	scale float64
	left  float64
	top   float64
	w, h  float64
}

const titleBand = 30.0

func newCanvas(room floor.Dimension, c config) canvas {
	top := c.margin
	if c.title != "" {
		top += titleBand
	}
	return canvas{
		room:  room,
		scale: c.scale,
		left:  c.margin,
		top:   top,
		w:     room.Width*c.scale + 2*c.margin,
		h:     room.Height*c.scale + top + c.margin,
	}
}

// rect converts a room rectangle into pixel space.
func (cv canvas) rect(r floor.Rect) (x, y, w, h float64) {
	return cv.left + r.X*cv.scale,
		cv.top + (cv.room.Height-r.Top())*cv.scale,
		r.W * cv.scale,
		r.H * cv.scale
}

func (cv canvas) x(cm float64) float64 { return cv.left + cm*cv.scale }
func (cv canvas) y(cm float64) float64 { return cv.top + (cv.room.Height-cm)*cv.scale }

// ticks returns the axis tick positions from 0 to limit inclusive.
func ticks(limit, step float64) []float64 {
	n := int(math.Floor(limit/step)) + 1
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, float64(i)*step)
	}
	return out
}
