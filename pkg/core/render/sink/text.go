package sink

import (
	"fmt"
	"math"
	"strings"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/core/size"
	"github.com/matzehuels/cafeplan/pkg/errors"
)

// maxCells caps the character grid of [RenderText].
const maxCells = 1 << 20

// Glyphs used by [RenderText].
const (
	GlyphEmpty = '.'
	GlyphDesk  = 'D'
	GlyphTable = 'T'
	GlyphChair = 'c'
)

func glyph(k floor.Kind) rune {
	switch k {
	case floor.KindDesk:
		return GlyphDesk
	case floor.KindTable:
		return GlyphTable
	case floor.KindChair:
		return GlyphChair
	}
	return '?'
}

// RenderText sketches the layout as ASCII art. Each character covers a square
// of [WithCellSize] centimetres and shows whatever covers its centre.
func RenderText(res floor.Result, opts ...Option) ([]byte, error) {
	c := newConfig(opts...)
	grid, err := Grid(res, c.cell)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	if c.title != "" {
		fmt.Fprintf(&b, "%s (%s cm, 1 char = %s cm)\n", c.title,
			size.Format(res.Room.Width, res.Room.Height), size.Format(c.cell))
	}
	width := 0
	if len(grid) > 0 {
		width = len(grid[0])
	}
	border := "+" + strings.Repeat("-", width) + "+\n"
	b.WriteString(border)
	for _, line := range grid {
		b.WriteByte('|')
		b.WriteString(string(line))
		b.WriteString("|\n")
	}
	b.WriteString(border)
	if c.labels {
		fmt.Fprintf(&b, "%c desk  %c table  %c chair  (%d tables, %d chairs)\n",
			GlyphDesk, GlyphTable, GlyphChair, len(res.Tables), len(res.Chairs))
	}
	return []byte(b.String()), nil
}

// Grid rasterises the layout with cells of the given size in centimetres.
// Row 0 is the wall at the top of the room. Grids above a million cells
// fail with INVALID_STYLE.
func Grid(res floor.Result, cell float64) ([][]rune, error) {
	if cell <= 0 {
		cell = DefaultCellSize
	}
	fc, fr := math.Ceil(res.Room.Width/cell), math.Ceil(res.Room.Height/cell)
	if !(fc*fr <= maxCells) {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "text grid of %.0fx%.0f cells is out of range, use a larger cell size", fc, fr)
	}
	cols, rows := int(fc), int(fr)
	grid := make([][]rune, rows)
	for j := range grid {
		grid[j] = []rune(strings.Repeat(string(GlyphEmpty), cols))
	}

	for _, e := range res.Entities() {
		g := glyph(e.Kind)
		for j := 0; j < rows; j++ {
			cy := res.Room.Height - (float64(j)+0.5)*cell
			if cy < e.Y || cy > e.Top() {
				continue
			}
			for i := 0; i < cols; i++ {
				cx := (float64(i) + 0.5) * cell
				if cx >= e.X && cx <= e.Right() {
					grid[j][i] = g
				}
			}
		}
	}
	return grid, nil
}
