package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/core/size"
	"github.com/matzehuels/cafeplan/pkg/errors"
)

// maxPixels caps the raster size so a huge room or scale cannot exhaust
// memory.
const maxPixels = 64 << 20

// RenderPNG rasterises the layout. Labels use gg's built-in bitmap font, so no
// font files are needed.
func RenderPNG(res floor.Result, opts ...Option) ([]byte, error) {
	c := newConfig(opts...)
	cv := newCanvas(res.Room, c)

	fw, fh := math.Ceil(cv.w), math.Ceil(cv.h)
	if !(fw > 0 && fh > 0 && fw*fh <= maxPixels) {
		return nil, errors.New(errors.ErrCodeInvalidStyle, "png of %.0fx%.0f pixels is out of range", fw, fh)
	}
	width, height := int(fw), int(fh)

	dc := gg.NewContext(width, height)
	dc.SetHexColor("#FFFFFF")
	dc.Clear()

	if c.title != "" {
		dc.SetHexColor("#000000")
		dc.DrawStringAnchored(c.title, cv.w/2, c.margin+titleBand/2, 0.5, 0.5)
	}

	x, y, w, h := cv.rect(res.Room.Bounds())
	dc.DrawRectangle(x, y, w, h)
	dc.SetHexColor("#000000")
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.SetLineWidth(1)
	for _, e := range res.Entities() {
		p := PaletteFor(e.Kind)
		x, y, w, h := cv.rect(e.Rect)
		dc.DrawRectangle(x, y, w, h)
		dc.SetHexColor(p.Fill)
		dc.FillPreserve()
		dc.SetHexColor(p.Stroke)
		dc.Stroke()
		if c.labels {
			dc.SetHexColor("#000000")
			dc.DrawStringAnchored(Label(e.Kind), x+w/2, y+h/2, 0.5, 0.5)
		}
	}

	if c.axes {
		dc.SetHexColor("#333333")
		baseline := cv.y(0)
		for _, t := range ticks(res.Room.Width, c.tick) {
			dc.DrawStringAnchored(size.Format(t), cv.x(t), baseline+12, 0.5, 0.5)
		}
		for _, t := range ticks(res.Room.Height, c.tick) {
			dc.DrawStringAnchored(size.Format(t), cv.x(0)-6, cv.y(t), 1, 0.5)
		}
		dc.DrawStringAnchored("Width (cm)", cv.x(res.Room.Width/2), baseline+30, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
