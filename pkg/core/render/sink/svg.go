package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/core/size"
)

// RenderSVG draws the layout as a standalone SVG document.
func RenderSVG(res floor.Result, opts ...Option) []byte {
	c := newConfig(opts...)
	cv := newCanvas(res.Room, c)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		cv.w, cv.h, cv.w, cv.h)
	fmt.Fprintf(&buf, `  <rect width="%.1f" height="%.1f" fill="#FFFFFF"/>`+"\n", cv.w, cv.h)

	if c.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="16">%s</text>`+"\n",
			cv.w/2, c.margin+titleBand/2, escape(c.title))
	}

	x, y, w, h := cv.rect(res.Room.Bounds())
	fmt.Fprintf(&buf, `  <rect class="room" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#000000" stroke-width="2"/>`+"\n",
		x, y, w, h)

	buf.WriteString(`  <g class="furniture">` + "\n")
	counts := map[floor.Kind]int{}
	for _, e := range res.Entities() {
		renderEntitySVG(&buf, cv, e, counts[e.Kind], c.labels)
		counts[e.Kind]++
	}
	buf.WriteString("  </g>\n")

	if c.axes {
		renderAxesSVG(&buf, cv, c)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderEntitySVG(buf *bytes.Buffer, cv canvas, e floor.Entity, idx int, labels bool) {
	p := PaletteFor(e.Kind)
	x, y, w, h := cv.rect(e.Rect)
	fmt.Fprintf(buf, `    <rect id="%s-%d" class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
		e.Kind, idx, e.Kind, x, y, w, h, p.Fill, p.Stroke)
	if !labels {
		return
	}
	label := Label(e.Kind)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" dominant-baseline="middle" font-family="sans-serif" font-size="%.1f" fill="#000000">%s</text>`+"\n",
		x+w/2, y+h/2, fontSize(w, h, len(label)), label)
}

func renderAxesSVG(buf *bytes.Buffer, cv canvas, c config) {
	buf.WriteString(`  <g class="axes" font-family="sans-serif" font-size="10" fill="#333333">` + "\n")
	baseline := cv.y(0)
	for _, t := range ticks(cv.room.Width, c.tick) {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle">%s</text>`+"\n",
			cv.x(t), baseline+14, size.Format(t))
	}
	for _, t := range ticks(cv.room.Height, c.tick) {
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="end" dominant-baseline="middle">%s</text>`+"\n",
			cv.x(0)-6, cv.y(t), size.Format(t))
	}
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle">Width (cm)</text>`+"\n",
		cv.x(cv.room.Width/2), baseline+32)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" text-anchor="middle" transform="rotate(-90 %.1f %.1f)">Depth (cm)</text>`+"\n",
		cv.x(0)-40, cv.y(cv.room.Height/2), cv.x(0)-40, cv.y(cv.room.Height/2))
	buf.WriteString("  </g>\n")
}

func escape(s string) string {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
