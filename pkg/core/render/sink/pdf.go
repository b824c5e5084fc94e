package sink

import (
	"context"

	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/core/render"
)

// RenderPDF renders the layout as SVG and converts it with rsvg-convert.
// It fails with UNSUPPORTED when librsvg is not installed.
func RenderPDF(ctx context.Context, res floor.Result, opts ...Option) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(res, opts...))
}
