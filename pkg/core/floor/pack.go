package floor

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cafeplan/pkg/errors"
)

// NewTemplate returns the bounding box of one table-plus-chair unit. The
// table and chair are stacked along the depth axis with interUnitGap folded
// into the height.
func NewTemplate(table Dimension, chairHeight, interUnitGap float64) Slot {
	return Slot{
		Rect: Rect{
			W: table.Width,
			H: table.Height + chairHeight + interUnitGap,
		},
		Orientation: Orient0,
	}
}

// PackOption configures [Pack].
type PackOption func(*packConfig)

type packConfig struct {
	desk     *Dimension
	aisle    float64
	between  float64
	parallel int
}

// WithReservedZone keeps slots out of a desk of size d in the top-left
// corner of the room.
func WithReservedZone(d Dimension) PackOption {
	return func(c *packConfig) { c.desk = &d }
}

// WithAisleGap sets the spacing between rows.
func WithAisleGap(g float64) PackOption {
	return func(c *packConfig) { c.aisle = g }
}

// WithInterUnitGap sets the spacing between slots in the same row.
func WithInterUnitGap(g float64) PackOption {
	return func(c *packConfig) { c.between = g }
}

// WithParallelRows sweeps up to n rows concurrently. Values below 2 keep the
// sweep sequential. The output is identical either way.
func WithParallelRows(n int) PackOption {
	return func(c *packConfig) { c.parallel = n }
}

// Pack sweeps copies of tmpl across the room, right to left within a row and
// from the top row down. It fails with PACKING_ERROR when the template does
// not fit, when the desk blocks a whole row, or when nothing was placed.
func Pack(room Dimension, tmpl Slot, opts ...PackOption) ([]Slot, error) {
	cfg := packConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !room.valid() {
		return nil, errors.New(errors.ErrCodeValidation, "room must have positive width and height, got %vx%v", room.Width, room.Height)
	}
	if tmpl.W <= 0 || tmpl.H <= 0 || !finite(tmpl.W) || !finite(tmpl.H) {
		return nil, errors.New(errors.ErrCodeValidation, "template must have positive width and height, got %vx%v", tmpl.W, tmpl.H)
	}
	if cfg.aisle < 0 || cfg.between < 0 || !finite(cfg.aisle) || !finite(cfg.between) {
		return nil, errors.New(errors.ErrCodeValidation, "gaps must be non-negative numbers")
	}
	if tmpl.W > room.Width || tmpl.H > room.Height {
		return nil, errors.New(errors.ErrCodePacking, "room too small or fully blocked: unit %vx%v does not fit in room %vx%v",
			tmpl.W, tmpl.H, room.Width, room.Height)
	}

	if n := estimateSlots(room, tmpl); n > MaxSlots {
		return nil, errors.New(errors.ErrCodeValidation, "room %vx%v holds about %.0f units, more than the limit of %d",
			room.Width, room.Height, n, MaxSlots)
	}

	s := sweep{room: room, tmpl: tmpl, cfg: cfg}
	rows := s.rowCount()

	var (
		perRow [][]Slot
		err    error
	)
	if cfg.parallel > 1 && rows > 1 {
		perRow, err = s.parallelRows(rows)
	} else {
		perRow, err = s.sequentialRows(rows)
	}
	if err != nil {
		return nil, err
	}

	var slots []Slot
	for _, row := range perRow {
		slots = append(slots, row...)
	}
	if len(slots) == 0 {
		return nil, errors.New(errors.ErrCodePacking, "room too small or fully blocked: no slot could be placed")
	}
	return slots, nil
}

// estimateSlots is an upper bound on the slots tmpl can fill in room,
// ignoring gaps. It stays in float64 so huge rooms cannot overflow.
func estimateSlots(room Dimension, tmpl Slot) float64 {
	return (math.Floor(room.Width/tmpl.W) + 1) * (math.Floor(room.Height/tmpl.H) + 1)
}

// sweep holds the fixed inputs of one packing run.
type sweep struct {
	room Dimension
	tmpl Slot
	cfg  packConfig
}

// rowY returns the bottom edge of row k. Rows are independent, so the
// position is computed in closed form rather than accumulated.
func (s sweep) rowY(k int) float64 {
	return s.room.Height - s.tmpl.H - float64(k)*(s.tmpl.H+s.cfg.aisle)
}

func (s sweep) rowCount() int {
	n := 0
	for s.rowY(n) >= 0 {
		n++
		if n > s.maxRows() {
			break
		}
	}
	return n
}

// maxRows bounds the outer loop. Each row consumes at least tmpl.H of the
// room height. Pack has already bounded the quotient by MaxSlots.
func (s sweep) maxRows() int {
	return int(math.Floor(s.room.Height/s.tmpl.H)) + 1
}

// maxSteps bounds the inner loop. Each step, placed or skipped, moves the
// cursor left by at least tmpl.W.
func (s sweep) maxSteps() int {
	return int(math.Floor(s.room.Width/s.tmpl.W)) + 1
}

func (s sweep) blocked(x, y float64) bool {
	if s.cfg.desk == nil {
		return false
	}
	return x < s.cfg.desk.Width && y+s.tmpl.H > s.room.Height-s.cfg.desk.Height
}

// row packs one row, folding the cursor from the right wall to the left.
func (s sweep) row(k int) ([]Slot, error) {
	y := s.rowY(k)
	x := s.room.Width - s.tmpl.W

	var (
		out     []Slot
		skipped int
	)
	for steps := 0; x >= 0; steps++ {
		if steps >= s.maxSteps() {
			return nil, errors.New(errors.ErrCodePacking, "room too small or fully blocked: row %d exceeded %d steps", k, s.maxSteps())
		}
		if s.blocked(x, y) {
			skipped++
			x -= s.tmpl.W + s.cfg.aisle
			continue
		}
		out = append(out, Slot{
			Rect:        Rect{X: math.Max(0, x), Y: math.Max(0, y), W: s.tmpl.W, H: s.tmpl.H},
			Orientation: s.tmpl.Orientation,
		})
		x -= s.tmpl.W + s.cfg.between
	}

	if len(out) == 0 && skipped > 0 {
		return nil, errors.New(errors.ErrCodePacking, "room too small or fully blocked: desk covers every column of row %d", k)
	}
	return out, nil
}

func (s sweep) sequentialRows(n int) ([][]Slot, error) {
	rows := make([][]Slot, n)
	for k := range rows {
		r, err := s.row(k)
		if err != nil {
			return nil, err
		}
		rows[k] = r
	}
	return rows, nil
}

// parallelRows packs rows concurrently. Every row is attempted and the error
// of the lowest failing row wins, matching the sequential sweep.
func (s sweep) parallelRows(n int) ([][]Slot, error) {
	rows := make([][]Slot, n)
	errs := make([]error, n)

	var g errgroup.Group
	g.SetLimit(s.cfg.parallel)
	for k := 0; k < n; k++ {
		g.Go(func() error {
			rows[k], errs[k] = s.row(k)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}
