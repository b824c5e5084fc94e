package floor

import (
	"slices"

	"github.com/matzehuels/cafeplan/pkg/errors"
)

// Option configures [Compute].
type Option func(*computeConfig)

type computeConfig struct {
	reversed []int
	parallel int
}

// WithReversedRows turns the given rows (zero-based, in packing order) by
// 180 degrees before furniture is placed.
func WithReversedRows(rows ...int) Option {
	return func(c *computeConfig) { c.reversed = append(c.reversed, rows...) }
}

// WithParallelPacking packs up to n rows concurrently.
func WithParallelPacking(n int) Option {
	return func(c *computeConfig) { c.parallel = n }
}

// Compute validates req, packs the room and places a table and chair in
// every slot.
func Compute(req Request, opts ...Option) (Result, error) {
	cfg := computeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	packOpts := []PackOption{
		WithAisleGap(req.AisleGap),
		WithInterUnitGap(req.InterUnitGap),
		WithParallelRows(cfg.parallel),
	}
	if req.Desk != nil {
		packOpts = append(packOpts, WithReservedZone(*req.Desk))
	}

	tmpl := NewTemplate(req.Table, req.Chair.Height, req.InterUnitGap)
	slots, err := Pack(req.Room, tmpl, packOpts...)
	if err != nil {
		return Result{}, err
	}

	if len(cfg.reversed) > 0 {
		slots, err = reverseRows(slots, req.Room, cfg.reversed)
		if err != nil {
			return Result{}, err
		}
	}

	res := Result{
		Room:   req.Room,
		Slots:  slots,
		Tables: make([]Entity, 0, len(slots)),
		Chairs: make([]Entity, 0, len(slots)),
	}
	for _, s := range slots {
		t, c, err := Place(s, req.Table, req.Chair, req.PlacementGap)
		if err != nil {
			return Result{}, err
		}
		res.Tables = append(res.Tables, t)
		if c != nil {
			res.Chairs = append(res.Chairs, *c)
		}
	}

	if req.Desk != nil {
		res.Desk = &Entity{Kind: KindDesk, Rect: ReservedZone(req.Room, *req.Desk)}
	}
	return res, nil
}

func reverseRows(slots []Slot, room Dimension, indexes []int) ([]Slot, error) {
	rows := Rows(slots)
	for _, i := range indexes {
		if i < 0 || i >= len(rows) {
			return nil, errors.New(errors.ErrCodeValidation, "row %d out of range, layout has %d rows", i, len(rows))
		}
	}

	out := make([]Slot, 0, len(slots))
	for i, row := range rows {
		if slices.Contains(indexes, i) {
			rev, err := ReverseRow(row, room)
			if err != nil {
				return nil, err
			}
			row = rev
		}
		out = append(out, row...)
	}
	return out, nil
}
