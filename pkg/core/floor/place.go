package floor

import (
	"github.com/matzehuels/cafeplan/pkg/errors"
)

// Place derives the table and chair for a slot. The chair is returned only
// when it lies entirely inside the slot; a nil chair is not an error.
func Place(slot Slot, table, chair Dimension, gap float64) (Entity, *Entity, error) {
	rule, ok := slot.Orientation.placement()
	if !ok {
		return Entity{}, nil, errors.New(errors.ErrCodeInvalidOrientation,
			"slot at (%v, %v) has orientation %d", slot.X, slot.Y, int(slot.Orientation))
	}

	t, c := rule(slot.Rect, table, chair, gap)
	tableEnt := Entity{Kind: KindTable, Rect: t}
	if !slot.Contains(c) {
		return tableEnt, nil, nil
	}
	return tableEnt, &Entity{Kind: KindChair, Rect: c}, nil
}
