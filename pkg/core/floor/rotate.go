package floor

import (
	"github.com/matzehuels/cafeplan/pkg/errors"
)

// Rotate turns slot clockwise by angle degrees about the centre of the room.
// Only 90, 180 and 270 are accepted. Width and height swap for 90 and 270.
// A slot pushed past a wall is shifted back inside without resizing; a slot
// that no longer fits at all fails with PACKING_ERROR. Because of that shift,
// four quarter turns only return a slot to its start when it lies within the
// central square of a non-square room.
func Rotate(slot Slot, angle int, room Dimension) (Slot, error) {
	switch angle {
	case 90, 180, 270:
	default:
		return Slot{}, errors.New(errors.ErrCodeInvalidOrientation, "rotation angle %d must be 90, 180 or 270", angle)
	}
	orient, err := slot.Orientation.Add(angle)
	if err != nil {
		return Slot{}, err
	}

	cx, cy := room.Width/2, room.Height/2
	r := slot.Rect
	var out Rect
	switch angle {
	case 90:
		out = Rect{X: cx + (r.Y - cy), Y: cy - (r.Right() - cx), W: r.H, H: r.W}
	case 180:
		out = Rect{X: room.Width - r.Right(), Y: room.Height - r.Top(), W: r.W, H: r.H}
	case 270:
		out = Rect{X: cx - (r.Top() - cy), Y: cy + (r.X - cx), W: r.H, H: r.W}
	}

	if out.W > room.Width || out.H > room.Height {
		return Slot{}, errors.New(errors.ErrCodePacking, "rotated slot %vx%v does not fit in room %vx%v",
			out.W, out.H, room.Width, room.Height)
	}
	return Slot{Rect: clampInto(out, room), Orientation: orient}, nil
}

// clampInto shifts r so that it lies within the room.
func clampInto(r Rect, room Dimension) Rect {
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.Right() > room.Width {
		r.X = room.Width - r.W
	}
	if r.Top() > room.Height {
		r.Y = room.Height - r.H
	}
	return r
}

// ReverseRow turns every slot in a row by 180 degrees, producing the
// back-to-back counterpart of the row.
func ReverseRow(row []Slot, room Dimension) ([]Slot, error) {
	out := make([]Slot, len(row))
	for i, s := range row {
		r, err := Rotate(s, 180, room)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "reverse slot %d", i)
		}
		out[i] = r
	}
	return out, nil
}

// Rows groups packed slots by their Y coordinate, keeping emission order both
// across and within rows.
func Rows(slots []Slot) [][]Slot {
	var (
		rows  [][]Slot
		index = make(map[float64]int)
	)
	for _, s := range slots {
		i, ok := index[s.Y]
		if !ok {
			i = len(rows)
			index[s.Y] = i
			rows = append(rows, nil)
		}
		rows[i] = append(rows[i], s)
	}
	return rows
}
