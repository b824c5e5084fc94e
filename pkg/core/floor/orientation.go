package floor

import (
	"encoding/json"
	"strconv"

	"github.com/matzehuels/cafeplan/pkg/errors"
)

// Orientation is the side of the table a chair sits on, in degrees.
// Only the four right angles are valid.
type Orientation int

// Supported orientations.
const (
	Orient0   Orientation = 0   // chair below the table
	Orient90  Orientation = 90  // chair right of the table
	Orient180 Orientation = 180 // chair above the table
	Orient270 Orientation = 270 // chair left of the table
)

// Orientations lists every valid orientation in ascending order.
var Orientations = []Orientation{Orient0, Orient90, Orient180, Orient270}

// ParseOrientation converts a degree value into an Orientation.
func ParseOrientation(deg int) (Orientation, error) {
	o := Orientation(deg)
	if !o.Valid() {
		return 0, errors.New(errors.ErrCodeInvalidOrientation, "orientation %d is not one of 0, 90, 180, 270", deg)
	}
	return o, nil
}

// Valid reports whether o is one of the four supported orientations.
func (o Orientation) Valid() bool {
	switch o {
	case Orient0, Orient90, Orient180, Orient270:
		return true
	}
	return false
}

// Degrees returns o as a plain integer.
func (o Orientation) Degrees() int { return int(o) }

// Add turns o clockwise by angle degrees. The angle must be a multiple of 90.
func (o Orientation) Add(angle int) (Orientation, error) {
	if !o.Valid() {
		return 0, errors.New(errors.ErrCodeInvalidOrientation, "orientation %d is not valid", int(o))
	}
	if angle%90 != 0 {
		return 0, errors.New(errors.ErrCodeInvalidOrientation, "angle %d is not a multiple of 90", angle)
	}
	deg := (int(o) + angle) % 360
	if deg < 0 {
		deg += 360
	}
	return Orientation(deg), nil
}

// Swapped reports whether o lays the table sideways (90 or 270).
func (o Orientation) Swapped() bool {
	return o == Orient90 || o == Orient270
}

func (o Orientation) String() string {
	return strconv.Itoa(int(o))
}

// MarshalJSON encodes o as its integer degree value.
func (o Orientation) MarshalJSON() ([]byte, error) {
	if !o.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidOrientation, "orientation %d is not valid", int(o))
	}
	return []byte(strconv.Itoa(int(o))), nil
}

// UnmarshalJSON decodes an integer degree value and rejects anything else.
func (o *Orientation) UnmarshalJSON(data []byte) error {
	var deg int
	if err := json.Unmarshal(data, &deg); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrientation, err, "orientation")
	}
	parsed, err := ParseOrientation(deg)
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// placement derives the table and chair rectangles for a slot.
type placement func(slot Rect, table, chair Dimension, gap float64) (tableRect, chairRect Rect)

// placements is indexed by Orientation/90.
var placements = [...]placement{
	placeBelow,
	placeRight,
	placeAbove,
	placeLeft,
}

func (o Orientation) placement() (placement, bool) {
	if !o.Valid() {
		return nil, false
	}
	return placements[int(o)/90], true
}

// placeBelow puts the table against the upper edge of the slot and the chair
// centred underneath it.
func placeBelow(s Rect, table, chair Dimension, gap float64) (Rect, Rect) {
	t := Rect{X: s.X, Y: s.Y + s.H - table.Height, W: table.Width, H: table.Height}
	c := Rect{
		X: s.X + (table.Width-chair.Width)/2,
		Y: t.Y - chair.Height - gap,
		W: chair.Width,
		H: chair.Height,
	}
	return t, c
}

// placeRight lays the table sideways against the left edge with the chair to
// its right.
func placeRight(s Rect, table, chair Dimension, gap float64) (Rect, Rect) {
	t := Rect{X: s.X, Y: s.Y, W: table.Height, H: table.Width}
	c := Rect{
		X: s.X + table.Height + gap,
		Y: s.Y + (table.Width-chair.Height)/2,
		W: chair.Width,
		H: chair.Height,
	}
	return t, c
}

// placeAbove puts the table against the lower edge and the chair centred
// above it.
func placeAbove(s Rect, table, chair Dimension, gap float64) (Rect, Rect) {
	t := Rect{X: s.X, Y: s.Y, W: table.Width, H: table.Height}
	c := Rect{
		X: s.X + (table.Width-chair.Width)/2,
		Y: s.Y + table.Height + gap,
		W: chair.Width,
		H: chair.Height,
	}
	return t, c
}

// placeLeft lays the table sideways against the right edge with the chair to
// its left.
func placeLeft(s Rect, table, chair Dimension, gap float64) (Rect, Rect) {
	t := Rect{X: s.X + s.W - table.Height, Y: s.Y, W: table.Height, H: table.Width}
	c := Rect{
		X: t.X - chair.Width - gap,
		Y: s.Y + (table.Width-chair.Height)/2,
		W: chair.Width,
		H: chair.Height,
	}
	return t, c
}
