package floor

import (
	"github.com/matzehuels/cafeplan/pkg/errors"
)

// Defaults used by [DefaultRequest]. They describe a 7m x 5m room furnished
// with 120x60 desks and 60x60 chairs.
const (
	DefaultInterUnitGap = 5.0
	DefaultAisleGap     = 98.0
	DefaultPlacementGap = 5.0
)

// MaxSlots caps the number of slots a room may hold. Larger rooms are
// rejected with VALIDATION_ERROR before any slot is allocated.
const MaxSlots = 10000

// Kind tags a placed rectangle.
type Kind string

const (
	KindTable Kind = "table"
	KindChair Kind = "chair"
	KindDesk  Kind = "desk"
)

// Entity is a placed piece of furniture in room coordinates.
type Entity struct {
	Kind Kind `json:"kind" bson:"kind" msgpack:"kind"`
	Rect `bson:",inline" msgpack:",inline"`
}

// Slot is the bounding box of one table-plus-chair unit.
type Slot struct {
	Rect        `bson:",inline" msgpack:",inline"`
	Orientation Orientation `json:"orientation" bson:"orientation" msgpack:"orientation"`
}

// Request holds everything needed to lay out one room. All values are
// centimetres.
type Request struct {
	Room  Dimension `json:"room"`
	Table Dimension `json:"table"`
	Chair Dimension `json:"chair"`

	// InterUnitGap is folded into the slot depth and separates neighbouring
	// slots in a row.
	InterUnitGap float64 `json:"inter_unit_gap"`

	// AisleGap separates consecutive rows.
	AisleGap float64 `json:"aisle_gap"`

	// PlacementGap is the clearance between a table and its chair.
	PlacementGap float64 `json:"placement_gap"`

	// Desk reserves the top-left corner of the room. Nil means no desk.
	Desk *Dimension `json:"desk,omitempty"`
}

// Result is a computed layout.
type Result struct {
	Room   Dimension `json:"room" bson:"room" msgpack:"room"`
	Slots  []Slot    `json:"slots" bson:"slots" msgpack:"slots"`
	Tables []Entity  `json:"tables" bson:"tables" msgpack:"tables"`
	Chairs []Entity  `json:"chairs" bson:"chairs" msgpack:"chairs"`
	Desk   *Entity   `json:"desk,omitempty" bson:"desk,omitempty" msgpack:"desk,omitempty"`
}

// Entities returns the desk (if any), tables and chairs as one list in
// drawing order.
func (r Result) Entities() []Entity {
	out := make([]Entity, 0, len(r.Tables)+len(r.Chairs)+1)
	if r.Desk != nil {
		out = append(out, *r.Desk)
	}
	out = append(out, r.Tables...)
	out = append(out, r.Chairs...)
	return out
}

// DroppedChairs returns how many slots ended up without a chair.
func (r Result) DroppedChairs() int {
	return len(r.Tables) - len(r.Chairs)
}

// DefaultRequest returns the stock room: 700x500 with 120x60 tables, 60x60
// chairs and no desk.
func DefaultRequest() Request {
	return Request{
		Room:         Dimension{Width: 700, Height: 500},
		Table:        Dimension{Width: 120, Height: 60},
		Chair:        Dimension{Width: 60, Height: 60},
		InterUnitGap: DefaultInterUnitGap,
		AisleGap:     DefaultAisleGap,
		PlacementGap: DefaultPlacementGap,
	}
}

// Validate checks that every dimension is positive and finite, that gaps are
// non-negative, and that the desk fits in the room.
func (r Request) Validate() error {
	dims := []struct {
		name string
		d    Dimension
	}{
		{"room", r.Room},
		{"table", r.Table},
		{"chair", r.Chair},
	}
	for _, item := range dims {
		if !item.d.valid() {
			return errors.New(errors.ErrCodeValidation, "%s must have positive width and height, got %vx%v",
				item.name, item.d.Width, item.d.Height)
		}
	}

	gaps := []struct {
		name string
		v    float64
	}{
		{"inter-unit gap", r.InterUnitGap},
		{"aisle gap", r.AisleGap},
		{"placement gap", r.PlacementGap},
	}
	for _, g := range gaps {
		if g.v < 0 || !finite(g.v) {
			return errors.New(errors.ErrCodeValidation, "%s must be a non-negative number, got %v", g.name, g.v)
		}
	}

	tmpl := NewTemplate(r.Table, r.Chair.Height, r.InterUnitGap)
	if n := estimateSlots(r.Room, tmpl); n > MaxSlots {
		return errors.New(errors.ErrCodeValidation, "room %vx%v holds about %.0f units, more than the limit of %d",
			r.Room.Width, r.Room.Height, n, MaxSlots)
	}

	if r.Desk != nil {
		if !r.Desk.valid() {
			return errors.New(errors.ErrCodeValidation, "desk must have positive width and height, got %vx%v",
				r.Desk.Width, r.Desk.Height)
		}
		if r.Desk.Width > r.Room.Width || r.Desk.Height > r.Room.Height {
			return errors.New(errors.ErrCodeValidation, "desk %vx%v does not fit in room %vx%v",
				r.Desk.Width, r.Desk.Height, r.Room.Width, r.Room.Height)
		}
	}
	return nil
}

// ReservedZone returns the rectangle a desk of size d occupies in room: the
// top-left corner.
func ReservedZone(room, d Dimension) Rect {
	return Rect{X: 0, Y: room.Height - d.Height, W: d.Width, H: d.Height}
}
