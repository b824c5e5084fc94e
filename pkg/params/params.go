// Package params reads and validates layout parameter files.
//
// A parameter file describes a room the way a person states it: sizes as
// strings such as "700x500" with a unit of "cm" or "m". Files may be TOML,
// YAML or JSON and only need to mention the settings that differ from
// [Default]:
//
//	[room]
//	size = "8x6"
//	unit = "m"
//
//	[desk]
//	size = "150x80"
//	present = true
//
// [Parameters.Request] normalises everything to centimetres for the
// floor package.
package params

import (
	"encoding/json"

	"github.com/matzehuels/cafeplan/pkg/cache"
	"github.com/matzehuels/cafeplan/pkg/core/floor"
	"github.com/matzehuels/cafeplan/pkg/core/size"
	"github.com/matzehuels/cafeplan/pkg/errors"
)

// Size is a "<width>x<height>" or scalar string with an optional unit.
type Size struct {
	Size string `toml:"size" yaml:"size" json:"size"`
	Unit string `toml:"unit,omitempty" yaml:"unit,omitempty" json:"unit,omitempty"`
}

// Desk is the optional reception desk in the top-left corner.
type Desk struct {
	Size    string `toml:"size" yaml:"size" json:"size"`
	Unit    string `toml:"unit,omitempty" yaml:"unit,omitempty" json:"unit,omitempty"`
	Present bool   `toml:"present" yaml:"present" json:"present"`
}

// Parameters is the full set of layout settings.
type Parameters struct {
	Room  Size `toml:"room" yaml:"room" json:"room"`
	Table Size `toml:"table" yaml:"table" json:"table"`
	Chair Size `toml:"chair" yaml:"chair" json:"chair"`

	// Between is the inter-unit gap.
	Between Size `toml:"between" yaml:"between" json:"between"`
	Aisle   Size `toml:"aisle" yaml:"aisle" json:"aisle"`

	// PlacementGap is the table-to-chair clearance.
	PlacementGap Size `toml:"placement_gap" yaml:"placement_gap" json:"placement_gap"`

	Desk Desk `toml:"desk" yaml:"desk" json:"desk"`
}

// Default returns the stock parameters: a 700x500 cm room with 120x60 tables,
// 60x60 chairs, 5 cm between units, 98 cm aisles and no desk.
func Default() Parameters {
	return Parameters{
		Room:         Size{Size: "700x500", Unit: "cm"},
		Table:        Size{Size: "120x60", Unit: "cm"},
		Chair:        Size{Size: "60x60", Unit: "cm"},
		Between:      Size{Size: "5", Unit: "cm"},
		Aisle:        Size{Size: "98", Unit: "cm"},
		PlacementGap: Size{Size: "5", Unit: "cm"},
		Desk:         Desk{Size: "0x0", Unit: "cm"},
	}
}

// HasDesk reports whether the parameters reserve a desk zone.
func (p Parameters) HasDesk() bool { return p.Desk.Present }

// SetDesk reserves a desk of the given size.
func (p *Parameters) SetDesk(sz, unit string) {
	p.Desk = Desk{Size: sz, Unit: unit, Present: true}
}

// RemoveDesk drops the desk zone.
func (p *Parameters) RemoveDesk() {
	p.Desk = Desk{Size: "0x0", Unit: "cm"}
}

// Validate checks every size string and unit. It reports MALFORMED_SIZE,
// INVALID_UNIT or VALIDATION_ERROR for the first problem found.
func (p Parameters) Validate() error {
	_, err := p.Request()
	return err
}

// Request converts the parameters into a centimetre-based floor request.
func (p Parameters) Request() (floor.Request, error) {
	room, err := dimension("room", p.Room.Size, p.Room.Unit)
	if err != nil {
		return floor.Request{}, err
	}
	table, err := dimension("table", p.Table.Size, p.Table.Unit)
	if err != nil {
		return floor.Request{}, err
	}
	chair, err := dimension("chair", p.Chair.Size, p.Chair.Unit)
	if err != nil {
		return floor.Request{}, err
	}
	between, err := scalar("between", p.Between)
	if err != nil {
		return floor.Request{}, err
	}
	aisle, err := scalar("aisle", p.Aisle)
	if err != nil {
		return floor.Request{}, err
	}
	gap, err := scalar("placement_gap", p.PlacementGap)
	if err != nil {
		return floor.Request{}, err
	}

	req := floor.Request{
		Room:         room,
		Table:        table,
		Chair:        chair,
		InterUnitGap: between,
		AisleGap:     aisle,
		PlacementGap: gap,
	}
	if p.Desk.Present {
		desk, err := dimension("desk", p.Desk.Size, p.Desk.Unit)
		if err != nil {
			return floor.Request{}, err
		}
		req.Desk = &desk
	}

	if err := req.Validate(); err != nil {
		return floor.Request{}, err
	}
	return req, nil
}

// Hash returns a stable content hash of the normalised request, so files
// that describe the same room in different units hash alike.
func (p Parameters) Hash() (string, error) {
	req, err := p.Request()
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(req)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash parameters")
	}
	return cache.Hash(data), nil
}

func dimension(name, s, unit string) (floor.Dimension, error) {
	values, err := parse(name, s, unit)
	if err != nil {
		return floor.Dimension{}, err
	}
	if len(values) != 2 {
		return floor.Dimension{}, errors.New(errors.ErrCodeMalformedSize, "%s: size %q must be <width>x<height>", name, s)
	}
	return floor.Dimension{Width: values[0], Height: values[1]}, nil
}

func scalar(name string, s Size) (float64, error) {
	values, err := parse(name, s.Size, s.Unit)
	if err != nil {
		return 0, err
	}
	if len(values) != 1 {
		return 0, errors.New(errors.ErrCodeMalformedSize, "%s: %q must be a single number", name, s.Size)
	}
	return values[0], nil
}

// parse reads s in the given unit. A unit suffix on the size itself ("7x5m")
// takes precedence over the unit field.
func parse(name, s, unit string) ([]float64, error) {
	u, err := size.ParseUnit(unit)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidUnit, err, "%s", name)
	}
	values, suffix, err := size.ParseSuffixed(s)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", name)
	}
	if suffix != "" {
		u = suffix
	}
	return size.ToCentimeters(values, u), nil
}
