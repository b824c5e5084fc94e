package size

import (
	"strings"

	"github.com/matzehuels/cafeplan/pkg/errors"
)

// Unit is a length unit accepted in parameter files.
type Unit string

// Supported units.
const (
	Centimeter Unit = "cm"
	Meter      Unit = "m"
)

// ParseUnit validates a unit name. The empty string means centimetres.
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case "", Centimeter:
		return Centimeter, nil
	case Meter:
		return Meter, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidUnit, "unknown unit %q (must be 'cm' or 'm')", s)
	}
}

// Factor returns how many centimetres one unit is.
func (u Unit) Factor() float64 {
	if u == Meter {
		return 100
	}
	return 1
}

// ToCentimeters converts values in unit u to centimetres.
func ToCentimeters(values []float64, u Unit) []float64 {
	out := make([]float64, len(values))
	f := u.Factor()
	for i, v := range values {
		out[i] = v * f
	}
	return out
}

// ParseWithUnit parses a size that may carry a unit suffix ("120x60cm",
// "2.5m", "7 x 5 m") and returns the values in centimetres.
func ParseWithUnit(s string) ([]float64, Unit, error) {
	values, u, err := ParseSuffixed(s)
	if err != nil {
		return nil, "", err
	}
	return ToCentimeters(values, u), Centimeter, nil
}

// ParseSuffixed parses a size with an optional unit suffix and returns the
// values as written together with the suffix. The unit is empty when s has
// no suffix.
func ParseSuffixed(s string) ([]float64, Unit, error) {
	body, suffix := splitUnit(s)
	var u Unit
	if suffix != "" {
		parsed, err := ParseUnit(suffix)
		if err != nil {
			return nil, "", err
		}
		u = parsed
	}
	values, err := Parse(body)
	if err != nil {
		return nil, "", err
	}
	return values, u, nil
}

// splitUnit cuts a trailing "cm" or "m" off s.
func splitUnit(s string) (body, unit string) {
	t := strings.TrimSpace(strings.ToLower(s))
	for _, suffix := range []string{string(Centimeter), string(Meter)} {
		if strings.HasSuffix(t, suffix) {
			return strings.TrimSpace(strings.TrimSuffix(t, suffix)), suffix
		}
	}
	return t, ""
}
