// Package size parses furniture and room size strings.
//
// Sizes are written either as a pair "<width>x<height>" (for rooms, tables,
// chairs and desks) or as a single number (for gaps). Values are non-negative
// decimal numbers. An optional unit suffix ("cm" or "m") is understood by
// [ParseWithUnit]; everything downstream of this package works in centimetres.
//
//	w, h, err := size.ParseDimension("700x500")   // 700, 500
//	v, err := size.ParseScalar("98")              // 98
//	vals, unit, err := size.ParseWithUnit("7x5m") // [700 500], cm
package size

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/cafeplan/pkg/errors"
)

// Separator splits the width and height of a size string.
const Separator = "x"

// Parse splits s on the separator and returns one or two values.
// It fails with MALFORMED_SIZE when a token is missing, not a number,
// negative, NaN or infinite, or when more than two tokens are present.
func Parse(s string) ([]float64, error) {
	trimmed := strings.TrimSpace(strings.ToLower(s))
	if trimmed == "" {
		return nil, errors.New(errors.ErrCodeMalformedSize, "empty size")
	}

	tokens := strings.Split(trimmed, Separator)
	if len(tokens) > 2 {
		return nil, errors.New(errors.ErrCodeMalformedSize, "size %q has %d parts, want 1 or 2", s, len(tokens))
	}

	values := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := parseToken(tok)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedSize, err, "size %q", s)
		}
		values = append(values, v)
	}
	return values, nil
}

// ParseDimension parses a "<width>x<height>" string.
func ParseDimension(s string) (w, h float64, err error) {
	values, err := Parse(s)
	if err != nil {
		return 0, 0, err
	}
	if len(values) != 2 {
		return 0, 0, errors.New(errors.ErrCodeMalformedSize, "size %q must be <width>x<height>", s)
	}
	return values[0], values[1], nil
}

// ParseScalar parses a single number.
func ParseScalar(s string) (float64, error) {
	values, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if len(values) != 1 {
		return 0, errors.New(errors.ErrCodeMalformedSize, "size %q must be a single number", s)
	}
	return values[0], nil
}

// Format renders values in the canonical size form. Whole numbers are
// written without decimals, so Format(700, 500) == "700x500".
func Format(values ...float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, Separator)
}

func parseToken(tok string) (float64, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return 0, errors.New(errors.ErrCodeMalformedSize, "missing number")
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeMalformedSize, "%q is not a number", tok)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New(errors.ErrCodeMalformedSize, "%q is not a finite number", tok)
	}
	if v < 0 {
		return 0, errors.New(errors.ErrCodeMalformedSize, "%q is negative", tok)
	}
	return v, nil
}
