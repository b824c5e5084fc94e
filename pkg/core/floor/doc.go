// Package floor computes seating layouts for rectangular rooms.
//
// # Overview
//
// A layout is built from one repeating furniture unit: a table paired with a
// single chair. The package turns the unit into a bounding-box template
// ([NewTemplate]), sweeps copies of the template across the room ([Pack]),
// and derives concrete table and chair rectangles for every packed slot
// ([Place]). [Compute] runs all three steps for a [Request].
//
// # Coordinates
//
// All values are centimetres. The origin is the room's bottom-left corner,
// x grows to the right and y grows upward.
//
// # Packing
//
// The sweep is wall-anchored and greedy. It starts in the top-right corner,
// fills a row right-to-left, then moves down by the template height plus the
// aisle gap. Slots whose column range falls under the reserved desk zone are
// skipped. The sweep never backtracks, so the same request always produces
// the same slots in the same order.
//
// # Orientation
//
// Each slot carries an [Orientation] telling which side of the table the
// chair occupies. Packing always emits [Orient0] (table against the upper
// edge, chair below it). [Rotate] and [ReverseRow] turn slots by 90, 180 or
// 270 degrees so callers can build back-to-back rows.
//
// # Errors
//
// Failures are reported as *errors.Error values from
// github.com/matzehuels/cafeplan/pkg/errors with one of the codes
// VALIDATION_ERROR, PACKING_ERROR or INVALID_ORIENTATION. A chair that does
// not fit inside its slot is not an error: the table is kept and the chair is
// left out of [Result.Chairs].
package floor
