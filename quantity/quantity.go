// Package quantity provides a numeric value that optionally carries a
// physical unit tag.
//
// A Quantity is either a scalar (no unit) or a unit value (magnitude plus
// unit). Arithmetic and comparison are defined only between values that share
// the same unit, or between two scalars. No unit conversion is performed:
// 1 ft and 0.3048 m are simply incompatible.
//
// Usage:
//
//	h, _ := quantity.Parse("2.5 ft")
//	step := quantity.Scalar(1).MustWithUnit(h.Unit())
//	next, _ := h.Add(step) // 3.5 ft
package quantity

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
)

// ErrUnitMismatch is returned when an operation combines two values whose
// units differ, or a unit value with a scalar where a unit is required.
var ErrUnitMismatch = errors.New("unit mismatch")

// Quantity is a float64 magnitude with an optional unit.
// The zero value is the scalar 0.
type Quantity struct {
	magnitude float64
	unit      Unit
}

// Scalar returns a unit-less Quantity.
func Scalar(v float64) Quantity {
	return Quantity{magnitude: v}
}

// New returns a Quantity tagged with unit. An empty unit yields a scalar.
func New(v float64, unit Unit) Quantity {
	return Quantity{magnitude: v, unit: unit.canonical()}
}

// Magnitude returns the numeric part of q.
func (q Quantity) Magnitude() float64 {
	return q.magnitude
}

// Unit returns the unit of q, or the empty Unit for a scalar.
func (q Quantity) Unit() Unit {
	return q.unit
}

// HasUnit reports whether q carries a unit tag.
func (q Quantity) HasUnit() bool {
	return q.unit != ""
}

// IsNaN reports whether the magnitude is NaN.
func (q Quantity) IsNaN() bool {
	return math.IsNaN(q.magnitude)
}

// Sign returns -1, 0 or +1 depending on the sign of the magnitude.
func (q Quantity) Sign() int {
	switch {
	case q.magnitude < 0:
		return -1
	case q.magnitude > 0:
		return 1
	default:
		return 0
	}
}

// WithUnit promotes a scalar to unit. A value that already carries unit is
// returned unchanged; a value carrying a different unit yields ErrUnitMismatch.
func (q Quantity) WithUnit(unit Unit) (Quantity, error) {
	unit = unit.canonical()
	switch {
	case unit == "":
		return q, nil
	case q.unit == "":
		return Quantity{magnitude: q.magnitude, unit: unit}, nil
	case q.unit == unit:
		return q, nil
	default:
		return Quantity{}, fmt.Errorf("%w: cannot express %s in %s", ErrUnitMismatch, q, unit)
	}
}

// MustWithUnit is like WithUnit but panics on error.
func (q Quantity) MustWithUnit(unit Unit) Quantity {
	v, err := q.WithUnit(unit)
	if err != nil {
		panic(err)
	}
	return v
}

// Compatible reports whether q and other can be compared or combined.
func (q Quantity) Compatible(other Quantity) bool {
	return q.unit == other.unit
}

func (q Quantity) check(other Quantity) error {
	if q.Compatible(other) {
		return nil
	}
	return fmt.Errorf("%w: %s and %s", ErrUnitMismatch, q.describeUnit(), other.describeUnit())
}

func (q Quantity) describeUnit() string {
	if q.unit == "" {
		return "scalar"
	}
	return string(q.unit)
}

// Compare returns -1 if q < other, 0 if equal and +1 if q > other.
// NaN compares below every other magnitude and equal to itself.
func (q Quantity) Compare(other Quantity) (int, error) {
	if err := q.check(other); err != nil {
		return 0, err
	}
	return compareFloat(q.magnitude, other.magnitude), nil
}

// Equal reports whether q and other have the same unit and magnitude.
func (q Quantity) Equal(other Quantity) bool {
	c, err := q.Compare(other)
	return err == nil && c == 0
}

// Add returns q + other.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	if err := q.check(other); err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: q.magnitude + other.magnitude, unit: q.unit}, nil
}

// Sub returns q - other.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	if err := q.check(other); err != nil {
		return Quantity{}, err
	}
	return Quantity{magnitude: q.magnitude - other.magnitude, unit: q.unit}, nil
}

// Mul scales q by a dimensionless factor.
func (q Quantity) Mul(factor float64) Quantity {
	return Quantity{magnitude: q.magnitude * factor, unit: q.unit}
}

// String renders q as "2.5 ft", or "2.5" for a scalar.
func (q Quantity) String() string {
	m := strconv.FormatFloat(q.magnitude, 'g', -1, 64)
	if q.unit == "" {
		return m
	}
	return m + " " + string(q.unit)
}

// LogValue implements slog.LogValuer.
func (q Quantity) LogValue() slog.Value {
	return slog.StringValue(q.String())
}

// MarshalText implements encoding.TextMarshaler.
func (q Quantity) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (q *Quantity) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*q = v
	return nil
}

func compareFloat(a, b float64) int {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return 0
	case math.IsNaN(a):
		return -1
	case math.IsNaN(b):
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
