// Package hocrange builds inclusive ranges of cover heights and walks them
// upwards or downwards.
//
// New is called much like a range() builder, with two differences: every
// argument may be nil (open), and the range includes its stop value.
//
//	r, err := hocrange.New(2, 9)         // 2, 3, ..., 9
//	r, err := hocrange.New(2, nil)       // 2, 3, ... forever
//	r, err := hocrange.New(quantity.New(1, quantity.Feet), 10, 0.5)
//
// Values may carry a unit. Unit-less values are promoted to the unit of the
// first argument that has one; two different units are rejected.
package hocrange

import (
	"errors"
	"fmt"
	"iter"

	"github.com/nao1215/hoccrawler/quantity"
)

// Defaults applied when start or step is omitted or nil.
const (
	DefaultStart = 1.0
	DefaultStep  = 1.0
)

// ErrInvalidRange is the sentinel matched by every construction failure.
var ErrInvalidRange = errors.New("invalid range")

// RangeError describes why New rejected its arguments.
type RangeError struct {
	// Arg names the offending argument ("start", "stop", "step"), or is
	// empty when the failure concerns the argument list as a whole.
	Arg string
	// Reason is a human readable explanation.
	Reason string
}

// Error implements error.
func (e *RangeError) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("invalid range: %s", e.Reason)
	}
	return fmt.Sprintf("invalid range: %s: %s", e.Arg, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidRange) succeed.
func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// Range is an inclusive arithmetic progression of cover heights.
// A Range is immutable; Up and Down may be called any number of times.
type Range struct {
	start   quantity.Quantity
	stop    quantity.Quantity
	step    quantity.Quantity
	bounded bool
}

// Default returns the range used when a crawl is not given one:
// start 1, no stop, step 1.
func Default() *Range {
	return &Range{
		start: quantity.Scalar(DefaultStart),
		step:  quantity.Scalar(DefaultStep),
	}
}

// Start returns the first value of the range.
func (r *Range) Start() quantity.Quantity {
	return r.start
}

// Stop returns the inclusive stop value and whether the range is bounded.
func (r *Range) Stop() (quantity.Quantity, bool) {
	return r.stop, r.bounded
}

// Step returns the increment between consecutive values.
func (r *Range) Step() quantity.Quantity {
	return r.step
}

// Bounded reports whether the range has a stop value.
func (r *Range) Bounded() bool {
	return r.bounded
}

// Unit returns the shared unit of the range, or "" when unit-less.
func (r *Range) Unit() quantity.Unit {
	return r.start.Unit()
}

// String renders the range as "[2 ft .. 9 ft] step 1 ft" or "[1 .. open) step 1".
func (r *Range) String() string {
	if !r.bounded {
		return fmt.Sprintf("[%s .. open) step %s", r.start, r.step)
	}
	return fmt.Sprintf("[%s .. %s] step %s", r.start, r.stop, r.step)
}

// Up yields values from start upwards by step. Values strictly below stop
// are yielded first, then stop itself exactly once. Without a stop the
// sequence never ends.
func (r *Range) Up() iter.Seq[quantity.Quantity] {
	return r.walk(1)
}

// Down yields values from start downwards by step, ending with stop itself.
// Without a stop the sequence never ends.
func (r *Range) Down() iter.Seq[quantity.Quantity] {
	return r.walk(-1)
}

// walk produces start + i*step*dir. Magnitudes are computed from the index
// rather than by accumulation so long walks do not drift.
// A bounded range with a zero step yields at most start and stop.
func (r *Range) walk(dir float64) iter.Seq[quantity.Quantity] {
	start := r.start.Magnitude()
	step := r.step.Magnitude() * dir
	stop := r.stop.Magnitude()
	unit := r.start.Unit()

	return func(yield func(quantity.Quantity) bool) {
		if step == 0 && r.bounded {
			// a zero step never advances, so try start once and then stop
			if before(start, stop, dir) && !yield(quantity.New(start, unit)) {
				return
			}
			yield(quantity.New(stop, unit))
			return
		}
		for i := 0; ; i++ {
			value := start + float64(i)*step
			if r.bounded && !before(value, stop, dir) {
				break
			}
			if !yield(quantity.New(value, unit)) {
				return
			}
		}
		if r.bounded {
			yield(quantity.New(stop, unit))
		}
	}
}

// before reports whether value has not yet reached stop in direction dir.
func before(value, stop, dir float64) bool {
	if dir > 0 {
		return value < stop
	}
	return value > stop
}
