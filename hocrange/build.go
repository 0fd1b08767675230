package hocrange

import (
	"fmt"
	"strings"

	"github.com/nao1215/hoccrawler/quantity"
)

// argument is one positional value after type checking.
// open marks an explicit nil.
type argument struct {
	name  string
	value quantity.Quantity
	open  bool
}

// New creates a Range from zero to three positional arguments:
//
//	New()                  start 1, open stop, step 1
//	New(stop)              start 1, step 1
//	New(start, stop)       step 1
//	New(start, stop, step)
//
// Each argument may be nil, a Go integer or float, a quantity.Quantity or a
// *quantity.Quantity. A nil start or step selects the default of 1; a nil
// stop leaves the range open. Explicit values must be non-negative.
func New(args ...any) (*Range, error) {
	var names []string
	switch len(args) {
	case 0:
		return Default(), nil
	case 1:
		names = []string{"stop"}
	case 2:
		names = []string{"start", "stop"}
	case 3:
		names = []string{"start", "stop", "step"}
	default:
		return nil, &RangeError{Reason: fmt.Sprintf("expected at most 3 arguments, got %d", len(args))}
	}

	parsed := map[string]argument{
		"start": {name: "start", open: true},
		"stop":  {name: "stop", open: true},
		"step":  {name: "step", open: true},
	}
	for i, name := range names {
		a, err := toArgument(name, args[i])
		if err != nil {
			return nil, err
		}
		parsed[name] = a
	}

	return build(parsed["start"], parsed["stop"], parsed["step"])
}

// MustNew is like New but panics if the arguments are invalid.
func MustNew(args ...any) *Range {
	r, err := New(args...)
	if err != nil {
		panic(err)
	}
	return r
}

// toArgument type-checks and sign-checks a single positional value.
func toArgument(name string, v any) (argument, error) {
	var q quantity.Quantity
	switch x := v.(type) {
	case nil:
		return argument{name: name, open: true}, nil
	case quantity.Quantity:
		q = x
	case *quantity.Quantity:
		if x == nil {
			return argument{name: name, open: true}, nil
		}
		q = *x
	case float64:
		q = quantity.Scalar(x)
	case float32:
		q = quantity.Scalar(float64(x))
	case int:
		q = quantity.Scalar(float64(x))
	case int8:
		q = quantity.Scalar(float64(x))
	case int16:
		q = quantity.Scalar(float64(x))
	case int32:
		q = quantity.Scalar(float64(x))
	case int64:
		q = quantity.Scalar(float64(x))
	case uint:
		q = quantity.Scalar(float64(x))
	case uint8:
		q = quantity.Scalar(float64(x))
	case uint16:
		q = quantity.Scalar(float64(x))
	case uint32:
		q = quantity.Scalar(float64(x))
	case uint64:
		q = quantity.Scalar(float64(x))
	default:
		return argument{}, &RangeError{
			Arg:    name,
			Reason: fmt.Sprintf("numerical values are required, %s=%T not supported", name, v),
		}
	}

	if q.IsNaN() {
		return argument{}, &RangeError{Arg: name, Reason: "value is NaN"}
	}
	if q.Sign() < 0 {
		return argument{}, &RangeError{
			Arg:    name,
			Reason: fmt.Sprintf("must be non-negative, got %s=%s (%T)", name, q, v),
		}
	}
	return argument{name: name, value: q}, nil
}

// build reconciles units and fills defaults.
func build(start, stop, step argument) (*Range, error) {
	unit, err := commonUnit(start, stop, step)
	if err != nil {
		return nil, err
	}

	if start.open {
		start.value = quantity.Scalar(DefaultStart)
	}
	if step.open {
		step.value = quantity.Scalar(DefaultStep)
	}

	r := &Range{bounded: !stop.open}
	if r.start, err = start.value.WithUnit(unit); err != nil {
		return nil, &RangeError{Arg: "start", Reason: err.Error()}
	}
	if r.step, err = step.value.WithUnit(unit); err != nil {
		return nil, &RangeError{Arg: "step", Reason: err.Error()}
	}
	if r.bounded {
		if r.stop, err = stop.value.WithUnit(unit); err != nil {
			return nil, &RangeError{Arg: "stop", Reason: err.Error()}
		}
	}
	return r, nil
}

// commonUnit returns the first unit found among start, stop and step, and
// fails when another supplied value carries a different one.
func commonUnit(args ...argument) (quantity.Unit, error) {
	var (
		unit  quantity.Unit
		owner string
	)
	var mismatched []string
	for _, a := range args {
		if a.open || !a.value.HasUnit() {
			continue
		}
		switch {
		case unit == "":
			unit, owner = a.value.Unit(), a.name
		case a.value.Unit() != unit:
			mismatched = append(mismatched, fmt.Sprintf("%s=%s", a.name, a.value.Unit()))
		}
	}
	if len(mismatched) > 0 {
		return "", &RangeError{
			Reason: fmt.Sprintf("mismatched units: %s=%s but %s", owner, unit, strings.Join(mismatched, ", ")),
		}
	}
	return unit, nil
}
