// Package crawler finds the minimum or maximum height of cover accepted by a
// caller-supplied predicate.
//
// A crawl walks a hocrange.Range upwards (Max) or downwards (Min), asking the
// predicate about each height in turn. The answer is the last accepted
// height. By default the first rejection ends the walk; WithForgiveness lets
// the crawl step over a few isolated rejections.
//
//	h, err := crawler.Crawl(ctx, check, crawler.Max,
//		crawler.WithRangeArgs(2, 20),
//		crawler.WithFlooded(true),
//		crawler.WithForgiveness(1),
//	)
//
// The engine never calls the predicate concurrently and keeps no state
// between crawls.
package crawler

import (
	"context"
	"fmt"

	"github.com/nao1215/hoccrawler/hocrange"
	"github.com/nao1215/hoccrawler/quantity"
)

// StopReason tells why a crawl stopped walking.
type StopReason int

const (
	// StopExhausted means the range ran out of values.
	StopExhausted StopReason = iota
	// StopForgiveness means more consecutive rejections than the
	// forgiveness level allowed were seen.
	StopForgiveness
)

// String returns a human-readable representation of the stop reason.
func (s StopReason) String() string {
	switch s {
	case StopExhausted:
		return "range exhausted"
	case StopForgiveness:
		return "forgiveness exceeded"
	default:
		return "unknown"
	}
}

// Attempt records a single predicate call.
type Attempt struct {
	// Index is the zero-based position of the candidate in the walk.
	Index int
	// H is the candidate height.
	H quantity.Quantity
	// Verdict is the predicate's answer.
	Verdict Verdict
}

// Result is the outcome of Search.
type Result struct {
	// Value is the last accepted height. Only meaningful when Found is true.
	Value quantity.Quantity
	Found bool

	Target      Target
	Range       *hocrange.Range
	Forgiveness int
	Stop        StopReason

	Accepted int
	Rejected int
}

// Attempts returns the number of predicate calls made.
func (r *Result) Attempts() int {
	return r.Accepted + r.Rejected
}

// Crawl returns the last height accepted by p while walking towards target.
// If no height is accepted the error is an *ExhaustedError.
func Crawl(ctx context.Context, p Predicate, target Target, opts ...Option) (quantity.Quantity, error) {
	res, err := Search(ctx, p, target, opts...)
	if err != nil {
		return quantity.Quantity{}, err
	}
	return res.Value, nil
}

// Search runs the same crawl as Crawl and reports how it went.
//
// On an *ExhaustedError or a predicate failure the partial Result is still
// returned alongside the error. Configuration errors return a nil Result.
func Search(ctx context.Context, p Predicate, target Target, opts ...Option) (*Result, error) {
	t, err := target.Validate()
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNilPredicate
	}

	o := newOptions(opts)
	if o.forgiveness < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidForgiveness, o.forgiveness)
	}
	r, err := o.resolveRange()
	if err != nil {
		return nil, err
	}

	seq := r.Up()
	if t == Min {
		seq = r.Down()
	}

	res := &Result{
		Target:      t,
		Range:       r,
		Forgiveness: o.forgiveness,
		Stop:        StopExhausted,
	}
	logger := o.logger.With("target", t, "range", r.String())

	var forgiven []quantity.Quantity
	index := 0
	for h := range seq {
		if len(forgiven) > o.forgiveness {
			res.Stop = StopForgiveness
			break
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		c := Candidate{H: h, Flooded: o.flooded, Args: o.args, Params: o.params}
		if o.flooded {
			c.HGW = h
		}

		verdict, err := evaluate(ctx, p, c)
		if err != nil {
			return res, err
		}

		if verdict == Rejected {
			forgiven = append(forgiven, h)
			res.Rejected++
			logger.Debug("candidate rejected", "H", h, "forgiven", len(forgiven))
		} else {
			res.Value = h
			res.Found = true
			res.Accepted++
			forgiven = forgiven[:0]
			logger.Debug("candidate accepted", "H", h)
		}

		if o.observer != nil {
			o.observer(Attempt{Index: index, H: h, Verdict: verdict})
		}
		index++
	}

	if !res.Found {
		return res, &ExhaustedError{Target: t}
	}
	logger.Debug("crawl finished", "result", res.Value, "stop", res.Stop.String(), "attempts", res.Attempts())
	return res, nil
}
