package crawler

import (
	"context"
	"errors"

	"github.com/nao1215/hoccrawler/quantity"
)

// Verdict is a predicate's answer for one candidate.
type Verdict int

const (
	// Accepted means the candidate height is valid.
	Accepted Verdict = iota + 1
	// Rejected means the candidate height is invalid. It is not an error.
	Rejected
)

// String returns a human-readable representation of the verdict.
func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Candidate is what a predicate is asked to check.
type Candidate struct {
	// H is the candidate height of cover.
	H quantity.Quantity

	// HGW is the groundwater height. It equals H when Flooded is set and is
	// the zero Quantity otherwise.
	HGW quantity.Quantity

	// Flooded reports whether the crawl assumes groundwater at the surface.
	Flooded bool

	// Args and Params are forwarded unchanged from WithArgs and WithParams.
	Args   []any
	Params map[string]any
}

// Predicate decides whether a candidate height is valid.
//
// Check returns Accepted or Rejected. Returning an error that wraps
// ErrInvalidCandidate is equivalent to Rejected. Any other error aborts the
// crawl and is returned to the caller unchanged.
type Predicate interface {
	Check(ctx context.Context, c Candidate) (Verdict, error)
}

// PredicateFunc adapts a function to Predicate.
type PredicateFunc func(ctx context.Context, c Candidate) (Verdict, error)

// Check calls f(ctx, c).
func (f PredicateFunc) Check(ctx context.Context, c Candidate) (Verdict, error) {
	return f(ctx, c)
}

// ValidatorFunc adapts a function that returns nil for a valid candidate and
// ErrInvalidCandidate for an invalid one.
type ValidatorFunc func(ctx context.Context, c Candidate) error

// Check calls f(ctx, c) and maps a nil error to Accepted.
func (f ValidatorFunc) Check(ctx context.Context, c Candidate) (Verdict, error) {
	if err := f(ctx, c); err != nil {
		return 0, err
	}
	return Accepted, nil
}

// evaluate runs p and folds the rejection signal into a Verdict.
func evaluate(ctx context.Context, p Predicate, c Candidate) (Verdict, error) {
	v, err := p.Check(ctx, c)
	if err != nil {
		if errors.Is(err, ErrInvalidCandidate) {
			return Rejected, nil
		}
		return 0, err
	}
	if v != Accepted && v != Rejected {
		return 0, ErrUnknownVerdict
	}
	return v, nil
}
