package crawler

import (
	"errors"
	"fmt"
)

// Configuration errors. These are returned before any candidate is tried.
var (
	// ErrInvalidTarget is returned for a target other than min or max.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrInvalidForgiveness is returned for a negative forgiveness level.
	ErrInvalidForgiveness = errors.New("invalid forgiveness level: must be non-negative")

	// ErrNilPredicate is returned when no predicate is supplied.
	ErrNilPredicate = errors.New("predicate is required")
)

// ErrInvalidCandidate is the rejection signal. A predicate may return it
// (or an error wrapping it) instead of the Rejected verdict.
var ErrInvalidCandidate = errors.New("invalid candidate")

// ErrUnknownVerdict is returned when a predicate answers with a Verdict that
// is neither Accepted nor Rejected.
var ErrUnknownVerdict = errors.New("predicate returned an unknown verdict")

// ErrNoValidHeight is matched by every ExhaustedError.
var ErrNoValidHeight = errors.New("no valid height found")

// ExhaustedError is returned when a crawl ends without accepting any candidate.
type ExhaustedError struct {
	Target Target
}

// Error implements error.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("failed to successfully determine %s height of cover", e.Target)
}

// Is makes errors.Is(err, ErrNoValidHeight) succeed.
func (e *ExhaustedError) Is(target error) bool {
	return target == ErrNoValidHeight
}
