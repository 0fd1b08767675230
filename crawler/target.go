package crawler

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Target selects which limit a crawl looks for.
type Target string

const (
	// Min searches downwards for the smallest accepted height.
	Min Target = "min"
	// Max searches upwards for the largest accepted height.
	Max Target = "max"
)

// String returns the target name.
func (t Target) String() string {
	return string(t)
}

// ParseTarget accepts "min" or "max" in any letter case.
func ParseTarget(s string) (Target, error) {
	folded := cases.Fold().String(strings.TrimSpace(s))
	switch Target(folded) {
	case Min:
		return Min, nil
	case Max:
		return Max, nil
	default:
		return "", fmt.Errorf("%w: %q (must be %q or %q)", ErrInvalidTarget, s, Min, Max)
	}
}

// Validate normalises t, so Target("Max") is accepted as Max.
func (t Target) Validate() (Target, error) {
	return ParseTarget(string(t))
}
