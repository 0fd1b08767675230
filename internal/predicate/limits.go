package predicate

import (
	"context"
	"fmt"
	"slices"

	"github.com/nao1215/hoccrawler/crawler"
	"github.com/nao1215/hoccrawler/quantity"
)

// Limits accepts cover heights between Min and Max inclusive.
//
// Limits given without a unit take the unit of the candidate, so a scalar
// limit works with any range. A limit in one unit compared against a
// candidate in another is a predicate error and aborts the crawl.
type Limits struct {
	// Min is the smallest accepted height. Nil leaves the lower side open.
	Min *quantity.Quantity

	// Max is the largest accepted height. Nil leaves the upper side open.
	Max *quantity.Quantity

	// Exclude lists heights that are always rejected.
	Exclude []quantity.Quantity

	// MaxGroundwater caps HGW when the crawl is flooded. Nil disables the check.
	MaxGroundwater *quantity.Quantity
}

var _ crawler.Predicate = (*Limits)(nil)

// Check implements crawler.Predicate.
func (l *Limits) Check(_ context.Context, c crawler.Candidate) (crawler.Verdict, error) {
	if l.Min != nil {
		cmp, err := compareTo(c.H, *l.Min)
		if err != nil {
			return 0, fmt.Errorf("min cover: %w", err)
		}
		if cmp < 0 {
			return crawler.Rejected, nil
		}
	}

	if l.Max != nil {
		cmp, err := compareTo(c.H, *l.Max)
		if err != nil {
			return 0, fmt.Errorf("max cover: %w", err)
		}
		if cmp > 0 {
			return crawler.Rejected, nil
		}
	}

	for _, ex := range l.Exclude {
		cmp, err := compareTo(c.H, ex)
		if err != nil {
			return 0, fmt.Errorf("exclude: %w", err)
		}
		if cmp == 0 {
			return crawler.Rejected, nil
		}
	}

	if c.Flooded && l.MaxGroundwater != nil {
		cmp, err := compareTo(c.HGW, *l.MaxGroundwater)
		if err != nil {
			return 0, fmt.Errorf("max groundwater: %w", err)
		}
		if cmp > 0 {
			return crawler.Rejected, nil
		}
	}

	return crawler.Accepted, nil
}

// String describes the limits, e.g. "limits [2 ft .. 10 ft] exclude 4 ft".
func (l *Limits) String() string {
	bound := func(q *quantity.Quantity, open string) string {
		if q == nil {
			return open
		}
		return q.String()
	}

	s := fmt.Sprintf("limits [%s .. %s]", bound(l.Min, "-inf"), bound(l.Max, "+inf"))
	if len(l.Exclude) > 0 {
		names := make([]string, 0, len(l.Exclude))
		for _, ex := range l.Exclude {
			names = append(names, ex.String())
		}
		slices.Sort(names)
		s += fmt.Sprintf(" exclude %v", names)
	}
	if l.MaxGroundwater != nil {
		s += " gw <= " + l.MaxGroundwater.String()
	}
	return s
}

// compareTo compares h with limit after giving a scalar limit h's unit.
func compareTo(h, limit quantity.Quantity) (int, error) {
	limit, err := limit.WithUnit(h.Unit())
	if err != nil {
		return 0, err
	}
	return h.Compare(limit)
}
