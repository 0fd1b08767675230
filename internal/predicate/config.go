package predicate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/hoccrawler/crawler"
	"github.com/nao1215/hoccrawler/internal/config"
	"github.com/nao1215/hoccrawler/quantity"
)

// ErrNoPredicate is returned by FromConfig for an empty predicate section.
var ErrNoPredicate = errors.New("no predicate configured")

// FromConfig builds the predicate described by pc.
func FromConfig(pc config.PredicateConfig) (crawler.Predicate, error) {
	switch strings.ToLower(strings.TrimSpace(pc.Type)) {
	case config.PredicateLimits:
		return limitsFromConfig(pc)
	case config.PredicateExec:
		if pc.Command == "" {
			return nil, config.ErrMissingCommand
		}
		return &Exec{
			Command:        pc.Command,
			Args:           pc.Args,
			Env:            pc.Env,
			RejectExitCode: pc.RejectExitCode,
		}, nil
	case "":
		return nil, ErrNoPredicate
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownPredicate, pc.Type)
	}
}

func limitsFromConfig(pc config.PredicateConfig) (*Limits, error) {
	var (
		l   Limits
		err error
	)
	if l.Min, err = optional("minCover", pc.MinCover); err != nil {
		return nil, err
	}
	if l.Max, err = optional("maxCover", pc.MaxCover); err != nil {
		return nil, err
	}
	if l.MaxGroundwater, err = optional("maxGroundwater", pc.MaxGroundwater); err != nil {
		return nil, err
	}
	for _, s := range pc.Exclude {
		q, err := quantity.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("exclude: %w", err)
		}
		l.Exclude = append(l.Exclude, q)
	}
	return &l, nil
}

func optional(name, s string) (*quantity.Quantity, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil //nolint:nilnil // an empty limit is open
	}
	q, err := quantity.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &q, nil
}
