package crawler

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/hoccrawler/hocrange"
	"github.com/nao1215/hoccrawler/quantity"
)

// allInvalid rejects every candidate.
func allInvalid() Predicate {
	return ValidatorFunc(func(_ context.Context, _ Candidate) error {
		return ErrInvalidCandidate
	})
}

// upTo accepts every H <= limit except the listed holes.
func upTo(limit float64, holes ...float64) Predicate {
	return PredicateFunc(func(_ context.Context, c Candidate) (Verdict, error) {
		h := c.H.Magnitude()
		for _, hole := range holes {
			if h == hole {
				return Rejected, nil
			}
		}
		if h <= limit {
			return Accepted, nil
		}
		return Rejected, nil
	})
}

// atLeast accepts every H >= limit except the listed holes.
func atLeast(limit float64, holes ...float64) Predicate {
	return PredicateFunc(func(_ context.Context, c Candidate) (Verdict, error) {
		h := c.H.Magnitude()
		for _, hole := range holes {
			if h == hole {
				return Rejected, nil
			}
		}
		if h >= limit {
			return Accepted, nil
		}
		return Rejected, nil
	})
}

// crawlCase is a target, range and expected result.
type crawlCase struct {
	name   string
	target Target
	args   []any
	want   float64
}

var crawlCases = []crawlCase{
	{name: "max below acceptance limit", target: "Max", args: []any{2, 9}, want: 9},
	{name: "max at acceptance limit", target: "Max", args: []any{2, 10}, want: 10},
	{name: "max beyond acceptance limit", target: "Max", args: []any{2, 11}, want: 10},
	{name: "min start equals stop", target: "Min", args: []any{1, 1}, want: 1},
	{name: "min down to one", target: "Min", args: []any{2, 1}, want: 1},
	{name: "min down to zero", target: "Min", args: []any{2, 0}, want: 0},
}

// TestCrawl tests crawling with a predicate that accepts H <= 10.
func TestCrawl(t *testing.T) {
	t.Parallel()

	for _, tt := range crawlCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			check := ValidatorFunc(func(ctx context.Context, c Candidate) error {
				if !c.Flooded || !c.HGW.Equal(c.H) {
					t.Errorf("expected flooded candidate with HGW == H, got %+v", c)
				}
				if c.H.Magnitude() <= 10 {
					return nil
				}
				return ErrInvalidCandidate
			})

			got, err := Crawl(context.Background(), check, tt.target,
				WithFlooded(true),
				WithRangeArgs(tt.args...),
			)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Magnitude() != tt.want {
				t.Errorf("expected %v, got %s", tt.want, got)
			}
		})
	}
}

// TestCrawlInvalid tests that a predicate rejecting everything exhausts the search.
func TestCrawlInvalid(t *testing.T) {
	t.Parallel()

	for _, tt := range crawlCases {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Crawl(context.Background(), allInvalid(), tt.target,
				WithFlooded(true),
				WithRangeArgs(tt.args...),
			)
			if !errors.Is(err, ErrNoValidHeight) {
				t.Fatalf("expected ErrNoValidHeight, got %v", err)
			}

			var exhausted *ExhaustedError
			if !errors.As(err, &exhausted) {
				t.Fatalf("expected *ExhaustedError, got %T", err)
			}
			want, _ := tt.target.Validate()
			if exhausted.Target != want {
				t.Errorf("expected target %q, got %q", want, exhausted.Target)
			}
		})
	}
}

// TestCrawlForgiveness tests tolerance of isolated rejections.
func TestCrawlForgiveness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		target      Target
		check       Predicate
		args        []any
		forgiveness int
		want        float64
	}{
		{name: "level 1 skips isolated hole", target: Max, check: upTo(10, 2), args: []any{1, 10}, forgiveness: 1, want: 10},
		{name: "level 0 stops before hole", target: Max, check: upTo(10, 2), args: []any{1, 10}, forgiveness: 0, want: 1},
		{name: "level 1 stops at double hole", target: Max, check: upTo(10, 3, 4), args: []any{1, 10}, forgiveness: 1, want: 2},
		{name: "level 2 skips double hole", target: Max, check: upTo(10, 3, 4), args: []any{1, 10}, forgiveness: 2, want: 10},
		{name: "level 1 beyond limit keeps last accepted", target: Max, check: upTo(10, 2), args: []any{1, 15}, forgiveness: 1, want: 10},
		{name: "min level 0 stops before hole", target: Min, check: atLeast(3, 5), args: []any{10, 0}, forgiveness: 0, want: 6},
		{name: "min level 1 skips hole", target: Min, check: atLeast(3, 5), args: []any{10, 0}, forgiveness: 1, want: 3},
		{name: "first candidates rejected then accepted", target: Max, check: upTo(10, 1), args: []any{1, 10}, forgiveness: 1, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Crawl(context.Background(), tt.check, tt.target,
				WithFlooded(true),
				WithRangeArgs(tt.args...),
				WithForgiveness(tt.forgiveness),
			)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Magnitude() != tt.want {
				t.Errorf("expected %v, got %s", tt.want, got)
			}
		})
	}
}

// TestCrawlLeadingRejectionWithoutForgiveness tests that a rejected first
// candidate ends a strict crawl with no result.
func TestCrawlLeadingRejectionWithoutForgiveness(t *testing.T) {
	t.Parallel()

	_, err := Crawl(context.Background(), upTo(10, 1), Max, WithRangeArgs(1, 10))
	if !errors.Is(err, ErrNoValidHeight) {
		t.Errorf("expected ErrNoValidHeight, got %v", err)
	}
}

// TestCrawlUnbounded tests that the forgiveness gate ends an open range.
func TestCrawlUnbounded(t *testing.T) {
	t.Parallel()

	t.Run("default range", func(t *testing.T) {
		t.Parallel()
		got, err := Crawl(context.Background(), upTo(5), Max)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Magnitude() != 5 {
			t.Errorf("expected 5, got %s", got)
		}
	})

	t.Run("nil range selects default", func(t *testing.T) {
		t.Parallel()
		got, err := Crawl(context.Background(), upTo(7), Max, WithRange(nil), WithForgiveness(3))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Magnitude() != 7 {
			t.Errorf("expected 7, got %s", got)
		}
	})
}

// TestCrawlConfigurationErrors tests failures raised before any candidate is tried.
func TestCrawlConfigurationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  Target
		opts    []Option
		wantErr error
	}{
		{name: "unknown target", target: "middle", wantErr: ErrInvalidTarget},
		{name: "empty target", target: "", wantErr: ErrInvalidTarget},
		{name: "negative forgiveness", target: Max, opts: []Option{WithForgiveness(-1)}, wantErr: ErrInvalidForgiveness},
		{name: "negative range bound", target: Max, opts: []Option{WithRangeArgs(1, -3)}, wantErr: hocrange.ErrInvalidRange},
		{
			name:   "mismatched range units",
			target: Min,
			opts: []Option{WithRangeArgs(
				quantity.New(1, quantity.Feet), quantity.New(1, quantity.Meters), 1,
			)},
			wantErr: hocrange.ErrInvalidRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			check := PredicateFunc(func(context.Context, Candidate) (Verdict, error) {
				called = true
				return Accepted, nil
			})

			res, err := Search(context.Background(), check, tt.target, tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if res != nil {
				t.Error("expected nil result for configuration error")
			}
			if called {
				t.Error("predicate must not be called on configuration error")
			}
		})
	}

	t.Run("nil predicate", func(t *testing.T) {
		t.Parallel()
		_, err := Crawl(context.Background(), nil, Max)
		if !errors.Is(err, ErrNilPredicate) {
			t.Errorf("expected ErrNilPredicate, got %v", err)
		}
	})
}

// TestCrawlPredicateFailure tests that unrelated predicate errors propagate unchanged.
func TestCrawlPredicateFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	t.Run("error is returned as is", func(t *testing.T) {
		t.Parallel()
		check := ValidatorFunc(func(_ context.Context, c Candidate) error {
			if c.H.Magnitude() == 3 {
				return boom
			}
			return nil
		})

		res, err := Search(context.Background(), check, Max, WithRangeArgs(1, 10))
		if err != boom { //nolint:errorlint // identity is the property under test
			t.Fatalf("expected boom, got %v", err)
		}
		if res == nil || res.Accepted != 2 {
			t.Errorf("expected partial result with 2 accepted, got %+v", res)
		}
	})

	t.Run("unknown verdict", func(t *testing.T) {
		t.Parallel()
		check := PredicateFunc(func(context.Context, Candidate) (Verdict, error) {
			return Verdict(42), nil
		})
		_, err := Crawl(context.Background(), check, Max, WithRangeArgs(1, 3))
		if !errors.Is(err, ErrUnknownVerdict) {
			t.Errorf("expected ErrUnknownVerdict, got %v", err)
		}
	})

	t.Run("wrapped rejection is a rejection", func(t *testing.T) {
		t.Parallel()
		check := ValidatorFunc(func(_ context.Context, c Candidate) error {
			if c.H.Magnitude() > 4 {
				return errors.Join(errors.New("too deep"), ErrInvalidCandidate)
			}
			return nil
		})
		got, err := Crawl(context.Background(), check, Max, WithRangeArgs(1, 10))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Magnitude() != 4 {
			t.Errorf("expected 4, got %s", got)
		}
	})
}

// TestCrawlForwarding tests that extra arguments and groundwater reach the predicate.
func TestCrawlForwarding(t *testing.T) {
	t.Parallel()

	t.Run("args and params", func(t *testing.T) {
		t.Parallel()
		check := PredicateFunc(func(_ context.Context, c Candidate) (Verdict, error) {
			if diff := cmp.Diff([]any{"pipe", 24}, c.Args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}
			if c.Params["soil"] != "clay" {
				t.Errorf("expected soil=clay, got %v", c.Params["soil"])
			}
			return Accepted, nil
		})
		_, err := Crawl(context.Background(), check, Max,
			WithRangeArgs(1, 2),
			WithArgs("pipe", 24),
			WithParams(map[string]any{"soil": "clay"}),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("dry crawl leaves groundwater unset", func(t *testing.T) {
		t.Parallel()
		check := PredicateFunc(func(_ context.Context, c Candidate) (Verdict, error) {
			if c.Flooded || c.HGW != (quantity.Quantity{}) {
				t.Errorf("expected dry candidate, got %+v", c)
			}
			return Accepted, nil
		})
		if _, err := Crawl(context.Background(), check, Min, WithRangeArgs(3, 1)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("units reach the predicate", func(t *testing.T) {
		t.Parallel()
		check := PredicateFunc(func(_ context.Context, c Candidate) (Verdict, error) {
			if c.H.Unit() != quantity.Feet {
				t.Errorf("expected ft, got %q", c.H.Unit())
			}
			return Accepted, nil
		})
		got, err := Crawl(context.Background(), check, Max,
			WithRangeArgs(quantity.New(1, quantity.Feet), 4),
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.String() != "4 ft" {
			t.Errorf("expected 4 ft, got %s", got)
		}
	})
}

// TestSearchResult tests the trace reported by Search.
func TestSearchResult(t *testing.T) {
	t.Parallel()

	var seen []string
	res, err := Search(context.Background(), upTo(10, 2), Max,
		WithRangeArgs(1, 10),
		WithForgiveness(0),
		WithObserver(func(a Attempt) {
			seen = append(seen, a.H.String()+":"+a.Verdict.String())
		}),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff([]string{"1:accepted", "2:rejected"}, seen); diff != "" {
		t.Errorf("attempts mismatch (-want +got):\n%s", diff)
	}
	if res.Stop != StopForgiveness {
		t.Errorf("expected StopForgiveness, got %s", res.Stop)
	}
	if res.Attempts() != 2 || res.Accepted != 1 || res.Rejected != 1 {
		t.Errorf("unexpected counts: %+v", res)
	}
	if res.Target != Max || res.Range == nil {
		t.Errorf("unexpected result metadata: %+v", res)
	}

	res, err = Search(context.Background(), upTo(10), Max, WithRangeArgs(1, 4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stop != StopExhausted {
		t.Errorf("expected StopExhausted, got %s", res.Stop)
	}
}

// TestCrawlCancelled tests that a cancelled context stops the crawl.
func TestCrawlCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	check := PredicateFunc(func(context.Context, Candidate) (Verdict, error) {
		called = true
		return Accepted, nil
	})

	_, err := Crawl(ctx, check, Max)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if called {
		t.Error("predicate must not be called after cancellation")
	}
}

// TestCrawlIdempotent tests that repeated crawls with a pure predicate agree.
func TestCrawlIdempotent(t *testing.T) {
	t.Parallel()

	r := hocrange.MustNew(0, 20, 0.5)
	first, err := Crawl(context.Background(), upTo(7.5, 3), Max, WithRange(r), WithForgiveness(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Crawl(context.Background(), upTo(7.5, 3), Max, WithRange(r), WithForgiveness(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Equal(second) || first.Magnitude() != 7.5 {
		t.Errorf("expected 7.5 twice, got %s and %s", first, second)
	}
}

// TestParseTarget tests case-insensitive target parsing.
func TestParseTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    Target
		wantErr bool
	}{
		{input: "min", want: Min},
		{input: "MAX", want: Max},
		{input: " Max ", want: Max},
		{input: "mIn", want: Min},
		{input: "maximum", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTarget(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTarget) {
					t.Errorf("expected ErrInvalidTarget, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
