package crawler

import (
	"log/slog"

	"github.com/nao1215/hoccrawler/hocrange"
)

// Option configures a crawl.
type Option func(*options)

type options struct {
	flooded     bool
	rng         *hocrange.Range
	rangeArgs   []any
	forgiveness int
	args        []any
	params      map[string]any
	observer    func(Attempt)
	logger      *slog.Logger
}

// WithFlooded sets groundwater at the same height as the cover being tested.
func WithFlooded(flooded bool) Option {
	return func(o *options) {
		o.flooded = flooded
	}
}

// WithRange crawls over r. A nil r selects hocrange.Default().
func WithRange(r *hocrange.Range) Option {
	return func(o *options) {
		o.rng = r
		o.rangeArgs = nil
	}
}

// WithRangeArgs builds the range from positional arguments, exactly as
// hocrange.New would. Construction errors are reported by the crawl.
func WithRangeArgs(args ...any) Option {
	return func(o *options) {
		o.rng = nil
		o.rangeArgs = append([]any{}, args...)
	}
}

// WithForgiveness sets how many consecutive rejections are tolerated after
// the last acceptance. Zero stops at the first rejection.
func WithForgiveness(level int) Option {
	return func(o *options) {
		o.forgiveness = level
	}
}

// WithArgs forwards extra positional values to the predicate via Candidate.Args.
func WithArgs(args ...any) Option {
	return func(o *options) {
		o.args = args
	}
}

// WithParams forwards extra named values to the predicate via Candidate.Params.
func WithParams(params map[string]any) Option {
	return func(o *options) {
		o.params = params
	}
}

// WithObserver registers fn to be called after every predicate call.
func WithObserver(fn func(Attempt)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithLogger sets the logger used for debug output. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return o
}

// resolveRange returns the range to walk.
func (o *options) resolveRange() (*hocrange.Range, error) {
	switch {
	case o.rng != nil:
		return o.rng, nil
	case o.rangeArgs != nil:
		return hocrange.New(o.rangeArgs...)
	default:
		return hocrange.Default(), nil
	}
}
