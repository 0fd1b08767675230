package hocrange

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/hoccrawler/quantity"
)

// take collects at most n values from seq as strings.
func take(seq func(func(quantity.Quantity) bool), n int) []string {
	out := make([]string, 0, n)
	for v := range seq {
		out = append(out, v.String())
		if len(out) == n {
			break
		}
	}
	return out
}

// TestNew tests construction with valid argument combinations.
func TestNew(t *testing.T) {
	t.Parallel()

	ft := quantity.Feet

	tests := []struct {
		name        string
		args        []any
		wantStart   string
		wantStop    string
		wantStep    string
		wantBounded bool
	}{
		{name: "no arguments", args: nil, wantStart: "1", wantStep: "1"},
		{name: "stop only", args: []any{1.0}, wantStart: "1", wantStop: "1", wantStep: "1", wantBounded: true},
		{name: "start and stop", args: []any{1.0, 1.0}, wantStart: "1", wantStop: "1", wantStep: "1", wantBounded: true},
		{name: "start stop step", args: []any{1.0, 1.0, 1.0}, wantStart: "1", wantStop: "1", wantStep: "1", wantBounded: true},
		{name: "integers", args: []any{2, 9}, wantStart: "2", wantStop: "9", wantStep: "1", wantBounded: true},
		{name: "open stop", args: []any{2, nil}, wantStart: "2", wantStep: "1"},
		{name: "nil start uses default", args: []any{nil, 5}, wantStart: "1", wantStop: "5", wantStep: "1", wantBounded: true},
		{name: "nil step uses default", args: []any{0, 5, nil}, wantStart: "0", wantStop: "5", wantStep: "1", wantBounded: true},
		{
			name:        "all units",
			args:        []any{quantity.New(1, ft), quantity.New(1, ft), quantity.New(1, ft)},
			wantStart:   "1 ft",
			wantStop:    "1 ft",
			wantStep:    "1 ft",
			wantBounded: true,
		},
		{
			name:        "unit-less step promoted",
			args:        []any{quantity.New(1, ft), quantity.New(1, ft), 1.0},
			wantStart:   "1 ft",
			wantStop:    "1 ft",
			wantStep:    "1 ft",
			wantBounded: true,
		},
		{
			name:        "unit-less stop and step promoted",
			args:        []any{quantity.New(1, ft), 1.0, 1.0},
			wantStart:   "1 ft",
			wantStop:    "1 ft",
			wantStep:    "1 ft",
			wantBounded: true,
		},
		{
			name:        "unit on stop only promotes defaults",
			args:        []any{quantity.New(4, quantity.Meters)},
			wantStart:   "1 m",
			wantStop:    "4 m",
			wantStep:    "1 m",
			wantBounded: true,
		},
		{name: "nil quantity pointer is open", args: []any{3, (*quantity.Quantity)(nil)}, wantStart: "3", wantStep: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := New(tt.args...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := r.Start().String(); got != tt.wantStart {
				t.Errorf("start: expected %q, got %q", tt.wantStart, got)
			}
			if got := r.Step().String(); got != tt.wantStep {
				t.Errorf("step: expected %q, got %q", tt.wantStep, got)
			}
			stop, bounded := r.Stop()
			if bounded != tt.wantBounded {
				t.Fatalf("bounded: expected %v, got %v", tt.wantBounded, bounded)
			}
			if bounded && stop.String() != tt.wantStop {
				t.Errorf("stop: expected %q, got %q", tt.wantStop, stop.String())
			}
		})
	}
}

// TestNewInvalid tests that bad arguments fail with ErrInvalidRange.
func TestNewInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		args        []any
		wantMessage string
	}{
		{name: "negative stop", args: []any{-1.0}, wantMessage: "stop"},
		{name: "negative stop after start", args: []any{1.0, -1.0}, wantMessage: "stop"},
		{name: "negative step", args: []any{1.0, 1.0, -1.0}, wantMessage: "step"},
		{name: "negative start with unit", args: []any{quantity.New(-2, quantity.Feet), 3}, wantMessage: "start"},
		{
			name:        "mismatched units",
			args:        []any{quantity.New(1, quantity.Feet), quantity.New(1, quantity.Meters), 1.0},
			wantMessage: "mismatched units",
		},
		{name: "string argument", args: []any{"ten"}, wantMessage: "stop=string"},
		{name: "too many arguments", args: []any{1, 2, 3, 4}, wantMessage: "at most 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.args...)
			if !errors.Is(err, ErrInvalidRange) {
				t.Fatalf("expected ErrInvalidRange, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMessage) {
				t.Errorf("expected error to mention %q, got %q", tt.wantMessage, err.Error())
			}
		})
	}
}

// TestUp tests ascending iteration.
func TestUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    *Range
		want []string
	}{
		{name: "even span", r: MustNew(2, 5), want: []string{"2", "3", "4", "5"}},
		{name: "step does not divide span", r: MustNew(0, 5, 2), want: []string{"0", "2", "4", "5"}},
		{name: "start equals stop", r: MustNew(3, 3), want: []string{"3"}},
		{name: "start above stop yields stop", r: MustNew(5, 3), want: []string{"3"}},
		{name: "fractional step", r: MustNew(0, 0.3, 0.1), want: []string{"0", "0.1", "0.2", "0.3"}},
		{name: "zero step yields start then stop", r: MustNew(1, 5, 0), want: []string{"1", "5"}},
		{name: "zero step with start equal to stop", r: MustNew(5, 5, 0), want: []string{"5"}},
		{
			name: "with unit",
			r:    MustNew(quantity.New(1, quantity.Feet), 3),
			want: []string{"1 ft", "2 ft", "3 ft"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := take(tt.r.Up(), 100)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Up() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestDown tests descending iteration.
func TestDown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		r    *Range
		want []string
	}{
		{name: "down to one", r: MustNew(2, 1), want: []string{"2", "1"}},
		{name: "down to zero", r: MustNew(2, 0), want: []string{"2", "1", "0"}},
		{name: "step does not divide span", r: MustNew(10, 5, 2), want: []string{"10", "8", "6", "5"}},
		{name: "start equals stop", r: MustNew(1, 1), want: []string{"1"}},
		{name: "start below stop yields stop", r: MustNew(1, 4), want: []string{"4"}},
		{name: "zero step yields start then stop", r: MustNew(9, 2, 0), want: []string{"9", "2"}},
		{name: "zero step with start below stop", r: MustNew(1, 4, 0), want: []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := take(tt.r.Down(), 100)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Down() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestUnbounded tests that open ranges keep producing values.
func TestUnbounded(t *testing.T) {
	t.Parallel()

	r := Default()

	up := take(r.Up(), 1000)
	if len(up) != 1000 {
		t.Fatalf("expected 1000 values, got %d", len(up))
	}
	if up[999] != "1000" {
		t.Errorf("expected 1000th value to be 1000, got %s", up[999])
	}

	down := take(r.Down(), 3)
	if diff := cmp.Diff([]string{"1", "0", "-1"}, down); diff != "" {
		t.Errorf("Down() mismatch (-want +got):\n%s", diff)
	}
}

// TestMonotonic tests strict monotonicity and inclusive stop over many ranges.
func TestMonotonic(t *testing.T) {
	t.Parallel()

	for _, start := range []float64{0, 0.5, 1, 3} {
		for _, stop := range []float64{0, 1, 2.25, 7} {
			for _, step := range []float64{0.25, 1, 1.5} {
				r := MustNew(start, stop, step)

				var prev *quantity.Quantity
				var last quantity.Quantity
				for v := range r.Up() {
					if prev != nil {
						if c, _ := v.Compare(*prev); c <= 0 {
							t.Fatalf("%s: Up not strictly increasing at %s", r, v)
						}
					}
					p := v
					prev = &p
					last = v
				}
				if last.Magnitude() != stop {
					t.Errorf("%s: Up ended at %s, want %v", r, last, stop)
				}

				prev = nil
				for v := range r.Down() {
					if prev != nil {
						if c, _ := v.Compare(*prev); c >= 0 {
							t.Fatalf("%s: Down not strictly decreasing at %s", r, v)
						}
					}
					p := v
					prev = &p
					last = v
				}
				if last.Magnitude() != stop {
					t.Errorf("%s: Down ended at %s, want %v", r, last, stop)
				}
			}
		}
	}
}

// TestRestartable tests that a Range can be walked repeatedly.
func TestRestartable(t *testing.T) {
	t.Parallel()

	r := MustNew(1, 4)
	first := take(r.Up(), 100)
	second := take(r.Up(), 100)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second walk differs (-first +second):\n%s", diff)
	}

	// stopping early must not affect a fresh walk
	_ = take(r.Down(), 1)
	if got := take(r.Down(), 100); len(got) != 4 {
		t.Errorf("expected 4 values, got %v", got)
	}
}

// TestString tests the range rendering.
func TestString(t *testing.T) {
	t.Parallel()

	if got := MustNew(2, 9).String(); got != "[2 .. 9] step 1" {
		t.Errorf("unexpected string %q", got)
	}
	if got := Default().String(); got != "[1 .. open) step 1" {
		t.Errorf("unexpected string %q", got)
	}
}
