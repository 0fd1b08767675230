package quantity

import (
	"errors"
	"math"
	"testing"
)

// TestParse tests parsing of quantity text.
func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantMag   float64
		wantUnit  Unit
		wantError bool
	}{
		{name: "integer scalar", input: "4", wantMag: 4},
		{name: "float scalar", input: "2.5", wantMag: 2.5},
		{name: "attached unit", input: "2.5ft", wantMag: 2.5, wantUnit: Feet},
		{name: "spaced unit", input: "3 m", wantMag: 3, wantUnit: Meters},
		{name: "spelled out feet", input: "10 feet", wantMag: 10, wantUnit: Feet},
		{name: "upper case alias", input: "7 Metres", wantMag: 7, wantUnit: Meters},
		{name: "exponent", input: "1e1 ft", wantMag: 10, wantUnit: Feet},
		{name: "unit starting with e after digits", input: "2em", wantMag: 2, wantUnit: "em"},
		{name: "negative", input: "-1.5 in", wantMag: -1.5, wantUnit: Inches},
		{name: "surrounding whitespace", input: "  6  ", wantMag: 6},
		{name: "empty", input: "", wantError: true},
		{name: "word", input: "open", wantError: true},
		{name: "garbage number", input: "1.2.3ft", wantError: true},
		{name: "dangling exponent", input: "1e", wantError: true},
		{name: "dangling exponent before space", input: "2E ", wantError: true},
		{name: "hex literal", input: "0x10", wantError: true},
		{name: "unit with digits", input: "3 ft2", wantError: true},
		{name: "unknown unit word", input: "4 yd", wantMag: 4, wantUnit: "yd"},
		{name: "quote alias", input: "5'", wantMag: 5, wantUnit: Feet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.input)
			if tt.wantError {
				if !errors.Is(err, ErrInvalidQuantity) {
					t.Fatalf("expected ErrInvalidQuantity, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Magnitude() != tt.wantMag {
				t.Errorf("expected magnitude %v, got %v", tt.wantMag, got.Magnitude())
			}
			if got.Unit() != tt.wantUnit {
				t.Errorf("expected unit %q, got %q", tt.wantUnit, got.Unit())
			}
		})
	}
}

// TestWithUnit tests scalar promotion.
func TestWithUnit(t *testing.T) {
	t.Parallel()

	t.Run("promotes scalar", func(t *testing.T) {
		t.Parallel()
		got, err := Scalar(2).WithUnit("feet")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Equal(New(2, Feet)) {
			t.Errorf("expected 2 ft, got %s", got)
		}
	})

	t.Run("keeps matching unit", func(t *testing.T) {
		t.Parallel()
		got, err := New(2, Feet).WithUnit(Feet)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Unit() != Feet {
			t.Errorf("expected ft, got %q", got.Unit())
		}
	})

	t.Run("empty unit is a no-op", func(t *testing.T) {
		t.Parallel()
		got, err := New(2, Meters).WithUnit("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Unit() != Meters {
			t.Errorf("expected m, got %q", got.Unit())
		}
	})

	t.Run("rejects different unit", func(t *testing.T) {
		t.Parallel()
		_, err := New(2, Meters).WithUnit(Feet)
		if !errors.Is(err, ErrUnitMismatch) {
			t.Errorf("expected ErrUnitMismatch, got %v", err)
		}
	})
}

// TestArithmetic tests Add, Sub, Mul and Compare.
func TestArithmetic(t *testing.T) {
	t.Parallel()

	t.Run("add same unit", func(t *testing.T) {
		t.Parallel()
		got, err := New(1, Feet).Add(New(2, Feet))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.String() != "3 ft" {
			t.Errorf("expected 3 ft, got %s", got)
		}
	})

	t.Run("sub scalars", func(t *testing.T) {
		t.Parallel()
		got, err := Scalar(5).Sub(Scalar(1.5))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Magnitude() != 3.5 {
			t.Errorf("expected 3.5, got %v", got.Magnitude())
		}
	})

	t.Run("mul keeps unit", func(t *testing.T) {
		t.Parallel()
		got := New(1.5, Meters).Mul(4)
		if !got.Equal(New(6, Meters)) {
			t.Errorf("expected 6 m, got %s", got)
		}
	})

	t.Run("add mismatched units", func(t *testing.T) {
		t.Parallel()
		_, err := New(1, Feet).Add(New(1, Meters))
		if !errors.Is(err, ErrUnitMismatch) {
			t.Errorf("expected ErrUnitMismatch, got %v", err)
		}
	})

	t.Run("unit value versus scalar", func(t *testing.T) {
		t.Parallel()
		_, err := New(1, Feet).Compare(Scalar(1))
		if !errors.Is(err, ErrUnitMismatch) {
			t.Errorf("expected ErrUnitMismatch, got %v", err)
		}
	})

	t.Run("compare orders magnitudes", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			a, b Quantity
			want int
		}{
			{Scalar(1), Scalar(2), -1},
			{Scalar(2), Scalar(2), 0},
			{Scalar(3), Scalar(2), 1},
			{Scalar(math.NaN()), Scalar(0), -1},
			{Scalar(math.NaN()), Scalar(math.NaN()), 0},
		}
		for _, c := range cases {
			got, err := c.a.Compare(c.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", c.a, c.b, got, c.want)
			}
		}
	})
}

// TestString tests text rendering and round trips through the text interfaces.
func TestString(t *testing.T) {
	t.Parallel()

	if got := Scalar(4).String(); got != "4" {
		t.Errorf("expected \"4\", got %q", got)
	}
	if got := New(0.5, "inch").String(); got != "0.5 in" {
		t.Errorf("expected \"0.5 in\", got %q", got)
	}

	var q Quantity
	if err := q.UnmarshalText([]byte("12 ft")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text, err := q.MarshalText()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(text) != "12 ft" {
		t.Errorf("expected \"12 ft\", got %q", text)
	}
	if got := q.LogValue().String(); got != "12 ft" {
		t.Errorf("expected log value \"12 ft\", got %q", got)
	}
}

// TestSign tests Sign and IsNaN helpers.
func TestSign(t *testing.T) {
	t.Parallel()

	if Scalar(-2).Sign() != -1 || Scalar(0).Sign() != 0 || Scalar(3).Sign() != 1 {
		t.Error("unexpected sign results")
	}
	if !Scalar(math.NaN()).IsNaN() {
		t.Error("expected NaN to be reported")
	}
}
