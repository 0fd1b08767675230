package quantity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Unit is a physical unit tag such as "ft" or "m".
// The empty Unit marks a scalar.
type Unit string

// Common length units. Any other word of letters is accepted verbatim.
const (
	Feet       Unit = "ft"
	Inches     Unit = "in"
	Meters     Unit = "m"
	Centimeter Unit = "cm"
	Millimeter Unit = "mm"
)

// unitAliases maps spelled-out names to their canonical symbol.
var unitAliases = map[string]Unit{
	"ft":          Feet,
	"foot":        Feet,
	"feet":        Feet,
	"'":           Feet,
	"in":          Inches,
	"inch":        Inches,
	"inches":      Inches,
	"\"":          Inches,
	"m":           Meters,
	"meter":       Meters,
	"meters":      Meters,
	"metre":       Meters,
	"metres":      Meters,
	"cm":          Centimeter,
	"centimeter":  Centimeter,
	"centimeters": Centimeter,
	"mm":          Millimeter,
	"millimeter":  Millimeter,
	"millimeters": Millimeter,
}

// ErrInvalidQuantity is returned by Parse for text that is not a number
// optionally followed by a unit.
var ErrInvalidQuantity = errors.New("invalid quantity")

// canonical folds known aliases to their symbol.
func (u Unit) canonical() Unit {
	s := strings.ToLower(strings.TrimSpace(string(u)))
	if c, ok := unitAliases[s]; ok {
		return c
	}
	return Unit(s)
}

// ParseUnit returns the canonical form of a unit name.
func ParseUnit(s string) Unit {
	return Unit(s).canonical()
}

// Parse reads a quantity such as "2", "2.5ft", "3 m" or "1e1 feet".
func Parse(s string) (Quantity, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return Quantity{}, fmt.Errorf("%w: empty string", ErrInvalidQuantity)
	}

	// Split at the first rune that cannot belong to a float literal.
	idx := strings.IndexFunc(text, func(r rune) bool {
		return !(unicode.IsDigit(r) || strings.ContainsRune("+-.eE", r))
	})

	num, unit := text, ""
	if idx >= 0 {
		num, unit = text[:idx], text[idx:]
	}

	// "1e" followed by a unit word starting with e is ambiguous; peel the
	// exponent marker back off when the number does not parse.
	v, err := strconv.ParseFloat(num, 64)
	if err != nil && len(num) > 1 && strings.ContainsAny(num[len(num)-1:], "eE") {
		v, err = strconv.ParseFloat(num[:len(num)-1], 64)
		unit = num[len(num)-1:] + unit
	}
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %q", ErrInvalidQuantity, s)
	}
	if !validUnitWord(strings.TrimSpace(unit)) {
		return Quantity{}, fmt.Errorf("%w: %q has no valid unit", ErrInvalidQuantity, s)
	}

	return New(v, Unit(unit)), nil
}

// validUnitWord reports whether w can follow a number as its unit: empty,
// a known alias, or a word made of letters only. A lone "e" is a dangling
// exponent marker rather than a unit.
func validUnitWord(w string) bool {
	if w == "" {
		return true
	}
	if _, ok := unitAliases[strings.ToLower(w)]; ok {
		return true
	}
	if strings.EqualFold(w, "e") {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Quantity {
	q, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return q
}
