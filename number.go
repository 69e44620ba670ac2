package rbnf

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/govalues/decimal"
)

type numberKind int

const (
	kindFinite numberKind = iota
	kindNaN
	kindPosInf
	kindNegInf
)

// Number is an exact decimal value extended with NaN and the two infinities.
// The zero value is 0.
type Number struct {
	kind numberKind
	dec  decimal.Decimal
}

var (
	numberNaN    = Number{kind: kindNaN}
	numberPosInf = Number{kind: kindPosInf}
	numberNegInf = Number{kind: kindNegInf}
)

// NewNumber converts a Go value into a Number. Integers of every width,
// floats, decimal.Decimal, Number and numeric strings are accepted.
func NewNumber(value any) (Number, error) {
	switch v := value.(type) {
	case Number:
		return v, nil
	case *Number:
		if v == nil {
			return Number{}, fmt.Errorf("%w: nil", ErrInvalidNumber)
		}
		return *v, nil
	case decimal.Decimal:
		return Number{dec: v}, nil
	case int:
		return numberFromInt64(int64(v))
	case int8:
		return numberFromInt64(int64(v))
	case int16:
		return numberFromInt64(int64(v))
	case int32:
		return numberFromInt64(int64(v))
	case int64:
		return numberFromInt64(v)
	case uint:
		return numberFromUint64(uint64(v))
	case uint8:
		return numberFromUint64(uint64(v))
	case uint16:
		return numberFromUint64(uint64(v))
	case uint32:
		return numberFromUint64(uint64(v))
	case uint64:
		return numberFromUint64(v)
	case float32:
		return numberFromFloat64(float64(v))
	case float64:
		return numberFromFloat64(v)
	case string:
		return ParseNumber(v)
	default:
		return Number{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidNumber, value)
	}
}

// ParseNumber parses a decimal string exactly. "NaN" and the infinity
// spellings "Inf", "+Inf", "-Inf" and "Infinity" are accepted in any case.
func ParseNumber(s string) (Number, error) {
	trimmed := strings.TrimSpace(s)
	switch strings.ToLower(trimmed) {
	case "nan":
		return numberNaN, nil
	case "inf", "+inf", "infinity", "+infinity":
		return numberPosInf, nil
	case "-inf", "-infinity":
		return numberNegInf, nil
	}

	d, err := decimal.Parse(trimmed)
	if err == nil {
		return Number{dec: d}, nil
	}
	if _, ferr := strconv.ParseFloat(trimmed, 64); ferr == nil {
		return Number{}, fmt.Errorf("%w: %q", ErrNumberOutOfRange, s)
	}
	return Number{}, fmt.Errorf("%w: %q: %v", ErrInvalidNumber, s, err)
}

// MustNumber is like NewNumber but panics on error. It is meant for
// constants in tests and examples.
func MustNumber(value any) Number {
	n, err := NewNumber(value)
	if err != nil {
		panic(err)
	}
	return n
}

func numberFromInt64(v int64) (Number, error) {
	d, err := decimal.New(v, 0)
	if err != nil {
		return Number{}, fmt.Errorf("%w: %d", ErrNumberOutOfRange, v)
	}
	return Number{dec: d}, nil
}

func numberFromUint64(v uint64) (Number, error) {
	if v <= math.MaxInt64 {
		return numberFromInt64(int64(v))
	}
	d, err := decimal.Parse(strconv.FormatUint(v, 10))
	if err != nil {
		return Number{}, fmt.Errorf("%w: %d", ErrNumberOutOfRange, v)
	}
	return Number{dec: d}, nil
}

func numberFromFloat64(v float64) (Number, error) {
	switch {
	case math.IsNaN(v):
		return numberNaN, nil
	case math.IsInf(v, 1):
		return numberPosInf, nil
	case math.IsInf(v, -1):
		return numberNegInf, nil
	}
	d, err := decimal.NewFromFloat64(v)
	if err != nil {
		return Number{}, fmt.Errorf("%w: %g", ErrNumberOutOfRange, v)
	}
	return Number{dec: d}, nil
}

// IsNaN reports whether n is not a number.
func (n Number) IsNaN() bool { return n.kind == kindNaN }

// IsInf reports whether n is an infinity. A positive sign selects +Inf, a
// negative sign -Inf and zero either.
func (n Number) IsInf(sign int) bool {
	switch {
	case sign > 0:
		return n.kind == kindPosInf
	case sign < 0:
		return n.kind == kindNegInf
	default:
		return n.kind == kindPosInf || n.kind == kindNegInf
	}
}

// IsNegative reports whether n is below zero, including -Inf.
func (n Number) IsNegative() bool {
	switch n.kind {
	case kindNegInf:
		return true
	case kindFinite:
		return n.dec.IsNeg()
	default:
		return false
	}
}

func (n Number) IsZero() bool {
	return n.kind == kindFinite && n.dec.IsZero()
}

// Decimal returns the finite value. The boolean is false for NaN and the
// infinities.
func (n Number) Decimal() (decimal.Decimal, bool) {
	if n.kind != kindFinite {
		return decimal.Decimal{}, false
	}
	return n.dec, true
}

// Abs returns |n|. -Inf becomes +Inf.
func (n Number) Abs() Number {
	switch n.kind {
	case kindNegInf:
		return numberPosInf
	case kindFinite:
		return Number{dec: n.dec.Abs()}
	default:
		return n
	}
}

// Float64 returns the nearest float64.
func (n Number) Float64() float64 {
	switch n.kind {
	case kindNaN:
		return math.NaN()
	case kindPosInf:
		return math.Inf(1)
	case kindNegInf:
		return math.Inf(-1)
	}
	f, _ := n.dec.Float64()
	return f
}

func (n Number) String() string {
	switch n.kind {
	case kindNaN:
		return "NaN"
	case kindPosInf:
		return "Inf"
	case kindNegInf:
		return "-Inf"
	}
	return n.dec.String()
}

// nearInteger reports whether a finite n lies within tolerance of an integer.
func (n Number) nearInteger(tolerance float64) bool {
	if n.kind != kindFinite {
		return false
	}
	return fractionDistance(n.dec) <= tolerance
}

// roundedUint returns |n| rounded to the nearest integer.
func (n Number) roundedUint() uint64 {
	if n.kind != kindFinite {
		return 0
	}
	return n.dec.Abs().Round(0).Coef()
}

// integerPart returns the truncated magnitude of a finite n.
func (n Number) integerPart() uint64 {
	if n.kind != kindFinite {
		return 0
	}
	return n.dec.Abs().Trunc(0).Coef()
}

// fractionDigits scales the fractional part of |n| by radix until it is
// within tolerance of an integer and returns that integer. 3.14 yields 14.
func (n Number) fractionDigits(radix int, tolerance float64) uint64 {
	if n.kind != kindFinite {
		return 0
	}
	if radix < 2 {
		radix = DefaultRadix
	}
	abs := n.dec.Abs()
	frac, err := abs.Sub(abs.Trunc(0))
	if err != nil {
		return 0
	}
	base, err := decimal.New(int64(radix), 0)
	if err != nil {
		return 0
	}
	for range maxFractionSteps {
		if fractionDistance(frac) <= tolerance {
			break
		}
		next, err := frac.Mul(base)
		if err != nil {
			break
		}
		frac = next
	}
	return frac.Round(0).Coef()
}

const maxFractionSteps = 64

// fractionDistance is the distance from d to its nearest integer.
func fractionDistance(d decimal.Decimal) float64 {
	abs := d.Abs()
	frac, err := abs.Sub(abs.Trunc(0))
	if err != nil || frac.IsZero() {
		return 0
	}
	f, _ := frac.Float64()
	if f > 0.5 {
		return 1 - f
	}
	return f
}

func numberFromCount(v uint64) Number {
	n, err := numberFromUint64(v)
	if err != nil {
		return Number{}
	}
	return n
}
