package rbnf

import (
	"errors"
	"math"
	"testing"

	"github.com/govalues/decimal"
)

func TestNewNumberAcceptedTypes(t *testing.T) {
	n := MustNumber("42")
	cases := []struct {
		value any
		want  string
	}{
		{int(7), "7"},
		{int8(-3), "-3"},
		{int16(300), "300"},
		{int32(-70000), "-70000"},
		{int64(math.MaxInt64), "9223372036854775807"},
		{uint(7), "7"},
		{uint8(255), "255"},
		{uint16(65535), "65535"},
		{uint32(4294967295), "4294967295"},
		{uint64(12), "12"},
		{float32(2.5), "2.5"},
		{3.14, "3.14"},
		{"1999", "1999"},
		{" -0.5 ", "-0.5"},
		{decimal.MustParse("12.75"), "12.75"},
		{n, "42"},
		{&n, "42"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Inf"},
		{math.Inf(-1), "-Inf"},
	}

	for _, tc := range cases {
		got, err := NewNumber(tc.value)
		if err != nil {
			t.Fatalf("NewNumber(%#v): %v", tc.value, err)
		}
		if got.String() != tc.want {
			t.Fatalf("NewNumber(%#v) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestNewNumberErrors(t *testing.T) {
	cases := []struct {
		value any
		want  error
	}{
		{"abc", ErrInvalidNumber},
		{"12abc", ErrInvalidNumber},
		{"", ErrInvalidNumber},
		{struct{}{}, ErrInvalidNumber},
		{(*Number)(nil), ErrInvalidNumber},
		{uint64(math.MaxUint64), ErrNumberOutOfRange},
		{"123456789012345678901234567890", ErrNumberOutOfRange},
		{1e30, ErrNumberOutOfRange},
	}

	for _, tc := range cases {
		_, err := NewNumber(tc.value)
		if !errors.Is(err, tc.want) {
			t.Fatalf("NewNumber(%#v) error = %v, want %v", tc.value, err, tc.want)
		}
	}
}

func TestParseNumberSpecialSpellings(t *testing.T) {
	cases := []struct {
		input string
		check func(Number) bool
	}{
		{"NaN", Number.IsNaN},
		{" nan ", Number.IsNaN},
		{"Inf", func(n Number) bool { return n.IsInf(1) }},
		{"+inf", func(n Number) bool { return n.IsInf(1) }},
		{"Infinity", func(n Number) bool { return n.IsInf(1) }},
		{"-Inf", func(n Number) bool { return n.IsInf(-1) }},
		{"-infinity", func(n Number) bool { return n.IsInf(-1) }},
	}

	for _, tc := range cases {
		n, err := ParseNumber(tc.input)
		if err != nil {
			t.Fatalf("ParseNumber(%q): %v", tc.input, err)
		}
		if !tc.check(n) {
			t.Fatalf("ParseNumber(%q) = %s", tc.input, n)
		}
	}
}

func TestNumberPredicates(t *testing.T) {
	negInf := MustNumber(math.Inf(-1))
	if !negInf.IsNegative() || !negInf.IsInf(0) || negInf.IsInf(1) {
		t.Fatalf("unexpected predicates for -Inf")
	}
	if abs := negInf.Abs(); !abs.IsInf(1) {
		t.Fatalf("Abs(-Inf) = %s, want Inf", abs)
	}

	nan := MustNumber(math.NaN())
	if nan.IsNegative() || nan.IsZero() || !math.IsNaN(nan.Float64()) {
		t.Fatalf("unexpected predicates for NaN")
	}
	if _, ok := nan.Decimal(); ok {
		t.Fatal("NaN should not expose a decimal")
	}

	var zero Number
	if !zero.IsZero() || zero.IsNegative() || zero.String() != "0" {
		t.Fatalf("zero value = %s, want 0", zero)
	}

	neg := MustNumber("-2.5")
	if !neg.IsNegative() || neg.Abs().String() != "2.5" || neg.Float64() != -2.5 {
		t.Fatalf("unexpected values for -2.5: abs %s float %v", neg.Abs(), neg.Float64())
	}
}

func TestNumberFractionDigits(t *testing.T) {
	cases := []struct {
		input string
		radix int
		want  uint64
	}{
		{"3.14", 10, 14},
		{"1.5", 10, 5},
		{"0.125", 10, 125},
		{"-7.25", 10, 25},
		{"4", 10, 0},
		{"0.5", 2, 1},
		{"0.75", 2, 3},
		{"0.5", 0, 5},
	}

	for _, tc := range cases {
		if got := MustNumber(tc.input).fractionDigits(tc.radix, DefaultTolerance); got != tc.want {
			t.Fatalf("fractionDigits(%s, %d) = %d, want %d", tc.input, tc.radix, got, tc.want)
		}
	}
}

func TestNumberRounding(t *testing.T) {
	cases := []struct {
		input   string
		rounded uint64
		integer uint64
		near    bool
	}{
		{"1.999999999", 2, 1, true},
		{"2.000000001", 2, 2, true},
		{"2.6", 3, 2, false},
		{"-3", 3, 3, true},
		{"0", 0, 0, true},
	}

	for _, tc := range cases {
		n := MustNumber(tc.input)
		if got := n.roundedUint(); got != tc.rounded {
			t.Fatalf("roundedUint(%s) = %d, want %d", tc.input, got, tc.rounded)
		}
		if got := n.integerPart(); got != tc.integer {
			t.Fatalf("integerPart(%s) = %d, want %d", tc.input, got, tc.integer)
		}
		if got := n.nearInteger(DefaultTolerance); got != tc.near {
			t.Fatalf("nearInteger(%s) = %v, want %v", tc.input, got, tc.near)
		}
	}
}
