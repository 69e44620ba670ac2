package rbnf

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// decimalPattern is the subset of an ICU DecimalFormat pattern made of
// '#', '0', ',' and '.'.
type decimalPattern struct {
	grouping          bool
	minIntegerDigits  int
	minFractionDigits int
	maxFractionDigits int
}

func parseDecimalPattern(pattern string) (decimalPattern, error) {
	if pattern == "" {
		return decimalPattern{}, fmt.Errorf("%w: empty", ErrInvalidPattern)
	}
	for _, c := range pattern {
		if !isPatternRune(c) {
			return decimalPattern{}, fmt.Errorf("%w: %q: unexpected %q", ErrInvalidPattern, pattern, c)
		}
	}

	integer, fraction, _ := strings.Cut(pattern, ".")
	if strings.Contains(fraction, ".") {
		return decimalPattern{}, fmt.Errorf("%w: %q: more than one decimal point", ErrInvalidPattern, pattern)
	}
	if strings.Contains(fraction, ",") {
		return decimalPattern{}, fmt.Errorf("%w: %q: grouping in fraction", ErrInvalidPattern, pattern)
	}

	return decimalPattern{
		grouping:          strings.Contains(integer, ","),
		minIntegerDigits:  strings.Count(integer, "0"),
		minFractionDigits: strings.Count(fraction, "0"),
		maxFractionDigits: len(fraction),
	}, nil
}

func (p decimalPattern) options() []number.Option {
	opts := []number.Option{
		number.MinFractionDigits(p.minFractionDigits),
		number.MaxFractionDigits(p.maxFractionDigits),
	}
	if p.minIntegerDigits > 0 {
		opts = append(opts, number.MinIntegerDigits(p.minIntegerDigits))
	}
	if !p.grouping {
		opts = append(opts, number.NoSeparator())
	}
	return opts
}

// FormatDecimal formats value with an ICU-style pattern such as "#,##0.00"
// using English separators.
func FormatDecimal(value any, pattern string) (string, error) {
	return FormatDecimalIn("en", value, pattern)
}

// FormatDecimalIn is FormatDecimal with the separators of lang.
func FormatDecimalIn(lang string, value any, pattern string) (string, error) {
	n, err := NewNumber(value)
	if err != nil {
		return "", err
	}
	return formatDecimalNumber(message.NewPrinter(language.Make(normalizeLanguage(lang))), n, pattern)
}

// DecimalPatternFormatter formats substitution patterns with the separators
// of lang.
func DecimalPatternFormatter(lang string) PatternFormatter {
	printer := message.NewPrinter(language.Make(normalizeLanguage(lang)))
	return func(value Number, pattern string) (string, error) {
		return formatDecimalNumber(printer, value, pattern)
	}
}

func formatDecimalNumber(printer *message.Printer, n Number, pattern string) (string, error) {
	p, err := parseDecimalPattern(pattern)
	if err != nil {
		return "", err
	}
	if _, ok := n.Decimal(); !ok {
		return "", fmt.Errorf("%w: %s cannot be formatted with a decimal pattern", ErrInvalidNumber, n)
	}
	return printer.Sprintf("%v", number.Decimal(decimalOperand(n), p.options()...)), nil
}

// decimalOperand keeps integers exact and hands fractions over as float64.
func decimalOperand(n Number) any {
	d, _ := n.Decimal()
	if d.IsInt() {
		if whole, _, ok := d.Int64(0); ok {
			return whole
		}
	}
	return n.Float64()
}
