package rbnf

import (
	"fmt"
	"math"
	"strings"
)

// Format spells value with the named rule-set. Soft hyphens in the rule text
// are kept.
func (e *Engine) Format(value any, ruleset string, opts ...FormatOption) (string, error) {
	fragments, err := e.Fragments(value, ruleset, opts...)
	if err != nil {
		return "", err
	}
	return strings.Join(fragments, ""), nil
}

// Fragments returns the text pieces Format would join, in order.
func (e *Engine) Fragments(value any, ruleset string, opts ...FormatOption) ([]string, error) {
	n, err := NewNumber(value)
	if err != nil {
		return nil, err
	}
	cfg := newFormatConfig(opts...)
	return e.fragments(n, ruleset, cfg)
}

func (e *Engine) fragments(n Number, ruleset string, cfg formatConfig) ([]string, error) {
	f := &formatter{
		engine:    e,
		radix:     cfg.radix,
		tolerance: cfg.tolerance,
		maxDepth:  e.maxDepth,
		patterns:  e.patterns,
	}
	if f.maxDepth <= 0 {
		f.maxDepth = DefaultMaxDepth
	}
	if err := f.format(n, ruleset, 0); err != nil {
		return nil, err
	}
	return f.out, nil
}

type formatter struct {
	engine    *Engine
	radix     int
	tolerance float64
	maxDepth  int
	patterns  PatternFormatter
	out       []string
}

func (f *formatter) emit(text string) {
	if text != "" {
		f.out = append(f.out, text)
	}
}

func (f *formatter) format(n Number, name string, depth int) error {
	if depth > f.maxDepth {
		return fmt.Errorf("%w: depth %d at ruleset %q", ErrRecursionLimit, f.maxDepth, name)
	}

	set, ok := f.engine.RuleSet(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrRulesetNotFound, name)
	}

	rule := set.FindRule(n, f.tolerance, f.engine)
	if rule == nil {
		return fmt.Errorf("%w: %s in ruleset %q", ErrNoRuleForNumber, n, name)
	}

	quotient, remainder := f.split(rule, n)

	for _, part := range rule.parts {
		switch p := part.(type) {
		case Literal:
			f.emit(p.Text)
		case Substitution:
			value := remainder
			if p.Direction == Quotient {
				value = quotient
			}
			if value.IsZero() && (p.Optional || !p.HasOverride) {
				continue
			}
			target := name
			if p.HasOverride {
				target = p.Ruleset
			}

			f.emit(p.TextBefore)
			if p.Pattern != "" && f.patterns != nil {
				text, err := f.patterns(value, p.Pattern)
				if err != nil {
					return fmt.Errorf("rbnf: pattern %q in ruleset %q: %w", p.Pattern, name, err)
				}
				f.emit(text)
			} else if err := f.format(value, target, depth+1); err != nil {
				return err
			}
			f.emit(p.TextAfter)
		case Replacement:
			if err := f.format(n, p.Ruleset, depth+1); err != nil {
				return err
			}
		default:
			return fmt.Errorf("rbnf: unknown rule part %T in ruleset %q", part, name)
		}
	}

	return nil
}

// split derives the quotient and remainder a rule substitutes.
func (f *formatter) split(rule *Rule, n Number) (Number, Number) {
	switch rule.Value.Special {
	case NegativeNumber:
		return Number{}, n.Abs()
	case ImproperFraction:
		return numberFromCount(n.integerPart()), numberFromCount(n.fractionDigits(f.radix, f.tolerance))
	case NotANumber, Infinity:
		return Number{}, Number{}
	}

	if rule.Value.Threshold == 0 {
		return Number{}, Number{}
	}

	value := n.roundedUint()
	div := divisor(rule.Value.Threshold, rule.Value.Radix, value)
	return numberFromCount(value / div), numberFromCount(value % div)
}

// divisor picks radix^ceil(log(threshold)) when value reaches it and
// radix^floor(log(threshold)) otherwise. The larger power falls back to the
// smaller one when it does not fit in uint64.
func divisor(threshold uint64, radix int, value uint64) uint64 {
	if radix < 2 {
		radix = DefaultRadix
	}
	base := uint64(radix)

	below := uint64(1)
	for below <= threshold/base {
		below *= base
	}

	above := below
	if below != threshold {
		if below > math.MaxUint64/base {
			return below
		}
		above = below * base
	}

	if value >= above {
		return above
	}
	return below
}
