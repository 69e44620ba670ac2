package rbnf

import (
	"fmt"
	"log/slog"
	"strings"
)

const softHyphen = "\u00ad"

// FormatOption configures a single formatting call
type FormatOption func(*formatConfig)

type formatConfig struct {
	purpose             Purpose
	rulesets            []string
	radix               int
	tolerance           float64
	preserveSoftHyphens bool
}

func newFormatConfig(opts ...FormatOption) formatConfig {
	cfg := formatConfig{
		purpose:   PurposeCardinal,
		radix:     DefaultRadix,
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithPurpose selects rule-sets by purpose. Cardinal is the default.
func WithPurpose(purpose Purpose) FormatOption {
	return func(cfg *formatConfig) {
		cfg.purpose = purpose
	}
}

// WithRulesets names the rule-sets to try instead of selecting by purpose.
func WithRulesets(names ...string) FormatOption {
	return func(cfg *formatConfig) {
		cfg.rulesets = append(cfg.rulesets, names...)
	}
}

// WithRadix sets the base used to read fraction digits.
func WithRadix(radix int) FormatOption {
	return func(cfg *formatConfig) {
		if radix >= 2 {
			cfg.radix = radix
		}
	}
}

func WithTolerance(tolerance float64) FormatOption {
	return func(cfg *formatConfig) {
		if tolerance >= 0 {
			cfg.tolerance = tolerance
		}
	}
}

// PreserveSoftHyphens keeps U+00AD in the result text.
func PreserveSoftHyphens() FormatOption {
	return func(cfg *formatConfig) {
		cfg.preserveSoftHyphens = true
	}
}

// Result holds the spellings produced by FormatNumber.
type Result struct {
	// Text is the spelling from the successful rule-set with the shortest
	// name.
	Text string
	// TextByRuleset maps each successful rule-set to its spelling.
	TextByRuleset map[string]string
	// Rulesets lists the successful rule-sets in enumeration order.
	Rulesets []string
}

// SelectRulesets returns the rule-sets FormatNumber would try for purpose,
// in the order they were added. Names containing "verbose" are left out.
func (e *Engine) SelectRulesets(purpose Purpose) []string {
	var names []string
	for _, name := range e.order {
		if strings.Contains(name, "verbose") {
			continue
		}
		if ClassifyPurpose(name) != purpose {
			continue
		}
		names = append(names, name)
	}
	return names
}

// FormatNumber spells value with every rule-set that matches the purpose or
// the explicit rule-set list. Rule-sets that are missing or have no rule for
// the value are skipped. Other errors abort. Hooks set with WithFormatHooks
// run around the call.
func (e *Engine) FormatNumber(value any, opts ...FormatOption) (Result, error) {
	if len(e.hooks) > 0 {
		return runFormatHooks(e.hooks, e.language, value, opts, e.formatNumber)
	}
	return e.formatNumber(value, opts...)
}

func (e *Engine) formatNumber(value any, opts ...FormatOption) (Result, error) {
	n, err := NewNumber(value)
	if err != nil {
		return Result{}, err
	}
	cfg := newFormatConfig(opts...)

	names := cfg.rulesets
	if len(names) == 0 {
		names = e.SelectRulesets(cfg.purpose)
	}
	if len(names) == 0 {
		return Result{}, fmt.Errorf("%w: purpose %s in language %q", ErrNoRulesetsAvailable, cfg.purpose, e.language)
	}

	result := Result{TextByRuleset: make(map[string]string, len(names))}
	var lastErr error
	for _, name := range names {
		if _, done := result.TextByRuleset[name]; done {
			continue
		}
		fragments, err := e.fragments(n, name, cfg)
		if err != nil {
			if !isSkippable(err) {
				return Result{}, err
			}
			e.logger.Debug("rbnf: skipped ruleset",
				slog.String("ruleset", name),
				slog.String("number", n.String()),
				slog.String("error", err.Error()))
			lastErr = err
			continue
		}

		text := strings.Join(fragments, "")
		if !cfg.preserveSoftHyphens {
			text = strings.ReplaceAll(text, softHyphen, "")
		}
		result.TextByRuleset[name] = text
		result.Rulesets = append(result.Rulesets, name)
	}

	if len(result.Rulesets) == 0 {
		return Result{}, fmt.Errorf("%w: %s: %w", ErrNoRulesetsAvailable, n, lastErr)
	}

	shortest := result.Rulesets[0]
	for _, name := range result.Rulesets[1:] {
		if len(name) < len(shortest) {
			shortest = name
		}
	}
	result.Text = result.TextByRuleset[shortest]

	return result, nil
}
