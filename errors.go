package rbnf

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRule indicates rule text the parser could not accept.
	ErrMalformedRule = errors.New("rbnf: malformed rule")

	// ErrRulesetNotFound indicates a rule-set name missing from the engine.
	ErrRulesetNotFound = errors.New("rbnf: ruleset not found")

	// ErrNoRuleForNumber indicates a rule-set without an applicable rule,
	// including failed special or default-rule resolution.
	ErrNoRuleForNumber = errors.New("rbnf: no rule for number")

	// ErrNoRulesetsAvailable indicates an empty rule-set selection or a
	// selection where every rule-set failed.
	ErrNoRulesetsAvailable = errors.New("rbnf: no rulesets available")

	// ErrLanguageMismatch indicates a rule document for another language.
	ErrLanguageMismatch = errors.New("rbnf: language mismatch")

	ErrUnsupportedLanguage = errors.New("rbnf: unsupported language")
	ErrRecursionLimit      = errors.New("rbnf: recursion limit exceeded")
	ErrInvalidNumber       = errors.New("rbnf: invalid number")
	ErrNumberOutOfRange    = errors.New("rbnf: number out of range")
	ErrInvalidPattern      = errors.New("rbnf: invalid decimal pattern")
)

// ParseError describes the token that stopped the rule parser.
type ParseError struct {
	Value  string
	Text   string
	Offset int
	Rune   rune
	State  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rbnf: malformed rule %s: %q at offset %d in state %s: %q",
		e.Value, e.Rune, e.Offset, e.State, e.Text)
}

// Unwrap lets errors.Is match ErrMalformedRule.
func (e *ParseError) Unwrap() error {
	return ErrMalformedRule
}

// isSkippable reports errors the aggregator tolerates per rule-set.
func isSkippable(err error) bool {
	return errors.Is(err, ErrRulesetNotFound) || errors.Is(err, ErrNoRuleForNumber)
}
