package rbnf

import (
	"slices"
	"sort"
)

// DefaultTolerance is the distance from an integer below which a value is
// formatted as that integer.
const DefaultTolerance = 1e-8

// RulesetLookup resolves rule-set names during lookup and formatting.
type RulesetLookup interface {
	RuleSet(name string) (*RuleSet, bool)
}

// RuleSet is a named group of rules keyed by threshold or special kind.
type RuleSet struct {
	name       string
	access     string
	numeric    map[uint64]*Rule
	special    map[SpecialKind]*Rule
	thresholds []uint64
}

func NewRuleSet(name string) *RuleSet {
	return &RuleSet{
		name:    name,
		numeric: make(map[uint64]*Rule),
		special: make(map[SpecialKind]*Rule),
	}
}

func (s *RuleSet) Name() string { return s.name }

// Access returns the LDML access attribute, "private" for helper sets.
func (s *RuleSet) Access() string { return s.access }

// Private reports whether the set is only meant to be referenced by rules.
func (s *RuleSet) Private() bool { return s.access == "private" }

// Add stores rule, replacing any rule with the same key.
func (s *RuleSet) Add(rule *Rule) {
	if rule == nil {
		return
	}
	if rule.Value.IsSpecial() {
		s.special[rule.Value.Special] = rule
		return
	}

	threshold := rule.Value.Threshold
	_, exists := s.numeric[threshold]
	s.numeric[threshold] = rule
	if exists {
		return
	}
	idx, _ := slices.BinarySearch(s.thresholds, threshold)
	s.thresholds = slices.Insert(s.thresholds, idx, threshold)
}

// Len returns the number of stored rules.
func (s *RuleSet) Len() int {
	return len(s.numeric) + len(s.special)
}

// Rules returns the numeric rules in ascending threshold order followed by
// the special rules in kind order.
func (s *RuleSet) Rules() []*Rule {
	out := make([]*Rule, 0, s.Len())
	for _, threshold := range s.thresholds {
		out = append(out, s.numeric[threshold])
	}
	for _, kind := range []SpecialKind{NegativeNumber, ImproperFraction, NotANumber, Infinity} {
		if rule, ok := s.special[kind]; ok {
			out = append(out, rule)
		}
	}
	return out
}

// Thresholds returns a copy of the sorted numeric keys.
func (s *RuleSet) Thresholds() []uint64 {
	return slices.Clone(s.thresholds)
}

// FindRule selects the rule that formats n. Negative values, NaN and the
// infinities go through FindSpecialRule. A value further than tolerance from
// every integer uses this set's ImproperFraction rule. Any other value is
// rounded and matched against the largest threshold not above it, clamped to
// the smallest threshold.
func (s *RuleSet) FindRule(n Number, tolerance float64, registry RulesetLookup) *Rule {
	switch {
	case n.IsNegative():
		return s.FindSpecialRule(NegativeNumber, registry)
	case n.IsNaN():
		return s.FindSpecialRule(NotANumber, registry)
	case n.IsInf(1):
		return s.FindSpecialRule(Infinity, registry)
	}

	if !n.nearInteger(tolerance) {
		return s.special[ImproperFraction]
	}

	if len(s.thresholds) == 0 {
		return nil
	}
	value := n.roundedUint()
	idx := sort.Search(len(s.thresholds), func(i int) bool {
		return s.thresholds[i] > value
	}) - 1
	if idx < 0 {
		idx = 0
	}
	return s.numeric[s.thresholds[idx]]
}

// FindSpecialRule returns the rule for kind. When the set lacks one and its
// threshold-0 rule starts with a replacement, the named set is searched in
// turn. Cycles end the search.
func (s *RuleSet) FindSpecialRule(kind SpecialKind, registry RulesetLookup) *Rule {
	return s.findSpecialRule(kind, registry, make(map[string]struct{}))
}

func (s *RuleSet) findSpecialRule(kind SpecialKind, registry RulesetLookup, visited map[string]struct{}) *Rule {
	if rule, ok := s.special[kind]; ok {
		return rule
	}
	visited[s.name] = struct{}{}

	if registry == nil {
		return nil
	}
	target, ok := s.numeric[0].replacementTarget()
	if !ok {
		return nil
	}
	if _, seen := visited[target]; seen {
		return nil
	}
	next, ok := registry.RuleSet(target)
	if !ok || next == nil {
		return nil
	}
	return next.findSpecialRule(kind, registry, visited)
}
