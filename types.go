package rbnf

// SpecialKind identifies rules keyed by something other than a threshold.
type SpecialKind int

const (
	NotSpecial SpecialKind = iota
	NegativeNumber
	ImproperFraction
	NotANumber
	Infinity
)

func (k SpecialKind) String() string {
	switch k {
	case NotSpecial:
		return "numeric"
	case NegativeNumber:
		return "negative_number"
	case ImproperFraction:
		return "improper_fraction"
	case NotANumber:
		return "not_a_number"
	case Infinity:
		return "infinity"
	default:
		return "unknown"
	}
}

// DefaultRadix is used when a rule does not declare one.
const DefaultRadix = 10

// RuleValue is either a numeric threshold with its radix or a special kind.
type RuleValue struct {
	Special   SpecialKind
	Threshold uint64
	Radix     int
}

// NumericValue builds a threshold value. Radix values below 2 fall back to 10.
func NumericValue(threshold uint64, radix int) RuleValue {
	if radix < 2 {
		radix = DefaultRadix
	}
	return RuleValue{Threshold: threshold, Radix: radix}
}

// SpecialValue builds a value for one of the special kinds.
func SpecialValue(kind SpecialKind) RuleValue {
	return RuleValue{Special: kind, Radix: DefaultRadix}
}

func (v RuleValue) IsSpecial() bool {
	return v.Special != NotSpecial
}

// Direction selects which half of the division a substitution formats.
type Direction int

const (
	Quotient Direction = iota
	Remainder
)

func (d Direction) String() string {
	if d == Quotient {
		return "quotient"
	}
	return "remainder"
}

// RulePart is one element of a parsed rule. The set of implementations is
// closed: Literal, Substitution and Replacement.
type RulePart interface {
	rulePart()
}

// Literal is text emitted verbatim.
type Literal struct {
	Text string
}

// Substitution formats the quotient or remainder recursively.
type Substitution struct {
	Direction  Direction
	Optional   bool
	TextBefore string
	TextAfter  string
	// Ruleset overrides the current rule-set when HasOverride is set.
	Ruleset     string
	HasOverride bool
	// Pattern holds an embedded decimal pattern such as "#,##0".
	Pattern string
}

// Replacement formats the same number under another rule-set.
type Replacement struct {
	Ruleset string
}

func (Literal) rulePart()      {}
func (Substitution) rulePart() {}
func (Replacement) rulePart()  {}

// Rule is a parsed rule. It is not modified after parsing.
type Rule struct {
	Value RuleValue
	parts []RulePart
}

// Parts returns a copy of the rule parts in source order.
func (r *Rule) Parts() []RulePart {
	if r == nil || len(r.parts) == 0 {
		return nil
	}
	out := make([]RulePart, len(r.parts))
	copy(out, r.parts)
	return out
}

// replacementTarget returns the rule-set named by a leading Replacement part.
func (r *Rule) replacementTarget() (string, bool) {
	if r == nil || len(r.parts) == 0 {
		return "", false
	}
	part, ok := r.parts[0].(Replacement)
	if !ok {
		return "", false
	}
	return part.Ruleset, true
}
