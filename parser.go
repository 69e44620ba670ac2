package rbnf

import (
	"strconv"
	"strings"
)

type parseState int

const (
	stateText parseState = iota
	stateOptionalBefore
	stateOptionalAfter
	stateRemainder
	stateQuotient
	stateSubRuleset
	stateReplaceRuleset
)

func (s parseState) String() string {
	switch s {
	case stateText:
		return "text"
	case stateOptionalBefore:
		return "optional_before"
	case stateOptionalAfter:
		return "optional_after"
	case stateRemainder:
		return "remainder"
	case stateQuotient:
		return "quotient"
	case stateSubRuleset:
		return "sub_ruleset_name"
	case stateReplaceRuleset:
		return "replace_ruleset_name"
	default:
		return "unknown"
	}
}

// openPart tags the part currently receiving runes.
type openPart int

const (
	openNone openPart = iota
	openLiteral
	openSubstitution
	openReplacement
)

// ParseRule parses one rule. The value selects the rule kind: "-x", "x.x",
// "x,x", "NaN", "Inf" or a base-10 threshold. An unrecognized value returns
// a nil rule and a nil error so loaders can drop it.
func ParseRule(value, text string, radix int) (*Rule, error) {
	ruleValue, ok := parseRuleValue(value, radix)
	if !ok {
		return nil, nil
	}

	p := &ruleParser{value: value, text: text}
	if err := p.run(); err != nil {
		return nil, err
	}

	return &Rule{Value: ruleValue, parts: p.parts}, nil
}

func parseRuleValue(value string, radix int) (RuleValue, bool) {
	switch value {
	case "-x":
		return SpecialValue(NegativeNumber), true
	case "x.x", "x,x":
		return SpecialValue(ImproperFraction), true
	case "NaN":
		return SpecialValue(NotANumber), true
	case "Inf":
		return SpecialValue(Infinity), true
	}

	threshold, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return RuleValue{}, false
	}
	return NumericValue(threshold, radix), true
}

type ruleParser struct {
	value string
	text  string

	state    parseState
	open     openPart
	current  int
	optional bool
	before   strings.Builder
	parts    []RulePart
}

func (p *ruleParser) run() error {
	offset := 0
	for _, c := range p.text {
		if c == ';' {
			return nil
		}
		if err := p.step(c); err != nil {
			return &ParseError{
				Value:  p.value,
				Text:   p.text,
				Offset: offset,
				Rune:   c,
				State:  p.state.String(),
			}
		}
		offset++
	}
	return nil
}

type stepRejected struct{}

func (stepRejected) Error() string { return "rejected" }

func (p *ruleParser) step(c rune) error {
	switch c {
	case '\'':
		return nil
	case '>', '→':
		return p.marker(Remainder, stateRemainder)
	case '<', '←':
		return p.marker(Quotient, stateQuotient)
	case '%':
		switch p.state {
		case stateRemainder, stateQuotient:
			p.state = stateSubRuleset
			p.updateSubstitution(func(sub *Substitution) {
				sub.HasOverride = true
				sub.Ruleset = ""
			})
			return nil
		case stateSubRuleset, stateReplaceRuleset:
			return nil
		}
		return stepRejected{}
	case '[':
		if p.state != stateText {
			return stepRejected{}
		}
		p.optional = true
		p.state = stateOptionalBefore
		p.before.Reset()
		return nil
	case ']':
		if p.state != stateOptionalAfter {
			return stepRejected{}
		}
		p.optional = false
		p.state = stateText
		p.open = openNone
		return nil
	case '=':
		switch p.state {
		case stateText:
			p.push(Replacement{}, openReplacement)
			p.state = stateReplaceRuleset
			return nil
		case stateReplaceRuleset:
			p.open = openNone
			p.state = stateText
			return nil
		}
		return stepRejected{}
	}

	return p.appendRune(c)
}

// marker handles an opening or closing substitution token.
func (p *ruleParser) marker(dir Direction, open parseState) error {
	switch p.state {
	case stateText, stateOptionalBefore:
		sub := Substitution{Direction: dir, Optional: p.optional}
		if p.state == stateOptionalBefore && dir == Remainder {
			sub.TextBefore = p.before.String()
		}
		p.before.Reset()
		p.push(sub, openSubstitution)
		p.state = open
		return nil
	case open, stateSubRuleset:
		if p.state == stateSubRuleset && p.currentDirection() != dir {
			return stepRejected{}
		}
		if p.optional {
			p.state = stateOptionalAfter
		} else {
			p.state = stateText
			p.open = openNone
		}
		return nil
	}
	return stepRejected{}
}

func (p *ruleParser) appendRune(c rune) error {
	switch p.state {
	case stateOptionalBefore:
		p.before.WriteRune(c)
	case stateOptionalAfter:
		p.updateSubstitution(func(sub *Substitution) { sub.TextAfter += string(c) })
	case stateSubRuleset:
		p.updateSubstitution(func(sub *Substitution) { sub.Ruleset += string(c) })
	case stateReplaceRuleset:
		rep := p.parts[p.current].(Replacement)
		rep.Ruleset += string(c)
		p.parts[p.current] = rep
	case stateText:
		if p.open != openLiteral {
			p.push(Literal{}, openLiteral)
		}
		lit := p.parts[p.current].(Literal)
		lit.Text += string(c)
		p.parts[p.current] = lit
	case stateRemainder, stateQuotient:
		if !isPatternRune(c) {
			return stepRejected{}
		}
		p.updateSubstitution(func(sub *Substitution) { sub.Pattern += string(c) })
	default:
		return stepRejected{}
	}
	return nil
}

func (p *ruleParser) push(part RulePart, kind openPart) {
	p.parts = append(p.parts, part)
	p.current = len(p.parts) - 1
	p.open = kind
}

func (p *ruleParser) updateSubstitution(fn func(*Substitution)) {
	sub := p.parts[p.current].(Substitution)
	fn(&sub)
	p.parts[p.current] = sub
}

func (p *ruleParser) currentDirection() Direction {
	return p.parts[p.current].(Substitution).Direction
}

func isPatternRune(c rune) bool {
	switch c {
	case '#', '0', ',', '.':
		return true
	}
	return false
}
