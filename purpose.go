package rbnf

import (
	"fmt"
	"strings"
)

// Purpose groups rule-sets by what they spell.
type Purpose int

const (
	PurposeUnknown Purpose = iota
	PurposeCardinal
	PurposeOrdinal
	PurposeYear
)

func (p Purpose) String() string {
	switch p {
	case PurposeCardinal:
		return "cardinal"
	case PurposeOrdinal:
		return "ordinal"
	case PurposeYear:
		return "year"
	default:
		return "unknown"
	}
}

// ParsePurpose accepts the names printed by Purpose.String.
func ParsePurpose(s string) (Purpose, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cardinal", "":
		return PurposeCardinal, nil
	case "ordinal":
		return PurposeOrdinal, nil
	case "year":
		return PurposeYear, nil
	default:
		return PurposeUnknown, fmt.Errorf("rbnf: unknown purpose %q", s)
	}
}

// ClassifyPurpose derives the purpose from a rule-set name. Only names with
// the "spellout" prefix have one.
func ClassifyPurpose(name string) Purpose {
	if !strings.HasPrefix(name, "spellout") {
		return PurposeUnknown
	}
	switch {
	case strings.Contains(name, "ordinal"):
		return PurposeOrdinal
	case strings.Contains(name, "year"):
		return PurposeYear
	case strings.Contains(name, "cardinal"), strings.Contains(name, "numbering"):
		return PurposeCardinal
	default:
		return PurposeUnknown
	}
}
