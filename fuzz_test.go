package rbnf

import (
	"errors"
	"testing"
)

func FuzzParseRule(f *testing.F) {
	for _, seed := range []string{
		"zero;",
		"twenty[-→→];",
		"←← hundred[ →→];",
		"=%spellout-numbering=;",
		"amashumi ←%%tens-adj←[ →%%with-n→];",
		"[→%spellout-cardinal-masculine→\u00adund\u00ad]zwanzig;",
		"' =%spellout-ordinal=;",
		"=#,##0=$(ordinal,one{st}two{nd}few{rd}other{th})$;",
		"]",
		"[[",
	} {
		f.Add("0", seed)
	}
	f.Add("x.x", "←← point →→;")
	f.Add("-x", "minus →→;")

	f.Fuzz(func(t *testing.T, value, text string) {
		rule, err := ParseRule(value, text, 10)
		if err != nil {
			if !errors.Is(err, ErrMalformedRule) {
				t.Fatalf("ParseRule(%q, %q) error %v does not wrap ErrMalformedRule", value, text, err)
			}
			return
		}
		if rule == nil {
			return
		}
		for _, part := range rule.Parts() {
			if part == nil {
				t.Fatalf("ParseRule(%q, %q) produced a nil part", value, text)
			}
		}
	})
}

func FuzzFormatNumber(f *testing.F) {
	for _, seed := range []string{"0", "7", "21", "143", "1999", "-12", "3.14", "NaN", "Inf", "1000000000000000000"} {
		f.Add(seed)
	}

	engine, err := ForLanguage("en")
	if err != nil {
		f.Fatalf("ForLanguage: %v", err)
	}

	f.Fuzz(func(t *testing.T, input string) {
		n, err := ParseNumber(input)
		if err != nil {
			return
		}
		for _, purpose := range []Purpose{PurposeCardinal, PurposeOrdinal, PurposeYear} {
			_, err := engine.FormatNumber(n, WithPurpose(purpose))
			if err != nil && !errors.Is(err, ErrNoRulesetsAvailable) {
				t.Fatalf("FormatNumber(%s, %s): %v", n, purpose, err)
			}
		}
	})
}
