package rbnf

import (
	"errors"
	"reflect"
	"slices"
	"testing"
)

func mustLanguage(t *testing.T, lang string, opts ...Option) *Engine {
	t.Helper()
	engine, err := ForLanguage(lang, opts...)
	if err != nil {
		t.Fatalf("ForLanguage(%q): %v", lang, err)
	}
	return engine
}

type spelling struct {
	value any
	want  string
}

func checkSpellings(t *testing.T, engine *Engine, purpose Purpose, cases []spelling, opts ...FormatOption) {
	t.Helper()
	opts = append([]FormatOption{WithPurpose(purpose)}, opts...)
	for _, tc := range cases {
		result, err := engine.FormatNumber(tc.value, opts...)
		if err != nil {
			t.Fatalf("%s %s FormatNumber(%v): %v", engine.Language(), purpose, tc.value, err)
		}
		if result.Text != tc.want {
			t.Fatalf("%s %s FormatNumber(%v) = %q, want %q", engine.Language(), purpose, tc.value, result.Text, tc.want)
		}
	}
}

func TestEnglishCardinal(t *testing.T) {
	engine := mustLanguage(t, "en")
	checkSpellings(t, engine, PurposeCardinal, []spelling{
		{0, "zero"},
		{7, "seven"},
		{13, "thirteen"},
		{21, "twenty-one"},
		{99, "ninety-nine"},
		{100, "one hundred"},
		{101, "one hundred one"},
		{143, "one hundred forty-three"},
		{1001, "one thousand one"},
		{12345, "twelve thousand three hundred forty-five"},
		{1000000, "one million"},
		{2000000000, "two billion"},
		{-1, "minus one"},
		{"-1.5", "minus one point five"},
		{3.14, "three point fourteen"},
		{"NaN", "not a number"},
		{"Inf", "infinite"},
		{"-Inf", "minus infinite"},
	})
}

func TestEnglishOrdinal(t *testing.T) {
	engine := mustLanguage(t, "en")
	checkSpellings(t, engine, PurposeOrdinal, []spelling{
		{0, "zeroth"},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{8, "eighth"},
		{11, "eleventh"},
		{12, "twelfth"},
		{13, "thirteenth"},
		{20, "twentieth"},
		{21, "twenty-first"},
		{42, "forty-second"},
		{99, "ninety-ninth"},
		{100, "one hundredth"},
		{101, "one hundred first"},
		{1000, "one thousandth"},
		{1234, "one thousand two hundred thirty-fourth"},
	})
}

func TestEnglishYear(t *testing.T) {
	engine := mustLanguage(t, "en")
	checkSpellings(t, engine, PurposeYear, []spelling{
		{1005, "one thousand five"},
		{1066, "ten sixty-six"},
		{1900, "nineteen hundred"},
		{1905, "nineteen oh-five"},
		{1999, "nineteen ninety-nine"},
		{2000, "two thousand"},
		{2023, "twenty twenty-three"},
		{10000, "ten thousand"},
	})
}

func TestEnglishCardinalRulesets(t *testing.T) {
	engine := mustLanguage(t, "en")

	result, err := engine.FormatNumber(5)
	if err != nil {
		t.Fatalf("FormatNumber: %v", err)
	}
	if want := []string{"spellout-numbering", "spellout-cardinal"}; !reflect.DeepEqual(result.Rulesets, want) {
		t.Fatalf("Rulesets = %v, want %v", result.Rulesets, want)
	}
	if _, ok := result.TextByRuleset["spellout-numbering-verbose"]; ok {
		t.Fatal("verbose rule-set should not be selected")
	}

	fraction, err := engine.FormatNumber(3.14)
	if err != nil {
		t.Fatalf("FormatNumber(3.14): %v", err)
	}
	if want := []string{"spellout-cardinal"}; !reflect.DeepEqual(fraction.Rulesets, want) {
		t.Fatalf("Rulesets(3.14) = %v, want %v", fraction.Rulesets, want)
	}
}

func TestFormatNumberExplicitRulesets(t *testing.T) {
	engine := mustLanguage(t, "en")

	result, err := engine.FormatNumber(2, WithRulesets("missing", "spellout-ordinal", "spellout-ordinal", "spellout-numbering-verbose"))
	if err != nil {
		t.Fatalf("FormatNumber: %v", err)
	}
	if want := []string{"spellout-ordinal", "spellout-numbering-verbose"}; !reflect.DeepEqual(result.Rulesets, want) {
		t.Fatalf("Rulesets = %v, want %v", result.Rulesets, want)
	}
	if result.Text != "second" {
		t.Fatalf("Text = %q, want second", result.Text)
	}
}

func TestFormatNumberNoRulesets(t *testing.T) {
	engine := mustLanguage(t, "en")

	_, err := engine.FormatNumber("1000000000000000000")
	if !errors.Is(err, ErrNoRulesetsAvailable) || !errors.Is(err, ErrRulesetNotFound) {
		t.Fatalf("expected wrapped ErrNoRulesetsAvailable and ErrRulesetNotFound, got %v", err)
	}

	zu := mustLanguage(t, "zu")
	if _, err := zu.FormatNumber(1999, WithPurpose(PurposeYear)); !errors.Is(err, ErrNoRulesetsAvailable) {
		t.Fatalf("expected ErrNoRulesetsAvailable for zu year, got %v", err)
	}
}

func TestFormatNumberAbortsOnRecursion(t *testing.T) {
	engine := newTestEngine(t, []ruleDef{
		{ruleset: "spellout-cardinal", value: "0", text: "=spellout-numbering=;"},
		{ruleset: "spellout-numbering", value: "0", text: "=spellout-cardinal=;"},
	}, WithMaxDepth(8))

	_, err := engine.FormatNumber(1)
	if !errors.Is(err, ErrRecursionLimit) {
		t.Fatalf("expected ErrRecursionLimit, got %v", err)
	}
}

func TestGermanCardinal(t *testing.T) {
	engine := mustLanguage(t, "de")
	checkSpellings(t, engine, PurposeCardinal, []spelling{
		{1, "eins"},
		{13, "dreizehn"},
		{16, "sechzehn"},
		{19, "neunzehn"},
		{21, "einundzwanzig"},
		{32, "zweiunddreißig"},
		{100, "einhundert"},
		{123, "einhundertdreiundzwanzig"},
		{1000, "eintausend"},
		{1000000, "eine Million"},
		{1000001, "eine Million eins"},
		{2000000, "zwei Millionen"},
		{"1.5", "eins Komma fünf"},
		{"NaN", "keine Zahl"},
	})
}

func TestGermanSoftHyphens(t *testing.T) {
	engine := mustLanguage(t, "de")
	checkSpellings(t, engine, PurposeCardinal, []spelling{
		{32, "zwei\u00adund\u00addreißig"},
		{100, "ein\u00adhundert"},
	}, PreserveSoftHyphens())

	text, err := engine.Format(32, "spellout-cardinal")
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if text != "zwei\u00adund\u00addreißig" {
		t.Fatalf("Format keeps soft hyphens, got %q", text)
	}
}

func TestGermanGenderVariants(t *testing.T) {
	engine := mustLanguage(t, "de")

	result, err := engine.FormatNumber(1)
	if err != nil {
		t.Fatalf("FormatNumber: %v", err)
	}

	var got []string
	for _, name := range result.Rulesets {
		text := result.TextByRuleset[name]
		if !slices.Contains(got, text) {
			got = append(got, text)
		}
	}
	slices.Sort(got)
	want := []string{"ein", "eine", "einem", "einen", "einer", "eines", "eins"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("spellings of 1 = %v, want %v", got, want)
	}
	if result.Text != "eins" {
		t.Fatalf("Text = %q, want eins", result.Text)
	}
}

func TestGermanYearAndOrdinal(t *testing.T) {
	engine := mustLanguage(t, "de")
	checkSpellings(t, engine, PurposeYear, []spelling{
		{1999, "neunzehnhundertneunundneunzig"},
		{2024, "zweitausendvierundzwanzig"},
	})
	checkSpellings(t, engine, PurposeOrdinal, []spelling{
		{1, "erste"},
		{3, "dritte"},
		{4, "vierte"},
		{7, "siebte"},
		{8, "achte"},
		{10, "zehnte"},
		{19, "neunzehnte"},
		{20, "zwanzigste"},
		{21, "einundzwanzigste"},
		{100, "einhundertste"},
		{101, "einhunderterste"},
	})
}

func TestZuluCardinal(t *testing.T) {
	engine := mustLanguage(t, "zu")
	checkSpellings(t, engine, PurposeCardinal, []spelling{
		{0, "lutho"},
		{3, "kuthathu"},
		{10, "ishumi"},
		{15, "ishumi nanhlanu"},
		{20, "amashumi amabili"},
		{21, "amashumi amabili nanye"},
		{47, "amashumi amane nesikhombisa"},
		{100, "ikhulu"},
		{105, "ikhulu nanhlanu"},
		{110, "ikhulu neshumi"},
		{123, "ikhulu namashumi amabili nantathu"},
		{200, "amakhulu amabili"},
		{999, "amakhulu ayisishiyagalolunye namashumi ayisishiyagalolunye nesishiyagalolunye"},
		{-3, "khipha kuthathu"},
	})
}

func TestZuluNaN(t *testing.T) {
	engine := mustLanguage(t, "zu")

	_, err := engine.FormatNumber("NaN")
	if !errors.Is(err, ErrNoRulesetsAvailable) || !errors.Is(err, ErrNoRuleForNumber) {
		t.Fatalf("expected ErrNoRulesetsAvailable wrapping ErrNoRuleForNumber, got %v", err)
	}
}

func TestSelectRulesets(t *testing.T) {
	engine := mustLanguage(t, "en")

	cases := map[Purpose][]string{
		PurposeCardinal: {"spellout-numbering", "spellout-cardinal"},
		PurposeOrdinal:  {"spellout-ordinal"},
		PurposeYear:     {"spellout-numbering-year"},
	}
	for purpose, want := range cases {
		if got := engine.SelectRulesets(purpose); !reflect.DeepEqual(got, want) {
			t.Fatalf("SelectRulesets(%s) = %v, want %v", purpose, got, want)
		}
	}
}
