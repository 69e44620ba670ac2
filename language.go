package rbnf

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// languageParentChain lists the parents of lang from closest to root.
// Both the CLDR parent data in x/text and plain subtag truncation are used,
// so "de-CH" yields "de" and "sr-Latn-RS" yields "sr-Latn" then "sr".
func languageParentChain(lang string) []string {
	if lang == "" {
		return nil
	}

	var chain []string
	seen := make(map[string]struct{}, 4)
	seen[lang] = struct{}{}

	if tag, err := language.Parse(lang); err == nil {
		for parent := tag.Parent(); parent != language.Und; parent = parent.Parent() {
			value := parent.String()
			if value == "" || value == "und" {
				break
			}
			if _, exists := seen[value]; exists {
				break
			}
			seen[value] = struct{}{}
			chain = append(chain, value)
		}
	}

	for current := truncateLanguage(lang); current != ""; current = truncateLanguage(current) {
		if _, exists := seen[current]; exists {
			continue
		}
		seen[current] = struct{}{}
		chain = append(chain, current)
	}

	return chain
}

func truncateLanguage(lang string) string {
	if idx := strings.LastIndex(lang, "-"); idx > 0 {
		return lang[:idx]
	}
	return ""
}

// normalizeLanguage trims the identifier and replaces underscores, as CLDR
// file names use "en_GB" while BCP 47 uses "en-GB".
func normalizeLanguage(lang string) string {
	return strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
}

// canonicalLanguage returns the BCP 47 form of lang when it parses.
func canonicalLanguage(lang string) string {
	lang = normalizeLanguage(lang)
	if lang == "" {
		return ""
	}
	if tag, err := language.Parse(lang); err == nil {
		return tag.String()
	}
	return lang
}

// sameLanguage compares two identifiers after canonicalization.
func sameLanguage(a, b string) bool {
	return strings.EqualFold(canonicalLanguage(a), canonicalLanguage(b))
}

// languageAccepts reports whether an engine for lang may load rules written
// for doc: the same language or one of its parents.
func languageAccepts(lang, doc string) bool {
	if sameLanguage(lang, doc) {
		return true
	}
	for _, parent := range languageParentChain(canonicalLanguage(lang)) {
		if sameLanguage(parent, doc) {
			return true
		}
	}
	return false
}

func normalizeLanguages(langs []string) []string {
	if len(langs) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(langs))
	result := make([]string, 0, len(langs))
	for _, lang := range langs {
		normalized := normalizeLanguage(lang)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}

	sort.Strings(result)
	return result
}
