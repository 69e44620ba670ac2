package rbnf

import (
	"fmt"
	"strings"
)

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LocaleKey is read from map template data to pick the language.
	LocaleKey string
	// OnError renders failed spellings; the default prints the value.
	OnError func(locale string, value any, err error) string
}

const defaultLocaleKey = "locale"

// TemplateHelpers exposes spell-out helpers for go-template. Every helper
// takes the locale (or template data carrying it under LocaleKey) first.
// A nil cache builds one with default options.
func TemplateHelpers(cache *EngineCache, cfg HelperConfig) map[string]any {
	if cfg.LocaleKey == "" {
		cfg.LocaleKey = defaultLocaleKey
	}
	if cfg.OnError == nil {
		cfg.OnError = func(_ string, value any, _ error) string {
			return fmt.Sprint(value)
		}
	}

	var cacheErr error
	if cache == nil {
		cache, cacheErr = NewEngineCache()
	}

	currentLocale := func(data any) string {
		return localeFromData(data, cfg.LocaleKey)
	}

	spell := func(data, value any, opts ...FormatOption) string {
		locale := currentLocale(data)
		if cacheErr != nil {
			return cfg.OnError(locale, value, cacheErr)
		}
		engine, err := cache.Engine(locale)
		if err != nil {
			return cfg.OnError(locale, value, err)
		}
		result, err := engine.FormatNumber(value, opts...)
		if err != nil {
			return cfg.OnError(locale, value, err)
		}
		return result.Text
	}

	return map[string]any{
		"current_locale": currentLocale,
		"spellout": func(data, value any) string {
			return spell(data, value, WithPurpose(PurposeCardinal))
		},
		"spellout_ordinal": func(data, value any) string {
			return spell(data, value, WithPurpose(PurposeOrdinal))
		},
		"spellout_year": func(data, value any) string {
			return spell(data, value, WithPurpose(PurposeYear))
		},
		"spellout_ruleset": func(data, value any, ruleset string) string {
			return spell(data, value, WithRulesets(ruleset))
		},
		"format_decimal": func(data, value any, pattern string) string {
			locale := currentLocale(data)
			out, err := FormatDecimalIn(locale, value, pattern)
			if err != nil {
				return cfg.OnError(locale, value, err)
			}
			return out
		},
	}
}

func localeFromData(data any, key string) string {
	switch v := data.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		if locale, ok := v[key].(string); ok {
			return strings.TrimSpace(locale)
		}
	case map[string]string:
		return strings.TrimSpace(v[key])
	case interface{ Locale() string }:
		return v.Locale()
	}
	return ""
}
