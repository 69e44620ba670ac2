package rbnf

import (
	"slices"
	"sync"
)

// FallbackResolver resolves fallback language chains
type FallbackResolver interface {
	// Resolve lists the languages to try after lang, closest first.
	Resolve(lang string) []string
}

// StaticFallbackResolver serves explicit chains set with Set. Every chain ends
// with the CLDR parents of the language, so "de-CH" still reaches "de".
type StaticFallbackResolver struct {
	mu     sync.RWMutex
	chains map[string][]string
}

var _ FallbackResolver = (*StaticFallbackResolver)(nil)

func NewStaticFallbackResolver() *StaticFallbackResolver {
	return &StaticFallbackResolver{chains: make(map[string][]string)}
}

// Set replaces the explicit chain of lang.
func (s *StaticFallbackResolver) Set(lang string, fallbacks ...string) {
	lang = canonicalLanguage(lang)
	if lang == "" {
		return
	}

	chain := make([]string, 0, len(fallbacks))
	for _, fallback := range fallbacks {
		if fallback = normalizeLanguage(fallback); fallback != "" {
			chain = append(chain, fallback)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.chains == nil {
		s.chains = make(map[string][]string)
	}
	s.chains[lang] = chain
}

func (s *StaticFallbackResolver) Resolve(lang string) []string {
	lang = canonicalLanguage(lang)
	if lang == "" {
		return nil
	}

	var explicit []string
	if s != nil {
		s.mu.RLock()
		explicit = slices.Clone(s.chains[lang])
		s.mu.RUnlock()
	}

	chain := make([]string, 0, len(explicit)+2)
	for _, candidate := range append(explicit, languageParentChain(lang)...) {
		if candidate == lang || slices.Contains(chain, candidate) {
			continue
		}
		chain = append(chain, candidate)
	}
	return chain
}
