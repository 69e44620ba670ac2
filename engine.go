package rbnf

import (
	"fmt"
	"log/slog"
	"slices"
)

// SkipRulesets lists rule-sets that Load ignores. They drive parsing, not
// formatting.
var SkipRulesets = []string{"lenient-parse"}

// Engine holds the rule-sets of one language. It is safe for concurrent
// formatting once loading is done.
type Engine struct {
	language  string
	fallbacks []string
	rulesets  map[string]*RuleSet
	order     []string

	logger   *slog.Logger
	maxDepth int
	patterns PatternFormatter
	hooks    []FormatHook
}

var _ RulesetLookup = (*Engine)(nil)

// NewEngine returns an empty engine for lang. Catalog and rule file options
// are ignored; use New or ForLanguage to populate an engine.
func NewEngine(lang string, opts ...Option) (*Engine, error) {
	cfg, err := NewConfig(append(opts, WithLanguage(lang))...)
	if err != nil {
		return nil, err
	}
	return newEngine(cfg), nil
}

func newEngine(cfg *Config) *Engine {
	return &Engine{
		language: canonicalLanguage(cfg.Language),
		rulesets: make(map[string]*RuleSet),
		logger:   cfg.Logger,
		maxDepth: cfg.MaxDepth,
		patterns: cfg.PatternFormatter,
		hooks:    cfg.Hooks,
	}
}

// New builds an engine for the configured language from the catalog
// document and any extra rule documents.
func New(opts ...Option) (*Engine, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return buildEngine(cfg)
}

// ForLanguage is New with WithLanguage(lang).
func ForLanguage(lang string, opts ...Option) (*Engine, error) {
	return New(append(opts, WithLanguage(lang))...)
}

func buildEngine(cfg *Config) (*Engine, error) {
	engine := newEngine(cfg)

	resolved, err := resolveLanguage(cfg.Catalog, cfg.Resolver, cfg.Language)
	if err != nil {
		return nil, err
	}
	if cfg.Resolver != nil {
		engine.fallbacks = cfg.Resolver.Resolve(cfg.Language)
	}
	if resolved != cfg.Language {
		cfg.Logger.Debug("rbnf: language resolved through parent",
			slog.String("language", cfg.Language),
			slog.String("resolved", resolved))
	}

	doc, err := cfg.Catalog.Document(resolved)
	if err != nil {
		return nil, err
	}
	if err := engine.Load(doc); err != nil {
		return nil, err
	}

	for _, extra := range cfg.documents {
		if err := engine.Load(extra); err != nil {
			return nil, err
		}
	}

	return engine, nil
}

// Language returns the canonical language tag of the engine.
func (e *Engine) Language() string {
	return e.language
}

// RuleSet returns the named rule-set.
func (e *Engine) RuleSet(name string) (*RuleSet, bool) {
	if e == nil {
		return nil, false
	}
	set, ok := e.rulesets[name]
	return set, ok
}

// RulesetNames returns rule-set names in the order they were first added.
func (e *Engine) RulesetNames() []string {
	return slices.Clone(e.order)
}

// AddRule parses a rule and stores it in ruleset, creating the set on first
// use. An unsupported value specifier creates the set but drops the rule and
// returns a nil rule without error.
func (e *Engine) AddRule(value, text, ruleset string, radix int) (*Rule, error) {
	set := e.ensureRuleSet(ruleset)

	rule, err := ParseRule(value, text, radix)
	if err != nil {
		return nil, fmt.Errorf("rbnf: ruleset %q: %w", ruleset, err)
	}
	if rule == nil {
		e.logger.Debug("rbnf: dropped rule with unsupported value",
			slog.String("ruleset", ruleset),
			slog.String("value", value))
		return nil, nil
	}

	set.Add(rule)
	return rule, nil
}

func (e *Engine) ensureRuleSet(name string) *RuleSet {
	if set, ok := e.rulesets[name]; ok {
		return set
	}
	set := NewRuleSet(name)
	e.rulesets[name] = set
	e.order = append(e.order, name)
	return set
}

// Load adds every rule of doc. The document language must be the engine
// language, one of its parents or one of its configured fallbacks.
func (e *Engine) Load(doc *RuleDocument) error {
	if doc == nil {
		return nil
	}
	if !e.accepts(doc.Language) {
		return fmt.Errorf("%w: engine %q, document %q", ErrLanguageMismatch, e.language, doc.Language)
	}

	for _, rs := range doc.Rulesets {
		if slices.Contains(SkipRulesets, rs.Name) {
			e.logger.Debug("rbnf: skipped ruleset", slog.String("ruleset", rs.Name))
			continue
		}

		set := e.ensureRuleSet(rs.Name)
		if rs.Access != "" {
			set.access = rs.Access
		}

		for _, record := range rs.Rules {
			if record.Text == "" {
				continue
			}
			if _, err := e.AddRule(record.Value, record.Text, rs.Name, record.Radix); err != nil {
				return err
			}
		}
	}

	return nil
}

func (e *Engine) accepts(lang string) bool {
	if languageAccepts(e.language, lang) {
		return true
	}
	for _, fallback := range e.fallbacks {
		if sameLanguage(fallback, lang) {
			return true
		}
	}
	return false
}
