package rbnf

import (
	"fmt"
	"log/slog"
	"os"
)

// DefaultMaxDepth bounds recursive rule application.
const DefaultMaxDepth = 256

// DefaultLanguage is used when no language option is given.
const DefaultLanguage = "en"

// PatternFormatter renders a value for a substitution that embeds a decimal
// pattern such as "#,##0".
type PatternFormatter func(value Number, pattern string) (string, error)

// Config captures engine setup
type Config struct {
	Language         string
	Catalog          Catalog
	Logger           *slog.Logger
	MaxDepth         int
	PatternFormatter PatternFormatter
	Resolver         FallbackResolver
	Hooks            []FormatHook

	ruleFiles []string
	documents []*RuleDocument
}

// Option mutates Config during construction
type Option func(*Config) error

// NewConfig builds Config via supplied options
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Catalog == nil {
		cfg.Catalog = DefaultCatalog()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Resolver == nil {
		cfg.Resolver = NewStaticFallbackResolver()
	}

	for _, path := range cfg.ruleFiles {
		doc, err := readRuleFile(path)
		if err != nil {
			return nil, err
		}
		cfg.documents = append(cfg.documents, doc)
	}

	return cfg, nil
}

// WithLanguage sets the language engines are built for
func WithLanguage(lang string) Option {
	return func(c *Config) error {
		c.Language = normalizeLanguage(lang)
		return nil
	}
}

// WithCatalog replaces the embedded rule catalog
func WithCatalog(catalog Catalog) Option {
	return func(c *Config) error {
		if catalog == nil {
			return fmt.Errorf("rbnf: nil catalog")
		}
		c.Catalog = catalog
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) error {
		c.Logger = logger
		return nil
	}
}

// WithMaxDepth bounds recursion while formatting.
func WithMaxDepth(depth int) Option {
	return func(c *Config) error {
		if depth <= 0 {
			return fmt.Errorf("rbnf: max depth must be positive, got %d", depth)
		}
		c.MaxDepth = depth
		return nil
	}
}

func WithPatternFormatter(formatter PatternFormatter) Option {
	return func(c *Config) error {
		c.PatternFormatter = formatter
		return nil
	}
}

func WithFallbackResolver(resolver FallbackResolver) Option {
	return func(c *Config) error {
		c.Resolver = resolver
		return nil
	}
}

// WithFallback sets the languages tried after lang when the catalog lacks
// it, before the CLDR parents of lang. It has no effect once a custom
// resolver is set.
func WithFallback(lang string, fallbacks ...string) Option {
	return func(c *Config) error {
		if lang == "" {
			return nil
		}
		resolver, ok := c.Resolver.(*StaticFallbackResolver)
		if !ok {
			if c.Resolver != nil {
				return nil
			}
			resolver = NewStaticFallbackResolver()
			c.Resolver = resolver
		}
		resolver.Set(lang, fallbacks...)
		return nil
	}
}

// WithFormatHooks runs hooks around every FormatNumber call of the engines
// built from the config.
func WithFormatHooks(hooks ...FormatHook) Option {
	return func(c *Config) error {
		c.Hooks = append(c.Hooks, filterHooks(hooks)...)
		return nil
	}
}

// WithRuleFiles loads extra LDML, YAML or JSON rule files after the catalog
// document. Their rules replace catalog rules with the same key.
func WithRuleFiles(paths ...string) Option {
	return func(c *Config) error {
		c.ruleFiles = append(c.ruleFiles, paths...)
		return nil
	}
}

// WithRuleDocuments is WithRuleFiles for documents already in memory.
func WithRuleDocuments(docs ...*RuleDocument) Option {
	return func(c *Config) error {
		for _, doc := range docs {
			if doc == nil {
				continue
			}
			c.documents = append(c.documents, doc)
		}
		return nil
	}
}

func readRuleFile(path string) (*RuleDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rbnf: read rule file %s: %w", path, err)
	}
	doc, err := DecodeFile(path, data)
	if err != nil {
		return nil, fmt.Errorf("rbnf: decode rule file %s: %w", path, err)
	}
	return doc, nil
}
