package rbnf

import (
	"sync"
)

// EngineCache builds one engine per resolved language and reuses it.
type EngineCache struct {
	mu      sync.RWMutex
	cfg     *Config
	engines map[string]*Engine
}

// NewEngineCache validates opts once; every cached engine shares them.
func NewEngineCache(opts ...Option) (*EngineCache, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &EngineCache{
		cfg:     cfg,
		engines: make(map[string]*Engine),
	}, nil
}

// Engine returns the engine for lang, building it on first use. Languages
// that resolve to the same catalog entry share the engine only when they
// normalize to the same identifier.
func (c *EngineCache) Engine(lang string) (*Engine, error) {
	if lang == "" {
		lang = c.cfg.Language
	}
	key := canonicalLanguage(lang)

	c.mu.RLock()
	engine, ok := c.engines[key]
	c.mu.RUnlock()
	if ok {
		return engine, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if engine, ok := c.engines[key]; ok {
		return engine, nil
	}

	cfg := *c.cfg
	cfg.Language = key
	engine, err := buildEngine(&cfg)
	if err != nil {
		return nil, err
	}
	c.engines[key] = engine
	return engine, nil
}

// Languages lists the catalog languages the cache can serve.
func (c *EngineCache) Languages() []string {
	return c.cfg.Catalog.Languages()
}
