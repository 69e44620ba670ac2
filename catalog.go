package rbnf

import (
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-rbnf/data"
)

// Catalog exposes rule documents by language.
type Catalog interface {
	// Languages returns the languages the catalog has documents for, sorted.
	Languages() []string
	// Document returns the rule document for lang. Missing languages wrap
	// ErrUnsupportedLanguage.
	Document(lang string) (*RuleDocument, error)
}

var ruleFileExtensions = []string{".xml", ".yaml", ".yml", ".json"}

// FSCatalog reads <language>.<ext> rule files from a directory of an fs.FS.
// Decoded documents are cached.
type FSCatalog struct {
	fsys fs.FS
	dir  string

	mu    sync.RWMutex
	files map[string]string
	docs  map[string]*RuleDocument
	langs []string
	err   error
	once  sync.Once
}

var _ Catalog = (*FSCatalog)(nil)

func NewFSCatalog(fsys fs.FS, dir string) *FSCatalog {
	if dir == "" {
		dir = "."
	}
	return &FSCatalog{fsys: fsys, dir: dir}
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *FSCatalog
)

// DefaultCatalog returns the catalog over the embedded rule files.
func DefaultCatalog() *FSCatalog {
	defaultCatalogOnce.Do(func() {
		defaultCatalog = NewFSCatalog(data.RBNF, data.RBNFDir)
	})
	return defaultCatalog
}

func (c *FSCatalog) scan() {
	c.once.Do(func() {
		entries, err := fs.ReadDir(c.fsys, c.dir)
		if err != nil {
			c.err = fmt.Errorf("rbnf: read catalog %s: %w", c.dir, err)
			return
		}

		c.files = make(map[string]string, len(entries))
		c.docs = make(map[string]*RuleDocument, len(entries))
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			ext := strings.ToLower(path.Ext(name))
			if !slices.Contains(ruleFileExtensions, ext) {
				continue
			}
			lang := normalizeLanguage(strings.TrimSuffix(name, path.Ext(name)))
			if lang == "" {
				continue
			}
			if _, exists := c.files[lang]; exists {
				continue
			}
			c.files[lang] = path.Join(c.dir, name)
			c.langs = append(c.langs, lang)
		}
		sort.Strings(c.langs)
	})
}

func (c *FSCatalog) Languages() []string {
	c.scan()
	return slices.Clone(c.langs)
}

func (c *FSCatalog) Document(lang string) (*RuleDocument, error) {
	c.scan()
	if c.err != nil {
		return nil, c.err
	}

	lang = normalizeLanguage(lang)

	c.mu.RLock()
	doc, ok := c.docs[lang]
	c.mu.RUnlock()
	if ok {
		return doc.Clone(), nil
	}

	file, ok := c.files[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if doc, ok := c.docs[lang]; ok {
		return doc.Clone(), nil
	}

	raw, err := fs.ReadFile(c.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("rbnf: read %s: %w", file, err)
	}
	doc, err = DecodeFile(file, raw)
	if err != nil {
		return nil, fmt.Errorf("rbnf: decode %s: %w", file, err)
	}
	c.docs[lang] = doc

	return doc.Clone(), nil
}

// StaticCatalog is an in memory catalog, read only after construction
type StaticCatalog struct {
	docs  map[string]*RuleDocument
	langs []string
}

var _ Catalog = (*StaticCatalog)(nil)

// NewStaticCatalog builds an immutable snapshot of docs keyed by their
// language. A later document for the same language replaces an earlier one.
func NewStaticCatalog(docs ...*RuleDocument) *StaticCatalog {
	catalog := &StaticCatalog{docs: make(map[string]*RuleDocument, len(docs))}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		lang := normalizeLanguage(doc.Language)
		if lang == "" {
			continue
		}
		catalog.docs[lang] = doc.Clone()
	}

	catalog.langs = make([]string, 0, len(catalog.docs))
	for lang := range catalog.docs {
		catalog.langs = append(catalog.langs, lang)
	}
	// make languages deterministic
	sort.Strings(catalog.langs)

	return catalog
}

func (c *StaticCatalog) Languages() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.langs)
}

func (c *StaticCatalog) Document(lang string) (*RuleDocument, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	doc, ok := c.docs[normalizeLanguage(lang)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}
	return doc.Clone(), nil
}

type multiCatalog []Catalog

// MultiCatalog searches catalogs in order. The first catalog that has a
// language serves it.
func MultiCatalog(catalogs ...Catalog) Catalog {
	flattened := make(multiCatalog, 0, len(catalogs))
	for _, catalog := range catalogs {
		if catalog == nil {
			continue
		}
		if nested, ok := catalog.(multiCatalog); ok {
			flattened = append(flattened, nested...)
			continue
		}
		flattened = append(flattened, catalog)
	}
	return flattened
}

func (m multiCatalog) Languages() []string {
	var langs []string
	for _, catalog := range m {
		langs = append(langs, catalog.Languages()...)
	}
	return normalizeLanguages(langs)
}

func (m multiCatalog) Document(lang string) (*RuleDocument, error) {
	lang = normalizeLanguage(lang)
	for _, catalog := range m {
		if slices.Contains(catalog.Languages(), lang) {
			return catalog.Document(lang)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
}

// ResolveLanguage returns the catalog language that serves lang: lang itself
// when present, else its closest parent.
func ResolveLanguage(catalog Catalog, lang string) (string, error) {
	return resolveLanguage(catalog, nil, lang)
}

// resolveLanguage walks the resolver chain of lang. A nil resolver uses the
// parent chain only.
func resolveLanguage(catalog Catalog, resolver FallbackResolver, lang string) (string, error) {
	if catalog == nil {
		return "", fmt.Errorf("%w: %q: no catalog", ErrUnsupportedLanguage, lang)
	}

	lang = normalizeLanguage(lang)
	available := catalog.Languages()
	if match, ok := findLanguage(available, lang); ok {
		return match, nil
	}

	var chain []string
	if resolver != nil {
		chain = resolver.Resolve(lang)
	} else {
		chain = languageParentChain(lang)
	}
	for _, candidate := range chain {
		if match, ok := findLanguage(available, candidate); ok {
			return match, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
}

func findLanguage(available []string, lang string) (string, bool) {
	for _, candidate := range available {
		if sameLanguage(candidate, lang) {
			return candidate, true
		}
	}
	return "", false
}

// AvailableLanguages lists the languages of the configured catalog.
func AvailableLanguages(opts ...Option) []string {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil
	}
	return cfg.Catalog.Languages()
}
