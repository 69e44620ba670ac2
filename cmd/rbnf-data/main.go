package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	rbnf "github.com/goliatone/go-rbnf"
	cldr "golang.org/x/text/unicode/cldr"
)

type generatorConfig struct {
	out      string
	cldrPath string
	format   string
	locales  []string
}

type localeFlag struct {
	items []string
}

func (f *localeFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *localeFlag) Set(value string) error {
	parts := strings.Split(value, ",")
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f.items = append(f.items, part)
	}
	return nil
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		reportError(err)
	}

	if err := run(cfg, os.Stdout); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "rbnf-data: %v\n", err)
	os.Exit(1)
}

func parseFlags() (generatorConfig, error) {
	var cfg generatorConfig
	var localeList localeFlag

	flag.StringVar(&cfg.out, "out", "data/rbnf", "output directory for rule files")
	flag.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR common data directory (expects an rbnf/ subdirectory)")
	flag.StringVar(&cfg.format, "format", "xml", "output format: xml, yaml or json")
	flag.Var(&localeList, "locale", "locale to export. Repeat flag to add more. Defaults to every locale with rules.")

	flag.Parse()

	cfg.locales = localeList.items

	if cfg.cldrPath == "" {
		cfg.cldrPath = os.Getenv("CLDR_CORE_DIR")
	}

	if cfg.cldrPath == "" {
		return generatorConfig{}, errors.New("missing CLDR data directory (set -cldr or CLDR_CORE_DIR)")
	}

	switch cfg.format {
	case "xml", "yaml", "json":
	default:
		return generatorConfig{}, fmt.Errorf("unsupported format %q", cfg.format)
	}

	return cfg, nil
}

func run(cfg generatorConfig, log io.Writer) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	locales := cfg.locales
	if len(locales) == 0 {
		locales = data.Locales()
	}
	sort.Strings(locales)

	if err := os.MkdirAll(cfg.out, 0o755); err != nil {
		return err
	}

	written := 0
	for _, locale := range locales {
		doc, err := exportDocument(data, locale)
		if err != nil {
			return fmt.Errorf("export %s: %w", locale, err)
		}
		if doc == nil {
			continue
		}
		if err := validateDocument(doc); err != nil {
			return fmt.Errorf("validate %s: %w", locale, err)
		}
		if err := writeDocument(cfg, locale, doc); err != nil {
			return fmt.Errorf("write %s: %w", locale, err)
		}
		written++
	}

	fmt.Fprintf(log, "rbnf-data: wrote %d rule files to %s\n", written, cfg.out)
	return nil
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetDirFilter("rbnf")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

// exportDocument returns nil for locales without rule-sets, such as the
// alias files CLDR ships for scripts and regions.
func exportDocument(data *cldr.CLDR, locale string) (*rbnf.RuleDocument, error) {
	ldml := data.RawLDML(strings.ReplaceAll(locale, "-", "_"))
	if ldml == nil {
		return nil, fmt.Errorf("missing LDML data")
	}
	doc, err := rbnf.DocumentFromLDML(ldml)
	if err != nil {
		return nil, err
	}
	if len(doc.Rulesets) == 0 {
		return nil, nil
	}
	return doc, nil
}

// validateDocument loads doc into a fresh engine so every rule is parsed.
func validateDocument(doc *rbnf.RuleDocument) error {
	engine, err := rbnf.NewEngine(doc.Language)
	if err != nil {
		return err
	}
	return engine.Load(doc)
}

func writeDocument(cfg generatorConfig, locale string, doc *rbnf.RuleDocument) error {
	target := filepath.Join(cfg.out, locale+"."+cfg.format)

	if cfg.format == "xml" {
		source := filepath.Join(cfg.cldrPath, "rbnf", locale+".xml")
		raw, err := os.ReadFile(source)
		if err != nil {
			return err
		}
		return os.WriteFile(target, raw, 0o644)
	}

	encoded, err := rbnf.EncodeRuleFile(target, doc)
	if err != nil {
		return err
	}
	return os.WriteFile(target, encoded, 0o644)
}
