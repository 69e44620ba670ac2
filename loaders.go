package rbnf

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/cldr"
	"gopkg.in/yaml.v3"
)

// RuleDocument is the loader-neutral form of one language's rules.
type RuleDocument struct {
	Language string            `json:"language" yaml:"language"`
	Rulesets []RulesetDocument `json:"rulesets" yaml:"rulesets"`
}

// RulesetDocument is one rule-set inside a RuleDocument.
type RulesetDocument struct {
	Name   string       `json:"name" yaml:"name"`
	Access string       `json:"access,omitempty" yaml:"access,omitempty"`
	Rules  []RuleRecord `json:"rules" yaml:"rules"`
}

// RuleRecord is an unparsed rule.
type RuleRecord struct {
	Value string `json:"value" yaml:"value"`
	Text  string `json:"text" yaml:"text"`
	Radix int    `json:"radix,omitempty" yaml:"radix,omitempty"`
}

// Clone returns a deep copy of the document.
func (d *RuleDocument) Clone() *RuleDocument {
	if d == nil {
		return nil
	}
	clone := &RuleDocument{Language: d.Language}
	if len(d.Rulesets) > 0 {
		clone.Rulesets = make([]RulesetDocument, len(d.Rulesets))
		for i, rs := range d.Rulesets {
			clone.Rulesets[i] = RulesetDocument{
				Name:   rs.Name,
				Access: rs.Access,
				Rules:  append([]RuleRecord(nil), rs.Rules...),
			}
		}
	}
	return clone
}

// DecodeFile decodes an LDML, YAML or JSON rule file chosen by extension.
func DecodeFile(name string, data []byte) (*RuleDocument, error) {
	if strings.EqualFold(filepath.Ext(name), ".xml") {
		return DecodeLDML(bytes.NewReader(data))
	}
	return DecodeRuleFile(name, data)
}

// DecodeRuleFile decodes a YAML or JSON rule document chosen by extension.
func DecodeRuleFile(name string, data []byte) (*RuleDocument, error) {
	ext := strings.ToLower(filepath.Ext(name))

	var doc RuleDocument
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("rbnf: json parse error: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("rbnf: yaml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("rbnf: unsupported extension %s", ext)
	}

	if err := doc.validate(name); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *RuleDocument) validate(source string) error {
	if strings.TrimSpace(d.Language) == "" {
		return fmt.Errorf("rbnf: missing language in %s", source)
	}
	for i, rs := range d.Rulesets {
		if rs.Name == "" {
			return fmt.Errorf("rbnf: empty ruleset name at index %d in %s", i, source)
		}
	}
	return nil
}

// ldmlPath is the file name handed to the CLDR decoder. The decoder only
// accepts paths of the form <dir>/<section>/<locale>.xml.
const ldmlPath = "common/rbnf/document.xml"

// singleFileLoader feeds one in-memory LDML file to cldr.Decoder.
type singleFileLoader struct {
	data []byte
}

func (l singleFileLoader) Len() int { return 1 }

func (l singleFileLoader) Path(int) string { return ldmlPath }

func (l singleFileLoader) Reader(int) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.data)), nil
}

// DecodeLDML decodes a CLDR RBNF XML file.
func DecodeLDML(r io.Reader) (*RuleDocument, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("rbnf: read ldml: %w", err)
	}

	var decoder cldr.Decoder
	data = bytes.TrimSpace(data)
	raw, err := decoder.Decode(singleFileLoader{data: data})
	if err != nil {
		return nil, fmt.Errorf("rbnf: decode ldml: %w", err)
	}

	ldml := raw.RawLDML(strings.TrimSuffix(filepath.Base(ldmlPath), ".xml"))
	if ldml == nil {
		return nil, errors.New("rbnf: decode ldml: no document")
	}
	return DocumentFromLDML(ldml)
}

// DocumentFromLDML extracts the RBNF rules of a decoded LDML file.
func DocumentFromLDML(ldml *cldr.LDML) (*RuleDocument, error) {
	if ldml == nil || ldml.Identity == nil || ldml.Identity.Language == nil || ldml.Identity.Language.Type == "" {
		return nil, errors.New("rbnf: missing identity/language element")
	}

	doc := &RuleDocument{Language: ldml.Identity.Language.Type}
	if ldml.Rbnf == nil {
		return doc, nil
	}

	for _, group := range ldml.Rbnf.RulesetGrouping {
		if group == nil {
			continue
		}
		for _, set := range group.Ruleset {
			if set == nil {
				continue
			}
			rs := RulesetDocument{Name: set.Type, Access: set.Access}
			for _, rule := range set.Rbnfrule {
				if rule == nil {
					continue
				}
				rs.Rules = append(rs.Rules, RuleRecord{
					Value: rule.Value,
					Text:  rule.Data(),
					Radix: parseRadix(rule.Radix),
				})
			}
			doc.Rulesets = append(doc.Rulesets, rs)
		}
	}

	return doc, nil
}

// parseRadix keeps only the digits of a radix attribute, so "1,000" reads
// as 1000. Missing or unreadable values give DefaultRadix.
func parseRadix(attr string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, attr)
	if digits == "" {
		return DefaultRadix
	}
	radix, err := strconv.Atoi(digits)
	if err != nil || radix < 2 {
		return DefaultRadix
	}
	return radix
}

// EncodeRuleFile writes doc as YAML or JSON chosen by extension.
func EncodeRuleFile(name string, doc *RuleDocument) ([]byte, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		return json.MarshalIndent(doc, "", "  ")
	case ".yaml", ".yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("rbnf: yaml encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("rbnf: yaml encode: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("rbnf: unsupported extension %s", ext)
	}
}
