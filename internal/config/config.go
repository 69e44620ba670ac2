// Package config resolves rbnf CLI settings from defaults, a TOML file and
// RBNF_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "rbnf.toml"

// Settings holds every CLI option that can come from a file or environment.
type Settings struct {
	Language            string   `toml:"language" env:"RBNF_LANGUAGE"`
	Fallback            []string `toml:"fallback" env:"RBNF_FALLBACK" envSeparator:","`
	Purpose             string   `toml:"purpose" env:"RBNF_PURPOSE"`
	Rulesets            []string `toml:"rulesets" env:"RBNF_RULESETS" envSeparator:","`
	RuleFiles           []string `toml:"rule_files" env:"RBNF_RULE_FILES" envSeparator:","`
	PreserveSoftHyphens bool     `toml:"preserve_soft_hyphens" env:"RBNF_PRESERVE_SOFT_HYPHENS"`
	MaxDepth            int      `toml:"max_depth" env:"RBNF_MAX_DEPTH"`
	DecimalPattern      string   `toml:"decimal_pattern" env:"RBNF_DECIMAL_PATTERN"`
	Table               bool     `toml:"table" env:"RBNF_TABLE"`
	Verbose             bool     `toml:"verbose" env:"RBNF_VERBOSE"`
}

// Hardcoded fallback defaults
var fallbackDefaults = Settings{
	Language: "en",
	Purpose:  "cardinal",
	MaxDepth: 256,
}

// Defaults returns a copy of the built-in settings.
func Defaults() Settings {
	return fallbackDefaults
}

// Load applies the TOML file at path, or DefaultFile when path is empty and
// the file exists, then the environment, on top of Defaults.
func Load(path string) (Settings, error) {
	settings := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := DecodeFile(path, &settings); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, err
		}
	}

	if err := ParseEnv(&settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// DecodeFile overlays the keys present in a TOML file onto settings.
func DecodeFile(path string, settings *Settings) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	meta, err := toml.DecodeFile(path, settings)
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("decode config %s: unknown key %s", path, undecoded[0])
	}
	return nil
}

// ParseEnv overlays RBNF_* variables that are set onto settings.
func ParseEnv(settings *Settings) error {
	if err := env.Parse(settings); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
