package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	settings, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(settings, Defaults()) {
		t.Fatalf("Load() = %+v, want defaults %+v", settings, Defaults())
	}
}

func TestLoadDefaultFileFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, DefaultFile, "language = \"de\"\npurpose = \"ordinal\"\n")

	settings, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.Language != "de" || settings.Purpose != "ordinal" || settings.MaxDepth != 256 {
		t.Fatalf("unexpected settings: %+v", settings)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, t.TempDir(), "custom.toml", strings.Join([]string{
		`language = "zu"`,
		`fallback = ["xh", "en"]`,
		`rulesets = ["spellout-cardinal"]`,
		`rule_files = ["a.yaml", "b.xml"]`,
		`preserve_soft_hyphens = true`,
		`max_depth = 64`,
		`decimal_pattern = "#,##0.00"`,
		`table = true`,
	}, "\n"))

	t.Setenv("RBNF_LANGUAGE", "de")
	t.Setenv("RBNF_RULESETS", "spellout-ordinal,spellout-numbering")
	t.Setenv("RBNF_VERBOSE", "true")

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Settings{
		Language:            "de",
		Fallback:            []string{"xh", "en"},
		Purpose:             "cardinal",
		Rulesets:            []string{"spellout-ordinal", "spellout-numbering"},
		RuleFiles:           []string{"a.yaml", "b.xml"},
		PreserveSoftHyphens: true,
		MaxDepth:            64,
		DecimalPattern:      "#,##0.00",
		Table:               true,
		Verbose:             true,
	}
	if !reflect.DeepEqual(settings, want) {
		t.Fatalf("Load() = %+v, want %+v", settings, want)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("explicit missing file error = %v", err)
	}

	unknown := writeFile(t, dir, "unknown.toml", "colour = \"blue\"\n")
	if _, err := Load(unknown); err == nil || !strings.Contains(err.Error(), "unknown key colour") {
		t.Fatalf("unknown key error = %v", err)
	}

	broken := writeFile(t, dir, "broken.toml", "language = \n")
	if _, err := Load(broken); err == nil {
		t.Fatal("expected decode error")
	}

	t.Setenv("RBNF_MAX_DEPTH", "deep")
	if _, err := Load(writeFile(t, dir, "ok.toml", "")); err == nil || !strings.Contains(err.Error(), "parse env") {
		t.Fatalf("env error = %v", err)
	}
}
