package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	rbnf "github.com/goliatone/go-rbnf"
)

func copyFixture(t *testing.T, src, dst string) {
	t.Helper()
	data, err := os.ReadFile(src)
	if err != nil {
		t.Fatalf("read %s: %v", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", dst, err)
	}
}

func TestRunExportsYAML(t *testing.T) {
	cldrDir := t.TempDir()
	copyFixture(t, filepath.Join("..", "..", "testdata", "tiny_en.xml"), filepath.Join(cldrDir, "rbnf", "en.xml"))
	out := filepath.Join(t.TempDir(), "rules")

	cfg := generatorConfig{out: out, cldrPath: cldrDir, format: "yaml"}
	if err := run(cfg, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(out, "en.yaml"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	doc, err := rbnf.DecodeRuleFile("en.yaml", data)
	if err != nil {
		t.Fatalf("DecodeRuleFile: %v", err)
	}

	engine, err := rbnf.NewEngine("en")
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if err := engine.Load(doc); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, err := engine.Format(123, "spellout-cardinal"); err != nil || got != "one hundred twenty-three" {
		t.Fatalf("Format(123) = %q, %v", got, err)
	}
}

func TestRunCopiesXML(t *testing.T) {
	cldrDir := t.TempDir()
	fixture := filepath.Join("..", "..", "testdata", "tiny_en.xml")
	copyFixture(t, fixture, filepath.Join(cldrDir, "rbnf", "en.xml"))
	out := t.TempDir()

	cfg := generatorConfig{out: out, cldrPath: cldrDir, format: "xml", locales: []string{"en"}}
	if err := run(cfg, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}

	want, _ := os.ReadFile(fixture)
	got, err := os.ReadFile(filepath.Join(out, "en.xml"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(got) != string(want) {
		t.Fatal("xml output differs from source")
	}
}

func TestRunRejectsMissingDirectory(t *testing.T) {
	cfg := generatorConfig{out: t.TempDir(), cldrPath: filepath.Join(t.TempDir(), "missing"), format: "yaml"}
	if err := run(cfg, io.Discard); err == nil {
		t.Fatal("expected error for missing CLDR directory")
	}
}

func TestLocaleFlag(t *testing.T) {
	var f localeFlag
	if err := f.Set("en, de"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := f.Set("zu,"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := f.String(); got != "en,de,zu" {
		t.Fatalf("String() = %q", got)
	}
}
