// Package ui renders rbnf CLI output using pterm.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
)

// UI writes results to out and status messages to errOut.
type UI struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool
}

// New creates a new UI instance.
func New(out, errOut io.Writer, verbose bool) *UI {
	if verbose {
		pterm.EnableDebugMessages()
	}
	return &UI{out: out, errOut: errOut, verbose: verbose}
}

// Line prints one "number|ruleset|words" result.
func (u *UI) Line(number, ruleset, words string) {
	fmt.Fprintln(u.out, strings.Join([]string{number, ruleset, words}, "|"))
}

// Row is one formatted result for Table.
type Row struct {
	Number  string
	Ruleset string
	Words   string
}

// Table prints results as a table with a header.
func (u *UI) Table(rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	data := pterm.TableData{{"Number", "Ruleset", "Words"}}
	for _, row := range rows {
		data = append(data, []string{row.Number, row.Ruleset, row.Words})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(u.out).WithData(data).Render()
}

// Languages prints the supported languages.
func (u *UI) Languages(langs []string) {
	fmt.Fprint(u.out, pterm.DefaultSection.Sprintln("Languages"))
	for _, lang := range langs {
		fmt.Fprintln(u.out, lang)
	}
}

// RulesetInfo describes a rule-set for Rulesets.
type RulesetInfo struct {
	Name    string
	Purpose string
	Access  string
	Rules   int
}

// Rulesets prints the rule-sets of a language.
func (u *UI) Rulesets(lang string, sets []RulesetInfo) error {
	fmt.Fprint(u.out, pterm.DefaultSection.Sprintln(fmt.Sprintf("Rulesets (%s)", lang)))
	data := pterm.TableData{{"Ruleset", "Purpose", "Access", "Rules"}}
	for _, set := range sets {
		data = append(data, []string{set.Name, set.Purpose, set.Access, fmt.Sprintf("%d", set.Rules)})
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(u.out).WithData(data).Render()
}

// Error prints an error message.
func (u *UI) Error(message string) {
	pterm.Error.WithWriter(u.errOut).Println(message)
}

// Warning prints a warning message.
func (u *UI) Warning(message string) {
	pterm.Warning.WithWriter(u.errOut).Println(message)
}

// Debug prints a debug message (only in verbose mode).
func (u *UI) Debug(message string) {
	if u.verbose {
		pterm.Debug.WithWriter(u.errOut).Println(message)
	}
}
