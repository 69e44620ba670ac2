// rbnf CLI - spell out numbers with CLDR rule-based number formatting.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	rbnf "github.com/goliatone/go-rbnf"
	"github.com/goliatone/go-rbnf/internal/config"
	"github.com/goliatone/go-rbnf/internal/ui"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	settings      config.Settings
	configPath    string
	listLanguages bool
	listRulesets  bool
	numbers       []string
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "rbnf: %v\n", err)
		return 2
	}

	term := ui.New(stdout, stderr, opts.settings.Verbose)
	if err := execute(opts, term, stderr); err != nil {
		term.Error(err.Error())
		return 1
	}
	return 0
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	flags := pflag.NewFlagSet("rbnf", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	language := flags.StringP("language", "l", "", "Language code (default from config, else en)")
	fallback := flags.StringSlice("fallback", nil, "Languages to try when the language has no rules")
	purpose := flags.StringP("purpose", "p", "", "Format purpose: cardinal, ordinal or year")
	rulesets := flags.StringSliceP("ruleset", "r", nil, "Rule-set names to use instead of the purpose")
	ruleFiles := flags.StringSlice("rules", nil, "Extra LDML, YAML or JSON rule files")
	preserve := flags.Bool("preserve-soft-hyphens", false, "Keep U+00AD soft hyphens in the output")
	decimal := flags.String("decimal", "", "Format numbers with a decimal pattern such as #,##0.00")
	maxDepth := flags.Int("max-depth", 0, "Recursion limit while formatting")
	table := flags.Bool("table", false, "Render results as a table")
	verbose := flags.BoolP("verbose", "v", false, "Debug logging on stderr")

	var opts options
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML settings file (default ./"+config.DefaultFile+" when present)")
	flags.BoolVar(&opts.listLanguages, "list-languages", false, "List supported languages and exit")
	flags.BoolVar(&opts.listRulesets, "list-rulesets", false, "List the rule-sets of the language and exit")

	if err := flags.Parse(args); err != nil {
		return options{}, err
	}

	settings, err := config.Load(opts.configPath)
	if err != nil {
		return options{}, err
	}

	// explicit flags win over file and environment
	if flags.Changed("language") {
		settings.Language = *language
	}
	if flags.Changed("fallback") {
		settings.Fallback = *fallback
	}
	if flags.Changed("purpose") {
		settings.Purpose = *purpose
	}
	if flags.Changed("ruleset") {
		settings.Rulesets = *rulesets
	}
	if flags.Changed("rules") {
		settings.RuleFiles = *ruleFiles
	}
	if flags.Changed("preserve-soft-hyphens") {
		settings.PreserveSoftHyphens = *preserve
	}
	if flags.Changed("decimal") {
		settings.DecimalPattern = *decimal
	}
	if flags.Changed("max-depth") {
		settings.MaxDepth = *maxDepth
	}
	if flags.Changed("table") {
		settings.Table = *table
	}
	if flags.Changed("verbose") {
		settings.Verbose = *verbose
	}

	opts.settings = settings
	opts.numbers = flags.Args()

	if !opts.listLanguages && !opts.listRulesets && len(opts.numbers) == 0 {
		return options{}, errors.New("at least one number is required")
	}
	return opts, nil
}

func execute(opts options, term *ui.UI, stderr io.Writer) error {
	settings := opts.settings

	if opts.listLanguages {
		term.Languages(rbnf.AvailableLanguages())
		return nil
	}

	level := slog.LevelInfo
	if settings.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	engineOpts := []rbnf.Option{
		rbnf.WithLanguage(settings.Language),
		rbnf.WithLogger(logger),
		rbnf.WithRuleFiles(settings.RuleFiles...),
		rbnf.WithPatternFormatter(rbnf.DecimalPatternFormatter(settings.Language)),
	}
	if len(settings.Fallback) > 0 {
		engineOpts = append(engineOpts, rbnf.WithFallback(settings.Language, settings.Fallback...))
	}
	if settings.Verbose {
		engineOpts = append(engineOpts, rbnf.WithFormatHooks(debugHook(term)))
	}
	if settings.MaxDepth > 0 {
		engineOpts = append(engineOpts, rbnf.WithMaxDepth(settings.MaxDepth))
	}

	engine, err := rbnf.New(engineOpts...)
	if err != nil {
		return err
	}

	if opts.listRulesets {
		return term.Rulesets(engine.Language(), rulesetInfo(engine))
	}

	if settings.DecimalPattern != "" {
		if len(settings.Rulesets) > 0 {
			term.Warning("--ruleset is ignored with --decimal")
		}
		return formatDecimals(opts.numbers, settings, term)
	}

	purpose, err := rbnf.ParsePurpose(settings.Purpose)
	if err != nil {
		return err
	}

	formatOpts := []rbnf.FormatOption{rbnf.WithPurpose(purpose)}
	if len(settings.Rulesets) > 0 {
		formatOpts = append(formatOpts, rbnf.WithRulesets(settings.Rulesets...))
		term.Debug(fmt.Sprintf("rule-sets %v", settings.Rulesets))
	} else {
		term.Debug(fmt.Sprintf("%s rule-sets %v", purpose, engine.SelectRulesets(purpose)))
	}
	if settings.PreserveSoftHyphens {
		formatOpts = append(formatOpts, rbnf.PreserveSoftHyphens())
	}

	var rows []ui.Row
	failed := 0
	for _, number := range opts.numbers {
		result, err := engine.FormatNumber(number, formatOpts...)
		if err != nil {
			term.Error(fmt.Sprintf("%s: %v", number, err))
			failed++
			continue
		}
		for _, name := range result.Rulesets {
			rows = append(rows, ui.Row{Number: number, Ruleset: name, Words: result.TextByRuleset[name]})
		}
	}

	if err := emit(rows, settings.Table, term); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d numbers could not be formatted", failed, len(opts.numbers))
	}
	return nil
}

func formatDecimals(numbers []string, settings config.Settings, term *ui.UI) error {
	var rows []ui.Row
	for _, number := range numbers {
		text, err := rbnf.FormatDecimalIn(settings.Language, number, settings.DecimalPattern)
		if err != nil {
			return fmt.Errorf("%s: %w", number, err)
		}
		rows = append(rows, ui.Row{Number: number, Ruleset: settings.DecimalPattern, Words: text})
	}
	return emit(rows, settings.Table, term)
}

func emit(rows []ui.Row, table bool, term *ui.UI) error {
	if table {
		return term.Table(rows)
	}
	for _, row := range rows {
		term.Line(row.Number, row.Ruleset, row.Words)
	}
	return nil
}

func rulesetInfo(engine *rbnf.Engine) []ui.RulesetInfo {
	names := engine.RulesetNames()
	infos := make([]ui.RulesetInfo, 0, len(names))
	for _, name := range names {
		set, ok := engine.RuleSet(name)
		if !ok {
			continue
		}
		access := set.Access()
		if access == "" {
			access = "public"
		}
		infos = append(infos, ui.RulesetInfo{
			Name:    name,
			Purpose: rbnf.ClassifyPurpose(name).String(),
			Access:  access,
			Rules:   set.Len(),
		})
	}
	return infos
}

// debugHook reports every FormatNumber call in verbose mode.
func debugHook(term *ui.UI) rbnf.FormatHook {
	return rbnf.FormatHookFuncs{
		After: func(ctx *rbnf.FormatHookContext) {
			purpose, _ := ctx.Purpose()
			if ctx.Error != nil {
				term.Debug(fmt.Sprintf("%s %v (%s): %v", ctx.Language, ctx.Value, purpose, ctx.Error))
				return
			}
			term.Debug(fmt.Sprintf("%s %v (%s): %d rule-sets", ctx.Language, ctx.Value, purpose, len(ctx.Result.Rulesets)))
		},
	}
}
