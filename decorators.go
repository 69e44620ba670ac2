package rbnf

// NumberFormatter is the FormatNumber half of Engine.
type NumberFormatter interface {
	FormatNumber(value any, opts ...FormatOption) (Result, error)
}

var _ NumberFormatter = (*Engine)(nil)

type FormatHook interface {
	BeforeFormat(ctx *FormatHookContext)
	AfterFormat(ctx *FormatHookContext)
}

// FormatHookContext carries one FormatNumber call through its hooks. Before
// hooks may change Value and Options; after hooks may change Result and
// Error.
type FormatHookContext struct {
	Language string
	Value    any
	Options  []FormatOption
	Result   Result
	Error    error
	Metadata map[string]any
}

const (
	metadataPurpose  = "purpose"
	metadataRulesets = "rulesets"
)

func (ctx *FormatHookContext) ensureMetadata() {
	if ctx.Metadata == nil {
		ctx.Metadata = make(map[string]any)
	}
}

func (ctx *FormatHookContext) SetMetadata(key string, value any) {
	if ctx == nil || key == "" {
		return
	}
	ctx.ensureMetadata()
	ctx.Metadata[key] = value
}

func (ctx *FormatHookContext) MetadataValue(key string) (any, bool) {
	if ctx == nil || ctx.Metadata == nil {
		return nil, false
	}
	val, ok := ctx.Metadata[key]
	return val, ok
}

// Purpose returns the purpose the call was made with, as resolved after the
// before hooks ran.
func (ctx *FormatHookContext) Purpose() (Purpose, bool) {
	value, ok := ctx.MetadataValue(metadataPurpose)
	if !ok {
		return PurposeUnknown, false
	}
	purpose, ok := value.(Purpose)
	return purpose, ok
}

// FormatHookFuncs adapts plain functions to FormatHook.
type FormatHookFuncs struct {
	Before func(ctx *FormatHookContext)
	After  func(ctx *FormatHookContext)
}

func (h FormatHookFuncs) BeforeFormat(ctx *FormatHookContext) {
	if h.Before != nil {
		h.Before(ctx)
	}
}

func (h FormatHookFuncs) AfterFormat(ctx *FormatHookContext) {
	if h.After != nil {
		h.After(ctx)
	}
}

var _ NumberFormatter = &HookedFormatter{}

type HookedFormatter struct {
	next  NumberFormatter
	hooks []FormatHook
}

// WrapFormatterWithHooks runs hooks around every FormatNumber call of next.
// Nil hooks are dropped; without hooks next is returned unchanged.
func WrapFormatterWithHooks(next NumberFormatter, hooks ...FormatHook) NumberFormatter {
	if next == nil {
		return next
	}
	filtered := filterHooks(hooks)
	if len(filtered) == 0 {
		return next
	}
	return &HookedFormatter{next: next, hooks: filtered}
}

func (h *HookedFormatter) FormatNumber(value any, opts ...FormatOption) (Result, error) {
	if h == nil || h.next == nil {
		return Result{}, ErrNoRulesetsAvailable
	}
	language := ""
	if named, ok := h.next.(interface{ Language() string }); ok {
		language = named.Language()
	}
	return runFormatHooks(h.hooks, language, value, opts, h.next.FormatNumber)
}

func filterHooks(hooks []FormatHook) []FormatHook {
	var filtered []FormatHook
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		filtered = append(filtered, hook)
	}
	return filtered
}

func runFormatHooks(hooks []FormatHook, language string, value any, opts []FormatOption, format func(any, ...FormatOption) (Result, error)) (Result, error) {
	ctx := &FormatHookContext{
		Language: language,
		Value:    value,
		Options:  opts,
	}

	for _, hook := range hooks {
		hook.BeforeFormat(ctx)
	}

	cfg := newFormatConfig(ctx.Options...)
	ctx.SetMetadata(metadataPurpose, cfg.purpose)
	if len(cfg.rulesets) > 0 {
		ctx.SetMetadata(metadataRulesets, append([]string(nil), cfg.rulesets...))
	}

	ctx.Result, ctx.Error = format(ctx.Value, ctx.Options...)

	for _, hook := range hooks {
		hook.AfterFormat(ctx)
	}

	return ctx.Result, ctx.Error
}
