package sqlshift

import (
	"fmt"
	"strings"
	"time"
)

// failedMarker prefixes statements the engine could not convert. The
// original text follows the marker so nothing silently disappears from the
// output script.
const failedMarker = "-- [CONVERSION FAILED]"

// Engine is the conversion orchestrator. It owns the parsing collaborator,
// the function mapping registry, one converter per source dialect and the
// shared fallback path. An Engine is immutable after construction and safe
// for concurrent use; every Convert call works on its own state.
type Engine struct {
	parser    Parser
	metrics   MetricsRecorder
	functions *FunctionRegistry

	converters map[Dialect]DialectConverter
	fallbacks  map[Dialect]*FallbackConverter
}

// Option adjusts engine construction.
type Option func(*engineConfig)

type engineConfig struct {
	parser     Parser
	metrics    MetricsRecorder
	extraRules []FunctionMappingRule
}

// WithParser replaces the default parsing collaborator.
func WithParser(p Parser) Option {
	return func(c *engineConfig) { c.parser = p }
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(c *engineConfig) { c.metrics = m }
}

// WithFunctionRules adds mapping rules to the built-in table. A rule whose
// (source, target, function) key collides with a built-in replaces it.
func WithFunctionRules(rules []FunctionMappingRule) Option {
	return func(c *engineConfig) { c.extraRules = append(c.extraRules, rules...) }
}

// NewEngine builds an engine with the built-in rule set and all four
// source-dialect converters registered.
func NewEngine(opts ...Option) *Engine {
	cfg := engineConfig{
		parser:  NewStandardParser(),
		metrics: NopMetrics{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	rules := builtinFunctionRules()
	if len(cfg.extraRules) > 0 {
		rules = overrideRules(rules, cfg.extraRules)
	}
	functions := newFunctionRegistry(rules)

	e := &Engine{
		parser:     cfg.parser,
		metrics:    cfg.metrics,
		functions:  functions,
		converters: make(map[Dialect]DialectConverter, len(AllDialects)),
		fallbacks:  make(map[Dialect]*FallbackConverter, len(AllDialects)),
	}
	e.converters[MySQL] = NewMySQLConverter(functions)
	e.converters[PostgreSQL] = NewPostgresConverter(functions)
	e.converters[Oracle] = NewOracleConverter(functions)
	e.converters[Tibero] = NewTiberoConverter(functions)
	for _, d := range AllDialects {
		e.fallbacks[d] = NewFallbackConverter(d, functions)
	}
	return e
}

// overrideRules merges extra rules over the built-in list, replacing
// entries with the same key so registry construction cannot see duplicates.
func overrideRules(builtin, extra []FunctionMappingRule) []FunctionMappingRule {
	key := func(r FunctionMappingRule) mappingKey {
		return mappingKey{r.Source, r.Target, strings.ToUpper(r.SourceFunction)}
	}
	replaced := make(map[mappingKey]FunctionMappingRule, len(extra))
	for _, r := range extra {
		replaced[key(r)] = r
	}
	out := make([]FunctionMappingRule, 0, len(builtin)+len(extra))
	for _, r := range builtin {
		if override, ok := replaced[key(r)]; ok {
			out = append(out, override)
			delete(replaced, key(r))
			continue
		}
		out = append(out, r)
	}
	for _, r := range extra {
		if _, pending := replaced[key(r)]; pending {
			out = append(out, r)
			delete(replaced, key(r))
		}
	}
	return out
}

// Functions exposes the engine's mapping registry, mainly for inspection
// and the CLI's rule listing.
func (e *Engine) Functions() *FunctionRegistry { return e.functions }

// Convert translates a SQL script from one dialect to another. It never
// returns an error and never panics: statements that cannot be converted
// are emitted behind a failure marker with their original text, and any
// internal panic is absorbed into an unsuccessful result.
func (e *Engine) Convert(sql string, source, target Dialect, opts *ConversionOptions) (res *ConversionResult) {
	started := time.Now()
	if opts == nil {
		opts = DefaultOptions()
	}
	res = &ConversionResult{Success: true}
	total := &Analysis{}

	defer func() {
		if r := recover(); r != nil {
			res.Success = false
			res.ConvertedSQL = sql
			res.Warnings = append(res.Warnings, ConversionWarning{
				Kind:     WarnManualReviewNeeded,
				Severity: SeverityError,
				Message:  fmt.Sprintf("internal error during conversion: %v", r),
			})
		}
		stampMetadata(res, source, target, total, started)
		if !opts.IncludeWarnings {
			res.Warnings = nil
		}
		e.record(source, target, res.Success, res.ExecutionTime)
	}()

	if err := validateDialects(source, target); err != nil {
		res.Success = false
		res.ConvertedSQL = sql
		res.Warnings = append(res.Warnings, ConversionWarning{
			Kind:     WarnUnsupportedStatement,
			Severity: SeverityError,
			Message:  err.Error(),
		})
		return res
	}

	if source == target {
		res.ConvertedSQL = sql
		return res
	}

	statements := SplitStatements(sql)
	if len(statements) == 0 {
		res.ConvertedSQL = ""
		return res
	}

	state := newConversionState()
	var out []string
	for _, raw := range statements {
		text, failed := e.convertOne(raw, source, target, opts, state, total)
		if failed {
			res.Success = false
		}
		if strings.TrimSpace(text) != "" {
			out = append(out, text)
		}
	}

	res.Warnings = state.warnings
	res.AppliedRules = state.rules
	if len(out) > 0 {
		res.ConvertedSQL = strings.Join(out, ";\n") + ";"
	}
	return res
}

// convertOne handles a single statement with full failure isolation: a
// panic inside any converter marks this statement failed and leaves the
// rest of the batch untouched.
func (e *Engine) convertOne(raw string, source, target Dialect, opts *ConversionOptions,
	state *conversionState, total *Analysis) (text string, failed bool) {

	stmtState := newConversionState()
	usedFallback := false

	defer func() {
		if r := recover(); r != nil {
			stmtState.warn(WarnManualReviewNeeded, SeverityError,
				fmt.Sprintf("statement could not be converted: internal error: %v", r), "")
			text = failedMarker + fmt.Sprintf(" internal error: %v\n%s", r, strings.TrimSpace(raw))
			failed = true
		}
		state.merge(stmtState)
	}()

	stmt, analysis, err := e.parser.Parse(raw)
	if err != nil {
		kind := classifyStatement(raw)
		if kind == KindOther {
			// Nothing recognizable to convert. Keep the original behind a
			// marker so the script stays reviewable.
			stmtState.warn(WarnUnsupportedStatement, SeverityError,
				fmt.Sprintf("unrecognized statement starting with %q was not converted", leadingKeyword(raw)), "")
			return failedMarker + " unrecognized statement\n" + strings.TrimSpace(raw), true
		}
		stmt = &Statement{Kind: kind, Raw: raw}
		analysis = heuristicAnalysis(raw)
		usedFallback = true
	}
	accumulate(total, analysis)

	if opts.MaxComplexityScore > 0 && analysis.ComplexityScore > opts.MaxComplexityScore {
		severity := SeverityWarning
		if opts.StrictMode {
			severity = SeverityError
		}
		stmtState.warn(WarnManualReviewNeeded, severity,
			fmt.Sprintf("statement complexity %d exceeds the configured limit %d; statement was not converted",
				analysis.ComplexityScore, opts.MaxComplexityScore), "")
		return failedMarker + " complexity limit exceeded\n" + strings.TrimSpace(raw), true
	}

	conv := e.converters[source]
	if usedFallback {
		conv = nil
	}
	text = runConversion(conv, e.fallbacks[source], stmt, source, target, opts, stmtState)
	return text, false
}

func validateDialects(source, target Dialect) error {
	valid := func(d Dialect) bool {
		for _, known := range AllDialects {
			if d == known {
				return true
			}
		}
		return false
	}
	if !valid(source) {
		return fmt.Errorf("unsupported source dialect %q", source)
	}
	if !valid(target) {
		return fmt.Errorf("unsupported target dialect %q", target)
	}
	return nil
}

func accumulate(total, a *Analysis) {
	if a == nil {
		return
	}
	total.ComplexityScore += a.ComplexityScore
	total.FunctionCount += a.FunctionCount
	total.TableCount += a.TableCount
	total.JoinCount += a.JoinCount
	total.SubqueryCount += a.SubqueryCount
}

// record reports a whole-request outcome without ever letting the recorder
// interfere with the result.
func (e *Engine) record(source, target Dialect, success bool, elapsed time.Duration) {
	defer func() { _ = recover() }()
	e.metrics.RecordRequest(source, target)
	if success {
		e.metrics.RecordSuccess(source, target)
	} else {
		e.metrics.RecordError(source, target)
	}
	e.metrics.RecordDuration(source, target, elapsed)
}
