package sqlshift

import "time"

// Severity grades a conversion diagnostic.
type Severity string

const (
	SeverityInfo    Severity = "INFO"
	SeverityWarning Severity = "WARNING"
	SeverityError   Severity = "ERROR"
)

// WarningKind categorizes a conversion diagnostic.
type WarningKind string

const (
	WarnUnsupportedFunction  WarningKind = "UNSUPPORTED_FUNCTION"
	WarnUnsupportedStatement WarningKind = "UNSUPPORTED_STATEMENT"
	WarnSyntaxDifference     WarningKind = "SYNTAX_DIFFERENCE"
	WarnDataTypeMismatch     WarningKind = "DATA_TYPE_MISMATCH"
	WarnPartialSupport       WarningKind = "PARTIAL_SUPPORT"
	WarnManualReviewNeeded   WarningKind = "MANUAL_REVIEW_NEEDED"
)

// ConversionWarning is a single diagnostic attached to a conversion result.
// Line and Column are 1-based and zero when unknown.
type ConversionWarning struct {
	Kind       WarningKind
	Message    string
	Severity   Severity
	Suggestion string
	Line       int
	Column     int
}

// ConversionMetadata carries the analysis summary for the converted input,
// passed through from the parsing collaborator.
type ConversionMetadata struct {
	SourceDialect   Dialect
	TargetDialect   Dialect
	ComplexityScore int
	FunctionCount   int
	TableCount      int
	JoinCount       int
	SubqueryCount   int
}

// ConversionResult is the complete outcome of one Convert call.
type ConversionResult struct {
	Success      bool
	ConvertedSQL string
	Warnings     []ConversionWarning
	// AppliedRules is the ordered, deduplicated audit trail of named
	// transformations that fired.
	AppliedRules  []string
	ExecutionTime time.Duration
	Metadata      *ConversionMetadata
}

// HasErrors reports whether any warning carries ERROR severity.
func (r *ConversionResult) HasErrors() bool {
	for _, w := range r.Warnings {
		if w.Severity == SeverityError {
			return true
		}
	}
	return false
}

// conversionState accumulates warnings and applied rules for one statement
// or one whole request. Each Convert call owns its own state, so concurrent
// conversions never share mutable data.
type conversionState struct {
	warnings []ConversionWarning
	rules    []string
	seen     map[string]bool
}

func newConversionState() *conversionState {
	return &conversionState{seen: make(map[string]bool)}
}

func (s *conversionState) addWarning(w ConversionWarning) {
	s.warnings = append(s.warnings, w)
}

func (s *conversionState) warn(kind WarningKind, severity Severity, message, suggestion string) {
	s.addWarning(ConversionWarning{Kind: kind, Severity: severity, Message: message, Suggestion: suggestion})
}

// addRule records a named transformation, keeping first-fired order and
// dropping duplicates.
func (s *conversionState) addRule(name string) {
	if s.seen[name] {
		return
	}
	s.seen[name] = true
	s.rules = append(s.rules, name)
}

// merge folds a per-statement state into the request-level state.
func (s *conversionState) merge(other *conversionState) {
	s.warnings = append(s.warnings, other.warnings...)
	for _, r := range other.rules {
		s.addRule(r)
	}
}
