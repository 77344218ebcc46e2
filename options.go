package sqlshift

// ConversionOptions configures one conversion request. Construct with
// DefaultOptions and adjust fields before the Convert call; the engine never
// mutates it.
type ConversionOptions struct {
	// PreserveComments keeps SQL comments in the output. When false, line
	// and block comments are stripped (optimizer hints are handled by their
	// own rule regardless).
	PreserveComments bool

	// FormatOutput normalizes whitespace in the converted text: trailing
	// spaces removed, runs of blank lines collapsed.
	FormatOutput bool

	// IncludeWarnings attaches diagnostics to the result. When false the
	// warning list is suppressed; applied rules are always kept.
	IncludeWarnings bool

	// StrictMode escalates ambiguous best-effort rewrites to ERROR severity
	// and flags fallback-path output for manual review.
	StrictMode bool

	// CustomMappings overrides built-in function mappings for the requested
	// dialect pair, keyed by upper-cased source function name.
	CustomMappings map[string]string

	// SkipUnsupportedFeatures omits DDL the target cannot express instead of
	// emitting a best-effort simulation.
	SkipUnsupportedFeatures bool

	// MaxComplexityScore flags statements whose analysis score exceeds the
	// budget. Zero disables the check.
	MaxComplexityScore int

	// Oracle DDL options.
	SchemaOwner        string // owner prefix for generated Oracle objects
	Tablespace         string // TABLESPACE for generated tables
	Indexspace         string // TABLESPACE for generated indexes
	SeparatePrimaryKey bool   // emit PK as unique index + ALTER TABLE ADD CONSTRAINT
	SeparateComments   bool   // relocate inline COMMENT into COMMENT ON statements
	GenerateIndex      bool   // emit secondary indexes for converted DDL
}

// Placeholder names used when Oracle DDL options are not supplied.
const (
	defaultSchemaOwner = "APP_OWNER"
	defaultTablespace  = "USERS"
	defaultIndexspace  = "INDX"
)

// DefaultOptions returns the options used when a Convert call passes nil.
func DefaultOptions() *ConversionOptions {
	return &ConversionOptions{
		PreserveComments:   true,
		IncludeWarnings:    true,
		SeparatePrimaryKey: true,
		SeparateComments:   true,
		GenerateIndex:      true,
	}
}

// schemaOwner returns the configured owner or the placeholder default.
func (o *ConversionOptions) schemaOwner() string {
	if o.SchemaOwner != "" {
		return o.SchemaOwner
	}
	return defaultSchemaOwner
}

func (o *ConversionOptions) tablespace() string {
	if o.Tablespace != "" {
		return o.Tablespace
	}
	return defaultTablespace
}

func (o *ConversionOptions) indexspace() string {
	if o.Indexspace != "" {
		return o.Indexspace
	}
	return defaultIndexspace
}
